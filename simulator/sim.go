// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Loopback simulator program

package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aamcrae/quadrature/quad"
	"github.com/aamcrae/quadrature/sim"
)

// Each combination of resolution and sweep rate is run through
// the output and a pair of decoders.
var params = []struct {
	name   string
	cpr    int
	rate1  float64 // degrees/second
	rate2  float64
	offset float64
}{
	{"coarse", 16, 100, -150, 90},
	{"default", 4096, 1, 10, 90},
	{"fine", 9000, 2, -3, 45},
	{"fast", 4096, 120, 60, 0},
}

// Drift beyond this is reported.
const threshold = 0.05

var simCmd = &cobra.Command{
	Use:   "simulator",
	Short: "run the quadrature output against decoders",
	Long: `simulator runs several sweeps through the quadrature output, decodes
the signals and reports how far the decoded angle drifted from the
source angle. A sweep fast enough to move more than one position per
update shows up as illegal transitions.`,
	RunE: simulate,
}

func init() {
	simCmd.Flags().Duration("duration", 10*time.Second, "simulated time of each sweep")
	simCmd.Flags().Duration("interval", sim.DefaultInterval, "position update interval")
	simCmd.Flags().Bool("debug", false, "toggle debug logging")
}

func main() {
	if err := simCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func simulate(cmd *cobra.Command, args []string) error {
	duration, _ := cmd.Flags().GetDuration("duration")
	interval, _ := cmd.Flags().GetDuration("interval")
	if d, _ := cmd.Flags().GetBool("debug"); d {
		log.SetLevel(log.DebugLevel)
	}
	if interval <= 0 {
		return fmt.Errorf("interval: %s is not positive", interval)
	}
	steps := int(duration / interval)
	failed := 0
	for _, p := range params {
		c := sim.DefaultConfig()
		c.Interval = interval
		c.Axis[0] = sim.AxisConfig{CPR: p.cpr, Rate: p.rate1}
		c.Axis[1] = sim.AxisConfig{CPR: p.cpr, Rate: p.rate2, Offset: p.offset}
		l := sim.NewLoopback(p.name, p.cpr, p.cpr)
		r := sim.NewRunner(p.name, quad.New(p.cpr, 2), sim.NewSweep(c), interval, l)
		if err := r.Calibrate(); err != nil {
			return err
		}
		for i := 0; i < steps; i++ {
			if err := r.Step(); err != nil {
				return err
			}
		}
		for i, d := range l.Decoders {
			status := "ok"
			if d.Errors() != 0 || l.MaxDrift[i] > threshold {
				status = "FAIL"
				failed++
			}
			fmt.Printf("%-8s axis %d: cpr %4d, %d updates, max drift %.4f, %d illegal transitions: %s\n",
				p.name, i+1, p.cpr, steps, l.MaxDrift[i], d.Errors(), status)
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d axes failed", failed)
	}
	return nil
}
