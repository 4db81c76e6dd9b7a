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

// Quadrature encoder output simulator

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aamcrae/quadrature/io"
	"github.com/aamcrae/quadrature/quad"
	"github.com/aamcrae/quadrature/sim"
)

var rootCmd = &cobra.Command{
	Use:   "quadsim",
	Short: "quadrature encoder output simulator",
	Long: `quadsim converts absolute angles into the quadrature A/B and Index
signals of an incremental encoder, for one or two axes.`,
}

// newRunCmd creates the run command and its flags.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "stream the quadrature output as CSV rows",
		Long: `run calibrates the output at the starting angles, then updates it at
a fixed interval from the angle source. Each update is written to stdout as
A,B,Index,Angle (1 axis) or A1,B1,A2,B2,Index,Angle1,Angle2 (2 axes).
The angle source is a constant rate sweep of each axis, or a fixed list
of angles given with --angles.
Settings are read from the --config file, and overridden by flags.`,
		Example: `  quadsim run --axes 1 --cpr 9000
  quadsim run --config quad.conf --count 640
  quadsim run --angles 0:0,1:1,2:2,3:3 --count 4`,
		RunE: run,
	}
	f := cmd.Flags()
	f.String("config", "", "configuration file")
	f.Int("axes", quad.DefaultAxes, "number of axes (1 or 2)")
	f.Int("cpr", quad.DefaultCPR, "cycles per revolution of both axes")
	f.Duration("interval", sim.DefaultInterval, "position update interval")
	f.Int("count", 0, "number of updates to run, 0 to run until interrupted")
	f.String("angles", "", "fixed angle list a1:a2,a1:a2,... replayed once per interval")
	f.String("serial", "", "serial port to also send the rows to")
	f.Int("baud", io.DefaultBaud, "serial port baud rate")
	f.Int("port", 0, "waveform HTTP server port, 0 to disable")
	f.Bool("noangles", false, "omit the angles from the stdout rows")
	return cmd
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "toggle debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if d, _ := cmd.Flags().GetBool("debug"); d {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	}
	rootCmd.AddCommand(newRunCmd())
}

func main() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// settings merges the configuration file and the command line flags.
func settings(cmd *cobra.Command) (*sim.Config, error) {
	f := cmd.Flags()
	c := sim.DefaultConfig()
	if file, _ := f.GetString("config"); file != "" {
		var err error
		c, err = sim.ReadConfig(file)
		if err != nil {
			return nil, err
		}
	}
	if f.Changed("axes") {
		c.Axes, _ = f.GetInt("axes")
		if c.Axes < 1 || c.Axes > 2 {
			return nil, fmt.Errorf("axes: %d is not 1 or 2", c.Axes)
		}
	}
	if f.Changed("cpr") {
		cpr, _ := f.GetInt("cpr")
		c.Axis[0].CPR = quad.ClampCPR(cpr)
		c.Axis[1].CPR = c.Axis[0].CPR
	}
	if f.Changed("interval") {
		c.Interval, _ = f.GetDuration("interval")
		if c.Interval <= 0 {
			return nil, fmt.Errorf("interval: %s is not positive", c.Interval)
		}
	}
	if f.Changed("serial") {
		c.Serial, _ = f.GetString("serial")
	}
	if f.Changed("baud") || c.Baud == 0 {
		c.Baud, _ = f.GetInt("baud")
	}
	if f.Changed("port") {
		c.Port, _ = f.GetInt("port")
	}
	return c, nil
}

func run(cmd *cobra.Command, args []string) error {
	c, err := settings(cmd)
	if err != nil {
		return err
	}
	out := quad.New(c.Axis[0].CPR, c.Axes)
	out.SetCPRAxis(1, c.Axis[1].CPR)
	var src sim.Source = sim.NewSweep(c)
	if a, _ := cmd.Flags().GetString("angles"); a != "" {
		angles, err := sim.ParseAngles(a)
		if err != nil {
			return err
		}
		src = sim.NewSamples(c.Interval, angles)
	}
	noAngles, _ := cmd.Flags().GetBool("noangles")
	r := sim.NewRunner("quadsim", out, src, c.Interval, sim.NewCSVSink(cmd.OutOrStdout(), !noAngles))
	if c.Serial != "" {
		s, err := io.OpenSerial(c.Serial, c.Baud)
		if err != nil {
			return err
		}
		defer s.Close()
		r.AddSink(sim.NewCSVSink(s, false))
		log.Printf("Sending rows to %s at %d baud", c.Serial, c.Baud)
	}
	var pins [2]sim.PinSetter
	for i := 0; i < out.NumAxes(); i++ {
		p := c.Axis[i].Pins
		if len(p) != 3 {
			continue
		}
		g, err := io.OutputPins(p[0], p[1], p[2])
		if err != nil {
			return err
		}
		defer g.Close()
		pins[i] = g
	}
	if pins[0] != nil || pins[1] != nil {
		r.AddSink(sim.NewPinSink(pins[0], pins[1]))
	}
	if c.Port != 0 {
		h := sim.NewHistory(sim.DefaultHistory)
		r.AddSink(h)
		go func() {
			log.Fatal(sim.Server(c.Port, h))
		}()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := r.Calibrate(); err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	err = r.Run(ctx, count)
	if err == context.Canceled {
		return nil
	}
	return err
}
