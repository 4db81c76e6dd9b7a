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

// Program to watch quadrature inputs and decode the position

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aamcrae/quadrature/decoder"
	"github.com/aamcrae/quadrature/io"
	"github.com/aamcrae/quadrature/quad"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watch the A, B and Index input pins and print the decoded position",
	RunE:  watch,
}

func init() {
	f := watchCmd.Flags()
	f.Int("a", 5, "GPIO pin for channel A input")
	f.Int("b", 6, "GPIO pin for channel B input")
	f.Int("index", 13, "GPIO pin for index input")
	f.Int("cpr", quad.DefaultCPR, "cycles per revolution")
}

func main() {
	if err := watchCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func watch(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	a, _ := f.GetInt("a")
	b, _ := f.GetInt("b")
	index, _ := f.GetInt("index")
	cpr, _ := f.GetInt("cpr")
	pins, err := io.InputPins(a, b, index)
	if err != nil {
		return err
	}
	defer func() {
		for _, p := range pins {
			p.Close()
		}
	}()
	// Each input is read in its own goroutine since a read
	// blocks until that input changes.
	type edge struct {
		pin, value int
	}
	changed := make(chan edge, 16)
	errs := make(chan error, len(pins))
	for i, p := range pins {
		go func(i int, get func() (int, error)) {
			for {
				v, err := get()
				if err != nil {
					errs <- err
					return
				}
				changed <- edge{i, v}
			}
		}(i, p.Get)
	}
	d := decoder.New(cpr)
	var v [3]int
	for {
		select {
		case err := <-errs:
			return err
		case e := <-changed:
			if v[e.pin] == e.value {
				continue
			}
			v[e.pin] = e.value
			d.Sample(v[0], v[1], v[2])
			log.Printf("A %d B %d Index %d: position %d, angle %.4f (%d errors)", v[0], v[1], v[2], d.Count(), d.Angle(), d.Errors())
		}
	}
}
