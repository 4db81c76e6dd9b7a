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

package io

import (
	"fmt"

	gpio "github.com/aamcrae/gpio"
)

// GpioPins are the A, B and Index output pins for one axis.
type GpioPins struct {
	*Pins
	gp []*gpio.Gpio
}

// OutputPins opens the GPIOs for the A, B and Index outputs.
func OutputPins(a, b, index int) (*GpioPins, error) {
	g := new(GpioPins)
	for _, n := range []int{a, b, index} {
		p, err := gpio.OutputPin(n)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("Pin %d: %v", n, err)
		}
		g.gp = append(g.gp, p)
	}
	g.Pins = NewPins(g.gp[0], g.gp[1], g.gp[2])
	return g, nil
}

// InputPins opens the GPIOs for reading the A, B and Index signals.
// The pins are set to detect both edges, so that Get will block
// until the input changes.
func InputPins(a, b, index int) ([]*gpio.Gpio, error) {
	var gp []*gpio.Gpio
	for _, n := range []int{a, b, index} {
		p, err := gpio.Pin(n)
		if err == nil {
			err = p.Edge(gpio.BOTH)
			if err != nil {
				p.Close()
			}
		}
		if err != nil {
			for _, o := range gp {
				o.Close()
			}
			return nil, fmt.Errorf("Pin %d: %v", n, err)
		}
		gp = append(gp, p)
	}
	return gp, nil
}

// Close turns off the outputs and releases the GPIOs.
func (g *GpioPins) Close() {
	if g.Pins != nil {
		g.Off()
	}
	for _, p := range g.gp {
		p.Close()
	}
	g.gp = nil
}
