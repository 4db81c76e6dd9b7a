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

// Package io drives the quadrature signals onto output lines.

package io

import (
	"fmt"
)

// Setter is an interface for setting an output value on a GPIO
type Setter interface {
	Set(int) error
}

// Pins drives the A, B and Index signals of one axis onto 3 outputs.
// Only outputs that change are written, so that a stationary
// axis generates no edges.
type Pins struct {
	a, b, index Setter
	current     [3]int
	valid       bool // true once the outputs have been written
}

// NewPins creates a Pins using the outputs provided.
func NewPins(a, b, index Setter) *Pins {
	return &Pins{a: a, b: b, index: index}
}

// Set writes the signal values to the outputs.
func (p *Pins) Set(a, b, index int) error {
	pins := [3]Setter{p.a, p.b, p.index}
	v := [3]int{a & 1, b & 1, index & 1}
	for i, pin := range pins {
		if p.valid && p.current[i] == v[i] {
			continue
		}
		if err := pin.Set(v[i]); err != nil {
			p.valid = false
			return fmt.Errorf("output %d: %v", i, err)
		}
		p.current[i] = v[i]
	}
	p.valid = true
	return nil
}

// Get returns the last values written.
func (p *Pins) Get() (int, int, int) {
	return p.current[0], p.current[1], p.current[2]
}

// Off sets all the outputs low.
func (p *Pins) Off() error {
	return p.Set(0, 0, 0)
}
