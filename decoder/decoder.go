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

// Package decoder reconstructs a position from a stream of
// quadrature A/B channel and index samples.
package decoder

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aamcrae/quadrature/quad"
)

// Phase of each A/B combination in the Gray sequence.
var phase = [2][2]int{
	{0, 3}, // A=0: B=0, B=1
	{1, 2}, // A=1: B=0, B=1
}

// Decoder tracks the position of one axis by observing A/B transitions.
// A forward transition increments the count, a reverse transition
// decrements it. An index pulse resets the count to zero.
// Since only one transition can be seen between samples, a sample
// where both channels change is counted as an error and ignored.
type Decoder struct {
	cpr    int
	last   int  // Last phase seen
	seen   bool // True once the first sample has been received
	count  int
	errors int
}

// New creates a decoder for an encoder of the resolution provided.
func New(cpr int) *Decoder {
	return &Decoder{cpr: quad.ClampCPR(cpr)}
}

// Sample processes one set of channel values.
func (d *Decoder) Sample(a, b, index int) {
	p := phase[a&1][b&1]
	if d.seen {
		switch (p - d.last + 4) % 4 {
		case 1:
			d.count++
		case 3:
			d.count--
		case 2:
			d.errors++
		}
	}
	d.last = p
	d.seen = true
	if index != 0 {
		d.count = 0
	}
}

// Count returns the number of positions moved since the last index pulse.
func (d *Decoder) Count() int {
	return d.count
}

// Errors returns the number of illegal transitions seen.
func (d *Decoder) Errors() int {
	return d.errors
}

// Angle returns the decoded position in degrees, in the range [0, 360).
func (d *Decoder) Angle() float64 {
	a := math.Mod(float64(d.count)*360/float64(4*d.cpr), 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Reset clears the position and error counts.
func (d *Decoder) Reset() {
	d.count = 0
	d.errors = 0
	d.seen = false
}

// ParseCSV parses a row of A,B,Index or A1,B1,A2,B2,Index values.
// Only the first fields are used, so trailing columns such
// as angles are ignored. axes selects the row layout.
func ParseCSV(line string, axes int) ([]int, error) {
	n := 3
	if axes == 2 {
		n = 5
	}
	f := strings.Split(strings.TrimSpace(line), ",")
	if len(f) < n {
		return nil, fmt.Errorf("%q: expected %d fields, found %d", line, n, len(f))
	}
	v := make([]int, n)
	for i := range v {
		var err error
		v[i], err = strconv.Atoi(strings.TrimSpace(f[i]))
		if err != nil {
			return nil, fmt.Errorf("field %d: %v", i, err)
		}
		if v[i] != 0 && v[i] != 1 {
			return nil, fmt.Errorf("field %d: illegal value %d", i, v[i])
		}
	}
	return v, nil
}
