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

// Angle sources

package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aamcrae/quadrature/quad"
)

// Source provides the absolute angle of each axis, in degrees,
// at a time relative to the start of the simulation.
type Source interface {
	Angles(time.Duration) (float64, float64)
}

// Sweep rotates each axis at a constant rate from a starting angle.
// The angles are quantised to the resolution of the encoder, as the
// angle sensor on the board would be.
type Sweep struct {
	rate   [2]float64
	offset [2]float64
	cpr    [2]int
}

// NewSweep creates a Sweep source from the axis settings.
func NewSweep(c *Config) *Sweep {
	s := new(Sweep)
	for i, a := range c.Axis {
		s.rate[i] = a.Rate
		s.offset[i] = a.Offset
		s.cpr[i] = a.CPR
	}
	return s
}

// Angles returns the angles of the axes at time t.
func (s *Sweep) Angles(t time.Duration) (float64, float64) {
	var v [2]float64
	for i := range v {
		v[i] = Quantize(s.rate[i]*t.Seconds()+s.offset[i], s.cpr[i])
	}
	return v[0], v[1]
}

// Quantize rounds the angle to the nearest position of an encoder
// of the given resolution, wrapped to [0, 360).
func Quantize(angle float64, cpr int) float64 {
	step := 360.0 / float64(4*quad.ClampCPR(cpr))
	a := math.Mod(math.Round(angle/step)*step, 360)
	if a < 0 {
		a += 360
	}
	// Rounding can leave a value just under 360.
	if 360-a < step/2 {
		a = 0
	}
	return a
}

// Samples replays a fixed list of angles, one per interval.
// Once the list is exhausted, the last angles are held.
type Samples struct {
	interval time.Duration
	angles   [][2]float64
}

// NewSamples creates a Samples source.
func NewSamples(interval time.Duration, angles [][2]float64) *Samples {
	return &Samples{interval: interval, angles: angles}
}

// Angles returns the sample for time t.
func (s *Samples) Angles(t time.Duration) (float64, float64) {
	if len(s.angles) == 0 {
		return 0, 0
	}
	i := 0
	if s.interval > 0 {
		i = int(t / s.interval)
	}
	if i >= len(s.angles) {
		i = len(s.angles) - 1
	}
	return s.angles[i][0], s.angles[i][1]
}

// ParseAngles parses a list of angles of the form "a1:a2,a1:a2,...".
// The second angle may be omitted for single axis use.
func ParseAngles(s string) ([][2]float64, error) {
	var angles [][2]float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		var v [2]float64
		for i, a := range strings.SplitN(f, ":", 2) {
			var err error
			v[i], err = strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", f, err)
			}
		}
		angles = append(angles, v)
	}
	if len(angles) == 0 {
		return nil, fmt.Errorf("no angles in %q", s)
	}
	return angles, nil
}
