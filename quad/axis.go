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

// Single axis angle to quadrature conversion.

package quad

import (
	"math"
)

// Limits of the resolution, in cycles per revolution.
// A requested resolution outside these is clamped.
const (
	MinCPR     = 1
	MaxCPR     = 9000
	DefaultCPR = 4096 // Resolution used when none is configured
)

// Tolerance is how close an angle must be to 0 or 360 degrees
// to be treated as the index mark.
const Tolerance = 0.001

const degreesPerRev = 360.0

// Quadrature Gray sequence of outputs (A, B).
// Walking forward through the table has A leading B,
// walking backwards has B leading A.
var sequence = [4][2]int{
	{0, 0},
	{1, 0},
	{1, 1},
	{0, 1},
}

// Axis holds the state of a single encoder axis.
// The position count is the number of quadrature transitions since
// calibration, wrapped to a single revolution (0 <= count < perRev).
// The A/B channels are always derived from the count.
type Axis struct {
	cpr        int     // Cycles per revolution
	perRev     int     // Positions per revolution (4 * cpr)
	start      float64 // Angle at calibration
	previous   float64 // Last angle sample
	count      int     // Current position
	a, b       int     // Channel outputs
	index      int     // Index pulse
	calibrated bool
}

func newAxis(cpr int) Axis {
	var a Axis
	a.setResolution(cpr)
	return a
}

// ClampCPR limits a resolution to the supported range.
func ClampCPR(cpr int) int {
	if cpr < MinCPR {
		return MinCPR
	}
	if cpr > MaxCPR {
		return MaxCPR
	}
	return cpr
}

// Pattern returns the A/B channel values for a position.
func Pattern(position int) (int, int) {
	s := position % 4
	if s < 0 {
		s += 4
	}
	return sequence[s][0], sequence[s][1]
}

// AtIndex returns true if the angle is on the index mark (0 or 360 degrees).
func AtIndex(angle float64) bool {
	return math.Abs(angle) < Tolerance || math.Abs(angle-degreesPerRev) < Tolerance
}

// Normalize folds an angle difference into (-180, 180], so that
// the shorter arc between two samples is always chosen.
func Normalize(diff float64) float64 {
	d := math.Mod(diff, degreesPerRev)
	if d > degreesPerRev/2 {
		d -= degreesPerRev
	} else if d <= -degreesPerRev/2 {
		d += degreesPerRev
	}
	return d
}

func (x *Axis) setResolution(cpr int) {
	x.cpr = ClampCPR(cpr)
	x.perRev = 4 * x.cpr
}

// setCPR changes the resolution. The position is discarded,
// since a count at the old resolution has no meaning at the new one.
// A calibrated axis is left at count 0 with the index asserted,
// an uncalibrated one keeps its zeroed signals.
func (x *Axis) setCPR(cpr int) {
	x.setResolution(cpr)
	x.count = 0
	x.a, x.b = Pattern(x.count)
	x.index = 0
	if x.calibrated {
		x.index = 1
	}
}

// positionChange converts an angle difference to a number of positions.
func (x *Axis) positionChange(diff float64) int {
	return int(math.Round(diff / degreesPerRev * float64(x.perRev)))
}

// updateChannels recomputes the channels from the count.
// A stationary axis keeps its current outputs.
func (x *Axis) updateChannels(change int) {
	if change == 0 {
		return
	}
	x.a, x.b = Pattern(x.count)
}

// calibrate anchors the axis at the angle provided.
func (x *Axis) calibrate(angle float64) {
	x.start = angle
	x.previous = angle
	x.count = 0
	x.a, x.b = 0, 0
	x.calibrated = true
	x.index = 0
	if AtIndex(angle) {
		x.index = 1
	}
}

// advance moves the axis to the new angle.
func (x *Axis) advance(angle float64) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return
	}
	change := x.positionChange(Normalize(angle - x.previous))
	x.count += change
	for x.count < 0 {
		x.count += x.perRev
	}
	x.count %= x.perRev
	x.updateChannels(change)
	if x.count == 0 {
		x.index = 1
	} else {
		x.index = 0
	}
	x.anchor(angle)
	x.previous = angle
}

// anchor resynchronises the count when the angle is on the index mark
// and the channels are at the start of a cycle.
func (x *Axis) anchor(angle float64) {
	if AtIndex(angle) && x.a == 0 && x.b == 0 {
		x.index = 1
		x.count = 0
	}
}

// reset returns the axis to the uncalibrated state, keeping the resolution.
func (x *Axis) reset() {
	*x = newAxis(x.cpr)
}

// angle returns the position count expressed in degrees.
func (x *Axis) angle() float64 {
	return float64(x.count) * degreesPerRev / float64(x.perRev)
}
