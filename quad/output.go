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

// Package quad converts absolute angle readings into the quadrature
// A/B channel and index signals an incremental encoder would emit.
package quad

import (
	log "github.com/sirupsen/logrus"
)

// DefaultAxes is the number of axes enabled by default.
const DefaultAxes = 2

// Output generates the quadrature signals for one or two axes.
// There are always two axis slots; numAxes gates how many are active.
// An inactive second axis is neither calibrated nor advanced, and
// reports zeroed signals.
// Output is not safe for concurrent use; a single writer must serialise
// all calls, and readers need external synchronisation.
type Output struct {
	axes    [2]Axis
	numAxes int
}

// New creates an Output with the resolution and number of axes provided.
// Both values are clamped to their valid ranges.
func New(cpr, numAxes int) *Output {
	o := new(Output)
	o.axes[0] = newAxis(cpr)
	o.axes[1] = newAxis(cpr)
	o.numAxes = clampAxes(numAxes)
	return o
}

func clampAxes(n int) int {
	if n < 1 {
		return 1
	}
	if n > 2 {
		return 2
	}
	return n
}

// active returns true if the axis is a valid and enabled slot.
func (o *Output) active(axis int) bool {
	return axis == 0 || (axis == 1 && o.numAxes == 2)
}

// Initialize calibrates the active axes at the angles provided.
// This is the only way an axis starts generating output, and may be
// called at any time to recalibrate.
func (o *Output) Initialize(angle1, angle2 float64) {
	o.axes[0].calibrate(angle1)
	if o.numAxes == 2 {
		o.axes[1].calibrate(angle2)
	}
}

// Ready returns true if all active axes are calibrated, i.e
// Update will have an effect.
func (o *Output) Ready() bool {
	if !o.axes[0].calibrated {
		return false
	}
	return o.numAxes == 1 || o.axes[1].calibrated
}

// Update advances the active axes to the new angle readings.
// Angle differences are taken along the shorter arc, so the
// rotation between samples must be less than half a revolution.
// If any active axis is not yet calibrated, the update is dropped.
func (o *Output) Update(angle1, angle2 float64) {
	if !o.Ready() {
		log.Debugf("quad: update (%g, %g) dropped, not calibrated", angle1, angle2)
		return
	}
	o.axes[0].advance(angle1)
	if o.numAxes == 2 {
		o.axes[1].advance(angle2)
	}
}

// ResetIndex forces the index resynchronisation on one axis, if the angle
// is on the index mark and the channels are at the start of a cycle.
func (o *Output) ResetIndex(axis int, angle float64) {
	if o.active(axis) {
		o.axes[axis].anchor(angle)
	}
}

// SetCPR sets the resolution of both axes, resetting the position counts.
func (o *Output) SetCPR(cpr int) {
	o.axes[0].setCPR(cpr)
	o.axes[1].setCPR(cpr)
}

// SetCPRAxis sets the resolution of one axis, resetting its position count.
func (o *Output) SetCPRAxis(axis, cpr int) {
	if axis == 0 || axis == 1 {
		o.axes[axis].setCPR(cpr)
	}
}

// SetNumAxes sets the number of active axes (1 or 2).
// Disabling the second axis keeps its state but stops it being
// advanced or reported. Re-enabling it leaves it uncalibrated until
// the next Initialize.
func (o *Output) SetNumAxes(n int) {
	n = clampAxes(n)
	if n == 2 && o.numAxes == 1 {
		o.axes[1].reset()
	}
	o.numAxes = n
}

// NumAxes returns the number of active axes.
func (o *Output) NumAxes() int {
	return o.numAxes
}

// ChannelA returns the A channel of the axis (0 or 1).
func (o *Output) ChannelA(axis int) int {
	if !o.active(axis) {
		return 0
	}
	return o.axes[axis].a
}

// ChannelB returns the B channel of the axis (0 or 1).
func (o *Output) ChannelB(axis int) int {
	if !o.active(axis) {
		return 0
	}
	return o.axes[axis].b
}

// Index returns the index pulse of the axis.
func (o *Output) Index(axis int) int {
	if !o.active(axis) {
		return 0
	}
	return o.axes[axis].index
}

// CPR returns the resolution of the axis. The resolution is
// reported for the inactive slot as well, since SetCPR applies to it.
func (o *Output) CPR(axis int) int {
	if axis != 0 && axis != 1 {
		return 0
	}
	return o.axes[axis].cpr
}

// PositionsPerRev returns the number of quadrature positions in a revolution.
func (o *Output) PositionsPerRev(axis int) int {
	if axis != 0 && axis != 1 {
		return 0
	}
	return o.axes[axis].perRev
}

// PositionCount returns the current position of the axis.
func (o *Output) PositionCount(axis int) int {
	if !o.active(axis) {
		return 0
	}
	return o.axes[axis].count
}

// Calibrated returns true if the axis has been initialised.
func (o *Output) Calibrated(axis int) bool {
	if !o.active(axis) {
		return false
	}
	return o.axes[axis].calibrated
}

// StartingAngle returns the angle the axis was calibrated at.
func (o *Output) StartingAngle(axis int) float64 {
	if !o.active(axis) {
		return 0
	}
	return o.axes[axis].start
}

// Angle returns the position of the axis in degrees relative
// to the index mark.
func (o *Output) Angle(axis int) float64 {
	if !o.active(axis) {
		return 0
	}
	return o.axes[axis].angle()
}
