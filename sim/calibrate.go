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

// Calibrate the output from the angle source

package sim

import (
	log "github.com/sirupsen/logrus"
)

// Calibrate anchors the output at the current angles of the source,
// and restarts the simulation time.
// The calibrated state is sent to the sinks as the first record.
func (r *Runner) Calibrate() error {
	r.elapsed = 0
	r.seq = 0
	a1, a2 := r.src.Angles(0)
	r.out.Initialize(a1, a2)
	log.Printf("%s: Calibrated at %.4f (index %d)", r.Name, a1, r.out.Index(0))
	if r.out.NumAxes() == 2 {
		log.Printf("%s: Axis 2 calibrated at %.4f (index %d)", r.Name, a2, r.out.Index(1))
	}
	return r.emit(a1, a2)
}

// Resync forces an index resynchronisation of both axes at the
// current source angles, e.g after the angle sensor has been corrected.
func (r *Runner) Resync() {
	a1, a2 := r.src.Angles(r.elapsed)
	r.out.ResetIndex(0, a1)
	r.out.ResetIndex(1, a2)
	log.Debugf("%s: Resync at %.4f, %.4f: counts %d, %d", r.Name, a1, a2, r.out.PositionCount(0), r.out.PositionCount(1))
}
