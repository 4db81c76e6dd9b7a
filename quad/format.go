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

// Output formatting

package quad

import (
	"fmt"
)

// Snapshot is the combined output of both axes.
// Index is the OR of the index pulses of the active axes.
type Snapshot struct {
	Axis1A int
	Axis1B int
	Axis2A int
	Axis2B int
	Index  int
}

// CSV renders the snapshot as A,B,Index for a single axis,
// or A1,B1,A2,B2,Index for two axes.
func (s Snapshot) CSV(numAxes int) string {
	if numAxes == 1 {
		return fmt.Sprintf("%d,%d,%d", s.Axis1A, s.Axis1B, s.Index)
	}
	return fmt.Sprintf("%d,%d,%d,%d,%d", s.Axis1A, s.Axis1B, s.Axis2A, s.Axis2B, s.Index)
}

// Formatted returns a snapshot of the current outputs.
func (o *Output) Formatted() Snapshot {
	return Snapshot{
		Axis1A: o.ChannelA(0),
		Axis1B: o.ChannelB(0),
		Axis2A: o.ChannelA(1),
		Axis2B: o.ChannelB(1),
		Index:  o.Index(0) | o.Index(1),
	}
}

// FormattedString returns the current outputs as a CSV row.
func (o *Output) FormattedString() string {
	return o.Formatted().CSV(o.numAxes)
}
