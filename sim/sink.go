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

package sim

import (
	"fmt"
	"io"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/aamcrae/quadrature/decoder"
	"github.com/aamcrae/quadrature/quad"
)

// CSVSink writes each record as a line of comma separated values.
type CSVSink struct {
	w      io.Writer
	angles bool
}

// NewCSVSink creates a CSVSink. If angles is set, the source
// angles are appended to each row.
func NewCSVSink(w io.Writer, angles bool) *CSVSink {
	return &CSVSink{w: w, angles: angles}
}

func (c *CSVSink) Emit(r *Record) error {
	_, err := fmt.Fprintln(c.w, r.CSV(c.angles))
	return err
}

// PinSetter sets the A, B and Index signals of an axis.
type PinSetter interface {
	Set(a, b, index int) error
}

// PinSink drives the signals of each axis onto a set of pins.
// Either axis may have no pins.
type PinSink struct {
	pins [2]PinSetter
}

// NewPinSink creates a PinSink.
func NewPinSink(axis1, axis2 PinSetter) *PinSink {
	return &PinSink{pins: [2]PinSetter{axis1, axis2}}
}

func (p *PinSink) Emit(r *Record) error {
	s := r.Snapshot
	v := [2][2]int{{s.Axis1A, s.Axis1B}, {s.Axis2A, s.Axis2B}}
	for i, pin := range p.pins {
		if pin == nil || i >= r.Axes {
			continue
		}
		if err := pin.Set(v[i][0], v[i][1], r.Index[i]); err != nil {
			return fmt.Errorf("axis %d: %v", i+1, err)
		}
	}
	return nil
}

// Loopback decodes the output signals and compares the decoded
// angle against the source angle.
// The decoded angle is relative to the angle at the last index pulse,
// or the calibration angle if no pulse has been seen.
type Loopback struct {
	Name     string
	Decoders [2]*decoder.Decoder
	MaxDrift [2]float64 // Largest difference seen, in degrees
	ref      [2]float64
	started  bool
}

// NewLoopback creates a Loopback for the axis resolutions given.
func NewLoopback(name string, cpr1, cpr2 int) *Loopback {
	l := new(Loopback)
	l.Name = name
	l.Decoders[0] = decoder.New(cpr1)
	l.Decoders[1] = decoder.New(cpr2)
	return l
}

func (l *Loopback) Emit(r *Record) error {
	s := r.Snapshot
	v := [2][2]int{{s.Axis1A, s.Axis1B}, {s.Axis2A, s.Axis2B}}
	if !l.started {
		// The first record is the calibration point.
		l.ref = r.Angles
		l.started = true
	}
	for i := 0; i < r.Axes; i++ {
		d := l.Decoders[i]
		d.Sample(v[i][0], v[i][1], r.Index[i])
		if r.Index[i] != 0 {
			// The output count is zero at an index pulse.
			l.ref[i] = r.Angles[i]
		}
		drift := math.Abs(quad.Normalize(d.Angle() - (r.Angles[i] - l.ref[i])))
		if drift > l.MaxDrift[i] {
			l.MaxDrift[i] = drift
			log.Debugf("%s: axis %d drift %.4f at record %d", l.Name, i+1, drift, r.Seq)
		}
	}
	return nil
}
