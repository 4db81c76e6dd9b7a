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
	"errors"
	"testing"
	"time"

	"github.com/aamcrae/quadrature/quad"
)

type fakePins struct {
	a, b, index int
	calls       int
	err         error
}

func (f *fakePins) Set(a, b, index int) error {
	if f.err != nil {
		return f.err
	}
	f.a, f.b, f.index = a, b, index
	f.calls++
	return nil
}

func TestPinSink(t *testing.T) {
	var p1, p2 fakePins
	s := NewPinSink(&p1, &p2)
	r := &Record{
		Axes:     2,
		Index:    [2]int{0, 1},
		Snapshot: quad.Snapshot{Axis1A: 1, Axis1B: 0, Axis2A: 1, Axis2B: 1, Index: 1},
	}
	if err := s.Emit(r); err != nil {
		t.Fatal(err)
	}
	if p1.a != 1 || p1.b != 0 || p1.index != 0 {
		t.Errorf("axis 1 pins %+v", p1)
	}
	if p2.a != 1 || p2.b != 1 || p2.index != 1 {
		t.Errorf("axis 2 pins %+v", p2)
	}
	r.Axes = 1
	if err := s.Emit(r); err != nil {
		t.Fatal(err)
	}
	if p1.calls != 2 || p2.calls != 1 {
		t.Errorf("calls %d %d, want 2 1", p1.calls, p2.calls)
	}
	p1.err = errors.New("broken")
	if err := s.Emit(r); err == nil {
		t.Errorf("expected error")
	}
	// Axes without pins are skipped.
	if err := NewPinSink(nil, &p2).Emit(r); err != nil {
		t.Errorf("nil pins: %v", err)
	}
}

func TestLoopback(t *testing.T) {
	c := DefaultConfig()
	c.Axis[0] = AxisConfig{CPR: 16, Rate: 100}
	c.Axis[1] = AxisConfig{CPR: 16, Rate: -150, Offset: 90}
	const interval = 10 * time.Millisecond
	l := NewLoopback("loop", 16, 16)
	r := NewRunner("loop", quad.New(16, 2), NewSweep(c), interval, l)
	if err := r.Calibrate(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		if err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	for i, d := range l.Decoders {
		if d.Errors() != 0 {
			t.Errorf("axis %d: %d decode errors", i+1, d.Errors())
		}
		if l.MaxDrift[i] > 1e-6 {
			t.Errorf("axis %d: drift %g", i+1, l.MaxDrift[i])
		}
	}
}

func TestLoopbackDetectsSkips(t *testing.T) {
	// Moving 2 positions per update cannot be followed by a decoder.
	const interval = 10 * time.Millisecond
	src := NewSamples(interval, [][2]float64{{0, 0}, {180, 0}})
	l := NewLoopback("skip", 1, 1)
	r := NewRunner("skip", quad.New(1, 1), src, interval, l)
	if err := r.Calibrate(); err != nil {
		t.Fatal(err)
	}
	if err := r.Step(); err != nil {
		t.Fatal(err)
	}
	if l.Decoders[0].Errors() != 1 {
		t.Fatalf("errors %d, want 1", l.Decoders[0].Errors())
	}
	if l.MaxDrift[0] != 180 {
		t.Fatalf("drift %g, want 180", l.MaxDrift[0])
	}
}
