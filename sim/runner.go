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

// Package sim runs the quadrature output from an angle source at a
// fixed update rate, sending each update to a set of sinks.
package sim

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aamcrae/quadrature/quad"
)

// Record is the state of the outputs after one update.
type Record struct {
	Seq      int
	Time     time.Duration
	Axes     int
	Angles   [2]float64
	Index    [2]int // Per axis index pulse
	Count    [2]int // Per axis position count
	Snapshot quad.Snapshot
}

// CSV returns the output row, optionally followed by the angles.
func (r *Record) CSV(angles bool) string {
	s := r.Snapshot.CSV(r.Axes)
	if !angles {
		return s
	}
	if r.Axes == 1 {
		return fmt.Sprintf("%s,%.4f", s, r.Angles[0])
	}
	return fmt.Sprintf("%s,%.4f,%.4f", s, r.Angles[0], r.Angles[1])
}

// Sink receives each record generated.
type Sink interface {
	Emit(*Record) error
}

// Runner reads the angle source every interval and updates
// the quadrature output.
// The runner is the single writer of the output; it must not be
// modified elsewhere while the runner is active.
type Runner struct {
	Name     string
	out      *quad.Output
	src      Source
	interval time.Duration
	sinks    []Sink
	seq      int
	elapsed  time.Duration
}

// NewRunner creates a Runner.
func NewRunner(name string, out *quad.Output, src Source, interval time.Duration, sinks ...Sink) *Runner {
	r := new(Runner)
	r.Name = name
	r.out = out
	r.src = src
	r.interval = interval
	r.sinks = sinks
	log.Debugf("%s: %d axes, cpr %d/%d, interval %s", name, out.NumAxes(), out.CPR(0), out.CPR(1), interval)
	return r
}

// AddSink adds a sink that receives the records.
func (r *Runner) AddSink(s Sink) {
	r.sinks = append(r.sinks, s)
}

// Step advances the simulation by one interval.
func (r *Runner) Step() error {
	r.elapsed += r.interval
	a1, a2 := r.src.Angles(r.elapsed)
	r.out.Update(a1, a2)
	return r.emit(a1, a2)
}

// Run steps the simulation every interval until the context is done,
// or count steps have been run (count of 0 runs forever).
func (r *Runner) Run(ctx context.Context, count int) error {
	if !r.out.Ready() {
		return fmt.Errorf("%s: not calibrated", r.Name)
	}
	// Attempt to start the ticker on the interval boundary.
	r.syncTime()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for i := 0; count == 0 || i < count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := r.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) emit(a1, a2 float64) error {
	rec := &Record{
		Seq:      r.seq,
		Time:     r.elapsed,
		Axes:     r.out.NumAxes(),
		Angles:   [2]float64{a1, a2},
		Index:    [2]int{r.out.Index(0), r.out.Index(1)},
		Count:    [2]int{r.out.PositionCount(0), r.out.PositionCount(1)},
		Snapshot: r.out.Formatted(),
	}
	if rec.Axes == 1 {
		rec.Angles[1] = 0
	}
	r.seq++
	for _, s := range r.sinks {
		if err := s.Emit(rec); err != nil {
			return fmt.Errorf("%s: record %d: %v", r.Name, rec.Seq, err)
		}
	}
	return nil
}

// syncTime sleeps until the next interval boundary.
func (r *Runner) syncTime() {
	n := time.Now()
	time.Sleep(n.Truncate(r.interval).Add(r.interval).Sub(n))
}
