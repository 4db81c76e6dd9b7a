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
	"math"
	"testing"
	"time"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		angle float64
		cpr   int
		want  float64
	}{
		{44, 1, 0},
		{46, 1, 90},
		{-90, 1, 270},
		{359, 1, 0},
		{359.999, 4096, 0},
		{90, 4096, 90},
		{10, 4096, 455 * 360.0 / 16384},
		{720.5, 9000, 0.5},
		{10, 0, 0},
	}
	for _, tc := range tests {
		got := Quantize(tc.angle, tc.cpr)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Quantize(%g, %d) = %g, want %g", tc.angle, tc.cpr, got, tc.want)
		}
	}
}

func TestSweep(t *testing.T) {
	s := NewSweep(DefaultConfig())
	a1, a2 := s.Angles(0)
	if a1 != 0 || a2 != 90 {
		t.Fatalf("Angles(0) = %g, %g", a1, a2)
	}
	a1, a2 = s.Angles(time.Second)
	step := 360.0 / 16384
	if math.Abs(a1-1) > step/2 || math.Abs(a2-100) > step/2 {
		t.Fatalf("Angles(1s) = %g, %g", a1, a2)
	}
	// 10 deg/s wraps after 27 seconds.
	_, a2 = s.Angles(28 * time.Second)
	if math.Abs(a2-10) > step/2 {
		t.Fatalf("wrapped angle %g, want 10", a2)
	}
}

func TestSamples(t *testing.T) {
	s := NewSamples(10*time.Millisecond, [][2]float64{{1, 2}, {3, 4}, {5, 6}})
	tests := []struct {
		t      time.Duration
		a1, a2 float64
	}{
		{0, 1, 2},
		{9 * time.Millisecond, 1, 2},
		{15 * time.Millisecond, 3, 4},
		{20 * time.Millisecond, 5, 6},
		{time.Second, 5, 6},
	}
	for _, tc := range tests {
		a1, a2 := s.Angles(tc.t)
		if a1 != tc.a1 || a2 != tc.a2 {
			t.Errorf("Angles(%s) = %g, %g, want %g, %g", tc.t, a1, a2, tc.a1, tc.a2)
		}
	}
	empty := NewSamples(time.Millisecond, nil)
	if a1, a2 := empty.Angles(time.Second); a1 != 0 || a2 != 0 {
		t.Errorf("empty source returned %g, %g", a1, a2)
	}
}

func TestParseAngles(t *testing.T) {
	a, err := ParseAngles("0:0, 10:5,20")
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]float64{{0, 0}, {10, 5}, {20, 0}}
	if len(a) != len(want) {
		t.Fatalf("got %v, want %v", a, want)
	}
	for i := range a {
		if a[i] != want[i] {
			t.Fatalf("got %v, want %v", a, want)
		}
	}
	for _, bad := range []string{"", " , ", "a:b", "1:2:3"} {
		if _, err := ParseAngles(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
