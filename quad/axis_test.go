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

package quad

import (
	"math"
	"testing"
)

func TestClampCPR(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{4096, 4096},
		{9000, 9000},
		{9001, 9000},
		{99999, 9000},
	}
	for _, tc := range tests {
		if got := ClampCPR(tc.in); got != tc.want {
			t.Errorf("ClampCPR(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPositionsPerRev(t *testing.T) {
	for cpr := MinCPR; cpr <= MaxCPR; cpr++ {
		a := newAxis(cpr)
		if a.perRev != 4*cpr {
			t.Fatalf("cpr %d: perRev %d, want %d", cpr, a.perRev, 4*cpr)
		}
	}
}

func TestPattern(t *testing.T) {
	want := [][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for p := -12; p <= 12; p++ {
		a, b := Pattern(p)
		w := want[((p%4)+4)%4]
		if a != w[0] || b != w[1] {
			t.Errorf("Pattern(%d) = (%d,%d), want (%d,%d)", p, a, b, w[0], w[1])
		}
	}
}

// Adjacent positions must differ in exactly one channel.
func TestPatternGray(t *testing.T) {
	for p := 0; p < 8; p++ {
		a1, b1 := Pattern(p)
		a2, b2 := Pattern(p + 1)
		if (a1 != a2) == (b1 != b2) {
			t.Errorf("positions %d,%d: (%d,%d) -> (%d,%d) is not a single transition", p, p+1, a1, b1, a2, b2)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{-180, 180},
		{181, -179},
		{270, -90},
		{-270, 90},
		{360, 0},
		{-360, 0},
		{540, 180},
		{719, -1},
	}
	for _, tc := range tests {
		got := Normalize(tc.in)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Normalize(%g) = %g, want %g", tc.in, got, tc.want)
		}
	}
}

func TestAtIndex(t *testing.T) {
	tests := []struct {
		angle float64
		want  bool
	}{
		{0, true},
		{0.0009, true},
		{-0.0009, true},
		{359.9995, true},
		{360, true},
		{0.002, false},
		{359.99, false},
		{90, false},
		{180, false},
	}
	for _, tc := range tests {
		if got := AtIndex(tc.angle); got != tc.want {
			t.Errorf("AtIndex(%g) = %v, want %v", tc.angle, got, tc.want)
		}
	}
}

func TestPositionChange(t *testing.T) {
	a := newAxis(1) // 4 positions per revolution
	tests := []struct {
		diff float64
		want int
	}{
		{0, 0},
		{44.9, 0},
		{45, 1}, // Ties round away from zero.
		{-45, -1},
		{90, 1},
		{-90, -1},
		{180, 2},
		{134.9, 1},
		{135, 2},
	}
	for _, tc := range tests {
		if got := a.positionChange(tc.diff); got != tc.want {
			t.Errorf("positionChange(%g) = %d, want %d", tc.diff, got, tc.want)
		}
	}
	a = newAxis(4096)
	if got := a.positionChange(90); got != 4096 {
		t.Errorf("positionChange(90) at 4096 cpr = %d, want 4096", got)
	}
}

func TestUpdateChannelsStationary(t *testing.T) {
	a := newAxis(1)
	a.count = 2
	a.a, a.b = 0, 0
	a.updateChannels(0)
	if a.a != 0 || a.b != 0 {
		t.Fatalf("channels changed on zero movement: (%d,%d)", a.a, a.b)
	}
	a.updateChannels(1)
	if a.a != 1 || a.b != 1 {
		t.Fatalf("channels (%d,%d), want (1,1)", a.a, a.b)
	}
}

func TestAdvanceIgnoresInvalidAngle(t *testing.T) {
	a := newAxis(4096)
	a.calibrate(10)
	a.advance(math.NaN())
	a.advance(math.Inf(1))
	if a.count != 0 || a.previous != 10 {
		t.Fatalf("count %d, previous %g after invalid angles", a.count, a.previous)
	}
}
