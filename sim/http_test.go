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
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aamcrae/quadrature/quad"
)

func testRecords(n, axes int) []Record {
	var r []Record
	for i := 0; i < n; i++ {
		a, b := quad.Pattern(i)
		idx := 0
		if i%8 == 0 {
			idx = 1
		}
		r = append(r, Record{
			Seq:      i,
			Axes:     axes,
			Snapshot: quad.Snapshot{Axis1A: a, Axis1B: b, Axis2A: b, Axis2B: a, Index: idx},
		})
	}
	return r
}

func TestWaveform(t *testing.T) {
	for _, axes := range []int{1, 2} {
		img := Waveform(testRecords(50, axes), 300, 150)
		b := img.Bounds()
		if b.Dx() != 300 || b.Dy() != 150 {
			t.Fatalf("bounds %v", b)
		}
		drawn := false
		for y := b.Min.Y; y < b.Max.Y && !drawn; y++ {
			for x := labelWidth; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				if r != 0xffff || g != 0xffff || bl != 0xffff {
					drawn = true
					break
				}
			}
		}
		if !drawn {
			t.Fatalf("%d axes: nothing drawn", axes)
		}
	}
	// No records draws just the labels.
	if img := Waveform(nil, 100, 50); img.Bounds().Dx() != 100 {
		t.Fatalf("empty waveform bounds %v", img.Bounds())
	}
}

func TestHandlers(t *testing.T) {
	h := NewHistory(10)
	w := httptest.NewRecorder()
	latestHandler(h)(w, httptest.NewRequest("GET", "/latest", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("empty latest: status %d", w.Code)
	}
	for _, r := range testRecords(3, 2) {
		r := r
		h.Emit(&r)
	}
	w = httptest.NewRecorder()
	latestHandler(h)(w, httptest.NewRequest("GET", "/latest", nil))
	if w.Code != http.StatusOK || w.Body.String() != "1,1,1,1,0,0.0000,0.0000\n" {
		t.Fatalf("latest: status %d body %q", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	waveformHandler(h)(w, httptest.NewRequest("GET", "/waveform.png", nil))
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != waveWidth || img.Bounds().Dy() != waveHeight {
		t.Fatalf("image bounds %v", img.Bounds())
	}
}
