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

// HTTP server for waveform images

package sim

import (
	"fmt"
	"image"
	"image/png"
	"net/http"

	"github.com/fogleman/gg"
	log "github.com/sirupsen/logrus"
)

const (
	waveWidth  = 1200
	waveHeight = 360
	labelWidth = 60
)

// Server serves the waveform of the recent records as a PNG image,
// and the latest record as text.
func Server(port int, h *History) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/waveform.png", waveformHandler(h))
	mux.HandleFunc("/latest", latestHandler(h))
	url := fmt.Sprintf(":%d", port)
	log.Printf("Starting server on %s", url)
	server := &http.Server{Addr: url, Handler: mux}
	return server.ListenAndServe()
}

func waveformHandler(h *History) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		img := Waveform(h.Records(), waveWidth, waveHeight)
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			log.Printf("Error writing image: %v", err)
		}
	}
}

func latestHandler(h *History) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := h.Latest()
		if !ok {
			http.Error(w, "no data", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, rec.CSV(true))
	}
}

// Waveform draws the A, B and Index signals of the records as
// a set of square waves, one row per signal.
func Waveform(records []Record, width, height int) image.Image {
	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()
	axes := 1
	if len(records) > 0 {
		axes = records[len(records)-1].Axes
	}
	names := []string{"A", "B", "Index"}
	signals := []func(*Record) int{
		func(r *Record) int { return r.Snapshot.Axis1A },
		func(r *Record) int { return r.Snapshot.Axis1B },
		func(r *Record) int { return r.Snapshot.Index },
	}
	if axes == 2 {
		names = []string{"A1", "B1", "A2", "B2", "Index"}
		signals = []func(*Record) int{
			func(r *Record) int { return r.Snapshot.Axis1A },
			func(r *Record) int { return r.Snapshot.Axis1B },
			func(r *Record) int { return r.Snapshot.Axis2A },
			func(r *Record) int { return r.Snapshot.Axis2B },
			func(r *Record) int { return r.Snapshot.Index },
		}
	}
	rowH := float64(height) / float64(len(names))
	amp := rowH * 0.6
	colW := float64(width-labelWidth) / float64(DefaultHistory)
	if len(records) > DefaultHistory {
		colW = float64(width-labelWidth) / float64(len(records))
	}
	c.SetLineWidth(2)
	for row, name := range names {
		base := rowH*float64(row) + rowH*0.8
		c.SetRGB(0, 0, 0)
		c.DrawString(name, 4, base-amp/2)
		if row == len(names)-1 {
			c.SetRGB(1, 0, 0)
		} else {
			c.SetRGB(0, 0, 1)
		}
		for i := range records {
			y := base - float64(signals[row](&records[i]))*amp
			x := float64(labelWidth) + float64(i)*colW
			if i == 0 {
				c.MoveTo(x, y)
			} else {
				c.LineTo(x, y)
			}
			c.LineTo(x+colW, y)
		}
		c.Stroke()
	}
	return c.Image()
}
