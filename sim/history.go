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
	"sync"
)

// Number of records kept for the waveform display.
const DefaultHistory = 400

// History keeps the most recent records so that they can be
// read by other goroutines while the runner is active.
type History struct {
	mu      sync.Mutex // Guards records and next
	records []Record
	next    int
	full    bool
}

// NewHistory creates a History holding up to size records.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistory
	}
	return &History{records: make([]Record, size)}
}

func (h *History) Emit(r *Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[h.next] = *r
	h.next++
	if h.next == len(h.records) {
		h.next = 0
		h.full = true
	}
	return nil
}

// Records returns a copy of the records held, oldest first.
func (h *History) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.full {
		return append([]Record(nil), h.records[:h.next]...)
	}
	r := make([]Record, 0, len(h.records))
	r = append(r, h.records[h.next:]...)
	return append(r, h.records[:h.next]...)
}

// Latest returns the most recent record, and false if there is none.
func (h *History) Latest() (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.next == 0 && !h.full {
		return Record{}, false
	}
	i := h.next - 1
	if i < 0 {
		i = len(h.records) - 1
	}
	return h.records[i], true
}
