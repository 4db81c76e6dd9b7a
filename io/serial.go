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

package io

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

const DefaultBaud = 115200

// Serial is a serial port used to send the quadrature rows to
// a remote decoder.
type Serial struct {
	Name string
	port *serial.Port
}

// OpenSerial opens the serial port at the baud rate given.
func OpenSerial(name string, baud int) (*Serial, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	c := &serial.Config{Name: name, Baud: baud, ReadTimeout: time.Second}
	p, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	if err := p.Flush(); err != nil {
		p.Close()
		return nil, fmt.Errorf("%s: flush: %v", name, err)
	}
	return &Serial{Name: name, port: p}, nil
}

// Write sends the data to the port.
func (s *Serial) Write(b []byte) (int, error) {
	return s.port.Write(b)
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}
