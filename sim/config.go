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
	"time"

	"github.com/aamcrae/config"
	"github.com/aamcrae/quadrature/quad"
)

// The position is computed at 640Hz.
const DefaultInterval = time.Second / 640

// AxisConfig holds the settings for one axis.
type AxisConfig struct {
	CPR    int
	Rate   float64 // Sweep rate in degrees per second
	Offset float64 // Sweep starting angle
	Pins   []int   // GPIOs for A, B, Index (optional)
}

// Config holds the simulator settings, read from a configuration file.
type Config struct {
	Axes     int
	Interval time.Duration
	Axis     [2]AxisConfig
	Serial   string // Serial port for the output rows (optional)
	Baud     int
	Port     int // HTTP port for the waveform server, 0 if disabled
}

var axisSections = [2]string{"axis1", "axis2"}

// section is the part of a config section used to read values.
type section interface {
	Has(string) bool
	GetArg(string) (string, error)
	Parse(string, string, ...interface{}) (int, error)
}

// DefaultConfig returns the settings used when no configuration is present.
func DefaultConfig() *Config {
	c := &Config{
		Axes:     quad.DefaultAxes,
		Interval: DefaultInterval,
	}
	c.Axis[0] = AxisConfig{CPR: quad.DefaultCPR, Rate: 1.0}
	c.Axis[1] = AxisConfig{CPR: quad.DefaultCPR, Rate: 10.0, Offset: 90.0}
	return c
}

// ReadConfig parses a configuration file.
func ReadConfig(file string) (*Config, error) {
	conf, err := config.ParseFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", file, err)
	}
	return Parse(conf)
}

// Parse reads the simulator settings from a config.
// All sections are optional, missing values keep their defaults.
// Sample config:
//  [quadrature]
//  axes=2                   # Number of axes, 1 or 2
//  interval=1562500ns       # Position update interval
//  [axis1]
//  cpr=4096                 # Cycles per revolution
//  sweep=1.0,0.0            # Sweep rate in degrees/second, starting angle
//  pins=5,6,13              # GPIOs for A, B, Index outputs
//  [axis2]
//  cpr=4096
//  sweep=10.0,90.0
//  [serial]
//  port=/dev/ttyUSB0        # Serial port to send rows to
//  baud=115200
//  [http]
//  port=8080                # Waveform server port
func Parse(conf *config.Config) (*Config, error) {
	c := DefaultConfig()
	if s := conf.GetSection("quadrature"); s != nil {
		if err := parseInt(s, "axes", &c.Axes); err != nil {
			return nil, err
		}
		if err := parseDuration(s, "interval", &c.Interval); err != nil {
			return nil, err
		}
	}
	if c.Axes < 1 || c.Axes > 2 {
		return nil, fmt.Errorf("axes: %d is not 1 or 2", c.Axes)
	}
	if c.Interval <= 0 {
		return nil, fmt.Errorf("interval: %s is not positive", c.Interval)
	}
	for i, name := range axisSections {
		s := conf.GetSection(name)
		if s == nil {
			continue
		}
		a := &c.Axis[i]
		if err := parseInt(s, "cpr", &a.CPR); err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		if a.CPR < quad.MinCPR || a.CPR > quad.MaxCPR {
			return nil, fmt.Errorf("%s: cpr %d out of range", name, a.CPR)
		}
		if has(s, "sweep") {
			n, err := s.Parse("sweep", "%f,%f", &a.Rate, &a.Offset)
			if err != nil {
				return nil, fmt.Errorf("%s: sweep: %v", name, err)
			}
			if n != 2 {
				return nil, fmt.Errorf("%s: sweep: argument count", name)
			}
		}
		if has(s, "pins") {
			a.Pins = make([]int, 3)
			n, err := s.Parse("pins", "%d,%d,%d", &a.Pins[0], &a.Pins[1], &a.Pins[2])
			if err != nil {
				return nil, fmt.Errorf("%s: pins: %v", name, err)
			}
			if n != 3 {
				return nil, fmt.Errorf("%s: pins: argument count", name)
			}
		}
	}
	if s := conf.GetSection("serial"); s != nil {
		p, err := s.GetArg("port")
		if err != nil {
			return nil, fmt.Errorf("serial: %v", err)
		}
		c.Serial = p
		if err := parseInt(s, "baud", &c.Baud); err != nil {
			return nil, fmt.Errorf("serial: %v", err)
		}
	}
	if s := conf.GetSection("http"); s != nil {
		if err := parseInt(s, "port", &c.Port); err != nil {
			return nil, fmt.Errorf("http: %v", err)
		}
	}
	return c, nil
}

// has returns true if the keyword is present in the section.
func has(s section, key string) bool {
	return s.Has(key)
}

// parseInt reads an optional integer value.
func parseInt(s section, key string, v *int) error {
	if !has(s, key) {
		return nil
	}
	n, err := s.Parse(key, "%d", v)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	if n != 1 {
		return fmt.Errorf("%s: argument count", key)
	}
	return nil
}

// parseDuration reads an optional duration value.
func parseDuration(s section, key string, v *time.Duration) error {
	if !has(s, key) {
		return nil
	}
	a, err := s.GetArg(key)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	*v, err = time.ParseDuration(a)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	return nil
}
