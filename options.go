// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bststeps

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/bststeps/internal/base"
	"github.com/cockroachdb/bststeps/internal/playback"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultSpeed is the initial playback speed.
	DefaultSpeed = 600
	// DefaultMinSpeed and DefaultMaxSpeed bound the speed a user can select.
	DefaultMinSpeed = 100
	DefaultMaxSpeed = 1000
	// DefaultCanvasWidth is the width of the area node positions are laid out
	// in.
	DefaultCanvasWidth = 1000
)

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger = base.DefaultLogger

// NoopLogger discards all log messages. Fatal messages still panic.
type NoopLogger = base.NoopLogger

// Clock schedules the playback ticks.
type Clock = playback.Clock

// Position describes the playback cursor.
type Position = playback.Position

// PlaybackState is the state of the playback cursor.
type PlaybackState = playback.State

// Playback states.
const (
	Idle    = playback.Idle
	Paused  = playback.Paused
	Playing = playback.Playing
)

// RenderFunc is called every time the playback cursor lands on a snapshot. It
// runs with the playback lock held and must not call back into the Session.
type RenderFunc func(snap Snapshot, pos Position)

// Options holds the optional parameters for a Session.
type Options struct {
	// Speed is the initial playback speed. The delay between two playback
	// steps is 1100 minus the speed, in milliseconds.
	Speed int

	// MinSpeed and MaxSpeed bound the values accepted by Session.SetSpeed.
	MinSpeed int
	MaxSpeed int

	// DisableAutoPlay, if set, makes playback stay on the first snapshot of
	// every operation until it is stepped manually.
	DisableAutoPlay bool

	// CanvasWidth is the width that node positions are laid out in.
	CanvasWidth float64

	// Clock drives auto-play. The default uses the time package.
	Clock Clock

	// Render, if set, is called for every snapshot displayed by playback.
	Render RenderFunc

	// Logger used to write log messages.
	//
	// The default logger uses the Go standard library log package.
	Logger Logger

	// EventListener provides hooks to listening to significant Session events
	// such as operations starting and finishing.
	EventListener *EventListener

	// Registerer, if set, is used to register the Session's Prometheus
	// collectors.
	Registerer prometheus.Registerer
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.MinSpeed <= 0 {
		o.MinSpeed = DefaultMinSpeed
	}
	if o.MaxSpeed <= 0 {
		o.MaxSpeed = DefaultMaxSpeed
	}
	if o.Speed <= 0 {
		o.Speed = DefaultSpeed
	}
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.Clock == nil {
		o.Clock = playback.DefaultClock{}
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	if o.EventListener == nil {
		o.EventListener = &EventListener{}
	}
	o.EventListener.EnsureDefaults()
	return o
}

// Clone creates a shallow-copy of the supplied options.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	n := *o
	if o.EventListener != nil {
		l := *o.EventListener
		n.EventListener = &l
	}
	return &n
}

// Validate verifies that the options are mutually consistent. The options must
// have had their defaults applied.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.MinSpeed > o.MaxSpeed {
		fmt.Fprintf(&buf, "MinSpeed (%d) must be <= MaxSpeed (%d)\n", o.MinSpeed, o.MaxSpeed)
	}
	if o.MaxSpeed > playback.MaxDelayBase {
		fmt.Fprintf(&buf, "MaxSpeed (%d) must be <= %d\n", o.MaxSpeed, playback.MaxDelayBase)
	}
	if o.Speed < o.MinSpeed || o.Speed > o.MaxSpeed {
		fmt.Fprintf(&buf, "Speed (%d) must be between %d and %d\n", o.Speed, o.MinSpeed, o.MaxSpeed)
	}
	if buf.Len() == 0 {
		return nil
	}
	return errors.New(buf.String())
}

// String returns the options in the INI format accepted by Parse.
func (o *Options) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[Version]\n")
	fmt.Fprintf(&buf, "  bststeps_version=0.1\n")
	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  auto_play=%t\n", !o.DisableAutoPlay)
	fmt.Fprintf(&buf, "  canvas_width=%s\n", strconv.FormatFloat(o.CanvasWidth, 'g', -1, 64))
	fmt.Fprintf(&buf, "  max_speed=%d\n", o.MaxSpeed)
	fmt.Fprintf(&buf, "  min_speed=%d\n", o.MinSpeed)
	fmt.Fprintf(&buf, "  speed=%d\n", o.Speed)
	return buf.String()
}

// ParseHooks contains callbacks used while parsing options.
type ParseHooks struct {
	// SkipUnknown, if set, is consulted for keys Parse does not recognize; if
	// it returns true the key is ignored instead of causing an error.
	SkipUnknown func(name, value string) bool
}

// Parse parses the options from the specified string, in the format produced
// by String. Options that are not mentioned keep their current values.
func (o *Options) Parse(s string, hooks *ParseHooks) error {
	visitKeyValue := func(section, key, value string) error {
		var err error
		switch {
		case section == "Version":
			switch key {
			case "bststeps_version":
			default:
				err = errUnknownOption(section, key, value, hooks)
			}
		case section == "Options":
			switch key {
			case "auto_play":
				var v bool
				v, err = strconv.ParseBool(value)
				o.DisableAutoPlay = !v
			case "canvas_width":
				o.CanvasWidth, err = strconv.ParseFloat(value, 64)
			case "max_speed":
				o.MaxSpeed, err = strconv.Atoi(value)
			case "min_speed":
				o.MinSpeed, err = strconv.Atoi(value)
			case "speed":
				o.Speed, err = strconv.Atoi(value)
			default:
				err = errUnknownOption(section, key, value, hooks)
			}
		default:
			err = errUnknownOption(section, key, value, hooks)
		}
		return errors.Wrapf(err, "bststeps: parsing %s.%s", errors.Safe(section), errors.Safe(key))
	}
	return parseOptions(s, visitKeyValue)
}

func errUnknownOption(section, key, value string, hooks *ParseHooks) error {
	if hooks != nil && hooks.SkipUnknown != nil && hooks.SkipUnknown(section+"."+key, value) {
		return nil
	}
	return errors.Errorf("unknown option")
}

// parseOptions walks an INI-style string, calling visit for every key=value
// pair with the section it appears in.
func parseOptions(s string, visit func(section, key, value string) error) error {
	var section string
	for lineNum, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			// Skip blank lines and comments.
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			section = line[1 : n-1]
			continue
		}

		pos := strings.Index(line, "=")
		if pos < 0 {
			const maxLen = 50
			if len(line) > maxLen {
				line = line[:maxLen-3] + "..."
			}
			return errors.Errorf("bststeps: invalid key=value syntax on line %d: %q",
				errors.Safe(lineNum+1), line)
		}
		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])
		if err := visit(section, key, value); err != nil {
			return err
		}
	}
	return nil
}
