// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"time"

	"github.com/cockroachdb/crlib/crtime"
)

// DeterministicDurationForTesting is for tests that want every Stopwatch to
// report the same duration. The return value is a function that must be called
// before the test exits.
func DeterministicDurationForTesting(d time.Duration) func() {
	prev := deterministicDurationForTesting
	deterministicDurationForTesting = d
	return func() {
		deterministicDurationForTesting = prev
	}
}

var deterministicDurationForTesting time.Duration

// Stopwatch measures the duration of an operation.
type Stopwatch struct {
	startTime crtime.Mono
}

// MakeStopwatch returns a started Stopwatch.
func MakeStopwatch() Stopwatch {
	return Stopwatch{startTime: crtime.NowMono()}
}

// Stop returns the time elapsed since the stopwatch was made.
func (w Stopwatch) Stop() time.Duration {
	if deterministicDurationForTesting != 0 {
		return deterministicDurationForTesting
	}
	return w.startTime.Elapsed()
}
