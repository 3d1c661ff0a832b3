// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// Logger is a logger that writes to a testing.TB. It also keeps the lines it
// was given so that a test can assert on them.
type Logger struct {
	T testing.TB

	mu    sync.Mutex
	lines []string
}

// Infof implements base.Logger.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.add(format, args...)
	l.T.Logf(format, args...)
}

// Errorf implements base.Logger.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.add(format, args...)
	l.T.Logf(format, args...)
}

// Fatalf implements base.Logger.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf(format, args...)
}

// Lines returns the lines logged so far.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func (l *Logger) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}
