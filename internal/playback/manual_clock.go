// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package playback

import (
	"slices"
	"sync"
	"time"
)

// ManualClock is a Clock for tests. Time only moves when Advance is called, and
// due callbacks run synchronously on the goroutine calling Advance.
type ManualClock struct {
	mu struct {
		sync.Mutex
		now    time.Duration
		seq    int
		timers []*manualTimer
	}
}

var _ Clock = (*ManualClock)(nil)

type manualTimer struct {
	clock *ManualClock
	when  time.Duration
	seq   int
	f     func()
}

// AfterFunc implements Clock.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mu.seq++
	t := &manualTimer{clock: c, when: c.mu.now + d, seq: c.mu.seq, f: f}
	c.mu.timers = append(c.mu.timers, t)
	return t
}

// Stop implements Timer.
func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.mu.timers)
	c.mu.timers = slices.DeleteFunc(c.mu.timers, func(o *manualTimer) bool { return o == t })
	return len(c.mu.timers) < n
}

// Now returns the time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mu.now
}

// Pending returns the number of scheduled callbacks that have not fired.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.mu.timers)
}

// Advance moves time forward by d, running every callback that comes due, in
// the order they are due. Callbacks scheduled by other callbacks also run if
// they come due before the new time.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.mu.now + d
	for {
		next := -1
		for i, t := range c.mu.timers {
			if t.when > target {
				continue
			}
			if next < 0 || t.when < c.mu.timers[next].when ||
				(t.when == c.mu.timers[next].when && t.seq < c.mu.timers[next].seq) {
				next = i
			}
		}
		if next < 0 {
			break
		}
		t := c.mu.timers[next]
		c.mu.timers = slices.Delete(c.mu.timers, next, next+1)
		c.mu.now = t.when
		c.mu.Unlock()
		t.f()
		c.mu.Lock()
	}
	c.mu.now = target
	c.mu.Unlock()
}
