// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package playback implements a cursor over a recorded list of frames, with
// manual stepping and timer-driven auto-advance.
//
// Every command that changes the cursor first cancels any pending tick. A tick
// carries the generation that scheduled it and is dropped if the generation has
// moved on, so a timer that fires concurrently with a command can never move
// the cursor of a newer playback.
package playback

import (
	"sync"
	"time"

	"github.com/cockroachdb/redact"
)

// State is the state of a Controller.
type State int8

const (
	// Idle means there are no frames.
	Idle State = iota
	// Paused means the cursor is valid and no tick is scheduled.
	Paused
	// Playing means the cursor is valid and a tick is scheduled.
	Playing
)

var stateNames = [...]string{
	Idle:    "idle",
	Paused:  "paused",
	Playing: "playing",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// SafeFormat implements redact.SafeFormatter.
func (s State) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(s.String()))
}

// MaxDelayBase is the delay, in milliseconds, corresponding to a speed of
// zero. The delay between ticks is MaxDelayBase minus the speed.
const MaxDelayBase = 1100

// Delay returns the delay between two ticks for the given speed. Higher speeds
// are faster; the delay never goes below zero.
func Delay(speed int) time.Duration {
	return time.Duration(max(MaxDelayBase-speed, 0)) * time.Millisecond
}

// Settings supplies the user-tunable playback parameters. They are read every
// time a tick is scheduled, so changes take effect on the next tick.
type Settings interface {
	Speed() int
	AutoPlay() bool
}

// Clock schedules deferred callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a callback scheduled with a Clock.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the callback
	// already fired or was already stopped.
	Stop() bool
}

// DefaultClock is a Clock backed by the time package.
type DefaultClock struct{}

var _ Clock = DefaultClock{}

// AfterFunc implements Clock.
func (DefaultClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Position describes the cursor after a change.
type Position struct {
	Cursor int
	Len    int
	State  State
}

// CanStepBack returns true if the cursor is past the first frame.
func (p Position) CanStepBack() bool {
	return p.Cursor > 0
}

// CanStepForward returns true if the cursor is before the last frame.
func (p Position) CanStepForward() bool {
	return p.Cursor >= 0 && p.Cursor < p.Len-1
}

// RenderFunc is called every time the cursor lands on a frame (including when
// it is reset to the first frame). It is called with the Controller's lock
// held and must not call back into the Controller.
type RenderFunc[T any] func(frame T, pos Position)

// Options configures a Controller.
type Options[T any] struct {
	// Settings is required.
	Settings Settings
	// Clock defaults to DefaultClock.
	Clock Clock
	// Render is optional.
	Render RenderFunc[T]
}

// Controller is a cursor over a list of frames. It is safe for concurrent use.
type Controller[T any] struct {
	settings Settings
	clock    Clock
	render   RenderFunc[T]

	mu struct {
		sync.Mutex
		frames []T
		cursor int
		state  State
		timer  Timer
		// gen is bumped every time the pending tick is canceled.
		gen uint64
	}
}

// New returns an Idle controller.
func New[T any](opts Options[T]) *Controller[T] {
	c := &Controller[T]{
		settings: opts.Settings,
		clock:    opts.Clock,
		render:   opts.Render,
	}
	if c.clock == nil {
		c.clock = DefaultClock{}
	}
	c.mu.cursor = -1
	return c
}

// Start replaces the frames, resets the cursor to the first frame and renders
// it. If auto-play is enabled, playback starts. The frames must not be modified
// afterwards. Starting with no frames is equivalent to Stop.
func (c *Controller[T]) Start(frames []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.mu.frames = frames
	if len(frames) == 0 {
		c.mu.cursor = -1
		c.mu.state = Idle
		return
	}
	c.mu.cursor = 0
	c.showLocked(true /* play */)
}

// Stop cancels playback and drops the frames.
func (c *Controller[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.mu.frames = nil
	c.mu.cursor = -1
	c.mu.state = Idle
}

// StepForward pauses playback and moves to the next frame, if any.
func (c *Controller[T]) StepForward() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mu.state == Idle {
		return
	}
	c.cancelLocked()
	c.mu.state = Paused
	if c.mu.cursor < len(c.mu.frames)-1 {
		c.mu.cursor++
		c.showLocked(false /* play */)
	}
}

// StepBackward pauses playback and moves to the previous frame, if any.
func (c *Controller[T]) StepBackward() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mu.state == Idle {
		return
	}
	c.cancelLocked()
	c.mu.state = Paused
	if c.mu.cursor > 0 {
		c.mu.cursor--
		c.showLocked(false /* play */)
	}
}

// Restart moves back to the first frame and renders it. If auto-play is
// enabled, playback starts again.
func (c *Controller[T]) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mu.state == Idle {
		return
	}
	c.cancelLocked()
	c.mu.cursor = 0
	c.showLocked(true /* play */)
}

// Play resumes auto-advance from the current frame. It does nothing if
// playback is already running, the cursor is on the last frame, or auto-play is
// disabled in the Settings.
func (c *Controller[T]) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mu.state != Paused || !c.canAdvanceLocked() {
		return
	}
	c.mu.state = Playing
	c.scheduleLocked()
}

// Pause cancels auto-advance, leaving the cursor where it is.
func (c *Controller[T]) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mu.state != Playing {
		return
	}
	c.cancelLocked()
	c.mu.state = Paused
}

// Position returns the current cursor position.
func (c *Controller[T]) Position() Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

// Current returns the frame under the cursor, or false if there are no frames.
func (c *Controller[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mu.cursor < 0 {
		var zero T
		return zero, false
	}
	return c.mu.frames[c.mu.cursor], true
}

// CanStepBack returns true if StepBackward would move the cursor.
func (c *Controller[T]) CanStepBack() bool {
	return c.Position().CanStepBack()
}

// CanStepForward returns true if StepForward would move the cursor.
func (c *Controller[T]) CanStepForward() bool {
	return c.Position().CanStepForward()
}

// HistoryNonEmpty returns true if there is at least one frame.
func (c *Controller[T]) HistoryNonEmpty() bool {
	return c.Position().Len > 0
}

func (c *Controller[T]) positionLocked() Position {
	return Position{
		Cursor: c.mu.cursor,
		Len:    len(c.mu.frames),
		State:  c.mu.state,
	}
}

// cancelLocked stops the pending tick, if any, and invalidates any tick that
// is already running.
func (c *Controller[T]) cancelLocked() {
	c.mu.gen++
	if c.mu.timer != nil {
		c.mu.timer.Stop()
		c.mu.timer = nil
	}
}

func (c *Controller[T]) renderLocked() {
	if c.render != nil {
		c.render(c.mu.frames[c.mu.cursor], c.positionLocked())
	}
}

// canAdvanceLocked returns true if auto-play should move past the current
// frame.
func (c *Controller[T]) canAdvanceLocked() bool {
	return c.mu.cursor < len(c.mu.frames)-1 && c.settings.AutoPlay()
}

// showLocked renders the frame under the cursor. If play is set and there is a
// frame to advance to, the state becomes Playing and the next tick is
// scheduled; otherwise the state becomes Paused. The state is settled before
// rendering so that the rendered Position tells whether playback continues.
func (c *Controller[T]) showLocked(play bool) {
	c.mu.state = Paused
	if play && c.canAdvanceLocked() {
		c.mu.state = Playing
	}
	c.renderLocked()
	if c.mu.state == Playing {
		c.scheduleLocked()
	}
}

func (c *Controller[T]) scheduleLocked() {
	gen := c.mu.gen
	c.mu.timer = c.clock.AfterFunc(Delay(c.settings.Speed()), func() {
		c.tick(gen)
	})
}

func (c *Controller[T]) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.mu.gen || c.mu.state != Playing {
		return
	}
	c.mu.timer = nil
	c.mu.cursor++
	c.showLocked(true /* play */)
}
