// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bststeps records binary search tree operations step by step and
// plays the recorded steps back.
//
// A Session owns a tree. Every operation on the tree (insert, delete,
// traversal) records a snapshot of the whole tree at each intermediate step,
// and the recorded snapshots replace those of the previous operation. Playback
// then walks a cursor over the snapshots, either manually or automatically at
// the configured speed.
package bststeps

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/bststeps/internal/base"
	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/bststeps/internal/history"
	"github.com/cockroachdb/bststeps/internal/invariants"
	"github.com/cockroachdb/bststeps/internal/layout"
	"github.com/cockroachdb/bststeps/internal/mutation"
	"github.com/cockroachdb/bststeps/internal/playback"
	"github.com/cockroachdb/errors"
)

// Key is the key of a tree node.
type Key = bst.Key

// Order is a traversal order.
type Order = bst.Order

// Traversal orders.
const (
	Preorder  = bst.Preorder
	Inorder   = bst.Inorder
	Postorder = bst.Postorder
)

// Snapshot is the recorded state of the tree at one step of an operation.
type Snapshot = history.Snapshot

// StepKind identifies the step a Snapshot was recorded at.
type StepKind = mutation.StepKind

// Session is a tree together with the snapshots recorded by the last
// operation and a playback cursor over them.
//
// Operations must be issued from one goroutine at a time. Playback ticks run
// on timer goroutines; the accessors may be called concurrently with them.
type Session struct {
	opts   *Options
	prom   *promMetrics
	ctrl   *playback.Controller[Snapshot]
	closed invariants.CloseChecker

	// Playback settings, read by the controller whenever it schedules a tick.
	speed    atomic.Int64
	autoPlay atomic.Bool

	mu struct {
		sync.Mutex
		tree    bst.Tree
		hist    history.Store
		metrics Metrics
	}
}

var _ playback.Settings = (*Session)(nil)

// Open returns a Session with an empty tree.
func Open(opts *Options) (*Session, error) {
	opts = opts.Clone().EnsureDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	prom, err := newPromMetrics(opts.Registerer)
	if err != nil {
		return nil, errors.Wrap(err, "bststeps: registering metrics")
	}
	s := &Session{opts: opts, prom: prom}
	s.speed.Store(int64(opts.Speed))
	s.autoPlay.Store(!opts.DisableAutoPlay)
	s.mu.hist.Layout = layout.Func(opts.CanvasWidth)
	s.ctrl = playback.New(playback.Options[Snapshot]{
		Settings: s,
		Clock:    opts.Clock,
		Render:   s.render,
	})
	return s, nil
}

// Close stops playback and unregisters the Session's metrics. The Session
// must not be used afterwards.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed.Close()
	s.ctrl.Stop()
	s.prom.unregister(s.opts.Registerer)
	return nil
}

// PerformOperation inserts or deletes a key, recording every step, and starts
// playback of the recorded steps. The last recorded snapshot always shows the
// resulting tree. It returns true if the tree changed.
func (s *Session) PerformOperation(kind OpKind, key Key) (bool, error) {
	var fn func(t *bst.Tree, key bst.Key, rec mutation.Recorder) bool
	switch kind {
	case OpInsert:
		fn = mutation.Insert
	case OpDelete:
		fn = mutation.Delete
	default:
		return false, errors.Errorf("bststeps: %s does not take a key", kind)
	}
	info := s.run(OperationInfo{Kind: kind, Key: key}, func() bool {
		changed := fn(&s.mu.tree, key, &s.mu.hist)
		s.mu.hist.Append(s.mu.tree.Root, mutation.Complete, mutation.CompleteStatus, nil)
		return changed
	})
	return info.Changed, nil
}

// Insert inserts a key; see PerformOperation. Inserting a key that is already
// present leaves the tree unchanged.
func (s *Session) Insert(key Key) bool {
	changed, _ := s.PerformOperation(OpInsert, key)
	return changed
}

// Delete deletes a key; see PerformOperation. Deleting an absent key leaves
// the tree unchanged.
func (s *Session) Delete(key Key) bool {
	changed, _ := s.PerformOperation(OpDelete, key)
	return changed
}

// PerformTraversal traverses the tree in the given order, recording two steps
// per node, and starts playback. It returns the traversal sequence. Traversing
// an empty tree records nothing and leaves playback idle.
func (s *Session) PerformTraversal(order Order) []Key {
	var seq []Key
	s.run(OperationInfo{Kind: OpTraverse, Order: order}, func() bool {
		seq = mutation.Traverse(&s.mu.tree, order, &s.mu.hist)
		return false
	})
	return seq
}

// LoadKeys replaces the tree with a height-balanced tree holding the given
// keys, which must be sorted and free of duplicates. No steps are recorded and
// playback becomes idle.
func (s *Session) LoadKeys(keys []Key) {
	s.run(OperationInfo{Kind: OpLoad, Keys: len(keys)}, func() bool {
		s.mu.tree.Root = bst.BuildBalanced(keys)
		if invariants.Enabled {
			if err := bst.CheckOrdering(s.mu.tree.Root); err != nil {
				s.opts.Logger.Fatalf("bststeps: keys must be sorted and unique: %v", err)
			}
		}
		return true
	})
}

// run performs an operation: it cancels playback, clears the annotations of
// the live tree and the previous snapshots, runs op and starts playback of
// whatever op recorded.
func (s *Session) run(info OperationInfo, op func() (changed bool)) OperationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed.AssertNotClosed()

	s.opts.EventListener.OperationBegin(info)
	sw := base.MakeStopwatch()

	s.ctrl.Stop()
	s.mu.tree.Root.ClearAnnotations()
	s.mu.hist.Clear()
	info.Changed = op()

	info.Done = true
	info.Snapshots = s.mu.hist.Len()
	info.TreeSize = s.mu.tree.Root.Len()
	info.Duration = sw.Stop()
	s.recordLocked(info)
	s.opts.EventListener.OperationEnd(info)

	s.ctrl.Start(s.mu.hist.Snapshots())
	return info
}

func (s *Session) recordLocked(info OperationInfo) {
	m := &s.mu.metrics
	m.Operations[info.Kind]++
	m.Snapshots += int64(info.Snapshots)
	switch {
	case info.Kind == OpInsert && !info.Changed:
		m.DuplicateInserts++
	case info.Kind == OpDelete && !info.Changed:
		m.NotFoundDeletes++
	}
	s.prom.record(info.Kind, info.Snapshots)
}

// render is called by the controller, with its lock held, whenever the cursor
// lands on a snapshot. It may run on a timer goroutine and must not acquire
// s.mu.
func (s *Session) render(snap Snapshot, pos Position) {
	s.opts.EventListener.PlaybackStep(PlaybackInfo{Position: pos, Kind: snap.Kind, Status: snap.Status})
	if s.opts.Render != nil {
		s.opts.Render(snap, pos)
	}
}

// CurrentSnapshot returns the snapshot under the playback cursor. If there are
// no snapshots, it returns a snapshot of the live tree, with an empty status
// and sequence, and false.
func (s *Session) CurrentSnapshot() (Snapshot, bool) {
	if snap, ok := s.ctrl.Current(); ok {
		return snap, true
	}
	return Snapshot{Tree: s.Tree()}, false
}

// Tree returns a copy of the live tree, laid out for display. The live tree is
// always the result of the last operation.
func (s *Session) Tree() *bst.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	root := s.mu.tree.Root.Clone()
	layout.Assign(root, s.opts.CanvasWidth)
	return root
}

// History returns the snapshots recorded by the last operation. The returned
// slice must not be modified.
func (s *Session) History() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.hist.Snapshots()
}

// Metrics returns metrics about the Session.
func (s *Session) Metrics() *Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.mu.metrics
	m.History.Len = s.mu.hist.Len()
	m.History.Fingerprint = s.mu.hist.Fingerprint()
	m.Tree.Size = s.mu.tree.Root.Len()
	m.Tree.Height = s.mu.tree.Root.Height()
	m.Playback = s.ctrl.Position()
	return &m
}

// StepForward pauses playback and moves to the next snapshot, if any.
func (s *Session) StepForward() { s.ctrl.StepForward() }

// StepBackward pauses playback and moves to the previous snapshot, if any.
func (s *Session) StepBackward() { s.ctrl.StepBackward() }

// Restart moves playback back to the first snapshot, and resumes auto-play if
// it is enabled.
func (s *Session) Restart() { s.ctrl.Restart() }

// Play resumes auto-play from the current snapshot. It does nothing if
// auto-play is disabled.
func (s *Session) Play() { s.ctrl.Play() }

// Pause stops auto-play, leaving the cursor where it is.
func (s *Session) Pause() { s.ctrl.Pause() }

// Position returns the playback cursor.
func (s *Session) Position() Position { return s.ctrl.Position() }

// CanStepBack returns true if StepBackward would move the cursor.
func (s *Session) CanStepBack() bool { return s.ctrl.CanStepBack() }

// CanStepForward returns true if StepForward would move the cursor.
func (s *Session) CanStepForward() bool { return s.ctrl.CanStepForward() }

// HistoryNonEmpty returns true if the last operation recorded any snapshots.
func (s *Session) HistoryNonEmpty() bool { return s.ctrl.HistoryNonEmpty() }

// Speed implements playback.Settings.
func (s *Session) Speed() int { return int(s.speed.Load()) }

// AutoPlay implements playback.Settings.
func (s *Session) AutoPlay() bool { return s.autoPlay.Load() }

// SetSpeed changes the playback speed. The new speed applies from the next
// scheduled step.
func (s *Session) SetSpeed(speed int) error {
	if speed < s.opts.MinSpeed || speed > s.opts.MaxSpeed {
		return errors.Errorf("bststeps: speed %d must be between %d and %d",
			errors.Safe(speed), errors.Safe(s.opts.MinSpeed), errors.Safe(s.opts.MaxSpeed))
	}
	s.speed.Store(int64(speed))
	return nil
}

// SetAutoPlay enables or disables auto-play. Disabling it lets a pending step
// run but schedules no further step; enabling it does not resume a paused
// playback (see Play).
func (s *Session) SetAutoPlay(on bool) {
	s.autoPlay.Store(on)
}
