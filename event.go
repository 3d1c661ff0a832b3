// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bststeps

import (
	"time"

	"github.com/cockroachdb/redact"
)

// OpKind identifies a Session operation.
type OpKind int8

const (
	// OpInsert inserts a key.
	OpInsert OpKind = iota
	// OpDelete deletes a key.
	OpDelete
	// OpTraverse performs a traversal.
	OpTraverse
	// OpLoad replaces the tree with a balanced tree built from a list of keys.
	OpLoad
	numOpKinds
)

var opKindNames = [...]string{
	OpInsert:   "insert",
	OpDelete:   "delete",
	OpTraverse: "traverse",
	OpLoad:     "load",
}

// String implements fmt.Stringer.
func (k OpKind) String() string {
	if k >= 0 && k < numOpKinds {
		return opKindNames[k]
	}
	return "unknown"
}

// SafeValue implements redact.SafeValue.
func (OpKind) SafeValue() {}

// OperationInfo contains the info for an operation event.
type OperationInfo struct {
	Kind OpKind
	// Key is set for OpInsert and OpDelete.
	Key Key
	// Order is set for OpTraverse.
	Order Order
	// Keys is the number of keys given to OpLoad.
	Keys int
	// Done is false for the OperationBegin event.
	Done bool
	// Changed is true if an insert added a key or a delete removed one.
	Changed bool
	// Snapshots is the number of snapshots the operation recorded.
	Snapshots int
	// TreeSize is the number of keys in the tree once the operation finished.
	TreeSize int
	Duration time.Duration
}

func (i OperationInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i OperationInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	switch i.Kind {
	case OpInsert, OpDelete:
		w.Printf("%s %d", i.Kind, i.Key)
	case OpTraverse:
		w.Printf("%s %s", i.Kind, i.Order)
	case OpLoad:
		w.Printf("%s %d keys", i.Kind, redact.Safe(i.Keys))
	default:
		w.Printf("%s", i.Kind)
	}
	if !i.Done {
		w.SafeString(": started")
		return
	}
	if i.Kind == OpInsert || i.Kind == OpDelete {
		if i.Changed {
			w.SafeString(": changed")
		} else {
			w.SafeString(": unchanged")
		}
	}
	w.Printf("; %d snapshots, %d nodes, in %.1fms", redact.Safe(i.Snapshots),
		redact.Safe(i.TreeSize), redact.Safe(i.Duration.Seconds()*1000))
}

// PlaybackInfo contains the info for a playback step event.
type PlaybackInfo struct {
	Position
	Kind   StepKind
	Status string
}

func (i PlaybackInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i PlaybackInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("step %d/%d (%s) %s: %s", redact.Safe(i.Cursor+1), redact.Safe(i.Len),
		i.State, i.Kind, i.Status)
}

// EventListener contains a set of functions that will be invoked when various
// significant Session events occur. Note that the functions should not run for
// an excessive amount of time as they are invoked synchronously by the Session
// and may block continued Session work. PlaybackStep runs with the playback
// lock held and must not call back into the Session.
type EventListener struct {
	// OperationBegin is invoked before an operation starts recording.
	OperationBegin func(OperationInfo)

	// OperationEnd is invoked once an operation has recorded its snapshots,
	// before playback starts.
	OperationEnd func(OperationInfo)

	// PlaybackStep is invoked every time playback displays a snapshot.
	PlaybackStep func(PlaybackInfo)
}

// EnsureDefaults ensures all handlers are non-nil so that we don't have to
// check for nil-ness before invoking.
func (l *EventListener) EnsureDefaults() {
	if l.OperationBegin == nil {
		l.OperationBegin = func(info OperationInfo) {}
	}
	if l.OperationEnd == nil {
		l.OperationEnd = func(info OperationInfo) {}
	}
	if l.PlaybackStep == nil {
		l.PlaybackStep = func(info PlaybackInfo) {}
	}
}

// MakeLoggingEventListener creates an EventListener that logs all events to the
// specified logger.
func MakeLoggingEventListener(logger Logger) EventListener {
	if logger == nil {
		logger = DefaultLogger{}
	}
	return EventListener{
		OperationBegin: func(info OperationInfo) {
			logger.Infof("%s", info)
		},
		OperationEnd: func(info OperationInfo) {
			logger.Infof("%s", info)
		},
		PlaybackStep: func(info PlaybackInfo) {
			logger.Infof("%s", info)
		},
	}
}

// TeeEventListener wraps two EventListeners, forwarding all events to both.
func TeeEventListener(a, b EventListener) EventListener {
	a.EnsureDefaults()
	b.EnsureDefaults()
	return EventListener{
		OperationBegin: func(info OperationInfo) {
			a.OperationBegin(info)
			b.OperationBegin(info)
		},
		OperationEnd: func(info OperationInfo) {
			a.OperationEnd(info)
			b.OperationEnd(info)
		},
		PlaybackStep: func(info PlaybackInfo) {
			a.PlaybackStep(info)
			b.PlaybackStep(info)
		},
	}
}
