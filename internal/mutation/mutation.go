// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package mutation implements insertion, deletion and traversal on a bst.Tree
// while reporting every intermediate state to a Recorder. The sequence of
// recorded states is deterministic for a given tree and operation, which is
// what makes a recorded history replayable.
//
// The annotations (Searching, Current, Visited) on the live tree are set and
// cleared around each Record call so that the recorded copy shows which node
// the operation is looking at. Callers are expected to clear annotations before
// starting an operation; see bst.Node.ClearAnnotations.
package mutation

import (
	"fmt"

	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/bststeps/internal/invariants"
	"github.com/cockroachdb/redact"
)

// StepKind identifies the kind of moment a recorded step captures.
type StepKind int8

const (
	// RootCreated is recorded when an insert into an empty tree creates the
	// root.
	RootCreated StepKind = iota
	// Compare is recorded for every node visited by an insert.
	Compare
	// InsertedLeft is recorded when an insert attaches a new left leaf.
	InsertedLeft
	// InsertedRight is recorded when an insert attaches a new right leaf.
	InsertedRight
	// Searching is recorded for every node visited by a delete.
	Searching
	// NotFound is recorded when a delete runs off the bottom of the tree.
	NotFound
	// Found is recorded when a delete reaches the node holding the key.
	Found
	// SuccessorSearch is recorded for every step down the left spine of the
	// right subtree of a two-child node being deleted.
	SuccessorSearch
	// ReplacedWithSuccessor is recorded after the successor key has been
	// copied into the node being deleted.
	ReplacedWithSuccessor
	// Visit is recorded when a traversal is about to record a node.
	Visit
	// Recorded is recorded after a traversal appended a node's key.
	Recorded
	// Complete is recorded by the caller once an operation has returned.
	Complete
)

var stepKindNames = [...]string{
	RootCreated:           "root-created",
	Compare:               "compare",
	InsertedLeft:          "inserted-left",
	InsertedRight:         "inserted-right",
	Searching:             "searching",
	NotFound:              "not-found",
	Found:                 "found",
	SuccessorSearch:       "successor-search",
	ReplacedWithSuccessor: "replaced-with-successor",
	Visit:                 "visit",
	Recorded:              "recorded",
	Complete:              "complete",
}

// String implements fmt.Stringer.
func (k StepKind) String() string {
	if k >= 0 && int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return fmt.Sprintf("StepKind(%d)", int8(k))
}

// SafeFormat implements redact.SafeFormatter.
func (k StepKind) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(k.String()))
}

// CompleteStatus is the status of the step recorded after an insert or delete
// returns.
const CompleteStatus = "operation complete"

// Recorder receives the state of the tree at every step of an operation. The
// root and sequence are live: a Recorder that retains them must copy them.
type Recorder interface {
	Record(root *bst.Node, kind StepKind, status string, seq []bst.Key)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(root *bst.Node, kind StepKind, status string, seq []bst.Key)

// Record implements Recorder.
func (f RecorderFunc) Record(root *bst.Node, kind StepKind, status string, seq []bst.Key) {
	f(root, kind, status, seq)
}

// recorder wraps a Recorder with the tree being mutated so that every step
// records the whole tree rather than the subtree being visited.
type recorder struct {
	tree *bst.Tree
	rec  Recorder
	// splicing is set while a successor key has been copied into its target
	// but not yet removed from the right subtree. The key is present twice
	// during that window.
	splicing bool
}

func (r *recorder) stepf(kind StepKind, seq []bst.Key, format string, args ...any) {
	if invariants.Enabled && !r.splicing {
		if err := bst.CheckOrdering(r.tree.Root); err != nil {
			panic(err)
		}
	}
	r.rec.Record(r.tree.Root, kind, fmt.Sprintf(format, args...), seq)
}
