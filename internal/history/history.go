// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package history stores the snapshots recorded while an operation runs.
package history

import (
	"encoding/binary"
	"iter"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/bststeps/internal/invariants"
	"github.com/cockroachdb/bststeps/internal/mutation"
	"github.com/cockroachdb/redact"
)

// Snapshot is the recorded state of the tree at one step of an operation. A
// Snapshot owns its tree and sequence: nothing else references them.
type Snapshot struct {
	// Tree is a deep copy of the tree at the time of the step. It is nil for an
	// empty tree.
	Tree *bst.Node
	// Kind identifies the step.
	Kind mutation.StepKind
	// Status is the human-readable description of the step.
	Status string
	// Sequence holds the keys a traversal has recorded so far.
	Sequence []bst.Key
}

// SafeFormat implements redact.SafeFormatter.
func (s Snapshot) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s %q nodes=%d", s.Kind, s.Status, redact.Safe(s.Tree.Len()))
	if len(s.Sequence) > 0 {
		w.Printf(" seq=%v", s.Sequence)
	}
}

// String implements fmt.Stringer.
func (s Snapshot) String() string {
	return redact.StringWithoutMarkers(s)
}

// Store is an append-only list of snapshots belonging to one operation.
//
// Store implements mutation.Recorder. The zero value is ready to use.
type Store struct {
	// Layout, if set, is applied to the live tree before each copy is taken so
	// that the stored positions reflect the tree shape at that step.
	Layout func(root *bst.Node)

	snapshots []Snapshot
}

var _ mutation.Recorder = (*Store)(nil)

// Record implements mutation.Recorder.
func (s *Store) Record(root *bst.Node, kind mutation.StepKind, status string, seq []bst.Key) {
	s.Append(root, kind, status, seq)
}

// Append stores a copy of the given tree and sequence. Later changes to root or
// seq do not affect the stored snapshot.
func (s *Store) Append(root *bst.Node, kind mutation.StepKind, status string, seq []bst.Key) {
	if s.Layout != nil && root != nil {
		s.Layout(root)
	}
	snap := Snapshot{
		Tree:   root.Clone(),
		Kind:   kind,
		Status: status,
	}
	if len(seq) > 0 {
		snap.Sequence = slices.Clone(seq)
	}
	s.snapshots = append(s.snapshots, snap)
}

// Clear removes all snapshots. Slices previously returned by Snapshots remain
// valid.
func (s *Store) Clear() {
	s.snapshots = nil
}

// Snapshots returns the stored snapshots. The slice must not be modified; it is
// not affected by later calls to Append or Clear.
func (s *Store) Snapshots() []Snapshot {
	return s.snapshots[:len(s.snapshots):len(s.snapshots)]
}

// Len returns the number of snapshots.
func (s *Store) Len() int {
	return len(s.snapshots)
}

// At returns the i-th snapshot. The returned snapshot must not be modified.
func (s *Store) At(i int) Snapshot {
	invariants.CheckBounds(i, len(s.snapshots))
	return s.snapshots[i]
}

// Last returns the most recent snapshot, or false if the store is empty.
func (s *Store) Last() (Snapshot, bool) {
	if len(s.snapshots) == 0 {
		return Snapshot{}, false
	}
	return s.snapshots[len(s.snapshots)-1], true
}

// All returns an iterator over the snapshots and their indexes.
func (s *Store) All() iter.Seq2[int, Snapshot] {
	return func(yield func(int, Snapshot) bool) {
		for i := range s.snapshots {
			if !yield(i, s.snapshots[i]) {
				return
			}
		}
	}
}

// Fingerprint returns a hash of the contents of every snapshot, including
// annotations and positions. Recording the same operation on the same tree
// twice yields the same fingerprint.
func (s *Store) Fingerprint() uint64 {
	h := xxhash.New()
	var buf []byte
	for i := range s.snapshots {
		buf = s.snapshots[i].appendEncoding(buf[:0])
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func (s *Snapshot) appendEncoding(buf []byte) []byte {
	buf = append(buf, byte(s.Kind))
	buf = binary.AppendUvarint(buf, uint64(len(s.Status)))
	buf = append(buf, s.Status...)
	buf = binary.AppendUvarint(buf, uint64(len(s.Sequence)))
	for _, k := range s.Sequence {
		buf = binary.AppendVarint(buf, int64(k))
	}
	return appendNode(buf, s.Tree)
}

// appendNode encodes the subtree in preorder. Every node starts with a byte
// holding a presence bit and its annotations; absent children encode as 0.
func appendNode(buf []byte, n *bst.Node) []byte {
	if n == nil {
		return append(buf, 0)
	}
	var flags byte = 1
	if n.Current {
		flags |= 1 << 1
	}
	if n.Searching {
		flags |= 1 << 2
	}
	if n.Visited {
		flags |= 1 << 3
	}
	buf = append(buf, flags)
	buf = binary.AppendVarint(buf, int64(n.Key))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(n.X))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(n.Y))
	buf = appendNode(buf, n.Left)
	return appendNode(buf, n.Right)
}
