// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bst implements the node structure of an unbalanced binary search
// tree along with the structural helpers (cloning, balanced construction,
// walks) that the mutation engine and the snapshot history rely on.
package bst

import (
	"strconv"

	"github.com/cockroachdb/redact"
)

// Key is the type of the keys stored in the tree.
type Key int64

var _ redact.SafeValue = Key(0)

// SafeValue implements redact.SafeValue.
func (Key) SafeValue() {}

// String implements fmt.Stringer.
func (k Key) String() string {
	return strconv.FormatInt(int64(k), 10)
}

// Node is a node in the tree. Children are exclusively owned by their parent.
//
// The X and Y fields are owned by the presentation layer and are recomputed
// whenever the tree is laid out; the algorithms never read them.
type Node struct {
	Key   Key
	Left  *Node
	Right *Node

	X, Y float64

	// Current, Searching and Visited are transient annotations. They are not
	// mutually exclusive; see State for the display priority.
	Current   bool
	Searching bool
	Visited   bool
}

// NewNode returns a leaf with the given key.
func NewNode(key Key) *Node {
	return &Node{Key: key}
}

// State is the display state of a node, derived from its annotations.
type State int8

const (
	// Plain is a node with no annotation.
	Plain State = iota
	// Visited is a node that was recorded by a traversal.
	Visited
	// Searching is a node being compared against.
	Searching
	// Current is the node an operation is acting upon.
	Current
)

var stateNames = [...]string{
	Plain:     "plain",
	Visited:   "visited",
	Searching: "searching",
	Current:   "current",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// SafeValue implements redact.SafeValue.
func (State) SafeValue() {}

// State returns the annotation that takes priority for display purposes:
// Current over Searching over Visited.
func (n *Node) State() State {
	switch {
	case n.Current:
		return Current
	case n.Searching:
		return Searching
	case n.Visited:
		return Visited
	default:
		return Plain
	}
}

// ClearAnnotations resets the Current, Searching and Visited flags on every
// node reachable from n. It is legal to call on a nil node.
func (n *Node) ClearAnnotations() {
	if n == nil {
		return
	}
	n.Current = false
	n.Searching = false
	n.Visited = false
	n.Left.ClearAnnotations()
	n.Right.ClearAnnotations()
}

// Clone returns a deep copy of the subtree rooted at n. The copy shares no
// nodes with n. Cloning a nil node returns nil.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Left = n.Left.Clone()
	c.Right = n.Right.Clone()
	return &c
}

// Len returns the number of nodes in the subtree rooted at n.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Len() + n.Right.Len()
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Left.Height(), n.Right.Height())
}

// Contains returns true if the subtree rooted at n holds the key.
func (n *Node) Contains(key Key) bool {
	for n != nil {
		switch {
		case key < n.Key:
			n = n.Left
		case key > n.Key:
			n = n.Right
		default:
			return true
		}
	}
	return false
}

// Tree is a handle to a (possibly empty) tree. The mutation engine replaces
// Root when the root itself is created or removed.
type Tree struct {
	Root *Node
}

// Empty returns true if the tree has no nodes.
func (t *Tree) Empty() bool {
	return t.Root == nil
}
