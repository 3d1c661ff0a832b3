// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package layout assigns display coordinates to the nodes of a tree.
package layout

import "github.com/cockroachdb/bststeps/internal/bst"

const (
	// LevelHeight is the vertical distance between consecutive levels.
	LevelHeight = 70
	// TopMargin is the vertical offset of level zero.
	TopMargin = 60
)

// Assign sets X and Y on every node of the tree. Each node is centered in the
// horizontal interval it was given, and splits that interval in half for its
// children; the root gets [0, width] and sits on level 1.
func Assign(root *bst.Node, width float64) {
	assign(root, 1, 0, width)
}

func assign(n *bst.Node, level int, l, r float64) {
	if n == nil {
		return
	}
	n.X = (l + r) / 2
	n.Y = float64(level*LevelHeight + TopMargin)
	assign(n.Left, level+1, l, n.X)
	assign(n.Right, level+1, n.X, r)
}

// Func returns a function applying Assign with the given width, for use as a
// history.Store layout hook.
func Func(width float64) func(*bst.Node) {
	return func(root *bst.Node) { Assign(root, width) }
}

// Level returns the level of a node from its Y coordinate, as assigned by
// Assign. The root is on level 1.
func Level(n *bst.Node) int {
	return int((n.Y - TopMargin) / LevelHeight)
}
