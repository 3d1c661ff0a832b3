// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package mutation

import "github.com/cockroachdb/bststeps/internal/bst"

// Insert adds key to the tree, recording a step for every node compared
// against and one for the attachment of the new leaf. Inserting a key that is
// already present leaves the tree unchanged; the comparison steps leading to
// the existing node are still recorded.
//
// Insert returns true if a node was added.
func Insert(t *bst.Tree, key bst.Key, rec Recorder) bool {
	r := &recorder{tree: t, rec: rec}
	if t.Root == nil {
		t.Root = bst.NewNode(key)
		r.stepf(RootCreated, nil, "root created: %d", key)
		return true
	}
	return r.insert(t.Root, key)
}

func (r *recorder) insert(n *bst.Node, key bst.Key) bool {
	n.Searching = true
	r.stepf(Compare, nil, "comparing %d with %d", key, n.Key)
	defer func() { n.Searching = false }()

	switch {
	case key < n.Key:
		n.Searching = false
		if n.Left == nil {
			n.Left = bst.NewNode(key)
			r.stepf(InsertedLeft, nil, "inserted %d to the left", key)
			return true
		}
		return r.insert(n.Left, key)

	case key > n.Key:
		n.Searching = false
		if n.Right == nil {
			n.Right = bst.NewNode(key)
			r.stepf(InsertedRight, nil, "inserted %d to the right", key)
			return true
		}
		return r.insert(n.Right, key)

	default:
		// Duplicate keys are ignored.
		return false
	}
}
