// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package mutation

import "github.com/cockroachdb/bststeps/internal/bst"

// Delete removes key from the tree. A node with at most one child is replaced
// by that child; a node with two children takes the key of its in-order
// successor, which is then deleted from the right subtree.
//
// A step is recorded for every node visited on the way down, for the target
// once found, for every step of the successor search and for the key
// replacement. Deleting an absent key records a single NotFound step at the
// point where the search falls off the tree.
//
// Delete returns true if a key was removed.
func Delete(t *bst.Tree, key bst.Key, rec Recorder) bool {
	r := &recorder{tree: t, rec: rec}
	var deleted bool
	t.Root = r.delete(t.Root, key, &deleted)
	return deleted
}

func (r *recorder) delete(n *bst.Node, key bst.Key, deleted *bool) *bst.Node {
	if n == nil {
		r.stepf(NotFound, nil, "key %d not found", key)
		return nil
	}

	n.Searching = true
	r.stepf(Searching, nil, "searching for %d, currently at %d", key, n.Key)
	n.Searching = false

	switch {
	case key < n.Key:
		n.Left = r.delete(n.Left, key, deleted)

	case key > n.Key:
		n.Right = r.delete(n.Right, key, deleted)

	default:
		n.Current = true
		r.stepf(Found, nil, "found target %d", key)
		if n.Left == nil || n.Right == nil {
			// The node is discarded; its only child (if any) takes its place.
			n.Current = false
			*deleted = true
			if n.Left != nil {
				return n.Left
			}
			return n.Right
		}

		succ := n.Right
		for succ.Left != nil {
			succ.Searching = true
			r.stepf(SuccessorSearch, nil, "searching for successor...")
			succ.Searching = false
			succ = succ.Left
		}

		n.Key = succ.Key
		r.splicing = true
		r.stepf(ReplacedWithSuccessor, nil, "replaced target with successor %d", succ.Key)
		n.Current = false
		n.Right = r.delete(n.Right, succ.Key, deleted)
		r.splicing = false
	}
	n.Searching = false
	return n
}
