// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package mutation

import "github.com/cockroachdb/bststeps/internal/bst"

// Traverse walks the tree in the given order and returns the visited keys.
//
// Two steps are recorded per node: a Visit step with the node marked current
// and the sequence recorded so far, then a Recorded step with the node marked
// visited and its key appended to the sequence. An empty tree records nothing.
func Traverse(t *bst.Tree, order bst.Order, rec Recorder) []bst.Key {
	r := &recorder{tree: t, rec: rec}
	nodes := bst.Walk(t.Root, order)
	seq := make([]bst.Key, 0, len(nodes))
	for _, n := range nodes {
		n.Current = true
		r.stepf(Visit, seq, "%s: visiting %d", order, n.Key)
		n.Current = false
		n.Visited = true
		seq = append(seq, n.Key)
		r.stepf(Recorded, seq, "%d recorded", n.Key)
	}
	return seq
}
