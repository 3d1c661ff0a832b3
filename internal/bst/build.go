// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bst

// BuildBalanced builds a height-balanced tree from keys, which must be sorted
// in ascending order and free of duplicates. The caller is responsible for
// that; BuildBalanced does not check it.
//
// The root of every subtree is the middle element of its range; for ranges of
// even length the lower middle is used.
func BuildBalanced(keys []Key) *Node {
	return buildRange(keys, 0, len(keys)-1)
}

func buildRange(keys []Key, lo, hi int) *Node {
	if lo > hi {
		return nil
	}
	mid := (lo + hi) / 2
	n := NewNode(keys[mid])
	n.Left = buildRange(keys, lo, mid-1)
	n.Right = buildRange(keys, mid+1, hi)
	return n
}
