// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bst

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func keys(ks ...int) []Key {
	res := make([]Key, len(ks))
	for i := range ks {
		res[i] = Key(ks[i])
	}
	return res
}

func TestBuildBalanced(t *testing.T) {
	// [4,1,7,3] deduplicated and sorted. The midpoint index of an even range
	// is floored, so the lower middle key becomes the root.
	root := BuildBalanced(keys(1, 3, 4, 7))
	require.Equal(t, Key(3), root.Key)
	require.Equal(t, Key(1), root.Left.Key)
	require.Nil(t, root.Left.Left)
	require.Nil(t, root.Left.Right)
	require.Equal(t, Key(4), root.Right.Key)
	require.Equal(t, Key(7), root.Right.Right.Key)

	root = BuildBalanced(keys(1, 2, 3, 4, 5, 6, 7))
	require.Equal(t, Key(4), root.Key)
	require.Equal(t, keys(4, 2, 1, 3, 6, 5, 7), Keys(root, Preorder))
	require.Equal(t, 3, root.Height())
	require.Equal(t, 7, root.Len())

	require.Nil(t, BuildBalanced(nil))
	single := BuildBalanced(keys(9))
	require.Equal(t, Key(9), single.Key)
	require.Equal(t, 1, single.Height())
}

func TestBuildBalancedRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		n := rng.IntN(100)
		ks := make([]Key, 0, n)
		for range n {
			ks = append(ks, Key(rng.IntN(1000)))
		}
		slices.Sort(ks)
		ks = slices.Compact(ks)
		root := BuildBalanced(ks)
		require.NoError(t, CheckOrdering(root))
		require.Equal(t, ks, Keys(root, Inorder))
		// A median split never produces a height above ceil(log2(n+1)).
		bound := 0
		for (1 << bound) < len(ks)+1 {
			bound++
		}
		require.LessOrEqual(t, root.Height(), bound)
	}
}

func TestWalkOrders(t *testing.T) {
	//       5
	//     /   \
	//    3     8
	//   / \     \
	//  1   4     9
	root := NewNode(5)
	root.Left = NewNode(3)
	root.Left.Left = NewNode(1)
	root.Left.Right = NewNode(4)
	root.Right = NewNode(8)
	root.Right.Right = NewNode(9)

	require.Equal(t, keys(5, 3, 1, 4, 8, 9), Keys(root, Preorder))
	require.Equal(t, keys(1, 3, 4, 5, 8, 9), Keys(root, Inorder))
	require.Equal(t, keys(1, 4, 3, 9, 8, 5), Keys(root, Postorder))
	require.Empty(t, Keys(nil, Inorder))
	require.True(t, root.Contains(4))
	require.False(t, root.Contains(7))
}

func TestParseOrder(t *testing.T) {
	for s, want := range map[string]Order{
		"pre": Preorder, "PreOrder": Preorder,
		"in": Inorder, "inorder": Inorder,
		"post": Postorder, " postorder ": Postorder,
	} {
		got, err := ParseOrder(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseOrder("level")
	require.Error(t, err)
	require.Equal(t, "inorder", redact.StringWithoutMarkers(Inorder))
}

func TestCloneIsolation(t *testing.T) {
	root := BuildBalanced(keys(1, 2, 3))
	root.Left.Searching = true
	root.X, root.Y = 10, 20

	c := root.Clone()
	require.Equal(t, root, c)

	root.Left.Searching = false
	root.Right.Key = 42
	root.Right.Left = NewNode(41)
	root.X = 0

	require.True(t, c.Left.Searching)
	require.Equal(t, Key(3), c.Right.Key)
	require.Nil(t, c.Right.Left)
	require.Equal(t, 10.0, c.X)
	require.Nil(t, (*Node)(nil).Clone())
}

func TestAnnotations(t *testing.T) {
	root := BuildBalanced(keys(1, 2, 3))
	require.Equal(t, Plain, root.State())
	root.Visited = true
	require.Equal(t, Visited, root.State())
	root.Searching = true
	require.Equal(t, Searching, root.State())
	root.Current = true
	require.Equal(t, Current, root.State())
	root.Left.Visited = true
	root.Right.Current = true

	root.ClearAnnotations()
	for _, n := range Walk(root, Preorder) {
		require.Equal(t, Plain, n.State(), "node %d", n.Key)
	}
	(*Node)(nil).ClearAnnotations()
}

func TestCheckOrdering(t *testing.T) {
	root := BuildBalanced(keys(1, 2, 3, 4, 5))
	require.NoError(t, CheckOrdering(root))

	// A grandchild on the wrong side of its grandparent.
	root.Left.Right.Key = 6
	require.Error(t, CheckOrdering(root))

	dup := NewNode(2)
	dup.Right = NewNode(2)
	require.Error(t, CheckOrdering(dup))
	require.NoError(t, CheckOrdering(nil))
}
