// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package mutation

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

// formatTree renders a tree on one line: a node is its key followed by a
// marker for its display state, and its children in parentheses (with "-" for
// a missing child) if it has any.
func formatTree(n *bst.Node) string {
	if n == nil {
		return "(empty)"
	}
	var b strings.Builder
	var format func(n *bst.Node)
	format = func(n *bst.Node) {
		if n == nil {
			b.WriteString("-")
			return
		}
		fmt.Fprintf(&b, "%d", n.Key)
		switch n.State() {
		case bst.Current:
			b.WriteString("*")
		case bst.Searching:
			b.WriteString("?")
		case bst.Visited:
			b.WriteString("+")
		}
		if n.Left != nil || n.Right != nil {
			b.WriteString("(")
			format(n.Left)
			b.WriteString(",")
			format(n.Right)
			b.WriteString(")")
		}
	}
	format(n)
	return b.String()
}

func formatSeq(seq []bst.Key) string {
	if len(seq) == 0 {
		return "(none)"
	}
	parts := make([]string, len(seq))
	for i := range seq {
		parts[i] = seq[i].String()
	}
	return strings.Join(parts, ",")
}

type step struct {
	root   *bst.Node
	kind   StepKind
	status string
	seq    []bst.Key
}

// collector is a Recorder that keeps a deep copy of every step.
type collector struct {
	steps []step
}

func (c *collector) Record(root *bst.Node, kind StepKind, status string, seq []bst.Key) {
	c.steps = append(c.steps, step{
		root:   root.Clone(),
		kind:   kind,
		status: status,
		seq:    slices.Clone(seq),
	})
}

func (c *collector) String() string {
	var b strings.Builder
	for _, s := range c.steps {
		fmt.Fprintf(&b, "%s: %s | %s", s.kind, s.status, formatTree(s.root))
		if len(s.seq) > 0 {
			fmt.Fprintf(&b, " | seq=%s", formatSeq(s.seq))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func parseKeys(t *testing.T, s string) []bst.Key {
	var keys []bst.Key
	for _, f := range strings.Fields(s) {
		var k int64
		_, err := fmt.Sscan(f, &k)
		require.NoError(t, err)
		keys = append(keys, bst.Key(k))
	}
	return keys
}

func TestMutation(t *testing.T) {
	var tree bst.Tree
	datadriven.RunTest(t, "testdata/mutation", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "reset":
			tree = bst.Tree{}
			return ""

		case "build":
			tree = bst.Tree{Root: bst.BuildBalanced(parseKeys(t, td.Input))}
			return fmt.Sprintf("tree: %s\n", formatTree(tree.Root))

		case "insert", "delete":
			var key int
			td.ScanArgs(t, "key", &key)
			tree.Root.ClearAnnotations()
			var c collector
			var changed bool
			if td.Cmd == "insert" {
				changed = Insert(&tree, bst.Key(key), &c)
			} else {
				changed = Delete(&tree, bst.Key(key), &c)
			}
			return fmt.Sprintf("%sresult: changed=%t tree=%s\n", c.String(), changed, formatTree(tree.Root))

		case "traverse":
			var s string
			td.ScanArgs(t, "order", &s)
			order, err := bst.ParseOrder(s)
			require.NoError(t, err)
			tree.Root.ClearAnnotations()
			var c collector
			seq := Traverse(&tree, order, &c)
			return fmt.Sprintf("%sresult: seq=%s\n", c.String(), formatSeq(seq))

		default:
			td.Fatalf(t, "unknown command %q", td.Cmd)
			return ""
		}
	})
}

// randomOps applies a random mix of inserts and deletes, handing every recorded
// step to check.
func randomOps(t *testing.T, seed uint64, check func(kind StepKind, root *bst.Node, op string)) {
	rng := rand.New(rand.NewPCG(seed, seed))
	var tree bst.Tree
	for range 300 {
		key := bst.Key(rng.IntN(50))
		tree.Root.ClearAnnotations()
		var op string
		rec := RecorderFunc(func(root *bst.Node, kind StepKind, status string, seq []bst.Key) {
			check(kind, root, op)
		})
		if rng.IntN(3) == 0 {
			op = "delete"
			Delete(&tree, key, rec)
		} else {
			op = "insert"
			Insert(&tree, key, rec)
		}
		require.NoError(t, bst.CheckOrdering(tree.Root))
	}
}

func TestOrderingPreserved(t *testing.T) {
	for seed := range uint64(10) {
		randomOps(t, seed, func(kind StepKind, root *bst.Node, op string) {
			if op == "insert" {
				require.NoError(t, bst.CheckOrdering(root), "%s step", kind)
				return
			}
			// While a successor is being spliced in, its key transiently appears
			// twice; the in-order sequence is still non-decreasing.
			require.True(t, slices.IsSorted(bst.Keys(root, bst.Inorder)), "%s step", kind)
		})
	}
}

func TestDeleteMatchesInorder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for range 100 {
		var tree bst.Tree
		for range 30 {
			Insert(&tree, bst.Key(rng.IntN(100)), RecorderFunc(func(*bst.Node, StepKind, string, []bst.Key) {}))
		}
		before := bst.Keys(tree.Root, bst.Inorder)
		victim := before[rng.IntN(len(before))]
		var notFound int
		require.True(t, Delete(&tree, victim, RecorderFunc(func(_ *bst.Node, kind StepKind, _ string, _ []bst.Key) {
			if kind == NotFound {
				notFound++
			}
		})))
		require.Zero(t, notFound)
		want := slices.DeleteFunc(slices.Clone(before), func(k bst.Key) bool { return k == victim })
		require.Equal(t, want, bst.Keys(tree.Root, bst.Inorder))
	}
}

func TestDuplicateInsert(t *testing.T) {
	tree := bst.Tree{Root: bst.BuildBalanced([]bst.Key{1, 2, 3, 4, 5})}
	before := bst.Keys(tree.Root, bst.Inorder)
	var c collector
	require.False(t, Insert(&tree, 4, &c))
	require.Equal(t, before, bst.Keys(tree.Root, bst.Inorder))
	for _, s := range c.steps {
		require.Equal(t, Compare, s.kind)
	}
	// The live tree carries no leftover annotations.
	for _, n := range bst.Walk(tree.Root, bst.Preorder) {
		require.Equal(t, bst.Plain, n.State())
	}
}

func TestTraversalMatchesWalk(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	var tree bst.Tree
	for range 40 {
		Insert(&tree, bst.Key(rng.IntN(200)), RecorderFunc(func(*bst.Node, StepKind, string, []bst.Key) {}))
	}
	for _, order := range []bst.Order{bst.Preorder, bst.Inorder, bst.Postorder} {
		tree.Root.ClearAnnotations()
		var c collector
		seq := Traverse(&tree, order, &c)
		require.Equal(t, bst.Keys(tree.Root, order), seq)
		require.Len(t, c.steps, 2*tree.Root.Len())
		require.Equal(t, seq, c.steps[len(c.steps)-1].seq)
		for i, s := range c.steps {
			if i%2 == 0 {
				require.Equal(t, Visit, s.kind)
				require.Len(t, s.seq, i/2)
			} else {
				require.Equal(t, Recorded, s.kind)
				require.Len(t, s.seq, i/2+1)
			}
		}
	}
}

func TestStepKindString(t *testing.T) {
	require.Equal(t, "replaced-with-successor", ReplacedWithSuccessor.String())
	require.Equal(t, "StepKind(42)", StepKind(42).String())
}
