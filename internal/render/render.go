// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package render draws tree snapshots as text.
//
// A node is drawn as its key, decorated according to its state:
//
//	[K]  current
//	(K)  searching
//	{K}  visited
//	K    plain
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/bststeps/internal/ascii"
	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/bststeps/internal/history"
	"github.com/fatih/color"
)

// Board styles used for node labels.
const (
	StylePlain ascii.Style = iota
	StyleCurrent
	StyleSearching
	StyleVisited
)

// Options configures Frame.
type Options struct {
	// Columns, if positive, places every node at its laid out X coordinate,
	// scaled from CanvasWidth to that many columns. Otherwise every node gets
	// its own column slot in key order, which never overlaps.
	Columns int
	// CanvasWidth is the width the X coordinates were assigned in. It is only
	// used when Columns is set.
	CanvasWidth float64
	// Colorize, if set, is applied to every styled run of text; see
	// Colorizer.
	Colorize func(s ascii.Style, text string) string
	// Indent prefixes every line.
	Indent string
}

// Label returns the text used to draw a node.
func Label(n *bst.Node) string {
	switch n.State() {
	case bst.Current:
		return fmt.Sprintf("[%d]", n.Key)
	case bst.Searching:
		return fmt.Sprintf("(%d)", n.Key)
	case bst.Visited:
		return fmt.Sprintf("{%d}", n.Key)
	default:
		return n.Key.String()
	}
}

func style(n *bst.Node) ascii.Style {
	switch n.State() {
	case bst.Current:
		return StyleCurrent
	case bst.Searching:
		return StyleSearching
	case bst.Visited:
		return StyleVisited
	default:
		return StylePlain
	}
}

// Sequence formats a traversal sequence, e.g. "3 -> 5 -> 8", or "(none)" if
// it is empty.
func Sequence(seq []bst.Key) string {
	if len(seq) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for i, k := range seq {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(k.String())
	}
	return b.String()
}

// Frame draws a snapshot: the tree, followed by a status line and a sequence
// line.
func Frame(snap history.Snapshot, opts Options) string {
	var board ascii.Board
	Tree(&board, snap.Tree, opts)
	cur := board.NewLine()
	if snap.Tree == nil {
		cur = cur.WriteString("(empty tree)").NewlineReturn()
	}
	cur = cur.Printf("status: %s", snap.Status).NewlineReturn()
	cur.Printf("sequence: %s", Sequence(snap.Sequence))
	return board.Render(opts.Indent, opts.Colorize)
}

// Tree draws the tree on the board, starting at the board's first row. Every
// level uses two rows: one for the nodes and one for the edges to their
// children.
func Tree(board *ascii.Board, root *bst.Node, opts Options) {
	if root == nil {
		return
	}
	var centers map[*bst.Node]int
	if opts.Columns > 0 {
		centers = scaledCenters(root, opts)
	} else {
		centers = slotCenters(root)
	}
	base := board.Lines()
	var draw func(n *bst.Node, depth int)
	draw = func(n *bst.Node, depth int) {
		r := base + 2*depth
		pc := centers[n]
		label := Label(n)
		start := pc - (len(label)-1)/2
		if n.Left != nil {
			cc := centers[n.Left]
			board.At(r+1, cc+1).WriteString("/")
			if cc+2 < start {
				board.At(r, cc+2).Repeat(start-cc-2, '_')
			}
			draw(n.Left, depth+1)
		}
		if n.Right != nil {
			cc := centers[n.Right]
			board.At(r+1, cc-1).WriteString(`\`)
			if end := start + len(label); end < cc-1 {
				board.At(r, end).Repeat(cc-1-end, '_')
			}
			draw(n.Right, depth+1)
		}
		board.At(r, start).WithStyle(style(n)).WriteString(label)
	}
	draw(root, 0)
}

// slotCenters gives every node its own slot, wide enough for the widest label,
// in key order.
func slotCenters(root *bst.Node) map[*bst.Node]int {
	nodes := bst.Walk(root, bst.Inorder)
	width := 0
	for _, n := range nodes {
		width = max(width, len(Label(n)))
	}
	width++
	centers := make(map[*bst.Node]int, len(nodes))
	for i, n := range nodes {
		centers[n] = i*width + width/2
	}
	return centers
}

func scaledCenters(root *bst.Node, opts Options) map[*bst.Node]int {
	canvas := opts.CanvasWidth
	if canvas <= 0 {
		canvas = 1
	}
	nodes := bst.Walk(root, bst.Preorder)
	centers := make(map[*bst.Node]int, len(nodes))
	for _, n := range nodes {
		centers[n] = int(math.Round(n.X / canvas * float64(opts.Columns-1)))
	}
	return centers
}

// Colorizer returns a function for Options.Colorize that draws current nodes
// in red, searching nodes in yellow and visited nodes in green. The escape
// sequences are emitted even if standard output is not a terminal.
func Colorizer() func(s ascii.Style, text string) string {
	colors := map[ascii.Style]*color.Color{
		StyleCurrent:   color.New(color.FgRed, color.Bold),
		StyleSearching: color.New(color.FgYellow, color.Bold),
		StyleVisited:   color.New(color.FgGreen),
	}
	for _, c := range colors {
		c.EnableColor()
	}
	return func(s ascii.Style, text string) string {
		if c, ok := colors[s]; ok {
			return c.Sprint(text)
		}
		return text
	}
}

// Outline returns an indented description of the tree, one node per line, with
// children prefixed by L: or R:. The empty tree is "(empty)".
func Outline(root *bst.Node) string {
	if root == nil {
		return "(empty)"
	}
	var b strings.Builder
	var walk func(n *bst.Node, depth int, prefix string)
	walk = func(n *bst.Node, depth int, prefix string) {
		if n == nil {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(prefix)
		b.WriteString(Label(n))
		walk(n.Left, depth+1, "L: ")
		walk(n.Right, depth+1, "R: ")
	}
	walk(root, 0, "")
	return b.String()
}
