// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/cockroachdb/bststeps"
	"github.com/cockroachdb/bststeps/internal/ascii"
	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/bststeps/internal/render"
	"github.com/olekukonko/tablewriter"
)

// printer writes frames and tables to the output. Auto-play renders frames
// from timer goroutines, so all output goes through its mutex.
type printer struct {
	mu   sync.Mutex
	out  io.Writer
	opts render.Options
}

func newPrinter(out io.Writer, c *config, canvasWidth float64) *printer {
	p := &printer{
		out: out,
		opts: render.Options{
			Columns:     c.columns,
			CanvasWidth: canvasWidth,
			Indent:      "  ",
		},
	}
	if c.color {
		p.opts.Colorize = render.Colorizer()
	}
	return p
}

func (p *printer) printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// frame draws a snapshot, headed by its playback position.
func (p *printer) frame(snap bststeps.Snapshot, pos bststeps.Position) {
	p.printf("step %d/%d (%s) %s\n%s\n\n", pos.Cursor+1, pos.Len, pos.State, snap.Kind,
		render.Frame(snap, p.opts))
}

// tree draws a tree without any status.
func (p *printer) tree(root *bst.Node) {
	var b ascii.Board
	render.Tree(&b, root, p.opts)
	if root == nil {
		b.NewLine().WriteString("(empty tree)")
	}
	p.printf("%s\n\n", b.Render(p.opts.Indent, p.opts.Colorize))
}

// history prints one row per snapshot, marking the row under the cursor.
func (p *printer) history(hist []bststeps.Snapshot, pos bststeps.Position) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(hist) == 0 {
		fmt.Fprintln(p.out, "no recorded steps")
		return
	}
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"", "#", "STEP", "STATUS", "SEQUENCE"})
	table.SetAutoWrapText(false)
	for i, snap := range hist {
		cursor := ""
		if i == pos.Cursor {
			cursor = ">"
		}
		seq := ""
		if len(snap.Sequence) > 0 {
			seq = render.Sequence(snap.Sequence)
		}
		table.Append([]string{cursor, strconv.Itoa(i + 1), snap.Kind.String(), snap.Status, seq})
	}
	table.Render()
}
