// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ascii

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/bststeps/internal/strparse"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestBoardDatadriven(t *testing.T) {
	var board Board
	datadriven.RunTest(t, "testdata/board", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "make":
			var w, h int
			td.ScanArgs(t, "w", &w)
			td.ScanArgs(t, "h", &h)
			board = Make(w, h)
			return fmt.Sprintf("%dx%d", board.Width(), board.Lines())
		case "write":
			for _, line := range strings.Split(td.Input, "\n") {
				p := strparse.MakeParser("", line)
				r := p.Int()
				c := p.Int()
				board.At(r, c).WriteString(strings.Join(p.Remaining(), " "))
			}
			return board.String()
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func TestBoard(t *testing.T) {
	board := Make(10, 2)
	board.At(0, 0).Printf("Hello\nworld!")
	require.Equal(t, `Hello
world!`, board.String())

	board.Reset(10)
	cur := board.At(1, 5).SetCarriageReturnPosition().Printf("a\nb\nc\n")
	require.Equal(t, 4, cur.Row())
	require.Equal(t, 5, cur.Column())
	require.Equal(t, `
     a
     b
     c`, board.String())

	board.Reset(0)
	board.NewLine().Repeat(3, '-')
	board.NewLine().Right(1).Offset(0, -5).WriteString("x")
	require.Equal(t, "---\nx", board.String())
}

func TestBoardStyles(t *testing.T) {
	const red, green Style = 1, 2
	board := Make(0, 0)
	cur := board.At(0, 0).WriteString("a ")
	cur = cur.WithStyle(red).WriteString("[5]")
	cur.WithStyle(green).WriteString("{6}  ")
	board.At(1, 2).WithStyle(red).WriteString("x")

	require.Equal(t, "a [5]{6}\n  x", board.String())
	styled := board.Render("> ", func(s Style, text string) string {
		return fmt.Sprintf("<%d:%s>", s, text)
	})
	require.Equal(t, "> a <1:[5]><2:{6}>\n>   <1:x>", styled)
}
