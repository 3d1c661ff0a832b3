// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package ascii implements a grid of characters for rendering text diagrams.
// Every cell carries a Style so that a diagram can be colorized when it is
// rendered.
package ascii

import (
	"fmt"
	"strings"
)

// Style is an opaque tag attached to the cells of a Board. Its meaning is
// defined by the code that writes and renders the board; the zero Style is
// unstyled.
type Style uint8

type cell struct {
	ch    rune
	style Style
}

// Board is a simple ASCII-based board for rendering text diagrams. It grows as
// needed when written to.
type Board struct {
	rows  [][]cell
	width int
}

// Make returns a new Board with the given initial width and height.
func Make(width, height int) Board {
	b := Board{width: width}
	b.ensureRows(height)
	return b
}

// At returns a position at the given coordinates. Negative coordinates are
// clamped to zero.
func (b *Board) At(r, c int) Cursor {
	return Cursor{b: b, r: max(r, 0), c: max(c, 0)}
}

// NewLine appends a new line to the board and returns a position at the
// beginning of the line.
func (b *Board) NewLine() Cursor {
	b.ensureRows(len(b.rows) + 1)
	return b.At(len(b.rows)-1, 0)
}

// Lines returns the number of rows on the board.
func (b *Board) Lines() int {
	return len(b.rows)
}

// Width returns the number of columns on the board.
func (b *Board) Width() int {
	return b.width
}

// Reset resets the board to the given width and clears the contents.
func (b *Board) Reset(w int) {
	b.rows = b.rows[:0]
	b.width = w
}

// String returns the Board as a string, ignoring styles.
func (b *Board) String() string {
	return b.Render("", nil)
}

// Render returns the Board as a string, with every line prefixed by indent.
// Trailing blanks are trimmed. If style is non-nil, every run of consecutive
// cells sharing a non-zero Style is passed through it.
func (b *Board) Render(indent string, style func(s Style, text string) string) string {
	var buf strings.Builder
	for r, row := range b.rows {
		if r > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(indent)
		end := len(row)
		for end > 0 && row[end-1].ch == ' ' {
			end--
		}
		for i := 0; i < end; {
			j := i + 1
			for j < end && row[j].style == row[i].style {
				j++
			}
			var run strings.Builder
			for _, c := range row[i:j] {
				run.WriteRune(c.ch)
			}
			if style != nil && row[i].style != 0 {
				buf.WriteString(style(row[i].style, run.String()))
			} else {
				buf.WriteString(run.String())
			}
			i = j
		}
	}
	return buf.String()
}

func (b *Board) ensureRows(n int) {
	for len(b.rows) < n {
		b.rows = append(b.rows, blankRow(b.width))
	}
}

func (b *Board) ensureWidth(w int) {
	if w <= b.width {
		return
	}
	for i, row := range b.rows {
		b.rows[i] = append(row, blankRow(w-b.width)...)
	}
	b.width = w
}

func blankRow(n int) []cell {
	row := make([]cell, n)
	for i := range row {
		row[i] = cell{ch: ' '}
	}
	return row
}

func (b *Board) set(r, c int, ch rune, style Style) {
	b.ensureRows(r + 1)
	b.ensureWidth(c + 1)
	b.rows[r][c] = cell{ch: ch, style: style}
}

// Cursor is a position on a Board, together with the Style used for the text
// written through it.
type Cursor struct {
	b     *Board
	r, c  int
	style Style
	// carriageReturnCol is the column to which newlines will return. It is set
	// by SetCarriageReturnPosition.
	carriageReturnCol int
}

// Offset returns a new cursor with the given offset from the current cursor.
func (c Cursor) Offset(dr, dc int) Cursor {
	c.r = max(c.r+dr, 0)
	c.c = max(c.c+dc, 0)
	return c
}

// Down returns a new cursor with the given row offset from the current cursor.
func (c Cursor) Down(numRows int) Cursor {
	return c.Offset(numRows, 0)
}

// Right returns a new cursor with the given column offset from the current
// cursor.
func (c Cursor) Right(numCols int) Cursor {
	return c.Offset(0, numCols)
}

// WithStyle returns a copy of the cursor that writes with the given style.
func (c Cursor) WithStyle(s Style) Cursor {
	c.style = s
	return c
}

// SetCarriageReturnPosition returns a copy of the cursor, but with a carriage
// return position set so that newlines written to the resulting Cursor will
// return to the current column.
func (c Cursor) SetCarriageReturnPosition() Cursor {
	c.carriageReturnCol = c.c
	return c
}

// Row returns the row of the current position.
func (c Cursor) Row() int {
	return c.r
}

// Column returns the column of the current position.
func (c Cursor) Column() int {
	return c.c
}

// Printf writes the formatted string to cursor, returning a cursor where the
// written text ends.
func (c Cursor) Printf(format string, args ...interface{}) Cursor {
	return c.WriteString(fmt.Sprintf(format, args...))
}

// WriteString writes the provided string starting at the cursor, returning a
// cursor where the written text ends. Newlines in the string break to the next
// row, with the column reset to the cursor's carriage return column.
func (c Cursor) WriteString(s string) Cursor {
	for _, ch := range s {
		if ch == '\n' {
			c = c.NewlineReturn()
			continue
		}
		c.b.set(c.r, c.c, ch, c.style)
		c.c++
	}
	return c
}

// Repeat writes the given character n times starting at the cursor, returning
// a cursor where the written characters end.
func (c Cursor) Repeat(n int, ch rune) Cursor {
	for range n {
		c.b.set(c.r, c.c, ch, c.style)
		c.c++
	}
	return c
}

// NewlineReturn returns a cursor at the next line, with the column set to the
// cursor's carriage return column.
func (c Cursor) NewlineReturn() Cursor {
	c.r++
	c.c = c.carriageReturnCol
	return c
}
