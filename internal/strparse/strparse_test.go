// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package strparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParserOffsets(t *testing.T) {
	tests := []struct {
		sep   string
		input string
		want  []token
	}{
		{sep: ",", input: "load   1,  2 ,3",
			want: []token{
				{tok: "load", offset: 0},
				{tok: "1", offset: 7},
				{tok: ",", offset: 8},
				{tok: "2", offset: 11},
				{tok: ",", offset: 13},
				{tok: "3", offset: 14},
			},
		},
		{sep: "", input: "  insert 5  ",
			want: []token{
				{tok: "insert", offset: 2},
				{tok: "5", offset: 9},
			},
		},
		{sep: ",", input: "", want: nil},
	}
	for _, test := range tests {
		p := MakeParser(test.sep, test.input)
		require.Equal(t, test.want, p.tokens)
	}
}

func TestParser(t *testing.T) {
	parse := func(input string, fn func(p *Parser)) (err error) {
		defer Recover(&err)
		p := MakeParser(",", input)
		fn(&p)
		return nil
	}

	require.NoError(t, parse("speed 700", func(p *Parser) {
		p.Expect("speed")
		require.Equal(t, 7, p.Offset())
		require.Equal(t, 700, p.Int())
		require.True(t, p.Done())
		p.ExpectDone()
		require.Equal(t, "", p.Next())
	}))
	require.NoError(t, parse("autoplay OFF on true", func(p *Parser) {
		p.Next()
		require.False(t, p.Bool())
		require.True(t, p.Bool())
		require.Equal(t, []string{"true"}, p.Remaining())
		require.True(t, p.Done())
	}))

	err := parse("speed fast", func(p *Parser) {
		p.Expect("speed")
		p.Int()
	})
	require.ErrorContains(t, err, `error parsing "speed fast" at token "fast"`)

	err = parse("next 1", func(p *Parser) {
		p.Expect("next")
		p.ExpectDone()
	})
	require.ErrorContains(t, err, "unexpected trailing input")

	require.Panics(t, func() {
		_ = parse("x", func(p *Parser) { panic("not an error") })
	})
}
