// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package command

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "parse":
			var buf strings.Builder
			for _, line := range strings.Split(strings.TrimSpace(td.Input), "\n") {
				c, err := Parse(line)
				if err != nil {
					fmt.Fprintf(&buf, "%s -> error: %v (invalid key: %t)\n", line, err, errors.Is(err, ErrInvalidKey))
					continue
				}
				fmt.Fprintf(&buf, "%s -> %s\n", line, c)
			}
			return buf.String()
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func TestParseFields(t *testing.T) {
	c, err := Parse("load 4, 1 7,3")
	require.NoError(t, err)
	require.Equal(t, Command{Kind: Load, Keys: []bst.Key{4, 1, 7, 3}}, c)

	c, err = Parse("traverse post")
	require.NoError(t, err)
	require.Equal(t, Command{Kind: Traverse, Order: bst.Postorder}, c)

	c, err = Parse("autoplay on")
	require.NoError(t, err)
	require.True(t, c.On)

	_, err = Parse("insert five")
	require.True(t, errors.Is(err, ErrInvalidKey))
	_, err = Parse("speed five")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrInvalidKey))
}

func TestRoundTrip(t *testing.T) {
	for _, line := range []string{
		"insert -3", "delete 10", "traverse inorder", "load 1 2 3", "load",
		"next", "prev", "restart", "play", "pause", "speed 900",
		"autoplay off", "show", "history", "metrics", "help",
	} {
		c, err := Parse(line)
		require.NoError(t, err)
		require.Equal(t, line, c.String())
	}
}
