// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/errors"
)

// ParseTree parses a tree described using indentation, in the format produced
// by render.Outline. For example:
//
//	5
//	  L: [3]
//	    R: 4
//	  R: {8}
//
// describes a root 5 with a left child 3 (marked current) which has a right
// child 4, and a right child 8 (marked visited). Each level is indented by two
// spaces. A key may be wrapped in [] (current), () (searching) or {} (visited).
// The input "(empty)" describes an empty tree.
func ParseTree(input string) (*bst.Node, error) {
	input = strings.TrimSpace(input)
	if input == "" || input == "(empty)" {
		return nil, nil
	}
	var root *bst.Node
	// stack[d] is the most recent node at depth d.
	var stack []*bst.Node
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		indent := len(line) - len(trimmed)
		if indent%2 != 0 {
			return nil, errors.Errorf("odd indentation in line %q", line)
		}
		depth := indent / 2
		if depth > len(stack) {
			return nil, errors.Errorf("line %q skips a level", line)
		}
		stack = stack[:depth]

		var side string
		if depth > 0 {
			var ok bool
			side, trimmed, ok = strings.Cut(trimmed, ": ")
			if !ok || (side != "L" && side != "R") {
				return nil, errors.Errorf("line %q must start with L: or R:", line)
			}
		} else if root != nil {
			return nil, errors.Errorf("multiple roots")
		}
		n, err := parseNode(trimmed)
		if err != nil {
			return nil, err
		}
		switch {
		case depth == 0:
			root = n
		case side == "L":
			if stack[depth-1].Left != nil {
				return nil, errors.Errorf("duplicate left child in line %q", line)
			}
			stack[depth-1].Left = n
		default:
			if stack[depth-1].Right != nil {
				return nil, errors.Errorf("duplicate right child in line %q", line)
			}
			stack[depth-1].Right = n
		}
		stack = append(stack, n)
	}
	return root, nil
}

func parseNode(s string) (*bst.Node, error) {
	var current, searching, visited bool
	if len(s) >= 2 {
		switch {
		case s[0] == '[' && s[len(s)-1] == ']':
			current = true
		case s[0] == '(' && s[len(s)-1] == ')':
			searching = true
		case s[0] == '{' && s[len(s)-1] == '}':
			visited = true
		}
		if current || searching || visited {
			s = s[1 : len(s)-1]
		}
	}
	k, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid key %q", s)
	}
	n := bst.NewNode(bst.Key(k))
	n.Current, n.Searching, n.Visited = current, searching, visited
	return n, nil
}
