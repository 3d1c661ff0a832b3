// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bst

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Order is a depth-first traversal order.
type Order int8

const (
	// Preorder visits a node before its subtrees.
	Preorder Order = iota
	// Inorder visits the left subtree, the node, then the right subtree. For a
	// search tree this yields keys in ascending order.
	Inorder
	// Postorder visits both subtrees before the node.
	Postorder
)

var orderNames = [...]string{
	Preorder:  "preorder",
	Inorder:   "inorder",
	Postorder: "postorder",
}

// String implements fmt.Stringer.
func (o Order) String() string {
	if o >= 0 && int(o) < len(orderNames) {
		return orderNames[o]
	}
	return "unknown"
}

// SafeFormat implements redact.SafeFormatter.
func (o Order) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(o.String()))
}

// ParseOrder parses a traversal order. Both the full names and the short forms
// "pre", "in" and "post" are accepted, case-insensitively.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pre", "preorder":
		return Preorder, nil
	case "in", "inorder":
		return Inorder, nil
	case "post", "postorder":
		return Postorder, nil
	}
	return 0, errors.Newf("unknown traversal order %q", s)
}

// Walk returns the nodes of the tree rooted at n in the given order. It does
// not touch any annotations.
func Walk(n *Node, order Order) []*Node {
	var nodes []*Node
	walk(n, order, &nodes)
	return nodes
}

func walk(n *Node, order Order, out *[]*Node) {
	if n == nil {
		return
	}
	if order == Preorder {
		*out = append(*out, n)
	}
	walk(n.Left, order, out)
	if order == Inorder {
		*out = append(*out, n)
	}
	walk(n.Right, order, out)
	if order == Postorder {
		*out = append(*out, n)
	}
}

// Keys returns the keys of the tree rooted at n in the given order.
func Keys(n *Node, order Order) []Key {
	nodes := Walk(n, order)
	keys := make([]Key, len(nodes))
	for i := range nodes {
		keys[i] = nodes[i].Key
	}
	return keys
}

// CheckOrdering verifies that every key in a left subtree is strictly smaller
// than its ancestor and every key in a right subtree strictly larger.
func CheckOrdering(n *Node) error {
	return checkRange(n, nil, nil)
}

func checkRange(n *Node, lower, upper *Key) error {
	if n == nil {
		return nil
	}
	if lower != nil && n.Key <= *lower {
		return errors.AssertionFailedf("key %d is not greater than ancestor %d", n.Key, *lower)
	}
	if upper != nil && n.Key >= *upper {
		return errors.AssertionFailedf("key %d is not less than ancestor %d", n.Key, *upper)
	}
	if err := checkRange(n.Left, lower, &n.Key); err != nil {
		return err
	}
	return checkRange(n.Right, &n.Key, upper)
}
