// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package keyinput extracts tree keys from free-form text, such as the
// contents of a key file.
package keyinput

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/errors"
)

// Parse splits text on whitespace and returns the tokens that are integers, in
// the order they appear. Other tokens are dropped; skipped is their number.
func Parse(text string) (keys []bst.Key, skipped int) {
	for _, tok := range strings.Fields(text) {
		k, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			skipped++
			continue
		}
		keys = append(keys, bst.Key(k))
	}
	return keys, skipped
}

// Normalize returns the distinct keys in ascending order, as expected by
// bst.BuildBalanced. The argument is not modified.
func Normalize(keys []bst.Key) []bst.Key {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	return slices.Compact(keys)
}

// ReadFile reads a key file and returns its normalized keys along with the
// number of tokens that were not integers.
func ReadFile(path string) (keys []bst.Key, skipped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "reading keys")
	}
	keys, skipped = Parse(string(data))
	return Normalize(keys), skipped, nil
}
