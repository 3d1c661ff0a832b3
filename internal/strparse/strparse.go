// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package strparse provides facilities for parsing command lines and test
// input.
package strparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Parser is a helper used to implement parsing of strings, like
// command.Parse.
//
// It takes a string and splits it into tokens. Tokens are separated by
// whitespace; in addition user-specified separators are also always separate
// tokens. For example, when passed the separators `,` the string `load 1,2, 3`
// results in tokens `load`, `1`, `,`, `2`, `,`, `3`.
//
// All Parser methods throw panics instead of returning errors. The code that
// uses a Parser can recover them with Recover.
type Parser struct {
	original  string
	tokens    []token
	lastToken token
}

type token struct {
	tok    string
	offset int
}

// MakeParser constructs a new Parser that converts any instance of the runes
// contained in [separators] into separate tokens, and consumes the provided
// input string.
func MakeParser(separators string, input string) Parser {
	p := Parser{original: input}
	start := -1
	flush := func(end int) {
		if start >= 0 {
			p.tokens = append(p.tokens, token{tok: input[start:end], offset: start})
			start = -1
		}
	}
	for i, r := range input {
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case strings.ContainsRune(separators, r):
			flush(i)
			p.tokens = append(p.tokens, token{tok: string(r), offset: i})
		case start < 0:
			start = i
		}
	}
	flush(len(input))
	return p
}

// Done returns true if there are no more tokens.
func (p *Parser) Done() bool {
	return len(p.tokens) == 0
}

// Offset returns the offset of the next token.
func (p *Parser) Offset() int {
	if p.Done() {
		return len(p.original)
	}
	return p.tokens[0].offset
}

// Peek returns the next token, without consuming the token. Returns "" if there
// are no more tokens.
func (p *Parser) Peek() string {
	if p.Done() {
		p.lastToken = token{}
		return ""
	}
	p.lastToken = p.tokens[0]
	return p.tokens[0].tok
}

// Next returns the next token, or "" if there are no more tokens.
func (p *Parser) Next() string {
	res := p.Peek()
	if res != "" {
		p.tokens = p.tokens[1:]
	}
	return res
}

// Remaining consumes and returns all the remaining tokens.
func (p *Parser) Remaining() []string {
	res := make([]string, len(p.tokens))
	for i := range p.tokens {
		res[i] = p.tokens[i].tok
	}
	p.tokens = nil
	return res
}

// Expect consumes the next tokens, verifying that they exactly match the
// arguments.
func (p *Parser) Expect(tokens ...string) {
	for _, tok := range tokens {
		if res := p.Next(); res != tok {
			p.Errf("expected %q, got %q", tok, res)
		}
	}
}

// ExpectDone verifies that all tokens were consumed.
func (p *Parser) ExpectDone() {
	if !p.Done() {
		p.Next()
		p.Errf("unexpected trailing input")
	}
}

// Int parses the next token as an integer.
func (p *Parser) Int() int {
	x, err := strconv.Atoi(p.Next())
	if err != nil {
		p.Errf("cannot parse number: %v", err)
	}
	return x
}

// Bool parses the next token as a boolean; on/off and yes/no are accepted in
// addition to the strconv.ParseBool forms.
func (p *Parser) Bool() bool {
	switch tok := strings.ToLower(p.Next()); tok {
	case "on", "yes":
		return true
	case "off", "no":
		return false
	default:
		b, err := strconv.ParseBool(tok)
		if err != nil {
			p.Errf("cannot parse boolean %q", tok)
		}
		return b
	}
}

// Errf panics with an error which includes the original string and the last
// token.
func (p *Parser) Errf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(errors.Errorf("error parsing %q at token %q: %s", p.original, p.lastToken.tok, msg))
}

// Recover converts a panic thrown by a Parser into an error. It must be called
// directly by a deferred function:
//
//	defer strparse.Recover(&err)
func Recover(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = e
	}
}
