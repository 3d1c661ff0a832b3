// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package command parses the line-oriented commands accepted by the bstviz
// REPL and scripts.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/bststeps/internal/strparse"
	"github.com/cockroachdb/errors"
)

// ErrInvalidKey is the mark of errors returned by Parse when a key is not an
// integer. Use errors.Is to test for it.
var ErrInvalidKey = errors.New("invalid key")

// Kind identifies a command.
type Kind int8

const (
	Insert Kind = iota
	Delete
	Traverse
	Load
	Next
	Prev
	Restart
	Play
	Pause
	Speed
	AutoPlay
	Show
	History
	Metrics
	Help
	numKinds
)

var kindNames = [...]string{
	Insert:   "insert",
	Delete:   "delete",
	Traverse: "traverse",
	Load:     "load",
	Next:     "next",
	Prev:     "prev",
	Restart:  "restart",
	Play:     "play",
	Pause:    "pause",
	Speed:    "speed",
	AutoPlay: "autoplay",
	Show:     "show",
	History:  "history",
	Metrics:  "metrics",
	Help:     "help",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Command is a parsed command line. Only the fields relevant to Kind are set.
type Command struct {
	Kind Kind
	// Key is the argument of Insert and Delete.
	Key bst.Key
	// Order is the argument of Traverse.
	Order bst.Order
	// Keys are the arguments of Load, in the order given.
	Keys []bst.Key
	// Speed is the argument of Speed.
	Speed int
	// On is the argument of AutoPlay.
	On bool
}

// String returns the command in the form accepted by Parse.
func (c Command) String() string {
	switch c.Kind {
	case Insert, Delete:
		return fmt.Sprintf("%s %d", c.Kind, c.Key)
	case Traverse:
		return fmt.Sprintf("%s %s", c.Kind, c.Order)
	case Load:
		var b strings.Builder
		b.WriteString(c.Kind.String())
		for _, k := range c.Keys {
			fmt.Fprintf(&b, " %d", k)
		}
		return b.String()
	case Speed:
		return fmt.Sprintf("%s %d", c.Kind, c.Speed)
	case AutoPlay:
		if c.On {
			return "autoplay on"
		}
		return "autoplay off"
	default:
		return c.Kind.String()
	}
}

// Usage describes the accepted commands.
const Usage = `insert K          insert key K
delete K          delete key K
traverse ORDER    traverse the tree (pre, in or post)
load K...         replace the tree with a balanced tree of the given keys
next, prev        step forward or backward
restart           go back to the first step
play, pause       resume or stop auto-play
speed N           set the playback speed
autoplay on|off   enable or disable auto-play
show              print the current step
history           print every step of the last operation
metrics           print session metrics
help              print this message
`

// Parse parses a command line. Keys must be integers; a key that is not
// yields an error marked with ErrInvalidKey. Load arguments may be separated
// by whitespace or commas.
func Parse(line string) (_ Command, err error) {
	defer strparse.Recover(&err)

	p := strparse.MakeParser(",", line)
	var c Command
	switch name := strings.ToLower(p.Next()); name {
	case "insert", "i":
		c.Kind = Insert
		c.Key = parseKey(&p)
	case "delete", "d", "del":
		c.Kind = Delete
		c.Key = parseKey(&p)
	case "traverse", "t":
		c.Kind = Traverse
		o, err := bst.ParseOrder(p.Next())
		if err != nil {
			p.Errf("%v", err)
		}
		c.Order = o
	case "load":
		c.Kind = Load
		for !p.Done() {
			if p.Peek() == "," {
				p.Next()
				continue
			}
			c.Keys = append(c.Keys, parseKey(&p))
		}
	case "next", "n":
		c.Kind = Next
	case "prev", "p":
		c.Kind = Prev
	case "restart":
		c.Kind = Restart
	case "play":
		c.Kind = Play
	case "pause":
		c.Kind = Pause
	case "speed":
		c.Kind = Speed
		c.Speed = p.Int()
	case "autoplay":
		c.Kind = AutoPlay
		c.On = p.Bool()
	case "show":
		c.Kind = Show
	case "history":
		c.Kind = History
	case "metrics":
		c.Kind = Metrics
	case "help", "?":
		c.Kind = Help
	case "":
		return Command{}, errors.New("empty command")
	default:
		return Command{}, errors.Errorf("unknown command %q", name)
	}
	p.ExpectDone()
	return c, nil
}

func parseKey(p *strparse.Parser) bst.Key {
	tok := p.Next()
	if tok == "" {
		p.Errf("missing key")
	}
	k, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		panic(errors.Mark(errors.Errorf("%q is not an integer key", tok), ErrInvalidKey))
	}
	return bst.Key(k)
}
