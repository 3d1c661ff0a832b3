// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"strings"

	"github.com/cockroachdb/bststeps"
	"github.com/cockroachdb/bststeps/internal/command"
	"github.com/cockroachdb/bststeps/internal/keyinput"
	"github.com/cockroachdb/bststeps/internal/render"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "run an interactive session",
	Long: `
Read commands from standard input, one per line, and draw every step of every
operation. Type "help" for the list of commands and "quit" to exit.
`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := c.sessionOptions()
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout(), c, opts.CanvasWidth)
	opts.Render = p.frame
	s, err := bststeps.Open(opts)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := c.loadKeys(s, cmd.OutOrStdout()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for p.printf("> "); scanner.Scan(); p.printf("> ") {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		parsed, err := command.Parse(line)
		if err == nil {
			err = execute(s, p, parsed)
		}
		if err != nil {
			p.printf("error: %v\n", err)
		}
	}
	return scanner.Err()
}

// execute runs one command against the session. Operations and playback moves
// print through the session's Render hook; the other commands print directly.
func execute(s *bststeps.Session, p *printer, c command.Command) error {
	switch c.Kind {
	case command.Insert:
		s.Insert(c.Key)
	case command.Delete:
		s.Delete(c.Key)
	case command.Traverse:
		seq := s.PerformTraversal(c.Order)
		p.printf("%s: %s\n", c.Order, render.Sequence(seq))
	case command.Load:
		s.LoadKeys(keyinput.Normalize(c.Keys))
		p.tree(s.Tree())
	case command.Next:
		s.StepForward()
	case command.Prev:
		s.StepBackward()
	case command.Restart:
		s.Restart()
	case command.Play:
		s.Play()
	case command.Pause:
		s.Pause()
	case command.Speed:
		return s.SetSpeed(c.Speed)
	case command.AutoPlay:
		s.SetAutoPlay(c.On)
	case command.Show:
		if snap, ok := s.CurrentSnapshot(); ok {
			p.frame(snap, s.Position())
		} else {
			p.tree(snap.Tree)
		}
	case command.History:
		p.history(s.History(), s.Position())
	case command.Metrics:
		p.printf("%s", s.Metrics())
	case command.Help:
		p.printf("%s", command.Usage)
	}
	return nil
}
