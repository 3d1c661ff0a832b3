// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/bststeps"
	"github.com/cockroachdb/bststeps/internal/command"
	"github.com/cockroachdb/bststeps/internal/playback"
	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var runFrames bool

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "run a command script",
	Long: `
Run the commands of a script, one per line. Blank lines and lines starting with
# are ignored. Playback is not timed: after every operation, the recorded steps
are printed as a table, or drawn one by one with --frames. The output ends with
a fingerprint of the last recorded steps.
`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "reading script")
	}
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := c.sessionOptions()
	if err != nil {
		return err
	}
	// Nothing advances the clock, so auto-play never moves past the first
	// step.
	opts.Clock = &playback.ManualClock{}
	p := newPrinter(cmd.OutOrStdout(), c, opts.CanvasWidth)
	s, err := bststeps.Open(opts)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := c.loadKeys(s, cmd.OutOrStdout()); err != nil {
		return err
	}

	for i, line := range crstrings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p.printf("> %s\n", line)
		parsed, err := command.Parse(line)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", args[0], i+1)
		}
		if err := execute(s, p, parsed); err != nil {
			return errors.Wrapf(err, "%s:%d", args[0], i+1)
		}
		switch parsed.Kind {
		case command.Insert, command.Delete, command.Traverse:
			printSteps(s, p)
		case command.Next, command.Prev, command.Restart:
			if snap, ok := s.CurrentSnapshot(); ok {
				p.frame(snap, s.Position())
			}
		}
	}
	p.printf("fingerprint: %016x\n", s.Metrics().History.Fingerprint)
	return nil
}

func printSteps(s *bststeps.Session, p *printer) {
	hist := s.History()
	if !runFrames {
		p.history(hist, s.Position())
		return
	}
	for i, snap := range hist {
		p.frame(snap, bststeps.Position{Cursor: i, Len: len(hist), State: bststeps.Paused})
	}
}
