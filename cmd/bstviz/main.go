// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	optionsPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "bstviz [command] (flags)",
	Short: "binary search tree step-by-step visualizer",
	Long: `
Runs insert, delete and traversal operations on a binary search tree and plays
back every intermediate step of each operation.
`,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		replCmd,
		runCmd,
		benchCmd,
		optionsCmd,
	)

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "", "config file (default .bstviz.yaml in the working or home directory)")
	rootCmd.PersistentFlags().StringVar(
		&optionsPath, "options", "", "session options file, in the format printed by the options command")
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable verbose event logging")

	for _, cmd := range []*cobra.Command{replCmd, runCmd, optionsCmd} {
		cmd.Flags().Int("speed", 0, "playback speed, from the minimum to the maximum speed (0 for the default)")
		cmd.Flags().Bool("auto-play", true, "advance playback automatically")
		cmd.Flags().Int("columns", 0, "draw nodes at their laid out positions, scaled to this many columns (0 to use one slot per node)")
		cmd.Flags().Bool("color", false, "color the nodes being visited")
		cmd.Flags().String("load", "", "file of whitespace separated keys to build the initial tree from")
	}

	runCmd.Flags().BoolVar(
		&runFrames, "frames", false, "draw every snapshot instead of a table of steps")

	benchCmd.Flags().IntVarP(
		&benchConfig.concurrency, "concurrency", "c", 1, "number of concurrent workers, each with its own session")
	benchCmd.Flags().IntVarP(
		&benchConfig.ops, "num-ops", "n", 10000, "number of operations per worker")
	benchCmd.Flags().IntVar(
		&benchConfig.keys, "keys", 1000, "keys are drawn uniformly from [0, keys)")
	benchCmd.Flags().Float64Var(
		&benchConfig.rate, "rate", 0, "maximum operations per second per worker (0 for unlimited)")
	benchCmd.Flags().Uint64Var(
		&benchConfig.seed, "seed", 1, "random seed")
	benchCmd.Flags().IntVar(
		&benchConfig.plotHeight, "plot-height", 10, "height of the snapshots per operation plot (0 to disable)")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
