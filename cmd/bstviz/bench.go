// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/bststeps"
	"github.com/cockroachdb/bststeps/internal/playback"
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/tokenbucket"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var benchConfig struct {
	concurrency int
	ops         int
	keys        int
	rate        float64
	seed        uint64
	plotHeight  int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "run a random workload",
	Long: `
Run a random mix of inserts, deletes and traversals. Every worker owns a
session and performs --num-ops operations on it. The operation latencies and
the number of steps recorded per operation are reported as histograms, and the
steps recorded by the first worker are plotted.
`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

const (
	minLatency = 100 * time.Nanosecond
	maxLatency = 10 * time.Second
	// maxSnapshots bounds the snapshots histogram. A traversal records two
	// snapshots per key.
	maxSnapshots = 1 << 24
)

func newLatencyHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 1)
}

func newSnapshotsHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, maxSnapshots, 1)
}

type benchResult struct {
	latency   *hdrhistogram.Histogram
	snapshots *hdrhistogram.Histogram
	// total is the number of snapshots recorded.
	total int64
	// series holds the snapshots recorded by every operation, in order.
	series []float64
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := benchConfig
	if cfg.concurrency < 1 || cfg.ops < 0 || cfg.keys < 1 {
		return errors.Errorf("invalid workload: concurrency=%d num-ops=%d keys=%d",
			cfg.concurrency, cfg.ops, cfg.keys)
	}

	results := make([]benchResult, cfg.concurrency)
	start := crtime.NowMono()
	g, ctx := errgroup.WithContext(context.Background())
	for w := range cfg.concurrency {
		g.Go(func() error {
			var err error
			results[w], err = benchWorker(ctx, w, w == 0)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := start.Elapsed()

	latency := newLatencyHistogram()
	snapshots := newSnapshotsHistogram()
	var total int64
	for i := range results {
		latency.Merge(results[i].latency)
		snapshots.Merge(results[i].snapshots)
		total += results[i].total
	}
	printBenchResults(cmd.OutOrStdout(), elapsed, latency, snapshots, total, results[0].series)
	return nil
}

func benchWorker(ctx context.Context, worker int, keepSeries bool) (benchResult, error) {
	cfg := benchConfig
	res := benchResult{
		latency:   newLatencyHistogram(),
		snapshots: newSnapshotsHistogram(),
	}
	s, err := bststeps.Open(&bststeps.Options{
		Clock:           &playback.ManualClock{},
		DisableAutoPlay: true,
		Logger:          bststeps.NoopLogger{},
	})
	if err != nil {
		return res, err
	}
	defer s.Close()

	var limiter *tokenbucket.TokenBucket
	if cfg.rate > 0 {
		limiter = &tokenbucket.TokenBucket{}
		rate := tokenbucket.TokensPerSecond(cfg.rate)
		limiter.Init(rate, tokenbucket.Tokens(max(cfg.rate*0.1, 1)))
	}

	rng := rand.New(rand.NewPCG(cfg.seed, uint64(worker)))
	orders := []bststeps.Order{bststeps.Preorder, bststeps.Inorder, bststeps.Postorder}
	for range cfg.ops {
		if limiter != nil {
			if err := limiter.WaitCtx(ctx, 1); err != nil {
				return res, err
			}
		}
		key := bststeps.Key(rng.IntN(cfg.keys))
		opStart := crtime.NowMono()
		switch p := rng.IntN(100); {
		case p < 50:
			s.Insert(key)
		case p < 90:
			s.Delete(key)
		default:
			s.PerformTraversal(orders[rng.IntN(len(orders))])
		}
		if err := res.latency.RecordValue(clampLatency(opStart.Elapsed()).Nanoseconds()); err != nil {
			return res, errors.Wrap(err, "recording latency")
		}
		n := len(s.History())
		res.total += int64(n)
		if n > 0 {
			if err := res.snapshots.RecordValue(int64(min(n, maxSnapshots))); err != nil {
				return res, errors.Wrap(err, "recording snapshots")
			}
		}
		if keepSeries {
			res.series = append(res.series, float64(n))
		}
	}
	return res, nil
}

func clampLatency(d time.Duration) time.Duration {
	return min(max(d, minLatency), maxLatency)
}

func printBenchResults(
	w io.Writer,
	elapsed time.Duration,
	latency, snapshots *hdrhistogram.Histogram,
	total int64,
	series []float64,
) {
	ops := latency.TotalCount()
	var opsPerSec int64
	if elapsed > 0 {
		opsPerSec = int64(float64(ops) / elapsed.Seconds())
	}
	fmt.Fprintf(w, "%s ops in %s (%s ops/sec)\n", crhumanize.Count(ops, crhumanize.Compact),
		elapsed.Round(time.Millisecond), crhumanize.Count(opsPerSec, crhumanize.Compact))
	fmt.Fprintf(w, "latency:   mean %s p50 %s p95 %s p99 %s max %s\n",
		time.Duration(latency.Mean()), time.Duration(latency.ValueAtPercentile(50)),
		time.Duration(latency.ValueAtPercentile(95)), time.Duration(latency.ValueAtPercentile(99)),
		time.Duration(latency.Max()))
	fmt.Fprintf(w, "snapshots: mean %.1f p50 %d p95 %d max %d total %s\n",
		snapshots.Mean(), snapshots.ValueAtPercentile(50), snapshots.ValueAtPercentile(95),
		snapshots.Max(), crhumanize.Count(total, crhumanize.Compact))
	if benchConfig.plotHeight > 0 && len(series) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, asciigraph.Plot(bucketize(series, 80),
			asciigraph.Height(benchConfig.plotHeight),
			asciigraph.Caption("snapshots per operation (worker 1)")))
	}
}

// bucketize reduces series to at most width points by averaging runs of
// consecutive values.
func bucketize(series []float64, width int) []float64 {
	if len(series) <= width {
		return series
	}
	out := make([]float64, width)
	for i := range out {
		lo, hi := i*len(series)/width, (i+1)*len(series)/width
		var sum float64
		for _, v := range series[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
