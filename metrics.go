// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bststeps

import (
	"github.com/cockroachdb/redact"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds metrics for various subsystems of a Session.
type Metrics struct {
	// Operations counts the operations performed, by kind.
	Operations [numOpKinds]int64
	// DuplicateInserts counts inserts of a key already in the tree.
	DuplicateInserts int64
	// NotFoundDeletes counts deletes of a key not in the tree.
	NotFoundDeletes int64
	// Snapshots is the total number of snapshots recorded.
	Snapshots int64

	// History describes the snapshots of the last operation.
	History struct {
		Len int
		// Fingerprint identifies the recorded snapshots; see
		// history.Store.Fingerprint.
		Fingerprint uint64
	}

	Tree struct {
		// Size is the number of keys in the live tree.
		Size int
		// Height is the number of levels of the live tree.
		Height int
	}

	Playback Position
}

// String pretty-prints the metrics.
func (m *Metrics) String() string {
	return redact.StringWithoutMarkers(m)
}

// SafeFormat implements redact.SafeFormatter.
func (m *Metrics) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString("operations:")
	for k := OpKind(0); k < numOpKinds; k++ {
		w.Printf(" %s=%d", k, redact.Safe(m.Operations[k]))
	}
	w.SafeRune('\n')
	w.Printf("duplicate-inserts: %d\n", redact.Safe(m.DuplicateInserts))
	w.Printf("not-found-deletes: %d\n", redact.Safe(m.NotFoundDeletes))
	w.Printf("snapshots: %d\n", redact.Safe(m.Snapshots))
	w.Printf("history: len=%d\n", redact.Safe(m.History.Len))
	w.Printf("tree: size=%d height=%d\n", redact.Safe(m.Tree.Size), redact.Safe(m.Tree.Height))
	w.Printf("playback: cursor=%d len=%d state=%s\n", redact.Safe(m.Playback.Cursor),
		redact.Safe(m.Playback.Len), m.Playback.State)
}

// promMetrics are the Prometheus collectors maintained by a Session. They are
// always updated; they are only exported if Options.Registerer is set.
type promMetrics struct {
	operations *prometheus.CounterVec
	snapshots  prometheus.Counter
	historyLen prometheus.Histogram
}

func newPromMetrics(reg prometheus.Registerer) (*promMetrics, error) {
	m := &promMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bststeps",
			Name:      "operations_total",
			Help:      "Number of operations performed, by kind.",
		}, []string{"kind"}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bststeps",
			Name:      "snapshots_total",
			Help:      "Number of snapshots recorded.",
		}),
		historyLen: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bststeps",
			Name:      "history_length",
			Help:      "Number of snapshots recorded per operation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.operations, m.snapshots, m.historyLen} {
		if err := reg.Register(c); err != nil {
			m.unregister(reg)
			return nil, err
		}
	}
	return m, nil
}

func (m *promMetrics) record(kind OpKind, snapshots int) {
	m.operations.WithLabelValues(kind.String()).Inc()
	m.snapshots.Add(float64(snapshots))
	m.historyLen.Observe(float64(snapshots))
}

// unregister removes the collectors from reg, if it is set.
func (m *promMetrics) unregister(reg prometheus.Registerer) {
	if reg == nil {
		return
	}
	reg.Unregister(m.operations)
	reg.Unregister(m.snapshots)
	reg.Unregister(m.historyLen)
}
