// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bststeps

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/bststeps/internal/bst"
	"github.com/cockroachdb/bststeps/internal/command"
	"github.com/cockroachdb/bststeps/internal/keyinput"
	"github.com/cockroachdb/bststeps/internal/mutation"
	"github.com/cockroachdb/bststeps/internal/playback"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

// formatTree formats a tree on one line as key(left,right), with "-" for a
// missing child and the annotations as suffixes: * current, ? searching,
// + visited.
func formatTree(n *bst.Node) string {
	if n == nil {
		return "(empty)"
	}
	var b strings.Builder
	var format func(n *bst.Node)
	format = func(n *bst.Node) {
		if n == nil {
			b.WriteByte('-')
			return
		}
		b.WriteString(n.Key.String())
		switch n.State() {
		case bst.Current:
			b.WriteByte('*')
		case bst.Searching:
			b.WriteByte('?')
		case bst.Visited:
			b.WriteByte('+')
		}
		if n.Left != nil || n.Right != nil {
			b.WriteByte('(')
			format(n.Left)
			b.WriteByte(',')
			format(n.Right)
			b.WriteByte(')')
		}
	}
	format(n)
	return b.String()
}

func formatSeq(seq []Key) string {
	if len(seq) == 0 {
		return "(none)"
	}
	parts := make([]string, len(seq))
	for i, k := range seq {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}

type sessionTest struct {
	sess    *Session
	clock   *playback.ManualClock
	renders []string
}

func (st *sessionTest) open(t *testing.T, td *datadriven.TestData) {
	if st.sess != nil {
		require.NoError(t, st.sess.Close())
	}
	st.clock = &playback.ManualClock{}
	st.renders = nil
	opts := &Options{
		Clock: st.clock,
		Render: func(snap Snapshot, pos Position) {
			st.renders = append(st.renders, fmt.Sprintf("render %d/%d %s: %s",
				pos.Cursor+1, pos.Len, pos.State, snap.Status))
		},
	}
	for _, arg := range td.CmdArgs {
		switch arg.Key {
		case "speed":
			var err error
			opts.Speed, err = strconv.Atoi(arg.Vals[0])
			require.NoError(t, err)
		case "autoplay":
			opts.DisableAutoPlay = arg.Vals[0] == "off"
		default:
			t.Fatalf("unknown argument %q", arg.Key)
		}
	}
	var err error
	st.sess, err = Open(opts)
	require.NoError(t, err)
}

func (st *sessionTest) flushRenders(buf *strings.Builder) {
	for _, r := range st.renders {
		fmt.Fprintf(buf, "  %s\n", r)
	}
	st.renders = nil
}

func (st *sessionTest) printHistory(buf *strings.Builder) {
	for i, snap := range st.sess.History() {
		fmt.Fprintf(buf, "  %d %s: %s | %s", i, snap.Kind, snap.Status, formatTree(snap.Tree))
		if len(snap.Sequence) > 0 {
			fmt.Fprintf(buf, " | seq=%s", formatSeq(snap.Sequence))
		}
		buf.WriteByte('\n')
	}
}

func (st *sessionTest) exec(buf *strings.Builder, line string) {
	fmt.Fprintf(buf, "> %s\n", line)
	c, err := command.Parse(line)
	if err != nil {
		fmt.Fprintf(buf, "error: %v\n", err)
		return
	}
	s := st.sess
	switch c.Kind {
	case command.Insert, command.Delete:
		kind := OpInsert
		if c.Kind == command.Delete {
			kind = OpDelete
		}
		changed, err := s.PerformOperation(kind, c.Key)
		if err != nil {
			fmt.Fprintf(buf, "error: %v\n", err)
			return
		}
		fmt.Fprintf(buf, "changed=%t\n", changed)
		st.printHistory(buf)
	case command.Traverse:
		seq := s.PerformTraversal(c.Order)
		fmt.Fprintf(buf, "seq=%s\n", formatSeq(seq))
		st.printHistory(buf)
	case command.Load:
		s.LoadKeys(keyinput.Normalize(c.Keys))
		fmt.Fprintf(buf, "tree=%s\n", formatTree(s.Tree()))
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
		if err := s.SetSpeed(c.Speed); err != nil {
			fmt.Fprintf(buf, "error: %v\n", err)
		}
	case command.AutoPlay:
		s.SetAutoPlay(c.On)
	case command.Show:
		snap, ok := s.CurrentSnapshot()
		if !ok {
			fmt.Fprintf(buf, "current (live) | %s\n", formatTree(snap.Tree))
			break
		}
		pos := s.Position()
		fmt.Fprintf(buf, "current %d/%d: %s | %s\n", pos.Cursor+1, pos.Len, snap.Status, formatTree(snap.Tree))
	case command.History:
		st.printHistory(buf)
	case command.Metrics:
		buf.WriteString(s.Metrics().String())
	default:
		fmt.Fprintf(buf, "unsupported command %s\n", c.Kind)
	}
	st.flushRenders(buf)
}

func TestSession(t *testing.T) {
	var st sessionTest
	defer func() {
		if st.sess != nil {
			require.NoError(t, st.sess.Close())
		}
	}()
	datadriven.RunTest(t, "testdata/session", func(t *testing.T, td *datadriven.TestData) string {
		var buf strings.Builder
		switch td.Cmd {
		case "open":
			st.open(t, td)
			return "ok\n"
		case "run":
			for _, line := range strings.Split(strings.TrimSpace(td.Input), "\n") {
				st.exec(&buf, line)
			}
		case "advance":
			d, err := time.ParseDuration(td.CmdArgs[0].Key)
			require.NoError(t, err)
			st.clock.Advance(d)
			st.flushRenders(&buf)
		case "position":
			pos := st.sess.Position()
			fmt.Fprintf(&buf, "cursor=%d len=%d state=%s back=%t forward=%t pending=%d\n",
				pos.Cursor, pos.Len, pos.State, st.sess.CanStepBack(), st.sess.CanStepForward(),
				st.clock.Pending())
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
		if buf.Len() == 0 {
			return "(nothing)\n"
		}
		return buf.String()
	})
}

func TestSnapshotImmutability(t *testing.T) {
	s, err := Open(&Options{DisableAutoPlay: true, Clock: &playback.ManualClock{}})
	require.NoError(t, err)
	defer s.Close()

	s.LoadKeys([]Key{1, 2, 3, 4, 5, 6, 7})
	s.Delete(4)
	hist := s.History()
	before := make([]string, len(hist))
	for i := range hist {
		before[i] = formatTree(hist[i].Tree)
	}
	// Later operations build new histories; the old one is untouched.
	s.Insert(10)
	s.PerformTraversal(Postorder)
	for i := range hist {
		require.Equal(t, before[i], formatTree(hist[i].Tree))
	}
	// So is the live tree.
	tree := s.Tree()
	tree.Left.Key = 100
	require.Equal(t, "5(2(1,3),6(-,7(-,10)))", formatTree(s.Tree()))
}

func TestSessionProperties(t *testing.T) {
	s, err := Open(&Options{DisableAutoPlay: true, Clock: &playback.ManualClock{}})
	require.NoError(t, err)
	defer s.Close()

	keys := []Key{50, 30, 70, 20, 40, 60, 80, 35, 45, 65}
	for _, k := range keys {
		require.True(t, s.Insert(k))
	}
	for _, k := range keys {
		// Duplicate inserts leave the tree unchanged.
		before := formatTree(s.Tree())
		require.False(t, s.Insert(k))
		require.Equal(t, before, formatTree(s.Tree()))
		last := s.History()[len(s.History())-1]
		require.Equal(t, mutation.Complete, last.Kind)
		require.Equal(t, before, formatTree(last.Tree))
	}
	for _, o := range []Order{Preorder, Inorder, Postorder} {
		seq := s.PerformTraversal(o)
		require.Equal(t, bst.Keys(s.Tree(), o), seq)
		require.Len(t, s.History(), 2*len(keys))
	}
	for _, k := range []Key{30, 50, 99, 65} {
		want := bst.Keys(s.Tree(), Inorder)
		if i := indexOf(want, k); i >= 0 {
			want = append(want[:i:i], want[i+1:]...)
		}
		s.Delete(k)
		require.Equal(t, want, bst.Keys(s.Tree(), Inorder))
		require.NoError(t, bst.CheckOrdering(s.Tree()))
		last := s.History()[len(s.History())-1]
		require.Equal(t, mutation.CompleteStatus, last.Status)
	}

	// Playback boundaries.
	s.Insert(1)
	require.False(t, s.CanStepBack())
	n := len(s.History())
	for range n + 3 {
		s.StepForward()
	}
	require.Equal(t, n-1, s.Position().Cursor)
	require.False(t, s.CanStepForward())
	for range n + 3 {
		s.StepBackward()
	}
	require.Equal(t, 0, s.Position().Cursor)
}

func indexOf(keys []Key, k Key) int {
	for i := range keys {
		if keys[i] == k {
			return i
		}
	}
	return -1
}

func TestPerformOperationKinds(t *testing.T) {
	s, err := Open(&Options{Clock: &playback.ManualClock{}})
	require.NoError(t, err)
	defer s.Close()
	_, err = s.PerformOperation(OpTraverse, 1)
	require.ErrorContains(t, err, "traverse does not take a key")
	_, err = s.PerformOperation(OpKind(100), 1)
	require.Error(t, err)
	require.False(t, s.HistoryNonEmpty())

	snap, ok := s.CurrentSnapshot()
	require.False(t, ok)
	require.Nil(t, snap.Tree)
	require.Empty(t, snap.Status)
}

func TestOpenValidates(t *testing.T) {
	_, err := Open(&Options{Speed: 50})
	require.ErrorContains(t, err, "Speed (50) must be between 100 and 1000")

	s, err := Open(nil)
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, DefaultSpeed, s.Speed())
	require.True(t, s.AutoPlay())
	require.NoError(t, s.SetSpeed(1000))
	require.Equal(t, 1000, s.Speed())
	require.Error(t, s.SetSpeed(99))
	require.Equal(t, 1000, s.Speed())
}
