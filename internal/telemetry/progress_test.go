// SPDX-License-Identifier: MIT
package telemetry_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/katalvlaran/lvlattice/internal/telemetry"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/stretchr/testify/require"
)

func TestProgressLogger_Unthrottled(t *testing.T) {
	var buf bytes.Buffer
	p := telemetry.NewProgressLogger(telemetry.NewTextLogger(&buf, slog.LevelDebug), 0, 1)

	l, err := lattice.New(8, 8, lattice.WithSeed(3))
	require.NoError(t, err)
	_, err = l.LLL(lattice.WithProgress(p.Func()))
	require.NoError(t, err)

	require.Positive(t, p.Seen())
	require.Zero(t, p.Suppressed())
	require.Equal(t, int(p.Seen()), strings.Count(buf.String(), "msg=progress"))
	require.Contains(t, buf.String(), "kind=improved_vector")
}

// TestProgressLogger_Throttled: with a tiny rate only the burst gets through
// and the remainder is counted.
func TestProgressLogger_Throttled(t *testing.T) {
	var buf bytes.Buffer
	p := telemetry.NewProgressLogger(telemetry.NewTextLogger(&buf, slog.LevelDebug), 1e-6, 2)

	for i := 0; i < 10; i++ {
		p.Observe(lattice.Event{Kind: lattice.EventSearchCandidate, Iteration: i})
	}
	require.Equal(t, int64(10), p.Seen())
	require.Equal(t, int64(8), p.Suppressed())
	require.Equal(t, 2, strings.Count(buf.String(), "msg=progress"))
}

// TestProgressLogger_VisibleAtInfo: progress records pass the default level.
func TestProgressLogger_VisibleAtInfo(t *testing.T) {
	var buf bytes.Buffer
	p := telemetry.NewProgressLogger(telemetry.NewTextLogger(&buf, slog.LevelInfo), 0, 1)

	p.Observe(lattice.Event{Kind: lattice.EventImprovedVector, Iteration: 4, NormSquared: 9, Norm: 3})
	require.Contains(t, buf.String(), "level=INFO msg=progress")
	require.Contains(t, buf.String(), "iteration=4")
}

func TestProgressLogger_NilLogger(t *testing.T) {
	p := telemetry.NewProgressLogger(nil, 10, 0)
	require.NoError(t, p.Func()(lattice.Event{Kind: lattice.EventImprovedVector}))
	require.Equal(t, int64(1), p.Seen())
}
