// SPDX-License-Identifier: MIT
package telemetry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/katalvlaran/lvlattice/internal/telemetry"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := telemetry.ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	_, err := telemetry.ParseLevel("loud")
	require.ErrorIs(t, err, telemetry.ErrUnknownLevel)
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	l, err := telemetry.New(&buf, "json", "debug")
	require.NoError(t, err)
	l.WithRunID("r-1").WithOp(lattice.OpLLL).Debug("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.Equal(t, "r-1", rec["run_id"])
	require.Equal(t, "LLL", rec["op"])

	buf.Reset()
	l, err = telemetry.New(&buf, "text", "warn")
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")

	_, err = telemetry.New(&buf, "xml", "info")
	require.ErrorIs(t, err, telemetry.ErrUnknownFormat)
	_, err = telemetry.New(&buf, "json", "verbose")
	require.ErrorIs(t, err, telemetry.ErrUnknownLevel)
}

func TestLogger_LogReductionAndEnumeration(t *testing.T) {
	var buf bytes.Buffer
	l := telemetry.NewTextLogger(&buf, slog.LevelInfo).WithShape(4, 4)
	ctx := context.Background()

	l.LogReduction(ctx, lattice.OpDeepLLL, lattice.Stats{Iterations: 12, Insertions: 3}, nil)
	require.Contains(t, buf.String(), `msg="reduction completed"`)
	require.Contains(t, buf.String(), "insertions=3")
	require.Contains(t, buf.String(), "n=4")

	buf.Reset()
	l.LogReduction(ctx, lattice.OpLLL, lattice.Stats{}, lattice.ErrCancelled)
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), `msg="reduction failed"`)

	buf.Reset()
	l.LogEnumeration(ctx, lattice.EnumResult{Nodes: 40, Candidates: 2, NormSquared: 2}, nil)
	require.Contains(t, buf.String(), "nodes=40")
	require.Contains(t, buf.String(), "norm_squared=2")

	buf.Reset()
	l.LogEnumeration(ctx, lattice.EnumResult{Nodes: 3}, errors.New("boom"))
	require.Contains(t, buf.String(), "error=boom")
}

// TestLogger_DrivesLattice: the wrapped *slog.Logger plugs into lattice options.
func TestLogger_DrivesLattice(t *testing.T) {
	var buf bytes.Buffer
	l := telemetry.NewJSONLogger(&buf, slog.LevelDebug).WithRunID("abc")

	lat, err := lattice.FromRows([][]int64{{3, 0}, {1, 1}})
	require.NoError(t, err)
	_, err = lat.LLL(lattice.WithLogger(l.Logger))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		require.Contains(t, line, `"run_id":"abc"`)
	}
}

func TestNoopLogger(t *testing.T) {
	l := telemetry.NoopLogger()
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
	require.NotNil(t, telemetry.NewLogger(nil))
}
