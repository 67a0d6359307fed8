// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/katalvlaran/lvlattice/lattice"
)

// Log formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger wraps slog.Logger with lattice-specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler; nil means a text handler on stderr at Info.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger writes JSON records at or above level to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger writes logfmt-style records at or above level to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// New builds a logger from configuration strings.
// Errors: ErrUnknownFormat, ErrUnknownLevel.
func New(w io.Writer, format, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewTextLogger(w, lvl), nil
	case FormatJSON:
		return NewJSONLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseLevel accepts debug, info, warn, error (any case); empty means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}

	return lvl, nil
}

// WithRunID tags every record with the run identifier.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run_id", id)}
}

// WithOp tags every record with the operation name.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{Logger: l.Logger.With("op", op)}
}

// WithShape adds the basis shape.
func (l *Logger) WithShape(n, m int) *Logger {
	return &Logger{Logger: l.Logger.With("n", n, "m", m)}
}

// LogReduction logs the outcome of a reduction run.
func (l *Logger) LogReduction(ctx context.Context, op string, stats lattice.Stats, err error) {
	if err != nil {
		l.WarnContext(ctx, "reduction failed",
			"op", op,
			"iterations", stats.Iterations,
			"swaps", stats.Swaps,
			"insertions", stats.Insertions,
			"error", err,
		)

		return
	}
	l.InfoContext(ctx, "reduction completed",
		"op", op,
		"iterations", stats.Iterations,
		"swaps", stats.Swaps,
		"insertions", stats.Insertions,
		"duration", stats.Duration,
	)
}

// LogEnumeration logs the outcome of an enumeration.
func (l *Logger) LogEnumeration(ctx context.Context, res lattice.EnumResult, err error) {
	if err != nil {
		l.WarnContext(ctx, "enumeration failed",
			"nodes", res.Nodes,
			"candidates", res.Candidates,
			"error", err,
		)

		return
	}
	l.InfoContext(ctx, "enumeration completed",
		"nodes", res.Nodes,
		"candidates", res.Candidates,
		"norm_squared", res.NormSquared,
	)
}
