// SPDX-License-Identifier: MIT
// Package lattice: shared bookkeeping for reduction loops.
//
// A run owns the per-call counters, the best ‖b_0‖² seen so far and the
// checkpoint cadence. Every checkpoint happens at a point where the GSO
// describes the current basis, so a cancelled run leaves a consistent lattice.

package lattice

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

type run struct {
	l     *Lattice
	op    string
	o     Options
	stats Stats
	start time.Time

	best  float64 // best ‖b_0‖² reported so far
	since int     // iterations since the last checkpoint
}

func newRun(l *Lattice, op string, o Options) *run {
	return &run{l: l, op: op, o: o, best: math.Inf(1)}
}

// begin stamps the start time and logs the parameters.
func (r *run) begin() {
	r.start = time.Now()
	r.o.Logger.Debug("reduction started",
		slog.String("op", r.op),
		slog.Int("n", r.l.n),
		slog.Int("m", r.l.m),
		slog.Float64("delta", r.o.Delta),
	)
}

// end finalizes stats, logs, records metrics and wraps err with the op tag.
func (r *run) end(err error) error {
	r.stats.Duration = time.Since(r.start)
	attrs := []any{
		slog.String("op", r.op),
		slog.Int("iterations", r.stats.Iterations),
		slog.Int("swaps", r.stats.Swaps),
		slog.Int("insertions", r.stats.Insertions),
		slog.Duration("duration", r.stats.Duration),
	}
	switch {
	case err == nil:
		r.o.Logger.Debug("reduction finished", attrs...)
	case isIterationLimit(err):
		r.o.Logger.Warn("reduction hit iteration cap", append(attrs, slog.Int("max_iterations", r.o.MaxIterations))...)
	default:
		r.o.Logger.Debug("reduction aborted", append(attrs, slog.Any("error", err))...)
	}
	r.o.Metrics.RecordReduction(r.op, r.stats, err)
	if err != nil {
		return opErrorf(r.op, err)
	}

	return nil
}

// step counts one state visit, enforces the iteration cap and checkpoints
// every CheckpointEvery visits.
func (r *run) step() error {
	r.stats.Iterations++
	if r.stats.Iterations > r.o.MaxIterations {
		return fmt.Errorf("%w: %d iterations", ErrIterationLimit, r.o.MaxIterations)
	}
	r.since++
	if r.since >= r.o.CheckpointEvery {
		return r.checkpoint()
	}

	return nil
}

// checkpoint polls the context.
func (r *run) checkpoint() error {
	r.stats.Checkpoints++
	r.since = 0
	select {
	case <-r.o.Ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, r.o.Ctx.Err())
	default:
		return nil
	}
}

// observe reports a strict improvement of ‖b_0‖ and checkpoints.
// It must be called right after a GSO refresh.
func (r *run) observe() error {
	nb := r.l.normSquared0()
	if nb >= r.best {
		return nil
	}
	r.best = nb
	if r.o.OnProgress != nil {
		v, _ := r.l.basis.Row(0)
		ev := Event{
			Kind:        EventImprovedVector,
			Norm:        math.Sqrt(nb),
			NormSquared: nb,
			Vector:      v,
			Iteration:   r.stats.Iterations,
		}
		if err := r.o.OnProgress(ev); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
	}

	return r.checkpoint()
}

func isIterationLimit(err error) bool {
	return err != nil && errors.Is(err, ErrIterationLimit)
}
