// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"
	"sync/atomic"

	"github.com/katalvlaran/lvlattice/lattice"
	"golang.org/x/time/rate"
)

// ProgressLogger turns lattice progress events into log records. Records are
// throttled by a token bucket so that a fast reduction does not flood the
// output; suppressed events are counted and reported with the next record.
type ProgressLogger struct {
	log        *Logger
	limiter    *rate.Limiter
	suppressed atomic.Int64
	seen       atomic.Int64
}

// NewProgressLogger allows up to perSecond records per second with the given
// burst. perSecond <= 0 disables throttling.
func NewProgressLogger(log *Logger, perSecond float64, burst int) *ProgressLogger {
	if log == nil {
		log = NoopLogger()
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &ProgressLogger{log: log, limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Func returns a lattice.ProgressFunc that never cancels the run.
func (p *ProgressLogger) Func() lattice.ProgressFunc {
	return func(ev lattice.Event) error {
		p.Observe(ev)

		return nil
	}
}

// Observe logs ev at Info unless the rate limit is exhausted.
func (p *ProgressLogger) Observe(ev lattice.Event) {
	p.seen.Add(1)
	if !p.limiter.Allow() {
		p.suppressed.Add(1)

		return
	}
	p.log.InfoContext(context.Background(), "progress",
		"kind", ev.Kind.String(),
		"iteration", ev.Iteration,
		"norm", ev.Norm,
		"norm_squared", ev.NormSquared,
		"suppressed", p.suppressed.Swap(0),
	)
}

// Seen returns the number of events observed so far.
func (p *ProgressLogger) Seen() int64 { return p.seen.Load() }

// Suppressed returns the number of events dropped since the last record.
func (p *ProgressLogger) Suppressed() int64 { return p.suppressed.Load() }
