// SPDX-License-Identifier: MIT
// Package lattice: functional options for reductions and enumeration.
//
// Invalid option values are recorded inside the options struct and surfaced
// as ErrInvalidParameter when the operation is invoked; option constructors
// never panic.

package lattice

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Documented defaults.
const (
	// DefaultDelta is the Lovász parameter used when WithDelta is absent.
	DefaultDelta = 0.99

	// DefaultMaxIterations caps state-machine visits of LLL and Deep-LLL.
	DefaultMaxIterations = 1_000_000

	// DefaultCheckpointEvery is the number of loop iterations between cancellation polls.
	DefaultCheckpointEvery = 10

	// DefaultShrink tightens the enumeration radius after each candidate.
	DefaultShrink = 0.99

	// DefaultGSOEpsilon is the relative threshold below which ‖b*_j‖² counts as zero.
	DefaultGSOEpsilon = 1e-12
)

// Option configures SizeReduce, LLL and DeepLLL.
type Option func(*Options)

// Options holds the resolved parameters of a reduction run.
type Options struct {
	// Ctx is polled at every checkpoint.
	Ctx context.Context

	// Delta is the Lovász / deep-insertion parameter, in (0.25, 1).
	Delta float64

	// OnProgress observes strict improvements of ‖basis[0]‖.
	OnProgress ProgressFunc

	// MaxIterations bounds the number of state visits.
	MaxIterations int

	// CheckpointEvery is the polling interval in loop iterations.
	CheckpointEvery int

	// Depth bounds deep-insertion positions (Deep-LLL only); 0 = unlimited.
	Depth int

	// Logger receives Debug records at start/end and Warn on the iteration cap.
	Logger *slog.Logger

	// Metrics receives one record per finished run.
	Metrics MetricsCollector

	err error
}

// DefaultOptions returns the documented defaults:
//   - context.Background()
//   - Delta = 0.99, MaxIterations = 1e6, CheckpointEvery = 10, Depth = 0
//   - no progress hook, discarded logs, NoopMetrics.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		Delta:           DefaultDelta,
		OnProgress:      nil,
		MaxIterations:   DefaultMaxIterations,
		CheckpointEvery: DefaultCheckpointEvery,
		Depth:           0,
		Logger:          slog.New(slog.DiscardHandler),
		Metrics:         NoopMetrics{},
	}
}

// resolveOptions applies opts over DefaultOptions and returns the recorded error, if any.
func resolveOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o, o.err
}

// WithContext sets the context polled at checkpoints.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDelta sets δ; values outside the open interval (0.25, 1) are rejected.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if err := checkDelta(delta); err != nil {
			o.err = err
			return
		}
		o.Delta = delta
	}
}

// WithProgress registers the progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.OnProgress = fn }
}

// WithMaxIterations sets the iteration cap; n must be positive.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrInvalidParameter, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithCheckpointEvery sets the polling interval; k must be positive.
func WithCheckpointEvery(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: CheckpointEvery must be positive (%d)", ErrInvalidParameter, k)
			return
		}
		o.CheckpointEvery = k
	}
}

// WithDepth bounds deep insertion to positions i < d or k-i ≤ d.
//
//	d > 0: bounded depth
//	d == 0: unlimited (default)
//	d < 0: invalid → ErrInvalidParameter
func WithDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: Depth cannot be negative (%d)", ErrInvalidParameter, d)
			return
		}
		o.Depth = d
	}
}

// WithLogger routes operation logs to l; nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics installs a MetricsCollector; nil keeps NoopMetrics.
func WithMetrics(m MetricsCollector) Option {
	return func(o *Options) {
		if m != nil {
			o.Metrics = m
		}
	}
}

// EnumOption configures Enumerate and ShortestVector.
type EnumOption func(*EnumOptions)

// EnumOptions holds the resolved parameters of an enumeration.
// The embedded Options carry context, progress, logging, metrics,
// the checkpoint interval and the δ used by ShortestVector's final LLL pass.
type EnumOptions struct {
	Options

	// RadiusSquared is the initial search bound; 0 means "use ‖b*_start‖²".
	RadiusSquared float64

	// Start and End delimit the searched rows [Start, End) when set by WithRange;
	// otherwise the whole basis is searched.
	Start, End int

	// Shrink multiplies the radius after every candidate, in (0, 1].
	Shrink float64

	// MaxNodes caps visited tree nodes; 0 = unlimited.
	MaxNodes int

	rangeSet bool
	err      error
}

// defaultEnumOptions returns DefaultOptions plus Shrink = 0.99 and the full range.
func defaultEnumOptions() EnumOptions {
	return EnumOptions{
		Options: DefaultOptions(),
		Shrink:  DefaultShrink,
	}
}

// resolveEnumOptions applies opts and returns the first recorded error.
func resolveEnumOptions(opts []EnumOption) (EnumOptions, error) {
	o := defaultEnumOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.err != nil {
		return o, o.err
	}

	return o, o.Options.err
}

// WithRadiusSquared sets the initial squared search radius R (finite, > 0).
func WithRadiusSquared(r float64) EnumOption {
	return func(o *EnumOptions) {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			o.err = fmt.Errorf("%w: radius² %v must be finite and positive", ErrInvalidParameter, r)
			return
		}
		o.RadiusSquared = r
	}
}

// WithRange restricts the search to rows [start, end). Bounds are checked
// against the lattice at call time.
func WithRange(start, end int) EnumOption {
	return func(o *EnumOptions) {
		o.Start, o.End, o.rangeSet = start, end, true
	}
}

// WithShrink sets the radius tightening factor f ∈ (0, 1].
func WithShrink(f float64) EnumOption {
	return func(o *EnumOptions) {
		if math.IsNaN(f) || f <= 0 || f > 1 {
			o.err = fmt.Errorf("%w: shrink %v not in (0, 1]", ErrInvalidParameter, f)
			return
		}
		o.Shrink = f
	}
}

// WithMaxNodes caps visited nodes; n must be non-negative (0 = unlimited).
func WithMaxNodes(n int) EnumOption {
	return func(o *EnumOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxNodes cannot be negative (%d)", ErrInvalidParameter, n)
			return
		}
		o.MaxNodes = n
	}
}

// WithEnumContext sets the context polled during the search.
func WithEnumContext(ctx context.Context) EnumOption {
	return func(o *EnumOptions) { WithContext(ctx)(&o.Options) }
}

// WithEnumProgress registers the candidate observer.
func WithEnumProgress(fn ProgressFunc) EnumOption {
	return func(o *EnumOptions) { o.OnProgress = fn }
}

// WithEnumDelta sets δ for the LLL pass that follows ShortestVector's embedding.
func WithEnumDelta(delta float64) EnumOption {
	return func(o *EnumOptions) { WithDelta(delta)(&o.Options) }
}

// WithReduceOptions lifts reduction options (logger, metrics, checkpoint
// interval, ...) into an enumeration call.
func WithReduceOptions(opts ...Option) EnumOption {
	return func(o *EnumOptions) {
		for _, opt := range opts {
			if opt != nil {
				opt(&o.Options)
			}
		}
	}
}
