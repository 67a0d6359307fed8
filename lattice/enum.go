// SPDX-License-Identifier: MIT
// Package lattice: Schnorr–Euchner enumeration (bounded shortest-vector search).
//
// The search walks the tree of integer coefficient vectors v over rows
// [start, end) depth-first. At level k the partial squared norm is
//
//	rho[k] = rho[k+1] + (v[k] − c[k])²·B[k],   c[k] = −Σ_{i>k} v[i]·mu[i][k]
//
// and subtrees with rho[k] > R are pruned. Siblings are visited in zig-zag
// order around the center c[k]; at levels where every higher coefficient is
// zero only the positive half is explored (v and −v have the same norm).
// Each leaf inside the radius becomes the new best candidate and tightens
// R to min(shrink·rho[0], R).
//
// Partial center sums are cached in sigma ((n+1)×n) and recomputed only
// from the highest level whose coefficient changed (r[]).
//
// Governance:
//   - Checkpoints every CheckpointEvery nodes and on every candidate.
//   - Cancellation returns the best candidate so far with ErrCancelled.
//   - MaxNodes > 0 caps the search with ErrIterationLimit.

package lattice

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/lvlattice/matrix"
)

// enumEngine holds the working arrays of one Enumerate call.
type enumEngine struct {
	l      *Lattice
	o      EnumOptions
	n      int // levels (end − start)
	offset int // start

	radius float64   // current bound R
	center []float64 // c
	weight []int64   // zig-zag step w
	coeff  []int64   // v
	rho    []float64 // partial norms, len n+1
	r      []int     // sigma recompute bounds, len n+1
	sigma  *matrix.Dense

	best      []int64
	bestNorm  float64
	found     bool
	nodes     int
	cands     int
	since     int
	lastLevel int // deepest level with a non-zero coefficient so far
}

// Enumerate searches rows [start, end) (WithRange, default all) for the
// shortest non-zero lattice vector with squared (projected) norm ≤ R
// (WithRadiusSquared, default B[start]).
//
// Progress: EventSearchCandidate for every recorded candidate.
//
// Errors: ErrInvalidParameter (options, range), ErrInvalidShape (empty range),
// ErrDegenerateBasis, ErrNoVector, ErrCancelled and ErrIterationLimit (both
// with the best candidate so far in the result).
//
// Complexity: exponential in the range length; O(n) work per node.
func (l *Lattice) Enumerate(opts ...EnumOption) (EnumResult, error) {
	o, err := resolveEnumOptions(opts)
	if err != nil {
		return EnumResult{}, opErrorf(OpEnumerate, err)
	}

	return l.enumerate(OpEnumerate, o)
}

func (l *Lattice) enumerate(op string, o EnumOptions) (EnumResult, error) {
	start := time.Now()
	o.Logger.Debug("enumeration started", slog.String("op", op), slog.Int("n", l.n))

	res, err := l.runEnum(o)
	elapsed := time.Since(start)
	o.Metrics.RecordEnumeration(res, elapsed, err)
	if err != nil {
		o.Logger.Debug("enumeration stopped",
			slog.String("op", op), slog.Int("nodes", res.Nodes), slog.Any("error", err))

		return res, opErrorf(op, err)
	}
	o.Logger.Debug("enumeration finished",
		slog.String("op", op),
		slog.Int("nodes", res.Nodes),
		slog.Int("candidates", res.Candidates),
		slog.Float64("norm_squared", res.NormSquared),
		slog.Duration("duration", elapsed),
	)

	return res, nil
}

func (l *Lattice) runEnum(o EnumOptions) (EnumResult, error) {
	s, e := 0, l.n
	if o.rangeSet {
		s, e = o.Start, o.End
		if s < 0 || e > l.n || s > e {
			return EnumResult{}, fmt.Errorf("%w: range [%d, %d) for %d rows", ErrInvalidParameter, s, e, l.n)
		}
		if s == e {
			return EnumResult{}, fmt.Errorf("%w: empty range [%d, %d)", ErrInvalidShape, s, e)
		}
	}
	if err := l.ensureFresh(); err != nil {
		return EnumResult{}, err
	}
	radius := o.RadiusSquared
	if radius == 0 {
		radius = l.sqnorm[s]
	}

	eng := &enumEngine{l: l, o: o, n: e - s, offset: s, radius: radius}
	if eng.n == 1 {
		return eng.single()
	}
	if err := eng.init(); err != nil {
		return EnumResult{}, err
	}
	err := eng.search()
	if !eng.found {
		if err == nil {
			err = ErrNoVector
		}

		return EnumResult{Nodes: eng.nodes}, err
	}
	res, rerr := eng.result()
	if rerr != nil {
		return res, rerr
	}

	return res, err
}

// single handles a one-row range: b_start is the only candidate up to sign.
func (e *enumEngine) single() (EnumResult, error) {
	e.nodes = 1
	if e.l.sqnorm[e.offset] > e.radius {
		return EnumResult{Nodes: e.nodes}, ErrNoVector
	}
	e.best = []int64{1}
	e.bestNorm = e.l.sqnorm[e.offset]
	e.found = true
	e.cands = 1

	return e.result()
}

func (e *enumEngine) init() error {
	sigma, err := matrix.NewDense(e.n+1, e.n, matrix.WithNoValidateNaNInf())
	if err != nil {
		return err
	}
	e.sigma = sigma
	e.center = make([]float64, e.n)
	e.weight = make([]int64, e.n)
	e.coeff = make([]int64, e.n)
	e.rho = make([]float64, e.n+1)
	e.r = make([]int, e.n+1)
	for i := range e.r {
		e.r[i] = i
	}
	e.coeff[0] = 1

	return nil
}

// mu returns mu[offset+i][offset+k].
func (e *enumEngine) mu(i, k int) float64 {
	return rowOf(e.l.mu, e.offset+i)[e.offset+k]
}

// search runs the zig-zag loop until the tree is exhausted or a checkpoint aborts.
func (e *enumEngine) search() error {
	var (
		k    int
		diff float64
		i    int
	)
	for {
		diff = float64(e.coeff[k]) - e.center[k]
		e.rho[k] = e.rho[k+1] + diff*diff*e.l.sqnorm[e.offset+k]
		if err := e.step(); err != nil {
			return err
		}

		if e.rho[k] <= e.radius {
			if k == 0 {
				if e.rho[0] > 0 {
					if err := e.record(); err != nil {
						return err
					}
				}
				e.next(0)

				continue
			}
			// Descend: refresh the cached partial centers for level k-1.
			k--
			e.r[k] = max(e.r[k], e.r[k+1])
			for i = e.r[k+1] - 1; i > k; i-- {
				rowOf(e.sigma, i)[k] = rowOf(e.sigma, i+1)[k] + float64(e.coeff[i])*e.mu(i, k)
			}
			e.center[k] = -rowOf(e.sigma, k+1)[k]
			e.coeff[k] = int64(Round(e.center[k]))
			e.weight[k] = 1

			continue
		}

		// Ascend.
		k++
		if k == e.n {
			return nil
		}
		e.r[k] = k + 1
		e.next(k)
	}
}

// next moves coeff[k] to its next zig-zag sibling.
func (e *enumEngine) next(k int) {
	if k >= e.lastLevel {
		e.lastLevel = k
		e.coeff[k]++

		return
	}
	if float64(e.coeff[k]) > e.center[k] {
		e.coeff[k] -= e.weight[k]
	} else {
		e.coeff[k] += e.weight[k]
	}
	e.weight[k]++
}

// step counts a node, enforces MaxNodes and polls the context.
func (e *enumEngine) step() error {
	e.nodes++
	if e.o.MaxNodes > 0 && e.nodes > e.o.MaxNodes {
		return fmt.Errorf("%w: %d nodes", ErrIterationLimit, e.o.MaxNodes)
	}
	e.since++
	if e.since >= e.o.CheckpointEvery {
		return e.checkpoint()
	}

	return nil
}

func (e *enumEngine) checkpoint() error {
	e.since = 0
	select {
	case <-e.o.Ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, e.o.Ctx.Err())
	default:
		return nil
	}
}

// record stores the current leaf, tightens the radius and notifies.
func (e *enumEngine) record() error {
	if e.best == nil {
		e.best = make([]int64, e.n)
	}
	copy(e.best, e.coeff)
	e.bestNorm = e.rho[0]
	e.found = true
	e.cands++
	e.radius = math.Min(e.o.Shrink*e.rho[0], e.radius)

	if e.o.OnProgress != nil {
		res, err := e.result()
		if err != nil {
			return err
		}
		ev := Event{
			Kind:         EventSearchCandidate,
			Norm:         math.Sqrt(res.NormSquared),
			NormSquared:  res.NormSquared,
			Vector:       res.Vector,
			Coefficients: res.Coefficients,
			Iteration:    e.nodes,
		}
		if err = e.o.OnProgress(ev); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
	}

	return e.checkpoint()
}

// result materializes the best candidate in full-basis coordinates.
func (e *enumEngine) result() (EnumResult, error) {
	coeffs := make([]int64, e.l.n)
	copy(coeffs[e.offset:], e.best)
	vec, err := e.l.Combine(coeffs)
	if err != nil {
		return EnumResult{}, err
	}
	norm := e.bestNorm
	if e.offset == 0 {
		norm = matrix.SquaredNorm(vec)
	}

	return EnumResult{
		Coefficients: coeffs,
		Vector:       vec,
		NormSquared:  norm,
		Nodes:        e.nodes,
		Candidates:   e.cands,
	}, nil
}
