// SPDX-License-Identifier: MIT
// Package lattice: size reduction.

package lattice

import (
	"fmt"
	"math"
)

// Round is the single rounding convention of the package: nearest integer,
// halves away from zero (Round(0.5) = 1, Round(-0.5) = -1, Round(2.5) = 3).
// Size reduction and enumeration centers both use it.
func Round(x float64) float64 {
	return math.Round(x)
}

// SizeReducePair reduces b_i against b_j (0 ≤ j < i < n): when |mu[i][j]| > 1/2,
// q = Round(mu[i][j]), b_i -= q·b_j and mu[i][k] -= q·mu[j][k] for k ≤ j.
// gso, B and mu[i][k>j] are untouched, so the GSO stays valid.
//
// Errors: ErrInvalidParameter (bad pair), ErrDegenerateBasis (stale refresh).
// Complexity: O(m + j).
func (l *Lattice) SizeReducePair(i, j int) error {
	if j < 0 || i <= j || i >= l.n {
		return fmt.Errorf("SizeReducePair(%d,%d): %w", i, j, ErrInvalidParameter)
	}
	if err := l.ensureFresh(); err != nil {
		return err
	}

	return l.sizeReducePair(i, j)
}

func (l *Lattice) sizeReducePair(i, j int) error {
	mi := rowOf(l.mu, i)
	if math.Abs(mi[j]) <= 0.5 {
		return nil
	}
	q := Round(mi[j])
	if err := l.basis.AddScaledRow(i, j, -q); err != nil {
		return err
	}
	mj := rowOf(l.mu, j)
	for k := 0; k <= j; k++ {
		mi[k] -= q * mj[k]
	}

	return nil
}

// sizeReduceRow reduces b_k against b_{k-1}, ..., b_0 (in that order).
func (l *Lattice) sizeReduceRow(k int) error {
	for j := k - 1; j >= 0; j-- {
		if err := l.sizeReducePair(k, j); err != nil {
			return err
		}
	}

	return nil
}

// SizeReduce makes every |mu[i][j]| ≤ 1/2 (j < i), rows ascending.
// Each row is one loop iteration for checkpoint purposes; b_0 never changes,
// so no progress events are emitted.
//
// Errors: ErrInvalidParameter (options), ErrDegenerateBasis, ErrCancelled.
// Complexity: O(n²·m).
func (l *Lattice) SizeReduce(opts ...Option) error {
	o, err := resolveOptions(opts)
	if err != nil {
		return opErrorf(OpSizeReduce, err)
	}
	r := newRun(l, OpSizeReduce, o)
	r.begin()
	err = r.sizeReduce()

	return r.end(err)
}

func (r *run) sizeReduce() error {
	if err := r.l.ensureFresh(); err != nil {
		return err
	}
	for i := 1; i < r.l.n; i++ {
		if err := r.step(); err != nil {
			return err
		}
		if err := r.l.sizeReduceRow(i); err != nil {
			return err
		}
	}

	return nil
}
