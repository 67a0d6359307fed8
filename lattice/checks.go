// SPDX-License-Identifier: MIT
// Package lattice: reduction predicates and basis quality measures.
//
// Predicates read the current GSO (refreshing when stale) and allow a small
// relative slack, since the values they read may come from an incremental
// update rather than a fresh orthogonalization.

package lattice

import (
	"fmt"
	"math"
)

// checkSlack is the relative tolerance used by the predicates.
const checkSlack = 1e-9

// IsSizeReduced reports whether |mu[i][j]| ≤ 1/2 for all j < i.
func (l *Lattice) IsSizeReduced() (bool, error) {
	if err := l.ensureFresh(); err != nil {
		return false, err
	}
	for i := 1; i < l.n; i++ {
		mi := rowOf(l.mu, i)
		for j := 0; j < i; j++ {
			if math.Abs(mi[j]) > 0.5+checkSlack {
				return false, nil
			}
		}
	}

	return true, nil
}

// IsLLLReduced reports whether the basis is size-reduced and satisfies the
// Lovász condition B[k] ≥ (δ − mu[k][k-1]²)·B[k-1] for every k ≥ 1.
// Errors: ErrInvalidParameter for δ outside (0.25, 1).
func (l *Lattice) IsLLLReduced(delta float64) (bool, error) {
	if err := checkDelta(delta); err != nil {
		return false, err
	}
	ok, err := l.IsSizeReduced()
	if err != nil || !ok {
		return false, err
	}
	for k := 1; k < l.n; k++ {
		m := rowOf(l.mu, k)[k-1]
		if l.sqnorm[k] < (delta-m*m)*l.sqnorm[k-1]-checkSlack*l.sqnorm[k-1] {
			return false, nil
		}
	}

	return true, nil
}

// IsDeepReduced reports whether the basis is size-reduced and every
// projection satisfies ‖π_i(b_k)‖² ≥ δ·B[i] for all i < k.
// Errors: ErrInvalidParameter for δ outside (0.25, 1).
func (l *Lattice) IsDeepReduced(delta float64) (bool, error) {
	if err := checkDelta(delta); err != nil {
		return false, err
	}
	ok, err := l.IsSizeReduced()
	if err != nil || !ok {
		return false, err
	}
	for k := 1; k < l.n; k++ {
		c, err := l.basis.RowDot(k, k)
		if err != nil {
			return false, err
		}
		mk := rowOf(l.mu, k)
		for i := 0; i < k; i++ {
			if c < delta*l.sqnorm[i]-checkSlack*math.Max(1, c) {
				return false, nil
			}
			c -= mk[i] * mk[i] * l.sqnorm[i]
		}
	}

	return true, nil
}

// Potential returns Π B[i]^(n-i), the quantity every LLL swap decreases.
// It overflows to +Inf for large bases; prefer LogPotential there.
func (l *Lattice) Potential() (float64, error) {
	lp, err := l.LogPotential()
	if err != nil {
		return 0, err
	}

	return math.Exp(lp), nil
}

// LogPotential returns Σ (n-i)·ln B[i].
func (l *Lattice) LogPotential() (float64, error) {
	if err := l.ensureFresh(); err != nil {
		return 0, err
	}
	var s float64
	for i, b := range l.sqnorm {
		s += float64(l.n-i) * math.Log(b)
	}

	return s, nil
}

// Volume returns √(Π B[i]) = √det(B·Bᵀ), invariant under unimodular row operations.
func (l *Lattice) Volume() (float64, error) {
	if err := l.ensureFresh(); err != nil {
		return 0, err
	}
	var s float64
	for _, b := range l.sqnorm {
		s += math.Log(b)
	}

	return math.Exp(s / 2), nil
}

func checkDelta(delta float64) error {
	if math.IsNaN(delta) || delta <= 0.25 || delta >= 1 {
		return fmt.Errorf("%w: delta %v not in (0.25, 1)", ErrInvalidParameter, delta)
	}

	return nil
}
