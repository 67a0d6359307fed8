// SPDX-License-Identifier: MIT
// Package lattice: classical Gram-Schmidt orthogonalization.

package lattice

import (
	"math"

	"github.com/katalvlaran/lvlattice/matrix"
)

// ComputeGSO recomputes gso, mu and B from the current basis:
//
//	for i ascending:
//	  mu[i][i] = 1, gso[i] = b_i
//	  for j < i ascending: mu[i][j] = ⟨b_i, gso[j]⟩ / B[j]; gso[i] -= mu[i][j]·gso[j]
//	  B[i] = ⟨gso[i], gso[i]⟩
//
// Errors: *DegenerateBasisError (matches ErrDegenerateBasis) when
// B[i] ≤ eps·max(1, ‖b_i‖²). The derived state is stale after an error.
//
// Complexity: O(n²·m).
func (l *Lattice) ComputeGSO() error {
	if err := l.refresh(); err != nil {
		return opErrorf(OpComputeGSO, err)
	}

	return nil
}

// ensureFresh refreshes the derived state only when a basis mutation made it stale.
func (l *Lattice) ensureFresh() error {
	if l.fresh {
		return nil
	}

	return l.ComputeGSO()
}

// refresh is the unwrapped Gram-Schmidt kernel shared by all operations.
func (l *Lattice) refresh() error {
	l.fresh = false
	var (
		i, j   int
		bi, gi []float64
		mi, gj []float64
		c      float64
		err    error
	)
	for i = 0; i < l.n; i++ {
		bi = rowOf(l.basis, i)
		gi = rowOf(l.gso, i)
		mi = rowOf(l.mu, i)
		copy(gi, bi)
		for j = range mi {
			mi[j] = 0
		}
		mi[i] = 1
		for j = 0; j < i; j++ {
			gj = rowOf(l.gso, j)
			if c, err = matrix.Dot(bi, gj); err != nil {
				return err
			}
			mi[j] = c / l.sqnorm[j]
			if err = matrix.VecAxpy(gi, -mi[j], gj); err != nil {
				return err
			}
		}
		l.sqnorm[i] = matrix.SquaredNorm(gi)
		if l.sqnorm[i] <= l.eps*math.Max(1, matrix.SquaredNorm(bi)) {
			return &DegenerateBasisError{Index: i, SquaredNorm: l.sqnorm[i]}
		}
	}
	l.fresh = true

	return nil
}
