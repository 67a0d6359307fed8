// SPDX-License-Identifier: MIT
// Package lattice: Deep-LLL reduction (deep insertions).
//
// After size-reducing b_k, C = ‖b_k‖² is peeled down to ‖π_i(b_k)‖² for
// i = 0, 1, ...; the first i with C < δ·B[i] moves b_k to position i
// (rows i..k-1 shift down) and the walk restarts at max(i-1, 0).
// For i = k-1 the test is exactly the Lovász condition.

package lattice

// DeepLLL reduces the basis in place with deep insertions.
//
// Options: WithDelta (default 0.99), WithDepth(d) limits insertion to
// positions i < d or k-i ≤ d (0 = unlimited). Progress, checkpoints and
// the iteration cap behave as in LLL; Stats.Insertions counts insertions.
//
// Errors: ErrInvalidParameter, ErrDegenerateBasis, ErrCancelled, ErrIterationLimit.
//
// Complexity: no polynomial bound is known for unlimited depth.
func (l *Lattice) DeepLLL(opts ...Option) (Stats, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return Stats{}, opErrorf(OpDeepLLL, err)
	}
	r := newRun(l, OpDeepLLL, o)
	r.begin()
	err = r.deepLLL()

	return r.stats, r.end(err)
}

func (r *run) deepLLL() error {
	l := r.l
	if err := l.ensureFresh(); err != nil {
		return err
	}
	r.best = l.normSquared0()

	var (
		k        = 1
		i        int
		delta    = r.o.Delta
		c        float64
		mk       []float64
		inserted bool
		err      error
	)
	for k < l.n {
		if err = r.step(); err != nil {
			return err
		}
		if err = l.sizeReduceRow(k); err != nil {
			return err
		}
		if c, err = l.basis.RowDot(k, k); err != nil {
			return err
		}
		mk = rowOf(l.mu, k)
		inserted = false
		for i = 0; i < k; i++ {
			if c >= delta*l.sqnorm[i] || !r.depthAllows(i, k) {
				c -= mk[i] * mk[i] * l.sqnorm[i]
				continue
			}
			if err = l.basis.RotateRowsDown(i, k); err != nil {
				return err
			}
			r.stats.Insertions++
			if err = l.refresh(); err != nil {
				return err
			}
			k = max(i-1, 0)
			inserted = true
			if err = r.observe(); err != nil {
				return err
			}

			break
		}
		if !inserted {
			k++
		}
	}

	return nil
}

// depthAllows reports whether inserting b_k at position i respects WithDepth.
func (r *run) depthAllows(i, k int) bool {
	d := r.o.Depth

	return d == 0 || i < d || k-i <= d
}
