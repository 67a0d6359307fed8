// SPDX-License-Identifier: MIT
// Package lattice: LLL reduction.
//
// Transition table (single loop variable k, 1 ≤ k ≤ n):
//
//	k == n                          → done
//	size-reduce b_k against b_{k-1..0}
//	B[k] ≥ (δ − mu[k][k-1]²)·B[k-1] → k = k+1
//	otherwise                       → swap b_{k-1}, b_k; refresh GSO; k = max(1, k-1)

package lattice

// LLL reduces the basis in place with parameter δ (WithDelta, default 0.99).
//
// Progress: EventImprovedVector after every swap that strictly shortens b_0.
// On an already reduced basis no swap happens and the basis is unchanged.
//
// Errors: ErrInvalidParameter, ErrDegenerateBasis, ErrCancelled, ErrIterationLimit.
// On error the basis is GSO-consistent and spans the same lattice.
//
// Complexity: polynomial in n and log max‖b_i‖; O(n²·m) per swap.
func (l *Lattice) LLL(opts ...Option) (Stats, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return Stats{}, opErrorf(OpLLL, err)
	}
	r := newRun(l, OpLLL, o)
	r.begin()
	err = r.lll()

	return r.stats, r.end(err)
}

func (r *run) lll() error {
	l := r.l
	if err := l.ensureFresh(); err != nil {
		return err
	}
	r.best = l.normSquared0()

	var (
		k     = 1
		delta = r.o.Delta
		mk    []float64
	)
	for k < l.n {
		if err := r.step(); err != nil {
			return err
		}
		if err := l.sizeReduceRow(k); err != nil {
			return err
		}
		mk = rowOf(l.mu, k)
		if l.sqnorm[k] >= (delta-mk[k-1]*mk[k-1])*l.sqnorm[k-1] {
			k++
			continue
		}
		if err := l.basis.SwapRows(k-1, k); err != nil {
			return err
		}
		r.stats.Swaps++
		if err := l.refresh(); err != nil {
			return err
		}
		k = max(1, k-1)
		if err := r.observe(); err != nil {
			return err
		}
	}

	return nil
}
