// SPDX-License-Identifier: MIT
// Package lattice: shortest-vector embedding.
//
// ShortestVector enumerates the full basis and, when the result beats b_0,
// rewrites the basis so that b_0 becomes that vector. The rewrite is a chain
// of 2×2 unimodular steps on adjacent rows, folding the coefficient vector
// from the last row upwards:
//
//	(a, b) = (c[i-1], c[i]),  g = gcd(a, b),  x·(a/g) + y·(b/g) = 1
//	b_{i-1} ← (a/g)·b_{i-1} + (b/g)·b_i
//	b_i     ← −y·b_{i-1} + x·b_i            (det = 1)
//	c[i-1] ← g, c[i] ← 0
//
// A final LLL pass shortens the remaining rows; it cannot displace b_0
// because no vector is shorter.

package lattice

import (
	"fmt"

	"github.com/katalvlaran/lvlattice/matrix"
)

// ShortestVector finds a shortest non-zero vector and installs it as b_0.
//
// Options: every EnumOption except WithRange (the full basis is searched);
// WithEnumDelta sets δ of the closing LLL pass (default 0.99).
// When b_0 is already shortest the basis is not modified.
//
// The returned result is expressed in the final basis (Coefficients = e_0
// after an embedding). Nodes and Candidates count the enumeration only.
//
// Errors: as Enumerate and LLL.
func (l *Lattice) ShortestVector(opts ...EnumOption) (EnumResult, error) {
	o, err := resolveEnumOptions(opts)
	if err != nil {
		return EnumResult{}, opErrorf(OpShortestVector, err)
	}
	if o.rangeSet && (o.Start != 0 || o.End != l.n) {
		return EnumResult{}, fmt.Errorf("%s: %w: range not supported", OpShortestVector, ErrInvalidParameter)
	}
	o.rangeSet = false

	res, err := l.enumerate(OpShortestVector, o)
	if err != nil {
		return res, err
	}
	b0 := l.normSquared0()
	if res.NormSquared >= b0 {
		return res, nil
	}

	if err = l.embed(res.Coefficients); err != nil {
		return res, opErrorf(OpShortestVector, err)
	}
	r := newRun(l, OpShortestVector, o.Options)
	r.begin()
	if err = r.lll(); err != nil {
		return res, r.end(err)
	}
	if err = r.end(nil); err != nil {
		return res, err
	}

	coeffs := make([]int64, l.n)
	coeffs[0] = 1
	vec, _ := l.basis.Row(0)

	return EnumResult{
		Coefficients: coeffs,
		Vector:       vec,
		NormSquared:  matrix.SquaredNorm(vec),
		Nodes:        res.Nodes,
		Candidates:   res.Candidates,
	}, nil
}

// embed applies the adjacent-row gcd folding so that b_0 = ±(Σ c_i b_i)/gcd(c).
// The GSO is refreshed at the end.
func (l *Lattice) embed(coeffs []int64) error {
	if len(coeffs) != l.n {
		return fmt.Errorf("embed: %w", ErrInvalidParameter)
	}
	c := make([]int64, l.n)
	copy(c, coeffs)

	var (
		i          int
		a, b       int64
		g, x, y    int64
		ag, bg     int64
		prev, curr []float64
		err        error
	)
	for i = l.n - 1; i >= 1; i-- {
		a, b = c[i-1], c[i]
		if b == 0 {
			continue
		}
		g, x, y = extGCD(a, b)
		ag, bg = a/g, b/g
		if prev, err = l.basis.Row(i - 1); err != nil {
			return err
		}
		if curr, err = l.basis.Row(i); err != nil {
			return err
		}
		newPrev := make([]float64, l.m)
		newCurr := make([]float64, l.m)
		for k := 0; k < l.m; k++ {
			newPrev[k] = float64(ag)*prev[k] + float64(bg)*curr[k]
			newCurr[k] = float64(-y)*prev[k] + float64(x)*curr[k]
		}
		if err = l.basis.SetRow(i-1, newPrev); err != nil {
			return err
		}
		if err = l.basis.SetRow(i, newCurr); err != nil {
			return err
		}
		c[i-1], c[i] = g, 0
	}
	l.fresh = false

	return l.refresh()
}

// extGCD returns g = gcd(a, b) ≥ 0 and x, y with a·x + b·y = g.
func extGCD(a, b int64) (g, x, y int64) {
	oldR, r := a, b
	oldS, s := int64(1), int64(0)
	oldT, t := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
		oldT, t = t, oldT-q*t
	}
	if oldR < 0 {
		oldR, oldS, oldT = -oldR, -oldS, -oldT
	}

	return oldR, oldS, oldT
}
