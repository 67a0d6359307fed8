// SPDX-License-Identifier: MIT
// Package lattice_test provides small helpers shared across *_test.go files.
package lattice_test

import (
	"math"
	"testing"
	"time"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/matrix"
	"github.com/stretchr/testify/require"
)

const (
	// epsGSO bounds the relative residual of b_i − (b*_i + Σ mu[i][j]·b*_j).
	epsGSO = 1e-9

	// epsDet is the relative tolerance for determinant comparisons.
	epsDet = 1e-9

	// deltaDefault mirrors lattice.DefaultDelta.
	deltaDefault = 0.99
)

// mustRows builds a lattice from literal integer rows.
func mustRows(t testing.TB, rows [][]int64) *lattice.Lattice {
	t.Helper()
	l, err := lattice.FromRows(rows)
	require.NoError(t, err)

	return l
}

// mustRandom builds a reference-policy (knapsack) lattice.
func mustRandom(t testing.TB, n int, seed int64) *lattice.Lattice {
	t.Helper()
	l, err := lattice.New(n, n, lattice.WithSeed(seed))
	require.NoError(t, err)

	return l
}

// absDet returns |det(basis)| for a square lattice.
func absDet(t testing.TB, l *lattice.Lattice) float64 {
	t.Helper()
	b, err := matrix.NewDenseFrom(l.Basis())
	require.NoError(t, err)
	d, err := matrix.Det(b)
	require.NoError(t, err)

	return math.Abs(d)
}

// gramDet returns det(B·Bᵀ), the squared volume, for any n×m lattice.
// The Gram matrix is built twice, by Gram and by Mul(B, Bᵀ), and both must agree.
func gramDet(t testing.TB, l *lattice.Lattice) float64 {
	t.Helper()
	b, err := matrix.NewDenseFrom(l.Basis())
	require.NoError(t, err)
	g, err := matrix.Gram(b)
	require.NoError(t, err)
	bt, err := matrix.Transpose(b)
	require.NoError(t, err)
	prod, err := matrix.Mul(b, bt)
	require.NoError(t, err)
	require.True(t, g.Equal(prod.(*matrix.Dense), 0), "Gram and B·Bᵀ differ")
	d, err := matrix.Det(g)
	require.NoError(t, err)

	return d
}

// requireGSOConsistent checks b_i = b*_i + Σ_{j<i} mu[i][j]·b*_j and
// pairwise orthogonality of the b*_i.
func requireGSOConsistent(t testing.TB, l *lattice.Lattice) {
	t.Helper()
	gso, err := l.GSO()
	require.NoError(t, err)
	mu, err := l.Mu()
	require.NoError(t, err)
	basis := l.Basis()

	for i := range basis {
		scale := math.Max(1, matrix.SquaredNorm(basis[i]))
		rebuilt := append([]float64(nil), gso[i]...)
		for j := 0; j < i; j++ {
			require.NoError(t, matrix.VecAxpy(rebuilt, mu[i][j], gso[j]))
		}
		for k := range rebuilt {
			require.InDelta(t, basis[i][k], rebuilt[k], epsGSO*math.Sqrt(scale), "row %d col %d", i, k)
		}
		require.Equal(t, 1.0, mu[i][i])
		for j := i + 1; j < len(basis); j++ {
			require.Zero(t, mu[i][j])
			d, err := matrix.Dot(gso[i], gso[j])
			require.NoError(t, err)
			require.InDelta(t, 0, d, epsGSO*scale)
		}
	}
}

// bruteShortest returns the smallest non-zero ‖Σ c_i b_i‖² over c ∈ [-box, box]^n.
func bruteShortest(rows [][]int64, box int64) int64 {
	n, m := len(rows), len(rows[0])
	c := make([]int64, n)
	for i := range c {
		c[i] = -box
	}
	best := int64(math.MaxInt64)
	v := make([]int64, m)
	for {
		zero := true
		for k := range v {
			v[k] = 0
		}
		for i := 0; i < n; i++ {
			if c[i] != 0 {
				zero = false
			}
			for k := 0; k < m; k++ {
				v[k] += c[i] * rows[i][k]
			}
		}
		if !zero {
			var s int64
			for _, x := range v {
				s += x * x
			}
			if s < best {
				best = s
			}
		}
		// odometer increment
		i := 0
		for ; i < n; i++ {
			c[i]++
			if c[i] <= box {
				break
			}
			c[i] = -box
		}
		if i == n {
			return best
		}
	}
}

// recordingMetrics captures MetricsCollector calls.
type recordingMetrics struct {
	ops   []string
	stats []lattice.Stats
	errs  []error
	enums []lattice.EnumResult
}

func (r *recordingMetrics) RecordReduction(op string, s lattice.Stats, err error) {
	r.ops = append(r.ops, op)
	r.stats = append(r.stats, s)
	r.errs = append(r.errs, err)
}

func (r *recordingMetrics) RecordEnumeration(res lattice.EnumResult, _ time.Duration, err error) {
	r.enums = append(r.enums, res)
	r.errs = append(r.errs, err)
}
