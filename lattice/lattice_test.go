// SPDX-License-Identifier: MIT
package lattice_test

import (
	"testing"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidShape(t *testing.T) {
	for _, tc := range []struct {
		name string
		n, m int
	}{
		{"zero rows", 0, 3},
		{"negative rows", -1, 3},
		{"more rows than cols", 3, 2},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := lattice.New(tc.n, tc.m)
			require.ErrorIs(t, err, lattice.ErrInvalidShape)
		})
	}
}

// TestNew_ReferencePolicy checks the knapsack layout: 1 on the diagonal,
// column 0 uniform in [10000, 99999].
func TestNew_ReferencePolicy(t *testing.T) {
	const n = 6
	l := mustRandom(t, n, 42)
	require.Equal(t, n, l.Rows())
	require.Equal(t, n, l.Cols())

	for i, row := range l.IntBasis() {
		require.GreaterOrEqual(t, row[0], lattice.DefaultSeedMin)
		require.LessOrEqual(t, row[0], lattice.DefaultSeedMax)
		for j := 1; j < n; j++ {
			if j == i {
				require.Equal(t, int64(1), row[j])
			} else {
				require.Zero(t, row[j])
			}
		}
	}
	// Lower-triangular with diagonal (a_0, 1, ..., 1).
	require.InEpsilon(t, float64(l.IntBasis()[0][0]), absDet(t, l), epsDet)
}

func TestNew_SeedDeterminism(t *testing.T) {
	a := mustRandom(t, 5, 7)
	b := mustRandom(t, 5, 7)
	c := mustRandom(t, 5, 8)
	require.Equal(t, a.IntBasis(), b.IntBasis())
	require.NotEqual(t, a.IntBasis(), c.IntBasis())

	// seed 0 maps to the fixed default stream
	z1, err := lattice.New(4, 4)
	require.NoError(t, err)
	z2, err := lattice.New(4, 4, lattice.WithSeed(0))
	require.NoError(t, err)
	require.Equal(t, z1.IntBasis(), z2.IntBasis())
}

func TestNew_SeedRangeAndPolicies(t *testing.T) {
	l, err := lattice.New(3, 3, lattice.WithSeedRange(5, 5))
	require.NoError(t, err)
	require.Equal(t, [][]int64{{5, 0, 0}, {5, 1, 0}, {5, 0, 1}}, l.IntBasis())

	l, err = lattice.New(2, 3, lattice.WithSeedPolicy(lattice.DiagonalSeed{}))
	require.NoError(t, err)
	require.Equal(t, [][]int64{{1, 0, 0}, {0, 1, 0}}, l.IntBasis())

	_, err = lattice.New(2, 2, lattice.WithSeedRange(10, 1))
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
	_, err = lattice.New(2, 2, lattice.WithSeedPolicy(nil))
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
	_, err = lattice.New(2, 2, lattice.WithGSOEpsilon(-1))
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
	_, err = lattice.New(2, 2, lattice.WithSeedPolicy(lattice.ExplicitSeed{Rows: [][]int64{{1, 0}}}))
	require.ErrorIs(t, err, lattice.ErrInvalidShape)
}

func TestFromRows(t *testing.T) {
	l := mustRows(t, [][]int64{{1, 2, 3}, {4, 5, 6}})
	require.Equal(t, 2, l.Rows())
	require.Equal(t, 3, l.Cols())
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, l.Basis())

	_, err := lattice.FromRows(nil)
	require.ErrorIs(t, err, lattice.ErrInvalidShape)
	_, err = lattice.FromRows([][]int64{{1, 2}, {3}})
	require.ErrorIs(t, err, lattice.ErrInvalidShape)
	_, err = lattice.FromRows([][]int64{{1}, {2}})
	require.ErrorIs(t, err, lattice.ErrInvalidShape) // n > m
}

func TestFromFloatRows(t *testing.T) {
	l, err := lattice.FromFloatRows([][]float64{{2, 1}, {1, 2}})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{2, 1}, {1, 2}}, l.IntBasis())

	_, err = lattice.FromFloatRows([][]float64{{1.5, 0}, {0, 1}})
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
	_, err = lattice.FromFloatRows(nil)
	require.ErrorIs(t, err, lattice.ErrInvalidShape)
}

func TestAccessorsAndCombine(t *testing.T) {
	l := mustRows(t, [][]int64{{2, 1}, {1, 2}})

	v, err := l.Vector(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, v)
	v[0] = 99 // copy
	require.Equal(t, [][]float64{{2, 1}, {1, 2}}, l.Basis())

	ns, err := l.NormSquared(0)
	require.NoError(t, err)
	require.Equal(t, 5.0, ns)

	_, err = l.Vector(2)
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
	_, err = l.NormSquared(-1)
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)

	w, err := l.Combine([]int64{-1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 1}, w)
	_, err = l.Combine([]int64{1})
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
}

func TestClone_Independent(t *testing.T) {
	l := mustRows(t, [][]int64{{3, 0}, {1, 1}})
	c := l.Clone()
	_, err := c.LLL()
	require.NoError(t, err)
	require.Equal(t, [][]int64{{3, 0}, {1, 1}}, l.IntBasis())
	require.NotEqual(t, l.IntBasis(), c.IntBasis())
}

func TestDeriveSeed(t *testing.T) {
	require.Equal(t, lattice.DeriveSeed(1, 2), lattice.DeriveSeed(1, 2))
	require.NotEqual(t, lattice.DeriveSeed(1, 2), lattice.DeriveSeed(1, 3))
	require.NotEqual(t, lattice.DeriveSeed(1, 2), lattice.DeriveSeed(2, 2))
}
