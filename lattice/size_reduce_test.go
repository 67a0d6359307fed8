// SPDX-License-Identifier: MIT
package lattice_test

import (
	"testing"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/stretchr/testify/require"
)

// TestRound_TieBreak pins round-half-away-from-zero.
func TestRound_TieBreak(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0.5, 1},
		{-0.5, -1},
		{1.5, 2},
		{2.5, 3}, // half-to-even would give 2
		{-2.5, -3},
		{0.49, 0},
		{-0.51, -1},
		{3, 3},
	} {
		require.Equal(t, tc.want, lattice.Round(tc.in), "Round(%v)", tc.in)
	}
}

func TestSizeReducePair(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][]int64
		want   [][]int64
		wantMu float64
	}{
		{"inside interval is a no-op", [][]int64{{2, 0}, {1, 1}}, [][]int64{{2, 0}, {1, 1}}, 0.5},
		{"positive tie rounds up", [][]int64{{2, 0}, {5, 1}}, [][]int64{{2, 0}, {-1, 1}}, -0.5},
		{"negative tie rounds down", [][]int64{{2, 0}, {-5, 1}}, [][]int64{{2, 0}, {1, 1}}, 0.5},
		{"integral mu clears", [][]int64{{1, 0}, {3, 1}}, [][]int64{{1, 0}, {0, 1}}, 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			l := mustRows(t, tc.rows)
			require.NoError(t, l.SizeReducePair(1, 0))
			require.Equal(t, tc.want, l.IntBasis())

			mu, err := l.Mu()
			require.NoError(t, err)
			require.InDelta(t, tc.wantMu, mu[1][0], 1e-12)
		})
	}
}

func TestSizeReducePair_InvalidPair(t *testing.T) {
	l := mustRows(t, [][]int64{{1, 0}, {0, 1}})
	for _, p := range [][2]int{{0, 0}, {1, 2}, {2, 1}, {1, -1}, {0, 1}} {
		require.ErrorIs(t, l.SizeReducePair(p[0], p[1]), lattice.ErrInvalidParameter, "pair %v", p)
	}
}

// TestSizeReduce_Invariants: all |mu| ≤ 1/2, B unchanged, lattice unchanged.
func TestSizeReduce_Invariants(t *testing.T) {
	l := mustRows(t, [][]int64{
		{1, 0, 0, 0},
		{7, 1, 0, 0},
		{-13, 4, 1, 0},
		{22, -9, 6, 1},
	})
	before, err := l.SquaredNorms()
	require.NoError(t, err)
	det := absDet(t, l)

	require.NoError(t, l.SizeReduce())

	ok, err := l.IsSizeReduced()
	require.NoError(t, err)
	require.True(t, ok)

	// Recompute from scratch: B must not have moved.
	require.NoError(t, l.ComputeGSO())
	after, err := l.SquaredNorms()
	require.NoError(t, err)
	for i := range before {
		require.InEpsilon(t, before[i], after[i], 1e-9)
	}
	require.InEpsilon(t, det, absDet(t, l), epsDet)
	requireGSOConsistent(t, l)

	// Unit lower-triangular basis size-reduces to the identity.
	require.Equal(t, [][]int64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}, l.IntBasis())
}

func TestSizeReduce_RandomKeepsLattice(t *testing.T) {
	l := mustRandom(t, 6, 11)
	det := absDet(t, l)
	require.NoError(t, l.SizeReduce())
	ok, err := l.IsSizeReduced()
	require.NoError(t, err)
	require.True(t, ok)
	require.InEpsilon(t, det, absDet(t, l), epsDet)
}
