// SPDX-License-Identifier: MIT
package lattice_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/stretchr/testify/require"
)

func TestComputeGSO_Small(t *testing.T) {
	l := mustRows(t, [][]int64{{3, 0}, {1, 1}})
	require.NoError(t, l.ComputeGSO())

	mu, err := l.Mu()
	require.NoError(t, err)
	require.InDelta(t, 1.0/3, mu[1][0], 1e-15)

	b, err := l.SquaredNorms()
	require.NoError(t, err)
	require.InDelta(t, 9, b[0], 1e-12)
	require.InDelta(t, 1, b[1], 1e-12)

	gso, err := l.GSO()
	require.NoError(t, err)
	require.InDelta(t, 0, gso[1][0], 1e-15)
	require.InDelta(t, 1, gso[1][1], 1e-15)
}

// TestComputeGSO_Reconstruction checks b_i = b*_i + Σ_{j<i} mu[i][j]·b*_j.
func TestComputeGSO_Reconstruction(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		l := mustRandom(t, 7, seed)
		require.NoError(t, l.ComputeGSO())
		requireGSOConsistent(t, l)
	}

	rect := mustRows(t, [][]int64{{1, 2, 3, 4}, {0, 1, -1, 2}, {5, 0, 1, 1}})
	require.NoError(t, rect.ComputeGSO())
	requireGSOConsistent(t, rect)
}

func TestComputeGSO_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]int64
		index int
	}{
		{"dependent rows", [][]int64{{1, 2}, {2, 4}}, 1},
		{"zero first row", [][]int64{{0, 0}, {1, 0}}, 0},
		{"dependent third", [][]int64{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}}, 2},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			l := mustRows(t, tc.rows)
			err := l.ComputeGSO()
			require.ErrorIs(t, err, lattice.ErrDegenerateBasis)

			var de *lattice.DegenerateBasisError
			require.True(t, errors.As(err, &de))
			require.Equal(t, tc.index, de.Index)

			// Every consumer surfaces the same error.
			_, err = l.LLL()
			require.ErrorIs(t, err, lattice.ErrDegenerateBasis)
			_, err = l.Enumerate()
			require.ErrorIs(t, err, lattice.ErrDegenerateBasis)
		})
	}
}
