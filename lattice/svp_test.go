// SPDX-License-Identifier: MIT
package lattice_test

import (
	"testing"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/stretchr/testify/require"
)

// TestShortestVector_Embeds: (1,1) = b_1 replaces b_0 and the closing LLL
// pass size-reduces the second row.
func TestShortestVector_Embeds(t *testing.T) {
	rec := &recordingMetrics{}
	l := mustRows(t, [][]int64{{3, 0}, {1, 1}})
	res, err := l.ShortestVector(lattice.WithReduceOptions(lattice.WithMetrics(rec)))
	require.NoError(t, err)

	require.Equal(t, [][]int64{{1, 1}, {-1, 2}}, l.IntBasis())
	require.Equal(t, []int64{1, 0}, res.Coefficients)
	require.Equal(t, []float64{1, 1}, res.Vector)
	require.Equal(t, 2.0, res.NormSquared)
	require.InEpsilon(t, 3, absDet(t, l), epsDet)

	require.Len(t, rec.enums, 1)
	require.Equal(t, []string{lattice.OpShortestVector}, rec.ops)
}

func TestShortestVector_AlreadyShortest(t *testing.T) {
	l := mustRows(t, [][]int64{{1, 0}, {0, 1}})
	res, err := l.ShortestVector()
	require.NoError(t, err)
	require.Equal(t, 1.0, res.NormSquared)
	require.Equal(t, []int64{1, 0}, res.Coefficients)
	require.Equal(t, [][]int64{{1, 0}, {0, 1}}, l.IntBasis())
}

func TestShortestVector_RandomBases(t *testing.T) {
	for _, seed := range []int64{3, 4, 5} {
		l := mustRandom(t, 6, seed)
		det := absDet(t, l)
		_, err := l.LLL(lattice.WithDelta(0.75))
		require.NoError(t, err)

		res, err := l.ShortestVector(lattice.WithShrink(1))
		require.NoError(t, err)

		b0, err := l.NormSquared(0)
		require.NoError(t, err)
		require.Equal(t, b0, res.NormSquared)
		for i := 1; i < l.Rows(); i++ {
			bi, err := l.NormSquared(i)
			require.NoError(t, err)
			require.LessOrEqual(t, b0, bi)
		}

		ok, err := l.IsLLLReduced(0.75)
		require.NoError(t, err)
		require.True(t, ok, "seed=%d", seed)
		require.InEpsilon(t, det, absDet(t, l), epsDet)
		requireGSOConsistent(t, l)
	}
}

func TestShortestVector_Range(t *testing.T) {
	l := mustRows(t, [][]int64{{3, 0}, {1, 1}})
	_, err := l.ShortestVector(lattice.WithRange(0, 1))
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
	require.Equal(t, [][]int64{{3, 0}, {1, 1}}, l.IntBasis())

	_, err = l.ShortestVector(lattice.WithRange(0, 2))
	require.NoError(t, err)
}

func TestShortestVector_InvalidDelta(t *testing.T) {
	l := mustRows(t, [][]int64{{3, 0}, {1, 1}})
	_, err := l.ShortestVector(lattice.WithEnumDelta(0.1))
	require.ErrorIs(t, err, lattice.ErrInvalidParameter)
}
