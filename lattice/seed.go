// SPDX-License-Identifier: MIT
// Package lattice: seed policies producing the initial integer basis.

package lattice

import (
	"fmt"
	"math"
	"math/rand"
)

// Reference range for RandomSeed.
const (
	DefaultSeedMin int64 = 10000
	DefaultSeedMax int64 = 99999
)

// SeedPolicy fills an n×m integer basis (stored as float64).
type SeedPolicy interface {
	Seed(n, m int) ([][]float64, error)
}

// DiagonalSeed puts 1 on the diagonal and 0 elsewhere.
type DiagonalSeed struct{}

// Seed implements SeedPolicy.
func (DiagonalSeed) Seed(n, m int) ([][]float64, error) {
	rows := zeroRows(n, m)
	for i := 0; i < n; i++ {
		rows[i][i] = 1
	}

	return rows, nil
}

// RandomSeed is the knapsack-style reference policy: 1 on the diagonal and
// column 0 of every row replaced by a uniform integer in [Min, Max].
// A nil Rand uses the default deterministic stream.
type RandomSeed struct {
	Min, Max int64
	Rand     *rand.Rand
}

// Seed implements SeedPolicy.
func (p RandomSeed) Seed(n, m int) ([][]float64, error) {
	if p.Min > p.Max {
		return nil, fmt.Errorf("%w: seed range [%d, %d]", ErrInvalidParameter, p.Min, p.Max)
	}
	rng := p.Rand
	if rng == nil {
		rng = rngFromSeed(0)
	}
	span := p.Max - p.Min + 1
	rows := zeroRows(n, m)
	for i := 0; i < n; i++ {
		rows[i][i] = 1
		rows[i][0] = float64(p.Min + rng.Int63n(span))
	}

	return rows, nil
}

// ExplicitSeed copies a caller-supplied integer matrix.
type ExplicitSeed struct {
	Rows [][]int64
}

// Seed implements SeedPolicy. The shape must be exactly n×m.
func (p ExplicitSeed) Seed(n, m int) ([][]float64, error) {
	if len(p.Rows) != n {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidShape, len(p.Rows), n)
	}
	rows := zeroRows(n, m)
	for i, r := range p.Rows {
		if len(r) != m {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidShape, i, len(r), m)
		}
		for j, v := range r {
			rows[i][j] = float64(v)
		}
	}

	return rows, nil
}

// floatSeed copies integral float64 rows (FromFloatRows).
type floatSeed struct {
	rows [][]float64
}

func (p floatSeed) Seed(n, m int) ([][]float64, error) {
	if len(p.rows) != n {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidShape, len(p.rows), n)
	}
	rows := zeroRows(n, m)
	for i, r := range p.rows {
		if len(r) != m {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidShape, i, len(r), m)
		}
		for j, v := range r {
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
				return nil, fmt.Errorf("%w: entry (%d,%d)=%v is not an integer", ErrInvalidParameter, i, j, v)
			}
			rows[i][j] = v
		}
	}

	return rows, nil
}

func zeroRows(n, m int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, m)
	}

	return rows
}
