// SPDX-License-Identifier: MIT
// Package lattice: the Lattice container (basis + derived GSO state).
//
// Storage:
//   - basis, gso: n×m matrix.Dense; mu: n×n lower triangular, mu[i][i] = 1.
//   - sqnorm[i] = ‖gso[i]‖².
//   - fresh reports whether gso/mu/sqnorm describe the current basis.
//
// Concurrency:
//   - A Lattice is single-writer. Distinct values may be used concurrently.

package lattice

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlattice/matrix"
)

// Lattice owns an integer basis (rows, stored as float64) and its
// Gram-Schmidt orthogonalization.
type Lattice struct {
	n, m   int
	basis  *matrix.Dense
	gso    *matrix.Dense
	mu     *matrix.Dense
	sqnorm []float64
	eps    float64
	fresh  bool
}

// BuildOption configures New, FromRows and FromFloatRows.
type BuildOption func(*buildOptions)

type buildOptions struct {
	policy   SeedPolicy
	seed     int64
	min, max int64
	eps      float64
	err      error
}

// WithSeed fixes the seed of the default RandomSeed policy (0 = fixed default stream).
func WithSeed(seed int64) BuildOption {
	return func(o *buildOptions) { o.seed = seed }
}

// WithSeedPolicy replaces the default RandomSeed policy.
func WithSeedPolicy(p SeedPolicy) BuildOption {
	return func(o *buildOptions) {
		if p == nil {
			o.err = fmt.Errorf("%w: nil seed policy", ErrInvalidParameter)
			return
		}
		o.policy = p
	}
}

// WithSeedRange sets [min, max] for the default RandomSeed policy.
func WithSeedRange(min, max int64) BuildOption {
	return func(o *buildOptions) {
		if min > max {
			o.err = fmt.Errorf("%w: seed range [%d, %d]", ErrInvalidParameter, min, max)
			return
		}
		o.min, o.max = min, max
	}
}

// WithGSOEpsilon sets the relative degeneracy threshold (finite, ≥ 0).
func WithGSOEpsilon(eps float64) BuildOption {
	return func(o *buildOptions) {
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
			o.err = fmt.Errorf("%w: GSO epsilon %v", ErrInvalidParameter, eps)
			return
		}
		o.eps = eps
	}
}

// New builds an n×m lattice (n ≥ 1, m ≥ n). The default policy is
// RandomSeed over [10000, 99999] driven by WithSeed.
//
// The GSO is not computed here; the first operation that needs it does so.
//
// Errors: ErrInvalidShape, ErrInvalidParameter.
// Complexity: O(n*m).
func New(nrows, ncols int, opts ...BuildOption) (*Lattice, error) {
	if nrows <= 0 || ncols < nrows {
		return nil, fmt.Errorf("New(%d,%d): %w", nrows, ncols, ErrInvalidShape)
	}
	o := buildOptions{min: DefaultSeedMin, max: DefaultSeedMax, eps: DefaultGSOEpsilon}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.err != nil {
		return nil, fmt.Errorf("New: %w", o.err)
	}
	if o.policy == nil {
		o.policy = RandomSeed{Min: o.min, Max: o.max, Rand: rngFromSeed(o.seed)}
	}

	rows, err := o.policy.Seed(nrows, ncols)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	basis, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("New: %w: %w", ErrInvalidShape, err)
	}
	if basis.Rows() != nrows || basis.Cols() != ncols {
		return nil, fmt.Errorf("New: seed produced %dx%d: %w", basis.Rows(), basis.Cols(), ErrInvalidShape)
	}

	return newFromDense(basis, o.eps)
}

// FromRows builds a lattice from explicit integer rows.
// Errors: ErrInvalidShape (empty, ragged, or more rows than columns).
func FromRows(rows [][]int64, opts ...BuildOption) (*Lattice, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrInvalidShape)
	}

	return New(len(rows), len(rows[0]), append(opts[:len(opts):len(opts)], WithSeedPolicy(ExplicitSeed{Rows: rows}))...)
}

// FromFloatRows builds a lattice from integral float64 rows.
// Errors: ErrInvalidShape, ErrInvalidParameter (non-integral or non-finite entry).
func FromFloatRows(rows [][]float64, opts ...BuildOption) (*Lattice, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("FromFloatRows: %w", ErrInvalidShape)
	}

	return New(len(rows), len(rows[0]), append(opts[:len(opts):len(opts)], WithSeedPolicy(floatSeed{rows: rows}))...)
}

// newFromDense allocates the derived state around an owned basis.
func newFromDense(basis *matrix.Dense, eps float64) (*Lattice, error) {
	n, m := basis.Shape()
	gso, err := matrix.NewDense(n, m, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	mu, err := matrix.NewDense(n, n, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}

	return &Lattice{
		n:      n,
		m:      m,
		basis:  basis,
		gso:    gso,
		mu:     mu,
		sqnorm: make([]float64, n),
		eps:    eps,
	}, nil
}

// Rows returns the number of basis vectors n.
func (l *Lattice) Rows() int { return l.n }

// Cols returns the ambient dimension m.
func (l *Lattice) Cols() int { return l.m }

// Clone returns an independent deep copy, including the freshness flag.
func (l *Lattice) Clone() *Lattice {
	sq := make([]float64, l.n)
	copy(sq, l.sqnorm)

	return &Lattice{
		n:      l.n,
		m:      l.m,
		basis:  l.basis.CloneDense(),
		gso:    l.gso.CloneDense(),
		mu:     l.mu.CloneDense(),
		sqnorm: sq,
		eps:    l.eps,
		fresh:  l.fresh,
	}
}

// Basis returns a copy of the basis rows.
func (l *Lattice) Basis() [][]float64 { return l.basis.ToRows() }

// IntBasis returns the basis rows as int64.
func (l *Lattice) IntBasis() [][]int64 {
	out := make([][]int64, l.n)
	for i := 0; i < l.n; i++ {
		row := rowOf(l.basis, i)
		out[i] = make([]int64, l.m)
		for j, v := range row {
			out[i][j] = int64(v)
		}
	}

	return out
}

// Vector returns a copy of basis row i.
// Errors: ErrInvalidParameter.
func (l *Lattice) Vector(i int) ([]float64, error) {
	if i < 0 || i >= l.n {
		return nil, fmt.Errorf("Vector(%d): %w", i, ErrInvalidParameter)
	}

	return l.basis.Row(i)
}

// NormSquared returns ⟨b_i, b_i⟩.
// Errors: ErrInvalidParameter.
func (l *Lattice) NormSquared(i int) (float64, error) {
	if i < 0 || i >= l.n {
		return 0, fmt.Errorf("NormSquared(%d): %w", i, ErrInvalidParameter)
	}

	return l.basis.RowDot(i, i)
}

// GSO returns a copy of the orthogonalized rows, refreshing when stale.
func (l *Lattice) GSO() ([][]float64, error) {
	if err := l.ensureFresh(); err != nil {
		return nil, err
	}

	return l.gso.ToRows(), nil
}

// Mu returns a copy of the n×n coefficient table, refreshing when stale.
func (l *Lattice) Mu() ([][]float64, error) {
	if err := l.ensureFresh(); err != nil {
		return nil, err
	}

	return l.mu.ToRows(), nil
}

// SquaredNorms returns a copy of B (‖b*_i‖²), refreshing when stale.
func (l *Lattice) SquaredNorms() ([]float64, error) {
	if err := l.ensureFresh(); err != nil {
		return nil, err
	}
	out := make([]float64, l.n)
	copy(out, l.sqnorm)

	return out, nil
}

// Combine returns Σ coeffs[i]·b_i.
// Errors: ErrInvalidParameter when len(coeffs) != Rows().
// Complexity: O(n*m).
func (l *Lattice) Combine(coeffs []int64) ([]float64, error) {
	if len(coeffs) != l.n {
		return nil, fmt.Errorf("Combine: %d coefficients for %d rows: %w", len(coeffs), l.n, ErrInvalidParameter)
	}
	out := make([]float64, l.m)
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		if err := matrix.VecAxpy(out, float64(c), rowOf(l.basis, i)); err != nil {
			return nil, fmt.Errorf("Combine: %w", err)
		}
	}

	return out, nil
}

// rowOf returns an aliasing view of row i; callers pass in-range indices only.
func rowOf(d *matrix.Dense, i int) []float64 {
	r, _ := d.RowView(i)

	return r
}

// normSquared0 returns ‖b_0‖² without bounds checks.
func (l *Lattice) normSquared0() float64 {
	return matrix.SquaredNorm(rowOf(l.basis, 0))
}
