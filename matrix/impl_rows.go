// SPDX-License-Identifier: MIT

// Package matrix: row kernels for row-oriented algorithms.
//
// Purpose:
//   - Provide the elementary row operations used by basis-reduction style
//     algorithms: swap, integer combination (axpy), cyclic rotation, dot products.
//   - Keep one bounds check per call and a tight flat loop inside.
//
// Determinism:
//   - Every kernel walks columns 0..c-1 in order; results are bit-reproducible.
//
// AI-Hints:
//   - RowView returns a slice aliasing the backing store. Use it only inside a
//     kernel that does not outlive the matrix shape (no appends!).
//   - SwapRows and RotateRowsDown are unimodular; AddScaledRow is unimodular
//     when alpha is an integer and dst != src.

package matrix

import (
	"fmt"
	"math"
)

const (
	ctxRow        = "Row"
	ctxRowView    = "RowView"
	ctxSetRow     = "SetRow"
	ctxSwapRows   = "SwapRows"
	ctxAddScaled  = "AddScaledRow"
	ctxRotateRows = "RotateRowsDown"
	ctxRowDot     = "RowDot"
	ctxDot        = "Dot"
	ctxVecAxpy    = "VecAxpy"
)

// rowErrorf wraps a sentinel with a row-kernel tag and the offending indices.
func rowErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, i, j, err)
}

// checkRow validates 0 ≤ i < r.
func (m *Dense) checkRow(i int) error {
	if i < 0 || i >= m.r {
		return ErrOutOfRange
	}

	return nil
}

// Row returns a copy of row i.
// Errors: ErrOutOfRange.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if err := m.checkRow(i); err != nil {
		return nil, rowErrorf(ctxRow, i, 0, err)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// RowView returns row i as a slice aliasing the backing buffer (no copy).
// Writes through the slice bypass the numeric policy; kernels using it are
// responsible for keeping values finite.
// Errors: ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) RowView(i int) ([]float64, error) {
	if err := m.checkRow(i); err != nil {
		return nil, rowErrorf(ctxRowView, i, 0, err)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// SetRow overwrites row i with v (len(v) must equal Cols()).
// Errors: ErrOutOfRange, ErrNilMatrix (nil v), ErrDimensionMismatch, ErrNaNInf (policy on).
// Complexity: O(c).
func (m *Dense) SetRow(i int, v []float64) error {
	if err := m.checkRow(i); err != nil {
		return rowErrorf(ctxSetRow, i, 0, err)
	}
	if err := ValidateVecLen(v, m.c); err != nil {
		return rowErrorf(ctxSetRow, i, len(v), err)
	}
	if m.validateNaNInf {
		for k, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return rowErrorf(ctxSetRow, i, k, ErrNaNInf)
			}
		}
	}
	copy(m.data[i*m.c:(i+1)*m.c], v)

	return nil
}

// SwapRows exchanges rows i and j in place. i == j is a no-op.
// Errors: ErrOutOfRange.
// Complexity: O(c), no allocation.
func (m *Dense) SwapRows(i, j int) error {
	if err := m.checkRow(i); err != nil {
		return rowErrorf(ctxSwapRows, i, j, err)
	}
	if err := m.checkRow(j); err != nil {
		return rowErrorf(ctxSwapRows, i, j, err)
	}
	if i == j {
		return nil
	}
	a := m.data[i*m.c : (i+1)*m.c]
	b := m.data[j*m.c : (j+1)*m.c]
	var k int
	for k = 0; k < m.c; k++ {
		a[k], b[k] = b[k], a[k]
	}

	return nil
}

// AddScaledRow performs row[dst] += alpha * row[src] in place.
// MAIN DESCRIPTION:
//   - The axpy row update behind size reduction and Gram-Schmidt.
//
// Behavior highlights:
//   - alpha == 0 is a no-op.
//   - dst == src is allowed and scales the row by (1+alpha).
//   - Under the finite-only policy a non-finite alpha is rejected up front.
//
// Errors:
//   - ErrOutOfRange, ErrNaNInf.
//
// Complexity:
//   - Time O(c), Space O(1).
func (m *Dense) AddScaledRow(dst, src int, alpha float64) error {
	if err := m.checkRow(dst); err != nil {
		return rowErrorf(ctxAddScaled, dst, src, err)
	}
	if err := m.checkRow(src); err != nil {
		return rowErrorf(ctxAddScaled, dst, src, err)
	}
	if m.validateNaNInf && (math.IsNaN(alpha) || math.IsInf(alpha, 0)) {
		return rowErrorf(ctxAddScaled, dst, src, ErrNaNInf)
	}
	if alpha == 0 {
		return nil
	}
	d := m.data[dst*m.c : (dst+1)*m.c]
	s := m.data[src*m.c : (src+1)*m.c]
	var k int
	for k = 0; k < m.c; k++ {
		d[k] += alpha * s[k]
	}

	return nil
}

// RotateRowsDown moves row k to position i and shifts rows i..k-1 down by one.
// This is the deep-insertion permutation σ_{i,k}; i == k is a no-op.
// Errors: ErrOutOfRange (also when i > k).
// Complexity: O((k-i+1)*c) time, O(c) scratch.
func (m *Dense) RotateRowsDown(i, k int) error {
	if err := m.checkRow(i); err != nil {
		return rowErrorf(ctxRotateRows, i, k, err)
	}
	if err := m.checkRow(k); err != nil {
		return rowErrorf(ctxRotateRows, i, k, err)
	}
	if i > k {
		return rowErrorf(ctxRotateRows, i, k, ErrOutOfRange)
	}
	if i == k {
		return nil
	}
	tmp := make([]float64, m.c)
	copy(tmp, m.data[k*m.c:(k+1)*m.c])
	// Shift the block [i, k) one row down; copy handles the overlap.
	copy(m.data[(i+1)*m.c:(k+1)*m.c], m.data[i*m.c:k*m.c])
	copy(m.data[i*m.c:(i+1)*m.c], tmp)

	return nil
}

// RowDot returns ⟨row i, row j⟩.
// Errors: ErrOutOfRange.
// Complexity: O(c).
func (m *Dense) RowDot(i, j int) (float64, error) {
	if err := m.checkRow(i); err != nil {
		return 0, rowErrorf(ctxRowDot, i, j, err)
	}
	if err := m.checkRow(j); err != nil {
		return 0, rowErrorf(ctxRowDot, i, j, err)
	}

	return dot(m.data[i*m.c:(i+1)*m.c], m.data[j*m.c:(j+1)*m.c]), nil
}

// Dot returns the inner product ⟨x, y⟩.
// Errors: ErrDimensionMismatch when len(x) != len(y).
// Complexity: O(len(x)).
func Dot(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%s: len %d vs %d: %w", ctxDot, len(x), len(y), ErrDimensionMismatch)
	}

	return dot(x, y), nil
}

// SquaredNorm returns ⟨x, x⟩. A nil or empty vector has norm 0.
// Complexity: O(len(x)).
func SquaredNorm(x []float64) float64 {
	return dot(x, x)
}

// VecAxpy performs dst += alpha*src for equal-length vectors.
// Errors: ErrDimensionMismatch.
// Complexity: O(len(dst)).
func VecAxpy(dst []float64, alpha float64, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%s: len %d vs %d: %w", ctxVecAxpy, len(dst), len(src), ErrDimensionMismatch)
	}
	for k := range dst {
		dst[k] += alpha * src[k]
	}

	return nil
}

// dot is the unchecked kernel shared by RowDot, Dot and SquaredNorm.
func dot(x, y []float64) float64 {
	var s float64
	for k := range x {
		s += x[k] * y[k]
	}

	return s
}
