// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, transpose, Gram matrices and determinants.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - Non-Dense inputs are copied into a Dense once; kernels then walk flat rows.
//   - Inputs are never mutated; every result is freshly allocated.

package matrix

import (
	"fmt"
	"math"
)

// ZeroPivot is the sentinel for detecting an exactly zero pivot in Det.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opGram      = "Gram"
	opDet       = "Det"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// denseOf returns m itself when it is a *Dense, otherwise a Dense copy read through At.
func denseOf(tag string, m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	d, err := NewDense(rows, cols, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}

// Mul returns the product a×b as a new Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: transpose b once so both operands are walked row by row;
//     res[i][j] = ⟨row i of a, row j of bᵀ⟩.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*k*c), Space O(k*c + r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := denseOf(opMul, a)
	if err != nil {
		return nil, err
	}
	bt, err := Transpose(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	dbt := bt.(*Dense)

	r, k, c := da.r, da.c, dbt.r
	res, err := NewDense(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var i, j int
	for i = 0; i < r; i++ {
		ai := da.data[i*k : (i+1)*k]
		for j = 0; j < c; j++ {
			res.data[i*c+j] = dot(ai, dbt.data[j*k:(j+1)*k])
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := denseOf(opTranspose, m)
	if err != nil {
		return nil, err
	}
	res, err := NewDense(src.c, src.r, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			res.data[j*src.r+i] = src.data[i*src.c+j]
		}
	}

	return res, nil
}

// Gram returns the r×r Gram matrix G = m·mᵀ, G[i][j] = ⟨row i, row j⟩.
// MAIN DESCRIPTION:
//   - Row inner products of a basis; det(G) is the squared lattice volume.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r²*c), Space O(r²). Only the upper triangle is computed.
func Gram(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opGram, ErrNilMatrix)
	}
	g, err := NewDense(m.r, m.r, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	var i, j int
	var v float64
	for i = 0; i < m.r; i++ {
		for j = i; j < m.r; j++ {
			v = dot(m.data[i*m.c:(i+1)*m.c], m.data[j*m.c:(j+1)*m.c])
			g.data[i*m.r+j] = v
			g.data[j*m.r+i] = v
		}
	}

	return g, nil
}

// Det returns the determinant of a square matrix.
// MAIN DESCRIPTION:
//   - Doolittle elimination with partial (row) pivoting on a private copy.
//
// Implementation:
//   - Stage 1: validate non-nil and square; copy into a flat buffer.
//   - Stage 2: for each column pick the largest |pivot|, swap (flip sign), eliminate below.
//   - Stage 3: det = sign * Π U[i][i].
//
// Behavior highlights:
//   - An exactly zero pivot column yields det = 0 (singular), not an error.
//   - Input is never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// AI-Hints:
//   - For integer lattices the result is exact only while |det| < 2^53;
//     compare with a relative tolerance beyond that.
func Det(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	src, err := denseOf(opDet, m)
	if err != nil {
		return 0, err
	}
	n := src.r
	a := make([]float64, n*n)
	copy(a, src.data)

	var (
		col, row, k, p int
		best, f, det   float64
	)
	det = 1
	for col = 0; col < n; col++ {
		// Partial pivoting: largest magnitude in the column at/below the diagonal.
		p = col
		best = math.Abs(a[col*n+col])
		for row = col + 1; row < n; row++ {
			if v := math.Abs(a[row*n+col]); v > best {
				best, p = v, row
			}
		}
		if best == ZeroPivot {
			return 0, nil
		}
		if p != col {
			for k = 0; k < n; k++ {
				a[col*n+k], a[p*n+k] = a[p*n+k], a[col*n+k]
			}
			det = -det
		}
		det *= a[col*n+col]
		for row = col + 1; row < n; row++ {
			f = a[row*n+col] / a[col*n+col]
			if f == 0 {
				continue
			}
			for k = col; k < n; k++ {
				a[row*n+k] -= f * a[col*n+k]
			}
		}
	}

	return det, nil
}
