// Package matrix offers fixed-shape dense float64 containers and the row
// kernels that basis-reduction algorithms are built from.
//
// The matrix package provides:
//
//   - Dense: a row-major, bounds-checked r×c buffer with an optional
//     finite-only numeric policy (NaN/±Inf rejected on Set).
//   - Row kernels: SwapRows, AddScaledRow (axpy), RotateRowsDown (deep
//     insertion), RowDot, plus Dot/SquaredNorm on plain vectors.
//   - Linear algebra: Mul, Transpose, Gram and Det (pivoted LU).
//
// Shapes are fixed at construction; nothing in this package grows or
// reslices a matrix behind the caller's back. Public accessors return
// sentinel errors (ErrOutOfRange, ErrDimensionMismatch, ...) instead of
// panicking.
//
// See the examples in this package and the lattice package for usage patterns.
package matrix
