// SPDX-License-Identifier: MIT
// Package lattice: sentinel error set.
//
// Every operation returns one of these sentinels (possibly wrapped with an
// "Op: ..." context via fmt.Errorf and %w); callers match with errors.Is.
// No operation panics on user-triggered conditions.

package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateBasis indicates a Gram-Schmidt vector of (numerically) zero
	// norm, i.e. linearly dependent basis rows.
	ErrDegenerateBasis = errors.New("lattice: degenerate basis")

	// ErrInvalidShape indicates n ≤ 0, m < n, ragged rows or an empty range.
	ErrInvalidShape = errors.New("lattice: invalid shape")

	// ErrInvalidParameter indicates an out-of-domain argument or option
	// (δ outside (0.25, 1), non-positive radius, bad index pair, ...).
	ErrInvalidParameter = errors.New("lattice: invalid parameter")

	// ErrCancelled is returned when a checkpoint observes a cancelled context
	// or a progress callback asks to stop.
	ErrCancelled = errors.New("lattice: cancelled")

	// ErrNoVector is returned by enumeration when no non-zero vector lies
	// within the search radius.
	ErrNoVector = errors.New("lattice: no vector within radius")

	// ErrIterationLimit is returned when a reduction loop exceeds its
	// iteration budget (floating-point stagnation guard).
	ErrIterationLimit = errors.New("lattice: iteration limit exceeded")
)

// DegenerateBasisError reports which Gram-Schmidt vector collapsed.
// It matches ErrDegenerateBasis via errors.Is.
type DegenerateBasisError struct {
	Index       int     // row whose orthogonal component vanished
	SquaredNorm float64 // ‖b*_Index‖² at detection time
}

// Error implements error.
func (e *DegenerateBasisError) Error() string {
	return fmt.Sprintf("lattice: degenerate basis at row %d (‖b*‖²=%g)", e.Index, e.SquaredNorm)
}

// Is reports whether target is ErrDegenerateBasis.
func (e *DegenerateBasisError) Is(target error) bool {
	return target == ErrDegenerateBasis
}

// opErrorf wraps err with an operation tag, preserving it via %w.
func opErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
