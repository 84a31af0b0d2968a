// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package spectral implements the arrays
// produced by a linearized tropical wave model
// that is solved in wavenumber space.
//
// The model state is described by a set of prognostic variables,
// each one with a spectral coefficient
// for each wavenumber,
// and each time step.
// The tendency of the state at each wavenumber
// is given by a linear operator.
//
// Vertical basis functions
// are stored as gonum dense matrices
// (one row per variable, one column per level),
// and the inverse horizontal transform
// as a complex dense matrix
// (one row per horizontal position, one column per wavenumber).
package spectral

import (
	"errors"
	"fmt"
)

// NumVars is the number of prognostic variables
// of the model.
const NumVars = 6

// Error kinds.
// Every error returned by the packages of kwave
// that is caused by the data
// wraps one of these values,
// so it can be classified with errors.Is.
var (
	// ErrShape is used when the dimensions of an array
	// are inconsistent with the model conventions
	// or with other arrays.
	ErrShape = errors.New("shape error")

	// ErrDomain is used when a physical value is invalid,
	// for example a zero wavenumber
	// in a phase speed calculation.
	ErrDomain = errors.New("domain error")

	// ErrNumerical is used when a numerical algorithm fails,
	// for example a non convergent eigenvalue solver.
	ErrNumerical = errors.New("numerical error")

	// ErrIndex is used when an index is out of range.
	ErrIndex = errors.New("index error")
)

// ShapeError returns an error for an array
// with an unexpected shape.
func ShapeError(array string, got, want any) error {
	return fmt.Errorf("%w: array %q: got shape %v, want %v", ErrShape, array, got, want)
}

// IndexError returns an error for an index
// out of the range [0, n).
func IndexError(axis string, i, n int) error {
	return fmt.Errorf("%w: %s index %d out of range [0, %d)", ErrIndex, axis, i, n)
}
