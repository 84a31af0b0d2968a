// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/mat"
)

// Diagnostics are the eigen-diagnostics
// of a set of linear operators.
type Diagnostics struct {
	// Wavenumber axes
	// (without zero wavenumbers).
	Wavenumber []float64
	Display    []float64

	Growth   *mat.Dense
	Speed    *mat.Dense
	Unstable diag.Unstable

	// Index of the wavenumbers used
	// in the original axis.
	Index []int
}

// Diagnose calculates the growth rate,
// phase speed,
// and most unstable mode,
// of a set of linear operators.
// The eigenvalues are calculated once.
//
// Zero wavenumbers are removed
// before the calculations.
func Diagnose(ops *spectral.Operators, cal, display []float64, sc diag.Scale, cpu int) (*Diagnostics, error) {
	_, nk := ops.Dims()
	if len(cal) != nk {
		return nil, fmt.Errorf("diagnostics: %w", spectral.ShapeError("wavenumber", []int{len(cal)}, []int{nk}))
	}
	if len(display) != nk {
		display = cal
	}

	var keep []int
	for i, k := range cal {
		if k == 0 {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("diagnostics: %w: all wavenumbers are zero", spectral.ErrDomain)
	}

	d := &Diagnostics{
		Wavenumber: cal,
		Display:    display,
		Index:      keep,
	}
	if len(keep) < nk {
		var err error
		ops, err = ops.Select(keep)
		if err != nil {
			return nil, fmt.Errorf("diagnostics: %w", err)
		}
		d.Wavenumber = make([]float64, len(keep))
		d.Display = make([]float64, len(keep))
		for i, k := range keep {
			d.Wavenumber[i] = cal[k]
			d.Display[i] = display[k]
		}
	}

	sp, err := diag.Eigenvalues(ops, cpu)
	if err != nil {
		return nil, err
	}
	d.Growth = sp.Growth()
	d.Speed, err = sp.Speed(d.Wavenumber, sc)
	if err != nil {
		return nil, err
	}
	d.Unstable, err = diag.MostUnstable(d.Growth, d.Speed)
	if err != nil {
		return nil, err
	}
	return d, nil
}
