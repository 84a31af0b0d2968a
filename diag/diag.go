// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package diag implements the eigen diagnostics
// of the linear operators of a tropical wave model,
// i.e. the growth rate
// and the phase speed
// of each mode at each wavenumber.
package diag

import (
	"fmt"
	"runtime"

	"github.com/js-arias/kwave/spectral"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Scale is the scale used to transform
// the non-dimensional phase speed
// into physical velocity units.
type Scale struct {
	// Length scale, in meters
	Length float64

	// Time scale, in seconds
	Time float64
}

// DefaultScale is the scale used by the model,
// a length of 4320 km
// and a time of one day.
var DefaultScale = Scale{
	Length: 4_320_000,
	Time:   86_400,
}

// Spectrum contains the eigenvalues
// of a collection of linear operators.
type Spectrum struct {
	nv, nk int

	// eigenvalues,
	// mode-major order
	vals []complex128
}

// Eigenvalues calculates the eigenvalues
// of the transpose of the operator
// at each wavenumber.
//
// Use cpu to define the number of process
// used for the calculation.
// The default (zero) uses all available CPU.
// As each wavenumber is independent,
// the result does not depend on the number of process.
func Eigenvalues(ops *spectral.Operators, cpu int) (*Spectrum, error) {
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}
	nv, nk := ops.Dims()
	sp := &Spectrum{
		nv:   nv,
		nk:   nk,
		vals: make([]complex128, nv*nk),
	}

	var g errgroup.Group
	g.SetLimit(cpu)
	for k := 0; k < nk; k++ {
		g.Go(func() error {
			ev, err := eigenvalues(ops.Transpose(k))
			if err != nil {
				return fmt.Errorf("eigenvalues: wavenumber %d: %w: %v", k, spectral.ErrNumerical, err)
			}
			for m, v := range ev {
				sp.vals[m*nk+k] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sp, nil
}

// Dims returns the number of modes
// and wavenumbers of the spectrum.
func (sp *Spectrum) Dims() (modes, nk int) {
	return sp.nv, sp.nk
}

// At returns the eigenvalue of a mode
// at wavenumber k.
func (sp *Spectrum) At(mode, k int) complex128 {
	return sp.vals[mode*sp.nk+k]
}

// Growth returns the growth rate
// (the real part of the eigenvalues)
// as a matrix with a row for each mode
// and a column for each wavenumber.
func (sp *Spectrum) Growth() *mat.Dense {
	g := mat.NewDense(sp.nv, sp.nk, nil)
	for m := 0; m < sp.nv; m++ {
		for k := 0; k < sp.nk; k++ {
			g.Set(m, k, real(sp.At(m, k)))
		}
	}
	return g
}

// Speed returns the phase speed,
// as a matrix with a row for each mode
// and a column for each wavenumber.
//
// The phase speed is the negative of the imaginary part
// of the eigenvalue
// divided by the wavenumber,
// and scaled by the ratio of the length and time scales.
func (sp *Spectrum) Speed(wavenumbers []float64, sc Scale) (*mat.Dense, error) {
	if err := checkAxis(wavenumbers, sp.nk); err != nil {
		return nil, fmt.Errorf("phase speed: %w", err)
	}
	if sc.Time == 0 {
		return nil, fmt.Errorf("phase speed: %w: zero time scale", spectral.ErrDomain)
	}
	for k, w := range wavenumbers {
		if w == 0 {
			return nil, fmt.Errorf("phase speed: wavenumber %d: %w: undefined phase speed for a zero wavenumber", k, spectral.ErrDomain)
		}
	}

	f := sc.Length / sc.Time
	s := mat.NewDense(sp.nv, sp.nk, nil)
	for m := 0; m < sp.nv; m++ {
		for k, w := range wavenumbers {
			s.Set(m, k, -imag(sp.At(m, k))/w*f)
		}
	}
	return s, nil
}

// GrowthRate returns the growth rate
// of each mode at each wavenumber
// of a collection of operators.
func GrowthRate(ops *spectral.Operators, wavenumbers []float64) (*mat.Dense, error) {
	_, nk := ops.Dims()
	if err := checkAxis(wavenumbers, nk); err != nil {
		return nil, fmt.Errorf("growth rate: %w", err)
	}

	sp, err := Eigenvalues(ops, 0)
	if err != nil {
		return nil, fmt.Errorf("growth rate: %w", err)
	}
	return sp.Growth(), nil
}

// PhaseSpeed returns the phase speed
// of each mode at each wavenumber
// of a collection of operators.
// It returns an error if a wavenumber is zero.
func PhaseSpeed(ops *spectral.Operators, wavenumbers []float64, sc Scale) (*mat.Dense, error) {
	_, nk := ops.Dims()
	if err := checkAxis(wavenumbers, nk); err != nil {
		return nil, fmt.Errorf("phase speed: %w", err)
	}
	for k, w := range wavenumbers {
		if w == 0 {
			return nil, fmt.Errorf("phase speed: wavenumber %d: %w: undefined phase speed for a zero wavenumber", k, spectral.ErrDomain)
		}
	}

	sp, err := Eigenvalues(ops, 0)
	if err != nil {
		return nil, fmt.Errorf("phase speed: %w", err)
	}
	return sp.Speed(wavenumbers, sc)
}

func checkAxis(wavenumbers []float64, nk int) error {
	if len(wavenumbers) == 0 {
		return fmt.Errorf("%w: empty wavenumber axis", spectral.ErrShape)
	}
	if len(wavenumbers) != nk {
		return spectral.ShapeError("wavenumber", []int{len(wavenumbers)}, []int{nk})
	}
	return nil
}
