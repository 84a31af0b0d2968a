// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package recon implements the reconstruction
// of a physical space field
// from the spectral coefficients of a model state
// at a given wavenumber.
package recon

import (
	"fmt"
	"math"

	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Reconstruct returns the physical space field
// of a state at the wavenumber index kidx.
//
// The basis is the vertical structure of each variable,
// with a row per variable and a column per level,
// and inv is the inverse horizontal transform,
// with a row per horizontal position
// and a column per wavenumber.
//
// For each variable v,
// level z,
// position x,
// and time step t,
// the field is
//
//	basis[v, z] * inv[x, kidx] * state[v, kidx, t]
//
// None of the input values is modified.
func Reconstruct(kidx int, st *spectral.State, basis *mat.Dense, inv *mat.CDense) (*spectral.Field, error) {
	nv, nk, nt := st.Dims()
	if kidx < 0 || kidx >= nk {
		return nil, fmt.Errorf("reconstruct: %w", spectral.IndexError("wavenumber", kidx, nk))
	}
	bv, nz := basis.Dims()
	if bv != nv {
		return nil, fmt.Errorf("reconstruct: %w", spectral.ShapeError("basis", []int{bv, nz}, fmt.Sprintf("(%d, Nz)", nv)))
	}
	nx, ik := inv.Dims()
	if ik != nk {
		return nil, fmt.Errorf("reconstruct: %w", spectral.ShapeError("inverse transform", []int{nx, ik}, fmt.Sprintf("(Nx, %d)", nk)))
	}

	fourier := make([]complex64, nx)
	for x := range fourier {
		fourier[x] = complex64(inv.At(x, kidx))
	}

	f := spectral.NewField(nv, nz, nx, nt)
	pc := make([]complex64, nx*nt)
	for v := 0; v < nv; v++ {
		ts := st.Series(v, kidx)
		for x, fb := range fourier {
			for t, c := range ts {
				pc[x*nt+t] = fb * c
			}
		}
		for z := 0; z < nz; z++ {
			b := complex(float32(basis.At(v, z)), 0)
			for x := 0; x < nx; x++ {
				for t := 0; t < nt; t++ {
					f.Set(v, z, x, t, b*pc[x*nt+t])
				}
			}
		}
	}
	return f, nil
}

// Wavenumber returns the non-dimensional wavenumber
// of a given wavelength,
// using the indicated length scale
// (in the same units as the wavelength).
func Wavenumber(wavelength, scale float64) float64 {
	return 2 * math.Pi * scale / wavelength
}

// Wavelength returns the wavelength
// of a non-dimensional wavenumber.
func Wavelength(wavenumber, scale float64) float64 {
	return 2 * math.Pi * scale / wavenumber
}

// Closest returns the index of the wavenumber
// closest to the target value.
// If two wavenumbers are at the same distance,
// the first one is returned.
func Closest(wavenumbers []float64, target float64) (int, error) {
	if len(wavenumbers) == 0 {
		return 0, fmt.Errorf("closest wavenumber: %w: empty wavenumber axis", spectral.ErrShape)
	}

	dist := make([]float64, len(wavenumbers))
	for i, k := range wavenumbers {
		dist[i] = math.Abs(k - target)
	}
	return floats.MinIdx(dist), nil
}

// Restrict returns a new inverse transform
// and horizontal axis
// with only the positions in the interval [-bound, bound].
func Restrict(inv *mat.CDense, x []float64, bound float64) (*mat.CDense, []float64, error) {
	nx, nk := inv.Dims()
	if len(x) != nx {
		return nil, nil, fmt.Errorf("restrict: %w", spectral.ShapeError("horizontal axis", []int{len(x)}, []int{nx}))
	}

	var rows []int
	for i, v := range x {
		if v >= -bound && v <= bound {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("restrict: %w: no position in [%g, %g]", spectral.ErrDomain, -bound, bound)
	}

	r := mat.NewCDense(len(rows), nk, nil)
	nx2 := make([]float64, len(rows))
	for i, row := range rows {
		nx2[i] = x[row]
		for k := 0; k < nk; k++ {
			r.Set(i, k, inv.At(row, k))
		}
	}
	return r, nx2, nil
}
