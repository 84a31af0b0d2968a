// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"image/color"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/recon"
	"github.com/js-arias/kwave/render"
	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/mat"
)

// Parameters of the contour levels.
const (
	levelFrac = 0.8
	numLevels = 21

	wStep = 0.01
	tStep = 0.0005
	jStep = 1
)

// Basis returns the vertical basis
// of the reconstruction variables:
// the two vertical modes for the velocity,
// and the scaled vertical modes
// for the temperature and the heating.
func Basis(g1, g2 []float64, tScale float64) (*mat.Dense, error) {
	if len(g1) == 0 || len(g1) != len(g2) {
		return nil, fmt.Errorf("vertical basis: %w", spectral.ShapeError("G2", []int{len(g2)}, []int{len(g1)}))
	}

	nz := len(g1)
	b := mat.NewDense(spectral.NumVars, nz, nil)
	for z := 0; z < nz; z++ {
		b.Set(0, z, g1[z])
		b.Set(1, z, g2[z])
		for v := 2; v < spectral.NumVars; v += 2 {
			b.Set(v, z, tScale*g1[z])
			b.Set(v+1, z, tScale*g2[z])
		}
	}
	return b, nil
}

// Fields are the physical fields
// reconstructed at a wavenumber.
type Fields struct {
	// Wavenumber index,
	// and its value.
	KIdx       int
	Wavenumber float64

	// Coordinates of the fields.
	X, Z []float64
	Time []float64

	// Vertical velocity
	W *spectral.Plane

	// Temperature
	T *spectral.Plane

	// Heating
	J *spectral.Plane
}

// Reconstruction returns the physical fields
// of a simulation case
// at the wavenumber closest to the target wavelength.
// The wavenumber axis cal must be aligned
// with the wavenumbers of the state.
func Reconstruction(in *Input, cal []float64) (*Fields, error) {
	pm := in.Params
	st := in.State.State
	nv, _, _ := st.Dims()
	if pm.Heating() {
		var err error
		st, err = diag.ConvertState(st)
		if err != nil {
			return nil, err
		}
	}
	st, err := st.Vars(pm.Selection(nv))
	if err != nil {
		return nil, fmt.Errorf("variable selection: %w", err)
	}

	basis, err := Basis(in.G1, in.G2, pm.TScale())
	if err != nil {
		return nil, err
	}

	kidx, err := recon.Closest(cal, recon.Wavenumber(pm.Wavelength(), pm.KScale()))
	if err != nil {
		return nil, err
	}

	inv, x, err := recon.Restrict(in.Inverse.F, in.X, pm.Bound())
	if err != nil {
		return nil, err
	}

	f, err := recon.Reconstruct(kidx, st, basis, inv)
	if err != nil {
		return nil, err
	}

	fs := &Fields{
		KIdx:       kidx,
		Wavenumber: cal[kidx],
		X:          x,
		Z:          in.Z,
		Time:       in.State.Time,
	}
	if fs.W, err = f.Sum(0, 1); err != nil {
		return nil, err
	}
	if fs.T, err = f.Sum(2, 3); err != nil {
		return nil, err
	}
	if fs.J, err = f.Sum(4, 5); err != nil {
		return nil, err
	}
	return fs, nil
}

// Animation returns an animation of the fields,
// with the heating as a filled map,
// and the temperature and vertical velocity
// as contour lines.
func (fs *Fields) Animation() *render.Animation {
	return &render.Animation{
		X:          fs.X,
		Z:          fs.Z,
		Time:       fs.Time,
		Fill:       fs.J,
		FillName:   "J",
		FillLevels: recon.Levels(fs.J, levelFrac, jStep, numLevels),
		Lines: []render.Contours{
			{
				Name:   "T",
				Plane:  fs.T,
				Levels: recon.Levels(fs.T, levelFrac, tStep, numLevels),
				Color:  color.Black,
			},
			{
				Name:   "w",
				Plane:  fs.W,
				Levels: recon.Levels(fs.W, levelFrac, wStep, numLevels),
				Color:  color.RGBA{0, 100, 0, 255},
			},
		},
	}
}
