// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"

	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/project"
	"github.com/js-arias/kwave/spectral"
)

// Input contains the data of a simulation case.
type Input struct {
	Params    *param.Params
	State     *h5data.State
	Operators *spectral.Operators
	Inverse   *h5data.Inverse

	// Horizontal and vertical coordinates
	// of the model domain.
	X, Z []float64

	// Vertical structure functions.
	G1, G2 []float64
}

// Load reads all the datasets of a project.
func Load(prj *project.Project, pm *param.Params) (*Input, error) {
	in := &Input{Params: pm}

	var err error
	if in.State, err = prj.State(pm); err != nil {
		return nil, err
	}
	if in.Operators, err = prj.Operators(); err != nil {
		return nil, err
	}
	if in.Inverse, err = prj.Inverse(); err != nil {
		return nil, err
	}
	if in.X, in.Z, err = prj.Domain(); err != nil {
		return nil, err
	}
	if in.G1, in.G2, err = prj.VModes(); err != nil {
		return nil, err
	}
	return in, nil
}

// Axes returns the wavenumber axis
// used for the calculations
// and the wavenumber axis used for display,
// for data with nk wavenumbers.
//
// The calculation axis is taken from the calibration wavenumbers
// of the inverse transform,
// or, if not available,
// from the wavenumbers of the state.
// The display axis is taken from the display wavenumbers
// of the inverse transform,
// or, if not available,
// it is the calculation axis.
// Any of the input values can be nil.
func Axes(inv *h5data.Inverse, st *h5data.State, nk int) (cal, display []float64, err error) {
	if inv != nil && len(inv.Calibration) == nk {
		cal = inv.Calibration
	} else if st != nil && len(st.Wavenumber) == nk {
		cal = st.Wavenumber
	}
	if cal == nil {
		return nil, nil, fmt.Errorf("wavenumber axis: %w: no wavenumber axis with %d values", spectral.ErrShape, nk)
	}

	display = cal
	if inv != nil && len(inv.Display) == nk {
		display = inv.Display
	}
	return cal, display, nil
}
