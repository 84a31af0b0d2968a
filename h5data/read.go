// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package h5data

import (
	"fmt"

	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/hdf5"
)

// Order is the order of the axes
// of a state dataset.
type Order string

// Valid axis orders.
const (
	// Wavenumber, variable, time
	KVT Order = "kvt"

	// Variable, wavenumber, time
	VKT Order = "vkt"
)

// Dataset names.
const (
	StateSet      = "state"
	TimeSet       = "time"
	WavenumberSet = "wavenumber"
	OperatorsSet  = "operators"
	InverseSet    = "F_inv"
	LambdaSet     = "lambda"
	CalibrationWN = "wnum_cal"
	DisplayWN     = "wnum_dis"
	XSet          = "x"
	ZSet          = "z"
	Mode1Set      = "G1"
	Mode2Set      = "G2"
)

// State is the content of a state file.
type State struct {
	State      *spectral.State
	Time       []float64
	Wavenumber []float64
}

// ReadState reads a state file.
// The state is returned with the shape (Nv, Nk, Nt).
// If steps is greater than zero,
// only the first steps time steps
// will be read.
func ReadState(name string, order Order, steps int) (*State, error) {
	f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, ds, err := readComplex(f, StateSet)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if len(ds) != 3 {
		return nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError(StateSet, ds, "3 axes"))
	}

	var nv, nk int
	nt := ds[2]
	switch order {
	case KVT:
		nk, nv = ds[0], ds[1]
	case VKT:
		nv, nk = ds[0], ds[1]
	default:
		return nil, fmt.Errorf("on file %q: unknown axis order %q", name, order)
	}
	rt := nt
	if steps > 0 && steps < nt {
		rt = steps
	}

	st := spectral.NewState(nv, nk, rt)
	for a := 0; a < ds[0]; a++ {
		for b := 0; b < ds[1]; b++ {
			v, k := b, a
			if order == VKT {
				v, k = a, b
			}
			for t := 0; t < rt; t++ {
				st.Set(v, k, t, complex64(data[(a*ds[1]+b)*nt+t]))
			}
		}
	}

	s := &State{State: st}
	if hasDataset(f, TimeSet) {
		tm, _, err := readFloats(f, TimeSet)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		if len(tm) > rt {
			tm = tm[:rt]
		}
		s.Time = tm
	}
	if hasDataset(f, WavenumberSet) {
		wn, _, err := readFloats(f, WavenumberSet)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		if len(wn) != nk {
			return nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError(WavenumberSet, []int{len(wn)}, []int{nk}))
		}
		s.Wavenumber = wn
	}
	return s, nil
}

// ReadOperators reads a linear operators file,
// with the shape (Nv, Nv, Nk).
func ReadOperators(name string) (*spectral.Operators, error) {
	f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, ds, err := readComplex(f, OperatorsSet)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if len(ds) != 3 || ds[0] != ds[1] {
		return nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError(OperatorsSet, ds, "(Nv, Nv, Nk)"))
	}
	if ds[0] != spectral.NumVars {
		return nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError(OperatorsSet, ds, fmt.Sprintf("(%d, %d, Nk)", spectral.NumVars, spectral.NumVars)))
	}

	ops, err := spectral.NewOperatorsFrom(ds[0], ds[2], data)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return ops, nil
}

// Inverse is the content
// of an inverse transform file.
type Inverse struct {
	// Inverse transform matrix
	// with the shape (Nx, Nk).
	F *mat.CDense

	// Eigenvalues of the horizontal basis
	Lambda []float64

	// Wavenumbers used for the calculations
	Calibration []float64

	// Wavenumbers used for display
	Display []float64
}

// ReadInverse reads an inverse transform file.
func ReadInverse(name string) (*Inverse, error) {
	f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, ds, err := readComplex(f, InverseSet)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if len(ds) != 2 || ds[0] == 0 || ds[1] == 0 {
		return nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError(InverseSet, ds, "(Nx, Nk)"))
	}

	inv := &Inverse{
		F: mat.NewCDense(ds[0], ds[1], data),
	}
	opt := []struct {
		set string
		dst *[]float64
	}{
		{LambdaSet, &inv.Lambda},
		{CalibrationWN, &inv.Calibration},
		{DisplayWN, &inv.Display},
	}
	for _, o := range opt {
		if !hasDataset(f, o.set) {
			continue
		}
		v, _, err := readFloats(f, o.set)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		*o.dst = v
	}
	return inv, nil
}

// ReadDomain reads the horizontal
// and vertical coordinates of the model domain.
func ReadDomain(name string) (x, z []float64, err error) {
	f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	x, _, err = readFloats(f, XSet)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	z, _, err = readFloats(f, ZSet)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return x, z, nil
}

// ReadModes reads the first and second
// vertical structure functions.
// The values are flattened,
// so any singleton axis is removed.
func ReadModes(name string) (g1, g2 []float64, err error) {
	f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	g1, _, err = readFloats(f, Mode1Set)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	g2, _, err = readFloats(f, Mode2Set)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if len(g1) != len(g2) {
		return nil, nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError(Mode2Set, []int{len(g2)}, []int{len(g1)}))
	}
	return g1, g2, nil
}
