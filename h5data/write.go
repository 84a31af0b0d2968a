// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package h5data

import (
	"fmt"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/hdf5"
)

// Post is the content of a post-processing file.
type Post struct {
	Wavenumber []float64
	Growth     *mat.Dense
	Speed      *mat.Dense
	Unstable   diag.Unstable

	// Reconstructed fields,
	// by name.
	// It can be empty.
	Fields map[string]*spectral.Plane
}

// WritePost writes a post-processing file.
func WritePost(name string, p Post) (err error) {
	f, err := hdf5.CreateFile(name, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	nv, nk := p.Growth.Dims()
	if len(p.Wavenumber) != nk {
		return fmt.Errorf("on file %q: %w", name, spectral.ShapeError("wavenumber", []int{len(p.Wavenumber)}, []int{nk}))
	}

	if err := writeFloats(f, "wavenumber", p.Wavenumber, nk); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if err := writeFloats(f, "growth", mat.DenseCopyOf(p.Growth).RawMatrix().Data, nv, nk); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if p.Speed != nil {
		if err := writeFloats(f, "speed", mat.DenseCopyOf(p.Speed).RawMatrix().Data, nv, nk); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
	}

	u := p.Unstable
	if len(u.Growth) == nk {
		mode := make([]float64, nk)
		for i, m := range u.Mode {
			mode[i] = float64(m)
		}
		if err := writeFloats(f, "mode", mode, nk); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
		if err := writeFloats(f, "max_growth", u.Growth, nk); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
		if len(u.Speed) == nk {
			if err := writeFloats(f, "max_speed", u.Speed, nk); err != nil {
				return fmt.Errorf("on file %q: %v", name, err)
			}
		}
	}

	for fn, pl := range p.Fields {
		nz, nx, nt := pl.Dims()
		data := make([]float64, 0, nz*nx*nt)
		for z := 0; z < nz; z++ {
			for x := 0; x < nx; x++ {
				for t := 0; t < nt; t++ {
					data = append(data, pl.At(z, x, t))
				}
			}
		}
		if err := writeFloats(f, fn, data, nz, nx, nt); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
	}
	return nil
}

// ReadPost reads the diagnostics
// stored in a post-processing file.
// Reconstructed fields are not read.
func ReadPost(name string) (*Post, error) {
	f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wn, _, err := readFloats(f, "wavenumber")
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	g, ds, err := readFloats(f, "growth")
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if len(ds) != 2 || ds[1] != len(wn) {
		return nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError("growth", ds, []int{spectral.NumVars, len(wn)}))
	}
	p := &Post{
		Wavenumber: wn,
		Growth:     mat.NewDense(ds[0], ds[1], g),
	}
	if hasDataset(f, "speed") {
		s, _, err := readFloats(f, "speed")
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		if len(s) != len(g) {
			return nil, fmt.Errorf("on file %q: %w", name, spectral.ShapeError("speed", []int{len(s)}, ds))
		}
		p.Speed = mat.NewDense(ds[0], ds[1], s)
	}

	u, err := diag.MostUnstable(p.Growth, p.Speed)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	p.Unstable = u
	return p, nil
}
