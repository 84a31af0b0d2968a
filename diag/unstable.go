// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package diag

import (
	"fmt"

	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Unstable is the most unstable mode
// at each wavenumber.
type Unstable struct {
	// Mode is the index of the mode
	// with the maximum growth rate.
	Mode []int

	// Growth is the growth rate of the mode.
	Growth []float64

	// Speed is the phase speed of the mode.
	Speed []float64
}

// MostUnstable returns the mode
// with the maximum growth rate
// at each wavenumber,
// and its phase speed.
// If several modes have the same growth rate,
// the first one is used.
//
// If speed is nil,
// only the growth rate will be set.
func MostUnstable(growth, speed *mat.Dense) (Unstable, error) {
	nv, nk := growth.Dims()
	if speed != nil {
		if r, c := speed.Dims(); r != nv || c != nk {
			return Unstable{}, spectral.ShapeError("phase speed", []int{r, c}, []int{nv, nk})
		}
	}

	u := Unstable{
		Mode:   make([]int, nk),
		Growth: make([]float64, nk),
	}
	if speed != nil {
		u.Speed = make([]float64, nk)
	}

	col := make([]float64, nv)
	for k := 0; k < nk; k++ {
		mat.Col(col, k, growth)
		m := floats.MaxIdx(col)
		u.Mode[k] = m
		u.Growth[k] = col[m]
		if speed != nil {
			u.Speed[k] = speed.At(m, k)
		}
	}
	return u, nil
}

// Max returns the wavenumber index
// with the maximum growth rate.
func (u Unstable) Max() (int, error) {
	if len(u.Growth) == 0 {
		return 0, fmt.Errorf("%w: empty growth rate", spectral.ErrShape)
	}
	return floats.MaxIdx(u.Growth), nil
}
