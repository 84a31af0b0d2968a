// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package spectral

import "gonum.org/v1/gonum/mat"

// Operators is a collection of linear tendency operators,
// a square matrix for each wavenumber,
// stored with the shape (Nv, Nv, Nk).
type Operators struct {
	nv, nk int
	data   []complex128
}

// NewOperators creates a new collection of zero operators
// for nv variables and nk wavenumbers.
func NewOperators(nv, nk int) *Operators {
	return &Operators{
		nv:   nv,
		nk:   nk,
		data: make([]complex128, nv*nv*nk),
	}
}

// NewOperatorsFrom creates a collection of operators
// from a row-major data slice of shape (nv, nv, nk).
// The data is used without a copy.
func NewOperatorsFrom(nv, nk int, data []complex128) (*Operators, error) {
	if nv <= 0 || nk <= 0 || len(data) != nv*nv*nk {
		return nil, ShapeError("operators", []int{len(data)}, []int{nv, nv, nk})
	}
	return &Operators{
		nv:   nv,
		nk:   nk,
		data: data,
	}, nil
}

// Dims returns the number of variables
// and the number of wavenumbers.
func (o *Operators) Dims() (nv, nk int) {
	return o.nv, o.nk
}

// At returns the element i, j
// of the operator at wavenumber k.
func (o *Operators) At(i, j, k int) complex128 {
	return o.data[o.index(i, j, k)]
}

// Set sets the element i, j
// of the operator at wavenumber k.
func (o *Operators) Set(i, j, k int, v complex128) {
	o.data[o.index(i, j, k)] = v
}

func (o *Operators) index(i, j, k int) int {
	if i < 0 || i >= o.nv || j < 0 || j >= o.nv {
		panic("spectral: operator variable index out of range")
	}
	if k < 0 || k >= o.nk {
		panic("spectral: operator wavenumber index out of range")
	}
	return (i*o.nv+j)*o.nk + k
}

// Matrix returns a copy of the operator
// at wavenumber k.
func (o *Operators) Matrix(k int) *mat.CDense {
	m := mat.NewCDense(o.nv, o.nv, nil)
	for i := 0; i < o.nv; i++ {
		for j := 0; j < o.nv; j++ {
			m.Set(i, j, o.At(i, j, k))
		}
	}
	return m
}

// Transpose returns a copy of the transpose
// (not the conjugate transpose)
// of the operator at wavenumber k.
func (o *Operators) Transpose(k int) *mat.CDense {
	m := mat.NewCDense(o.nv, o.nv, nil)
	for i := 0; i < o.nv; i++ {
		for j := 0; j < o.nv; j++ {
			m.Set(j, i, o.At(i, j, k))
		}
	}
	return m
}

// Select returns a new collection of operators
// with only the indicated wavenumbers,
// in the given order.
func (o *Operators) Select(ks []int) (*Operators, error) {
	n := NewOperators(o.nv, len(ks))
	for nk, k := range ks {
		if k < 0 || k >= o.nk {
			return nil, IndexError("wavenumber", k, o.nk)
		}
		for i := 0; i < o.nv; i++ {
			for j := 0; j < o.nv; j++ {
				n.Set(i, j, nk, o.At(i, j, k))
			}
		}
	}
	return n, nil
}
