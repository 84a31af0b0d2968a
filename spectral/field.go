// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package spectral

import (
	"fmt"
	"math/cmplx"
)

// Field is a physical space field
// with the shape (Nv, Nz, Nx, Nt),
// i.e., the contribution of each variable
// at each vertical level,
// horizontal position,
// and time step.
type Field struct {
	nv, nz, nx, nt int
	data           []complex64
}

// NewField creates a new zero field.
func NewField(nv, nz, nx, nt int) *Field {
	return &Field{
		nv:   nv,
		nz:   nz,
		nx:   nx,
		nt:   nt,
		data: make([]complex64, nv*nz*nx*nt),
	}
}

// Dims returns the dimensions of the field.
func (f *Field) Dims() (nv, nz, nx, nt int) {
	return f.nv, f.nz, f.nx, f.nt
}

// At returns the value of variable v
// at level z,
// position x,
// and time step t.
func (f *Field) At(v, z, x, t int) complex64 {
	return f.data[f.index(v, z, x, t)]
}

// Set sets the value of variable v
// at level z,
// position x,
// and time step t.
func (f *Field) Set(v, z, x, t int, c complex64) {
	f.data[f.index(v, z, x, t)] = c
}

func (f *Field) index(v, z, x, t int) int {
	if v < 0 || v >= f.nv || z < 0 || z >= f.nz || x < 0 || x >= f.nx || t < 0 || t >= f.nt {
		panic("spectral: field index out of range")
	}
	return ((v*f.nz+z)*f.nx+x)*f.nt + t
}

// Sum returns the sum of the contributions
// of the indicated variables,
// as the real part of the combined field.
// The plane keeps the maximum modulus
// of the complex sum
// (see Plane.Peak).
func (f *Field) Sum(vars ...int) (*Plane, error) {
	sz := f.nz * f.nx * f.nt
	sum := make([]complex128, sz)
	for _, v := range vars {
		if v < 0 || v >= f.nv {
			return nil, fmt.Errorf("field sum: %w", IndexError("variable", v, f.nv))
		}
		for i, c := range f.data[v*sz : (v+1)*sz] {
			sum[i] += complex128(c)
		}
	}

	p := NewPlane(f.nz, f.nx, f.nt)
	p.peak = 0
	for i, c := range sum {
		p.data[i] = real(c)
		if m := cmplx.Abs(c); m > p.peak {
			p.peak = m
		}
	}
	return p, nil
}

// Plane is a real physical field
// with the shape (Nz, Nx, Nt).
type Plane struct {
	nz, nx, nt int
	data       []float64

	// maximum modulus of the complex field,
	// negative if unknown
	peak float64
}

// NewPlane returns a new zero plane.
func NewPlane(nz, nx, nt int) *Plane {
	return &Plane{
		nz:   nz,
		nx:   nx,
		nt:   nt,
		data: make([]float64, nz*nx*nt),
		peak: -1,
	}
}

// Dims returns the dimensions of the plane.
func (p *Plane) Dims() (nz, nx, nt int) {
	return p.nz, p.nx, p.nt
}

// At returns the value at level z,
// position x,
// and time step t.
func (p *Plane) At(z, x, t int) float64 {
	return p.data[(z*p.nx+x)*p.nt+t]
}

// Set sets the value at level z,
// position x,
// and time step t.
func (p *Plane) Set(z, x, t int, v float64) {
	p.data[(z*p.nx+x)*p.nt+t] = v
	p.peak = -1
}

// Peak returns the maximum modulus
// of the complex field
// from which the plane was built.
// If the plane was not built from a complex field,
// or it was modified,
// it returns the maximum absolute value.
func (p *Plane) Peak() float64 {
	if p.peak >= 0 {
		return p.peak
	}
	return p.MaxAbs()
}

// MaxAbs returns the maximum absolute value
// of the plane.
// NaN values are ignored.
func (p *Plane) MaxAbs() float64 {
	var max float64
	for _, v := range p.data {
		if v != v {
			continue
		}
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}

// Range returns the minimum and maximum values
// of the plane.
// NaN values are ignored.
func (p *Plane) Range() (min, max float64) {
	first := true
	for _, v := range p.data {
		if v != v {
			continue
		}
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
