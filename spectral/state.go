// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package spectral

// State contains the spectral coefficients
// of the model variables
// with the shape (Nv, Nk, Nt).
//
// Values are stored with single precision.
type State struct {
	nv, nk, nt int
	data       []complex64
}

// NewState creates a new zero state.
func NewState(nv, nk, nt int) *State {
	return &State{
		nv:   nv,
		nk:   nk,
		nt:   nt,
		data: make([]complex64, nv*nk*nt),
	}
}

// NewStateFrom creates a state
// from a row-major data slice of shape (nv, nk, nt).
// The data is used without a copy.
func NewStateFrom(nv, nk, nt int, data []complex64) (*State, error) {
	if nv <= 0 || nk <= 0 || nt <= 0 || len(data) != nv*nk*nt {
		return nil, ShapeError("state", []int{len(data)}, []int{nv, nk, nt})
	}
	return &State{
		nv:   nv,
		nk:   nk,
		nt:   nt,
		data: data,
	}, nil
}

// Dims returns the number of variables,
// wavenumbers,
// and time steps of the state.
func (s *State) Dims() (nv, nk, nt int) {
	return s.nv, s.nk, s.nt
}

// At returns the coefficient of variable v
// at wavenumber k
// and time step t.
func (s *State) At(v, k, t int) complex64 {
	return s.data[s.index(v, k, t)]
}

// Set sets the coefficient of variable v
// at wavenumber k
// and time step t.
func (s *State) Set(v, k, t int, c complex64) {
	s.data[s.index(v, k, t)] = c
}

func (s *State) index(v, k, t int) int {
	if v < 0 || v >= s.nv {
		panic("spectral: state variable index out of range")
	}
	if k < 0 || k >= s.nk {
		panic("spectral: state wavenumber index out of range")
	}
	if t < 0 || t >= s.nt {
		panic("spectral: state time index out of range")
	}
	return (v*s.nk+k)*s.nt + t
}

// Series returns a copy of the time series
// of variable v
// at wavenumber k.
func (s *State) Series(v, k int) []complex64 {
	i := s.index(v, k, 0)
	ts := make([]complex64, s.nt)
	copy(ts, s.data[i:i+s.nt])
	return ts
}

// Vars returns a new state
// with only the indicated variables,
// in the given order.
func (s *State) Vars(vars []int) (*State, error) {
	n := NewState(len(vars), s.nk, s.nt)
	sz := s.nk * s.nt
	for i, v := range vars {
		if v < 0 || v >= s.nv {
			return nil, IndexError("variable", v, s.nv)
		}
		copy(n.data[i*sz:(i+1)*sz], s.data[v*sz:(v+1)*sz])
	}
	return n, nil
}

// Wavenumbers returns a new state
// with only the indicated wavenumbers,
// in the given order.
func (s *State) Wavenumbers(ks []int) (*State, error) {
	n := NewState(s.nv, len(ks), s.nt)
	for v := 0; v < s.nv; v++ {
		for i, k := range ks {
			if k < 0 || k >= s.nk {
				return nil, IndexError("wavenumber", k, s.nk)
			}
			src := s.index(v, k, 0)
			dst := n.index(v, i, 0)
			copy(n.data[dst:dst+s.nt], s.data[src:src+s.nt])
		}
	}
	return n, nil
}
