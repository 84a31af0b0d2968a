// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package diag

import (
	"fmt"

	"github.com/js-arias/kwave/spectral"
)

// Heating coefficients.
const (
	// Gamma is the fraction of the moisture anomaly
	// that contributes to the upper level heating.
	Gamma = 0.7

	// TempFactor is the weight of the temperature
	// in the upper level heating.
	TempFactor = 1.5
)

// ConvertState returns a new state
// with two heating variables appended:
// the first and second baroclinic heating.
//
// The last variable of the state
// is the low level heating (L),
// and the upper level heating (U) is
//
//	U = L + Gamma * (s[last-1] - TempFactor * s[2])
//
// Then J1 = L + U,
// and J2 = L - U.
func ConvertState(st *spectral.State) (*spectral.State, error) {
	nv, nk, nt := st.Dims()
	if nv < spectral.NumVars {
		return nil, fmt.Errorf("convert state: %w", spectral.ShapeError("state", []int{nv, nk, nt}, fmt.Sprintf("(>=%d, %d, %d)", spectral.NumVars, nk, nt)))
	}

	ns := spectral.NewState(nv+2, nk, nt)
	for v := 0; v < nv; v++ {
		for k := 0; k < nk; k++ {
			for t := 0; t < nt; t++ {
				ns.Set(v, k, t, st.At(v, k, t))
			}
		}
	}

	for k := 0; k < nk; k++ {
		for t := 0; t < nt; t++ {
			low := complex128(st.At(nv-1, k, t))
			q := complex128(st.At(nv-2, k, t))
			temp := complex128(st.At(2, k, t))

			up := low + Gamma*(q-TempFactor*temp)
			ns.Set(nv, k, t, complex64(low+up))
			ns.Set(nv+1, k, t, complex64(low-up))
		}
	}
	return ns, nil
}
