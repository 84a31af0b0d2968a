// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon

import (
	"math"

	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/floats"
)

// Levels returns a set of n symmetric contour levels
// for a plane.
//
// The maximum level is the fraction frac
// of the peak of the plane
// (the maximum modulus of the complex field),
// truncated to a multiple of step.
// Levels with an absolute value smaller than 1e-5
// are removed.
func Levels(p *spectral.Plane, frac, step float64, n int) []float64 {
	if n < 2 {
		return nil
	}
	max := p.Peak() * frac
	if step > 0 {
		max = math.Floor(max/step) * step
	}
	if max == 0 {
		return nil
	}

	lv := floats.Span(make([]float64, n), -max, max)
	levels := lv[:0]
	for _, v := range lv {
		if math.Abs(v) < 1e-5 {
			continue
		}
		levels = append(levels, v)
	}
	return levels
}
