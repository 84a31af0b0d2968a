// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon_test

import (
	"errors"
	"math"
	"math/cmplx"
	"slices"
	"testing"

	"github.com/js-arias/kwave/recon"
	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/mat"
)

func ones(r, c int) *mat.Dense {
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, 1)
		}
	}
	return d
}

func TestReconstructIdentity(t *testing.T) {
	st := spectral.NewState(1, 1, 3)
	for i, v := range []complex64{1, 2, 3} {
		st.Set(0, 0, i, v)
	}

	for _, dim := range [][2]int{{1, 1}, {4, 7}, {10, 3}} {
		nz, nx := dim[0], dim[1]
		inv := mat.NewCDense(nx, 1, nil)
		for x := 0; x < nx; x++ {
			inv.Set(x, 0, 1)
		}

		f, err := recon.Reconstruct(0, st, ones(1, nz), inv)
		if err != nil {
			t.Fatalf("nz %d, nx %d: unexpected error: %v", nz, nx, err)
		}
		if v, z, x, n := f.Dims(); v != 1 || z != nz || x != nx || n != 3 {
			t.Fatalf("nz %d, nx %d: got dims (%d, %d, %d, %d)", nz, nx, v, z, x, n)
		}
		for z := 0; z < nz; z++ {
			for x := 0; x < nx; x++ {
				for i, want := range []complex64{1, 2, 3} {
					if got := f.At(0, z, x, i); got != want {
						t.Errorf("nz %d, nx %d: at (%d, %d, %d): got %v, want %v", nz, nx, z, x, i, got, want)
					}
				}
			}
		}
	}
}

func TestReconstructWave(t *testing.T) {
	nx, nk, nt := 64, 3, 8
	kidx := 2
	wave := 3.0
	amp := 2.5

	x := make([]float64, nx)
	inv := mat.NewCDense(nx, nk, nil)
	for i := range x {
		x[i] = 2 * math.Pi * float64(i) / float64(nx)
		for k := 0; k < nk; k++ {
			inv.Set(i, k, cmplx.Exp(complex(0, float64(k+1)*x[i])))
		}
	}

	// a wave traveling with a phase of one radian per time step
	st := spectral.NewState(2, nk, nt)
	for i := 0; i < nt; i++ {
		c := complex64(complex(amp, 0) * cmplx.Exp(complex(0, -float64(i))))
		st.Set(0, kidx, i, c)
		st.Set(1, kidx, i, c)
	}
	basis := mat.NewDense(2, 2, []float64{
		1, 0.5,
		0, 2,
	})

	f, err := recon.Reconstruct(kidx, st, basis, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := f.Sum(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// level 0: 1*amp, level 1: (0.5+2)*amp
	levels := []float64{1 * amp, 2.5 * amp}
	for z, a := range levels {
		for i := 0; i < nx; i++ {
			for n := 0; n < nt; n++ {
				want := a * math.Cos(wave*x[i]-float64(n))
				if got := p.At(z, i, n); math.Abs(got-want) > 1e-4 {
					t.Errorf("level %d, x %.3f, t %d: got %.6f, want %.6f", z, x[i], n, got, want)
				}
			}
		}
	}
}

func TestReconstructErrors(t *testing.T) {
	st := spectral.NewState(2, 3, 4)
	st.Set(1, 2, 3, 7)
	basis := ones(2, 5)
	inv := mat.NewCDense(6, 3, nil)

	tests := map[string]struct {
		kidx  int
		basis *mat.Dense
		inv   *mat.CDense
		err   error
	}{
		"negative index": {-1, basis, inv, spectral.ErrIndex},
		"large index":    {3, basis, inv, spectral.ErrIndex},
		"basis":          {0, ones(3, 5), inv, spectral.ErrShape},
		"transform":      {0, basis, mat.NewCDense(6, 2, nil), spectral.ErrShape},
	}

	for name, test := range tests {
		f, err := recon.Reconstruct(test.kidx, st, test.basis, test.inv)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", name, err, test.err)
		}
		if f != nil {
			t.Errorf("%s: unexpected field", name)
		}
	}

	if got := st.At(1, 2, 3); got != 7 {
		t.Errorf("state modified: got %v, want %v", got, 7)
	}
	if got := basis.At(1, 4); got != 1 {
		t.Errorf("basis modified: got %v, want %v", got, 1)
	}
}

func TestClosest(t *testing.T) {
	k := []float64{0.5, 1, 2, 3, 4}

	tests := map[string]struct {
		target float64
		want   int
	}{
		"exact":  {2, 2},
		"near":   {3.2, 3},
		"tie":    {2.5, 2},
		"low":    {-10, 0},
		"high":   {100, 4},
		"middle": {0.76, 1},
	}
	for name, test := range tests {
		got, err := recon.Closest(k, test.target)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != test.want {
			t.Errorf("%s: got %d, want %d", name, got, test.want)
		}
	}

	if _, err := recon.Closest(nil, 1); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("empty axis: got error %v, want %v", err, spectral.ErrShape)
	}
}

func TestWavenumber(t *testing.T) {
	k := recon.Wavenumber(8640, 4320)
	if math.Abs(k-math.Pi) > 1e-12 {
		t.Errorf("wavenumber: got %.6f, want %.6f", k, math.Pi)
	}
	if l := recon.Wavelength(k, 4320); math.Abs(l-8640) > 1e-9 {
		t.Errorf("wavelength: got %.6f, want %.6f", l, 8640.0)
	}
}

func TestRestrict(t *testing.T) {
	x := []float64{-6, -4, -2, 0, 2, 4, 6}
	inv := mat.NewCDense(len(x), 2, nil)
	for i := range x {
		inv.Set(i, 0, complex(float64(i), 0))
		inv.Set(i, 1, complex(0, float64(i)))
	}

	r, nx, err := recon.Restrict(inv, x, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []float64{-4, -2, 0, 2, 4}; !slices.Equal(nx, want) {
		t.Errorf("axis: got %v, want %v", nx, want)
	}
	if rows, _ := r.Dims(); rows != 5 {
		t.Fatalf("rows: got %d, want %d", rows, 5)
	}
	if got := r.At(0, 1); got != complex(0, 1) {
		t.Errorf("value: got %v, want %v", got, complex(0, 1))
	}

	if _, _, err := recon.Restrict(inv, x[1:], 4); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("short axis: got error %v, want %v", err, spectral.ErrShape)
	}
	r, nx, err = recon.Restrict(inv, x, 1)
	if err != nil {
		t.Fatalf("bound 1: unexpected error: %v", err)
	}
	if want := []float64{0}; !slices.Equal(nx, want) {
		t.Errorf("bound 1: got axis %v, want %v", nx, want)
	}
	if got := r.At(0, 0); got != complex(3, 0) {
		t.Errorf("bound 1: got value %v, want %v", got, complex(3, 0))
	}

	far := []float64{10, 20, 30, 40, 50, 60, 70}
	if _, _, err := recon.Restrict(inv, far, 1); !errors.Is(err, spectral.ErrDomain) {
		t.Errorf("empty domain: got error %v, want %v", err, spectral.ErrDomain)
	}
}

func TestLevels(t *testing.T) {
	p := spectral.NewPlane(1, 2, 1)
	p.Set(0, 0, 0, -0.0137)
	p.Set(0, 1, 0, 0.005)

	lv := recon.Levels(p, 0.8, 0.0005, 21)

	// max = floor(0.01096 / 0.0005) * 0.0005 = 0.0105
	if len(lv) != 20 {
		t.Fatalf("levels: got %d levels, want %d: %v", len(lv), 20, lv)
	}
	if math.Abs(lv[0]+0.0105) > 1e-12 || math.Abs(lv[len(lv)-1]-0.0105) > 1e-12 {
		t.Errorf("levels: got range [%g, %g], want [%g, %g]", lv[0], lv[len(lv)-1], -0.0105, 0.0105)
	}
	for _, v := range lv {
		if math.Abs(v) < 1e-5 {
			t.Errorf("levels: unexpected level %g", v)
		}
	}

	if lv := recon.Levels(spectral.NewPlane(1, 1, 1), 0.8, 1, 21); lv != nil {
		t.Errorf("zero plane: got %v, want nil", lv)
	}
}

func TestLevelsModulus(t *testing.T) {
	f := spectral.NewField(2, 1, 1, 1)
	f.Set(0, 0, 0, 0, complex(0.25, 0.5))
	f.Set(1, 0, 0, 0, complex(0.5, 0.5))

	// complex sum is 0.75+1i:
	// the real part is 0.75,
	// but the modulus is 1.25
	p, err := f.Sum(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lv := recon.Levels(p, 1, 0.25, 3)
	if len(lv) != 2 {
		t.Fatalf("levels: got %v, want 2 levels", lv)
	}
	if lv[0] != -1.25 || lv[1] != 1.25 {
		t.Errorf("levels: got %v, want [-1.25 1.25]", lv)
	}
}
