// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package h5data

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/hdf5"
)

func writeTestFile(t testing.TB, name string, fn func(f *hdf5.File) error) {
	t.Helper()

	f, err := hdf5.CreateFile(name, hdf5.F_ACC_TRUNC)
	if err != nil {
		t.Fatalf("unable to create file %q: %v", name, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		t.Fatalf("unable to write file %q: %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("unable to close file %q: %v", name, err)
	}
}

func TestReadState(t *testing.T) {
	nk, nv, nt := 3, 2, 5
	name := filepath.Join(t.TempDir(), "state.h5")

	// stored as (Nk, Nv, Nt)
	data := make([]complex128, nk*nv*nt)
	for k := 0; k < nk; k++ {
		for v := 0; v < nv; v++ {
			for i := 0; i < nt; i++ {
				data[(k*nv+v)*nt+i] = complex(float64(k), float64(v*10+i))
			}
		}
	}
	writeTestFile(t, name, func(f *hdf5.File) error {
		if err := writeComplex(f, StateSet, data, nk, nv, nt); err != nil {
			return err
		}
		if err := writeFloats(f, TimeSet, []float64{0, 1, 2, 3, 4}, nt); err != nil {
			return err
		}
		return writeFloats(f, WavenumberSet, []float64{0.5, 1, 1.5}, nk)
	})

	s, err := ReadState(name, KVT, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, k, n := s.State.Dims(); v != nv || k != nk || n != 3 {
		t.Errorf("dims: got (%d, %d, %d), want (%d, %d, %d)", v, k, n, nv, nk, 3)
	}
	if got, want := s.State.At(1, 2, 2), complex64(complex(2, 12)); got != want {
		t.Errorf("state: got %v, want %v", got, want)
	}
	if len(s.Time) != 3 {
		t.Errorf("time: got %d values, want %d", len(s.Time), 3)
	}
	if len(s.Wavenumber) != nk || s.Wavenumber[2] != 1.5 {
		t.Errorf("wavenumber: got %v", s.Wavenumber)
	}

	// same data read as (Nv, Nk, Nt)
	if _, err := ReadState(name, VKT, 0); err == nil {
		t.Errorf("vkt: expecting error, wavenumber axis is inconsistent")
	}
}

func TestReadOperators(t *testing.T) {
	nv, nk := spectral.NumVars, 4
	name := filepath.Join(t.TempDir(), "optrs.h5")

	data := make([]complex128, nv*nv*nk)
	for i := range data {
		data[i] = complex(float64(i), -float64(i))
	}
	writeTestFile(t, name, func(f *hdf5.File) error {
		return writeComplex(f, OperatorsSet, data, nv, nv, nk)
	})

	ops, err := ReadOperators(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, k := ops.Dims(); v != nv || k != nk {
		t.Errorf("dims: got (%d, %d), want (%d, %d)", v, k, nv, nk)
	}
	// element (1, 0, 3) is at (1*6+0)*4+3 = 27
	if got, want := ops.At(1, 0, 3), complex(27, -27); got != want {
		t.Errorf("operator: got %v, want %v", got, want)
	}
}

func TestReadRealOperators(t *testing.T) {
	nv, nk := spectral.NumVars, 1
	name := filepath.Join(t.TempDir(), "optrs.h5")

	data := make([]float64, nv*nv*nk)
	for i := range data {
		data[i] = float64(i)
	}
	writeTestFile(t, name, func(f *hdf5.File) error {
		return writeFloats(f, OperatorsSet, data, nv, nv, nk)
	})

	ops, err := ReadOperators(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// element (1, 1, 0) is at 1*6+1 = 7
	if got := ops.At(1, 1, 0); got != 7 {
		t.Errorf("operator: got %v, want %v", got, 7)
	}
}

func TestReadOperatorsVars(t *testing.T) {
	nv, nk := 2, 4
	name := filepath.Join(t.TempDir(), "optrs.h5")

	data := make([]complex128, nv*nv*nk)
	writeTestFile(t, name, func(f *hdf5.File) error {
		return writeComplex(f, OperatorsSet, data, nv, nv, nk)
	})

	if _, err := ReadOperators(name); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("variables: got error %v, want %v", err, spectral.ErrShape)
	}
}

func TestReadInverse(t *testing.T) {
	nx, nk := 4, 2
	name := filepath.Join(t.TempDir(), "inv_mat.h5")

	data := make([]complex128, nx*nk)
	for i := range data {
		data[i] = complex(0, float64(i))
	}
	writeTestFile(t, name, func(f *hdf5.File) error {
		if err := writeComplex(f, InverseSet, data, nx, nk); err != nil {
			return err
		}
		return writeFloats(f, CalibrationWN, []float64{1, 2}, nk)
	})

	inv, err := ReadInverse(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := inv.F.At(3, 1); got != complex(0, 7) {
		t.Errorf("inverse: got %v, want %v", got, complex(0, 7))
	}
	if len(inv.Calibration) != nk {
		t.Errorf("calibration: got %v", inv.Calibration)
	}
	if inv.Display != nil {
		t.Errorf("display: got %v, want nil", inv.Display)
	}
}

func TestReadModes(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "vertical_mode.h5")
	writeTestFile(t, name, func(f *hdf5.File) error {
		if err := writeFloats(f, Mode1Set, []float64{1, 2, 3}, 1, 3); err != nil {
			return err
		}
		return writeFloats(f, Mode2Set, []float64{4, 5}, 2)
	})

	if _, _, err := ReadModes(name); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("got error %v, want %v", err, spectral.ErrShape)
	}

	dom := filepath.Join(dir, "domain.h5")
	writeTestFile(t, dom, func(f *hdf5.File) error {
		if err := writeFloats(f, XSet, []float64{-1, 0, 1}, 3); err != nil {
			return err
		}
		return writeFloats(f, ZSet, []float64{0, 1000}, 2)
	})
	x, z, err := ReadDomain(dom)
	if err != nil {
		t.Fatalf("domain: unexpected error: %v", err)
	}
	if len(x) != 3 || len(z) != 2 {
		t.Errorf("domain: got x %v, z %v", x, z)
	}
}

func TestPost(t *testing.T) {
	name := filepath.Join(t.TempDir(), "post.h5")

	growth := mat.NewDense(2, 3, []float64{
		1, 5, -1,
		3, 2, -2,
	})
	speed := mat.NewDense(2, 3, []float64{
		10, 20, 30,
		40, 50, 60,
	})
	u, err := diag.MostUnstable(growth, speed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pl := spectral.NewPlane(2, 2, 2)
	pl.Set(1, 1, 1, 3.5)

	p := Post{
		Wavenumber: []float64{1, 2, 3},
		Growth:     growth,
		Speed:      speed,
		Unstable:   u,
		Fields:     map[string]*spectral.Plane{"w": pl},
	}
	if err := WritePost(name, p); err != nil {
		t.Fatalf("write: unexpected error: %v", err)
	}

	np, err := ReadPost(name)
	if err != nil {
		t.Fatalf("read: unexpected error: %v", err)
	}
	if !mat.Equal(np.Growth, growth) {
		t.Errorf("growth: got %v, want %v", mat.Formatted(np.Growth), mat.Formatted(growth))
	}
	if !mat.Equal(np.Speed, speed) {
		t.Errorf("speed: got %v, want %v", mat.Formatted(np.Speed), mat.Formatted(speed))
	}
	want := []float64{40, 20, 30}
	for i, v := range np.Unstable.Speed {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("max speed: got %v, want %v", np.Unstable.Speed, want)
			break
		}
	}
}
