// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pipeline_test

import (
	"errors"
	"io"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/pipeline"
	"github.com/js-arias/kwave/spectral"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const (
	nv = 7
	nk = 3
	nt = 4
)

func testInput(t testing.TB) *pipeline.Input {
	t.Helper()

	ops := spectral.NewOperators(spectral.NumVars, nk)
	for k := 0; k < nk; k++ {
		for m := 0; m < spectral.NumVars; m++ {
			ops.Set(m, m, k, complex(0.1*float64(m+1), -float64(k)))
		}
	}

	st := spectral.NewState(nv, nk, nt)
	for v := 0; v < nv; v++ {
		for k := 0; k < nk; k++ {
			for tm := 0; tm < nt; tm++ {
				st.Set(v, k, tm, complex(float32(v+1), float32(tm)))
			}
		}
	}

	x := []float64{-2e6, -1e6, 0, 1e6, 2e6, 5e6}
	inv := mat.NewCDense(len(x), nk, nil)
	for i, xv := range x {
		for k := 0; k < nk; k++ {
			inv.Set(i, k, cmplx.Exp(complex(0, float64(k)*xv/4e6)))
		}
	}

	return &pipeline.Input{
		Params: param.New(""),
		State: &h5data.State{
			State: st,
			Time:  []float64{0, 1, 2, 3},
		},
		Operators: ops,
		Inverse: &h5data.Inverse{
			F:           inv,
			Calibration: []float64{0, 1, 2},
			Display:     []float64{0, 10, 20},
		},
		X:  x,
		Z:  []float64{0, 5000, 10000},
		G1: []float64{0, 1, 0},
		G2: []float64{0, 0.5, -0.5},
	}
}

func TestAxes(t *testing.T) {
	in := testInput(t)
	cal, display, err := pipeline.Axes(in.Inverse, in.State, nk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cal[2] != 2 || display[2] != 20 {
		t.Errorf("axes: got %v %v", cal, display)
	}

	in.State.Wavenumber = []float64{5, 6, 7}
	cal, display, err = pipeline.Axes(nil, in.State, nk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cal[0] != 5 || display[0] != 5 {
		t.Errorf("axes from state: got %v %v", cal, display)
	}

	if _, _, err := pipeline.Axes(nil, nil, nk); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("no axis: got error %v, want %v", err, spectral.ErrShape)
	}
}

func TestDiagnose(t *testing.T) {
	in := testInput(t)
	d, err := pipeline.Diagnose(in.Operators, in.Inverse.Calibration, in.Inverse.Display, diag.DefaultScale, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.Index) != 2 || d.Index[0] != 1 {
		t.Errorf("index: got %v, want %v", d.Index, []int{1, 2})
	}
	if d.Display[0] != 10 {
		t.Errorf("display: got %v", d.Display)
	}
	if r, c := d.Growth.Dims(); r != spectral.NumVars || c != 2 {
		t.Fatalf("growth: got dims %d x %d, want %d x %d", r, c, spectral.NumVars, 2)
	}

	// phase speed is -Im/k * L/T = 50
	for k := range d.Wavenumber {
		if g := d.Unstable.Growth[k]; math.Abs(g-0.6) > 1e-10 {
			t.Errorf("growth %d: got %g, want %g", k, g, 0.6)
		}
		if s := d.Unstable.Speed[k]; math.Abs(s-50) > 1e-8 {
			t.Errorf("speed %d: got %g, want %g", k, s, 50.0)
		}
	}

	if _, err := pipeline.Diagnose(in.Operators, []float64{0, 0, 0}, nil, diag.DefaultScale, 1); !errors.Is(err, spectral.ErrDomain) {
		t.Errorf("zero wavenumbers: got error %v, want %v", err, spectral.ErrDomain)
	}
	if _, err := pipeline.Diagnose(in.Operators, []float64{1, 2}, nil, diag.DefaultScale, 1); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("axis mismatch: got error %v, want %v", err, spectral.ErrShape)
	}
}

func TestBasis(t *testing.T) {
	b, err := pipeline.Basis([]float64{1, 2}, []float64{3, 4}, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mat.NewDense(spectral.NumVars, 2, []float64{
		1, 2,
		3, 4,
		0.5, 1,
		1.5, 2,
		0.5, 1,
		1.5, 2,
	})
	if !mat.Equal(b, want) {
		t.Errorf("basis: got %v, want %v", mat.Formatted(b), mat.Formatted(want))
	}

	if _, err := pipeline.Basis([]float64{1, 2}, []float64{3}, 1); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("basis: got error %v, want %v", err, spectral.ErrShape)
	}
}

func TestReconstruction(t *testing.T) {
	in := testInput(t)
	fs, err := pipeline.Reconstruction(in, in.Inverse.Calibration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// target wavenumber is 2*pi*4320/8640
	if fs.KIdx != 2 {
		t.Errorf("kidx: got %d, want %d", fs.KIdx, 2)
	}
	if len(fs.X) != 5 {
		t.Errorf("x: got %d positions, want %d", len(fs.X), 5)
	}

	basis, _ := pipeline.Basis(in.G1, in.G2, in.Params.TScale())
	sel := in.Params.Selection(nv)
	pairs := []struct {
		name  string
		plane *spectral.Plane
		vars  [2]int
	}{
		{"w", fs.W, [2]int{0, 1}},
		{"T", fs.T, [2]int{2, 3}},
		{"J", fs.J, [2]int{4, 5}},
	}
	for _, p := range pairs {
		for z := range in.Z {
			for x := range fs.X {
				for tm := 0; tm < nt; tm++ {
					var want float64
					for _, v := range p.vars {
						c := complex(basis.At(v, z), 0) * in.Inverse.F.At(x, 2) * complex128(in.State.State.At(sel[v], 2, tm))
						want += real(c)
					}
					if got := p.plane.At(z, x, tm); math.Abs(got-want) > 1e-5 {
						t.Errorf("%s (%d, %d, %d): got %g, want %g", p.name, z, x, tm, got, want)
					}
				}
			}
		}
	}

	a := fs.Animation()
	if len(a.Lines) != 2 {
		t.Errorf("animation: got %d contour fields, want %d", len(a.Lines), 2)
	}
}

func TestReconstructionHeating(t *testing.T) {
	in := testInput(t)
	if err := in.Params.Set(param.Heating, "true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs, err := pipeline.Reconstruction(in, in.Inverse.Calibration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conv, err := diag.ConvertState(in.State.State)
	if err != nil {
		t.Fatalf("convert: unexpected error: %v", err)
	}
	basis, _ := pipeline.Basis(in.G1, in.G2, in.Params.TScale())

	// heating uses the appended J1 and J2
	for z := range in.Z {
		for x := range fs.X {
			for tm := 0; tm < nt; tm++ {
				var want float64
				for i, v := range []int{nv, nv + 1} {
					c := complex(basis.At(4+i, z), 0) * in.Inverse.F.At(x, 2) * complex128(conv.At(v, 2, tm))
					want += real(c)
				}
				if got := fs.J.At(z, x, tm); math.Abs(got-want) > 1e-5 {
					t.Errorf("J (%d, %d, %d): got %g, want %g", z, x, tm, got, want)
				}
			}
		}
	}
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	log := logrus.New()
	log.Out = io.Discard

	cfg := &pipeline.Config{
		Case:    "test",
		FigDir:  filepath.Join(dir, "fig"),
		PostDir: filepath.Join(dir, "post"),
		CPU:     2,
		Frames:  2,
		Log:     log,
	}
	if err := pipeline.Process(cfg, testInput(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{pipeline.GrowthFile, pipeline.SpeedFile, pipeline.AnimationFile} {
		name = filepath.Join(dir, "fig", "test", name)
		if _, err := os.Stat(name); err != nil {
			t.Errorf("file %q: %v", name, err)
		}
	}

	post, err := h5data.ReadPost(filepath.Join(dir, "post", "test", pipeline.PostFile))
	if err != nil {
		t.Fatalf("post: unexpected error: %v", err)
	}
	if len(post.Wavenumber) != 2 {
		t.Errorf("post: got %d wavenumbers, want %d", len(post.Wavenumber), 2)
	}
}
