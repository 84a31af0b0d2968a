// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render_test

import (
	"bytes"
	"errors"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/render"
	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/mat"
)

func TestScheme(t *testing.T) {
	for _, name := range []string{"", "diverging", "rainbow", "Iridescent", "incandescent", "gray"} {
		g, err := render.Scheme(name)
		if err != nil {
			t.Errorf("scheme %q: unexpected error: %v", name, err)
			continue
		}
		_, _, _, a := g.Gradient(0.5).RGBA()
		if a == 0 {
			t.Errorf("scheme %q: transparent color", name)
		}
	}
	if _, err := render.Scheme("viridis"); err == nil {
		t.Errorf("scheme %q: expecting error", "viridis")
	}
}

func TestDiagnosticPlots(t *testing.T) {
	dir := t.TempDir()

	k := []float64{1, 2, 3, 4, 5}
	growth := mat.NewDense(2, 5, []float64{
		0.1, 0.3, 0.5, 0.2, 0.1,
		0.0, 0.1, 0.2, 0.4, 0.0,
	})
	speed := mat.NewDense(2, 5, []float64{
		10, 11, 12, 13, 14,
		-5, -5, -5, -5, -5,
	})
	u, err := diag.MostUnstable(growth, speed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, s := render.Diagnostics(k, speed, u)
	gName := filepath.Join(dir, "growth_rate.png")
	if err := render.GrowthRate(gName, g); err != nil {
		t.Fatalf("growth rate: unexpected error: %v", err)
	}
	sName := filepath.Join(dir, "phase_speed.png")
	if err := render.PhaseSpeed(sName, s); err != nil {
		t.Fatalf("phase speed: unexpected error: %v", err)
	}
	for _, name := range []string{gName, sName} {
		if st, err := os.Stat(name); err != nil || st.Size() == 0 {
			t.Errorf("file %q: not written", name)
		}
	}

	bad := render.Diagnostic{Wavenumber: k, Unstable: u.Growth[:3]}
	if err := render.GrowthRate(filepath.Join(dir, "bad.png"), bad); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("shape mismatch: got error %v, want %v", err, spectral.ErrShape)
	}
}

func TestCompareAndSeries(t *testing.T) {
	dir := t.TempDir()

	curves := []render.Curve{
		{Name: "no_rad", X: []float64{1, 2, 3}, Y: []float64{0.1, 0.2, 0.1}},
		{Name: "rad", X: []float64{1, 2, 3}, Y: []float64{0.2, 0.3, 0.2}},
	}
	name := filepath.Join(dir, "compare.png")
	if err := render.Compare(name, "wavenumber", "growth rate", curves); err != nil {
		t.Fatalf("compare: unexpected error: %v", err)
	}
	if err := render.Compare(name, "x", "y", nil); err == nil {
		t.Errorf("compare: expecting error on empty curves")
	}

	series := [][]complex64{
		{1, 0, -1, 0},
		{0, 1, 0, -1},
	}
	name = filepath.Join(dir, "series.png")
	if err := render.TimeSeries(name, []float64{0, 1, 2, 3}, []string{"w1", "w2"}, series); err != nil {
		t.Fatalf("time series: unexpected error: %v", err)
	}
	if err := render.TimeSeries(name, nil, []string{"w1"}, series); err == nil {
		t.Errorf("time series: expecting error on names mismatch")
	}
}

func TestAnimation(t *testing.T) {
	const nz, nx, nt = 4, 8, 6
	x := make([]float64, nx)
	for i := range x {
		x[i] = -4_000_000 + float64(i)*1_000_000
	}
	z := []float64{0, 5000, 10000, 15000}

	fill := spectral.NewPlane(nz, nx, nt)
	lines := spectral.NewPlane(nz, nx, nt)
	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx; ix++ {
			for it := 0; it < nt; it++ {
				ph := 2*math.Pi*float64(ix)/nx - 0.5*float64(it)
				fill.Set(iz, ix, it, math.Cos(ph)*float64(iz+1))
				lines.Set(iz, ix, it, math.Sin(ph))
			}
		}
	}

	a := &render.Animation{
		X:        x,
		Z:        z,
		Fill:     fill,
		FillName: "J",
		Lines: []render.Contours{
			{Name: "T", Plane: lines, Levels: []float64{-0.5, 0.5}},
		},
		Step: 2,
	}

	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decoding: unexpected error: %v", err)
	}
	if len(g.Image) != 3 {
		t.Errorf("frames: got %d, want %d", len(g.Image), 3)
	}

	a.Frames = 2
	if got := a.Steps(); len(got) != 2 || got[1] != 2 {
		t.Errorf("steps: got %v, want %v", got, []int{0, 2})
	}

	bad := &render.Animation{X: x[:3], Z: z, Fill: fill}
	if err := bad.Encode(&buf); !errors.Is(err, spectral.ErrShape) {
		t.Errorf("shape mismatch: got error %v, want %v", err, spectral.ErrShape)
	}
}
