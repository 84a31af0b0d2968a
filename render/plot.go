// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package render implements the plots and animations
// of the kwave diagnostics and reconstructions.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default size of a plot.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// XMax is the default upper limit
// of the wavenumber axis.
const XMax = 30

var modeColor = color.RGBA{160, 160, 160, 255}

// Diagnostic contains the data
// for a diagnostic plot.
type Diagnostic struct {
	// Wavenumbers used in the plot
	Wavenumber []float64

	// Value of each mode (rows)
	// at each wavenumber (columns).
	// It can be nil.
	Modes *mat.Dense

	// Value of the most unstable mode
	// at each wavenumber.
	Unstable []float64

	// Upper limit of the wavenumber axis.
	// If zero,
	// the maximum wavenumber is used.
	XMax float64
}

func (d Diagnostic) check() error {
	nk := len(d.Wavenumber)
	if nk == 0 {
		return fmt.Errorf("%w: empty wavenumber axis", spectral.ErrShape)
	}
	if len(d.Unstable) != nk {
		return spectral.ShapeError("most unstable mode", len(d.Unstable), nk)
	}
	if d.Modes != nil {
		if _, c := d.Modes.Dims(); c != nk {
			return spectral.ShapeError("modes", c, nk)
		}
	}
	return nil
}

func (d Diagnostic) plot(ylabel string) (*plot.Plot, error) {
	if err := d.check(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = "wavenumber"
	p.Y.Label.Text = ylabel

	if d.Modes != nil {
		nv, nk := d.Modes.Dims()
		pts := make(plotter.XYs, 0, nv*nk)
		for m := 0; m < nv; m++ {
			for k, x := range d.Wavenumber {
				y := d.Modes.At(m, k)
				if math.IsNaN(y) || math.IsInf(y, 0) {
					continue
				}
				pts = append(pts, plotter.XY{X: x, Y: y})
			}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("while building scatter: %v", err)
		}
		sc.GlyphStyle.Color = modeColor
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}

	pts := make(plotter.XYs, len(d.Wavenumber))
	for i, x := range d.Wavenumber {
		pts[i] = plotter.XY{X: x, Y: d.Unstable[i]}
	}
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("while building line: %v", err)
	}
	ln.LineStyle.Width = vg.Points(1.5)
	p.Add(ln)

	p.X.Min = 0
	p.X.Max = d.XMax
	if d.XMax <= 0 {
		p.X.Max = floats.Max(d.Wavenumber)
	}
	return p, nil
}

// GrowthRate saves a plot of the growth rate
// of the most unstable mode,
// annotated with its maximum.
func GrowthRate(name string, d Diagnostic) error {
	p, err := d.plot("growth rate (1/day)")
	if err != nil {
		return fmt.Errorf("growth rate plot: %w", err)
	}

	i := floats.MaxIdx(d.Unstable)
	txt := fmt.Sprintf("max: %.3g at k = %.3g", d.Unstable[i], d.Wavenumber[i])
	lb, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: d.Wavenumber[i], Y: d.Unstable[i]}},
		Labels: []string{txt},
	})
	if err != nil {
		return fmt.Errorf("growth rate plot: %v", err)
	}
	p.Add(lb)

	p.Y.Min = 0
	if max := floats.Max(d.Unstable); max > 0 {
		p.Y.Max = max * 1.2
	}

	if err := p.Save(Width, Height, name); err != nil {
		return err
	}
	return nil
}

// PhaseSpeed saves a plot of the phase speed
// of all modes (in gray)
// and the most unstable mode
// (as a line).
func PhaseSpeed(name string, d Diagnostic) error {
	p, err := d.plot("phase speed (m/s)")
	if err != nil {
		return fmt.Errorf("phase speed plot: %w", err)
	}
	if err := p.Save(Width, Height, name); err != nil {
		return err
	}
	return nil
}

// A Curve is a named line.
type Curve struct {
	Name string
	X, Y []float64
}

// Compare saves a plot with several curves.
func Compare(name, xlabel, ylabel string, curves []Curve) error {
	if len(curves) == 0 {
		return fmt.Errorf("compare plot: no curves")
	}

	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true

	g := RainbowPurpleToRed{}
	for i, c := range curves {
		if len(c.X) != len(c.Y) {
			return fmt.Errorf("compare plot: curve %q: %w", c.Name, spectral.ShapeError("y", len(c.Y), len(c.X)))
		}
		pts := make(plotter.XYs, len(c.X))
		for j := range c.X {
			pts[j] = plotter.XY{X: c.X[j], Y: c.Y[j]}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("compare plot: curve %q: %v", c.Name, err)
		}
		col := color.Color(color.Black)
		if len(curves) > 1 {
			col = g.Gradient(float64(i) / float64(len(curves)-1))
		}
		sc.GlyphStyle.Color = col
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(c.Name, sc)
	}

	if err := p.Save(Width, Height, name); err != nil {
		return err
	}
	return nil
}

// TimeSeries saves a plot with the real part
// of several complex time series.
func TimeSeries(name string, time []float64, names []string, series [][]complex64) error {
	if len(names) != len(series) {
		return fmt.Errorf("time series plot: %w", spectral.ShapeError("names", len(names), len(series)))
	}

	curves := make([]Curve, len(series))
	for i, s := range series {
		x := time
		if len(x) != len(s) {
			x = make([]float64, len(s))
			for j := range x {
				x[j] = float64(j)
			}
		}
		y := make([]float64, len(s))
		for j, c := range s {
			y[j] = float64(real(c))
		}
		curves[i] = Curve{Name: names[i], X: x, Y: y}
	}

	p := plot.New()
	p.X.Label.Text = "time"
	p.Y.Label.Text = "amplitude"
	p.Legend.Top = true

	g := RainbowPurpleToRed{}
	for i, c := range curves {
		pts := make(plotter.XYs, len(c.X))
		for j := range c.X {
			pts[j] = plotter.XY{X: c.X[j], Y: c.Y[j]}
		}
		ln, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("time series plot: %q: %v", c.Name, err)
		}
		if len(curves) > 1 {
			ln.LineStyle.Color = g.Gradient(float64(i) / float64(len(curves)-1))
		}
		p.Add(ln)
		p.Legend.Add(c.Name, ln)
	}

	if err := p.Save(Width, Height, name); err != nil {
		return err
	}
	return nil
}

// Diagnostics returns the data of the growth rate
// and phase speed plots
// from a set of diagnostics.
func Diagnostics(k []float64, speed *mat.Dense, u diag.Unstable) (g, s Diagnostic) {
	g = Diagnostic{
		Wavenumber: k,
		Unstable:   u.Growth,
		XMax:       XMax,
	}
	s = Diagnostic{
		Wavenumber: k,
		Modes:      speed,
		Unstable:   u.Speed,
		XMax:       XMax,
	}
	return g, s
}
