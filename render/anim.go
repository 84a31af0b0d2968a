// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	imgdraw "image/draw"
	"image/gif"
	"io"
	"math"
	"os"

	"github.com/js-arias/kwave/spectral"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Axis scales of the animation:
// horizontal positions in 100 km,
// and vertical levels in km.
const (
	xUnit = 100_000
	zUnit = 1_000
)

// Contours is a field drawn as contour lines.
type Contours struct {
	Name   string
	Plane  *spectral.Plane
	Levels []float64
	Color  color.Color
}

// Animation is an animated vertical cross section
// of a reconstructed field.
type Animation struct {
	// Horizontal and vertical coordinates,
	// in meters.
	X, Z []float64

	// Time of each step.
	// It can be nil.
	Time []float64

	// Field drawn as a filled map.
	Fill     *spectral.Plane
	FillName string

	// Levels of the filled field.
	// If defined,
	// the colors are banded between the levels.
	// Otherwise a continuous scale
	// between the maximum absolute values is used.
	FillLevels []float64

	// Fields drawn as contour lines.
	Lines []Contours

	// Color scheme of the filled field.
	// By default it uses a diverging scheme.
	Gradient Gradienter

	// Number of frames.
	// If zero,
	// all time steps are used.
	Frames int

	// Number of time steps between frames
	// (the spatial grid is never thinned).
	Step int

	// Delay between frames,
	// in 100ths of a second.
	Delay int

	// Size of each frame.
	Width, Height vg.Length
}

func (a *Animation) format() error {
	if a.Fill == nil {
		return fmt.Errorf("animation: undefined filled field")
	}
	nz, nx, _ := a.Fill.Dims()
	if len(a.X) != nx {
		return fmt.Errorf("animation: %w", spectral.ShapeError("x", len(a.X), nx))
	}
	if len(a.Z) != nz {
		return fmt.Errorf("animation: %w", spectral.ShapeError("z", len(a.Z), nz))
	}
	if nx < 2 || nz < 2 {
		return fmt.Errorf("%w: animation: grid of %d x %d points", spectral.ErrShape, nz, nx)
	}
	for _, l := range a.Lines {
		lz, lx, lt := l.Plane.Dims()
		fz, fx, ft := a.Fill.Dims()
		if lz != fz || lx != fx || lt != ft {
			return fmt.Errorf("animation: contours %q: %w", l.Name, spectral.ShapeError(l.Name, []int{lz, lx, lt}, []int{fz, fx, ft}))
		}
	}

	if a.Gradient == nil {
		a.Gradient = NewBlueRed()
	}
	if a.Step < 1 {
		a.Step = 1
	}
	if a.Delay <= 0 {
		a.Delay = 10
	}
	if a.Width == 0 {
		a.Width = Width
	}
	if a.Height == 0 {
		a.Height = Height
	}
	return nil
}

// Steps returns the time steps
// used as frames.
func (a *Animation) Steps() []int {
	_, _, nt := a.Fill.Dims()
	step := a.Step
	if step < 1 {
		step = 1
	}

	var steps []int
	for t := 0; t < nt; t += step {
		if a.Frames > 0 && len(steps) >= a.Frames {
			break
		}
		steps = append(steps, t)
	}
	return steps
}

// Encode writes the animation
// as an animated GIF.
func (a *Animation) Encode(w io.Writer) error {
	if err := a.format(); err != nil {
		return err
	}

	// The color scale is fixed for all frames.
	max := a.Fill.MaxAbs()
	if max == 0 || math.IsNaN(max) {
		max = 1
	}

	anim := &gif.GIF{}
	for _, t := range a.Steps() {
		img, err := a.frame(t, max)
		if err != nil {
			return err
		}
		pal := image.NewPaletted(img.Bounds(), palette.Plan9)
		imgdraw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, a.Delay)
	}
	if len(anim.Image) == 0 {
		return fmt.Errorf("animation: no frames")
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("animation: %v", err)
	}
	return nil
}

// Save writes the animation
// into a file.
func (a *Animation) Save(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := a.Encode(bw); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func (a *Animation) frame(t int, max float64) (image.Image, error) {
	p := plot.New()
	p.X.Label.Text = "x (100 km)"
	p.Y.Label.Text = "z (km)"
	p.Title.Text = fmt.Sprintf("%s: step %d", a.FillName, t)
	if len(a.Time) > t {
		p.Title.Text = fmt.Sprintf("%s: t = %.3g", a.FillName, a.Time[t])
	}

	min, n := -max, 255
	if len(a.FillLevels) > 1 {
		min, max = a.FillLevels[0], a.FillLevels[len(a.FillLevels)-1]
		n = len(a.FillLevels) - 1
	}
	hm := plotter.NewHeatMap(grid{plane: a.Fill, x: a.X, z: a.Z, t: t}, newPalette(a.Gradient, n))
	hm.Min = min
	hm.Max = max
	hm.NaN = color.Transparent
	hm.Underflow = a.Gradient.Gradient(0)
	hm.Overflow = a.Gradient.Gradient(1)
	p.Add(hm)

	for _, l := range a.Lines {
		if len(l.Levels) == 0 {
			continue
		}
		col := l.Color
		if col == nil {
			col = color.Black
		}
		c := plotter.NewContour(grid{plane: l.Plane, x: a.X, z: a.Z, t: t}, l.Levels, mono{c: col})
		c.LineStyles = levelStyles(l.Levels)
		c.Min = l.Levels[0]
		c.Max = l.Levels[len(l.Levels)-1]
		if c.Max <= c.Min {
			c.Max = c.Min + 1
		}
		c.Underflow = col
		c.Overflow = col
		p.Add(c)
	}

	cv := vgimg.NewWith(vgimg.UseWH(a.Width, a.Height), vgimg.UseDPI(96))
	p.Draw(draw.New(cv))
	return cv.Image(), nil
}

// levelStyles returns the line style of each contour level,
// with dashed lines for negative levels.
func levelStyles(levels []float64) []draw.LineStyle {
	ls := make([]draw.LineStyle, len(levels))
	for i, v := range levels {
		ls[i] = plotter.DefaultLineStyle
		ls[i].Width = vg.Points(0.75)
		if v < 0 {
			ls[i].Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		}
	}
	return ls
}

// grid is a time step of a plane
// used as a plotter.GridXYZ.
type grid struct {
	plane *spectral.Plane
	x, z  []float64
	t     int
}

func (g grid) Dims() (c, r int)   { return len(g.x), len(g.z) }
func (g grid) Z(c, r int) float64 { return g.plane.At(r, c, g.t) }
func (g grid) X(c int) float64    { return g.x[c] / xUnit }
func (g grid) Y(r int) float64    { return g.z[r] / zUnit }
