// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/js-arias/blind"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Gradienter is an interface for types
// that return a color gradient
// for a value between 0 and 1.
type Gradienter interface {
	Gradient(v float64) color.Color
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GrayScale returns a gray scale
// between 0 (black)
// to 200 (light gray).
type GrayScale struct{}

func (g GrayScale) Gradient(v float64) color.Color {
	c := 200 - uint8(clamp(v)*200)
	return color.RGBA{c, c, c, 255}
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

// BlueRed is the smooth diverging color scheme
// of Kenneth Moreland,
// from blue (0) to red (1).
type BlueRed struct {
	cm palette.ColorMap
}

// NewBlueRed returns a blue to red diverging scheme.
func NewBlueRed() BlueRed {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)
	return BlueRed{cm: cm}
}

func (b BlueRed) Gradient(v float64) color.Color {
	c, err := b.cm.At(clamp(v))
	if err != nil {
		return color.RGBA{211, 211, 211, 255}
	}
	return c
}

// Scheme returns a color scheme by its name.
// Valid names are
// "diverging" (the default),
// "rainbow",
// "iridescent",
// "incandescent",
// and "gray".
func Scheme(name string) (Gradienter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "diverging":
		return NewBlueRed(), nil
	case "rainbow":
		return RainbowPurpleToRed{}, nil
	case "iridescent":
		return Iridescent{}, nil
	case "incandescent":
		return Incandescent{}, nil
	case "gray":
		return GrayScale{}, nil
	}
	return nil, fmt.Errorf("unknown color scheme %q", name)
}

// gradientPalette is a palette
// sampled from a gradient.
type gradientPalette []color.Color

func newPalette(g Gradienter, n int) gradientPalette {
	if n < 2 {
		n = 2
	}
	p := make(gradientPalette, n)
	for i := range p {
		p[i] = g.Gradient(float64(i) / float64(n-1))
	}
	return p
}

func (p gradientPalette) Colors() []color.Color { return p }

// mono is a palette with a single color.
type mono struct {
	c color.Color
}

func (m mono) Colors() []color.Color { return []color.Color{m.c} }
