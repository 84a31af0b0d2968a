// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reconcmd implements a command to reconstruct
// the physical fields at a target wavenumber.
package reconcmd

import (
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/pipeline"
	"github.com/js-arias/kwave/project"
	"github.com/js-arias/kwave/render"
	"github.com/sirupsen/logrus"
)

var Command = &command.Command{
	Usage: `recon [-o|--output <file>] [--wavelength <value>]
	[--frames <number>] [--step <number>] [--delay <value>]
	[--color <scheme>]
	<project-file>`,
	Short: "reconstruct the physical fields",
	Long: `
Command recon reads the datasets of a kwave project, and reconstructs the
vertical velocity, temperature, and heating, at the wavenumber closest to a
target wavelength. The fields are stored as an animated GIF, with the heating
as a filled map, and the temperature (black) and vertical velocity (green) as
contour lines. Negative contours are dashed.

The argument of the command is the name of the project file.

The target wavelength is defined in the parameters of the project. Use the
flag --wavelength to set a different wavelength (in km).

The flag --output, or -o, defines the name of the output file. By default it
will be '<project>-profile_evo.gif'.

By default, all time steps are used as frames. Use the flag --step to define
the number of time steps between frames, and the flag --frames to define the
maximum number of frames. The flag --delay defines the delay between frames in
hundredths of a second. Default: 10.

By default, the heating is drawn with a diverging blue to red scheme. Use the
flag --color to define a different color scheme. Valid values are:
"diverging", "rainbow", "iridescent", "incandescent", and "gray".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var wavelength float64
var frames int
var step int
var delay int
var colorFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().Float64Var(&wavelength, "wavelength", 0, "")
	c.Flags().IntVar(&frames, "frames", 0, "")
	c.Flags().IntVar(&step, "step", 1, "")
	c.Flags().IntVar(&delay, "delay", 10, "")
	c.Flags().StringVar(&colorFlag, "color", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	gradient, err := render.Scheme(colorFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --color: %v", err))
	}
	if output == "" {
		output = args[0] + "-" + pipeline.AnimationFile
	}

	log := logrus.New()
	log.Out = c.Stderr()

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	pm, err := p.Params()
	if err != nil {
		return err
	}
	if wavelength > 0 {
		if err := pm.Set(param.Wavelength, strconv.FormatFloat(wavelength, 'g', -1, 64)); err != nil {
			return err
		}
	}

	in, err := pipeline.Load(p, pm)
	if err != nil {
		return err
	}
	_, nk, _ := in.State.State.Dims()
	cal, _, err := pipeline.Axes(in.Inverse, in.State, nk)
	if err != nil {
		return err
	}

	fs, err := pipeline.Reconstruction(in, cal)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"kidx":       fs.KIdx,
		"wavenumber": fs.Wavenumber,
	}).Info("reconstruction")

	a := fs.Animation()
	a.Frames = frames
	a.Step = step
	a.Delay = delay
	a.Gradient = gradient
	if err := a.Save(output); err != nil {
		return err
	}
	log.WithField("file", output).Info("animation")
	return nil
}
