// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package runcmd implements a command to run
// the full post-processing of a simulation case.
package runcmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/pipeline"
	"github.com/js-arias/kwave/project"
	"github.com/js-arias/kwave/render"
	"github.com/sirupsen/logrus"
)

var Command = &command.Command{
	Usage: `run [--case <name>] [--fig <directory>] [--post <directory>]
	[--frames <number>] [--step <number>] [--delay <value>]
	[--color <scheme>] [--cpu <number>] [--verbose]
	<project-file>`,
	Short: "run the full post-processing of a case",
	Long: `
Command run reads the datasets of a kwave project and runs the full
post-processing of the simulation case:

	1. the growth rate and phase speed of each mode at each wavenumber
	   (plots 'growth_rate.png' and 'phase_speed.png');
	2. the reconstruction of the vertical velocity, temperature, and
	   heating at the target wavenumber (animation 'profile_evo.gif');
	3. optionally, a post-processing HDF5 file ('post.h5') with the
	   diagnostics and the reconstructed fields.

The argument of the command is the name of the project file.

The flag --case defines the name of the simulation case. By default, it is the
name of the project file without the extension. The figures are stored in a
sub-directory with the case name of the directory defined by the flag --fig
(default 'fig'). If the flag --post is defined, the post-processing file will
be stored in a sub-directory with the case name of the indicated directory.

The flags --frames, --step, --delay, and --color define the options of the
animation. See 'kwave help recon'.

By default, all available CPUs will be used in the calculations. Set the flag
--cpu to change the number of CPUs.

Progress is logged to the standard error. Use the flag --verbose to log debug
messages.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var caseName string
var figDir string
var postDir string
var frames int
var step int
var delay int
var colorFlag string
var numCPU int
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&caseName, "case", "", "")
	c.Flags().StringVar(&figDir, "fig", "fig", "")
	c.Flags().StringVar(&postDir, "post", "", "")
	c.Flags().IntVar(&frames, "frames", 0, "")
	c.Flags().IntVar(&step, "step", 1, "")
	c.Flags().IntVar(&delay, "delay", 10, "")
	c.Flags().StringVar(&colorFlag, "color", "", "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.NumCPU(), "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	gradient, err := render.Scheme(colorFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --color: %v", err))
	}
	if caseName == "" {
		caseName = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	log := logrus.New()
	log.Out = c.Stderr()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	cfg := &pipeline.Config{
		Case:     caseName,
		Project:  p,
		FigDir:   figDir,
		PostDir:  postDir,
		CPU:      numCPU,
		Frames:   frames,
		Step:     step,
		Delay:    delay,
		Gradient: gradient,
		Log:      log,
	}
	return pipeline.Run(cfg)
}
