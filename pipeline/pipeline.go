// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pipeline implements the post-processing
// of a simulation case:
// the eigen-diagnostics of the linear operators,
// and the reconstruction of the physical fields
// at a target wavenumber.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/project"
	"github.com/js-arias/kwave/render"
	"github.com/js-arias/kwave/spectral"
	"github.com/sirupsen/logrus"
)

// Output file names.
const (
	GrowthFile    = "growth_rate.png"
	SpeedFile     = "phase_speed.png"
	AnimationFile = "profile_evo.gif"
	PostFile      = "post.h5"
)

// Config is the configuration of a pipeline run.
type Config struct {
	// Name of the simulation case.
	// It is used as the sub-directory
	// of the output files.
	Case string

	Project *project.Project

	// Directory for the figures.
	FigDir string

	// Directory for the post-processing files.
	// If empty,
	// no post-processing file will be written.
	PostDir string

	// Number of parallel processes
	// used for the eigenvalues.
	CPU int

	// Options of the animation.
	Frames   int
	Step     int
	Delay    int
	Gradient render.Gradienter

	Log logrus.FieldLogger
}

func (cfg *Config) logger() logrus.FieldLogger {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	return cfg.Log.WithField("case", cfg.Case)
}

// Run reads the datasets of the project
// and process them.
func Run(cfg *Config) error {
	log := cfg.logger()

	pm, err := cfg.Project.Params()
	if err != nil {
		return err
	}
	log.WithField("file", cfg.Project.Name()).Info("loading datasets")
	in, err := Load(cfg.Project, pm)
	if err != nil {
		return err
	}
	return Process(cfg, in)
}

// Process runs the full post-processing
// of a simulation case:
// the diagnostics figures,
// the reconstruction animation,
// and, optionally,
// the post-processing file.
func Process(cfg *Config, in *Input) error {
	log := cfg.logger()

	_, nk := in.Operators.Dims()
	cal, display, err := Axes(in.Inverse, in.State, nk)
	if err != nil {
		return err
	}

	log.WithField("nk", nk).Info("eigen-diagnostics")
	d, err := Diagnose(in.Operators, cal, display, in.Params.Scale(), cfg.CPU)
	if err != nil {
		return err
	}
	if len(d.Index) < nk {
		log.WithField("removed", nk-len(d.Index)).Warn("zero wavenumbers removed")
	}

	figDir := filepath.Join(cfg.FigDir, cfg.Case)
	if err := os.MkdirAll(figDir, 0o755); err != nil {
		return err
	}

	g, s := render.Diagnostics(d.Display, d.Speed, d.Unstable)
	name := filepath.Join(figDir, GrowthFile)
	if err := render.GrowthRate(name, g); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	log.WithField("file", name).Info("growth rate")
	name = filepath.Join(figDir, SpeedFile)
	if err := render.PhaseSpeed(name, s); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	log.WithField("file", name).Info("phase speed")

	fs, err := Reconstruction(in, cal)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"kidx":       fs.KIdx,
		"wavenumber": fs.Wavenumber,
	}).Info("reconstruction")

	a := fs.Animation()
	a.Frames = cfg.Frames
	a.Step = cfg.Step
	a.Delay = cfg.Delay
	a.Gradient = cfg.Gradient
	name = filepath.Join(figDir, AnimationFile)
	if err := a.Save(name); err != nil {
		return err
	}
	log.WithField("file", name).Info("animation")

	if cfg.PostDir == "" {
		return nil
	}
	postDir := filepath.Join(cfg.PostDir, cfg.Case)
	if err := os.MkdirAll(postDir, 0o755); err != nil {
		return err
	}
	name = filepath.Join(postDir, PostFile)
	post := h5data.Post{
		Wavenumber: d.Wavenumber,
		Growth:     d.Growth,
		Speed:      d.Speed,
		Unstable:   d.Unstable,
		Fields: map[string]*spectral.Plane{
			"w": fs.W,
			"T": fs.T,
			"J": fs.J,
		},
	}
	if err := h5data.WritePost(name, post); err != nil {
		return err
	}
	log.WithField("file", name).Info("post-processing file")
	return nil
}
