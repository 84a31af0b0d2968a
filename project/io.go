// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"

	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/spectral"
)

// Params returns the analysis parameters of the project.
// If no parameter file is defined,
// it returns the default parameters.
func (p *Project) Params() (*param.Params, error) {
	name := p.Path(Params)
	if name == "" {
		return param.New(""), nil
	}

	return param.Read(name)
}

// State returns the simulated state of the project.
func (p *Project) State(pm *param.Params) (*h5data.State, error) {
	name := p.Path(State)
	if name == "" {
		return nil, fmt.Errorf("state not defined in project %q", p.name)
	}

	return h5data.ReadState(name, pm.Order(), pm.Steps())
}

// Operators returns the linear operators of the project.
func (p *Project) Operators() (*spectral.Operators, error) {
	name := p.Path(Operators)
	if name == "" {
		return nil, fmt.Errorf("linear operators not defined in project %q", p.name)
	}

	return h5data.ReadOperators(name)
}

// Inverse returns the inverse horizontal transform of the project.
func (p *Project) Inverse() (*h5data.Inverse, error) {
	name := p.Path(Inverse)
	if name == "" {
		return nil, fmt.Errorf("inverse transform not defined in project %q", p.name)
	}

	return h5data.ReadInverse(name)
}

// Domain returns the horizontal and vertical coordinates
// of the model domain.
func (p *Project) Domain() (x, z []float64, err error) {
	name := p.Path(Domain)
	if name == "" {
		return nil, nil, fmt.Errorf("domain not defined in project %q", p.name)
	}

	return h5data.ReadDomain(name)
}

// VModes returns the vertical structure functions
// of the project.
func (p *Project) VModes() (g1, g2 []float64, err error) {
	name := p.Path(VModes)
	if name == "" {
		return nil, nil, fmt.Errorf("vertical modes not defined in project %q", p.name)
	}

	return h5data.ReadModes(name)
}
