// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/kwave/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.State, "output/no_rad/state.h5"},
		{project.Operators, "output/no_rad/optrs.h5"},
		{project.Inverse, "data/inv_mat.h5"},
		{project.Domain, "data/domain.h5"},
		{project.VModes, "data/vertical_mode.h5"},
		{project.Params, "params.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := filepath.Join(t.TempDir(), "project.tab")
	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	if prev := np.Add(project.Params, ""); prev != "params.tab" {
		t.Errorf("remove: got previous %q, want %q", prev, "params.tab")
	}
	testProject(t, np, sets[:len(sets)-1])
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}

func TestDefaultParams(t *testing.T) {
	p := project.New()
	pm, err := p.Params()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pm.Wavelength() != 8640 {
		t.Errorf("wavelength: got %g, want %g", pm.Wavelength(), 8640.0)
	}

	if _, err := p.Operators(); err == nil {
		t.Errorf("operators: expecting error")
	}

	name := filepath.Join(t.TempDir(), "params.tab")
	data := "parameter\tvalue\nwavelength\t4320\n"
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	p.Add(project.Params, name)
	pm, err = p.Params()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pm.Wavelength() != 4320 {
		t.Errorf("wavelength: got %g, want %g", pm.Wavelength(), 4320.0)
	}
}
