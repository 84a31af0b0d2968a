// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add a dataset file
// to a kwave project.
package add

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/project"
)

var Command = &command.Command{
	Usage: "add --type <dataset> <project-file> <file>",
	Short: "add a dataset file to a project",
	Long: `
Command add adds the path of a dataset file to a kwave project. The file is
read before it is added, so only valid files can be added to a project.

The first argument of the command is the name of the project file. If no
project exists, a new project will be created.

The second argument is the path of the dataset file. If there is a file
already defined in the project for the dataset, its path will be replaced.

The type of the dataset must be explicitly defined using the flag --type with
one of the following values:

	state      for the simulated state
	operators  for the linear operators
	inverse    for the inverse transform
	domain     for the model domain
	vmodes     for the vertical modes
	params     for the analysis parameters

Type 'kwave help projects' to learn more about the project datasets.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var typeFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&typeFlag, "type", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting dataset file")
	}
	if typeFlag == "" {
		return c.UsageError("flag --type undefined")
	}

	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	set := project.Dataset(strings.ToLower(typeFlag))
	if err := check(p, set, args[1]); err != nil {
		if errors.Is(err, errUnknown) {
			msg := fmt.Sprintf("flag --type: unknown value %q", typeFlag)
			return c.UsageError(msg)
		}
		return err
	}

	p.Add(set, args[1])
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p = project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

var errUnknown = errors.New("unknown dataset")

func check(p *project.Project, set project.Dataset, name string) error {
	switch set {
	case project.State:
		pm, err := p.Params()
		if err != nil {
			return err
		}
		_, err = h5data.ReadState(name, pm.Order(), 1)
		return err
	case project.Operators:
		_, err := h5data.ReadOperators(name)
		return err
	case project.Inverse:
		_, err := h5data.ReadInverse(name)
		return err
	case project.Domain:
		_, _, err := h5data.ReadDomain(name)
		return err
	case project.VModes:
		_, _, err := h5data.ReadModes(name)
		return err
	case project.Params:
		_, err := param.Read(name)
		return err
	}
	return errUnknown
}
