// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/project"
	"gonum.org/v1/gonum/floats"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a kwave project and prints the information of the different
project elements into the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	pm, err := p.Params()
	if err != nil {
		return err
	}
	w := c.Stdout()
	printParams(w, p, pm)

	if p.Path(project.State) != "" {
		if err := printState(w, p, pm); err != nil {
			return err
		}
	}
	if p.Path(project.Operators) != "" {
		if err := printOperators(w, p); err != nil {
			return err
		}
	}
	if p.Path(project.Inverse) != "" {
		if err := printInverse(w, p); err != nil {
			return err
		}
	}
	if p.Path(project.Domain) != "" {
		if err := printDomain(w, p); err != nil {
			return err
		}
	}
	if p.Path(project.VModes) != "" {
		if err := printModes(w, p); err != nil {
			return err
		}
	}
	return nil
}

func printParams(w io.Writer, p *project.Project, pm *param.Params) {
	fmt.Fprintf(w, "Parameters:\n")
	if name := p.Path(project.Params); name != "" {
		fmt.Fprintf(w, "\tfile: %s\n", name)
	} else {
		fmt.Fprintf(w, "\tfile: (default values)\n")
	}
	fmt.Fprintf(w, "\twavelength: %g km\n", pm.Wavelength())
	fmt.Fprintf(w, "\tsteps: %d\n", pm.Steps())
	fmt.Fprintf(w, "\n")
}

func printState(w io.Writer, p *project.Project, pm *param.Params) error {
	st, err := p.State(pm)
	if err != nil {
		return err
	}
	nv, nk, nt := st.State.Dims()

	fmt.Fprintf(w, "Simulated state:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.State))
	fmt.Fprintf(w, "\tvariables: %d\n", nv)
	fmt.Fprintf(w, "\twavenumbers: %d\n", nk)
	fmt.Fprintf(w, "\ttime steps: %d\n", nt)
	if len(st.Time) > 0 {
		fmt.Fprintf(w, "\ttime: [%g-%g]\n", st.Time[0], st.Time[len(st.Time)-1])
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func printOperators(w io.Writer, p *project.Project) error {
	ops, err := p.Operators()
	if err != nil {
		return err
	}
	nv, nk := ops.Dims()

	fmt.Fprintf(w, "Linear operators:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Operators))
	fmt.Fprintf(w, "\tvariables: %d\n", nv)
	fmt.Fprintf(w, "\twavenumbers: %d\n", nk)
	fmt.Fprintf(w, "\n")
	return nil
}

func printInverse(w io.Writer, p *project.Project) error {
	inv, err := p.Inverse()
	if err != nil {
		return err
	}
	nx, nk := inv.F.Dims()

	fmt.Fprintf(w, "Inverse transform:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Inverse))
	fmt.Fprintf(w, "\tpositions: %d\n", nx)
	fmt.Fprintf(w, "\twavenumbers: %d\n", nk)
	if len(inv.Calibration) > 0 {
		fmt.Fprintf(w, "\tcalibration axis: [%g-%g]\n", floats.Min(inv.Calibration), floats.Max(inv.Calibration))
	}
	if len(inv.Display) > 0 {
		fmt.Fprintf(w, "\tdisplay axis: [%g-%g]\n", floats.Min(inv.Display), floats.Max(inv.Display))
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func printDomain(w io.Writer, p *project.Project) error {
	x, z, err := p.Domain()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Model domain:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Domain))
	if len(x) > 0 {
		fmt.Fprintf(w, "\tx: %d [%.1f-%.1f km]\n", len(x), floats.Min(x)/1000, floats.Max(x)/1000)
	}
	if len(z) > 0 {
		fmt.Fprintf(w, "\tz: %d [%.1f-%.1f km]\n", len(z), floats.Min(z)/1000, floats.Max(z)/1000)
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func printModes(w io.Writer, p *project.Project) error {
	g1, _, err := p.VModes()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Vertical modes:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.VModes))
	fmt.Fprintf(w, "\tlevels: %d\n", len(g1))
	fmt.Fprintf(w, "\n")
	return nil
}
