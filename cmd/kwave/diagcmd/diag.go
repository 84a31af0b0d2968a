// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package diagcmd implements a command to calculate
// the eigen-diagnostics of the linear operators.
package diagcmd

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/pipeline"
	"github.com/js-arias/kwave/project"
	"github.com/js-arias/kwave/render"
)

var Command = &command.Command{
	Usage: `diag [--all] [--cpu <number>]
	[--growth <file>] [--speed <file>]
	<project-file>`,
	Short: "calculate growth rate and phase speed",
	Long: `
Command diag reads the linear operators of a kwave project and calculates the
growth rate and phase speed of each mode at each wavenumber, from the
eigenvalues of the operators.

The argument of the command is the name of the project file.

The results are printed in the standard output as a tab-delimited table with
the most unstable mode (the mode with the maximum growth rate) at each
wavenumber. Use the flag --all to print the values of all the modes.

The wavenumbers used for the calculation are taken from the inverse transform
(or the state file, if not available). Zero wavenumbers are ignored.

If the flag --growth is defined, a plot with the growth rate of the most
unstable mode will be saved in the indicated file. If the flag --speed is
defined, a plot with the phase speed of all modes will be saved in the
indicated file. The format of the plots is defined by the extension of the
file name (for example, '.png' or '.svg').

By default, all available CPUs will be used in the calculations. Set the flag
--cpu to change the number of CPUs.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var allFlag bool
var numCPU int
var growthFile string
var speedFile string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&allFlag, "all", false, "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.NumCPU(), "")
	c.Flags().StringVar(&growthFile, "growth", "", "")
	c.Flags().StringVar(&speedFile, "speed", "", "")
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

	ops, err := p.Operators()
	if err != nil {
		return err
	}
	_, nk := ops.Dims()

	inv, st, err := readAxes(p, pm)
	if err != nil {
		return err
	}
	cal, display, err := pipeline.Axes(inv, st, nk)
	if err != nil {
		return err
	}

	d, err := pipeline.Diagnose(ops, cal, display, pm.Scale(), numCPU)
	if err != nil {
		return err
	}

	if err := writeTable(c.Stdout(), args[0], d); err != nil {
		return err
	}

	g, s := render.Diagnostics(d.Display, d.Speed, d.Unstable)
	if growthFile != "" {
		if err := render.GrowthRate(growthFile, g); err != nil {
			return fmt.Errorf("on file %q: %v", growthFile, err)
		}
	}
	if speedFile != "" {
		if err := render.PhaseSpeed(speedFile, s); err != nil {
			return fmt.Errorf("on file %q: %v", speedFile, err)
		}
	}
	return nil
}

// readAxes reads the datasets
// that might contain a wavenumber axis.
func readAxes(p *project.Project, pm *param.Params) (*h5data.Inverse, *h5data.State, error) {
	var inv *h5data.Inverse
	if p.Path(project.Inverse) != "" {
		var err error
		inv, err = p.Inverse()
		if err != nil {
			return nil, nil, err
		}
		if inv.Calibration != nil {
			return inv, nil, nil
		}
	}
	st, err := p.State(pm)
	if err != nil {
		return nil, nil, err
	}
	return inv, st, nil
}

func writeTable(w io.Writer, name string, d *pipeline.Diagnostics) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# eigen-diagnostics of project %q\n", name)
	fmt.Fprintf(bw, "# date: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"wavenumber", "display", "mode", "growth", "speed"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	nv, _ := d.Growth.Dims()
	for k, wn := range d.Wavenumber {
		modes := []int{d.Unstable.Mode[k]}
		if allFlag {
			modes = modes[:0]
			for m := 0; m < nv; m++ {
				modes = append(modes, m)
			}
		}
		for _, m := range modes {
			row := []string{
				strconv.FormatFloat(wn, 'f', 6, 64),
				strconv.FormatFloat(d.Display[k], 'f', 6, 64),
				strconv.Itoa(m),
				strconv.FormatFloat(d.Growth.At(m, k), 'f', 6, 64),
				strconv.FormatFloat(d.Speed.At(m, k), 'f', 6, 64),
			}
			if err := tsv.Write(row); err != nil {
				return fmt.Errorf("while writing data: %v", err)
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
