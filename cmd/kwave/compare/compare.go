// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package compare implements a command to compare
// the growth rate of several simulation cases.
package compare

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/pipeline"
	"github.com/js-arias/kwave/project"
	"github.com/js-arias/kwave/recon"
	"github.com/js-arias/kwave/render"
)

var Command = &command.Command{
	Usage: `compare [-o|--output <file>] [--cpu <number>]
	<project-file> <project-file>...`,
	Short: "compare the growth rate of several cases",
	Long: `
Command compare reads the linear operators of two or more kwave projects, and
compares the growth rate of the most unstable mode of each case.

The arguments of the command are the names of the project files. The name of
each case is the name of the project file without the extension.

The growth rates are printed in the standard output as a tab-delimited table,
and a plot is saved. The horizontal axis of the table and the plot is the
planetary wavenumber, i.e., the number of waves around the equator (40000 km
divided by the wavelength).

The flag --output, or -o, defines the name of the plot file. By default it
will be 'growth-compare.png'.

By default, all available CPUs will be used in the calculations. Set the flag
--cpu to change the number of CPUs.
	`,
	SetFlags: setFlags,
	Run:      run,
}

// equator is the length of the equator,
// in km.
const equator = 40_000

var output string
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.NumCPU(), "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting two or more project files")
	}
	if output == "" {
		output = "growth-compare.png"
	}

	curves := make([]render.Curve, 0, len(args))
	for _, a := range args {
		cv, err := growthCurve(a)
		if err != nil {
			return err
		}
		curves = append(curves, cv)
	}

	if err := writeTable(c.Stdout(), curves); err != nil {
		return err
	}
	if err := render.Compare(output, "planetary wavenumber", "growth rate (1/day)", curves); err != nil {
		return fmt.Errorf("on file %q: %v", output, err)
	}
	return nil
}

func growthCurve(name string) (render.Curve, error) {
	p, err := project.Read(name)
	if err != nil {
		return render.Curve{}, err
	}
	pm, err := p.Params()
	if err != nil {
		return render.Curve{}, err
	}
	ops, err := p.Operators()
	if err != nil {
		return render.Curve{}, err
	}
	_, nk := ops.Dims()

	var inv *h5data.Inverse
	if p.Path(project.Inverse) != "" {
		if inv, err = p.Inverse(); err != nil {
			return render.Curve{}, err
		}
	}
	var st *h5data.State
	if inv == nil || len(inv.Calibration) != nk {
		if st, err = p.State(pm); err != nil {
			return render.Curve{}, err
		}
	}
	cal, _, err := pipeline.Axes(inv, st, nk)
	if err != nil {
		return render.Curve{}, fmt.Errorf("project %q: %v", name, err)
	}

	d, err := pipeline.Diagnose(ops, cal, nil, pm.Scale(), numCPU)
	if err != nil {
		return render.Curve{}, fmt.Errorf("project %q: %v", name, err)
	}

	cv := render.Curve{
		Name: strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
		X:    make([]float64, len(d.Wavenumber)),
		Y:    d.Unstable.Growth,
	}
	for i, k := range d.Wavenumber {
		cv.X[i] = equator / recon.Wavelength(k, pm.KScale())
	}
	return cv, nil
}

func writeTable(w io.Writer, curves []render.Curve) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# growth rate comparison\n")
	fmt.Fprintf(bw, "# date: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"case", "wavenumber", "growth"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, cv := range curves {
		for i, x := range cv.X {
			row := []string{
				cv.Name,
				strconv.FormatFloat(x, 'f', 6, 64),
				strconv.FormatFloat(cv.Y[i], 'f', 6, 64),
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
