// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phase implements a command to print
// the time series of the state variables
// at the target wavenumber.
package phase

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/h5data"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/pipeline"
	"github.com/js-arias/kwave/project"
	"github.com/js-arias/kwave/recon"
	"github.com/js-arias/kwave/render"
)

var Command = &command.Command{
	Usage: `phase [--wavelength <value>] [--plot <file>]
	<project-file>`,
	Short: "print the time series of the state variables",
	Long: `
Command phase reads the simulated state of a kwave project and prints the time
series of each state variable at the wavenumber closest to the target
wavelength. The series can be used to compare the phase relation between the
variables.

The argument of the command is the name of the project file.

The output is printed in the standard output as a tab-delimited table with the
real and imaginary part of each variable at each time step. If the heating
parameter is set, the heating variables J1 and J2 are added to the output.

The target wavelength is defined in the parameters of the project. Use the
flag --wavelength to set a different wavelength (in km).

If the flag --plot is defined, a plot with the real part of the time series
will be saved in the indicated file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var wavelength float64
var plotFile string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&wavelength, "wavelength", 0, "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
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
	if wavelength > 0 {
		if err := pm.Set(param.Wavelength, strconv.FormatFloat(wavelength, 'g', -1, 64)); err != nil {
			return err
		}
	}

	st, err := p.State(pm)
	if err != nil {
		return err
	}
	_, nk, _ := st.State.Dims()

	var inv *h5data.Inverse
	if p.Path(project.Inverse) != "" {
		inv, err = p.Inverse()
		if err != nil {
			return err
		}
	}
	cal, _, err := pipeline.Axes(inv, st, nk)
	if err != nil {
		return err
	}
	kidx, err := recon.Closest(cal, recon.Wavenumber(pm.Wavelength(), pm.KScale()))
	if err != nil {
		return err
	}

	s := st.State
	if pm.Heating() {
		s, err = diag.ConvertState(s)
		if err != nil {
			return err
		}
	}
	nv, _, _ := s.Dims()
	names := pm.Names(nv)
	if pm.Heating() {
		names[nv-2] = "J1"
		names[nv-1] = "J2"
	}

	series := make([][]complex64, nv)
	for v := range series {
		series[v] = s.Series(v, kidx)
	}

	if err := writeSeries(c.Stdout(), args[0], cal[kidx], st.Time, names, series); err != nil {
		return err
	}

	if plotFile != "" {
		if err := render.TimeSeries(plotFile, st.Time, names, series); err != nil {
			return fmt.Errorf("on file %q: %v", plotFile, err)
		}
	}
	return nil
}

func writeSeries(w io.Writer, name string, k float64, tm []float64, names []string, series [][]complex64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# time series of project %q at wavenumber %.6f\n", name, k)
	fmt.Fprintf(bw, "# date: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	header := []string{"step", "time"}
	for _, n := range names {
		header = append(header, n+"-re", n+"-im")
	}
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	var nt int
	if len(series) > 0 {
		nt = len(series[0])
	}
	for t := 0; t < nt; t++ {
		row := []string{strconv.Itoa(t), ""}
		if t < len(tm) {
			row[1] = strconv.FormatFloat(tm[t], 'f', 6, 64)
		}
		for _, s := range series {
			row = append(row,
				strconv.FormatFloat(float64(real(s[t])), 'g', 8, 32),
				strconv.FormatFloat(float64(imag(s[t])), 'g', 8, 32),
			)
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
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
