// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package paramcmd implements a command to manage
// the analysis parameters of a project.
package paramcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/kwave/param"
	"github.com/js-arias/kwave/project"
)

var Command = &command.Command{
	Usage: `param [--file <file-name>]
	[--set <parameter>=<value>[,<parameter>=<value>...]]
	<project-file>`,
	Short: "manage analysis parameters",
	Long: `
Command param manages the parameters of the analysis defined for a kwave
project.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

To change the value of one or more parameters use the flag --set, with the
name of the parameter, and its value separated by an equal sign. Several
parameters can be set separated by semicolons, for example:

	kwave param --set "wavelength=4320;steps=200" project.tab

By default, any change on the parameters will be stored in the current
parameters file. Use the flag --file to define a new parameters file. If the
project does not have a parameters file, and no file name is given, the file
'<project>-params.tab' will be used.

Type 'kwave help parameters' to learn more about the parameters.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var paramFile string
var setFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&setFlag, "set", "", "")
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

	ed := false
	if setFlag != "" {
		for _, s := range strings.Split(setFlag, ";") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			k, v, ok := strings.Cut(s, "=")
			if !ok {
				msg := fmt.Sprintf("flag --set: invalid value %q", s)
				return c.UsageError(msg)
			}
			pm2 := param.Param(strings.ToLower(strings.TrimSpace(k)))
			if err := pm.Set(pm2, v); err != nil {
				return fmt.Errorf("flag --set: parameter %q: %v", k, err)
			}
		}
		ed = true
	}

	if paramFile != "" {
		pm.SetName(paramFile)
	}
	if pm.Name() == "" && ed {
		pm.SetName(args[0] + "-params.tab")
	}

	if pm.Name() != "" && p.Path(project.Params) != pm.Name() {
		if err := pm.Write(); err != nil {
			return err
		}
		p.Add(project.Params, pm.Name())
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}
	if ed {
		if err := pm.Write(); err != nil {
			return err
		}
		return nil
	}

	printParams(c.Stdout(), pm)
	return nil
}

func printParams(w io.Writer, pm *param.Params) {
	name := pm.Name()
	if name == "" {
		name = "(default values)"
	}
	fmt.Fprintf(w, "file:        %s\n", name)
	for _, k := range []param.Param{
		param.Wavelength,
		param.KScale,
		param.Length,
		param.Time,
		param.Bound,
		param.Steps,
		param.Order,
		param.Select,
		param.TScale,
		param.Heating,
		param.Names,
	} {
		v := pm.Value(k)
		if v == "" && k == param.Select {
			v = "default"
		}
		if v == "" {
			continue
		}
		fmt.Fprintf(w, "%-12s %s\n", string(k)+":", v)
	}
}
