// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Kwave is a tool for the post-processing
// of a linearized model of convectively coupled tropical waves.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/kwave/cmd/kwave/add"
	"github.com/js-arias/kwave/cmd/kwave/compare"
	"github.com/js-arias/kwave/cmd/kwave/diagcmd"
	"github.com/js-arias/kwave/cmd/kwave/paramcmd"
	"github.com/js-arias/kwave/cmd/kwave/phase"
	"github.com/js-arias/kwave/cmd/kwave/prj"
	"github.com/js-arias/kwave/cmd/kwave/reconcmd"
	"github.com/js-arias/kwave/cmd/kwave/runcmd"
)

var app = &command.Command{
	Usage: "kwave <command> [<argument>...]",
	Short: "a tool for the post-processing of tropical wave simulations",
}

func init() {
	app.Add(add.Command)
	app.Add(compare.Command)
	app.Add(diagcmd.Command)
	app.Add(paramcmd.Command)
	app.Add(phase.Command)
	app.Add(prj.Command)
	app.Add(reconcmd.Command)
	app.Add(runcmd.Command)
}

func main() {
	app.Main()
}
