// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/Jie-Cheng/OpenIFEM/comm"
	"github.com/Jie-Cheng/OpenIFEM/fluid"
	"github.com/Jie-Cheng/OpenIFEM/fsi"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	alias := io.ArgToString(2, "")

	// context
	ctx := comm.Start(verbose)
	defer ctx.Close()

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if ctx.Root() {
				io.PfRed("ERROR: %v\n", err)
			}
		}
	}()

	// message
	if ctx.Root() && verbose {
		io.PfWhite("\nOpenIFEM -- partitioned fluid-structure interaction\n\n")
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"word to add to results", "alias", alias,
		))
	}

	// simulation data
	sim, err := inp.ReadSim(fnamepath, alias, 0)
	if err != nil {
		chk.Panic("cannot read simulation:\n%v", err)
	}

	// solvers
	s, err := solid.New(ctx, sim)
	if err != nil {
		chk.Panic("cannot allocate solid solver:\n%v", err)
	}
	f, err := fluid.New(ctx, sim)
	if err != nil {
		chk.Panic("cannot allocate fluid solver:\n%v", err)
	}

	// run simulation
	err = fsi.New(ctx, sim, s, f).Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
