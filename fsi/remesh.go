// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsi

import (
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/locator"
	"github.com/cpmech/gosl/chk"
)

// RefineMesh refines the fluid cells close to the solid and coarsens the others
//  Input:
//   minLevel -- cells are not coarsened below this level
//   maxLevel -- cells are not refined beyond this level
//  Notes:
//   1) a fluid cell is close to the solid if the distance between its centre and the nearest
//      centre of a solid cell (displaced configuration) is smaller than Sim.Fsi.Dist
//   2) the present fluid solution is interpolated onto the new mesh and the nonzero constraints
//      are applied to it
func (o *Coupling) RefineMesh(minLevel, maxLevel int) (err error) {
	defer o.Ctx.Timer.Scope("Refine mesh")()

	// flags
	var flags []int
	err = o.motion.WithDisplaced(func() error {
		flags = o.refinementFlags()
		return nil
	})
	if err != nil {
		return
	}

	// adapt
	tr := fem.SolutionTransfer{MaxHops: o.Sim.Fsi.MaxHops, Nnear: o.Sim.Fsi.Nnear}
	tr.Prepare(o.Fluid.Mesh(), o.Fluid.DofMap(), o.Fluid.Present())
	if !o.Fluid.Adapt(flags, minLevel, maxLevel) {
		return
	}
	if err = o.Fluid.Remesh(); err != nil {
		return
	}
	if err = o.Fluid.SetupDofs(); err != nil {
		return
	}
	if err = o.Fluid.MakeConstraints(); err != nil {
		return
	}
	if err = o.Fluid.InitializeSystem(); err != nil {
		return
	}

	// transfer solution
	vec, err := tr.Interpolate(o.Fluid.Mesh(), o.Fluid.DofMap())
	if err != nil {
		return chk.Err("cannot transfer fluid solution:\n%v", err)
	}
	nonzero, _ := o.Fluid.Constraints()
	if err = nonzero.Distribute(vec); err != nil {
		return
	}
	if err = o.Fluid.SetPresent(vec); err != nil {
		return
	}
	o.SetupHints()
	o.Ctx.Pf("fluid mesh refined: %d active cells\n", len(o.Fluid.Mesh().Cells))
	return
}

// refinementFlags flags the fluid cells to be refined or coarsened
func (o *Coupling) refinementFlags() (flags []int) {
	smsh := o.Solid.Mesh()
	centres := make(locator.Centres, len(smsh.Cells))
	for i, c := range smsh.Cells {
		centres[i] = locator.Centre{X: smsh.CellCenter(c), Id: c.Id}
	}
	tree := locator.NewCentreTree(centres)
	fmsh := o.Fluid.Mesh()
	flags = make([]int, len(fmsh.Cells))
	for i, c := range fmsh.Cells {
		if tree.NearestDist(fmsh.CellCenter(c)) < o.Sim.Fsi.Dist {
			flags[i] = inp.FlagRefine
		} else {
			flags[i] = inp.FlagCoarsen
		}
	}
	return
}
