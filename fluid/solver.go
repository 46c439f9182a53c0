// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluid implements an unsteady Stokes solver with equal-order velocity and pressure
// interpolation on adaptively refined meshes
package fluid

import (
	"github.com/Jie-Cheng/OpenIFEM/comm"
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/locator"
	"github.com/Jie-Cheng/OpenIFEM/shp"
	"github.com/cpmech/gosl/chk"
)

// Solver solves the unsteady Stokes equations with backward Euler time integration
//
//   ρ/dt (v - vₙ) - μ ∇²v + ∇p = ρ g + f_fsi
//                          ∇⋅v = 0
//
//  Pressures are stabilised with the Brezzi-Pitkäranta term δ (∇p, ∇q) where δ = Stab h² / μ.
//  Each step solves for the increment of the solution; constraints are therefore given in
//  terms of increments
type Solver struct {

	// input
	Ctx *comm.Context   // execution context
	Sim *inp.Simulation // simulation data

	// mesh
	Forest *inp.Forest // refinement history of the coarse mesh
	Msh    *inp.Mesh   // mesh of active cells

	// state
	Time    *fem.Time        // time stepping
	Dofs    *fem.DofMap      // dofs: vx, vy, [vz,] p at each vertex
	Sol     []float64        // present solution
	Inc     []float64        // solution increment of the last step
	Nonzero *fem.Constraints // constraints on the first increment; prescribed values minus zero solution
	Zero    *fem.Constraints // homogeneous constraints on the increment

	// auxiliary
	ndim   int                          // space dimension
	sys    *fem.LinSys                  // system matrix and right-hand side
	forces fem.CellStore[*fem.FsiForce] // fsi forcing at integration points
	ips    map[string][]shp.Ipoint      // integration points of each cell type
}

// New returns a new fluid solver; Setup or LoadCheckpoint must be called before running
func New(ctx *comm.Context, sim *inp.Simulation) (o *Solver, err error) {
	if sim.Fluid.Viscosity <= 0 {
		return nil, chk.Err("fluid viscosity must be positive. %g is invalid\n", sim.Fluid.Viscosity)
	}
	if sim.Fluid.Rho <= 0 {
		return nil, chk.Err("fluid density must be positive. %g is invalid\n", sim.Fluid.Rho)
	}
	o = new(Solver)
	o.Ctx = ctx
	o.Sim = sim
	o.ndim = sim.FluidMsh.Ndim
	o.ips = make(map[string][]shp.Ipoint)
	for ctype := range sim.FluidMsh.Ctype2cells {
		if o.ips[ctype], err = shp.GetIps(ctype, 0); err != nil {
			return
		}
	}
	o.Time = o.newTime()
	return
}

// Setup sets the solver up from scratch at t = 0: the coarse mesh is refined Nref times
func (o *Solver) Setup() (err error) {
	o.Time = o.newTime()
	o.Forest, err = inp.NewForest(o.Sim.FluidMsh)
	if err != nil {
		return
	}
	o.Forest.RefineGlobal(o.Sim.Fluid.Nref)
	if err = o.Remesh(); err != nil {
		return
	}
	if err = o.SetupDofs(); err != nil {
		return
	}
	if err = o.MakeConstraints(); err != nil {
		return
	}
	return o.InitializeSystem()
}

// Remesh generates the mesh of active cells of the forest
//  Note: cells are split among all processes
func (o *Solver) Remesh() (err error) {
	o.Msh, err = o.Forest.Mesh(o.Ctx.Comm.Size(), o.Sim.GoroutineId)
	if err != nil {
		return chk.Err("cannot generate fluid mesh:\n%v", err)
	}
	o.Ctx.Pf("fluid: %d active cells and %d vertices (generation %d)\n", len(o.Msh.Cells), len(o.Msh.Verts), o.Msh.Gen)
	return
}

// SetupDofs numbers the dofs
func (o *Solver) SetupDofs() (err error) {
	if o.Msh == nil {
		return chk.Err("fluid mesh must be generated before dofs are set up\n")
	}
	o.Dofs = fem.NewDofMap(o.Msh, o.ndim+1)
	return
}

// InitializeSystem allocates the solution vectors, the linear system and the cell records
//  Note: the present solution is set to zero
func (o *Solver) InitializeSystem() (err error) {
	if o.Dofs == nil {
		return chk.Err("dofs must be set up before the system is initialised\n")
	}
	n := o.Dofs.Ndofs()
	o.Sol = make([]float64, n)
	o.Inc = make([]float64, n)
	o.sys = fem.NewLinSys(n)
	npts := make([]int, len(o.Msh.Cells))
	for i, c := range o.Msh.Cells {
		npts[i] = len(o.ips[c.Type])
	}
	o.forces.Init(npts, func() *fem.FsiForce { return fem.NewFsiForce(o.ndim) })
	return
}

// capabilities used by the coupling //////////////////////////////////////////////////////////////

// Mesh returns the mesh of active cells
func (o *Solver) Mesh() *inp.Mesh { return o.Msh }

// DofMap returns the dof numbering
func (o *Solver) DofMap() *fem.DofMap { return o.Dofs }

// Present returns the present solution
func (o *Solver) Present() []float64 { return o.Sol }

// SetPresent replaces the present solution
func (o *Solver) SetPresent(vec []float64) (err error) {
	if len(vec) != len(o.Sol) {
		return chk.Err("fluid solution must have %d dofs. %d is incorrect\n", len(o.Sol), len(vec))
	}
	copy(o.Sol, vec)
	return
}

// Increment returns the solution increment of the last step
func (o *Solver) Increment() []float64 { return o.Inc }

// Solution returns the present solution as a field with components vx, vy, [vz,] p
func (o *Solver) Solution() locator.Field { return o.Dofs.Field(o.Sol, 0, o.ndim+1) }

// Density returns the density of the fluid
func (o *Solver) Density() float64 { return o.Sim.Fluid.Rho }

// Viscosity returns the dynamic viscosity of the fluid
func (o *Solver) Viscosity() float64 { return o.Sim.Fluid.Viscosity }

// Gravity returns the gravity vector
func (o *Solver) Gravity() []float64 { return o.Sim.Control.Gravity }

// VolumeIps returns the integration points of cell c
func (o *Solver) VolumeIps(c *inp.Cell) []shp.Ipoint { return o.ips[c.Type] }

// Forces returns the fsi forcing records
func (o *Solver) Forces() *fem.CellStore[*fem.FsiForce] { return &o.forces }

// Constraints returns the nonzero and zero constraints
func (o *Solver) Constraints() (nonzero, zero *fem.Constraints) { return o.Nonzero, o.Zero }

// Clock returns the time stepping data
func (o *Solver) Clock() *fem.Time { return o.Time }

// Adapt refines and coarsens cells of the forest; see inp.Forest.Adapt
func (o *Solver) Adapt(flags []int, minLevel, maxLevel int) (changed bool) {
	return o.Forest.Adapt(flags, minLevel, maxLevel)
}

// Owns tells whether cell c is handled by this process
func (o *Solver) Owns(c *inp.Cell) bool {
	return o.Ctx.Owns(c.Part)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// newTime returns a new time stepping structure from the control data
func (o *Solver) newTime() *fem.Time {
	c := o.Sim.Control
	return fem.NewTime(c.Tf, c.Dt, c.DtOut, c.DtRefine, c.DtSave)
}
