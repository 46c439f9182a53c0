// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements a linear elastic solid solver with Newmark time integration
package solid

import (
	"github.com/Jie-Cheng/OpenIFEM/comm"
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/locator"
	"github.com/Jie-Cheng/OpenIFEM/msolid"
	"github.com/Jie-Cheng/OpenIFEM/shp"
	"github.com/cpmech/gosl/chk"
)

// Solver solves the elastodynamics of a solid with small strains
//
//   M a + K u = F
//
//  with the Newmark method: γ = 1/2 + damping and β = γ/2
type Solver struct {

	// input
	Ctx *comm.Context   // execution context
	Sim *inp.Simulation // simulation data
	Msh *inp.Mesh       // mesh (reference configuration)
	Mdl msolid.Model    // material model

	// state
	Time    *fem.Time        // time stepping
	Dofs    *fem.DofMap      // displacement dofs
	U, V, A *fem.Snapshot    // displacement, velocity and acceleration
	Stress  []float64        // nodal Cauchy stress tensors [nverts*ndim*ndim]
	Fixed   *fem.Constraints // fixed displacements

	// Newmark coefficients
	Gamma float64 // γ
	Beta  float64 // β

	// auxiliary
	ndim      int                          // space dimension
	sdofs     *fem.DofMap                  // stress "dofs"
	sys       *fem.LinSys                  // M + β dt² K (or M) and F
	stiff     *fem.LinSys                  // K
	tractions fem.CellStore[*fem.Traction] // tractions at face integration points
	ips       map[string][]shp.Ipoint      // integration points of each cell type
	fips      map[string][]shp.Ipoint      // face integration points of each cell type
	fixedTags map[int]bool                 // tags of faces with fixed displacements
	extrap    map[string][][]float64       // extrapolation matrices of each cell type
}

// New returns a new solid solver
func New(ctx *comm.Context, sim *inp.Simulation) (o *Solver, err error) {
	o = new(Solver)
	o.Ctx = ctx
	o.Sim = sim
	o.Msh = sim.SolidMsh
	o.ndim = o.Msh.Ndim
	o.Mdl, err = msolid.New(sim.Solid.Model, o.ndim, sim.Solid.Prms)
	if err != nil {
		return nil, chk.Err("cannot allocate solid model:\n%v", err)
	}
	o.Gamma = 0.5 + sim.Solid.Damping
	o.Beta = o.Gamma / 2.0
	o.fixedTags = make(map[int]bool)
	for _, fbc := range sim.Solid.FaceBcs {
		o.fixedTags[fbc.Tag] = true
	}
	o.ips = make(map[string][]shp.Ipoint)
	o.fips = make(map[string][]shp.Ipoint)
	o.extrap = make(map[string][][]float64)
	for ctype := range o.Msh.Ctype2cells {
		if o.ips[ctype], err = shp.GetIps(ctype, 0); err != nil {
			return
		}
		if o.fips[ctype], err = shp.GetFaceIps(ctype); err != nil {
			return
		}
		s := shp.Get(ctype, 0)
		E := make([][]float64, s.Nverts)
		for i := range E {
			E[i] = make([]float64, len(o.ips[ctype]))
		}
		if err = s.Extrapolator(E, o.ips[ctype]); err != nil {
			return
		}
		o.extrap[ctype] = E
	}
	o.Time = o.newTime()
	return
}

// Setup sets the solver up from scratch at t = 0
func (o *Solver) Setup() (err error) {
	o.Time = o.newTime()
	if err = o.SetupDofs(); err != nil {
		return
	}
	return o.InitializeSystem()
}

// SetupDofs numbers the dofs and builds the fixed displacement constraints
func (o *Solver) SetupDofs() (err error) {
	o.Dofs = fem.NewDofMap(o.Msh, o.ndim)
	o.sdofs = fem.NewDofMap(o.Msh, o.ndim*o.ndim)
	o.Fixed = fem.NewConstraints()
	keys := map[string]int{"ux": 0, "uy": 1, "uz": 2}
	for _, fbc := range o.Sim.Solid.FaceBcs {
		verts, ok := o.Msh.FaceTag2verts[fbc.Tag]
		if !ok {
			return chk.Err("cannot find solid faces with tag = %d\n", fbc.Tag)
		}
		for i, key := range fbc.Keys {
			comp, ok := keys[key]
			if !ok || comp >= o.ndim {
				return chk.Err("solid boundary condition key %q is invalid\n", key)
			}
			if fbc.Vals[i] != 0 {
				return chk.Err("solid boundary conditions must be homogeneous. %s = %g is invalid\n", key, fbc.Vals[i])
			}
			for _, v := range verts {
				o.Fixed.Add(o.Dofs.Eq(v, comp))
			}
		}
	}
	return o.Fixed.Close()
}

// InitializeSystem allocates the state vectors, the linear systems and the cell records
func (o *Solver) InitializeSystem() (err error) {
	if o.Dofs == nil {
		return chk.Err("dofs must be set up before the system is initialised\n")
	}
	n := o.Dofs.Ndofs()
	o.U = fem.NewSnapshot(n)
	o.V = fem.NewSnapshot(n)
	o.A = fem.NewSnapshot(n)
	o.Stress = make([]float64, o.sdofs.Ndofs())
	o.sys = fem.NewLinSys(n)
	o.stiff = fem.NewLinSys(n)
	npts := make([]int, len(o.Msh.Cells))
	for i, c := range o.Msh.Cells {
		npts[i] = len(c.Shp.FaceLocalVerts) * len(o.fips[c.Type])
	}
	o.tractions.Init(npts, func() *fem.Traction { return fem.NewTraction(o.ndim) })
	return
}

// capabilities used by the coupling //////////////////////////////////////////////////////////////

// Mesh returns the mesh in the reference configuration
func (o *Solver) Mesh() *inp.Mesh { return o.Msh }

// Displacement returns the current displacement field
func (o *Solver) Displacement() locator.Field { return o.Dofs.Field(o.U.Current, 0, o.ndim) }

// Velocity returns the current velocity field
func (o *Solver) Velocity() locator.Field { return o.Dofs.Field(o.V.Current, 0, o.ndim) }

// Acceleration returns the current acceleration field
func (o *Solver) Acceleration() locator.Field { return o.Dofs.Field(o.A.Current, 0, o.ndim) }

// StressField returns the nodal stress field; component i*ndim+j holds σ_ij
func (o *Solver) StressField() locator.Field { return o.sdofs.Field(o.Stress, 0, o.ndim*o.ndim) }

// Density returns the density of the solid
func (o *Solver) Density() float64 { return o.Mdl.Rho() }

// Clock returns the time stepping data
func (o *Solver) Clock() *fem.Time { return o.Time }

// FixedFace tells whether face idxface of cell c has prescribed displacements
func (o *Solver) FixedFace(c *inp.Cell, idxface int) bool {
	return o.fixedTags[c.FTags[idxface]]
}

// FaceIps returns the integration points of the faces of cell c
func (o *Solver) FaceIps(c *inp.Cell) []shp.Ipoint { return o.fips[c.Type] }

// Tractions returns the traction records
func (o *Solver) Tractions() *fem.CellStore[*fem.Traction] { return &o.tractions }

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// newTime returns a new time stepping structure from the control data
func (o *Solver) newTime() *fem.Time {
	c := o.Sim.Control
	return fem.NewTime(c.Tf, c.Dt, c.DtOut, c.DtRefine, c.DtSave)
}

// owns tells whether cell c is handled by this process
func (o *Solver) owns(c *inp.Cell) bool {
	if len(o.Msh.Part2cells) > 1 {
		return o.Ctx.Owns(c.Part)
	}
	return o.Ctx.Owns((c.Id * o.Ctx.Comm.Size()) / len(o.Msh.Cells))
}
