// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsi

import (
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/locator"
	"github.com/Jie-Cheng/OpenIFEM/shp"
)

// Solid defines the solid solver as seen by the coupling
type Solid interface {
	Mesh() *inp.Mesh                          // mesh in the reference configuration
	Displacement() locator.Field              // current displacements
	Velocity() locator.Field                  // current velocities
	Acceleration() locator.Field              // current accelerations
	StressField() locator.Field               // nodal stresses; component i*ndim+j holds σ_ij
	Density() float64                         // density
	Clock() *fem.Time                         // time stepping data
	FixedFace(c *inp.Cell, idxface int) bool  // face has prescribed displacements
	FaceIps(c *inp.Cell) []shp.Ipoint         // face integration points
	Tractions() *fem.CellStore[*fem.Traction] // tractions at face integration points

	Setup() error                      // set up from scratch at t = 0
	AssembleSystem(initial bool) error // assemble the system
	RunOneStep(first bool) error       // advance one time step
	SaveCheckpoint() error             // save state
	LoadCheckpoint() (bool, error)     // load state if restarting
}

// Fluid defines the fluid solver as seen by the coupling
type Fluid interface {
	Mesh() *inp.Mesh                                          // mesh of active cells
	DofMap() *fem.DofMap                                      // dofs: velocities then pressure at each vertex
	Present() []float64                                       // present solution
	SetPresent(vec []float64) error                           // replace present solution
	Solution() locator.Field                                  // present solution as a field
	Density() float64                                         // density
	Viscosity() float64                                       // dynamic viscosity
	Gravity() []float64                                       // gravity vector
	VolumeIps(c *inp.Cell) []shp.Ipoint                       // integration points
	Forces() *fem.CellStore[*fem.FsiForce]                    // fsi forcing at integration points
	Constraints() (nonzero, zero *fem.Constraints)            // constraints on the increment
	Clock() *fem.Time                                         // time stepping data
	Owns(c *inp.Cell) bool                                    // cell is handled by this process
	Adapt(flags []int, minLevel, maxLevel int) (changed bool) // refine and coarsen cells

	Setup() error                       // set up from scratch at t = 0
	Remesh() error                      // generate the mesh of active cells
	SetupDofs() error                   // number dofs
	MakeConstraints() error             // build constraints of hanging vertices and boundaries
	InitializeSystem() error            // allocate vectors, system and records
	RunOneStep(applyNonzero bool) error // advance one time step
	SaveCheckpoint() error              // save state
	LoadCheckpoint() (bool, error)      // load state if restarting
}
