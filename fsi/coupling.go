// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fsi implements the coupling of solid and fluid solvers with non-matching meshes:
// fluid points inside the solid take the solid velocity and fluid tractions load the solid
package fsi

import (
	"math"

	"github.com/Jie-Cheng/OpenIFEM/comm"
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/locator"
	"github.com/cpmech/gosl/chk"
)

// CHECKPOINT_TOL is the maximum difference between the times of the solid and fluid checkpoints
const CHECKPOINT_TOL = 1e-10

// State defines the states of the coupling
type State int

// states
const (
	Initializing State = iota
	Stepping
	Refining
	Checkpointing
	Finished
)

// String returns the name of the state
func (o State) String() string {
	switch o {
	case Initializing:
		return "initializing"
	case Stepping:
		return "stepping"
	case Refining:
		return "refining"
	case Checkpointing:
		return "checkpointing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Coupling drives the solid and fluid solvers
type Coupling struct {

	// input
	Ctx   *comm.Context   // execution context
	Sim   *inp.Simulation // simulation data
	Solid Solid           // solid solver
	Fluid Fluid           // fluid solver

	// state
	Time     *fem.Time // global time
	State    State     // current state
	First    bool      // the next solid step computes the initial accelerations
	Restored bool      // solid and fluid were restored from checkpoints

	// auxiliary
	motion     *Motion               // solid mesh motion
	cls        *Classifier           // inside/outside solid
	sloc       *locator.Locator      // locator in solid mesh
	sitp       *locator.Interpolator // interpolator in solid mesh
	floc       *locator.Locator      // locator in fluid mesh
	fitp       *locator.Interpolator // interpolator in fluid mesh
	hints      []locator.Hint        // solid cells containing fluid vertices
	hintsMsh   *inp.Mesh             // fluid mesh of hints
	reassemble bool                  // re-assemble solid system before the next step
}

// New returns a new Coupling
func New(ctx *comm.Context, sim *inp.Simulation, solid Solid, fluid Fluid) (o *Coupling) {
	o = new(Coupling)
	o.Ctx = ctx
	o.Sim = sim
	o.Solid = solid
	o.Fluid = fluid
	c := sim.Control
	o.Time = fem.NewTime(c.Tf, c.Dt, c.DtOut, c.DtRefine, c.DtSave)
	smsh := solid.Mesh()
	o.motion = NewMotion(solid)
	o.cls = NewClassifier(smsh)
	o.sloc = locator.New(smsh, sim.Fsi.MaxHops, sim.Fsi.Nnear)
	o.sitp = locator.NewInterpolator(smsh)
	return
}

// Initialize restores the solvers from checkpoints or sets them up from scratch
//  Notes:
//   1) the fluid checkpoint is only loaded if the solid checkpoint is loaded
//   2) the global time is advanced to the step of the restored solid
//   3) the fluid mesh is adapted if refinement is requested during the run
func (o *Coupling) Initialize() (err error) {
	o.State = Initializing

	// checkpoints
	sloaded, err := o.Solid.LoadCheckpoint()
	if err != nil {
		return
	}
	floaded := false
	if sloaded {
		if floaded, err = o.Fluid.LoadCheckpoint(); err != nil {
			return
		}
	}
	o.Restored = sloaded && floaded
	if o.Restored {
		if err = CheckTimes(o.Solid.Clock().Current, o.Fluid.Clock().Current); err != nil {
			return
		}
		for o.Time.Step < o.Solid.Clock().Step {
			o.Time.Increment()
		}
	} else {
		if err = o.Solid.Setup(); err != nil {
			return
		}
		if err = o.Fluid.Setup(); err != nil {
			return
		}
	}
	o.First = !o.Restored
	o.reassemble = o.Restored
	o.SetupHints()

	// banner
	fdofs := o.Fluid.DofMap().Ndofs()
	sdofs := len(o.Solid.Mesh().Verts) * o.Solid.Mesh().Ndim
	o.Ctx.Pf("running on %d process(es) from %v\n", o.Ctx.Comm.Size(), o.Time)
	o.Ctx.Pf("number of fluid active cells and dofs: [%d, %d]\n", len(o.Fluid.Mesh().Cells), fdofs)
	o.Ctx.Pf("number of solid active cells and dofs: [%d, %d]\n", len(o.Solid.Mesh().Cells), sdofs)

	// initial refinement
	if o.Sim.Control.DtRefine < o.Sim.Control.Tf {
		o.State = Refining
		g := o.Sim.Fluid.Nref
		if err = o.RefineMesh(g, g+3); err != nil {
			return
		}
	}
	return
}

// Run runs the simulation until the end time
func (o *Coupling) Run() (err error) {
	if err = o.Initialize(); err != nil {
		return
	}
	g := o.Sim.Fluid.Nref
	for !o.Time.Finished() {
		o.State = Stepping
		if err = o.Step(); err != nil {
			return
		}
		if o.Time.TimeToRefine() {
			o.State = Refining
			if err = o.RefineMesh(g, g+3); err != nil {
				return
			}
		}
		if o.Time.TimeToSave() {
			o.State = Checkpointing
			if err = o.Solid.SaveCheckpoint(); err != nil {
				return
			}
			if err = o.Fluid.SaveCheckpoint(); err != nil {
				return
			}
		}
	}
	o.State = Finished
	return
}

// Step runs one coupling step and advances the global time
func (o *Coupling) Step() (err error) {

	// fluid → solid
	if err = o.FindSolidBC(); err != nil {
		return
	}
	if o.reassemble {
		if err = o.Solid.AssembleSystem(true); err != nil {
			return
		}
		o.reassemble = false
	}
	if err = o.runSolid(); err != nil {
		return
	}
	if err = o.UpdateSolidBox(); err != nil {
		return
	}

	// solid → fluid
	if err = o.Fluid.MakeConstraints(); err != nil {
		return
	}
	if !o.First {
		nonzero, zero := o.Fluid.Constraints()
		nonzero.Clear()
		nonzero.CopyFrom(zero)
	}
	if err = o.FindFluidBC(); err != nil {
		return
	}
	if err = o.runFluid(); err != nil {
		return
	}
	o.First = false
	o.Time.Increment()
	o.Ctx.Pfyel("coupling: %v\n", o.Time)
	return
}

// UpdateSolidBox updates the bounding box of the solid in the displaced configuration
func (o *Coupling) UpdateSolidBox() error {
	return o.motion.WithDisplaced(func() error {
		o.cls.UpdateBox()
		return nil
	})
}

// SetupHints resets the solid cells cached for each fluid vertex
func (o *Coupling) SetupHints() {
	fmsh := o.Fluid.Mesh()
	o.hints = make([]locator.Hint, len(fmsh.Verts))
	o.hintsMsh = fmsh
}

// Classifier returns the classifier of points inside the solid
func (o *Coupling) Classifier() *Classifier { return o.cls }

// Motion returns the solid mesh motion
func (o *Coupling) Motion() *Motion { return o.motion }

// CheckTimes checks whether the times of the solid and fluid checkpoints are equal within CHECKPOINT_TOL
func CheckTimes(tsolid, tfluid float64) error {
	if math.Abs(tsolid-tfluid) > CHECKPOINT_TOL {
		return chk.Err("%w: solid t = %.15g, fluid t = %.15g", ErrCheckpointTime, tsolid, tfluid)
	}
	return nil
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// runSolid advances the solid one step
func (o *Coupling) runSolid() (err error) {
	defer o.Ctx.Timer.Scope("Run solid solver")()
	if err = o.Solid.RunOneStep(o.First); err != nil {
		return chk.Err("solid step failed at %v:\n%w", o.Time, err)
	}
	return
}

// runFluid advances the fluid one step
func (o *Coupling) runFluid() (err error) {
	defer o.Ctx.Timer.Scope("Run fluid solver")()
	if err = o.Fluid.RunOneStep(true); err != nil {
		return chk.Err("fluid step failed at %v:\n%w", o.Time, err)
	}
	return
}

// fluidLocator returns the locator and interpolator of the present fluid mesh
func (o *Coupling) fluidLocator() (*locator.Locator, *locator.Interpolator) {
	fmsh := o.Fluid.Mesh()
	if o.floc == nil || o.floc.Msh != fmsh {
		o.floc = locator.New(fmsh, o.Sim.Fsi.MaxHops, o.Sim.Fsi.Nnear)
		o.fitp = locator.NewInterpolator(fmsh)
	}
	return o.floc, o.fitp
}
