// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluid

import (
	"math"

	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// RunOneStep advances one time step
//  applyNonzero -- use the nonzero constraints on the increment; otherwise the zero constraints
func (o *Solver) RunOneStep(applyNonzero bool) (err error) {
	o.Time.Increment()
	o.Ctx.Pf("fluid: %v\n", o.Time)
	if err = o.AssembleSystem(); err != nil {
		return
	}

	// residual: F - K⋅x
	r := make([]float64, len(o.Sol))
	o.sys.MulVec(r, o.Sol)
	floats.SubTo(o.sys.F, o.sys.F, r)

	// increment
	defer o.Ctx.Timer.Scope("Solve fluid system")()
	cons := o.Zero
	if applyNonzero {
		cons = o.Nonzero
	}
	if err = o.sys.SolveLagrange(o.Inc, cons); err != nil {
		return chk.Err("fluid solver failed at %v:\n%w", o.Time, err)
	}
	floats.Add(o.Sol, o.Inc)
	return
}

// AssembleSystem assembles the system matrix and the right-hand side
//
//   [ ρ/dt M + μ L   -Bᵀ  ] [ v ]   [ ρ/dt M vₙ + ρ g + f_fsi ]
//   [     -B        -δ L  ] [ p ] = [           0             ]
//
//  where f_fsi = ∫ (acc⋅φ + σjump : ∇φ) at integration points inside the solid
func (o *Solver) AssembleSystem() (err error) {
	defer o.Ctx.Timer.Scope("Assemble fluid system")()

	// auxiliary
	o.sys.Zero()
	nd := o.ndim
	nc := nd + 1
	μ := o.Sim.Fluid.Viscosity
	ρ := o.Sim.Fluid.Rho
	dt := o.Time.Dt
	g := o.Sim.Control.Gravity
	vn := make([]float64, nd)

	// loop over cells
	for _, c := range o.Msh.Cells {
		if !o.Owns(c) {
			continue
		}
		ips := o.ips[c.Type]
		recs, err := o.forces.Get(c.Id, len(ips))
		if err != nil {
			return err
		}
		nv := len(c.Verts)
		Ke := utl.Alloc(nv*nc, nv*nc)
		Fe := make([]float64, nv*nc)
		x := o.Msh.CellCoords(c)
		δ, err := o.stabilisation(c, x)
		if err != nil {
			return err
		}
		for q, ip := range ips {
			if err = c.Shp.CalcAtIp(x, ip, true); err != nil {
				return chk.Err("cannot compute shape functions of fluid cell %d:\n%v", c.Id, err)
			}
			S, G := c.Shp.S, c.Shp.G
			coef := c.Shp.J * ip[3]

			// old velocity
			for i := 0; i < nd; i++ {
				vn[i] = 0
				for m, v := range c.Verts {
					vn[i] += S[m] * o.Sol[o.Dofs.Eq(v, i)]
				}
			}

			// right-hand side
			rec := recs[q]
			for m := 0; m < nv; m++ {
				for i := 0; i < nd; i++ {
					fm := (ρ/dt*vn[i] + ρ*g[i]) * S[m]
					if rec.Indicator {
						fm += rec.Acc[i] * S[m]
						for j := 0; j < nd; j++ {
							fm += rec.Stress[i][j] * G[m][j]
						}
					}
					Fe[m*nc+i] += fm * coef
				}
			}

			// matrix
			for m := 0; m < nv; m++ {
				for n := 0; n < nv; n++ {
					gg := 0.0
					for j := 0; j < nd; j++ {
						gg += G[m][j] * G[n][j]
					}
					a := ρ/dt*S[m]*S[n] + μ*gg
					for i := 0; i < nd; i++ {
						Ke[m*nc+i][n*nc+i] += a * coef
						Ke[m*nc+i][n*nc+nd] -= G[m][i] * S[n] * coef
						Ke[n*nc+nd][m*nc+i] -= G[m][i] * S[n] * coef
					}
					Ke[m*nc+nd][n*nc+nd] -= δ * gg * coef
				}
			}
		}
		o.sys.Assemble(o.Dofs.CellEqs(c), Ke, Fe)
	}

	// join contributions of all processes
	o.sys.Reduce(o.Ctx.Comm)
	return
}

// SaveCheckpoint writes the time, the forest and the present solution to the fluid checkpoint file
func (o *Solver) SaveCheckpoint() (err error) {
	if !o.Ctx.Root() {
		return
	}
	defer o.Ctx.Timer.Scope("Save fluid checkpoint")()
	return fem.SaveCheckpoint(o.Sim.DirOut, o.Sim.Key, "fluid", o.Sim.EncType, o.Ctx.Verbose,
		o.Time, o.Forest, o.Sol)
}

// LoadCheckpoint restores the mesh and the state from the fluid checkpoint file if restarting is enabled
//  Output:
//   loaded -- false if restarting is disabled or no checkpoint exists
func (o *Solver) LoadCheckpoint() (loaded bool, err error) {
	if !o.Sim.Data.Restart {
		return
	}
	var t fem.Time
	var forest inp.Forest
	var sol []float64
	found, err := fem.LoadCheckpoint(o.Sim.DirOut, o.Sim.Key, "fluid", o.Sim.EncType, &t, &forest, &sol)
	if err != nil || !found {
		return
	}
	forest.Rebuild()
	o.Forest = &forest
	o.Time = &t
	if err = o.Remesh(); err != nil {
		return
	}
	if err = o.SetupDofs(); err != nil {
		return
	}
	if err = o.MakeConstraints(); err != nil {
		return
	}
	if err = o.InitializeSystem(); err != nil {
		return
	}
	if len(sol) != len(o.Sol) {
		return false, chk.Err("fluid checkpoint has %d dofs but the mesh has %d\n", len(sol), len(o.Sol))
	}
	copy(o.Sol, sol)
	o.Ctx.Pfgreen("fluid checkpoint loaded: %v\n", o.Time)
	return true, nil
}

// stabilisation computes δ = Stab h² / μ with h = (cell volume)^(1/ndim)
func (o *Solver) stabilisation(c *inp.Cell, x [][]float64) (δ float64, err error) {
	vol := 0.0
	for _, ip := range o.ips[c.Type] {
		if err = c.Shp.CalcAtIp(x, ip, true); err != nil {
			return 0, chk.Err("cannot compute volume of fluid cell %d:\n%v", c.Id, err)
		}
		vol += c.Shp.J * ip[3]
	}
	h := math.Pow(vol, 1.0/float64(o.ndim))
	return o.Sim.Fluid.Stab * h * h / o.Sim.Fluid.Viscosity, nil
}
