// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// CG_TOL is the tolerance of the conjugate gradient solver relative to the norm of the right-hand side
const CG_TOL = 1e-10

// RunOneStep advances one time step
//  first -- compute the initial acceleration M a₀ = F before advancing
func (o *Solver) RunOneStep(first bool) (err error) {

	// initial acceleration
	if first {
		if err = o.AssembleSystem(true); err != nil {
			return
		}
		if err = o.solve(o.A.Current, o.sys.F); err != nil {
			return chk.Err("cannot compute initial acceleration:\n%v", err)
		}
		o.A.Finalize()
	}
	if err = o.AssembleSystem(false); err != nil {
		return
	}

	// time
	o.Time.Increment()
	o.Ctx.Pf("solid: %v\n", o.Time)
	dt := o.Time.Dt
	γ, β := o.Gamma, o.Beta

	// predictor: u* = uₙ + dt vₙ + (1/2 - β) dt² aₙ
	n := o.Dofs.Ndofs()
	up, vp, ap := o.U.Previous, o.V.Previous, o.A.Previous
	tmp := make([]float64, n)
	copy(tmp, up)
	floats.AddScaled(tmp, dt, vp)
	floats.AddScaled(tmp, (0.5-β)*dt*dt, ap)

	// rhs: F - K u*
	rhs := make([]float64, n)
	o.stiff.MulVec(rhs, tmp)
	floats.SubTo(rhs, o.sys.F, rhs)

	// new acceleration
	if err = o.solve(o.A.Current, rhs); err != nil {
		return
	}
	a := o.A.Current

	// vₙ₊₁ = vₙ + (1 - γ) dt aₙ + γ dt aₙ₊₁
	v := o.V.Current
	copy(v, vp)
	floats.AddScaled(v, dt*(1-γ), ap)
	floats.AddScaled(v, dt*γ, a)

	// uₙ₊₁ = uₙ + dt vₙ + (1/2 - β) dt² aₙ + β dt² aₙ₊₁
	u := o.U.Current
	copy(u, tmp)
	floats.AddScaled(u, dt*dt*β, a)

	// finalise step
	o.A.Finalize()
	o.V.Finalize()
	o.U.Finalize()
	return o.UpdateStress()
}

// UpdateStress computes the nodal stresses by extrapolating the stresses at integration points and
// averaging the values of cells sharing vertices
func (o *Solver) UpdateStress() (err error) {
	defer o.Ctx.Timer.Scope("Update solid stress")()

	// auxiliary
	nd := o.ndim
	ncomp := nd * nd
	count := make([]float64, len(o.Msh.Verts))
	for i := range o.Stress {
		o.Stress[i] = 0
	}
	ε := utl.Alloc(nd, nd)
	σ := utl.Alloc(nd, nd)

	// loop over cells
	for _, c := range o.Msh.Cells {
		if !o.owns(c) {
			continue
		}
		x := o.Msh.CellCoords(c)
		ips := o.ips[c.Type]
		sip := utl.Alloc(len(ips), ncomp)
		for q, ip := range ips {
			err = c.Shp.CalcAtIp(x, ip, true)
			if err != nil {
				return chk.Err("cannot compute shape functions of solid cell %d:\n%v", c.Id, err)
			}
			for i := 0; i < nd; i++ {
				for j := 0; j < nd; j++ {
					ε[i][j] = 0
					for m, v := range c.Verts {
						ε[i][j] += (c.Shp.G[m][j]*o.U.Current[o.Dofs.Eq(v, i)] + c.Shp.G[m][i]*o.U.Current[o.Dofs.Eq(v, j)]) / 2.0
					}
				}
			}
			o.Mdl.CalcSig(σ, ε)
			for i := 0; i < nd; i++ {
				for j := 0; j < nd; j++ {
					sip[q][i*nd+j] = σ[i][j]
				}
			}
		}
		E := o.extrap[c.Type]
		for m, v := range c.Verts {
			for k := 0; k < ncomp; k++ {
				for q := range ips {
					o.Stress[o.sdofs.Eq(v, k)] += E[m][q] * sip[q][k]
				}
			}
			count[v]++
		}
	}

	// average
	o.Ctx.Comm.AllReduceSum(o.Stress)
	o.Ctx.Comm.AllReduceSum(count)
	for v, cnt := range count {
		if cnt == 0 {
			continue
		}
		for k := 0; k < ncomp; k++ {
			o.Stress[o.sdofs.Eq(v, k)] /= cnt
		}
	}
	return
}

// SaveCheckpoint writes the time and the converged state to the solid checkpoint file
func (o *Solver) SaveCheckpoint() (err error) {
	if !o.Ctx.Root() {
		return
	}
	defer o.Ctx.Timer.Scope("Save solid checkpoint")()
	return fem.SaveCheckpoint(o.Sim.DirOut, o.Sim.Key, "solid", o.Sim.EncType, o.Ctx.Verbose,
		o.Time, o.U.Previous, o.V.Previous, o.A.Previous)
}

// LoadCheckpoint restores the state from the solid checkpoint file if restarting is enabled
//  Output:
//   loaded -- false if restarting is disabled or no checkpoint exists
func (o *Solver) LoadCheckpoint() (loaded bool, err error) {
	if !o.Sim.Data.Restart {
		return
	}
	if err = o.SetupDofs(); err != nil {
		return
	}
	if err = o.InitializeSystem(); err != nil {
		return
	}
	var t fem.Time
	var u, v, a []float64
	found, err := fem.LoadCheckpoint(o.Sim.DirOut, o.Sim.Key, "solid", o.Sim.EncType, &t, &u, &v, &a)
	if err != nil || !found {
		return
	}
	n := o.Dofs.Ndofs()
	if len(u) != n || len(v) != n || len(a) != n {
		return false, chk.Err("solid checkpoint has %d dofs but the mesh has %d\n", len(u), n)
	}
	o.Time = &t
	for _, s := range []struct {
		snap *fem.Snapshot
		vals []float64
	}{{o.U, u}, {o.V, v}, {o.A, a}} {
		copy(s.snap.Current, s.vals)
		s.snap.Finalize()
	}
	o.Ctx.Pfgreen("solid checkpoint loaded: %v\n", o.Time)
	return true, o.UpdateStress()
}

// solve solves (M + β dt² K) x = b (or M x = b) subject to fixed displacements
func (o *Solver) solve(x, b []float64) (err error) {
	defer o.Ctx.Timer.Scope("Solve solid system")()
	copy(o.sys.F, b)
	if err = o.sys.Condense(o.Fixed); err != nil {
		return
	}
	nit, err := fem.SolveCG(o.sys.K, x, o.sys.F, CG_TOL, 2*o.sys.N)
	if err != nil {
		return chk.Err("solid solver failed at %v:\n%w", o.Time, err)
	}
	o.Ctx.Pf("solid: CG iterations = %d\n", nit)
	return
}
