// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsi

import (
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/locator"
	"github.com/cpmech/gosl/chk"
)

// FindSolidBC computes the fluid tractions at the face integration points of free boundary faces of
// the solid (displaced configuration)
//
//   t = σ ⋅ n   with   σ = -p I + μ (∇v + ∇vᵀ)
//
//  Notes:
//   1) each point is evaluated by the process owning the fluid cell containing it; the values of all
//      processes are summed with a single reduction
//   2) points outside the fluid mesh get zero tractions
func (o *Coupling) FindSolidBC() (err error) {
	defer o.Ctx.Timer.Scope("Find solid BC")()
	return o.motion.WithDisplaced(func() (err error) {

		// auxiliary
		smsh := o.Solid.Mesh()
		fmsh := o.Fluid.Mesh()
		nd := smsh.Ndim
		nc := nd + 1
		stride := nc + nc*nd
		loc, itp := o.fluidLocator()
		sol := o.Fluid.Solution()
		store := o.Solid.Tractions()
		var hint locator.Hint

		// fluid values and gradients at face points
		var recs []*fem.Traction
		var normals [][]float64
		var buf []float64
		for _, c := range smsh.Cells {
			fips := o.Solid.FaceIps(c)
			nfip := len(fips)
			crecs, err := store.Get(c.Id, len(c.Shp.FaceLocalVerts)*nfip)
			if err != nil {
				return err
			}
			x := smsh.CellCoords(c)
			for f := range c.Shp.FaceLocalVerts {
				if c.Neighs[f] >= 0 || o.Solid.FixedFace(c, f) {
					continue
				}
				for q, ipf := range fips {
					if err = c.Shp.CalcAtFaceIp(x, ipf, f); err != nil {
						return chk.Err("cannot compute face normal of solid cell %d:\n%v", c.Id, err)
					}
					n, _ := c.Shp.UnitNormal()
					y := c.Shp.FaceIpRealCoords(x, ipf, f)
					vals := make([]float64, stride)
					cid, found := loc.Search(y, &hint)
					if found && o.Fluid.Owns(fmsh.Cells[cid]) {
						val, err := itp.PointValue(sol, y, cid)
						if err != nil {
							return chk.Err("cannot interpolate fluid solution at %v:\n%v", y, err)
						}
						grad, err := itp.PointGradient(sol, y, cid)
						if err != nil {
							return chk.Err("cannot interpolate fluid gradients at %v:\n%v", y, err)
						}
						copy(vals, val)
						for k := 0; k < nc; k++ {
							copy(vals[nc+k*nd:nc+(k+1)*nd], grad[k])
						}
					}
					recs = append(recs, crecs[f*nfip+q])
					normals = append(normals, n)
					buf = append(buf, vals...)
				}
			}
		}
		o.Ctx.Comm.AllReduceSum(buf)

		// tractions
		μ := o.Fluid.Viscosity()
		for k, rec := range recs {
			vals := buf[k*stride : (k+1)*stride]
			p := vals[nd]
			g := vals[nc:]
			n := normals[k]
			for i := 0; i < nd; i++ {
				rec.T[i] = 0
				for j := 0; j < nd; j++ {
					σ := μ * (g[i*nd+j] + g[j*nd+i])
					if i == j {
						σ -= p
					}
					rec.T[i] += σ * n[j]
				}
			}
		}
		return
	})
}

// FindFluidBC constrains the fluid velocities at vertices inside the solid (displaced configuration)
// and computes the fsi forcing at integration points inside the solid
//  Notes:
//   1) the constraints hold increments: solid velocity minus present fluid velocity
//   2) the constraints are merged into the fluid constraints; existing lines are kept
//   3) the forcing records of cells owned by this process are recomputed from scratch
//   4) a point inside the solid that cannot be located in the solid mesh is an error
func (o *Coupling) FindFluidBC() (err error) {
	defer o.Ctx.Timer.Scope("Find fluid BC")()
	return o.motion.WithDisplaced(func() (err error) {

		// auxiliary
		fmsh := o.Fluid.Mesh()
		dofs := o.Fluid.DofMap()
		present := o.Fluid.Present()
		nd := fmsh.Ndim
		if o.hintsMsh != fmsh || len(o.hints) != len(fmsh.Verts) {
			o.SetupHints()
		}
		vs := o.Solid.Velocity()
		as := o.Solid.Acceleration()
		ss := o.Solid.StressField()
		ρs, ρf := o.Solid.Density(), o.Fluid.Density()
		μ := o.Fluid.Viscosity()
		grav := o.Fluid.Gravity()
		store := o.Fluid.Forces()
		innerNonzero := fem.NewConstraints()
		innerZero := fem.NewConstraints()
		touched := make([]bool, dofs.Ndofs())
		var hint locator.Hint

		// loop over cells
		for _, c := range fmsh.Cells {

			// velocity constraints at vertices
			for _, v := range c.Verts {
				if !fmsh.IsCorner(v) || touched[dofs.Eq(v, 0)] {
					continue
				}
				for i := 0; i < nd; i++ {
					touched[dofs.Eq(v, i)] = true
				}
				y := fmsh.Verts[v].C
				if !o.cls.IsInside(y) {
					continue
				}
				cid, found := o.sloc.Search(y, &o.hints[v])
				if !found {
					return chk.Err("%w: fluid vertex %d at %v", ErrSolidPointLost, v, y)
				}
				val, err := o.sitp.PointValue(vs, y, cid)
				if err != nil {
					return chk.Err("%w: fluid vertex %d at %v:\n%v", ErrSolidPointLost, v, y, err)
				}
				for i := 0; i < nd; i++ {
					eq := dofs.Eq(v, i)
					innerNonzero.Add(eq)
					innerZero.Add(eq)
					innerNonzero.SetInhomogeneity(eq, val[i]-present[eq])
				}
			}

			// forcing at integration points
			if !o.Fluid.Owns(c) {
				continue
			}
			ips := o.Fluid.VolumeIps(c)
			recs, err := store.Get(c.Id, len(ips))
			if err != nil {
				return err
			}
			x := fmsh.CellCoords(c)
			for q, ip := range ips {
				rec := recs[q]
				rec.Reset()
				y := c.Shp.IpRealCoords(x, ip)
				if !o.cls.IsInside(y) {
					continue
				}
				rec.Indicator = true
				cid, found := o.sloc.Search(y, &hint)
				if !found {
					return chk.Err("%w: integration point %d of fluid cell %d at %v", ErrSolidPointLost, q, c.Id, y)
				}
				a, err := o.sitp.PointValue(as, y, cid)
				if err != nil {
					return chk.Err("%w: integration point %d of fluid cell %d at %v:\n%v", ErrSolidPointLost, q, c.Id, y, err)
				}
				σs, err := o.sitp.PointValue(ss, y, cid)
				if err != nil {
					return chk.Err("%w: integration point %d of fluid cell %d at %v:\n%v", ErrSolidPointLost, q, c.Id, y, err)
				}

				// fluid pressure and velocity gradient
				if err = c.Shp.CalcAtIp(x, ip, true); err != nil {
					return chk.Err("cannot compute shape functions of fluid cell %d:\n%v", c.Id, err)
				}
				p := 0.0
				for m, v := range c.Verts {
					p += c.Shp.S[m] * present[dofs.Eq(v, nd)]
				}
				gv := func(i, j int) (res float64) {
					for m, v := range c.Verts {
						res += c.Shp.G[m][j] * present[dofs.Eq(v, i)]
					}
					return
				}

				// jumps
				for i := 0; i < nd; i++ {
					rec.Acc[i] = (ρs - ρf) * (grav[i] - a[i])
					for j := 0; j < nd; j++ {
						σf := μ * (gv(i, j) + gv(j, i))
						if i == j {
							σf -= p
						}
						rec.Stress[i][j] = σf - σs[i*nd+j]
					}
				}
			}
		}

		// merge
		if err = innerNonzero.Close(); err != nil {
			return
		}
		if err = innerZero.Close(); err != nil {
			return
		}
		nonzero, zero := o.Fluid.Constraints()
		nonzero.Merge(innerNonzero)
		zero.Merge(innerZero)
		if err = nonzero.Close(); err != nil {
			return chk.Err("cannot close nonzero constraints:\n%v", err)
		}
		if err = zero.Close(); err != nil {
			return chk.Err("cannot close zero constraints:\n%v", err)
		}
		return
	})
}
