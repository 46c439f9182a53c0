// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// AssembleSystem assembles the system matrix, the stiffness matrix and the right-hand side
//  initial -- assemble the mass matrix only as system matrix; used to compute initial accelerations
//  Note: body forces are zero; face tractions are read from the traction records
func (o *Solver) AssembleSystem(initial bool) (err error) {
	defer o.Ctx.Timer.Scope("Assemble solid system")()

	// auxiliary
	o.sys.Zero()
	o.stiff.Zero()
	ρ := o.Mdl.Rho()
	dt := o.Time.Dt
	nsig := o.Mdl.Nsig()
	D := utl.Alloc(nsig, nsig)
	o.Mdl.CalcD(D)

	// loop over cells
	for _, c := range o.Msh.Cells {
		if !o.owns(c) {
			continue
		}
		nu := len(c.Verts) * o.ndim
		Ke := utl.Alloc(nu, nu)
		Ks := utl.Alloc(nu, nu)
		Fe := make([]float64, nu)
		B := utl.Alloc(nsig, nu)
		DB := utl.Alloc(nsig, nu)
		x := o.Msh.CellCoords(c)

		// volume integration
		for _, ip := range o.ips[c.Type] {
			err = c.Shp.CalcAtIp(x, ip, true)
			if err != nil {
				return chk.Err("cannot compute shape functions of solid cell %d:\n%v", c.Id, err)
			}
			coef := c.Shp.J * ip[3]
			o.calcB(B, c.Shp.G)
			for i := 0; i < nsig; i++ {
				for n := 0; n < nu; n++ {
					DB[i][n] = 0
					for j := 0; j < nsig; j++ {
						DB[i][n] += D[i][j] * B[j][n]
					}
				}
			}
			for m := 0; m < nu; m++ {
				for n := 0; n < nu; n++ {
					kmn := 0.0
					for i := 0; i < nsig; i++ {
						kmn += B[i][m] * DB[i][n]
					}
					mmn := 0.0
					if m%o.ndim == n%o.ndim {
						mmn = ρ * c.Shp.S[m/o.ndim] * c.Shp.S[n/o.ndim]
					}
					if initial {
						Ke[m][n] += mmn * coef
					} else {
						Ke[m][n] += (mmn + kmn*o.Beta*dt*dt) * coef
						Ks[m][n] += kmn * coef
					}
				}
			}
		}

		// tractions
		if err = o.addTractions(Fe, c, x); err != nil {
			return
		}

		// add to global system
		eqs := o.Dofs.CellEqs(c)
		o.sys.Assemble(eqs, Ke, Fe)
		if !initial {
			o.stiff.Assemble(eqs, Ks, nil)
		}
	}

	// join contributions of all processes
	o.sys.Reduce(o.Ctx.Comm)
	o.stiff.Reduce(o.Ctx.Comm)
	return
}

// addTractions adds the contribution of tractions on free boundary faces of cell c to Fe
func (o *Solver) addTractions(Fe []float64, c *inp.Cell, x [][]float64) (err error) {
	fips := o.fips[c.Type]
	nfip := len(fips)
	recs, err := o.tractions.Get(c.Id, len(c.Shp.FaceLocalVerts)*nfip)
	if err != nil {
		return
	}
	for f := range c.Shp.FaceLocalVerts {
		if c.Neighs[f] >= 0 || o.FixedFace(c, f) {
			continue
		}
		for q, ipf := range fips {
			err = c.Shp.CalcAtFaceIp(x, ipf, f)
			if err != nil {
				return chk.Err("cannot compute face shape functions of solid cell %d:\n%v", c.Id, err)
			}
			_, jf := c.Shp.UnitNormal()
			coef := jf * ipf[3]
			t := recs[f*nfip+q].T
			for k, l := range c.Shp.FaceLocalVerts[f] {
				for i := 0; i < o.ndim; i++ {
					Fe[l*o.ndim+i] += c.Shp.Sf[k] * t[i] * coef
				}
			}
		}
	}
	return
}

// calcB computes the strain-displacement matrix with engineering shear strains
func (o *Solver) calcB(B, G [][]float64) {
	for i := range B {
		for j := range B[i] {
			B[i][j] = 0
		}
	}
	for m := range G {
		if o.ndim == 2 {
			B[0][m*2+0] = G[m][0]
			B[1][m*2+1] = G[m][1]
			B[2][m*2+0] = G[m][1]
			B[2][m*2+1] = G[m][0]
			continue
		}
		B[0][m*3+0] = G[m][0]
		B[1][m*3+1] = G[m][1]
		B[2][m*3+2] = G[m][2]
		B[3][m*3+0] = G[m][1]
		B[3][m*3+1] = G[m][0]
		B[4][m*3+1] = G[m][2]
		B[4][m*3+2] = G[m][1]
		B[5][m*3+0] = G[m][2]
		B[5][m*3+2] = G[m][0]
	}
}
