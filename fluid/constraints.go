// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluid

import (
	"sort"

	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/cpmech/gosl/chk"
)

// MakeConstraints builds the nonzero and zero constraints from hanging vertices and face boundary
// conditions
//  Notes:
//   1) hanging vertices take the average of their supporting vertices (all components)
//   2) the nonzero set holds the prescribed values; it is used for the first step, starting from zero
//   3) if velocities are prescribed on all boundaries and no pressure is given, the pressure of one
//      vertex is set to zero
func (o *Solver) MakeConstraints() (err error) {
	defer o.Ctx.Timer.Scope("Make fluid constraints")()
	if o.Dofs == nil {
		return chk.Err("dofs must be set up before constraints are made\n")
	}
	o.Nonzero = fem.NewConstraints()
	o.Zero = fem.NewConstraints()

	// hanging vertices
	nc := o.Dofs.Ncomp
	for _, v := range o.hangingVerts() {
		sup := o.Msh.Hanging[v]
		w := 1.0 / float64(len(sup))
		for k := 0; k < nc; k++ {
			eq := o.Dofs.Eq(v, k)
			o.Nonzero.Add(eq)
			o.Zero.Add(eq)
			for _, s := range sup {
				o.Nonzero.AddEntry(eq, o.Dofs.Eq(s, k), w)
				o.Zero.AddEntry(eq, o.Dofs.Eq(s, k), w)
			}
		}
	}

	// face boundary conditions
	keys := o.keys()
	haspres := false
	for _, fbc := range o.Sim.Fluid.FaceBcs {
		verts, ok := o.Msh.FaceTag2verts[fbc.Tag]
		if !ok {
			return chk.Err("cannot find fluid faces with tag = %d\n", fbc.Tag)
		}
		for i, key := range fbc.Keys {
			comp, ok := keys[key]
			if !ok {
				return chk.Err("fluid boundary condition key %q is invalid\n", key)
			}
			if comp == o.ndim {
				haspres = true
			}
			for _, v := range verts {
				o.prescribe(o.Dofs.Eq(v, comp), fbc.Vals[i])
			}
		}
	}

	// pressure level
	if !haspres && o.enclosed() {
		for _, v := range o.Msh.Verts {
			if _, ok := o.Msh.Hanging[v.Id]; !ok {
				o.prescribe(o.Dofs.Eq(v.Id, o.ndim), 0)
				break
			}
		}
	}

	// resolve chains
	if err = o.Nonzero.Close(); err != nil {
		return chk.Err("cannot close nonzero constraints:\n%v", err)
	}
	if err = o.Zero.Close(); err != nil {
		return chk.Err("cannot close zero constraints:\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// prescribe adds the lines of a prescribed value unless the equation is already constrained
func (o *Solver) prescribe(eq int, val float64) {
	if o.Zero.IsConstrained(eq) {
		return
	}
	o.Zero.Add(eq)
	o.Nonzero.Add(eq)
	o.Nonzero.SetInhomogeneity(eq, val)
}

// keys maps boundary condition keys to components
func (o *Solver) keys() map[string]int {
	keys := map[string]int{"vx": 0, "vy": 1, "p": o.ndim}
	if o.ndim == 3 {
		keys["vz"] = 2
	}
	return keys
}

// enclosed tells whether all velocity components are prescribed on all boundary faces
func (o *Solver) enclosed() bool {
	keys := o.keys()
	ncomps := make(map[int]map[int]bool)
	for _, fbc := range o.Sim.Fluid.FaceBcs {
		if ncomps[fbc.Tag] == nil {
			ncomps[fbc.Tag] = make(map[int]bool)
		}
		for _, key := range fbc.Keys {
			if comp, ok := keys[key]; ok && comp < o.ndim {
				ncomps[fbc.Tag][comp] = true
			}
		}
	}
	for _, c := range o.Msh.Cells {
		for f, nb := range c.Neighs {
			if nb >= 0 {
				continue
			}
			if len(ncomps[c.FTags[f]]) < o.ndim {
				return false
			}
		}
	}
	return true
}

// hangingVerts returns the sorted hanging vertices
func (o *Solver) hangingVerts() (verts []int) {
	for v := range o.Msh.Hanging {
		verts = append(verts, v)
	}
	sort.Ints(verts)
	return
}
