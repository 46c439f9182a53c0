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

// Motion moves the vertices of the solid mesh between the reference and the displaced configurations
type Motion struct {
	Msh *inp.Mesh            // solid mesh
	U   func() locator.Field // current displacements

	// auxiliary
	displaced bool // mesh is in the displaced configuration
}

// NewMotion returns a new Motion for the mesh and displacements of a solid
func NewMotion(solid Solid) *Motion {
	return &Motion{Msh: solid.Mesh(), U: solid.Displacement}
}

// Move adds (forward) or subtracts (backward) the current displacements to the coordinates of
// each vertex exactly once
func (o *Motion) Move(forward bool) {
	o.move(o.U(), forward)
}

// Displaced tells whether the mesh is in the displaced configuration
func (o *Motion) Displaced() bool { return o.displaced }

// WithDisplaced runs body with the mesh in the displaced configuration. The reference
// configuration is restored when body returns or panics
//  Note: the displacements are frozen while body runs
func (o *Motion) WithDisplaced(body func() error) (err error) {
	if o.displaced {
		return chk.Err("%w", ErrNestedMotion)
	}
	u := o.freeze(o.U())
	o.move(u, true)
	o.displaced = true
	defer func() {
		o.move(u, false)
		o.displaced = false
	}()
	return body()
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// move moves all vertices by ±u
func (o *Motion) move(u locator.Field, forward bool) {
	touched := make([]bool, len(o.Msh.Verts))
	for _, c := range o.Msh.Cells {
		for _, v := range c.Verts {
			if touched[v] {
				continue
			}
			touched[v] = true
			x := o.Msh.Verts[v].C
			for i := 0; i < o.Msh.Ndim; i++ {
				if forward {
					x[i] += u.Value(v, i)
				} else {
					x[i] -= u.Value(v, i)
				}
			}
		}
	}
	o.Msh.Moves++
}

// freeze returns a copy of u
func (o *Motion) freeze(u locator.Field) locator.Field {
	dofs := &fem.DofMap{Nverts: len(o.Msh.Verts), Ncomp: o.Msh.Ndim}
	vec := make([]float64, dofs.Ndofs())
	for v := 0; v < dofs.Nverts; v++ {
		for i := 0; i < dofs.Ncomp; i++ {
			vec[dofs.Eq(v, i)] = u.Value(v, i)
		}
	}
	return dofs.Field(vec, 0, dofs.Ncomp)
}
