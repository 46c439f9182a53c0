// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/Jie-Cheng/OpenIFEM/inp"

// DofMap numbers the degrees of freedom of vertex-based fields
//  Note: dofs of vertex v are v*Ncomp + comp
type DofMap struct {
	Nverts int // number of vertices
	Ncomp  int // number of components per vertex; e.g. ux,uy or vx,vy,p
}

// NewDofMap returns a new DofMap for all vertices of a mesh
func NewDofMap(msh *inp.Mesh, ncomp int) *DofMap {
	return &DofMap{Nverts: len(msh.Verts), Ncomp: ncomp}
}

// Ndofs returns the total number of dofs
func (o *DofMap) Ndofs() int { return o.Nverts * o.Ncomp }

// Eq returns the dof of component comp of vertex vid
func (o *DofMap) Eq(vid, comp int) int { return vid*o.Ncomp + comp }

// Vert returns the vertex and component of a dof
func (o *DofMap) Vert(eq int) (vid, comp int) { return eq / o.Ncomp, eq % o.Ncomp }

// CellEqs returns the dofs of a cell ordered as m*Ncomp + comp where m is the local vertex
func (o *DofMap) CellEqs(c *inp.Cell) (eqs []int) {
	eqs = make([]int, len(c.Verts)*o.Ncomp)
	for m, v := range c.Verts {
		for k := 0; k < o.Ncomp; k++ {
			eqs[m*o.Ncomp+k] = o.Eq(v, k)
		}
	}
	return
}

// Field returns a view of components [first, first+n) of vec
func (o *DofMap) Field(vec []float64, first, n int) NodalField {
	return NodalField{Dofs: o, Vec: vec, First: first, N: n}
}

// NodalField is a view of some components of a dof vector
type NodalField struct {
	Dofs  *DofMap   // dof numbering
	Vec   []float64 // dof vector
	First int       // first component
	N     int       // number of components
}

// Ncomp returns the number of components
func (o NodalField) Ncomp() int { return o.N }

// Value returns component comp at vertex vid
func (o NodalField) Value(vid, comp int) float64 {
	return o.Vec[o.Dofs.Eq(vid, o.First+comp)]
}
