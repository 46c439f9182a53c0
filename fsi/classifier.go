// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsi

import (
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/utl"
)

// Classifier tells whether points lie inside the solid
//  Notes:
//   1) 2D: crossing number of a ray in the +x direction against the boundary segments of the solid
//   2) 3D: points are tested against all cells of the solid
//   3) vertex coordinates are read when queried; thus the displaced configuration is used if the
//      mesh is displaced
type Classifier struct {
	Msh *inp.Mesh // solid mesh

	// instrumentation
	Rejected int // number of queries rejected by the bounding box

	// auxiliary
	box  []float64        // bounding box [xmin, xmax, ymin, ymax, zmin, zmax]
	segs []inp.CellFaceId // boundary faces (2D)
	r    []float64        // natural coordinates
}

// NewClassifier returns a new Classifier; the boundary faces are collected once
func NewClassifier(msh *inp.Mesh) (o *Classifier) {
	o = new(Classifier)
	o.Msh = msh
	o.r = make([]float64, 3)
	if msh.Ndim == 2 {
		for _, c := range msh.Cells {
			for f, nb := range c.Neighs {
				if nb < 0 {
					o.segs = append(o.segs, inp.CellFaceId{C: c, Fid: f})
				}
			}
		}
	}
	o.UpdateBox()
	return
}

// UpdateBox computes the bounding box from the present vertex coordinates
func (o *Classifier) UpdateBox() {
	nd := o.Msh.Ndim
	o.box = make([]float64, 2*nd)
	x0 := o.Msh.Verts[0].C
	for i := 0; i < nd; i++ {
		o.box[2*i], o.box[2*i+1] = x0[i], x0[i]
	}
	for _, v := range o.Msh.Verts {
		for i := 0; i < nd; i++ {
			o.box[2*i] = utl.Min(o.box[2*i], v.C[i])
			o.box[2*i+1] = utl.Max(o.box[2*i+1], v.C[i])
		}
	}
}

// Box returns the bounding box [xmin, xmax, ymin, ymax, zmin, zmax]
func (o *Classifier) Box() []float64 { return o.box }

// IsInside tells whether point x is inside the solid or on its boundary
func (o *Classifier) IsInside(x []float64) bool {
	for i := 0; i < o.Msh.Ndim; i++ {
		if x[i] < o.box[2*i] || x[i] > o.box[2*i+1] {
			o.Rejected++
			return false
		}
	}
	if o.Msh.Ndim == 2 {
		return o.crossing(x)
	}
	for _, c := range o.Msh.Cells {
		if c.Shp.IsInside(o.r, x, o.Msh.CellCoords(c)) {
			return true
		}
	}
	return false
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// crossing computes the crossing number of the ray y = x[1] for x' > x[0]
//  Notes:
//   1) a segment with one end at the height of x counts as half a crossing, unless x is at the
//      bottom or top of the bounding box
//   2) points on segments and at vertices are inside
//   3) comparisons are exact
func (o *Classifier) crossing(x []float64) bool {
	ncross, nhalf := 0, 0
	for _, s := range o.segs {
		lverts := s.C.Shp.FaceLocalVerts[s.Fid]
		p1 := o.Msh.Verts[s.C.Verts[lverts[0]]].C
		p2 := o.Msh.Verts[s.C.Verts[lverts[1]]].C
		dy1, dy2 := p1[1]-x[1], p2[1]-x[1]
		dx1, dx2 := p1[0]-x[0], p2[0]-x[0]
		r1x, r1y := p1[0]-p2[0], p1[1]-p2[1]
		r2x := 0.0
		if r1y != 0 {
			r2x = r1x * (x[1] - p2[1]) / r1y
		}
		xs := r2x + p2[0] // x-coordinate of the intersection with the line y = x[1]

		// segment crosses the ray's line
		if dy1*dy2 < 0 {
			if xs > x[0] {
				ncross++
			} else if xs == x[0] {
				return true
			}
			continue
		}

		// one or both ends at the height of x
		if dy1*dy2 == 0 {
			if dy1 == 0 && dy2 == 0 {
				if dx1*dx2 < 0 {
					return true
				}
				continue
			}
			if xs > x[0] {
				if x[1] != o.box[2] && x[1] != o.box[3] {
					nhalf++
				}
			} else if (p1[0] == x[0] && p1[1] == x[1]) || (p2[0] == x[0] && p2[1] == x[1]) {
				return true
			}
		}
	}
	ncross += nhalf / 2
	return ncross%2 == 1
}
