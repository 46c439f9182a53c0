// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/locator"
	"github.com/cpmech/gosl/chk"
)

// SolutionTransfer transfers nodal solutions between meshes covering the same region
//  Note: Prepare must be called before the mesh changes and Interpolate afterwards
type SolutionTransfer struct {
	MaxHops int // max number of steps of neighbour walks
	Nnear   int // number of nearest cells tried before brute force

	// prepared data
	msh  *inp.Mesh // old mesh
	dofs *DofMap   // old dofs
	vec  []float64 // copy of old solution
}

// Prepare stores the old mesh and a copy of the solution defined on it
func (o *SolutionTransfer) Prepare(msh *inp.Mesh, dofs *DofMap, vec []float64) {
	o.msh = msh
	o.dofs = dofs
	o.vec = append([]float64{}, vec...)
}

// Interpolate computes the solution at the vertices of the new mesh
func (o *SolutionTransfer) Interpolate(msh *inp.Mesh, dofs *DofMap) (vec []float64, err error) {
	if o.msh == nil {
		return nil, chk.Err("solution transfer must be prepared before interpolation\n")
	}
	if msh == o.msh {
		return nil, chk.Err("solution transfer requires a new mesh object\n")
	}
	if dofs.Ncomp != o.dofs.Ncomp {
		return nil, chk.Err("number of components changed from %d to %d\n", o.dofs.Ncomp, dofs.Ncomp)
	}
	maxHops, nnear := o.MaxHops, o.Nnear
	if maxHops < 1 {
		maxHops = 20
	}
	if nnear < 1 {
		nnear = 8
	}
	loc := locator.New(o.msh, maxHops, nnear)
	itp := locator.NewInterpolator(o.msh)
	f := o.dofs.Field(o.vec, 0, o.dofs.Ncomp)
	vec = make([]float64, dofs.Ndofs())
	var hint locator.Hint
	for _, v := range msh.Verts {
		cid, found := loc.Search(v.C, &hint)
		if !found {
			return nil, chk.Err("vertex %d at %v of new mesh is not inside old mesh\n", v.Id, v.C)
		}
		val, err := itp.PointValue(f, v.C, cid)
		if err != nil {
			return nil, chk.Err("cannot interpolate at vertex %d:\n%v", v.Id, err)
		}
		for k, x := range val {
			vec[dofs.Eq(v.Id, k)] = x
		}
	}
	o.msh, o.dofs, o.vec = nil, nil, nil
	return
}
