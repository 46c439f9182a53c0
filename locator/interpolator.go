// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locator

import (
	"errors"

	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/shp"
	"github.com/cpmech/gosl/chk"
)

// ErrNotInCell is returned when a point cannot be mapped inside the reference cell
var ErrNotInCell = errors.New("point not in cell")

// Field defines nodal fields that can be evaluated at points
type Field interface {
	Ncomp() int                  // number of components
	Value(vid, comp int) float64 // value of component comp at vertex vid
}

// Interpolator evaluates nodal fields at points inside located cells
type Interpolator struct {
	Msh *inp.Mesh // mesh

	// auxiliary
	xbuf map[int][][]float64 // coordinates buffers for each number of vertices
	r    []float64           // natural coordinates
}

// NewInterpolator returns a new Interpolator
func NewInterpolator(msh *inp.Mesh) (o *Interpolator) {
	o = new(Interpolator)
	o.Msh = msh
	o.xbuf = make(map[int][][]float64)
	o.r = make([]float64, 3)
	return
}

// PointValue computes the components of field f at point y inside cell cid
func (o *Interpolator) PointValue(f Field, y []float64, cid int) (val []float64, err error) {
	c, err := o.calc(y, cid, false)
	if err != nil {
		return
	}
	val = make([]float64, f.Ncomp())
	for k := range val {
		for m, v := range c.Verts {
			val[k] += c.Shp.S[m] * f.Value(v, k)
		}
	}
	return
}

// PointGradient computes the gradient of field f at point y inside cell cid
//  Output:
//   grad -- grad[k][j] = ∂f_k/∂x_j  [ncomp][ndim]
func (o *Interpolator) PointGradient(f Field, y []float64, cid int) (grad [][]float64, err error) {
	c, err := o.calc(y, cid, true)
	if err != nil {
		return
	}
	ndim := o.Msh.Ndim
	grad = make([][]float64, f.Ncomp())
	for k := range grad {
		grad[k] = make([]float64, ndim)
		for m, v := range c.Verts {
			fv := f.Value(v, k)
			for j := 0; j < ndim; j++ {
				grad[k][j] += c.Shp.G[m][j] * fv
			}
		}
	}
	return
}

// calc maps y to natural coordinates of cell cid and computes shape functions there
func (o *Interpolator) calc(y []float64, cid int, derivs bool) (c *inp.Cell, err error) {
	if cid < 0 || cid >= len(o.Msh.Cells) {
		return nil, chk.Err("%w: cell %d does not exist", ErrNotInCell, cid)
	}
	c = o.Msh.Cells[cid]
	n := len(c.Verts)
	x, ok := o.xbuf[n]
	if !ok {
		x = make([][]float64, o.Msh.Ndim)
		for i := range x {
			x[i] = make([]float64, n)
		}
		o.xbuf[n] = x
	}
	o.Msh.ExtractCoords(x, c)
	if err = c.Shp.InvMap(o.r, y, x); err != nil {
		return nil, chk.Err("%w: inverse mapping in cell %d failed:\n%v", ErrNotInCell, cid, err)
	}
	if dist := c.Shp.CellBryDist(o.r); dist < -shp.INSIDE_TOL {
		return nil, chk.Err("%w: point %v is outside cell %d (distance in natural coordinates = %g)", ErrNotInCell, y, cid, dist)
	}
	if err = c.Shp.CalcAtR(x, o.r, derivs); err != nil {
		return nil, chk.Err("cannot compute shape functions in cell %d:\n%v", cid, err)
	}
	return
}
