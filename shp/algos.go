// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
	INSIDE_TOL = 1.0e-8  // tolerance on natural coordinates for inside checks
)

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[ndim]         -- are the 2D/3D point coordinates
//   x[ndim][nverts] -- coordinates matrix of solid element
//  Output:
//   r[3] -- are the natural coordinates of given point
//  Note: r is not clamped to the reference cell; an error is returned if Newton's method does
//        not converge
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	var δRnorm float64
	e := make([]float64, o.Gndim)  // residual
	δr := make([]float64, o.Gndim) // corrector
	for i := range r {             // first trial
		r[i] = 0
	}
	if o.BasicType == "tri3" || o.BasicType == "tet4" {
		for i := 0; i < o.Gndim; i++ {
			r[i] = 1.0 / float64(o.Nverts)
		}
	}
	for it := 0; it < INVMAP_NIT; it++ {

		// shape functions and derivatives
		o.Func(o.S, o.DSdR, r, true)

		// residual: e = y - x * S
		for i := 0; i < o.Gndim; i++ {
			e[i] = y[i]
			for j := 0; j < o.Nverts; j++ {
				e[i] -= x[i][j] * o.S[j]
			}
		}

		// Jmat == dxdR = x * dSdR; Jimat == dRdx = Jmat.inverse();
		o.calcDxdR(x)
		o.J, err = matInv(o.DRdx, o.DxdR, MINDET)
		if err != nil {
			return
		}

		// corrector: dR = Jimat * e
		δRnorm = 0.0
		for i := 0; i < o.Gndim; i++ {
			δr[i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				δr[i] += o.DRdx[i][j] * e[j]
			}
		}
		for i := 0; i < o.Gndim; i++ {
			r[i] += δr[i]
			δRnorm += δr[i] * δr[i]
		}

		// converged?
		if math.Sqrt(δRnorm) < INVMAP_TOL {
			return
		}
	}
	return chk.Err("inverse mapping of %v in %s cell did not converge after %d iterations", y, o.Type, INVMAP_NIT)
}

// CellBryDist returns the shortest distance between R and the boundary of the cell in natural coordinates
//  Note: negative values mean that R is outside the reference cell
func (o *Shape) CellBryDist(R []float64) float64 {
	r, s, t := R[0], R[1], 0.0
	if len(R) > 2 {
		t = R[2]
	}
	switch o.BasicType {
	case "tri3":
		return utl.Min(r, utl.Min(s, 1.0-r-s))
	case "qua4":
		return utl.Min(1.0-math.Abs(r), 1.0-math.Abs(s))
	case "hex8":
		return utl.Min(1.0-math.Abs(r), utl.Min(1.0-math.Abs(s), 1.0-math.Abs(t)))
	case "tet4":
		return utl.Min(r, utl.Min(s, utl.Min(t, 1.0-r-s-t)))
	}
	chk.Panic("cannot handle BasicType=%q yet", o.BasicType)
	return 0 // must not reach this point
}

// IsInside tells whether the real point y lies inside the cell with coordinates x
//  Note: r[3] is used as workspace and holds the natural coordinates on exit
func (o *Shape) IsInside(r, y []float64, x [][]float64) bool {
	if o.InvMap(r, y, x) != nil {
		return false
	}
	return o.CellBryDist(r) >= -INSIDE_TOL
}

// GetShapeMatAtIps returns a matrix formed by computing the shape functions
// at all integration points [nip][nverts]
func (o *Shape) GetShapeMatAtIps(ips []Ipoint) (N [][]float64) {
	nip := len(ips)
	N = utl.Alloc(nip, o.Nverts)
	for i := 0; i < nip; i++ {
		o.Func(o.S, o.DSdR, ips[i], false)
		for j := 0; j < o.Nverts; j++ {
			N[i][j] = o.S[j]
		}
	}
	return
}

// Extrapolator computes the extrapolation matrix for this Shape with a combination of integration points 'ips'
//  Note: E[nverts][nip] must be pre-allocated
//        nip must be greater than or equal to nverts; least squares are used when nip > nverts
func (o *Shape) Extrapolator(E [][]float64, ips []Ipoint) (err error) {
	nip := len(ips)
	if nip < o.Nverts {
		return chk.Err("extrapolation from %d integration points to %d vertices is not available", nip, o.Nverts)
	}
	N := mat.NewDense(nip, o.Nverts, nil)
	for i, row := range o.GetShapeMatAtIps(ips) {
		N.SetRow(i, row)
	}
	var Ni mat.Dense
	if nip == o.Nverts {
		err = Ni.Inverse(N)
	} else {
		I := mat.NewDense(nip, nip, nil)
		for i := 0; i < nip; i++ {
			I.Set(i, i, 1)
		}
		err = Ni.Solve(N, I)
	}
	if err != nil {
		return chk.Err("cannot compute extrapolation matrix of %s:\n%v", o.Type, err)
	}
	for i := 0; i < o.Nverts; i++ {
		for j := 0; j < nip; j++ {
			E[i][j] = Ni.At(i, j)
		}
	}
	return
}
