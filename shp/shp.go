// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "qua4"
	Func           ShpFunc     // shape/derivs function callback function
	FaceFunc       ShpFunc     // face shape/derivs function callback function
	BasicType      string      // geometry of basic element; e.g. "qua4" => "qua4"
	FaceType       string      // geometry of face; e.g. "qua4" => "lin2"
	Gndim          int         // geometry of shape; e.g. "tri3" => gnd == 2
	Nverts         int         // number of vertices in cell; e.g. "qua4" => 4
	VtkCode        int         // VTK code
	FaceNvertsMax  int         // max number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: face
	Sf     []float64   // [FaceNvertsMax] shape functions values
	Fnvec  []float64   // [gndim] face normal vector multiplied by Jf
	DSfdRf [][]float64 // [FaceNvertsMax][gndim-1] derivatives of Sf w.r.t natural coordinates
	DxfdRf [][]float64 // [gndim][gndim-1] derivatives of real coordinates w.r.t natural coordinates
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	p := Shape{
		Type:          o.Type,
		Func:          o.Func,
		FaceFunc:      o.FaceFunc,
		BasicType:     o.BasicType,
		FaceType:      o.FaceType,
		Gndim:         o.Gndim,
		Nverts:        o.Nverts,
		VtkCode:       o.VtkCode,
		FaceNvertsMax: o.FaceNvertsMax,
	}
	p.FaceLocalVerts = make([][]int, len(o.FaceLocalVerts))
	for i, lverts := range o.FaceLocalVerts {
		p.FaceLocalVerts[i] = append([]int{}, lverts...)
	}
	p.NatCoords = utl.Alloc(len(o.NatCoords), o.Nverts)
	for i := range o.NatCoords {
		copy(p.NatCoords[i], o.NatCoords[i])
	}
	p.init_scratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// New returns a new copy of an existent Shape structure; it panics on unknown types
func New(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		chk.Panic("cannot find shape type = %q", geoType)
	}
	return s.GetCopy()
}

// GetFaceType returns the geometry of faces of a given cell type
func GetFaceType(geoType string) string {
	s, ok := factory[geoType]
	if !ok {
		return ""
	}
	return s.FaceType
}

// GetFaceLocalVerts returns the local vertices of face 'idxface'
func GetFaceLocalVerts(geoType string, idxface int) []int {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s.FaceLocalVerts[idxface]
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// FaceIpRealCoords returns the real coordinates (y) of an integration point @ face
func (o *Shape) FaceIpRealCoords(x [][]float64, ipf Ipoint, idxface int) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.FaceFunc(o.Sf, o.DSfdRf, ipf, false)
	for i := 0; i < ndim; i++ {
		for k, n := range o.FaceLocalVerts[idxface] {
			y[i] += o.Sf[k] * x[i][n]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	o.calcDxdR(x)

	// dRdx := inv(dxdR)
	o.J, err = matInv(o.DRdx, o.DxdR, MINDET)
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// CalcAtR calculates volume data such as S and G at natural coordinate r
func (o *Shape) CalcAtR(x [][]float64, R []float64, derivs bool) (err error) {
	return o.CalcAtIp(x, R, derivs)
}

// CalcAtFaceIp calculates face data such as Sf and Fnvec
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ipf             -- local/natural coordinates of face
//   idxface         -- local index of face
//  Output:
//   Sf and Fnvec
//  Note: Fnvec points outwards and its norm is the face Jacobian
func (o *Shape) CalcAtFaceIp(x [][]float64, ipf Ipoint, idxface int) (err error) {

	// Sf and dSfdR
	o.FaceFunc(o.Sf, o.DSfdRf, ipf, true)

	// dxfdRf := sum_n x * dSfdRf   =>  dxf_i/dRf_j := sum_n xf^n_i * dSf^n/dRf_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim-1; j++ {
			o.DxfdRf[i][j] = 0.0
			for k, n := range o.FaceLocalVerts[idxface] {
				o.DxfdRf[i][j] += x[i][n] * o.DSfdRf[k][j]
			}
		}
	}

	// face normal vector
	if o.Gndim == 2 {
		o.Fnvec[0] = o.DxfdRf[1][0]
		o.Fnvec[1] = -o.DxfdRf[0][0]
		return
	}
	o.Fnvec[0] = o.DxfdRf[1][0]*o.DxfdRf[2][1] - o.DxfdRf[2][0]*o.DxfdRf[1][1]
	o.Fnvec[1] = o.DxfdRf[2][0]*o.DxfdRf[0][1] - o.DxfdRf[0][0]*o.DxfdRf[2][1]
	o.Fnvec[2] = o.DxfdRf[0][0]*o.DxfdRf[1][1] - o.DxfdRf[1][0]*o.DxfdRf[0][1]
	return
}

// UnitNormal returns the unit outward normal and the face Jacobian computed by CalcAtFaceIp
func (o *Shape) UnitNormal() (n []float64, jf float64) {
	for _, v := range o.Fnvec {
		jf += v * v
	}
	jf = math.Sqrt(jf)
	n = make([]float64, len(o.Fnvec))
	if jf > 0 {
		for i, v := range o.Fnvec {
			n[i] = v / jf
		}
	}
	return
}

// Center returns the real coordinates of the centre of the cell
func (o *Shape) Center(x [][]float64) []float64 {
	c := make([]float64, len(x))
	for i := range x {
		for m := 0; m < o.Nverts; m++ {
			c[i] += x[i][m]
		}
		c[i] /= float64(o.Nverts)
	}
	return c
}

// calcDxdR computes DxdR from the current DSdR
func (o *Shape) calcDxdR(x [][]float64) {
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {

	// volume data
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)

	// face data
	o.Sf = make([]float64, o.FaceNvertsMax)
	o.DSfdRf = utl.Alloc(o.FaceNvertsMax, o.Gndim-1)
	o.DxfdRf = utl.Alloc(o.Gndim, o.Gndim-1)
	o.Fnvec = make([]float64, o.Gndim)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// matInv computes ai := inv(a) and returns the determinant of a
func matInv(ai, a [][]float64, tol float64) (det float64, err error) {
	n := len(a)
	A := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, j, a[i][j])
		}
	}
	det = mat.Det(A)
	if math.Abs(det) < tol {
		return det, chk.Err("cannot invert %dx%d matrix: determinant %g is smaller than %g", n, n, det, tol)
	}
	var Ai mat.Dense
	err = Ai.Inverse(A)
	if err != nil {
		return det, chk.Err("cannot invert %dx%d matrix:\n%v", n, n, err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ai[i][j] = Ai.At(i, j)
		}
	}
	return
}
