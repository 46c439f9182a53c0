// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	chk.Verbose = true
}

// coordinates of cells used in tests [ndim][nverts]
var testcoords = map[string][][]float64{
	"tri3": {
		{0, 2, 0.5},
		{0, 0.2, 1.5},
	},
	"qua4": {
		{10, 13, 13.5, 10},
		{8, 8, 9.2, 9},
	},
	"tet4": {
		{0, 1, 0, 0.1},
		{0, 0, 1, 0.2},
		{0, 0, 0, 1},
	},
	"hex8": {
		{0, 2, 2, 0, 0, 2, 2, 0},
		{0, 0, 1, 1, 0, 0, 1, 1},
		{0, 0, 0, 0, 3, 3, 3, 3},
	},
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. shape functions and derivatives")

	r := []float64{0.1, 0.2, 0.15}
	for _, name := range []string{"tri3", "qua4", "tet4", "hex8"} {
		shape := Get(name, 0)
		io.Pfyel("--------------------------------- %-6s---------------------------------\n", name)
		CheckShape(tst, shape, 1e-15, chk.Verbose)
		CheckShapeFace(tst, shape, testcoords[name], 1e-15, chk.Verbose)
		CheckDSdR(tst, shape, r, 1e-8, chk.Verbose)
		io.PfGreen("OK\n")
	}
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02. Jacobian and dSdx")

	xmat := [][]float64{
		{10, 13, 13, 10},
		{8, 8, 9, 9},
	}
	dx, dy := 3.0, 1.0
	dr, ds := 2.0, 2.0
	r := []float64{0, 0, 0}
	shape := Get("qua4", 1)
	err := shape.CalcAtIp(xmat, r, true)
	if err != nil {
		tst.Errorf("CalcAtIp failed:\n%v", err)
		return
	}
	io.Pforan("J = %v\n", shape.J)
	chk.Float64(tst, "J", 1e-15, shape.J, (dx/dr)*(dy/ds))

	CheckDSdx(tst, shape, xmat, []float64{12.0, 8.5}, 1e-7, chk.Verbose)
	CheckDSdx(tst, Get("qua4", 1), testcoords["qua4"], []float64{11.0, 8.7}, 1e-7, chk.Verbose)
	CheckDSdx(tst, Get("hex8", 1), testcoords["hex8"], []float64{0.5, 0.3, 2.0}, 1e-7, chk.Verbose)
	CheckDSdx(tst, Get("tri3", 1), testcoords["tri3"], []float64{0.7, 0.5}, 1e-7, chk.Verbose)
}

func Test_shape03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape03. face normals point outwards")

	for _, name := range []string{"tri3", "qua4", "tet4", "hex8"} {
		shape := Get(name, 1)
		x := testcoords[name]
		c := shape.Center(x)
		ipsf, err := GetFaceIps(name)
		if err != nil {
			tst.Errorf("GetFaceIps failed:\n%v", err)
			return
		}
		for idxface := range shape.FaceLocalVerts {
			for _, ipf := range ipsf {
				err = shape.CalcAtFaceIp(x, ipf, idxface)
				if err != nil {
					tst.Errorf("CalcAtFaceIp failed:\n%v", err)
					return
				}
				y := shape.FaceIpRealCoords(x, ipf, idxface)
				dot := 0.0
				for i := range y {
					dot += (y[i] - c[i]) * shape.Fnvec[i]
				}
				if dot <= 0 {
					tst.Errorf("%s: normal of face %d points inwards\n", name, idxface)
					return
				}
			}
		}
	}

	// face area of qua4 edges
	shape := Get("qua4", 1)
	xmat := [][]float64{
		{0, 2, 2, 0},
		{0, 0, 1, 1},
	}
	ipsf, _ := GetFaceIps("qua4")
	length := 0.0
	for _, ipf := range ipsf {
		shape.CalcAtFaceIp(xmat, ipf, 1)
		n, jf := shape.UnitNormal()
		chk.Array(tst, "n", 1e-15, n, []float64{1, 0})
		length += jf * ipf[3]
	}
	chk.Float64(tst, "length of right edge", 1e-15, length, 1)
}

func Test_shape04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape04. integration points")

	for _, name := range []string{"lin2", "tri3", "qua4", "tet4", "hex8"} {
		ips, err := GetIps(name, 0)
		if err != nil {
			tst.Errorf("GetIps failed:\n%v", err)
			return
		}
		vol := 0.0
		for _, ip := range ips {
			vol += ip[3]
		}
		correct := map[string]float64{"lin2": 2, "tri3": 0.5, "qua4": 4, "tet4": 1.0 / 6.0, "hex8": 8}[name]
		chk.Float64(tst, name+": volume of reference cell", 1e-15, vol, correct)
	}

	_, err := GetIps("qua9", 0)
	if err == nil {
		tst.Errorf("GetIps should have failed for unknown geometry\n")
	}
	_, err = GetIps("qua4", 7)
	if err == nil {
		tst.Errorf("GetIps should have failed for unknown number of points\n")
	}
}

func Test_invmap01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("invmap01. inverse mapping and inside checks")

	r := make([]float64, 3)
	for _, name := range []string{"tri3", "qua4", "tet4", "hex8"} {
		shape := Get(name, 1)
		x := testcoords[name]
		ips, _ := GetIps(name, 0)
		for _, ip := range ips {
			y := shape.IpRealCoords(x, ip)
			err := shape.InvMap(r, y, x)
			if err != nil {
				tst.Errorf("InvMap failed:\n%v", err)
				return
			}
			chk.Array(tst, name+": r", 1e-10, r[:shape.Gndim], ip[:shape.Gndim])
			if !shape.IsInside(r, y, x) {
				tst.Errorf("%s: integration point %v should be inside\n", name, ip)
			}
		}

		// outside point is not clamped
		y := shape.Center(x)
		y[0] += 100
		if shape.IsInside(r, y, x) {
			tst.Errorf("%s: point %v should be outside\n", name, y)
		}
	}

	// no clamping: natural coordinates beyond the reference cell are reported
	shape := Get("qua4", 1)
	xmat := [][]float64{
		{0, 2, 2, 0},
		{0, 0, 2, 2},
	}
	err := shape.InvMap(r, []float64{2.5, 1}, xmat)
	if err != nil {
		tst.Errorf("InvMap failed:\n%v", err)
		return
	}
	chk.Float64(tst, "r", 1e-12, r[0], 1.5)
	chk.Float64(tst, "dist", 1e-12, shape.CellBryDist(r), -0.5)
	if math.Abs(r[1]) > 1e-12 {
		tst.Errorf("s should be zero\n")
	}
}

func Test_extrap01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("extrap01. extrapolation from integration points")

	for _, name := range []string{"tri3", "qua4", "tet4", "hex8"} {
		shape := Get(name, 1)
		ips, _ := GetIps(name, 0)
		E := make([][]float64, shape.Nverts)
		for i := range E {
			E[i] = make([]float64, len(ips))
		}
		err := shape.Extrapolator(E, ips)
		if err != nil {
			tst.Errorf("Extrapolator failed:\n%v", err)
			return
		}

		// linear field in natural coordinates is reproduced at vertices
		vals := make([]float64, len(ips))
		for k, ip := range ips {
			vals[k] = 1 + 2*ip[0] - ip[1]
		}
		for m := 0; m < shape.Nverts; m++ {
			res := 0.0
			for k := range ips {
				res += E[m][k] * vals[k]
			}
			chk.Float64(tst, name+": extrapolated", 1e-12, res, 1+2*shape.NatCoords[0][m]-shape.NatCoords[1][m])
		}
	}
}
