// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
)

// tags of faces of generated meshes
const (
	TagXmin = -10 // face at x == xmin
	TagXmax = -11 // face at x == xmax
	TagYmin = -12 // face at y == ymin
	TagYmax = -13 // face at y == ymax
	TagZmin = -14 // face at z == zmin
	TagZmax = -15 // face at z == zmax
)

// GenData holds data for generating structured meshes
type GenData struct {
	Type string    `json:"type"` // "qua4" or "hex8"
	Xmin []float64 `json:"xmin"` // min coordinates [ndim]
	Xmax []float64 `json:"xmax"` // max coordinates [ndim]
	Ndiv []int     `json:"ndiv"` // number of divisions along each direction [ndim]
	Ctag int       `json:"ctag"` // tag of cells; default = -1
}

// GenMesh generates a structured mesh
func GenMesh(gen *GenData, goroutineId int) (o *Mesh, err error) {
	ctag := gen.Ctag
	if ctag == 0 {
		ctag = -1
	}
	switch gen.Type {
	case "qua4":
		if len(gen.Xmin) != 2 || len(gen.Xmax) != 2 || len(gen.Ndiv) != 2 {
			return nil, chk.Err("qua4 mesh generation requires 2 values for xmin, xmax and ndiv\n")
		}
		o = GenQuads(gen.Xmin[0], gen.Xmin[1], gen.Xmax[0], gen.Xmax[1], gen.Ndiv[0], gen.Ndiv[1], ctag)
	case "hex8":
		if len(gen.Xmin) != 3 || len(gen.Xmax) != 3 || len(gen.Ndiv) != 3 {
			return nil, chk.Err("hex8 mesh generation requires 3 values for xmin, xmax and ndiv\n")
		}
		o = GenHexes(gen.Xmin, gen.Xmax, gen.Ndiv, ctag)
	default:
		return nil, chk.Err("cannot generate mesh of type %q\n", gen.Type)
	}
	err = o.Init(goroutineId)
	return
}

// GenQuads generates a structured mesh of qua4 cells (derived data is not computed; call Init)
//
//   -13 (ymax)
//    +--------+
//    |        |
//    |        | -11 (xmax)
//    |        |
//    +--------+
//   -12 (ymin)
//
func GenQuads(xmin, ymin, xmax, ymax float64, nx, ny, ctag int) (o *Mesh) {
	o = new(Mesh)
	dx, dy := (xmax-xmin)/float64(nx), (ymax-ymin)/float64(ny)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			x, y := xmin+float64(i)*dx, ymin+float64(j)*dy
			if i == nx {
				x = xmax
			}
			if j == ny {
				y = ymax
			}
			o.Verts = append(o.Verts, &Vert{Id: len(o.Verts), C: []float64{x, y}})
		}
	}
	vid := func(i, j int) int { return i + j*(nx+1) }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			ftags := make([]int, 4)
			if j == 0 {
				ftags[0] = TagYmin
			}
			if i == nx-1 {
				ftags[1] = TagXmax
			}
			if j == ny-1 {
				ftags[2] = TagYmax
			}
			if i == 0 {
				ftags[3] = TagXmin
			}
			o.Cells = append(o.Cells, &Cell{
				Id:    len(o.Cells),
				Tag:   ctag,
				Type:  "qua4",
				Verts: []int{vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)},
				FTags: ftags,
			})
		}
	}
	return
}

// GenHexes generates a structured mesh of hex8 cells (derived data is not computed; call Init)
func GenHexes(xmin, xmax []float64, ndiv []int, ctag int) (o *Mesh) {
	o = new(Mesh)
	nx, ny, nz := ndiv[0], ndiv[1], ndiv[2]
	d := make([]float64, 3)
	for i := 0; i < 3; i++ {
		d[i] = (xmax[i] - xmin[i]) / float64(ndiv[i])
	}
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				c := []float64{xmin[0] + float64(i)*d[0], xmin[1] + float64(j)*d[1], xmin[2] + float64(k)*d[2]}
				o.Verts = append(o.Verts, &Vert{Id: len(o.Verts), C: c})
			}
		}
	}
	vid := func(i, j, k int) int { return i + j*(nx+1) + k*(nx+1)*(ny+1) }
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				ftags := make([]int, 6)
				if i == 0 {
					ftags[0] = TagXmin
				}
				if i == nx-1 {
					ftags[1] = TagXmax
				}
				if j == 0 {
					ftags[2] = TagYmin
				}
				if j == ny-1 {
					ftags[3] = TagYmax
				}
				if k == 0 {
					ftags[4] = TagZmin
				}
				if k == nz-1 {
					ftags[5] = TagZmax
				}
				o.Cells = append(o.Cells, &Cell{
					Id:   len(o.Cells),
					Tag:  ctag,
					Type: "hex8",
					Verts: []int{
						vid(i, j, k), vid(i+1, j, k), vid(i+1, j+1, k), vid(i, j+1, k),
						vid(i, j, k+1), vid(i+1, j, k+1), vid(i+1, j+1, k+1), vid(i, j+1, k+1),
					},
					FTags: ftags,
				})
			}
		}
	}
	return
}
