// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/Jie-Cheng/OpenIFEM/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// constants
const Ztol = 1e-7

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type (string)
	Part  int    // partition id
	Level int    // refinement level; 0 means coarse cell
	Verts []int  // vertices
	FTags []int  // edge (2D) or face (3D) tags

	// neighbours
	Neighs []int // neighbours; e.g. [3, 7, -1, 11] => side:cid => 0:3, 1:7, 2:-1(no cell), 3:11

	// derived
	Shp *shp.Shape `json:"-"` // shape structure
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Gen        int     // generation; incremented whenever the mesh is rebuilt
	Moves      int     // incremented whenever vertices are moved
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert      // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId // face tag => set of cells
	FaceTag2verts map[int][]int        // face tag => vertices on tagged face
	Ctype2cells   map[string][]*Cell   // cell type => set of cells
	Part2cells    map[int][]*Cell      // partition number => set of cells
	Vert2cells    [][]int              // vertex id => cells sharing this vertex
	Bryfaces      []CellFaceId         // faces without neighbours

	// derived: refinement
	Hanging map[int][]int // hanging vertex => vertices supporting it (only for refined meshes)
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(dir, fn string, goroutineId int) (o *Mesh, err error) {

	// new mesh
	o = new(Mesh)

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := os.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", o.FnamePath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// derived data
	err = o.Init(goroutineId)
	return
}

// Init computes derived data such as limits, maps, shapes and neighbours
func (o *Mesh) Init(goroutineId int) (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("at least 2 vertices are required in mesh\n")
	}
	if len(o.Cells) < 1 {
		return chk.Err("at least 1 cell is required in mesh\n")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin = o.Verts[0].C[0]
	o.Ymin = o.Verts[0].C[1]
	if len(o.Verts[0].C) > 2 {
		o.Zmin = o.Verts[0].C[2]
	}
	o.Xmax = o.Xmin
	o.Ymax = o.Ymin
	o.Zmax = o.Zmin
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d\n", v.Id, i)
		}

		// ndim
		nd := len(v.C)
		if nd < 2 || nd > 4 {
			return chk.Err("number of space dimensions must be 2, 3 or 4 (NURBS). %d is invalid\n", nd)
		}
		if nd == 3 {
			if math.Abs(v.C[2]) > Ztol {
				o.Ndim = 3
			}
		}

		// tags
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}

		// limits
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
		if nd > 2 {
			o.Zmin = utl.Min(o.Zmin, v.C[2])
			o.Zmax = utl.Max(o.Zmax, v.C[2])
		}
	}

	// derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	o.Ctype2cells = make(map[string][]*Cell)
	o.Part2cells = make(map[int][]*Cell)
	o.Vert2cells = make([][]int, len(o.Verts))
	for i, c := range o.Cells {

		// check id and tag
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d\n", c.Id, i)
		}
		if c.Tag >= 0 {
			return chk.Err("cells tags must be negative. %d is incorrect\n", c.Tag)
		}

		// get shape structure
		c.Shp = shp.Get(c.Type, goroutineId)
		if c.Shp == nil {
			return chk.Err("cannot find shape type == %q\n", c.Type)
		}
		if c.Shp.Gndim != o.Ndim {
			return chk.Err("cell %d of type %q cannot be used in a %dD mesh\n", c.Id, c.Type, o.Ndim)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d of type %q must have %d vertices. %d is incorrect\n", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}
		nfaces := len(c.Shp.FaceLocalVerts)
		if len(c.FTags) == 0 {
			c.FTags = make([]int, nfaces)
		}

		// face tags
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		for j, ftag := range c.FTags {
			if ftag < 0 {
				o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, j})
				for _, l := range c.Shp.FaceLocalVerts[j] {
					o.FaceTag2verts[ftag] = append(o.FaceTag2verts[ftag], c.Verts[l])
				}
			}
		}

		// cell type => cells
		o.Ctype2cells[c.Type] = append(o.Ctype2cells[c.Type], c)

		// partition => cells
		o.Part2cells[c.Part] = append(o.Part2cells[c.Part], c)

		// vertex => cells
		for _, v := range c.Verts {
			o.Vert2cells[v] = append(o.Vert2cells[v], c.Id)
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = uniqueInts(verts)
	}

	// neighbours and boundary faces
	o.findNeighbours()
	return
}

// CellCoords returns the coordinates matrix of cell [ndim][nverts]
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = utl.Alloc(o.Ndim, len(c.Verts))
	o.ExtractCoords(x, c)
	return
}

// ExtractCoords fills the pre-allocated coordinates matrix x[ndim][nverts] of cell
func (o *Mesh) ExtractCoords(x [][]float64, c *Cell) {
	for j, v := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			x[i][j] = o.Verts[v].C[i]
		}
	}
}

// CellCenter returns the centre of cell computed as the average of its vertices
func (o *Mesh) CellCenter(c *Cell) []float64 {
	xc := make([]float64, o.Ndim)
	for _, v := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			xc[i] += o.Verts[v].C[i]
		}
	}
	for i := 0; i < o.Ndim; i++ {
		xc[i] /= float64(len(c.Verts))
	}
	return xc
}

// FaceCenter returns the centre of face idxface of cell
func (o *Mesh) FaceCenter(c *Cell, idxface int) []float64 {
	lverts := c.Shp.FaceLocalVerts[idxface]
	xf := make([]float64, o.Ndim)
	for _, l := range lverts {
		for i := 0; i < o.Ndim; i++ {
			xf[i] += o.Verts[c.Verts[l]].C[i]
		}
	}
	for i := 0; i < o.Ndim; i++ {
		xf[i] /= float64(len(lverts))
	}
	return xf
}

// Limits computes the current bounding box of vertices: box = [xmin, xmax, ymin, ymax, (zmin, zmax)]
func (o *Mesh) Limits() (box []float64) {
	box = make([]float64, 2*o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		box[2*i] = math.MaxFloat64
		box[2*i+1] = -math.MaxFloat64
	}
	for _, v := range o.Verts {
		for i := 0; i < o.Ndim; i++ {
			box[2*i] = utl.Min(box[2*i], v.C[i])
			box[2*i+1] = utl.Max(box[2*i+1], v.C[i])
		}
	}
	return
}

// IsCorner tells whether vertex vid belongs to any cell as a corner (all vertices of linear cells are corners)
func (o *Mesh) IsCorner(vid int) bool {
	return len(o.Vert2cells[vid]) > 0
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"part\":%d, \"verts\":[", o.Id, o.Tag, o.Type, o.Part)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// SideKey identifies an edge or face by its sorted vertices; unused entries are -1
type SideKey [4]int

// NewSideKey returns the key of a side with the given vertices
func NewSideKey(verts []int) (key SideKey) {
	if len(verts) > 4 {
		chk.Panic("cannot build key of side with %d vertices", len(verts))
	}
	s := append([]int{}, verts...)
	sort.Ints(s)
	for i := range key {
		key[i] = -1
	}
	copy(key[:], s)
	return
}

// findNeighbours sets Neighs by matching faces; unmatched faces are resolved geometrically so that
// faces with hanging vertices still point to the (coarser or finer) cell on the other side
func (o *Mesh) findNeighbours() {

	// faces with the same vertices
	type owner struct{ cid, fid int }
	faces := make(map[SideKey][]owner)
	for _, c := range o.Cells {
		c.Neighs = make([]int, len(c.Shp.FaceLocalVerts))
		for j, lverts := range c.Shp.FaceLocalVerts {
			c.Neighs[j] = -1
			verts := make([]int, len(lverts))
			for k, l := range lverts {
				verts[k] = c.Verts[l]
			}
			key := NewSideKey(verts)
			faces[key] = append(faces[key], owner{c.Id, j})
		}
	}
	for _, owners := range faces {
		if len(owners) == 2 {
			a, b := owners[0], owners[1]
			o.Cells[a.cid].Neighs[a.fid] = b.cid
			o.Cells[b.cid].Neighs[b.fid] = a.cid
		}
	}

	// unmatched faces
	o.Bryfaces = o.Bryfaces[:0]
	r := make([]float64, 3)
	for _, c := range o.Cells {
		xc := o.CellCenter(c)
		for j, lverts := range c.Shp.FaceLocalVerts {
			if c.Neighs[j] >= 0 {
				continue
			}
			if len(o.Hanging) > 0 {
				xf := o.FaceCenter(c, j)
				y := make([]float64, o.Ndim)
				for i := 0; i < o.Ndim; i++ {
					y[i] = xf[i] + 1e-3*(xf[i]-xc[i])
				}
				for _, l := range lverts {
					for _, nid := range o.Vert2cells[c.Verts[l]] {
						if nid == c.Id || c.Neighs[j] >= 0 {
							continue
						}
						nc := o.Cells[nid]
						if nc.Shp.IsInside(r, y, o.CellCoords(nc)) {
							c.Neighs[j] = nid
						}
					}
				}
			}
			if c.Neighs[j] < 0 {
				o.Bryfaces = append(o.Bryfaces, CellFaceId{c, j})
			}
		}
	}
}

// uniqueInts returns the sorted unique values of a
func uniqueInts(a []int) []int {
	s := append([]int{}, a...)
	sort.Ints(s)
	res := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			res = append(res, v)
		}
	}
	return res
}
