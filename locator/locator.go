// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package locator implements point location in meshes and evaluation of nodal fields at points
package locator

import (
	"math"

	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/Jie-Cheng/OpenIFEM/shp"
)

// Hint holds the cell that most recently contained a query point
//  Note: the zero value means "no hint"
type Hint struct {
	Cell int  // cell id
	Gen  int  // generation of mesh when Cell was found
	Ok   bool // hint has been set
}

// Valid tells whether the hint can be used with a mesh of generation gen
func (o Hint) Valid(gen int) bool {
	return o.Ok && o.Gen == gen
}

// Locator finds the cells containing points
type Locator struct {
	Msh     *inp.Mesh // mesh
	MaxHops int       // max number of steps of neighbour walks
	Nnear   int       // number of nearest cells tried before brute force

	// instrumentation
	Steps int // number of cells tested by the last Search
	Total int // number of cells tested by all searches

	// auxiliary
	tree      *CentreTree            // cell centres
	treeGen   int                    // generation of mesh when tree was built
	treeMoves int                    // number of moves of mesh when tree was built
	xbuf      map[int][][]float64    // coordinates buffers for each number of vertices
	dirs      map[string][][]float64 // face directions in natural coordinates for each shape type
	rcs       map[string][]float64   // centroids in natural coordinates for each shape type
	r         []float64              // natural coordinates
}

// New returns a new Locator
func New(msh *inp.Mesh, maxHops, nnear int) (o *Locator) {
	o = new(Locator)
	o.Msh = msh
	o.MaxHops = maxHops
	o.Nnear = nnear
	o.xbuf = make(map[int][][]float64)
	o.dirs = make(map[string][][]float64)
	o.rcs = make(map[string][]float64)
	o.r = make([]float64, 3)
	o.treeGen = -1
	return
}

// Search finds the cell containing point y
//  Input:
//   y    -- point
//   hint -- seed for the search; may be nil. It is updated on success
//  Output:
//   cid   -- cell id
//   found -- false if y is not inside any cell of this mesh
func (o *Locator) Search(y []float64, hint *Hint) (cid int, found bool) {
	o.Steps = 0
	defer func() { o.Total += o.Steps }()

	// neighbour walk
	start := 0
	if hint != nil && hint.Valid(o.Msh.Gen) && hint.Cell < len(o.Msh.Cells) {
		start = hint.Cell
	}
	visited := make(map[int]bool)
	cid = start
	for hop := 0; hop <= o.MaxHops; hop++ {
		visited[cid] = true
		inside, next := o.test(cid, y)
		if inside {
			o.update(hint, cid)
			return cid, true
		}
		if next < 0 || visited[next] {
			break
		}
		cid = next
	}

	// nearest cells
	if o.tree == nil || o.treeGen != o.Msh.Gen || o.treeMoves != o.Msh.Moves || o.tree.Len() != len(o.Msh.Cells) {
		o.buildTree()
	}
	ids, _ := o.tree.Nearest(y, o.Nnear)
	for _, id := range ids {
		if visited[id] {
			continue
		}
		visited[id] = true
		if inside, _ := o.test(id, y); inside {
			o.update(hint, id)
			return id, true
		}
	}

	// brute force
	for _, c := range o.Msh.Cells {
		if visited[c.Id] {
			continue
		}
		if inside, _ := o.test(c.Id, y); inside {
			o.update(hint, c.Id)
			return c.Id, true
		}
	}
	return -1, false
}

// Contains tells whether cell cid contains point y
func (o *Locator) Contains(cid int, y []float64) bool {
	inside, _ := o.test(cid, y)
	return inside
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// test checks whether cell cid contains y; otherwise it returns the neighbour in the direction of y
func (o *Locator) test(cid int, y []float64) (inside bool, next int) {
	o.Steps++
	c := o.Msh.Cells[cid]
	x := o.coords(c)
	next = -1
	if err := c.Shp.InvMap(o.r, y, x); err != nil {
		return
	}
	if c.Shp.CellBryDist(o.r) >= -shp.INSIDE_TOL {
		return true, -1
	}

	// face facing y
	dirs, rc := o.faceDirs(c.Shp)
	best := math.Inf(-1)
	for f, d := range dirs {
		dot := 0.0
		for i := range d {
			dot += d[i] * (o.r[i] - rc[i])
		}
		if dot > best {
			best = dot
			next = c.Neighs[f]
		}
	}
	return
}

// update sets hint after a successful search
func (o *Locator) update(hint *Hint, cid int) {
	if hint == nil {
		return
	}
	hint.Cell = cid
	hint.Gen = o.Msh.Gen
	hint.Ok = true
}

// coords returns the coordinates of cell c using an internal buffer
func (o *Locator) coords(c *inp.Cell) [][]float64 {
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
	return x
}

// faceDirs returns the unit directions from the centroid to the face centres and the centroid, in
// natural coordinates
func (o *Locator) faceDirs(s *shp.Shape) ([][]float64, []float64) {
	if dirs, ok := o.dirs[s.Type]; ok {
		return dirs, o.rcs[s.Type]
	}
	rc := make([]float64, s.Gndim)
	for i := 0; i < s.Gndim; i++ {
		for m := 0; m < s.Nverts; m++ {
			rc[i] += s.NatCoords[i][m]
		}
		rc[i] /= float64(s.Nverts)
	}
	dirs := make([][]float64, len(s.FaceLocalVerts))
	for f, lverts := range s.FaceLocalVerts {
		d := make([]float64, s.Gndim)
		norm := 0.0
		for i := 0; i < s.Gndim; i++ {
			for _, l := range lverts {
				d[i] += s.NatCoords[i][l]
			}
			d[i] = d[i]/float64(len(lverts)) - rc[i]
			norm += d[i] * d[i]
		}
		for i := range d {
			d[i] /= math.Sqrt(norm)
		}
		dirs[f] = d
	}
	o.dirs[s.Type] = dirs
	o.rcs[s.Type] = rc
	return dirs, rc
}

// buildTree builds the kd-tree of cell centres
func (o *Locator) buildTree() {
	centres := make(Centres, len(o.Msh.Cells))
	for i, c := range o.Msh.Cells {
		centres[i] = Centre{X: o.Msh.CellCenter(c), Id: c.Id}
	}
	o.tree = NewCentreTree(centres)
	o.treeGen = o.Msh.Gen
	o.treeMoves = o.Msh.Moves
}
