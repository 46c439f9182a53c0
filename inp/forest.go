// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"

	"github.com/Jie-Cheng/OpenIFEM/shp"
	"github.com/cpmech/gosl/chk"
)

// refinement flags
const (
	FlagCoarsen = -1 // cell should be merged with its siblings
	FlagNone    = 0  // cell is kept
	FlagRefine  = 1  // cell should be split
)

// TreeCell holds one cell in the refinement history of a Forest
type TreeCell struct {
	Parent   int   // parent tree cell; -1 for coarse cells
	Children []int // children tree cells; empty for active cells
	Level    int   // refinement level
	Tag      int   // cell tag
	Verts    []int // vertices (forest numbering)
	FTags    []int // face tags
}

// Forest holds quadtrees (qua4) or octrees (hex8) rooted at the cells of a coarse mesh
//  Note: at most one hanging vertex is allowed on each edge or face of active cells
type Forest struct {
	Type    string      // type of cells; "qua4" or "hex8"
	Ndim    int         // space dimension
	Gen     int         // generation; incremented whenever the active cells change
	X       [][]float64 // coordinates of all vertices ever created [nverts][ndim]
	Support [][]int     // vertices supporting each vertex (sorted); nil for coarse vertices
	Cells   []*TreeCell // all tree cells
	Roots   []int       // coarse cells

	// derived
	key2vert   map[supportKey]int // support => vertex
	dependents map[int][]int      // vertex => vertices supported by it
	active     []int              // active tree cells in depth-first order
	mverts     []int              // forest vertex => mesh vertex; -1 if unused
}

// NewForest returns a new forest with one tree for each cell of a coarse mesh
func NewForest(coarse *Mesh) (o *Forest, err error) {
	o = new(Forest)
	o.Ndim = coarse.Ndim
	for _, c := range coarse.Cells {
		if o.Type == "" {
			o.Type = c.Type
		}
		if c.Type != o.Type || (c.Type != "qua4" && c.Type != "hex8") {
			return nil, chk.Err("forests require meshes with either qua4 or hex8 cells only. %q is invalid\n", c.Type)
		}
		o.Roots = append(o.Roots, len(o.Cells))
		o.Cells = append(o.Cells, &TreeCell{
			Parent: -1,
			Tag:    c.Tag,
			Verts:  append([]int{}, c.Verts...),
			FTags:  append([]int{}, c.FTags...),
		})
	}
	o.X = make([][]float64, len(coarse.Verts))
	o.Support = make([][]int, len(coarse.Verts))
	for i, v := range coarse.Verts {
		o.X[i] = append([]float64{}, v.C[:o.Ndim]...)
	}
	o.rebuild()
	return
}

// Rebuild recomputes derived data; e.g. after decoding
func (o *Forest) Rebuild() {
	o.rebuild()
}

// Nactive returns the number of active cells
func (o *Forest) Nactive() int {
	return len(o.active)
}

// NumLevels returns the number of levels in use (max level of active cells + 1)
func (o *Forest) NumLevels() (n int) {
	for _, t := range o.active {
		if o.Cells[t].Level+1 > n {
			n = o.Cells[t].Level + 1
		}
	}
	return
}

// RefineGlobal refines all active cells n times
func (o *Forest) RefineGlobal(n int) {
	for k := 0; k < n; k++ {
		flags := make([]int, len(o.active))
		for i := range flags {
			flags[i] = FlagRefine
		}
		o.Adapt(flags, 0, o.NumLevels())
	}
}

// Adapt refines and coarsens the active cells according to flags
//  Input:
//   flags    -- one flag per active cell, following the order of cells in the last generated mesh
//   minLevel -- cells are not coarsened below this level
//   maxLevel -- cells are not refined beyond this level
//  Output:
//   changed -- whether the set of active cells has changed
func (o *Forest) Adapt(flags []int, minLevel, maxLevel int) (changed bool) {
	if len(flags) != len(o.active) {
		chk.Panic("number of flags (%d) must be equal to number of active cells (%d)", len(flags), len(o.active))
	}

	// cells to be refined
	refine := make(map[int]bool)
	coarsen := make(map[int]bool)
	for i, t := range o.active {
		switch flags[i] {
		case FlagRefine:
			if o.Cells[t].Level < maxLevel {
				refine[t] = true
			}
		case FlagCoarsen:
			if o.Cells[t].Level > minLevel {
				coarsen[t] = true
			}
		}
	}

	// at most one hanging vertex per side: coarser cells holding a hanging vertex of a refined cell
	// must be refined as well
	for {
		owners := o.sideOwners()
		added := false
		for t := range refine {
			for _, v := range o.Cells[t].Verts {
				if len(o.Support[v]) == 0 {
					continue
				}
				for _, n := range owners[newSupportKey(o.Support[v])] {
					if !refine[n] {
						refine[n] = true
						added = true
					}
				}
			}
		}
		if !added {
			break
		}
	}

	// split
	for _, t := range sortedKeys(refine) {
		o.split(t)
		changed = true
	}

	// users of vertices
	users := make(map[int]map[int]bool)
	for _, t := range o.currentLeaves() {
		for _, v := range o.Cells[t].Verts {
			if users[v] == nil {
				users[v] = make(map[int]bool)
			}
			users[v][t] = true
		}
	}

	// parents with all children flagged for coarsening
	parents := make(map[int]bool)
	for t := range coarsen {
		p := o.Cells[t].Parent
		if p < 0 || refine[t] {
			continue
		}
		ok := true
		for _, ch := range o.Cells[p].Children {
			if !coarsen[ch] || len(o.Cells[ch].Children) > 0 {
				ok = false
				break
			}
		}
		if ok {
			parents[p] = true
		}
	}

	// merge
	for _, p := range sortedKeys(parents) {
		if !o.canMerge(p, users) {
			continue
		}
		for _, ch := range o.Cells[p].Children {
			for _, v := range o.Cells[ch].Verts {
				delete(users[v], ch)
			}
		}
		for _, v := range o.Cells[p].Verts {
			if users[v] == nil {
				users[v] = make(map[int]bool)
			}
			users[v][p] = true
		}
		o.Cells[p].Children = nil
		changed = true
	}

	// results
	if changed {
		o.Gen++
		o.active = o.currentLeaves()
	}
	return
}

// Mesh generates the mesh of active cells
//  Input:
//   nparts -- number of partitions; active cells are split in contiguous chunks
func (o *Forest) Mesh(nparts, goroutineId int) (m *Mesh, err error) {

	// vertices
	m = new(Mesh)
	m.Gen = o.Gen
	o.mverts = make([]int, len(o.X))
	for i := range o.mverts {
		o.mverts[i] = -1
	}
	for _, t := range o.active {
		for _, v := range o.Cells[t].Verts {
			if o.mverts[v] < 0 {
				o.mverts[v] = len(m.Verts)
				c := make([]float64, o.Ndim)
				copy(c, o.X[v])
				m.Verts = append(m.Verts, &Vert{Id: len(m.Verts), C: c})
			}
		}
	}

	// cells
	if nparts < 1 {
		nparts = 1
	}
	nc := len(o.active)
	for i, t := range o.active {
		tc := o.Cells[t]
		verts := make([]int, len(tc.Verts))
		for j, v := range tc.Verts {
			verts[j] = o.mverts[v]
		}
		m.Cells = append(m.Cells, &Cell{
			Id:    i,
			Tag:   tc.Tag,
			Type:  o.Type,
			Part:  (i * nparts) / nc,
			Level: tc.Level,
			Verts: verts,
			FTags: append([]int{}, tc.FTags...),
		})
	}

	// hanging vertices
	m.Hanging = make(map[int][]int)
	for v, sup := range o.hanging() {
		mv := o.mverts[v]
		msup := make([]int, len(sup))
		for k, s := range sup {
			msup[k] = o.mverts[s]
			if msup[k] < 0 {
				return nil, chk.Err("vertex %d supporting hanging vertex %d is not in use\n", s, v)
			}
		}
		m.Hanging[mv] = msup
	}

	// derived data
	err = m.Init(goroutineId)
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// supportKey identifies a created vertex by its sorted supporting vertices
type supportKey [8]int

func newSupportKey(verts []int) (key supportKey) {
	for i := range key {
		key[i] = -1
	}
	copy(key[:], verts)
	return
}

// edges of hex8 cells
var hex8edges = [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}

// rebuild computes derived maps from Support and Cells
func (o *Forest) rebuild() {
	o.key2vert = make(map[supportKey]int)
	o.dependents = make(map[int][]int)
	for v, sup := range o.Support {
		if len(sup) == 0 {
			continue
		}
		o.key2vert[newSupportKey(sup)] = v
		for _, s := range sup {
			o.dependents[s] = append(o.dependents[s], v)
		}
	}
	o.active = o.currentLeaves()
}

// currentLeaves returns the active cells in depth-first order
func (o *Forest) currentLeaves() (leaves []int) {
	var visit func(t int)
	visit = func(t int) {
		if len(o.Cells[t].Children) == 0 {
			leaves = append(leaves, t)
			return
		}
		for _, ch := range o.Cells[t].Children {
			visit(ch)
		}
	}
	for _, r := range o.Roots {
		visit(r)
	}
	return
}

// sides returns the (sorted) vertices of all edges and faces of tree cell t
func (o *Forest) sides(t int) (res [][]int) {
	tc := o.Cells[t]
	local := shp.Get(o.Type, 0).FaceLocalVerts
	if o.Type == "hex8" {
		local = append(append([][]int{}, local...), hex8edges...)
	}
	for _, lverts := range local {
		s := make([]int, len(lverts))
		for k, l := range lverts {
			s[k] = tc.Verts[l]
		}
		sort.Ints(s)
		res = append(res, s)
	}
	return
}

// sideOwners maps the sides of active cells to the cells holding them
func (o *Forest) sideOwners() (owners map[supportKey][]int) {
	owners = make(map[supportKey][]int)
	for _, t := range o.currentLeaves() {
		for _, s := range o.sides(t) {
			key := newSupportKey(s)
			owners[key] = append(owners[key], t)
		}
	}
	return
}

// hanging returns the hanging vertices of active cells and their supports
func (o *Forest) hanging() (res map[int][]int) {
	res = make(map[int][]int)
	for _, t := range o.active {
		for _, s := range o.sides(t) {
			v, ok := o.key2vert[newSupportKey(s)]
			if ok && o.mverts[v] >= 0 {
				res[v] = o.Support[v]
			}
		}
	}
	return
}

// vertexFor returns the vertex supported by the given vertices, creating it if needed
func (o *Forest) vertexFor(support []int) int {
	if len(support) == 1 {
		return support[0]
	}
	sup := append([]int{}, support...)
	sort.Ints(sup)
	key := newSupportKey(sup)
	if v, ok := o.key2vert[key]; ok {
		return v
	}
	x := make([]float64, o.Ndim)
	for _, s := range sup {
		for i := 0; i < o.Ndim; i++ {
			x[i] += o.X[s][i]
		}
	}
	for i := 0; i < o.Ndim; i++ {
		x[i] /= float64(len(sup))
	}
	v := len(o.X)
	o.X = append(o.X, x)
	o.Support = append(o.Support, sup)
	o.key2vert[key] = v
	for _, s := range sup {
		o.dependents[s] = append(o.dependents[s], v)
	}
	return v
}

// split creates the children of tree cell t; child i holds corner i of t
func (o *Forest) split(t int) {
	shape := shp.Get(o.Type, 0)
	nat := shape.NatCoords
	nv := shape.Nverts
	tc := o.Cells[t]
	q := make([]float64, o.Ndim)
	for i := 0; i < nv; i++ {
		child := &TreeCell{
			Parent: t,
			Level:  tc.Level + 1,
			Tag:    tc.Tag,
			Verts:  make([]int, nv),
			FTags:  make([]int, len(tc.FTags)),
		}
		for j := 0; j < nv; j++ {
			for d := 0; d < o.Ndim; d++ {
				q[d] = (nat[d][i] + nat[d][j]) / 2.0
			}
			var support []int
			for k := 0; k < nv; k++ {
				match := true
				for d := 0; d < o.Ndim; d++ {
					if q[d] != 0 && nat[d][k] != q[d] {
						match = false
						break
					}
				}
				if match {
					support = append(support, tc.Verts[k])
				}
			}
			child.Verts[j] = o.vertexFor(support)
		}
		for f, lverts := range shape.FaceLocalVerts {
			for _, l := range lverts {
				if l == i {
					child.FTags[f] = tc.FTags[f]
				}
			}
		}
		tc.Children = append(tc.Children, len(o.Cells))
		o.Cells = append(o.Cells, child)
	}
}

// canMerge tells whether the children of p can be removed without creating more than one hanging
// vertex on any side
func (o *Forest) canMerge(p int, users map[int]map[int]bool) bool {
	siblings := make(map[int]bool)
	for _, ch := range o.Cells[p].Children {
		siblings[ch] = true
	}
	corners := make(map[int]bool)
	for _, v := range o.Cells[p].Verts {
		corners[v] = true
	}
	for _, ch := range o.Cells[p].Children {
		for _, m := range o.Cells[ch].Verts {
			if corners[m] {
				continue
			}
			for _, u := range o.dependents[m] {
				for user := range users[u] {
					if !siblings[user] {
						return false
					}
				}
			}
		}
	}
	return true
}

// sortedKeys returns the sorted keys of a set
func sortedKeys(set map[int]bool) (keys []int) {
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return
}
