// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locator

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Centre is a point in a kd-tree tagged with the id of the item it represents
type Centre struct {
	X  []float64 // coordinates
	Id int       // id of item; e.g. cell id
}

// Compare returns the signed distance of o from the plane passing through c and perpendicular to d
func (o Centre) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return o.X[d] - c.(Centre).X[d]
}

// Dims returns the number of dimensions
func (o Centre) Dims() int { return len(o.X) }

// Distance returns the squared Euclidean distance between o and c
func (o Centre) Distance(c kdtree.Comparable) (dist float64) {
	q := c.(Centre)
	for i, x := range o.X {
		dist += (x - q.X[i]) * (x - q.X[i])
	}
	return
}

// Centres is a collection of points implementing kdtree.Interface
type Centres []Centre

func (o Centres) Index(i int) kdtree.Comparable         { return o[i] }
func (o Centres) Len() int                              { return len(o) }
func (o Centres) Slice(start, end int) kdtree.Interface { return o[start:end] }
func (o Centres) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{Centres: o, Dim: d}, kdtree.MedianOfMedians(plane{Centres: o, Dim: d}))
}

// plane sorts centres along one dimension
type plane struct {
	kdtree.Dim
	Centres
}

func (p plane) Less(i, j int) bool { return p.Centres[i].X[p.Dim] < p.Centres[j].X[p.Dim] }
func (p plane) Swap(i, j int)      { p.Centres[i], p.Centres[j] = p.Centres[j], p.Centres[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.Centres = p.Centres[start:end]
	return p
}

// CentreTree holds a kd-tree of centres
type CentreTree struct {
	tree *kdtree.Tree
	n    int
}

// NewCentreTree builds a kd-tree with the given centres
func NewCentreTree(centres Centres) *CentreTree {
	c := make(Centres, len(centres))
	copy(c, centres)
	return &CentreTree{tree: kdtree.New(c, false), n: len(c)}
}

// Len returns the number of centres in the tree
func (o *CentreTree) Len() int { return o.n }

// Nearest returns the ids of the n centres closest to x, sorted by increasing distance
func (o *CentreTree) Nearest(x []float64, n int) (ids []int, dists []float64) {
	if o.n == 0 || n < 1 {
		return
	}
	keep := kdtree.NewNKeeper(n)
	o.tree.NearestSet(keep, Centre{X: x, Id: -1})
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		ids = append(ids, c.Comparable.(Centre).Id)
		dists = append(dists, math.Sqrt(c.Dist))
	}
	sortByDist(ids, dists)
	return
}

// NearestDist returns the distance from x to the closest centre
func (o *CentreTree) NearestDist(x []float64) float64 {
	if o.n == 0 {
		return math.Inf(1)
	}
	_, d := o.tree.Nearest(Centre{X: x, Id: -1})
	return math.Sqrt(d)
}

// sortByDist sorts ids and dists by increasing distance (insertion sort; n is small)
func sortByDist(ids []int, dists []float64) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && dists[j] < dists[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
			dists[j], dists[j-1] = dists[j-1], dists[j]
		}
	}
}
