// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locator

import (
	"math"
	"testing"

	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

func newQuads(tst *testing.T, l float64, n int) *inp.Mesh {
	msh := inp.GenQuads(0, 0, l, l, n, n, -1)
	require.NoError(tst, msh.Init(0))
	return msh
}

// testField evaluates a function at vertices
type testField struct {
	msh *inp.Mesh
	fcn []func(x []float64) float64
}

func (o testField) Ncomp() int { return len(o.fcn) }
func (o testField) Value(vid, comp int) float64 {
	return o.fcn[comp](o.msh.Verts[vid].C)
}

func Test_locator01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("locator01. hinted searches take fewer steps than cold searches")

	msh := newQuads(tst, 4, 8)
	cold := New(msh, 20, 4)
	hinted := New(msh, 20, 4)

	var hint Hint
	ncold, nhinted := 0, 0
	for k := 0; k <= 12; k++ {
		y := []float64{0.15 + 0.3*float64(k), 3.7}
		correct := int(y[0]/0.5) + 8*7

		cid, found := cold.Search(y, nil)
		require.True(tst, found)
		chk.Int(tst, io.Sf("cold cell %d", k), cid, correct)
		ncold += cold.Steps

		cid, found = hinted.Search(y, &hint)
		require.True(tst, found)
		chk.Int(tst, io.Sf("hinted cell %d", k), cid, correct)
		nhinted += hinted.Steps
		if k > 0 {
			assert.LessOrEqual(tst, hinted.Steps, 2, "one step to the next cell at most")
		}
		chk.Int(tst, "hint", hint.Cell, correct)
		io.Pforan("k=%2d cold=%2d hinted=%2d\n", k, cold.Steps, hinted.Steps)
	}
	assert.Less(tst, nhinted, ncold)
	chk.Int(tst, "total cold", cold.Total, ncold)
	chk.Int(tst, "total hinted", hinted.Total, nhinted)
}

func Test_locator02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("locator02. points outside and stale hints")

	msh := newQuads(tst, 4, 8)
	loc := New(msh, 20, 4)

	// outside: every cell is tested once
	hint := Hint{Cell: 5, Gen: msh.Gen, Ok: true}
	cid, found := loc.Search([]float64{5, 5}, &hint)
	assert.False(tst, found)
	chk.Int(tst, "cid", cid, -1)
	chk.Int(tst, "steps", loc.Steps, len(msh.Cells))
	chk.Int(tst, "hint is kept", hint.Cell, 5)

	// valid hint far away
	hint = Hint{Cell: 63, Gen: msh.Gen, Ok: true}
	cid, found = loc.Search([]float64{0.1, 0.1}, &hint)
	require.True(tst, found)
	chk.Int(tst, "cid", cid, 0)
	assert.Greater(tst, loc.Steps, 1)

	// stale hint => cold search from first cell
	hint = Hint{Cell: 63, Gen: msh.Gen + 1, Ok: true}
	cid, found = loc.Search([]float64{0.1, 0.1}, &hint)
	require.True(tst, found)
	chk.Int(tst, "cid", cid, 0)
	chk.Int(tst, "steps", loc.Steps, 1)
	chk.Int(tst, "hint.Cell", hint.Cell, 0)
	chk.Int(tst, "hint.Gen", hint.Gen, msh.Gen)

	// no hopping at all: kd-tree finds it
	loc.MaxHops = 0
	cid, found = loc.Search([]float64{3.9, 3.9}, nil)
	require.True(tst, found)
	chk.Int(tst, "cid", cid, 63)
	assert.LessOrEqual(tst, loc.Steps, 1+loc.Nnear)
}

func Test_locator03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("locator03. search in meshes with hanging vertices")

	coarse := inp.GenQuads(0, 0, 2, 2, 2, 2, -1)
	require.NoError(tst, coarse.Init(0))
	forest, err := inp.NewForest(coarse)
	require.NoError(tst, err)
	forest.Adapt([]int{inp.FlagRefine, inp.FlagNone, inp.FlagNone, inp.FlagNone}, 0, 2)
	msh, err := forest.Mesh(1, 0)
	require.NoError(tst, err)
	chk.Int(tst, "ncells", len(msh.Cells), 7)
	assert.NotEmpty(tst, msh.Hanging)

	loc := New(msh, 20, 2)
	var hint Hint
	for j := 0; j < 10; j++ {
		for i := 0; i < 10; i++ {
			y := []float64{0.05 + 0.2*float64(i), 0.05 + 0.2*float64(j)}
			cid, found := loc.Search(y, &hint)
			require.True(tst, found, "point %v", y)
			assert.True(tst, loc.Contains(cid, y))
			x := msh.CellCoords(msh.Cells[cid])
			for d := 0; d < 2; d++ {
				xmin := math.Min(x[d][0], x[d][2])
				xmax := math.Max(x[d][0], x[d][2])
				assert.True(tst, y[d] >= xmin && y[d] <= xmax, "point %v in cell %d", y, cid)
			}
		}
	}
}

func Test_locator04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("locator04. hexahedra")

	msh := inp.GenHexes([]float64{0, 0, 0}, []float64{3, 3, 3}, []int{3, 3, 3}, -1)
	require.NoError(tst, msh.Init(0))
	loc := New(msh, 20, 4)
	cid, found := loc.Search([]float64{2.5, 1.5, 2.5}, nil)
	require.True(tst, found)
	chk.Int(tst, "cid", cid, 2+1*3+2*9)
	_, found = loc.Search([]float64{2.5, 1.5, 3.5}, nil)
	assert.False(tst, found)
}

func Test_tree01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tree01. nearest cell centres")

	msh := newQuads(tst, 4, 4)
	centres := make(Centres, len(msh.Cells))
	for i, c := range msh.Cells {
		centres[i] = Centre{X: msh.CellCenter(c), Id: c.Id}
	}
	tree := NewCentreTree(centres)
	chk.Int(tst, "len", tree.Len(), 16)

	ids, dists := tree.Nearest([]float64{0.4, 0.5}, 3)
	require.Len(tst, ids, 3)
	chk.Int(tst, "closest", ids[0], 0)
	chk.Float64(tst, "dist0", 1e-15, dists[0], 0.1)
	chk.Ints(tst, "next", []int{ids[1], ids[2]}, []int{4, 1})
	assert.True(tst, dists[1] <= dists[2])

	chk.Float64(tst, "nearest dist", 1e-15, tree.NearestDist([]float64{3.5, 5.5}), 2)

	empty := NewCentreTree(nil)
	ids, _ = empty.Nearest([]float64{0, 0}, 2)
	assert.Empty(tst, ids)
	assert.True(tst, math.IsInf(empty.NearestDist([]float64{0, 0}), 1))
}

func Test_interp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp01. values and gradients of bilinear fields")

	msh := newQuads(tst, 4, 8)
	f := testField{msh, []func(x []float64) float64{
		func(x []float64) float64 { return 1 + 2*x[0] + 3*x[1] + 0.5*x[0]*x[1] },
		func(x []float64) float64 { return -x[1] },
	}}
	loc := New(msh, 20, 4)
	itp := NewInterpolator(msh)

	for _, y := range [][]float64{{1.3, 2.1}, {0.01, 3.99}, {2.5, 2.5}} {
		cid, found := loc.Search(y, nil)
		require.True(tst, found)
		val, err := itp.PointValue(f, y, cid)
		require.NoError(tst, err)
		chk.Array(tst, "val", 1e-13, val, []float64{1 + 2*y[0] + 3*y[1] + 0.5*y[0]*y[1], -y[1]})
		grad, err := itp.PointGradient(f, y, cid)
		require.NoError(tst, err)
		chk.Array(tst, "grad0", 1e-13, grad[0], []float64{2 + 0.5*y[1], 3 + 0.5*y[0]})
		chk.Array(tst, "grad1", 1e-13, grad[1], []float64{0, -1})
	}
}

func Test_interp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp02. points outside cells are reported")

	msh := newQuads(tst, 4, 8)
	f := testField{msh, []func(x []float64) float64{
		func(x []float64) float64 { return x[0] },
	}}
	itp := NewInterpolator(msh)

	_, err := itp.PointValue(f, []float64{0.1, 0.1}, 63)
	assert.ErrorIs(tst, err, ErrNotInCell)
	_, err = itp.PointGradient(f, []float64{0.1, 0.1}, 63)
	assert.ErrorIs(tst, err, ErrNotInCell)
	_, err = itp.PointValue(f, []float64{0.1, 0.1}, 64)
	assert.ErrorIs(tst, err, ErrNotInCell)

	// on the boundary of the cell
	val, err := itp.PointValue(f, []float64{0.5, 0.25}, 0)
	require.NoError(tst, err)
	chk.Float64(tst, "val", 1e-15, val[0], 0.5)
}
