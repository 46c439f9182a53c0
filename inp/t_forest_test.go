// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func newTestForest(tst *testing.T, nx, ny int) *Forest {
	coarse := GenQuads(0, 0, float64(nx), float64(ny), nx, ny, -1)
	if err := coarse.Init(0); err != nil {
		tst.Fatalf("Init failed:\n%v", err)
	}
	f, err := NewForest(coarse)
	if err != nil {
		tst.Fatalf("NewForest failed:\n%v", err)
	}
	return f
}

func Test_forest01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forest01. global refinement")

	f := newTestForest(tst, 2, 1)
	f.RefineGlobal(2)
	msh, err := f.Mesh(1, 0)
	if err != nil {
		tst.Errorf("Mesh failed:\n%v", err)
		return
	}
	chk.Int(tst, "gen", msh.Gen, 2)
	chk.Int(tst, "ncells", len(msh.Cells), 32)
	chk.Int(tst, "nverts", len(msh.Verts), 9*5)
	chk.Int(tst, "nhanging", len(msh.Hanging), 0)
	chk.Int(tst, "levels", f.NumLevels(), 3)
	chk.Int(tst, "boundary faces", len(msh.Bryfaces), 2*8+2*4)
	chk.Array(tst, "limits", 1e-15, msh.Limits(), []float64{0, 2, 0, 1})

	// boundary tags are inherited
	chk.Int(tst, "cells on xmin", len(msh.FaceTag2cells[TagXmin]), 4)
	chk.Int(tst, "cells on ymax", len(msh.FaceTag2cells[TagYmax]), 8)

	// total area
	area := 0.0
	for _, c := range msh.Cells {
		x := msh.CellCoords(c)
		area += (x[0][1] - x[0][0]) * (x[1][2] - x[1][1])
	}
	chk.Float64(tst, "area", 1e-15, area, 2)
}

func Test_forest02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forest02. local refinement, hanging vertices and balance")

	f := newTestForest(tst, 2, 1)

	// refine left coarse cell
	changed := f.Adapt([]int{FlagRefine, FlagNone}, 0, 5)
	if !changed {
		tst.Errorf("forest should have changed\n")
		return
	}
	msh, err := f.Mesh(1, 0)
	if err != nil {
		tst.Errorf("Mesh failed:\n%v", err)
		return
	}
	chk.Int(tst, "ncells", len(msh.Cells), 5)
	chk.Int(tst, "nhanging", len(msh.Hanging), 1)
	for v, sup := range msh.Hanging {
		io.Pforan("hanging %d => %v\n", v, sup)
		chk.Array(tst, "x(hanging)", 1e-15, msh.Verts[v].C, []float64{1, 0.5})
		chk.Int(tst, "nsupport", len(sup), 2)
	}

	// faces at hanging vertex point to the coarse cell and vice versa
	coarse := msh.Cells[4]
	chk.Int(tst, "level of coarse cell", coarse.Level, 0)
	if coarse.Neighs[3] < 0 {
		tst.Errorf("coarse cell must have a neighbour on the left\n")
	}
	chk.Int(tst, "boundary faces", len(msh.Bryfaces), 9)

	// refining the finest cell next to the coarse cell forces the coarse cell to be refined
	flags := make([]int, len(msh.Cells))
	for i, c := range msh.Cells {
		x := msh.CellCenter(c)
		if x[0] > 0.5 && x[0] < 1 && x[1] < 0.5 {
			flags[i] = FlagRefine
		}
	}
	f.Adapt(flags, 0, 5)
	msh, err = f.Mesh(1, 0)
	if err != nil {
		tst.Errorf("Mesh failed:\n%v", err)
		return
	}
	for _, c := range msh.Cells {
		if c.Level == 0 {
			tst.Errorf("coarse cell should have been refined to keep one hanging vertex per side\n")
		}
	}
	chk.Int(tst, "ncells", len(msh.Cells), 3+4+4)
}

func Test_forest03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forest03. coarsening")

	f := newTestForest(tst, 2, 1)
	f.RefineGlobal(1)
	msh, _ := f.Mesh(1, 0)

	// coarsen all: back to the coarse mesh
	flags := make([]int, len(msh.Cells))
	for i := range flags {
		flags[i] = FlagCoarsen
	}
	changed := f.Adapt(flags, 0, 5)
	if !changed {
		tst.Errorf("forest should have changed\n")
	}
	msh, _ = f.Mesh(1, 0)
	chk.Int(tst, "ncells", len(msh.Cells), 2)
	chk.Int(tst, "nverts", len(msh.Verts), 6)

	// min level prevents coarsening
	f.RefineGlobal(1)
	msh, _ = f.Mesh(1, 0)
	for i := range flags {
		flags[i] = FlagCoarsen
	}
	changed = f.Adapt(flags, 1, 5)
	if changed {
		tst.Errorf("forest should not have changed\n")
	}

	// partial flags do not coarsen
	f.RefineGlobal(1)
	msh, _ = f.Mesh(1, 0)
	flags = make([]int, len(msh.Cells))
	flags[0] = FlagCoarsen
	flags[1] = FlagCoarsen
	f.Adapt(flags, 0, 5)
	msh, _ = f.Mesh(1, 0)
	chk.Int(tst, "ncells", len(msh.Cells), 32)
}

func Test_forest04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forest04. coarsening keeps one hanging vertex per side")

	f := newTestForest(tst, 2, 1)
	f.RefineGlobal(1)
	msh, _ := f.Mesh(1, 0)

	// refine the child of the right coarse cell touching the left one
	flags := make([]int, len(msh.Cells))
	for i, c := range msh.Cells {
		x := msh.CellCenter(c)
		if x[0] > 1 && x[0] < 1.5 && x[1] < 0.5 {
			flags[i] = FlagRefine
		}
	}
	f.Adapt(flags, 0, 5)
	msh, _ = f.Mesh(1, 0)
	chk.Int(tst, "ncells", len(msh.Cells), 11)

	// try to coarsen the left coarse cell
	flags = make([]int, len(msh.Cells))
	for i, c := range msh.Cells {
		if msh.CellCenter(c)[0] < 1 {
			flags[i] = FlagCoarsen
		}
	}
	changed := f.Adapt(flags, 0, 5)
	if changed {
		tst.Errorf("coarsening must be vetoed\n")
	}
	msh, _ = f.Mesh(1, 0)
	chk.Int(tst, "ncells", len(msh.Cells), 11)
}

func Test_forest05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forest05. encoding and decoding")

	f := newTestForest(tst, 2, 2)
	f.Adapt([]int{FlagRefine, FlagNone, FlagNone, FlagNone}, 0, 5)

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f); err != nil {
		tst.Errorf("encode failed:\n%v", err)
		return
	}
	var g Forest
	if err := gob.NewDecoder(&buf).Decode(&g); err != nil {
		tst.Errorf("decode failed:\n%v", err)
		return
	}
	g.Rebuild()

	m1, _ := f.Mesh(1, 0)
	m2, err := g.Mesh(1, 0)
	if err != nil {
		tst.Errorf("Mesh failed:\n%v", err)
		return
	}
	chk.Int(tst, "gen", m2.Gen, m1.Gen)
	chk.Int(tst, "ncells", len(m2.Cells), len(m1.Cells))
	chk.Int(tst, "nhanging", len(m2.Hanging), len(m1.Hanging))
	for i := range m1.Verts {
		chk.Array(tst, "x", 1e-15, m2.Verts[i].C, m1.Verts[i].C)
	}
}

func Test_forest06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("forest06. octree")

	coarse := GenHexes([]float64{0, 0, 0}, []float64{2, 1, 1}, []int{2, 1, 1}, -1)
	if err := coarse.Init(0); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	f, err := NewForest(coarse)
	if err != nil {
		tst.Errorf("NewForest failed:\n%v", err)
		return
	}
	f.Adapt([]int{FlagRefine, FlagNone}, 0, 5)
	msh, err := f.Mesh(2, 0)
	if err != nil {
		tst.Errorf("Mesh failed:\n%v", err)
		return
	}
	chk.Int(tst, "ncells", len(msh.Cells), 9)
	chk.Int(tst, "nverts", len(msh.Verts), 27+4)
	chk.Int(tst, "nhanging (4 edges + 1 face)", len(msh.Hanging), 5)
	chk.Int(tst, "cells in partition 0", len(msh.Part2cells[0]), 5)
	chk.Int(tst, "cells in partition 1", len(msh.Part2cells[1]), 4)
	for v, sup := range msh.Hanging {
		if msh.Verts[v].C[0] != 1 {
			tst.Errorf("hanging vertices must be on the interface x=1\n")
		}
		n := len(sup)
		if n != 2 && n != 4 {
			tst.Errorf("hanging vertices must be supported by 2 or 4 vertices\n")
		}
	}
}
