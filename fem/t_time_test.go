// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_time01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("time01. intervals")

	t := NewTime(1, 0.1, 0.2, 0.3, 0.5)
	assert.False(tst, t.TimeToOutput())
	assert.False(tst, t.TimeToRefine())
	assert.False(tst, t.TimeToSave())

	var out, ref, sav []int
	for !t.Finished() {
		t.Increment()
		if t.TimeToOutput() {
			out = append(out, t.Step)
		}
		if t.TimeToRefine() {
			ref = append(ref, t.Step)
		}
		if t.TimeToSave() {
			sav = append(sav, t.Step)
		}
	}
	io.Pforan("%v\n", t)
	chk.Int(tst, "nsteps", t.Step, 10)
	chk.Float64(tst, "t", 1e-14, t.Current, 1)
	chk.Ints(tst, "output", out, []int{2, 4, 6, 8, 10})
	chk.Ints(tst, "refine", ref, []int{3, 6, 9})
	chk.Ints(tst, "save", sav, []int{5, 10})
}

func Test_dofs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs01. vertex dofs and nodal fields")

	msh := inp.GenQuads(0, 0, 2, 1, 2, 1, -1)
	require.NoError(tst, msh.Init(0))
	dofs := NewDofMap(msh, 3)
	chk.Int(tst, "ndofs", dofs.Ndofs(), 18)
	chk.Int(tst, "eq", dofs.Eq(4, 2), 14)
	vid, comp := dofs.Vert(14)
	chk.Ints(tst, "vert", []int{vid, comp}, []int{4, 2})
	chk.Ints(tst, "cell eqs", dofs.CellEqs(msh.Cells[1]), []int{3, 4, 5, 6, 7, 8, 15, 16, 17, 12, 13, 14})

	vec := make([]float64, dofs.Ndofs())
	for i := range vec {
		vec[i] = float64(i)
	}
	f := dofs.Field(vec, 0, 2)
	chk.Int(tst, "ncomp", f.Ncomp(), 2)
	chk.Float64(tst, "v1 at 5", 1e-17, f.Value(5, 1), 16)
	p := dofs.Field(vec, 2, 1)
	chk.Float64(tst, "p at 5", 1e-17, p.Value(5, 0), 17)

	// snapshot
	s := NewSnapshot(2)
	s.Current[0] = 3
	chk.Float64(tst, "previous", 1e-17, s.Previous[0], 0)
	s.Finalize()
	chk.Float64(tst, "previous", 1e-17, s.Previous[0], 3)
}

func Test_store01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store01. cell records")

	var store CellStore[*FsiForce]
	store.Init([]int{2, 0, 3}, func() *FsiForce { return NewFsiForce(2) })
	chk.Int(tst, "ncells", store.Ncells(), 3)

	recs, err := store.Get(2, 3)
	require.NoError(tst, err)
	recs[1].Indicator = true
	recs[1].Acc[1] = -9.81
	recs[1].Stress[0][1] = 2

	again, err := store.Get(2, 3)
	require.NoError(tst, err)
	assert.True(tst, again[1].Indicator)
	again[1].Reset()
	assert.False(tst, recs[1].Indicator)
	chk.Float64(tst, "acc", 1e-17, recs[1].Acc[1], 0)
	chk.Float64(tst, "stress", 1e-17, recs[1].Stress[0][1], 0)

	_, err = store.Get(0, 4)
	assert.ErrorIs(tst, err, ErrRecordCount)
	_, err = store.Get(3, 0)
	assert.ErrorIs(tst, err, ErrRecordCount)
	assert.ErrorIs(tst, store.Set(1, 0, NewFsiForce(2)), ErrRecordCount)

	rec := NewFsiForce(2)
	rec.Indicator = true
	require.NoError(tst, store.Set(0, 1, rec))
	recs, err = store.Get(0, 2)
	require.NoError(tst, err)
	assert.True(tst, recs[1].Indicator)
}
