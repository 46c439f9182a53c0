// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/Jie-Cheng/OpenIFEM/comm"
	"github.com/Jie-Cheng/OpenIFEM/fem"
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

// block of 1×1 made of 2×2 cells; E = 1000, ν = 0.25 => λ = μ = 400
func newBlock(tst *testing.T, facebcs string) *Solver {
	sim, err := inp.ReadSimBytes([]byte(`{
  "fluid" : { "mesh" : { "gen" : { "type":"qua4", "xmin":[-1,-1], "xmax":[2,2], "ndiv":[3,3] } } },
  "solid" : {
    "mesh" : { "gen" : { "type":"qua4", "xmin":[0,0], "xmax":[1,1], "ndiv":[2,2], "ctag":-2 } },
    "prms" : [ {"n":"E", "v":1000}, {"n":"nu", "v":0.25}, {"n":"rho", "v":2} ],
    "facebcs" : [`+facebcs+`]
  },
  "control" : { "tf":1, "dt":0.1 }
}`), ".", "block", 0)
	require.NoError(tst, err)
	o, err := New(comm.NewContext(comm.Serial{}, chk.Verbose), sim)
	require.NoError(tst, err)
	require.NoError(tst, o.Setup())
	return o
}

// setRightTraction sets the traction on the face at x = 1
func setRightTraction(tst *testing.T, o *Solver, t []float64) {
	for _, cf := range o.Msh.FaceTag2cells[inp.TagXmax] {
		nfip := len(o.FaceIps(cf.C))
		recs, err := o.Tractions().Get(cf.C.Id, len(cf.C.Shp.FaceLocalVerts)*nfip)
		require.NoError(tst, err)
		for q := 0; q < nfip; q++ {
			copy(recs[cf.Fid*nfip+q].T, t)
		}
	}
}

func Test_solid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid01. rigid body translation")

	o := newBlock(tst, "")
	chk.Int(tst, "ndofs", o.Dofs.Ndofs(), 18)
	chk.Int(tst, "nfixed", o.Fixed.Nlines(), 0)
	chk.Float64(tst, "γ", 1e-17, o.Gamma, 0.5)
	chk.Float64(tst, "β", 1e-17, o.Beta, 0.25)

	v0 := []float64{0.3, -0.2}
	for v := range o.Msh.Verts {
		for i := 0; i < 2; i++ {
			o.V.Current[o.Dofs.Eq(v, i)] = v0[i]
		}
	}
	o.V.Finalize()

	require.NoError(tst, o.RunOneStep(true))
	chk.Int(tst, "step", o.Time.Step, 1)
	chk.Float64(tst, "t", 1e-15, o.Time.Current, 0.1)
	for v := range o.Msh.Verts {
		for i := 0; i < 2; i++ {
			eq := o.Dofs.Eq(v, i)
			chk.Float64(tst, io.Sf("u%d", eq), 1e-10, o.U.Current[eq], 0.1*v0[i])
			chk.Float64(tst, io.Sf("v%d", eq), 1e-9, o.V.Current[eq], v0[i])
			chk.Float64(tst, io.Sf("a%d", eq), 1e-8, o.A.Current[eq], 0)
		}
	}
	chk.Array(tst, "previous == current", 1e-17, o.U.Previous, o.U.Current)
}

func Test_solid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid02. tractions and fixed faces")

	o := newBlock(tst, `{ "tag":-10, "keys":["ux","uy"] }`)
	chk.Int(tst, "nfixed", o.Fixed.Nlines(), 6)
	for _, cf := range o.Msh.FaceTag2cells[inp.TagXmin] {
		assert.True(tst, o.FixedFace(cf.C, cf.Fid))
	}
	for _, cf := range o.Msh.FaceTag2cells[inp.TagXmax] {
		assert.False(tst, o.FixedFace(cf.C, cf.Fid))
	}

	// total force
	setRightTraction(tst, o, []float64{1, 0.5})
	require.NoError(tst, o.AssembleSystem(true))
	fx, fy := 0.0, 0.0
	for v := range o.Msh.Verts {
		fx += o.sys.F[o.Dofs.Eq(v, 0)]
		fy += o.sys.F[o.Dofs.Eq(v, 1)]
	}
	chk.Float64(tst, "fx", 1e-14, fx, 1)
	chk.Float64(tst, "fy", 1e-14, fy, 0.5)

	// fixed face is not moved
	require.NoError(tst, o.RunOneStep(true))
	for _, v := range o.Msh.FaceTag2verts[inp.TagXmin] {
		for i := 0; i < 2; i++ {
			chk.Float64(tst, "u", 1e-17, o.U.Current[o.Dofs.Eq(v, i)], 0)
			chk.Float64(tst, "a", 1e-17, o.A.Current[o.Dofs.Eq(v, i)], 0)
		}
	}
	for _, v := range o.Msh.FaceTag2verts[inp.TagXmax] {
		assert.Greater(tst, o.U.Current[o.Dofs.Eq(v, 0)], 0.0)
	}
}

func Test_solid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid03. nodal stresses")

	o := newBlock(tst, "")
	for _, v := range o.Msh.Verts {
		o.U.Current[o.Dofs.Eq(v.Id, 0)] = 0.001 * v.C[0]
	}
	require.NoError(tst, o.UpdateStress())
	f := o.StressField()
	chk.Int(tst, "ncomp", f.Ncomp(), 4)
	for v := range o.Msh.Verts {
		chk.Array(tst, io.Sf("σ @ %d", v), 1e-12, []float64{f.Value(v, 0), f.Value(v, 1), f.Value(v, 2), f.Value(v, 3)},
			[]float64{1.2, 0, 0, 0.4})
	}
	chk.Float64(tst, "density", 1e-17, o.Density(), 2)
}

func Test_solid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid04. wrong number of records")

	o := newBlock(tst, "")
	o.Tractions().Init(make([]int, len(o.Msh.Cells)), func() *fem.Traction { return fem.NewTraction(2) })
	err := o.AssembleSystem(false)
	assert.ErrorIs(tst, err, fem.ErrRecordCount)
}

func Test_solid05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid05. checkpoints")

	a := newBlock(tst, "")
	a.Sim.DirOut = tst.TempDir()
	for i := range a.U.Current {
		a.U.Current[i] = float64(i) / 100.0
	}
	a.U.Finalize()
	a.Time.Increment()
	a.Time.Increment()
	require.NoError(tst, a.SaveCheckpoint())

	// restart disabled
	loaded, err := a.LoadCheckpoint()
	require.NoError(tst, err)
	assert.False(tst, loaded)

	// restart enabled
	a.Sim.Data.Restart = true
	b, err := New(a.Ctx, a.Sim)
	require.NoError(tst, err)
	loaded, err = b.LoadCheckpoint()
	require.NoError(tst, err)
	require.True(tst, loaded)
	chk.Int(tst, "step", b.Time.Step, 2)
	chk.Float64(tst, "t", 1e-17, b.Time.Current, a.Time.Current)
	chk.Array(tst, "u", 1e-17, b.U.Current, a.U.Previous)
	chk.Array(tst, "u", 1e-17, b.U.Previous, a.U.Previous)
}
