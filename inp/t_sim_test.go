// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const testsim = `{
  "data" : { "desc" : "square in channel", "encoder" : "json" },
  "fluid" : {
    "mesh" : { "gen" : { "type":"qua4", "xmin":[0,0], "xmax":[4,4], "ndiv":[4,4] } },
    "viscosity" : 0.1, "rho" : 1.0, "nref" : 2,
    "facebcs" : [ { "tag":-10, "keys":["vx","vy"] } ]
  },
  "solid" : {
    "mesh" : { "gen" : { "type":"qua4", "xmin":[1.5,1.5], "xmax":[2.5,2.5], "ndiv":[2,2], "ctag":-2 } },
    "prms" : [ {"n":"E", "v":1e5}, {"n":"nu", "v":0.3}, {"n":"rho", "v":2} ],
    "facebcs" : [ { "tag":-12, "keys":["ux","uy"] } ]
  },
  "control" : { "tf":0.1, "dt":0.01, "dtrefine":0.05, "gravity":[0,-9.81] }
}`

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. simulation data")

	sim, err := ReadSimBytes([]byte(testsim), ".", "sim01", 0)
	if err != nil {
		tst.Errorf("ReadSimBytes failed:\n%v", err)
		return
	}
	chk.Int(tst, "ndim", sim.Ndim, 2)
	chk.Int(tst, "fluid cells", len(sim.FluidMsh.Cells), 16)
	chk.Int(tst, "solid cells", len(sim.SolidMsh.Cells), 4)
	chk.Int(tst, "solid cell tag", sim.SolidMsh.Cells[0].Tag, -2)
	chk.Float64(tst, "viscosity", 1e-15, sim.Fluid.Viscosity, 0.1)
	chk.Float64(tst, "stab (default)", 1e-15, sim.Fluid.Stab, 0.1)
	chk.Float64(tst, "dtout", 1e-15, sim.Control.DtOut, 0.01)
	chk.Float64(tst, "dtsave", 1e-15, sim.Control.DtSave, 0.2)
	chk.Float64(tst, "dist (default)", 1e-15, sim.Fsi.Dist, 0.1)
	chk.Array(tst, "gravity", 1e-15, sim.Control.Gravity, []float64{0, -9.81})
	chk.Array(tst, "fluid bc values", 1e-15, sim.Fluid.FaceBcs[0].Vals, []float64{0, 0})
	chk.Float64(tst, "rho", 1e-15, sim.Solid.Prms.Find("rho").V, 2)
	if sim.EncType != "json" {
		tst.Errorf("encoder type should be json\n")
	}
	if sim.DirOut == "" {
		tst.Errorf("output directory should have been set\n")
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. invalid simulation data")

	_, err := ReadSimBytes([]byte(`{"fluid":{}}`), ".", "sim02", 0)
	if err == nil {
		tst.Errorf("ReadSimBytes should have failed without meshes\n")
	}

	_, err = ReadSimBytes([]byte(`{
	  "fluid" : { "mesh" : { "gen" : { "type":"qua4", "xmin":[0,0], "xmax":[4,4], "ndiv":[4,4] } } },
	  "solid" : { "mesh" : { "gen" : { "type":"qua4", "xmin":[1,1], "xmax":[2,2], "ndiv":[1,1] } } },
	  "control" : { "gravity":[0,0,1] }
	}`), ".", "sim02", 0)
	if err == nil {
		tst.Errorf("ReadSimBytes should have failed with wrong gravity\n")
	}

	_, err = ReadSim("/does/not/exist.sim", "", 0)
	if err == nil {
		tst.Errorf("ReadSim should have failed with missing file\n")
	}
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. simulation and mesh files")

	// solid mesh given in a file next to the .sim file
	dir := tst.TempDir()
	msh := `{
  "verts" : [
    { "id":0, "tag":0, "c":[1.5, 1.5] },
    { "id":1, "tag":0, "c":[2.5, 1.5] },
    { "id":2, "tag":0, "c":[2.5, 2.5] },
    { "id":3, "tag":0, "c":[1.5, 2.5] }
  ],
  "cells" : [
    { "id":0, "tag":-2, "type":"qua4", "verts":[0,1,2,3], "ftags":[-12,-11,-13,-10] }
  ]
}`
	sim := `{
  "fluid" : { "mesh" : { "gen" : { "type":"qua4", "xmin":[0,0], "xmax":[4,4], "ndiv":[4,4] } } },
  "solid" : {
    "mesh" : { "file" : "block.msh" },
    "prms" : [ {"n":"rho", "v":2} ]
  }
}`
	if err := os.WriteFile(filepath.Join(dir, "block.msh"), []byte(msh), 0644); err != nil {
		tst.Errorf("cannot write mesh file:\n%v", err)
		return
	}
	fn := filepath.Join(dir, "sim03.sim")
	if err := os.WriteFile(fn, []byte(sim), 0644); err != nil {
		tst.Errorf("cannot write simulation file:\n%v", err)
		return
	}
	o, err := ReadSim(fn, "a", 0)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	chk.String(tst, o.Key, "sim03-a")
	chk.Int(tst, "solid verts", len(o.SolidMsh.Verts), 4)
	chk.Int(tst, "solid cells", len(o.SolidMsh.Cells), 1)
	chk.Ints(tst, "verts on xmax", o.SolidMsh.FaceTag2verts[TagXmax], []int{1, 2})
	chk.String(tst, o.SolidMsh.FnamePath, filepath.Join(dir, "block.msh"))

	// missing files give errors
	_, err = ReadMsh(dir, "missing.msh", 0)
	if err == nil {
		tst.Errorf("ReadMsh should have failed with missing file\n")
	}
	if err = os.Remove(filepath.Join(dir, "block.msh")); err != nil {
		tst.Errorf("cannot remove mesh file:\n%v", err)
		return
	}
	_, err = ReadSim(fn, "", 0)
	if err == nil {
		tst.Errorf("ReadSim should have failed with missing mesh file\n")
	}
}
