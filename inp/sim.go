// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output and checkpoints; e.g. /tmp/openifem
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
	Restart bool   `json:"restart"` // try to restart from checkpoints found in DirOut
}

// MeshData holds data for reading or generating a mesh
type MeshData struct {
	File    string   `json:"file"`    // mesh file (.msh)
	AbsPath bool     `json:"abspath"` // mesh filename is given in absolute path
	Gen     *GenData `json:"gen"`     // structured mesh generation; used if File is empty
}

// Prm holds a material parameter
type Prm struct {
	N string  `json:"n"` // name
	V float64 `json:"v"` // value
}

// Prms holds many parameters
type Prms []*Prm

// Find finds a parameter by name
//  Note: returns nil if not found
func (o Prms) Find(name string) *Prm {
	for _, p := range o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// FaceBc holds face boundary condition
type FaceBc struct {
	Tag  int       `json:"tag"`  // tag of face
	Keys []string  `json:"keys"` // keys of prescribed components; e.g. "vx", "vy", "vz" or "ux", "uy", "uz"
	Vals []float64 `json:"vals"` // prescribed values corresponding to Keys
}

// FluidData holds data of the fluid region
type FluidData struct {
	Mesh      MeshData  `json:"mesh"`      // mesh
	Viscosity float64   `json:"viscosity"` // dynamic viscosity μ
	Rho       float64   `json:"rho"`       // density
	Stab      float64   `json:"stab"`      // pressure stabilisation coefficient α; δ = α h² / μ
	Nref      int       `json:"nref"`      // number of global refinements of the coarse mesh
	FaceBcs   []*FaceBc `json:"facebcs"`   // velocity boundary conditions
}

// SolidData holds data of the solid region
type SolidData struct {
	Mesh    MeshData  `json:"mesh"`    // mesh
	Model   string    `json:"model"`   // material model name; e.g. "lin-elast"
	Prms    Prms      `json:"prms"`    // material parameters
	Damping float64   `json:"damping"` // numerical damping: γ = 1/2 + damping
	FaceBcs []*FaceBc `json:"facebcs"` // displacement boundary conditions (zero values only)
}

// ControlData holds data for defining the simulation time stepping
type ControlData struct {
	Tf       float64   `json:"tf"`       // final time
	Dt       float64   `json:"dt"`       // time step size
	DtOut    float64   `json:"dtout"`    // time step size for output
	DtRefine float64   `json:"dtrefine"` // time step size for mesh refinement
	DtSave   float64   `json:"dtsave"`   // time step size for checkpoints
	Gravity  []float64 `json:"gravity"`  // gravity vector [ndim]
}

// FsiData holds data for the coupling
type FsiData struct {
	Dist    float64 `json:"dist"`    // refinement proximity threshold
	MaxHops int     `json:"maxhops"` // max number of steps of neighbour walks in point location
	Nnear   int     `json:"nnear"`   // number of nearest cells tried before brute force in point location
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data    Data        `json:"data"`    // global simulation data
	Fluid   FluidData   `json:"fluid"`   // fluid data
	Solid   SolidData   `json:"solid"`   // solid data
	Control ControlData `json:"control"` // time control
	Fsi     FsiData     `json:"fsi"`     // coupling data

	// derived
	GoroutineId int    // id of goroutine to avoid race problems
	DirOut      string // directory to save results
	Key         string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType     string // encoder type
	Ndim        int    // space dimension
	FluidMsh    *Mesh  // coarse fluid mesh
	SolidMsh    *Mesh  // solid mesh
}

// Simulation //////////////////////////////////////////////////////////////////////////////////////

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, goroutineId int) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	key := io.FnKey(filepath.Base(simfilepath))
	if alias != "" {
		key += "-" + alias
	}
	return ReadSimBytes(b, dir, key, goroutineId)
}

// ReadSimBytes decodes simulation data and computes derived data
//  dir -- directory of mesh files with relative paths
//  key -- simulation key
func ReadSimBytes(b []byte, dir, key string, goroutineId int) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)
	o.GoroutineId = goroutineId
	o.Key = key

	// set default values
	o.SetDefault()

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file:\n%v", err)
	}

	// meshes
	o.FluidMsh, err = o.Fluid.Mesh.Read(dir, goroutineId)
	if err != nil {
		return nil, chk.Err("cannot read fluid mesh:\n%v", err)
	}
	o.SolidMsh, err = o.Solid.Mesh.Read(dir, goroutineId)
	if err != nil {
		return nil, chk.Err("cannot read solid mesh:\n%v", err)
	}
	if o.FluidMsh.Ndim != o.SolidMsh.Ndim {
		return nil, chk.Err("Ndim value is inconsistent: fluid=%d solid=%d\n", o.FluidMsh.Ndim, o.SolidMsh.Ndim)
	}
	o.Ndim = o.FluidMsh.Ndim

	// derived
	err = o.PostProcess()
	return
}

// Read reads or generates a mesh
func (o *MeshData) Read(dir string, goroutineId int) (*Mesh, error) {
	if o.File == "" {
		if o.Gen == nil {
			return nil, chk.Err("either a mesh file or the generation data must be given\n")
		}
		return GenMesh(o.Gen, goroutineId)
	}
	if o.AbsPath {
		dir = ""
	}
	return ReadMsh(dir, o.File, goroutineId)
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *Simulation) SetDefault() {

	// data
	o.Data.Encoder = "gob"

	// fluid
	o.Fluid.Viscosity = 1.0
	o.Fluid.Rho = 1.0
	o.Fluid.Stab = 0.1

	// solid
	o.Solid.Model = "lin-elast"

	// control
	o.Control.Tf = 1
	o.Control.Dt = 1

	// coupling
	o.Fsi.Dist = 0.1
	o.Fsi.MaxHops = 20
	o.Fsi.Nnear = 8
}

// PostProcess performs a post-processing of the just read json file
func (o *Simulation) PostProcess() (err error) {

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "openifem", o.Key)
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// time control
	if o.Control.Tf < 1e-14 {
		o.Control.Tf = 1
	}
	if o.Control.Dt < 1e-14 {
		o.Control.Dt = o.Control.Tf
	}
	if o.Control.DtOut < o.Control.Dt {
		o.Control.DtOut = o.Control.Dt
	}
	if o.Control.DtRefine < 1e-14 {
		o.Control.DtRefine = 2 * o.Control.Tf
	}
	if o.Control.DtSave < 1e-14 {
		o.Control.DtSave = 2 * o.Control.Tf
	}

	// gravity
	if len(o.Control.Gravity) == 0 {
		o.Control.Gravity = make([]float64, o.Ndim)
	}
	if len(o.Control.Gravity) != o.Ndim {
		return chk.Err("gravity vector must have %d components. %d is incorrect\n", o.Ndim, len(o.Control.Gravity))
	}

	// boundary conditions
	for _, bcs := range [][]*FaceBc{o.Fluid.FaceBcs, o.Solid.FaceBcs} {
		for _, fbc := range bcs {
			if len(fbc.Vals) == 0 {
				fbc.Vals = make([]float64, len(fbc.Keys))
			}
			if len(fbc.Vals) != len(fbc.Keys) {
				return chk.Err("face boundary condition with tag %d: number of values must be equal to number of keys\n", fbc.Tag)
			}
		}
	}

	// material
	if o.Solid.Prms.Find("rho") == nil {
		return chk.Err("solid material parameters must include \"rho\"\n")
	}

	// coupling
	if o.Fsi.MaxHops < 0 {
		o.Fsi.MaxHops = 0
	}
	if o.Fsi.Nnear < 1 {
		o.Fsi.Nnear = 1
	}
	return
}
