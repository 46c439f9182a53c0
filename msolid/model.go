// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for solids
package msolid

import (
	"sort"

	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
)

// Model defines solid models for small strains
//  Note: in 2D, plane-strain conditions are assumed
type Model interface {
	Init(ndim int, prms inp.Prms) error // Init initialises model
	Rho() float64                       // Rho returns the density
	Nsig() int                          // Nsig returns the number of stress components in Voigt notation
	CalcD(D [][]float64)                // CalcD computes the stiffness matrix [nsig][nsig] with engineering shear strains
	CalcSig(σ, ε [][]float64)           // CalcSig computes the stress tensor σ[ndim][ndim] corresponding to strains ε
}

// New returns a new and initialised model
func New(name string, ndim int, prms inp.Prms) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find solid model named %q. available: %v\n", name, Names())
	}
	model = allocator()
	err = model.Init(ndim, prms)
	if err != nil {
		return nil, chk.Err("cannot initialise model %q:\n%v", name, err)
	}
	return
}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all available models
var allocators = map[string]func() Model{}
