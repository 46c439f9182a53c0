// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
)

// LinElast implements a linear elastic isotropic model
type LinElast struct {

	// parameters
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	rho float64 // density

	// derived
	Ndim int     // space dimension
	L    float64 // Lamé's λ
	G    float64 // shear modulus μ
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
func (o *LinElast) Init(ndim int, prms inp.Prms) (err error) {
	o.Ndim = ndim
	o.Nu = 0.3
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "rho":
			o.rho = p.V
		}
	}
	if o.E <= 0 {
		return chk.Err("Young's modulus E must be positive. E = %g is invalid\n", o.E)
	}
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("Poisson's coefficient must be in (-1, 0.5). nu = %g is invalid\n", o.Nu)
	}
	if o.rho <= 0 {
		return chk.Err("density must be positive. rho = %g is invalid\n", o.rho)
	}
	o.L = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}

// Rho returns the density
func (o *LinElast) Rho() float64 { return o.rho }

// Nsig returns the number of stress components in Voigt notation
func (o *LinElast) Nsig() int {
	if o.Ndim == 2 {
		return 3
	}
	return 6
}

// CalcD computes the stiffness matrix
//  Note: ordering is xx, yy, xy (2D) or xx, yy, zz, xy, yz, zx (3D)
func (o *LinElast) CalcD(D [][]float64) {
	nsig := o.Nsig()
	for i := 0; i < nsig; i++ {
		for j := 0; j < nsig; j++ {
			D[i][j] = 0
		}
	}
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			D[i][j] = o.L
		}
		D[i][i] += 2.0 * o.G
	}
	for i := o.Ndim; i < nsig; i++ {
		D[i][i] = o.G
	}
}

// CalcSig computes σ = λ tr(ε) I + 2 μ ε
func (o *LinElast) CalcSig(σ, ε [][]float64) {
	tr := 0.0
	for i := 0; i < o.Ndim; i++ {
		tr += ε[i][i]
	}
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			σ[i][j] = 2.0 * o.G * ε[i][j]
		}
		σ[i][i] += o.L * tr
	}
}
