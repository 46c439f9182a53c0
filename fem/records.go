// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/utl"

// Traction holds the traction vector at one face integration point of a solid cell
//  Note: face integration points of cell faces are numbered as idxface*nfip + ipf
type Traction struct {
	T []float64 // traction vector [ndim]
}

// NewTraction returns a new zero traction
func NewTraction(ndim int) *Traction {
	return &Traction{T: make([]float64, ndim)}
}

// FsiForce holds the forcing terms at one integration point of a fluid cell
type FsiForce struct {
	Indicator bool        // integration point is inside the solid
	Acc       []float64   // (ρs - ρf) (g - as) [ndim]
	Stress    [][]float64 // σf - σs [ndim][ndim]
}

// NewFsiForce returns a new cleared record
func NewFsiForce(ndim int) *FsiForce {
	return &FsiForce{Acc: make([]float64, ndim), Stress: utl.Alloc(ndim, ndim)}
}

// Reset clears the indicator and the jumps
func (o *FsiForce) Reset() {
	o.Indicator = false
	for i := range o.Acc {
		o.Acc[i] = 0
		for j := range o.Stress[i] {
			o.Stress[i][j] = 0
		}
	}
}
