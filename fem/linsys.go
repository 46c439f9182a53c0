// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/Jie-Cheng/OpenIFEM/comm"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// LinSys holds a dense linear system K ⋅ x = F
type LinSys struct {
	N int        // number of equations
	K *mat.Dense // matrix [N][N]
	F []float64  // right-hand side [N]
}

// NewLinSys returns a new zeroed system with n equations
func NewLinSys(n int) (o *LinSys) {
	if n < 1 {
		chk.Panic("number of equations must be positive. %d is invalid", n)
	}
	o = new(LinSys)
	o.N = n
	o.K = mat.NewDense(n, n, nil)
	o.F = make([]float64, n)
	return
}

// Zero clears K and F
func (o *LinSys) Zero() {
	o.K.Zero()
	for i := range o.F {
		o.F[i] = 0
	}
}

// Assemble adds local contributions to K and F
//  Note: Ke or Fe may be nil
func (o *LinSys) Assemble(eqs []int, Ke [][]float64, Fe []float64) {
	for i, I := range eqs {
		if Fe != nil {
			o.F[I] += Fe[i]
		}
		if Ke == nil {
			continue
		}
		for j, J := range eqs {
			o.K.Set(I, J, o.K.At(I, J)+Ke[i][j])
		}
	}
}

// Reduce sums the contributions of all processes
func (o *LinSys) Reduce(c comm.Comm) {
	c.AllReduceSum(o.K.RawMatrix().Data)
	c.AllReduceSum(o.F)
}

// MulVec computes y := K ⋅ x
func (o *LinSys) MulVec(y, x []float64) {
	res := mat.NewVecDense(o.N, y)
	res.MulVec(o.K, mat.NewVecDense(o.N, x))
}

// SolveLagrange solves the system subject to constraints using Lagrange multipliers
//
//   [ K  Aᵀ ] [ x ]   [ F ]
//   [ A  0  ] [ λ ] = [ c ]
//
//  where each line y[eq] - Σ w y[k] = c of cons is a row of A
func (o *LinSys) SolveLagrange(x []float64, cons *Constraints) (err error) {
	lines := cons.Lines()
	nl := len(lines)
	n := o.N + nl
	Kb := mat.NewDense(n, n, nil)
	Kb.Slice(0, o.N, 0, o.N).(*mat.Dense).Copy(o.K)
	fb := mat.NewVecDense(n, nil)
	for i, v := range o.F {
		fb.SetVec(i, v)
	}
	for i, l := range lines {
		r := o.N + i
		Kb.Set(r, l.Eq, 1)
		Kb.Set(l.Eq, r, 1)
		for _, e := range l.Entries {
			Kb.Set(r, e.Eq, Kb.At(r, e.Eq)-e.W)
			Kb.Set(e.Eq, r, Kb.At(e.Eq, r)-e.W)
		}
		fb.SetVec(r, l.C)
	}
	var xb mat.VecDense
	if err = xb.SolveVec(Kb, fb); err != nil {
		return chk.Err("cannot solve augmented system with %d equations and %d constraints:\n%v", o.N, nl, err)
	}
	for i := 0; i < o.N; i++ {
		x[i] = xb.AtVec(i)
	}
	return
}

// Condense applies Dirichlet lines (lines without entries) by modifying K and F such that
// x[eq] = c holds for the solution of the modified system; symmetry of K is preserved
func (o *LinSys) Condense(cons *Constraints) (err error) {
	lines := cons.Lines()
	for _, l := range lines {
		if len(l.Entries) > 0 {
			return chk.Err("cannot condense line of equation %d with %d entries\n", l.Eq, len(l.Entries))
		}
	}
	for _, l := range lines {
		if l.C != 0 {
			for i := 0; i < o.N; i++ {
				o.F[i] -= o.K.At(i, l.Eq) * l.C
			}
		}
	}
	for _, l := range lines {
		d := o.K.At(l.Eq, l.Eq)
		if d == 0 {
			d = 1
		}
		for i := 0; i < o.N; i++ {
			o.K.Set(i, l.Eq, 0)
			o.K.Set(l.Eq, i, 0)
		}
		o.K.Set(l.Eq, l.Eq, d)
		o.F[l.Eq] = d * l.C
	}
	return
}
