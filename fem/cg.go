// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SolveCG solves K ⋅ x = b with the Jacobi-preconditioned conjugate gradient method
//  Input:
//   x     -- initial guess; solution on exit
//   tol   -- tolerance relative to |b|
//   maxit -- max number of iterations; 0 means len(b)
//  Output:
//   nit -- number of iterations
//   err -- wraps ErrNoConvergence if maxit is reached
func SolveCG(K *mat.Dense, x, b []float64, tol float64, maxit int) (nit int, err error) {

	// auxiliary
	n := len(b)
	if maxit < 1 {
		maxit = n
	}
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		for i := range x {
			x[i] = 0
		}
		return
	}
	dinv := make([]float64, n)
	for i := 0; i < n; i++ {
		d := K.At(i, i)
		if d == 0 {
			return 0, chk.Err("zero diagonal at equation %d\n", i)
		}
		dinv[i] = 1.0 / d
	}

	// r = b - K x
	r := make([]float64, n)
	Kp := make([]float64, n)
	mul := func(y, v []float64) {
		mat.NewVecDense(n, y).MulVec(K, mat.NewVecDense(n, v))
	}
	mul(Kp, x)
	floats.SubTo(r, b, Kp)

	// z = M⁻¹ r; p = z
	z := make([]float64, n)
	floats.MulTo(z, dinv, r)
	p := make([]float64, n)
	copy(p, z)
	rz := floats.Dot(r, z)

	// iterations
	var res float64
	for nit = 0; nit < maxit; nit++ {
		res = floats.Norm(r, 2)
		if res <= tol*bnorm {
			return
		}
		mul(Kp, p)
		pKp := floats.Dot(p, Kp)
		if pKp <= 0 || math.IsNaN(pKp) {
			return nit, chk.Err("matrix is not positive-definite: pᵀKp = %g\n", pKp)
		}
		α := rz / pKp
		floats.AddScaled(x, α, p)
		floats.AddScaled(r, -α, Kp)
		floats.MulTo(z, dinv, r)
		rzNew := floats.Dot(r, z)
		floats.AddScaledTo(p, z, rzNew/rz, p)
		rz = rzNew
	}
	res = floats.Norm(r, 2)
	if res <= tol*bnorm {
		return
	}
	return nit, chk.Err("%w: CG reached %d iterations with residual %g (tolerance %g)", ErrNoConvergence, nit, res, tol*bnorm)
}
