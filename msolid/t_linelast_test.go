// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/Jie-Cheng/OpenIFEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func verbose() {
	chk.Verbose = true
}

func Test_linelast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast01. stiffness and stresses")

	prms := inp.Prms{{N: "E", V: 1000}, {N: "nu", V: 0.25}, {N: "rho", V: 2}}
	for _, ndim := range []int{2, 3} {
		mdl, err := New("lin-elast", ndim, prms)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		chk.Float64(tst, "rho", 1e-17, mdl.Rho(), 2)

		// D matrix
		nsig := mdl.Nsig()
		D := utl.Alloc(nsig, nsig)
		mdl.CalcD(D)
		io.Pforan("D = %v\n", D)
		λ, μ := 400.0, 400.0
		chk.Float64(tst, "D00", 1e-12, D[0][0], λ+2*μ)
		chk.Float64(tst, "D01", 1e-12, D[0][1], λ)
		chk.Float64(tst, "Dshear", 1e-12, D[nsig-1][nsig-1], μ)

		// σ = D ε with engineering shear
		ε := utl.Alloc(ndim, ndim)
		ε[0][0], ε[1][1], ε[0][1], ε[1][0] = 0.001, -0.002, 0.0005, 0.0005
		σ := utl.Alloc(ndim, ndim)
		mdl.CalcSig(σ, ε)
		v := make([]float64, nsig)
		v[0], v[1], v[ndim] = ε[0][0], ε[1][1], 2*ε[0][1]
		sv := make([]float64, nsig)
		for i := 0; i < nsig; i++ {
			for j := 0; j < nsig; j++ {
				sv[i] += D[i][j] * v[j]
			}
		}
		chk.Float64(tst, "σxx", 1e-12, σ[0][0], sv[0])
		chk.Float64(tst, "σyy", 1e-12, σ[1][1], sv[1])
		chk.Float64(tst, "σxy", 1e-12, σ[0][1], sv[ndim])
		chk.Float64(tst, "σyx", 1e-12, σ[1][0], sv[ndim])
	}
}

func Test_linelast02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast02. invalid data")

	if _, err := New("unknown", 2, nil); err == nil {
		tst.Errorf("unknown models must be reported\n")
	}
	if _, err := New("lin-elast", 2, inp.Prms{{N: "E", V: 1000}}); err == nil {
		tst.Errorf("missing density must be reported\n")
	}
	if _, err := New("lin-elast", 2, inp.Prms{{N: "E", V: 1}, {N: "nu", V: 0.5}, {N: "rho", V: 1}}); err == nil {
		tst.Errorf("incompressible material must be reported\n")
	}
	chk.Strings(tst, "names", Names(), []string{"lin-elast"})
}
