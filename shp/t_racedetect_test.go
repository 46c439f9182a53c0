// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_race01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("race01. face normals and inverse maps in goroutines")

	// one copy of qua4 per goroutine; cell [0,2]×[0,1]
	nchan := 4
	type result struct {
		jf float64
		r  []float64
	}
	done := make(chan result, nchan)
	x := [][]float64{
		{0, 2, 2, 0},
		{0, 0, 1, 1},
	}
	for i := 0; i < nchan; i++ {
		go func(shape *Shape, idx int) {
			r := make([]float64, 3)
			if !shape.IsInside(r, []float64{1.5, 0.25}, x) {
				done <- result{-1, nil}
				return
			}
			ipf := Ipoint{0, 0, 0, 2}
			if err := shape.CalcAtFaceIp(x, ipf, idx%4); err != nil {
				done <- result{-1, nil}
				return
			}
			_, jf := shape.UnitNormal()
			if idx%2 == 1 {
				jf *= 2
			}
			done <- result{jf, r}
		}(Get("qua4", i+1), i)
	}

	// bottom/top faces have jf = 1; right/left faces have jf = 0.5 (scaled by 2 above)
	for i := 0; i < nchan; i++ {
		res := <-done
		chk.Float64(tst, "jf", 1e-15, res.jf, 1)
		chk.Array(tst, "r", 1e-12, res.r[:2], []float64{0.5, -0.5})
	}
}
