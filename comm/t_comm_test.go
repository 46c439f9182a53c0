// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"strings"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	chk.Verbose = true
}

func Test_comm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("comm01. serial communicator and context")

	ctx := NewContext(Serial{}, chk.Verbose)
	chk.Int(tst, "rank", ctx.Comm.Rank(), 0)
	chk.Int(tst, "size", ctx.Comm.Size(), 1)
	if !ctx.Root() {
		tst.Errorf("serial context must be root\n")
	}
	for _, part := range []int{0, 1, 5} {
		if !ctx.Owns(part) {
			tst.Errorf("serial context must own partition %d\n", part)
		}
	}

	x := []float64{1, 2, 3}
	ctx.Comm.AllReduceSum(x)
	ctx.Comm.Barrier()
	chk.Array(tst, "x", 1e-17, x, []float64{1, 2, 3})
	ctx.Pf("a message\n")
}

func Test_timer01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("timer01. sections")

	// fake clock
	t := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	timer := NewTimer()
	timer.now = func() time.Time { return t }
	timer.Start = t

	for i := 0; i < 3; i++ {
		stop := timer.Scope("Find solid BC")
		t = t.Add(2 * time.Second)
		stop()
	}
	func() {
		defer timer.Scope("Run fluid solver")()
		t = t.Add(4 * time.Second)
	}()

	chk.Int(tst, "nsections", len(timer.Sections), 2)
	s := timer.Get("Find solid BC")
	chk.Int(tst, "ncalls", s.Ncalls, 3)
	chk.Float64(tst, "elapsed", 1e-15, s.Elapsed.Seconds(), 6)
	chk.Float64(tst, "elapsed", 1e-15, timer.Get("Run fluid solver").Elapsed.Seconds(), 4)
	if timer.Get("unknown") != nil {
		tst.Errorf("unknown section must be nil\n")
	}

	l := timer.Summary()
	io.Pf("%s", l)
	if !strings.Contains(l, "Find solid BC") || !strings.Contains(l, "60.0%") {
		tst.Errorf("summary is incorrect:\n%s", l)
	}
}
