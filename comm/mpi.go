// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build mpi

package comm

import (
	"github.com/cpmech/gosl/mpi"
)

// MPI implements Comm with the world communicator
type MPI struct {
	c    *mpi.Communicator
	orig []float64
}

func (o *MPI) Rank() int { return o.c.Rank() }
func (o *MPI) Size() int { return o.c.Size() }
func (o *MPI) Barrier()  { o.c.Barrier() }

// AllReduceSum sums x over all processes
func (o *MPI) AllReduceSum(x []float64) {
	if len(o.orig) < len(x) {
		o.orig = make([]float64, len(x))
	}
	orig := o.orig[:len(x)]
	copy(orig, x)
	o.c.AllReduceSum(x, orig)
}

// start starts MPI and returns the world communicator
func start() Comm {
	mpi.Start()
	if !mpi.IsOn() || mpi.WorldSize() < 2 {
		return Serial{}
	}
	return &MPI{c: mpi.NewCommunicator(nil)}
}

// stop finalises MPI
func stop() {
	mpi.Stop()
}
