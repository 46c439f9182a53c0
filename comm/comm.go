// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package comm implements the execution context shared by all components: communicator, messages
// and wall-time sections
package comm

// Comm defines the collective operations needed by the solvers and the coupling
type Comm interface {
	Rank() int                // rank of this process
	Size() int                // number of processes
	AllReduceSum(x []float64) // x := Σ_ranks x
	Barrier()                 // waits for all processes
}

// Serial implements Comm for runs with one process
type Serial struct{}

func (o Serial) Rank() int                { return 0 }
func (o Serial) Size() int                { return 1 }
func (o Serial) AllReduceSum(x []float64) {}
func (o Serial) Barrier()                 {}
