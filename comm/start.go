// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !mpi

package comm

// start returns the serial communicator
func start() Comm { return Serial{} }

// stop does nothing in serial runs
func stop() {}
