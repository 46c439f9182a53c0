// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "errors"

var (
	// ErrNoConvergence is returned when an iterative solver reaches the maximum number of iterations
	ErrNoConvergence = errors.New("solver did not converge")

	// ErrRecordCount is returned when a cell holds a number of records different than expected
	ErrRecordCount = errors.New("wrong number of cell records")
)
