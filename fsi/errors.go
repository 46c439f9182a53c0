// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsi

import (
	"errors"

	"github.com/Jie-Cheng/OpenIFEM/fem"
)

// fatal errors of the coupling
var (
	// ErrSolidPointLost is returned when a point classified as inside the solid cannot be located in the solid mesh
	ErrSolidPointLost = errors.New("point inside the solid cannot be located in the solid mesh")

	// ErrCheckpointTime is returned when the solid and fluid checkpoints hold different times
	ErrCheckpointTime = errors.New("solid and fluid checkpoints have different times")

	// ErrNestedMotion is returned when the solid mesh is displaced while already displaced
	ErrNestedMotion = errors.New("solid mesh is already in the displaced configuration")

	// ErrNoConvergence is returned when the solid solver does not converge
	ErrNoConvergence = fem.ErrNoConvergence

	// ErrRecordCount is returned when cells hold a wrong number of integration point records
	ErrRecordCount = fem.ErrRecordCount
)
