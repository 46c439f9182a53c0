// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// TIME_TOL is the tolerance used to decide whether the end time has been reached
const TIME_TOL = 1e-12

// Time holds the time stepping state
type Time struct {
	End      float64 // end time
	Dt       float64 // time step size
	Current  float64 // current time
	Step     int     // current time step index
	DtOut    float64 // output interval
	DtRefine float64 // refinement interval
	DtSave   float64 // checkpoint interval
}

// NewTime returns a new Time at t=0
func NewTime(end, dt, dtOut, dtRefine, dtSave float64) *Time {
	return &Time{End: end, Dt: dt, DtOut: dtOut, DtRefine: dtRefine, DtSave: dtSave}
}

// Increment advances one time step
func (o *Time) Increment() {
	o.Current += o.Dt
	o.Step++
}

// Finished tells whether the end time has been reached
func (o *Time) Finished() bool {
	return o.End-o.Current <= TIME_TOL
}

// TimeToOutput tells whether results should be written at this step
func (o *Time) TimeToOutput() bool { return o.every(o.DtOut) }

// TimeToRefine tells whether the mesh should be adapted at this step
func (o *Time) TimeToRefine() bool { return o.every(o.DtRefine) }

// TimeToSave tells whether checkpoints should be written at this step
func (o *Time) TimeToSave() bool { return o.every(o.DtSave) }

// String returns a representation of the current time
func (o Time) String() string {
	return io.Sf("step = %d, t = %g", o.Step, o.Current)
}

// every tells whether the current step is a multiple of the number of steps in interval
func (o *Time) every(interval float64) bool {
	if o.Dt <= 0 {
		return false
	}
	delta := int(math.Floor(interval/o.Dt + 1e-10))
	if delta < 1 {
		delta = 1
	}
	return o.Step >= delta && o.Step%delta == 0
}
