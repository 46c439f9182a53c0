// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// Snapshot holds the current and previous values of a dof vector
//  Note: Previous is only written by Finalize
type Snapshot struct {
	Current  []float64 // values being computed
	Previous []float64 // values at the end of the last converged time step
}

// NewSnapshot returns a new zeroed Snapshot
func NewSnapshot(n int) *Snapshot {
	return &Snapshot{Current: make([]float64, n), Previous: make([]float64, n)}
}

// Finalize copies Current into Previous
func (o *Snapshot) Finalize() {
	copy(o.Previous, o.Current)
}
