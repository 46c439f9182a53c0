// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// CellStore holds per-cell per-point records
//  Note: records are allocated by Init when the mesh is (re)built and are only overwritten afterwards
type CellStore[T any] struct {
	recs [][]T // [ncells][npoints]
}

// Init allocates npts[cid] records for each cell using alloc
func (o *CellStore[T]) Init(npts []int, alloc func() T) {
	o.recs = make([][]T, len(npts))
	for cid, n := range npts {
		o.recs[cid] = make([]T, n)
		for q := range o.recs[cid] {
			o.recs[cid][q] = alloc()
		}
	}
}

// Ncells returns the number of cells
func (o *CellStore[T]) Ncells() int {
	return len(o.recs)
}

// Get returns the records of cell cid, which must hold exactly n records
func (o *CellStore[T]) Get(cid, n int) (recs []T, err error) {
	if cid < 0 || cid >= len(o.recs) {
		return nil, chk.Err("%w: cell %d is not in store with %d cells", ErrRecordCount, cid, len(o.recs))
	}
	if len(o.recs[cid]) != n {
		return nil, chk.Err("%w: cell %d has %d records but %d are required", ErrRecordCount, cid, len(o.recs[cid]), n)
	}
	return o.recs[cid], nil
}

// Set replaces record q of cell cid
func (o *CellStore[T]) Set(cid, q int, rec T) (err error) {
	if cid < 0 || cid >= len(o.recs) || q < 0 || q >= len(o.recs[cid]) {
		return chk.Err("%w: record %d of cell %d does not exist", ErrRecordCount, q, cid)
	}
	o.recs[cid][q] = rec
	return
}
