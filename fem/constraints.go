// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Entry holds one term of a constraint line
type Entry struct {
	Eq int     // equation
	W  float64 // weight
}

// Line holds an affine constraint:
//
//   y[Eq] = Σ_k Entries[k].W ⋅ y[Entries[k].Eq] + C
//
type Line struct {
	Eq      int     // constrained equation
	Entries []Entry // dependencies; empty for Dirichlet conditions
	C       float64 // inhomogeneity
}

// Constraints holds a set of affine constraint lines
//  Note: a line is never replaced once added; i.e. the first writer wins
type Constraints struct {
	lines  map[int]*Line // eq => line
	closed bool          // chains have been resolved
}

// NewConstraints returns a new empty set of constraints
func NewConstraints() *Constraints {
	return &Constraints{lines: make(map[int]*Line)}
}

// Add adds a homogeneous line for equation eq; nothing happens if eq is already constrained
func (o *Constraints) Add(eq int) {
	if _, ok := o.lines[eq]; ok {
		return
	}
	o.lines[eq] = &Line{Eq: eq}
	o.closed = false
}

// AddEntry adds w ⋅ y[k] to the line of eq
func (o *Constraints) AddEntry(eq, k int, w float64) {
	l := o.get(eq)
	l.Entries = addEntry(l.Entries, k, w)
	o.closed = false
}

// SetInhomogeneity sets the constant term of the line of eq
func (o *Constraints) SetInhomogeneity(eq int, c float64) {
	o.get(eq).C = c
}

// IsConstrained tells whether eq is constrained
func (o *Constraints) IsConstrained(eq int) bool {
	_, ok := o.lines[eq]
	return ok
}

// Line returns the line of eq or nil
func (o *Constraints) Line(eq int) *Line {
	return o.lines[eq]
}

// Nlines returns the number of lines
func (o *Constraints) Nlines() int {
	return len(o.lines)
}

// Lines returns all lines sorted by equation
func (o *Constraints) Lines() (res []*Line) {
	res = make([]*Line, 0, len(o.lines))
	for _, eq := range o.eqs() {
		res = append(res, o.lines[eq])
	}
	return
}

// Clear removes all lines
func (o *Constraints) Clear() {
	o.lines = make(map[int]*Line)
	o.closed = false
}

// CopyFrom replaces all lines by copies of the lines in other
func (o *Constraints) CopyFrom(other *Constraints) {
	o.Clear()
	for eq, l := range other.lines {
		o.lines[eq] = l.copy()
	}
	o.closed = other.closed
}

// Merge adds copies of the lines in other; lines already in o are kept (left object wins)
func (o *Constraints) Merge(other *Constraints) {
	for eq, l := range other.lines {
		if _, ok := o.lines[eq]; ok {
			continue
		}
		o.lines[eq] = l.copy()
		o.closed = false
	}
}

// Close resolves chains of constraints such that entries only refer to unconstrained equations
func (o *Constraints) Close() (err error) {
	eqs := o.eqs()
	for it := 0; ; it++ {
		if it > len(eqs) {
			return chk.Err("constraints have cycles\n")
		}
		changed := false
		for _, eq := range eqs {
			l := o.lines[eq]
			expand := false
			for _, e := range l.Entries {
				if _, ok := o.lines[e.Eq]; ok {
					expand = true
					break
				}
			}
			if !expand {
				continue
			}
			var entries []Entry
			c := l.C
			for _, e := range l.Entries {
				m, ok := o.lines[e.Eq]
				if !ok {
					entries = addEntry(entries, e.Eq, e.W)
					continue
				}
				if m.Eq == eq {
					return chk.Err("equation %d depends on itself\n", eq)
				}
				c += e.W * m.C
				for _, f := range m.Entries {
					entries = addEntry(entries, f.Eq, e.W*f.W)
				}
			}
			l.Entries, l.C = entries, c
			changed = true
		}
		if !changed {
			break
		}
	}
	o.closed = true
	return
}

// Distribute sets the constrained values of vec
func (o *Constraints) Distribute(vec []float64) (err error) {
	if !o.closed {
		if err = o.Close(); err != nil {
			return
		}
	}
	for _, l := range o.lines {
		v := l.C
		for _, e := range l.Entries {
			v += e.W * vec[e.Eq]
		}
		vec[l.Eq] = v
	}
	return
}

// String returns a representation of all lines
func (o *Constraints) String() (l string) {
	for _, line := range o.Lines() {
		l += io.Sf("%d =", line.Eq)
		for _, e := range line.Entries {
			l += io.Sf(" %g*y[%d] +", e.W, e.Eq)
		}
		l += io.Sf(" %g\n", line.C)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Constraints) get(eq int) *Line {
	l, ok := o.lines[eq]
	if !ok {
		chk.Panic("equation %d is not constrained. call Add first", eq)
	}
	return l
}

func (o *Constraints) eqs() (eqs []int) {
	eqs = make([]int, 0, len(o.lines))
	for eq := range o.lines {
		eqs = append(eqs, eq)
	}
	sort.Ints(eqs)
	return
}

func (o *Line) copy() *Line {
	return &Line{Eq: o.Eq, Entries: append([]Entry{}, o.Entries...), C: o.C}
}

func addEntry(entries []Entry, eq int, w float64) []Entry {
	for i := range entries {
		if entries[i].Eq == eq {
			entries[i].W += w
			return entries
		}
	}
	return append(entries, Entry{eq, w})
}
