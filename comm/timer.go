// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"time"

	"github.com/cpmech/gosl/io"
)

// Section holds the wall time spent in a named section
type Section struct {
	Name    string        // name of section
	Ncalls  int           // number of calls
	Elapsed time.Duration // total wall time
}

// Timer records wall time of named sections
type Timer struct {
	Start    time.Time           // creation time
	Sections []*Section          // sections in the order they were first entered
	index    map[string]*Section // name => section
	now      func() time.Time    // clock
}

// NewTimer returns a new Timer
func NewTimer() (o *Timer) {
	o = new(Timer)
	o.index = make(map[string]*Section)
	o.now = time.Now
	o.Start = o.now()
	return
}

// Scope starts timing section name and returns the function that stops it
//  Usage:
//   defer timer.Scope("Assemble system")()
func (o *Timer) Scope(name string) (stop func()) {
	s, ok := o.index[name]
	if !ok {
		s = &Section{Name: name}
		o.index[name] = s
		o.Sections = append(o.Sections, s)
	}
	t0 := o.now()
	return func() {
		s.Ncalls++
		s.Elapsed += o.now().Sub(t0)
	}
}

// Get returns the section with the given name or nil if it has never been entered
func (o *Timer) Get(name string) *Section {
	return o.index[name]
}

// Summary returns a table with the wall times
func (o *Timer) Summary() (l string) {
	total := o.now().Sub(o.Start)
	l = io.Sf("%s\n", "+---------------------------------------------+------------+--------------+---------+")
	l += io.Sf("| %-43s | %10s | %12s | %7s |\n", "Section", "no. calls", "wall time", "% total")
	l += io.Sf("%s\n", "+---------------------------------------------+------------+--------------+---------+")
	for _, s := range o.Sections {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(s.Elapsed) / float64(total)
		}
		l += io.Sf("| %-43s | %10d | %11.3es | %6.1f%% |\n", s.Name, s.Ncalls, s.Elapsed.Seconds(), pct)
	}
	l += io.Sf("%s\n", "+---------------------------------------------+------------+--------------+---------+")
	l += io.Sf("total wall time = %v\n", total)
	return
}
