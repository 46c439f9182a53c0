// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"github.com/cpmech/gosl/io"
)

// Context holds the execution context passed to all components
type Context struct {
	Comm    Comm   // communicator
	Verbose bool   // show messages (root only)
	Timer   *Timer // wall-time sections
}

// Start starts the communicator and returns a new Context
//  Note: Close must be called at the end of the program
func Start(verbose bool) (o *Context) {
	return NewContext(start(), verbose)
}

// NewContext returns a new Context with a given communicator
func NewContext(c Comm, verbose bool) (o *Context) {
	o = new(Context)
	o.Comm = c
	o.Verbose = verbose
	o.Timer = NewTimer()
	return
}

// Close prints the timer summary (if verbose) and stops the communicator
func (o *Context) Close() {
	if o.Verbose && o.Root() && len(o.Timer.Sections) > 0 {
		io.Pf("\n%s", o.Timer.Summary())
	}
	stop()
}

// Root tells whether this is the root process
func (o *Context) Root() bool {
	return o.Comm.Rank() == 0
}

// Owns tells whether cells of partition part are handled by this process
func (o *Context) Owns(part int) bool {
	return part%o.Comm.Size() == o.Comm.Rank()
}

// Pf prints a message on the root process if verbose
func (o *Context) Pf(msg string, prm ...interface{}) {
	if o.Verbose && o.Root() {
		io.Pf(msg, prm...)
	}
}

// Pfyel prints a yellow message on the root process if verbose
func (o *Context) Pfyel(msg string, prm ...interface{}) {
	if o.Verbose && o.Root() {
		io.Pfyel(msg, prm...)
	}
}

// Pfgreen prints a green message on the root process if verbose
func (o *Context) Pfgreen(msg string, prm ...interface{}) {
	if o.Verbose && o.Root() {
		io.PfGreen(msg, prm...)
	}
}
