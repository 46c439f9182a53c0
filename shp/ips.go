// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Ipoint holds integration point data: natural coordinates and weight
//  Ipoint = [r, s, t, w]
type Ipoint []float64

// GetIps returns a set of integration points for a given geometry type
//  Note: nip == 0 selects the default set
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	sets, ok := ipsfactory[geoType]
	if !ok {
		return nil, chk.Err("cannot find integration points for geometry type = %q", geoType)
	}
	if nip == 0 {
		nip = ipsdefault[geoType]
	}
	ips, ok = sets[nip]
	if !ok {
		return nil, chk.Err("cannot find set of %d integration points for geometry type = %q", nip, geoType)
	}
	return
}

// GetFaceIps returns the default set of integration points of the faces of a given geometry type
func GetFaceIps(geoType string) (ips []Ipoint, err error) {
	ftype := GetFaceType(geoType)
	if ftype == "" {
		return nil, chk.Err("cannot find face type of geometry type = %q", geoType)
	}
	return GetIps(ftype, 0)
}

// default number of integration points
var ipsdefault = map[string]int{
	"lin2": 2,
	"tri3": 3,
	"qua4": 4,
	"tet4": 4,
	"hex8": 8,
}

// ipsfactory holds all integration points sets
var ipsfactory = make(map[string]map[int][]Ipoint)

func init() {

	g := 1.0 / math.Sqrt(3.0)

	// lin
	ipsfactory["lin2"] = map[int][]Ipoint{
		2: {
			{-g, 0, 0, 1},
			{+g, 0, 0, 1},
		},
	}

	// tri
	ipsfactory["tri3"] = map[int][]Ipoint{
		1: {
			{1.0 / 3.0, 1.0 / 3.0, 0, 0.5},
		},
		3: {
			{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
		},
	}

	// qua
	ipsfactory["qua4"] = map[int][]Ipoint{
		1: {
			{0, 0, 0, 4},
		},
		4: {
			{-g, -g, 0, 1},
			{+g, -g, 0, 1},
			{+g, +g, 0, 1},
			{-g, +g, 0, 1},
		},
	}

	// tet
	a := (5.0 + 3.0*math.Sqrt(5.0)) / 20.0
	b := (5.0 - math.Sqrt(5.0)) / 20.0
	ipsfactory["tet4"] = map[int][]Ipoint{
		1: {
			{0.25, 0.25, 0.25, 1.0 / 6.0},
		},
		4: {
			{b, b, b, 1.0 / 24.0},
			{a, b, b, 1.0 / 24.0},
			{b, a, b, 1.0 / 24.0},
			{b, b, a, 1.0 / 24.0},
		},
	}

	// hex
	ipsfactory["hex8"] = map[int][]Ipoint{
		1: {
			{0, 0, 0, 8},
		},
		8: {
			{-g, -g, -g, 1},
			{+g, -g, -g, 1},
			{+g, +g, -g, 1},
			{-g, +g, -g, 1},
			{-g, -g, +g, 1},
			{+g, -g, +g, 1},
			{+g, +g, +g, 1},
			{-g, +g, +g, 1},
		},
	}
}
