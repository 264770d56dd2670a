// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/ele"
)

// EssentialBc holds information about one prescribed value at one equation
//
//   y[Eq] = Fcn(t, X)
//
type EssentialBc struct {
	Key string    // variable name
	Eq  int       // equation number
	Fcn dbf.T     // function
	X   []float64 // coordinates of vertex
}

// EbcArray is an array of EssentialBc's
type EbcArray []*EssentialBc

// EssentialBcs implements a structure to record the definition of prescribed values.
// Prescribed equations are removed from the system: their residuals are zero and their rows and
// columns of matrices are replaced by the identity
type EssentialBcs struct {
	Bcs EbcArray             // all bcs sorted by equation
	Eqs map[int]*EssentialBc // equation => bc
}

// Init initialises this structure
func (o *EssentialBcs) Init() {
	o.Bcs = make([]*EssentialBc, 0)
	o.Eqs = make(map[int]*EssentialBc)
}

// Set sets a prescribed value. A second definition at the same equation replaces the first one
func (o *EssentialBcs) Set(key string, eq int, fcn dbf.T, x []float64) {
	if bc, ok := o.Eqs[eq]; ok {
		bc.Key, bc.Fcn, bc.X = key, fcn, x
		return
	}
	bc := &EssentialBc{key, eq, fcn, x}
	o.Bcs = append(o.Bcs, bc)
	o.Eqs[eq] = bc
}

// Build sorts the bcs
func (o *EssentialBcs) Build() {
	sort.Sort(o.Bcs)
}

// Has tells whether equation eq is prescribed
func (o *EssentialBcs) Has(eq int) bool {
	_, ok := o.Eqs[eq]
	return ok
}

// FixValues sets the prescribed values at time sol.T
func (o *EssentialBcs) FixValues(sol *ele.Solution) {
	for _, bc := range o.Bcs {
		sol.Y[bc.Eq] = bc.Fcn.F(sol.T, bc.X)
	}
}

// ZeroResidual zeroes the residuals of prescribed equations
func (o *EssentialBcs) ZeroResidual(r []float64) {
	for _, bc := range o.Bcs {
		r[bc.Eq] = 0
	}
}

// List returns a list of bcs at time t
func (o *EssentialBcs) List(t float64) (l string) {
	for i, bc := range o.Bcs {
		if i > 0 {
			l += "\n"
		}
		l += io.Sf("%4d : %q = %g", bc.Eq, bc.Key, bc.Fcn.F(t, bc.X))
	}
	return
}

// Len returns the length of the array
func (o EbcArray) Len() int { return len(o) }

// Swap swaps two items
func (o EbcArray) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

// Less compares two items by equation number
func (o EbcArray) Less(i, j int) bool { return o[i].Eq < o[j].Eq }
