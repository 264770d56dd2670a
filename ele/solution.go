// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/utl"

// Solution holds the solution data @ nodes.
//
//        / u \
//  Y  =  | v |   where u, v, ... are the variables; ordered by node first: eq = Eqs[vert][var][comp]
//        \ . /
//
type Solution struct {

	// current state
	T    float64   // current time
	Dt   float64   // current time increment
	Y    []float64 // DOFs (solution variables)
	Dydt []float64 // dy/dt

	// backup
	Tbkp float64   // time before last step
	Ybkp []float64 // Y before last step
}

// NewSolution allocates a new solution with neq equations
func NewSolution(neq int) *Solution {
	return &Solution{Y: make([]float64, neq), Dydt: make([]float64, neq), Ybkp: make([]float64, neq)}
}

// Reset clear values
func (o *Solution) Reset() {
	o.T = 0
	utl.Fill(o.Y, 0)
	utl.Fill(o.Dydt, 0)
}

// Backup saves the current state
func (o *Solution) Backup() {
	o.Tbkp = o.T
	copy(o.Ybkp, o.Y)
}

// Restore goes back to the state saved by Backup
func (o *Solution) Restore() {
	o.T = o.Tbkp
	copy(o.Y, o.Ybkp)
}
