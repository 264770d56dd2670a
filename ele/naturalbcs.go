// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/fun/dbf"

// NaturalBc holds information on natural boundary conditions such as fluxes prescribed at
// boundary vertices
type NaturalBc struct {
	Key  string // variable name
	Vert int    // boundary vertex
	Comp int    // component of array variable
	Fcn  dbf.T  // function callback: flux q(t, x)
}

// AddToResidual adds the flux contribution -q to the residual at equation eq
func (o *NaturalBc) AddToResidual(r []float64, eq int, t float64, x []float64) {
	r[eq] -= o.Fcn.F(t, x)
}
