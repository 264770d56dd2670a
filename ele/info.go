// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/utl"

// Variable holds the definition of a solution variable
type Variable struct {
	Name  string // name; e.g. "u"
	Id    int    // index in the list of variables of the problem
	Ncomp int    // number of components; 1 for standard variables
}

// IsArray tells whether the variable has more than one component
func (o *Variable) IsArray() bool { return o.Ncomp > 1 }

// Values holds the values of a variable on the bound element
type Values struct {
	Var      *Variable     // the variable
	Nodal    [][]float64   // [nverts][ncomp] nodal values
	NodalDot [][]float64   // [nverts][ncomp] nodal values of du/dt
	U        [][]float64   // [nqp][ncomp] values at integration points
	Udot     [][]float64   // [nqp][ncomp] du/dt at integration points
	GradU    [][][]float64 // [nqp][ncomp][ndim] gradients at integration points
}

// newValues allocates values
func newValues(v *Variable, nverts, nqp, ndim int) (o *Values) {
	o = &Values{Var: v}
	o.Nodal = utl.Alloc(nverts, v.Ncomp)
	o.NodalDot = utl.Alloc(nverts, v.Ncomp)
	o.U = utl.Alloc(nqp, v.Ncomp)
	o.Udot = utl.Alloc(nqp, v.Ncomp)
	o.GradU = make([][][]float64, nqp)
	for qp := 0; qp < nqp; qp++ {
		o.GradU[qp] = utl.Alloc(v.Ncomp, ndim)
	}
	return
}

// fits tells whether the values have the right sizes
func (o *Values) fits(nverts, nqp int) bool {
	return len(o.Nodal) == nverts && len(o.U) == nqp
}
