// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/mphys/ad"
	"github.com/cpmech/mphys/resolve"
)

// Base implements the common part of kernels: name, variables, restriction and access to the
// bound element at the current (qp, i, j)
type Base struct {
	name    string
	v       *Variable
	coupled []string
	blocks  map[int]bool      // nil means everywhere
	R       *resolve.Resolver // resolves properties of the kernel
	A       *Assembly         // bound element
}

// NewKernelBase returns a new base structure for kernels acting on variable v
//  Input:
//   coupled -- names of coupled variables
//   blocks  -- restriction; empty means everywhere
func NewKernelBase(name string, v *Variable, coupled []string, blocks []int, r *resolve.Resolver) (o Base) {
	o = Base{name: name, v: v, coupled: coupled, R: r}
	if len(blocks) > 0 {
		o.blocks = make(map[int]bool)
		for _, b := range blocks {
			o.blocks[b] = true
		}
	}
	return
}

// Name returns the name of the kernel
func (o *Base) Name() string { return o.name }

// Var returns the variable the kernel acts on
func (o *Base) Var() *Variable { return o.v }

// Coupled returns the names of the coupled variables
func (o *Base) Coupled() []string { return o.coupled }

// Block tells whether the kernel acts on block b
func (o *Base) Block(b int) bool { return o.blocks == nil || o.blocks[b] }

// Bind binds the data of the current element
func (o *Base) Bind(a *Assembly) { o.A = a }

// Refresh updates the constant and function properties of the kernel for the current element
func (o *Base) Refresh(a *Assembly) {
	if o.R != nil {
		o.R.Refresh(a.Nqp, a.T, a.Xqp)
	}
}

// indices and shape functions //////////////////////////////////////////////////////////////////////

// Qp returns the index of the current integration point
func (o *Base) Qp() int { return o.A.Qp }

// Test returns the test function i at the current integration point
func (o *Base) Test() float64 { return o.A.Phi[o.A.Qp][o.A.I] }

// GradTest returns the gradient of test function i at the current integration point
func (o *Base) GradTest() []float64 { return o.A.GradPhi[o.A.Qp][o.A.I] }

// Phi returns the trial function j at the current integration point
func (o *Base) Phi() float64 { return o.A.Phi[o.A.Qp][o.A.J] }

// GradPhi returns the gradient of trial function j at the current integration point
func (o *Base) GradPhi() []float64 { return o.A.GradPhi[o.A.Qp][o.A.J] }

// X returns the coordinates of the current integration point
func (o *Base) X() []float64 { return o.A.Xqp[o.A.Qp] }

// values ///////////////////////////////////////////////////////////////////////////////////////////

// U returns the value of the (scalar) variable at the current integration point
func (o *Base) U() float64 { return o.A.Values[o.v.Name].U[o.A.Qp][0] }

// Udot returns du/dt at the current integration point
func (o *Base) Udot() float64 { return o.A.Values[o.v.Name].Udot[o.A.Qp][0] }

// GradU returns the gradient of the (scalar) variable at the current integration point
func (o *Base) GradU() []float64 { return o.A.Values[o.v.Name].GradU[o.A.Qp][0] }

// Uarr returns all components of the (array) variable at the current integration point
func (o *Base) Uarr() []float64 { return o.A.Values[o.v.Name].U[o.A.Qp] }

// UarrDot returns du/dt of all components at the current integration point
func (o *Base) UarrDot() []float64 { return o.A.Values[o.v.Name].Udot[o.A.Qp] }

// GradUarr returns the [ncomp][ndim] gradients of the (array) variable at the current point
func (o *Base) GradUarr() [][]float64 { return o.A.Values[o.v.Name].GradU[o.A.Qp] }

// CoupledU returns the values of coupled variable name at the current integration point
func (o *Base) CoupledU(name string) []float64 { return o.A.Values[name].U[o.A.Qp] }

// NeighborU returns the values of variable name of the neighbour element at the current
// integration point or nil if there is no neighbour
func (o *Base) NeighborU(name string) []float64 {
	if o.A.Neighbor == nil {
		return nil
	}
	return o.A.Neighbor.Values[name].U[o.A.Qp]
}

// NeighborPhi returns the trial function j of the neighbour element at the current integration point
func (o *Base) NeighborPhi() float64 { return o.A.Neighbor.Phi[o.A.Qp][o.A.J] }

// ADU returns the value of the (scalar) variable at the current point as a dual number with
// derivatives with respect to the nodal values
func (o *Base) ADU() ad.Real {
	return ad.Seed(o.A.Phi[o.A.Qp], column(o.A.Values[o.v.Name].Nodal, 0))
}

// ADGradU returns the gradient of the (scalar) variable as dual numbers
func (o *Base) ADGradU() (g []ad.Real) {
	nodal := column(o.A.Values[o.v.Name].Nodal, 0)
	g = make([]ad.Real, o.A.Ndim)
	c := make([]float64, o.A.Nverts)
	for i := 0; i < o.A.Ndim; i++ {
		for m := 0; m < o.A.Nverts; m++ {
			c[m] = o.A.GradPhi[o.A.Qp][m][i]
		}
		g[i] = ad.Seed(c, nodal)
	}
	return
}

// column returns the k-th column of a matrix
func column(a [][]float64, k int) (c []float64) {
	c = make([]float64, len(a))
	for i := range a {
		c[i] = a[i][k]
	}
	return
}
