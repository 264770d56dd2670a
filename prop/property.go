// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prop

import "github.com/cpmech/gosl/utl"

// Property holds the values of a named property at all integration points of an element
//
//   V[qp][k] where k = i*Cols + j runs over the components of Type
//
type Property struct {
	Id   int         // property id; -1 for constant/zero properties not registered in the store
	Name string      // name of property
	Type Type        // type of value
	Gen  Gen         // generation
	V    [][]float64 // [nqp][ncomp] values
}

// newProperty allocates a new property with nqp integration points
func newProperty(id int, name string, typ Type, gen Gen, nqp int) (o *Property) {
	o = &Property{Id: id, Name: name, Type: typ, Gen: gen}
	o.Resize(nqp)
	return
}

// NewConstant returns a property that holds the same value at every integration point
func NewConstant(name string, typ Type, value []float64, nqp int) (o *Property) {
	o = newProperty(-1, name, typ, Current, nqp)
	for qp := range o.V {
		copy(o.V[qp], value)
	}
	return
}

// Nqp returns the number of integration points currently allocated
func (o *Property) Nqp() int { return len(o.V) }

// Real returns the scalar value at qp
func (o *Property) Real(qp int) float64 { return o.V[qp][0] }

// SetReal sets the scalar value at qp
func (o *Property) SetReal(qp int, val float64) { o.V[qp][0] = val }

// Vec returns the vector/array value at qp (not a copy)
func (o *Property) Vec(qp int) []float64 { return o.V[qp] }

// At returns the (i,j) component of the tensor value at qp
func (o *Property) At(qp, i, j int) float64 { return o.V[qp][i*o.Type.Cols+j] }

// Set sets the (i,j) component of the tensor value at qp
func (o *Property) Set(qp, i, j int, val float64) { o.V[qp][i*o.Type.Cols+j] = val }

// SetZero sets all values to zero
func (o *Property) SetZero() {
	for qp := range o.V {
		o.Type.SetZero(o.V[qp])
	}
}

// CopyFrom copies values from another property with the same type; the number of integration
// points copied is the minimum of both
func (o *Property) CopyFrom(other *Property) {
	n := len(o.V)
	if len(other.V) < n {
		n = len(other.V)
	}
	for qp := 0; qp < n; qp++ {
		copy(o.V[qp], other.V[qp])
	}
}

// Resize grows the number of integration points. Existent values are kept
func (o *Property) Resize(nqp int) {
	if nqp <= len(o.V) {
		return
	}
	extra := utl.Alloc(nqp-len(o.V), o.Type.Ncomp())
	o.V = append(o.V, extra...)
}
