// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prop implements the storage of material properties at integration points
package prop

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Kind defines the kind of value held by a property at each integration point
type Kind int

const (
	KindReal   Kind = iota // scalar
	KindVector             // spatial vector (fixed size; e.g. 3)
	KindArray              // array of components; e.g. one per species
	KindTensor             // second order tensor (rows x cols)
)

// Gen defines the generation of a property
type Gen int

const (
	Current Gen = iota // values being computed
	Old                // values at the previous accepted step
	Older              // values two steps back
)

// String returns the name of the generation
func (g Gen) String() string {
	switch g {
	case Old:
		return "old"
	case Older:
		return "older"
	}
	return "current"
}

// Type describes the value of a property at one integration point
type Type struct {
	Kind Kind // kind of value
	Rows int  // number of rows; size of vector/array
	Cols int  // number of columns; 1 for non-tensors
}

// Real returns the scalar type
func Real() Type { return Type{KindReal, 1, 1} }

// Vector returns the type of spatial vectors with n components
func Vector(n int) Type { return Type{KindVector, n, 1} }

// Array returns the type of arrays with n components
func Array(n int) Type { return Type{KindArray, n, 1} }

// Tensor returns the type of rows x cols tensors
func Tensor(rows, cols int) Type { return Type{KindTensor, rows, cols} }

// Ncomp returns the number of scalar components per integration point
func (t Type) Ncomp() int { return t.Rows * t.Cols }

// String returns a representation of the type; e.g. "Real", "Array(3)", "Tensor(3x3)"
func (t Type) String() string {
	switch t.Kind {
	case KindReal:
		return "Real"
	case KindVector:
		return io.Sf("Vector(%d)", t.Rows)
	case KindArray:
		return io.Sf("Array(%d)", t.Rows)
	case KindTensor:
		return io.Sf("Tensor(%dx%d)", t.Rows, t.Cols)
	}
	return io.Sf("Unknown(%d)", int(t.Kind))
}

// SetZero sets the zero value of this type into v
func (t Type) SetZero(v []float64) {
	utl.Fill(v[:t.Ncomp()], 0)
}
