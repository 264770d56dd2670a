// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ad implements forward automatic differentiation with dual numbers
package ad

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Real holds a value and its derivatives with respect to the local degrees of freedom
//
//   D[j] = d(V)/d(u_j)
//
type Real struct {
	V float64   // value
	D []float64 // derivatives
}

// Const returns a value without derivatives with respect to n unknowns
func Const(v float64, n int) Real {
	return Real{v, make([]float64, n)}
}

// Var returns the unknown j (out of n) with value v; i.e. D[j] = 1
func Var(v float64, j, n int) Real {
	r := Const(v, n)
	r.D[j] = 1
	return r
}

// Seed returns Σ_j c_j u_j; e.g. the interpolation of a variable with shape functions c
func Seed(c, u []float64) Real {
	r := Const(0, len(c))
	for j := range c {
		r.V += c[j] * u[j]
		r.D[j] = c[j]
	}
	return r
}

// Add returns a + b
func Add(a, b Real) Real {
	r := Const(a.V+b.V, len(a.D))
	for j := range r.D {
		r.D[j] = a.D[j] + b.D[j]
	}
	return r
}

// Sub returns a - b
func Sub(a, b Real) Real {
	r := Const(a.V-b.V, len(a.D))
	for j := range r.D {
		r.D[j] = a.D[j] - b.D[j]
	}
	return r
}

// Mul returns a * b
func Mul(a, b Real) Real {
	r := Const(a.V*b.V, len(a.D))
	for j := range r.D {
		r.D[j] = a.D[j]*b.V + a.V*b.D[j]
	}
	return r
}

// Div returns a / b
func Div(a, b Real) Real {
	r := Const(a.V/b.V, len(a.D))
	for j := range r.D {
		r.D[j] = (a.D[j]*b.V - a.V*b.D[j]) / (b.V * b.V)
	}
	return r
}

// Scale returns s * a
func Scale(s float64, a Real) Real {
	r := Const(s*a.V, len(a.D))
	for j := range r.D {
		r.D[j] = s * a.D[j]
	}
	return r
}

// Shift returns a + s
func Shift(a Real, s float64) Real {
	r := Const(a.V+s, len(a.D))
	copy(r.D, a.D)
	return r
}

// Pow returns a^p
func Pow(a Real, p float64) Real {
	r := Const(math.Pow(a.V, p), len(a.D))
	d := p * math.Pow(a.V, p-1)
	for j := range r.D {
		r.D[j] = d * a.D[j]
	}
	return r
}

// Exp returns exp(a)
func Exp(a Real) Real {
	r := Const(math.Exp(a.V), len(a.D))
	for j := range r.D {
		r.D[j] = r.V * a.D[j]
	}
	return r
}

// String returns a representation of the dual number
func (o Real) String() string {
	return io.Sf("%g%v", o.V, o.D)
}
