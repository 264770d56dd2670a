// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the evaluation of residuals and Jacobians of kernels at the integration
// points of one element
package ele

import "github.com/cpmech/mphys/ad"

// ValueKind defines the kind of value returned by a kernel at one integration point
type ValueKind int

const (
	Scalar ValueKind = iota // one value per test function
	Array                   // one value per component of an array variable and test function
	AD                      // dual number; the Jacobian is taken from its derivatives
)

// String returns the name of the kind
func (k ValueKind) String() string {
	switch k {
	case Array:
		return "array"
	case AD:
		return "ad"
	}
	return "scalar"
}

// vector tags
const (
	TagTime    = "time"    // contributions of time derivative kernels (mass)
	TagNonTime = "nontime" // all other contributions
)

// Kernel defines what all kernels must implement. The variant (scalar, array or AD) is given by
// Kind and the per-point functions are defined by the interfaces below
type Kernel interface {
	Name() string        // name of kernel
	Kind() ValueKind     // kind of value
	Var() *Variable      // variable the kernel acts on
	Coupled() []string   // names of coupled variables
	Block(b int) bool    // kernel acts on block b
	Bind(a *Assembly)    // binds the data of the current element
	Refresh(a *Assembly) // updates the properties owned by the kernel (constants, functions)
}

// scalar variant ///////////////////////////////////////////////////////////////////////////////////

// ScalarKernel computes the residual of a scalar variable at (qp, i)
type ScalarKernel interface {
	Kernel
	QpResidual() float64
}

// ScalarJacobian computes dR/du at (qp, i, j). Kernels without it get the default value of 1
type ScalarJacobian interface {
	QpJacobian() float64
}

// ScalarOffDiag computes dR/dv at (qp, i, j) for a coupled variable v
type ScalarOffDiag interface {
	QpOffDiagJacobian(jvar *Variable) float64
}

// array variant ////////////////////////////////////////////////////////////////////////////////////

// ArrayKernel computes the residual of an array variable at (qp, i). len(result) == ncomp
type ArrayKernel interface {
	Kernel
	QpResidual() []float64
}

// ArrayJacobian computes dR/du at (qp, i, j) as a [ncomp][ncomp] matrix.
// Kernels without it get the identity matrix
type ArrayJacobian interface {
	QpJacobian() [][]float64
}

// ArrayOffDiag computes dR/dv at (qp, i, j) as a [ncomp][jvar.Ncomp] matrix
type ArrayOffDiag interface {
	QpOffDiagJacobian(jvar *Variable) [][]float64
}

// AD variant ///////////////////////////////////////////////////////////////////////////////////////

// ADKernel computes the residual at (qp, i) as a dual number with derivatives with respect to the
// [nverts] nodal values of the acting variable
type ADKernel interface {
	Kernel
	QpResidual() ad.Real
}

// tags and neighbours //////////////////////////////////////////////////////////////////////////////

// TimeKernel defines kernels contributing to the "time" tag; e.g. the mass matrix
type TimeKernel interface {
	TimeDerivative()
}

// NeighborKernel defines kernels reading values of the neighbour element (Assembly.Neighbor).
// Their Jacobian with respect to the neighbour's nodal values is given by QpNeighborJacobian
type NeighborKernel interface {
	ScalarKernel
	QpNeighborJacobian() float64
}

// Tag returns the vector tag of a kernel
func Tag(k Kernel) string {
	if _, ok := k.(TimeKernel); ok {
		return TagTime
	}
	return TagNonTime
}

// Initializer defines kernels that resolve their properties once setup has been completed
type Initializer interface {
	Init() error
}
