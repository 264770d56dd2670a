// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// LinSol defines linear solvers for A x = b. x holds the initial guess on input
type LinSol interface {
	Solve(A *la.Matrix, b, x la.Vector) (converged bool, err error)
}

// Preconditioner computes z = P⁻¹ r
type Preconditioner interface {
	Apply(z, r la.Vector)
}

// CG implements the (preconditioned) conjugate gradients method for symmetric positive
// definite matrices
type CG struct {
	Tol   float64        // tolerance on the norm of the residual relative to the norm of b
	MaxIt int            // max number of iterations
	Prec  Preconditioner // preconditioner; may be nil
	Nit   int            // number of iterations of the last solve
	Res   float64        // relative residual of the last solve
}

// NewCG returns a new conjugate gradients solver
func NewCG(tol float64, maxit int, prec Preconditioner) *CG {
	return &CG{Tol: tol, MaxIt: maxit, Prec: prec}
}

// Solve solves A x = b. converged is false if the tolerance is not reached within MaxIt
// iterations or if A is found to be indefinite
func (o *CG) Solve(A *la.Matrix, b, x la.Vector) (converged bool, err error) {

	// check
	n := len(b)
	if A.M != n || A.N != n || len(x) != n {
		return false, chk.Err("CG: sizes of matrix (%d x %d) and vectors (%d, %d) do not match", A.M, A.N, n, len(x))
	}
	o.Nit, o.Res = 0, 0
	nb := b.Norm()
	if nb == 0 {
		x.Fill(0)
		return true, nil
	}

	// r = b - A x
	r := la.NewVector(n)
	la.MatVecMul(r, 1, A, x)
	la.VecAdd(r, 1, b, -1, r)
	z := la.NewVector(n)
	o.precond(z, r)
	p := z.GetCopy()
	q := la.NewVector(n)
	rz := la.VecDot(r, z)

	// iterations
	for o.Nit = 0; o.Nit <= o.MaxIt; o.Nit++ {
		o.Res = r.Norm() / nb
		if o.Res <= o.Tol {
			return true, nil
		}
		if o.Nit == o.MaxIt {
			break
		}
		la.MatVecMul(q, 1, A, p)
		pq := la.VecDot(p, q)
		if pq <= 0 {
			return false, nil
		}
		α := rz / pq
		la.VecAdd(x, α, p, 1, x)
		la.VecAdd(r, -α, q, 1, r)
		o.precond(z, r)
		rzNew := la.VecDot(r, z)
		β := rzNew / rz
		rz = rzNew
		la.VecAdd(p, 1, z, β, p)
	}
	return false, nil
}

// precond applies the preconditioner or copies r into z
func (o *CG) precond(z, r la.Vector) {
	if o.Prec == nil {
		copy(z, r)
		return
	}
	o.Prec.Apply(z, r)
}

// LumpedPrecond is a preconditioner given by the inverse of the lumped mass matrix
type LumpedPrecond struct {
	Inv []float64 // inverse of the diagonal
}

// Apply computes z = Inv ⋅ r
func (o *LumpedPrecond) Apply(z, r la.Vector) {
	for i := range r {
		z[i] = o.Inv[i] * r[i]
	}
}

