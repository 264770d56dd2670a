// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/mphys/errs"
)

// SolveType defines how the mass system of explicit schemes is solved
type SolveType int

const (
	Consistent         SolveType = iota // full mass matrix; conjugate gradients
	Lumped                              // diagonal of row sums; direct inversion
	LumpPreconditioned                  // full mass matrix; conjugate gradients preconditioned by the lumped inverse
)

// NewSolveType returns the solve type corresponding to mode
func NewSolveType(mode string) (typ SolveType, err error) {
	switch strings.ToLower(mode) {
	case "consistent":
		return Consistent, nil
	case "lumped":
		return Lumped, nil
	case "lump-preconditioned":
		return LumpPreconditioned, nil
	}
	return Lumped, chk.Err("explicit solve type %q is invalid", mode)
}

// String returns the name of the solve type
func (t SolveType) String() string {
	switch t {
	case Consistent:
		return "consistent"
	case LumpPreconditioned:
		return "lump-preconditioned"
	}
	return "lumped"
}

// Explicit solves M du = R for the increment of explicit time integration schemes.
// The lumped diagonal and its inverse are computed from the mass matrix given to each solve;
// their buffers are reallocated after MeshChanged or when the size of the system changes
type Explicit struct {
	Type    SolveType // solve type
	Lin     LinSol    // linear solver for the consistent and preconditioned types
	ShowMsg bool      // show messages

	// lumped mass
	diag  la.Vector // row sums of M
	inv   la.Vector // 1 / diag
	ones  la.Vector // [1, 1, ...]
	stale bool      // buffers must be reallocated

	// status
	lastErr error // error of the last failed solve
}

// NewExplicit returns a new explicit solver. lin may be nil for the Lumped type; otherwise a
// conjugate gradients solver is allocated with tol and maxit
func NewExplicit(typ SolveType, lin LinSol, tol float64, maxit int) (o *Explicit) {
	o = &Explicit{Type: typ, Lin: lin, stale: true}
	if o.Lin == nil {
		var prec Preconditioner
		if typ == LumpPreconditioned {
			prec = &LumpedPrecond{}
		}
		o.Lin = NewCG(tol, maxit, prec)
	}
	return
}

// MeshChanged marks the buffers of the lumped mass as outdated
func (o *Explicit) MeshChanged() {
	o.stale = true
}

// LastError returns the error of the last failed solve or nil if it converged
func (o *Explicit) LastError() error {
	return o.lastErr
}

// PerformExplicitSolve solves M du = R
//  Input:
//   M -- mass matrix
//   R -- right-hand side; e.g. -Δt times the residual of non-time kernels
//  Output:
//   du        -- the solution
//   converged -- false if the linear solver failed; the reason is available via LastError
//   err       -- fatal error: sizes do not match
func (o *Explicit) PerformExplicitSolve(M *la.Matrix, R, du la.Vector) (converged bool, err error) {

	// check
	n := len(R)
	if M.M != n || M.N != n || len(du) != n {
		return false, errs.New(errs.DimensionMismatch, "mass matrix is %d x %d but vectors have sizes %d and %d", M.M, M.N, n, len(du))
	}
	o.lastErr = nil

	// lumped mass
	if o.Type != Consistent {
		if o.stale || len(o.diag) != n {
			o.alloc(n)
		}
		if i, ok := o.lump(M); !ok {
			o.lastErr = errs.New(errs.SolveDivergence, "lumped mass is zero at equation %d", i)
			return false, nil
		}
		if p, ok := o.precond(); ok {
			p.Inv = o.inv
		}
	}
	if o.Type == Lumped {
		for i := 0; i < n; i++ {
			du[i] = o.inv[i] * R[i]
		}
		return true, nil
	}

	// linear solver
	du.Fill(0)
	converged, err = o.Lin.Solve(M, R, du)
	if err != nil {
		return
	}
	if !converged {
		o.lastErr = errs.New(errs.SolveDivergence, "%v solve of mass system did not converge", o.Type)
	}
	return
}

// Lumped returns the row sums of the last mass matrix
func (o *Explicit) Lumped() la.Vector { return o.diag }

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// alloc allocates the buffers of the lumped mass
func (o *Explicit) alloc(n int) {
	o.diag = la.NewVector(n)
	o.inv = la.NewVector(n)
	o.ones = la.NewVector(n)
	o.ones.Fill(1)
	o.stale = false
}

// lump computes the row sums of M and their inverses. It returns the first equation with zero
// lumped mass and false if there is one
func (o *Explicit) lump(M *la.Matrix) (eq int, ok bool) {
	la.MatVecMul(o.diag, 1, M, o.ones)
	for i, m := range o.diag {
		if m == 0 {
			return i, false
		}
		o.inv[i] = 1.0 / m
	}
	return 0, true
}

// precond returns the lumped preconditioner of the linear solver, if any
func (o *Explicit) precond() (p *LumpedPrecond, ok bool) {
	if cg, isCG := o.Lin.(*CG); isCG {
		p, ok = cg.Prec.(*LumpedPrecond)
	}
	return
}
