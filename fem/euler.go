// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/errs"
)

func init() {
	allocators["euler"] = func(d *Domain) (Solver, error) {
		return NewExplicitEuler(d)
	}
}

// ExplicitEuler implements the forward Euler method
//
//   M ⋅ Δu = -Δt ⋅ R(u(t), t)
//   u(t+Δt) = u(t) + Δu
//
// where M is the mass matrix of time derivative kernels and R is the residual of all other
// kernels, natural boundary conditions and penalty constraints
type ExplicitEuler struct {
	Dom *Domain   // domain
	Exp *Explicit // solver of the mass system
	Dt  float64   // current time step
	Nit int       // number of steps performed

	// buffers
	rhs, du la.Vector
}

// NewExplicitEuler returns a new forward Euler stepper
func NewExplicitEuler(d *Domain) (o *ExplicitEuler, err error) {
	typ, err := NewSolveType(d.Prob.Solver.Mode)
	if err != nil {
		return
	}
	o = &ExplicitEuler{Dom: d, Dt: d.Prob.Solver.Dt}
	o.Exp = NewExplicit(typ, nil, d.Prob.Solver.Tol, d.Prob.Solver.MaxIt)
	o.Exp.ShowMsg = d.ShowMsg
	o.rhs = la.NewVector(d.Neq)
	o.du = la.NewVector(d.Neq)
	d.OnMeshChanged(func() {
		o.Exp.MeshChanged()
		if len(o.rhs) != d.Neq {
			o.rhs = la.NewVector(d.Neq)
			o.du = la.NewVector(d.Neq)
		}
	})
	return
}

// Step advances the solution by dt. converged is false if the mass system could not be solved;
// the solution is not modified in this case
func (o *ExplicitEuler) Step(dt float64) (converged bool, err error) {

	// residual and mass
	d := o.Dom
	d.Sol.Dt = dt
	R, err := d.AssembleResidual(ele.TagNonTime, d.Sol.T)
	if err != nil {
		return
	}
	M, err := d.AssembleMass()
	if err != nil {
		return
	}
	for i, r := range R {
		o.rhs[i] = -dt * r
	}

	// solve
	converged, err = o.Exp.PerformExplicitSolve(M.ToDense(), o.rhs, o.du)
	if err != nil || !converged {
		return
	}

	// update
	for i, du := range o.du {
		d.Sol.Y[i] += du
		d.Sol.Dydt[i] = du / dt
	}
	d.Sol.T += dt
	d.Ebcs.FixValues(d.Sol)
	for _, c := range d.Constraints {
		if !c.ShouldApply() || !c.OverwriteSlaveResidual() {
			continue
		}
		eqm, eqs := d.constraintEqs(c)
		c.Bind(d.Sol.Y[eqm], d.Sol.Y[eqs])
		d.Sol.Y[eqs] = c.QpSlaveValue()
	}
	o.Nit++
	return
}

// Run runs the time loop up to tf. Steps that fail are repeated with half the time step up to
// NdtCut times in a row and while dt is larger than DtMin. After each successful step the time
// step is doubled until it reaches the one given in the problem data
func (o *ExplicitEuler) Run(tf float64, verbose bool) (err error) {
	d := o.Dom
	ncut := 0
	for d.Sol.T < tf-1e-12*math.Max(1, tf) {

		// step
		dt := math.Min(o.Dt, tf-d.Sol.T)
		d.Sol.Backup()
		converged, err := o.Step(dt)
		if err != nil {
			return err
		}

		// cut time step
		if !converged {
			d.RejectStep()
			ncut++
			o.Dt = dt / 2
			if verbose {
				io.Pfyel("> step failed at t=%g: %v. dt=%g\n", d.Sol.T, o.Exp.LastError(), o.Dt)
			}
			if ncut > d.Prob.Solver.NdtCut || o.Dt < d.Prob.Solver.DtMin {
				return errs.New(errs.SolveDivergence, "time step cannot be reduced any further at t=%g: %v", d.Sol.T, o.Exp.LastError())
			}
			continue
		}
		ncut = 0
		o.Dt = math.Min(2*o.Dt, d.Prob.Solver.Dt)

		// end of step
		err = d.RunUserObjects(d.Sol.T)
		if err != nil {
			return err
		}
		d.AcceptStep()
		if verbose && d.Prob.Data.ShowR {
			io.Pf("> t=%10.6f  |Δu|=%13.6e\n", d.Sol.T, o.du.Norm())
		}
	}
	return
}
