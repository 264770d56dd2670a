// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
)

// register kernels
func init() {
	ele.SetAllocator("array-diffusion", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &ArrayDiffusion{arrayBase: newArrayBase(base)}, nil
	})
	ele.SetAllocator("array-reaction", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &ArrayReaction{arrayBase: newArrayBase(base)}, nil
	})
	ele.SetAllocator("array-timederivative", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &ArrayTimeDerivative{arrayBase: newArrayBase(base)}, nil
	})
	ele.SetAllocator("array-coupledforce", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		if len(dat.Coupled) != 1 {
			return nil, errCoupled(dat)
		}
		return &ArrayCoupledForce{arrayBase: newArrayBase(base), cvar: dat.Coupled[0]}, nil
	})
}

// arrayBase holds the buffers of array kernels
type arrayBase struct {
	ele.Base
	n   int         // number of components
	res []float64   // [n] residual
	jac [][]float64 // [n][n] Jacobian
}

// newArrayBase allocates buffers for the components of the acting variable
func newArrayBase(base ele.Base) (o arrayBase) {
	o.Base = base
	o.n = base.Var().Ncomp
	o.res = make([]float64, o.n)
	o.jac = utl.Alloc(o.n, o.n)
	return
}

// Kind returns the kind of value
func (o *arrayBase) Kind() ele.ValueKind { return ele.Array }

// diagonal sets the Jacobian to diag(d_a s)
func (o *arrayBase) diagonal(p *prop.Property, dflt, s float64) [][]float64 {
	qp := o.Qp()
	for a := 0; a < o.n; a++ {
		o.jac[a][a] = valueAt(p, qp, a, dflt) * s
	}
	return o.jac
}

// ArrayDiffusion implements R_a = d_a ∇u_a·∇v
type ArrayDiffusion struct {
	arrayBase
	d *prop.Property // [n] coefficients
}

// Init resolves the coefficients
func (o *ArrayDiffusion) Init() (err error) {
	o.d, err = o.R.Resolve("coef", prop.Array(o.n))
	return
}

// QpResidual returns the residuals at (qp, i)
func (o *ArrayDiffusion) QpResidual() []float64 {
	d, gu, gv := o.d.Vec(o.Qp()), o.GradUarr(), o.GradTest()
	for a := 0; a < o.n; a++ {
		o.res[a] = d[a] * la.VecDot(gu[a], gv)
	}
	return o.res
}

// QpJacobian returns dR_a/du_b at (qp, i, j)
func (o *ArrayDiffusion) QpJacobian() [][]float64 {
	return o.diagonal(o.d, 0, la.VecDot(o.GradPhi(), o.GradTest()))
}

// ArrayReaction implements R_a = r_a u_a v
type ArrayReaction struct {
	arrayBase
	r *prop.Property // [n] coefficients
}

// Init resolves the coefficients
func (o *ArrayReaction) Init() (err error) {
	o.r, err = o.R.Resolve("coef", prop.Array(o.n))
	return
}

// QpResidual returns the residuals at (qp, i)
func (o *ArrayReaction) QpResidual() []float64 {
	r, u, v := o.r.Vec(o.Qp()), o.Uarr(), o.Test()
	for a := 0; a < o.n; a++ {
		o.res[a] = r[a] * u[a] * v
	}
	return o.res
}

// QpJacobian returns dR_a/du_b at (qp, i, j)
func (o *ArrayReaction) QpJacobian() [][]float64 {
	return o.diagonal(o.r, 0, o.Phi()*o.Test())
}

// ArrayTimeDerivative implements R_a = ρ_a du_a/dt v. The coefficients are 1 if not given
type ArrayTimeDerivative struct {
	arrayBase
	rho *prop.Property // [n] coefficients; may be nil
}

// Init resolves the coefficients
func (o *ArrayTimeDerivative) Init() (err error) {
	o.rho, err = optional(o.R, "coef", prop.Array(o.n))
	return
}

// TimeDerivative marks this kernel as a time kernel
func (o *ArrayTimeDerivative) TimeDerivative() {}

// QpResidual returns the residuals at (qp, i)
func (o *ArrayTimeDerivative) QpResidual() []float64 {
	qp, udot, v := o.Qp(), o.UarrDot(), o.Test()
	for a := 0; a < o.n; a++ {
		o.res[a] = valueAt(o.rho, qp, a, 1) * udot[a] * v
	}
	return o.res
}

// QpJacobian returns dR_a/d(du_b/dt) at (qp, i, j)
func (o *ArrayTimeDerivative) QpJacobian() [][]float64 {
	return o.diagonal(o.rho, 1, o.Phi()*o.Test())
}

// ArrayCoupledForce implements R_a = -c_a v_c v where v_c is a coupled scalar variable
type ArrayCoupledForce struct {
	arrayBase
	c    *prop.Property // [n] coefficients
	cvar string         // coupled variable
	off  [][]float64    // [n][1] off-diagonal Jacobian
}

// Init resolves the coefficients
func (o *ArrayCoupledForce) Init() (err error) {
	o.c, err = o.R.Resolve("coef", prop.Array(o.n))
	o.off = utl.Alloc(o.n, 1)
	return
}

// QpResidual returns the residuals at (qp, i)
func (o *ArrayCoupledForce) QpResidual() []float64 {
	c, vc, v := o.c.Vec(o.Qp()), o.CoupledU(o.cvar)[0], o.Test()
	for a := 0; a < o.n; a++ {
		o.res[a] = -c[a] * vc * v
	}
	return o.res
}

// QpJacobian returns dR_a/du_b at (qp, i, j)
func (o *ArrayCoupledForce) QpJacobian() [][]float64 {
	return o.diagonal(nil, 0, 0)
}

// QpOffDiagJacobian returns dR_a/dv_c at (qp, i, j)
func (o *ArrayCoupledForce) QpOffDiagJacobian(jvar *ele.Variable) [][]float64 {
	if jvar.Name != o.cvar || jvar.Ncomp != 1 {
		return utl.Alloc(o.n, jvar.Ncomp)
	}
	c, s := o.c.Vec(o.Qp()), o.Phi()*o.Test()
	for a := 0; a < o.n; a++ {
		o.off[a][0] = -c[a] * s
	}
	return o.off
}
