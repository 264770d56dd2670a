// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements kernels for diffusion-reaction problems
//
//     du
//   ρ ── - div(k ∇u) + r u = s + c v
//     dt
//
// with scalar or array variables u and coupled scalar variables v
package diffusion

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/mphys/ad"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
)

// register kernels
func init() {
	ele.SetAllocator("diffusion", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &Diffusion{Base: base}, nil
	})
	ele.SetAllocator("reaction", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &Reaction{Base: base}, nil
	})
	ele.SetAllocator("timederivative", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &TimeDerivative{Base: base}, nil
	})
	ele.SetAllocator("bodyforce", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &BodyForce{Base: base}, nil
	})
	ele.SetAllocator("coupledforce", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		if len(dat.Coupled) != 1 {
			return nil, errCoupled(dat)
		}
		return &CoupledForce{Base: base, cvar: dat.Coupled[0]}, nil
	})
	ele.SetAllocator("ad-diffusion", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &ADDiffusion{Base: base}, nil
	})
}

// Diffusion implements R = k ∇u·∇v
type Diffusion struct {
	ele.Base
	k *prop.Property // coefficient
}

// Init resolves the coefficient
func (o *Diffusion) Init() (err error) {
	o.k, err = o.R.Resolve("coef", prop.Real())
	return
}

// Kind returns the kind of value
func (o *Diffusion) Kind() ele.ValueKind { return ele.Scalar }

// QpResidual returns the residual at (qp, i)
func (o *Diffusion) QpResidual() float64 {
	return o.k.Real(o.Qp()) * la.VecDot(o.GradU(), o.GradTest())
}

// QpJacobian returns dR/du at (qp, i, j)
func (o *Diffusion) QpJacobian() float64 {
	return o.k.Real(o.Qp()) * la.VecDot(o.GradPhi(), o.GradTest())
}

// Reaction implements R = r u v
type Reaction struct {
	ele.Base
	r *prop.Property // coefficient
}

// Init resolves the coefficient
func (o *Reaction) Init() (err error) {
	o.r, err = o.R.Resolve("coef", prop.Real())
	return
}

// Kind returns the kind of value
func (o *Reaction) Kind() ele.ValueKind { return ele.Scalar }

// QpResidual returns the residual at (qp, i)
func (o *Reaction) QpResidual() float64 { return o.r.Real(o.Qp()) * o.U() * o.Test() }

// QpJacobian returns dR/du at (qp, i, j)
func (o *Reaction) QpJacobian() float64 { return o.r.Real(o.Qp()) * o.Phi() * o.Test() }

// TimeDerivative implements R = ρ du/dt v. The Jacobian is taken with respect to du/dt and gives
// the mass matrix. The coefficient is 1 if not given
type TimeDerivative struct {
	ele.Base
	rho *prop.Property // coefficient; may be nil
}

// Init resolves the coefficient
func (o *TimeDerivative) Init() (err error) {
	o.rho, err = optional(o.R, "coef", prop.Real())
	return
}

// Kind returns the kind of value
func (o *TimeDerivative) Kind() ele.ValueKind { return ele.Scalar }

// TimeDerivative marks this kernel as a time kernel
func (o *TimeDerivative) TimeDerivative() {}

// QpResidual returns the residual at (qp, i)
func (o *TimeDerivative) QpResidual() float64 {
	return valueAt(o.rho, o.Qp(), 0, 1) * o.Udot() * o.Test()
}

// QpJacobian returns dR/d(du/dt) at (qp, i, j)
func (o *TimeDerivative) QpJacobian() float64 {
	return valueAt(o.rho, o.Qp(), 0, 1) * o.Phi() * o.Test()
}

// BodyForce implements R = -s v where s may be given by a function of (t,x)
type BodyForce struct {
	ele.Base
	s *prop.Property // source
}

// Init resolves the source term
func (o *BodyForce) Init() (err error) {
	o.s, err = o.R.Resolve("value", prop.Real())
	return
}

// Kind returns the kind of value
func (o *BodyForce) Kind() ele.ValueKind { return ele.Scalar }

// QpResidual returns the residual at (qp, i)
func (o *BodyForce) QpResidual() float64 { return -o.s.Real(o.Qp()) * o.Test() }

// QpJacobian returns dR/du at (qp, i, j)
func (o *BodyForce) QpJacobian() float64 { return 0 }

// CoupledForce implements R = -c v_c v where v_c is a coupled scalar variable
type CoupledForce struct {
	ele.Base
	c    *prop.Property // coefficient
	cvar string         // coupled variable
}

// Init resolves the coefficient
func (o *CoupledForce) Init() (err error) {
	o.c, err = o.R.Resolve("coef", prop.Real())
	return
}

// Kind returns the kind of value
func (o *CoupledForce) Kind() ele.ValueKind { return ele.Scalar }

// QpResidual returns the residual at (qp, i)
func (o *CoupledForce) QpResidual() float64 {
	return -o.c.Real(o.Qp()) * o.CoupledU(o.cvar)[0] * o.Test()
}

// QpJacobian returns dR/du at (qp, i, j)
func (o *CoupledForce) QpJacobian() float64 { return 0 }

// QpOffDiagJacobian returns dR/dv_c at (qp, i, j)
func (o *CoupledForce) QpOffDiagJacobian(jvar *ele.Variable) float64 {
	if jvar.Name != o.cvar {
		return 0
	}
	return -o.c.Real(o.Qp()) * o.Phi() * o.Test()
}

// ADDiffusion implements R = k(u) ∇u·∇v with k(u) = k0 (1 + α u).
// The Jacobian is computed by automatic differentiation
type ADDiffusion struct {
	ele.Base
	k0    *prop.Property // reference coefficient
	alpha *prop.Property // sensitivity; zero if not given
}

// Init resolves the coefficients
func (o *ADDiffusion) Init() (err error) {
	o.k0, err = o.R.Resolve("coef", prop.Real())
	if err != nil {
		return
	}
	o.alpha, err = optional(o.R, "alpha", prop.Real())
	return
}

// Kind returns the kind of value
func (o *ADDiffusion) Kind() ele.ValueKind { return ele.AD }

// QpResidual returns the residual at (qp, i) as a dual number
func (o *ADDiffusion) QpResidual() ad.Real {
	qp := o.Qp()
	u, gu := o.ADU(), o.ADGradU()
	k := ad.Scale(o.k0.Real(qp), ad.Shift(ad.Scale(valueAt(o.alpha, qp, 0, 0), u), 1))
	gv := o.GradTest()
	flux := ad.Const(0, len(u.D))
	for i := range gu {
		flux = ad.Add(flux, ad.Scale(gv[i], gu[i]))
	}
	return ad.Mul(k, flux)
}
