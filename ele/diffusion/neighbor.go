// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
)

// register kernel
func init() {
	ele.SetAllocator("neighbor-coupling", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &NeighborCoupling{Base: base}, nil
	})
}

// NeighborCoupling implements R = c (u - u_n) v where u_n is the value of u at the same reference
// point of the neighbour element. Elements without neighbour give no contribution
type NeighborCoupling struct {
	ele.Base
	c *prop.Property // coefficient
}

// Init resolves the coefficient
func (o *NeighborCoupling) Init() (err error) {
	o.c, err = o.R.Resolve("coef", prop.Real())
	return
}

// Kind returns the kind of value
func (o *NeighborCoupling) Kind() ele.ValueKind { return ele.Scalar }

// QpResidual returns the residual at (qp, i)
func (o *NeighborCoupling) QpResidual() float64 {
	un := o.NeighborU(o.Var().Name)
	if un == nil {
		return 0
	}
	return o.c.Real(o.Qp()) * (o.U() - un[0]) * o.Test()
}

// QpJacobian returns dR/du at (qp, i, j)
func (o *NeighborCoupling) QpJacobian() float64 {
	if o.A.Neighbor == nil {
		return 0
	}
	return o.c.Real(o.Qp()) * o.Phi() * o.Test()
}

// QpNeighborJacobian returns dR/du_n at (qp, i, j)
func (o *NeighborCoupling) QpNeighborJacobian() float64 {
	return -o.c.Real(o.Qp()) * o.NeighborPhi() * o.Test()
}
