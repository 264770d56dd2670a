// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements materials for diffusion problems with coefficients depending on
// the solution
package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/mdl/generic"
	"github.com/cpmech/mphys/prop"
)

// add material to factory
func init() {
	generic.SetAllocator("polynomial", func(dat *inp.ObjData, base generic.Base) (generic.Material, error) {
		if dat.Variable == "" {
			return nil, chk.Err("polynomial material %q requires 'variable'", dat.Name)
		}
		o := &Polynomial{Base: base, variable: dat.Variable}
		o.output = dat.Params.Str("output", "k")
		for i, key := range []string{"a0", "a1", "a2", "a3"} {
			v, err := dat.Params.Float(key, 0)
			if err != nil {
				return nil, err
			}
			o.a[i] = v
		}
		return o, nil
	})
}

// Polynomial implements a coefficient depending on the value of a variable
//
//   k(u) = a0  +  a1 u  +  a2 u²  +  a3 u³
//
// It declares k and dk/du (named output + "_du")
type Polynomial struct {
	generic.Base
	a        [4]float64     // coefficients
	variable string         // name of variable
	output   string         // name of output property
	k, dkdu  *prop.Property // outputs
}

// Declare declares the outputs
func (o *Polynomial) Declare() (err error) {
	o.k, err = o.R.Declare(o.output, prop.Real())
	if err != nil {
		return
	}
	o.dkdu, err = o.R.Declare(o.output+"_du", prop.Real())
	return
}

// Init does nothing
func (o *Polynomial) Init() error { return nil }

// Compute computes k(u) and dk/du at all points
func (o *Polynomial) Compute(a *ele.Assembly) error {
	vals, ok := a.Values[o.variable]
	if !ok {
		return chk.Err("polynomial material %q requires variable %q", o.Name(), o.variable)
	}
	for qp := 0; qp < a.Nqp; qp++ {
		u := vals.U[qp][0]
		o.k.V[qp][0] = o.Kval(u)
		o.dkdu.V[qp][0] = o.DkDu(u)
	}
	return nil
}

// Kval computes k(u)
func (o *Polynomial) Kval(u float64) float64 {
	return o.a[0] + o.a[1]*u + o.a[2]*u*u + o.a[3]*u*u*u
}

// DkDu computes dk/du
func (o *Polynomial) DkDu(u float64) float64 {
	return o.a[1] + 2.0*o.a[2]*u + 3.0*o.a[3]*u*u
}
