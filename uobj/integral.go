// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uobj

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
)

// add objects to factory
func init() {
	allocators["integral"] = func(dat *inp.ObjData, base Base) (UserObject, error) {
		o := &Integral{Base: base, Comp: -1}
		if err := o.setVariable(dat); err != nil {
			return nil, err
		}
		return o, nil
	}
	allocators["average"] = func(dat *inp.ObjData, base Base) (UserObject, error) {
		o := &Integral{Base: base, Comp: -1, Average: true}
		if err := o.setVariable(dat); err != nil {
			return nil, err
		}
		return o, nil
	}
	allocators["property-integral"] = func(dat *inp.ObjData, base Base) (UserObject, error) {
		if _, ok := dat.Params.Get("property"); !ok {
			return nil, chk.Err("user object %q requires 'property'", dat.Name)
		}
		return &Integral{Base: base, Comp: -1, fromProp: true}, nil
	}
}

// Integral computes the integral (or the average) over its blocks of a variable component or of
// a Real property
//
//   I = ∫ u dΩ      or      avg = ∫ u dΩ / ∫ dΩ
//
type Integral struct {
	Base
	Variable string // variable; empty if the integrand is a property
	Comp     int    // component of array variable
	Average  bool   // divide by volume
	fromProp bool   // integrand is the property bound to "property"

	// results
	sum float64 // integral
	vol float64 // volume
	res float64 // final value

	// integrand
	p *prop.Property
}

// Discrete marks the object as needing one copy per thread
func (o *Integral) Discrete() {}

// Init resolves the integrand property
func (o *Integral) Init() (err error) {
	if o.fromProp {
		o.p, err = o.R.Resolve("property", prop.Real())
	}
	return
}

// Initialize resets the sums
func (o *Integral) Initialize(t float64) { o.sum, o.vol, o.res = 0, 0, 0 }

// Execute integrates over the bound element
func (o *Integral) Execute(a *ele.Assembly) error {
	var vals *ele.Values
	if o.fromProp {
		o.R.Refresh(a.Nqp, a.T, a.Xqp)
	} else {
		var ok bool
		vals, ok = a.Values[o.Variable]
		if !ok {
			return chk.Err("user object %q requires variable %q", o.Name(), o.Variable)
		}
	}
	for qp := 0; qp < a.Nqp; qp++ {
		w := a.JxW[qp][0]
		o.vol += w
		if o.fromProp {
			o.sum += w * o.p.V[qp][0]
		} else {
			o.sum += w * vals.U[qp][o.Comp]
		}
	}
	return nil
}

// Threadjoin adds the sums of another thread
func (o *Integral) Threadjoin(other UserObject) {
	b := other.(*Integral)
	o.sum += b.sum
	o.vol += b.vol
}

// Finalize computes the result
func (o *Integral) Finalize() {
	o.res = o.sum
	if o.Average && o.vol > 0 {
		o.res = o.sum / o.vol
	}
}

// Value returns the result
func (o *Integral) Value() float64 { return o.res }

// setVariable sets the variable and component
func (o *Integral) setVariable(dat *inp.ObjData) (err error) {
	o.Variable = dat.Params.Str("variable", dat.Variable)
	if o.Variable == "" {
		return chk.Err("user object %q requires 'variable'", dat.Name)
	}
	comp, err := dat.Params.Float("comp", 0)
	o.Comp = int(comp)
	return
}
