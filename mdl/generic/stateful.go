// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generic

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
)

// add material to factory
func init() {
	allocators["accumulate"] = func(dat *inp.ObjData, base Base) (m Material, err error) {
		o := &Accumulate{Base: base}
		o.output = dat.Params.Str("output", "")
		if o.output == "" {
			return nil, chk.Err("accumulate material %q requires 'output'", dat.Name)
		}
		if o.initial, err = dat.Params.Float("initial", 0); err != nil {
			return
		}
		return o, nil
	}
}

// Accumulate integrates a rate in time at each integration point
//
//   q = q_old + rate * Δt     with     q(0) = initial
//
// The material must opt into stateful properties
type Accumulate struct {
	Base
	output  string         // name of accumulated property
	initial float64        // initial value
	rate    *prop.Property // rate
	cur     *prop.Property // current value
	old     *prop.Property // value at the previous accepted step
}

// Declare declares the output
func (o *Accumulate) Declare() (err error) {
	o.cur, err = o.R.Declare(o.output, prop.Real())
	return
}

// Init resolves the rate and the old value of the output
func (o *Accumulate) Init() (err error) {
	o.old, err = o.R.ResolveOldByName(o.output, prop.Real())
	if err != nil {
		return
	}
	o.rate, err = o.R.Resolve("rate", prop.Real())
	return
}

// InitStateful sets the initial values
func (o *Accumulate) InitStateful(a *ele.Assembly) error {
	for qp := 0; qp < a.Nqp; qp++ {
		o.cur.V[qp][0] = o.initial
	}
	return nil
}

// Compute computes the current values
func (o *Accumulate) Compute(a *ele.Assembly) error {
	o.Refresh(a)
	for qp := 0; qp < a.Nqp; qp++ {
		o.cur.V[qp][0] = o.old.V[qp][0] + o.rate.V[qp][0]*a.Dt
	}
	return nil
}
