// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generic

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
)

// add materials to factory
func init() {
	allocators["constant"] = func(dat *inp.ObjData, base Base) (Material, error) {
		o := &Constant{Base: base}
		for key := range dat.Params {
			o.keys = append(o.keys, key)
		}
		sort.Strings(o.keys)
		for _, key := range o.keys {
			vals, err := dat.Params.Floats(key)
			if err != nil {
				return nil, err
			}
			o.vals = append(o.vals, vals)
		}
		return o, nil
	}
	allocators["function"] = func(dat *inp.ObjData, base Base) (Material, error) {
		o := &Function{Base: base}
		for key := range dat.Params {
			o.keys = append(o.keys, key)
		}
		sort.Strings(o.keys)
		return o, nil
	}
	allocators["linear"] = func(dat *inp.ObjData, base Base) (m Material, err error) {
		o := &Linear{Base: base}
		o.output = dat.Params.Str("output", "")
		if o.output == "" {
			return nil, chk.Err("linear material %q requires 'output'", dat.Name)
		}
		if _, ok := dat.Params.Get("input"); !ok {
			return nil, chk.Err("linear material %q requires 'input'", dat.Name)
		}
		if o.a, err = dat.Params.Float("a", 0); err != nil {
			return
		}
		if o.b, err = dat.Params.Float("b", 1); err != nil {
			return
		}
		return o, nil
	}
}

// Constant declares one property per parameter with the same value at all points.
// One number gives a Real property; n numbers give an Array(n) property
type Constant struct {
	Base
	keys []string         // names of properties
	vals [][]float64      // values
	ps   []*prop.Property // declared properties
}

// Declare declares the properties
func (o *Constant) Declare() (err error) {
	o.ps = make([]*prop.Property, len(o.keys))
	for i, key := range o.keys {
		typ := prop.Real()
		if len(o.vals[i]) > 1 {
			typ = prop.Array(len(o.vals[i]))
		}
		o.ps[i], err = o.R.Declare(key, typ)
		if err != nil {
			return
		}
	}
	return
}

// Init does nothing
func (o *Constant) Init() error { return nil }

// Compute sets the values at all points
func (o *Constant) Compute(a *ele.Assembly) error {
	for i, p := range o.ps {
		for qp := 0; qp < a.Nqp; qp++ {
			copy(p.V[qp], o.vals[i])
		}
	}
	return nil
}

// Function declares one Real property per parameter computed from its binding, which may be a
// literal, a function of (t,x) given as "fcn:name" or another property
type Function struct {
	Base
	keys []string         // names of properties
	src  []*prop.Property // resolved bindings
	dst  []*prop.Property // declared properties
}

// Declare declares the properties
func (o *Function) Declare() (err error) {
	o.dst = make([]*prop.Property, len(o.keys))
	for i, key := range o.keys {
		o.dst[i], err = o.R.Declare(key, prop.Real())
		if err != nil {
			return
		}
	}
	return
}

// Init resolves the bindings
func (o *Function) Init() (err error) {
	o.src = make([]*prop.Property, len(o.keys))
	for i, key := range o.keys {
		o.src[i], err = o.R.Resolve(key, prop.Real())
		if err != nil {
			return
		}
	}
	return
}

// Compute copies the values of the bindings
func (o *Function) Compute(a *ele.Assembly) error {
	o.Refresh(a)
	for i, p := range o.dst {
		for qp := 0; qp < a.Nqp; qp++ {
			p.V[qp][0] = o.src[i].V[qp][0]
		}
	}
	return nil
}

// Linear computes output = a + b * input where input is a Real property
type Linear struct {
	Base
	a, b   float64        // coefficients
	output string         // name of output property
	in     *prop.Property // input
	out    *prop.Property // output
}

// Declare declares the output
func (o *Linear) Declare() (err error) {
	o.out, err = o.R.Declare(o.output, prop.Real())
	return
}

// Init resolves the input
func (o *Linear) Init() (err error) {
	o.in, err = o.R.Resolve("input", prop.Real())
	return
}

// Compute computes the output at all points
func (o *Linear) Compute(a *ele.Assembly) error {
	o.Refresh(a)
	for qp := 0; qp < a.Nqp; qp++ {
		o.out.V[qp][0] = o.a + o.b*o.in.V[qp][0]
	}
	return nil
}
