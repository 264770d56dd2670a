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

// add object to factory
func init() {
	allocators["function-value"] = func(dat *inp.ObjData, base Base) (UserObject, error) {
		val, ok := dat.Params.Get("function")
		if !ok {
			return nil, chk.Err("user object %q requires 'function'", dat.Name)
		}
		if _, ok = inp.FuncName(val); !ok {
			return nil, chk.Err("'function' of user object %q must be given as \"fcn:name\"; %q is invalid", dat.Name, val)
		}
		x, err := dat.Params.Floats("x")
		if err != nil {
			return nil, err
		}
		if len(x) == 0 {
			x = []float64{0}
		}
		return &FunctionValue{Base: base, X: x}, nil
	}
}

// FunctionValue evaluates a function of (t,x) at a fixed point. It reads no element data; thus,
// all threads share the same object
type FunctionValue struct {
	Base
	X   []float64      // point
	f   *prop.Property // function property
	res float64        // value
}

// Init resolves the function
func (o *FunctionValue) Init() (err error) {
	o.f, err = o.R.Resolve("function", prop.Real())
	return
}

// Initialize evaluates the function at time t
func (o *FunctionValue) Initialize(t float64) {
	o.R.Refresh(1, t, [][]float64{o.X})
	o.res = o.f.V[0][0]
}

// Execute does nothing
func (o *FunctionValue) Execute(a *ele.Assembly) error { return nil }

// Threadjoin does nothing
func (o *FunctionValue) Threadjoin(other UserObject) {}

// Value returns the value of the function
func (o *FunctionValue) Value() float64 { return o.res }
