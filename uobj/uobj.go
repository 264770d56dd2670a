// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package uobj implements user objects: quantities computed by looping over elements, such as
// integrals of variables or properties
package uobj

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/resolve"
)

// UserObject defines what all user objects must implement. During one pass:
//   Initialize -> Execute (each element of the thread) -> Threadjoin (threaded copies) -> Finalize
type UserObject interface {
	Name() string                  // name of object
	Block(b int) bool              // object acts on block b
	Init() error                   // resolves properties after setup has been completed
	Initialize(t float64)          // resets the object before a pass at time t
	Execute(a *ele.Assembly) error // processes the bound element
	Threadjoin(other UserObject)   // adds the results of a threaded copy
	Finalize()                     // finishes the pass
	Value() float64                // result
}

// Discrete marks user objects accumulating data per element; thus, each thread needs its own copy
type Discrete interface {
	UserObject
	Discrete()
}

// Base implements the common part of user objects
type Base struct {
	name   string
	blocks map[int]bool      // nil means everywhere
	R      *resolve.Resolver // resolves properties and parameters
}

// NewBase returns a new base structure for user objects
func NewBase(dat *inp.ObjData, r *resolve.Resolver) (o Base) {
	o = Base{name: dat.Name, R: r}
	if len(dat.Blocks) > 0 {
		o.blocks = make(map[int]bool)
		for _, b := range dat.Blocks {
			o.blocks[b] = true
		}
	}
	return
}

// Name returns the name of the object
func (o *Base) Name() string { return o.name }

// Block tells whether the object acts on block b
func (o *Base) Block(b int) bool { return o.blocks == nil || o.blocks[b] }

// Init does nothing
func (o *Base) Init() error { return nil }

// Finalize does nothing
func (o *Base) Finalize() {}

// factory //////////////////////////////////////////////////////////////////////////////////////////

// AllocatorType defines a function that allocates a user object
type AllocatorType func(dat *inp.ObjData, base Base) (UserObject, error)

// New returns a new user object from factory
func New(dat *inp.ObjData, base Base) (obj UserObject, err error) {
	fcn, ok := allocators[dat.Type]
	if !ok {
		return nil, chk.Err("user object %q is not available in 'uobj' database", dat.Type)
	}
	obj, err = fcn(dat, base)
	if err != nil {
		return nil, chk.Err("cannot allocate user object {name=%q, type=%q}:\n%v", dat.Name, dat.Type, err)
	}
	return
}

// allocators holds all available user objects
var allocators = map[string]AllocatorType{}
