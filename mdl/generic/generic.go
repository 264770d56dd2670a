// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package generic implements materials: objects computing properties at integration points
package generic

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/resolve"
)

// Material defines what all materials must implement. Setup has two phases:
//  (1) Declare is called for all materials while the stage is open
//  (2) Init is called for all materials after the stage has been completed
// Then Compute is called for each element, in dependency order
type Material interface {
	Name() string                  // name of material
	Block(b int) bool              // material acts on block b
	Resolver() *resolve.Resolver   // resolver of the material
	Declare() error                // declares produced properties
	Init() error                   // resolves consumed properties
	Compute(a *ele.Assembly) error // computes current values at all points of the bound element
}

// Stateful defines materials computing the initial values of their stateful properties
type Stateful interface {
	InitStateful(a *ele.Assembly) error
}

// Base implements the common part of materials
type Base struct {
	name   string
	blocks map[int]bool      // nil means everywhere
	R      *resolve.Resolver // resolves and declares properties
}

// NewBase returns a new base structure for materials
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

// Name returns the name of the material
func (o *Base) Name() string { return o.name }

// Block tells whether the material acts on block b
func (o *Base) Block(b int) bool { return o.blocks == nil || o.blocks[b] }

// Resolver returns the resolver of the material
func (o *Base) Resolver() *resolve.Resolver { return o.R }

// Refresh updates the constant and function properties owned by the material
func (o *Base) Refresh(a *ele.Assembly) { o.R.Refresh(a.Nqp, a.T, a.Xqp) }

// factory //////////////////////////////////////////////////////////////////////////////////////////

// AllocatorType defines a function that allocates a material
type AllocatorType func(dat *inp.ObjData, base Base) (Material, error)

// New returns a new material from factory
func New(dat *inp.ObjData, base Base) (m Material, err error) {
	fcn, ok := allocators[dat.Type]
	if !ok {
		return nil, chk.Err("material %q is not available in 'generic' database", dat.Type)
	}
	m, err = fcn(dat, base)
	if err != nil {
		return nil, chk.Err("cannot allocate material {name=%q, type=%q}:\n%v", dat.Name, dat.Type, err)
	}
	return
}

// SetAllocator sets a new callback function to allocate a material
func SetAllocator(materialType string, fcn AllocatorType) {
	if _, ok := allocators[materialType]; ok {
		chk.Panic("cannot set allocator function for %q because material type exists already", materialType)
	}
	allocators[materialType] = fcn
}

// allocators holds all available materials
var allocators = map[string]AllocatorType{}
