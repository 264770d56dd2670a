// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uobj

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/resolve"
)

// ResolverFunc returns the resolver of an object for thread tid
type ResolverFunc func(dat *inp.ObjData, tid int) *resolve.Resolver

// Warehouse holds the user objects of all threads. Objects needing a threaded copy are allocated
// once per thread; the others are shared by all threads and are never executed
type Warehouse struct {
	Nthreads int
	objs     [][]UserObject // [nthreads][nobjs]
	threaded []bool         // [nobjs] object has one copy per thread
}

// NewWarehouse returns a new warehouse
func NewWarehouse(nthreads int) (o *Warehouse) {
	if nthreads < 1 {
		chk.Panic("number of threads must be at least 1. %d is invalid", nthreads)
	}
	return &Warehouse{Nthreads: nthreads, objs: make([][]UserObject, nthreads)}
}

// NeedThreadedCopy tells whether obj needs one copy per thread. The decision is taken by the type
// of obj (implementation of Discrete)
func (o *Warehouse) NeedThreadedCopy(obj UserObject) bool {
	_, ok := obj.(Discrete)
	return ok
}

// Add allocates a user object and its threaded copies (if needed)
func (o *Warehouse) Add(dat *inp.ObjData, resolver ResolverFunc) (err error) {
	if o.Get(dat.Name) != nil {
		return chk.Err("user object %q has been added already", dat.Name)
	}
	obj, err := New(dat, NewBase(dat, resolver(dat, 0)))
	if err != nil {
		return
	}
	threaded := o.NeedThreadedCopy(obj)
	o.objs[0] = append(o.objs[0], obj)
	o.threaded = append(o.threaded, threaded)
	for tid := 1; tid < o.Nthreads; tid++ {
		cpy := obj
		if threaded {
			cpy, err = New(dat, NewBase(dat, resolver(dat, tid)))
			if err != nil {
				return
			}
		}
		o.objs[tid] = append(o.objs[tid], cpy)
	}
	return
}

// Get returns the object of thread 0 by name or nil
func (o *Warehouse) Get(name string) UserObject {
	for _, obj := range o.objs[0] {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

// Objects returns the objects of thread tid
func (o *Warehouse) Objects(tid int) []UserObject { return o.objs[tid] }

// Init initialises all distinct objects
func (o *Warehouse) Init() (err error) {
	return o.each(func(obj UserObject) error { return obj.Init() })
}

// Initialize resets all distinct objects before a pass
func (o *Warehouse) Initialize(t float64) {
	o.each(func(obj UserObject) error {
		obj.Initialize(t)
		return nil
	})
}

// Execute executes the threaded objects of thread tid acting on the block of the bound element
func (o *Warehouse) Execute(tid int, a *ele.Assembly) (err error) {
	for i, obj := range o.objs[tid] {
		if !o.threaded[i] || !obj.Block(a.Cell.Block) {
			continue
		}
		if err = obj.Execute(a); err != nil {
			return
		}
	}
	return
}

// Finalize joins the threaded copies into the objects of thread 0 and finalizes them
func (o *Warehouse) Finalize() {
	for i, obj := range o.objs[0] {
		if o.threaded[i] {
			for tid := 1; tid < o.Nthreads; tid++ {
				obj.Threadjoin(o.objs[tid][i])
			}
		}
		obj.Finalize()
	}
}

// Values returns the results by name
func (o *Warehouse) Values() (res map[string]float64) {
	res = make(map[string]float64)
	for _, obj := range o.objs[0] {
		res[obj.Name()] = obj.Value()
	}
	return
}

// each calls fcn for each distinct object
func (o *Warehouse) each(fcn func(obj UserObject) error) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		for i, obj := range o.objs[tid] {
			if tid > 0 && !o.threaded[i] {
				continue
			}
			if err = fcn(obj); err != nil {
				return
			}
		}
	}
	return
}
