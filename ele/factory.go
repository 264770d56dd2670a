// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/resolve"
)

// AllocatorType defines a function that allocates a kernel. Base holds the name, variable,
// coupled variables, block restriction and resolver of the kernel
type AllocatorType func(dat *inp.ObjData, base Base) (Kernel, error)

// ConstraintAllocatorType defines a function that allocates a node constraint
type ConstraintAllocatorType func(dat *inp.ObjData, v *Variable, r *resolve.Resolver) (NodeConstraint, error)

// New returns a new kernel from factory
func New(dat *inp.ObjData, base Base) (k Kernel, err error) {
	fcn, ok := allocators[dat.Type]
	if !ok {
		return nil, chk.Err("cannot get allocator for kernel {name=%q, type=%q}", dat.Name, dat.Type)
	}
	k, err = fcn(dat, base)
	if err != nil {
		return nil, chk.Err("cannot allocate kernel {name=%q, type=%q}:\n%v", dat.Name, dat.Type, err)
	}
	return
}

// NewConstraint returns a new node constraint from factory
func NewConstraint(dat *inp.ObjData, v *Variable, r *resolve.Resolver) (c NodeConstraint, err error) {
	fcn, ok := callocators[dat.Type]
	if !ok {
		return nil, chk.Err("cannot get allocator for constraint {name=%q, type=%q}", dat.Name, dat.Type)
	}
	c, err = fcn(dat, v, r)
	if err != nil {
		return nil, chk.Err("cannot allocate constraint {name=%q, type=%q}:\n%v", dat.Name, dat.Type, err)
	}
	return
}

// SetAllocator sets a new callback function to allocate a kernel
func SetAllocator(kernelType string, fcn AllocatorType) {
	if _, ok := allocators[kernelType]; ok {
		chk.Panic("cannot set allocator function for %q because kernel type exists already", kernelType)
	}
	allocators[kernelType] = fcn
}

// SetConstraintAllocator sets a new callback function to allocate a node constraint
func SetConstraintAllocator(constraintType string, fcn ConstraintAllocatorType) {
	if _, ok := callocators[constraintType]; ok {
		chk.Panic("cannot set allocator function for %q because constraint type exists already", constraintType)
	}
	callocators[constraintType] = fcn
}

// allocators holds all kernel allocators
var allocators = make(map[string]AllocatorType)

// callocators holds all constraint allocators
var callocators = make(map[string]ConstraintAllocatorType)
