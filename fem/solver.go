// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// Solver implements the actual solver (time loop)
type Solver interface {
	Run(tf float64, verbose bool) (err error)
}

// NewSolver returns a new solver from factory
func NewSolver(typ string, d *Domain) (s Solver, err error) {
	alloc, ok := allocators[typ]
	if !ok {
		return nil, chk.Err("cannot find solver type named %q", typ)
	}
	return alloc(d)
}

// allocators holds all available solvers
var allocators = make(map[string]func(d *Domain) (Solver, error))
