// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/inp"
)

// Main holds all data for a simulation
type Main struct {
	Prob    *inp.Problem // problem data
	Dom     *Domain      // domain
	Solver  Solver       // time loop
	ShowMsg bool         // show messages
}

// NewMain reads a problem file and allocates the domain and the solver
//  Input:
//   path     -- problem (.yaml) filename including full path
//   nthreads -- number of threads; 0 means the one given in the problem file
//   verbose  -- show messages
func NewMain(path string, nthreads int, verbose bool) (o *Main, err error) {
	o = &Main{ShowMsg: verbose}
	o.Prob, err = inp.ReadProblem(path)
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Problem file read: %s\n", o.Prob.Data.Desc)
	}
	return o, o.init(nthreads)
}

// NewMainFromProblem allocates the domain and the solver of a problem already read
func NewMainFromProblem(prob *inp.Problem, nthreads int, verbose bool) (o *Main, err error) {
	o = &Main{Prob: prob, ShowMsg: verbose}
	return o, o.init(nthreads)
}

// Run runs the time loop up to the final time of the problem
func (o *Main) Run() (err error) {
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()
	if o.ShowMsg {
		io.Pf("> Running explicit solver (%s)\n", o.Prob.Solver.Mode)
	}
	err = o.Solver.Run(o.Prob.Solver.Tf, o.ShowMsg)
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// init allocates domain and solver
func (o *Main) init(nthreads int) (err error) {
	o.Dom, err = NewDomain(o.Prob, nthreads, o.ShowMsg)
	if err != nil {
		return
	}
	o.Solver, err = NewSolver(o.Prob.Solver.Type, o.Dom)
	return
}

// onexit merges diagnostics and prints the final message
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	o.Dom.Reduce()
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	return prevErr
}
