// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.yaml) problem file
package inp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `yaml:"desc"`     // description of simulation
	Nthreads int    `yaml:"nthreads"` // number of threads; 0 means use the process settings
	ShowR    bool   `yaml:"showr"`    // show residual norm at every step
}

// VarData holds the definition of a solution variable
type VarData struct {
	Name  string  `yaml:"name"`  // name of variable; e.g. "u", "c"
	Ncomp int     `yaml:"ncomp"` // number of components; > 1 means array variable
	Ini   float64 `yaml:"ini"`   // initial value of all components
}

// BcData holds a boundary condition at a boundary vertex
type BcData struct {
	Variable string `yaml:"variable"` // name of variable
	Boundary int    `yaml:"boundary"` // boundary id; 0=xmin, 1=xmax
	Comp     int    `yaml:"comp"`     // component of array variable
	Value    string `yaml:"value"`    // literal or "fcn:name"
}

// SolverData holds time stepping and linear solver data
type SolverData struct {
	Type   string  `yaml:"type"`   // time stepper; "euler" (explicit Euler)
	Mode   string  `yaml:"mode"`   // explicit solve type: "consistent", "lumped", "lump-preconditioned"
	Dt     float64 `yaml:"dt"`     // time step
	Tf     float64 `yaml:"tf"`     // final time
	Tol    float64 `yaml:"tol"`    // linear solver tolerance
	MaxIt  int     `yaml:"maxit"`  // linear solver max number of iterations
	DtMin  float64 `yaml:"dtmin"`  // minimum time step when cutting
	NdtCut int     `yaml:"ndtcut"` // max number of consecutive time step cuts
}

// Problem holds all data read from a problem file
type Problem struct {

	// input
	Data        Data       `yaml:"data"`        // global data
	Mesh        MeshData   `yaml:"mesh"`        // mesh
	Variables   []*VarData `yaml:"variables"`   // solution variables
	Functions   FuncsData  `yaml:"functions"`   // functions
	Materials   ObjsData   `yaml:"materials"`   // materials
	Kernels     ObjsData   `yaml:"kernels"`     // kernels (residual contributions)
	Constraints ObjsData   `yaml:"constraints"` // node constraints
	UserObjects ObjsData   `yaml:"userobjects"` // user objects
	Dirichlet   []*BcData  `yaml:"dirichlet"`   // essential boundary conditions
	Neumann     []*BcData  `yaml:"neumann"`     // natural boundary conditions (prescribed flux)
	Solver      SolverData `yaml:"solver"`      // solver data

	// derived
	Key  string // filename key; e.g. diffu1d.yaml => diffu1d
	Dir  string // directory of problem file
	Msh  *Mesh  // the mesh
	Vars map[string]*VarData
}

// ReadProblem reads all problem data from a .yaml file
func ReadProblem(path string) (o *Problem, err error) {

	// read file
	b, err := io.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return nil, chk.Err("ReadProblem: cannot read problem file %q:\n%v", path, err)
	}

	// decode
	o, err = ParseProblem(b)
	if err != nil {
		return nil, chk.Err("ReadProblem: cannot load problem file %q:\n%v", path, err)
	}
	o.Dir = filepath.Dir(path)
	o.Key = io.FnKey(filepath.Base(path))
	return
}

// ParseProblem decodes and checks problem data
func ParseProblem(b []byte) (o *Problem, err error) {

	// set default values
	o = new(Problem)
	o.Solver.SetDefault()
	o.Mesh.SetDefault()

	// decode
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, err
	}

	// variables
	if len(o.Variables) == 0 {
		return nil, chk.Err("at least one variable must be given")
	}
	o.Vars = make(map[string]*VarData)
	for _, v := range o.Variables {
		if v.Ncomp < 1 {
			v.Ncomp = 1
		}
		if _, ok := o.Vars[v.Name]; ok {
			return nil, chk.Err("variable %q is defined twice", v.Name)
		}
		o.Vars[v.Name] = v
	}

	// objects
	for _, group := range []ObjsData{o.Materials, o.Kernels, o.Constraints, o.UserObjects} {
		for _, obj := range group {
			if obj.Name == "" || obj.Type == "" {
				return nil, chk.Err("objects must have name and type: %v", obj)
			}
			if obj.Params == nil {
				obj.Params = make(Params)
			}
		}
	}
	for _, k := range o.Kernels {
		if _, ok := o.Vars[k.Variable]; !ok {
			return nil, chk.Err("kernel %q acts on undefined variable %q", k.Name, k.Variable)
		}
	}
	for _, bc := range append(append([]*BcData{}, o.Dirichlet...), o.Neumann...) {
		if _, ok := o.Vars[bc.Variable]; !ok {
			return nil, chk.Err("boundary condition on undefined variable %q", bc.Variable)
		}
	}

	// solver
	err = o.Solver.PostProcess()
	if err != nil {
		return nil, err
	}

	// mesh
	o.Msh, err = NewLineMesh(&o.Mesh)
	return
}

// VarNames returns the names of variables in the order they were given
func (o *Problem) VarNames() (names []string) {
	for _, v := range o.Variables {
		names = append(names, v.Name)
	}
	return
}

// SetDefault sets defaults values
func (o *SolverData) SetDefault() {
	o.Type = "euler"
	o.Mode = "lumped"
	o.Dt = 0.01
	o.Tf = 1.0
	o.Tol = 1e-10
	o.MaxIt = 1000
	o.DtMin = 1e-8
	o.NdtCut = 10
}

// PostProcess checks solver data after reading
func (o *SolverData) PostProcess() (err error) {
	o.Mode = strings.ToLower(o.Mode)
	switch o.Mode {
	case "consistent", "lumped", "lump-preconditioned":
	default:
		return chk.Err("explicit solve mode %q is invalid", o.Mode)
	}
	if o.Type != "euler" {
		return chk.Err("time stepper %q is not available", o.Type)
	}
	if o.Dt <= 0 || o.Tf < 0 {
		return chk.Err("time step and final time must be positive. dt=%g tf=%g", o.Dt, o.Tf)
	}
	return
}
