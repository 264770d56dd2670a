// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the assembly of residuals, Jacobians and mass matrices over all elements
// and the explicit time integration of the resulting system
package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/deps"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/mdl/generic"
	"github.com/cpmech/mphys/prop"
	"github.com/cpmech/mphys/resolve"
	"github.com/cpmech/mphys/shp"
	"github.com/cpmech/mphys/uobj"

	// kernels and materials
	_ "github.com/cpmech/mphys/ele/diffusion"
	_ "github.com/cpmech/mphys/mdl/diffusion"
)

// Domain holds the mesh, the variables and their equations, the objects of all threads and the
// solution at nodes
type Domain struct {

	// input
	Prob    *inp.Problem // problem data
	Msh     *inp.Mesh    // mesh
	ShowMsg bool         // show messages

	// variables and equations
	Vars   []*ele.Variable          // all variables
	VarMap map[string]*ele.Variable // name => variable
	Eqs    [][][]int                // [nverts][nvars][ncomp] equation numbers; node-major
	Neq    int                      // number of equations

	// properties and objects
	Props       *prop.Warehouse      // property stores of all threads
	Stage       *resolve.Stage       // setup stage
	Threads     []*Thread            // [nthreads] per-thread objects and buffers
	Order       []string             // names of materials in dependency order
	Uobjs       *uobj.Warehouse      // user objects
	Constraints []ele.NodeConstraint // node constraints
	resolvers   []*resolve.Resolver  // all resolvers of thread 0
	slaves      map[int]bool         // equations of slave nodes with overwritten residuals

	// boundary conditions
	Ebcs   EssentialBcs     // prescribed values
	Nbcs   []*ele.NaturalBc // prescribed fluxes
	NbcEqs []int            // equations of natural bcs

	// auxiliary
	Ips    []shp.Ipoint    // integration points of all cells
	Right  []int           // [ncells] cell on the right of each cell; -1 if none
	Warned map[string]bool // kernels already reported as using the default Jacobian

	// solution
	Sol *ele.Solution // solution state

	// functions called when the mesh changes
	meshFcns []func()
}

// NewDomain allocates all objects of a problem, declares and resolves their properties and sets
// the initial values. The setup is split in two phases: all materials declare their properties,
// the stage is completed and then all objects resolve the properties they consume
//  Input:
//   nthreads -- number of threads; 0 means the one given in the problem data
func NewDomain(prob *inp.Problem, nthreads int, verbose bool) (o *Domain, err error) {

	// basic data
	o = &Domain{Prob: prob, Msh: prob.Msh, ShowMsg: verbose}
	if nthreads < 1 {
		nthreads = prob.Data.Nthreads
	}
	if nthreads < 1 {
		nthreads = 1
	}
	o.Warned = make(map[string]bool)

	// variables and equations
	o.VarMap = make(map[string]*ele.Variable)
	for i, v := range prob.Variables {
		o.Vars = append(o.Vars, &ele.Variable{Name: v.Name, Id: i, Ncomp: v.Ncomp})
		o.VarMap[v.Name] = o.Vars[i]
	}
	o.Eqs = make([][][]int, len(o.Msh.Verts))
	for m := range o.Msh.Verts {
		o.Eqs[m] = make([][]int, len(o.Vars))
		for k, v := range o.Vars {
			o.Eqs[m][k] = make([]int, v.Ncomp)
			for c := 0; c < v.Ncomp; c++ {
				o.Eqs[m][k][c] = o.Neq
				o.Neq++
			}
		}
	}

	// integration points and neighbours
	o.Ips, err = shp.GetIps(o.Msh.Quad, o.Msh.Nqp)
	if err != nil {
		return
	}
	o.Right = make([]int, len(o.Msh.Cells))
	first := make(map[int]int)
	for _, cell := range o.Msh.Cells {
		first[cell.Verts[0]] = cell.Id
	}
	for _, cell := range o.Msh.Cells {
		o.Right[cell.Id] = -1
		if id, ok := first[cell.Verts[1]]; ok {
			o.Right[cell.Id] = id
		}
	}

	// stores
	o.Props = prop.NewWarehouse(nthreads, len(o.Msh.Cells))
	o.Stage = new(resolve.Stage)
	o.Uobjs = uobj.NewWarehouse(nthreads)

	// phase 1: allocate objects and declare properties
	for tid := 0; tid < nthreads; tid++ {
		o.Threads = append(o.Threads, newThread(tid))
	}
	for _, th := range o.Threads {
		err = th.alloc(o)
		if err != nil {
			return
		}
	}
	err = o.setConstraints()
	if err != nil {
		return
	}
	for _, dat := range prob.UserObjects {
		err = o.Uobjs.Add(dat, o.resolver)
		if err != nil {
			return
		}
	}
	o.Stage.Complete()
	if o.ShowMsg {
		io.Pf("> Properties declared: %v\n", o.Props.Reg.Names())
	}

	// phase 2: resolve properties
	for _, th := range o.Threads {
		err = th.init()
		if err != nil {
			return
		}
	}
	err = o.Uobjs.Init()
	if err != nil {
		return
	}

	// order of materials
	err = o.sortMaterials()
	if err != nil {
		return
	}

	// boundary conditions
	err = o.setBcs()
	if err != nil {
		return
	}

	// initial values
	o.Sol = ele.NewSolution(o.Neq)
	o.SetIniVals()
	return
}

// SetIniVals sets the initial values of the solution and clears the history of properties
func (o *Domain) SetIniVals() {
	o.Sol.Reset()
	for k, v := range o.Prob.Variables {
		for m := range o.Msh.Verts {
			for c := 0; c < v.Ncomp; c++ {
				o.Sol.Y[o.Eqs[m][k][c]] = v.Ini
			}
		}
	}
	o.Ebcs.FixValues(o.Sol)
	o.Props.Hist.Resize(0)
	o.Props.Hist.Resize(len(o.Msh.Cells))
}

// MaterialDeps returns the names of the material properties read by object name. Thread 0's
// tracker holds the dependencies of all threads after Reduce
func (o *Domain) MaterialDeps(name string) (names []string) {
	for _, id := range o.Threads[0].Tracker.Of(name).Sorted() {
		names = append(names, o.Props.Reg.Info(id).Name)
	}
	return
}

// Reduce merges the diagnostics of all threads into thread 0
func (o *Domain) Reduce() {
	for _, th := range o.Threads[1:] {
		o.Threads[0].Tracker.Merge(th.Tracker)
	}
	o.Props.Reduce()
}

// MeshChanged updates the data that depend on the number of cells and calls the functions
// registered with OnMeshChanged. The history of cells that remain is kept; new cells start fresh
func (o *Domain) MeshChanged() {
	o.Props.Hist.Resize(len(o.Msh.Cells))
	for _, fcn := range o.meshFcns {
		fcn()
	}
}

// OnMeshChanged registers a function to be called by MeshChanged
func (o *Domain) OnMeshChanged(fcn func()) {
	o.meshFcns = append(o.meshFcns, fcn)
}

// Free releases properties
func (o *Domain) Free() {
	for _, r := range o.resolvers {
		r.Free()
	}
	o.Props.Free()
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// resolver returns a new resolver for object dat on thread tid
func (o *Domain) resolver(dat *inp.ObjData, tid int) (r *resolve.Resolver) {
	cfg := resolve.Config{
		Name:       dat.Name,
		Params:     dat.Params,
		Domain:     dat.Domain(),
		MeshBlocks: o.Msh.Blocks,
		Stateful:   dat.Stateful,
		Funcs:      o.Prob.Functions,
	}
	r = resolve.New(cfg, o.Props.Store(tid), o.Threads[tid].Tracker, o.Stage)
	if tid == 0 {
		o.resolvers = append(o.resolvers, r)
	}
	return
}

// setConstraints allocates the node constraints (thread 0)
func (o *Domain) setConstraints() (err error) {
	o.slaves = make(map[int]bool)
	for _, dat := range o.Prob.Constraints {
		v, ok := o.VarMap[dat.Variable]
		if !ok {
			return chk.Err("constraint %q: variable %q does not exist", dat.Name, dat.Variable)
		}
		if v.IsArray() {
			return chk.Err("constraint %q: array variable %q cannot be constrained", dat.Name, dat.Variable)
		}
		var c ele.NodeConstraint
		c, err = ele.NewConstraint(dat, v, o.resolver(dat, 0))
		if err != nil {
			return
		}
		m, s := c.Nodes()
		if m >= len(o.Msh.Verts) || s >= len(o.Msh.Verts) {
			return chk.Err("constraint %q: vertices (%d, %d) are not in mesh with %d vertices", dat.Name, m, s, len(o.Msh.Verts))
		}
		o.Constraints = append(o.Constraints, c)
		if c.OverwriteSlaveResidual() {
			o.slaves[o.Eqs[s][v.Id][0]] = true
		}
	}
	return
}

// sortMaterials sorts the materials of all threads such that producers come before consumers
func (o *Domain) sortMaterials() (err error) {
	var names []string
	for _, m := range o.Threads[0].Mats {
		names = append(names, m.Name())
	}
	producers := func(id int) []string { return o.Props.Reg.Info(id).Producers }
	tracker := deps.NewTracker()
	for _, th := range o.Threads {
		tracker.Merge(th.Tracker)
	}
	o.Order, err = deps.NewGraph(names, tracker, producers).Order()
	if err != nil {
		return
	}
	idx := make(map[string]int)
	for i, name := range o.Order {
		idx[name] = i
	}
	for _, th := range o.Threads {
		sort.Slice(th.Mats, func(i, j int) bool { return idx[th.Mats[i].Name()] < idx[th.Mats[j].Name()] })
	}
	if o.ShowMsg {
		io.Pf("> Materials sorted: %v\n", o.Order)
	}
	return
}

// setBcs sets essential and natural boundary conditions
func (o *Domain) setBcs() (err error) {
	o.Ebcs.Init()
	for _, bc := range o.Prob.Dirichlet {
		var fcn dbf.T
		var verts, eqs []int
		fcn, verts, eqs, err = o.bcData(bc)
		if err != nil {
			return
		}
		for i, eq := range eqs {
			o.Ebcs.Set(bc.Variable, eq, fcn, o.Msh.Verts[verts[i]].C)
		}
	}
	for _, bc := range o.Prob.Neumann {
		var fcn dbf.T
		var verts, eqs []int
		fcn, verts, eqs, err = o.bcData(bc)
		if err != nil {
			return
		}
		for i, eq := range eqs {
			o.Nbcs = append(o.Nbcs, &ele.NaturalBc{Key: bc.Variable, Vert: verts[i], Comp: bc.Comp, Fcn: fcn})
			o.NbcEqs = append(o.NbcEqs, eq)
		}
	}
	o.Ebcs.Build()
	return
}

// bcData returns the function, the vertices and the equations of a boundary condition
func (o *Domain) bcData(bc *inp.BcData) (fcn dbf.T, verts, eqs []int, err error) {
	v, ok := o.VarMap[bc.Variable]
	if !ok {
		return nil, nil, nil, chk.Err("boundary condition: variable %q does not exist", bc.Variable)
	}
	if bc.Comp < 0 || bc.Comp >= v.Ncomp {
		return nil, nil, nil, chk.Err("boundary condition: component %d of variable %q is invalid", bc.Comp, bc.Variable)
	}
	if fname, isfcn := inp.FuncName(bc.Value); isfcn {
		fcn, err = o.Prob.Functions.Get(fname)
	} else {
		vals, isnum := inp.ParseLiteral(bc.Value)
		if !isnum || len(vals) != 1 {
			return nil, nil, nil, chk.Err("boundary condition on %q: value %q is neither a number nor a function", bc.Variable, bc.Value)
		}
		fcn, err = dbf.New("cte", dbf.Params{&dbf.P{N: "c", V: vals[0]}})
	}
	if err != nil {
		return
	}
	verts = o.Msh.BoundaryVerts(bc.Boundary)
	if len(verts) == 0 {
		return nil, nil, nil, chk.Err("boundary condition on %q: boundary %d has no vertices", bc.Variable, bc.Boundary)
	}
	for _, m := range verts {
		eqs = append(eqs, o.Eqs[m][v.Id][bc.Comp])
	}
	return
}
