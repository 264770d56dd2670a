// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/deps"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/mdl/generic"
	"github.com/cpmech/mphys/prop"
	"github.com/cpmech/mphys/shp"
)

// Thread holds the objects and buffers of one worker. Worker tid processes the cells with
// id % nthreads == tid. Nothing in here is shared with other workers
type Thread struct {
	Tid     int                // thread id
	Cells   []*inp.Cell        // cells processed by this thread
	Store   *prop.Store        // properties
	Tracker *deps.Tracker      // dependencies
	Mats    []generic.Material // materials sorted by dependencies
	Kernels []ele.Kernel       // kernels
	Shp     *shp.Shape         // shape functions
	A       *ele.Assembly      // bound element
	Nb      *ele.Assembly      // neighbour element
	Loc     *ele.Local         // local residuals and Jacobians

	// buffers
	R    []float64 // [neq] residual
	coo  cooBuffer // matrix entries
	vals []ipValue // values at integration points
}

// cooBuffer holds matrix entries in coordinate format
type cooBuffer struct {
	I, J []int
	X    []float64
}

// put adds an entry
func (o *cooBuffer) put(i, j int, x float64) {
	o.I = append(o.I, i)
	o.J = append(o.J, j)
	o.X = append(o.X, x)
}

// reset removes all entries keeping the memory
func (o *cooBuffer) reset() {
	o.I, o.J, o.X = o.I[:0], o.J[:0], o.X[:0]
}

// newThread returns a new thread
func newThread(tid int) *Thread {
	return &Thread{Tid: tid, Tracker: deps.NewTracker(), Loc: ele.NewLocal()}
}

// alloc allocates the materials and kernels of this thread and declares the properties
func (o *Thread) alloc(d *Domain) (err error) {

	// cells
	nthreads := len(d.Threads)
	for _, cell := range d.Msh.Cells {
		if cell.Id%nthreads == o.Tid {
			o.Cells = append(o.Cells, cell)
		}
	}
	o.Store = d.Props.Store(o.Tid)
	o.R = make([]float64, d.Neq)

	// shape and assembly structures
	if len(d.Msh.Cells) > 0 {
		o.Shp, err = shp.Get(d.Msh.Cells[0].Type)
		if err != nil {
			return
		}
	}
	o.A = ele.NewAssembly(d.Msh.Ndim, d.Vars)
	o.Nb = ele.NewAssembly(d.Msh.Ndim, d.Vars)

	// materials
	for _, dat := range d.Prob.Materials {
		var m generic.Material
		m, err = generic.New(dat, generic.NewBase(dat, d.resolver(dat, o.Tid)))
		if err != nil {
			return
		}
		err = m.Declare()
		if err != nil {
			return
		}
		o.Mats = append(o.Mats, m)
	}

	// kernels
	for _, dat := range d.Prob.Kernels {
		v, ok := d.VarMap[dat.Variable]
		if !ok {
			return chk.Err("kernel %q: variable %q does not exist", dat.Name, dat.Variable)
		}
		for _, name := range dat.Coupled {
			if _, ok := d.VarMap[name]; !ok {
				return chk.Err("kernel %q: coupled variable %q does not exist", dat.Name, name)
			}
		}
		base := ele.NewKernelBase(dat.Name, v, dat.Coupled, dat.Blocks, d.resolver(dat, o.Tid))
		var k ele.Kernel
		k, err = ele.New(dat, base)
		if err != nil {
			return
		}
		o.Kernels = append(o.Kernels, k)
	}
	return
}

// init resolves the properties consumed by materials and kernels
func (o *Thread) init() (err error) {
	for _, m := range o.Mats {
		err = m.Init()
		if err != nil {
			return
		}
	}
	for _, k := range o.Kernels {
		if ini, ok := k.(ele.Initializer); ok {
			err = ini.Init()
			if err != nil {
				return
			}
		}
	}
	return
}

// bind binds the element of cell, computes the properties of its materials and sets the
// neighbour element, if any
func (o *Thread) bind(d *Domain, cell *inp.Cell, t, dt float64) (err error) {

	// element
	err = o.reinit(d, o.A, cell, t, dt)
	if err != nil {
		return
	}
	o.A.Neighbor = nil
	if right := d.Right[cell.Id]; right >= 0 {
		err = o.reinit(d, o.Nb, d.Msh.Cells[right], t, dt)
		if err != nil {
			return
		}
		o.A.Neighbor = o.Nb
	}

	// properties
	if o.Store.Reinit(cell.Id, o.A.Nqp) {
		for _, m := range o.Mats {
			if s, ok := m.(generic.Stateful); ok && m.Block(cell.Block) {
				err = s.InitStateful(o.A)
				if err != nil {
					return
				}
			}
		}
		o.Store.InitHistory()
	}
	for _, m := range o.Mats {
		if m.Block(cell.Block) {
			err = m.Compute(o.A)
			if err != nil {
				return
			}
		}
	}
	o.Store.Save()

	// local structures
	if o.Loc.Phase == ele.Bound || o.Loc.Phase == ele.Accumulated {
		o.Loc.Unbind()
	}
	return o.Loc.Bind(o.A)
}

// reinit computes shape functions and nodal values of variables of a cell
func (o *Thread) reinit(d *Domain, a *ele.Assembly, cell *inp.Cell, t, dt float64) (err error) {
	a.T, a.Dt = t, dt
	err = a.Reinit(cell, ele.BuildCoordsMatrix(cell, d.Msh), o.Shp, d.Ips)
	if err != nil {
		return
	}
	for k, v := range d.Vars {
		u := make([][]float64, len(cell.Verts))
		udot := make([][]float64, len(cell.Verts))
		for i, m := range cell.Verts {
			u[i] = make([]float64, v.Ncomp)
			udot[i] = make([]float64, v.Ncomp)
			for c := 0; c < v.Ncomp; c++ {
				u[i][c] = d.Sol.Y[d.Eqs[m][k][c]]
				udot[i][c] = d.Sol.Dydt[d.Eqs[m][k][c]]
			}
		}
		err = a.SetNodal(v.Name, u, udot)
		if err != nil {
			return
		}
	}
	return
}

// eqs returns the local-to-global map of variable v in cell: eqs[i*ncomp+c]
func eqs(d *Domain, cell *inp.Cell, v *ele.Variable) (m []int) {
	m = make([]int, 0, len(cell.Verts)*v.Ncomp)
	for _, vid := range cell.Verts {
		m = append(m, d.Eqs[vid][v.Id]...)
	}
	return
}
