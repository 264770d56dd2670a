// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"golang.org/x/sync/errgroup"
)

// AssembleResidual computes the global residual vector of kernels with tag at time t.
// The contributions of natural boundary conditions and node constraints are added to the
// "nontime" vector. Entries of prescribed equations are zero
func (o *Domain) AssembleResidual(tag string, t float64) (r []float64, err error) {

	// kernels
	err = o.run(t, func(th *Thread, cell *inp.Cell) (err error) {
		return th.addToResidual(o, cell, tag)
	})
	if err != nil {
		return
	}
	r = make([]float64, o.Neq)
	for _, th := range o.Threads {
		for i, v := range th.R {
			r[i] += v
		}
	}

	// natural boundary conditions and constraints
	if tag == ele.TagNonTime {
		for i, bc := range o.Nbcs {
			bc.AddToResidual(r, o.NbcEqs[i], t, o.Msh.Verts[bc.Vert].C)
		}
		for _, c := range o.Constraints {
			eqm, eqs := o.constraintEqs(c)
			c.Bind(o.Sol.Y[eqm], o.Sol.Y[eqs])
			ele.ApplyConstraint(c, r, eqm, eqs)
		}
	}
	o.Ebcs.ZeroResidual(r)
	return
}

// AssembleJacobian computes the global Jacobian of kernels with tag. Rows and columns of
// prescribed equations are replaced by the identity
func (o *Domain) AssembleJacobian(tag string) (K *la.Triplet, err error) {

	// kernels
	err = o.run(o.Sol.T, func(th *Thread, cell *inp.Cell) (err error) {
		return th.addToJacobian(o, cell, tag)
	})
	if err != nil {
		return
	}
	o.warnDefaultJacobians()

	// constraints
	var extra cooBuffer
	if tag == ele.TagNonTime {
		for _, c := range o.Constraints {
			eqm, eqs := o.constraintEqs(c)
			c.Bind(o.Sol.Y[eqm], o.Sol.Y[eqs])
			J := ele.ConstraintJacobian(c)
			geqs := []int{eqs, eqm}
			for i, I := range geqs {
				for j, J2 := range geqs {
					o.put(&extra, I, J2, J[i][j])
				}
			}
		}
	}

	// global matrix
	nnz := len(o.Ebcs.Bcs) + len(extra.X)
	for _, th := range o.Threads {
		nnz += len(th.coo.X)
	}
	K = new(la.Triplet)
	K.Init(o.Neq, o.Neq, nnz)
	for _, th := range o.Threads {
		for k, x := range th.coo.X {
			K.Put(th.coo.I[k], th.coo.J[k], x)
		}
	}
	for k, x := range extra.X {
		K.Put(extra.I[k], extra.J[k], x)
	}
	for _, bc := range o.Ebcs.Bcs {
		K.Put(bc.Eq, bc.Eq, 1)
	}
	return
}

// AssembleMass computes the global mass matrix; i.e. the Jacobian of time derivative kernels
// with respect to du/dt
func (o *Domain) AssembleMass() (M *la.Triplet, err error) {
	return o.AssembleJacobian(ele.TagTime)
}

// RunUserObjects executes all user objects over the elements they are restricted to and
// finalizes them
func (o *Domain) RunUserObjects(t float64) (err error) {
	o.Uobjs.Initialize(t)
	err = o.run(t, func(th *Thread, cell *inp.Cell) (err error) {
		err = th.bind(o, cell, t, o.Sol.Dt)
		if err != nil {
			return
		}
		return o.Uobjs.Execute(th.Tid, th.A)
	})
	if err != nil {
		return
	}
	o.Uobjs.Finalize()
	return
}

// AcceptStep shifts the history of stateful properties: old becomes older and current becomes
// old. It must be called once after each converged step
func (o *Domain) AcceptStep() {
	o.Props.Shift()
}

// RejectStep discards the current values of stateful properties and restores the solution
func (o *Domain) RejectStep() {
	o.Props.Restore()
	o.Sol.Restore()
}

// IpValues computes the values of properties at all integration points. Properties missing in
// an element give zero
func (o *Domain) IpValues(names []string) (m *ele.IpsMap, err error) {
	m = ele.NewIpsMap()
	n := len(o.Msh.Cells) * len(o.Ips)
	err = o.run(o.Sol.T, func(th *Thread, cell *inp.Cell) (err error) {
		err = th.bind(o, cell, o.Sol.T, o.Sol.Dt)
		if err != nil {
			return
		}
		for _, name := range names {
			info := th.Store.Lookup(name)
			if info == nil {
				continue
			}
			p, e := th.Store.Declared(info.Id)
			if e != nil || len(p.V) < th.A.Nqp {
				continue
			}
			for qp := 0; qp < th.A.Nqp; qp++ {
				th.vals = append(th.vals, ipValue{name, cell.Id*len(o.Ips) + qp, p.V[qp][0]})
			}
		}
		return
	})
	if err != nil {
		return
	}
	for _, th := range o.Threads {
		for _, v := range th.vals {
			m.Set(v.key, v.idx, n, v.val)
		}
	}
	return
}

// DefaultJacobians returns the number of entries computed with the default Jacobian, by kernel
func (o *Domain) DefaultJacobians() (res map[string]int) {
	res = make(map[string]int)
	for _, th := range o.Threads {
		for name, n := range th.Loc.DefaultJacobians {
			res[name] += n
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// run calls fcn for all cells; each thread processes its own cells
func (o *Domain) run(t float64, fcn func(th *Thread, cell *inp.Cell) error) error {
	var g errgroup.Group
	for _, th := range o.Threads {
		th := th
		utl.Fill(th.R, 0)
		th.coo.reset()
		th.vals = th.vals[:0]
		g.Go(func() (err error) {
			for _, cell := range th.Cells {
				err = fcn(th, cell)
				if err != nil {
					return chk.Err("thread %d: cell %d: %v", th.Tid, cell.Id, err)
				}
			}
			return
		})
	}
	return g.Wait()
}

// put adds an entry to buf unless the row or the column is prescribed
func (o *Domain) put(buf *cooBuffer, i, j int, x float64) {
	if o.Ebcs.Has(i) || o.Ebcs.Has(j) {
		return
	}
	buf.put(i, j, x)
}

// constraintEqs returns the equations of the master and slave nodes of a constraint
func (o *Domain) constraintEqs(c ele.NodeConstraint) (eqm, eqs int) {
	m, s := c.Nodes()
	return o.Eqs[m][c.Var().Id][0], o.Eqs[s][c.Var().Id][0]
}

// warnDefaultJacobians prints a message once per kernel using the default Jacobian
func (o *Domain) warnDefaultJacobians() {
	res := o.DefaultJacobians()
	names := make([]string, 0, len(res))
	for name := range res {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if res[name] > 0 && !o.Warned[name] {
			o.Warned[name] = true
			if o.ShowMsg {
				io.Pfyel("> Warning: kernel %q does not compute its Jacobian; the default value 1 is used\n", name)
			}
		}
	}
}

// thread assembly ///////////////////////////////////////////////////////////////////////////////////

// ipValue holds a value at an integration point
type ipValue struct {
	key string
	idx int
	val float64
}

// acts tells whether kernel k contributes to tag on cell
func acts(k ele.Kernel, cell *inp.Cell, tag string) bool {
	return k.Block(cell.Block) && ele.Tag(k) == tag
}

// addToResidual adds the local residuals of kernels on cell to th.R
func (o *Thread) addToResidual(d *Domain, cell *inp.Cell, tag string) (err error) {
	err = o.bind(d, cell, d.Sol.T, d.Sol.Dt)
	if err != nil {
		return
	}
	for _, k := range o.Kernels {
		if !acts(k, cell, tag) {
			continue
		}
		var re []float64
		re, err = o.Loc.Residual(k)
		if err != nil {
			return
		}
		for i, eq := range eqs(d, cell, k.Var()) {
			o.R[eq] += re[i]
		}
	}
	return
}

// addToJacobian adds the local Jacobians of kernels on cell to th.coo
func (o *Thread) addToJacobian(d *Domain, cell *inp.Cell, tag string) (err error) {
	err = o.bind(d, cell, d.Sol.T, d.Sol.Dt)
	if err != nil {
		return
	}
	for _, k := range o.Kernels {
		if !acts(k, cell, tag) {
			continue
		}
		rows := eqs(d, cell, k.Var())

		// own variable
		var ke [][]float64
		ke, err = o.Loc.Jacobian(k)
		if err != nil {
			return
		}
		o.putMatrix(d, tag, rows, rows, ke)

		// coupled variables
		for _, name := range k.Coupled() {
			jvar := d.VarMap[name]
			ke, err = o.Loc.OffDiagJacobian(k, jvar)
			if err != nil {
				return
			}
			o.putMatrix(d, tag, rows, eqs(d, cell, jvar), ke)
		}

		// neighbour
		if nk, ok := k.(ele.NeighborKernel); ok && o.A.Neighbor != nil {
			ke, err = o.Loc.NeighborJacobian(nk)
			if err != nil {
				return
			}
			o.putMatrix(d, tag, rows, eqs(d, o.A.Neighbor.Cell, k.Var()), ke)
		}
	}
	return
}

// putMatrix adds a local matrix to the buffer of entries. Rows of slave nodes whose residual
// is overwritten by a constraint are skipped in the "nontime" matrix
func (o *Thread) putMatrix(d *Domain, tag string, rows, cols []int, ke [][]float64) {
	for i, I := range rows {
		if tag == ele.TagNonTime && d.slaves[I] {
			continue
		}
		for j, J := range cols {
			d.put(&o.coo, I, J, ke[i][j])
		}
	}
}
