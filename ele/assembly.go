// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/shp"
)

// Assembly holds the data of the element bound by one thread: shape functions at integration
// points and values of variables. Kernels read it through Base
type Assembly struct {

	// element
	Ndim  int         // space dimension
	Cell  *inp.Cell   // the cell
	X     [][]float64 // [ndim][nverts] coordinates of vertices
	Shp   *shp.Shape  // shape structure
	Ips   []shp.Ipoint
	T, Dt float64 // time and time step

	// at integration points
	Nverts  int           // number of vertices == number of test/trial functions
	Nqp     int           // number of integration points
	Phi     [][]float64   // [nqp][nverts] shape functions
	GradPhi [][][]float64 // [nqp][nverts][ndim] gradients of shape functions
	JxW     [][]float64   // [nqp][1] Jacobian determinant times weight
	Xqp     [][]float64   // [nqp][ndim] real coordinates

	// variables
	Vars     []*Variable        // all variables
	Values   map[string]*Values // variable name => values on element
	Neighbor *Assembly          // neighbour element; nil if none

	// loop indices
	Qp int // integration point
	I  int // test function
	J  int // trial function
}

// NewAssembly returns a new assembly structure for variables vars in ndim space
func NewAssembly(ndim int, vars []*Variable) (o *Assembly) {
	o = &Assembly{Ndim: ndim, Vars: vars}
	o.Values = make(map[string]*Values)
	return
}

// Reinit computes shape functions at integration points of an element
//  Input:
//   cell  -- the cell
//   x     -- [ndim][nverts] coordinates of vertices
//   shape -- shape structure corresponding to cell
//   ips   -- integration points
func (o *Assembly) Reinit(cell *inp.Cell, x [][]float64, shape *shp.Shape, ips []shp.Ipoint) (err error) {
	if shape.Nverts != len(cell.Verts) {
		return chk.Err("shape %q has %d vertices but cell %d has %d", shape.Type, shape.Nverts, cell.Id, len(cell.Verts))
	}
	o.Cell, o.X, o.Shp, o.Ips = cell, x, shape, ips
	nverts, nqp := shape.Nverts, len(ips)
	if nverts != o.Nverts || nqp != o.Nqp {
		o.Nverts, o.Nqp = nverts, nqp
		o.Phi = utl.Alloc(nqp, nverts)
		o.GradPhi = make([][][]float64, nqp)
		for qp := 0; qp < nqp; qp++ {
			o.GradPhi[qp] = utl.Alloc(nverts, o.Ndim)
		}
		o.JxW = utl.Alloc(nqp, 1)
		o.Xqp = utl.Alloc(nqp, o.Ndim)
	}
	for qp, ip := range ips {
		err = shape.CalcAtIp(x, ip, true)
		if err != nil {
			return chk.Err("cell %d: %v", cell.Id, err)
		}
		o.JxW[qp][0] = shape.J * ip[3]
		for m := 0; m < nverts; m++ {
			o.Phi[qp][m] = shape.S[m]
			copy(o.GradPhi[qp][m], shape.G[m])
		}
		copy(o.Xqp[qp], shape.IpRealCoords(x, ip))
	}
	for _, v := range o.Vars {
		if vals, ok := o.Values[v.Name]; !ok || !vals.fits(nverts, nqp) {
			o.Values[v.Name] = newValues(v, nverts, nqp, o.Ndim)
		}
	}
	return
}

// SetNodal sets the nodal values of variable name and interpolates them to integration points
//  Input:
//   u    -- [nverts][ncomp] nodal values
//   udot -- [nverts][ncomp] nodal du/dt; may be nil
func (o *Assembly) SetNodal(name string, u, udot [][]float64) (err error) {
	vals, ok := o.Values[name]
	if !ok {
		return chk.Err("variable %q is not available in element", name)
	}
	if len(u) != o.Nverts {
		return chk.Err("variable %q: %d nodal values were given but the element has %d vertices", name, len(u), o.Nverts)
	}
	for m := 0; m < o.Nverts; m++ {
		copy(vals.Nodal[m], u[m])
		if udot != nil {
			copy(vals.NodalDot[m], udot[m])
		} else {
			for c := range vals.NodalDot[m] {
				vals.NodalDot[m][c] = 0
			}
		}
	}
	ncomp := vals.Var.Ncomp
	for qp := 0; qp < o.Nqp; qp++ {
		for c := 0; c < ncomp; c++ {
			vals.U[qp][c], vals.Udot[qp][c] = 0, 0
			for i := 0; i < o.Ndim; i++ {
				vals.GradU[qp][c][i] = 0
			}
			for m := 0; m < o.Nverts; m++ {
				vals.U[qp][c] += o.Phi[qp][m] * vals.Nodal[m][c]
				vals.Udot[qp][c] += o.Phi[qp][m] * vals.NodalDot[m][c]
				for i := 0; i < o.Ndim; i++ {
					vals.GradU[qp][c][i] += o.GradPhi[qp][m][i] * vals.Nodal[m][c]
				}
			}
		}
	}
	return
}

// Coords returns the coordinates of integration points as [nqp][ndim]
func (o *Assembly) Coords() [][]float64 { return o.Xqp }
