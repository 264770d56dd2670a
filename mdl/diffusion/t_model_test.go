// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/mphys/deps"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/mdl/generic"
	"github.com/cpmech/mphys/prop"
	"github.com/cpmech/mphys/resolve"
	"github.com/cpmech/mphys/shp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_polynomial01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("polynomial01")

	wh, stage := prop.NewWarehouse(1, 1), new(resolve.Stage)
	dat := &inp.ObjData{Name: "kofu", Type: "polynomial", Variable: "u", Params: inp.Params{"a0": "1", "a1": "2", "a2": "3", "a3": "4"}}
	r := resolve.New(resolve.Config{Name: dat.Name, Params: dat.Params}, wh.Store(0), deps.NewTracker(), stage)
	m, err := generic.New(dat, generic.NewBase(dat, r))
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	if err = m.Declare(); err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}
	stage.Complete()
	if err = m.Init(); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}

	p := m.(*Polynomial)
	chk.Float64(tst, "k(0)", 1e-15, p.Kval(0), 1)
	chk.Float64(tst, "k(1)", 1e-15, p.Kval(1), 10)
	chk.Float64(tst, "dkdu(1)", 1e-15, p.DkDu(1), 20)
	for _, u := range utl.LinSpace(0, 2, 5) {
		chk.DerivScaSca(tst, "DkDu", 1e-9, p.DkDu(u), u, 1e-3, chk.Verbose, func(x float64) float64 {
			return p.Kval(x)
		})
	}

	// element with u = 1 everywhere
	msh, err := inp.NewLineMesh(&inp.MeshData{Xmin: 0, Xmax: 1, Ncells: 1, Geo: "lin2", Quad: "gauss", Nqp: 2})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	a := ele.NewAssembly(1, []*ele.Variable{{Name: "u", Ncomp: 1}})
	shape, _ := shp.Get("lin2")
	ips, _ := shp.GetIps("gauss", 2)
	a.Reinit(msh.Cells[0], ele.BuildCoordsMatrix(msh.Cells[0], msh), shape, ips)
	a.SetNodal("u", [][]float64{{1}, {1}}, nil)
	wh.Store(0).Reinit(0, a.Nqp)
	if err = m.Compute(a); err != nil {
		tst.Errorf("Compute failed: %v\n", err)
		return
	}
	k, _ := wh.Store(0).Declared(wh.Store(0).Lookup("k").Id)
	dkdu, _ := wh.Store(0).Declared(wh.Store(0).Lookup("k_du").Id)
	chk.Float64(tst, "k @ qp1", 1e-14, k.Real(1), 10)
	chk.Float64(tst, "dkdu @ qp0", 1e-14, dkdu.Real(0), 20)

	// missing variable
	b := ele.NewAssembly(1, nil)
	b.Reinit(msh.Cells[0], ele.BuildCoordsMatrix(msh.Cells[0], msh), shape, ips)
	if err = m.Compute(b); err == nil {
		tst.Errorf("Compute should have failed\n")
		return
	}
	io.Pforan("ok: %v\n", err)
}
