// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uobj

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/deps"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
	"github.com/cpmech/mphys/resolve"
	"github.com/cpmech/mphys/shp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_uobj01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("uobj01. threaded copies and integrals")

	// warehouses
	nthreads := 2
	msh, err := inp.NewLineMesh(&inp.MeshData{Xmin: 0, Xmax: 1, Ncells: 4, Geo: "lin2", Quad: "gauss", Nqp: 2, Blocks: []int{0, 0, 1, 1}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	props := prop.NewWarehouse(nthreads, len(msh.Cells))
	stage := new(resolve.Stage)
	trackers := []*deps.Tracker{deps.NewTracker(), deps.NewTracker()}
	funcs := inp.FuncsData{&inp.FuncData{Name: "f", Type: "lin", Prms: dbf.Params{&dbf.P{N: "m", V: 2}, &dbf.P{N: "ts", V: 0}}}}
	resolver := func(dat *inp.ObjData, tid int) *resolve.Resolver {
		cfg := resolve.Config{Name: dat.Name, Params: dat.Params, Domain: dat.Domain(), MeshBlocks: msh.Blocks, Funcs: funcs}
		return resolve.New(cfg, props.Store(tid), trackers[tid], stage)
	}

	// objects
	wh := NewWarehouse(nthreads)
	dats := inp.ObjsData{
		&inp.ObjData{Name: "total", Type: "integral", Params: inp.Params{"variable": "u"}},
		&inp.ObjData{Name: "avg", Type: "average", Variable: "u"},
		&inp.ObjData{Name: "right", Type: "integral", Variable: "u", Blocks: []int{1}},
		&inp.ObjData{Name: "mass", Type: "property-integral", Params: inp.Params{"property": "2"}},
		&inp.ObjData{Name: "probe", Type: "function-value", Params: inp.Params{"function": "fcn:f", "x": "0.5"}},
	}
	for _, dat := range dats {
		if err = wh.Add(dat, resolver); err != nil {
			tst.Errorf("Add failed: %v\n", err)
			return
		}
	}
	if err = wh.Add(dats[0], resolver); err == nil {
		tst.Errorf("adding the same object twice should have failed\n")
		return
	}
	stage.Complete()
	if err = wh.Init(); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}

	// threaded copies
	t0, t1 := wh.Objects(0), wh.Objects(1)
	for i, obj := range t0 {
		threaded := wh.NeedThreadedCopy(obj)
		if threaded == (obj == t1[i]) {
			tst.Errorf("object %q: threaded=%v but copies are shared=%v\n", obj.Name(), threaded, obj == t1[i])
			return
		}
	}
	if wh.NeedThreadedCopy(wh.Get("probe")) {
		tst.Errorf("function-value must be shared\n")
		return
	}

	// element loop with u = x
	shape, _ := shp.Get("lin2")
	ips, _ := shp.GetIps("gauss", 2)
	u := &ele.Variable{Name: "u", Ncomp: 1}
	asm := []*ele.Assembly{ele.NewAssembly(1, []*ele.Variable{u}), ele.NewAssembly(1, []*ele.Variable{u})}
	wh.Initialize(1.5)
	for e, cell := range msh.Cells {
		tid := e % nthreads
		a := asm[tid]
		x := ele.BuildCoordsMatrix(cell, msh)
		if err = a.Reinit(cell, x, shape, ips); err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		a.SetNodal("u", [][]float64{{x[0][0]}, {x[0][1]}}, nil)
		if err = wh.Execute(tid, a); err != nil {
			tst.Errorf("Execute failed: %v\n", err)
			return
		}
	}
	wh.Finalize()

	vals := wh.Values()
	io.Pforan("values = %v\n", vals)
	chk.Float64(tst, "∫u", 1e-15, vals["total"], 0.5)
	chk.Float64(tst, "avg(u)", 1e-15, vals["avg"], 0.5)
	chk.Float64(tst, "∫u on block 1", 1e-15, vals["right"], 0.375)
	chk.Float64(tst, "∫2", 1e-15, vals["mass"], 2)
	chk.Float64(tst, "f(1.5)", 1e-15, vals["probe"], 3)

	// second pass starts from zero
	wh.Initialize(0)
	wh.Finalize()
	chk.Float64(tst, "∫u after reset", 1e-15, wh.Values()["total"], 0)
}

func Test_uobj02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("uobj02. errors")

	wh := NewWarehouse(1)
	resolver := func(dat *inp.ObjData, tid int) *resolve.Resolver {
		return resolve.New(resolve.Config{Name: dat.Name, Params: dat.Params}, prop.NewWarehouse(1, 1).Store(0), deps.NewTracker(), new(resolve.Stage))
	}
	for _, dat := range []*inp.ObjData{
		{Name: "a", Type: "unknown"},
		{Name: "b", Type: "integral"},
		{Name: "c", Type: "property-integral"},
		{Name: "d", Type: "function-value", Params: inp.Params{"function": "f"}},
	} {
		err := wh.Add(dat, resolver)
		if err == nil {
			tst.Errorf("Add should have failed for %q\n", dat.Name)
			return
		}
		io.Pforan("ok: %v\n", err)
	}
}
