// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01")

	pb, err := ReadProblem("data/diffu1d.yaml")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("%v\n", pb.Msh)

	chk.String(tst, pb.Key, "diffu1d")
	chk.IntAssert(pb.Data.Nthreads, 2)
	chk.Strings(tst, "variables", pb.VarNames(), []string{"u"})
	chk.Strings(tst, "materials", pb.Materials.Names(), []string{"matA", "matB", "matK"})
	chk.Strings(tst, "kernels", pb.Kernels.Names(), []string{"dudt", "diff", "source"})
	chk.Ints(tst, "matB blocks", pb.Materials.Get("matB").Blocks, []int{1})
	chk.String(tst, pb.Kernels.Get("diff").Params.Str("coef", ""), "keff")
	chk.String(tst, pb.Solver.Mode, "lumped")
	chk.Float64(tst, "dt", 1e-17, pb.Solver.Dt, 0.001)
	chk.IntAssert(pb.Solver.MaxIt, 1000)

	// mesh
	chk.IntAssert(len(pb.Msh.Verts), 5)
	chk.IntAssert(len(pb.Msh.Cells), 4)
	chk.Ints(tst, "blocks", pb.Msh.Blocks, []int{0, 1})
	chk.Ints(tst, "left", pb.Msh.BoundaryVerts(BryLeft), []int{0})
	chk.Ints(tst, "right", pb.Msh.BoundaryVerts(BryRight), []int{4})
	chk.Ints(tst, "verts of cell 2", pb.Msh.Cells[2].Verts, []int{2, 3})
	chk.Float64(tst, "x of vert 3", 1e-15, pb.Msh.Verts[3].C[0], 0.75)

	// functions
	f, err := pb.Functions.Get("src")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "src", 1e-17, f.F(0, nil), 1)
}

func Test_read02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read02. arrays and constraints")

	pb, err := ReadProblem("data/array1d.yaml")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.IntAssert(pb.Vars["c"].Ncomp, 2)
	chk.IntAssert(pb.Vars["v"].Ncomp, 1)
	chk.Strings(tst, "coupled", pb.Kernels.Get("cforce").Coupled, []string{"v"})
	chk.String(tst, pb.Solver.Mode, "consistent")
	chk.Float64(tst, "tol", 1e-25, pb.Solver.Tol, 1e-12)
	if !pb.Materials.Get("hist").Stateful {
		tst.Errorf("material hist must be stateful\n")
	}
	chk.Ints(tst, "blocks", pb.Msh.Blocks, []int{0})
	chk.Float64(tst, "xmax", 1e-17, pb.Msh.Verts[2].C[0], 2)
}

func Test_read03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read03. invalid input")

	bad := []string{
		"mesh: {ncells: 2}",
		"variables: [{name: u}]\nkernels: [{name: k, type: diffusion, variable: w}]",
		"variables: [{name: u}]\nsolver: {mode: implicit}",
		"variables: [{name: u}]\nmesh: {ncells: 2, blocks: [0]}",
		"variables: [{name: u}, {name: u}]",
		"variables: [{name: u}]\nmesh: {geo: qua4}",
	}
	for i, b := range bad {
		_, err := ParseProblem([]byte(b))
		if err == nil {
			tst.Errorf("input %d should have failed", i)
			return
		}
		io.Pforan("%d: %v\n", i, err)
	}
}

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01")

	prms := Params{"coef": "2.5", "d": "1, 2 3", "k": "diffusivity", "f": "fcn:source", "names": "a b"}

	v, err := prms.Float("coef", 0)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "coef", 1e-17, v, 2.5)

	v, _ = prms.Float("missing", 7)
	chk.Float64(tst, "missing", 1e-17, v, 7)

	_, err = prms.Float("d", 0)
	if err == nil {
		tst.Errorf("d is not a scalar\n")
		return
	}

	vals, _ := prms.Floats("d")
	chk.Array(tst, "d", 1e-17, vals, []float64{1, 2, 3})

	_, ok := ParseLiteral(prms.Str("k", ""))
	if ok {
		tst.Errorf("diffusivity is not a literal\n")
		return
	}

	name, ok := FuncName(prms.Str("f", ""))
	if !ok {
		tst.Errorf("f refers to a function\n")
		return
	}
	chk.String(tst, name, "source")
	chk.Strings(tst, "names", prms.Names("names"), []string{"a", "b"})
	chk.IntAssert(len(prms.DbfParams()), 1)
}
