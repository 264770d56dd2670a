// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/mphys/ana"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/errs"
	"github.com/cpmech/mphys/inp"
	"github.com/sebdah/goldie/v2"
)

// kernel without Jacobian: R = u v
type noJacobian struct{ ele.Base }

func (o *noJacobian) Kind() ele.ValueKind { return ele.Scalar }
func (o *noJacobian) QpResidual() float64 { return o.U() * o.Test() }

func init() {
	ele.SetAllocator("test-nojacobian", func(dat *inp.ObjData, base ele.Base) (ele.Kernel, error) {
		return &noJacobian{Base: base}, nil
	})
}

// failOnce is a linear solver failing on the first call only
type failOnce struct {
	lin   LinSol
	calls int
}

func (o *failOnce) Solve(A *la.Matrix, b, x la.Vector) (bool, error) {
	o.calls++
	if o.calls == 1 {
		return false, nil
	}
	return o.lin.Solve(A, b, x)
}

// problem parses a problem given as yaml
func problem(tst *testing.T, str string) *inp.Problem {
	prob, err := inp.ParseProblem([]byte(str))
	if err != nil {
		tst.Fatalf("ParseProblem failed: %v\n", err)
	}
	return prob
}

// domain allocates a domain with nthreads
func domain(tst *testing.T, prob *inp.Problem, nthreads int) *Domain {
	d, err := NewDomain(prob, nthreads, chk.Verbose)
	if err != nil {
		tst.Fatalf("NewDomain failed: %v\n", err)
	}
	return d
}

// readDomain reads a problem file and allocates a domain with nthreads
func readDomain(tst *testing.T, path string, nthreads int) *Domain {
	prob, err := inp.ReadProblem(path)
	if err != nil {
		tst.Fatalf("ReadProblem failed: %v\n", err)
	}
	return domain(tst, prob, nthreads)
}

// matrix returns the dense version of a Jacobian or mass matrix
func matrix(tst *testing.T, d *Domain, tag string) [][]float64 {
	K, err := d.AssembleJacobian(tag)
	if err != nil {
		tst.Fatalf("AssembleJacobian failed: %v\n", err)
	}
	D := K.ToDense()
	res := make([][]float64, D.M)
	for i := 0; i < D.M; i++ {
		res[i] = make([]float64, D.N)
		for j := 0; j < D.N; j++ {
			res[i][j] = D.Get(i, j)
		}
	}
	return res
}

func Test_fem01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem01. diffusion with source. first step")

	d := readDomain(tst, "../inp/data/diffu1d.yaml", 0)
	chk.Int(tst, "nthreads", len(d.Threads), 2)
	chk.Int(tst, "neq", d.Neq, 5)
	chk.Strings(tst, "order", d.Order, []string{"matA", "matB", "matK"})
	chk.Strings(tst, "deps of diff", d.MaterialDeps("diff"), []string{"keff"})
	chk.Strings(tst, "deps of matK", d.MaterialDeps("matK"), []string{"k"})

	// lobatto => diagonal mass
	M := matrix(tst, d, ele.TagTime)
	chk.Deep2(tst, "M", 1e-15, M, [][]float64{
		{1, 0, 0, 0, 0},
		{0, 0.25, 0, 0, 0},
		{0, 0, 0.25, 0, 0},
		{0, 0, 0, 0.25, 0},
		{0, 0, 0, 0, 1},
	})

	// residual at u = 0: source only
	R, err := d.AssembleResidual(ele.TagNonTime, 0)
	if err != nil {
		tst.Errorf("AssembleResidual failed: %v\n", err)
		return
	}
	chk.Array(tst, "R", 1e-15, R, []float64{0, -0.25, -0.25, -0.25, 0})

	// one step
	s, err := NewExplicitEuler(d)
	if err != nil {
		tst.Errorf("NewExplicitEuler failed: %v\n", err)
		return
	}
	ok, err := s.Step(0.001)
	if err != nil || !ok {
		tst.Errorf("Step failed: %v %v\n", ok, err)
		return
	}
	chk.Float64(tst, "t", 1e-15, d.Sol.T, 0.001)
	chk.Array(tst, "Y", 1e-15, d.Sol.Y, []float64{0, 0.001, 0.001, 0.001, 0})

	// integral of u (trapezoidal rule is exact for lobatto points)
	err = d.RunUserObjects(d.Sol.T)
	if err != nil {
		tst.Errorf("RunUserObjects failed: %v\n", err)
		return
	}
	chk.Float64(tst, "∫u", 1e-15, d.Uobjs.Values()["total"], 0.00075)
	d.AcceptStep()
}

func Test_fem02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem02. threads give the same results")

	var Y [][]float64
	var totals []float64
	for _, nthreads := range []int{1, 2, 3} {
		d := readDomain(tst, "../inp/data/diffu1d.yaml", nthreads)
		s, err := NewExplicitEuler(d)
		if err != nil {
			tst.Errorf("NewExplicitEuler failed: %v\n", err)
			return
		}
		err = s.Run(d.Prob.Solver.Tf, chk.Verbose)
		if err != nil {
			tst.Errorf("Run failed: %v\n", err)
			return
		}
		chk.Int(tst, "number of steps", s.Nit, 10)
		Y = append(Y, append([]float64{}, d.Sol.Y...))
		totals = append(totals, d.Uobjs.Values()["total"])
	}
	chk.Array(tst, "Y(2 threads)", 1e-15, Y[1], Y[0])
	chk.Array(tst, "Y(3 threads)", 1e-15, Y[2], Y[0])
	chk.Array(tst, "totals", 1e-15, totals[1:], []float64{totals[0], totals[0]})

	// integral of u with the trapezoidal rule
	h, sum := 0.25, 0.0
	for i := 0; i < 4; i++ {
		sum += h * (Y[0][i] + Y[0][i+1]) / 2
	}
	chk.Float64(tst, "∫u", 1e-15, totals[0], sum)
	if Y[0][2] <= 0 {
		tst.Errorf("u at the middle should be positive. got %g\n", Y[0][2])
	}
}

func Test_fem03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem03. lumped equals consistent with lobatto points")

	str := `
mesh: {xmin: 0, xmax: 1, ncells: 1, quad: lobatto, nqp: 2}
variables: [{name: u, ini: 1}]
kernels:
  - {name: dudt, type: timederivative, variable: u}
  - {name: diff, type: diffusion, variable: u, params: {coef: "1"}}
  - {name: src, type: bodyforce, variable: u, params: {value: "2"}}
solver: {mode: MODE, dt: 0.1, tf: 0.1}
`
	for _, mode := range []string{"consistent", "lumped", "lump-preconditioned"} {
		d := domain(tst, problem(tst, strings.Replace(str, "MODE", mode, 1)), 1)
		chk.Deep2(tst, "M", 1e-15, matrix(tst, d, ele.TagTime), [][]float64{{0.5, 0}, {0, 0.5}})
		s, err := NewExplicitEuler(d)
		if err != nil {
			tst.Errorf("NewExplicitEuler failed: %v\n", err)
			return
		}
		ok, err := s.Step(0.1)
		if err != nil || !ok {
			tst.Errorf("%s: Step failed: %v %v\n", mode, ok, err)
			return
		}
		chk.Array(tst, mode, 1e-14, d.Sol.Y, []float64{1.2, 1.2})
		chk.Array(tst, mode+": dydt", 1e-13, d.Sol.Dydt, []float64{2, 2})
	}
}

func Test_fem04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem04. arrays, coupling, stateful and tie")

	d := readDomain(tst, "../inp/data/array1d.yaml", 0)
	chk.Int(tst, "neq", d.Neq, 9)
	chk.Ints(tst, "eqs of vertex 1", []int{d.Eqs[1][0][0], d.Eqs[1][0][1], d.Eqs[1][1][0]}, []int{3, 4, 5})

	s, err := NewExplicitEuler(d)
	if err != nil {
		tst.Errorf("NewExplicitEuler failed: %v\n", err)
		return
	}
	err = s.Run(d.Prob.Solver.Tf, chk.Verbose)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Int(tst, "number of steps", s.Nit, 10)

	// tie: v(slave) = v(master)
	v := d.VarMap["v"]
	chk.Float64(tst, "tied v", 1e-15, d.Sol.Y[d.Eqs[2][v.Id][0]], d.Sol.Y[d.Eqs[0][v.Id][0]])

	// stateful: dose = rate * t after accepting; current values hold the next increment
	m, err := d.IpValues([]string{"dose"})
	if err != nil {
		tst.Errorf("IpValues failed: %v\n", err)
		return
	}
	for idx := 0; idx < 4; idx++ {
		chk.Float64(tst, "dose", 1e-15, m.Get("dose", idx), 0.5*0.001+0.5*0.0001)
	}
	chk.Strings(tst, "deps of hist", d.MaterialDeps("hist"), []string{"dose"})
}

func Test_fem05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem05. neighbour Jacobian and default Jacobian")

	str := `
mesh: {xmin: 0, xmax: 2, ncells: 2, quad: lobatto, nqp: 2}
variables: [{name: u, ini: 1}]
kernels:
  - {name: jump, type: neighbor-coupling, variable: u, params: {coef: "2"}}
`
	d := domain(tst, problem(tst, str), 1)
	chk.Ints(tst, "right", d.Right, []int{1, -1})
	chk.Deep2(tst, "K", 1e-15, matrix(tst, d, ele.TagNonTime), [][]float64{
		{1, -1, 0},
		{0, 1, -1},
		{0, 0, 0},
	})
	if len(d.Warned) != 0 {
		tst.Errorf("no kernel should use the default Jacobian\n")
	}

	// default Jacobian = 1
	str = `
mesh: {xmin: 0, xmax: 1, ncells: 1, quad: lobatto, nqp: 2}
variables: [{name: u}]
kernels:
  - {name: nojac, type: test-nojacobian, variable: u}
`
	d = domain(tst, problem(tst, str), 1)
	chk.Deep2(tst, "K", 1e-15, matrix(tst, d, ele.TagNonTime), [][]float64{{1, 1}, {1, 1}})
	if !d.Warned["nojac"] {
		tst.Errorf("nojac should have been reported\n")
	}
	chk.Int(tst, "default entries", d.DefaultJacobians()["nojac"], 8)
}

func Test_fem06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem06. setup errors")

	base := `
mesh: {xmin: 0, xmax: 1, ncells: 2, blocks: [0, 1]}
variables: [{name: u}]
`
	for _, c := range []struct {
		str  string
		code errs.Code
	}{
		{`
kernels:
  - {name: diff, type: diffusion, variable: u, params: {coef: k}}
`, errs.NotDeclared},
		{`
materials:
  - {name: hist, type: accumulate, params: {output: q, rate: "1"}}
`, errs.StatefulNotAllowed},
		{`
materials:
  - {name: a, type: linear, params: {input: y, output: x}}
  - {name: b, type: linear, params: {input: x, output: y}}
`, errs.DependencyCycle},
		{`
materials:
  - {name: m, type: constant, blocks: [0], params: {k: "1"}}
kernels:
  - {name: diff, type: diffusion, variable: u, params: {coef: k}}
`, errs.DomainMismatch},
		{`
materials:
  - {name: m, type: constant, params: {k: "1 2"}}
kernels:
  - {name: diff, type: diffusion, variable: u, params: {coef: k}}
`, errs.TypeMismatch},
	} {
		_, err := NewDomain(problem(tst, base+c.str), 1, false)
		if !errs.Is(err, c.code) {
			tst.Errorf("%v expected. got %v\n", c.code, err)
			continue
		}
		if !errs.Fatal(err) {
			tst.Errorf("setup errors must be fatal: %v\n", err)
		}
	}
}

func Test_fem07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem07. steady state of bar with source")

	str := `
mesh: {xmin: 0, xmax: 1, ncells: 4, quad: lobatto, nqp: 2}
variables: [{name: u}]
materials:
  - {name: mat, type: constant, params: {k: "2"}}
kernels:
  - {name: dudt, type: timederivative, variable: u}
  - {name: diff, type: diffusion, variable: u, params: {coef: k}}
  - {name: src, type: bodyforce, variable: u, params: {value: "1"}}
dirichlet:
  - {variable: u, boundary: 0, value: "0"}
  - {variable: u, boundary: 1, value: "0"}
solver: {mode: lumped, dt: 0.01, tf: 2}
`
	d := domain(tst, problem(tst, str), 2)
	s, err := NewExplicitEuler(d)
	if err != nil {
		tst.Errorf("NewExplicitEuler failed: %v\n", err)
		return
	}
	err = s.Run(d.Prob.Solver.Tf, false)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// linear elements are nodally exact in 1D
	var sol ana.SteadyBar
	err = sol.Init(dbf.Params{&dbf.P{N: "k", V: 2}, &dbf.P{N: "s", V: 1}})
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	for i := 0; i < 5; i++ {
		x := float64(i) / 4
		io.Pforan("x = %5.2f   u = %10.6f   ana = %10.6f\n", x, d.Sol.Y[i], sol.U(x))
		chk.Float64(tst, io.Sf("u(%g)", x), 1e-8, d.Sol.Y[i], sol.U(x))
	}
}

func Test_fem08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem08. time dependent mass")

	str := `
mesh: {xmin: 0, xmax: 1, ncells: 1, quad: lobatto, nqp: 2}
variables: [{name: u, ini: 1}]
functions:
  - {name: rhof, type: lin, prms: [{n: m, v: 1}, {n: ts, v: -1}]}
kernels:
  - {name: dudt, type: timederivative, variable: u, params: {coef: "fcn:rhof"}}
  - {name: src, type: bodyforce, variable: u, params: {value: "2"}}
solver: {mode: MODE, dt: 0.5, tf: 1}
`
	// ρ = 1 + t  =>  Δu = Δt / (0.5 ρ(t))
	for _, mode := range []string{"consistent", "lumped", "lump-preconditioned"} {
		d := domain(tst, problem(tst, strings.Replace(str, "MODE", mode, 1)), 1)
		s, err := NewExplicitEuler(d)
		if err != nil {
			tst.Errorf("NewExplicitEuler failed: %v\n", err)
			return
		}
		for k, u := range []float64{2, 2 + 1/1.5} {
			ok, err := s.Step(0.5)
			if err != nil || !ok {
				tst.Errorf("%s: Step failed: %v %v\n", mode, ok, err)
				return
			}
			d.AcceptStep()
			chk.Array(tst, io.Sf("%s: u @ step %d", mode, k+1), 1e-13, d.Sol.Y, []float64{u, u})
		}
		if mode != "consistent" {
			chk.Array(tst, mode+": lumped mass", 1e-15, s.Exp.Lumped(), []float64{0.75, 0.75})
		}
	}
}

func Test_fem09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem09. mesh changed keeps history and refreshes lumped mass")

	var Y [][]float64
	var dose []float64
	for _, changed := range []bool{false, true} {
		d := readDomain(tst, "../inp/data/array1d.yaml", 0)
		s, err := NewExplicitEuler(d)
		if err != nil {
			tst.Errorf("NewExplicitEuler failed: %v\n", err)
			return
		}
		for k := 0; k < 4; k++ {
			if changed && k == 2 {
				d.MeshChanged()
				if !s.Exp.stale {
					tst.Errorf("lumped mass buffers should be marked as outdated\n")
					return
				}
			}
			ok, err := s.Step(d.Prob.Solver.Dt)
			if err != nil || !ok {
				tst.Errorf("Step failed: %v %v\n", ok, err)
				return
			}
			d.AcceptStep()
		}
		m, err := d.IpValues([]string{"dose"})
		if err != nil {
			tst.Errorf("IpValues failed: %v\n", err)
			return
		}
		Y = append(Y, append([]float64{}, d.Sol.Y...))
		dose = append(dose, m.Get("dose", 0))
	}
	chk.Array(tst, "Y", 1e-15, Y[1], Y[0])
	chk.Float64(tst, "dose", 1e-15, dose[1], dose[0])
}

func Test_fem10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem10. time step recovers after a cut")

	str := `
mesh: {xmin: 0, xmax: 1, ncells: 1, quad: lobatto, nqp: 2}
variables: [{name: u, ini: 1}]
kernels:
  - {name: dudt, type: timederivative, variable: u}
  - {name: src, type: bodyforce, variable: u, params: {value: "2"}}
solver: {mode: consistent, dt: 0.1, tf: 0.5}
`
	d := domain(tst, problem(tst, str), 1)
	s, err := NewExplicitEuler(d)
	if err != nil {
		tst.Errorf("NewExplicitEuler failed: %v\n", err)
		return
	}
	lin := &failOnce{lin: s.Exp.Lin}
	s.Exp.Lin = lin
	err = s.Run(d.Prob.Solver.Tf, chk.Verbose)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// dt: 0.05 (cut), 0.1, 0.1, 0.1, 0.1, 0.05
	chk.Int(tst, "calls", lin.calls, 7)
	chk.Int(tst, "number of steps", s.Nit, 6)
	chk.Float64(tst, "dt", 1e-15, s.Dt, 0.1)
	chk.Float64(tst, "t", 1e-14, d.Sol.T, 0.5)
	chk.Array(tst, "u", 1e-13, d.Sol.Y, []float64{2, 2})
}

func Test_report01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report01. properties and dependencies")

	d := readDomain(tst, "../inp/data/diffu1d.yaml", 0)
	g := goldie.New(tst)
	g.Assert(tst, "diffu1d_report", []byte(d.Report()))
}

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. run problem file")

	m, err := NewMain("../inp/data/diffu1d.yaml", 1, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed: %v\n", err)
		return
	}
	err = m.Run()
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Float64(tst, "t", 1e-14, m.Dom.Sol.T, m.Prob.Solver.Tf)

	// unknown file
	if _, err = NewMain("../inp/data/nonexistent.yaml", 1, false); err == nil {
		tst.Errorf("NewMain should fail with nonexistent file\n")
	}
}
