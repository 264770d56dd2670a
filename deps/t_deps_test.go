// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deps

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/errs"
)

func Test_tracker01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tracker01. monotonic sets")

	t := NewTracker()
	if t.Called("k1") {
		tst.Errorf("k1 has not called anything yet\n")
	}
	chk.Int(tst, "empty", len(t.Of("k1")), 0)

	rnd := rand.New(rand.NewSource(1234))
	prev := 0
	for i := 0; i < 200; i++ {
		id := rnd.Intn(15)
		t.Record("k1", id, rnd.Intn(2) == 0)
		n := len(t.Of("k1"))
		if n < prev {
			tst.Errorf("dependency set shrank from %d to %d\n", prev, n)
			return
		}
		prev = n
	}
	if !t.Called("k1") {
		tst.Errorf("k1 has called\n")
	}

	// idempotent insert
	t2 := NewTracker()
	t2.Record("k2", 3, true)
	t2.Record("k2", 3, true)
	t2.Record("k2", 3, false)
	chk.Ints(tst, "k2", t2.Of("k2").Sorted(), []int{3})
	chk.Ints(tst, "k2 current", t2.CurrentOf("k2").Sorted(), []int{3})

	// old only
	t2.Record("k3", 5, false)
	chk.Ints(tst, "k3", t2.Of("k3").Sorted(), []int{5})
	chk.Int(tst, "k3 current", len(t2.CurrentOf("k3")), 0)

	// called without dependencies
	t2.MarkCalled("k4")
	if !t2.Called("k4") {
		tst.Errorf("k4 has called\n")
	}
	chk.Int(tst, "k4", len(t2.Of("k4")), 0)

	// merge
	t.Merge(t2)
	chk.Strings(tst, "consumers", t.Consumers(), []string{"k1", "k2", "k3", "k4"})
	io.Pforan("k1 = %v\n", t.Of("k1").Sorted())
}

func Test_graph01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("graph01. evaluation order")

	// properties: 0 = "k" by matK ; 1 = "ρ" by matRho ; 2 = "D" by matD
	producers := func(id int) []string {
		return [][]string{{"matK"}, {"matRho"}, {"matD"}}[id]
	}

	// matD(D) needs k and ρ; matK needs ρ; kernel needs D
	t := NewTracker()
	t.Record("matD", 0, true)
	t.Record("matD", 1, true)
	t.Record("matK", 1, true)
	t.Record("kernel", 2, true)
	g := NewGraph([]string{"matD", "matK", "matRho"}, t, producers)
	order, err := g.Order()
	if err != nil {
		tst.Errorf("Order failed: %v\n", err)
		return
	}
	chk.Strings(tst, "order", order, []string{"matRho", "matK", "matD"})

	// old values do not create edges
	t.Record("matRho", 2, false)
	g = NewGraph([]string{"matD", "matK", "matRho"}, t, producers)
	order, err = g.Order()
	if err != nil {
		tst.Errorf("Order failed: %v\n", err)
		return
	}
	chk.Strings(tst, "order", order, []string{"matRho", "matK", "matD"})

	// cycle
	t.Record("matRho", 2, true)
	g = NewGraph([]string{"matD", "matK", "matRho"}, t, producers)
	_, err = g.Order()
	if !errs.Is(err, errs.DependencyCycle) {
		tst.Errorf("DependencyCycle expected. got %v\n", err)
		return
	}
	io.Pforan("err = %v\n", err)
}
