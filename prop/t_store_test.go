// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prop

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/errs"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// caller implements Caller for tests
type caller struct {
	name     string
	stateful bool
}

func (o caller) Name() string          { return o.name }
func (o caller) StatefulAllowed() bool { return o.stateful }

func Test_declare01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("declare01. idempotent declaration and type mismatch")

	wh := NewWarehouse(1, 1)
	s := wh.Store(0)
	dom := NewDomain([]int{1, 2}, nil)

	id1, err := s.Declare("diffusivity", Real(), "mat1", dom)
	if err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}
	id2, err := s.Declare("diffusivity", Real(), "mat1", dom)
	if err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}
	chk.Int(tst, "same id", id2, id1)

	id3, err := s.Declare("conductivity", Tensor(2, 2), "mat1", dom)
	if err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}
	chk.Int(tst, "next id", id3, id1+1)

	_, err = s.Declare("diffusivity", Vector(3), "mat1", dom)
	if !errs.Is(err, errs.TypeMismatch) {
		tst.Errorf("TypeMismatch expected. got %v\n", err)
		return
	}
	io.Pforan("err = %v\n", err)

	if !s.Has("diffusivity", Real()) {
		tst.Errorf("Has should return true\n")
	}
	if s.Has("diffusivity", Array(2)) {
		tst.Errorf("Has should return false for another type\n")
	}
	if s.Has("unknown", Real()) {
		tst.Errorf("Has should return false for undeclared property\n")
	}
}

func Test_declare02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("declare02. domains")

	reg := NewRegistry()
	id, err := reg.Declare("k", Real(), "matA", NewDomain([]int{1}, nil))
	if err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}

	// disjoint => merged
	id2, err := reg.Declare("k", Real(), "matB", NewDomain([]int{2}, nil))
	if err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}
	chk.Int(tst, "id", id2, id)
	info := reg.Lookup("k")
	chk.Ints(tst, "blocks", info.Domain.Blocks, []int{1, 2})
	chk.Strings(tst, "producers", info.Producers, []string{"matA", "matB"})

	// same producer again (copy in another thread)
	id3, err := reg.Declare("k", Real(), "matA", NewDomain([]int{1}, nil))
	if err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}
	chk.Int(tst, "id", id3, id)
	chk.Strings(tst, "producers", info.Producers, []string{"matA", "matB"})

	// overlapping but not identical
	_, err = reg.Declare("k", Real(), "matC", NewDomain([]int{2, 3}, nil))
	if !errs.Is(err, errs.DomainMismatch) {
		tst.Errorf("DomainMismatch expected. got %v\n", err)
	}

	// everywhere overlaps everything
	_, err = reg.Declare("k", Real(), "matD", Domain{})
	if !errs.Is(err, errs.DomainMismatch) {
		tst.Errorf("DomainMismatch expected. got %v\n", err)
	}

	// coverage
	d12 := NewDomain([]int{2, 1, 2}, nil)
	chk.Ints(tst, "sorted unique", d12.Blocks, []int{1, 2})
	if !d12.Covers(NewDomain([]int{1}, nil)) {
		tst.Errorf("{1,2} should cover {1}\n")
	}
	if d12.Covers(NewDomain([]int{3}, nil)) {
		tst.Errorf("{1,2} should not cover {3}\n")
	}
	if d12.Covers(Domain{}) {
		tst.Errorf("{1,2} should not cover everywhere\n")
	}
	if !(Domain{}).Covers(d12) {
		tst.Errorf("everywhere covers all\n")
	}
}

func Test_zero01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("zero01. zero property sized by max nqp of all threads")

	wh := NewWarehouse(3, 3)
	wh.Store(0).Reinit(0, 2)
	wh.Store(2).Reinit(2, 9)
	wh.Store(1).Reinit(1, 4)

	z := wh.Store(1).Zero("missing", Tensor(2, 2))
	chk.Int(tst, "nqp", z.Nqp(), 9)
	for qp := 0; qp < z.Nqp(); qp++ {
		chk.Array(tst, "zero", 1e-17, z.V[qp], []float64{0, 0, 0, 0})
	}

	// modifications are reset on the next request
	z.Set(0, 1, 1, 123)
	z = wh.Store(1).Zero("missing", Tensor(2, 2))
	chk.Float64(tst, "reset", 1e-17, z.At(0, 1, 1), 0)

	// the zero property is not registered
	chk.Int(tst, "nprops", wh.Reg.Nprops(), 0)

	// concurrent growth
	var wg sync.WaitGroup
	for tid := 0; tid < 3; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			wh.Store(tid).Reinit(tid, 10+tid)
		}(tid)
	}
	wg.Wait()
	chk.Int(tst, "max nqp", wh.MaxQp(), 12)
	chk.Int(tst, "nqp", wh.Store(0).Zero("missing", Real()).Nqp(), 12)
}

func Test_history01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("history01. snapshot immutability")

	wh := NewWarehouse(1, 2)
	s := wh.Store(0)
	me := caller{"plastic", true}
	id, err := s.Declare("strain", Real(), "plastic", Domain{})
	if err != nil {
		tst.Errorf("Declare failed: %v\n", err)
		return
	}
	old, err := s.Old(id, me)
	if err != nil {
		tst.Errorf("Old failed: %v\n", err)
		return
	}
	older, err := s.Older(id, me)
	if err != nil {
		tst.Errorf("Older failed: %v\n", err)
		return
	}

	// first visit: initial values
	nqp := 2
	fresh := s.Reinit(0, nqp)
	if !fresh {
		tst.Errorf("element should be fresh\n")
		return
	}
	cur, _ := s.Current(id, nqp)
	cur.SetReal(0, 1)
	cur.SetReal(1, 2)
	s.InitHistory()
	chk.Float64(tst, "old@0", 1e-17, old.Real(0), 1)
	chk.Float64(tst, "older@1", 1e-17, older.Real(1), 2)

	// compute new values
	cur.SetReal(0, 10)
	cur.SetReal(1, 20)
	s.Save()

	// barrier
	wh.Shift()
	if s.Reinit(0, nqp) {
		tst.Errorf("element should not be fresh\n")
	}
	chk.Float64(tst, "old@0", 1e-17, old.Real(0), 10)
	chk.Float64(tst, "old@1", 1e-17, old.Real(1), 20)
	chk.Float64(tst, "older@0", 1e-17, older.Real(0), 1)

	// current-only mutations do not change old values
	for k := 0; k < 3; k++ {
		cur.SetReal(0, float64(100+k))
		s.Save()
		s.Reinit(0, nqp)
		chk.Float64(tst, "old@0 unchanged", 1e-17, old.Real(0), 10)
		chk.Float64(tst, "older@0 unchanged", 1e-17, older.Real(0), 1)
	}

	// restore
	wh.Restore()
	wh.Shift()
	s.Reinit(0, nqp)
	chk.Float64(tst, "old after restore+shift", 1e-17, old.Real(0), 10)
	chk.Float64(tst, "older after restore+shift", 1e-17, older.Real(0), 10)
}

func Test_stateful01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stateful01. stateless callers")

	wh := NewWarehouse(1, 1)
	s := wh.Store(0)
	id, _ := s.Declare("k", Real(), "mat", Domain{})
	_, err := s.Old(id, caller{"kernel", false})
	if !errs.Is(err, errs.StatefulNotAllowed) {
		tst.Errorf("StatefulNotAllowed expected. got %v\n", err)
	}
	_, err = s.Older(id, caller{"kernel", false})
	if !errs.Is(err, errs.StatefulNotAllowed) {
		tst.Errorf("StatefulNotAllowed expected. got %v\n", err)
	}
	if wh.Hist.IsStateful(id) {
		tst.Errorf("property must not become stateful\n")
	}
	_, err = s.Current(99, 1)
	if !errs.Is(err, errs.NotDeclared) {
		tst.Errorf("NotDeclared expected. got %v\n", err)
	}
}

func Test_requests01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("requests01. counters reduced into thread 0")

	wh := NewWarehouse(2, 2)
	id, _ := wh.Store(0).Declare("k", Real(), "mat", Domain{})
	wh.Store(1).Declare("k", Real(), "mat", Domain{})
	wh.Store(0).Current(id, 4)
	wh.Store(1).Current(id, 4)
	wh.Store(1).Current(id, 4)
	wh.Reduce()
	chk.Int(tst, "thread 0", wh.Store(0).Counts(id), 3)
	chk.Int(tst, "thread 1", wh.Store(1).Counts(id), 0)
	chk.Int(tst, "requests", wh.Requests()["k"], 3)
}
