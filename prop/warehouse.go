// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prop

import (
	"sync/atomic"

	"github.com/cpmech/gosl/chk"
)

// Warehouse holds one Store per thread plus the data shared by all stores
type Warehouse struct {
	Reg    *Registry // property ids; shared
	Hist   *History  // stateful values; shared
	Stores []*Store  // [nthreads] one store per thread
	maxqp  int64     // maximum number of integration points seen by any thread
}

// NewWarehouse returns a new warehouse with nthreads stores for a mesh with nelem elements
func NewWarehouse(nthreads, nelem int) (o *Warehouse) {
	if nthreads < 1 {
		chk.Panic("number of threads must be at least 1. %d is invalid", nthreads)
	}
	o = new(Warehouse)
	o.Reg = NewRegistry()
	o.Hist = NewHistory(nelem)
	o.Stores = make([]*Store, nthreads)
	for tid := 0; tid < nthreads; tid++ {
		o.Stores[tid] = newStore(o, tid)
	}
	return
}

// Store returns the store of thread tid
func (o *Warehouse) Store(tid int) *Store { return o.Stores[tid] }

// MaxQp returns the maximum number of integration points seen so far by all threads
func (o *Warehouse) MaxQp() int { return int(atomic.LoadInt64(&o.maxqp)) }

// Shift advances old/older generations of all elements; to be called at the step-acceptance
// barrier, when no thread is assembling
func (o *Warehouse) Shift() { o.Hist.Shift() }

// Restore rolls back current stateful values to the old ones
func (o *Warehouse) Restore() { o.Hist.Restore() }

// Reduce adds the request counters of all threads into thread 0 and clears the others.
// Thread 0 is then authoritative for diagnostics
func (o *Warehouse) Reduce() {
	s0 := o.Stores[0]
	for _, s := range o.Stores[1:] {
		for id, c := range s.counts {
			s0.grow(id)
			s0.counts[id] += c
			s.counts[id] = 0
		}
	}
}

// Requests returns the number of requests by property name according to thread 0
func (o *Warehouse) Requests() (res map[string]int) {
	res = make(map[string]int)
	for id, name := range o.Reg.Names() {
		res[name] = o.Stores[0].Counts(id)
	}
	return
}

// Free releases all properties
func (o *Warehouse) Free() {
	for _, s := range o.Stores {
		s.cur, s.old, s.older, s.counts = nil, nil, nil, nil
		s.zeros = make(map[string]*Property)
	}
	o.Hist = NewHistory(0)
}

// observe records the number of integration points of an element
func (o *Warehouse) observe(nqp int) {
	for {
		cur := atomic.LoadInt64(&o.maxqp)
		if int64(nqp) <= cur || atomic.CompareAndSwapInt64(&o.maxqp, cur, int64(nqp)) {
			return
		}
	}
}
