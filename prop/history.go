// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prop

import (
	"sort"
	"sync"

	"github.com/cpmech/gosl/utl"
)

// History holds the values of stateful properties for every element; i.e. the values that must
// survive from one step to the next. Each element is touched by one thread only during a pass;
// the generations are shifted by Shift at the step-acceptance barrier (single-threaded)
type History struct {
	mu       sync.Mutex     // guards stateful during setup
	stateful map[int]Type   // ids of stateful properties
	elems    []*elemHistory // [nelem] per element data
}

// elemHistory holds the three generations of the stateful properties of one element
type elemHistory struct {
	ready bool                  // initial values were set
	nqp   int                   // number of integration points
	cur   map[int][][]float64   // id => [nqp][ncomp] current values
	old   map[int][][]float64   // id => [nqp][ncomp] old values
	older map[int][][]float64   // id => [nqp][ncomp] older values
}

// NewHistory returns a new history for nelem elements
func NewHistory(nelem int) (o *History) {
	o = new(History)
	o.stateful = make(map[int]Type)
	o.elems = make([]*elemHistory, nelem)
	return
}

// MarkStateful marks property as stateful; i.e. old/older values will be kept
func (o *History) MarkStateful(id int, typ Type) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stateful[id] = typ
}

// IsStateful tells whether property is stateful
func (o *History) IsStateful(id int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.stateful[id]
	return ok
}

// Ids returns the sorted ids of stateful properties
func (o *History) Ids() (ids []int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for id := range o.stateful {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

// Resize changes the number of elements; e.g. after the mesh has changed. The history of
// elements beyond the new size is discarded
func (o *History) Resize(nelem int) {
	if nelem <= len(o.elems) {
		o.elems = o.elems[:nelem]
		return
	}
	o.elems = append(o.elems, make([]*elemHistory, nelem-len(o.elems))...)
}

// Shift advances the generations of all elements: older <- old and old <- current.
// After this call, current values equal the (new) old values
func (o *History) Shift() {
	ids := o.Ids()
	for _, e := range o.elems {
		if e == nil || !e.ready {
			continue
		}
		for _, id := range ids {
			cur, old, older := e.cur[id], e.old[id], e.older[id]
			if cur == nil {
				continue
			}
			e.older[id], e.old[id], e.cur[id] = old, cur, older
			copyVals(e.cur[id], e.old[id])
		}
	}
}

// Restore rolls current values back to the old ones; e.g. after a failed step
func (o *History) Restore() {
	ids := o.Ids()
	for _, e := range o.elems {
		if e == nil || !e.ready {
			continue
		}
		for _, id := range ids {
			if e.cur[id] != nil {
				copyVals(e.cur[id], e.old[id])
			}
		}
	}
}

// element returns (allocating if needed) the history of element idx with nqp integration points.
// Stateful properties registered after the first allocation are allocated here as well
func (o *History) element(idx, nqp int, ids []int) (e *elemHistory) {
	e = o.elems[idx]
	if e == nil || e.nqp != nqp {
		e = &elemHistory{nqp: nqp, cur: make(map[int][][]float64), old: make(map[int][][]float64), older: make(map[int][][]float64)}
		o.elems[idx] = e
	}
	for _, id := range ids {
		if _, ok := e.cur[id]; !ok {
			ncomp := o.typeOf(id).Ncomp()
			e.cur[id] = utl.Alloc(nqp, ncomp)
			e.old[id] = utl.Alloc(nqp, ncomp)
			e.older[id] = utl.Alloc(nqp, ncomp)
			e.ready = false
		}
	}
	return
}

func (o *History) typeOf(id int) Type {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateful[id]
}

func copyVals(dst, src [][]float64) {
	for i := range dst {
		copy(dst[i], src[i])
	}
}
