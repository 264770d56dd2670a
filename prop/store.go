// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prop

import (
	"github.com/cpmech/mphys/errs"
)

// Caller defines the object requesting properties from a store
type Caller interface {
	Name() string          // name of object
	StatefulAllowed() bool // whether the object has opted into old/older values
}

// Store holds the properties of one thread. Stores are not shared among threads; the only shared
// data are the Registry (ids), the History (stateful values; one element per thread at a time)
// and the maximum number of integration points (atomic) in the Warehouse
type Store struct {
	Tid int // thread id

	// shared
	wh *Warehouse // parent

	// current element
	elem int // index of element; -1 if none
	nqp  int // number of integration points of element

	// properties by id
	cur   []*Property // current values
	old   []*Property // old values; allocated if stateful
	older []*Property // older values; allocated if stateful

	// zero properties by name
	zeros map[string]*Property

	// diagnostics
	counts []int // number of requests by id
}

// newStore returns a new store for thread tid
func newStore(wh *Warehouse, tid int) (o *Store) {
	o = &Store{Tid: tid, wh: wh, elem: -1}
	o.zeros = make(map[string]*Property)
	return
}

// Declare declares a property produced by an object over a domain and returns its id.
// Declaring the same (name,type) twice returns the same id
func (o *Store) Declare(name string, typ Type, producer string, dom Domain) (id int, err error) {
	id, err = o.wh.Reg.Declare(name, typ, producer, dom)
	if err != nil {
		return
	}
	o.grow(id)
	if o.cur[id] == nil {
		o.cur[id] = newProperty(id, name, typ, Current, o.wh.MaxQp())
	}
	return
}

// Has tells whether a property with given name and type has been declared
func (o *Store) Has(name string, typ Type) bool {
	info := o.wh.Reg.Lookup(name)
	return info != nil && info.Type == typ
}

// Current returns the current values of property id resized to hold (at least) nqp points
func (o *Store) Current(id, nqp int) (p *Property, err error) {
	p, err = o.current(id)
	if err != nil {
		return
	}
	o.wh.observe(nqp)
	p.Resize(nqp)
	o.counts[id]++
	return
}

// Old returns the old values of property id. The caller must allow stateful properties
func (o *Store) Old(id int, caller Caller) (p *Property, err error) {
	return o.stateful(id, Old, caller)
}

// Older returns the older values of property id. The caller must allow stateful properties
func (o *Store) Older(id int, caller Caller) (p *Property, err error) {
	return o.stateful(id, Older, caller)
}

// Zero returns a property with zero values that does not need to be declared. The returned
// property has as many points as the maximum number of integration points in all threads
func (o *Store) Zero(name string, typ Type) (p *Property) {
	key := name + "@" + typ.String()
	p, ok := o.zeros[key]
	if !ok {
		p = newProperty(-1, name, typ, Current, 0)
		o.zeros[key] = p
	}
	p.Resize(o.wh.MaxQp())
	p.SetZero()
	return
}

// Counts returns the number of requests of property id made to this store
func (o *Store) Counts(id int) int {
	if id < 0 || id >= len(o.counts) {
		return 0
	}
	return o.counts[id]
}

// element /////////////////////////////////////////////////////////////////////////////////////////

// Reinit prepares the store for element idx with nqp integration points: current values are
// resized and old/older views of stateful properties are loaded from the history.
//  Output:
//   fresh -- the history of this element has no initial values yet; the caller must compute
//            the initial values of current properties and call InitHistory
func (o *Store) Reinit(idx, nqp int) (fresh bool) {
	o.elem, o.nqp = idx, nqp
	o.wh.observe(nqp)
	for _, p := range o.cur {
		if p != nil {
			p.Resize(nqp)
		}
	}
	ids := o.wh.Hist.Ids()
	if len(ids) == 0 {
		return false
	}
	e := o.wh.Hist.element(idx, nqp, ids)
	if !e.ready {
		return true
	}
	for _, id := range ids {
		o.grow(id)
		o.view(id, Old).CopyFrom(&Property{V: e.old[id]})
		o.view(id, Older).CopyFrom(&Property{V: e.older[id]})
	}
	return false
}

// InitHistory sets the current values of the element as the initial values of all generations
func (o *Store) InitHistory() {
	ids := o.wh.Hist.Ids()
	if len(ids) == 0 || o.elem < 0 {
		return
	}
	e := o.wh.Hist.element(o.elem, o.nqp, ids)
	for _, id := range ids {
		o.grow(id)
		if o.cur[id] == nil {
			continue
		}
		for qp := 0; qp < o.nqp; qp++ {
			copy(e.cur[id][qp], o.cur[id].V[qp])
			copy(e.old[id][qp], o.cur[id].V[qp])
			copy(e.older[id][qp], o.cur[id].V[qp])
		}
		o.view(id, Old).CopyFrom(&Property{V: e.old[id]})
		o.view(id, Older).CopyFrom(&Property{V: e.older[id]})
	}
	e.ready = true
}

// Save stores the current values of stateful properties of the element in the history
func (o *Store) Save() {
	ids := o.wh.Hist.Ids()
	if len(ids) == 0 || o.elem < 0 {
		return
	}
	e := o.wh.Hist.element(o.elem, o.nqp, ids)
	for _, id := range ids {
		if id < len(o.cur) && o.cur[id] != nil {
			for qp := 0; qp < o.nqp; qp++ {
				copy(e.cur[id][qp], o.cur[id].V[qp])
			}
		}
	}
}

// Nqp returns the number of integration points of the current element
func (o *Store) Nqp() int { return o.nqp }

// MaxQp returns the maximum number of integration points seen by all threads
func (o *Store) MaxQp() int { return o.wh.MaxQp() }

// Lookup returns the registration data of a property or nil if not declared
func (o *Store) Lookup(name string) *Info { return o.wh.Reg.Lookup(name) }

// Declared returns the current values of property id without counting a request
func (o *Store) Declared(id int) (p *Property, err error) { return o.current(id) }

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// current returns the current property or an error if it has not been declared
func (o *Store) current(id int) (p *Property, err error) {
	info := o.wh.Reg.Info(id)
	if info == nil {
		return nil, errs.New(errs.NotDeclared, "property with id=%d has not been declared", id)
	}
	o.grow(id)
	if o.cur[id] == nil { // declared by another thread's object
		o.cur[id] = newProperty(id, info.Name, info.Type, Current, o.wh.MaxQp())
	}
	return o.cur[id], nil
}

// stateful returns the old/older view of property id
func (o *Store) stateful(id int, gen Gen, caller Caller) (p *Property, err error) {
	if !caller.StatefulAllowed() {
		name := "?"
		if info := o.wh.Reg.Info(id); info != nil {
			name = info.Name
		}
		return nil, errs.New(errs.StatefulNotAllowed, "stateful properties are not allowed for %q: %s value of %q was requested", caller.Name(), gen, name)
	}
	cur, err := o.current(id)
	if err != nil {
		return
	}
	o.wh.Hist.MarkStateful(id, cur.Type)
	p = o.view(id, gen)
	o.counts[id]++
	return
}

// view returns (allocating if needed) the old/older view of property id
func (o *Store) view(id int, gen Gen) (p *Property) {
	info := o.wh.Reg.Info(id)
	slot := &o.old
	if gen == Older {
		slot = &o.older
	}
	p = (*slot)[id]
	if p == nil {
		p = newProperty(id, info.Name, info.Type, gen, o.wh.MaxQp())
		(*slot)[id] = p
	}
	p.Resize(o.nqp)
	return
}

// grow makes room for property id
func (o *Store) grow(id int) {
	for len(o.cur) <= id {
		o.cur = append(o.cur, nil)
		o.old = append(o.old, nil)
		o.older = append(o.older, nil)
		o.counts = append(o.counts, 0)
	}
}
