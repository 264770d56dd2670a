// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prop

import (
	"sync"

	"github.com/cpmech/mphys/errs"
)

// Info holds the registration data of a property
type Info struct {
	Id        int      // dense id
	Name      string   // name of property
	Type      Type     // type of value
	Domain    Domain   // where the property is defined
	Producers []string // names of objects declaring this property
}

// Registry assigns ids to property names. It is shared by the stores of all threads; thus, it
// is the only structure of this package protected by a lock (used during setup only)
type Registry struct {
	mu    sync.RWMutex
	ids   map[string]int
	infos []*Info
}

// NewRegistry returns a new registry
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// Declare declares a property produced by an object over a domain and returns its id.
//  Notes:
//   1) declaring the same (name,type) again returns the same id
//   2) a different type for an existent name yields TypeMismatch
//   3) the same name declared on overlapping but not identical domains yields DomainMismatch;
//      disjoint domains are merged
func (o *Registry) Declare(name string, typ Type, producer string, dom Domain) (id int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// new property
	id, ok := o.ids[name]
	if !ok {
		id = len(o.infos)
		o.ids[name] = id
		o.infos = append(o.infos, &Info{Id: id, Name: name, Type: typ, Domain: dom, Producers: []string{producer}})
		return
	}

	// check type
	info := o.infos[id]
	if info.Type != typ {
		return -1, errs.New(errs.TypeMismatch, "property %q declared by %q with type %v was already declared with type %v", name, producer, typ, info.Type)
	}

	// same producer (e.g. the copy of an object in another thread)
	for _, p := range info.Producers {
		if p == producer {
			return
		}
	}

	// check domain
	switch {
	case info.Domain.Same(dom):
	case info.Domain.Disjoint(dom):
		info.Domain = info.Domain.Union(dom)
	default:
		return -1, errs.New(errs.DomainMismatch, "property %q declared by %q on %v overlaps the previous declaration on %v", name, producer, dom, info.Domain)
	}
	info.Producers = append(info.Producers, producer)
	return
}

// Lookup returns the information about a property or nil if not declared
func (o *Registry) Lookup(name string) *Info {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if id, ok := o.ids[name]; ok {
		return o.infos[id]
	}
	return nil
}

// Info returns the information about a property with given id
func (o *Registry) Info(id int) *Info {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if id < 0 || id >= len(o.infos) {
		return nil
	}
	return o.infos[id]
}

// Nprops returns the number of properties
func (o *Registry) Nprops() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.infos)
}

// Names returns the names of all properties ordered by id
func (o *Registry) Names() (names []string) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names = make([]string, len(o.infos))
	for i, info := range o.infos {
		names[i] = info.Name
	}
	return
}
