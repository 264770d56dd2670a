// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package deps tracks which properties are read by which objects and computes the order in which
// materials must be evaluated
package deps

import "sort"

// Set holds property ids
type Set map[int]struct{}

// Has tells whether id is in the set
func (o Set) Has(id int) bool {
	_, ok := o[id]
	return ok
}

// Sorted returns the ids in increasing order
func (o Set) Sorted() (ids []int) {
	ids = make([]int, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

// Tracker accumulates, per consumer, the set of properties it requires.
// Sets only grow: there is no removal. One tracker exists per thread
type Tracker struct {
	sets    map[string]Set  // consumer => property ids (all generations)
	current map[string]Set  // consumer => property ids read as current values
	called  map[string]bool // consumer => resolved any property
}

// NewTracker returns a new tracker
func NewTracker() *Tracker {
	return &Tracker{sets: make(map[string]Set), current: make(map[string]Set), called: make(map[string]bool)}
}

// Record records that consumer depends on property id. current tells whether the current
// values are read (old/older values do not define evaluation order)
func (o *Tracker) Record(consumer string, id int, current bool) {
	insert(o.sets, consumer, id)
	if current {
		insert(o.current, consumer, id)
	}
	o.called[consumer] = true
}

// MarkCalled records that consumer has resolved a property which does not create a dependency;
// e.g. a constant or zero property
func (o *Tracker) MarkCalled(consumer string) {
	o.called[consumer] = true
}

// Of returns the set of property ids required by consumer (do not modify)
func (o *Tracker) Of(consumer string) Set {
	if s, ok := o.sets[consumer]; ok {
		return s
	}
	return Set{}
}

// CurrentOf returns the set of properties whose current values are read by consumer
func (o *Tracker) CurrentOf(consumer string) Set {
	if s, ok := o.current[consumer]; ok {
		return s
	}
	return Set{}
}

// Called tells whether consumer has ever resolved any property
func (o *Tracker) Called(consumer string) bool {
	return o.called[consumer]
}

// Consumers returns the sorted names of all consumers
func (o *Tracker) Consumers() (names []string) {
	for name := range o.called {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Merge adds all dependencies recorded by other into this tracker
func (o *Tracker) Merge(other *Tracker) {
	for consumer, s := range other.sets {
		for id := range s {
			insert(o.sets, consumer, id)
		}
	}
	for consumer, s := range other.current {
		for id := range s {
			insert(o.current, consumer, id)
		}
	}
	for consumer, c := range other.called {
		if c {
			o.called[consumer] = true
		}
	}
}

func insert(sets map[string]Set, consumer string, id int) {
	s, ok := sets[consumer]
	if !ok {
		s = make(Set)
		sets[consumer] = s
	}
	s[id] = struct{}{}
}
