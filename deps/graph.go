// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deps

import (
	"sort"
	"strings"

	"github.com/cpmech/mphys/errs"
)

// ProducersFunc returns the names of the objects declaring property id
type ProducersFunc func(id int) []string

// Graph holds the directed graph "producer => consumer" built from the current-generation
// dependencies recorded in a tracker
type Graph struct {
	Nodes []string            // names of objects, sorted
	Edges map[string][]string // producer => consumers (sorted)
}

// NewGraph builds the graph among objects. Producers outside objects are ignored
func NewGraph(objects []string, tracker *Tracker, producers ProducersFunc) (o *Graph) {
	o = new(Graph)
	o.Nodes = append([]string{}, objects...)
	sort.Strings(o.Nodes)
	o.Edges = make(map[string][]string)
	known := make(map[string]bool)
	for _, name := range o.Nodes {
		known[name] = true
	}
	for _, consumer := range o.Nodes {
		for _, id := range tracker.CurrentOf(consumer).Sorted() {
			for _, producer := range producers(id) {
				if !known[producer] || producer == consumer {
					continue
				}
				o.Edges[producer] = appendUnique(o.Edges[producer], consumer)
			}
		}
	}
	for k := range o.Edges {
		sort.Strings(o.Edges[k])
	}
	return
}

// Order returns the objects sorted such that producers come before consumers.
// Ties are broken alphabetically. A cycle yields DependencyCycle
func (o *Graph) Order() (order []string, err error) {

	// in-degrees
	indeg := make(map[string]int)
	for _, name := range o.Nodes {
		indeg[name] += 0
		for _, c := range o.Edges[name] {
			indeg[c]++
		}
	}

	// Kahn's algorithm
	var ready []string
	for _, name := range o.Nodes {
		if indeg[name] == 0 {
			ready = append(ready, name)
		}
	}
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, c := range o.Edges[name] {
			indeg[c]--
			if indeg[c] == 0 {
				ready = append(ready, c)
			}
		}
	}

	// cycle
	if len(order) != len(o.Nodes) {
		var cyc []string
		for _, name := range o.Nodes {
			if indeg[name] > 0 {
				cyc = append(cyc, name)
			}
		}
		return nil, errs.New(errs.DependencyCycle, "cyclic dependency among current properties of objects: %s", strings.Join(cyc, ", "))
	}
	return
}

func appendUnique(a []string, s string) []string {
	for _, x := range a {
		if x == s {
			return a
		}
	}
	return append(a, s)
}
