// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prop

import (
	"sort"

	"github.com/cpmech/gosl/io"
)

// Domain holds the block and boundary restriction of an object or a property.
// A domain without blocks and boundaries is unrestricted (everywhere)
type Domain struct {
	Blocks     []int // sorted block (subdomain) ids
	Boundaries []int // sorted boundary ids
}

// NewDomain returns a domain with sorted and unique ids
func NewDomain(blocks, boundaries []int) Domain {
	return Domain{Blocks: uniqueSorted(blocks), Boundaries: uniqueSorted(boundaries)}
}

// Everywhere tells whether this domain is unrestricted
func (o Domain) Everywhere() bool {
	return len(o.Blocks) == 0 && len(o.Boundaries) == 0
}

// Same tells whether both domains have exactly the same ids
func (o Domain) Same(b Domain) bool {
	return sameInts(o.Blocks, b.Blocks) && sameInts(o.Boundaries, b.Boundaries)
}

// Disjoint tells whether both domains do not share any block or boundary
func (o Domain) Disjoint(b Domain) bool {
	if o.Everywhere() || b.Everywhere() {
		return false
	}
	return !intersect(o.Blocks, b.Blocks) && !intersect(o.Boundaries, b.Boundaries)
}

// Union returns the union of two disjoint domains
func (o Domain) Union(b Domain) Domain {
	return NewDomain(append(append([]int{}, o.Blocks...), b.Blocks...), append(append([]int{}, o.Boundaries...), b.Boundaries...))
}

// Covers tells whether this domain (of a property) contains the domain of a consumer.
// Boundary consumers of block properties are accepted because the faces of the blocks are not
// known here
func (o Domain) Covers(consumer Domain) bool {
	if o.Everywhere() {
		return true
	}
	if consumer.Everywhere() {
		return false
	}
	if len(consumer.Blocks) > 0 && !contains(o.Blocks, consumer.Blocks) {
		return false
	}
	if len(consumer.Boundaries) > 0 && len(o.Boundaries) > 0 && !contains(o.Boundaries, consumer.Boundaries) {
		return false
	}
	return true
}

// String returns a representation of the domain
func (o Domain) String() string {
	if o.Everywhere() {
		return "{everywhere}"
	}
	return io.Sf("{blocks=%v boundaries=%v}", o.Blocks, o.Boundaries)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func uniqueSorted(a []int) (res []int) {
	if len(a) == 0 {
		return nil
	}
	c := append([]int{}, a...)
	sort.Ints(c)
	res = c[:1]
	for _, v := range c[1:] {
		if v != res[len(res)-1] {
			res = append(res, v)
		}
	}
	return
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intersect(a, b []int) bool {
	for _, x := range a {
		if has(b, x) {
			return true
		}
	}
	return false
}

// contains tells whether all items of b are in a
func contains(a, b []int) bool {
	for _, x := range b {
		if !has(a, x) {
			return false
		}
	}
	return true
}

func has(a []int, x int) bool {
	i := sort.SearchInts(a, x)
	return i < len(a) && a[i] == x
}
