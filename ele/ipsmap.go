// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "sort"

// IpsMap holds values at all integration points of the mesh, by key (e.g. property name).
// Values are stored at global index idx = cell * nqp + qp
type IpsMap map[string][]float64

// NewIpsMap returns a new IpsMap
func NewIpsMap() *IpsMap {
	M := make(IpsMap)
	return &M
}

// Set sets item in map by key and global index. The slice is allocated with n entries in case
// it does not exist
func (o *IpsMap) Set(key string, idx, n int, val float64) {
	slice, ok := (*o)[key]
	if !ok {
		slice = make([]float64, n)
		(*o)[key] = slice
	}
	slice[idx] = val
}

// Get returns item corresponding to key and global index; 0 if key is not found
func (o *IpsMap) Get(key string, idx int) float64 {
	if slice, ok := (*o)[key]; ok && idx < len(slice) {
		return slice[idx]
	}
	return 0
}

// Keys returns the sorted keys
func (o *IpsMap) Keys() (keys []string) {
	for k := range *o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
