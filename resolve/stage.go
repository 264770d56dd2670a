// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package resolve implements the resolution of parameters of objects (materials, kernels,
// constraints) into material properties
package resolve

import "sync/atomic"

// Stage holds the setup-complete flag of one problem. Properties are declared while the flag is
// off and resolved after it is on
type Stage struct {
	ready int32
}

// Complete marks the end of the declaration stage
func (o *Stage) Complete() { atomic.StoreInt32(&o.ready, 1) }

// Reset goes back to the declaration stage; e.g. after the mesh has changed
func (o *Stage) Reset() { atomic.StoreInt32(&o.ready, 0) }

// Ready tells whether properties can be resolved
func (o *Stage) Ready() bool { return atomic.LoadInt32(&o.ready) == 1 }
