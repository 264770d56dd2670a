// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
	"github.com/cpmech/mphys/resolve"
)

// optional resolves param only if it is bound; otherwise nil is returned
func optional(r *resolve.Resolver, param string, typ prop.Type) (p *prop.Property, err error) {
	if _, ok := r.Params().Get(param); !ok {
		return nil, nil
	}
	return r.Resolve(param, typ)
}

// valueAt returns component k of p at qp or dflt if p is nil
func valueAt(p *prop.Property, qp, k int, dflt float64) float64 {
	if p == nil {
		return dflt
	}
	return p.V[qp][k]
}

// errCoupled returns the error of kernels requiring one coupled variable
func errCoupled(dat *inp.ObjData) error {
	return chk.Err("kernel %q of type %q requires exactly one coupled variable; %d were given", dat.Name, dat.Type, len(dat.Coupled))
}
