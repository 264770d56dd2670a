// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckPartitionOfUnity checks that shape functions sum up to one and that their derivatives sum
// up to zero at integration points
func CheckPartitionOfUnity(tst *testing.T, shape *Shape, ips []Ipoint, tol float64) {
	for _, ip := range ips {
		shape.Func(shape.S, shape.DSdR, ip[:shape.Gndim], true)
		var sum float64
		dsum := make([]float64, shape.Gndim)
		for m := 0; m < shape.Nverts; m++ {
			sum += shape.S[m]
			for i := 0; i < shape.Gndim; i++ {
				dsum[i] += shape.DSdR[m][i]
			}
		}
		chk.Float64(tst, "ΣS", tol, sum, 1)
		chk.Array(tst, "ΣdSdR", tol, dsum, nil)
	}
}
