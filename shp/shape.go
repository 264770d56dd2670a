// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape (interpolation) functions and integration points
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ShpFunc is a shape function callback
//  Input:
//   r      -- natural coordinates
//   derivs -- compute derivatives as well
//  Output:
//   S    -- shape functions [nverts]
//   dSdR -- derivatives [nverts][gndim]
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Ipoint holds the natural coordinates and weight of an integration point: {r, s, t, w}
type Ipoint [4]float64

// Shape holds geometry data and the results of shape functions evaluated at one point
type Shape struct {

	// geometry
	Type           string      // name; e.g. "lin2"
	Gndim          int         // geometry dimension
	Nverts         int         // number of vertices
	NatCoords      [][]float64 // [gndim][nverts] natural coordinates of vertices
	FaceLocalVerts [][]int     // [nfaces][nfverts] local vertices of faces
	Func           ShpFunc     // shape function callback

	// results
	S    []float64   // [nverts] shape functions
	DSdR [][]float64 // [nverts][gndim] derivatives in natural coordinates
	G    [][]float64 // [nverts][ndim] derivatives in real coordinates
	J    float64     // Jacobian determinant
}

// Get returns a new shape structure by name
func Get(geoType string) (o *Shape, err error) {
	alloc, ok := factory[geoType]
	if !ok {
		return nil, chk.Err("cannot find shape type %q", geoType)
	}
	return alloc(), nil
}

// CalcAtIp calculates shape functions and their real derivatives at integration point ip
//  Input:
//   x -- [ndim][nverts] real coordinates of vertices
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {
	o.Func(o.S, o.DSdR, ip[:o.Gndim], true)
	if !derivs {
		return
	}
	if o.Gndim != 1 || len(x) != 1 {
		return chk.Err("CalcAtIp is only available for 1D shapes in 1D space")
	}
	var dxdr float64
	for m := 0; m < o.Nverts; m++ {
		dxdr += o.DSdR[m][0] * x[0][m]
	}
	if dxdr < 1e-14 {
		return chk.Err("Jacobian of %s is invalid: J=%g", o.Type, dxdr)
	}
	o.J = dxdr
	for m := 0; m < o.Nverts; m++ {
		o.G[m][0] = o.DSdR[m][0] / dxdr
	}
	return
}

// IpRealCoords returns the real coordinates of integration point ip
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (xip []float64) {
	xip = make([]float64, len(x))
	o.Func(o.S, o.DSdR, ip[:o.Gndim], false)
	for i := range x {
		for m := 0; m < o.Nverts; m++ {
			xip[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// integration points ///////////////////////////////////////////////////////////////////////////////

// GetIps returns the integration points of a 1D segment
//  kind -- "gauss" (Legendre) or "lobatto" (vertices included; nodal quadrature for n == nverts)
func GetIps(kind string, n int) (ips []Ipoint, err error) {
	switch kind {
	case "gauss", "":
		switch n {
		case 1:
			return []Ipoint{{0, 0, 0, 2}}, nil
		case 2:
			a := 1.0 / math.Sqrt(3.0)
			return []Ipoint{{-a, 0, 0, 1}, {a, 0, 0, 1}}, nil
		case 3:
			a := math.Sqrt(3.0 / 5.0)
			return []Ipoint{{-a, 0, 0, 5.0 / 9.0}, {0, 0, 0, 8.0 / 9.0}, {a, 0, 0, 5.0 / 9.0}}, nil
		}
	case "lobatto":
		switch n {
		case 2:
			return []Ipoint{{-1, 0, 0, 1}, {1, 0, 0, 1}}, nil
		case 3:
			return []Ipoint{{-1, 0, 0, 1.0 / 3.0}, {0, 0, 0, 4.0 / 3.0}, {1, 0, 0, 1.0 / 3.0}}, nil
		}
	}
	return nil, chk.Err("integration points %q with n=%d are not available", kind, n)
}

// shapes ///////////////////////////////////////////////////////////////////////////////////////////

// factory holds all shape allocators
var factory = map[string]func() *Shape{}

func init() {
	factory["lin2"] = func() *Shape {
		o := &Shape{Type: "lin2", Gndim: 1, Nverts: 2}
		o.NatCoords = [][]float64{{-1, 1}}
		o.Func = func(S []float64, dSdR [][]float64, r []float64, derivs bool) {
			S[0] = (1.0 - r[0]) / 2.0
			S[1] = (1.0 + r[0]) / 2.0
			if derivs {
				dSdR[0][0] = -0.5
				dSdR[1][0] = 0.5
			}
		}
		o.S = make([]float64, 2)
		o.DSdR = utl.Alloc(2, 1)
		o.G = utl.Alloc(2, 1)
		return o
	}
	factory["lin3"] = func() *Shape {
		o := &Shape{Type: "lin3", Gndim: 1, Nverts: 3}
		o.NatCoords = [][]float64{{-1, 1, 0}}
		o.Func = func(S []float64, dSdR [][]float64, r []float64, derivs bool) {
			x := r[0]
			S[0] = x * (x - 1.0) / 2.0
			S[1] = x * (x + 1.0) / 2.0
			S[2] = 1.0 - x*x
			if derivs {
				dSdR[0][0] = x - 0.5
				dSdR[1][0] = x + 0.5
				dSdR[2][0] = -2.0 * x
			}
		}
		o.S = make([]float64, 3)
		o.DSdR = utl.Alloc(3, 1)
		o.G = utl.Alloc(3, 1)
		return o
	}
}
