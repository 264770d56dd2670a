// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions of diffusion problems on a segment
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SteadyBar computes the steady solution of
//
//   -k u'' = s     on  0 ≤ x ≤ L     with    u(0) = u(L) = 0
//
//   u(x) = s x (L - x) / (2 k)
//
type SteadyBar struct {
	L float64 // length
	K float64 // diffusivity
	S float64 // source
}

// Init initialises this structure
func (o *SteadyBar) Init(prms dbf.Params) (err error) {
	o.L, o.K, o.S = 1, 1, 1
	for _, p := range prms {
		switch p.N {
		case "L":
			o.L = p.V
		case "k":
			o.K = p.V
		case "s":
			o.S = p.V
		default:
			return chk.Err("SteadyBar: parameter named %q is invalid", p.N)
		}
	}
	if o.L <= 0 || o.K <= 0 {
		return chk.Err("SteadyBar: length and diffusivity must be positive. L=%g k=%g", o.L, o.K)
	}
	return
}

// U returns the solution at x
func (o *SteadyBar) U(x float64) float64 {
	return o.S * x * (o.L - x) / (2 * o.K)
}

// Integral returns the integral of u over the bar
func (o *SteadyBar) Integral() float64 {
	return o.S * math.Pow(o.L, 3) / (12 * o.K)
}

// DecayMode computes the transient solution of
//
//   ρ du/dt - k u'' = 0     with    u(0,t) = u(L,t) = 0    and    u(x,0) = A sin(π x / L)
//
//   u(x,t) = A sin(π x / L) exp(-k π² t / (ρ L²))
//
type DecayMode struct {
	L   float64 // length
	K   float64 // diffusivity
	Rho float64 // capacity
	A   float64 // amplitude
}

// Init initialises this structure
func (o *DecayMode) Init(prms dbf.Params) (err error) {
	o.L, o.K, o.Rho, o.A = 1, 1, 1, 1
	for _, p := range prms {
		switch p.N {
		case "L":
			o.L = p.V
		case "k":
			o.K = p.V
		case "rho":
			o.Rho = p.V
		case "A":
			o.A = p.V
		default:
			return chk.Err("DecayMode: parameter named %q is invalid", p.N)
		}
	}
	if o.L <= 0 || o.K <= 0 || o.Rho <= 0 {
		return chk.Err("DecayMode: length, diffusivity and capacity must be positive. L=%g k=%g rho=%g", o.L, o.K, o.Rho)
	}
	return
}

// U returns the solution at (x,t)
func (o *DecayMode) U(x, t float64) float64 {
	return o.A * math.Sin(math.Pi*x/o.L) * math.Exp(-o.Rate()*t)
}

// Rate returns the decay rate k π² / (ρ L²)
func (o *DecayMode) Rate() float64 {
	return o.K * math.Pi * math.Pi / (o.Rho * o.L * o.L)
}
