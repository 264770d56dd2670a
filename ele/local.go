// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/mphys/errs"
)

// Phase defines the state of the evaluation of one element
//
//   Uninitialized -> Bound -> Looping -> Accumulated -> Unbound -> Bound ...
//                              ^             |
//                              +-------------+  (more kernels on the same element)
//
type Phase int

const (
	Uninitialized Phase = iota // nothing has been bound yet
	Bound                      // element data are bound
	Looping                    // looping over integration points
	Accumulated                // local contributions are ready
	Unbound                    // element data have been released
)

// String returns the name of the phase
func (p Phase) String() string {
	switch p {
	case Bound:
		return "bound"
	case Looping:
		return "looping"
	case Accumulated:
		return "accumulated"
	case Unbound:
		return "unbound"
	}
	return "uninitialized"
}

// Local computes the local residual vector and Jacobian matrices of kernels on the bound element.
// Values at integration points are weighted by JxW and accumulated over points and test functions
//
//   Re[i*ncomp+a]         = Σ_qp JxW(qp) R_a(qp, i)
//   Ke[i*ncomp+a][j*nc+b] = Σ_qp JxW(qp) K_ab(qp, i, j)
//
type Local struct {
	Phase            Phase          // current phase
	A                *Assembly      // bound element
	Re               []float64      // local residual
	Ke               [][]float64    // local Jacobian
	DefaultJacobians map[string]int // kernel name => number of (qp,i,j) entries using the default Jacobian
	refreshed        map[Kernel]bool
}

// NewLocal returns a new local structure
func NewLocal() *Local {
	return &Local{DefaultJacobians: make(map[string]int), refreshed: make(map[Kernel]bool)}
}

// Bind binds the data of an element
func (o *Local) Bind(a *Assembly) (err error) {
	if o.Phase != Uninitialized && o.Phase != Unbound {
		return chk.Err("cannot bind element when phase is %v", o.Phase)
	}
	o.A = a
	o.Phase = Bound
	for k := range o.refreshed {
		delete(o.refreshed, k)
	}
	return
}

// Unbind releases the element data
func (o *Local) Unbind() (err error) {
	if o.Phase != Bound && o.Phase != Accumulated {
		return chk.Err("cannot unbind element when phase is %v", o.Phase)
	}
	o.A = nil
	o.Phase = Unbound
	return
}

// Residual computes the local residual of kernel k
func (o *Local) Residual(k Kernel) (re []float64, err error) {
	if err = o.start(k); err != nil {
		return
	}
	defer o.finish(&err)
	a, nc := o.A, k.Var().Ncomp
	o.Re = resize(o.Re, a.Nverts*nc)
	switch k.Kind() {

	case Scalar:
		sk, ok := k.(ScalarKernel)
		if !ok || nc != 1 {
			return nil, mismatch(k, "scalar")
		}
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				o.Re[a.I] += a.JxW[a.Qp][0] * sk.QpResidual()
			}
		}

	case Array:
		ak, ok := k.(ArrayKernel)
		if !ok {
			return nil, mismatch(k, "array")
		}
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				r := ak.QpResidual()
				if len(r) != nc {
					return nil, errs.New(errs.DimensionMismatch, "residual of kernel %q has %d components but variable %q has %d", k.Name(), len(r), k.Var().Name, nc)
				}
				for c := 0; c < nc; c++ {
					o.Re[a.I*nc+c] += a.JxW[a.Qp][0] * r[c]
				}
			}
		}

	case AD:
		dk, ok := k.(ADKernel)
		if !ok || nc != 1 {
			return nil, mismatch(k, "AD")
		}
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				o.Re[a.I] += a.JxW[a.Qp][0] * dk.QpResidual().V
			}
		}
	}
	return o.Re, nil
}

// Jacobian computes the local Jacobian of kernel k with respect to its own variable
func (o *Local) Jacobian(k Kernel) (ke [][]float64, err error) {
	if err = o.start(k); err != nil {
		return
	}
	defer o.finish(&err)
	a, nc := o.A, k.Var().Ncomp
	n := a.Nverts * nc
	o.Ke = resizeMat(o.Ke, n, n)
	switch k.Kind() {

	case Scalar:
		if _, ok := k.(ScalarKernel); !ok || nc != 1 {
			return nil, mismatch(k, "scalar")
		}
		jk, ok := k.(ScalarJacobian)
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				for a.J = 0; a.J < a.Nverts; a.J++ {
					if ok {
						o.Ke[a.I][a.J] += a.JxW[a.Qp][0] * jk.QpJacobian()
					} else {
						o.Ke[a.I][a.J] += a.JxW[a.Qp][0]
						o.DefaultJacobians[k.Name()]++
					}
				}
			}
		}

	case Array:
		if _, ok := k.(ArrayKernel); !ok {
			return nil, mismatch(k, "array")
		}
		jk, ok := k.(ArrayJacobian)
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				for a.J = 0; a.J < a.Nverts; a.J++ {
					if !ok {
						for c := 0; c < nc; c++ {
							o.Ke[a.I*nc+c][a.J*nc+c] += a.JxW[a.Qp][0]
						}
						o.DefaultJacobians[k.Name()]++
						continue
					}
					m := jk.QpJacobian()
					if err = checkShape(k, m, nc, nc); err != nil {
						return nil, err
					}
					for c := 0; c < nc; c++ {
						for d := 0; d < nc; d++ {
							o.Ke[a.I*nc+c][a.J*nc+d] += a.JxW[a.Qp][0] * m[c][d]
						}
					}
				}
			}
		}

	case AD:
		dk, ok := k.(ADKernel)
		if !ok || nc != 1 {
			return nil, mismatch(k, "AD")
		}
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				r := dk.QpResidual()
				if len(r.D) != a.Nverts {
					return nil, errs.New(errs.DimensionMismatch, "AD residual of kernel %q has %d derivatives but the element has %d unknowns", k.Name(), len(r.D), a.Nverts)
				}
				for a.J = 0; a.J < a.Nverts; a.J++ {
					o.Ke[a.I][a.J] += a.JxW[a.Qp][0] * r.D[a.J]
				}
			}
		}
	}
	return o.Ke, nil
}

// OffDiagJacobian computes the local Jacobian of kernel k with respect to variable jvar.
// Kernels without off-diagonal terms give zero
func (o *Local) OffDiagJacobian(k Kernel, jvar *Variable) (ke [][]float64, err error) {
	if jvar == k.Var() {
		return o.Jacobian(k)
	}
	if err = o.start(k); err != nil {
		return
	}
	defer o.finish(&err)
	a, nc, jnc := o.A, k.Var().Ncomp, jvar.Ncomp
	o.Ke = resizeMat(o.Ke, a.Nverts*nc, a.Nverts*jnc)
	switch k.Kind() {

	case Scalar:
		jk, ok := k.(ScalarOffDiag)
		if !ok {
			return o.Ke, nil
		}
		if nc != 1 {
			return nil, mismatch(k, "scalar")
		}
		if jnc != 1 {
			return nil, errs.New(errs.DimensionMismatch, "kernel %q gives scalar off-diagonal values but variable %q has %d components", k.Name(), jvar.Name, jnc)
		}
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				for a.J = 0; a.J < a.Nverts; a.J++ {
					o.Ke[a.I][a.J] += a.JxW[a.Qp][0] * jk.QpOffDiagJacobian(jvar)
				}
			}
		}

	case Array:
		jk, ok := k.(ArrayOffDiag)
		if !ok {
			return o.Ke, nil
		}
		for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
			for a.I = 0; a.I < a.Nverts; a.I++ {
				for a.J = 0; a.J < a.Nverts; a.J++ {
					m := jk.QpOffDiagJacobian(jvar)
					if err = checkShape(k, m, nc, jnc); err != nil {
						return nil, err
					}
					for c := 0; c < nc; c++ {
						for d := 0; d < jnc; d++ {
							o.Ke[a.I*nc+c][a.J*jnc+d] += a.JxW[a.Qp][0] * m[c][d]
						}
					}
				}
			}
		}
	}
	return o.Ke, nil
}

// NeighborJacobian computes the local Jacobian of a neighbour kernel with respect to the nodal
// values of its variable in the neighbour element
func (o *Local) NeighborJacobian(k NeighborKernel) (ke [][]float64, err error) {
	if err = o.start(k); err != nil {
		return
	}
	defer o.finish(&err)
	a := o.A
	if a.Neighbor == nil {
		return nil, chk.Err("kernel %q requires a neighbour element", k.Name())
	}
	o.Ke = resizeMat(o.Ke, a.Nverts, a.Neighbor.Nverts)
	for a.Qp = 0; a.Qp < a.Nqp; a.Qp++ {
		for a.I = 0; a.I < a.Nverts; a.I++ {
			for a.J = 0; a.J < a.Neighbor.Nverts; a.J++ {
				o.Ke[a.I][a.J] += a.JxW[a.Qp][0] * k.QpNeighborJacobian()
			}
		}
	}
	return o.Ke, nil
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// start checks the phase, binds the kernel and refreshes its properties once per element
func (o *Local) start(k Kernel) (err error) {
	if o.Phase != Bound && o.Phase != Accumulated {
		return chk.Err("cannot compute kernel %q when phase is %v", k.Name(), o.Phase)
	}
	o.Phase = Looping
	k.Bind(o.A)
	if !o.refreshed[k] {
		k.Refresh(o.A)
		o.refreshed[k] = true
	}
	return
}

// finish sets the phase after a loop
func (o *Local) finish(err *error) {
	if *err != nil {
		o.Phase = Bound
		return
	}
	o.Phase = Accumulated
}

func mismatch(k Kernel, kind string) error {
	return errs.New(errs.DimensionMismatch, "kernel %q does not provide %s values for variable %q with %d components", k.Name(), kind, k.Var().Name, k.Var().Ncomp)
}

func checkShape(k Kernel, m [][]float64, nrow, ncol int) error {
	if len(m) != nrow {
		return errs.New(errs.DimensionMismatch, "Jacobian of kernel %q has %d rows but %d were expected", k.Name(), len(m), nrow)
	}
	for _, row := range m {
		if len(row) != ncol {
			return errs.New(errs.DimensionMismatch, "Jacobian of kernel %q has a row with %d columns but %d were expected", k.Name(), len(row), ncol)
		}
	}
	return nil
}

// resize returns a zeroed vector of size n
func resize(v []float64, n int) []float64 {
	if cap(v) < n {
		return make([]float64, n)
	}
	v = v[:n]
	la.Vector(v).Fill(0)
	return v
}

// resizeMat returns a zeroed m x n matrix
func resizeMat(a [][]float64, m, n int) [][]float64 {
	if len(a) != m || (m > 0 && len(a[0]) != n) {
		return utl.Alloc(m, n)
	}
	for _, row := range a {
		utl.Fill(row, 0)
	}
	return a
}
