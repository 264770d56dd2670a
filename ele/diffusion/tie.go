// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/mphys/ele"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/resolve"
)

// register constraint
func init() {
	ele.SetConstraintAllocator("tie", func(dat *inp.ObjData, v *ele.Variable, r *resolve.Resolver) (ele.NodeConstraint, error) {
		prms := r.Params()
		master, err := prms.Float("master", -1)
		if err != nil {
			return nil, err
		}
		slave, err := prms.Float("slave", -1)
		if err != nil {
			return nil, err
		}
		if master < 0 || slave < 0 || master == slave {
			return nil, chk.Err("tie %q requires two distinct vertices 'master' and 'slave'", dat.Name)
		}
		o := &Tie{NodeBase: ele.NewNodeBase(dat.Name, v, int(master), int(slave))}
		o.Penalty, err = prms.Float("penalty", 1)
		if err != nil {
			return nil, err
		}
		o.Overwrite = prms.Str("overwrite", "true") == "true"
		return o, nil
	})
}

// Tie ties the value of a variable at the slave vertex to the value at the master vertex.
// The slave residual is either replaced by
//
//   Rs = us - um
//
// or, with a penalty p, the pair gets
//
//   Rs = p (us - um)   and   Rm = -p (us - um)
//
type Tie struct {
	ele.NodeBase
	Penalty   float64 // penalty coefficient
	Overwrite bool    // overwrite slave residual
}

// ShouldApply tells whether the constraint is active
func (o *Tie) ShouldApply() bool { return true }

// QpSlaveValue returns the value imposed at the slave vertex
func (o *Tie) QpSlaveValue() float64 { return o.Um }

// OverwriteSlaveResidual tells whether the slave residual replaces the one from kernels
func (o *Tie) OverwriteSlaveResidual() bool { return o.Overwrite }

// QpResidual returns the residual at the slave or master vertex
func (o *Tie) QpResidual(typ ele.ConstraintType) float64 {
	if o.Overwrite {
		if typ == ele.Slave {
			return o.Us - o.Um
		}
		return 0
	}
	if typ == ele.Slave {
		return o.Penalty * (o.Us - o.Um)
	}
	return -o.Penalty * (o.Us - o.Um)
}

// QpJacobian returns the derivatives of the residuals
func (o *Tie) QpJacobian(typ ele.ConstraintJacobianType) float64 {
	p := o.Penalty
	if o.Overwrite {
		p = 1
	}
	switch typ {
	case ele.SlaveSlave:
		return p
	case ele.SlaveMaster:
		return -p
	}
	if o.Overwrite {
		return 0
	}
	if typ == ele.MasterSlave {
		return -p
	}
	return p
}
