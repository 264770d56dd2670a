// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// ConstraintType defines the side of a node constraint
type ConstraintType int

const (
	Slave  ConstraintType = iota // constrained node
	Master                       // reference node
)

// ConstraintJacobianType defines the block of the Jacobian of a node constraint
type ConstraintJacobianType int

const (
	SlaveSlave ConstraintJacobianType = iota
	SlaveMaster
	MasterSlave
	MasterMaster
)

// NodeConstraint defines constraints between the values of a variable at two nodes
type NodeConstraint interface {
	Name() string                                  // name of constraint
	Var() *Variable                                // constrained variable
	Nodes() (master, slave int)                    // ids of vertices
	Bind(master, slave float64)                    // binds the current values at the nodes
	ShouldApply() bool                             // whether the constraint is active now
	QpSlaveValue() float64                         // value to be imposed at the slave node
	QpResidual(typ ConstraintType) float64         // residual at the slave or master node
	QpJacobian(typ ConstraintJacobianType) float64 // derivatives of residuals
	OverwriteSlaveResidual() bool                  // slave residual replaces the one from kernels
}

// NodeBase implements the common part of node constraints
type NodeBase struct {
	name          string
	v             *Variable
	master, slave int
	Um, Us        float64 // bound values at master and slave
}

// NewNodeBase returns a new base structure for node constraints
func NewNodeBase(name string, v *Variable, master, slave int) NodeBase {
	return NodeBase{name: name, v: v, master: master, slave: slave}
}

// Name returns the name of the constraint
func (o *NodeBase) Name() string { return o.name }

// Var returns the constrained variable
func (o *NodeBase) Var() *Variable { return o.v }

// Nodes returns the master and slave vertices
func (o *NodeBase) Nodes() (master, slave int) { return o.master, o.slave }

// Bind binds the current values at master and slave nodes
func (o *NodeBase) Bind(master, slave float64) { o.Um, o.Us = master, slave }

// ApplyConstraint adds the residuals of a constraint to r. The slave entry is replaced instead
// of summed if the constraint overwrites it
//  Input:
//   eqm, eqs -- equations of master and slave
func ApplyConstraint(c NodeConstraint, r []float64, eqm, eqs int) {
	if !c.ShouldApply() {
		return
	}
	rs := c.QpResidual(Slave)
	if c.OverwriteSlaveResidual() {
		r[eqs] = rs
	} else {
		r[eqs] += rs
	}
	r[eqm] += c.QpResidual(Master)
}

// ConstraintJacobian returns the 2x2 Jacobian of a constraint ordered as {slave, master}
func ConstraintJacobian(c NodeConstraint) (K [][]float64) {
	K = [][]float64{{0, 0}, {0, 0}}
	if !c.ShouldApply() {
		return
	}
	K[0][0] = c.QpJacobian(SlaveSlave)
	K[0][1] = c.QpJacobian(SlaveMaster)
	K[1][0] = c.QpJacobian(MasterSlave)
	K[1][1] = c.QpJacobian(MasterMaster)
	return
}
