// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package errs defines the error codes raised while resolving properties and assembling systems
package errs

import (
	"errors"

	"github.com/cpmech/gosl/chk"
)

// Code identifies a class of error
type Code string

const (
	// TypeMismatch indicates that a property was redeclared with a different type
	TypeMismatch Code = "type-mismatch"
	// StatefulNotAllowed indicates that old/older values were requested by a stateless object
	StatefulNotAllowed Code = "stateful-not-allowed"
	// ExecutionStage indicates that a property was resolved before setup was completed
	ExecutionStage Code = "execution-stage"
	// DomainMismatch indicates incompatible block/boundary restrictions
	DomainMismatch Code = "domain-mismatch"
	// DimensionMismatch indicates an array residual/Jacobian with wrong shape
	DimensionMismatch Code = "dimension-mismatch"
	// SolveDivergence indicates that a linear solve did not converge
	SolveDivergence Code = "solve-divergence"
	// NotDeclared indicates that a property has not been declared by any material
	NotDeclared Code = "not-declared"
	// DependencyCycle indicates a cycle among current-generation properties
	DependencyCycle Code = "dependency-cycle"
)

// Error holds a coded error
type Error struct {
	Code Code   // class of error
	Msg  string // message
}

// Error returns the message prefixed by the code
func (o *Error) Error() string {
	return string(o.Code) + ": " + o.Msg
}

// New returns a new coded error with formatted message
func New(code Code, msg string, prm ...interface{}) error {
	return &Error{Code: code, Msg: chk.Err(msg, prm...).Error()}
}

// Is tells whether err (or any error it wraps) has the given code
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Fatal tells whether err is an unrecoverable configuration error. Only SolveDivergence can be
// handled by the caller (e.g. by reducing the time step)
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !Is(err, SolveDivergence)
}
