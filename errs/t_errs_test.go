// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_errs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("errs01")

	err := New(TypeMismatch, "property %q has type %s", "k", "Real")
	chk.String(tst, err.Error(), `type-mismatch: property "k" has type Real`)
	if !Is(err, TypeMismatch) {
		tst.Errorf("Is should detect TypeMismatch")
	}
	if Is(err, DomainMismatch) {
		tst.Errorf("Is should not detect DomainMismatch")
	}

	wrapped := chk.Err("setup failed")
	if Is(wrapped, TypeMismatch) {
		tst.Errorf("plain errors have no code")
	}
	w2 := io.Sf("%v", err)
	chk.String(tst, w2, err.Error())

	if !Fatal(err) {
		tst.Errorf("TypeMismatch must be fatal")
	}
	if Fatal(New(SolveDivergence, "cg failed")) {
		tst.Errorf("SolveDivergence must be recoverable")
	}
	if Fatal(nil) {
		tst.Errorf("nil is not fatal")
	}
}
