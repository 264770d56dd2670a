// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_cli01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cli01. deps and run commands")

	cfg := &Settings{Nthreads: 1}
	cmd := newRootCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"deps", "inp/data/diffu1d.yaml"})
	err := cmd.Execute()
	if err != nil {
		tst.Errorf("deps failed: %v\n", err)
		return
	}
	if !strings.Contains(out.String(), "order: [matA matB matK]") {
		tst.Errorf("report is missing the order of materials:\n%s\n", out.String())
	}

	// run
	cmd = newRootCommand(cfg)
	cmd.SetArgs([]string{"run", "--verbose=false", "inp/data/diffu1d.yaml"})
	err = cmd.Execute()
	if err != nil {
		tst.Errorf("run failed: %v\n", err)
	}

	// errors
	cmd = newRootCommand(cfg)
	cmd.SetArgs([]string{"run", "--verbose=false", "inp/data/nonexistent.yaml"})
	if err = cmd.Execute(); err == nil {
		tst.Errorf("run should fail with nonexistent file\n")
	}
}
