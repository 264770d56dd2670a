// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"sort"
	"strings"

	"github.com/cpmech/gosl/io"
)

// Report returns a summary of declared properties, dependencies of all objects, the order of
// materials and kernels using the default Jacobian. Diagnostics of all threads are merged first
func (o *Domain) Report() string {
	o.Reduce()
	var b bytes.Buffer
	reqs := o.Props.Requests()

	// properties
	b.WriteString("properties:\n")
	for id, name := range o.Props.Reg.Names() {
		info := o.Props.Reg.Info(id)
		stateful := ""
		if o.Props.Hist.IsStateful(id) {
			stateful = " stateful"
		}
		b.WriteString(io.Sf("  %2d %-10s %-10v domain=%v producers=%s requests=%d%s\n", id, name, info.Type,
			info.Domain, strings.Join(info.Producers, ","), reqs[name], stateful))
	}

	// dependencies
	b.WriteString("dependencies:\n")
	tracker := o.Threads[0].Tracker
	for _, consumer := range tracker.Consumers() {
		b.WriteString(io.Sf("  %-10s -> [%s]\n", consumer, strings.Join(o.MaterialDeps(consumer), " ")))
	}

	// materials
	b.WriteString(io.Sf("order: [%s]\n", strings.Join(o.Order, " ")))

	// default Jacobians
	dj := o.DefaultJacobians()
	names := make([]string, 0, len(dj))
	for name, n := range dj {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString(io.Sf("default jacobians: [%s]\n", strings.Join(names, " ")))
	}
	return b.String()
}
