// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diag exports the diagnostics of a domain (property requests, dependencies and default
// Jacobians) as prometheus metrics
package diag

import (
	"github.com/cpmech/mphys/fem"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements prometheus.Collector for one domain. Diagnostics of all threads are
// merged before each collection; thus, Collect must not run concurrently with the assembly
type Collector struct {
	d        *fem.Domain
	requests *prometheus.Desc
	deps     *prometheus.Desc
	props    *prometheus.Desc
	defjac   *prometheus.Desc
}

// NewCollector returns a new collector
func NewCollector(d *fem.Domain) *Collector {
	return &Collector{
		d: d,
		requests: prometheus.NewDesc("mphys_property_requests_total",
			"Number of requests of the current values of a property.", []string{"property"}, nil),
		deps: prometheus.NewDesc("mphys_object_dependencies",
			"Number of properties read by an object.", []string{"object"}, nil),
		props: prometheus.NewDesc("mphys_properties",
			"Number of declared properties.", nil, nil),
		defjac: prometheus.NewDesc("mphys_default_jacobian_entries",
			"Number of Jacobian entries computed with the default value.", []string{"kernel"}, nil),
	}
}

// Describe sends the descriptors of all metrics
func (o *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- o.requests
	ch <- o.deps
	ch <- o.props
	ch <- o.defjac
}

// Collect sends the current values of all metrics
func (o *Collector) Collect(ch chan<- prometheus.Metric) {
	o.d.Reduce()
	for name, n := range o.d.Props.Requests() {
		ch <- prometheus.MustNewConstMetric(o.requests, prometheus.CounterValue, float64(n), name)
	}
	for _, name := range o.d.Threads[0].Tracker.Consumers() {
		ch <- prometheus.MustNewConstMetric(o.deps, prometheus.GaugeValue, float64(len(o.d.MaterialDeps(name))), name)
	}
	ch <- prometheus.MustNewConstMetric(o.props, prometheus.GaugeValue, float64(o.d.Props.Reg.Nprops()))
	for name, n := range o.d.DefaultJacobians() {
		ch <- prometheus.MustNewConstMetric(o.defjac, prometheus.GaugeValue, float64(n), name)
	}
}
