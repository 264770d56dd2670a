// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/diag"
	"github.com/cpmech/mphys/fem"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// Settings holds process settings read from the environment
type Settings struct {
	Nthreads int  `env:"MPHYS_NTHREADS" envDefault:"0"`    // number of threads; 0 means the one in the problem file
	Verbose  bool `env:"MPHYS_VERBOSE" envDefault:"true"`  // show messages
	Metrics  bool `env:"MPHYS_METRICS" envDefault:"false"` // print metrics after running
}

func main() {
	var cfg Settings
	err := env.Parse(&cfg)
	if err == nil {
		err = newRootCommand(&cfg).Execute()
	}
	if err != nil {
		io.PfRed("\nERROR: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand returns the root command with all subcommands
func newRootCommand(cfg *Settings) *cobra.Command {
	root := &cobra.Command{
		Use:           "mphys",
		Short:         "Explicit finite element solver for coupled diffusion-reaction problems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVarP(&cfg.Nthreads, "nthreads", "n", cfg.Nthreads, "number of threads; 0 means the one in the problem file")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "show messages")
	root.AddCommand(newRunCommand(cfg), newDepsCommand(cfg))
	return root
}

// newRunCommand returns the command running the time loop
func newRunCommand(cfg *Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <problem.yaml>",
		Short: "Run the time loop of a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if cfg.Verbose {
				io.PfWhite("\nMphys -- explicit multiphysics finite elements\n")
				io.Pf("> problem file      = %s\n", args[0])
				io.Pf("> number of threads = %d\n", cfg.Nthreads)
			}
			m, err := fem.NewMain(args[0], cfg.Nthreads, cfg.Verbose)
			if err != nil {
				return
			}
			err = m.Run()
			if err != nil {
				return
			}
			if cfg.Verbose {
				for name, val := range m.Dom.Uobjs.Values() {
					io.Pf("> %s = %g\n", name, val)
				}
			}
			if cfg.Metrics {
				return printMetrics(m.Dom)
			}
			return
		},
	}
	cmd.Flags().BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "print diagnostics in prometheus text format")
	return cmd
}

// newDepsCommand returns the command printing the properties and dependencies of a problem
func newDepsCommand(cfg *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <problem.yaml>",
		Short: "Print declared properties, dependencies and the order of materials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			m, err := fem.NewMain(args[0], cfg.Nthreads, false)
			if err != nil {
				return
			}
			_, err = cmd.OutOrStdout().Write([]byte(m.Dom.Report()))
			return
		},
	}
}

// printMetrics writes the diagnostics of d to stdout
func printMetrics(d *fem.Domain) (err error) {
	reg := prometheus.NewRegistry()
	err = reg.Register(diag.NewCollector(d))
	if err != nil {
		return
	}
	mfs, err := reg.Gather()
	if err != nil {
		return chk.Err("cannot gather metrics:\n%v", err)
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return
		}
	}
	return
}
