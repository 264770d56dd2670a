// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/prop"
)

// ObjData holds the definition of one object: material, kernel, constraint or user object
type ObjData struct {
	Name       string   `yaml:"name"`       // name of object
	Type       string   `yaml:"type"`       // type of object; key of the factory
	Variable   string   `yaml:"variable"`   // variable the object acts on (kernels, constraints)
	Coupled    []string `yaml:"coupled"`    // coupled variables
	Blocks     []int    `yaml:"blocks"`     // restriction to blocks; empty means everywhere
	Boundaries []int    `yaml:"boundaries"` // restriction to boundaries
	Stateful   bool     `yaml:"stateful"`   // object reads old/older values
	Params     Params   `yaml:"params"`     // parameter bindings
}

// ObjsData holds objects
type ObjsData []*ObjData

// Domain returns the restriction of the object
func (o *ObjData) Domain() prop.Domain {
	return prop.NewDomain(o.Blocks, o.Boundaries)
}

// Get returns the object by name or nil
func (o ObjsData) Get(name string) *ObjData {
	for _, obj := range o {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// Names returns the names of all objects
func (o ObjsData) Names() (names []string) {
	for _, obj := range o {
		names = append(names, obj.Name)
	}
	return
}

// String prints one object
func (o *ObjData) String() string {
	l := io.Sf("{name:%q, type:%q", o.Name, o.Type)
	if o.Variable != "" {
		l += io.Sf(", variable:%q", o.Variable)
	}
	if len(o.Blocks) > 0 {
		l += io.Sf(", blocks:%v", o.Blocks)
	}
	return l + "}"
}
