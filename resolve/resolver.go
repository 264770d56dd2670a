// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/mphys/deps"
	"github.com/cpmech/mphys/errs"
	"github.com/cpmech/mphys/inp"
	"github.com/cpmech/mphys/prop"
)

// Config holds the data of the object owning a resolver
type Config struct {
	Name       string        // name of object
	Params     inp.Params    // parameter bindings
	Domain     prop.Domain   // restriction of object
	MeshBlocks []int         // all blocks in mesh; an unrestricted object acts on these
	Stateful   bool          // object reads old/older values
	Funcs      inp.FuncsData // functions available to "fcn:" bindings
}

// Resolver resolves the parameters of one object into properties of one thread's store and
// records the dependencies of the object
type Resolver struct {
	cfg      Config
	store    *prop.Store
	tracker  *deps.Tracker
	stage    *Stage
	produced map[int]bool // ids of properties declared by this object

	// side table with properties owned by this resolver
	consts map[string]*constant // param@type => constant property
	fcns   map[string]*function // param@type => function property
}

// constant holds a property with the same value at every integration point
type constant struct {
	p   *prop.Property
	val []float64
}

// function holds a property computed from a function of (t,x)
type function struct {
	p *prop.Property
	f dbf.T
}

// New returns a new resolver
func New(cfg Config, store *prop.Store, tracker *deps.Tracker, stage *Stage) (o *Resolver) {
	o = &Resolver{cfg: cfg, store: store, tracker: tracker, stage: stage}
	if o.cfg.Params == nil {
		o.cfg.Params = make(inp.Params)
	}
	o.produced = make(map[int]bool)
	o.consts = make(map[string]*constant)
	o.fcns = make(map[string]*function)
	return
}

// Name returns the name of the object
func (o *Resolver) Name() string { return o.cfg.Name }

// StatefulAllowed tells whether the object may read old/older values
func (o *Resolver) StatefulAllowed() bool { return o.cfg.Stateful }

// Params returns the parameter bindings
func (o *Resolver) Params() inp.Params { return o.cfg.Params }

// Store returns the store of this thread
func (o *Resolver) Store() *prop.Store { return o.store }

// declaration ///////////////////////////////////////////////////////////////////////////////////////

// Declare declares a property produced by the object and returns its current values
func (o *Resolver) Declare(name string, typ prop.Type) (p *prop.Property, err error) {
	if o.stage.Ready() {
		return nil, errs.New(errs.ExecutionStage, "%q cannot declare property %q after setup has been completed", o.cfg.Name, name)
	}
	id, err := o.store.Declare(name, typ, o.cfg.Name, o.cfg.Domain)
	if err != nil {
		return
	}
	o.produced[id] = true
	return o.store.Declared(id)
}

// resolution ////////////////////////////////////////////////////////////////////////////////////////

// Resolve returns the current values of the property bound to parameter param. The binding may be:
//  (1) a literal; e.g. "1.5" or "1 2" => constant property owned by this resolver
//  (2) a function; e.g. "fcn:source"  => property computed at integration points by Refresh
//  (3) a name; e.g. "diffusivity"     => property in the store
// A parameter without binding is taken as the name of the property
func (o *Resolver) Resolve(param string, typ prop.Type) (p *prop.Property, err error) {
	if err = o.checkStage(param); err != nil {
		return
	}
	val := o.cfg.Params.Str(param, param)
	if vals, ok := inp.ParseLiteral(val); ok {
		return o.constant(param, typ, vals)
	}
	if fname, ok := inp.FuncName(val); ok {
		return o.function(param, typ, fname)
	}
	return o.ResolveByName(val, typ)
}

// ResolveByName returns the current values of a property given its name
func (o *Resolver) ResolveByName(name string, typ prop.Type) (p *prop.Property, err error) {
	if err = o.checkStage(name); err != nil {
		return
	}
	info, err := o.lookup(name, typ)
	if err != nil {
		return
	}
	if o.produced[info.Id] {
		return nil, errs.New(errs.DependencyCycle, "%q cannot read the current value of property %q that it declares", o.cfg.Name, name)
	}
	p, err = o.store.Current(info.Id, o.store.Nqp())
	if err != nil {
		return
	}
	o.tracker.Record(o.cfg.Name, info.Id, true)
	return
}

// ResolveOld returns the values of the property bound to param at the previous accepted step
func (o *Resolver) ResolveOld(param string, typ prop.Type) (p *prop.Property, err error) {
	return o.resolveStateful(param, typ, prop.Old, true)
}

// ResolveOlder returns the values of the property bound to param two steps back
func (o *Resolver) ResolveOlder(param string, typ prop.Type) (p *prop.Property, err error) {
	return o.resolveStateful(param, typ, prop.Older, true)
}

// ResolveOldByName returns the values of a property at the previous accepted step
func (o *Resolver) ResolveOldByName(name string, typ prop.Type) (p *prop.Property, err error) {
	return o.resolveStateful(name, typ, prop.Old, false)
}

// ResolveOlderByName returns the values of a property two steps back
func (o *Resolver) ResolveOlderByName(name string, typ prop.Type) (p *prop.Property, err error) {
	return o.resolveStateful(name, typ, prop.Older, false)
}

// Zero returns a property with zero values which needs no declaration
func (o *Resolver) Zero(name string, typ prop.Type) (p *prop.Property, err error) {
	if err = o.checkStage(name); err != nil {
		return
	}
	o.tracker.MarkCalled(o.cfg.Name)
	return o.store.Zero(name, typ), nil
}

// Has tells whether a property with given name and type has been declared
func (o *Resolver) Has(name string, typ prop.Type) bool {
	return o.store.Has(name, typ)
}

// domains ///////////////////////////////////////////////////////////////////////////////////////////

// Blocks returns the blocks where property name is defined. Nil means everywhere
func (o *Resolver) Blocks(name string) (blocks []int, err error) {
	info := o.store.Lookup(name)
	if info == nil {
		return nil, errs.New(errs.NotDeclared, "property %q has not been declared", name)
	}
	return info.Domain.Blocks, nil
}

// BoundaryIDs returns the boundaries where property name is defined. Nil means everywhere
func (o *Resolver) BoundaryIDs(name string) (ids []int, err error) {
	info := o.store.Lookup(name)
	if info == nil {
		return nil, errs.New(errs.NotDeclared, "property %q has not been declared", name)
	}
	return info.Domain.Boundaries, nil
}

// BlockProperty returns the current values of property name together with its blocks
func (o *Resolver) BlockProperty(name string, typ prop.Type) (p *prop.Property, blocks []int, err error) {
	p, err = o.ResolveByName(name, typ)
	if err != nil {
		return
	}
	blocks, err = o.Blocks(name)
	return
}

// CheckCompatibility checks whether the domain of the object is covered by the domain of property name
func (o *Resolver) CheckCompatibility(name string) (err error) {
	info := o.store.Lookup(name)
	if info == nil {
		return errs.New(errs.NotDeclared, "property %q has not been declared", name)
	}
	consumer := o.cfg.Domain
	if consumer.Everywhere() && len(o.cfg.MeshBlocks) > 0 {
		consumer = prop.NewDomain(o.cfg.MeshBlocks, nil)
	}
	if !info.Domain.Covers(consumer) {
		return errs.New(errs.DomainMismatch, "%q acting on %v requires property %q which is only defined on %v", o.cfg.Name, consumer, name, info.Domain)
	}
	return
}

// dependencies //////////////////////////////////////////////////////////////////////////////////////

// Dependencies returns the ids of properties read by the object (do not modify)
func (o *Resolver) Dependencies() deps.Set {
	return o.tracker.Of(o.cfg.Name)
}

// Called tells whether the object has resolved any property
func (o *Resolver) Called() bool {
	return o.tracker.Called(o.cfg.Name)
}

// element ///////////////////////////////////////////////////////////////////////////////////////////

// Refresh prepares the properties owned by this resolver for an element with nqp integration points
//  Input:
//   t -- time
//   x -- [nqp][ndim] coordinates of integration points; may be nil if there are no functions
func (o *Resolver) Refresh(nqp int, t float64, x [][]float64) {
	for _, c := range o.consts {
		n := c.p.Nqp()
		c.p.Resize(nqp)
		for qp := n; qp < c.p.Nqp(); qp++ {
			copy(c.p.V[qp], c.val)
		}
	}
	for _, f := range o.fcns {
		f.p.Resize(nqp)
		for qp := 0; qp < nqp; qp++ {
			val := f.f.F(t, x[qp])
			for k := range f.p.V[qp] {
				f.p.V[qp][k] = val
			}
		}
	}
}

// Free releases the properties owned by this resolver
func (o *Resolver) Free() {
	o.consts = make(map[string]*constant)
	o.fcns = make(map[string]*function)
}

// String returns a summary of the resolver
func (o *Resolver) String() string {
	return io.Sf("%s: stateful=%v ndeps=%d nconst=%d nfcn=%d", o.cfg.Name, o.cfg.Stateful, len(o.Dependencies()), len(o.consts), len(o.fcns))
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// checkStage checks whether properties can be resolved
func (o *Resolver) checkStage(what string) error {
	if !o.stage.Ready() {
		return errs.New(errs.ExecutionStage, "%q cannot resolve %q before setup has been completed", o.cfg.Name, what)
	}
	return nil
}

// lookup finds a declared property and checks its type and domain
func (o *Resolver) lookup(name string, typ prop.Type) (info *prop.Info, err error) {
	info = o.store.Lookup(name)
	if info == nil {
		return nil, errs.New(errs.NotDeclared, "property %q required by %q has not been declared by any material", name, o.cfg.Name)
	}
	if info.Type != typ {
		return nil, errs.New(errs.TypeMismatch, "%q requested property %q as %v but it was declared as %v", o.cfg.Name, name, typ, info.Type)
	}
	if err = o.CheckCompatibility(name); err != nil {
		return nil, err
	}
	return
}

// resolveStateful resolves old/older values. The opt-in is checked before anything else
func (o *Resolver) resolveStateful(key string, typ prop.Type, gen prop.Gen, indirect bool) (p *prop.Property, err error) {
	if !o.cfg.Stateful {
		return nil, errs.New(errs.StatefulNotAllowed, "%q did not opt into stateful properties but requested the %s value of %q", o.cfg.Name, gen, key)
	}
	if err = o.checkStage(key); err != nil {
		return
	}
	name := key
	if indirect {
		name = o.cfg.Params.Str(key, key)
		if vals, ok := inp.ParseLiteral(name); ok {
			return o.constant(key, typ, vals)
		}
	}
	info, err := o.lookup(name, typ)
	if err != nil {
		return
	}
	if gen == prop.Older {
		p, err = o.store.Older(info.Id, o)
	} else {
		p, err = o.store.Old(info.Id, o)
	}
	if err != nil {
		return
	}
	o.tracker.Record(o.cfg.Name, info.Id, false)
	return
}

// constant returns (allocating if needed) the constant property bound to param
func (o *Resolver) constant(param string, typ prop.Type, vals []float64) (p *prop.Property, err error) {
	key := param + "@" + typ.String()
	if c, ok := o.consts[key]; ok {
		o.tracker.MarkCalled(o.cfg.Name)
		return c.p, nil
	}
	n := typ.Ncomp()
	switch {
	case len(vals) == n:
	case len(vals) == 1:
		v := vals[0]
		vals = make([]float64, n)
		for k := range vals {
			vals[k] = v
		}
	default:
		return nil, errs.New(errs.TypeMismatch, "parameter %q of %q has %d values; thus it cannot be a %v", param, o.cfg.Name, len(vals), typ)
	}
	p = prop.NewConstant(param, typ, vals, o.store.MaxQp())
	o.consts[key] = &constant{p, vals}
	o.tracker.MarkCalled(o.cfg.Name)
	return
}

// function returns (allocating if needed) the function property bound to param
func (o *Resolver) function(param string, typ prop.Type, fname string) (p *prop.Property, err error) {
	key := param + "@" + typ.String()
	if f, ok := o.fcns[key]; ok {
		o.tracker.MarkCalled(o.cfg.Name)
		return f.p, nil
	}
	fcn, err := o.cfg.Funcs.Get(fname)
	if err != nil {
		return nil, errs.New(errs.NotDeclared, "parameter %q of %q refers to an unavailable function:\n%v", param, o.cfg.Name, err)
	}
	p = prop.NewConstant(param, typ, make([]float64, typ.Ncomp()), o.store.MaxQp())
	o.fcns[key] = &function{p, fcn}
	o.tracker.MarkCalled(o.cfg.Name)
	return
}
