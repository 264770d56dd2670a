// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FuncPrefix marks parameter values referring to functions; e.g. "fcn:source"
const FuncPrefix = "fcn:"

// Params holds the bindings of the input parameters of one object:
//
//   key => literal  ; e.g. "coef" => "2.5" or "1 2 3"
//   key => name     ; e.g. "coef" => "diffusivity" (a property name)
//   key => function ; e.g. "coef" => "fcn:source"
//
type Params map[string]string

// Get returns the value bound to key
func (o Params) Get(key string) (val string, ok bool) {
	val, ok = o[key]
	return
}

// Str returns the value bound to key or a default value
func (o Params) Str(key, dflt string) string {
	if val, ok := o[key]; ok {
		return val
	}
	return dflt
}

// Float returns the scalar bound to key or a default value if key is not present
func (o Params) Float(key string, dflt float64) (val float64, err error) {
	str, ok := o[key]
	if !ok {
		return dflt, nil
	}
	vals, ok := ParseLiteral(str)
	if !ok || len(vals) != 1 {
		return 0, chk.Err("parameter %q = %q is not a scalar", key, str)
	}
	return vals[0], nil
}

// Floats returns the numbers bound to key or nil if key is not present
func (o Params) Floats(key string) (vals []float64, err error) {
	str, ok := o[key]
	if !ok {
		return nil, nil
	}
	vals, ok = ParseLiteral(str)
	if !ok {
		return nil, chk.Err("parameter %q = %q is not a list of numbers", key, str)
	}
	return
}

// Names returns the space-separated words bound to key
func (o Params) Names(key string) []string {
	return strings.Fields(o[key])
}

// DbfParams converts the literal parameters into function/model parameters
func (o Params) DbfParams() (prms dbf.Params) {
	for key, str := range o {
		if vals, ok := ParseLiteral(str); ok && len(vals) == 1 {
			prms = append(prms, &dbf.P{N: key, V: vals[0]})
		}
	}
	return
}

// ParseLiteral parses a list of numbers separated by spaces or commas
func ParseLiteral(str string) (vals []float64, ok bool) {
	words := strings.FieldsFunc(str, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(words) == 0 {
		return nil, false
	}
	vals = make([]float64, len(words))
	for i, w := range words {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// FuncName returns the name of the function referred to by a parameter value
func FuncName(val string) (name string, ok bool) {
	if strings.HasPrefix(val, FuncPrefix) {
		return strings.TrimPrefix(val, FuncPrefix), true
	}
	return "", false
}
