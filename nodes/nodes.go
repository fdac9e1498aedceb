// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package nodes provides the built-in node kinds and registers their
// archetypes.
package nodes

import (
	"github.com/hashicorp/go-multierror"

	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

// Categories offered by the built-in archetypes.
const (
	CategoryConstants = "Constants"
	CategoryMaths     = "Maths"
	CategoryVector    = "Vector"
	CategoryTexture   = "Texture"
	CategoryValue     = "Value"
	CategoryInputs    = "Inputs"
	CategoryOutput    = "Output"
)

// Shorthand for overload tables; gen is a generic slot.
var (
	gen = ir.None
	flt = ir.Scalar
)

type entry struct {
	arch    node.Archetype
	factory node.Factory
}

// Register adds every built-in archetype to reg.
func Register(reg *node.Registry) error {
	var tables [][]entry
	tables = append(tables,
		constantEntries(),
		arithmeticEntries(),
		builtinEntries(),
		vectorEntries(),
		inputEntries(),
		outputEntries(),
	)

	var result *multierror.Error
	for _, table := range tables {
		for _, e := range table {
			if _, err := reg.Register(e.arch, e.factory); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result.ErrorOrNil()
}

// NewRegistry returns a registry holding every built-in archetype.
func NewRegistry() *node.Registry {
	reg := node.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}

// Inline holds the values edited in place of unconnected inputs.
type Inline struct {
	Values []float32
}

func inline(values ...float32) Inline {
	return Inline{Values: values}
}

// Default implements node.Defaulter.
func (in *Inline) Default(i int) (float32, bool) {
	if i < 0 || i >= len(in.Values) {
		return 0, false
	}
	return in.Values[i], true
}

// Save implements node.Persistent.
func (in *Inline) Save(r node.Record) {
	r.SetFloats("inline", in.Values)
}

// Load implements node.Persistent.
func (in *Inline) Load(r node.Record) error {
	values, ok, err := r.Floats("inline")
	if err != nil || !ok {
		return err
	}
	// Extra values from a document written for more inputs are dropped.
	copy(in.Values, values)
	return nil
}

func inputs(names ...string) []node.Input {
	res := make([]node.Input, len(names))
	for i, n := range names {
		res[i] = node.Input{Name: n, Type: gen, Inline: true}
	}
	return res
}
