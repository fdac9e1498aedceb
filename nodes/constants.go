// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nodes

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

// Scalar is a float literal.
type Scalar struct {
	Value float32
}

// Evaluate implements node.Kind.
func (s *Scalar) Evaluate(_ node.Context, st *node.State) {
	st.Set(0, ir.Literal(s.Value))
}

// Save implements node.Persistent.
func (s *Scalar) Save(r node.Record) {
	r.SetFloat("value", s.Value)
}

// Load implements node.Persistent.
func (s *Scalar) Load(r node.Record) error {
	v, ok, err := r.Float("value")
	if ok && err == nil {
		s.Value = v
	}
	return err
}

// Vector is a vec2, vec3 or vec4 literal.
type Vector struct {
	Values [4]float32
	arity  uint8
}

// Arity returns the number of components.
func (v *Vector) Arity() uint8 { return v.arity }

// Evaluate implements node.Kind.
func (v *Vector) Evaluate(_ node.Context, st *node.State) {
	args := make([]ir.Value, v.arity)
	for i := range args {
		args[i] = ir.Literal(v.Values[i])
	}
	st.Set(0, ir.Compose(ir.Vec(v.arity), args...))
}

// Save implements node.Persistent.
func (v *Vector) Save(r node.Record) {
	r.SetFloats("values", v.Values[:v.arity])
}

// Load implements node.Persistent.
func (v *Vector) Load(r node.Record) error {
	values, ok, err := r.Floats("values")
	if err != nil || !ok {
		return err
	}
	if len(values) != int(v.arity) {
		return errors.Errorf("vec%d: expected %d values, got %d", v.arity, v.arity, len(values))
	}
	copy(v.Values[:], values)
	return nil
}

func constantEntries() []entry {
	entries := []entry{{
		arch: node.Archetype{
			Category: CategoryConstants,
			ID:       "scalar",
			Outputs:  []node.Output{{Name: "value", Type: ir.Scalar}},
		},
		factory: func() node.Kind { return &Scalar{} },
	}}

	for arity := uint8(2); arity <= 4; arity++ {
		arity := arity
		entries = append(entries, entry{
			arch: node.Archetype{
				Category: CategoryConstants,
				ID:       fmt.Sprintf("vec%d", arity),
				Outputs:  []node.Output{{Name: "value", Type: ir.Vec(arity)}},
			},
			factory: func() node.Kind { return &Vector{arity: arity} },
		})
	}
	return entries
}
