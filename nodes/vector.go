// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nodes

import (
	"fmt"

	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

var components = [...]string{"X", "Y", "Z", "W"}

const swizzle = "xyzw"

// MakeVec builds a vector from scalars. When only X is linked it is
// broadcast to every component.
type MakeVec struct {
	Inline
	arity uint8
}

// Evaluate implements node.Kind.
func (m *MakeVec) Evaluate(_ node.Context, st *node.State) {
	t := ir.Vec(m.arity)

	onlyX := st.Inputs[0].Linked()
	for i := 1; i < len(st.Inputs); i++ {
		if st.Inputs[i].Linked() {
			onlyX = false
		}
	}
	if onlyX {
		st.Set(0, ir.Convert(st.In(0), t))
		return
	}

	args := make([]ir.Value, m.arity)
	for i := range args {
		args[i] = st.In(i)
		if !args[i].Valid() {
			args[i] = ir.Literal(0)
		}
	}
	st.Set(0, ir.Compose(t, args...))
}

// BreakVec splits a vector into its components. Components of an
// unconnected vector are zero.
type BreakVec struct {
	arity uint8
}

// Evaluate implements node.Kind.
func (b *BreakVec) Evaluate(_ node.Context, st *node.State) {
	v := st.In(0)
	for i := 0; i < int(b.arity); i++ {
		if v.Valid() {
			st.SetCode(i, v.Code+"."+swizzle[i:i+1])
		} else {
			st.Set(i, ir.Literal(0))
		}
	}
}

// Append concatenates two scalars or vectors into a wider vector.
type Append struct{}

// Evaluate implements node.Kind.
func (Append) Evaluate(_ node.Context, st *node.State) {
	a, b := st.In(0), st.In(1)
	if !a.Valid() || !b.Valid() {
		return
	}

	na, ok := ir.Arity(a.Type)
	if !ok {
		st.Fail(0, "value is not a scalar or vector")
		return
	}
	nb, ok := ir.Arity(b.Type)
	if !ok {
		st.Fail(1, "value is not a scalar or vector")
		return
	}
	if na+nb > 4 {
		st.Fail(0, "inputs cannot have more than 4 components in total")
		st.Fail(1, "inputs cannot have more than 4 components in total")
		return
	}
	st.Set(0, ir.Compose(ir.Vec(na+nb), a, b))
}

func vectorEntries() []entry {
	var entries []entry
	for arity := uint8(2); arity <= 4; arity++ {
		arity := arity
		in := make([]node.Input, arity)
		out := make([]node.Output, arity)
		for i := range in {
			in[i] = node.Input{Name: components[i], Type: ir.Scalar, Inline: true}
			out[i] = node.Output{Name: components[i], Type: ir.Scalar}
		}

		entries = append(entries,
			entry{
				arch: node.Archetype{
					Category: CategoryValue,
					ID:       fmt.Sprintf("make_vec%d", arity),
					Inputs:   in,
					Outputs:  []node.Output{{Name: "out", Type: ir.Vec(arity)}},
				},
				factory: func() node.Kind {
					return &MakeVec{arity: arity, Inline: Inline{Values: make([]float32, arity)}}
				},
			},
			entry{
				arch: node.Archetype{
					Category: CategoryValue,
					ID:       fmt.Sprintf("break_vec%d", arity),
					Inputs:   []node.Input{{Name: "V", Type: ir.Vec(arity), RequireLink: true}},
					Outputs:  out,
				},
				factory: func() node.Kind { return &BreakVec{arity: arity} },
			},
		)
	}

	entries = append(entries, entry{
		arch: node.Archetype{
			Category: CategoryValue,
			ID:       "append",
			Inputs: []node.Input{
				{Name: "A", Type: gen, RequireLink: true},
				{Name: "B", Type: gen, RequireLink: true},
			},
			Outputs: []node.Output{{Name: "out", Type: gen}},
		},
		factory: func() node.Kind { return Append{} },
	})
	return entries
}
