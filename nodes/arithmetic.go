// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nodes

import (
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

// BinaryOp applies an infix operator to two values.
type BinaryOp struct {
	Inline
	Op string
}

// Evaluate implements node.Kind.
func (b *BinaryOp) Evaluate(_ node.Context, st *node.State) {
	x, y := st.In(0), st.In(1)
	if !x.Valid() || !y.Valid() {
		return
	}
	st.SetCode(0, x.Code+" "+b.Op+" "+y.Code)
}

// Transform multiplies a vector by a matrix. Without a matrix the vector
// passes through unchanged.
type Transform struct{}

// Evaluate implements node.Kind.
func (Transform) Evaluate(_ node.Context, st *node.State) {
	m, v := st.In(0), st.In(1)
	if !m.Valid() {
		st.Set(0, v)
		return
	}
	st.SetCode(0, m.Code+" * "+v.Code)
}

var arithmeticOverloads = []node.Overload{
	node.Sig([]ir.Type{gen, gen}, gen),
	node.Sig([]ir.Type{flt, gen}, gen),
}

func arithmeticEntries() []entry {
	ops := []struct {
		id, title, op string
		fallback      float32
	}{
		{"add", "Add", "+", 0},
		{"sub", "Subtract", "-", 0},
		{"mul", "Multiply", "*", 1},
		{"div", "Divide", "/", 1},
	}

	var entries []entry
	for _, op := range ops {
		op := op
		entries = append(entries, entry{
			arch: node.Archetype{
				Category:  CategoryMaths,
				ID:        op.id,
				Title:     op.title,
				Inputs:    inputs("A", "B"),
				Outputs:   []node.Output{{Name: "out", Type: gen, Hoist: true}},
				Overloads: arithmeticOverloads,
			},
			factory: func() node.Kind {
				return &BinaryOp{Op: op.op, Inline: inline(op.fallback, op.fallback)}
			},
		})
	}

	entries = append(entries, entry{
		arch: node.Archetype{
			Category: CategoryMaths,
			ID:       "transform",
			Inputs: []node.Input{
				{Name: "Matrix", Type: gen, RequireLink: true},
				{Name: "Vector", Type: gen},
			},
			Outputs: []node.Output{{Name: "out", Type: gen, Hoist: true}},
			Overloads: []node.Overload{
				node.Sig([]ir.Type{ir.Mat4, ir.Vec4}, ir.Vec4),
				node.Sig([]ir.Type{ir.Mat3, ir.Vec3}, ir.Vec3),
			},
		},
		factory: func() node.Kind { return Transform{} },
	})
	return entries
}
