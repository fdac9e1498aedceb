// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nodes

import (
	"strings"

	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

// Call invokes a GLSL built-in function.
type Call struct {
	Inline
	Func string
}

// Evaluate implements node.Kind.
func (c *Call) Evaluate(_ node.Context, st *node.State) {
	args := make([]string, len(st.Inputs))
	for i := range st.Inputs {
		v := st.In(i)
		if !v.Valid() {
			return
		}
		args[i] = v.Code
	}
	st.SetCode(0, c.Func+"("+strings.Join(args, ", ")+")")
}

type builtin struct {
	category  string
	id, title string
	fn        string
	args      []string
	fallback  []float32
	result    ir.Type
	overloads []node.Overload
}

// sig builds an overload with a generic result.
func sig(args ...ir.Type) node.Overload {
	return node.Sig(args, gen)
}

// reduce builds an overload with a float result.
func reduce(args ...ir.Type) node.Overload {
	return node.Sig(args, flt)
}

var builtins = []builtin{
	{CategoryMaths, "lerp", "Lerp", "mix", []string{"X", "Y", "A"}, []float32{0, 1, 0.5}, gen,
		[]node.Overload{sig(gen, gen, gen), sig(gen, gen, flt)}},
	{CategoryMaths, "mod", "Modulo", "mod", []string{"X", "Y"}, []float32{0, 1}, gen,
		[]node.Overload{sig(gen, gen), sig(gen, flt)}},
	{CategoryMaths, "abs", "Absolute", "abs", []string{"X"}, nil, gen, []node.Overload{sig(gen)}},
	{CategoryMaths, "sin", "Sine", "sin", []string{"X"}, nil, gen, []node.Overload{sig(gen)}},
	{CategoryMaths, "cos", "Cosine", "cos", []string{"X"}, nil, gen, []node.Overload{sig(gen)}},
	{CategoryMaths, "fract", "Fraction", "fract", []string{"X"}, nil, gen, []node.Overload{sig(gen)}},
	{CategoryMaths, "floor", "Floor", "floor", []string{"X"}, nil, gen, []node.Overload{sig(gen)}},
	{CategoryMaths, "sqrt", "Square Root", "sqrt", []string{"X"}, nil, gen, []node.Overload{sig(gen)}},
	{CategoryMaths, "pow", "Power", "pow", []string{"X", "Y"}, []float32{0, 1}, gen,
		[]node.Overload{sig(gen, gen)}},
	{CategoryMaths, "min", "Minimum", "min", []string{"X", "Y"}, nil, gen,
		[]node.Overload{sig(gen, gen), sig(gen, flt)}},
	{CategoryMaths, "max", "Maximum", "max", []string{"X", "Y"}, nil, gen,
		[]node.Overload{sig(gen, gen), sig(gen, flt)}},
	{CategoryMaths, "clamp", "Clamp", "clamp", []string{"X", "Min", "Max"}, []float32{0, 0, 1}, gen,
		[]node.Overload{sig(gen, gen, gen), sig(gen, flt, flt)}},
	{CategoryMaths, "step", "Step", "step", []string{"Edge", "X"}, []float32{0.5, 0}, gen,
		[]node.Overload{sig(gen, gen), sig(flt, gen)}},
	{CategoryMaths, "smoothstep", "Smooth Step", "smoothstep", []string{"Edge0", "Edge1", "X"}, []float32{0, 1, 0}, gen,
		[]node.Overload{sig(gen, gen, gen), sig(flt, flt, gen)}},
	{CategoryVector, "dot", "Dot Product", "dot", []string{"A", "B"}, nil, flt,
		[]node.Overload{reduce(gen, gen)}},
	{CategoryVector, "length", "Length", "length", []string{"X"}, nil, flt,
		[]node.Overload{reduce(gen)}},
	{CategoryVector, "distance", "Distance", "distance", []string{"A", "B"}, nil, flt,
		[]node.Overload{reduce(gen, gen)}},
	{CategoryVector, "normalize", "Normalize", "normalize", []string{"X"}, nil, gen,
		[]node.Overload{sig(gen)}},
}

func builtinEntries() []entry {
	var entries []entry
	for _, b := range builtins {
		b := b
		entries = append(entries, entry{
			arch: node.Archetype{
				Category:  b.category,
				ID:        b.id,
				Title:     b.title,
				Inputs:    inputs(b.args...),
				Outputs:   []node.Output{{Name: "out", Type: b.result}},
				Overloads: b.overloads,
			},
			factory: func() node.Kind {
				fallback := make([]float32, len(b.args))
				copy(fallback, b.fallback)
				return &Call{Func: b.fn, Inline: Inline{Values: fallback}}
			},
		})
	}

	entries = append(entries, entry{
		arch: node.Archetype{
			Category: CategoryTexture,
			ID:       "sample",
			Title:    "Sample Texture",
			Inputs: []node.Input{
				{Name: "Texture", Type: ir.Sampler, RequireLink: true},
				{Name: "UV", Type: ir.Vec2, RequireLink: true},
			},
			Outputs: []node.Output{{Name: "color", Type: ir.Vec4}},
		},
		factory: func() node.Kind { return Sample{} },
	})
	return entries
}

// Sample reads a texture. Without coordinates it samples at the
// interpolated texture coordinate; without a texture it yields zero.
type Sample struct{}

// Evaluate implements node.Kind.
func (Sample) Evaluate(_ node.Context, st *node.State) {
	tex, uv := st.In(0), st.In(1)
	if !tex.Valid() {
		st.Set(0, ir.Splat(0, ir.Vec4))
		return
	}
	if !uv.Valid() {
		uv = texCoord
	}
	st.SetCode(0, "texture2D("+tex.Code+", "+uv.Code+")")
}
