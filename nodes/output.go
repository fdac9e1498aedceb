// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nodes

import (
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

// VertexOut writes the vertex colour and the fixed-function position and
// texture coordinate.
type VertexOut struct {
	Inline
}

// Stage implements node.Root.
func (*VertexOut) Stage() ir.ShaderStage { return ir.StageVertex }

// Evaluate implements node.Kind.
func (v *VertexOut) Evaluate(ctx node.Context, st *node.State) {
	color, alpha := st.In(0), st.In(1)
	if !color.Valid() {
		color = ir.Splat(0.5, ir.Vec3)
	}
	if !alpha.Valid() {
		alpha = ir.Literal(1)
	}
	ctx.Emit("gl_FrontColor = vec4(" + color.Code + ", " + alpha.Code + ");")
	ctx.Emit("gl_Position = gl_ModelViewProjectionMatrix * gl_Vertex;")
	ctx.Emit("gl_TexCoord[0] = gl_TextureMatrix[0] * gl_MultiTexCoord0;")
}

// FragmentOut writes the fragment colour, falling back to the interpolated
// vertex colour.
type FragmentOut struct{}

// Stage implements node.Root.
func (FragmentOut) Stage() ir.ShaderStage { return ir.StageFragment }

// Evaluate implements node.Kind.
func (FragmentOut) Evaluate(ctx node.Context, st *node.State) {
	color := st.In(0)
	if !color.Valid() {
		color = ir.Value{Type: ir.Vec4, Code: "gl_Color"}
	}
	ctx.Emit("gl_FragColor = " + color.Code + ";")
}

// Bridge passes its input through. Editors use it to reroute links.
type Bridge struct{}

// Evaluate implements node.Kind.
func (Bridge) Evaluate(_ node.Context, st *node.State) {
	st.Set(0, st.In(0))
}

func outputEntries() []entry {
	return []entry{
		{
			arch: node.Archetype{
				Category: CategoryOutput,
				ID:       "out_vertex",
				Title:    "Vertex Out",
				Inputs: []node.Input{
					{Name: "Color", Type: ir.Vec3, Inline: true},
					{Name: "Alpha", Type: ir.Scalar, Inline: true},
				},
			},
			factory: func() node.Kind { return &VertexOut{Inline: inline(0.5, 1)} },
		},
		{
			arch: node.Archetype{
				Category: CategoryOutput,
				ID:       "out_fragment",
				Title:    "Fragment Out",
				Inputs:   []node.Input{{Name: "Color", Type: ir.Vec4, RequireLink: true}},
			},
			factory: func() node.Kind { return FragmentOut{} },
		},
		{
			arch: node.Archetype{
				ID:      "bridge",
				Title:   "Bridge",
				Hidden:  true,
				Inputs:  []node.Input{{Name: "in", Type: gen}},
				Outputs: []node.Output{{Name: "out", Type: gen}},
			},
			factory: func() node.Kind { return Bridge{} },
		},
	}
}
