// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nodes

import (
	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

var texCoord = ir.Value{Type: ir.Vec2, Code: "gl_TexCoord[0].xy"}

// textureUniform is the sampler behind the texture node. "texture" itself
// is a built-in function from GLSL 1.30 on.
var textureUniform = glsl.Identifier("texture")

// Global exposes a built-in variable or a fixed uniform.
type Global struct {
	Value ir.Value
	// Decl is declared before use when not empty.
	Decl string
}

// Evaluate implements node.Kind.
func (g Global) Evaluate(ctx node.Context, st *node.State) {
	if g.Decl != "" {
		ctx.Declare(g.Decl)
	}
	st.Set(0, g.Value)
}

// Parameter is a user named float uniform.
type Parameter struct {
	Name string
}

// DefaultParameterName names new parameters.
const DefaultParameterName = "param"

// Identifier returns the uniform name used in generated code.
func (p *Parameter) Identifier() string {
	return glsl.Identifier(p.Name)
}

// Evaluate implements node.Kind.
func (p *Parameter) Evaluate(ctx node.Context, st *node.State) {
	id := p.Identifier()
	ctx.Declare("uniform float " + id + ";")
	st.Set(0, ir.Value{Type: ir.Scalar, Code: id})
}

// Save implements node.Persistent.
func (p *Parameter) Save(r node.Record) {
	r.SetString("name", p.Name)
}

// Load implements node.Persistent.
func (p *Parameter) Load(r node.Record) error {
	name, ok, err := r.Text("name")
	if ok && err == nil {
		p.Name = name
	}
	return err
}

func global(id, title string, v ir.Value, decl string) entry {
	return entry{
		arch: node.Archetype{
			Category: CategoryInputs,
			ID:       id,
			Title:    title,
			Outputs:  []node.Output{{Name: "value", Type: v.Type}},
		},
		factory: func() node.Kind { return Global{Value: v, Decl: decl} },
	}
}

func inputEntries() []entry {
	return []entry{
		global("input_time", "Time", ir.Value{Type: ir.Scalar, Code: "time"}, "uniform float time;"),
		global("uv", "UV", texCoord, ""),
		global("texture", "Texture", ir.Value{Type: ir.Sampler, Code: textureUniform}, "uniform sampler2D "+textureUniform+";"),
		global("mvp", "Model View Projection", ir.Value{Type: ir.Mat4, Code: "gl_ModelViewProjectionMatrix"}, ""),
		{
			arch: node.Archetype{
				Category: CategoryInputs,
				ID:       "parameter",
				Outputs:  []node.Output{{Name: "value", Type: ir.Scalar}},
			},
			factory: func() node.Kind { return &Parameter{Name: DefaultParameterName} },
		},
	}
}
