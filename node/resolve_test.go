// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
)

type defaults map[int]float32

func (d defaults) Evaluate(Context, *State) {}

func (d defaults) Default(i int) (float32, bool) {
	f, ok := d[i]
	return f, ok
}

var arith = &Archetype{
	ID:      "add",
	Inputs:  []Input{{Name: "a", Type: ir.None, Inline: true}, {Name: "b", Type: ir.None, Inline: true}},
	Outputs: []Output{{Name: "out", Type: ir.None}},
	Overloads: []Overload{
		Sig([]ir.Type{ir.None, ir.None}, ir.None),
		Sig([]ir.Type{ir.Scalar, ir.None}, ir.None),
	},
}

func stateFor(a *Archetype, values ...ir.Value) *State {
	e := &Expression{id: 1, nin: len(a.Inputs), nout: len(a.Outputs)}
	st := e.NewState(a, graph.New())
	for i, v := range values {
		st.Inputs[i].Value = v
	}
	return st
}

func val(t ir.Type, code string) ir.Value {
	return ir.Value{Type: t, Code: code}
}

func TestResolveOverloadGenericUnification(t *testing.T) {
	st := stateFor(arith, val(ir.Vec3, "a"), val(ir.Scalar, "b"))
	require.True(t, st.Resolve(arith, defaults{}))

	assert.Equal(t, 0, st.Overload)
	assert.Equal(t, ir.Vec3, st.Inputs[1].Type)
	assert.Equal(t, "vec3(b, b, b)", st.In(1).Code)
	assert.Equal(t, ir.Vec3, st.Outputs[0].Type)
}

func TestResolveOverloadFirstMatchWins(t *testing.T) {
	// float + vec2: the generic candidate infers arity 1 from a and rejects
	// vec2 for b; the (float, G) candidate matches.
	st := stateFor(arith, val(ir.Scalar, "a"), val(ir.Vec2, "b"))
	require.True(t, st.Resolve(arith, defaults{}))

	assert.Equal(t, 1, st.Overload)
	assert.Equal(t, ir.Scalar, st.Inputs[0].Type)
	assert.Equal(t, ir.Vec2, st.Inputs[1].Type)
	assert.Equal(t, ir.Vec2, st.Outputs[0].Type)
	assert.Equal(t, "a", st.In(0).Code)
}

func TestResolveOverloadFirstOfSeveralMatches(t *testing.T) {
	a := &Archetype{
		ID:      "pick",
		Inputs:  []Input{{Name: "a", Type: ir.None}, {Name: "b", Type: ir.None}},
		Outputs: []Output{{Name: "out", Type: ir.None}},
		Overloads: []Overload{
			Sig([]ir.Type{ir.Scalar, ir.Scalar}, ir.Scalar),
			Sig([]ir.Type{ir.None, ir.None}, ir.None),
		},
	}
	st := stateFor(a, val(ir.Scalar, "x"), val(ir.Scalar, "y"))
	require.True(t, st.Resolve(a, defaults{}))
	assert.Equal(t, 0, st.Overload)
	assert.Equal(t, ir.Scalar, st.Outputs[0].Type)

	// Both candidates still match with the order reversed; the generic one
	// now comes first.
	a.Overloads[0], a.Overloads[1] = a.Overloads[1], a.Overloads[0]
	st = stateFor(a, val(ir.Vec2, "x"), val(ir.Vec2, "y"))
	require.True(t, st.Resolve(a, defaults{}))
	assert.Equal(t, 0, st.Overload)
	assert.Equal(t, ir.Vec2, st.Outputs[0].Type)
}

func TestResolveOverloadConflictingArities(t *testing.T) {
	st := stateFor(arith, val(ir.Vec3, "a"), val(ir.Vec2, "b"))
	assert.False(t, st.Resolve(arith, defaults{}))

	assert.Equal(t, -1, st.Overload)
	assert.Equal(t, "no compatible overload found", st.Inputs[0].Error)
	assert.Empty(t, st.Inputs[1].Error)
	assert.False(t, st.In(0).Valid())
	require.Len(t, st.Errors(), 1)
	assert.Contains(t, st.Errors()[0].Error(), "no compatible overload found")
}

func TestResolveOverloadNonGenRejected(t *testing.T) {
	st := stateFor(arith, val(ir.Mat4, "m"), val(ir.Scalar, "b"))
	assert.False(t, st.Resolve(arith, defaults{}))
}

func TestResolveDefaults(t *testing.T) {
	st := stateFor(arith, val(ir.Vec2, "a"))
	require.True(t, st.Resolve(arith, defaults{1: 0.5}))

	assert.Equal(t, "vec2(0.5, 0.5)", st.In(1).Code)

	st = stateFor(arith)
	require.True(t, st.Resolve(arith, defaults{}))
	assert.Equal(t, ir.Scalar, st.Outputs[0].Type, "arity defaults to 1")
	assert.Equal(t, "0.0", st.In(0).Code)
	assert.Equal(t, "0.0", st.In(1).Code)
}

func TestResolveRequireLinkGetsNoDefault(t *testing.T) {
	a := &Archetype{
		ID:      "sample",
		Inputs:  []Input{{Name: "texture", Type: ir.Sampler, RequireLink: true}, {Name: "uv", Type: ir.Vec2, RequireLink: true}},
		Outputs: []Output{{Name: "color", Type: ir.Vec4}},
	}
	st := stateFor(a)
	require.True(t, st.Resolve(a, defaults{}))

	assert.False(t, st.In(0).Valid())
	assert.False(t, st.In(1).Valid())
	assert.Equal(t, ir.Vec4, st.Outputs[0].Type)
}

func TestResolveDeclaredConversion(t *testing.T) {
	a := &Archetype{
		ID:      "make",
		Inputs:  []Input{{Name: "x", Type: ir.Scalar}, {Name: "v", Type: ir.Vec4}, {Name: "any", Type: ir.None}, {Name: "z", Type: ir.Scalar}},
		Outputs: []Output{{Name: "out", Type: ir.Vec4}},
	}
	st := stateFor(a, val(ir.Vec3, "v3"), val(ir.Scalar, "s"), val(ir.Mat3, "m"))
	require.True(t, st.Resolve(a, defaults{3: 2}))

	assert.Equal(t, "cannot convert from vec3 to float", st.Inputs[0].Error)
	assert.Equal(t, ir.None, st.Inputs[0].Type)
	assert.False(t, st.In(0).Valid())

	assert.Empty(t, st.Inputs[1].Error, "siblings still resolve")
	assert.Equal(t, "vec4(s, s, s, s)", st.In(1).Code)

	assert.Equal(t, ir.Mat3, st.Inputs[2].Type, "generic inputs adopt the actual type")
	assert.Equal(t, "2.0", st.In(3).Code)
	assert.Equal(t, ir.Vec4, st.Outputs[0].Type)
}

func TestNewStateReadsTopology(t *testing.T) {
	g := graph.New()
	src := &Expression{nin: 0, nout: 1}
	dst := &Expression{nin: 2, nout: 1}
	other := &Expression{nin: 2, nout: 1}
	g.AddNode(src)
	g.AddNode(dst)
	g.AddNode(other)

	_, err := g.AddLink(src.Out(0), dst.In(1))
	require.NoError(t, err)
	_, err = g.AddLink(src.Out(0), other.In(0))
	require.NoError(t, err)

	srcArch := &Archetype{ID: "src", Outputs: []Output{{Name: "out", Type: ir.Scalar, Hoist: true}}}
	st := src.NewState(srcArch, g)
	assert.Equal(t, 2, st.Outputs[0].FanOut)
	assert.True(t, st.Outputs[0].Hoist)
	assert.Equal(t, -1, st.Overload)

	st = dst.NewState(arith, g)
	assert.False(t, st.Inputs[0].Linked())
	assert.True(t, st.Inputs[1].Linked())
	assert.Equal(t, src.Out(0), st.Inputs[1].Link.From())
	assert.Equal(t, 0, st.Outputs[0].FanOut)
}

func TestPublish(t *testing.T) {
	e := &Expression{}
	assert.Nil(t, e.State())
	st := &State{}
	e.Publish(st)
	assert.Same(t, st, e.State())
}
