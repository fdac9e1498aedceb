// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergraph/ir"
)

func nopKind() Kind {
	return KindFunc(func(Context, *State) {})
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	r.MustRegister(Archetype{Category: "Maths", ID: "add",
		Inputs:  []Input{{Name: "a", Type: ir.None}, {Name: "b", Type: ir.None}},
		Outputs: []Output{{Name: "out", Type: ir.None}},
	}, nopKind)
	r.MustRegister(Archetype{Category: "Value", ID: "make_vec2",
		Inputs:  []Input{{Name: "x", Type: ir.Scalar}, {Name: "y", Type: ir.Scalar}},
		Outputs: []Output{{Name: "out", Type: ir.Vec2}},
	}, nopKind)
	r.MustRegister(Archetype{Category: "Maths", ID: "abs", Title: "Absolute"}, nopKind)
	r.MustRegister(Archetype{Category: "Hidden", ID: "bridge", Hidden: true}, nopKind)
	return r
}

func TestRegisterDerivesTitle(t *testing.T) {
	r := testRegistry(t)

	a, err := r.Get("make_vec2")
	require.NoError(t, err)
	assert.Equal(t, "Make Vec2", a.Title)

	a, err = r.Get("abs")
	require.NoError(t, err)
	assert.Equal(t, "Absolute", a.Title)
}

func TestRegisterRejects(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name string
		a    Archetype
		f    Factory
	}{
		{"empty_id", Archetype{}, nopKind},
		{"duplicate", Archetype{ID: "add"}, nopKind},
		{"no_factory", Archetype{ID: "x"}, nil},
		{"too_many_pins", Archetype{ID: "wide", Inputs: make([]Input, 128)}, nopKind},
		{"overload_shape", Archetype{ID: "bad",
			Inputs:    []Input{{Name: "a"}},
			Overloads: []Overload{Sig([]ir.Type{ir.Scalar, ir.Scalar}, ir.Scalar)},
		}, nopKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Register(tt.a, tt.f)
			assert.Error(t, err)
		})
	}
	assert.Equal(t, 4, r.Len())
}

func TestMustRegisterPanics(t *testing.T) {
	r := testRegistry(t)
	assert.Panics(t, func() { r.MustRegister(Archetype{ID: "add"}, nopKind) })
}

func TestLookupAndHandles(t *testing.T) {
	r := testRegistry(t)

	h, ok := r.Lookup("make_vec2")
	require.True(t, ok)
	assert.Equal(t, "make_vec2", r.Archetype(h).ID)

	_, ok = r.Lookup("nope")
	assert.False(t, ok)

	assert.Nil(t, r.Archetype(Handle(r.Len())))
	assert.Nil(t, r.Archetype(-1))
}

func TestArchetypePinNames(t *testing.T) {
	a, err := testRegistry(t).Get("make_vec2")
	require.NoError(t, err)

	assert.Equal(t, 1, a.Input("y"))
	assert.Equal(t, -1, a.Input("z"))
	assert.Equal(t, 0, a.Output("out"))
	assert.Equal(t, -1, a.Output("x"))
}

func TestGetSuggests(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Get("make_vec3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArchetype))
	assert.Contains(t, err.Error(), `did you mean "make_vec2"`)

	_, err = r.Get("completely_unrelated_name")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")

	assert.Equal(t, []string{"add", "abs"}, r.Suggest("ad"))
}

func TestNew(t *testing.T) {
	r := testRegistry(t)

	e, err := r.New("make_vec2")
	require.NoError(t, err)
	assert.Equal(t, 2, e.NumInputs())
	assert.Equal(t, 1, e.NumOutputs())
	assert.NotNil(t, e.Kind())

	_, err = r.New("mak_vec2")
	assert.True(t, errors.Is(err, ErrUnknownArchetype))
}

func TestAllCategoriesFilter(t *testing.T) {
	r := testRegistry(t)

	var ids []string
	for _, a := range r.All() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"bridge", "abs", "add", "make_vec2"}, ids)

	assert.Equal(t, []string{"Maths", "Value"}, r.Categories())

	var found []string
	for _, a := range r.Filter("VEC") {
		found = append(found, a.ID)
	}
	assert.Equal(t, []string{"make_vec2"}, found)

	assert.Len(t, r.Filter("maths"), 2)
	assert.Len(t, r.Filter("absolute"), 1)
	assert.Len(t, r.Filter(""), 3, "hidden archetypes are filtered out")
	assert.Empty(t, r.Filter("bridge"))
}
