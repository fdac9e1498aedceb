// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{None, "none"},
		{Scalar, "float"},
		{Vec2, "vec2"},
		{Vec3, "vec3"},
		{Vec4, "vec4"},
		{Mat3, "mat3"},
		{Mat4, "mat4"},
		{Mat(2, 3), "mat3x2"},
		{Sampler, "sampler2D"},
		{Array, "float[]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeEquality(t *testing.T) {
	assert.True(t, Vec(3) == Vec3)
	assert.True(t, Mat(4, 4) == Mat4)
	assert.False(t, Vec3 == Vec4)
	assert.False(t, Mat(3, 4) == Mat(4, 3))
	assert.False(t, Type(SamplerType{}) == Type(ArrayType{}))
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(nil))
	assert.False(t, Valid(None))
	for _, typ := range []Type{Scalar, Vec2, Mat4, Sampler, Array} {
		assert.True(t, Valid(typ), typ.String())
	}
}

func TestArity(t *testing.T) {
	n, ok := Arity(Vec3)
	require.True(t, ok)
	assert.Equal(t, uint8(3), n)

	_, ok = Arity(Mat4)
	assert.False(t, ok)
	_, ok = Arity(None)
	assert.False(t, ok)

	assert.True(t, IsGen(Scalar))
	assert.False(t, IsGen(Sampler))
}

func TestIsOpaque(t *testing.T) {
	assert.True(t, IsOpaque(Sampler))
	assert.True(t, IsOpaque(Array))
	for _, typ := range []Type{None, Scalar, Vec4, Mat4} {
		assert.False(t, IsOpaque(typ), typ.String())
	}
}

func TestTypeStringNil(t *testing.T) {
	assert.Equal(t, "none", TypeString(nil))
	assert.Equal(t, "vec2", TypeString(Vec2))
}

func TestParseStage(t *testing.T) {
	for _, s := range Stages {
		got, err := ParseStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStage("frag")
	require.NoError(t, err)
	assert.Equal(t, StageFragment, got)

	_, err = ParseStage("compute")
	assert.EqualError(t, err, `unknown shader stage "compute"`)
	assert.Equal(t, "stage(7)", ShaderStage(7).String())
}

func TestColor(t *testing.T) {
	assert.NotEqual(t, Color(Scalar), Color(Vec4))
	assert.Equal(t, Color(None), Color(nil))
	assert.Equal(t, Color(Mat3), Color(Mat4))
	assert.Equal(t, uint8(0xff), Color(Sampler).A)
}
