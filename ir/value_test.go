// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanConvert(t *testing.T) {
	tests := []struct {
		name     string
		from, to Type
		want     bool
	}{
		{"identity_scalar", Scalar, Scalar, true},
		{"identity_matrix", Mat4, Mat4, true},
		{"identity_sampler", Sampler, Sampler, true},
		{"broadcast_vec2", Scalar, Vec2, true},
		{"broadcast_vec4", Scalar, Vec4, true},
		{"narrow_vec2", Vec2, Scalar, false},
		{"narrow_vec3", Vec3, Scalar, false},
		{"narrow_vec4", Vec4, Scalar, false},
		{"broadcast_vec3", Scalar, Vec3, true},
		{"widen_vector", Vec2, Vec3, false},
		{"matrix_to_vector", Mat4, Vec4, false},
		{"scalar_to_matrix", Scalar, Mat4, false},
		{"scalar_to_sampler", Scalar, Sampler, false},
		{"scalar_to_array", Scalar, Array, false},
		{"none_to_scalar", None, Scalar, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanConvert(tt.from, tt.to))
		})
	}
}

func TestConvert(t *testing.T) {
	x := Value{Type: Scalar, Code: "x"}

	got := Convert(x, Vec3)
	assert.Equal(t, Value{Type: Vec3, Code: "vec3(x, x, x)"}, got)

	assert.Equal(t, x, Convert(x, Scalar))

	v := Value{Type: Vec2, Code: "uv"}
	assert.Equal(t, v, Convert(v, Vec2))
	assert.False(t, Convert(v, Vec3).Valid())
	assert.False(t, Convert(Null, Scalar).Valid())
}

func TestConvertVectorToScalarFails(t *testing.T) {
	for _, to := range []Type{Vec2, Vec3, Vec4} {
		t.Run(to.String(), func(t *testing.T) {
			v := Value{Type: to, Code: "v"}
			assert.False(t, Convert(v, Scalar).Valid())
			assert.Equal(t, Null, Convert(v, Scalar))
		})
	}
}

func TestConvertIsStable(t *testing.T) {
	// Converting an already converted value is the identity.
	x := Value{Type: Scalar, Code: "a"}
	once := Convert(x, Vec4)
	assert.Equal(t, once, Convert(once, Vec4))
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{0.25, "0.25"},
		{0.1, "0.1"},
		{1234567, "1234567.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.in))
		})
	}

	assert.Equal(t, "(1.0 / 0.0)", FormatFloat(float32(math.Inf(1))))
	assert.Equal(t, "(0.0 / 0.0)", FormatFloat(float32(math.NaN())))
}

func TestSplat(t *testing.T) {
	assert.Equal(t, Value{Type: Scalar, Code: "0.0"}, Splat(0, Scalar))
	assert.Equal(t, Value{Type: Vec2, Code: "vec2(1.0, 1.0)"}, Splat(1, Vec2))
	assert.False(t, Splat(0, Mat4).Valid())
	assert.False(t, Splat(0, None).Valid())
}

func TestCompose(t *testing.T) {
	got := Compose(Vec3, Value{Type: Scalar, Code: "a"}, Literal(0), Value{Type: Scalar, Code: "c"})
	assert.Equal(t, "vec3(a, 0.0, c)", got.Code)
	assert.Equal(t, Vec3, got.Type)
}

func TestNull(t *testing.T) {
	assert.False(t, Null.Valid())
	assert.False(t, Value{}.Valid())
	assert.True(t, Literal(1).Valid())
	assert.Equal(t, "1.0", Literal(1).String())
}
