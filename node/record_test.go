// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFloatRepresentations(t *testing.T) {
	r := Record{
		"f64": 0.5,
		"f32": float32(0.25),
		"int": 2,
		"i8":  int8(-3),
		"u64": uint64(7),
		"str": "x",
	}

	tests := []struct {
		key  string
		want float32
	}{
		{"f64", 0.5},
		{"f32", 0.25},
		{"int", 2},
		{"i8", -3},
		{"u64", 7},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok, err := r.Float(tt.key)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok, err := r.Float("missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = r.Float("str")
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestRecordFloats(t *testing.T) {
	r := Record{}
	r.SetFloats("value", []float32{0.5, 1, -2})

	got, ok, err := r.Floats("value")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, 1, -2}, got)

	r["decoded"] = []any{1, 0.5, float32(2)}
	got, _, err = r.Floats("decoded")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0.5, 2}, got)

	r["bad"] = []any{"x"}
	_, _, err = r.Floats("bad")
	assert.Error(t, err)

	r["scalar"] = 1.0
	_, _, err = r.Floats("scalar")
	assert.Error(t, err)
}

func TestRecordText(t *testing.T) {
	r := Record{}
	r.SetString("name", "brightness")
	r.SetFloat("value", 0.5)

	s, ok, err := r.Text("name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "brightness", s)

	_, _, err = r.Text("value")
	assert.Error(t, err)
}
