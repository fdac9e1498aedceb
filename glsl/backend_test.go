// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Version Tests
// =============================================================================

func TestVersion_String(t *testing.T) {
	tests := []struct {
		version Version
		want    string
	}{
		{Version110, "110"},
		{Version120, "120"},
		{Version130, "130"},
		{VersionES100, "100"},
		{Version{Major: 3, Minor: 0, ES: true}, "300 es"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.version.String()
			if got != tt.want {
				t.Errorf("Version.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "120", want: Version120},
		{in: "110", want: Version110},
		{in: "100", want: VersionES100},
		{in: "300 es", want: Version{Major: 3, Minor: 0, ES: true}},
		{in: "330 core", want: Version{Major: 3, Minor: 30}},
		{in: "12", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "120 compat", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// Options Tests
// =============================================================================

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, Version120, opts.Version)
	assert.Equal(t, 15, opts.HoistThreshold)
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, Version120, opts.Version)
	assert.Equal(t, DefaultHoistThreshold, opts.HoistThreshold)
	assert.NotNil(t, opts.Logger)

	opts = Options{Version: Version110, HoistThreshold: 4}.withDefaults()
	assert.Equal(t, Version110, opts.Version)
	assert.Equal(t, 4, opts.HoistThreshold)
}

// =============================================================================
// Identifier Tests
// =============================================================================

func TestIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"brightness", "brightness"},
		{"Brightness2", "Brightness2"},
		{"my param", "my_param"},
		{"a--b", "a_b"},
		{"a__b", "a_b"},
		{"2fast", "_2fast"},
		{"", "_unnamed"},
		{"???", "_unnamed"},
		{"float", "_float"},
		{"sin", "_sin"},
		{"main", "_main"},
		{"texture", "_texture"},
		{"gl_Color", "_gl_Color"},
		{"var0", "_var0"},
		{"var12", "_var12"},
		{"variance", "variance"},
		{"var", "var"},
		{"héllo", "h_llo"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Identifier(tt.in)
			if got != tt.want {
				t.Errorf("Identifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeKeyword(t *testing.T) {
	assert.True(t, isKeyword("uniform"))
	assert.True(t, isKeyword("texture2D"))
	assert.False(t, isKeyword("time"))
	assert.Equal(t, "time", escapeKeyword("time"))
	assert.Equal(t, "_vec4", escapeKeyword("vec4"))
}
