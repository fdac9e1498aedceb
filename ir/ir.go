// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ir defines the value types flowing between shader graph nodes.
//
// The type algebra is closed: a Type is one of NoneType, GenType, MatrixType,
// SamplerType or ArrayType. Types compare structurally with ==.
package ir

import (
	"fmt"

	"github.com/pkg/errors"
)

// ShaderStage represents a shader pipeline stage.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// Stages lists every stage in emission order.
var Stages = []ShaderStage{StageVertex, StageFragment}

// String returns the lower case stage name.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// ParseStage parses a stage name as produced by ShaderStage.String.
func ParseStage(name string) (ShaderStage, error) {
	switch name {
	case "vertex", "vert":
		return StageVertex, nil
	case "fragment", "frag":
		return StageFragment, nil
	}
	return 0, errors.Errorf("unknown shader stage %q", name)
}

// Type represents a value type.
type Type interface {
	// String returns the GLSL spelling of the type.
	String() string

	valueType()
}

// NoneType is the absent or untyped type. In an overload signature it marks
// a generic slot.
type NoneType struct{}

func (NoneType) valueType() {}

func (NoneType) String() string { return "none" }

// GenType is a float scalar (Arity 1) or vector (Arity 2..4).
type GenType struct {
	Arity uint8
}

func (GenType) valueType() {}

func (t GenType) String() string {
	if t.Arity <= 1 {
		return "float"
	}
	return fmt.Sprintf("vec%d", t.Arity)
}

// MatrixType is a float matrix.
type MatrixType struct {
	Rows    uint8
	Columns uint8
}

func (MatrixType) valueType() {}

// String uses GLSL's column-major matCxR naming.
func (t MatrixType) String() string {
	if t.Rows == t.Columns {
		return fmt.Sprintf("mat%d", t.Columns)
	}
	return fmt.Sprintf("mat%dx%d", t.Columns, t.Rows)
}

// SamplerType is a combined 2D texture sampler.
type SamplerType struct{}

func (SamplerType) valueType() {}

func (SamplerType) String() string { return "sampler2D" }

// ArrayType is an unsized float array.
type ArrayType struct{}

func (ArrayType) valueType() {}

func (ArrayType) String() string { return "float[]" }

// Common types.
var (
	None    Type = NoneType{}
	Scalar  Type = GenType{Arity: 1}
	Vec2    Type = GenType{Arity: 2}
	Vec3    Type = GenType{Arity: 3}
	Vec4    Type = GenType{Arity: 4}
	Mat3    Type = MatrixType{Rows: 3, Columns: 3}
	Mat4    Type = MatrixType{Rows: 4, Columns: 4}
	Sampler Type = SamplerType{}
	Array   Type = ArrayType{}
)

// Vec returns the generic type of the given arity. Arity 1 is the scalar.
func Vec(arity uint8) Type {
	return GenType{Arity: arity}
}

// Mat returns a matrix type.
func Mat(rows, columns uint8) Type {
	return MatrixType{Rows: rows, Columns: columns}
}

// Valid reports whether t carries a type. None and nil are not valid.
func Valid(t Type) bool {
	if t == nil {
		return false
	}
	_, none := t.(NoneType)
	return !none
}

// IsGen reports whether t is a scalar or vector.
func IsGen(t Type) bool {
	_, ok := t.(GenType)
	return ok
}

// IsOpaque reports whether t is a sampler or array. Opaque values cannot be
// copied into local variables.
func IsOpaque(t Type) bool {
	switch t.(type) {
	case SamplerType, ArrayType:
		return true
	}
	return false
}

// Arity returns the component count of a generic type.
func Arity(t Type) (uint8, bool) {
	g, ok := t.(GenType)
	if !ok {
		return 0, false
	}
	return g.Arity, true
}

// TypeString renders t, treating nil as None.
func TypeString(t Type) string {
	if t == nil {
		return None.String()
	}
	return t.String()
}
