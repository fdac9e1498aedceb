// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"math"
	"strconv"
	"strings"
)

// Value is a typed expression in the target language.
type Value struct {
	Type Type
	Code string
}

// Null is the empty value.
var Null = Value{Type: None}

// Valid reports whether the value carries a type.
func (v Value) Valid() bool {
	return Valid(v.Type)
}

// String returns the expression text.
func (v Value) String() string {
	return v.Code
}

// CanConvert reports whether a value of type from can be used where to is
// expected. Identical types always convert; a scalar broadcasts to any
// vector. Nothing else converts.
func CanConvert(from, to Type) bool {
	if from == to {
		return true
	}
	src, ok := from.(GenType)
	if !ok || src.Arity != 1 {
		return false
	}
	dst, ok := to.(GenType)
	return ok && dst.Arity > 1 && dst.Arity <= 4
}

// Convert converts v to type to. It returns Null when no conversion exists.
func Convert(v Value, to Type) Value {
	if !v.Valid() || !CanConvert(v.Type, to) {
		return Null
	}
	if v.Type == to {
		return v
	}

	// Broadcast: vecN(x, x, ...)
	n := int(to.(GenType).Arity)
	var sb strings.Builder
	sb.WriteString(to.String())
	sb.WriteByte('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Code)
	}
	sb.WriteByte(')')
	return Value{Type: to, Code: sb.String()}
}

// FormatFloat renders f as a float literal. The result always contains a
// decimal point so GLSL 1.20 never reads it as an int.
func FormatFloat(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return "(0.0 / 0.0)"
	case math.IsInf(float64(f), 1):
		return "(1.0 / 0.0)"
	case math.IsInf(float64(f), -1):
		return "(-1.0 / 0.0)"
	}

	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Literal returns a scalar literal value.
func Literal(f float32) Value {
	return Value{Type: Scalar, Code: FormatFloat(f)}
}

// Splat returns the literal f converted to t. Non-generic types give Null.
func Splat(f float32, t Type) Value {
	return Convert(Literal(f), t)
}

// Compose builds a constructor call such as vec3(a, b, c).
func Compose(t Type, args ...Value) Value {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Code
	}
	return Value{Type: t, Code: t.String() + "(" + strings.Join(parts, ", ") + ")"}
}
