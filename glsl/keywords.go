// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strings"
	"unicode"
)

// glslKeywords contains the GLSL 1.20 / ES 1.00 reserved words, the words
// later versions reserve, and the built-in functions and types a generated
// identifier must not shadow.
var glslKeywords = map[string]struct{}{
	// Keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {}, "centroid": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {},
	"if": {}, "else": {}, "in": {}, "out": {}, "inout": {},
	"true": {}, "false": {}, "invariant": {}, "discard": {}, "return": {},
	"struct": {}, "precision": {}, "highp": {}, "mediump": {}, "lowp": {},

	// Types
	"void": {}, "bool": {}, "int": {}, "float": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},
	"sampler1D": {}, "sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler1DShadow": {}, "sampler2DShadow": {},

	// Reserved for future use
	"asm": {}, "class": {}, "union": {}, "enum": {}, "typedef": {}, "template": {},
	"this": {}, "packed": {}, "goto": {}, "switch": {}, "default": {},
	"inline": {}, "noinline": {}, "volatile": {}, "public": {}, "static": {},
	"extern": {}, "external": {}, "interface": {}, "long": {}, "short": {},
	"double": {}, "half": {}, "fixed": {}, "unsigned": {}, "input": {}, "output": {},
	"hvec2": {}, "hvec3": {}, "hvec4": {}, "dvec2": {}, "dvec3": {}, "dvec4": {},
	"fvec2": {}, "fvec3": {}, "fvec4": {}, "sampler2DRect": {}, "sampler3DRect": {},
	"sampler2DRectShadow": {}, "sizeof": {}, "cast": {}, "namespace": {}, "using": {},
	"case": {}, "flat": {}, "smooth": {}, "layout": {}, "uint": {}, "lowp_float": {},

	// Built-in functions
	"radians": {}, "degrees": {}, "sin": {}, "cos": {}, "tan": {},
	"asin": {}, "acos": {}, "atan": {}, "pow": {}, "exp": {}, "log": {},
	"exp2": {}, "log2": {}, "sqrt": {}, "inversesqrt": {},
	"abs": {}, "sign": {}, "floor": {}, "ceil": {}, "fract": {}, "mod": {},
	"min": {}, "max": {}, "clamp": {}, "mix": {}, "step": {}, "smoothstep": {},
	"length": {}, "distance": {}, "dot": {}, "cross": {}, "normalize": {},
	"ftransform": {}, "faceforward": {}, "reflect": {}, "refract": {},
	"matrixCompMult": {}, "outerProduct": {}, "transpose": {},
	"lessThan": {}, "lessThanEqual": {}, "greaterThan": {}, "greaterThanEqual": {},
	"equal": {}, "notEqual": {}, "any": {}, "all": {}, "not": {},
	"texture1D": {}, "texture2D": {}, "texture3D": {}, "textureCube": {},
	"texture1DProj": {}, "texture2DProj": {}, "texture3DProj": {},
	"texture1DLod": {}, "texture2DLod": {}, "texture3DLod": {}, "textureCubeLod": {},
	"shadow1D": {}, "shadow2D": {}, "shadow1DProj": {}, "shadow2DProj": {},
	"dFdx": {}, "dFdy": {}, "fwidth": {}, "noise1": {}, "noise2": {}, "noise3": {}, "noise4": {},

	// Reserved by later versions
	"texture": {}, "sample": {}, "patch": {}, "subroutine": {}, "buffer": {},
	"shared": {}, "coherent": {}, "restrict": {}, "readonly": {}, "writeonly": {},

	// Entry point
	"main": {},
}

// isKeyword checks if a name is a GLSL keyword or reserved word.
func isKeyword(name string) bool {
	_, ok := glslKeywords[name]
	return ok
}

// escapeKeyword escapes a name if it conflicts with GLSL keywords.
// Returns the name with underscore prefix if it's reserved.
func escapeKeyword(name string) string {
	if name == "" {
		return "_unnamed"
	}
	if isKeyword(name) || strings.HasPrefix(name, "gl_") || isGeneratedVar(name) {
		return "_" + name
	}
	return name
}

// isGeneratedVar reports whether name has the shape of a hoisted variable
// (var0, var1, ...).
func isGeneratedVar(name string) bool {
	digits, ok := strings.CutPrefix(name, "var")
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Identifier turns a user supplied name into a valid GLSL identifier that
// cannot collide with reserved words, built-ins or generated variables.
// Characters outside [A-Za-z0-9_] become underscores, a leading digit gets
// an underscore prefix and runs of underscores, which GLSL reserves, are
// collapsed.
func Identifier(name string) string {
	var sb strings.Builder
	prevUnderscore := false
	for _, r := range name {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			r = '_'
		}
		if r == '_' {
			if prevUnderscore {
				continue
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		sb.WriteRune(r)
	}

	id := sb.String()
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	if id == "_" {
		id = ""
	}
	return escapeKeyword(id)
}
