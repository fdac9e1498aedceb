// Package ir defines the value types shared by shader graph nodes.
//
// # Types
//
// A Type is a closed sum:
//   - NoneType: absent or untyped; a generic slot in an overload
//   - GenType: float scalar (arity 1) or vector (arity 2..4)
//   - MatrixType: float matrix
//   - SamplerType: 2D texture sampler
//   - ArrayType: unsized float array
//
// # Values
//
// A Value pairs a Type with the target-language expression producing it.
// The only implicit conversion is scalar broadcast:
//
//	float x  →  vec3(x, x, x)
//
// Everything else must match exactly.
package ir
