// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL (OpenGL Shading Language) source from a shader
// graph.
//
// Generation is demand driven. A Generator starts from the output nodes of
// its stage and pulls values through the graph's links, evaluating each node
// at most once per pass:
//
//   - GLSL 1.10 / 1.20: Desktop OpenGL 2.x (default 1.20)
//   - GLSL 1.30: Desktop OpenGL 3.0
//   - GLSL ES 1.00: WebGL 1.0, OpenGL ES 2.0
//
// # Basic Usage
//
//	source, info, err := glsl.Compile(g, registry, ir.StageFragment, glsl.Options{
//	    Version: glsl.Version120,
//	})
//
// # Variables
//
// A value is stored in a variable (var0, var1, ...) when more than one input
// consumes it, when its node asks for it, or when its expression is at least
// Options.HoistThreshold characters long. Shorter values are inlined.
//
// # Reserved Words
//
// User supplied names pass through Identifier, which prefixes reserved words,
// built-in names and names of the form varN with an underscore.
package glsl
