// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import "github.com/gogpu/shadergraph/ir"

// Context is the code generator as seen by a node kind.
type Context interface {
	// Stage returns the stage being generated.
	Stage() ir.ShaderStage
	// Declare adds a global declaration such as a uniform. Repeated
	// declarations are emitted once.
	Declare(decl string)
	// Emit appends a statement to the body of main.
	Emit(stmt string)
}

// Kind is the node-specific evaluation rule. Evaluate runs after overload
// resolution with resolved input values in st and sets output values.
type Kind interface {
	Evaluate(ctx Context, st *State)
}

// Defaulter supplies the inline numeric fallback for an unconnected input.
type Defaulter interface {
	Default(input int) (float32, bool)
}

// Persistent kinds carry instance fields that are saved with the graph.
type Persistent interface {
	Save(r Record)
	Load(r Record) error
}

// Root kinds are evaluated by the stage they belong to.
type Root interface {
	Stage() ir.ShaderStage
}

// KindFunc adapts a function to Kind.
type KindFunc func(ctx Context, st *State)

// Evaluate calls f.
func (f KindFunc) Evaluate(ctx Context, st *State) {
	f(ctx, st)
}
