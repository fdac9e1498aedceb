// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package node defines node archetypes, the registry that owns them, and the
// per-pass evaluation state of an instantiated node.
package node

import (
	"github.com/gogpu/shadergraph/ir"
)

// Input declares an input pin.
type Input struct {
	Name string
	// Type is the declared type. ir.None accepts any type.
	Type ir.Type
	// RequireLink disables default synthesis when the pin is unconnected.
	RequireLink bool
	// Inline marks pins whose unconnected value is edited in place. The
	// kind reports that value through Defaulter.
	Inline bool
}

// Output declares an output pin.
type Output struct {
	Name string
	Type ir.Type
	// Hoist forces the value into a variable even when it is short and
	// consumed once.
	Hoist bool
}

// Overload is one candidate signature. An ir.None slot is generic.
type Overload struct {
	Inputs  []ir.Type
	Outputs []ir.Type
}

// Sig is shorthand for building an Overload.
func Sig(inputs []ir.Type, outputs ...ir.Type) Overload {
	return Overload{Inputs: inputs, Outputs: outputs}
}

// Factory creates the kind-specific part of a new node.
type Factory func() Kind

// Archetype is the static description shared by every node of one kind.
type Archetype struct {
	Category  string
	ID        string
	Title     string
	Inputs    []Input
	Outputs   []Output
	Overloads []Overload
	// Hidden archetypes are not offered by Filter.
	Hidden bool

	factory Factory
}

// NumInputs returns the number of declared input pins.
func (a *Archetype) NumInputs() int { return len(a.Inputs) }

// NumOutputs returns the number of declared output pins.
func (a *Archetype) NumOutputs() int { return len(a.Outputs) }

// Input returns the index of the named input, or -1.
func (a *Archetype) Input(name string) int {
	for i, in := range a.Inputs {
		if in.Name == name {
			return i
		}
	}
	return -1
}

// Output returns the index of the named output, or -1.
func (a *Archetype) Output(name string) int {
	for i, out := range a.Outputs {
		if out.Name == name {
			return i
		}
	}
	return -1
}
