// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
)

// Position is the editor location of a node.
type Position struct {
	X float32 `json:"x" yaml:"x" msgpack:"x"`
	Y float32 `json:"y" yaml:"y" msgpack:"y"`
}

// Expression is one node instance in a graph.
type Expression struct {
	Position Position

	id     graph.NodeID
	handle Handle
	kind   Kind
	nin    int
	nout   int
	state  *State
}

// ID implements graph.Node.
func (e *Expression) ID() graph.NodeID { return e.id }

// SetID implements graph.Node.
func (e *Expression) SetID(id graph.NodeID) { e.id = id }

// NumInputs implements graph.PinCounter.
func (e *Expression) NumInputs() int { return e.nin }

// NumOutputs implements graph.PinCounter.
func (e *Expression) NumOutputs() int { return e.nout }

// Handle returns the archetype handle.
func (e *Expression) Handle() Handle { return e.handle }

// Kind returns the node-specific rule and instance fields.
func (e *Expression) Kind() Kind { return e.kind }

// In returns the index'th input pin.
func (e *Expression) In(index int) graph.PinID {
	return graph.MakeInput(e.id, index)
}

// Out returns the index'th output pin.
func (e *Expression) Out(index int) graph.PinID {
	return graph.MakeOutput(e.id, index)
}

// State returns the state published by the last generation pass, or nil.
func (e *Expression) State() *State { return e.state }

// Publish stores st as the node's last evaluation state.
func (e *Expression) Publish(st *State) { e.state = st }

// NewState builds a fresh evaluation state from the archetype and the
// current links of g.
func (e *Expression) NewState(a *Archetype, g *graph.Graph) *State {
	st := &State{
		Node:     e.id,
		Inputs:   make([]InputSlot, len(a.Inputs)),
		Outputs:  make([]OutputSlot, len(a.Outputs)),
		Overload: -1,
	}
	for i, in := range a.Inputs {
		slot := &st.Inputs[i]
		slot.Name = in.Name
		slot.Declared = in.Type
		slot.Type = in.Type
		slot.Value = ir.Null
		slot.RequireLink = in.RequireLink
		if l, ok := g.FindLink(e.In(i)); ok {
			slot.Link = l
		}
	}
	for i, out := range a.Outputs {
		slot := &st.Outputs[i]
		slot.Name = out.Name
		slot.Declared = out.Type
		slot.Type = out.Type
		slot.Value = ir.Null
		slot.Hoist = out.Hoist
		slot.FanOut = g.FanOut(e.Out(i))
	}
	return st
}
