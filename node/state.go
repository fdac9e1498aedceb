// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"fmt"

	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
)

// InputSlot is the per-pass state of an input pin.
type InputSlot struct {
	Name string
	// Declared is the archetype type; Type is the resolved type.
	Declared    ir.Type
	Type        ir.Type
	Value       ir.Value
	Link        graph.LinkID
	RequireLink bool
	Error       string
}

// Linked reports whether a link feeds the pin.
func (s *InputSlot) Linked() bool {
	return s.Link != 0
}

// OutputSlot is the per-pass state of an output pin.
type OutputSlot struct {
	Name     string
	Declared ir.Type
	Type     ir.Type
	Value    ir.Value
	FanOut   int
	Hoist    bool
}

// State is the transient result of evaluating one node in one pass.
type State struct {
	Node    graph.NodeID
	Inputs  []InputSlot
	Outputs []OutputSlot
	// Overload is the selected candidate, or -1.
	Overload  int
	Evaluated bool
}

// In returns the resolved value of input i.
func (s *State) In(i int) ir.Value {
	return s.Inputs[i].Value
}

// Set stores v on output i. A valid value also fixes the output type, which
// matters for outputs declared as ir.None.
func (s *State) Set(i int, v ir.Value) {
	s.Outputs[i].Value = v
	if v.Valid() {
		s.Outputs[i].Type = v.Type
	}
}

// SetCode stores code on output i using the output's resolved type.
func (s *State) SetCode(i int, code string) {
	s.Outputs[i].Value = ir.Value{Type: s.Outputs[i].Type, Code: code}
}

// Fail records msg on input i.
func (s *State) Fail(i int, format string, args ...any) {
	s.Inputs[i].Error = fmt.Sprintf(format, args...)
}

// Errors returns the errors recorded on input slots, in pin order.
func (s *State) Errors() []error {
	var errs []error
	for i := range s.Inputs {
		if s.Inputs[i].Error != "" {
			errs = append(errs, &SlotError{
				Pin:  graph.MakeInput(s.Node, i),
				Name: s.Inputs[i].Name,
				Msg:  s.Inputs[i].Error,
			})
		}
	}
	return errs
}

// SlotError is an error recorded on an input pin during evaluation.
type SlotError struct {
	Pin  graph.PinID
	Name string
	Msg  string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("node %d input %q: %s", e.Pin.Node(), e.Name, e.Msg)
}
