// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"github.com/gogpu/shadergraph/ir"
)

// Error messages recorded on input slots.
const (
	msgNoOverload = "no compatible overload found"
	msgConvert    = "cannot convert from %s to %s"
)

// Resolve assigns types and converted values to every slot of s. Input
// values must already hold whatever their links produced; an invalid value
// counts as unconnected.
//
// With no overloads each connected input converts to its declared type on
// its own. Otherwise the first overload that accepts every connected input
// wins. Resolve reports false when no overload matched, in which case the
// first input carries the error and the node must not produce outputs.
func (s *State) Resolve(a *Archetype, k Kind) bool {
	if len(a.Overloads) == 0 {
		s.resolveDeclared(k)
		return true
	}

	for ci := range a.Overloads {
		cand := &a.Overloads[ci]
		arity := s.inferArity(cand)
		if s.accepts(cand, arity) {
			s.apply(ci, cand, arity, k)
			return true
		}
	}

	s.Overload = -1
	if len(s.Inputs) > 0 {
		s.Inputs[0].Error = msgNoOverload
	}
	for i := range s.Inputs {
		s.Inputs[i].Value = ir.Null
	}
	return false
}

func (s *State) resolveDeclared(k Kind) {
	for i := range s.Inputs {
		in := &s.Inputs[i]
		if !in.Value.Valid() {
			in.Type = in.Declared
			in.Value = defaultValue(k, i, in)
			continue
		}
		if !ir.Valid(in.Declared) {
			in.Type = in.Value.Type
			continue
		}
		if !ir.CanConvert(in.Value.Type, in.Declared) {
			s.Fail(i, msgConvert, in.Value.Type, in.Declared)
			in.Type = ir.None
			in.Value = ir.Null
			continue
		}
		in.Type = in.Declared
		in.Value = ir.Convert(in.Value, in.Declared)
	}
	for i := range s.Outputs {
		s.Outputs[i].Type = s.Outputs[i].Declared
	}
}

// inferArity returns the arity shared by the generic slots of cand: that of
// the first connected generic input holding a scalar or vector, else 1.
func (s *State) inferArity(cand *Overload) uint8 {
	for i, slot := range cand.Inputs {
		if ir.Valid(slot) || !s.Inputs[i].Value.Valid() {
			continue
		}
		if n, ok := ir.Arity(s.Inputs[i].Value.Type); ok {
			return n
		}
	}
	return 1
}

func substitute(slot ir.Type, arity uint8) ir.Type {
	if ir.Valid(slot) {
		return slot
	}
	return ir.Vec(arity)
}

// accepts reports whether every connected input converts to its slot. A
// generic input whose arity differs from the inferred one and is not a
// broadcastable scalar rejects the candidate.
func (s *State) accepts(cand *Overload, arity uint8) bool {
	for i, slot := range cand.Inputs {
		v := s.Inputs[i].Value
		if !v.Valid() {
			continue
		}
		if !ir.CanConvert(v.Type, substitute(slot, arity)) {
			return false
		}
	}
	return true
}

func (s *State) apply(ci int, cand *Overload, arity uint8, k Kind) {
	s.Overload = ci
	for i, slot := range cand.Inputs {
		in := &s.Inputs[i]
		in.Type = substitute(slot, arity)
		if in.Value.Valid() {
			in.Value = ir.Convert(in.Value, in.Type)
		} else {
			in.Value = defaultValue(k, i, in)
		}
	}
	for i, slot := range cand.Outputs {
		s.Outputs[i].Type = substitute(slot, arity)
	}
}

// defaultValue synthesises the value of an unconnected input: the kind's
// inline fallback, or zero, broadcast to the resolved type. Inputs that
// require a link, and non-generic types, stay null.
func defaultValue(k Kind, i int, in *InputSlot) ir.Value {
	if in.RequireLink || !ir.IsGen(in.Type) {
		return ir.Null
	}
	var f float32
	if d, ok := k.(Defaulter); ok {
		if v, ok := d.Default(i); ok {
			f = v
		}
	}
	return ir.Splat(f, in.Type)
}
