// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import "fmt"

// NodeID identifies a node. Zero is never allocated.
type NodeID uint32

// Node ids share a PinID with the pin index and direction, leaving 24 bits.
const (
	MaxNodeID   NodeID = 1<<24 - 1
	MaxPinIndex        = 126
)

// IsValid reports whether id is a usable node id.
func (id NodeID) IsValid() bool {
	return id != 0 && id <= MaxNodeID
}

// Direction is the data flow direction of a pin.
type Direction uint8

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

const (
	pinNodeMask  = 1<<24 - 1
	pinIndexMask = 0x7f
	pinDirBit    = 31
)

// PinID packs a node id, pin index and direction into 32 bits:
//
//	bits 0..23   node id
//	bits 24..30  index + 1
//	bit  31      direction
//
// The zero PinID is invalid.
type PinID uint32

// MakePin packs a pin. The index must be in [0, MaxPinIndex].
func MakePin(node NodeID, index int, dir Direction) PinID {
	return PinID(uint32(node)&pinNodeMask | uint32(index+1)<<24 | uint32(dir)<<pinDirBit)
}

// MakeInput returns the index'th input pin of node.
func MakeInput(node NodeID, index int) PinID {
	return MakePin(node, index, Input)
}

// MakeOutput returns the index'th output pin of node.
func MakeOutput(node NodeID, index int) PinID {
	return MakePin(node, index, Output)
}

// Node returns the owning node.
func (p PinID) Node() NodeID {
	return NodeID(uint32(p) & pinNodeMask)
}

// Index returns the pin index within its side of the node.
func (p PinID) Index() int {
	return int(uint32(p)>>24&pinIndexMask) - 1
}

// Direction returns the pin direction.
func (p PinID) Direction() Direction {
	return Direction(uint32(p) >> pinDirBit)
}

// IsInput reports whether p is an input pin.
func (p PinID) IsInput() bool {
	return p.Direction() == Input
}

// IsValid reports whether p refers to a real pin.
func (p PinID) IsValid() bool {
	return p.Node() != 0 && uint32(p)>>24&pinIndexMask != 0
}

// String formats the pin as (node[index]<) for inputs and (node[index]>)
// for outputs.
func (p PinID) String() string {
	arrow := '<'
	if p.Direction() == Output {
		arrow = '>'
	}
	return fmt.Sprintf("(%d[%d]%c)", p.Node(), p.Index(), arrow)
}

// LinkID identifies a link: output pin in the low 32 bits, input pin in the
// high 32 bits. Sorting LinkIDs groups links by their input pin.
type LinkID uint64

// NewLinkID builds a link from two pins in either order.
func NewLinkID(a, b PinID) LinkID {
	if a.Direction() == Input {
		a, b = b, a
	}
	return LinkID(uint64(b)<<32 | uint64(a))
}

// From returns the output pin.
func (l LinkID) From() PinID {
	return PinID(uint32(l))
}

// To returns the input pin.
func (l LinkID) To() PinID {
	return PinID(uint32(l >> 32))
}

// IsValid reports whether both ends are valid pins of opposite direction.
func (l LinkID) IsValid() bool {
	from, to := l.From(), l.To()
	return from.IsValid() && to.IsValid() &&
		from.Direction() == Output && to.Direction() == Input
}

func (l LinkID) String() string {
	return l.From().String() + "-" + l.To().String()
}
