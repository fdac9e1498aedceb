// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package graph stores shader graph nodes and the links between their pins.
//
// Links are kept in a sorted set keyed by LinkID. Because the input pin
// occupies the high half of a LinkID, the link feeding a given input is found
// by binary search.
package graph

import (
	"slices"

	"github.com/pkg/errors"
)

// Node is anything that can be stored in a Graph.
type Node interface {
	ID() NodeID
	SetID(NodeID)
}

// PinCounter is implemented by nodes that know their pin counts. Links to
// pins outside those counts are rejected.
type PinCounter interface {
	NumInputs() int
	NumOutputs() int
}

// Graph is an insertion-ordered set of nodes and a sorted set of links.
// It is not safe for concurrent mutation.
type Graph struct {
	nodes []Node
	index map[NodeID]int
	links []LinkID
	pool  idPool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[NodeID]int)}
}

// AddNode assigns n a fresh id and appends it to the graph.
func (g *Graph) AddNode(n Node) NodeID {
	id := g.pool.take()
	n.SetID(id)
	g.insert(n)
	return id
}

// Restore adds n under its existing id. The id pool is moved past the id so
// later AddNode calls never collide with it.
func (g *Graph) Restore(n Node) error {
	id := n.ID()
	if !id.IsValid() {
		return errors.Wrapf(ErrInvalidNodeID, "restore node %d", id)
	}
	if _, ok := g.index[id]; ok {
		return errors.Wrapf(ErrDuplicateNode, "restore node %d", id)
	}
	g.insert(n)
	if id > g.pool.next {
		g.pool.reset(id + 1)
	}
	return nil
}

func (g *Graph) insert(n Node) {
	if g.index == nil {
		g.index = make(map[NodeID]int)
	}
	g.index[n.ID()] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

// RemoveNode removes a node and every link touching it.
func (g *Graph) RemoveNode(id NodeID) bool {
	i, ok := g.index[id]
	if !ok {
		return false
	}

	g.links = slices.DeleteFunc(g.links, func(l LinkID) bool {
		return l.From().Node() == id || l.To().Node() == id
	})

	g.nodes = slices.Delete(g.nodes, i, i+1)
	delete(g.index, id)
	for j := i; j < len(g.nodes); j++ {
		g.index[g.nodes[j].ID()] = j
	}
	g.pool.release(id)
	return true
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node {
	return slices.Clone(g.nodes)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// CanAddLink checks whether a link between a and b is legal. It does not
// report the replacement of an existing link on the input; that is allowed.
func (g *Graph) CanAddLink(a, b PinID) error {
	if a == b {
		return errors.Wrapf(ErrSelfLink, "link %s", a)
	}
	if a.Direction() == b.Direction() {
		return errors.Wrapf(ErrSameDirection, "link %s %s", a, b)
	}
	if a.Node() == b.Node() {
		return errors.Wrapf(ErrSameNode, "link %s %s", a, b)
	}
	for _, p := range [2]PinID{a, b} {
		if err := g.checkPin(p); err != nil {
			return err
		}
	}
	if g.HasLink(NewLinkID(a, b)) {
		return errors.Wrapf(ErrDuplicateLink, "link %s", NewLinkID(a, b))
	}
	return nil
}

func (g *Graph) checkPin(p PinID) error {
	if !p.IsValid() {
		return errors.Wrapf(ErrPinRange, "pin %s", p)
	}
	n, ok := g.Node(p.Node())
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "pin %s", p)
	}
	pc, ok := n.(PinCounter)
	if !ok {
		return nil
	}
	limit := pc.NumInputs()
	if p.Direction() == Output {
		limit = pc.NumOutputs()
	}
	if p.Index() >= limit {
		return errors.Wrapf(ErrPinRange, "pin %s (node has %d)", p, limit)
	}
	return nil
}

// AddLink links a and b, given in either order. An existing link into the
// same input is replaced.
func (g *Graph) AddLink(a, b PinID) (LinkID, error) {
	if err := g.CanAddLink(a, b); err != nil {
		return 0, err
	}
	id := NewLinkID(a, b)
	if old, ok := g.FindLink(id.To()); ok {
		g.RemoveLink(old)
	}
	i, _ := slices.BinarySearch(g.links, id)
	g.links = slices.Insert(g.links, i, id)
	return id, nil
}

// RemoveLink removes l. It reports whether the link existed.
func (g *Graph) RemoveLink(l LinkID) bool {
	i, ok := slices.BinarySearch(g.links, l)
	if !ok {
		return false
	}
	g.links = slices.Delete(g.links, i, i+1)
	return true
}

// RemoveLinks removes every link attached to pin and returns how many were
// removed.
func (g *Graph) RemoveLinks(pin PinID) int {
	before := len(g.links)
	g.links = slices.DeleteFunc(g.links, func(l LinkID) bool {
		return l.From() == pin || l.To() == pin
	})
	return before - len(g.links)
}

// HasLink reports whether l is in the graph.
func (g *Graph) HasLink(l LinkID) bool {
	_, ok := slices.BinarySearch(g.links, l)
	return ok
}

// FindLink returns the link feeding the input pin in.
func (g *Graph) FindLink(in PinID) (LinkID, bool) {
	if in.Direction() != Input {
		return 0, false
	}
	i, _ := slices.BinarySearch(g.links, LinkID(uint64(in)<<32))
	if i < len(g.links) && g.links[i].To() == in {
		return g.links[i], true
	}
	return 0, false
}

// LinksFrom returns the links leaving the output pin out, in link order.
func (g *Graph) LinksFrom(out PinID) []LinkID {
	var res []LinkID
	for _, l := range g.links {
		if l.From() == out {
			res = append(res, l)
		}
	}
	return res
}

// FanOut returns the number of links leaving out.
func (g *Graph) FanOut(out PinID) int {
	n := 0
	for _, l := range g.links {
		if l.From() == out {
			n++
		}
	}
	return n
}

// LinksOf returns every link touching node id.
func (g *Graph) LinksOf(id NodeID) []LinkID {
	var res []LinkID
	for _, l := range g.links {
		if l.From().Node() == id || l.To().Node() == id {
			res = append(res, l)
		}
	}
	return res
}

// Links returns all links in canonical order.
func (g *Graph) Links() []LinkID {
	return slices.Clone(g.links)
}

// Clear removes all nodes and links and restarts id allocation.
func (g *Graph) Clear() {
	g.nodes = nil
	g.links = nil
	g.index = make(map[NodeID]int)
	g.pool.reset(1)
}
