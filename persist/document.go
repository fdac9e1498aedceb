// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package persist saves and loads shader graphs.
//
// A graph is stored as a Document: a versioned list of nodes, each naming
// its archetype and carrying its instance fields, and a list of links
// between pins. Documents are encoded as YAML, JSON or MessagePack; the
// format follows the file extension.
package persist

import (
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/node"
)

// CurrentVersion is the document version written by Encode.
const CurrentVersion = 1

// Errors returned while decoding.
var (
	ErrVersion     = errors.New("unsupported document version")
	ErrDocumentID  = errors.New("invalid document id")
	ErrDroppedLink = errors.New("link dropped")
)

// Document is the serialised form of a graph.
type Document struct {
	Version int       `json:"version" yaml:"version" msgpack:"version"`
	ID      string    `json:"id" yaml:"id" msgpack:"id"`
	Nodes   []NodeDoc `json:"nodes" yaml:"nodes" msgpack:"nodes"`
	Links   []LinkDoc `json:"links" yaml:"links" msgpack:"links"`
}

// NodeDoc is one node of a Document.
type NodeDoc struct {
	ID       uint32        `json:"id" yaml:"id" msgpack:"id"`
	Type     string        `json:"type" yaml:"type" msgpack:"type"`
	Position node.Position `json:"position" yaml:"position" msgpack:"position"`
	Fields   node.Record   `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
}

// Pin addresses a pin by node and index. Direction is implied by the side
// of the link it appears on.
type Pin struct {
	Node  uint32 `json:"node" yaml:"node" msgpack:"node"`
	Index int    `json:"index" yaml:"index" msgpack:"index"`
}

// LinkDoc connects an output pin to an input pin.
type LinkDoc struct {
	From Pin `json:"from" yaml:"from" msgpack:"from"`
	To   Pin `json:"to" yaml:"to" msgpack:"to"`
}

// Encode captures g as a document. A nil id gets a fresh random one.
// Every node of g must be a *node.Expression.
func Encode(g *graph.Graph, reg *node.Registry, id uuid.UUID) (*Document, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	doc := &Document{
		Version: CurrentVersion,
		ID:      id.String(),
		Nodes:   make([]NodeDoc, 0, g.Len()),
	}
	for _, n := range g.Nodes() {
		e, ok := n.(*node.Expression)
		if !ok {
			return nil, errors.Errorf("node %d: unsupported node type %T", n.ID(), n)
		}
		a := reg.Archetype(e.Handle())
		if a == nil {
			return nil, errors.Errorf("node %d: handle %d not in registry", e.ID(), e.Handle())
		}
		nd := NodeDoc{
			ID:       uint32(e.ID()),
			Type:     a.ID,
			Position: e.Position,
		}
		if p, ok := e.Kind().(node.Persistent); ok {
			rec := node.Record{}
			p.Save(rec)
			if len(rec) > 0 {
				nd.Fields = rec
			}
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	for _, l := range g.Links() {
		from, to := l.From(), l.To()
		doc.Links = append(doc.Links, LinkDoc{
			From: Pin{Node: uint32(from.Node()), Index: from.Index()},
			To:   Pin{Node: uint32(to.Node()), Index: to.Index()},
		})
	}
	return doc, nil
}

// Decode rebuilds a graph from doc. Node ids are kept, so later additions
// continue after the largest loaded id.
//
// An unknown archetype or unreadable node fields fail the whole decode.
// Illegal links are skipped: the graph is still returned, together with an
// error listing each dropped link.
func Decode(doc *Document, reg *node.Registry, log hclog.Logger) (*graph.Graph, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if doc.Version < 1 || doc.Version > CurrentVersion {
		return nil, errors.Wrapf(ErrVersion, "version %d", doc.Version)
	}
	if _, err := uuid.Parse(doc.ID); err != nil {
		return nil, errors.Wrapf(ErrDocumentID, "%q: %v", doc.ID, err)
	}

	// Restore in id order so graph order matches creation order.
	nodes := make([]NodeDoc, len(doc.Nodes))
	copy(nodes, doc.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	g := graph.New()
	for _, nd := range nodes {
		if nd.ID > uint32(graph.MaxNodeID) {
			return nil, errors.Wrapf(graph.ErrInvalidNodeID, "node %d", nd.ID)
		}
		e, err := reg.New(nd.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", nd.ID)
		}
		e.SetID(graph.NodeID(nd.ID))
		e.Position = nd.Position
		if p, ok := e.Kind().(node.Persistent); ok && nd.Fields != nil {
			if err := p.Load(nd.Fields); err != nil {
				return nil, errors.Wrapf(err, "node %d (%s)", nd.ID, nd.Type)
			}
		}
		if err := g.Restore(e); err != nil {
			return nil, err
		}
	}

	var dropped *multierror.Error
	for _, ld := range doc.Links {
		if err := addLink(g, ld); err != nil {
			log.Warn("dropping link", "from", ld.From, "to", ld.To, "error", err)
			dropped = multierror.Append(dropped, errors.Wrapf(ErrDroppedLink, "%d[%d] -> %d[%d]: %v",
				ld.From.Node, ld.From.Index, ld.To.Node, ld.To.Index, err))
		}
	}
	log.Debug("decoded graph", "id", doc.ID, "nodes", g.Len(), "links", len(g.Links()))
	return g, dropped.ErrorOrNil()
}

func addLink(g *graph.Graph, ld LinkDoc) error {
	for _, p := range [2]Pin{ld.From, ld.To} {
		if p.Index < 0 || p.Index > graph.MaxPinIndex {
			return errors.Wrapf(graph.ErrPinRange, "index %d", p.Index)
		}
		if p.Node > uint32(graph.MaxNodeID) {
			return errors.Wrapf(graph.ErrInvalidNodeID, "node %d", p.Node)
		}
	}
	from := graph.MakeOutput(graph.NodeID(ld.From.Node), ld.From.Index)
	to := graph.MakeInput(graph.NodeID(ld.To.Node), ld.To.Index)
	if old, ok := g.FindLink(to); ok {
		return errors.Wrapf(graph.ErrDuplicateLink, "input %s already linked by %s", to, old)
	}
	_, err := g.AddLink(from, to)
	return err
}
