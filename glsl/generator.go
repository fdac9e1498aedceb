// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

// Stats summarises one generation pass.
type Stats struct {
	// Nodes is the number of nodes evaluated.
	Nodes int
	// Hoisted is the number of variables declared.
	Hoisted int
	// Statements is the number of statements in main.
	Statements int
	// Declarations is the number of distinct global declarations.
	Declarations int
}

// Observer receives evaluation events. Implementations used with CompileAll
// must be safe for concurrent use.
type Observer interface {
	NodeEvaluated(stage ir.ShaderStage, id graph.NodeID, archetype string)
	PassFinished(stage ir.ShaderStage, stats Stats)
}

// CycleError is the panic value raised when evaluation re-enters a node.
type CycleError struct {
	Node graph.NodeID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle through node %d", e.Node)
}

// Generator produces the source of one stage from a graph. All pass state
// lives on the generator, so generators for different stages may run
// concurrently over the same graph as long as nothing mutates it.
type Generator struct {
	graph   *graph.Graph
	reg     *node.Registry
	stage   ir.ShaderStage
	options Options
	log     hclog.Logger

	nodes  map[graph.NodeID]*node.Expression
	states map[graph.NodeID]*node.State
	active map[graph.NodeID]bool

	memo     map[graph.PinID]ir.Value
	decls    []string
	declared map[string]struct{}
	body     []string
	nextVar  int
	stats    Stats
}

var _ node.Context = (*Generator)(nil)

// NewGenerator prepares a pass over g. Every node gets a fresh state built
// from the current links before anything is evaluated, so fan-out counts are
// never stale.
func NewGenerator(g *graph.Graph, reg *node.Registry, stage ir.ShaderStage, options Options) *Generator {
	options = options.withDefaults()

	gen := &Generator{
		graph:    g,
		reg:      reg,
		stage:    stage,
		options:  options,
		log:      options.Logger.Named(stage.String()),
		nodes:    make(map[graph.NodeID]*node.Expression),
		states:   make(map[graph.NodeID]*node.State),
		active:   make(map[graph.NodeID]bool),
		memo:     make(map[graph.PinID]ir.Value),
		declared: make(map[string]struct{}),
	}

	for _, n := range g.Nodes() {
		e, ok := n.(*node.Expression)
		if !ok {
			continue
		}
		gen.nodes[e.ID()] = e
		gen.states[e.ID()] = e.NewState(reg.Archetype(e.Handle()), g)
	}
	return gen
}

// Stage implements node.Context.
func (g *Generator) Stage() ir.ShaderStage {
	return g.stage
}

// Declare implements node.Context.
func (g *Generator) Declare(decl string) {
	if _, ok := g.declared[decl]; ok {
		return
	}
	g.declared[decl] = struct{}{}
	g.decls = append(g.decls, decl)
}

// Emit implements node.Context.
func (g *Generator) Emit(stmt string) {
	g.body = append(g.body, stmt)
}

// Evaluate returns the value available at pin. An input pin yields the value
// of the output feeding it, or ir.Null when unlinked. The producing node is
// evaluated on first use.
func (g *Generator) Evaluate(pin graph.PinID) ir.Value {
	if pin.IsInput() {
		l, ok := g.graph.FindLink(pin)
		if !ok {
			return ir.Null
		}
		pin = l.From()
	}

	if v, ok := g.memo[pin]; ok {
		return v
	}
	g.EvaluateNode(pin.Node())
	if v, ok := g.memo[pin]; ok {
		return v
	}
	return ir.Null
}

// EvaluateNode evaluates node id unless it already ran in this pass. It
// panics with a *CycleError if the node is reached again while still being
// evaluated.
func (g *Generator) EvaluateNode(id graph.NodeID) {
	st, ok := g.states[id]
	if !ok || st.Evaluated {
		return
	}
	if g.active[id] {
		panic(&CycleError{Node: id})
	}
	g.active[id] = true
	defer delete(g.active, id)

	e := g.nodes[id]
	a := g.reg.Archetype(e.Handle())

	for i := range st.Inputs {
		st.Inputs[i].Value = g.Evaluate(e.In(i))
	}
	if st.Resolve(a, e.Kind()) {
		e.Kind().Evaluate(g, st)
	}
	st.Evaluated = true
	g.stats.Nodes++

	g.log.Trace("evaluated node", "id", id, "archetype", a.ID, "overload", st.Overload)
	if g.options.Observer != nil {
		g.options.Observer.NodeEvaluated(g.stage, id, a.ID)
	}

	for i := range st.Outputs {
		g.bind(e.Out(i), &st.Outputs[i])
	}
}

// bind memoises an output. Values consumed more than once, flagged for
// hoisting, or at least HoistThreshold characters long become variables;
// the rest are inlined at each use. Samplers and arrays are always inlined.
func (g *Generator) bind(pin graph.PinID, out *node.OutputSlot) {
	if out.FanOut == 0 || !out.Value.Valid() {
		return
	}
	v := out.Value
	if ir.IsOpaque(v.Type) {
		g.memo[pin] = v
		return
	}
	if out.FanOut > 1 || out.Hoist || len(v.Code) >= g.options.HoistThreshold {
		name := fmt.Sprintf("var%d", g.nextVar)
		g.nextVar++
		g.Emit(fmt.Sprintf("%s %s = %s;", v.Type, name, v.Code))
		g.stats.Hoisted++
		g.log.Trace("hoisted output", "pin", pin, "var", name, "fanout", out.FanOut)
		g.memo[pin] = ir.Value{Type: v.Type, Code: name}
		return
	}
	g.memo[pin] = v
}

// Roots returns the nodes evaluated for this stage, in graph order.
func (g *Generator) Roots() []graph.NodeID {
	var roots []graph.NodeID
	for _, n := range g.graph.Nodes() {
		e, ok := g.nodes[n.ID()]
		if !ok {
			continue
		}
		if r, ok := e.Kind().(node.Root); ok && r.Stage() == g.stage {
			roots = append(roots, e.ID())
		}
	}
	return roots
}

// Run evaluates every root of the stage.
func (g *Generator) Run() {
	for _, id := range g.Roots() {
		g.EvaluateNode(id)
	}
	g.stats.Statements = len(g.body)
	g.stats.Declarations = len(g.decls)
	g.log.Debug("pass finished", "nodes", g.stats.Nodes, "statements", g.stats.Statements, "hoisted", g.stats.Hoisted)
	if g.options.Observer != nil {
		g.options.Observer.PassFinished(g.stage, g.stats)
	}
}

// Finalize assembles the stage source.
func (g *Generator) Finalize() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#version %s\n", g.options.Version)
	if g.options.Version.ES {
		sb.WriteString("precision mediump float;\n")
	}
	for _, d := range g.decls {
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	sb.WriteString("void main()\n{\n")
	for _, s := range g.body {
		sb.WriteByte('\t')
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Declarations returns the global declarations in first-use order.
func (g *Generator) Declarations() []string {
	return append([]string(nil), g.decls...)
}

// Body returns the statements of main in emission order.
func (g *Generator) Body() []string {
	return append([]string(nil), g.body...)
}

// State returns the pass state of node id.
func (g *Generator) State(id graph.NodeID) *node.State {
	return g.states[id]
}

// States returns the pass state of every node.
func (g *Generator) States() map[graph.NodeID]*node.State {
	return g.states
}

// Stats returns counters for the pass so far.
func (g *Generator) Stats() Stats {
	return g.stats
}

// Diagnostics collects the errors recorded on input slots of evaluated
// nodes, in graph order. It returns nil when there are none.
func (g *Generator) Diagnostics() error {
	var result *multierror.Error
	for _, n := range g.graph.Nodes() {
		st, ok := g.states[n.ID()]
		if !ok || !st.Evaluated {
			continue
		}
		result = multierror.Append(result, st.Errors()...)
	}
	return result.ErrorOrNil()
}

// Publish stores each node's pass state on the node.
func (g *Generator) Publish() {
	for id, st := range g.states {
		g.nodes[id].Publish(st)
	}
}
