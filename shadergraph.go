// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shadergraph generates GLSL shaders from node graphs.
//
// A graph is a set of nodes, each an instance of a registered archetype, and
// links from output pins to input pins. Code generation walks the graph
// backwards from the output nodes of a stage, resolves each node's overload
// from the types of its inputs and emits GLSL 1.20 by default.
//
// Example usage:
//
//	reg := shadergraph.NewRegistry()
//	g := shadergraph.NewGraph()
//	a, _ := reg.New("scalar")
//	out, _ := reg.New("out_fragment")
//	g.AddNode(a)
//	g.AddNode(out)
//	g.AddLink(a.Out(0), out.In(0))
//	prog, err := shadergraph.Compile(g, reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Fragment)
//
// Graphs are stored as YAML, JSON or MessagePack documents:
//
//	prog, err := shadergraph.CompileFile(afero.NewOsFs(), "water.yaml", shadergraph.DefaultOptions())
//
// For finer control use the glsl, persist and node packages directly.
package shadergraph

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
	"github.com/gogpu/shadergraph/nodes"
	"github.com/gogpu/shadergraph/persist"
)

// CompileOptions configures shader generation.
type CompileOptions struct {
	// Version is the GLSL version written in the #version directive
	// (default: 120).
	Version glsl.Version

	// HoistThreshold is the expression length from which values become
	// variables (default: glsl.DefaultHoistThreshold).
	HoistThreshold int

	// Logger receives generation and loading messages. Nil disables
	// logging.
	Logger hclog.Logger

	// Observer receives evaluation events; see metrics.Collector.
	Observer glsl.Observer
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Version:        glsl.Version120,
		HoistThreshold: glsl.DefaultHoistThreshold,
	}
}

func (o CompileOptions) toGLSL() glsl.Options {
	return glsl.Options{
		Version:        o.Version,
		HoistThreshold: o.HoistThreshold,
		Logger:         o.Logger,
		Observer:       o.Observer,
	}
}

// NewRegistry returns a registry holding every built-in archetype.
func NewRegistry() *node.Registry {
	return nodes.NewRegistry()
}

// NewGraph returns an empty graph.
func NewGraph() *graph.Graph {
	return graph.New()
}

// Compile generates both stages of g using default options.
func Compile(g *graph.Graph, reg *node.Registry) (glsl.Program, error) {
	return CompileWithOptions(context.Background(), g, reg, DefaultOptions())
}

// CompileWithOptions generates both stages of g concurrently.
func CompileWithOptions(ctx context.Context, g *graph.Graph, reg *node.Registry, opts CompileOptions) (glsl.Program, error) {
	prog, err := glsl.CompileAll(ctx, g, reg, opts.toGLSL())
	if err != nil {
		return glsl.Program{}, errors.Wrap(err, "generation error")
	}
	return prog, nil
}

// CompileStage generates a single stage of g.
func CompileStage(g *graph.Graph, reg *node.Registry, stage ir.ShaderStage, opts CompileOptions) (string, glsl.TranslationInfo, error) {
	return glsl.Compile(g, reg, stage, opts.toGLSL())
}

// Load reads a graph document with the built-in archetypes. Links the
// document cannot express are dropped with a warning.
func Load(fs afero.Fs, path string, log hclog.Logger) (*graph.Graph, *node.Registry, error) {
	reg := NewRegistry()
	g, _, err := persist.Load(fs, path, reg, log)
	if g == nil {
		return nil, nil, err
	}
	return g, reg, nil
}

// Save writes g to path under a new document id. The format follows the
// file extension.
func Save(fs afero.Fs, path string, g *graph.Graph, reg *node.Registry) error {
	return persist.Save(fs, path, g, reg, uuid.Nil)
}

// CompileFile loads the document at path and generates both stages.
func CompileFile(fs afero.Fs, path string, opts CompileOptions) (glsl.Program, error) {
	g, reg, err := Load(fs, path, opts.Logger)
	if err != nil {
		return glsl.Program{}, err
	}
	return CompileWithOptions(context.Background(), g, reg, opts)
}
