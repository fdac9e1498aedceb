// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/node"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Versions whose built-in variables (gl_FragColor, gl_TexCoord, ...) the
// generated code relies on.
var (
	Version110   = Version{Major: 1, Minor: 10}          // OpenGL 2.0
	Version120   = Version{Major: 1, Minor: 20}          // OpenGL 2.1
	Version130   = Version{Major: 1, Minor: 30}          // OpenGL 3.0
	VersionES100 = Version{Major: 1, Minor: 0, ES: true} // ES 2.0 / WebGL 1.0
)

// String returns the version as a GLSL version directive value.
func (v Version) String() string {
	if v.ES && v.Major >= 3 {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return v.VersionNumber()
}

// VersionNumber returns just the numeric version (e.g., "120", "100").
func (v Version) VersionNumber() string {
	return fmt.Sprintf("%d%02d", v.Major, v.Minor)
}

// ParseVersion parses a directive value such as "120", "330 core" or
// "300 es".
func ParseVersion(s string) (Version, error) {
	var n int
	var es string
	if _, err := fmt.Sscanf(s, "%d %s", &n, &es); err != nil {
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return Version{}, errors.Errorf("invalid GLSL version %q", s)
		}
	}
	if n < 100 || n > 999 || (es != "" && es != "es" && es != "core") {
		return Version{}, errors.Errorf("invalid GLSL version %q", s)
	}
	return Version{Major: uint8(n / 100), Minor: uint8(n % 100), ES: es == "es" || n == 100}, nil
}

// DefaultHoistThreshold is the expression length at which a single-use
// value is stored in a variable instead of being inlined.
const DefaultHoistThreshold = 15

// Options configures GLSL code generation.
type Options struct {
	// Version is the target GLSL version.
	// Defaults to Version120 if zero.
	Version Version

	// HoistThreshold is the inline length limit.
	// Defaults to DefaultHoistThreshold if zero.
	HoistThreshold int

	// Logger receives trace and debug output. Nil disables logging.
	Logger hclog.Logger

	// Observer is notified of node evaluations and finished passes.
	Observer Observer
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() Options {
	return Options{
		Version:        Version120,
		HoistThreshold: DefaultHoistThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.Version.Major == 0 {
		o.Version = Version120
	}
	if o.HoistThreshold <= 0 {
		o.HoistThreshold = DefaultHoistThreshold
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// TranslationInfo contains metadata about the translation.
type TranslationInfo struct {
	Stage ir.ShaderStage

	// Roots are the output nodes evaluated for the stage.
	Roots []graph.NodeID

	// Declarations lists the global declarations emitted.
	Declarations []string

	// Stats are the pass counters.
	Stats Stats

	// Diagnostics aggregates the per-node errors of the pass. Nil when the
	// graph evaluated cleanly. Diagnostics never prevent output.
	Diagnostics error
}

// Compile generates the source of one stage from g and publishes the
// resulting node states. The returned error is set only when generation
// could not complete, which happens for cyclic graphs.
func Compile(g *graph.Graph, reg *node.Registry, stage ir.ShaderStage, options Options) (string, TranslationInfo, error) {
	gen, err := run(g, reg, stage, options)
	if err != nil {
		return "", TranslationInfo{}, err
	}
	gen.Publish()
	return gen.Finalize(), gen.info(), nil
}

func run(g *graph.Graph, reg *node.Registry, stage ir.ShaderStage, options Options) (gen *Generator, err error) {
	if g == nil || reg == nil {
		return nil, errors.New("glsl: nil graph or registry")
	}

	defer func() {
		if r := recover(); r != nil {
			cycle, ok := r.(*CycleError)
			if !ok {
				panic(r)
			}
			gen, err = nil, errors.Wrapf(cycle, "glsl: %s stage", stage)
		}
	}()

	gen = NewGenerator(g, reg, stage, options)
	gen.Run()
	return gen, nil
}

func (g *Generator) info() TranslationInfo {
	return TranslationInfo{
		Stage:        g.stage,
		Roots:        g.Roots(),
		Declarations: g.Declarations(),
		Stats:        g.stats,
		Diagnostics:  g.Diagnostics(),
	}
}

// Program is the output of CompileAll.
type Program struct {
	Vertex       string
	Fragment     string
	VertexInfo   TranslationInfo
	FragmentInfo TranslationInfo
}

// Source returns the source of stage.
func (p *Program) Source(stage ir.ShaderStage) string {
	if stage == ir.StageVertex {
		return p.Vertex
	}
	return p.Fragment
}

// Info returns the translation info of stage.
func (p *Program) Info(stage ir.ShaderStage) TranslationInfo {
	if stage == ir.StageVertex {
		return p.VertexInfo
	}
	return p.FragmentInfo
}

// CompileAll generates both stages concurrently. The graph must not be
// mutated until it returns. Node states are published once both passes are
// done; a node evaluated by both stages keeps the fragment state.
func CompileAll(ctx context.Context, g *graph.Graph, reg *node.Registry, options Options) (Program, error) {
	gens := make([]*Generator, len(ir.Stages))

	eg, ctx := errgroup.WithContext(ctx)
	for i, stage := range ir.Stages {
		i, stage := i, stage
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gen, err := run(g, reg, stage, options)
			if err != nil {
				return err
			}
			gens[i] = gen
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Program{}, err
	}

	for _, gen := range gens {
		for id, st := range gen.States() {
			if st.Evaluated || gen.stage == ir.StageVertex {
				gen.nodes[id].Publish(st)
			}
		}
	}

	vert, frag := gens[0], gens[1]
	return Program{
		Vertex:       vert.Finalize(),
		Fragment:     frag.Finalize(),
		VertexInfo:   vert.info(),
		FragmentInfo: frag.info(),
	}, nil
}
