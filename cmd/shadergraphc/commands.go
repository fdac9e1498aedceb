// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/metrics"
	"github.com/gogpu/shadergraph/persist"
)

// CompileArgs are the arguments of the compile command.
type CompileArgs struct {
	Graph       string `arg:"positional,required" help:"graph document (.yaml, .json or .msgpack)"`
	Output      string `arg:"-o,--output" help:"output directory (default: stdout)"`
	Stage       string `arg:"--stage" help:"vertex, fragment or all"`
	GLSL        string `arg:"--glsl" help:"GLSL version, e.g. 120 or 100"`
	Watch       bool   `arg:"-w,--watch" help:"recompile whenever the document changes"`
	MetricsAddr string `arg:"--metrics-addr" help:"serve Prometheus metrics while watching"`
}

func (c *CompileArgs) apply(cfg *Config) {
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}
	if c.Stage != "" {
		cfg.Stages = []string{c.Stage}
	}
	if c.GLSL != "" {
		cfg.Version = c.GLSL
	}
	if c.MetricsAddr != "" {
		cfg.MetricsAddr = c.MetricsAddr
	}
}

// Run compiles once, or keeps compiling in watch mode until ctx is done.
func (c *CompileArgs) Run(ctx context.Context, e *env) error {
	opts, err := e.cfg.CompileOptions(e.log)
	if err != nil {
		return err
	}
	if !c.Watch {
		return compileOnce(e, c.Graph, opts)
	}

	eg, ctx := errgroup.WithContext(ctx)
	if e.cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		collector := metrics.New()
		if err := collector.Register(reg); err != nil {
			return err
		}
		opts.Observer = collector
		eg.Go(func() error {
			return metrics.Serve(ctx, e.cfg.MetricsAddr, reg, e.log.Named("metrics"))
		})
	}
	eg.Go(func() error {
		return watch(ctx, e, c.Graph, func() error {
			return compileOnce(e, c.Graph, opts)
		})
	})
	return eg.Wait()
}

// compileOnce writes the configured stages of the document at path.
// Per-node diagnostics are logged as warnings; they do not fail the
// command.
func compileOnce(e *env, path string, opts shadergraph.CompileOptions) error {
	stages, err := e.cfg.ShaderStages()
	if err != nil {
		return err
	}
	prog, err := shadergraph.CompileFile(e.fs, path, opts)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, stage := range stages {
		info := prog.Info(stage)
		if merr, ok := info.Diagnostics.(*multierror.Error); ok {
			for _, d := range merr.Errors {
				e.log.Warn("diagnostic", "stage", stage, "error", d)
			}
		}
		if err := writeStage(e, name, stage, prog); err != nil {
			return err
		}
	}
	return nil
}

func writeStage(e *env, name string, stage ir.ShaderStage, prog glsl.Program) error {
	src := prog.Source(stage)
	if e.cfg.OutputDir == "" {
		_, err := fmt.Fprintf(e.stdout, "// %s\n%s", stage, src)
		return err
	}
	if err := e.fs.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", e.cfg.OutputDir)
	}
	out := filepath.Join(e.cfg.OutputDir, name+stageExt(stage))
	if err := afero.WriteFile(e.fs, out, []byte(src), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", out)
	}
	info := prog.Info(stage)
	e.log.Info("wrote stage", "path", out, "statements", info.Stats.Statements, "hoisted", info.Stats.Hoisted)
	return nil
}

func stageExt(stage ir.ShaderStage) string {
	if stage == ir.StageVertex {
		return ".vert"
	}
	return ".frag"
}

// ConvertArgs are the arguments of the convert command.
type ConvertArgs struct {
	In     string `arg:"positional,required" help:"input document"`
	Out    string `arg:"positional,required" help:"output document; the extension picks the format"`
	Format string `arg:"-f,--format" help:"format used when OUT has no extension"`
}

func (c *ConvertArgs) apply(cfg *Config) {
	if c.Format != "" {
		cfg.Format = c.Format
	}
}

// Run re-encodes a document. The document is decoded against the registry
// first, so only loadable documents are converted.
func (c *ConvertArgs) Run(e *env) error {
	doc, err := persist.ReadDocument(e.fs, c.In)
	if err != nil {
		return err
	}
	if _, err := persist.Decode(doc, shadergraph.NewRegistry(), e.log); err != nil {
		return errors.Wrapf(err, "%s", c.In)
	}

	out := c.Out
	if filepath.Ext(out) == "" {
		f, err := persist.ParseFormat(e.cfg.Format)
		if err != nil {
			return err
		}
		out += f.Ext()
	}
	if err := persist.WriteDocument(e.fs, out, doc); err != nil {
		return err
	}
	e.log.Info("converted", "from", c.In, "to", out)
	return nil
}

// ArchetypesArgs are the arguments of the archetypes command.
type ArchetypesArgs struct {
	Filter string `arg:"-f,--filter" help:"only list archetypes matching this text"`
}

// Run prints the visible archetypes grouped by category.
func (c *ArchetypesArgs) Run(e *env) error {
	reg := shadergraph.NewRegistry()
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tID\tTITLE\tINPUTS\tOUTPUTS")
	for _, a := range reg.Filter(c.Filter) {
		ins := make([]string, len(a.Inputs))
		for i, in := range a.Inputs {
			ins[i] = in.Name
		}
		outs := make([]string, len(a.Outputs))
		for i, out := range a.Outputs {
			outs[i] = out.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.Category, a.ID, a.Title,
			strings.Join(ins, ","), strings.Join(outs, ","))
	}
	return tw.Flush()
}
