// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shadergraphc compiles shader graph documents to GLSL.
//
// Usage:
//
//	shadergraphc [--config FILE] [--log-level LEVEL] <command> [args]
//
// Examples:
//
//	shadergraphc compile water.yaml               # both stages to stdout
//	shadergraphc compile -o build water.yaml      # build/water.vert, build/water.frag
//	shadergraphc compile --watch -o build water.yaml
//	shadergraphc convert water.yaml water.msgpack # re-encode a document
//	shadergraphc archetypes --filter vec          # list node types
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const shadergraphcVersion = "0.1.0-dev"

// Args is the top level command line.
type Args struct {
	Config   string `arg:"-c,--config" help:"config file (default: shadergraph.yaml when present)"`
	LogLevel string `arg:"--log-level" help:"trace, debug, info, warn or error"`

	CompileCmd    *CompileArgs    `arg:"subcommand:compile" help:"generate GLSL from a graph document"`
	ConvertCmd    *ConvertArgs    `arg:"subcommand:convert" help:"re-encode a graph document"`
	ArchetypesCmd *ArchetypesArgs `arg:"subcommand:archetypes" help:"list registered node archetypes"`
}

// Version implements the go-arg version hook.
func (*Args) Version() string {
	return "shadergraphc " + shadergraphcVersion
}

// Description implements the go-arg description hook.
func (*Args) Description() string {
	return "shadergraphc compiles shader node graphs to GLSL."
}

// env is what a subcommand runs against.
type env struct {
	fs     afero.Fs
	stdout io.Writer
	log    hclog.Logger
	cfg    Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, fs afero.Fs, argv []string, stdout, stderr io.Writer) error {
	var args Args
	parser, err := arg.NewParser(arg.Config{Program: "shadergraphc"}, &args)
	if err != nil {
		return errors.Wrap(err, "cli config error")
	}
	err = parser.Parse(argv)
	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)
		return nil
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(stdout, args.Version())
		return nil
	case err != nil:
		parser.WriteUsage(stderr)
		return err
	}

	cfg, err := LoadConfig(fs, args.Config)
	if err != nil {
		return err
	}
	if args.LogLevel != "" {
		cfg.LogLevel = args.LogLevel
	}

	e := &env{fs: fs, stdout: stdout, cfg: cfg}
	switch {
	case args.CompileCmd != nil:
		args.CompileCmd.apply(&e.cfg)
	case args.ConvertCmd != nil:
		args.ConvertCmd.apply(&e.cfg)
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	e.log = hclog.New(&hclog.LoggerOptions{
		Name:   "shadergraphc",
		Level:  hclog.LevelFromString(e.cfg.LogLevel),
		Output: stderr,
	})

	switch {
	case args.CompileCmd != nil:
		return args.CompileCmd.Run(ctx, e)
	case args.ConvertCmd != nil:
		return args.ConvertCmd.Run(e)
	case args.ArchetypesCmd != nil:
		return args.ArchetypesCmd.Run(e)
	}
	parser.WriteHelp(stdout)
	return nil
}
