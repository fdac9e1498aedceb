// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/ir"
	"github.com/gogpu/shadergraph/persist"
)

// DefaultConfigFile is read when present and no --config is given.
const DefaultConfigFile = "shadergraph.yaml"

// Config holds the settings shared by all subcommands. Command line flags
// override file values.
type Config struct {
	// Version is the GLSL #version value, e.g. "120" or "100".
	Version string `yaml:"version"`
	// HoistThreshold is the expression length from which values become
	// variables.
	HoistThreshold int `yaml:"hoist_threshold"`
	// Stages lists the stages compile writes: vertex, fragment or both.
	Stages []string `yaml:"stages"`
	// OutputDir receives compiled stages. Empty means stdout.
	OutputDir string `yaml:"output_dir"`
	// Format is the document format convert uses when the output path has
	// no extension.
	Format string `yaml:"format"`
	// LogLevel is an hclog level name.
	LogLevel string `yaml:"log_level"`
	// MetricsAddr serves Prometheus metrics in watch mode when set.
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Version:        glsl.Version120.String(),
		HoistThreshold: glsl.DefaultHoistThreshold,
		Stages:         []string{ir.StageVertex.String(), ir.StageFragment.String()},
		Format:         persist.FormatYAML.String(),
		LogLevel:       "info",
	}
}

// LoadConfig reads path over the defaults. A missing DefaultConfigFile is
// not an error; any other missing path is.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		if !persist.Exists(fs, DefaultConfigFile) {
			return cfg, nil
		}
		path = DefaultConfigFile
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := glsl.ParseVersion(c.Version); err != nil {
		return err
	}
	if c.HoistThreshold < 1 {
		return errors.Errorf("hoist_threshold must be positive, got %d", c.HoistThreshold)
	}
	if len(c.Stages) == 0 {
		return errors.New("stages is empty")
	}
	if _, err := c.ShaderStages(); err != nil {
		return err
	}
	if _, err := persist.ParseFormat(c.Format); err != nil {
		return err
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// ShaderStages parses Stages, dropping duplicates. "all" selects every
// stage.
func (c Config) ShaderStages() ([]ir.ShaderStage, error) {
	seen := make(map[ir.ShaderStage]bool)
	var res []ir.ShaderStage
	for _, name := range c.Stages {
		var stages []ir.ShaderStage
		if name == "all" {
			stages = ir.Stages
		} else {
			s, err := ir.ParseStage(name)
			if err != nil {
				return nil, err
			}
			stages = []ir.ShaderStage{s}
		}
		for _, s := range stages {
			if !seen[s] {
				seen[s] = true
				res = append(res, s)
			}
		}
	}
	return res, nil
}

// CompileOptions converts the configuration to generator options.
func (c Config) CompileOptions(log hclog.Logger) (shadergraph.CompileOptions, error) {
	v, err := glsl.ParseVersion(c.Version)
	if err != nil {
		return shadergraph.CompileOptions{}, err
	}
	opts := shadergraph.DefaultOptions()
	opts.Version = v
	opts.HoistThreshold = c.HoistThreshold
	opts.Logger = log
	return opts, nil
}
