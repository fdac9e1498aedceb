// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package persist

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/node"
)

// ReadDocument reads and unmarshals the document at path.
func ReadDocument(fs afero.Fs, path string) (*Document, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	doc, err := Unmarshal(data, f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}

// WriteDocument marshals doc in the format implied by path and writes it,
// creating the parent directory if needed.
func WriteDocument(fs afero.Fs, path string, doc *Document) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, f)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// Save encodes g and writes it to path.
func Save(fs afero.Fs, path string, g *graph.Graph, reg *node.Registry, id uuid.UUID) error {
	doc, err := Encode(g, reg, id)
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return WriteDocument(fs, path, doc)
}

// Load reads the document at path and decodes it. As with Decode, a graph
// with dropped links is returned along with the error describing them.
func Load(fs afero.Fs, path string, reg *node.Registry, log hclog.Logger) (*graph.Graph, *Document, error) {
	doc, err := ReadDocument(fs, path)
	if err != nil {
		return nil, nil, err
	}
	if log != nil {
		log = log.With("path", path)
	}
	g, err := Decode(doc, reg, log)
	if g == nil {
		return nil, nil, errors.Wrapf(err, "load %s", path)
	}
	return g, doc, err
}

// Exists reports whether path names a regular file.
func Exists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeType == 0
}
