// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatJSON
	FormatMsgpack
)

// ErrUnknownFormat is returned for unrecognised format names and file
// extensions.
var ErrUnknownFormat = errors.New("unknown document format")

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMsgpack:
		return ".msgpack"
	default:
		return ".yaml"
	}
}

// ParseFormat parses a format name as printed by Format.String. The short
// names "yml" and "mp" are accepted too.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// FormatOf picks the format from the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, errors.Wrapf(ErrUnknownFormat, "%s: no file extension", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}

// Marshal encodes doc.
func Marshal(doc *Document, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode json")
		}
		return append(data, '\n'), nil
	case FormatMsgpack:
		data, err := msgpack.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "encode msgpack")
		}
		return data, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%s", f)
}

// Unmarshal decodes a document. It does not validate it; Decode does.
func Unmarshal(data []byte, f Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, doc)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", f)
	}
	return doc, nil
}
