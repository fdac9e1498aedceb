// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"github.com/pkg/errors"
)

// Record holds the instance fields of a node as decoded from a document.
// Decoders disagree on number representations (float64 from JSON, int or
// float64 from YAML, sized ints and float32 from MessagePack), so the typed
// accessors accept all of them.
type Record map[string]any

// SetFloat stores a float field.
func (r Record) SetFloat(key string, v float32) {
	r[key] = float64(v)
}

// SetFloats stores a float list field.
func (r Record) SetFloats(key string, v []float32) {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	r[key] = out
}

// SetString stores a string field.
func (r Record) SetString(key, v string) {
	r[key] = v
}

// Float returns a float field. A missing key reports ok false.
func (r Record) Float(key string) (float32, bool, error) {
	raw, ok := r[key]
	if !ok {
		return 0, false, nil
	}
	f, err := toFloat(raw)
	if err != nil {
		return 0, true, errors.Wrapf(err, "field %q", key)
	}
	return f, true, nil
}

// Floats returns a float list field.
func (r Record) Floats(key string) ([]float32, bool, error) {
	raw, ok := r[key]
	if !ok {
		return nil, false, nil
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []float64:
		for _, f := range v {
			items = append(items, f)
		}
	case []float32:
		return append([]float32(nil), v...), true, nil
	default:
		return nil, true, errors.Errorf("field %q: expected list, got %T", key, raw)
	}

	out := make([]float32, len(items))
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, true, errors.Wrapf(err, "field %q[%d]", key, i)
		}
		out[i] = f
	}
	return out, true, nil
}

// Text returns a string field.
func (r Record) Text(key string) (string, bool, error) {
	raw, ok := r[key]
	if !ok {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", true, errors.Errorf("field %q: expected string, got %T", key, raw)
	}
	return s, true, nil
}

func toFloat(v any) (float32, error) {
	switch n := v.(type) {
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	case int:
		return float32(n), nil
	case int8:
		return float32(n), nil
	case int16:
		return float32(n), nil
	case int32:
		return float32(n), nil
	case int64:
		return float32(n), nil
	case uint8:
		return float32(n), nil
	case uint16:
		return float32(n), nil
	case uint32:
		return float32(n), nil
	case uint64:
		return float32(n), nil
	default:
		return 0, errors.Errorf("expected number, got %T", v)
	}
}
