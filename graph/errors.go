// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import "github.com/pkg/errors"

// Structural errors returned by link and node mutations.
var (
	ErrSelfLink      = errors.New("pin cannot link to itself")
	ErrSameDirection = errors.New("pins have the same direction")
	ErrSameNode      = errors.New("pins belong to the same node")
	ErrDuplicateLink = errors.New("link already exists")
	ErrUnknownNode   = errors.New("unknown node")
	ErrPinRange      = errors.New("pin index out of range")
	ErrDuplicateNode = errors.New("node id already in use")
	ErrInvalidNodeID = errors.New("invalid node id")
)
