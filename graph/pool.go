// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

// idPool hands out node ids in increasing order. Released ids are not
// recycled so a removed node's id never aliases a later node.
type idPool struct {
	next NodeID
}

func (p *idPool) take() NodeID {
	p.next++
	return p.next
}

func (p *idPool) release(NodeID) {}

// reset makes next the id returned by the following take.
func (p *idPool) reset(next NodeID) {
	if next == 0 {
		next = 1
	}
	p.next = next - 1
}
