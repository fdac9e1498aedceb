// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import "image/color"

// pin colours by generic arity; index 0 is unused.
var genColors = [...]color.RGBA{
	{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff},
	{R: 0x8b, G: 0xc3, B: 0x4a, A: 0xff},
	{R: 0xff, G: 0xc1, B: 0x07, A: 0xff},
	{R: 0x03, G: 0xa9, B: 0xf4, A: 0xff},
	{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
}

var (
	noneColor    = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	matrixColor  = color.RGBA{R: 0x67, G: 0x3a, B: 0xb7, A: 0xff}
	samplerColor = color.RGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff}
	arrayColor   = color.RGBA{R: 0x79, G: 0x55, B: 0x48, A: 0xff}
)

// Color returns the presentation colour of a type. It is only used by
// editors drawing pins and links.
func Color(t Type) color.RGBA {
	switch t := t.(type) {
	case GenType:
		if t.Arity >= 1 && int(t.Arity) < len(genColors) {
			return genColors[t.Arity]
		}
		return noneColor
	case MatrixType:
		return matrixColor
	case SamplerType:
		return samplerColor
	case ArrayType:
		return arrayColor
	default:
		return noneColor
	}
}
