// contrastgrid - a build-time generator for accessible colour palettes
//
// contrastgrid enumerates a palette from a small alphabet of hex digit
// pairs, classifies every pairing against the WCAG contrast guidelines and
// writes palette data, a utility stylesheet and a demo page.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/contrastgrid/internal/cli"
)

func main() {
	cli.Execute()
}
