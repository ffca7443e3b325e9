package shaders

import (
	_ "embed"
)

// MeshWGSL draws a vertex-coloured mesh. Entry points: vs_main, fs_main.
//
//go:embed mesh.wgsl
var MeshWGSL string
