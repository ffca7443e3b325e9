package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the per-draw state pushed to both shader stages.
type Uniforms struct {
	ModelMatrix mgl32.Mat4
	Wireframe   bool
}

// UniformBlock mirrors the WGSL Uniforms struct, padded to 16 bytes.
type UniformBlock struct {
	ModelMatrix mgl32.Mat4
	Wireframe   uint32
	Pad         [3]uint32
}

// UniformBlockSize is the size of UniformBlock in bytes.
const UniformBlockSize = 16*4 + 4*4

func DefaultUniforms() Uniforms {
	return Uniforms{ModelMatrix: mgl32.Ident4()}
}

func (u Uniforms) Block() UniformBlock {
	b := UniformBlock{ModelMatrix: u.ModelMatrix}
	if u.Wireframe {
		b.Wireframe = 1
	}
	return b
}
