package gpu

import (
	"fmt"

	"github.com/gekko3d/hellomesh/rt/core"
)

const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// BuildPipeline resolves the mesh shader entry points in lib and compiles the
// render pipeline for surfaceFormat. lib is expected to be compiled already,
// see LoadShaderLibrary. The result is never rebuilt.
func BuildPipeline(dev Device, lib *ShaderLibrary, surfaceFormat TextureFormat) (Pipeline, error) {
	vs, err := lib.Function(VertexEntryPoint, ShaderStageVertex)
	if err != nil {
		return nil, err
	}
	fs, err := lib.Function(FragmentEntryPoint, ShaderStageFragment)
	if err != nil {
		return nil, err
	}
	layout, err := VertexLayoutOf(core.Vertex{})
	if err != nil {
		return nil, err
	}

	pipeline, err := dev.CreateRenderPipeline(&PipelineDescriptor{
		Label:        lib.Name,
		Vertex:       vs,
		Fragment:     fs,
		VertexLayout: layout,
		ColorFormat:  surfaceFormat,
		FrontFace:    WindingClockwise,
		CullMode:     CullModeBack,
		UniformSize:  core.UniformBlockSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPipelineCreate, lib.Name, err)
	}
	return pipeline, nil
}
