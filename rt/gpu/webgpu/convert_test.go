package webgpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/hellomesh/rt/core"
	"github.com/gekko3d/hellomesh/rt/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferUsage(t *testing.T) {
	assert.Equal(t, wgpu.BufferUsageVertex, bufferUsage(gpu.BufferUsageVertex))
	assert.Equal(t, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst, bufferUsage(gpu.BufferUsageUniform|gpu.BufferUsageCopyDst))
}

func TestVertexBufferLayout(t *testing.T) {
	layout, err := gpu.VertexLayoutOf(core.Vertex{})
	require.NoError(t, err)

	wl := vertexBufferLayout(layout)
	assert.Equal(t, uint64(24), wl.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, wl.StepMode)
	require.Len(t, wl.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, wl.Attributes[1].Format)
	assert.Equal(t, uint64(12), wl.Attributes[1].Offset)
	assert.Equal(t, uint32(1), wl.Attributes[1].ShaderLocation)
}

func TestRasterState(t *testing.T) {
	assert.Equal(t, wgpu.FrontFaceCW, frontFace(gpu.WindingClockwise))
	assert.Equal(t, wgpu.FrontFaceCCW, frontFace(gpu.WindingCounterClockwise))
	assert.Equal(t, wgpu.CullModeBack, cullMode(gpu.CullModeBack))
	assert.Equal(t, wgpu.CullModeNone, cullMode(gpu.CullModeNone))
	assert.Equal(t, wgpu.IndexFormatUint16, indexFormat(gpu.IndexFormatUint16))
}

func TestSurfaceClearColor(t *testing.T) {
	s := &Surface{state: &GPUState{Config: &wgpu.SurfaceConfiguration{}}}
	s.SetClearColor(gpu.Color{R: 1, G: 0.5, A: 1})
	assert.Equal(t, gpu.Color{R: 1, G: 0.5, A: 1}, s.ClearColor())

	// unconfigured surface never reaches the adapter
	_, err := s.AcquireTarget()
	assert.ErrorIs(t, err, gpu.ErrSurfaceUnavailable)
}
