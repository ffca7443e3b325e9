// Package gpu defines the device contract the renderer draws through and the
// helpers that turn CPU-side meshes and shaders into device objects.
//
// Implementations live in subpackages: webgpu drives a real adapter through
// cogentcore/webgpu, gputest records calls for tests.
package gpu

import (
	"errors"
)

var (
	// ErrSurfaceUnavailable reports that no presentable texture can be had
	// this frame. It is transient.
	ErrSurfaceUnavailable = errors.New("surface texture unavailable")
	ErrBufferAllocation   = errors.New("buffer allocation failed")
	ErrEmptyMesh          = errors.New("mesh has no geometry")
	ErrEntryPointMissing  = errors.New("shader entry point missing")
	ErrShaderCompile      = errors.New("shader compilation failed")
	ErrPipelineCreate     = errors.New("render pipeline creation failed")
)

type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageCopyDst
)

type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageVertex | ShaderStageFragment:
		return "vertex|fragment"
	}
	return "none"
}

type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// FillMode selects how triangles are rasterized.
type FillMode int

const (
	FillModeFill FillMode = iota
	FillModeLines
)

func (m FillMode) String() string {
	if m == FillModeLines {
		return "lines"
	}
	return "fill"
}

type Winding int

const (
	WindingClockwise Winding = iota
	WindingCounterClockwise
)

type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

// TextureFormat is the backend's pixel format value, passed through untouched.
type TextureFormat uint32

type Color struct {
	R, G, B, A float64
}

type Buffer interface {
	Label() string
	Size() uint64
	Release()
}

// Pipeline is an immutable compiled render pipeline.
type Pipeline interface {
	Label() string
	Release()
}

// RenderTarget is the texture a frame is drawn into.
type RenderTarget interface {
	Release()
}

type CommandBuffer interface {
	Release()
}

type Device interface {
	CreateBuffer(label string, usage BufferUsage, contents []byte) (Buffer, error)
	CreateRenderPipeline(desc *PipelineDescriptor) (Pipeline, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)
}

type Queue interface {
	Submit(cmd CommandBuffer)
}

type Surface interface {
	Format() TextureFormat
	ClearColor() Color
	// AcquireTarget returns the texture to draw the next frame into, or
	// ErrSurfaceUnavailable.
	AcquireTarget() (RenderTarget, error)
	Present()
	Resize(width, height int)
}

type CommandEncoder interface {
	BeginRenderPass(target RenderTarget, clear Color) (RenderPass, error)
	Finish() (CommandBuffer, error)
	Release()
}

type RenderPass interface {
	SetPipeline(p Pipeline)
	SetVertexBuffer(slot uint32, b Buffer)
	// SetUniforms pushes small per-draw data to the given stages without a
	// caller-owned buffer.
	SetUniforms(stages ShaderStage, data []byte)
	SetTriangleFillMode(mode FillMode)
	DrawIndexed(index Buffer, format IndexFormat, indexCount uint32)
	End() error
}

type VertexFormat int

const (
	VertexFormatFloat32x2 VertexFormat = iota
	VertexFormatFloat32x3
	VertexFormatFloat32x4
)

// VertexAttribute places one shader input inside a vertex.
type VertexAttribute struct {
	Location uint32
	Offset   uint64
	Format   VertexFormat
}

type VertexLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
}

type PipelineDescriptor struct {
	Label        string
	Vertex       ShaderFunction
	Fragment     ShaderFunction
	VertexLayout VertexLayout
	ColorFormat  TextureFormat
	FrontFace    Winding
	CullMode     CullMode
	// UniformSize is the byte size of the block passed to SetUniforms.
	UniformSize uint64
}
