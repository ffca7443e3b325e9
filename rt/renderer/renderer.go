// Package renderer draws one indexed mesh per frame through the gpu device
// contract.
//
// A Renderer has a single writer side (SetMesh, SetWireframe, SetModelMatrix)
// and a single reader side (OnFrame). They may run on different goroutines:
// buffers and uniforms live in one lock-guarded frameState, uploads happen
// outside the lock and only the swap happens inside it.
package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gekko3d/hellomesh/rt/core"
	"github.com/gekko3d/hellomesh/rt/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNoDevice  = errors.New("renderer: no GPU device")
	ErrNoQueue   = errors.New("renderer: no command queue")
	ErrNoSurface = errors.New("renderer: no surface")
	ErrNoShaders = errors.New("renderer: no shader library")
)

// State is the lifecycle stage of a Renderer.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateDrawing
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDrawing:
		return "drawing"
	}
	return "uninitialized"
}

// Logger is the subset of the application logger the renderer uses.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}

type Config struct {
	Device  gpu.Device
	Queue   gpu.Queue
	Surface gpu.Surface
	Shaders *gpu.ShaderLibrary
	Logger  Logger
}

// meshBuffers is the vertex/index pair of one mesh. It is replaced as a
// whole, never mutated.
type meshBuffers struct {
	mesh       core.Mesh
	vertices   gpu.Buffer
	indices    gpu.Buffer
	indexCount uint32
}

func (b *meshBuffers) release() {
	b.vertices.Release()
	b.indices.Release()
}

type frameState struct {
	mu       sync.Mutex
	buffers  *meshBuffers
	uniforms core.Uniforms
}

type Renderer struct {
	device   gpu.Device
	queue    gpu.Queue
	surface  gpu.Surface
	pipeline gpu.Pipeline
	log      Logger

	frame frameState
}

// New binds the renderer to the host device and builds its pipeline for the
// surface's pixel format. The returned renderer is Ready: it draws nothing
// until SetMesh is called.
func New(cfg Config) (*Renderer, error) {
	if cfg.Device == nil {
		return nil, ErrNoDevice
	}
	if cfg.Queue == nil {
		return nil, ErrNoQueue
	}
	if cfg.Surface == nil {
		return nil, ErrNoSurface
	}
	if cfg.Shaders == nil {
		return nil, ErrNoShaders
	}
	log := cfg.Logger
	if log == nil {
		log = nopLogger{}
	}

	pipeline, err := gpu.BuildPipeline(cfg.Device, cfg.Shaders, cfg.Surface.Format())
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	log.Infof("Pipeline %q built for surface format %d", pipeline.Label(), cfg.Surface.Format())

	return &Renderer{
		device:   cfg.Device,
		queue:    cfg.Queue,
		surface:  cfg.Surface,
		pipeline: pipeline,
		log:      log,
		frame:    frameState{uniforms: core.DefaultUniforms()},
	}, nil
}

func (r *Renderer) State() State {
	if r == nil || r.pipeline == nil {
		return StateUninitialized
	}
	r.frame.mu.Lock()
	defer r.frame.mu.Unlock()
	if r.frame.buffers == nil {
		return StateReady
	}
	return StateDrawing
}

// SetMesh uploads mesh to new GPU buffers and makes them current, releasing
// the previous pair. Upload failure panics: the device refused memory and
// there is nothing left to draw with.
func (r *Renderer) SetMesh(mesh core.Mesh) {
	if err := mesh.Validate(); err != nil {
		panic(fmt.Errorf("renderer: invalid mesh %s: %w", mesh.Shape, err))
	}
	vb, err := gpu.UploadVertices(r.device, &mesh)
	if err != nil {
		panic(err)
	}
	ib, err := gpu.UploadIndices(r.device, &mesh)
	if err != nil {
		vb.Release()
		panic(err)
	}
	next := &meshBuffers{
		mesh:       mesh,
		vertices:   vb,
		indices:    ib,
		indexCount: uint32(len(mesh.Indices)),
	}

	r.frame.mu.Lock()
	prev := r.frame.buffers
	r.frame.buffers = next
	r.frame.mu.Unlock()

	if prev != nil {
		prev.release()
	}
	r.log.Debugf("Mesh %s (%s) uploaded: %d vertices, %d indices", mesh.ID, mesh.Shape, len(mesh.Vertices), len(mesh.Indices))
}

// Mesh returns the current mesh, if any.
func (r *Renderer) Mesh() (core.Mesh, bool) {
	r.frame.mu.Lock()
	defer r.frame.mu.Unlock()
	if r.frame.buffers == nil {
		return core.Mesh{}, false
	}
	return r.frame.buffers.mesh, true
}

func (r *Renderer) SetWireframe(on bool) {
	r.frame.mu.Lock()
	r.frame.uniforms.Wireframe = on
	r.frame.mu.Unlock()
}

func (r *Renderer) SetModelMatrix(m mgl32.Mat4) {
	r.frame.mu.Lock()
	r.frame.uniforms.ModelMatrix = m
	r.frame.mu.Unlock()
}

func (r *Renderer) SetUniforms(u core.Uniforms) {
	r.frame.mu.Lock()
	r.frame.uniforms = u
	r.frame.mu.Unlock()
}

func (r *Renderer) Uniforms() core.Uniforms {
	r.frame.mu.Lock()
	defer r.frame.mu.Unlock()
	return r.frame.uniforms
}

// Resize is called when the drawable size changes. There is no projection
// to recompute yet.
func (r *Renderer) Resize(width, height int) {
	r.log.Debugf("Drawable resized to %dx%d", width, height)
}

func (r *Renderer) hasMesh() bool {
	r.frame.mu.Lock()
	defer r.frame.mu.Unlock()
	return r.frame.buffers != nil
}

// OnFrame encodes and submits one frame. It reports whether a frame was
// submitted; a frame is skipped when there is no mesh yet or the encoder or
// surface texture is unavailable.
func (r *Renderer) OnFrame() bool {
	if !r.hasMesh() {
		return false
	}

	encoder, err := r.device.CreateCommandEncoder("Frame Encoder")
	if err != nil {
		r.log.Debugf("Frame skipped, no command encoder: %v", err)
		return false
	}
	defer encoder.Release()

	target, err := r.surface.AcquireTarget()
	if err != nil {
		r.log.Debugf("Frame skipped, no surface texture: %v", err)
		return false
	}
	defer target.Release()

	pass, err := encoder.BeginRenderPass(target, r.surface.ClearColor())
	if err != nil {
		r.log.Debugf("Frame skipped, render pass refused: %v", err)
		return false
	}

	if err := r.encodeDraw(pass); err != nil {
		r.log.Warnf("Frame skipped: %v", err)
		return false
	}

	cmd, err := encoder.Finish()
	if err != nil {
		r.log.Warnf("Frame skipped, encoder finish failed: %v", err)
		return false
	}
	defer cmd.Release()

	r.queue.Submit(cmd)
	r.surface.Present()
	return true
}

// encodeDraw records the draw while holding the frame lock, so the buffers
// it binds cannot be released under it.
func (r *Renderer) encodeDraw(pass gpu.RenderPass) error {
	r.frame.mu.Lock()
	defer r.frame.mu.Unlock()

	bufs := r.frame.buffers
	if bufs == nil {
		return pass.End()
	}
	block, err := gpu.Bytes(r.frame.uniforms.Block())
	if err != nil {
		return fmt.Errorf("encode uniforms: %w", err)
	}

	fill := gpu.FillModeFill
	if r.frame.uniforms.Wireframe {
		fill = gpu.FillModeLines
	}

	pass.SetPipeline(r.pipeline)
	pass.SetVertexBuffer(0, bufs.vertices)
	pass.SetUniforms(gpu.ShaderStageVertex|gpu.ShaderStageFragment, block)
	pass.SetTriangleFillMode(fill)
	pass.DrawIndexed(bufs.indices, gpu.IndexFormatUint16, bufs.indexCount)
	return pass.End()
}

// Release frees the mesh buffers and the pipeline. The renderer is
// Uninitialized afterwards.
func (r *Renderer) Release() {
	r.frame.mu.Lock()
	bufs := r.frame.buffers
	r.frame.buffers = nil
	r.frame.mu.Unlock()

	if bufs != nil {
		bufs.release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
}
