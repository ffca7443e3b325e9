// Package gputest provides a recording implementation of the gpu device
// contract for tests that run without a GPU.
package gputest

import (
	"errors"
	"sync"

	"github.com/gekko3d/hellomesh/rt/gpu"
)

// DefaultFormat is the surface format reported unless overridden.
const DefaultFormat gpu.TextureFormat = 23

var (
	ErrRefused     = errors.New("gputest: refused")
	ErrPassEnded   = errors.New("gputest: pass already ended")
	ErrNotFinished = errors.New("gputest: encoder has open pass")
)

var (
	_ gpu.Device         = (*Device)(nil)
	_ gpu.Queue          = (*Queue)(nil)
	_ gpu.Surface        = (*Surface)(nil)
	_ gpu.CommandEncoder = (*CommandEncoder)(nil)
	_ gpu.RenderPass     = (*RenderPass)(nil)
)

// Backend bundles a Device, Queue and Surface sharing one call log.
type Backend struct {
	mu    sync.Mutex
	calls int

	Device  *Device
	Queue   *Queue
	Surface *Surface
}

func New() *Backend {
	b := &Backend{}
	b.Device = &Device{b: b}
	b.Queue = &Queue{b: b}
	b.Surface = &Surface{b: b, format: DefaultFormat, clear: gpu.Color{A: 1}}
	return b
}

// Calls is the total number of backend calls made so far.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *Backend) record() {
	b.calls++
}

type Buffer struct {
	b        *Backend
	ID       int
	label    string
	Usage    gpu.BufferUsage
	Contents []byte
	released bool
}

func (buf *Buffer) Label() string  { return buf.label }
func (buf *Buffer) Size() uint64   { return uint64(len(buf.Contents)) }
func (buf *Buffer) Released() bool { buf.b.mu.Lock(); defer buf.b.mu.Unlock(); return buf.released }

func (buf *Buffer) Release() {
	buf.b.mu.Lock()
	defer buf.b.mu.Unlock()
	buf.released = true
}

type Pipeline struct {
	b        *Backend
	Desc     gpu.PipelineDescriptor
	released bool
}

func (p *Pipeline) Label() string  { return p.Desc.Label }
func (p *Pipeline) Released() bool { p.b.mu.Lock(); defer p.b.mu.Unlock(); return p.released }

func (p *Pipeline) Release() {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.released = true
}

// Device records every object it creates. Setting a Fail flag makes the
// matching creation call return ErrRefused.
type Device struct {
	b *Backend

	FailBuffers   bool
	FailPipelines bool
	FailEncoders  bool

	buffers   []*Buffer
	pipelines []*Pipeline
	encoders  []*CommandEncoder
}

func (d *Device) CreateBuffer(label string, usage gpu.BufferUsage, contents []byte) (gpu.Buffer, error) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	d.b.record()
	if d.FailBuffers {
		return nil, ErrRefused
	}
	buf := &Buffer{
		b:        d.b,
		ID:       len(d.buffers) + 1,
		label:    label,
		Usage:    usage,
		Contents: append([]byte(nil), contents...),
	}
	d.buffers = append(d.buffers, buf)
	return buf, nil
}

func (d *Device) CreateRenderPipeline(desc *gpu.PipelineDescriptor) (gpu.Pipeline, error) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	d.b.record()
	if d.FailPipelines {
		return nil, ErrRefused
	}
	p := &Pipeline{b: d.b, Desc: *desc}
	d.pipelines = append(d.pipelines, p)
	return p, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	d.b.record()
	if d.FailEncoders {
		return nil, ErrRefused
	}
	enc := &CommandEncoder{b: d.b, Label: label}
	d.encoders = append(d.encoders, enc)
	return enc, nil
}

// Buffers returns every buffer created, released or not.
func (d *Device) Buffers() []*Buffer {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	return append([]*Buffer(nil), d.buffers...)
}

// LiveBuffers returns the buffers not yet released.
func (d *Device) LiveBuffers() []*Buffer {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	var live []*Buffer
	for _, buf := range d.buffers {
		if !buf.released {
			live = append(live, buf)
		}
	}
	return live
}

func (d *Device) Pipelines() []*Pipeline {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	return append([]*Pipeline(nil), d.pipelines...)
}

func (d *Device) Encoders() []*CommandEncoder {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	return append([]*CommandEncoder(nil), d.encoders...)
}

type Queue struct {
	b           *Backend
	submissions []*CommandBuffer
}

func (q *Queue) Submit(cmd gpu.CommandBuffer) {
	q.b.mu.Lock()
	defer q.b.mu.Unlock()
	q.b.record()
	q.submissions = append(q.submissions, cmd.(*CommandBuffer))
}

func (q *Queue) Submissions() []*CommandBuffer {
	q.b.mu.Lock()
	defer q.b.mu.Unlock()
	return append([]*CommandBuffer(nil), q.submissions...)
}

// Draws flattens the draws of all submitted command buffers.
func (q *Queue) Draws() []Draw {
	q.b.mu.Lock()
	defer q.b.mu.Unlock()
	var draws []Draw
	for _, s := range q.submissions {
		draws = append(draws, s.Draws...)
	}
	return draws
}

// LastDraw returns the most recent submitted draw.
func (q *Queue) LastDraw() (Draw, bool) {
	draws := q.Draws()
	if len(draws) == 0 {
		return Draw{}, false
	}
	return draws[len(draws)-1], true
}

type Target struct {
	b        *Backend
	released bool
}

func (t *Target) Release() {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	t.released = true
}

func (t *Target) Released() bool { t.b.mu.Lock(); defer t.b.mu.Unlock(); return t.released }

// Surface hands out targets until Unavailable is set.
type Surface struct {
	b      *Backend
	format gpu.TextureFormat
	clear  gpu.Color

	Unavailable bool

	acquired  int
	presented int
	width     int
	height    int
}

func (s *Surface) SetFormat(f gpu.TextureFormat) { s.format = f }
func (s *Surface) SetClearColor(c gpu.Color)     { s.clear = c }

func (s *Surface) Format() gpu.TextureFormat { return s.format }
func (s *Surface) ClearColor() gpu.Color     { return s.clear }

func (s *Surface) AcquireTarget() (gpu.RenderTarget, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.record()
	if s.Unavailable {
		return nil, gpu.ErrSurfaceUnavailable
	}
	s.acquired++
	return &Target{b: s.b}, nil
}

func (s *Surface) Present() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.record()
	s.presented++
}

func (s *Surface) Resize(width, height int) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.width, s.height = width, height
}

func (s *Surface) Acquired() int  { s.b.mu.Lock(); defer s.b.mu.Unlock(); return s.acquired }
func (s *Surface) Presented() int { s.b.mu.Lock(); defer s.b.mu.Unlock(); return s.presented }

func (s *Surface) Size() (int, int) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return s.width, s.height
}

// Draw is one recorded DrawIndexed call with the pass state it saw.
type Draw struct {
	Pipeline      *Pipeline
	VertexBuffer  *Buffer
	IndexBuffer   *Buffer
	IndexFormat   gpu.IndexFormat
	IndexCount    uint32
	FillMode      gpu.FillMode
	Uniforms      []byte
	UniformStages gpu.ShaderStage
}

type CommandEncoder struct {
	b     *Backend
	Label string

	passes   []*RenderPass
	finished bool
	released bool
}

func (e *CommandEncoder) BeginRenderPass(target gpu.RenderTarget, clear gpu.Color) (gpu.RenderPass, error) {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	e.b.record()
	pass := &RenderPass{
		b:             e.b,
		Target:        target.(*Target),
		Clear:         clear,
		vertexBuffers: map[uint32]*Buffer{},
	}
	e.passes = append(e.passes, pass)
	return pass, nil
}

func (e *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	e.b.record()
	cmd := &CommandBuffer{b: e.b}
	for _, p := range e.passes {
		if !p.ended {
			return nil, ErrNotFinished
		}
		cmd.Draws = append(cmd.Draws, p.draws...)
	}
	e.finished = true
	return cmd, nil
}

func (e *CommandEncoder) Release() {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	e.released = true
}

func (e *CommandEncoder) Passes() []*RenderPass {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	return append([]*RenderPass(nil), e.passes...)
}

func (e *CommandEncoder) Finished() bool { e.b.mu.Lock(); defer e.b.mu.Unlock(); return e.finished }
func (e *CommandEncoder) Released() bool { e.b.mu.Lock(); defer e.b.mu.Unlock(); return e.released }

type CommandBuffer struct {
	b        *Backend
	Draws    []Draw
	released bool
}

func (c *CommandBuffer) Release() {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	c.released = true
}

type RenderPass struct {
	b      *Backend
	Target *Target
	Clear  gpu.Color

	pipeline      *Pipeline
	vertexBuffers map[uint32]*Buffer
	uniforms      []byte
	uniformStages gpu.ShaderStage
	fillMode      gpu.FillMode
	draws         []Draw
	ended         bool
}

func (p *RenderPass) SetPipeline(pl gpu.Pipeline) {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.record()
	p.pipeline = pl.(*Pipeline)
}

func (p *RenderPass) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.record()
	p.vertexBuffers[slot] = buf.(*Buffer)
}

func (p *RenderPass) SetUniforms(stages gpu.ShaderStage, data []byte) {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.record()
	p.uniforms = append([]byte(nil), data...)
	p.uniformStages |= stages
}

func (p *RenderPass) SetTriangleFillMode(mode gpu.FillMode) {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.record()
	p.fillMode = mode
}

func (p *RenderPass) DrawIndexed(index gpu.Buffer, format gpu.IndexFormat, indexCount uint32) {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.record()
	p.draws = append(p.draws, Draw{
		Pipeline:      p.pipeline,
		VertexBuffer:  p.vertexBuffers[0],
		IndexBuffer:   index.(*Buffer),
		IndexFormat:   format,
		IndexCount:    indexCount,
		FillMode:      p.fillMode,
		Uniforms:      p.uniforms,
		UniformStages: p.uniformStages,
	})
}

func (p *RenderPass) End() error {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.record()
	if p.ended {
		return ErrPassEnded
	}
	p.ended = true
	return nil
}
