package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/hellomesh/rt/gpu"
)

var (
	_ gpu.Device         = (*Device)(nil)
	_ gpu.Queue          = (*Queue)(nil)
	_ gpu.Surface        = (*Surface)(nil)
	_ gpu.CommandEncoder = (*CommandEncoder)(nil)
	_ gpu.RenderPass     = (*RenderPass)(nil)
	_ gpu.Pipeline       = (*Pipeline)(nil)
)

type Buffer struct {
	buf   *wgpu.Buffer
	label string
	size  uint64

	// edges is the line-list companion of an index buffer, drawn when the
	// pass fill mode is lines.
	edges     *wgpu.Buffer
	edgeCount uint32
}

func (b *Buffer) Label() string { return b.label }
func (b *Buffer) Size() uint64  { return b.size }

func (b *Buffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
	if b.edges != nil {
		b.edges.Release()
		b.edges = nil
	}
}

type Device struct {
	state *GPUState
}

func (d *Device) CreateBuffer(label string, usage gpu.BufferUsage, contents []byte) (gpu.Buffer, error) {
	buf, err := d.state.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    bufferUsage(usage),
	})
	if err != nil {
		return nil, err
	}
	out := &Buffer{buf: buf, label: label, size: uint64(len(contents))}

	if usage&gpu.BufferUsageIndex != 0 {
		lines := gpu.LineListIndices(gpu.DecodeIndices(contents, len(contents)/2))
		data, err := gpu.Bytes(lines)
		if err != nil {
			buf.Release()
			return nil, err
		}
		edges, err := d.state.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    label + " Edges",
			Contents: gpu.Align4(data),
			Usage:    wgpu.BufferUsageIndex,
		})
		if err != nil {
			buf.Release()
			return nil, err
		}
		out.edges = edges
		out.edgeCount = uint32(len(lines))
	}
	return out, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	enc, err := d.state.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &CommandEncoder{enc: enc, queue: d.state.Queue}, nil
}

type Queue struct {
	queue *wgpu.Queue
}

func (q *Queue) Submit(cmd gpu.CommandBuffer) {
	q.queue.Submit(cmd.(*CommandBuffer).cmd)
}

// Surface presents into the window surface of a GPUState.
type Surface struct {
	state *GPUState
	clear wgpu.Color
}

func (s *Surface) Format() gpu.TextureFormat { return gpu.TextureFormat(s.state.Config.Format) }

func (s *Surface) ClearColor() gpu.Color {
	return gpu.Color{R: s.clear.R, G: s.clear.G, B: s.clear.B, A: s.clear.A}
}

func (s *Surface) SetClearColor(c gpu.Color) { s.clear = color(c) }

func (s *Surface) AcquireTarget() (gpu.RenderTarget, error) {
	if s.state.Config.Width == 0 || s.state.Config.Height == 0 {
		return nil, gpu.ErrSurfaceUnavailable
	}
	tex, err := s.state.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gpu.ErrSurfaceUnavailable, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%w: %v", gpu.ErrSurfaceUnavailable, err)
	}
	return &Target{tex: tex, view: view}, nil
}

func (s *Surface) Present() { s.state.Surface.Present() }

// Resize reconfigures the surface. A zero size leaves it unconfigured and
// every AcquireTarget fails until the next non-zero resize.
func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		s.state.Config.Width, s.state.Config.Height = 0, 0
		return
	}
	s.state.Config.Width = uint32(width)
	s.state.Config.Height = uint32(height)
	s.state.Surface.Configure(s.state.Adapter, s.state.Device, s.state.Config)
}

type Target struct {
	tex  *wgpu.Texture
	view *wgpu.TextureView
}

func (t *Target) Release() {
	t.view.Release()
	t.tex.Release()
}

type CommandBuffer struct {
	cmd *wgpu.CommandBuffer
}

func (c *CommandBuffer) Release() { c.cmd.Release() }

type CommandEncoder struct {
	enc   *wgpu.CommandEncoder
	queue *wgpu.Queue
}

func (e *CommandEncoder) BeginRenderPass(target gpu.RenderTarget, clear gpu.Color) (gpu.RenderPass, error) {
	t, ok := target.(*Target)
	if !ok {
		return nil, fmt.Errorf("webgpu: foreign render target %T", target)
	}
	pass := e.enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       t.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: color(clear),
			},
		},
	})
	return &RenderPass{pass: pass, queue: e.queue}, nil
}

func (e *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	cmd, err := e.enc.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &CommandBuffer{cmd: cmd}, nil
}

func (e *CommandEncoder) Release() { e.enc.Release() }

// RenderPass defers the pipeline variant choice to DrawIndexed, where the
// fill mode is final.
type RenderPass struct {
	pass  *wgpu.RenderPassEncoder
	queue *wgpu.Queue

	pipeline *Pipeline
	fill     gpu.FillMode
	uniforms []byte
}

func (p *RenderPass) SetPipeline(pl gpu.Pipeline) {
	p.pipeline = pl.(*Pipeline)
}

func (p *RenderPass) SetVertexBuffer(slot uint32, b gpu.Buffer) {
	p.pass.SetVertexBuffer(slot, b.(*Buffer).buf, 0, wgpu.WholeSize)
}

func (p *RenderPass) SetUniforms(stages gpu.ShaderStage, data []byte) {
	p.uniforms = data
}

func (p *RenderPass) SetTriangleFillMode(mode gpu.FillMode) {
	p.fill = mode
}

func (p *RenderPass) DrawIndexed(index gpu.Buffer, format gpu.IndexFormat, indexCount uint32) {
	if p.pipeline == nil {
		return
	}
	ib := index.(*Buffer)
	if p.uniforms != nil {
		_ = p.queue.WriteBuffer(p.pipeline.uniforms, 0, p.uniforms)
	}

	if p.fill == gpu.FillModeLines && ib.edges != nil {
		p.pass.SetPipeline(p.pipeline.lines)
		p.pass.SetBindGroup(0, p.pipeline.bindGroup, nil)
		p.pass.SetIndexBuffer(ib.edges, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		p.pass.DrawIndexed(min(2*indexCount, ib.edgeCount), 1, 0, 0, 0)
		return
	}
	p.pass.SetPipeline(p.pipeline.fill)
	p.pass.SetBindGroup(0, p.pipeline.bindGroup, nil)
	p.pass.SetIndexBuffer(ib.buf, indexFormat(format), 0, wgpu.WholeSize)
	p.pass.DrawIndexed(indexCount, 1, 0, 0, 0)
}

func (p *RenderPass) End() error {
	defer p.pass.Release()
	return p.pass.End()
}
