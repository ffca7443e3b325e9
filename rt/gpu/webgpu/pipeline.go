package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/hellomesh/rt/gpu"
)

// Pipeline is a triangle-list pipeline plus its line-list twin. Both share
// one explicit layout, so a single uniform bind group serves either.
type Pipeline struct {
	label string

	fill  *wgpu.RenderPipeline
	lines *wgpu.RenderPipeline

	bindGroupLayout *wgpu.BindGroupLayout
	layout          *wgpu.PipelineLayout
	uniforms        *wgpu.Buffer
	bindGroup       *wgpu.BindGroup
}

func (p *Pipeline) Label() string { return p.label }

func (p *Pipeline) Release() {
	for _, rp := range []*wgpu.RenderPipeline{p.fill, p.lines} {
		if rp != nil {
			rp.Release()
		}
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.uniforms != nil {
		p.uniforms.Release()
	}
	if p.layout != nil {
		p.layout.Release()
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
	}
	*p = Pipeline{label: p.label}
}

func (d *Device) createShaderModule(lib *gpu.ShaderLibrary) (*wgpu.ShaderModule, error) {
	return d.state.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          lib.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: lib.Source},
	})
}

func (d *Device) CreateRenderPipeline(desc *gpu.PipelineDescriptor) (gpu.Pipeline, error) {
	device := d.state.Device

	vsModule, err := d.createShaderModule(desc.Vertex.Library)
	if err != nil {
		return nil, err
	}
	defer vsModule.Release()
	fsModule := vsModule
	if desc.Fragment.Library != desc.Vertex.Library {
		fsModule, err = d.createShaderModule(desc.Fragment.Library)
		if err != nil {
			return nil, err
		}
		defer fsModule.Release()
	}

	p := &Pipeline{label: desc.Label}
	ok := false
	defer func() {
		if !ok {
			p.Release()
		}
	}()

	p.bindGroupLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: desc.Label + " Uniforms BGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: shaderStage(gpu.ShaderStageVertex | gpu.ShaderStageFragment),
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: desc.UniformSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	p.layout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label + " Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.bindGroupLayout},
	})
	if err != nil {
		return nil, err
	}

	p.uniforms, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: desc.Label + " Uniforms",
		Size:  desc.UniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	p.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  desc.Label + " Uniforms",
		Layout: p.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  p.uniforms,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	variant := func(name string, topology wgpu.PrimitiveTopology, cull wgpu.CullMode) (*wgpu.RenderPipeline, error) {
		return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  fmt.Sprintf("%s (%s)", desc.Label, name),
			Layout: p.layout,
			Vertex: wgpu.VertexState{
				Module:     vsModule,
				EntryPoint: desc.Vertex.Name,
				Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout(desc.VertexLayout)},
			},
			Fragment: &wgpu.FragmentState{
				Module:     fsModule,
				EntryPoint: desc.Fragment.Name,
				Targets: []wgpu.ColorTargetState{
					{
						Format:    wgpu.TextureFormat(desc.ColorFormat),
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  topology,
				FrontFace: frontFace(desc.FrontFace),
				CullMode:  cull,
			},
			Multisample: wgpu.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		})
	}

	if p.fill, err = variant("fill", wgpu.PrimitiveTopologyTriangleList, cullMode(desc.CullMode)); err != nil {
		return nil, err
	}
	// Lines have no facing; culling does not apply.
	if p.lines, err = variant("lines", wgpu.PrimitiveTopologyLineList, wgpu.CullModeNone); err != nil {
		return nil, err
	}

	ok = true
	return p, nil
}
