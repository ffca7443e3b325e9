package hellomesh

import (
	"github.com/gekko3d/hellomesh/rt/core"
	"github.com/gekko3d/hellomesh/rt/gpu"
	"github.com/gekko3d/hellomesh/rt/gpu/webgpu"
	"github.com/gekko3d/hellomesh/rt/renderer"
	"github.com/gekko3d/hellomesh/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshRendererModule draws the selected shape into the shared window through
// WebGPU. Device, surface or shader failures are fatal and panic.
type MeshRendererModule struct {
	Config Config
}

// MeshRendererState is the renderer resource plus frame statistics.
type MeshRendererState struct {
	Renderer *renderer.Renderer

	Submitted uint64
	Skipped   uint64

	gpu     *webgpu.GPUState
	surface gpu.Surface
	log     Logger
}

func newMeshRendererState(r *renderer.Renderer, surface gpu.Surface, log Logger) *MeshRendererState {
	return &MeshRendererState{Renderer: r, surface: surface, log: log}
}

func (m MeshRendererModule) Install(app *App, cmd *Commands) {
	log := app.Logger()
	ensureSingleRenderer(app, cmd, RendererMesh)
	ws := ensureWindowResource(app, cmd, m.Config.Window)
	controls, _ := ensureControlResources(app, cmd, m.Config)

	state, err := webgpu.NewGPUState(ws.window)
	if err != nil {
		panic(err)
	}
	device, queue, surface := state.Backend()

	clear, err := m.Config.ClearColorValue()
	if err != nil {
		panic(err)
	}
	surface.SetClearColor(clear)

	lib, err := gpu.LoadShaderLibrary("Mesh Shader", shaders.MeshWGSL)
	if err != nil {
		panic(err)
	}

	r, err := renderer.New(renderer.Config{
		Device:  device,
		Queue:   queue,
		Surface: surface,
		Shaders: lib,
		Logger:  log,
	})
	if err != nil {
		panic(err)
	}

	mr := newMeshRendererState(r, surface, log)
	mr.gpu = state
	mr.sync(controls, ControlChange{Shape: true, Wireframe: true, Scale: true})

	cmd.AddResources(mr)
	cmd.OnShutdown(mr.release)
	cmd.UseSystem(System(meshResizeSystem).InStage(PreRender))
	cmd.UseSystem(System(meshControlsSystem).InStage(PreRender))
	cmd.UseSystem(System(meshRenderSystem).InStage(Render))

	log.Infof("Mesh renderer ready: %s, wireframe=%t, scale=%g", controls.Shape, controls.Wireframe, controls.Scale)
}

// sync pushes the changed parts of the control state into the renderer.
func (s *MeshRendererState) sync(controls *ControlState, change ControlChange) {
	if change.Shape {
		s.Renderer.SetMesh(core.BuildMesh(controls.Shape))
	}
	if change.Wireframe {
		s.Renderer.SetWireframe(controls.Wireframe)
	}
	if change.Scale {
		s.Renderer.SetModelMatrix(core.BuildTransform(mgl32.Vec3{}, 0, 0, 0, controls.Scale))
	}
}

func (s *MeshRendererState) release() {
	s.Renderer.Release()
	if s.gpu != nil {
		s.gpu.Release()
	}
}

func meshResizeSystem(ws *WindowState, mr *MeshRendererState) {
	if w, h, ok := ws.TakeResize(); ok {
		mr.surface.Resize(w, h)
		mr.Renderer.Resize(w, h)
	}
}

func meshControlsSystem(controls *ControlState, events *ControlEvents, mr *MeshRendererState) {
	change := controls.ApplyAll(events.Drain())
	if !change.Any() {
		return
	}
	mr.sync(controls, change)
	mr.log.Debugf("Controls: shape=%s wireframe=%t scale=%g", controls.Shape, controls.Wireframe, controls.Scale)
}

func meshRenderSystem(mr *MeshRendererState) {
	if mr.Renderer.OnFrame() {
		mr.Submitted++
	} else {
		mr.Skipped++
	}
}
