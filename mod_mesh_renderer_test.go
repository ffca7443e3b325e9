package hellomesh

import (
	"testing"

	"github.com/gekko3d/hellomesh/rt/core"
	"github.com/gekko3d/hellomesh/rt/gpu"
	"github.com/gekko3d/hellomesh/rt/gpu/gputest"
	"github.com/gekko3d/hellomesh/rt/renderer"
	"github.com/gekko3d/hellomesh/rt/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHeadlessMeshApp wires the keyboard, controls and render systems of the
// mesh renderer module onto a recording backend.
func newHeadlessMeshApp(t *testing.T, cfg Config) (*App, *Input, *gputest.Backend, *MeshRendererState) {
	t.Helper()
	b := gputest.New()
	r, err := renderer.New(renderer.Config{
		Device:  b.Device,
		Queue:   b.Queue,
		Surface: b.Surface,
		Shaders: gpu.ParseShaderLibrary("Mesh Shader", shaders.MeshWGSL),
	})
	require.NoError(t, err)

	app := newApp()
	cmd := app.Commands()
	input := &Input{}
	ws := &WindowState{Width: cfg.Window.Width, Height: cfg.Window.Height}
	cmd.AddResources(input, ws)
	controls, _ := ensureControlResources(app, cmd, cfg)

	mr := newMeshRendererState(r, b.Surface, app.Logger())
	mr.sync(controls, ControlChange{Shape: true, Wireframe: true, Scale: true})
	cmd.AddResources(mr)

	cmd.UseSystem(System(keyboardControlsSystem).InStage(Update))
	cmd.UseSystem(System(meshResizeSystem).InStage(PreRender))
	cmd.UseSystem(System(meshControlsSystem).InStage(PreRender))
	cmd.UseSystem(System(meshRenderSystem).InStage(Render))
	return app, input, b, mr
}

func TestMeshRenderer_InitialFrame(t *testing.T) {
	app, _, b, mr := newHeadlessMeshApp(t, DefaultConfig())

	app.Step()

	draw, ok := b.Queue.LastDraw()
	require.True(t, ok)
	assert.Equal(t, uint32(3), draw.IndexCount)
	assert.Equal(t, "fill", draw.FillMode.String())
	assert.Equal(t, uint64(1), mr.Submitted)
}

func TestMeshRenderer_CubeWireframeEndToEnd(t *testing.T) {
	app, input, b, _ := newHeadlessMeshApp(t, DefaultConfig())

	input.setKey(Key2, true)
	input.setKey(KeyW, true)
	app.Step()

	draw, _ := b.Queue.LastDraw()
	assert.Equal(t, "lines", draw.FillMode.String())
	assert.Equal(t, uint32(36), draw.IndexCount)

	input.setKey(Key2, false)
	input.setKey(KeyW, false)
	app.Step()
	input.setKey(KeyW, true)
	app.Step()

	draw, _ = b.Queue.LastDraw()
	assert.Equal(t, "fill", draw.FillMode.String())
	assert.Equal(t, uint32(36), draw.IndexCount)
}

func TestMeshRenderer_ShapeSwitchReleasesBuffers(t *testing.T) {
	app, _, b, mr := newHeadlessMeshApp(t, DefaultConfig())
	events, _ := Resource[ControlEvents](app)

	app.Step()
	first, _ := b.Queue.LastDraw()

	events.Push(ShapeSelected{Index: 1})
	app.Step()
	second, _ := b.Queue.LastDraw()

	assert.True(t, first.VertexBuffer.Released())
	assert.True(t, first.IndexBuffer.Released())
	assert.False(t, second.IndexBuffer.Released())
	assert.Len(t, b.Device.LiveBuffers(), 2)

	mesh, ok := mr.Renderer.Mesh()
	require.True(t, ok)
	assert.Equal(t, core.ShapeCube, mesh.Shape)
}

func TestMeshRenderer_ScaleEvents(t *testing.T) {
	app, input, _, mr := newHeadlessMeshApp(t, DefaultConfig())

	input.setKey(KeyMinus, true)
	app.Step()
	assert.Equal(t, core.ScaleMatrix(0.9), mr.Renderer.Uniforms().ModelMatrix)
	input.setKey(KeyMinus, false)

	events, _ := Resource[ControlEvents](app)
	events.Push(ScaleChanged{Scale: 100})
	app.Step()
	assert.Equal(t, core.ScaleMatrix(2), mr.Renderer.Uniforms().ModelMatrix, "clamped to scale max")
}

func TestMeshRenderer_ResizeAndSkippedFrames(t *testing.T) {
	app, _, b, mr := newHeadlessMeshApp(t, DefaultConfig())
	ws, _ := Resource[WindowState](app)

	ws.onFramebufferResize(800, 600)
	app.Step()
	w, h := b.Surface.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	b.Surface.Unavailable = true
	app.Step()
	assert.Equal(t, uint64(1), mr.Skipped)
	assert.Len(t, b.Queue.Submissions(), 1)
}

func TestEnsureSingleRenderer(t *testing.T) {
	app := newApp()
	cmd := app.Commands()

	ensureSingleRenderer(app, cmd, RendererMesh)
	ensureSingleRenderer(app, cmd, RendererMesh)
	assert.Panics(t, func() { ensureSingleRenderer(app, cmd, RendererName("other")) })
}
