package hellomesh

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererMesh RendererName = "mesh"
)

// ensureWindowResource guarantees a single shared WindowState exists,
// creating one from cfg (or defaults) when missing.
func ensureWindowResource(app *App, cmd *Commands, cfg WindowConfig) *WindowState {
	if ws, ok := Resource[WindowState](app); ok {
		return ws
	}
	NewPlatformWindow(cfg).Install(app, cmd)
	ws, _ := Resource[WindowState](app)
	return ws
}

// UseMeshRenderer installs the window, input, controls and mesh renderer
// modules for cfg, in that order.
func (b *AppBuilder) UseMeshRenderer(cfg Config) *AppBuilder {
	return b.UseModule(
		NewPlatformWindow(cfg.Window),
		InputModule{},
		ControlsModule{Config: cfg},
		MeshRendererModule{Config: cfg},
	)
}
