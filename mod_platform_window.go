package hellomesh

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the shared GLFW window. Framebuffer resizes are recorded
// by callback and consumed once by the renderer.
type WindowState struct {
	window *glfw.Window
	Width  int
	Height int
	Title  string

	resized bool
}

// TakeResize returns the pending framebuffer size, if the window was resized
// since the last call.
func (s *WindowState) TakeResize() (width, height int, ok bool) {
	if !s.resized {
		return 0, 0, false
	}
	s.resized = false
	return s.Width, s.Height, true
}

func (s *WindowState) onFramebufferResize(width, height int) {
	s.Width, s.Height = width, height
	s.resized = true
}

func createWindowState(width int, height int, title string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // no OpenGL context, WebGPU owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		panic(err)
	}

	s := &WindowState{
		window: win,
		Title:  title,
	}
	s.Width, s.Height = win.GetFramebufferSize()
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		s.onFramebufferResize(w, h)
	})
	return s
}

func (s *WindowState) destroy() {
	s.window.Destroy()
	glfw.Terminate()
}

// PlatformWindowModule creates the single shared window. Install is
// idempotent: an existing WindowState is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(cfg WindowConfig) *PlatformWindowModule {
	def := DefaultConfig().Window
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	return &PlatformWindowModule{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if app.hasResource((*WindowState)(nil)) {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	cmd.AddResources(ws)
	cmd.OnShutdown(ws.destroy)
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)
}
