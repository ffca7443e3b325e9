package hellomesh

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	Key1 int = iota
	Key2
	KeyTab
	KeyW
	KeyEscape
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed [keyCount]bool

	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	CloseRequested bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

// setKey records the key state seen this frame and derives the edge flags.
func (input *Input) setKey(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		switch s.window.GetKey(glfwKey) {
		case glfw.Press, glfw.Repeat:
			input.setKey(key, true)
		default:
			input.setKey(key, false)
		}
	}
	input.CloseRequested = s.window.ShouldClose()
}

var keyToGlfw = map[int]glfw.Key{
	Key1:       glfw.Key1,
	Key2:       glfw.Key2,
	KeyTab:     glfw.KeyTab,
	KeyW:       glfw.KeyW,
	KeyEscape:  glfw.KeyEscape,
	KeyMinus:   glfw.KeyMinus,
	KeyEqual:   glfw.KeyEqual,
	KeyKPPlus:  glfw.KeyKPAdd,
	KeyKPMinus: glfw.KeyKPSubtract,
}
