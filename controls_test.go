package hellomesh

import (
	"testing"

	"github.com/gekko3d/hellomesh/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlState_Apply(t *testing.T) {
	s := NewControlState(DefaultConfig())
	require.Equal(t, core.ShapeTriangle, s.Shape)

	assert.Equal(t, ControlChange{Shape: true}, s.Apply(ShapeSelected{Index: 1}))
	assert.Equal(t, core.ShapeCube, s.Shape)

	assert.False(t, s.Apply(ShapeSelected{Index: 7}).Any(), "unknown index is ignored")
	assert.False(t, s.Apply(ShapeSelected{Index: -1}).Any())
	assert.Equal(t, core.ShapeCube, s.Shape)

	assert.Equal(t, ControlChange{Wireframe: true}, s.Apply(WireframeToggled{On: true}))
	assert.False(t, s.Apply(WireframeToggled{On: true}).Any())
	assert.True(t, s.Wireframe)
}

func TestControlState_ScaleClamped(t *testing.T) {
	s := NewControlState(DefaultConfig())

	assert.True(t, s.Apply(ScaleChanged{Scale: 10}).Scale)
	assert.Equal(t, float32(2), s.Scale)

	assert.False(t, s.Apply(ScaleChanged{Scale: 3}).Any(), "already at max")

	s.Apply(ScaleChanged{Scale: 0})
	assert.Equal(t, float32(0.1), s.Scale)
}

func TestControlState_ApplyAll(t *testing.T) {
	s := NewControlState(DefaultConfig())
	change := s.ApplyAll([]ControlEvent{
		ShapeSelected{Index: 1},
		ScaleChanged{Scale: 1.5},
	})
	assert.Equal(t, ControlChange{Shape: true, Scale: true}, change)
	assert.Equal(t, 0, s.NextShapeIndex())
}

func TestControlEvents_DropsWhenFull(t *testing.T) {
	q := NewControlEvents(2, nil)
	assert.True(t, q.Push(ShapeSelected{Index: 0}))
	assert.True(t, q.Push(WireframeToggled{On: true}))
	assert.False(t, q.Push(ScaleChanged{Scale: 1}))

	assert.Equal(t, []ControlEvent{ShapeSelected{Index: 0}, WireframeToggled{On: true}}, q.Drain())
	assert.Empty(t, q.Drain())
}

func newKeyboardApp(t *testing.T) (*App, *Input, *ControlEvents) {
	t.Helper()
	app := newApp()
	input := &Input{}
	app.addResources(input)
	ensureControlResources(app, app.Commands(), DefaultConfig())
	app.UseSystem(System(keyboardControlsSystem))
	events, _ := Resource[ControlEvents](app)
	return app, input, events
}

func TestKeyboardControls(t *testing.T) {
	app, input, events := newKeyboardApp(t)

	input.setKey(Key2, true)
	input.setKey(KeyW, true)
	input.setKey(KeyKPPlus, true)
	app.Step()
	assert.Equal(t, []ControlEvent{
		ShapeSelected{Index: 1},
		WireframeToggled{On: true},
		ScaleChanged{Scale: 1.1},
	}, events.Drain())

	// held keys do not repeat
	input.setKey(Key2, true)
	input.setKey(KeyW, true)
	input.setKey(KeyKPPlus, true)
	app.Step()
	assert.Empty(t, events.Drain())

	input.setKey(Key2, false)
	input.setKey(KeyTab, true)
	app.Step()
	assert.Equal(t, []ControlEvent{ShapeSelected{Index: 1}}, events.Drain())
}

func TestKeyboardControls_Escape(t *testing.T) {
	app, input, _ := newKeyboardApp(t)

	input.setKey(KeyEscape, true)
	app.Step()
	assert.True(t, app.exiting)
}

func TestInput_SetKey(t *testing.T) {
	var input Input
	input.setKey(KeyW, true)
	assert.True(t, input.Pressed[KeyW])
	assert.True(t, input.JustPressed[KeyW])

	input.setKey(KeyW, true)
	assert.False(t, input.JustPressed[KeyW])

	input.setKey(KeyW, false)
	assert.False(t, input.Pressed[KeyW])
	assert.True(t, input.JustReleased[KeyW])
}
