package hellomesh

// ControlsModule maps keyboard input to control events:
//
//	1, 2       select triangle, cube
//	Tab        next shape
//	W          toggle wireframe
//	+, -       step the scale (keypad too)
//	Escape     quit
type ControlsModule struct {
	Config Config
}

func (m ControlsModule) Install(app *App, cmd *Commands) {
	ensureControlResources(app, cmd, m.Config)
	cmd.UseSystem(System(keyboardControlsSystem).InStage(Update))
}

// ensureControlResources installs the ControlState and ControlEvents queue
// once, whichever module asks first.
func ensureControlResources(app *App, cmd *Commands, cfg Config) (*ControlState, *ControlEvents) {
	state, ok := Resource[ControlState](app)
	if !ok {
		state = NewControlState(cfg)
		cmd.AddResources(state)
	}
	events, ok := Resource[ControlEvents](app)
	if !ok {
		events = NewControlEvents(controlEventsCapacity, app.Logger())
		cmd.AddResources(events)
	}
	return state, events
}

func keyboardControlsSystem(input *Input, state *ControlState, events *ControlEvents, cmd *Commands) {
	if input.CloseRequested || input.JustPressed[KeyEscape] {
		cmd.Exit()
		return
	}

	switch {
	case input.JustPressed[Key1]:
		events.Push(ShapeSelected{Index: 0})
	case input.JustPressed[Key2]:
		events.Push(ShapeSelected{Index: 1})
	case input.JustPressed[KeyTab]:
		events.Push(ShapeSelected{Index: state.NextShapeIndex()})
	}

	if input.JustPressed[KeyW] {
		events.Push(WireframeToggled{On: !state.Wireframe})
	}

	if input.JustPressed[KeyEqual] || input.JustPressed[KeyKPPlus] {
		events.Push(ScaleChanged{Scale: state.Scale + state.ScaleStep})
	} else if input.JustPressed[KeyMinus] || input.JustPressed[KeyKPMinus] {
		events.Push(ScaleChanged{Scale: state.Scale - state.ScaleStep})
	}
}
