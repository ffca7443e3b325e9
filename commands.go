package hellomesh

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Exit stops the App after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exit()
}

// OnShutdown registers fn to run when the App stops. Cleanups run in
// reverse registration order.
func (cmd *Commands) OnShutdown(fn func()) *Commands {
	cmd.app.addCleanup(fn)
	return cmd
}
