package marcher

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops App.Run once the current tick completes.
func (cmd *Commands) Exit() *Commands {
	cmd.app.requestExit()
	return cmd
}
