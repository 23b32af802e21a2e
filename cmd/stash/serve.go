package main

import (
	"fmt"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := deps.Server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	deps.Logger.Info("listening", "addr", c.Addr, "port", deps.Server.Port())

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return deps.Server.Close()
}
