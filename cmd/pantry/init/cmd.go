// Package initcmd implements the `pantry init` command.
package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/config"
)

// Command implements `pantry init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize the pantry home with a starter config",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	home := c.ctx.Home()
	if err := os.MkdirAll(config.LogDir(home), 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if _, _, err := config.WriteTemplate(home, false); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pantry home initialized at %s\n", home)
	return nil
}
