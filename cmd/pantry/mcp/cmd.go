// Package mcpcmd implements the `pantry mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	internalmcp "github.com/go-ports/pantry/internal/mcp"
)

// Command implements `pantry mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the pantry MCP server (stdio transport)",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// stdout carries the protocol, so service logs go to stderr.
func (c *Command) run(cmd *cobra.Command, _ []string) error {
	return internalmcp.Serve(cmd.Context(), c.ctx.Home(), c.ctx.ServiceOptions(cmd.ErrOrStderr())...)
}
