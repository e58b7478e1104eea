// Package setupcmd implements the `pantry setup` and `pantry uninstall`
// command groups.
package setupcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/setup"
)

// Command implements `pantry setup` or `pantry uninstall`.
type Command struct {
	ctx    *shared.Context
	cmd    *cobra.Command
	remove bool

	root    string
	project bool
	command string
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	return newGroup(ctx, false)
}

// NewUninstall creates the uninstall command group.
func NewUninstall(ctx *shared.Context) *Command {
	return newGroup(ctx, true)
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

//revive:disable:flag-parameter
func newGroup(ctx *shared.Context, remove bool) *Command {
	c := &Command{ctx: ctx, remove: remove}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Register the pantry MCP server with a coding agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	if remove {
		c.cmd.Use = "uninstall"
		c.cmd.Short = "Remove the pantry MCP server from a coding agent"
	}

	f := c.cmd.PersistentFlags()
	f.StringVar(&c.root, "config-dir", "", "Directory the agent config lives under (default: home, or cwd with --project)")
	f.BoolVar(&c.project, "project", false, "Use the project-level config in the current directory")
	if !remove {
		f.StringVar(&c.command, "command", "pantry", "Executable the agent should launch")
	}

	for _, agent := range setup.Agents() {
		c.cmd.AddCommand(c.agentCmd(agent))
	}
	return c
}

//revive:enable:flag-parameter

func (c *Command) agentCmd(agent setup.Agent) *cobra.Command {
	short := "Install the pantry MCP server into " + string(agent)
	if c.remove {
		short = "Remove the pantry MCP server from " + string(agent)
	}
	return &cobra.Command{
		Use:   string(agent),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := setup.Target{
				Agent:      agent,
				Root:       c.root,
				Project:    c.project,
				Command:    c.command,
				PantryHome: c.ctx.PantryHome,
				APIURL:     c.ctx.APIURL,
			}
			run := setup.Install
			if c.remove {
				run = setup.Uninstall
			}
			res, err := run(target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}
