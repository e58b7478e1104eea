// Package dashboardcmd implements the `pantry dashboard` command.
package dashboardcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
)

// Command implements `pantry dashboard`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	json bool
}

// New creates the dashboard command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Show pantry summary counts",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.json, "json", false, "Print counts as JSON")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	counts, err := svc.Dashboard(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.json {
		return shared.WriteJSON(out, counts)
	}
	for _, card := range counts.Cards(svc.Config.Dashboard.ExpiringDays) {
		fmt.Fprintf(out, "%-14s %4d  %s\n", card.Title, card.Value, card.Hint)
	}
	return nil
}
