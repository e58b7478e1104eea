// Package expirationcmd implements the `pantry expiration` command.
package expirationcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/expiration"
	"github.com/go-ports/pantry/internal/models"
)

// Command implements `pantry expiration`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	days int
	json bool
}

// New creates the expiration command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "expiration",
		Aliases: []string{"expiring"},
		Short:   "Show ingredients by expiration status",
		Long: `Show every ingredient with its expiration status, soonest first.

With --days, ask the API which ingredients expire within that many days instead.`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}
	f := c.cmd.Flags()
	f.IntVar(&c.days, "days", 0, "Only list ingredients the API reports as expiring within this many days")
	f.BoolVar(&c.json, "json", false, "Print rows as JSON")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

type row struct {
	models.Ingredient
	Status   string `json:"status,omitempty"`
	DaysLeft *int   `json:"daysLeft,omitempty"`
}

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var rows []expiration.Row
	var summary expiration.Summary
	if c.days > 0 {
		items, err := svc.Expiring(cmd.Context(), c.days)
		if err != nil {
			return err
		}
		rows = expiration.Report(items, svc.Now())
	} else {
		rep, err := svc.Expiration(cmd.Context())
		if err != nil {
			return err
		}
		rows, summary = rep.Rows, rep.Summary
	}

	out := cmd.OutOrStdout()
	if c.json {
		view := make([]row, len(rows))
		for i, r := range rows {
			view[i] = row{Ingredient: r.Ingredient}
			if r.Valid {
				days := r.DaysLeft
				view[i].Status, view[i].DaysLeft = string(r.Status), &days
			}
		}
		return shared.WriteJSON(out, view)
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, "No ingredients found.")
		return nil
	}
	fmt.Fprintf(out, "%-24s %-12s %-10s %s\n", "NAME", "EXPIRES", "STATUS", "DAYS LEFT")
	for _, r := range rows {
		status := "-"
		if r.Valid {
			status = string(r.Status)
		}
		fmt.Fprintf(out, "%-24s %-12s %-10s %s\n", r.Ingredient.Name, r.Ingredient.ExpirationDate, status, r.DaysLeftLabel())
	}
	if c.days == 0 {
		fmt.Fprintln(out)
		for _, s := range expiration.Statuses {
			fmt.Fprintf(out, "%s: %d\n", s.Title(), summary[s])
		}
	}
	return nil
}
