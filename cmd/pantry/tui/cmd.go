// Package tuicmd implements the `pantry tui` command.
package tuicmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/config"
	"github.com/go-ports/pantry/internal/logging"
	"github.com/go-ports/pantry/internal/service"
	"github.com/go-ports/pantry/internal/tui"
)

// Command implements `pantry tui`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	page  string
	style string
}

// New creates the tui command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive pantry dashboard",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	f := c.cmd.Flags()
	f.StringVar(&c.page, "page", "dashboard", "Start page: dashboard, ingredients, recipes, expiration, shopping, meals")
	f.StringVar(&c.style, "style", "auto", "Glamour style for recipe details: auto, dark, light, notty")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// The TUI owns the terminal, so logs go to <home>/logs/pantry.log.
func (c *Command) run(cmd *cobra.Command, _ []string) error {
	start, err := tui.PageByName(c.page)
	if err != nil {
		return err
	}

	home := c.ctx.Home()
	log, closer, err := logging.OpenFile(config.LogDir(home), c.ctx.LogLevel())
	if err != nil {
		return err
	}
	defer closer.Close()

	svc, err := service.New(home, service.WithBaseURL(c.ctx.APIURL), service.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info("tui started", "home", home, "api", svc.Config.API.BaseURL)
	return tui.Run(cmd.Context(), svc,
		tui.WithLogger(log),
		tui.WithStartPage(start),
		tui.WithGlamourStyle(c.style),
	)
}
