// Package configcmd implements the `pantry config` command group.
package configcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/config"
	"github.com/go-ports/pantry/internal/redaction"
)

// Command implements `pantry config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(ctx),
		newSetHome(),
		newClearHome(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	home, source := config.ResolveHome()
	if c.ctx.PantryHome != "" {
		home = c.ctx.PantryHome
		source = "flag"
	}
	cfg, err := config.Load(config.Path(home))
	if err != nil {
		return err
	}
	baseURL := cfg.API.BaseURL
	if c.ctx.APIURL != "" {
		baseURL = c.ctx.APIURL
	}
	data := map[string]any{
		"api": map[string]any{
			"base_url": redaction.URL(baseURL),
			"timeout":  cfg.API.Timeout.String(),
		},
		"dashboard": map[string]any{
			"expiring_days": cfg.Dashboard.ExpiringDays,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
			"dir":   config.LogDir(home),
		},
		"pantry_home":        home,
		"pantry_home_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, created, err := config.WriteTemplate(ctx.Home(), force)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !created {
				fmt.Fprintf(out, "Config already exists at %s\n", path)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			fmt.Fprintf(out, "Created %s\n", path)
			fmt.Fprintln(out, "Edit the file to point api.base_url at your pantry API.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-home
// ---------------------------------------------------------------------------

func newSetHome() *cobra.Command {
	return &cobra.Command{
		Use:   "set-home <path>",
		Short: "Persist pantry home location (used when PANTRY_HOME is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedHome(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(resolved, 0o755); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted pantry home: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with PANTRY_HOME.")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config clear-home
// ---------------------------------------------------------------------------

func newClearHome() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-home",
		Short: "Remove persisted pantry home location from global config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedHome()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted pantry home setting.")
			} else {
				fmt.Fprintln(out, "No persisted pantry home setting was found.")
			}
			return nil
		},
	}
}
