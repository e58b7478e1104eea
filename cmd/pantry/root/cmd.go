// Package rootcmd wires the root cobra.Command for the pantry CLI binary.
package rootcmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	configcmd "github.com/go-ports/pantry/cmd/pantry/config"
	dashboardcmd "github.com/go-ports/pantry/cmd/pantry/dashboard"
	expirationcmd "github.com/go-ports/pantry/cmd/pantry/expiration"
	exportcmd "github.com/go-ports/pantry/cmd/pantry/export"
	ingredientscmd "github.com/go-ports/pantry/cmd/pantry/ingredients"
	initcmd "github.com/go-ports/pantry/cmd/pantry/init"
	mcpcmd "github.com/go-ports/pantry/cmd/pantry/mcp"
	mealscmd "github.com/go-ports/pantry/cmd/pantry/meals"
	recipescmd "github.com/go-ports/pantry/cmd/pantry/recipes"
	setupcmd "github.com/go-ports/pantry/cmd/pantry/setup"
	"github.com/go-ports/pantry/cmd/pantry/shared"
	shoppingcmd "github.com/go-ports/pantry/cmd/pantry/shopping"
	tuicmd "github.com/go-ports/pantry/cmd/pantry/tui"
	versioncmd "github.com/go-ports/pantry/cmd/pantry/version"
)

// New creates and returns the root cobra.Command for the pantry CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}
	tui := tuicmd.New(ctx)

	root := &cobra.Command{
		Use:           "pantry",
		Short:         "Pantry: ingredients, recipes, shopping and meal planning",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive() {
				return tui.Cmd().RunE(cmd, args)
			}
			return cmd.Help()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(
		&ctx.PantryHome, "pantry-home", "",
		"Override pantry home directory (default: $PANTRY_HOME env → persisted config → ~/.pantry)",
	)
	f.StringVar(&ctx.APIURL, "api-url", "", "Pantry API base URL (overrides config and $PANTRY_API_URL)")
	f.BoolVarP(&ctx.Verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		dashboardcmd.New(ctx).Cmd(),
		ingredientscmd.New(ctx).Cmd(),
		recipescmd.New(ctx).Cmd(),
		expirationcmd.New(ctx).Cmd(),
		shoppingcmd.New(ctx).Cmd(),
		mealscmd.New(ctx).Cmd(),
		exportcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		setupcmd.NewUninstall(ctx).Cmd(),
		tui.Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}

// interactive reports whether both stdin and stdout are terminals.
func interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
