// Package exportcmd implements the `pantry export` command.
package exportcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/markdown"
)

// Command implements `pantry export`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	out string
}

// New creates the export command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:       "export <shopping|recipes|mealplan>",
		Short:     "Export a collection as markdown with YAML front-matter",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{markdown.KindShopping, markdown.KindRecipes, markdown.KindMealPlan},
		RunE:      c.run,
	}
	c.cmd.Flags().StringVarP(&c.out, "out", "o", "", "Write to this file instead of stdout")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Service(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx, now := cmd.Context(), svc.Now()

	var doc string
	switch args[0] {
	case markdown.KindShopping:
		list, err := svc.ShoppingList(ctx)
		if err != nil {
			return err
		}
		doc, err = markdown.Shopping(list, now)
		if err != nil {
			return err
		}
	case markdown.KindRecipes:
		recipes, err := svc.Recipes(ctx)
		if err != nil {
			return err
		}
		doc, err = markdown.Recipes(recipes, now)
		if err != nil {
			return err
		}
	case markdown.KindMealPlan:
		week, err := svc.Week(ctx)
		if err != nil {
			return err
		}
		doc, err = markdown.MealPlan(week, now)
		if err != nil {
			return err
		}
	}

	if c.out == "" {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}
	if err := markdown.WriteFile(c.out, doc); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", c.out)
	return nil
}
