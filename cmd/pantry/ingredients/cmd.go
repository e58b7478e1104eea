// Package ingredientscmd implements the `pantry ingredients` command group.
package ingredientscmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/search"
)

// Command implements `pantry ingredients`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	query string
	json  bool
}

// New creates the ingredients command group. Without a subcommand it lists.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "ingredients",
		Aliases: []string{"ingredient", "ing"},
		Short:   "List and manage pantry ingredients",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
	f := c.cmd.Flags()
	f.StringVarP(&c.query, "query", "q", "", "Only show ingredients whose name or unit matches")
	f.BoolVar(&c.json, "json", false, "Print ingredients as JSON")

	c.cmd.AddCommand(newAdd(ctx), newDelete(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	items, err := svc.Ingredients(cmd.Context())
	if err != nil {
		return err
	}
	items = search.Ingredients(items, c.query)

	out := cmd.OutOrStdout()
	if c.json {
		return shared.WriteJSON(out, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No ingredients found.")
		return nil
	}
	fmt.Fprintf(out, "%-8s %-24s %10s %-5s %s\n", "ID", "NAME", "QUANTITY", "UNIT", "EXPIRES")
	for _, ing := range items {
		fmt.Fprintf(out, "%-8s %-24s %10s %-5s %s\n",
			ing.ID, ing.Name, models.FormatQuantity(ing.Quantity), ing.Unit, ing.ExpirationDate)
	}
	return nil
}

// ---------------------------------------------------------------------------
// ingredients add
// ---------------------------------------------------------------------------

func newAdd(ctx *shared.Context) *cobra.Command {
	var ing models.Ingredient
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an ingredient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ing.Name = args[0]
			created, err := svc.AddIngredient(cmd.Context(), ing)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s (id: %s)\n", created.Name, created.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&ing.Quantity, "quantity", 0, "Quantity (required, > 0)")
	f.StringVar(&ing.Unit, "unit", models.DefaultIngredientUnit, "Unit: g, kg, ml, l, pcs, tbsp, tsp")
	f.StringVar(&ing.ExpirationDate, "expires", "", "Expiration date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("expires")
	return cmd
}

// ---------------------------------------------------------------------------
// ingredients delete
// ---------------------------------------------------------------------------

func newDelete(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an ingredient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := svc.DeleteIngredient(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted ingredient %s\n", args[0])
			return nil
		},
	}
}
