// Package shoppingcmd implements the `pantry shopping` command group.
package shoppingcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/search"
)

// Command implements `pantry shopping`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	json  bool
	query string
}

// New creates the shopping command group. Without a subcommand it lists.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "shopping",
		Aliases: []string{"shop"},
		Short:   "Show and manage the shopping list",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
	c.cmd.Flags().BoolVar(&c.json, "json", false, "Print the list as JSON")
	c.cmd.Flags().StringVarP(&c.query, "query", "q", "", "Only show items whose name matches")
	c.cmd.AddCommand(newAdd(ctx), newToggle(ctx), newDelete(ctx), newClear(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	list, err := svc.ShoppingList(cmd.Context())
	if err != nil {
		return err
	}
	list = search.ShoppingItems(list, c.query)

	out := cmd.OutOrStdout()
	if c.json {
		return shared.WriteJSON(out, list)
	}
	toBuy, inCart := list.Unchecked(), list.Checked()
	fmt.Fprintf(out, "To buy (%d)\n", len(toBuy))
	writeItems(out, toBuy)
	fmt.Fprintf(out, "\nIn cart (%d)\n", len(inCart))
	writeItems(out, inCart)
	return nil
}

func writeItems(w io.Writer, items []models.ShoppingItem) {
	for _, it := range items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %s %s %s %s  (id: %s)\n", box, it.Name, models.FormatQuantity(it.Quantity), it.Unit, it.ID)
	}
}

// ---------------------------------------------------------------------------
// shopping add
// ---------------------------------------------------------------------------

func newAdd(ctx *shared.Context) *cobra.Command {
	var item models.ShoppingItem
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			item.Name = args[0]
			created, err := svc.AddShoppingItem(cmd.Context(), item)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s (id: %s)\n", created.Name, created.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&item.Quantity, "quantity", models.DefaultShoppingQty, "Quantity")
	f.StringVar(&item.Unit, "unit", models.DefaultShoppingUnit, "Unit")
	return cmd
}

// ---------------------------------------------------------------------------
// shopping toggle
// ---------------------------------------------------------------------------

func newToggle(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Move an item between \"To buy\" and \"In cart\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			item, err := svc.ToggleShoppingItemByID(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			where := "To buy"
			if item.Checked {
				where = "In cart"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", where, item.Name)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// shopping delete
// ---------------------------------------------------------------------------

func newDelete(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an item from the shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := svc.DeleteShoppingItem(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", args[0])
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// shopping clear
// ---------------------------------------------------------------------------

func newClear(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every checked item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			list, err := svc.ShoppingList(cmd.Context())
			if err != nil {
				return err
			}
			checked := len(list.Checked())
			remaining, err := svc.ClearChecked(cmd.Context(), list)
			cleared := len(list) - len(remaining)
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d of %d checked items\n", cleared, checked)
			return err
		},
	}
}
