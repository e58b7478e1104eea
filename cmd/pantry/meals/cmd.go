// Package mealscmd implements the `pantry meals` command group.
package mealscmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/models"
)

// Command implements `pantry meals`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	json bool
}

// New creates the meals command group. Without a subcommand it prints the
// weekly plan.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "meals",
		Aliases: []string{"mealplan"},
		Short:   "Show and edit the weekly meal plan",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
	c.cmd.Flags().BoolVar(&c.json, "json", false, "Print planned slots as JSON")
	c.cmd.AddCommand(newSet(ctx), newDelete(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

type slotView struct {
	ID       models.ID `json:"id"`
	Slot     string    `json:"slot"`
	Day      string    `json:"day"`
	Meal     string    `json:"meal"`
	RecipeID models.ID `json:"recipeId"`
	Recipe   string    `json:"recipe"`
}

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	week, err := svc.Week(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	grid := week.Grid()
	if c.json {
		slots := []slotView{}
		for _, row := range grid {
			for _, cell := range row {
				if cell.Filled {
					slots = append(slots, slotView{
						ID:       cell.Plan.ID,
						Slot:     cell.Slot.Key(),
						Day:      cell.Slot.Day,
						Meal:     string(cell.Slot.MealType),
						RecipeID: cell.Plan.RecipeID,
						Recipe:   cell.RecipeName,
					})
				}
			}
		}
		return shared.WriteJSON(out, slots)
	}

	for di, day := range models.Days {
		fmt.Fprintln(out, day)
		for mi, meal := range models.MealTypes {
			name := "-"
			if cell := grid[mi][di]; cell.Filled {
				name = cell.RecipeName
			}
			fmt.Fprintf(out, "  %-10s %s\n", meal.Label(), name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// meals set
// ---------------------------------------------------------------------------

func newSet(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "set <day> <meal> <recipe-id>",
		Short: "Plan a recipe for a day and meal, replacing what is there",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := models.NewSlot(args[0], args[1])
			if err != nil {
				return err
			}
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			week, err := svc.Week(cmd.Context())
			if err != nil {
				return err
			}
			plan, err := svc.SetMeal(cmd.Context(), week, slot, models.ID(args[2]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned %s for %s %s (id: %s)\n",
				week.RecipeName(plan.RecipeID), slot.Day, slot.MealType.Label(), plan.ID)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// meals delete
// ---------------------------------------------------------------------------

func newDelete(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <day> <meal>",
		Aliases: []string{"clear"},
		Short:   "Remove the meal planned for a day and meal",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := models.NewSlot(args[0], args[1])
			if err != nil {
				return err
			}
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			week, err := svc.Week(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.ClearSlot(cmd.Context(), week, slot); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", slot.Day, slot.MealType.Label())
			return nil
		},
	}
}
