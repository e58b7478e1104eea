// Package recipescmd implements the `pantry recipes` command group.
package recipescmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-ports/pantry/cmd/pantry/shared"
	"github.com/go-ports/pantry/internal/markdown"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/search"
)

// Command implements `pantry recipes`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	query string
	limit int
	json  bool
}

// New creates the recipes command group. Without a subcommand it lists.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"recipe"},
		Short:   "List and manage recipes",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
	f := c.cmd.Flags()
	f.StringVarP(&c.query, "query", "q", "", "Rank recipes by name, ingredients and description")
	f.IntVar(&c.limit, "limit", 0, "Maximum number of ranked results (0 = all)")
	f.BoolVar(&c.json, "json", false, "Print recipes as JSON")

	c.cmd.AddCommand(newShow(ctx), newAdd(ctx), newUpdate(ctx), newDelete(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	recipes, err := svc.Recipes(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var scores []float64
	if c.query != "" {
		hits := search.Rank(recipes, c.query, c.limit, search.RecipeFields...)
		recipes = make([]models.Recipe, len(hits))
		scores = make([]float64, len(hits))
		for i, h := range hits {
			recipes[i], scores[i] = h.Item, h.Score
		}
	}
	if c.json {
		return shared.WriteJSON(out, recipes)
	}
	if len(recipes) == 0 {
		fmt.Fprintln(out, "No recipes found.")
		return nil
	}
	for i, r := range recipes {
		score := ""
		if scores != nil {
			score = fmt.Sprintf(" (score: %.2f)", scores[i])
		}
		fmt.Fprintf(out, "[%s] %s%s\n", r.ID, r.Name, score)
		fmt.Fprintf(out, "     %d ingredients | %d steps | %d min\n", len(r.Ingredients), len(r.Steps), r.TotalTime())
	}
	return nil
}

// ---------------------------------------------------------------------------
// recipes show
// ---------------------------------------------------------------------------

func newShow(ctx *shared.Context) *cobra.Command {
	var (
		raw   bool
		style string
		width int
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe rendered as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			r, err := svc.Recipe(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			md := markdown.RenderRecipe(r)
			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprint(out, md)
				return nil
			}
			if style == "" {
				style = "notty"
				if isatty.IsTerminal(os.Stdout.Fd()) {
					style = "auto"
				}
			}
			rendered, err := markdown.Terminal(md, style, width)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&raw, "raw", false, "Print the markdown source")
	f.StringVar(&style, "style", "", "Glamour style: auto, dark, light, notty (default: auto on a terminal)")
	f.IntVar(&width, "width", 80, "Word wrap width")
	return cmd
}

// ---------------------------------------------------------------------------
// recipes add / update
// ---------------------------------------------------------------------------

// recipeFlags binds the editable recipe fields to a flag set.
type recipeFlags struct {
	name        string
	description string
	ingredients []string
	steps       []string
	prep        int
	cook        int
}

func (rf *recipeFlags) bind(f *pflag.FlagSet) {
	f.StringVar(&rf.name, "name", "", "Recipe name")
	f.StringVar(&rf.description, "description", "", "Short description")
	f.StringArrayVar(&rf.ingredients, "ingredient", nil, "Ingredient line (repeatable)")
	f.StringArrayVar(&rf.steps, "step", nil, "Instruction step (repeatable)")
	f.IntVar(&rf.prep, "prep", 0, "Prep time in minutes")
	f.IntVar(&rf.cook, "cook", 0, "Cook time in minutes")
}

// apply copies the flags the user set onto r.
func (rf *recipeFlags) apply(f *pflag.FlagSet, r *models.Recipe) {
	if f.Changed("name") {
		r.Name = rf.name
	}
	if f.Changed("description") {
		r.Description = rf.description
	}
	if f.Changed("ingredient") {
		r.Ingredients = rf.ingredients
	}
	if f.Changed("step") {
		r.Steps = rf.steps
	}
	if f.Changed("prep") {
		r.PrepTime = rf.prep
	}
	if f.Changed("cook") {
		r.CookTime = rf.cook
	}
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var rf recipeFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var r models.Recipe
			rf.apply(cmd.Flags(), &r)
			created, err := svc.AddRecipe(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s (id: %s)\n", created.Name, created.ID)
			return nil
		},
	}
	rf.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("ingredient")
	_ = cmd.MarkFlagRequired("step")
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var rf recipeFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing recipe",
		Long:  "Change fields of an existing recipe. Only the flags given are changed; --ingredient and --step replace the whole list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			r, err := svc.Recipe(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			rf.apply(cmd.Flags(), &r)
			updated, err := svc.UpdateRecipe(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s (id: %s)\n", updated.Name, updated.ID)
			return nil
		},
	}
	rf.bind(cmd.Flags())
	return cmd
}

// ---------------------------------------------------------------------------
// recipes delete
// ---------------------------------------------------------------------------

func newDelete(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := svc.DeleteRecipe(cmd.Context(), models.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %s\n", args[0])
			return nil
		},
	}
}
