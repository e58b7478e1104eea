// Package markdown renders pantry collections as markdown documents with
// YAML front-matter.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/service"
)

// Document kinds written to the front-matter.
const (
	KindShopping = "shopping"
	KindRecipes  = "recipes"
	KindMealPlan = "mealplan"
)

// FrontMatter heads every exported document.
type FrontMatter struct {
	Kind      string `yaml:"kind"`
	Generated string `yaml:"generated"`
	Count     int    `yaml:"count"`
}

// ---------------------------------------------------------------------------
// Shopping list
// ---------------------------------------------------------------------------

// Shopping renders the list as a GitHub checklist split into "To buy" and
// "In cart".
func Shopping(items []models.ShoppingItem, generated time.Time) (string, error) {
	list := service.ShoppingList(items)

	var sb strings.Builder
	if err := writeFrontMatter(&sb, KindShopping, generated, len(items)); err != nil {
		return "", err
	}
	sb.WriteString("# Shopping List\n")
	writeChecklist(&sb, "To buy", list.Unchecked())
	writeChecklist(&sb, "In cart", list.Checked())
	return sb.String(), nil
}

func writeChecklist(sb *strings.Builder, heading string, items []models.ShoppingItem) {
	sb.WriteString("\n## ")
	sb.WriteString(heading)
	sb.WriteString(" (")
	sb.WriteString(strconv.Itoa(len(items)))
	sb.WriteString(")\n\n")
	if len(items) == 0 {
		sb.WriteString("_Nothing here._\n")
		return
	}
	for _, it := range items {
		mark := " "
		if it.Checked {
			mark = "x"
		}
		fmt.Fprintf(sb, "- [%s] %s (%s %s)\n", mark, it.Name, models.FormatQuantity(it.Quantity), it.Unit)
	}
}

// ---------------------------------------------------------------------------
// Recipes
// ---------------------------------------------------------------------------

// RenderRecipe produces a single recipe section headed by "## name".
func RenderRecipe(r models.Recipe) string {
	var sb strings.Builder
	sb.WriteString("## ")
	sb.WriteString(r.Name)
	sb.WriteString("\n")
	if r.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Description)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n**Prep:** %d min · **Cook:** %d min · **Total:** %d min\n",
		r.PrepTime, r.CookTime, r.TotalTime())

	sb.WriteString("\n### Ingredients\n\n")
	for _, ing := range r.Ingredients {
		sb.WriteString("- ")
		sb.WriteString(ing)
		sb.WriteString("\n")
	}

	sb.WriteString("\n### Steps\n\n")
	for i, step := range r.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return sb.String()
}

// Recipes renders every recipe into one document.
func Recipes(recipes []models.Recipe, generated time.Time) (string, error) {
	var sb strings.Builder
	if err := writeFrontMatter(&sb, KindRecipes, generated, len(recipes)); err != nil {
		return "", err
	}
	sb.WriteString("# Recipes\n")
	if len(recipes) == 0 {
		sb.WriteString("\n_No recipes yet._\n")
	}
	for _, r := range recipes {
		sb.WriteString("\n")
		sb.WriteString(RenderRecipe(r))
	}
	return sb.String(), nil
}

// ---------------------------------------------------------------------------
// Meal plan
// ---------------------------------------------------------------------------

// MealPlan renders the week as a table with one row per day and one column
// per meal type. Empty slots show "-".
func MealPlan(week *service.Week, generated time.Time) (string, error) {
	var sb strings.Builder
	if err := writeFrontMatter(&sb, KindMealPlan, generated, len(week.Plans)); err != nil {
		return "", err
	}
	sb.WriteString("# Meal Plan\n\n| Day |")
	for _, m := range models.MealTypes {
		sb.WriteString(" ")
		sb.WriteString(m.Label())
		sb.WriteString(" |")
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---|", len(models.MealTypes)))
	sb.WriteString("\n")

	grid := week.Grid()
	for di, day := range models.Days {
		sb.WriteString("| ")
		sb.WriteString(day)
		sb.WriteString(" |")
		for mi := range models.MealTypes {
			cell := grid[mi][di]
			name := "-"
			if cell.Filled {
				name = escapeCell(cell.RecipeName)
			}
			sb.WriteString(" ")
			sb.WriteString(name)
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ---------------------------------------------------------------------------
// Front-matter
// ---------------------------------------------------------------------------

func writeFrontMatter(sb *strings.Builder, kind string, generated time.Time, count int) error {
	fm, err := yaml.Marshal(FrontMatter{
		Kind:      kind,
		Generated: generated.UTC().Format(time.RFC3339),
		Count:     count,
	})
	if err != nil {
		return fmt.Errorf("markdown: front-matter: %w", err)
	}
	sb.WriteString("---\n")
	sb.Write(fm)
	sb.WriteString("---\n\n")
	return nil
}

// ParseFrontMatter splits a rendered document into its front-matter and body.
// Returns a zero FrontMatter and the whole content when none is present.
func ParseFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter
	parts := strings.SplitN(content, "---\n", 3)
	if len(parts) < 3 || parts[0] != "" {
		return fm, content, nil
	}
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return fm, content, fmt.Errorf("markdown: front-matter: %w", err)
	}
	return fm, strings.TrimPrefix(parts[2], "\n"), nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644) // #nosec G306 -- exported lists do not contain secrets
}
