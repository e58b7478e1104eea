// Package search implements client-side filtering and ranking over loaded
// pantry collections.
package search

import (
	"sort"
	"strings"

	"github.com/go-ports/pantry/internal/models"
)

// Match tiers for a single field.
const (
	scoreSubstring = 1.0
	scorePrefix    = 2.0
	scoreExact     = 3.0
)

// Field extracts searchable text from an item. Weight scales the field's
// match tier in the combined score.
type Field[T any] struct {
	Weight float64
	Text   func(T) []string
}

// Result is a single hit with its relevance score normalised to [0, 1].
type Result[T any] struct {
	Item  T
	Score float64
	Index int // position in the input slice
}

// Rank scores every item against query and returns the hits sorted by score
// descending; equal scores keep input order. An empty query returns nothing.
// limit <= 0 means no limit.
func Rank[T any](items []T, query string, limit int, fields ...Field[T]) []Result[T] {
	q := normalize(query)
	if q == "" {
		return nil
	}

	results := make([]Result[T], 0, len(items))
	for i, it := range items {
		var score float64
		for _, f := range fields {
			best := 0.0
			for _, text := range f.Text(it) {
				if s := tier(normalize(text), q); s > best {
					best = s
				}
			}
			score += f.Weight * best
		}
		if score > 0 {
			results = append(results, Result[T]{Item: it, Score: score, Index: i})
		}
	}

	normalizeScores(results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results[:clamp(limit, len(results))]
}

// Filter returns the items matching query in their original order. An empty
// or blank query returns items unchanged.
func Filter[T any](items []T, query string, fields ...Field[T]) []T {
	if normalize(query) == "" {
		return items
	}
	hits := Rank(items, query, 0, fields...)
	sort.Slice(hits, func(i, j int) bool { return hits[i].Index < hits[j].Index })
	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.Item
	}
	return out
}

// ---------------------------------------------------------------------------
// Collection fields
// ---------------------------------------------------------------------------

// IngredientFields match on name, then unit.
var IngredientFields = []Field[models.Ingredient]{
	{Weight: 1.0, Text: func(i models.Ingredient) []string { return []string{i.Name} }},
	{Weight: 0.1, Text: func(i models.Ingredient) []string { return []string{i.Unit} }},
}

// RecipeFields match on name, then ingredients, then description.
var RecipeFields = []Field[models.Recipe]{
	{Weight: 1.0, Text: func(r models.Recipe) []string { return []string{r.Name} }},
	{Weight: 0.5, Text: func(r models.Recipe) []string { return r.Ingredients }},
	{Weight: 0.3, Text: func(r models.Recipe) []string { return []string{r.Description} }},
}

// ShoppingFields match on name.
var ShoppingFields = []Field[models.ShoppingItem]{
	{Weight: 1.0, Text: func(s models.ShoppingItem) []string { return []string{s.Name} }},
}

// Ingredients filters ingredients by query.
func Ingredients(items []models.Ingredient, query string) []models.Ingredient {
	return Filter(items, query, IngredientFields...)
}

// Recipes filters recipes by query.
func Recipes(items []models.Recipe, query string) []models.Recipe {
	return Filter(items, query, RecipeFields...)
}

// ShoppingItems filters shopping items by query.
func ShoppingItems(items []models.ShoppingItem, query string) []models.ShoppingItem {
	return Filter(items, query, ShoppingFields...)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tier grades how text matches q: exact, prefix, substring or not at all.
func tier(text, q string) float64 {
	switch {
	case text == "":
		return 0
	case text == q:
		return scoreExact
	case strings.HasPrefix(text, q):
		return scorePrefix
	case strings.Contains(text, q):
		return scoreSubstring
	}
	return 0
}

// normalizeScores divides each score by the maximum, producing (0, 1].
func normalizeScores[T any](results []Result[T]) {
	var maxScore float64
	for _, r := range results {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	if maxScore <= 0 {
		return
	}
	for i := range results {
		results[i].Score /= maxScore
	}
}

func clamp(limit, n int) int {
	if limit <= 0 {
		return n
	}
	if limit < n {
		return limit
	}
	return n
}
