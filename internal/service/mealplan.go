package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/go-ports/pantry/internal/api"
	"github.com/go-ports/pantry/internal/models"
)

// UnknownRecipe is shown for entries whose recipe is not loaded.
const UnknownRecipe = "Unknown Recipe"

// Week is the loaded meal planner: every entry plus the recipes they refer to.
type Week struct {
	Plans   []models.MealPlan
	Recipes []models.Recipe
}

// Cell is one planner slot.
type Cell struct {
	Slot       models.Slot
	Plan       models.MealPlan
	Filled     bool
	RecipeName string
}

// Find returns the entry occupying slot. Keys are compared after parsing,
// so "Monday_lunch_2" occupies Monday lunch. When the server holds
// duplicates the first one wins.
func (w *Week) Find(slot models.Slot) (models.MealPlan, bool) {
	for _, p := range w.Plans {
		if s, ok := models.ParseSlot(p.Date); ok && s == slot {
			return p, true
		}
	}
	return models.MealPlan{}, false
}

// RecipeName resolves a recipe id against the loaded recipes.
func (w *Week) RecipeName(id models.ID) string {
	for _, r := range w.Recipes {
		if r.ID == id {
			return r.Name
		}
	}
	return UnknownRecipe
}

// Grid returns the planner as rows of meal types by columns of days.
func (w *Week) Grid() [][]Cell {
	grid := make([][]Cell, len(models.MealTypes))
	for mi, meal := range models.MealTypes {
		row := make([]Cell, len(models.Days))
		for di, day := range models.Days {
			slot := models.Slot{Day: day, MealType: meal}
			cell := Cell{Slot: slot}
			if p, ok := w.Find(slot); ok {
				cell.Plan = p
				cell.Filled = true
				cell.RecipeName = w.RecipeName(p.RecipeID)
			}
			row[di] = cell
		}
		grid[mi] = row
	}
	return grid
}

// Clone returns a copy whose plan list can be mutated independently.
func (w *Week) Clone() *Week {
	return &Week{
		Plans:   append([]models.MealPlan(nil), w.Plans...),
		Recipes: w.Recipes,
	}
}

// Upsert mirrors a saved entry into the local plan list.
func (w *Week) Upsert(p models.MealPlan) {
	for i := range w.Plans {
		if w.Plans[i].ID == p.ID {
			w.Plans[i] = p
			return
		}
	}
	w.Plans = append(w.Plans, p)
}

// Remove drops the entry id from the local plan list.
func (w *Week) Remove(id models.ID) {
	out := w.Plans[:0]
	for _, p := range w.Plans {
		if p.ID != id {
			out = append(out, p)
		}
	}
	w.Plans = out
}

// Week loads meal plans and recipes concurrently.
func (s *Service) Week(ctx context.Context) (*Week, error) {
	w := &Week{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { w.Plans, err = s.api.ListMealPlans(gctx); return err })
	g.Go(func() (err error) { w.Recipes, err = s.api.ListRecipes(gctx); return err })
	if err := g.Wait(); err != nil {
		return nil, s.fail("Week", err)
	}
	return w, nil
}

// SetMeal assigns recipeID to slot: the existing entry for the slot is
// updated, otherwise a new entry is created. The saved entry is mirrored
// into w.
func (s *Service) SetMeal(ctx context.Context, w *Week, slot models.Slot, recipeID models.ID) (models.MealPlan, error) {
	payload := models.MealPlan{Date: slot.Key(), RecipeID: recipeID}
	if err := models.Validate("meal plan", payload); err != nil {
		return models.MealPlan{}, err
	}

	var (
		saved models.MealPlan
		err   error
	)
	if existing, ok := w.Find(slot); ok {
		payload.ID = existing.ID
		saved, err = s.api.UpdateMealPlan(ctx, payload)
	} else {
		saved, err = s.api.CreateMealPlan(ctx, payload)
	}
	if err != nil {
		return models.MealPlan{}, s.fail("SetMeal", err)
	}
	w.Upsert(saved)
	return saved, nil
}

// DeleteMeal removes the entry id and mirrors the removal into w.
func (s *Service) DeleteMeal(ctx context.Context, w *Week, id models.ID) error {
	if err := s.api.DeleteMealPlan(ctx, id); err != nil {
		return s.fail("DeleteMeal", err)
	}
	w.Remove(id)
	return nil
}

// ClearSlot deletes the meal occupying slot.
func (s *Service) ClearSlot(ctx context.Context, w *Week, slot models.Slot) error {
	p, ok := w.Find(slot)
	if !ok {
		return fmt.Errorf("meal %s: %w", slot.Key(), api.ErrNotFound)
	}
	return s.DeleteMeal(ctx, w, p.ID)
}
