package service

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-ports/pantry/internal/expiration"
	"github.com/go-ports/pantry/internal/models"
)

// Counts are the dashboard card values.
type Counts struct {
	Ingredients int `json:"ingredients"`
	Recipes     int `json:"recipes"`
	Expiring    int `json:"expiring"`
	Shopping    int `json:"shopping"`
	MealPlans   int `json:"mealplans"`
}

// Card is one labelled dashboard value.
type Card struct {
	Title string
	Value int
	Hint  string
}

// Cards returns the counts in display order.
func (c Counts) Cards(expiringDays int) []Card {
	return []Card{
		{Title: "Ingredients", Value: c.Ingredients, Hint: "Total ingredients in your pantry"},
		{Title: "Recipes", Value: c.Recipes, Hint: "Saved recipes in your collection"},
		{Title: "Expiring Soon", Value: c.Expiring, Hint: expiringHint(expiringDays)},
		{Title: "Shopping List", Value: c.Shopping, Hint: "Items to buy on your next shopping trip"},
		{Title: "Meal Planning", Value: c.MealPlans, Hint: "Meals planned for this week"},
	}
}

func expiringHint(days int) string {
	if days == 1 {
		return "Items expiring in the next day"
	}
	return "Items expiring in the next " + strconv.Itoa(days) + " days"
}

// Dashboard fetches every collection concurrently and counts them. Any
// failed request fails the whole dashboard.
func (s *Service) Dashboard(ctx context.Context) (Counts, error) {
	var (
		ings  []models.Ingredient
		recs  []models.Recipe
		exps  []models.Ingredient
		shops []models.ShoppingItem
		meals []models.MealPlan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { ings, err = s.api.ListIngredients(gctx); return err })
	g.Go(func() (err error) { recs, err = s.api.ListRecipes(gctx); return err })
	g.Go(func() (err error) {
		exps, err = s.api.ExpiringIngredients(gctx, s.Config.Dashboard.ExpiringDays)
		return err
	})
	g.Go(func() (err error) { shops, err = s.api.ListShoppingItems(gctx); return err })
	g.Go(func() (err error) { meals, err = s.api.ListMealPlans(gctx); return err })
	if err := g.Wait(); err != nil {
		return Counts{}, s.fail("Dashboard", err)
	}

	return Counts{
		Ingredients: len(ings),
		Recipes:     len(recs),
		Expiring:    len(exps),
		Shopping:    len(shops),
		MealPlans:   MealsThisWeek(meals, s.now()),
	}, nil
}

// MealsThisWeek counts entries belonging to the current Monday-Sunday week.
// Entries keyed by a weekday slot always belong to the planner's week;
// entries whose date is a calendar date count when it falls in this week.
func MealsThisWeek(plans []models.MealPlan, now time.Time) int {
	start, end := WeekBounds(now)
	n := 0
	for _, p := range plans {
		if _, ok := p.Slot(); ok {
			n++
			continue
		}
		if d, err := models.ParseDate(p.Date); err == nil && !d.Before(start) && !d.After(end) {
			n++
		}
	}
	return n
}

// WeekBounds returns local midnight of the Monday and Sunday of now's week.
func WeekBounds(now time.Time) (monday, sunday time.Time) {
	today := expiration.Today(now)
	offset := int(today.Weekday()) - 1
	if today.Weekday() == time.Sunday {
		offset = 6
	}
	monday = today.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
