package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/go-ports/pantry/internal/models"
)

// Drafts hold the strings a huh form edits and convert them into models on
// submit. Field validators mirror the guards in models.Validate so bad input
// is caught before the form completes.

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

func positiveNumber(s string) error {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || q <= 0 {
		return errors.New("enter a number greater than 0")
	}
	return nil
}

func minutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter whole minutes")
	}
	return nil
}

func validDate(s string) error {
	if _, err := models.ParseDate(s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// ---------------------------------------------------------------------------
// Ingredient
// ---------------------------------------------------------------------------

type ingredientDraft struct {
	Name, Quantity, Unit, ExpirationDate string
}

func newIngredientDraft() *ingredientDraft {
	return &ingredientDraft{Unit: models.DefaultIngredientUnit}
}

func (d *ingredientDraft) form() *huh.Form {
	units := make([]huh.Option[string], len(models.Units))
	for i, u := range models.Units {
		units[i] = huh.NewOption(u.Label, u.Value)
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&d.Name).Validate(required("name")),
		huh.NewInput().Title("Quantity").Value(&d.Quantity).Validate(positiveNumber),
		huh.NewSelect[string]().Title("Unit").Options(units...).Value(&d.Unit),
		huh.NewInput().Title("Expiration Date").Placeholder("YYYY-MM-DD").Value(&d.ExpirationDate).Validate(validDate),
	))
}

func (d *ingredientDraft) ingredient() (models.Ingredient, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(d.Quantity), 64)
	if err != nil {
		return models.Ingredient{}, errors.New("quantity must be a number")
	}
	return models.Ingredient{
		Name:           d.Name,
		Quantity:       q,
		Unit:           d.Unit,
		ExpirationDate: strings.TrimSpace(d.ExpirationDate),
	}, nil
}

// ---------------------------------------------------------------------------
// Recipe
// ---------------------------------------------------------------------------

type recipeDraft struct {
	ID                 models.ID
	Name, Description  string
	Ingredients, Steps string
	PrepTime, CookTime string
}

func newRecipeDraft(r *models.Recipe) *recipeDraft {
	if r == nil {
		return &recipeDraft{}
	}
	return &recipeDraft{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Ingredients: strings.Join(r.Ingredients, "\n"),
		Steps:       strings.Join(r.Steps, "\n"),
		PrepTime:    strconv.Itoa(r.PrepTime),
		CookTime:    strconv.Itoa(r.CookTime),
	}
}

func (d *recipeDraft) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Recipe Name").Value(&d.Name).Validate(required("name")),
			huh.NewText().Title("Description").Lines(2).Value(&d.Description),
			huh.NewInput().Title("Prep Time (minutes)").Value(&d.PrepTime).Validate(minutes),
			huh.NewInput().Title("Cook Time (minutes)").Value(&d.CookTime).Validate(minutes),
		),
		huh.NewGroup(
			huh.NewText().Title("Ingredients").Description("One per line").Lines(6).Value(&d.Ingredients).Validate(required("ingredients")),
			huh.NewText().Title("Steps").Description("One per line").Lines(6).Value(&d.Steps).Validate(required("steps")),
		),
	)
}

func (d *recipeDraft) recipe() models.Recipe {
	return models.Recipe{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Ingredients: lines(d.Ingredients),
		Steps:       lines(d.Steps),
		PrepTime:    atoiOrZero(d.PrepTime),
		CookTime:    atoiOrZero(d.CookTime),
	}
}

// ---------------------------------------------------------------------------
// Shopping item
// ---------------------------------------------------------------------------

type shoppingDraft struct {
	Name, Quantity, Unit string
}

func newShoppingDraft() *shoppingDraft {
	return &shoppingDraft{
		Quantity: strconv.Itoa(models.DefaultShoppingQty),
		Unit:     models.DefaultShoppingUnit,
	}
}

func (d *shoppingDraft) form() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Item").Value(&d.Name).Validate(required("name")),
		huh.NewInput().Title("Quantity").Value(&d.Quantity).Validate(positiveNumber),
		huh.NewInput().Title("Unit").Value(&d.Unit),
	))
}

func (d *shoppingDraft) item() (models.ShoppingItem, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(d.Quantity), 64)
	if err != nil {
		return models.ShoppingItem{}, errors.New("quantity must be a number")
	}
	return models.ShoppingItem{Name: d.Name, Quantity: q, Unit: strings.TrimSpace(d.Unit)}, nil
}

// ---------------------------------------------------------------------------
// Meal slot
// ---------------------------------------------------------------------------

type mealDraft struct {
	RecipeID string
}

func (d *mealDraft) form(slot models.Slot, recipes []models.Recipe) *huh.Form {
	opts := make([]huh.Option[string], len(recipes))
	for i, r := range recipes {
		opts[i] = huh.NewOption(r.Name, r.ID.String())
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(slot.Day + " " + slot.MealType.Label()).
			Description("Select a recipe").
			Options(opts...).
			Value(&d.RecipeID),
	))
}
