// Package models defines the pantry data types exchanged with the REST API.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of ingredient expiration dates.
const DateLayout = "2006-01-02"

// Unit is a measurement unit offered when adding an ingredient.
type Unit struct {
	Value string
	Label string
}

// Units lists the ingredient units in display order.
var Units = []Unit{
	{Value: "g", Label: "Grams (g)"},
	{Value: "kg", Label: "Kilograms (kg)"},
	{Value: "ml", Label: "Milliliters (ml)"},
	{Value: "l", Label: "Liters (l)"},
	{Value: "pcs", Label: "Pieces (pcs)"},
	{Value: "tbsp", Label: "Tablespoon (tbsp)"},
	{Value: "tsp", Label: "Teaspoon (tsp)"},
}

// Default values used to seed empty forms.
const (
	DefaultIngredientUnit = "g"
	DefaultShoppingUnit   = "pcs"
	DefaultShoppingQty    = 1
)

// ---------------------------------------------------------------------------
// Identifiers
// ---------------------------------------------------------------------------

// ID is a server-assigned identifier. The API may send numbers or strings;
// both decode to the same string form. Numeric IDs encode back as numbers.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("models: invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integral IDs as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok {
		return strconv.AppendInt(nil, n, 10), nil
	}
	return json.Marshal(string(id))
}

// Int parses the id as a base-10 integer. Leading zeros and signs are
// accepted, so "007" yields 7.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

func (id ID) String() string { return string(id) }

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

// Ingredient is a pantry item.
type Ingredient struct {
	ID             ID      `json:"id,omitempty"`
	Name           string  `json:"name" validate:"notblank"`
	Quantity       float64 `json:"quantity" validate:"gt=0"`
	Unit           string  `json:"unit" validate:"notblank"`
	ExpirationDate string  `json:"expirationDate" validate:"required,pantrydate"`
}

// Expires parses the expiration date at local midnight.
func (i Ingredient) Expires() (time.Time, error) {
	return ParseDate(i.ExpirationDate)
}

// Recipe is a named dish. PrepTime and CookTime are minutes.
type Recipe struct {
	ID          ID       `json:"id,omitempty"`
	Name        string   `json:"name" validate:"notblank"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients" validate:"min=1,dive,notblank"`
	Steps       []string `json:"steps" validate:"min=1,dive,notblank"`
	PrepTime    int      `json:"prepTime" validate:"gte=0"`
	CookTime    int      `json:"cookTime" validate:"gte=0"`
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int { return r.PrepTime + r.CookTime }

// Clean returns a copy with blank ingredient and step lines removed and the
// remaining lines trimmed.
func (r Recipe) Clean() Recipe {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Ingredients = nonBlank(r.Ingredients)
	r.Steps = nonBlank(r.Steps)
	return r
}

// MealPlan is the wire form of a meal plan entry. Date holds the slot key
// ("Monday_breakfast"), not a calendar date.
type MealPlan struct {
	ID       ID     `json:"id,omitempty"`
	Date     string `json:"date" validate:"required,mealslot"`
	RecipeID ID     `json:"recipeId" validate:"required"`
}

// Slot decodes the entry's Date into its day and meal type.
func (m MealPlan) Slot() (Slot, bool) {
	return ParseSlot(m.Date)
}

// ShoppingItem is a to-buy entry.
type ShoppingItem struct {
	ID       ID      `json:"id,omitempty"`
	Name     string  `json:"name" validate:"notblank"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Unit     string  `json:"unit"`
	Checked  bool    `json:"checked"`
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// ParseDate parses a YYYY-MM-DD date at local midnight. RFC 3339 timestamps
// are accepted and truncated to their local calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("models: invalid date %q", s)
	}
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// FormatQuantity renders a quantity without a trailing ".0" for whole numbers.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
