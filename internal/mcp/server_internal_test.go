package mcp

// White-box testing required: the view builders shape tool output but are
// only reachable through a running MCP server.

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/pantry/internal/expiration"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/service"
)

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

func TestIngredientView(t *testing.T) {
	c := qt.New(t)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

	valid := ingredientView(expiration.Annotate(models.Ingredient{Name: "Milk", ExpirationDate: "2024-06-12"}, now))
	c.Assert(valid["status"], qt.Equals, expiration.Critical)
	c.Assert(valid["days_left"], qt.Equals, "2 days")

	invalid := ingredientView(expiration.Annotate(models.Ingredient{Name: "Jar", ExpirationDate: "someday"}, now))
	_, ok := invalid["status"]
	c.Assert(ok, qt.IsFalse)
	c.Assert(invalid["days_left"], qt.Equals, "-")
}

func TestWeekView(t *testing.T) {
	c := qt.New(t)

	week := &service.Week{
		Plans: []models.MealPlan{
			{ID: "2", Date: "Tuesday_dinner", RecipeID: "7"},
			{ID: "1", Date: "Monday_breakfast", RecipeID: "8"},
			{ID: "3", Date: "garbage", RecipeID: "8"},
		},
		Recipes: []models.Recipe{{ID: "7", Name: "Stew"}},
	}
	v := weekView(week)
	c.Assert(v["planned"], qt.Equals, 2)
	slots := v["slots"].([]map[string]any)
	c.Assert(slots[0]["slot"], qt.Equals, "Monday_breakfast")
	c.Assert(slots[0]["recipe"], qt.Equals, service.UnknownRecipe)
	c.Assert(slots[1]["recipe"], qt.Equals, "Stew")
}

func TestShoppingView(t *testing.T) {
	c := qt.New(t)

	v := shoppingView(service.ShoppingList{{Name: "A"}, {Name: "B", Checked: true}, {Name: "C"}})
	c.Assert(v["unchecked"], qt.Equals, 2)
	c.Assert(v["checked"], qt.Equals, 1)
}
