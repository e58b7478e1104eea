package tui

// White-box testing required: page state (rows, cursor, open forms) is only
// visible through the rendered view, and form submission runs inside huh,
// which needs a terminal. The tests call the pages' submit paths directly.

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	qt "github.com/frankban/quicktest"

	"github.com/go-ports/pantry/internal/apitest"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/service"
)

var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.Local)

func newTestApp(c *qt.C, opts ...AppOption) (*App, *apitest.Server) {
	c.Setenv("PANTRY_API_URL", "")
	srv := apitest.New(c.TB)
	srv.Now = func() time.Time { return now }
	svc, err := service.New(c.TempDir(),
		service.WithBaseURL(srv.URL),
		service.WithClock(func() time.Time { return now }),
	)
	c.Assert(err, qt.IsNil)
	opts = append([]AppOption{WithContext(context.Background()), WithGlamourStyle("notty")}, opts...)
	app := NewApp(svc, opts...)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return app, srv
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and returns the resulting command without running it.
func press(a *App, k string) tea.Cmd {
	_, cmd := a.Update(key(k))
	return cmd
}

// run executes cmd and feeds every message it produces back into a until no
// work is left. Quit messages are reported instead of delivered.
func run(a *App, cmd tea.Cmd) (quit bool) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			quit = true
		default:
			_, follow := a.Update(msg)
			queue = append(queue, follow)
		}
	}
	return quit
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

func TestApp_Navigation(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c)

	run(app, app.Init())
	c.Assert(app.Active(), qt.Equals, PageDashboard)
	c.Assert(srv.CountRequests(http.MethodGet, "/api/notifications"), qt.Equals, 1)

	steps := []struct {
		key  string
		want PageID
	}{
		{"2", PageIngredients},
		{"tab", PageRecipes},
		{"tab", PageExpiration},
		{"shift+tab", PageRecipes},
		{"6", PageMealPlan},
		{"tab", PageDashboard},
		{"shift+tab", PageMealPlan},
		{"5", PageShopping},
	}
	for _, s := range steps {
		run(app, press(app, s.key))
		c.Assert(app.Active(), qt.Equals, s.want, qt.Commentf("after %q", s.key))
	}

	view := app.View()
	for _, title := range []string{"Dashboard", "Ingredients", "Recipes", "Expiration", "Shopping List", "Meal Planning"} {
		c.Assert(strings.Contains(view, title), qt.IsTrue, qt.Commentf("sidebar misses %q", title))
	}
}

func TestApp_QuitAndReload(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c)
	run(app, app.Init())

	run(app, press(app, "r"))
	c.Assert(srv.CountRequests(http.MethodGet, "/api/recipes"), qt.Equals, 2)

	c.Assert(run(app, press(app, "q")), qt.IsTrue)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	c.Assert(run(app, cmd), qt.IsTrue)
}

func TestApp_StartPage(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageShopping))

	run(app, app.Init())
	c.Assert(app.Active(), qt.Equals, PageShopping)
	c.Assert(srv.CountRequests(http.MethodGet, "/api/shoppinglist"), qt.Equals, 1)
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func TestDashboard_HappyPath(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c)
	srv.SeedIngredients(
		models.Ingredient{Name: "Milk", Quantity: 1, Unit: "l", ExpirationDate: "2024-06-13"},
		models.Ingredient{Name: "Rice", Quantity: 1, Unit: "kg", ExpirationDate: "2025-06-13"},
	)
	srv.SeedShoppingItems(models.ShoppingItem{Name: "Eggs", Quantity: 6, Unit: "pcs"})

	run(app, app.Init())
	p := app.pages[PageDashboard].(*dashboardPage)
	c.Assert(p.counts, qt.Equals, service.Counts{Ingredients: 2, Expiring: 1, Shopping: 1})

	view := app.View()
	c.Assert(strings.Contains(view, "Expiring Soon"), qt.IsTrue)
	c.Assert(strings.Contains(view, "Overview"), qt.IsTrue)
	c.Assert(strings.Contains(view, "█"), qt.IsTrue)
}

func TestDashboard_FailurePath(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c)
	srv.Fail(http.MethodGet, "/api/mealplans", http.StatusInternalServerError)

	cmd := app.Init()
	c.Assert(strings.Contains(app.View(), "Loading…"), qt.IsTrue)
	run(app, cmd)
	c.Assert(strings.Contains(app.View(), "Error: "), qt.IsTrue)
}

func TestBarChart(t *testing.T) {
	c := qt.New(t)

	cards := []service.Card{{Title: "A", Value: 4}, {Title: "Bee", Value: 2}, {Title: "C", Value: 0}}
	lines := strings.Split(barChart(cards, defaultStyles(), 0), "\n")
	c.Assert(lines, qt.HasLen, 3)
	c.Assert(strings.Count(lines[0], "█"), qt.Equals, maxBarWidth)
	c.Assert(strings.Count(lines[1], "█"), qt.Equals, maxBarWidth/2)
	c.Assert(strings.Count(lines[2], "█"), qt.Equals, 0)
	c.Assert(strings.HasPrefix(lines[2], "C  "), qt.IsTrue)
}

// ---------------------------------------------------------------------------
// Ingredients
// ---------------------------------------------------------------------------

func TestIngredients_AddFilterDelete(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageIngredients))
	srv.SeedIngredients(models.Ingredient{Name: "Milk", Quantity: 1, Unit: "l", ExpirationDate: "2024-06-20"})
	run(app, app.Init())

	p := app.pages[PageIngredients].(*ingredientsPage)
	c.Assert(p.items, qt.HasLen, 1)

	p.draft = &ingredientDraft{Name: "Flour", Quantity: "2.5", Unit: "kg", ExpirationDate: "2024-12-01"}
	run(app, p.submitAdd())
	c.Assert(p.items, qt.HasLen, 2)
	c.Assert(p.items[1].Quantity, qt.Equals, 2.5)
	c.Assert(srv.Ingredients(), qt.HasLen, 2)
	c.Assert(strings.Contains(app.View(), "Added Flour"), qt.IsTrue)

	press(app, "/")
	c.Assert(p.capturing(), qt.IsTrue)
	for _, r := range "flo" {
		app.Update(key(string(r)))
	}
	c.Assert(app.Active(), qt.Equals, PageIngredients)
	c.Assert(p.shown, qt.HasLen, 1)
	app.Update(key("enter"))
	c.Assert(p.capturing(), qt.IsFalse)

	run(app, press(app, "d"))
	c.Assert(srv.Ingredients(), qt.HasLen, 1)
	c.Assert(srv.Ingredients()[0].Name, qt.Equals, "Milk")
	c.Assert(p.items, qt.HasLen, 1)

	press(app, "/")
	app.Update(key("esc"))
	c.Assert(p.shown, qt.HasLen, 1)
}

func TestIngredients_FailurePath(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageIngredients))
	run(app, app.Init())
	p := app.pages[PageIngredients].(*ingredientsPage)

	c.Run("server rejects create", func(c *qt.C) {
		srv.Fail(http.MethodPost, "/api/ingredients", http.StatusInternalServerError)
		defer srv.Recover()
		p.draft = &ingredientDraft{Name: "Flour", Quantity: "1", Unit: "kg", ExpirationDate: "2024-12-01"}
		run(app, p.submitAdd())
		c.Assert(p.items, qt.HasLen, 0)
		c.Assert(strings.Contains(app.View(), "Error: "), qt.IsTrue)
	})

	c.Run("bad quantity never reaches the api", func(c *qt.C) {
		p.draft = &ingredientDraft{Name: "Flour", Quantity: "lots", Unit: "kg", ExpirationDate: "2024-12-01"}
		c.Assert(p.submitAdd(), qt.IsNil)
		c.Assert(p.status.flash, qt.Matches, "Error: .*")
	})
}

func TestFormHost_EscCloses(t *testing.T) {
	c := qt.New(t)
	app, _ := newTestApp(c, WithStartPage(PageIngredients))
	run(app, app.Init())
	p := app.pages[PageIngredients].(*ingredientsPage)

	press(app, "a")
	c.Assert(p.capturing(), qt.IsTrue)
	press(app, "2")
	c.Assert(p.capturing(), qt.IsTrue)
	c.Assert(app.Active(), qt.Equals, PageIngredients)

	app.Update(key("esc"))
	c.Assert(p.capturing(), qt.IsFalse)
}

// ---------------------------------------------------------------------------
// Recipes
// ---------------------------------------------------------------------------

func TestRecipes_AddEditDetailsDelete(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageRecipes))
	run(app, app.Init())
	p := app.pages[PageRecipes].(*recipesPage)

	p.draft = &recipeDraft{Name: "Pancakes", Ingredients: "flour\n\neggs\n", Steps: "mix\nfry", PrepTime: "5", CookTime: "10"}
	run(app, p.submit())
	c.Assert(p.items, qt.HasLen, 1)
	c.Assert(p.items[0].Ingredients, qt.DeepEquals, []string{"flour", "eggs"})
	c.Assert(p.items[0].TotalTime(), qt.Equals, 15)

	edit := newRecipeDraft(&p.items[0])
	edit.Description = "Sunday breakfast"
	p.draft = edit
	run(app, p.submit())
	c.Assert(p.items, qt.HasLen, 1)
	c.Assert(srv.Recipes()[0].Description, qt.Equals, "Sunday breakfast")
	c.Assert(strings.Contains(app.View(), "Updated Pancakes"), qt.IsTrue)

	press(app, "enter")
	c.Assert(p.details, qt.IsNotNil)
	c.Assert(strings.Contains(app.View(), "Sunday breakfast"), qt.IsTrue)
	press(app, "q")
	c.Assert(p.details, qt.IsNil)

	run(app, press(app, "d"))
	c.Assert(p.items, qt.HasLen, 0)
	c.Assert(srv.Recipes(), qt.HasLen, 0)
}

func TestRecipes_Filter(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageRecipes))
	srv.SeedRecipes(
		models.Recipe{Name: "Pancakes", Ingredients: []string{"flour", "eggs"}, Steps: []string{"fry"}},
		models.Recipe{Name: "Omelette", Ingredients: []string{"eggs"}, Steps: []string{"whisk"}},
		models.Recipe{Name: "Salad", Ingredients: []string{"lettuce"}, Steps: []string{"toss"}},
	)
	run(app, app.Init())
	p := app.pages[PageRecipes].(*recipesPage)
	c.Assert(p.shown, qt.HasLen, 3)

	press(app, "/")
	c.Assert(p.capturing(), qt.IsTrue)
	for _, r := range "eggs" {
		app.Update(key(string(r)))
	}
	c.Assert(p.shown, qt.HasLen, 2)
	app.Update(key("enter"))
	c.Assert(p.capturing(), qt.IsFalse)

	press(app, "down")
	r, ok := p.selected()
	c.Assert(ok, qt.IsTrue)
	c.Assert(r.Name, qt.Equals, "Omelette")

	press(app, "/")
	app.Update(key("esc"))
	c.Assert(p.shown, qt.HasLen, 3)
}

func TestRecipes_InvalidSubmit(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageRecipes))
	run(app, app.Init())
	p := app.pages[PageRecipes].(*recipesPage)

	p.draft = &recipeDraft{Name: "Nothing", Ingredients: " \n", Steps: "wait"}
	run(app, p.submit())
	c.Assert(p.items, qt.HasLen, 0)
	c.Assert(p.status.flash, qt.Matches, "Error: invalid input recipe: ingredients needs at least 1 entry")
	c.Assert(srv.CountRequests(http.MethodPost, "/api/recipes"), qt.Equals, 0)
}

// ---------------------------------------------------------------------------
// Expiration
// ---------------------------------------------------------------------------

func TestExpiration_View(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageExpiration))
	srv.SeedIngredients(
		models.Ingredient{Name: "Yogurt", Quantity: 2, Unit: "pcs", ExpirationDate: "2024-06-11"},
		models.Ingredient{Name: "Cheese", Quantity: 200, Unit: "g", ExpirationDate: "2024-06-30"},
	)
	run(app, app.Init())

	p := app.pages[PageExpiration].(*expirationPage)
	c.Assert(p.report.Rows, qt.HasLen, 2)
	rows := p.table.Rows()
	c.Assert(rows[0], qt.DeepEquals, table.Row{"Yogurt", "2 pcs", "11/06/2024", "Expired", "1 days ago"})
	c.Assert(rows[1][3], qt.Equals, "Good")

	view := app.View()
	c.Assert(strings.Contains(view, "Critical (≤3d)"), qt.IsTrue)
	c.Assert(strings.Contains(view, "Warning (≤7d)"), qt.IsTrue)
}

// ---------------------------------------------------------------------------
// Shopping
// ---------------------------------------------------------------------------

func TestShopping_ToggleClearDelete(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageShopping))
	srv.SeedShoppingItems(
		models.ShoppingItem{Name: "Milk", Quantity: 2, Unit: "l"},
		models.ShoppingItem{Name: "Eggs", Quantity: 12, Unit: "pcs"},
		models.ShoppingItem{Name: "Salt", Quantity: 1, Unit: "pcs"},
	)
	run(app, app.Init())
	p := app.pages[PageShopping].(*shoppingPage)

	run(app, press(app, "space"))
	c.Assert(p.list.Checked(), qt.HasLen, 1)
	c.Assert(p.list.Checked()[0].Name, qt.Equals, "Milk")
	c.Assert(strings.Contains(app.View(), "In cart (1)"), qt.IsTrue)

	run(app, press(app, "c"))
	c.Assert(p.list, qt.HasLen, 2)
	c.Assert(srv.ShoppingItems(), qt.HasLen, 2)

	run(app, press(app, "down"))
	run(app, press(app, "d"))
	c.Assert(p.list, qt.HasLen, 1)
	c.Assert(p.list[0].Name, qt.Equals, "Eggs")

	p.draft = &shoppingDraft{Name: "Butter", Quantity: "1", Unit: ""}
	run(app, p.submitAdd())
	c.Assert(p.list, qt.HasLen, 2)
	c.Assert(p.list[1].Unit, qt.Equals, "pcs")
	c.Assert(strings.Contains(app.View(), "To buy (2)"), qt.IsTrue)
}

func TestShopping_CursorFollowsToggledItem(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageShopping))
	srv.SeedShoppingItems(
		models.ShoppingItem{Name: "Milk", Quantity: 2, Unit: "l"},
		models.ShoppingItem{Name: "Eggs", Quantity: 12, Unit: "pcs"},
		models.ShoppingItem{Name: "Salt", Quantity: 1, Unit: "pcs"},
	)
	run(app, app.Init())
	p := app.pages[PageShopping].(*shoppingPage)

	run(app, press(app, "space"))
	c.Assert(p.cursor, qt.Equals, 2)
	c.Assert(p.ordered()[p.cursor].Name, qt.Equals, "Milk")

	run(app, press(app, "space"))
	c.Assert(p.list.Checked(), qt.HasLen, 0)
	c.Assert(p.ordered()[p.cursor].Name, qt.Equals, "Milk")
}

func TestShopping_ClearCheckedNothingChecked(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageShopping))
	srv.SeedShoppingItems(models.ShoppingItem{Name: "Milk", Quantity: 2, Unit: "l"})
	run(app, app.Init())

	c.Assert(press(app, "c"), qt.IsNil)
	c.Assert(srv.CountRequests(http.MethodDelete, "/api/shoppinglist/:id"), qt.Equals, 0)
}

// ---------------------------------------------------------------------------
// Meal plan
// ---------------------------------------------------------------------------

func TestMealPlan_SetAndClear(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageMealPlan))
	recs := srv.SeedRecipes(
		models.Recipe{Name: "Porridge", Ingredients: []string{"oats"}, Steps: []string{"cook"}},
		models.Recipe{Name: "Curry", Ingredients: []string{"rice"}, Steps: []string{"cook"}},
	)
	run(app, app.Init())
	p := app.pages[PageMealPlan].(*mealPlanPage)

	press(app, "right")
	press(app, "down")
	press(app, "down")
	c.Assert(p.slot(), qt.Equals, models.Slot{Day: "Tuesday", MealType: models.Dinner})

	press(app, "a")
	c.Assert(p.capturing(), qt.IsTrue)
	c.Assert(p.draft.RecipeID, qt.Equals, recs[0].ID.String())
	app.Update(key("esc"))

	run(app, p.setMeal(p.slot(), recs[1].ID))
	c.Assert(srv.MealPlans(), qt.HasLen, 1)
	c.Assert(srv.MealPlans()[0].Date, qt.Equals, "Tuesday_dinner")
	c.Assert(strings.Contains(app.View(), "Tuesday Dinner: Curry"), qt.IsTrue)

	run(app, p.setMeal(p.slot(), recs[0].ID))
	c.Assert(srv.MealPlans(), qt.HasLen, 1)
	c.Assert(srv.CountRequests(http.MethodPut, "/api/mealplans/:id"), qt.Equals, 1)

	run(app, press(app, "d"))
	c.Assert(srv.MealPlans(), qt.HasLen, 0)
	c.Assert(p.week.Plans, qt.HasLen, 0)
}

func TestMealPlan_OverlappingMutationsKeepEachOther(t *testing.T) {
	c := qt.New(t)
	app, srv := newTestApp(c, WithStartPage(PageMealPlan))
	recs := srv.SeedRecipes(models.Recipe{Name: "Porridge", Ingredients: []string{"oats"}, Steps: []string{"cook"}})
	srv.SeedMealPlans(models.MealPlan{Date: "Friday_lunch", RecipeID: recs[0].ID})
	run(app, app.Init())
	p := app.pages[PageMealPlan].(*mealPlanPage)
	c.Assert(p.week.Plans, qt.HasLen, 1)

	monday := models.Slot{Day: "Monday", MealType: models.Breakfast}
	tuesday := models.Slot{Day: "Tuesday", MealType: models.Dinner}
	first := p.setMeal(monday, recs[0].ID)
	second := p.setMeal(tuesday, recs[0].ID)
	p.day, p.meal = models.DayIndex("Friday"), models.MealIndex(models.Lunch)
	third := p.clearSlot()
	run(app, first)
	run(app, second)
	run(app, third)

	c.Assert(srv.MealPlans(), qt.HasLen, 2)
	c.Assert(p.week.Plans, qt.HasLen, 2)
	_, ok := p.week.Find(monday)
	c.Assert(ok, qt.IsTrue)
	_, ok = p.week.Find(tuesday)
	c.Assert(ok, qt.IsTrue)
}

func TestMealPlan_PickerNeedsRecipes(t *testing.T) {
	c := qt.New(t)
	app, _ := newTestApp(c, WithStartPage(PageMealPlan))
	run(app, app.Init())
	p := app.pages[PageMealPlan].(*mealPlanPage)

	c.Assert(press(app, "enter"), qt.IsNil)
	c.Assert(p.capturing(), qt.IsFalse)
	c.Assert(p.status.flash, qt.Equals, "Error: add a recipe first")
}

func TestMealPlan_CursorStaysInGrid(t *testing.T) {
	c := qt.New(t)
	app, _ := newTestApp(c, WithStartPage(PageMealPlan))
	run(app, app.Init())
	p := app.pages[PageMealPlan].(*mealPlanPage)

	for i := 0; i < 10; i++ {
		press(app, "left")
		press(app, "up")
	}
	c.Assert(p.slot(), qt.Equals, models.Slot{Day: "Monday", MealType: models.Breakfast})
	for i := 0; i < 10; i++ {
		press(app, "right")
		press(app, "down")
	}
	c.Assert(p.slot(), qt.Equals, models.Slot{Day: "Sunday", MealType: models.Dinner})
}

func TestTruncate(t *testing.T) {
	c := qt.New(t)
	c.Assert(truncate("Soup", 14), qt.Equals, "Soup")
	c.Assert(truncate("Spaghetti Carbonara", 10), qt.Equals, "Spaghetti…")
}

func TestPageByName(t *testing.T) {
	c := qt.New(t)

	id, err := PageByName(" Shopping ")
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, PageShopping)

	id, err = PageByName("mealplan")
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, PageMealPlan)

	_, err = PageByName("settings")
	c.Assert(err, qt.ErrorMatches, `tui: unknown page "settings" .*`)
}
