package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"go.uber.org/goleak"

	"github.com/go-ports/pantry/internal/api"
	"github.com/go-ports/pantry/internal/apitest"
	"github.com/go-ports/pantry/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func newClient(c *qt.C) (*api.Client, *apitest.Server) {
	srv := apitest.New(c.TB)
	return api.New(srv.URL + "/"), srv
}

// ---------------------------------------------------------------------------
// Ingredients
// ---------------------------------------------------------------------------

func TestIngredients_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl, srv := newClient(c)
	ctx := context.Background()

	created, err := cl.CreateIngredient(ctx, models.Ingredient{
		ID: "ignored", Name: "Rice", Quantity: 500, Unit: "g", ExpirationDate: "2030-01-01",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(created.ID, qt.Equals, models.ID("1"))
	c.Assert(created.Name, qt.Equals, "Rice")

	list, err := cl.ListIngredients(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.DeepEquals, []models.Ingredient{created})

	c.Assert(cl.DeleteIngredient(ctx, created.ID), qt.IsNil)
	c.Assert(srv.Ingredients(), qt.HasLen, 0)
}

func TestListIngredients_EmptyIsNotNil(t *testing.T) {
	c := qt.New(t)
	cl, _ := newClient(c)

	list, err := cl.ListIngredients(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.IsNotNil)
	c.Assert(list, qt.HasLen, 0)
}

func TestExpiringIngredients_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl, srv := newClient(c)
	srv.Now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local) }
	srv.SeedIngredients(
		models.Ingredient{Name: "Milk", Quantity: 1, Unit: "l", ExpirationDate: "2024-06-12"},
		models.Ingredient{Name: "Rice", Quantity: 1, Unit: "kg", ExpirationDate: "2025-06-12"},
	)

	got, err := cl.ExpiringIngredients(context.Background(), 3)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0].Name, qt.Equals, "Milk")
	c.Assert(srv.Requests()[0].Path, qt.Equals, "/api/notifications")
}

// ---------------------------------------------------------------------------
// Recipes
// ---------------------------------------------------------------------------

func TestRecipes_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl, srv := newClient(c)
	ctx := context.Background()

	r, err := cl.CreateRecipe(ctx, models.Recipe{
		Name: "Toast", Ingredients: []string{"bread"}, Steps: []string{"toast"}, PrepTime: 1, CookTime: 3,
	})
	c.Assert(err, qt.IsNil)

	r.Name = "Better toast"
	updated, err := cl.UpdateRecipe(ctx, r)
	c.Assert(err, qt.IsNil)
	c.Assert(updated, qt.DeepEquals, r)
	c.Assert(srv.Recipes()[0].Name, qt.Equals, "Better toast")

	c.Assert(cl.DeleteRecipe(ctx, r.ID), qt.IsNil)
	list, err := cl.ListRecipes(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 0)
}

// ---------------------------------------------------------------------------
// Meal plans
// ---------------------------------------------------------------------------

func TestMealPlans_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl, srv := newClient(c)
	ctx := context.Background()

	m, err := cl.CreateMealPlan(ctx, models.MealPlan{Date: "Monday_lunch", RecipeID: "4"})
	c.Assert(err, qt.IsNil)
	c.Assert(m.Date, qt.Equals, "Monday_lunch")

	m.RecipeID = "5"
	updated, err := cl.UpdateMealPlan(ctx, m)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.ID, qt.Equals, m.ID)
	c.Assert(updated.RecipeID, qt.Equals, models.ID("5"))

	list, err := cl.ListMealPlans(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.DeepEquals, []models.MealPlan{updated})

	c.Assert(cl.DeleteMealPlan(ctx, m.ID), qt.IsNil)
	c.Assert(srv.MealPlans(), qt.HasLen, 0)
}

// ---------------------------------------------------------------------------
// Shopping list
// ---------------------------------------------------------------------------

func TestShoppingItems_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl, srv := newClient(c)
	ctx := context.Background()

	item, err := cl.CreateShoppingItem(ctx, models.ShoppingItem{Name: "Eggs", Quantity: 12, Unit: "pcs", Checked: true})
	c.Assert(err, qt.IsNil)
	c.Assert(item.Checked, qt.IsFalse)

	item.Checked = true
	updated, err := cl.UpdateShoppingItem(ctx, item)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Checked, qt.IsTrue)

	list, err := cl.ListShoppingItems(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.DeepEquals, []models.ShoppingItem{updated})

	c.Assert(cl.DeleteShoppingItem(ctx, item.ID), qt.IsNil)
	c.Assert(srv.ShoppingItems(), qt.HasLen, 0)
}

// ---------------------------------------------------------------------------
// Transport behaviour
// ---------------------------------------------------------------------------

func TestRequestIDHeader(t *testing.T) {
	c := qt.New(t)
	cl, srv := newClient(c)

	_, err := cl.ListRecipes(context.Background())
	c.Assert(err, qt.IsNil)
	_, err = cl.ListRecipes(context.Background())
	c.Assert(err, qt.IsNil)

	reqs := srv.Requests()
	c.Assert(reqs, qt.HasLen, 2)
	c.Assert(reqs[0].RequestID, qt.Not(qt.Equals), "")
	c.Assert(reqs[0].RequestID, qt.Not(qt.Equals), reqs[1].RequestID)
}

func TestStatusError_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("server error carries code and body", func(c *qt.C) {
		cl, srv := newClient(c)
		srv.Fail(http.MethodGet, "/api/ingredients", http.StatusInternalServerError)

		_, err := cl.ListIngredients(context.Background())
		c.Assert(err, qt.ErrorMatches, `api: GET /api/ingredients: HTTP 500: injected failure`)
		var se *api.StatusError
		c.Assert(errors.As(err, &se), qt.IsTrue)
		c.Assert(se.Code, qt.Equals, http.StatusInternalServerError)
		c.Assert(errors.Is(err, api.ErrNotFound), qt.IsFalse)
	})

	c.Run("unknown id maps to ErrNotFound", func(c *qt.C) {
		cl, _ := newClient(c)
		err := cl.DeleteShoppingItem(context.Background(), "99")
		c.Assert(errors.Is(err, api.ErrNotFound), qt.IsTrue)
	})

	c.Run("malformed body is a decode error", func(c *qt.C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).ListRecipes(context.Background())
		c.Assert(err, qt.ErrorMatches, `api: GET /api/recipes: decode: .*`)
	})

	c.Run("credentials echoed in the body are masked", func(c *qt.C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "bad token=abc123 for user", http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := api.New(srv.URL).ListRecipes(context.Background())
		c.Assert(err, qt.ErrorMatches, `api: GET /api/recipes: HTTP 401: bad token=\[REDACTED\] for user`)
	})

	c.Run("unreachable server", func(c *qt.C) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := api.New(srv.URL, api.WithTimeout(time.Second)).ListMealPlans(context.Background())
		c.Assert(err, qt.ErrorMatches, `api: GET /api/mealplans: .*`)
	})

	c.Run("cancelled context", func(c *qt.C) {
		cl, _ := newClient(c)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := cl.ListShoppingItems(ctx)
		c.Assert(errors.Is(err, context.Canceled), qt.IsTrue)
	})
}

func TestNew_Options(t *testing.T) {
	c := qt.New(t)

	hc := &http.Client{}
	cl := api.New("http://example.test///", api.WithHTTPClient(hc), api.WithTimeout(3*time.Second))
	c.Assert(cl.BaseURL(), qt.Equals, "http://example.test")
	c.Assert(hc.Timeout, qt.Equals, 3*time.Second)
}
