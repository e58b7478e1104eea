// Package api is the HTTP client for the pantry REST service.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-ports/pantry/internal/models"
)

// DefaultTimeout bounds every request when the caller does not set one.
const DefaultTimeout = 10 * time.Second

// Endpoint paths relative to the base URL.
const (
	ingredientsPath   = "/api/ingredients"
	recipesPath       = "/api/recipes"
	mealPlansPath     = "/api/mealplans"
	shoppingListPath  = "/api/shoppinglist"
	notificationsPath = "/api/notifications"
)

// Client calls the pantry API rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New returns a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func itemPath(collection string, id models.ID) string {
	return collection + "/" + url.PathEscape(id.String())
}

// ---------------------------------------------------------------------------
// Ingredients
// ---------------------------------------------------------------------------

// ListIngredients calls GET /api/ingredients.
func (c *Client) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	out := make([]models.Ingredient, 0)
	if err := c.doJSON(ctx, http.MethodGet, ingredientsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIngredient calls POST /api/ingredients.
func (c *Client) CreateIngredient(ctx context.Context, ing models.Ingredient) (models.Ingredient, error) {
	ing.ID = ""
	var out models.Ingredient
	err := c.doJSON(ctx, http.MethodPost, ingredientsPath, ing, &out)
	return out, err
}

// DeleteIngredient calls DELETE /api/ingredients/{id}.
func (c *Client) DeleteIngredient(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath(ingredientsPath, id), nil, nil)
}

// ExpiringIngredients calls GET /api/notifications?days=N.
func (c *Client) ExpiringIngredients(ctx context.Context, days int) ([]models.Ingredient, error) {
	path := notificationsPath + "?days=" + strconv.Itoa(days)
	out := make([]models.Ingredient, 0)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Recipes
// ---------------------------------------------------------------------------

// ListRecipes calls GET /api/recipes.
func (c *Client) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	out := make([]models.Recipe, 0)
	if err := c.doJSON(ctx, http.MethodGet, recipesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRecipe calls POST /api/recipes.
func (c *Client) CreateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	r.ID = ""
	var out models.Recipe
	err := c.doJSON(ctx, http.MethodPost, recipesPath, r, &out)
	return out, err
}

// UpdateRecipe calls PUT /api/recipes/{id}.
func (c *Client) UpdateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	var out models.Recipe
	err := c.doJSON(ctx, http.MethodPut, itemPath(recipesPath, r.ID), r, &out)
	return out, err
}

// DeleteRecipe calls DELETE /api/recipes/{id}.
func (c *Client) DeleteRecipe(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath(recipesPath, id), nil, nil)
}

// ---------------------------------------------------------------------------
// Meal plans
// ---------------------------------------------------------------------------

// ListMealPlans calls GET /api/mealplans.
func (c *Client) ListMealPlans(ctx context.Context) ([]models.MealPlan, error) {
	out := make([]models.MealPlan, 0)
	if err := c.doJSON(ctx, http.MethodGet, mealPlansPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMealPlan calls POST /api/mealplans.
func (c *Client) CreateMealPlan(ctx context.Context, m models.MealPlan) (models.MealPlan, error) {
	m.ID = ""
	var out models.MealPlan
	err := c.doJSON(ctx, http.MethodPost, mealPlansPath, m, &out)
	return out, err
}

// UpdateMealPlan calls PUT /api/mealplans/{id}. The payload omits the id, as
// the planner sends only date and recipeId.
func (c *Client) UpdateMealPlan(ctx context.Context, m models.MealPlan) (models.MealPlan, error) {
	path := itemPath(mealPlansPath, m.ID)
	m.ID = ""
	var out models.MealPlan
	err := c.doJSON(ctx, http.MethodPut, path, m, &out)
	return out, err
}

// DeleteMealPlan calls DELETE /api/mealplans/{id}.
func (c *Client) DeleteMealPlan(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath(mealPlansPath, id), nil, nil)
}

// ---------------------------------------------------------------------------
// Shopping list
// ---------------------------------------------------------------------------

// ListShoppingItems calls GET /api/shoppinglist.
func (c *Client) ListShoppingItems(ctx context.Context) ([]models.ShoppingItem, error) {
	out := make([]models.ShoppingItem, 0)
	if err := c.doJSON(ctx, http.MethodGet, shoppingListPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateShoppingItem calls POST /api/shoppinglist. The checked flag is not
// part of the create payload.
func (c *Client) CreateShoppingItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	payload := struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}{item.Name, item.Quantity, item.Unit}
	var out models.ShoppingItem
	err := c.doJSON(ctx, http.MethodPost, shoppingListPath, payload, &out)
	return out, err
}

// UpdateShoppingItem calls PUT /api/shoppinglist/{id} with the full item.
func (c *Client) UpdateShoppingItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	var out models.ShoppingItem
	err := c.doJSON(ctx, http.MethodPut, itemPath(shoppingListPath, item.ID), item, &out)
	return out, err
}

// DeleteShoppingItem calls DELETE /api/shoppinglist/{id}.
func (c *Client) DeleteShoppingItem(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath(shoppingListPath, id), nil, nil)
}
