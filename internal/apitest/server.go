// Package apitest provides an in-memory fake of the pantry REST API for
// tests. It serves the same routes as the real service over httptest and
// records every request it receives.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-ports/pantry/internal/expiration"
	"github.com/go-ports/pantry/internal/models"
)

// Request is one recorded call.
type Request struct {
	Method    string
	Path      string
	Route     string
	RequestID string
}

// Server is a running fake API. The zero value is not usable; call New.
type Server struct {
	*httptest.Server

	// Now is the clock used by the notifications endpoint.
	Now func() time.Time

	mu          sync.Mutex
	nextID      int
	ingredients table[models.Ingredient]
	recipes     table[models.Recipe]
	mealPlans   table[models.MealPlan]
	shopping    table[models.ShoppingItem]
	failures    map[string]int
	requests    []Request
}

// New starts a fake API and registers its shutdown on tb.
func New(tb testing.TB) *Server {
	tb.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		Now:         time.Now,
		ingredients: table[models.Ingredient]{idOf: func(v *models.Ingredient) *models.ID { return &v.ID }},
		recipes:     table[models.Recipe]{idOf: func(v *models.Recipe) *models.ID { return &v.ID }},
		mealPlans:   table[models.MealPlan]{idOf: func(v *models.MealPlan) *models.ID { return &v.ID }},
		shopping:    table[models.ShoppingItem]{idOf: func(v *models.ShoppingItem) *models.ID { return &v.ID }},
		failures:    make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	tb.Cleanup(s.Close)
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.record)

	api := r.Group("/api")
	mount(api, "/ingredients", s, &s.ingredients, false)
	mount(api, "/recipes", s, &s.recipes, true)
	mount(api, "/mealplans", s, &s.mealPlans, true)
	mount(api, "/shoppinglist", s, &s.shopping, true)
	api.GET("/notifications", s.notifications)
	return r
}

// record logs the request and short-circuits it when a failure is armed for
// its route.
func (s *Server) record(c *gin.Context) {
	route := c.FullPath()
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Route:     route,
		RequestID: c.GetHeader("X-Request-ID"),
	})
	code, fail := s.failures[c.Request.Method+" "+route]
	s.mu.Unlock()

	if fail {
		c.String(code, "injected failure")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) notifications(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		c.String(http.StatusBadRequest, "days must be an integer")
		return
	}
	s.mu.Lock()
	items := s.ingredients.list()
	s.mu.Unlock()
	c.JSON(http.StatusOK, expiration.Within(items, days, s.Now()))
}

// ---------------------------------------------------------------------------
// Test controls
// ---------------------------------------------------------------------------

// Fail makes every request matching method and route (a gin route pattern
// such as "/api/recipes/:id") answer with code until Recover is called.
func (s *Server) Fail(method, route string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+route] = code
}

// Recover clears all injected failures.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CountRequests returns how many recorded requests match method and route.
func (s *Server) CountRequests(method, route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Route == route {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Seeding and snapshots
// ---------------------------------------------------------------------------

// SeedIngredients stores items with fresh IDs and returns the stored copies.
func (s *Server) SeedIngredients(items ...models.Ingredient) []models.Ingredient {
	return seed(s, &s.ingredients, items)
}

// SeedRecipes stores recipes with fresh IDs and returns the stored copies.
func (s *Server) SeedRecipes(items ...models.Recipe) []models.Recipe {
	return seed(s, &s.recipes, items)
}

// SeedMealPlans stores entries with fresh IDs and returns the stored copies.
func (s *Server) SeedMealPlans(items ...models.MealPlan) []models.MealPlan {
	return seed(s, &s.mealPlans, items)
}

// SeedShoppingItems stores items with fresh IDs and returns the stored copies.
func (s *Server) SeedShoppingItems(items ...models.ShoppingItem) []models.ShoppingItem {
	return seed(s, &s.shopping, items)
}

// Ingredients returns the stored ingredients.
func (s *Server) Ingredients() []models.Ingredient { return snapshot(s, &s.ingredients) }

// Recipes returns the stored recipes.
func (s *Server) Recipes() []models.Recipe { return snapshot(s, &s.recipes) }

// MealPlans returns the stored meal plan entries.
func (s *Server) MealPlans() []models.MealPlan { return snapshot(s, &s.mealPlans) }

// ShoppingItems returns the stored shopping items.
func (s *Server) ShoppingItems() []models.ShoppingItem { return snapshot(s, &s.shopping) }

// newID must be called with s.mu held.
func (s *Server) newID() models.ID {
	s.nextID++
	return models.ID(strconv.Itoa(s.nextID))
}

func seed[T any](s *Server, t *table[T], items []T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(items))
	for _, v := range items {
		out = append(out, t.insert(v, s.newID()))
	}
	return out
}

func snapshot[T any](s *Server, t *table[T]) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.list()
}
