// Package service implements the pantry page operations on top of the REST
// client: loading collections, validating form input, mirroring mutations
// and deriving the view-ready fields each page shows.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-ports/pantry/internal/api"
	"github.com/go-ports/pantry/internal/config"
	"github.com/go-ports/pantry/internal/logging"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/redaction"
)

// API is the subset of the REST client the service depends on.
type API interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, ing models.Ingredient) (models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id models.ID) error
	ExpiringIngredients(ctx context.Context, days int) ([]models.Ingredient, error)

	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error)
	UpdateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, id models.ID) error

	ListMealPlans(ctx context.Context) ([]models.MealPlan, error)
	CreateMealPlan(ctx context.Context, m models.MealPlan) (models.MealPlan, error)
	UpdateMealPlan(ctx context.Context, m models.MealPlan) (models.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id models.ID) error

	ListShoppingItems(ctx context.Context) ([]models.ShoppingItem, error)
	CreateShoppingItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error)
	UpdateShoppingItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error)
	DeleteShoppingItem(ctx context.Context, id models.ID) error
}

var _ API = (*api.Client)(nil)

// Service orchestrates all pantry operations.
type Service struct {
	Home   string
	Config *config.PantryConfig

	api API
	log *slog.Logger
	now func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.Config.API.BaseURL = url
		}
	}
}

// WithAPI replaces the REST client.
func WithAPI(a API) Option {
	return func(s *Service) { s.api = a }
}

// WithLogger sets the logger used for failure reports.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the clock used for expiration and week calculations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New initialises a Service rooted at home.
// If home is empty it is resolved via config.GetHome.
func New(home string, opts ...Option) (*Service, error) {
	if home == "" {
		home = config.GetHome()
	}

	cfg, err := config.Load(config.Path(home))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	s := &Service{
		Home:   home,
		Config: cfg,
		log:    logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.api == nil {
		s.api = api.New(s.Config.API.BaseURL, api.WithTimeout(s.Config.API.Timeout))
	}
	return s, nil
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// fail logs err under op and returns it wrapped with the operation name.
func (s *Service) fail(op string, err error) error {
	s.log.Error(op+" failed", "err", redaction.Error(err))
	return fmt.Errorf("service.%s: %w", op, err)
}
