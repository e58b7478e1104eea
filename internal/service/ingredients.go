package service

import (
	"context"
	"strings"

	"github.com/go-ports/pantry/internal/expiration"
	"github.com/go-ports/pantry/internal/models"
)

// Ingredients loads the pantry inventory.
func (s *Service) Ingredients(ctx context.Context) ([]models.Ingredient, error) {
	items, err := s.api.ListIngredients(ctx)
	if err != nil {
		return nil, s.fail("Ingredients", err)
	}
	return items, nil
}

// AddIngredient validates and creates an ingredient, returning the stored copy.
func (s *Service) AddIngredient(ctx context.Context, ing models.Ingredient) (models.Ingredient, error) {
	ing.Name = strings.TrimSpace(ing.Name)
	if ing.Unit == "" {
		ing.Unit = models.DefaultIngredientUnit
	}
	if err := models.Validate("ingredient", ing); err != nil {
		return models.Ingredient{}, err
	}
	created, err := s.api.CreateIngredient(ctx, ing)
	if err != nil {
		return models.Ingredient{}, s.fail("AddIngredient", err)
	}
	return created, nil
}

// DeleteIngredient removes an ingredient by id.
func (s *Service) DeleteIngredient(ctx context.Context, id models.ID) error {
	if err := s.api.DeleteIngredient(ctx, id); err != nil {
		return s.fail("DeleteIngredient", err)
	}
	return nil
}

// ExpirationReport is the expiration page: rows sorted by date plus counts.
type ExpirationReport struct {
	Rows    []expiration.Row
	Summary expiration.Summary
}

// Expiration loads ingredients and classifies them against the service clock.
func (s *Service) Expiration(ctx context.Context) (ExpirationReport, error) {
	items, err := s.api.ListIngredients(ctx)
	if err != nil {
		return ExpirationReport{}, s.fail("Expiration", err)
	}
	rows := expiration.Report(items, s.now())
	return ExpirationReport{Rows: rows, Summary: expiration.Summarize(rows)}, nil
}

// Expiring asks the API for ingredients expiring within days.
func (s *Service) Expiring(ctx context.Context, days int) ([]models.Ingredient, error) {
	items, err := s.api.ExpiringIngredients(ctx, days)
	if err != nil {
		return nil, s.fail("Expiring", err)
	}
	return items, nil
}

