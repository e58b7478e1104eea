package service

import (
	"context"
	"fmt"

	"github.com/go-ports/pantry/internal/api"
	"github.com/go-ports/pantry/internal/models"
)

// Recipes loads the recipe collection.
func (s *Service) Recipes(ctx context.Context) ([]models.Recipe, error) {
	items, err := s.api.ListRecipes(ctx)
	if err != nil {
		return nil, s.fail("Recipes", err)
	}
	return items, nil
}

// Recipe finds a recipe by id. There is no single-item endpoint, so the
// collection is loaded and searched.
func (s *Service) Recipe(ctx context.Context, id models.ID) (models.Recipe, error) {
	items, err := s.Recipes(ctx)
	if err != nil {
		return models.Recipe{}, err
	}
	for _, r := range items {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, api.ErrNotFound)
}

// AddRecipe drops blank ingredient and step lines, validates and creates.
func (s *Service) AddRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	r = r.Clean()
	if err := models.Validate("recipe", r); err != nil {
		return models.Recipe{}, err
	}
	created, err := s.api.CreateRecipe(ctx, r)
	if err != nil {
		return models.Recipe{}, s.fail("AddRecipe", err)
	}
	return created, nil
}

// UpdateRecipe drops blank lines, validates and replaces the recipe r.ID.
func (s *Service) UpdateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	if r.ID == "" {
		return models.Recipe{}, fmt.Errorf("%w recipe: id is required", models.ErrInvalid)
	}
	r = r.Clean()
	if err := models.Validate("recipe", r); err != nil {
		return models.Recipe{}, err
	}
	updated, err := s.api.UpdateRecipe(ctx, r)
	if err != nil {
		return models.Recipe{}, s.fail("UpdateRecipe", err)
	}
	return updated, nil
}

// DeleteRecipe removes a recipe by id.
func (s *Service) DeleteRecipe(ctx context.Context, id models.ID) error {
	if err := s.api.DeleteRecipe(ctx, id); err != nil {
		return s.fail("DeleteRecipe", err)
	}
	return nil
}
