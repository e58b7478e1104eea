package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/go-ports/pantry/internal/api"
	"github.com/go-ports/pantry/internal/models"
)

// clearConcurrency bounds parallel DELETEs when clearing checked items.
const clearConcurrency = 8

// ShoppingList is a loaded shopping list.
type ShoppingList []models.ShoppingItem

// Unchecked returns the items still to buy, in list order.
func (l ShoppingList) Unchecked() []models.ShoppingItem { return l.filter(false) }

// Checked returns the items already in the cart, in list order.
func (l ShoppingList) Checked() []models.ShoppingItem { return l.filter(true) }

// Find returns the item with id.
func (l ShoppingList) Find(id models.ID) (models.ShoppingItem, bool) {
	for _, it := range l {
		if it.ID == id {
			return it, true
		}
	}
	return models.ShoppingItem{}, false
}

// Replace returns a copy with the item sharing item.ID swapped for item.
func (l ShoppingList) Replace(item models.ShoppingItem) ShoppingList {
	out := make(ShoppingList, len(l))
	for i, it := range l {
		if it.ID == item.ID {
			it = item
		}
		out[i] = it
	}
	return out
}

// Without returns a copy without the item id.
func (l ShoppingList) Without(id models.ID) ShoppingList {
	out := make(ShoppingList, 0, len(l))
	for _, it := range l {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func (l ShoppingList) filter(checked bool) []models.ShoppingItem {
	out := make([]models.ShoppingItem, 0, len(l))
	for _, it := range l {
		if it.Checked == checked {
			out = append(out, it)
		}
	}
	return out
}

// ShoppingList loads the shopping list.
func (s *Service) ShoppingList(ctx context.Context) (ShoppingList, error) {
	items, err := s.api.ListShoppingItems(ctx)
	if err != nil {
		return nil, s.fail("ShoppingList", err)
	}
	return items, nil
}

// AddShoppingItem validates and creates an item. A zero quantity defaults to
// one and a blank unit to pcs.
func (s *Service) AddShoppingItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Checked = false
	if item.Quantity == 0 {
		item.Quantity = models.DefaultShoppingQty
	}
	if item.Unit == "" {
		item.Unit = models.DefaultShoppingUnit
	}
	if err := models.Validate("shopping item", item); err != nil {
		return models.ShoppingItem{}, err
	}
	created, err := s.api.CreateShoppingItem(ctx, item)
	if err != nil {
		return models.ShoppingItem{}, s.fail("AddShoppingItem", err)
	}
	return created, nil
}

// ToggleShoppingItem sends item with its checked flag flipped and returns
// the server's copy.
func (s *Service) ToggleShoppingItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	item.Checked = !item.Checked
	updated, err := s.api.UpdateShoppingItem(ctx, item)
	if err != nil {
		return models.ShoppingItem{}, s.fail("ToggleShoppingItem", err)
	}
	return updated, nil
}

// ToggleShoppingItemByID loads the list, then toggles the item id.
func (s *Service) ToggleShoppingItemByID(ctx context.Context, id models.ID) (models.ShoppingItem, error) {
	list, err := s.ShoppingList(ctx)
	if err != nil {
		return models.ShoppingItem{}, err
	}
	item, ok := list.Find(id)
	if !ok {
		return models.ShoppingItem{}, fmt.Errorf("shopping item %s: %w", id, api.ErrNotFound)
	}
	return s.ToggleShoppingItem(ctx, item)
}

// DeleteShoppingItem removes an item by id.
func (s *Service) DeleteShoppingItem(ctx context.Context, id models.ID) error {
	if err := s.api.DeleteShoppingItem(ctx, id); err != nil {
		return s.fail("DeleteShoppingItem", err)
	}
	return nil
}

// ClearChecked deletes every checked item concurrently and returns list
// minus the items that were actually deleted. On partial failure the error
// is returned together with the items that survive.
func (s *Service) ClearChecked(ctx context.Context, list ShoppingList) (ShoppingList, error) {
	var (
		mu      sync.Mutex
		deleted = make(map[models.ID]bool)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(clearConcurrency)
	for _, item := range list.Checked() {
		g.Go(func() error {
			if err := s.api.DeleteShoppingItem(gctx, item.ID); err != nil {
				return err
			}
			mu.Lock()
			deleted[item.ID] = true
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	remaining := make(ShoppingList, 0, len(list))
	for _, it := range list {
		if !deleted[it.ID] {
			remaining = append(remaining, it)
		}
	}
	if err != nil {
		return remaining, s.fail("ClearChecked", err)
	}
	return remaining, nil
}
