package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItems returns the whole menu in the order items were added.
func (s *Store) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("rowid ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

// MenuItem looks one item up by id.
func (s *Store) MenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &item, nil
}

func checkMenuItem(item *models.MenuItem) error {
	if item.ID == "" || item.Name == "" {
		return fmt.Errorf("%w: menu item needs id and name", ErrInvalidRecord)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: unknown menu category %q", ErrInvalidRecord, item.Category)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: negative price", ErrInvalidRecord)
	}
	return nil
}

// CreateMenuItem adds an item to the menu.
func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := checkMenuItem(item); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// MenuItemPatch carries the admin edits; nil fields are left alone.
type MenuItemPatch struct {
	Name      *string
	Category  *models.MenuCategory
	Price     *decimal.Decimal
	Available *bool
}

// UpdateMenuItem applies a patch and returns the updated item. Carts that
// already hold the item keep their snapshot.
func (s *Store) UpdateMenuItem(ctx context.Context, id string, patch MenuItemPatch) (*models.MenuItem, error) {
	item, err := s.MenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	if err := checkMenuItem(item); err != nil {
		return nil, err
	}

	// Select("*") so Available=false is written too
	if err := s.db.WithContext(ctx).Model(item).Select("*").Updates(item).Error; err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return item, nil
}

// DeleteMenuItem removes an item from the menu. Past sales keep their
// snapshot of it.
func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	return s.remove(ctx, &models.MenuItem{}, id)
}

// AddOns returns all add-ons in the order they were added.
func (s *Store) AddOns(ctx context.Context) ([]models.AddOn, error) {
	var addOns []models.AddOn
	if err := s.db.WithContext(ctx).Order("rowid ASC").Find(&addOns).Error; err != nil {
		return nil, fmt.Errorf("list add-ons: %w", err)
	}
	return addOns, nil
}

// AddOnsByID resolves ids in the given order. Any unknown id fails the
// whole lookup with ErrNotFound.
func (s *Store) AddOnsByID(ctx context.Context, ids []string) ([]models.AddOn, error) {
	if len(ids) == 0 {
		return []models.AddOn{}, nil
	}
	var found []models.AddOn
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("get add-ons: %w", err)
	}
	byID := make(map[string]models.AddOn, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	out := make([]models.AddOn, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("add-on %s: %w", id, ErrNotFound)
		}
		out = append(out, a)
	}
	return out, nil
}

func checkAddOn(a *models.AddOn) error {
	if a.ID == "" || a.Name == "" {
		return fmt.Errorf("%w: add-on needs id and name", ErrInvalidRecord)
	}
	if a.Price.IsNegative() {
		return fmt.Errorf("%w: negative price", ErrInvalidRecord)
	}
	return nil
}

func (s *Store) createAddOn(ctx context.Context, a *models.AddOn) error {
	if err := checkAddOn(a); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create add-on: %w", err)
	}
	return nil
}

// UpdateAddOnPrice changes one add-on's price.
func (s *Store) UpdateAddOnPrice(ctx context.Context, id string, price decimal.Decimal) (*models.AddOn, error) {
	if err := checkAddOn(&models.AddOn{ID: id, Name: id, Price: price}); err != nil {
		return nil, err
	}
	var a models.AddOn
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get add-on: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&a).Update("price", price).Error; err != nil {
		return nil, fmt.Errorf("update add-on: %w", err)
	}
	a.Price = price
	return &a, nil
}
