package store

import (
	"context"
	"fmt"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func item(id, name string, cat models.MenuCategory, price string) models.MenuItem {
	return models.MenuItem{
		ID:        id,
		Name:      name,
		Category:  cat,
		Price:     decimal.RequireFromString(price),
		Available: true,
	}
}

func addOn(id, name, price string) models.AddOn {
	return models.AddOn{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

// DefaultMenu is the opening menu of the café.
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		item("c1", "Americano", models.CategoryCoffee, "4.50"),
		item("c2", "Latte", models.CategoryCoffee, "5.50"),
		item("c3", "Cappuccino", models.CategoryCoffee, "5.50"),
		item("c4", "Spanish Latte", models.CategoryCoffee, "6.00"),
		item("c5", "Mocha", models.CategoryCoffee, "6.00"),
		item("c6", "Hazelnut Latte", models.CategoryCoffee, "6.50"),
		item("c7", "Salted Caramel Latte", models.CategoryCoffee, "6.50"),
		item("c8", "Vanilla Latte", models.CategoryCoffee, "6.50"),

		item("m1", "Chocolate", models.CategoryChocolateMatcha, "6.00"),
		item("m2", "Chocolate Strawberry", models.CategoryChocolateMatcha, "6.50"),
		item("m3", "Matcha", models.CategoryChocolateMatcha, "6.00"),
		item("m4", "Matcha Strawberry", models.CategoryChocolateMatcha, "6.50"),
		item("m5", "Matcha Mango", models.CategoryChocolateMatcha, "6.50"),
		item("m6", "Matcha Chocolate", models.CategoryChocolateMatcha, "6.50"),

		item("j1", "Blue Mojito", models.CategoryMojitoLemonade, "7.00"),
		item("j2", "Strawberry Mojito", models.CategoryMojitoLemonade, "7.00"),
		item("j3", "Apple Mojito", models.CategoryMojitoLemonade, "7.00"),
		item("j4", "Strawberry Lemonade", models.CategoryMojitoLemonade, "6.50"),
		item("j5", "Lemonade", models.CategoryMojitoLemonade, "5.50"),

		item("t1", "Earl Grey", models.CategoryTea, "4.50"),
		item("t2", "Peach Tea", models.CategoryTea, "5.00"),
		item("t3", "Jasmine Tea", models.CategoryTea, "4.50"),
		item("t4", "Oolong Milk Peach Tea", models.CategoryTea, "6.00"),
		item("t5", "Teh Boh", models.CategoryTea, "3.50"),
	}
}

// DefaultAddOns are the extras offered on every drink.
func DefaultAddOns() []models.AddOn {
	return []models.AddOn{
		addOn("a1", "Oat Milk", "1.00"),
		addOn("a2", "Extra Shot", "0.50"),
		addOn("a3", "Caramel Syrup", "0.50"),
		addOn("a4", "Hazelnut Syrup", "0.50"),
		addOn("a5", "Vanilla Syrup", "0.50"),
	}
}

// SeedCatalog installs the default menu and add-ons into an empty
// catalog. It reports whether anything was written; a catalog that
// already has items is left untouched.
func (s *Store) SeedCatalog(ctx context.Context) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count menu: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	menu, addOns := DefaultMenu(), DefaultAddOns()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}
		return tx.Create(&addOns).Error
	})
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}
	return true, nil
}
