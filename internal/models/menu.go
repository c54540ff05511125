package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCategory is one of the five fixed menu sections.
type MenuCategory string

const (
	CategoryCoffee          MenuCategory = "Brew-tiful Coffee"
	CategoryChocolateMatcha MenuCategory = "Whisked Me Away"
	CategoryMojitoLemonade  MenuCategory = "The Mojito Series"
	CategoryTea             MenuCategory = "Tea Series"
	CategoryOther           MenuCategory = "Other"
)

// MenuCategories lists the sections in display order.
var MenuCategories = []MenuCategory{
	CategoryCoffee,
	CategoryChocolateMatcha,
	CategoryMojitoLemonade,
	CategoryTea,
	CategoryOther,
}

// Valid reports whether c is a menu section.
func (c MenuCategory) Valid() bool {
	for _, v := range MenuCategories {
		if c == v {
			return true
		}
	}
	return false
}

// MenuItem is a sellable drink on the POS screen.
type MenuItem struct {
	ID        string          `gorm:"primaryKey;size:64" json:"id"`
	Name      string          `gorm:"size:128;not null" json:"name"`
	Category  MenuCategory    `gorm:"size:32;index;not null" json:"category"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Available bool            `gorm:"not null" json:"available"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// AddOn is a global extra (oat milk, extra shot...) that can be attached to any line.
type AddOn struct {
	ID        string          `gorm:"primaryKey;size:64" json:"id"`
	Name      string          `gorm:"size:128;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// SugarLevel is the sweetness tag printed on the order line.
type SugarLevel string

const DefaultSugarLevel SugarLevel = "100%"

// SugarLevels is ordered from full to none.
var SugarLevels = []SugarLevel{"100%", "75%", "50%", "25%", "0%"}

// Valid reports whether s is one of SugarLevels.
func (s SugarLevel) Valid() bool {
	for _, v := range SugarLevels {
		if s == v {
			return true
		}
	}
	return false
}
