package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates catalog sales from ad hoc ones.
type TransactionType string

const (
	TransactionRegular TransactionType = "Regular"
	TransactionManual  TransactionType = "Manual"
)

// Valid reports whether t is a known sale kind.
func (t TransactionType) Valid() bool {
	return t == TransactionRegular || t == TransactionManual
}

// OrderItem is a cart line. Name and Price are copied from the menu item
// when the line is added, later menu edits do not touch it.
type OrderItem struct {
	ID         string          `json:"id"`
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	AddOns     []AddOn         `json:"add_ons"`
	SugarLevel SugarLevel      `json:"sugar_level"`
}

// ManualLine is one ad hoc item of a Manual sale.
type ManualLine struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
}

// Transaction is an immutable sale. Timestamp is the business date chosen
// by the operator. Total is fixed at creation and never recomputed.
type Transaction struct {
	ID         string          `gorm:"primaryKey;size:64" json:"id"`
	Timestamp  time.Time       `gorm:"index;not null" json:"timestamp"`
	Type       TransactionType `gorm:"size:16;index;not null" json:"type"`
	Items      []OrderItem     `gorm:"serializer:json" json:"items"`
	OtherSales []ManualLine    `gorm:"serializer:json" json:"other_sales,omitempty"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Description renders the one-line summary shown in the money-in table.
// categoryOf resolves a menu item's section, it may return "" when the
// item has since been deleted.
func (tx *Transaction) Description(categoryOf func(menuItemID string) MenuCategory) string {
	if tx.Type == TransactionManual {
		name := "Item"
		if len(tx.OtherSales) > 0 && tx.OtherSales[0].Name != "" {
			name = tx.OtherSales[0].Name
		}
		return "Other Sale – " + name + moreSuffix(len(tx.OtherSales))
	}

	if len(tx.Items) == 0 {
		return "Order – General: Unknown Item"
	}
	first := tx.Items[0]
	label := "General"
	if categoryOf != nil {
		if c := categoryOf(first.MenuItemID); c != "" {
			label = string(c)
		}
	}
	return "Order – " + label + ": " + first.Name + moreSuffix(len(tx.Items))
}

func moreSuffix(n int) string {
	if n > 1 {
		return fmt.Sprintf(" (+%d more)", n-1)
	}
	return ""
}
