package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the six fixed operating expense heads.
type ExpenseCategory string

const (
	ExpenseInventory ExpenseCategory = "Inventory"
	ExpenseUtilities ExpenseCategory = "Utilities"
	ExpenseRent      ExpenseCategory = "Rent"
	ExpenseStaff     ExpenseCategory = "Staff"
	ExpenseMarketing ExpenseCategory = "Marketing"
	ExpenseMisc      ExpenseCategory = "Misc"
)

// ExpenseCategories is the order used on the Profit & Loss statement.
var ExpenseCategories = []ExpenseCategory{
	ExpenseInventory,
	ExpenseUtilities,
	ExpenseRent,
	ExpenseStaff,
	ExpenseMarketing,
	ExpenseMisc,
}

// Valid reports whether c is one of the fixed expense categories.
func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Expense is an immutable money-out record.
type Expense struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	Timestamp   time.Time       `gorm:"index;not null" json:"timestamp"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    ExpenseCategory `gorm:"size:16;index;not null" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
