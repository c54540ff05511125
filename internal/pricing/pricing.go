// Package pricing computes order line and cart totals.
//
// Amounts are accumulated without rounding; callers round to two decimals
// only for display. Inputs are assumed validated: non-negative prices and
// quantity of at least one.
package pricing

import (
	"github.com/damia-cpu/Wellness-Cafe/internal/models"

	"github.com/shopspring/decimal"
)

// UnitPrice is the base price plus every selected add-on.
func UnitPrice(item models.OrderItem) decimal.Decimal {
	unit := item.Price
	for _, a := range item.AddOns {
		unit = unit.Add(a.Price)
	}
	return unit
}

// LineTotal returns (base + add-ons) * quantity.
func LineTotal(item models.OrderItem) decimal.Decimal {
	return UnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// CartTotal sums LineTotal over the cart. An empty cart is zero.
func CartTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it))
	}
	return total
}

// ManualLineTotal returns price * quantity for an ad hoc sale line.
func ManualLineTotal(line models.ManualLine) decimal.Decimal {
	return line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// ManualTotal sums ManualLineTotal over the lines.
func ManualTotal(lines []models.ManualLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(ManualLineTotal(l))
	}
	return total
}

// Format renders an amount the way receipts and statements show it.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
