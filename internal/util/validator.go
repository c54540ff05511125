package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxAmount caps any single price or expense.
var MaxAmount = decimal.NewFromInt(10_000_000)

// ParseAmount parses a decimal string and rounds it to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amt.Round(2), nil
}

// ValidateAmount requires a strictly positive amount below MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidatePrice allows zero, for complimentary menu items.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", price)
	}
	if price.GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("price too large, got %s", price)
	}
	return nil
}

// ValidateName requires a non-blank name of at most 128 characters.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len([]rune(name)) > 128 {
		return fmt.Errorf("name too long, max 128 characters")
	}
	return nil
}

// ValidateDate checks the YYYY-MM-DD form used by the date pickers.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseBusinessDate reads a business date in loc. A bare date becomes
// midnight of that day; an empty string falls back to def.
func ParseBusinessDate(s string, loc *time.Location, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def.In(loc), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}
