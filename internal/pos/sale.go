package pos

import (
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/pricing"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"
)

// Checkout turns the cart into a Regular sale dated on the given business
// date and hands it to record. The cart is cleared only when record
// succeeds.
func Checkout(cart *Cart, date time.Time, clock util.Clock, record func(*models.Transaction) error) (*models.Transaction, error) {
	cart.mu.Lock()
	defer cart.mu.Unlock()

	if len(cart.lines) == 0 {
		return nil, ErrEmptyCart
	}
	items := cart.copyLines()
	tx := &models.Transaction{
		ID:        util.NewID(util.PrefixRegularSale, clock.Now()),
		Timestamp: date,
		Type:      models.TransactionRegular,
		Items:     items,
		Total:     pricing.CartTotal(items),
	}
	if err := record(tx); err != nil {
		return nil, err
	}
	cart.lines = nil
	return tx, nil
}

// ManualSale builds a Manual sale from ad hoc lines.
func ManualSale(lines []models.ManualLine, date time.Time, clock util.Clock) (*models.Transaction, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	other := make([]models.ManualLine, len(lines))
	copy(other, lines)
	return &models.Transaction{
		ID:         util.NewID(util.PrefixManualSale, clock.Now()),
		Timestamp:  date,
		Type:       models.TransactionManual,
		Items:      []models.OrderItem{},
		OtherSales: other,
		Total:      pricing.ManualTotal(other),
	}, nil
}
