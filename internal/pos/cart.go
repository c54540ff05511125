// Package pos is the till: one shared cart and the builders that turn a
// cart or a list of ad hoc lines into a sale.
package pos

import (
	"errors"
	"sync"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/pricing"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrUnavailable  = errors.New("menu item is unavailable")
	ErrLineNotFound = errors.New("cart line not found")
)

// Cart holds the order being rung up. Lines copy the menu item's name and
// price when added.
type Cart struct {
	mu    sync.Mutex
	lines []models.OrderItem
	clock util.Clock
}

func NewCart(clock util.Clock) *Cart {
	return &Cart{clock: clock}
}

// Add appends a line for item. Quantity below one becomes one and an
// unknown sugar level becomes the default.
func (c *Cart) Add(item models.MenuItem, qty int, addOns []models.AddOn, sugar models.SugarLevel) (models.OrderItem, error) {
	if !item.Available {
		return models.OrderItem{}, ErrUnavailable
	}
	if qty < 1 {
		qty = 1
	}
	if !sugar.Valid() {
		sugar = models.DefaultSugarLevel
	}
	selected := make([]models.AddOn, len(addOns))
	copy(selected, addOns)

	line := models.OrderItem{
		ID:         util.NewID(util.PrefixCartLine, c.clock.Now()),
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   qty,
		AddOns:     selected,
		SugarLevel: sugar,
	}

	c.mu.Lock()
	c.lines = append(c.lines, line)
	c.mu.Unlock()
	return line, nil
}

func (c *Cart) Remove(lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.lines {
		if l.ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []models.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLines()
}

func (c *Cart) copyLines() []models.OrderItem {
	out := make([]models.OrderItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pricing.CartTotal(c.lines)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}
