package pos

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"

	"github.com/shopspring/decimal"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

var clock = fixedClock{t: time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	latte   = models.MenuItem{ID: "c2", Name: "Latte", Category: models.CategoryCoffee, Price: d("5.50"), Available: true}
	oatMilk = models.AddOn{ID: "a1", Name: "Oat Milk", Price: d("1.00")}
)

func TestCart_AddSnapshotsMenuItem(t *testing.T) {
	c := NewCart(clock)
	item := latte

	line, err := c.Add(item, 2, []models.AddOn{oatMilk}, "50%")
	if err != nil {
		t.Fatal(err)
	}
	// later menu edits must not reach the line
	item.Price = d("9.99")
	item.Name = "Renamed"

	got := c.Lines()[0]
	if got.Name != "Latte" || !got.Price.Equal(d("5.50")) {
		t.Errorf("line = %+v, want snapshot of the menu item", got)
	}
	if got.ID != line.ID || !strings.HasPrefix(got.ID, "line-") {
		t.Errorf("line id = %q", got.ID)
	}
	if got.SugarLevel != "50%" {
		t.Errorf("sugar = %q, want 50%%", got.SugarLevel)
	}
	if !c.Total().Equal(d("13.00")) {
		t.Errorf("Total = %s, want 13.00", c.Total())
	}
}

func TestCart_AddDefaults(t *testing.T) {
	c := NewCart(clock)
	line, err := c.Add(latte, 0, nil, "sweet")
	if err != nil {
		t.Fatal(err)
	}
	if line.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", line.Quantity)
	}
	if line.SugarLevel != models.DefaultSugarLevel {
		t.Errorf("sugar = %q, want default", line.SugarLevel)
	}
}

func TestCart_AddUnavailable(t *testing.T) {
	c := NewCart(clock)
	off := latte
	off.Available = false
	if _, err := c.Add(off, 1, nil, ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if len(c.Lines()) != 0 {
		t.Error("unavailable item was added")
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := NewCart(clock)
	a, _ := c.Add(latte, 1, nil, "")
	_, _ = c.Add(latte, 1, nil, "")

	if err := c.Remove(a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove(a.ID); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("second Remove err = %v", err)
	}
	if n := len(c.Lines()); n != 1 {
		t.Errorf("lines = %d, want 1", n)
	}
	c.Clear()
	if !c.Total().IsZero() {
		t.Errorf("cleared cart total = %s", c.Total())
	}
}

func TestCheckout(t *testing.T) {
	c := NewCart(clock)
	_, _ = c.Add(latte, 2, []models.AddOn{oatMilk}, "")
	date := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

	var recorded *models.Transaction
	tx, err := Checkout(c, date, clock, func(tx *models.Transaction) error {
		recorded = tx
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if recorded != tx {
		t.Error("record was not handed the transaction")
	}
	if tx.Type != models.TransactionRegular || !strings.HasPrefix(tx.ID, "WNS-R-") {
		t.Errorf("tx = %s %s", tx.Type, tx.ID)
	}
	if !tx.Timestamp.Equal(date) {
		t.Errorf("timestamp = %v, want business date %v", tx.Timestamp, date)
	}
	if !tx.Total.Equal(d("13.00")) {
		t.Errorf("total = %s, want 13.00", tx.Total)
	}
	if len(c.Lines()) != 0 {
		t.Error("cart not cleared after checkout")
	}

	if _, err := Checkout(c, date, clock, func(*models.Transaction) error { return nil }); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty checkout err = %v", err)
	}
}

func TestCheckout_RecordFailureKeepsCart(t *testing.T) {
	c := NewCart(clock)
	_, _ = c.Add(latte, 1, nil, "")
	boom := errors.New("disk full")

	if _, err := Checkout(c, clock.t, clock, func(*models.Transaction) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(c.Lines()) != 1 {
		t.Error("failed checkout must keep the order on the till")
	}
}

func TestCheckout_Concurrent(t *testing.T) {
	c := NewCart(clock)
	_, _ = c.Add(latte, 1, nil, "")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		recorded int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Checkout(c, clock.t, clock, func(*models.Transaction) error {
				mu.Lock()
				recorded++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	if recorded != 1 {
		t.Errorf("cart recorded %d times, want 1", recorded)
	}
}

func TestManualSale(t *testing.T) {
	lines := []models.ManualLine{
		{Name: "Cake", Price: d("5.00"), Quantity: 2},
		{Name: "Cookie", Price: d("1.50"), Quantity: 1, Description: "walk-in"},
	}
	tx, err := ManualSale(lines, clock.t, clock)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Type != models.TransactionManual || !strings.HasPrefix(tx.ID, "WNS-M-") {
		t.Errorf("tx = %s %s", tx.Type, tx.ID)
	}
	if !tx.Total.Equal(d("11.50")) {
		t.Errorf("total = %s, want 11.50", tx.Total)
	}
	if len(tx.Items) != 0 || len(tx.OtherSales) != 2 {
		t.Errorf("lines = %d items, %d other", len(tx.Items), len(tx.OtherSales))
	}
	if _, err := ManualSale(nil, clock.t, clock); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty manual sale err = %v", err)
	}
}
