package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/config"
	"github.com/damia-cpu/Wellness-Cafe/internal/database"
	"github.com/damia-cpu/Wellness-Cafe/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "cafe.db")}, zerolog.Nop())
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return New(db)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var day = time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

func regularSale(id string) *models.Transaction {
	return &models.Transaction{
		ID:        id,
		Timestamp: day,
		Type:      models.TransactionRegular,
		Items: []models.OrderItem{{
			ID: "line-1", MenuItemID: "c2", Name: "Latte", Price: d("5.50"), Quantity: 2,
			AddOns:     []models.AddOn{{ID: "a1", Name: "Oat Milk", Price: d("1.00")}},
			SugarLevel: models.DefaultSugarLevel,
		}},
		Total: d("13.00"),
	}
}

func manualSale(id string) *models.Transaction {
	return &models.Transaction{
		ID:         id,
		Timestamp:  day,
		Type:       models.TransactionManual,
		OtherSales: []models.ManualLine{{Name: "Cake", Price: d("5.00"), Quantity: 1}},
		Total:      d("5.00"),
	}
}

func TestAppendTransaction_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, tx := range []*models.Transaction{regularSale("WNS-R-1"), manualSale("WNS-M-2"), regularSale("WNS-R-3")} {
		if err := s.AppendTransaction(ctx, tx); err != nil {
			t.Fatalf("append %s: %v", tx.ID, err)
		}
	}

	txs, err := s.Transactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"WNS-R-3", "WNS-M-2", "WNS-R-1"}
	if len(txs) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(txs), len(want))
	}
	for i, id := range want {
		if txs[i].ID != id {
			t.Errorf("txs[%d] = %s, want %s", i, txs[i].ID, id)
		}
	}

	got := txs[2]
	if !got.Total.Equal(d("13.00")) || len(got.Items) != 1 || len(got.Items[0].AddOns) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if !got.Timestamp.Equal(day) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, day)
	}
}

func TestAppendTransaction_Rejects(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	badType := regularSale("x1")
	badType.Type = "Refund"

	badTotal := regularSale("x2")
	badTotal.Total = d("12.00")

	mixed := manualSale("x3")
	mixed.Items = regularSale("x").Items

	badSugar := regularSale("x4")
	badSugar.Items[0].SugarLevel = "150%"

	for name, tx := range map[string]*models.Transaction{
		"unknown type":     badType,
		"total mismatch":   badTotal,
		"mixed lines":      mixed,
		"bad sugar level":  badSugar,
		"empty id":         {Timestamp: day, Type: models.TransactionManual},
		"regular no items": {ID: "x5", Timestamp: day, Type: models.TransactionRegular},
	} {
		if err := s.AppendTransaction(ctx, tx); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("%s: err = %v, want ErrInvalidRecord", name, err)
		}
	}

	txs, _ := s.Transactions(ctx)
	if len(txs) != 0 {
		t.Errorf("rejected records were stored: %d", len(txs))
	}
}

func TestAppendExpense(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok := &models.Expense{ID: "EXP-1", Timestamp: day, Name: "Milk", Amount: d("42.30"), Category: models.ExpenseInventory}
	if err := s.AppendExpense(ctx, ok); err != nil {
		t.Fatalf("append: %v", err)
	}

	bad := &models.Expense{ID: "EXP-2", Timestamp: day, Name: "Bribe", Amount: d("1"), Category: "Other"}
	if err := s.AppendExpense(ctx, bad); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("unknown category err = %v, want ErrInvalidRecord", err)
	}
	zero := &models.Expense{ID: "EXP-3", Timestamp: day, Name: "Nothing", Amount: decimal.Zero, Category: models.ExpenseMisc}
	if err := s.AppendExpense(ctx, zero); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("zero amount err = %v, want ErrInvalidRecord", err)
	}

	exps, err := s.Expenses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(exps) != 1 || !exps[0].Amount.Equal(d("42.30")) {
		t.Errorf("expenses = %+v", exps)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AppendTransaction(ctx, manualSale("WNS-M-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveTransaction(ctx, "WNS-M-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveTransaction(ctx, "WNS-M-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
	if err := s.RemoveExpense(ctx, "EXP-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing expense err = %v, want ErrNotFound", err)
	}
}

func TestSeedCatalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seeded, err := s.SeedCatalog(ctx)
	if err != nil || !seeded {
		t.Fatalf("first seed = %v, %v", seeded, err)
	}
	seeded, err = s.SeedCatalog(ctx)
	if err != nil || seeded {
		t.Errorf("second seed = %v, %v, want no-op", seeded, err)
	}

	menu, _ := s.MenuItems(ctx)
	if len(menu) != 24 {
		t.Errorf("menu has %d items, want 24", len(menu))
	}
	if menu[0].ID != "c1" || menu[len(menu)-1].ID != "t5" {
		t.Errorf("menu order = %s..%s", menu[0].ID, menu[len(menu)-1].ID)
	}
	addOns, _ := s.AddOns(ctx)
	if len(addOns) != 5 {
		t.Errorf("got %d add-ons, want 5", len(addOns))
	}
}

func TestUpdateMenuItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.SeedCatalog(ctx); err != nil {
		t.Fatal(err)
	}

	price := d("6.00")
	off := false
	got, err := s.UpdateMenuItem(ctx, "c2", MenuItemPatch{Price: &price, Available: &off})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Price.Equal(price) || got.Available {
		t.Errorf("returned item = %+v", got)
	}

	stored, _ := s.MenuItem(ctx, "c2")
	if !stored.Price.Equal(price) || stored.Available {
		t.Errorf("stored item = %+v", stored)
	}

	bad := models.MenuCategory("Pastries")
	if _, err := s.UpdateMenuItem(ctx, "c2", MenuItemPatch{Category: &bad}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("bad category err = %v", err)
	}
	if _, err := s.UpdateMenuItem(ctx, "nope", MenuItemPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing item err = %v", err)
	}
	if err := s.DeleteMenuItem(ctx, "c2"); err != nil {
		t.Errorf("delete: %v", err)
	}
	if _, err := s.MenuItem(ctx, "c2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted item err = %v", err)
	}
}

func TestAddOnsByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.SeedCatalog(ctx); err != nil {
		t.Fatal(err)
	}

	got, err := s.AddOnsByID(ctx, []string{"a3", "a1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "a3" || got[1].ID != "a1" {
		t.Errorf("AddOnsByID order = %+v", got)
	}
	if _, err := s.AddOnsByID(ctx, []string{"a1", "zz"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown add-on err = %v", err)
	}

	a, err := s.UpdateAddOnPrice(ctx, "a1", d("1.50"))
	if err != nil || !a.Price.Equal(d("1.50")) {
		t.Errorf("UpdateAddOnPrice = %+v, %v", a, err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	src := newTestStore(t)
	ctx := context.Background()
	if _, err := src.SeedCatalog(ctx); err != nil {
		t.Fatal(err)
	}
	off := false
	if _, err := src.UpdateMenuItem(ctx, "t5", MenuItemPatch{Available: &off}); err != nil {
		t.Fatal(err)
	}
	_ = src.AppendTransaction(ctx, regularSale("WNS-R-1"))
	_ = src.AppendTransaction(ctx, manualSale("WNS-M-2"))
	_ = src.AppendExpense(ctx, &models.Expense{ID: "EXP-1", Timestamp: day, Name: "Rent", Amount: d("800"), Category: models.ExpenseRent})

	snap, err := src.Snapshot(ctx, day)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	dst := newTestStore(t)
	_ = dst.AppendTransaction(ctx, manualSale("WNS-M-old"))
	if err := dst.Restore(ctx, snap); err != nil {
		t.Fatalf("restore: %v", err)
	}

	txs, _ := dst.Transactions(ctx)
	if len(txs) != 2 || txs[0].ID != "WNS-M-2" || txs[1].ID != "WNS-R-1" {
		t.Errorf("restored transactions = %+v", txs)
	}
	exps, _ := dst.Expenses(ctx)
	if len(exps) != 1 {
		t.Errorf("restored %d expenses, want 1", len(exps))
	}
	teh, err := dst.MenuItem(ctx, "t5")
	if err != nil || teh.Available {
		t.Errorf("availability lost on restore: %+v, %v", teh, err)
	}

	snap.Version = 99
	if err := dst.Restore(ctx, snap); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("bad version err = %v", err)
	}
	if txs, _ := dst.Transactions(ctx); len(txs) != 2 {
		t.Error("failed restore must leave records untouched")
	}
}

func TestRestoreRejectsNegativeAddOn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.SeedCatalog(ctx); err != nil {
		t.Fatal(err)
	}
	snap, err := s.Snapshot(ctx, day)
	if err != nil {
		t.Fatal(err)
	}
	snap.AddOns[0].Price = d("-1.00")

	if err := s.Restore(ctx, snap); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("Restore err = %v, want ErrInvalidRecord", err)
	}
	addOns, _ := s.AddOns(ctx)
	if len(addOns) != 5 || addOns[0].Price.IsNegative() {
		t.Errorf("add-ons after rejected restore = %+v", addOns)
	}

	if _, err := s.UpdateAddOnPrice(ctx, "a1", d("-0.50")); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("UpdateAddOnPrice err = %v, want ErrInvalidRecord", err)
	}
}
