package store

import (
	"context"
	"fmt"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"

	"gorm.io/gorm"
)

// SnapshotVersion is bumped whenever the layout of Snapshot changes.
const SnapshotVersion = 1

// Snapshot is a full copy of the café's records. Transactions and
// expenses are newest first, the catalog in insertion order.
type Snapshot struct {
	Version      int                  `json:"version"`
	TakenAt      time.Time            `json:"taken_at"`
	MenuItems    []models.MenuItem    `json:"menu_items"`
	AddOns       []models.AddOn       `json:"add_ons"`
	Transactions []models.Transaction `json:"transactions"`
	Expenses     []models.Expense     `json:"expenses"`
}

// Snapshot reads every record inside one read transaction.
func (s *Store) Snapshot(ctx context.Context, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, TakenAt: now}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := &Store{db: tx}
		var err error
		if snap.MenuItems, err = r.MenuItems(ctx); err != nil {
			return err
		}
		if snap.AddOns, err = r.AddOns(ctx); err != nil {
			return err
		}
		if snap.Transactions, err = r.Transactions(ctx); err != nil {
			return err
		}
		snap.Expenses, err = r.Expenses(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}

// Restore replaces every record with the snapshot's. Records are validated
// the same way appends are, and nothing changes if any of them fails.
func (s *Store) Restore(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: empty snapshot", ErrInvalidRecord)
	}
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: snapshot version %d not supported", ErrInvalidRecord, snap.Version)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Transaction{}, &models.Expense{}, &models.MenuItem{}, &models.AddOn{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear: %w", err)
			}
		}

		w := &Store{db: tx}
		for i := range snap.MenuItems {
			if err := w.CreateMenuItem(ctx, &snap.MenuItems[i]); err != nil {
				return err
			}
		}
		for i := range snap.AddOns {
			if err := w.createAddOn(ctx, &snap.AddOns[i]); err != nil {
				return err
			}
		}
		// oldest first so rowid order matches the snapshot
		for i := len(snap.Transactions) - 1; i >= 0; i-- {
			if err := w.AppendTransaction(ctx, &snap.Transactions[i]); err != nil {
				return err
			}
		}
		for i := len(snap.Expenses) - 1; i >= 0; i-- {
			if err := w.AppendExpense(ctx, &snap.Expenses[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
