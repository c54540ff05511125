// Package store owns every persisted café record: the catalog, sales and
// expenses. It is the only writer; reports read full copies from it and
// recompute on each call.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/pricing"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidRecord = errors.New("invalid record")
)

// Store is the gorm backed repository.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the handle for the audit log and backup index, which live in
// the same file.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// newestFirst orders by SQLite's rowid, which follows insertion order.
const newestFirst = "rowid DESC"

// Transactions returns every sale, newest insertion first.
func (s *Store) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.WithContext(ctx).Order(newestFirst).Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Expenses returns every expense, newest insertion first.
func (s *Store) Expenses(ctx context.Context) ([]models.Expense, error) {
	var exps []models.Expense
	if err := s.db.WithContext(ctx).Order(newestFirst).Find(&exps).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return exps, nil
}

// Transaction looks one sale up by id.
func (s *Store) Transaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// checkTransaction enforces the closed type tag, the items/other sales
// split and the stored total matching its lines.
func checkTransaction(tx *models.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("%w: transaction id is empty", ErrInvalidRecord)
	}
	if tx.Timestamp.IsZero() {
		return fmt.Errorf("%w: transaction %s has no date", ErrInvalidRecord, tx.ID)
	}

	var lines = tx.Total
	switch tx.Type {
	case models.TransactionRegular:
		if len(tx.Items) == 0 || len(tx.OtherSales) != 0 {
			return fmt.Errorf("%w: regular sale needs menu items only", ErrInvalidRecord)
		}
		for _, it := range tx.Items {
			if it.Quantity < 1 || !it.SugarLevel.Valid() {
				return fmt.Errorf("%w: bad order line %s", ErrInvalidRecord, it.ID)
			}
		}
		lines = pricing.CartTotal(tx.Items)
	case models.TransactionManual:
		if len(tx.OtherSales) == 0 || len(tx.Items) != 0 {
			return fmt.Errorf("%w: manual sale needs other sales only", ErrInvalidRecord)
		}
		lines = pricing.ManualTotal(tx.OtherSales)
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidRecord, tx.Type)
	}

	if !lines.Equal(tx.Total) {
		return fmt.Errorf("%w: total %s does not match lines %s", ErrInvalidRecord, tx.Total, lines)
	}
	return nil
}

// AppendTransaction stores a new sale. Unknown tags and totals that do not
// match their lines are rejected with ErrInvalidRecord.
func (s *Store) AppendTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := checkTransaction(tx); err != nil {
		return err
	}
	if tx.Items == nil {
		tx.Items = []models.OrderItem{}
	}
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// AppendExpense stores a new expense.
func (s *Store) AppendExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" || e.Timestamp.IsZero() {
		return fmt.Errorf("%w: expense id and date are required", ErrInvalidRecord)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown expense category %q", ErrInvalidRecord, e.Category)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: expense amount must be positive", ErrInvalidRecord)
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// RemoveTransaction deletes a sale permanently.
func (s *Store) RemoveTransaction(ctx context.Context, id string) error {
	return s.remove(ctx, &models.Transaction{}, id)
}

// RemoveExpense deletes an expense permanently.
func (s *Store) RemoveExpense(ctx context.Context, id string) error {
	return s.remove(ctx, &models.Expense{}, id)
}

func (s *Store) remove(ctx context.Context, model interface{}, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
