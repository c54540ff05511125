// Package report aggregates sales and expenses into the Profit & Loss and
// Financial Position figures.
//
// Every function recomputes from the full record slices it is given. No
// aggregate is cached between calls and the inputs are never modified, so
// callers can re-run a report after each store mutation.
package report

import (
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/period"

	"github.com/shopspring/decimal"
)

// CategoryAmount is one expense head with its total.
type CategoryAmount struct {
	Category models.ExpenseCategory `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
}

// ProfitLoss holds the period-scoped statement figures.
type ProfitLoss struct {
	Granularity       period.Granularity                         `json:"granularity"`
	Window            period.Window                              `json:"window"`
	Label             string                                     `json:"label"`
	Revenue           decimal.Decimal                            `json:"revenue"`
	MenuRevenue       decimal.Decimal                            `json:"menu_revenue"`
	OtherRevenue      decimal.Decimal                            `json:"other_revenue"`
	ExpenseByCategory map[models.ExpenseCategory]decimal.Decimal `json:"expense_by_category"`
	TotalExpense      decimal.Decimal                            `json:"total_expense"`
	NetProfit         decimal.Decimal                            `json:"net_profit"`
	TransactionCount  int                                        `json:"transaction_count"`
	ExpenseCount      int                                        `json:"expense_count"`
}

// ExpenseLines returns the non-zero expense heads in statement order.
// Zero heads are still present in ExpenseByCategory.
func (p ProfitLoss) ExpenseLines() []CategoryAmount {
	lines := make([]CategoryAmount, 0, len(models.ExpenseCategories))
	for _, c := range models.ExpenseCategories {
		amt := p.ExpenseByCategory[c]
		if amt.IsZero() {
			continue
		}
		lines = append(lines, CategoryAmount{Category: c, Amount: amt})
	}
	return lines
}

// ProfitAndLoss aggregates the records whose business date falls inside
// the inclusive window of (ref, g).
func ProfitAndLoss(txs []models.Transaction, exps []models.Expense, ref time.Time, g period.Granularity) ProfitLoss {
	w := period.WindowOf(ref, g)

	p := ProfitLoss{
		Granularity:       g,
		Window:            w,
		Label:             period.Label(ref, g),
		Revenue:           decimal.Zero,
		MenuRevenue:       decimal.Zero,
		OtherRevenue:      decimal.Zero,
		ExpenseByCategory: make(map[models.ExpenseCategory]decimal.Decimal, len(models.ExpenseCategories)),
		TotalExpense:      decimal.Zero,
	}

	for i := range txs {
		tx := &txs[i]
		if !w.Contains(tx.Timestamp) {
			continue
		}
		p.TransactionCount++
		p.Revenue = p.Revenue.Add(tx.Total)
		switch tx.Type {
		case models.TransactionRegular:
			p.MenuRevenue = p.MenuRevenue.Add(tx.Total)
		case models.TransactionManual:
			p.OtherRevenue = p.OtherRevenue.Add(tx.Total)
		}
	}

	for _, c := range models.ExpenseCategories {
		p.ExpenseByCategory[c] = decimal.Zero
	}
	for i := range exps {
		e := &exps[i]
		if !w.Contains(e.Timestamp) {
			continue
		}
		p.ExpenseCount++
		p.ExpenseByCategory[e.Category] = p.ExpenseByCategory[e.Category].Add(e.Amount)
	}

	for _, c := range models.ExpenseCategories {
		p.TotalExpense = p.TotalExpense.Add(p.ExpenseByCategory[c])
	}
	p.NetProfit = p.Revenue.Sub(p.TotalExpense)
	return p
}

// FinancialPosition holds the cumulative-to-date figures as at the end of
// a period.
type FinancialPosition struct {
	Granularity       period.Granularity `json:"granularity"`
	AsAt              time.Time          `json:"as_at"`
	Label             string             `json:"label"`
	CumulativeRevenue decimal.Decimal    `json:"cumulative_revenue"`
	CumulativeExpense decimal.Decimal    `json:"cumulative_expense"`
	CashAtHand        decimal.Decimal    `json:"cash_at_hand"`
}

// TotalAssets is cash at hand, the model has no other asset class.
func (f FinancialPosition) TotalAssets() decimal.Decimal {
	return f.CashAtHand
}

// RetainedEarnings equals cash at hand since there are no liabilities or
// contributed capital. Both sides of the statement are the same figure.
func (f FinancialPosition) RetainedEarnings() decimal.Decimal {
	return f.CashAtHand
}

// FinancialPositionAt sums every record dated on or before EndOf(ref, g),
// regardless of when the period started.
func FinancialPositionAt(txs []models.Transaction, exps []models.Expense, ref time.Time, g period.Granularity) FinancialPosition {
	cutoff := period.EndOf(ref, g)

	f := FinancialPosition{
		Granularity:       g,
		AsAt:              cutoff,
		Label:             period.Label(ref, g),
		CumulativeRevenue: decimal.Zero,
		CumulativeExpense: decimal.Zero,
	}

	for i := range txs {
		if !txs[i].Timestamp.After(cutoff) {
			f.CumulativeRevenue = f.CumulativeRevenue.Add(txs[i].Total)
		}
	}
	for i := range exps {
		if !exps[i].Timestamp.After(cutoff) {
			f.CumulativeExpense = f.CumulativeExpense.Add(exps[i].Amount)
		}
	}

	f.CashAtHand = f.CumulativeRevenue.Sub(f.CumulativeExpense)
	return f
}
