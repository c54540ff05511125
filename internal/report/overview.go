package report

import (
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/period"

	"github.com/shopspring/decimal"
)

// TrendDays is the length of the dashboard sales trend.
const TrendDays = 7

// DaySales is one point of the dashboard trend.
type DaySales struct {
	Date    time.Time       `json:"date"`
	Weekday string          `json:"weekday"`
	Sales   decimal.Decimal `json:"sales"`
}

// Overview is the dashboard summary over the whole store.
type Overview struct {
	Revenue    decimal.Decimal `json:"revenue"`
	Expense    decimal.Decimal `json:"expense"`
	Profit     decimal.Decimal `json:"profit"`
	OrderCount int             `json:"order_count"`
	Trend      []DaySales      `json:"trend"`
}

// Dashboard computes lifetime totals and the daily sales of the seven
// calendar days ending on now's day, oldest first.
func Dashboard(txs []models.Transaction, exps []models.Expense, now time.Time) Overview {
	o := Overview{
		Revenue:    decimal.Zero,
		Expense:    decimal.Zero,
		OrderCount: len(txs),
		Trend:      make([]DaySales, TrendDays),
	}

	for i := range txs {
		o.Revenue = o.Revenue.Add(txs[i].Total)
	}
	for i := range exps {
		o.Expense = o.Expense.Add(exps[i].Amount)
	}
	o.Profit = o.Revenue.Sub(o.Expense)

	for i := 0; i < TrendDays; i++ {
		day := now.AddDate(0, 0, i-(TrendDays-1))
		w := period.WindowOf(day, period.Daily)

		sales := decimal.Zero
		for j := range txs {
			if w.Contains(txs[j].Timestamp) {
				sales = sales.Add(txs[j].Total)
			}
		}
		o.Trend[i] = DaySales{
			Date:    w.Start,
			Weekday: w.Start.Format("Mon"),
			Sales:   sales,
		}
	}
	return o
}
