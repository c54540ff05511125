package report

import (
	"testing"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/period"

	"github.com/shopspring/decimal"
)

var kl = time.FixedZone("MYT", 8*60*60)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(y int, m time.Month, day, hh int) time.Time {
	return time.Date(y, m, day, hh, 0, 0, 0, kl)
}

func tx(id string, ts time.Time, typ models.TransactionType, total string) models.Transaction {
	return models.Transaction{ID: id, Timestamp: ts, Type: typ, Total: d(total)}
}

func exp(id string, ts time.Time, cat models.ExpenseCategory, amount string) models.Expense {
	return models.Expense{ID: id, Timestamp: ts, Name: id, Category: cat, Amount: d(amount)}
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// one regular and one manual sale today, daily report
func TestProfitAndLoss_RevenueSplit(t *testing.T) {
	today := at(2026, time.October, 18, 14)
	txs := []models.Transaction{
		tx("WNS-R-1", today, models.TransactionRegular, "10.00"),
		tx("WNS-M-1", today.Add(-2*time.Hour), models.TransactionManual, "5.00"),
	}

	p := ProfitAndLoss(txs, nil, today, period.Daily)

	assertAmount(t, "revenue", p.Revenue, "15.00")
	assertAmount(t, "menu revenue", p.MenuRevenue, "10.00")
	assertAmount(t, "other revenue", p.OtherRevenue, "5.00")
	if !p.MenuRevenue.Add(p.OtherRevenue).Equal(p.Revenue) {
		t.Error("menu + other revenue must equal revenue")
	}
	if p.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", p.TransactionCount)
	}
}

// a single rent expense this month and no sales
func TestProfitAndLoss_ExpenseOnly(t *testing.T) {
	ref := at(2026, time.October, 18, 9)
	exps := []models.Expense{
		exp("EXP-1", at(2026, time.October, 3, 10), models.ExpenseRent, "20.00"),
	}

	p := ProfitAndLoss(nil, exps, ref, period.Monthly)

	assertAmount(t, "total expense", p.TotalExpense, "20.00")
	assertAmount(t, "rent", p.ExpenseByCategory[models.ExpenseRent], "20.00")
	assertAmount(t, "net profit", p.NetProfit, "-20.00")
	assertAmount(t, "revenue", p.Revenue, "0")
}

func TestProfitAndLoss_AllCategoriesPresent(t *testing.T) {
	ref := at(2026, time.October, 18, 9)
	exps := []models.Expense{
		exp("EXP-1", ref, models.ExpenseInventory, "12.40"),
		exp("EXP-2", ref, models.ExpenseStaff, "300"),
		exp("EXP-3", ref, models.ExpenseInventory, "7.60"),
	}

	p := ProfitAndLoss(nil, exps, ref, period.Weekly)

	if len(p.ExpenseByCategory) != len(models.ExpenseCategories) {
		t.Fatalf("ExpenseByCategory has %d heads, want %d", len(p.ExpenseByCategory), len(models.ExpenseCategories))
	}
	sum := decimal.Zero
	for _, c := range models.ExpenseCategories {
		amt, ok := p.ExpenseByCategory[c]
		if !ok {
			t.Errorf("category %s missing", c)
		}
		sum = sum.Add(amt)
	}
	if !sum.Equal(p.TotalExpense) {
		t.Errorf("sum of heads %s != total %s", sum, p.TotalExpense)
	}
	assertAmount(t, "inventory", p.ExpenseByCategory[models.ExpenseInventory], "20.00")

	lines := p.ExpenseLines()
	if len(lines) != 2 {
		t.Fatalf("ExpenseLines() returned %d lines, want 2", len(lines))
	}
	if lines[0].Category != models.ExpenseInventory || lines[1].Category != models.ExpenseStaff {
		t.Errorf("ExpenseLines() order = %v", lines)
	}
}

func TestProfitAndLoss_WindowBoundaries(t *testing.T) {
	ref := at(2026, time.October, 18, 12)
	end := period.EndOf(ref, period.Daily)
	start := period.StartOf(ref, period.Daily)

	txs := []models.Transaction{
		tx("at-end", end, models.TransactionRegular, "1.00"),
		tx("after-end", end.Add(time.Millisecond), models.TransactionRegular, "100.00"),
		tx("at-start", start, models.TransactionManual, "2.00"),
		tx("before-start", start.Add(-time.Millisecond), models.TransactionManual, "200.00"),
	}

	p := ProfitAndLoss(txs, nil, ref, period.Daily)
	assertAmount(t, "revenue", p.Revenue, "3.00")
}

func TestProfitAndLoss_Idempotent(t *testing.T) {
	ref := at(2026, time.October, 18, 12)
	txs := []models.Transaction{
		tx("a", ref, models.TransactionRegular, "6.50"),
		tx("b", ref.AddDate(0, 0, -1), models.TransactionManual, "3.10"),
	}
	exps := []models.Expense{
		exp("c", ref, models.ExpenseUtilities, "44.20"),
	}

	first := ProfitAndLoss(txs, exps, ref, period.Weekly)
	second := ProfitAndLoss(txs, exps, ref, period.Weekly)

	if !first.Revenue.Equal(second.Revenue) ||
		!first.MenuRevenue.Equal(second.MenuRevenue) ||
		!first.OtherRevenue.Equal(second.OtherRevenue) ||
		!first.TotalExpense.Equal(second.TotalExpense) ||
		!first.NetProfit.Equal(second.NetProfit) ||
		!first.Window.Start.Equal(second.Window.Start) ||
		!first.Window.End.Equal(second.Window.End) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
	for _, c := range models.ExpenseCategories {
		if !first.ExpenseByCategory[c].Equal(second.ExpenseByCategory[c]) {
			t.Errorf("category %s differs between calls", c)
		}
	}
	if txs[0].Total.String() != "6.5" || len(txs) != 2 || len(exps) != 1 {
		t.Error("inputs were modified")
	}
}

func TestProfitAndLoss_Empty(t *testing.T) {
	p := ProfitAndLoss(nil, nil, at(2026, time.October, 18, 0), period.Yearly)
	if !p.Revenue.IsZero() || !p.TotalExpense.IsZero() || !p.NetProfit.IsZero() {
		t.Errorf("empty store must give zero aggregates, got %+v", p)
	}
	if len(p.ExpenseLines()) != 0 {
		t.Error("empty store must render no expense lines")
	}
}

// two sales in different months, position taken in the second month
func TestFinancialPosition_Cumulative(t *testing.T) {
	txs := []models.Transaction{
		tx("sep", at(2026, time.September, 10, 10), models.TransactionRegular, "100"),
		tx("oct", at(2026, time.October, 5, 10), models.TransactionRegular, "200"),
	}

	f := FinancialPositionAt(txs, nil, at(2026, time.October, 18, 10), period.Monthly)

	assertAmount(t, "cumulative revenue", f.CumulativeRevenue, "300.00")
	assertAmount(t, "cash at hand", f.CashAtHand, "300.00")
	if !f.TotalAssets().Equal(f.RetainedEarnings()) {
		t.Error("total assets and retained earnings must be the same figure")
	}
	if !f.AsAt.Equal(period.EndOf(at(2026, time.October, 18, 10), period.Monthly)) {
		t.Errorf("AsAt = %v", f.AsAt)
	}
}

func TestFinancialPosition_ExcludesLaterRecords(t *testing.T) {
	ref := at(2026, time.October, 18, 10)
	cutoff := period.EndOf(ref, period.Daily)
	txs := []models.Transaction{
		tx("on-cutoff", cutoff, models.TransactionManual, "5"),
		tx("after", cutoff.Add(time.Millisecond), models.TransactionManual, "50"),
	}
	exps := []models.Expense{
		exp("after", cutoff.Add(time.Hour), models.ExpenseMisc, "9"),
	}

	f := FinancialPositionAt(txs, exps, ref, period.Daily)
	assertAmount(t, "cumulative revenue", f.CumulativeRevenue, "5")
	assertAmount(t, "cumulative expense", f.CumulativeExpense, "0")
}

func TestFinancialPosition_CanGoNegative(t *testing.T) {
	txs := []models.Transaction{
		tx("jan", at(2026, time.January, 5, 10), models.TransactionRegular, "120"),
	}
	exps := []models.Expense{
		exp("rent", at(2026, time.February, 1, 9), models.ExpenseRent, "1500"),
	}

	jan := FinancialPositionAt(txs, exps, at(2026, time.January, 20, 0), period.Monthly)
	feb := FinancialPositionAt(txs, exps, at(2026, time.February, 20, 0), period.Monthly)

	assertAmount(t, "january cash", jan.CashAtHand, "120")
	assertAmount(t, "february cash", feb.CashAtHand, "-1380")
	if !feb.CashAtHand.LessThan(jan.CashAtHand) {
		t.Error("cash at hand is not monotonic when expenses outpace sales")
	}
}

func TestDashboard(t *testing.T) {
	now := at(2026, time.October, 18, 16)
	txs := []models.Transaction{
		tx("today", at(2026, time.October, 18, 9), models.TransactionRegular, "12.00"),
		tx("today-2", at(2026, time.October, 18, 11), models.TransactionManual, "3.00"),
		tx("six-days-ago", at(2026, time.October, 12, 9), models.TransactionRegular, "4.50"),
		tx("too-old", at(2026, time.October, 11, 9), models.TransactionRegular, "99.00"),
	}
	exps := []models.Expense{
		exp("stock", at(2026, time.October, 1, 9), models.ExpenseInventory, "40.00"),
	}

	o := Dashboard(txs, exps, now)

	assertAmount(t, "revenue", o.Revenue, "118.50")
	assertAmount(t, "profit", o.Profit, "78.50")
	if o.OrderCount != 4 {
		t.Errorf("OrderCount = %d, want 4", o.OrderCount)
	}
	if len(o.Trend) != TrendDays {
		t.Fatalf("trend has %d points, want %d", len(o.Trend), TrendDays)
	}
	assertAmount(t, "oldest day", o.Trend[0].Sales, "4.50")
	assertAmount(t, "today", o.Trend[TrendDays-1].Sales, "15.00")
	if o.Trend[TrendDays-1].Weekday != "Sun" {
		t.Errorf("last trend day = %s, want Sun", o.Trend[TrendDays-1].Weekday)
	}
}
