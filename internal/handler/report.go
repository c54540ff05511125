package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/period"
	"github.com/damia-cpu/Wellness-Cafe/internal/pricing"
	"github.com/damia-cpu/Wellness-Cafe/internal/report"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportHandler renders the statements. Every call reloads the records
// and recomputes, nothing is cached.
type ReportHandler struct {
	Store    *store.Store
	Clock    util.Clock
	Location *time.Location
}

func NewReportHandler(s *store.Store, clock util.Clock, loc *time.Location) *ReportHandler {
	return &ReportHandler{Store: s, Clock: clock, Location: loc}
}

// query reads ?date= (default today) and ?period= (default Monthly).
func (h *ReportHandler) query(c *gin.Context) (time.Time, period.Granularity, bool) {
	g := period.Monthly
	if raw := c.Query("period"); raw != "" {
		var err error
		if g, err = period.ParseGranularity(raw); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return time.Time{}, "", false
		}
	}
	ref, ok := businessDate(c, c.Query("date"), h.Location, h.Clock)
	return ref, g, ok
}

func periodResp(ref time.Time, g period.Granularity) gin.H {
	w := period.WindowOf(ref, g)
	return gin.H{
		"granularity": g,
		"date":        ref.Format(dateLayout),
		"label":       period.Label(ref, g),
		"start":       w.Start,
		"end":         w.End,
	}
}

func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	ref, g, ok := h.query(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	txs, err := h.Store.Transactions(ctx)
	if err != nil {
		storeError(c, err, "load transactions")
		return
	}
	exps, err := h.Store.Expenses(ctx)
	if err != nil {
		storeError(c, err, "load expenses")
		return
	}

	p := report.ProfitAndLoss(txs, exps, ref, g)
	lines := make([]gin.H, 0, len(p.ExpenseByCategory))
	for _, l := range p.ExpenseLines() {
		lines = append(lines, gin.H{"category": l.Category, "amount": pricing.Format(l.Amount)})
	}

	util.Success(c, util.Response{
		"period":            periodResp(ref, g),
		"revenue":           pricing.Format(p.Revenue),
		"menu_revenue":      pricing.Format(p.MenuRevenue),
		"other_revenue":     pricing.Format(p.OtherRevenue),
		"expenses":          lines,
		"total_expense":     pricing.Format(p.TotalExpense),
		"net_profit":        pricing.Format(p.NetProfit),
		"transaction_count": p.TransactionCount,
		"expense_count":     p.ExpenseCount,
	})
}

func (h *ReportHandler) FinancialPosition(c *gin.Context) {
	ref, g, ok := h.query(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	txs, err := h.Store.Transactions(ctx)
	if err != nil {
		storeError(c, err, "load transactions")
		return
	}
	exps, err := h.Store.Expenses(ctx)
	if err != nil {
		storeError(c, err, "load expenses")
		return
	}

	f := report.FinancialPositionAt(txs, exps, ref, g)
	util.Success(c, util.Response{
		"period":             periodResp(ref, g),
		"as_at":              f.AsAt,
		"cumulative_revenue": pricing.Format(f.CumulativeRevenue),
		"cumulative_expense": pricing.Format(f.CumulativeExpense),
		"cash_at_hand":       pricing.Format(f.CashAtHand),
		"total_assets":       pricing.Format(f.TotalAssets()),
		"retained_earnings":  pricing.Format(f.RetainedEarnings()),
	})
}

// Period steps the reference date one period back or forward, for the
// statement's previous/next buttons.
func (h *ReportHandler) Period(c *gin.Context) {
	ref, g, ok := h.query(c)
	if !ok {
		return
	}
	step := 0
	if raw := c.Query("step"); raw != "" {
		var err error
		if step, err = strconv.Atoi(raw); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "step must be -1, 0 or 1")
			return
		}
	}
	util.Success(c, util.Response{"period": periodResp(period.Step(ref, g, step), g)})
}

// Dashboard is the lifetime overview with the seven day sales trend.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	txs, err := h.Store.Transactions(ctx)
	if err != nil {
		storeError(c, err, "load transactions")
		return
	}
	exps, err := h.Store.Expenses(ctx)
	if err != nil {
		storeError(c, err, "load expenses")
		return
	}

	o := report.Dashboard(txs, exps, h.Clock.Now().In(h.Location))
	trend := make([]gin.H, 0, len(o.Trend))
	for _, d := range o.Trend {
		trend = append(trend, gin.H{
			"date":    d.Date.Format(dateLayout),
			"weekday": d.Weekday,
			"sales":   pricing.Format(d.Sales),
		})
	}
	util.Success(c, util.Response{
		"revenue":     pricing.Format(o.Revenue),
		"expense":     pricing.Format(o.Expense),
		"profit":      pricing.Format(o.Profit),
		"order_count": o.OrderCount,
		"trend":       trend,
	})
}
