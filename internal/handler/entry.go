package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/period"
	"github.com/damia-cpu/Wellness-Cafe/internal/pricing"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LedgerHandler serves money in (transactions) and money out (expenses).
type LedgerHandler struct {
	Store    *store.Store
	Clock    util.Clock
	Location *time.Location
}

func NewLedgerHandler(s *store.Store, clock util.Clock, loc *time.Location) *LedgerHandler {
	return &LedgerHandler{Store: s, Clock: clock, Location: loc}
}

type transactionResp struct {
	ID          string                 `json:"id"`
	Date        string                 `json:"date"`
	Type        models.TransactionType `json:"type"`
	Description string                 `json:"description"`
	Items       []models.OrderItem     `json:"items"`
	OtherSales  []models.ManualLine    `json:"other_sales,omitempty"`
	Total       string                 `json:"total"`
	CreatedAt   time.Time              `json:"created_at"`
}

type expenseResp struct {
	ID          string                 `json:"id"`
	Date        string                 `json:"date"`
	Name        string                 `json:"name"`
	Category    models.ExpenseCategory `json:"category"`
	Amount      string                 `json:"amount"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"created_at"`
}

// window reads the optional ?period=&date= filter. ok is false after an
// error response was written.
func (h *LedgerHandler) window(c *gin.Context) (w *period.Window, ok bool) {
	raw := c.Query("period")
	if raw == "" {
		return nil, true
	}
	g, err := period.ParseGranularity(raw)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return nil, false
	}
	ref, ok := businessDate(c, c.Query("date"), h.Location, h.Clock)
	if !ok {
		return nil, false
	}
	win := period.WindowOf(ref, g)
	return &win, true
}

// categoryLookup resolves menu sections for transaction descriptions.
// Deleted items resolve to "".
func (h *LedgerHandler) categoryLookup(c *gin.Context) func(string) models.MenuCategory {
	items, err := h.Store.MenuItems(c.Request.Context())
	if err != nil {
		return nil
	}
	byID := make(map[string]models.MenuCategory, len(items))
	for _, it := range items {
		byID[it.ID] = it.Category
	}
	return func(id string) models.MenuCategory { return byID[id] }
}

// ListTransactions returns sales newest first, optionally limited to one
// period.
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	txs, err := h.Store.Transactions(c.Request.Context())
	if err != nil {
		storeError(c, err, "list transactions")
		return
	}

	categoryOf := h.categoryLookup(c)
	total := decimal.Zero
	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		if w != nil && !w.Contains(tx.Timestamp) {
			continue
		}
		total = total.Add(tx.Total)
		items = append(items, transactionResp{
			ID:          tx.ID,
			Date:        tx.Timestamp.In(h.Location).Format(dateLayout),
			Type:        tx.Type,
			Description: tx.Description(categoryOf),
			Items:       tx.Items,
			OtherSales:  tx.OtherSales,
			Total:       pricing.Format(tx.Total),
			CreatedAt:   tx.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items":     items,
		"count":     len(items),
		"total_sum": pricing.Format(total),
	})
}

func (h *LedgerHandler) DeleteTransaction(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := h.Store.RemoveTransaction(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "transaction")
		return
	}
	util.Success(c, util.Response{"message": "transaction deleted"})
}

func toExpenseResp(e *models.Expense, loc *time.Location) expenseResp {
	return expenseResp{
		ID:          e.ID,
		Date:        e.Timestamp.In(loc).Format(dateLayout),
		Name:        e.Name,
		Category:    e.Category,
		Amount:      pricing.Format(e.Amount),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ListExpenses returns expenses newest first with a per-category summary.
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	exps, err := h.Store.Expenses(c.Request.Context())
	if err != nil {
		storeError(c, err, "list expenses")
		return
	}

	total := decimal.Zero
	byCategory := make(map[models.ExpenseCategory]decimal.Decimal, len(models.ExpenseCategories))
	items := make([]expenseResp, 0, len(exps))
	for i := range exps {
		e := &exps[i]
		if w != nil && !w.Contains(e.Timestamp) {
			continue
		}
		total = total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		items = append(items, toExpenseResp(e, h.Location))
	}

	summary := make([]gin.H, 0, len(models.ExpenseCategories))
	for _, cat := range models.ExpenseCategories {
		summary = append(summary, gin.H{"category": cat, "amount": pricing.Format(byCategory[cat])})
	}

	util.Success(c, util.Response{
		"items":       items,
		"count":       len(items),
		"total_sum":   pricing.Format(total),
		"by_category": summary,
	})
}

type createExpenseReq struct {
	Name        string `json:"name" binding:"required,max=128"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	Date        string `json:"date"`
}

func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, amount and category are required")
		return
	}
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	cat := models.ExpenseCategory(req.Category)
	if !cat.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown expense category")
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}
	date, ok := businessDate(c, req.Date, h.Location, h.Clock)
	if !ok {
		return
	}

	e := models.Expense{
		ID:          util.NewID(util.PrefixExpense, h.Clock.Now()),
		Timestamp:   date,
		Name:        strings.TrimSpace(req.Name),
		Amount:      amount,
		Category:    cat,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.Store.AppendExpense(c.Request.Context(), &e); err != nil {
		storeError(c, err, "create expense")
		return
	}
	util.Success(c, util.Response{"expense": toExpenseResp(&e, h.Location)})
}

func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := h.Store.RemoveExpense(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "expense")
		return
	}
	util.Success(c, util.Response{"message": "expense deleted"})
}
