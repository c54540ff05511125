package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/pricing"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler downloads the ledger as CSV or XLSX.
type ExportHandler struct {
	Ledger *LedgerHandler
}

func NewExportHandler(s *store.Store, clock util.Clock, loc *time.Location) *ExportHandler {
	return &ExportHandler{Ledger: NewLedgerHandler(s, clock, loc)}
}

var (
	moneyInHeader  = []string{"Date", "ID", "Type", "Description", "Total"}
	moneyOutHeader = []string{"Date", "ID", "Category", "Name", "Description", "Amount"}
)

type ledgerRows struct {
	in  [][]string
	out [][]string
}

// rows loads and formats the ledger, honouring the ?period=&date= filter.
func (h *ExportHandler) rows(c *gin.Context) (*ledgerRows, bool) {
	l := h.Ledger
	w, ok := l.window(c)
	if !ok {
		return nil, false
	}
	ctx := c.Request.Context()
	txs, err := l.Store.Transactions(ctx)
	if err != nil {
		storeError(c, err, "load transactions")
		return nil, false
	}
	exps, err := l.Store.Expenses(ctx)
	if err != nil {
		storeError(c, err, "load expenses")
		return nil, false
	}

	keep := func(t time.Time) bool { return w == nil || w.Contains(t) }
	categoryOf := l.categoryLookup(c)

	r := &ledgerRows{}
	for i := range txs {
		tx := &txs[i]
		if !keep(tx.Timestamp) {
			continue
		}
		r.in = append(r.in, []string{
			tx.Timestamp.In(l.Location).Format(dateLayout),
			tx.ID,
			string(tx.Type),
			tx.Description(categoryOf),
			pricing.Format(tx.Total),
		})
	}
	for i := range exps {
		e := &exps[i]
		if !keep(e.Timestamp) {
			continue
		}
		r.out = append(r.out, []string{
			e.Timestamp.In(l.Location).Format(dateLayout),
			e.ID,
			string(e.Category),
			e.Name,
			e.Description,
			pricing.Format(e.Amount),
		})
	}
	return r, true
}

func (h *ExportHandler) fileName(ext string) string {
	return fmt.Sprintf("wellness-cafe_%s.%s", h.Ledger.Clock.Now().In(h.Ledger.Location).Format("20060102"), ext)
}

// ExportCSV writes money in, a blank line, then money out.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	r, ok := h.rows(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", h.fileName("csv")))

	// UTF-8 BOM so spreadsheet apps pick the right encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Money In"})
	_ = w.Write(moneyInHeader)
	_ = w.WriteAll(r.in)
	_ = w.Write([]string{})
	_ = w.Write([]string{"Money Out"})
	_ = w.Write(moneyOutHeader)
	_ = w.WriteAll(r.out)
	w.Flush()
}

// writeSheet fills a sheet with a header row and data rows. The last
// column is written as a number so spreadsheet sums work.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last := len(header) - 1
	for i, row := range rows {
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if amt, err := util.ParseAmount(row[last]); err == nil {
			vals[last] = amt.InexactFloat64()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "F", 18)
}

// ExportXLSX writes a workbook with one sheet per ledger side.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	r, ok := h.rows(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const inSheet, outSheet = "Money In", "Money Out"
	if err := f.SetSheetName("Sheet1", inSheet); err != nil {
		storeError(c, err, "export xlsx")
		return
	}
	if _, err := f.NewSheet(outSheet); err != nil {
		storeError(c, err, "export xlsx")
		return
	}
	if err := writeSheet(f, inSheet, moneyInHeader, r.in); err != nil {
		storeError(c, err, "export xlsx")
		return
	}
	if err := writeSheet(f, outSheet, moneyOutHeader, r.out); err != nil {
		storeError(c, err, "export xlsx")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", h.fileName("xlsx")))
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
