package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/logger"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// requireConfirm gates irreversible actions behind ?confirm=true.
func requireConfirm(c *gin.Context) bool {
	if ok, _ := strconv.ParseBool(c.Query("confirm")); ok {
		return true
	}
	util.Error(c, http.StatusConflict, util.CodeConflict, "this cannot be undone, repeat with confirm=true")
	return false
}

// storeError maps store sentinels onto the response envelope.
func storeError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, what+" not found")
	case errors.Is(err, store.ErrInvalidRecord):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	default:
		log := logger.FromContext(c.Request.Context())
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(what)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

// businessDate reads a YYYY-MM-DD picker value as midnight in loc,
// defaulting to today.
func businessDate(c *gin.Context, raw string, loc *time.Location, clock util.Clock) (time.Time, bool) {
	now := clock.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	t, err := util.ParseBusinessDate(raw, loc, today)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return time.Time{}, false
	}
	return t, true
}

func parsePrice(c *gin.Context, raw string) (decimal.Decimal, bool) {
	p, err := util.ParseAmount(raw)
	if err == nil {
		err = util.ValidatePrice(p)
	}
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return decimal.Zero, false
	}
	return p, true
}

func parseAmount(c *gin.Context, raw string) (decimal.Decimal, bool) {
	a, err := util.ParseAmount(raw)
	if err == nil {
		err = util.ValidateAmount(a)
	}
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return decimal.Zero, false
	}
	return a, true
}
