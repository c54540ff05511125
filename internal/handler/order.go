package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/logger"
	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/pos"
	"github.com/damia-cpu/Wellness-Cafe/internal/pricing"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
)

// OrderHandler runs the till: the shared cart, checkout and manual sales.
type OrderHandler struct {
	Store    *store.Store
	Cart     *pos.Cart
	Clock    util.Clock
	Location *time.Location
}

func NewOrderHandler(s *store.Store, cart *pos.Cart, clock util.Clock, loc *time.Location) *OrderHandler {
	return &OrderHandler{Store: s, Cart: cart, Clock: clock, Location: loc}
}

type cartLineResp struct {
	models.OrderItem
	LineTotal string `json:"line_total"`
}

func (h *OrderHandler) cartResponse() util.Response {
	lines := h.Cart.Lines()
	out := make([]cartLineResp, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineResp{OrderItem: l, LineTotal: pricing.Format(pricing.LineTotal(l))})
	}
	return util.Response{
		"lines": out,
		"total": pricing.Format(pricing.CartTotal(lines)),
	}
}

func (h *OrderHandler) GetCart(c *gin.Context) {
	util.Success(c, h.cartResponse())
}

type addCartItemReq struct {
	MenuItemID string   `json:"menu_item_id" binding:"required"`
	Quantity   int      `json:"quantity" binding:"omitempty,min=1,max=999"`
	AddOnIDs   []string `json:"add_on_ids"`
	SugarLevel string   `json:"sugar_level"`
}

// AddItem puts a menu item on the till at its current price.
func (h *OrderHandler) AddItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "menu_item_id is required, quantity must be at least 1")
		return
	}
	sugar := models.SugarLevel(req.SugarLevel)
	if req.SugarLevel != "" && !sugar.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown sugar level")
		return
	}

	ctx := c.Request.Context()
	item, err := h.Store.MenuItem(ctx, req.MenuItemID)
	if err != nil {
		storeError(c, err, "menu item")
		return
	}
	addOns, err := h.Store.AddOnsByID(ctx, req.AddOnIDs)
	if err != nil {
		storeError(c, err, "add-on")
		return
	}

	line, err := h.Cart.Add(*item, req.Quantity, addOns, sugar)
	if errors.Is(err, pos.ErrUnavailable) {
		util.Error(c, http.StatusConflict, util.CodeConflict, item.Name+" is not available")
		return
	}
	if err != nil {
		storeError(c, err, "add to cart")
		return
	}

	resp := h.cartResponse()
	resp["line"] = line
	util.Success(c, resp)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	if err := h.Cart.Remove(c.Param("line")); err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "cart line not found")
		return
	}
	util.Success(c, h.cartResponse())
}

func (h *OrderHandler) ClearCart(c *gin.Context) {
	h.Cart.Clear()
	util.Success(c, h.cartResponse())
}

type checkoutReq struct {
	Date string `json:"date"`
}

// Checkout records the cart as a Regular sale on the chosen business date.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
			return
		}
	}
	date, ok := businessDate(c, req.Date, h.Location, h.Clock)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tx, err := pos.Checkout(h.Cart, date, h.Clock, func(tx *models.Transaction) error {
		return h.Store.AppendTransaction(ctx, tx)
	})
	if errors.Is(err, pos.ErrEmptyCart) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cart is empty")
		return
	}
	if err != nil {
		storeError(c, err, "checkout")
		return
	}

	log := logger.FromContext(ctx)
	log.Info().Str("id", tx.ID).Str("total", pricing.Format(tx.Total)).Msg("sale recorded")
	util.Success(c, util.Response{"transaction": tx})
}

type manualLineReq struct {
	Name        string `json:"name" binding:"required,max=128"`
	Price       string `json:"price" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1,max=999"`
	Description string `json:"description" binding:"max=255"`
}

type manualSaleReq struct {
	Date  string          `json:"date"`
	Lines []manualLineReq `json:"lines" binding:"required,min=1,dive"`
}

// ManualSale records an ad hoc sale that is not on the menu.
func (h *OrderHandler) ManualSale(c *gin.Context) {
	var req manualSaleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "each line needs a name, price and quantity of at least 1")
		return
	}
	date, ok := businessDate(c, req.Date, h.Location, h.Clock)
	if !ok {
		return
	}

	lines := make([]models.ManualLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if err := util.ValidateName(l.Name); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		price, ok := parseAmount(c, l.Price)
		if !ok {
			return
		}
		lines = append(lines, models.ManualLine{
			Name:        strings.TrimSpace(l.Name),
			Price:       price,
			Quantity:    l.Quantity,
			Description: strings.TrimSpace(l.Description),
		})
	}

	tx, err := pos.ManualSale(lines, date, h.Clock)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := h.Store.AppendTransaction(c.Request.Context(), tx); err != nil {
		storeError(c, err, "manual sale")
		return
	}
	util.Success(c, util.Response{"transaction": tx})
}
