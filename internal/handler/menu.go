package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the catalog: menu items and add-ons.
type MenuHandler struct {
	Store *store.Store
	Clock util.Clock
}

func NewMenuHandler(s *store.Store, clock util.Clock) *MenuHandler {
	return &MenuHandler{Store: s, Clock: clock}
}

type menuSection struct {
	Category models.MenuCategory `json:"category"`
	Items    []models.MenuItem   `json:"items"`
}

// ListMenu groups the menu by section in display order. With
// ?available=true items switched off are left out.
func (h *MenuHandler) ListMenu(c *gin.Context) {
	items, err := h.Store.MenuItems(c.Request.Context())
	if err != nil {
		storeError(c, err, "list menu")
		return
	}
	onlyAvailable, _ := strconv.ParseBool(c.Query("available"))

	sections := make([]menuSection, 0, len(models.MenuCategories))
	for _, cat := range models.MenuCategories {
		sec := menuSection{Category: cat, Items: []models.MenuItem{}}
		for _, it := range items {
			if it.Category != cat || (onlyAvailable && !it.Available) {
				continue
			}
			sec.Items = append(sec.Items, it)
		}
		sections = append(sections, sec)
	}

	util.Success(c, util.Response{
		"sections": sections,
		"total":    len(items),
	})
}

type createMenuItemReq struct {
	Name      string `json:"name" binding:"required,max=128"`
	Category  string `json:"category" binding:"required"`
	Price     string `json:"price" binding:"required"`
	Available *bool  `json:"available"`
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req createMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, category and price are required")
		return
	}
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	cat := models.MenuCategory(req.Category)
	if !cat.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown menu category")
		return
	}
	price, ok := parsePrice(c, req.Price)
	if !ok {
		return
	}

	item := models.MenuItem{
		ID:        util.NewID(util.PrefixMenuItem, h.Clock.Now()),
		Name:      strings.TrimSpace(req.Name),
		Category:  cat,
		Price:     price,
		Available: req.Available == nil || *req.Available,
	}
	if err := h.Store.CreateMenuItem(c.Request.Context(), &item); err != nil {
		storeError(c, err, "create menu item")
		return
	}
	util.Success(c, util.Response{"item": item})
}

type updateMenuItemReq struct {
	Name      *string `json:"name" binding:"omitempty,max=128"`
	Category  *string `json:"category"`
	Price     *string `json:"price"`
	Available *bool   `json:"available"`
}

// UpdateMenuItem edits price, name, section or availability. Lines
// already in the cart keep the old values.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var req updateMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var patch store.MenuItemPatch
	if req.Name != nil {
		if err := util.ValidateName(*req.Name); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Category != nil {
		cat := models.MenuCategory(*req.Category)
		if !cat.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown menu category")
			return
		}
		patch.Category = &cat
	}
	if req.Price != nil {
		price, ok := parsePrice(c, *req.Price)
		if !ok {
			return
		}
		patch.Price = &price
	}
	patch.Available = req.Available

	item, err := h.Store.UpdateMenuItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		storeError(c, err, "menu item")
		return
	}
	util.Success(c, util.Response{"item": item})
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := h.Store.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "menu item")
		return
	}
	util.Success(c, util.Response{"message": "menu item deleted"})
}

func (h *MenuHandler) ListAddOns(c *gin.Context) {
	addOns, err := h.Store.AddOns(c.Request.Context())
	if err != nil {
		storeError(c, err, "list add-ons")
		return
	}
	util.Success(c, util.Response{"items": addOns})
}

type updateAddOnReq struct {
	Price string `json:"price" binding:"required"`
}

func (h *MenuHandler) UpdateAddOn(c *gin.Context) {
	var req updateAddOnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "price is required")
		return
	}
	price, ok := parsePrice(c, req.Price)
	if !ok {
		return
	}
	a, err := h.Store.UpdateAddOnPrice(c.Request.Context(), c.Param("id"), price)
	if err != nil {
		storeError(c, err, "add-on")
		return
	}
	util.Success(c, util.Response{"item": a})
}
