package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrino/kitchen/internal/ports/inbound"
)

// ListIngredients handles GET /ingredients
func (h *APIHandlers) ListIngredients(c *gin.Context) {
	query := inbound.IngredientQuery{
		Dietary:  c.Query("dietary"),
		Category: c.Query("category"),
	}

	var err error
	if query.MaxCalories, err = queryFloat(c, "max_calories"); err != nil {
		h.fail(c, err)
		return
	}
	if query.MinProtein, err = queryFloat(c, "min_protein"); err != nil {
		h.fail(c, err)
		return
	}
	if query.MaxFat, err = queryFloat(c, "max_fat"); err != nil {
		h.fail(c, err)
		return
	}

	items, err := h.catalog.ListIngredients(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, items, nil)
}

// GetIngredient handles GET /ingredients/:name
func (h *APIHandlers) GetIngredient(c *gin.Context) {
	item, err := h.catalog.GetIngredient(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, item, nil)
}

// AddIngredient handles POST /ingredients
func (h *APIHandlers) AddIngredient(c *gin.Context) {
	var cmd inbound.AddIngredientCommand
	if err := h.bindJSON(c, &cmd); err != nil {
		h.fail(c, err)
		return
	}

	item, err := h.catalog.AddIngredient(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusCreated, item, nil)
}

// UpdatePrice handles POST /update_price
func (h *APIHandlers) UpdatePrice(c *gin.Context) {
	var cmd inbound.UpdatePriceCommand
	if err := h.bindJSON(c, &cmd); err != nil {
		h.fail(c, err)
		return
	}

	item, err := h.catalog.UpdatePrice(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, item, nil)
}
