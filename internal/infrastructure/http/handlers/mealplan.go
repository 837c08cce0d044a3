package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrino/kitchen/internal/ports/inbound"
)

// GenerateMealPlan handles POST /generate_meal_plan
func (h *APIHandlers) GenerateMealPlan(c *gin.Context) {
	var cmd inbound.GenerateMealPlanCommand
	if err := h.bindOptionalJSON(c, &cmd); err != nil {
		h.fail(c, err)
		return
	}

	plan, err := h.mealPlans.GenerateMealPlan(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	warnings := plan.Warnings
	plan.Warnings = nil
	h.respond(c, http.StatusOK, plan, warnings)
}

// OrderMeal handles POST /order_meal
func (h *APIHandlers) OrderMeal(c *gin.Context) {
	var cmd inbound.PlaceOrderCommand
	if err := h.bindJSON(c, &cmd); err != nil {
		h.fail(c, err)
		return
	}

	order, err := h.mealPlans.PlaceOrder(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusCreated, order, nil)
}

// ListOrders handles GET /orders
func (h *APIHandlers) ListOrders(c *gin.Context) {
	orders, err := h.mealPlans.ListOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, orders, nil)
}
