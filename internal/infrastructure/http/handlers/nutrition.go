package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	recipeapp "github.com/nutrino/kitchen/internal/application/recipe"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"github.com/nutrino/kitchen/pkg/errors"
)

// selectionRequest is the structured body of /calculate and /nutrition/label
type selectionRequest struct {
	Title       string                    `json:"title"`
	Quantities  map[string]inbound.Number `json:"quantities"`
	ScaleFactor inbound.Number            `json:"scale_factor"`
	Currency    string                    `json:"currency"`
	Servings    inbound.Number            `json:"servings"`
}

// readSelection accepts either {"quantities": {...}, ...} or a flat
// {"Egg": 100} map. In the flat form a string "title" is taken as the
// label title when withTitle is set.
func readSelection(c *gin.Context, withTitle bool) (selectionRequest, error) {
	var req selectionRequest

	body, err := c.GetRawData()
	if err != nil {
		return req, errors.NewBadRequestError("failed to read request body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return req, errors.NewValidationError("request body must be a JSON object")
	}

	if _, structured := fields["quantities"]; structured {
		if err := json.Unmarshal(body, &req); err != nil {
			return req, bindingError(err)
		}
		return req, nil
	}

	req.Quantities = make(map[string]inbound.Number, len(fields))
	for name, value := range fields {
		if withTitle && name == "title" {
			if err := json.Unmarshal(value, &req.Title); err == nil {
				continue
			}
		}
		var qty inbound.Number
		if err := json.Unmarshal(value, &qty); err != nil {
			return req, errors.NewValidationError(fmt.Sprintf("quantity for %s must be a number", name))
		}
		req.Quantities[name] = qty
	}
	return req, nil
}

func (r selectionRequest) command() inbound.CalculateCommand {
	return inbound.CalculateCommand{
		Quantities:  r.Quantities,
		ScaleFactor: r.ScaleFactor,
		Currency:    r.Currency,
		Servings:    r.Servings,
	}
}

// nutritionWarnings lists the skipped ingredients of a result
func nutritionWarnings(missing []string) []string {
	warnings := make([]string, 0, len(missing))
	for _, name := range missing {
		warnings = append(warnings, recipeapp.MissingIngredientWarning(name))
	}
	return warnings
}

// Calculate handles POST /calculate
func (h *APIHandlers) Calculate(c *gin.Context) {
	req, err := readSelection(c, false)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.nutrition.Calculate(c.Request.Context(), req.command())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, result, nutritionWarnings(result.MissingIngredients))
}

// AnalyzeIngredientList handles POST /recipe_nutrition
func (h *APIHandlers) AnalyzeIngredientList(c *gin.Context) {
	var cmd inbound.IngredientListCommand
	if err := h.bindJSON(c, &cmd); err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.nutrition.AnalyzeIngredientList(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, result, nutritionWarnings(result.MissingIngredients))
}

// NutritionLabel handles POST /nutrition/label
func (h *APIHandlers) NutritionLabel(c *gin.Context) {
	req, err := readSelection(c, true)
	if err != nil {
		h.fail(c, err)
		return
	}

	doc, err := h.nutrition.RenderLabel(c.Request.Context(), inbound.LabelCommand{
		Title:            req.Title,
		CalculateCommand: req.command(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.sendDocument(c, doc)
}
