package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrino/kitchen/internal/ports/inbound"
)

// deleteRecipeRequest names the recipe to remove
type deleteRecipeRequest struct {
	Name string `json:"recipe_name" binding:"required"`
}

// MatchRecipes handles POST /recipes
func (h *APIHandlers) MatchRecipes(c *gin.Context) {
	var query inbound.MatchRecipesQuery
	if err := h.bindOptionalJSON(c, &query); err != nil {
		h.fail(c, err)
		return
	}

	list, err := h.recipes.MatchRecipes(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, list.Recipes, list.Warnings)
}

// BrowseRecipes handles GET /get_recipes
func (h *APIHandlers) BrowseRecipes(c *gin.Context) {
	query := inbound.BrowseRecipesQuery{
		Dietary:    c.Query("dietary"),
		Complexity: c.Query("complexity"),
		Currency:   c.Query("currency"),
	}

	var err error
	if query.MaxCalories, err = queryFloat(c, "max_calories"); err != nil {
		h.fail(c, err)
		return
	}
	if query.MaxCost, err = queryFloat(c, "max_cost"); err != nil {
		h.fail(c, err)
		return
	}

	list, err := h.recipes.BrowseRecipes(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, list.Recipes, list.Warnings)
}

// GetRecipe handles GET /recipes/:name
func (h *APIHandlers) GetRecipe(c *gin.Context) {
	dto, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("name"), c.Query("currency"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, dto, nutritionWarnings(dto.MissingIngredients))
}

// StoredRecipeNutrition handles POST /recipes/:name/nutrition
func (h *APIHandlers) StoredRecipeNutrition(c *gin.Context) {
	var query inbound.RecipeNutritionQuery
	if err := h.bindOptionalJSON(c, &query); err != nil {
		h.fail(c, err)
		return
	}
	query.Name = c.Param("name")

	result, err := h.recipes.RecipeNutrition(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, result, nutritionWarnings(result.MissingIngredients))
}

// RecipeLabel handles GET /recipes/:name/label
func (h *APIHandlers) RecipeLabel(c *gin.Context) {
	doc, err := h.recipes.RenderRecipeLabel(c.Request.Context(), c.Param("name"), c.Query("currency"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.sendDocument(c, doc)
}

// RecipeSheet handles GET /recipes/:name/sheet?format=png|xlsx
func (h *APIHandlers) RecipeSheet(c *gin.Context) {
	doc, err := h.recipes.RenderRecipeSheet(c.Request.Context(), c.Param("name"), c.Query("currency"), c.Query("format"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.sendDocument(c, doc)
}

// AddRecipe handles POST /add_recipe
func (h *APIHandlers) AddRecipe(c *gin.Context) {
	var cmd inbound.RecipeCommand
	if err := h.bindJSON(c, &cmd); err != nil {
		h.fail(c, err)
		return
	}

	dto, err := h.recipes.AddRecipe(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusCreated, dto, nutritionWarnings(dto.MissingIngredients))
}

// UpdateRecipe handles POST /update_recipe
func (h *APIHandlers) UpdateRecipe(c *gin.Context) {
	var cmd inbound.RecipeCommand
	if err := h.bindJSON(c, &cmd); err != nil {
		h.fail(c, err)
		return
	}

	dto, err := h.recipes.UpdateRecipe(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, dto, nutritionWarnings(dto.MissingIngredients))
}

// DeleteRecipe handles POST /delete_recipe
func (h *APIHandlers) DeleteRecipe(c *gin.Context) {
	var req deleteRecipeRequest
	if err := h.bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), req.Name); err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, gin.H{"recipe_name": req.Name, "deleted": true}, nil)
}
