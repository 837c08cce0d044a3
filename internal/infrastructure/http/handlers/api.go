// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nutrino/kitchen/internal/infrastructure/monitoring"
	"github.com/nutrino/kitchen/internal/ports/inbound"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/pkg/errors"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	catalog   inbound.CatalogService
	nutrition inbound.NutritionService
	recipes   inbound.RecipeService
	mealPlans inbound.MealPlanService
	metrics   *monitoring.MetricsCollector
	logger    *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance. metrics may be nil.
func NewAPIHandlers(
	catalog inbound.CatalogService,
	nutrition inbound.NutritionService,
	recipes inbound.RecipeService,
	mealPlans inbound.MealPlanService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *APIHandlers {
	useJSONFieldNames()

	return &APIHandlers{
		catalog:   catalog,
		nutrition: nutrition,
		recipes:   recipes,
		mealPlans: mealPlans,
		metrics:   metrics,
		logger:    logger.Named("api"),
	}
}

// RegisterRoutes mounts every API route on r
func (h *APIHandlers) RegisterRoutes(r gin.IRouter) {
	r.GET("/ingredients", h.ListIngredients)
	r.GET("/ingredients/:name", h.GetIngredient)
	r.POST("/ingredients", h.AddIngredient)
	r.POST("/update_price", h.UpdatePrice)

	r.POST("/calculate", h.Calculate)
	r.POST("/recipe_nutrition", h.AnalyzeIngredientList)
	r.POST("/nutrition/label", h.NutritionLabel)

	r.POST("/recipes", h.MatchRecipes)
	r.GET("/get_recipes", h.BrowseRecipes)
	r.GET("/recipes/:name", h.GetRecipe)
	r.POST("/recipes/:name/nutrition", h.StoredRecipeNutrition)
	r.GET("/recipes/:name/label", h.RecipeLabel)
	r.GET("/recipes/:name/sheet", h.RecipeSheet)
	r.POST("/add_recipe", h.AddRecipe)
	r.POST("/update_recipe", h.UpdateRecipe)
	r.POST("/delete_recipe", h.DeleteRecipe)

	r.POST("/generate_meal_plan", h.GenerateMealPlan)
	r.POST("/order_meal", h.OrderMeal)
	r.GET("/orders", h.ListOrders)
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Warnings []string    `json:"warnings"`
}

// respond writes a success envelope. Non-empty warnings mark a partial result.
func (h *APIHandlers) respond(c *gin.Context, status int, data interface{}, warnings []string) {
	if warnings == nil {
		warnings = []string{}
	}
	if len(warnings) > 0 && h.metrics != nil {
		h.metrics.PartialResult(c.FullPath())
	}

	c.JSON(status, APIResponse{
		Success:  true,
		Data:     data,
		Warnings: warnings,
	})
}

// fail hands err to the error middleware
func (h *APIHandlers) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// sendDocument writes a rendered file as an attachment
func (h *APIHandlers) sendDocument(c *gin.Context, doc *outbound.Document) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// bindJSON decodes and validates a required JSON body
func (h *APIHandlers) bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindingError(err)
	}
	return nil
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted
func (h *APIHandlers) bindOptionalJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || stderrors.Is(err, io.EOF) {
		return nil
	}
	return bindingError(err)
}

// bindingError converts decoder and validator failures into validation errors
func bindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		list := make([]errors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			field := fieldPath(fe)
			list = append(list, errors.ValidationError{
				Field:   field,
				Value:   fe.Value(),
				Tag:     fe.Tag(),
				Message: fieldMessage(field, fe),
			})
		}
		return errors.NewValidationErrors(list)
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return errors.NewValidationError(fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}
	if stderrors.Is(err, io.EOF) {
		return errors.NewValidationError("request body is required")
	}
	return errors.NewValidationError("request body must be valid JSON")
}

// fieldPath drops the struct name from the validator namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
	}
}

var tagNamesOnce sync.Once

// useJSONFieldNames makes validator report json field names
func useJSONFieldNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
	})
}

// queryFloat reads an optional numeric query parameter; blank means 0
func queryFloat(c *gin.Context, key string) (float64, error) {
	raw := inbound.NumberFromString(c.Query(key))
	if !raw.IsSet() {
		return 0, nil
	}
	v, err := raw.Float()
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must be a number", key))
	}
	return v, nil
}
