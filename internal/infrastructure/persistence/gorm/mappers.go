package gorm

import (
	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
)

// nutrientColumns maps each schema key to its column
var nutrientColumns = map[string]string{
	nutrition.Calories:      "calories",
	nutrition.Proteins:      "proteins",
	nutrition.Fats:          "fats",
	nutrition.SaturatedFats: "saturated_fats",
	nutrition.TransFats:     "trans_fats",
	nutrition.Cholesterol:   "cholesterol",
	nutrition.Sodium:        "sodium",
	nutrition.Carbohydrates: "carbohydrates",
	nutrition.Fiber:         "fiber",
	nutrition.Sugars:        "sugars",
	nutrition.Calcium:       "calcium",
	nutrition.Iron:          "iron",
	nutrition.Potassium:     "potassium",
	nutrition.VitaminA:      "vitamin_a",
	nutrition.VitaminC:      "vitamin_c",
	nutrition.VitaminD:      "vitamin_d",
}

// IngredientToModel converts domain ingredient to GORM model
func IngredientToModel(i *ingredient.Ingredient) *IngredientModel {
	n := i.Nutrients()
	return &IngredientModel{
		Name:           i.Name(),
		LocalizedName:  i.LocalizedName(),
		Dietary:        string(i.Dietary()),
		Category:       string(i.Category()),
		PurchaseCost:   i.PurchaseCost(),
		PurchaseAmount: i.PurchaseAmount(),
		PricePerUnit:   i.PricePerUnit(),
		Calories:       n[nutrition.Calories],
		Proteins:       n[nutrition.Proteins],
		Fats:           n[nutrition.Fats],
		SaturatedFats:  n[nutrition.SaturatedFats],
		TransFats:      n[nutrition.TransFats],
		Cholesterol:    n[nutrition.Cholesterol],
		Sodium:         n[nutrition.Sodium],
		Carbohydrates:  n[nutrition.Carbohydrates],
		Fiber:          n[nutrition.Fiber],
		Sugars:         n[nutrition.Sugars],
		Calcium:        n[nutrition.Calcium],
		Iron:           n[nutrition.Iron],
		Potassium:      n[nutrition.Potassium],
		VitaminA:       n[nutrition.VitaminA],
		VitaminC:       n[nutrition.VitaminC],
		VitaminD:       n[nutrition.VitaminD],
	}
}

// ModelToIngredient converts GORM model to domain ingredient
func ModelToIngredient(model *IngredientModel) *ingredient.Ingredient {
	return ingredient.Restore(ingredient.Attributes{
		Name:           model.Name,
		LocalizedName:  model.LocalizedName,
		Dietary:        ingredient.Dietary(model.Dietary),
		Category:       ingredient.Category(model.Category),
		PurchaseCost:   model.PurchaseCost,
		PurchaseAmount: model.PurchaseAmount,
		Nutrients: nutrition.Profile{
			nutrition.Calories:      model.Calories,
			nutrition.Proteins:      model.Proteins,
			nutrition.Fats:          model.Fats,
			nutrition.SaturatedFats: model.SaturatedFats,
			nutrition.TransFats:     model.TransFats,
			nutrition.Cholesterol:   model.Cholesterol,
			nutrition.Sodium:        model.Sodium,
			nutrition.Carbohydrates: model.Carbohydrates,
			nutrition.Fiber:         model.Fiber,
			nutrition.Sugars:        model.Sugars,
			nutrition.Calcium:       model.Calcium,
			nutrition.Iron:          model.Iron,
			nutrition.Potassium:     model.Potassium,
			nutrition.VitaminA:      model.VitaminA,
			nutrition.VitaminC:      model.VitaminC,
			nutrition.VitaminD:      model.VitaminD,
		},
	}, model.PricePerUnit)
}

func modelsToIngredients(models []IngredientModel) []*ingredient.Ingredient {
	out := make([]*ingredient.Ingredient, len(models))
	for i := range models {
		out[i] = ModelToIngredient(&models[i])
	}
	return out
}

// columnFor returns the column of a nutrient key
func columnFor(key string) string {
	return nutrientColumns[key]
}
