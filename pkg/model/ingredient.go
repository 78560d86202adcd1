package model

import "gorm.io/gorm"

// Ingredient is reference data: a named unit of measure, created by the
// import command or an admin and referenced by recipes.
type Ingredient struct {
	gorm.Model
	Name            string `gorm:"uniqueIndex:idx_ingredient_unique"`
	MeasurementUnit string `gorm:"uniqueIndex:idx_ingredient_unique"`
}

// IngredientInRecipe carries the amount of one ingredient in one recipe.
// An ingredient appears at most once per recipe. Rows are rewritten
// wholesale on every recipe update, so they are hard-deleted.
type IngredientInRecipe struct {
	ID           uint `gorm:"primarykey"`
	RecipeID     uint `gorm:"uniqueIndex:idx_recipe_ingredient_unique"`
	IngredientID uint `gorm:"uniqueIndex:idx_recipe_ingredient_unique"`
	Amount       int

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}
