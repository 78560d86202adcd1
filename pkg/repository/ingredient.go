package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kitchengram.app/KitchenGram/pkg/model"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

func (r *Repository) CreateIngredient(ctx context.Context, ingredient model.Ingredient) (*model.Ingredient, error) {
	if result := r.DB.WithContext(ctx).Create(&ingredient); result.Error != nil {
		return nil, result.Error
	}

	return &ingredient, nil
}

func (r *Repository) GetIngredientByID(ctx context.Context, ingredientID uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient

	result := r.DB.WithContext(ctx).First(&ingredient, ingredientID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrIngredientNotFound, ingredientID)
		}

		return nil, result.Error
	}

	return &ingredient, nil
}

// GetIngredientsByIDs requires every requested id to exist.
func (r *Repository) GetIngredientsByIDs(ctx context.Context, ingredientIDs []uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient

	if result := r.DB.WithContext(ctx).Where("id IN ?", ingredientIDs).Find(&ingredients); result.Error != nil {
		return nil, result.Error
	}

	found := make(map[uint]bool, len(ingredients))
	for _, ingredient := range ingredients {
		found[ingredient.ID] = true
	}

	for _, ingredientID := range ingredientIDs {
		if !found[ingredientID] {
			return nil, fmt.Errorf("%w: id %d", ErrIngredientNotFound, ingredientID)
		}
	}

	return ingredients, nil
}

// ListIngredients filters by case-insensitive name prefix when one is given.
func (r *Repository) ListIngredients(ctx context.Context, namePrefix string) ([]*model.Ingredient, error) {
	var ingredients []*model.Ingredient

	query := r.DB.WithContext(ctx).Order("name")
	if namePrefix != "" {
		query = query.Where("name ILIKE ?", namePrefix+"%")
	}

	if result := query.Find(&ingredients); result.Error != nil {
		return nil, result.Error
	}

	return ingredients, nil
}

// BulkAddIngredients inserts the fixture rows, skipping any (name, unit)
// pair that already exists. Returns the number of rows actually inserted.
func (r *Repository) BulkAddIngredients(ctx context.Context, ingredients []model.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}

	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredients)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
