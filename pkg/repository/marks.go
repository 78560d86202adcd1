package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kitchengram.app/KitchenGram/pkg/model"
)

var (
	ErrAlreadyMarked = errors.New("recipe is already marked")
	ErrMarkNotFound  = errors.New("mark not found")
	ErrUnknownKind   = errors.New("unknown mark kind")
)

// Favorites and shopping cart entries share one shape: a unique
// (user, recipe) edge. The kind picks the table.
func markRow(kind model.MarkKind, userID uint, recipeID uint) (interface{}, error) {
	switch kind {
	case model.KindFavorite:
		return &model.Favorite{UserID: userID, RecipeID: recipeID}, nil
	case model.KindShoppingCart:
		return &model.ShoppingCart{UserID: userID, RecipeID: recipeID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func markModel(kind model.MarkKind) (interface{}, error) {
	switch kind {
	case model.KindFavorite:
		return &model.Favorite{}, nil
	case model.KindShoppingCart:
		return &model.ShoppingCart{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// AddMark creates the edge; when two writers race, the unique index makes
// the loser fail and that surfaces as ErrAlreadyMarked.
func (r *Repository) AddMark(ctx context.Context, kind model.MarkKind, userID uint, recipeID uint) error {
	row, err := markRow(kind, userID, recipeID)
	if err != nil {
		return err
	}

	if result := r.DB.WithContext(ctx).Create(row); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s recipe %d for user %d", ErrAlreadyMarked, kind, recipeID, userID)
		}

		return result.Error
	}

	return nil
}

func (r *Repository) RemoveMark(ctx context.Context, kind model.MarkKind, userID uint, recipeID uint) error {
	target, err := markModel(kind)
	if err != nil {
		return err
	}

	result := r.DB.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(target)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s recipe %d for user %d", ErrMarkNotFound, kind, recipeID, userID)
	}

	return nil
}

func (r *Repository) HasMark(ctx context.Context, kind model.MarkKind, userID uint, recipeID uint) (bool, error) {
	target, err := markModel(kind)
	if err != nil {
		return false, err
	}

	var count int64

	result := r.DB.WithContext(ctx).Model(target).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// ShoppingList sums ingredient amounts across every recipe in the user's
// cart, grouped by (name, measurement unit). Pure read, no ordering
// guarantee.
func (r *Repository) ShoppingList(ctx context.Context, userID uint) ([]model.ShoppingListItem, error) {
	var items []model.ShoppingListItem

	result := r.DB.WithContext(ctx).Table("ingredient_in_recipes as iir").
		Select("i.name as name, "+
			"i.measurement_unit as measurement_unit, "+
			"sum(iir.amount) as total").
		Joins("INNER JOIN ingredients i on i.id = iir.ingredient_id").
		Joins("INNER JOIN shopping_carts sc on sc.recipe_id = iir.recipe_id").
		Where("sc.user_id = ?", userID).
		Group("i.name, i.measurement_unit").
		Scan(&items)

	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}
