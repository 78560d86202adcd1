package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kitchengram.app/KitchenGram/pkg/model"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// IngredientAmount is one (ingredient, amount) pair of a composite recipe write.
type IngredientAmount struct {
	IngredientID uint
	Amount       int
}

// RecipeFilter narrows a listing. Zero values are no-ops; FavoritedBy and
// InCartOf restrict to recipes with a matching mark row for that user.
type RecipeFilter struct {
	AuthorID    uint
	TagSlugs    []string
	FavoritedBy uint
	InCartOf    uint
	Limit       int
	Offset      int
}

// CreateRecipe persists the recipe row, its ingredient rows and its tag links
// as one transaction. A duplicate ingredient in the input hits the
// (recipe_id, ingredient_id) unique index and rolls the whole write back.
func (r *Repository) CreateRecipe(ctx context.Context, recipe model.Recipe, ingredients []IngredientAmount, tagIDs []uint) (*model.Recipe, error) {
	recipe.PublishedAt = time.Now().UTC()

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Omit(clause.Associations).Create(&recipe); result.Error != nil {
			return result.Error
		}

		return writeRecipeLinks(tx, recipe.ID, ingredients, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// UpdateRecipe replaces the scalar fields and the full set of tag links and
// ingredient rows in one transaction. Clear-then-rewrite, not a diff: a
// reader never observes a mix of old and new sets. PublishedAt is immutable.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe model.Recipe, ingredients []IngredientAmount, tagIDs []uint) (*model.Recipe, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Recipe{Model: gorm.Model{ID: recipe.ID}}).
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: id %d", ErrRecipeNotFound, recipe.ID)
		}

		if result := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipe.ID); result.Error != nil {
			return result.Error
		}

		if result := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.IngredientInRecipe{}); result.Error != nil {
			return result.Error
		}

		return writeRecipeLinks(tx, recipe.ID, ingredients, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

func writeRecipeLinks(tx *gorm.DB, recipeID uint, ingredients []IngredientAmount, tagIDs []uint) error {
	if len(ingredients) > 0 {
		rows := make([]model.IngredientInRecipe, 0, len(ingredients))
		for _, item := range ingredients {
			rows = append(rows, model.IngredientInRecipe{
				RecipeID:     recipeID,
				IngredientID: item.IngredientID,
				Amount:       item.Amount,
			})
		}

		if result := tx.Create(&rows); result.Error != nil {
			return result.Error
		}
	}

	if len(tagIDs) > 0 {
		links := make([]map[string]interface{}, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, map[string]interface{}{"recipe_id": recipeID, "tag_id": tagID})
		}

		if result := tx.Table("recipe_tags").Create(links); result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// DeleteRecipe removes the recipe for good; the foreign keys cascade the
// ingredient rows, tag links and mark rows away with it.
func (r *Repository) DeleteRecipe(ctx context.Context, recipeID uint) error {
	result := r.DB.WithContext(ctx).Unscoped().Delete(&model.Recipe{}, recipeID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrRecipeNotFound, recipeID)
	}

	return nil
}

func (r *Repository) GetRecipeByID(ctx context.Context, recipeID uint) (*model.Recipe, error) {
	var recipe model.Recipe

	result := r.DB.WithContext(ctx).
		Joins("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&recipe, recipeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrRecipeNotFound, recipeID)
		}

		return nil, result.Error
	}

	return &recipe, nil
}

// ListRecipes returns the filtered subset ordered newest publication first.
func (r *Repository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	var recipes []*model.Recipe

	query := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Joins("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Order("recipes.published_at DESC")

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		query = query.Where("recipes.id IN (SELECT recipe_id FROM recipe_tags INNER JOIN tags ON tag_id = tags.id WHERE slug IN ?)", filter.TagSlugs)
	}

	if filter.FavoritedBy != 0 {
		query = query.Where("recipes.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)", filter.FavoritedBy)
	}

	if filter.InCartOf != 0 {
		query = query.Where("recipes.id IN (SELECT recipe_id FROM shopping_carts WHERE user_id = ?)", filter.InCartOf)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if result := query.Find(&recipes); result.Error != nil {
		return nil, result.Error
	}

	return recipes, nil
}

func (r *Repository) CountRecipesByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
