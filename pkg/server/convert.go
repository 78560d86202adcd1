package server

import (
	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/repository"
)

type User struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type Tag struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type Ingredient struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredient is an ingredient row inside a recipe payload: the
// ingredient fields flattened together with the amount.
type RecipeIngredient struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type Recipe struct {
	ID               uint               `json:"id"`
	Author           User               `json:"author"`
	Tags             []Tag              `json:"tags"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
}

// RecipeMinified is the short recipe form used in mark responses and
// subscription listings.
type RecipeMinified struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type Subscription struct {
	ID           uint             `json:"id"`
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	IsSubscribed bool             `json:"is_subscribed"`
	Recipes      []RecipeMinified `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

func UserFromModel(user *model.User, isSubscribed bool) User {
	return User{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func TagFromModel(tag *model.Tag) Tag {
	return Tag{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func TagsFromModel(tags []model.Tag) []Tag {
	result := make([]Tag, 0, len(tags))
	for index := range tags {
		result = append(result, TagFromModel(&tags[index]))
	}

	return result
}

func IngredientFromModel(ingredient *model.Ingredient) Ingredient {
	return Ingredient{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

// RecipeFromModel flattens a preloaded recipe. The mark flags are scoped to
// the requesting identity and false for anonymous readers.
func RecipeFromModel(recipe *model.Recipe, authorSubscribed bool, favorited bool, inCart bool) Recipe {
	ingredients := make([]RecipeIngredient, 0, len(recipe.Ingredients))
	for index := range recipe.Ingredients {
		row := &recipe.Ingredients[index]
		ingredients = append(ingredients, RecipeIngredient{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	return Recipe{
		ID:               recipe.ID,
		Author:           UserFromModel(&recipe.Author, authorSubscribed),
		Tags:             TagsFromModel(recipe.Tags),
		Ingredients:      ingredients,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
	}
}

func RecipeMinifiedFromModel(recipe *model.Recipe) RecipeMinified {
	return RecipeMinified{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func SubscriptionFromModel(subscription *repository.Subscription) Subscription {
	recipes := make([]RecipeMinified, 0, len(subscription.Recipes))
	for _, recipe := range subscription.Recipes {
		recipes = append(recipes, RecipeMinifiedFromModel(recipe))
	}

	return Subscription{
		ID:           subscription.Author.ID,
		Email:        subscription.Author.Email,
		Username:     subscription.Author.Username,
		FirstName:    subscription.Author.FirstName,
		LastName:     subscription.Author.LastName,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: subscription.RecipesCount,
	}
}
