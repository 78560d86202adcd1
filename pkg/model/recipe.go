package model

import (
	"time"

	"gorm.io/gorm"
)

type Recipe struct {
	gorm.Model
	AuthorID    uint
	Name        string
	Image       string
	Text        string
	CookingTime int
	PublishedAt time.Time `gorm:"index;<-:create"`

	Author      User                 `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags        []Tag                `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []IngredientInRecipe `gorm:"foreignKey:RecipeID"`
}

// MarkKind selects which per-user recipe relation a repository call targets.
type MarkKind string

const (
	KindFavorite     MarkKind = "favorite"
	KindShoppingCart MarkKind = "shopping_cart"
)

type Favorite struct {
	ID       uint `gorm:"primarykey"`
	UserID   uint `gorm:"uniqueIndex:idx_favorite_unique"`
	RecipeID uint `gorm:"uniqueIndex:idx_favorite_unique"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type ShoppingCart struct {
	ID       uint `gorm:"primarykey"`
	UserID   uint `gorm:"uniqueIndex:idx_shopping_cart_unique"`
	RecipeID uint `gorm:"uniqueIndex:idx_shopping_cart_unique"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// ShoppingListItem is the aggregation read model: total amount of one
// ingredient across every recipe in a user's cart. Not a table.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Total           int64
}
