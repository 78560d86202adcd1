package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchengram.app/KitchenGram/configs"
	"kitchengram.app/KitchenGram/pkg/auth"
	"kitchengram.app/KitchenGram/pkg/repository"
)

// NewRouter wires every handler. Reads are public (with optional identity
// for the per-user flags); mutations require a valid bearer token.
func NewRouter(repo *repository.Repository, authManager *auth.Manager, conf *configs.Config, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	tagServer := NewTagServer(repo, logger)
	ingredientServer := NewIngredientServer(repo, logger)
	recipeServer := NewRecipeServer(repo, conf, logger)
	userServer := NewUserServer(repo, logger)

	api := engine.Group("/api")

	tags := api.Group("/tags")
	tags.GET("", tagServer.ListTags)
	tags.GET("/:id", tagServer.GetTag)
	tags.POST("", authManager.RequireAuth(), tagServer.CreateTag)
	tags.PATCH("/:id", authManager.RequireAuth(), tagServer.UpdateTag)

	ingredients := api.Group("/ingredients")
	ingredients.GET("", ingredientServer.ListIngredients)
	ingredients.GET("/:id", ingredientServer.GetIngredient)

	recipes := api.Group("/recipes")
	recipes.GET("", authManager.OptionalAuth(), recipeServer.ListRecipes)
	recipes.GET("/download_shopping_cart", authManager.RequireAuth(), recipeServer.DownloadShoppingCart)
	recipes.GET("/:id", authManager.OptionalAuth(), recipeServer.GetRecipe)
	recipes.POST("", authManager.RequireAuth(), recipeServer.CreateRecipe)
	recipes.PATCH("/:id", authManager.RequireAuth(), recipeServer.UpdateRecipe)
	recipes.DELETE("/:id", authManager.RequireAuth(), recipeServer.DeleteRecipe)
	recipes.POST("/:id/favorite", authManager.RequireAuth(), recipeServer.Favorite)
	recipes.DELETE("/:id/favorite", authManager.RequireAuth(), recipeServer.Unfavorite)
	recipes.POST("/:id/shopping_cart", authManager.RequireAuth(), recipeServer.AddToShoppingCart)
	recipes.DELETE("/:id/shopping_cart", authManager.RequireAuth(), recipeServer.RemoveFromShoppingCart)

	users := api.Group("/users")
	users.GET("", authManager.OptionalAuth(), userServer.ListUsers)
	users.POST("", userServer.AddUser)
	users.GET("/subscriptions", authManager.RequireAuth(), userServer.GetSubscriptions)
	users.GET("/:id", authManager.OptionalAuth(), userServer.GetUser)
	users.POST("/:id/subscribe", authManager.RequireAuth(), userServer.Subscribe)
	users.DELETE("/:id/subscribe", authManager.RequireAuth(), userServer.Unsubscribe)

	return engine
}
