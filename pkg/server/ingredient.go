package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchengram.app/KitchenGram/pkg/model"
)

type ingredientRepository interface {
	GetIngredientByID(ctx context.Context, ingredientID uint) (*model.Ingredient, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]*model.Ingredient, error)
}

type IngredientServer struct {
	repository ingredientRepository
	logger     *zap.Logger
}

func NewIngredientServer(repository ingredientRepository, logger *zap.Logger) *IngredientServer {
	return &IngredientServer{repository: repository, logger: logger}
}

// ListIngredients supports a case-insensitive name prefix filter via ?name=.
func (i *IngredientServer) ListIngredients(c *gin.Context) {
	ingredients, err := i.repository.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		abortWithError(c, i.logger, err)

		return
	}

	response := make([]Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, IngredientFromModel(ingredient))
	}

	c.JSON(http.StatusOK, response)
}

func (i *IngredientServer) GetIngredient(c *gin.Context) {
	ingredientID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, i.logger, err)

		return
	}

	ingredient, err := i.repository.GetIngredientByID(c.Request.Context(), ingredientID)
	if err != nil {
		abortWithError(c, i.logger, err)

		return
	}

	c.JSON(http.StatusOK, IngredientFromModel(ingredient))
}
