package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchengram.app/KitchenGram/configs"
	"kitchengram.app/KitchenGram/pkg/auth"
	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/repository"
	"kitchengram.app/KitchenGram/pkg/validation"
)

type recipeRepository interface { //nolint:interfacebloat // this is an acceptable interface
	CreateRecipe(ctx context.Context, recipe model.Recipe, ingredients []repository.IngredientAmount, tagIDs []uint) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe model.Recipe, ingredients []repository.IngredientAmount, tagIDs []uint) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID uint) error
	GetRecipeByID(ctx context.Context, recipeID uint) (*model.Recipe, error)
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]*model.Recipe, error)
	GetTagsByIDs(ctx context.Context, tagIDs []uint) ([]model.Tag, error)
	GetIngredientsByIDs(ctx context.Context, ingredientIDs []uint) ([]model.Ingredient, error)
	AddMark(ctx context.Context, kind model.MarkKind, userID uint, recipeID uint) error
	RemoveMark(ctx context.Context, kind model.MarkKind, userID uint, recipeID uint) error
	HasMark(ctx context.Context, kind model.MarkKind, userID uint, recipeID uint) (bool, error)
	ShoppingList(ctx context.Context, userID uint) ([]model.ShoppingListItem, error)
	IsSubscribed(ctx context.Context, userID uint, authorID uint) (bool, error)
}

type RecipeServer struct {
	repository recipeRepository
	conf       *configs.Config
	logger     *zap.Logger
}

func NewRecipeServer(repository recipeRepository, conf *configs.Config, logger *zap.Logger) *RecipeServer {
	return &RecipeServer{repository: repository, conf: conf, logger: logger}
}

type RecipeIngredientRequest struct {
	ID     uint `json:"id"     validate:"required"`
	Amount int  `json:"amount" validate:"required,min=1,max=100"`
}

type RecipeRequest struct {
	Name        string                    `json:"name"         validate:"required"`
	Image       string                    `json:"image"        validate:"required"`
	Text        string                    `json:"text"         validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"  validate:"required,min=1,dive"`
	Tags        []uint                    `json:"tags"         validate:"required,min=1"`
}

func (r *RecipeServer) ListRecipes(c *gin.Context) {
	filter, err := r.filterFromQuery(c)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	recipes, err := r.repository.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	user := auth.CurrentUser(c)
	response := make([]Recipe, 0, len(recipes))

	for _, recipe := range recipes {
		converted, err := r.convertRecipe(c.Request.Context(), recipe, user)
		if err != nil {
			abortWithError(c, r.logger, err)

			return
		}

		response = append(response, converted)
	}

	c.JSON(http.StatusOK, response)
}

func (r *RecipeServer) GetRecipe(c *gin.Context) {
	recipeID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	recipe, err := r.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	response, err := r.convertRecipe(c.Request.Context(), recipe, auth.CurrentUser(c))
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	c.JSON(http.StatusOK, response)
}

func (r *RecipeServer) CreateRecipe(c *gin.Context) {
	user := auth.CurrentUser(c)

	request, ingredients, err := r.parseRecipeRequest(c)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	recipe := model.Recipe{
		AuthorID:    user.ID,
		Name:        request.Name,
		Image:       request.Image,
		Text:        request.Text,
		CookingTime: request.CookingTime,
	}

	created, err := r.repository.CreateRecipe(c.Request.Context(), recipe, ingredients, request.Tags)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	full, err := r.repository.GetRecipeByID(c.Request.Context(), created.ID)
	if err != nil {
		r.logger.Error("error loading recipe after saving", zap.Uint("id", created.ID), zap.Error(err))
		full = created
	}

	response, err := r.convertRecipe(c.Request.Context(), full, user)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	c.JSON(http.StatusCreated, response)
}

func (r *RecipeServer) UpdateRecipe(c *gin.Context) {
	recipeID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	existing, err := r.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	user := auth.CurrentUser(c)
	if err := requireAuthorOrAdmin(user, existing); err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	request, ingredients, err := r.parseRecipeRequest(c)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	updated := model.Recipe{
		Model:       gorm.Model{ID: recipeID},
		Name:        request.Name,
		Image:       request.Image,
		Text:        request.Text,
		CookingTime: request.CookingTime,
	}

	if _, err := r.repository.UpdateRecipe(c.Request.Context(), updated, ingredients, request.Tags); err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	full, err := r.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	response, err := r.convertRecipe(c.Request.Context(), full, user)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	c.JSON(http.StatusOK, response)
}

func (r *RecipeServer) DeleteRecipe(c *gin.Context) {
	recipeID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	existing, err := r.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	if err := requireAuthorOrAdmin(auth.CurrentUser(c), existing); err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	if err := r.repository.DeleteRecipe(c.Request.Context(), recipeID); err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (r *RecipeServer) Favorite(c *gin.Context) {
	r.addMark(c, model.KindFavorite)
}

func (r *RecipeServer) Unfavorite(c *gin.Context) {
	r.removeMark(c, model.KindFavorite)
}

func (r *RecipeServer) AddToShoppingCart(c *gin.Context) {
	r.addMark(c, model.KindShoppingCart)
}

func (r *RecipeServer) RemoveFromShoppingCart(c *gin.Context) {
	r.removeMark(c, model.KindShoppingCart)
}

// DownloadShoppingCart renders the aggregated shopping list as a plain text
// attachment, one "{name} - {unit} | {total}" line per ingredient group.
func (r *RecipeServer) DownloadShoppingCart(c *gin.Context) {
	user := auth.CurrentUser(c)

	items, err := r.repository.ShoppingList(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s - %s | %d", item.Name, item.MeasurementUnit, item.Total))
	}

	c.Header("Content-Disposition", "attachment; filename=shopping_cart_list.txt")
	c.Data(http.StatusOK, "text/plain; charset=UTF-8", []byte(strings.Join(lines, "\n")))
}

func (r *RecipeServer) addMark(c *gin.Context, kind model.MarkKind) {
	recipeID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	recipe, err := r.repository.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	user := auth.CurrentUser(c)

	if err := r.repository.AddMark(c.Request.Context(), kind, user.ID, recipeID); err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	c.JSON(http.StatusCreated, RecipeMinifiedFromModel(recipe))
}

func (r *RecipeServer) removeMark(c *gin.Context, kind model.MarkKind) {
	recipeID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	user := auth.CurrentUser(c)

	if err := r.repository.RemoveMark(c.Request.Context(), kind, user.ID, recipeID); err != nil {
		abortWithError(c, r.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// parseRecipeRequest binds, runs the declarative rules, applies the
// configured cooking time ceiling and checks every referenced tag and
// ingredient exists, all before anything touches the store.
func (r *RecipeServer) parseRecipeRequest(c *gin.Context) (*RecipeRequest, []repository.IngredientAmount, error) {
	var request RecipeRequest
	if err := bindAndValidate(c, &request); err != nil {
		return nil, nil, err
	}

	if err := validation.CookingTime(request.CookingTime, r.conf.Recipes.MaxCookingTime); err != nil {
		return nil, nil, err
	}

	if _, err := r.repository.GetTagsByIDs(c.Request.Context(), request.Tags); err != nil {
		return nil, nil, err
	}

	ingredientIDs := make([]uint, 0, len(request.Ingredients))
	ingredients := make([]repository.IngredientAmount, 0, len(request.Ingredients))

	for _, item := range request.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
		ingredients = append(ingredients, repository.IngredientAmount{IngredientID: item.ID, Amount: item.Amount})
	}

	if _, err := r.repository.GetIngredientsByIDs(c.Request.Context(), ingredientIDs); err != nil {
		return nil, nil, err
	}

	return &request, ingredients, nil
}

func (r *RecipeServer) convertRecipe(ctx context.Context, recipe *model.Recipe, user *model.User) (Recipe, error) {
	if user == nil {
		return RecipeFromModel(recipe, false, false, false), nil
	}

	favorited, err := r.repository.HasMark(ctx, model.KindFavorite, user.ID, recipe.ID)
	if err != nil {
		return Recipe{}, err
	}

	inCart, err := r.repository.HasMark(ctx, model.KindShoppingCart, user.ID, recipe.ID)
	if err != nil {
		return Recipe{}, err
	}

	subscribed, err := r.repository.IsSubscribed(ctx, user.ID, recipe.AuthorID)
	if err != nil {
		return Recipe{}, err
	}

	return RecipeFromModel(recipe, subscribed, favorited, inCart), nil
}

func (r *RecipeServer) filterFromQuery(c *gin.Context) (repository.RecipeFilter, error) {
	filter := repository.RecipeFilter{TagSlugs: c.QueryArray("tags")}

	if author := c.Query("author"); author != "" {
		authorID, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			return filter, validation.ErrInvalidPayload
		}

		filter.AuthorID = uint(authorID)
	}

	if limit := c.Query("limit"); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil || value < 0 {
			return filter, validation.ErrInvalidPayload
		}

		filter.Limit = value
	}

	if offset := c.Query("offset"); offset != "" {
		value, err := strconv.Atoi(offset)
		if err != nil || value < 0 {
			return filter, validation.ErrInvalidPayload
		}

		filter.Offset = value
	}

	// The boolean filters are scoped to the requesting identity and are
	// no-ops for anonymous readers.
	if user := auth.CurrentUser(c); user != nil {
		if truthy(c.Query("is_favorited")) {
			filter.FavoritedBy = user.ID
		}

		if truthy(c.Query("is_in_shopping_cart")) {
			filter.InCartOf = user.ID
		}
	}

	return filter, nil
}

func truthy(value string) bool {
	return value == "1" || strings.EqualFold(value, "true")
}

func requireAuthorOrAdmin(user *model.User, recipe *model.Recipe) error {
	if user == nil {
		return ErrForbidden
	}

	if user.ID != recipe.AuthorID && !user.IsAdmin {
		return ErrForbidden
	}

	return nil
}
