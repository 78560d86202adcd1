package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchengram.app/KitchenGram/pkg/auth"
	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/repository"
	"kitchengram.app/KitchenGram/pkg/validation"
)

type userRepository interface {
	AddUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]*model.User, error)
	Subscribe(ctx context.Context, userID uint, authorID uint) error
	Unsubscribe(ctx context.Context, userID uint, authorID uint) error
	IsSubscribed(ctx context.Context, userID uint, authorID uint) (bool, error)
	GetSubscriptions(ctx context.Context, userID uint, recipesLimit int) ([]repository.Subscription, error)
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]*model.Recipe, error)
	CountRecipesByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type UserServer struct {
	repository userRepository
	logger     *zap.Logger
}

func NewUserServer(repository userRepository, logger *zap.Logger) *UserServer {
	return &UserServer{repository: repository, logger: logger}
}

type UserRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Username  string `json:"username"   validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
}

// AddUser registers an account record. Credentials and token issuance live
// with the external identity provider.
func (u *UserServer) AddUser(c *gin.Context) {
	var request UserRequest
	if err := bindAndValidate(c, &request); err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	user, err := u.repository.AddUser(c.Request.Context(), model.User{
		Email:     request.Email,
		Username:  request.Username,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	})
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	c.JSON(http.StatusCreated, UserFromModel(user, false))
}

func (u *UserServer) ListUsers(c *gin.Context) {
	limit, err := boundedQueryInt(c, "limit")
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	offset, err := boundedQueryInt(c, "offset")
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	users, err := u.repository.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	current := auth.CurrentUser(c)
	response := make([]User, 0, len(users))

	for _, user := range users {
		subscribed := false
		if current != nil {
			subscribed, err = u.repository.IsSubscribed(c.Request.Context(), current.ID, user.ID)
			if err != nil {
				abortWithError(c, u.logger, err)

				return
			}
		}

		response = append(response, UserFromModel(user, subscribed))
	}

	c.JSON(http.StatusOK, response)
}

func (u *UserServer) GetUser(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	user, err := u.repository.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	subscribed := false
	if current := auth.CurrentUser(c); current != nil {
		subscribed, err = u.repository.IsSubscribed(c.Request.Context(), current.ID, user.ID)
		if err != nil {
			abortWithError(c, u.logger, err)

			return
		}
	}

	c.JSON(http.StatusOK, UserFromModel(user, subscribed))
}

func (u *UserServer) Subscribe(c *gin.Context) {
	authorID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	author, err := u.repository.GetUserByID(c.Request.Context(), authorID)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	user := auth.CurrentUser(c)

	if err := u.repository.Subscribe(c.Request.Context(), user.ID, author.ID); err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	recipesLimit, err := recipesLimitFromQuery(c)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	entry, err := u.subscriptionEntry(c.Request.Context(), author, recipesLimit)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (u *UserServer) Unsubscribe(c *gin.Context) {
	authorID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	user := auth.CurrentUser(c)

	if err := u.repository.Unsubscribe(c.Request.Context(), user.ID, authorID); err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (u *UserServer) GetSubscriptions(c *gin.Context) {
	recipesLimit, err := recipesLimitFromQuery(c)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	user := auth.CurrentUser(c)

	subscriptions, err := u.repository.GetSubscriptions(c.Request.Context(), user.ID, recipesLimit)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	response := make([]Subscription, 0, len(subscriptions))
	for index := range subscriptions {
		response = append(response, SubscriptionFromModel(&subscriptions[index]))
	}

	c.JSON(http.StatusOK, response)
}

func (u *UserServer) subscriptionEntry(ctx context.Context, author *model.User, recipesLimit int) (Subscription, error) {
	recipes, err := u.repository.ListRecipes(ctx, repository.RecipeFilter{AuthorID: author.ID, Limit: recipesLimit})
	if err != nil {
		return Subscription{}, err
	}

	count, err := u.repository.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return Subscription{}, err
	}

	return SubscriptionFromModel(&repository.Subscription{
		Author:       *author,
		Recipes:      recipes,
		RecipesCount: count,
	}), nil
}

func recipesLimitFromQuery(c *gin.Context) (int, error) {
	return boundedQueryInt(c, "recipes_limit")
}

// boundedQueryInt parses an optional non-negative integer query parameter.
func boundedQueryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, validation.ErrInvalidPayload
	}

	return value, nil
}
