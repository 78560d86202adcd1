package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchengram.app/KitchenGram/pkg/repository"
	"kitchengram.app/KitchenGram/pkg/validation"
)

var ErrForbidden = errors.New("you do not have permission to perform this action")

// statusFromError maps the repository/validation error taxonomy onto HTTP
// statuses: pre-write validation and storage constraint violations are 400,
// duplicate memberships 409, missing rows 404.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrAlreadyMarked),
		errors.Is(err, repository.ErrAlreadyFollowing):
		return http.StatusConflict
	case errors.Is(err, repository.ErrTagNotFound),
		errors.Is(err, repository.ErrIngredientNotFound),
		errors.Is(err, repository.ErrRecipeNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrMarkNotFound),
		errors.Is(err, repository.ErrFollowNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrTagConflict),
		errors.Is(err, validation.ErrInvalidPayload),
		errors.Is(err, validation.ErrInvalidColor),
		errors.Is(err, validation.ErrCookingTimeTooLow),
		errors.Is(err, validation.ErrCookingTimeTooHigh),
		errors.Is(err, validation.ErrAmountOutOfRange),
		errors.Is(err, validation.ErrSelfFollow),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}
