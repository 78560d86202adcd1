package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchengram.app/KitchenGram/pkg/auth"
	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/validation"
)

type tagRepository interface {
	CreateTag(ctx context.Context, tag model.Tag) (*model.Tag, error)
	UpdateTag(ctx context.Context, tag model.Tag) (*model.Tag, error)
	GetTagByID(ctx context.Context, tagID uint) (*model.Tag, error)
	ListTags(ctx context.Context) ([]*model.Tag, error)
}

type TagServer struct {
	repository tagRepository
	logger     *zap.Logger
}

func NewTagServer(repository tagRepository, logger *zap.Logger) *TagServer {
	return &TagServer{repository: repository, logger: logger}
}

type TagRequest struct {
	Name  string `json:"name"  validate:"required"`
	Color string `json:"color" validate:"required,hexcolor3or6"`
	Slug  string `json:"slug"  validate:"required"`
}

func (t *TagServer) ListTags(c *gin.Context) {
	tags, err := t.repository.ListTags(c.Request.Context())
	if err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	response := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		response = append(response, TagFromModel(tag))
	}

	c.JSON(http.StatusOK, response)
}

func (t *TagServer) GetTag(c *gin.Context) {
	tagID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	tag, err := t.repository.GetTagByID(c.Request.Context(), tagID)
	if err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	c.JSON(http.StatusOK, TagFromModel(tag))
}

// CreateTag is admin-only; tags are reference data.
func (t *TagServer) CreateTag(c *gin.Context) {
	if err := requireAdmin(c); err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	var request TagRequest
	if err := bindAndValidate(c, &request); err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	tag, err := t.repository.CreateTag(c.Request.Context(), model.Tag{
		Name:  request.Name,
		Color: request.Color,
		Slug:  request.Slug,
	})
	if err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	c.JSON(http.StatusCreated, TagFromModel(tag))
}

func (t *TagServer) UpdateTag(c *gin.Context) {
	if err := requireAdmin(c); err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	tagID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	var request TagRequest
	if err := bindAndValidate(c, &request); err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	tag, err := t.repository.UpdateTag(c.Request.Context(), model.Tag{
		Model: gorm.Model{ID: tagID},
		Name:  request.Name,
		Color: request.Color,
		Slug:  request.Slug,
	})
	if err != nil {
		abortWithError(c, t.logger, err)

		return
	}

	c.JSON(http.StatusOK, TagFromModel(tag))
}

func requireAdmin(c *gin.Context) error {
	user := auth.CurrentUser(c)
	if user == nil || !user.IsAdmin {
		return ErrForbidden
	}

	return nil
}

func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, validation.ErrInvalidPayload
	}

	return uint(value), nil
}

func bindAndValidate(c *gin.Context, request any) error {
	if err := c.ShouldBindJSON(request); err != nil {
		return validation.ErrInvalidPayload
	}

	return validation.Struct(request)
}
