package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/validation"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagConflict = errors.New("tag value already in use")
)

// CreateTag validates the color, normalizes it to lowercase and rejects any
// case-insensitive collision on name, color or slug before writing.
func (r *Repository) CreateTag(ctx context.Context, tag model.Tag) (*model.Tag, error) {
	tag.Color = strings.ToLower(tag.Color)

	if err := validation.HexColor(tag.Color); err != nil {
		return nil, err
	}

	if err := r.checkTagCollision(ctx, &tag, 0); err != nil {
		return nil, err
	}

	if result := r.DB.WithContext(ctx).Create(&tag); result.Error != nil {
		return nil, result.Error
	}

	return &tag, nil
}

// UpdateTag applies the same checks as CreateTag, excluding the tag itself
// from the collision scan.
func (r *Repository) UpdateTag(ctx context.Context, tag model.Tag) (*model.Tag, error) {
	tag.Color = strings.ToLower(tag.Color)

	if err := validation.HexColor(tag.Color); err != nil {
		return nil, err
	}

	if err := r.checkTagCollision(ctx, &tag, tag.ID); err != nil {
		return nil, err
	}

	result := r.DB.WithContext(ctx).Model(&model.Tag{Model: gorm.Model{ID: tag.ID}}).
		Select("name", "color", "slug").
		Updates(map[string]interface{}{"name": tag.Name, "color": tag.Color, "slug": tag.Slug})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrTagNotFound, tag.ID)
	}

	return &tag, nil
}

func (r *Repository) checkTagCollision(ctx context.Context, tag *model.Tag, excludeID uint) error {
	checks := []struct {
		column string
		value  string
	}{
		{"name", tag.Name},
		{"color", tag.Color},
		{"slug", tag.Slug},
	}

	for _, check := range checks {
		var count int64

		query := r.DB.WithContext(ctx).Model(&model.Tag{}).
			Where(fmt.Sprintf("lower(%s) = lower(?)", check.column), check.value)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}

		if result := query.Count(&count); result.Error != nil {
			return result.Error
		}

		if count > 0 {
			return fmt.Errorf("%w: %s %q", ErrTagConflict, check.column, check.value)
		}
	}

	return nil
}

func (r *Repository) GetTagByID(ctx context.Context, tagID uint) (*model.Tag, error) {
	var tag model.Tag

	result := r.DB.WithContext(ctx).First(&tag, tagID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTagNotFound, tagID)
		}

		return nil, result.Error
	}

	return &tag, nil
}

// GetTagsByIDs requires every requested id to exist.
func (r *Repository) GetTagsByIDs(ctx context.Context, tagIDs []uint) ([]model.Tag, error) {
	var tags []model.Tag

	if result := r.DB.WithContext(ctx).Where("id IN ?", tagIDs).Find(&tags); result.Error != nil {
		return nil, result.Error
	}

	found := make(map[uint]bool, len(tags))
	for _, tag := range tags {
		found[tag.ID] = true
	}

	for _, tagID := range tagIDs {
		if !found[tagID] {
			return nil, fmt.Errorf("%w: id %d", ErrTagNotFound, tagID)
		}
	}

	return tags, nil
}

func (r *Repository) ListTags(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag

	if result := r.DB.WithContext(ctx).Order("name").Find(&tags); result.Error != nil {
		return nil, result.Error
	}

	return tags, nil
}
