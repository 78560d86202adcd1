package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/validation"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFollowing = errors.New("already subscribed to this author")
	ErrFollowNotFound   = errors.New("subscription not found")
)

// Subscription is one entry of a user's subscription listing: the author,
// their most recent recipes and the total recipe count.
type Subscription struct {
	Author       model.User
	Recipes      []*model.Recipe
	RecipesCount int64
}

func (r *Repository) AddUser(ctx context.Context, user model.User) (*model.User, error) {
	user.UUID = uuid.New()

	if result := r.DB.WithContext(ctx).Create(&user); result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
		}

		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).Where("uuid = ?", userUUID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: uuid %s", ErrUserNotFound, userUUID)
		}

		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) GetUserFromEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: email %s", ErrUserNotFound, email)
		}

		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context, limit int, offset int) ([]*model.User, error) {
	var users []*model.User

	query := r.DB.WithContext(ctx).Order("id")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	if result := query.Find(&users); result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (r *Repository) GetUserByName(ctx context.Context, username string) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: username %s", ErrUserNotFound, username)
		}

		return nil, result.Error
	}

	return &user, nil
}

// Subscribe creates the follow edge. The self-follow check runs before any
// write; a duplicate edge loses to the unique index.
func (r *Repository) Subscribe(ctx context.Context, userID uint, authorID uint) error {
	if err := validation.SelfFollow(userID, authorID); err != nil {
		return err
	}

	follow := model.Follow{UserID: userID, AuthorID: authorID}

	if result := r.DB.WithContext(ctx).Create(&follow); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: author %d", ErrAlreadyFollowing, authorID)
		}

		return result.Error
	}

	return nil
}

func (r *Repository) Unsubscribe(ctx context.Context, userID uint, authorID uint) error {
	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: author %d", ErrFollowNotFound, authorID)
	}

	return nil
}

func (r *Repository) IsSubscribed(ctx context.Context, userID uint, authorID uint) (bool, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// GetSubscriptions lists the authors the user follows, each with their most
// recent recipes (capped by recipesLimit when positive) and recipe count.
func (r *Repository) GetSubscriptions(ctx context.Context, userID uint, recipesLimit int) ([]Subscription, error) {
	var follows []*model.Follow

	result := r.DB.WithContext(ctx).
		Joins("Author").
		Where("follows.user_id = ?", userID).
		Find(&follows)
	if result.Error != nil {
		return nil, result.Error
	}

	subscriptions := make([]Subscription, 0, len(follows))

	for _, follow := range follows {
		recipes, err := r.ListRecipes(ctx, RecipeFilter{AuthorID: follow.AuthorID, Limit: recipesLimit})
		if err != nil {
			return nil, err
		}

		count, err := r.CountRecipesByAuthor(ctx, follow.AuthorID)
		if err != nil {
			return nil, err
		}

		subscriptions = append(subscriptions, Subscription{
			Author:       follow.Author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}

	return subscriptions, nil
}
