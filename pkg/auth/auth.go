package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.openly.dev/pointy"
	"go.uber.org/zap"

	"kitchengram.app/KitchenGram/configs"
	"kitchengram.app/KitchenGram/pkg/model"
)

const userContextKey = "kitchengram.user"

var (
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
	errNoAuthorizationHeader   = errors.New("authorization header not found")
	errBadAuthorizationFormat  = errors.New("authorization format must be Bearer {token}")
	errInvalidToken            = errors.New("invalid token")
	errMissingEmailClaim       = errors.New("unable to get user id from token")
)

// UserLoader resolves the account behind a token's email claim.
type UserLoader interface {
	GetUserFromEmail(ctx context.Context, email string) (*model.User, error)
}

type Manager struct {
	conf   *configs.Config
	repo   UserLoader
	logger *zap.Logger
}

func NewAuthManager(conf *configs.Config, repo UserLoader, logger *zap.Logger) *Manager {
	return &Manager{conf: conf, repo: repo, logger: logger}
}

// RequireAuth rejects requests without a valid bearer token.
func (a *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolveUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})

			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// OptionalAuth resolves the user when a token is present and lets anonymous
// requests through; a present but invalid token is still rejected.
func (a *Manager) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(c.GetHeader("Authorization")) == 0 {
			c.Next()

			return
		}

		user, err := a.resolveUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})

			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// SetUser attaches the resolved account to the request context.
func SetUser(c *gin.Context, user *model.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated account, or nil for anonymous.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}

	user, ok := value.(*model.User)
	if !ok {
		return nil
	}

	return user
}

func (a *Manager) resolveUser(c *gin.Context) (*model.User, error) {
	accessToken, err := a.extractTokenFromHeader(c.Request.Header)
	if err != nil {
		return nil, err
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, token.Header["alg"])
		}

		return []byte(a.conf.Auth.SecretKey), nil
	}

	token, err := jwt.ParseWithClaims(*accessToken, jwt.MapClaims{}, keyFunc)
	if err != nil {
		a.logger.Error("error parsing token", zap.Error(err))

		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	claims, found := token.Claims.(jwt.MapClaims)
	if !found || !token.Valid {
		a.logger.Error("invalid token", zap.Any("claims", claims))

		return nil, errInvalidToken
	}

	email, found := claims["email"].(string)
	if !found {
		a.logger.Error("unable to get user id from token", zap.Any("claims", claims))

		return nil, errMissingEmailClaim
	}

	user, err := a.repo.GetUserFromEmail(c.Request.Context(), email)
	if err != nil {
		a.logger.Error("error authenticating user", zap.Error(err))

		return nil, fmt.Errorf("error authenticating user: %w", err)
	}

	return user, nil
}

func (a *Manager) extractTokenFromHeader(header http.Header) (*string, error) {
	authorization := header.Get("Authorization")
	if len(authorization) == 0 {
		a.logger.Error("No authorization header found")

		return nil, errNoAuthorizationHeader
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found {
		return nil, errBadAuthorizationFormat
	}

	return pointy.String(token), nil
}
