package middleware

import (
	"errors"
	"strings"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/jwt"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/coreinspect/core/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID    = "user_id"
	ContextKeySuperuser = "is_superuser"
)

// Auth returns a middleware that enforces JWT authentication and checks the
// account is still active.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateToken(c, db)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeySuperuser, claims.IsSuperuser)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but never blocks.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := validateToken(c, db); err == nil {
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeySuperuser, claims.IsSuperuser)
		}
		c.Next()
	}
}

func validateToken(c *gin.Context, db *gorm.DB) (*jwt.Claims, error) {
	token := extractToken(c)
	if token == "" {
		return nil, errors.New("token is required")
	}
	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := repository.Get[models.UserModel](c.Request.Context(), db,
		repository.Criteria{"id": claims.UserID}, false)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, errors.New("account inactive or removed")
	}
	return claims, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// IsAuthenticated reports whether the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
