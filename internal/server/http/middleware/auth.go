package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dealership/internal/domain/model"
	pkgAuth "github.com/polkiloo/dealership/internal/pkg/auth"
)

const (
	// ActorContextKey is a gin context key for the authenticated caller.
	ActorContextKey = "actor"
	authCookieName  = "dealership_token"
)

// TokenParser resolves a bearer token into the calling actor.
type TokenParser interface {
	ParseToken(token string) (model.Actor, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		actor, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// StaffOnly rejects clients before staff handlers run. It must follow AuthRequired.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(ActorContextKey)
		actor, _ := val.(model.Actor)
		if !ok || actor.Role == model.RoleClient || !actor.Role.Valid() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
