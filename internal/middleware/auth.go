package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/macro-tracker/backend/internal/types"
)

const (
	// UserIDKey holds the authenticated user's uuid.UUID
	UserIDKey = "user_id"
	// ClaimsKey holds the validated *types.TokenClaims
	ClaimsKey = "claims"
)

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates bearer tokens. Browsers
// cannot set headers on websocket upgrades, so an access_token query
// parameter is accepted for those.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: err.Error()})
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		// Store user info in context
		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if websocketUpgrade(c.Request) {
			if token := c.Query("access_token"); token != "" {
				return token, nil
			}
		}
		return "", errors.New("missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

func websocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// UserID returns the authenticated user's ID set by AuthMiddleware
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Claims returns the token claims set by AuthMiddleware
func Claims(c *gin.Context) (*types.TokenClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*types.TokenClaims)
	return claims, ok
}
