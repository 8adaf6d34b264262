package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/backend/internal/types"
)

const claimsKey = "claims"

// TokenValidator is an interface for validating bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that requires a valid bearer token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, validator)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware sets claims when a valid token is present and
// continues anonymously otherwise. Public reads use it so private
// recipes become visible to their author.
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, errMsg := claimsFromHeader(c, validator); errMsg == "" {
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

// AdminMiddleware requires an authenticated administrator. It must run
// after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "administrator privilege required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims returns the validated claims for the request, or nil for
// anonymous requests.
func GetClaims(c *gin.Context) *types.TokenClaims {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*types.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

func claimsFromHeader(c *gin.Context, validator TokenValidator) (*types.TokenClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, "invalid or expired token"
	}

	return claims, ""
}
