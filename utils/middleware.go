package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"strings"
)

const UserIDKey = "user_id"

// OwnerMiddleware admits requests carrying a valid access token for role.
func OwnerMiddleware(tokens *Tokens, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := ExtractClaims(tokens, authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			c.Abort()
			return
		}

		if claims.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden: owner access required"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func ExtractClaims(tokens *Tokens, authHeader string) (Claims, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Claims{}, errors.New("invalid token format")
	}
	return tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
}

// UserID returns the id OwnerMiddleware stored on the context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
