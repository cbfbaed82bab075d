package middlewares

import (
	"MediCitas/utils"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// contextKey defines a custom context key type to store admin details in the context.
type contextKey string

const adminUsernameKey contextKey = "adminUsername"

// TokenAuthMiddleware guards the back-office routes. It accepts the access
// token from the auth cookie or, as a fallback, the accessToken query
// parameter.
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("accessToken")
		if err != nil || token == "" {
			token = c.DefaultQuery("accessToken", "")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Make the admin username available to handlers downstream.
		ctx := context.WithValue(c.Request.Context(), adminUsernameKey, claims.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ExtractAdminFromContext retrieves the authenticated admin username.
func ExtractAdminFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(adminUsernameKey).(string)
	if !ok {
		return "", errors.New("admin username not found in context")
	}
	return username, nil
}
