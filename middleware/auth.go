package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/niteen-codes/go-eventhub/utils"
)

// Auth verifies the Authorization: Bearer <token> header and stores the
// token subject as "userID" in the gin context. The subject is either a
// user id hex string or the literal guest marker.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		subject, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", subject)
		c.Next()
	}
}

// RequireUser rejects guest sessions. Used on routes that need a persisted
// identity, such as event creation.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if uid.(string) == utils.GuestSubject {
			c.JSON(http.StatusForbidden, gin.H{"error": "guests cannot perform this action"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated subject set by Auth, or "" if the route
// ran without authentication.
func UserID(c *gin.Context) string {
	uid, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return uid.(string)
}
