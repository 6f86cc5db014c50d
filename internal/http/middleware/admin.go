package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdminToken guards the maintenance endpoints with a shared secret.
// With no token configured the routes are disabled outright.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": gin.H{"message": "not found", "code": "not_found"},
			})
			return
		}
		supplied := c.GetHeader("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "invalid admin token", "code": "unauthorized"},
			})
			return
		}
		c.Next()
	}
}
