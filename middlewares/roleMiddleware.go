package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route to callers holding one of the given roles.
// Runs after AuthMiddleware, which sets user_role from the token claims.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		role, _ := roleVal.(string)
		if !exists || role == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not present in token"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this action"})
		c.Abort()
	}
}
