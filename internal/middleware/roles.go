package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/models"
)

// RequireRole allows only the given roles past this point. It must run
// after AuthMiddleware. Services re-check the actor role themselves; this
// gate exists so unauthorized callers are rejected before request parsing.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		role, ok := value.(models.Role)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": gin.H{"code": "FORBIDDEN", "message": "Access denied"},
		})
		c.Abort()
	}
}
