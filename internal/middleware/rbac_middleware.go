package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Enforcer is a local interface; anything with casbin's Enforce
// signature fits.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// RBACAuthorize checks the caller's role against the policy for
// one resource/action pair. Runs after AuthMiddleware.
func RBACAuthorize(enforcer Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role.(string), resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
