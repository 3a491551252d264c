package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
)

// RequireRole creates a middleware that rejects callers whose access token does not
// carry the required role. Must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "message": "Unauthorized"})
			return
		}

		if domain.Role(claims.Role) != role {
			GetLoggerFromCtx(c.Request.Context()).Warn("Caller lacks required role")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"statusCode": http.StatusForbidden, "message": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
