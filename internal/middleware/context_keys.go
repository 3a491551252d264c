package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/hardiknj/auth_session_app/internal/utils"
)

// claimsKey is the key used to store the authenticated user's access token claims.
const claimsKey = contextKey("accessClaims")

// GetClaimsFromContext retrieves the authenticated caller's access token claims.
// It returns the claims and a boolean indicating if they were found.
func GetClaimsFromContext(c *gin.Context) (*utils.AccessTokenClaims, bool) {
	claims, ok := c.Request.Context().Value(claimsKey).(*utils.AccessTokenClaims)
	return claims, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(c)
	if !ok {
		return "", false
	}
	return claims.Subject, true
}

func withClaims(ctx context.Context, claims *utils.AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
