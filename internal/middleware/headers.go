package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the admin token on admin requests.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken checks the X-Admin-Token header against the configured token.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !TokenMatches(c.GetHeader(AdminTokenHeader), token) {
			// If the header is absent or the value is incorrect, reject the request
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// TokenMatches compares a presented token with the expected one in constant
// time. An empty expected token never matches.
func TokenMatches(presented, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
