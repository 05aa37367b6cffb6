package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/util"
)

// ClientIDHeader identifies the browser whose favorites and pantry are used.
const ClientIDHeader = "X-Client-ID"

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// RequireClientID attaches the caller's client id to the context and rejects
// requests without a valid one. WebSocket clients, which cannot set headers,
// may pass it as the client_id query parameter instead.
func RequireClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := clientIDFrom(c)
		if !clientIDPattern.MatchString(clientID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid " + ClientIDHeader + " header"})
			c.Abort()
			return
		}
		c.Set(util.ClientIDKey, clientID)
		c.Next()
	}
}

// AttachClientID attaches the client id when one is present and valid, and
// otherwise lets the request through anonymously.
func AttachClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if clientID := clientIDFrom(c); clientIDPattern.MatchString(clientID) {
			c.Set(util.ClientIDKey, clientID)
		}
		c.Next()
	}
}

func clientIDFrom(c *gin.Context) string {
	if clientID := c.GetHeader(ClientIDHeader); clientID != "" {
		return clientID
	}
	return c.Query("client_id")
}
