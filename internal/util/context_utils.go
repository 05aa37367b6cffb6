package util

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ClientIDKey is the gin context key holding the caller's client id.
const ClientIDKey = "client_id"

// GetClientIDFromContext gets the client id from the context.
func GetClientIDFromContext(c *gin.Context) (string, error) {
	val, ok := c.Get(ClientIDKey)
	if !ok {
		return "", errors.New("no client ID information")
	}

	clientID, ok := val.(string)
	if !ok || clientID == "" {
		return "", errors.New("client ID information is of the wrong type")
	}

	return clientID, nil
}
