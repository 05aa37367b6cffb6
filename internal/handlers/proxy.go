package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"go.uber.org/zap"
)

// proxyTimeout bounds one upstream passthrough request.
const proxyTimeout = 8 * time.Second

// RawFetcher returns an upstream response body for an ingredient query.
type RawFetcher interface {
	FetchRaw(ctx context.Context, ingredients string) ([]byte, error)
}

// ProxyHandler passes RecipePuppy ingredient queries through to the upstream API.
type ProxyHandler struct {
	Fetcher RawFetcher
}

// NewProxyHandler creates a new ProxyHandler.
func NewProxyHandler(fetcher RawFetcher) *ProxyHandler {
	return &ProxyHandler{Fetcher: fetcher}
}

// RecipePuppy handles GET /v1/proxy/recipepuppy?i=...
func (h *ProxyHandler) RecipePuppy(c *gin.Context) {
	ingredients := strings.TrimSpace(c.Query("i"))
	if ingredients == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'i' is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), proxyTimeout)
	defer cancel()

	body, err := h.Fetcher.FetchRaw(ctx, ingredients)
	if err != nil {
		logger.FromGin(c).Warn("recipepuppy passthrough failed", zap.String("ingredients", ingredients), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch from RecipePuppy API"})
		return
	}

	c.Header("Cache-Control", "s-maxage=60, stale-while-revalidate=300")
	c.Data(http.StatusOK, "application/json", body)
}
