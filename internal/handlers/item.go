package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/service"
)

// ItemHandler serves single items, the popular feed and cocktail listings.
type ItemHandler struct {
	Service *service.CatalogService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(catalogService *service.CatalogService) *ItemHandler {
	return &ItemHandler{Service: catalogService}
}

// GetItem handles GET /v1/items/:item_id
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID := strings.TrimSpace(c.Param("item_id"))
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID is required"})
		return
	}

	item, err := h.Service.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, err, "Failed to load item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Popular handles GET /v1/items/popular
func (h *ItemHandler) Popular(c *gin.Context) {
	results := h.Service.Popular(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// ListCocktails handles GET /v1/cocktails?q=...&count=5
func (h *ItemHandler) ListCocktails(c *gin.Context) {
	count, err := parseCountParam(c.Query("count"), service.DefaultCocktailCount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.Service.ListCocktails(c.Request.Context(), strings.TrimSpace(c.Query("q")), count)
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
