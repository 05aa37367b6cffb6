package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/service"
)

// FavoritesHandler handles a client's favorite items.
type FavoritesHandler struct {
	Service *service.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(favoritesService *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{Service: favoritesService}
}

// ListFavorites handles GET /v1/favorites
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	favorites, err := h.Service.List(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err, "Failed to load favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavorite handles POST /v1/favorites with a MenuItem body.
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	favorites, err := h.Service.Add(c.Request.Context(), clientID, item)
	if err != nil {
		respondError(c, err, "Failed to save favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// IsFavorite handles GET /v1/favorites/:item_id
func (h *FavoritesHandler) IsFavorite(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	isFavorite, err := h.Service.Contains(c.Request.Context(), clientID, c.Param("item_id"))
	if err != nil {
		respondError(c, err, "Failed to load favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorite": isFavorite})
}

// RemoveFavorite handles DELETE /v1/favorites/:item_id
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	favorites, err := h.Service.Remove(c.Request.Context(), clientID, c.Param("item_id"))
	if err != nil {
		respondError(c, err, "Failed to remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// ToggleFavorite handles POST /v1/favorites/toggle with a MenuItem body.
func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	isFavorite, err := h.Service.Toggle(c.Request.Context(), clientID, item)
	if err != nil {
		respondError(c, err, "Failed to update favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorite": isFavorite})
}
