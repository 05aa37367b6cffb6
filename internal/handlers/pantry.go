package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/service"
)

// PantryHandler handles a client's pantry ingredient list.
type PantryHandler struct {
	Service *service.PantryService
}

// NewPantryHandler creates a new PantryHandler.
func NewPantryHandler(pantryService *service.PantryService) *PantryHandler {
	return &PantryHandler{Service: pantryService}
}

// ReplacePantryRequest is the body of PUT /v1/pantry.
type ReplacePantryRequest struct {
	Ingredients []string `json:"ingredients"`
}

// AddPantryItemRequest is the body of POST /v1/pantry/items.
type AddPantryItemRequest struct {
	Ingredient string `json:"ingredient"`
}

// GetPantry handles GET /v1/pantry
func (h *PantryHandler) GetPantry(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	pantry, err := h.Service.Get(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err, "Failed to load pantry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": pantry})
}

// ReplacePantry handles PUT /v1/pantry
func (h *PantryHandler) ReplacePantry(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	var req ReplacePantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pantry, err := h.Service.Replace(c.Request.Context(), clientID, req.Ingredients)
	if err != nil {
		respondError(c, err, "Failed to save pantry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": pantry})
}

// AddPantryItem handles POST /v1/pantry/items
func (h *PantryHandler) AddPantryItem(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	var req AddPantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pantry, err := h.Service.Add(c.Request.Context(), clientID, req.Ingredient)
	if err != nil {
		respondError(c, err, "Failed to save pantry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": pantry})
}

// RemovePantryItem handles DELETE /v1/pantry/items/:name
func (h *PantryHandler) RemovePantryItem(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}

	pantry, err := h.Service.Remove(c.Request.Context(), clientID, c.Param("name"))
	if err != nil {
		respondError(c, err, "Failed to save pantry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": pantry})
}
