package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/middleware"
	"github.com/windoze95/recipefinder-api/internal/service"
	"go.uber.org/zap"
)

// AdminHandler handles admin authentication and local recipe management.
type AdminHandler struct {
	Token   string
	Service *service.LocalRecipeService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(token string, localRecipeService *service.LocalRecipeService) *AdminHandler {
	return &AdminHandler{
		Token:   token,
		Service: localRecipeService,
	}
}

// AdminAuthRequest is the body of POST /v1/admin/auth.
type AdminAuthRequest struct {
	Token string `json:"token"`
}

// Authenticate handles POST /v1/admin/auth
func (h *AdminHandler) Authenticate(c *gin.Context) {
	var req AdminAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !middleware.TokenMatches(req.Token, h.Token) {
		logger.FromGin(c).Warn("admin authentication failed", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// ListRecipes handles GET /v1/admin/recipes
func (h *AdminHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// SubmitRecipe handles POST /v1/admin/recipes
func (h *AdminHandler) SubmitRecipe(c *gin.Context) {
	var input service.LocalRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	recipe, err := h.Service.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to save recipe")
		return
	}

	logger.FromGin(c).Info("local recipe submitted", zap.String("item_id", recipe.ID))
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}
