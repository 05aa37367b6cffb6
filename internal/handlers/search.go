package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/service"
	"github.com/windoze95/recipefinder-api/internal/util"
	"go.uber.org/zap"
)

// SearchHandler handles smart search requests.
type SearchHandler struct {
	Service *service.SearchService
	Pantry  *service.PantryService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService, pantryService *service.PantryService) *SearchHandler {
	return &SearchHandler{
		Service: searchService,
		Pantry:  pantryService,
	}
}

// Search handles GET /v1/search?q=...&ingredients=...&cuisine=...
func (h *SearchHandler) Search(c *gin.Context) {
	params, err := parseSearchParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.Service.Search(c.Request.Context(), params, h.pantryFor(c))

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// pantryFor returns the pantry to score matches against. An explicit pantry
// query parameter wins; otherwise the caller's stored pantry is used when a
// client id was sent.
func (h *SearchHandler) pantryFor(c *gin.Context) []string {
	if pantry := parseCommaList(c.Query("pantry")); len(pantry) > 0 {
		return pantry
	}
	if h.Pantry == nil {
		return nil
	}
	clientID, err := util.GetClientIDFromContext(c)
	if err != nil {
		return nil
	}
	pantry, err := h.Pantry.Get(c.Request.Context(), clientID)
	if err != nil {
		logger.FromGin(c).Warn("failed to load pantry for search", zap.String("client_id", clientID), zap.Error(err))
		return nil
	}
	return pantry
}
