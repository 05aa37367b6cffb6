package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/service"
	"github.com/windoze95/recipefinder-api/internal/util"
	"go.uber.org/zap"
)

// respondError maps a service error onto a status code. Not-found and
// validation errors carry their own message; anything else is logged and
// reported with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case repository.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.FromGin(c).Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// requireClientID returns the client id set by the client id middleware,
// writing a 500 when it is missing.
func requireClientID(c *gin.Context) (string, bool) {
	clientID, err := util.GetClientIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", false
	}
	return clientID, true
}

// parseSearchParams reads the smart search query string.
func parseSearchParams(c *gin.Context) (models.SearchParams, error) {
	params := models.SearchParams{
		Query:       strings.TrimSpace(c.Query("q")),
		Ingredients: parseCommaList(c.Query("ingredients")),
		Cuisine:     strings.TrimSpace(c.Query("cuisine")),
		Diet:        strings.TrimSpace(c.Query("diet")),
	}

	if raw := c.Query("cookTime"); raw != "" {
		cookTime, err := strconv.Atoi(raw)
		if err != nil || cookTime < 0 {
			return params, fmt.Errorf("cookTime must be a non-negative integer")
		}
		params.CookTime = cookTime
	}

	if raw := c.Query("videoOnly"); raw != "" {
		videoOnly, err := strconv.ParseBool(raw)
		if err != nil {
			return params, fmt.Errorf("videoOnly must be true or false")
		}
		params.VideoOnly = videoOnly
	}

	if raw := c.Query("type"); raw != "" && raw != "all" {
		itemType, ok := models.ParseItemType(raw)
		if !ok {
			return params, fmt.Errorf("type must be %q or %q", models.ItemTypeStandardDish, models.ItemTypeCocktail)
		}
		params.Type = itemType
	}

	if raw := c.Query("includeCocktails"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return params, fmt.Errorf("includeCocktails must be true or false")
		}
		params.IncludeCocktails = &include
	}

	return params, nil
}

// parseCommaList splits a comma-separated query value into trimmed,
// non-empty parts. It returns nil for an empty value.
func parseCommaList(raw string) []string {
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// parseCountParam parses an optional positive count, returning def when the
// value is empty.
func parseCountParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count <= 0 {
		return 0, fmt.Errorf("count must be a positive integer")
	}
	return count, nil
}
