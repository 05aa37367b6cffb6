package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/service"
)

// HealthHandler reports upstream source health.
type HealthHandler struct {
	Service *service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{Service: healthService}
}

// Health handles GET /v1/health. The status is always 200; callers read ok
// from the body.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Check(c.Request.Context()))
}
