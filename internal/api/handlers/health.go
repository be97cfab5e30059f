package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pickcard/rewards-backend/internal/api/dto"
)

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Cards:  len(h.catalog.Cards()),
	})
}
