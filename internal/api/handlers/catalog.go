package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pickcard/rewards-backend/internal/api/dto"
)

// ListCards handles GET /api/cards.
func (h *Handler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cards": h.catalog.Cards()})
}

// GetCard handles GET /api/cards/:id.
func (h *Handler) GetCard(c *gin.Context) {
	id := c.Param("id")
	card, ok := h.catalog.Card(id)
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("card "+id))
		return
	}
	c.JSON(http.StatusOK, card)
}

// ListMerchants handles GET /api/merchants.
func (h *Handler) ListMerchants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"merchants": h.catalog.Merchants()})
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}
