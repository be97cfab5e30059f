package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pickcard/rewards-backend/internal/api/dto"
	"github.com/pickcard/rewards-backend/internal/domain/leaderboard"
)

// Rankings handles GET /api/rankings/:category. The optional ?limit query
// parameter trims the board; the default is 15.
func (h *Handler) Rankings(c *gin.Context) {
	categoryID := c.Param("category")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.BadRequestError("limit must be an integer"))
			return
		}
		limit = n
	}

	entries, err := leaderboard.RankByCategory(categoryID, limit, h.catalog)
	if err != nil {
		if errors.Is(err, leaderboard.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("ranking category "+categoryID))
			return
		}
		h.logger.Error("rankings failed", "category", categoryID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	cfg, _ := leaderboard.CategoryByID(categoryID)
	resp := dto.RankingsResponse{
		Category: cfg,
		Entries:  make([]dto.RankingEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.FromEntry(e))
	}
	c.JSON(http.StatusOK, resp)
}

// RankingCategories handles GET /api/rankings and lists the fixed category
// set so clients can build navigation without hardcoding IDs.
func (h *Handler) RankingCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": leaderboard.Categories})
}
