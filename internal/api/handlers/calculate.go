package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pickcard/rewards-backend/internal/api/dto"
	"github.com/pickcard/rewards-backend/internal/domain/rewards"
)

// Calculate handles POST /api/calculate. It resolves the free-text query,
// evaluates every card in the pool and returns results ordered best-first.
func (h *Handler) Calculate(c *gin.Context) {
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	opts := rewards.Options{
		Amount:            req.Amount,
		PaymentMethod:     req.PaymentMethod,
		IsForeignCurrency: req.IsForeignCurrency,
		IsOnline:          req.IsOnline,
		CardIDs:           req.CardIDs,
	}

	results, err := rewards.FindBestCards(req.Query, opts, h.catalog)
	if err != nil {
		if errors.Is(err, rewards.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, dto.InvalidInputError(err.Error()))
			return
		}
		h.logger.Error("calculate failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	merchant, category := h.catalog.Resolve(req.Query)
	resp := dto.CalculateResponse{
		Merchant: merchant,
		Category: category,
		Results:  make([]dto.CalculationResult, 0, len(results)),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, dto.FromResult(r))
	}

	h.logger.Debug("calculate",
		"query", req.Query,
		"amount", req.Amount,
		"results", len(resp.Results))
	c.JSON(http.StatusOK, resp)
}
