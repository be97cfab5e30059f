// Package handlers contains the HTTP handlers for the rewards API.
package handlers

import (
	"log/slog"

	"github.com/pickcard/rewards-backend/internal/catalog"
)

// Handler holds the dependencies shared by all API handlers.
type Handler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a handler backed by the given catalog.
func New(cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: cat,
		logger:  logger,
	}
}
