// Package api wires the HTTP surface of the rewards backend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pickcard/rewards-backend/internal/api/handlers"
	"github.com/pickcard/rewards-backend/internal/api/middleware"
	"github.com/pickcard/rewards-backend/internal/catalog"
	"github.com/pickcard/rewards-backend/internal/infrastructure/config"
)

// Server is the HTTP server for the rewards API.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *slog.Logger
}

// NewServer builds the router, middleware chain and handlers.
func NewServer(cfg *config.Config, cat *catalog.Catalog, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(cat, logger)

	router.GET("/health", h.Health)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/calculate", h.Calculate)
		apiGroup.GET("/rankings", h.RankingCategories)
		apiGroup.GET("/rankings/:category", h.Rankings)
		apiGroup.GET("/cards", h.ListCards)
		apiGroup.GET("/cards/:id", h.GetCard)
		apiGroup.GET("/merchants", h.ListMerchants)
		apiGroup.GET("/categories", h.ListCategories)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.http.Shutdown(ctx)
}
