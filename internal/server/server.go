// Package server provides the HTTP API for Kondate.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/config"
	"github.com/hyperjump/kondate/internal/favorites"
	"github.com/hyperjump/kondate/internal/provider"
)

// Server is the HTTP server for the Kondate API.
type Server struct {
	sessions  *SessionRegistry
	favorites *favorites.Manager
	client    provider.Client
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
	startedAt time.Time
}

// NewServer creates a server with the given dependencies.
func NewServer(
	sessions *SessionRegistry,
	favs *favorites.Manager,
	client provider.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		sessions:  sessions,
		favorites: favs,
		client:    client,
		config:    cfg,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.startedAt = time.Now()
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/sessions/{id}/results", s.handleSessionResults)
	r.Post("/api/v1/sessions/{id}/more", s.handleSessionMore)
	r.Put("/api/v1/sessions/{id}/filters", s.handleFiltersUpdate)
	r.Delete("/api/v1/sessions/{id}/filters", s.handleFiltersClear)
	r.Delete("/api/v1/sessions/{id}", s.handleSessionRemove)
	r.Get("/api/v1/favorites", s.handleFavoritesList)
	r.Post("/api/v1/favorites", s.handleFavoritesAdd)
	r.Get("/api/v1/favorites/search", s.handleFavoritesSearch)
	r.Get("/api/v1/favorites/{id}", s.handleFavoriteGet)
	r.Delete("/api/v1/favorites/{id}", s.handleFavoriteRemove)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
