// Package api provides the HTTP API server and handlers for the drift application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/driftapp/drift-server/internal/auth"
	"github.com/driftapp/drift-server/internal/config"
	"github.com/driftapp/drift-server/internal/http/response"
	"github.com/driftapp/drift-server/internal/service"
	"github.com/driftapp/drift-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	driftService   *service.DriftService
	layerService   *service.LayerService
	libraryService *service.LibraryService
	verifier       auth.TokenVerifier
	validator      *validation.Validator
	authCfg        config.AuthConfig
	router         *chi.Mux
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(driftService *service.DriftService, layerService *service.LayerService, libraryService *service.LibraryService, verifier auth.TokenVerifier, authCfg config.AuthConfig, logger *slog.Logger) *Server {
	s := &Server{
		driftService:   driftService,
		layerService:   layerService,
		libraryService: libraryService,
		verifier:       verifier,
		validator:      validation.New(),
		authCfg:        authCfg,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Cache-Control"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/session", s.handleCreateSession)
		})

		// Drifts.
		r.Route("/drifts", func(r chi.Router) {
			r.With(s.softAuth, s.cacheControl(listCachePolicy)).Get("/", s.handleListDrifts)
			r.With(s.softAuth).Post("/", s.handleCreateDrift)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/{id}", s.handleGetDrift)
				r.Patch("/{id}", s.handleUpdateDrift)
				r.Delete("/{id}", s.handleDeleteDrift)
			})
		})

		// Layers.
		r.Route("/layers", func(r chi.Router) {
			r.With(s.softAuth, s.cacheControl(listCachePolicy)).Get("/", s.handleListLayers)
			r.With(s.softAuth).Post("/", s.handleCreateLayer)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/{id}", s.handleGetLayer)
				r.Patch("/{id}", s.handleUpdateLayer)
				r.Delete("/{id}", s.handleDeleteLayer)
			})
		})

		// Library.
		r.Route("/library", func(r chi.Router) {
			r.With(s.softAuth, s.cacheControl(libraryCachePolicy)).Get("/", s.handleListLibraryItems)
			r.With(s.softAuth).Post("/collect", s.handleCollect)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/items/{refId}", s.handleGetLibraryItemByRef)
				r.Delete("/items/{refId}", s.handleDeleteLibraryItem)
			})
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	}, s.logger)
}
