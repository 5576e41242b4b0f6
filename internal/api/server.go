// Package api provides the HTTP API server and handlers for the tag admin.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tagdesk/tagdesk-server/internal/http/response"
	"github.com/tagdesk/tagdesk-server/internal/ratelimit"
	"github.com/tagdesk/tagdesk-server/internal/sse"
)

// Pinger reports whether the tag store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tunes router behaviour.
type Options struct {
	Version             string
	AllowedOrigins      []string
	CreateRatePerMinute int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         Pinger
	services      *Services
	sseHandler    *sse.Handler
	sseManager    *sse.Manager
	createLimiter *ratelimit.KeyedRateLimiter
	router        *chi.Mux
	api           huma.API
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store Pinger, services *Services, sseHandler *sse.Handler, sseManager *sse.Manager, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.CreateRatePerMinute < 1 {
		opts.CreateRatePerMinute = 60
	}

	s := &Server{
		store:         store,
		services:      services,
		sseHandler:    sseHandler,
		sseManager:    sseManager,
		createLimiter: ratelimit.PerMinute(opts.CreateRatePerMinute),
		router:        chi.NewRouter(),
		logger:        logger,
	}

	s.setupMiddleware(opts)

	RegisterErrorHandler()
	config := huma.DefaultConfig("TagDesk API", opts.Version)
	config.Info.Description = "Search, page through and create tags."
	// Response bodies carry only their documented fields, no "$schema" link.
	config.CreateHooks = nil
	s.api = humachi.New(s.router, config)

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI dumps.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources owned by the server.
func (s *Server) Close() {
	s.createLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.accessLog)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed", s.logger)
	})
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerTagRoutes()
	s.registerExportRoutes()

	if s.sseHandler != nil {
		s.router.Get("/events", s.sseHandler.ServeHTTP)
	}
}

// accessLog logs one line per request through slog.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("remote", r.RemoteAddr),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
