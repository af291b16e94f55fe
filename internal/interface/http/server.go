// Package http implements the REST API for the film catalog and its
// relationship graph. Success responses carry entities directly; error
// responses carry a uniform {"error", "message"} body.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filmhub/filmhub/internal/application/command"
	"github.com/filmhub/filmhub/internal/application/query"
	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum duration for idle connections.
	IdleTimeout time.Duration

	// MaxHeaderBytes - maximum size of request headers.
	MaxHeaderBytes int
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies contains all handlers required by the HTTP layer.
type Dependencies struct {
	// Command handlers (CQRS write side)
	CreateUser   *command.CreateUserHandler
	UpdateUser   *command.UpdateUserHandler
	CreateFilm   *command.CreateFilmHandler
	UpdateFilm   *command.UpdateFilmHandler
	AddLike      *command.AddLikeHandler
	RemoveLike   *command.RemoveLikeHandler
	AddFriend    *command.AddFriendHandler
	RemoveFriend *command.RemoveFriendHandler

	// Query handlers (CQRS read side)
	GetUser          *query.GetUserHandler
	ListUsers        *query.ListUsersHandler
	GetFilm          *query.GetFilmHandler
	ListFilms        *query.ListFilmsHandler
	GetPopularFilms  *query.GetPopularFilmsHandler
	GetFriends       *query.GetFriendsHandler
	GetCommonFriends *query.GetCommonFriendsHandler
	Catalog          *query.CatalogHandler

	// Logger
	Logger *logger.Logger

	// Optional backing-store health checks, keyed by component name.
	HealthCheckers map[string]HealthChecker
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server represents the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
	router     *http.ServeMux
	logger     *logger.Logger

	mu        sync.RWMutex
	running   bool
	startedAt time.Time
}

// NewServer creates a new HTTP server with the given configuration and dependencies.
func NewServer(config Config, deps Dependencies) *Server {
	s := &Server{
		config: config,
		deps:   deps,
		router: http.NewServeMux(),
		logger: deps.Logger,
	}

	if s.logger == nil {
		s.logger = logger.Default()
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           config.Address(),
		Handler:        s.buildMiddlewareChain(s.router),
		ReadTimeout:    config.ReadTimeout,
		WriteTimeout:   config.WriteTimeout,
		IdleTimeout:    config.IdleTimeout,
		MaxHeaderBytes: config.MaxHeaderBytes,
	}

	return s
}

// Handler returns the fully wired handler, for tests that drive the server
// through httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ══════════════════════════════════════════════════════════════════════════════
// ROUTING
// ══════════════════════════════════════════════════════════════════════════════

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Health
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /health", s.handleHealth)

	// ─────────────────────────────────────────────────────────────────────────
	// Users and friendships
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /users", s.handleCreateUser)
	s.router.HandleFunc("PUT /users", s.handleUpdateUser)
	s.router.HandleFunc("GET /users", s.handleListUsers)
	s.router.HandleFunc("GET /users/{id}", s.handleGetUser)
	s.router.HandleFunc("PUT /users/{id}/friends/{friendId}", s.handleAddFriend)
	s.router.HandleFunc("DELETE /users/{id}/friends/{friendId}", s.handleRemoveFriend)
	s.router.HandleFunc("GET /users/{id}/friends", s.handleGetFriends)
	s.router.HandleFunc("GET /users/{id}/friends/common/{otherId}", s.handleGetCommonFriends)

	// ─────────────────────────────────────────────────────────────────────────
	// Films and likes
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /films", s.handleCreateFilm)
	s.router.HandleFunc("PUT /films", s.handleUpdateFilm)
	s.router.HandleFunc("GET /films", s.handleListFilms)
	s.router.HandleFunc("GET /films/popular", s.handleGetPopularFilms)
	s.router.HandleFunc("GET /films/{id}", s.handleGetFilm)
	s.router.HandleFunc("PUT /films/{id}/like/{userId}", s.handleAddLike)
	s.router.HandleFunc("DELETE /films/{id}/like/{userId}", s.handleRemoveLike)

	// ─────────────────────────────────────────────────────────────────────────
	// Reference catalogs
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /genres", s.handleListGenres)
	s.router.HandleFunc("GET /genres/{id}", s.handleGetGenre)
	s.router.HandleFunc("GET /mpa", s.handleListMpa)
	s.router.HandleFunc("GET /mpa/{id}", s.handleGetMpa)
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE CHAIN
// ══════════════════════════════════════════════════════════════════════════════

// buildMiddlewareChain wraps the router with all middleware.
func (s *Server) buildMiddlewareChain(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last middleware wraps first)
	h := handler
	h = s.requestIDMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.recoveryMiddleware(h)
	return h
}

// requestIDMiddleware adds a unique request ID to each request. The
// request-scoped logger rides the context so deeper layers log with the
// same request id.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		ctx = logger.WithContext(ctx, s.logger.WithRequestID(requestID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs all HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.logger.Info("http request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rw.statusCode),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()),
			logger.String("request_id", logger.RequestIDFromContext(r.Context())),
		)
	})
}

// recoveryMiddleware recovers from panics and returns 500.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered",
					logger.F("error", err),
					logger.String("stack", string(debug.Stack())),
					logger.String("path", r.URL.Path),
					logger.String("request_id", logger.RequestIDFromContext(r.Context())),
				)
				writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", logger.String("address", s.config.Address()))

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address.
func (s *Server) Address() string {
	return s.config.Address()
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONError writes an error JSON response.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a domain error onto HTTP status and body.
// The same-id violation maps to 404, matching the API contract for
// friendship endpoints.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsInvalidInput(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case shared.IsSameID(err):
		writeJSONError(w, http.StatusNotFound, "same_id", err.Error())
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
