// Package api serves the planner over a JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/tempo/internal/app"
	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// Server is the HTTP API server.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	app    *app.Container
	logger *slog.Logger
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           "127.0.0.1:8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
	}
}

// NewServer creates a new API server backed by the container's handlers.
func NewServer(cfg ServerConfig, container *app.Container, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:    http.NewServeMux(),
		app:    container,
		logger: logger,
	}
	s.registerRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Correlation-ID"},
	})

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      c.Handler(s.withRequestContext(s.mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Tasks
	s.mux.HandleFunc("GET /api/tasks", s.listTasks)
	s.mux.HandleFunc("POST /api/tasks", s.createTask)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	s.mux.HandleFunc("PUT /api/subtasks/{id}", s.updateSubtask)
	s.mux.HandleFunc("GET /api/stats", s.getStats)

	// Wellness
	s.mux.HandleFunc("GET /api/energy-patterns", s.getEnergyPatterns)
	s.mux.HandleFunc("POST /api/energy-patterns", s.recordEnergy)
	s.mux.HandleFunc("POST /api/study-sessions", s.recordStudySession)

	// Insights
	s.mux.HandleFunc("GET /api/recommendations", s.getRecommendations)

	// Calendar
	s.mux.HandleFunc("GET /api/recurring-events", s.listRecurringEvents)
	s.mux.HandleFunc("POST /api/recurring-events", s.createRecurringEvent)
	s.mux.HandleFunc("PUT /api/recurring-events/{id}", s.updateRecurringEvent)
	s.mux.HandleFunc("DELETE /api/recurring-events/{id}", s.deleteRecurringEvent)
	s.mux.HandleFunc("POST /api/calendar/import", s.importCalendar)

	// Scheduling
	s.mux.HandleFunc("GET /api/sleep-schedule", s.getSleepSchedule)
	s.mux.HandleFunc("PUT /api/sleep-schedule", s.saveSleepSchedule)
	s.mux.HandleFunc("GET /api/schedule/generate", s.generateSchedule)
	s.mux.HandleFunc("GET /api/schedule/export", s.exportSchedule)
	s.mux.HandleFunc("GET /api/schedule", s.listPinned)
	s.mux.HandleFunc("POST /api/schedule", s.pinAssignment)
	s.mux.HandleFunc("DELETE /api/schedule/{id}", s.unpinAssignment)
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// handleHealth reports the status of the storage and cache backends.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.app.Health.Check(r.Context())
	status := http.StatusOK
	if health.Status == observability.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

// withRequestContext attaches correlation and request IDs and logs each request.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ctx := observability.NewRequestContext(r.Context(), r.Header.Get("X-Correlation-ID"))
		w.Header().Set("X-Correlation-ID", observability.CorrelationIDFromContext(ctx))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		s.logger.DebugContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// flush relays the outbox after a write so subscribers observe it before
// the response is sent.
func (s *Server) flush(r *http.Request) {
	if err := s.app.Flush(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "failed to relay events", "error", err)
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// writeDomainError maps validation failures to 400 and missing records to
// 404. Anything else is logged and reported as 500.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sharedDomain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, task.ErrSubtaskNotFound),
		errors.Is(err, calendarDomain.ErrRecurringEventNotFound),
		errors.Is(err, schedulingDomain.ErrAssignmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today.
func (s *Server) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return s.app.Today(), true
	}
	date, err := schedulingDomain.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return date, true
}
