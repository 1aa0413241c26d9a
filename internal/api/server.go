// Package api exposes the analysis engine over HTTP and websocket.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
	"github.com/p-n-ai/pai-quiz/internal/events"
	"github.com/p-n-ai/pai-quiz/internal/platform/cache"
	"github.com/p-n-ai/pai-quiz/internal/platform/metrics"
)

const (
	maxBodyBytes = 1 << 20
	readyTimeout = 2 * time.Second
)

// Checker is a dependency that can report whether it is reachable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

type readinessCheck struct {
	name    string
	checker Checker
}

// Server routes requests to the engine. Everything except the engine is optional.
type Server struct {
	engine  *analysis.Engine
	cache   *cache.Cache
	events  events.Logger
	metrics *metrics.Metrics
	origins []string
	checks  []readinessCheck
}

// Option configures a Server.
type Option func(*Server)

// WithCache memoises engine results in c.
func WithCache(c *cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithEvents records completed analyses to l.
func WithEvents(l events.Logger) Option {
	return func(s *Server) { s.events = l }
}

// WithMetrics instruments requests and serves GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithAllowedOrigins sets the CORS allow list. "*" allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithReadinessCheck adds a dependency checked by GET /readyz.
func WithReadinessCheck(name string, c Checker) Option {
	return func(s *Server) { s.checks = append(s.checks, readinessCheck{name: name, checker: c}) }
}

// NewServer creates a server for engine.
func NewServer(engine *analysis.Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		events: events.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withAccessLog(s.withCORS(s.routes())))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/study-plan", s.handleStudyPlan)
	mux.HandleFunc("POST /api/analyze/export", s.handleExport)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /ws/quiz", s.handleLiveQuiz)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	failed := []string{}
	for _, c := range s.checks {
		if err := c.checker.HealthCheck(ctx); err != nil {
			slog.Warn("readiness check failed", "dependency", c.name, "error", err)
			failed = append(failed, c.name)
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) observe(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveAnalysis(operation, outcome)
	}
}
