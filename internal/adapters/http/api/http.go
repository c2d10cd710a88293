// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	service "github.com/okian/skillrate/internal/app"
	"github.com/okian/skillrate/internal/domain/conversion"
	"github.com/okian/skillrate/internal/domain/model"
	"github.com/okian/skillrate/pkg/logger"
	"github.com/okian/skillrate/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	Convert(ctx context.Context, in model.Rating, to model.System) (model.Rating, error)
	ConvertBatch(ctx context.Context, reqs []service.Request) (service.BatchResult, error)

	Default(ctx context.Context, sys model.System) (model.Rating, error)
	Systems(ctx context.Context) []service.SystemInfo
	Conversions(ctx context.Context) []conversion.Pair
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	systemsHandler *SystemsHandler
	convertHandler *ConvertHandler

	corsOrigins     []string
	rateLimit       bool
	rateRequests    int
	rateWindowSec   int
	maxRequestBytes int64

	logger logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		corsOrigins:     []string{"*"},
		maxRequestBytes: defaultMaxRequestBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("http")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.systemsHandler = NewSystemsHandler(deps)
	s.convertHandler = NewConvertHandler(deps, s.maxRequestBytes, s.logger)
	return s
}

// Register attaches the middleware stack and all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)

	c := corslib.New(corslib.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Request-Id"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if s.rateLimit {
		r.Use(RateLimitMiddleware(s.rateRequests, s.rateWindowSec))
	}

	r.With(MetricsMiddleware("healthz")).Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.With(MetricsMiddleware("stats")).Get("/stats", s.statsHandler.HandleStats)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(MetricsMiddleware("systems")).Get("/systems", s.systemsHandler.HandleSystems)
		r.With(MetricsMiddleware("default")).Get("/systems/{system}/default", s.systemsHandler.HandleDefault)
		r.With(MetricsMiddleware("conversions")).Get("/conversions", s.systemsHandler.HandleConversions)
		r.With(MetricsMiddleware("convert")).Post("/convert", s.convertHandler.HandleConvert)
		r.With(MetricsMiddleware("convert_batch")).Post("/convert/batch", s.convertHandler.HandleBatch)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, ErrMethodNotAllowed)
	})
}

// errorBody is the inner object of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeJSON encodes v before writing the header, so an encoding failure
// becomes a 500 envelope instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		metrics.RecordErrorByComponent("http", "encode_error")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: errorBody{Code: codeInternal, Message: "encode response: " + err.Error()}})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: msg}})
}
