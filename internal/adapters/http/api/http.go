// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/internal/domain/sentiment"
	"github.com/okian/mood2emoji/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Detector
	StatsProvider
}

// Detector runs one sentence through the mood pipeline.
type Detector interface {
	Detect(ctx context.Context, text string) (mood.Result, error)
	Explain(text string) []sentiment.Assessment
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	Stats() app.Stats
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	detectHandler *DetectHandler
	logger        logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, l logger.Logger) *Server {
	if l == nil {
		l = logger.Nop()
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps),
		detectHandler: NewDetectHandler(deps, l),
		logger:        l,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/detect", s.wrap(s.detectHandler.HandlePostDetect, "detect"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
