// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/puimuri/trainer/internal/app"
	"github.com/puimuri/trainer/internal/domain/exercise"
)

// Dependencies required by the exercise handlers.
type Dependencies interface {
	NewExercise(ctx context.Context) (exercise.Exercise, error)
	Grade(ctx context.Context, answer float64, ex exercise.Exercise) (service.GradeResult, error)
}

// Route patterns. They double as the endpoint label in metrics.
const (
	routeEquation = "GET /api/equation"
	routeAnswer   = "POST /api/equation/answer/{answer}"
	routeHealth   = "GET /healthz"
	routeStats    = "GET /stats"
	routeMetrics  = "GET /metrics"
)

// Server wires HTTP routes for the trainer API.
type Server struct {
	equation *EquationHandler
	ops      *OpsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		equation: NewEquationHandler(deps),
		ops:      NewOpsHandler(statsProvider),
	}
}

// Register attaches all API routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc(routeEquation, MetricsMiddleware(s.equation.HandleGetEquation, routeEquation))
	mux.HandleFunc(routeAnswer, MetricsMiddleware(s.equation.HandlePostAnswer, routeAnswer))
	mux.HandleFunc(routeHealth, MetricsMiddleware(s.ops.HandleHealth, routeHealth))
	mux.HandleFunc(routeStats, MetricsMiddleware(s.ops.HandleStats, routeStats))
	mux.HandleFunc(routeMetrics, s.ops.HandleMetrics)
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
