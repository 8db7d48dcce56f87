package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/puimuri/trainer/pkg/metrics"
)

// StatsProvider reports in-memory service counters for GET /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// OpsHandler serves the operational endpoints: liveness, stats and the
// Prometheus exposition of the trainer's registry.
type OpsHandler struct {
	stats   StatsProvider
	metrics http.Handler
}

// NewOpsHandler creates the operational handler. A nil stats provider
// serves an empty object.
func NewOpsHandler(stats StatsProvider) *OpsHandler {
	return &OpsHandler{
		stats:   stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz.
func (h *OpsHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStats handles GET /stats.
func (h *OpsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	if h.stats == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}

// HandleMetrics handles GET /metrics.
func (h *OpsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
