package api

import (
	"net/http"

	"github.com/okian/wodboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps boardGetter
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps boardGetter) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
	RunID  string `json:"run_id,omitempty"`
}

// HandleHealth handles GET /healthz requests. The process is healthy as soon
// as it serves; it is ready once a board has been published.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	resp := healthResponse{Status: "ok"}
	if b, err := h.deps.Board(r.Context()); err == nil {
		resp.Ready = true
		resp.RunID = b.RunID
	}
	writeJSON(w, http.StatusOK, resp)
}

// MetricsHandler serves the custom metrics registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
