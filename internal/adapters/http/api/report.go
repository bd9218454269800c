package api

import (
	"bytes"
	"net/http"
)

// ReportDependencies defines the interface for report rendering.
type ReportDependencies interface {
	boardGetter
}

// ReportHandler serves the HTML leaderboard page.
type ReportHandler struct {
	deps     ReportDependencies
	renderer ReportRenderer
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies, renderer ReportRenderer) *ReportHandler {
	return &ReportHandler{deps: deps, renderer: renderer}
}

// HandleReport handles GET / requests.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet || (r.URL.Path != "/" && r.URL.Path != "/index.html") {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.Board(r.Context())
	if err != nil {
		writeStoreError(w, op, err)
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, board); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
