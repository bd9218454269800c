package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/wodboard/internal/domain/types"
)

// RefreshDependencies defines the interface for on-demand recomputation.
type RefreshDependencies interface {
	boardGetter
	Refresh(ctx context.Context) (*types.Board, error)
}

// RefreshHandler handles refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status      string    `json:"status"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Teams       int       `json:"teams"`
}

// HandleRefresh handles POST /refresh requests.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.Refresh(r.Context())
	if err != nil {
		// A board that was computed but not fully emitted is still published.
		if board == nil {
			writeError(w, http.StatusBadGateway, "refresh_failed", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{
			Status: "partial", RunID: board.RunID, GeneratedAt: board.GeneratedAt, Teams: board.TeamCount(),
		})
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Status: "ok", RunID: board.RunID, GeneratedAt: board.GeneratedAt, Teams: board.TeamCount(),
	})
}
