package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/wodboard/internal/domain/types"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, category string, limit int) ([]types.LeaderboardRow, error)
	Categories(ctx context.Context) []string
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?category=C&limit=N requests.
// Without a category every category is returned, each cut to limit rows.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	n, err := strconv.Atoi(q.Get("limit"))
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	if category := q.Get("category"); category != "" {
		rows, err := h.deps.Leaderboard(r.Context(), category, n)
		if err != nil {
			writeStoreError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, types.Category{Name: category, Rows: rows})
		return
	}

	names := h.deps.Categories(r.Context())
	if names == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", NewKind(op, ErrUnavailable))
		return
	}
	out := make([]types.Category, 0, len(names))
	for _, name := range names {
		rows, err := h.deps.Leaderboard(r.Context(), name, n)
		if err != nil {
			writeStoreError(w, op, err)
			return
		}
		out = append(out, types.Category{Name: name, Rows: rows})
	}
	writeJSON(w, http.StatusOK, out)
}
