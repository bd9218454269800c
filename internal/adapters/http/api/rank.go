package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/wodboard/internal/domain/types"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Rank(ctx context.Context, category, team string) (types.LeaderboardRow, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{category}/{team} requests. Both segments
// are path-escaped, so names containing "/" are addressable as %2F.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rank"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	category, team, ok := rankPath(r.URL.EscapedPath())
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	row, err := h.deps.Rank(r.Context(), category, team)
	if err != nil {
		writeStoreError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func rankPath(escaped string) (category, team string, ok bool) {
	parts := strings.Split(strings.TrimPrefix(escaped, "/rank/"), "/")
	if len(parts) != 2 {
		return "", "", false
	}
	category, err := url.PathUnescape(parts[0])
	if err != nil || strings.TrimSpace(category) == "" {
		return "", "", false
	}
	team, err = url.PathUnescape(parts[1])
	if err != nil || strings.TrimSpace(team) == "" {
		return "", "", false
	}
	return category, team, true
}
