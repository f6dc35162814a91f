package status

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/saitamau-maximum/standings/internal/board"
)

// Handler is the HTTP handler for the status surface: the JSON API under
// /api/v1/* and the Prometheus exposition at /metrics.
// It reads everything from the snapshot board.
type Handler struct {
	board *board.Board
	mux   *http.ServeMux
}

// New creates a Handler wired to the given board and registers all routes.
func New(b *board.Board) *Handler {
	h := &Handler{board: b, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/standings", h.standings)
	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/metrics", h.metrics)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// standings returns GET /api/v1/standings — the latest snapshot as JSON.
func (h *Handler) standings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, ok := h.board.Latest()
	if !ok {
		jsonErr(w, http.StatusNotFound, "no snapshot yet")
		return
	}
	jsonResp(w, http.StatusOK, BuildStandings(snap))
}

// health returns GET /api/v1/health — liveness plus snapshot freshness.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := HealthResponse{State: "waiting"}
	if snap, ok := h.board.Latest(); ok {
		resp.State = "ok"
		resp.LastFetch = snap.FetchedAt.Format(time.RFC3339)
		resp.Entries = len(snap.Rows)
	}
	c := h.board.Counters()
	resp.Runs = c.Runs
	resp.SourceErrors = c.SourceErrors
	jsonResp(w, http.StatusOK, resp)
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// BuildStandings maps a board.Snapshot to its JSON representation.
// Shared with the WebSocket feed so both surfaces emit identical payloads.
func BuildStandings(snap *board.Snapshot) StandingsResponse {
	rows := make([]RowResponse, 0, len(snap.Rows))
	for _, r := range snap.Rows {
		rows = append(rows, RowResponse{
			Rank:    r.Rank,
			Name:    r.Name,
			Score:   r.Score,
			Tracked: r.Tracked,
		})
	}
	return StandingsResponse{
		FetchedAt: snap.FetchedAt.Format(time.RFC3339),
		Rendered:  snap.Rendered,
		Rows:      rows,
	}
}
