package status

// StandingsResponse is the payload for GET /api/v1/standings.
type StandingsResponse struct {
	FetchedAt string        `json:"fetched_at"` // RFC3339
	Rendered  string        `json:"rendered"`
	Rows      []RowResponse `json:"rows"`
}

// RowResponse is one ranked leaderboard row.
type RowResponse struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Tracked bool    `json:"tracked,omitempty"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	State        string `json:"state"` // "ok" | "waiting"
	LastFetch    string `json:"last_fetch,omitempty"`
	Entries      int    `json:"entries"`
	Runs         uint64 `json:"runs"`
	SourceErrors uint64 `json:"source_errors"`
}

type errorResponse struct {
	Error string `json:"error"`
}
