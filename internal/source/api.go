package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// apiSource reads the leaderboard JSON endpoint.
//
// The endpoint returns an array of team objects already sorted by
// descending score. Fields beyond teamName and score are ignored.
type apiSource struct {
	endpoint string
	client   *http.Client
}

// apiEntry mirrors one element of the leaderboard array.
type apiEntry struct {
	TeamName string  `json:"teamName"`
	TeamPL   string  `json:"teamPl"`
	Score    float64 `json:"score"`
}

func (s *apiSource) Fetch(ctx context.Context) ([]Entry, error) {
	body, err := fetchBody(ctx, s.client, s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("source: api fetch: %w", err)
	}

	var raw []apiEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("source: decode leaderboard json: %v: %w", err, ErrFormat)
	}
	// Rank assignment seeds its previous-score comparison from the first
	// entry, so an empty leaderboard is a format failure, not an empty table.
	if len(raw) == 0 {
		return nil, fmt.Errorf("source: leaderboard array is empty: %w", ErrFormat)
	}

	entries := make([]Entry, len(raw))
	for i, e := range raw {
		entries[i] = Entry{Name: e.TeamName, Score: e.Score}
	}
	return entries, nil
}
