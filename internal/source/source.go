package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saitamau-maximum/standings/internal/config"
)

const defaultFetchTimeout = 10 * time.Second

// ErrFormat reports a fetched payload that is missing the expected structure:
// no table or header in the HTML page, an unparsable JSON body, or an empty
// leaderboard. Callers detect it with errors.Is and abort the run without
// dispatching.
var ErrFormat = errors.New("unexpected leaderboard format")

// Entry is one leaderboard row as published by the source.
// Slice order is source order — descending score with ties kept in the
// order the source listed them. Ordering is trusted, never re-validated.
type Entry struct {
	Name  string
	Score float64
}

// Source is the common interface implemented by every leaderboard adapter.
type Source interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

// New returns the appropriate Source for the given configuration.
// It builds the HTTP client once and reuses it across fetch calls.
func New(cfg config.SourceConfig) (Source, error) {
	client := &http.Client{Timeout: defaultFetchTimeout}
	switch cfg.Type {
	case config.SourceHTML:
		return &htmlSource{endpoint: cfg.Endpoint, client: client}, nil
	case config.SourceAPI:
		return &apiSource{endpoint: cfg.Endpoint, client: client}, nil
	default:
		return nil, fmt.Errorf("source: unsupported type %q", cfg.Type)
	}
}

// fetchBody performs an HTTP GET to url and returns the raw response body.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
