package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/saitamau-maximum/standings/internal/config"
)

// Webhook posts rendered standings to a chat webhook endpoint.
//
// Delivery is fire-and-forget: one POST per run, no retries, no response
// body inspection. A failed send is the caller's to log — the next
// scheduled run is the only recovery path.
type Webhook struct {
	cfg    config.DispatchConfig
	client *http.Client
}

// New creates a Webhook from the dispatch configuration.
func New(cfg config.DispatchConfig) *Webhook {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultDispatchTimeout
	}
	return &Webhook{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Send posts text as the webhook message content.
// Returns an error if no webhook URL is configured in the environment.
func (w *Webhook) Send(ctx context.Context, text string) error {
	url := w.cfg.WebhookURL()
	if url == "" {
		return fmt.Errorf("dispatch: webhook url not set (env %q)", w.cfg.WebhookURLEnv)
	}

	body, _ := json.Marshal(map[string]string{"content": text})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("dispatch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch: http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("dispatch: webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
