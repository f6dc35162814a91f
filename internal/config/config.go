package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultPollInterval    = time.Minute
	DefaultDispatchTimeout = 10 * time.Second
	DefaultHTTPPort        = 8080
)

// Source adapter types accepted in source.type.
const (
	SourceHTML = "html"
	SourceAPI  = "api"
)

// Config is the top-level bot configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Contest  ContestConfig  `yaml:"contest"`
	Source   SourceConfig   `yaml:"source"`
	Poll     PollConfig     `yaml:"poll"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Status   StatusConfig   `yaml:"status"`
}

// ContestConfig describes the contest being followed.
type ContestConfig struct {
	// Name is a human-readable contest label used in logs.
	Name string `yaml:"name"`

	// Start and End bound the posting window (both inclusive).
	// Outside the window every invocation is skipped.
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`

	// Team is the tracked team name, matched exactly (case-sensitive)
	// against leaderboard entries.
	Team string `yaml:"team"`
}

// SourceConfig selects and addresses the leaderboard source.
type SourceConfig struct {
	// Type is the adapter variant: html | api.
	Type string `yaml:"type"`

	// Endpoint is the full URL of the ranking page (html) or the
	// leaderboard JSON endpoint (api).
	Endpoint string `yaml:"endpoint"`
}

// PollConfig controls the invocation cadence.
type PollConfig struct {
	// Interval is how often the gate is consulted.
	Interval time.Duration `yaml:"interval"`

	// OnTheHour restricts runs to invocations whose minute-of-hour is 0.
	// When false the contest window alone decides.
	OnTheHour bool `yaml:"on_the_hour"`
}

// DispatchConfig configures the chat webhook target.
type DispatchConfig struct {
	// WebhookURLEnv is the name of the environment variable holding the
	// webhook URL. The URL itself is a secret and never lives in the file.
	WebhookURLEnv string `yaml:"webhook_url_env"`

	// Timeout bounds a single webhook POST.
	Timeout time.Duration `yaml:"timeout"`
}

// WebhookURL returns the webhook URL resolved from the environment.
// Returns empty string if WebhookURLEnv is unset or the variable is not found.
func (d DispatchConfig) WebhookURL() string {
	if d.WebhookURLEnv == "" {
		return ""
	}
	return os.Getenv(d.WebhookURLEnv)
}

// StatusConfig configures the optional status HTTP surface.
type StatusConfig struct {
	// HTTPPort is the port the status API and WebSocket feed listen on.
	// 0 disables the whole surface.
	HTTPPort int `yaml:"http_port"`

	// FeedEnabled toggles the WebSocket feed independently of the API.
	FeedEnabled bool `yaml:"feed_enabled"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Poll: PollConfig{
			Interval: DefaultPollInterval,
		},
		Dispatch: DispatchConfig{
			Timeout: DefaultDispatchTimeout,
		},
		Status: StatusConfig{
			HTTPPort:    DefaultHTTPPort,
			FeedEnabled: true,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Source.Endpoint == "" {
		return fmt.Errorf("source.endpoint is required")
	}
	switch cfg.Source.Type {
	case SourceHTML, SourceAPI:
	default:
		return fmt.Errorf("source.type must be %q or %q, got %q",
			SourceHTML, SourceAPI, cfg.Source.Type)
	}
	if cfg.Contest.Team == "" {
		return fmt.Errorf("contest.team is required")
	}
	if cfg.Contest.Start.IsZero() || cfg.Contest.End.IsZero() {
		return fmt.Errorf("contest.start and contest.end are required")
	}
	if !cfg.Contest.End.After(cfg.Contest.Start) {
		return fmt.Errorf("contest.end must be after contest.start")
	}
	if cfg.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive")
	}
	if cfg.Status.HTTPPort < 0 || cfg.Status.HTTPPort > 65535 {
		return fmt.Errorf("status.http_port out of range: %d", cfg.Status.HTTPPort)
	}
	return nil
}
