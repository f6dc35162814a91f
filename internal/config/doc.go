// Package config loads and validates the bot's YAML configuration.
//
// The file addresses the leaderboard source, bounds the contest window,
// names the tracked team, and selects the polling cadence. The webhook URL
// is a secret: the file names an environment variable (dispatch.webhook_url_env)
// and the value is resolved at send time via DispatchConfig.WebhookURL().
//
// Watch provides fsnotify-based hot reload; callers decide what a reload
// affects (the poll loop re-reads cadence fields, sources are built once
// at startup).
package config
