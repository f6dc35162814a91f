// Package source provides adapters that normalize a public leaderboard into
// an ordered list of (name, score) entries.
//
// Two variants exist with one contract: html (scrapes the ranking page's
// standings table) and api (reads the leaderboard JSON endpoint). Both
// preserve source order — the upstream is trusted to publish descending
// scores — and both return a non-empty slice or an error wrapping ErrFormat.
// Factory: New(config.SourceConfig) returns the configured Source.
package source
