// Package status serves the bot's read-only HTTP surface.
//
// GET /api/v1/standings returns the latest snapshot (ranked rows plus the
// rendered table), GET /api/v1/health reports liveness and freshness, and
// GET /metrics exposes run counters in Prometheus text format. Everything
// is read from the snapshot board; nothing here mutates pipeline state.
package status
