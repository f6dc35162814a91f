// Package gate decides whether a scheduled invocation should run.
package gate

import (
	"time"

	"github.com/saitamau-maximum/standings/internal/config"
)

// Gate is the time predicate consulted on every poll tick. A declined tick
// is a schedule skip, not an error — the caller logs it and waits for the
// next tick.
type Gate struct {
	// Start and End bound the contest window, both inclusive.
	Start time.Time
	End   time.Time

	// OnTheHour additionally requires the invocation's minute-of-hour to
	// be 0. When false the window check alone decides.
	OnTheHour bool
}

// FromConfig builds a Gate from the contest and poll settings.
func FromConfig(contest config.ContestConfig, poll config.PollConfig) Gate {
	return Gate{
		Start:     contest.Start,
		End:       contest.End,
		OnTheHour: poll.OnTheHour,
	}
}

// ShouldRun reports whether the pipeline should execute at now.
func (g Gate) ShouldRun(now time.Time) bool {
	if now.Before(g.Start) || now.After(g.End) {
		return false
	}
	if g.OnTheHour && now.Minute() != 0 {
		return false
	}
	return true
}
