package board

import (
	"sync"
	"time"

	"github.com/saitamau-maximum/standings/internal/rank"
)

// Snapshot is the outcome of one successful pipeline run: the ranked rows
// and the rendered table, stamped with the fetch time. Snapshots are
// replaced whole — history is never kept.
type Snapshot struct {
	Rows      []rank.Ranked
	Rendered  string
	FetchedAt time.Time
}

// Counters are monotonic totals across the process lifetime.
type Counters struct {
	Runs             uint64 // pipeline runs attempted (gate passed)
	Skips            uint64 // ticks declined by the gate
	SourceErrors     uint64 // runs aborted by a fetch/format failure
	RenderErrors     uint64 // runs aborted because no table could be rendered
	DispatchFailures uint64 // webhook sends that returned an error
}

// Board is a thread-safe holder of the latest snapshot and run counters.
// It backs the status API and the WebSocket feed.
type Board struct {
	mu       sync.RWMutex
	latest   *Snapshot
	counters Counters
	now      func() time.Time // injectable for deterministic tests
}

// New returns an empty Board.
func New() *Board {
	return &Board{now: time.Now}
}

// Publish replaces the latest snapshot.
// Callers must not modify rows after calling Publish.
func (b *Board) Publish(rows []rank.Ranked, rendered string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = &Snapshot{
		Rows:      rows,
		Rendered:  rendered,
		FetchedAt: b.now(),
	}
}

// Latest returns the most recent snapshot and whether one exists yet.
func (b *Board) Latest() (*Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest, b.latest != nil
}

// Counters returns a copy of the current counter values.
func (b *Board) Counters() Counters {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.counters
}

// CountRun records one attempted pipeline run.
func (b *Board) CountRun() { b.add(func(c *Counters) { c.Runs++ }) }

// CountSkip records one gate-declined tick.
func (b *Board) CountSkip() { b.add(func(c *Counters) { c.Skips++ }) }

// CountSourceError records one run aborted by a fetch or format failure.
func (b *Board) CountSourceError() { b.add(func(c *Counters) { c.SourceErrors++ }) }

// CountRenderError records one run aborted at the rendering stage.
func (b *Board) CountRenderError() { b.add(func(c *Counters) { c.RenderErrors++ }) }

// CountDispatchFailure records one failed webhook send.
func (b *Board) CountDispatchFailure() { b.add(func(c *Counters) { c.DispatchFailures++ }) }

func (b *Board) add(f func(*Counters)) {
	b.mu.Lock()
	f(&b.counters)
	b.mu.Unlock()
}
