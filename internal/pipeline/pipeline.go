package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saitamau-maximum/standings/internal/board"
	"github.com/saitamau-maximum/standings/internal/rank"
	"github.com/saitamau-maximum/standings/internal/render"
	"github.com/saitamau-maximum/standings/internal/source"
)

// Notifier is anything that wants to know a new snapshot was published.
// The WebSocket feed hub implements it.
type Notifier interface {
	Notify()
}

// Sender delivers the rendered table. *dispatch.Webhook implements it;
// tests substitute a recorder.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Pipeline wires one run of the fetch → rank → render → dispatch chain.
// Runs are sequential and stateless; overlapping invocations would be
// independent of each other, though the poll loop never produces them.
type Pipeline struct {
	Source  source.Source
	Tracked string
	Webhook Sender
	Board   *board.Board
	Feed    Notifier // optional
}

// Run executes one pipeline invocation.
//
// A fetch, format, or render failure is terminal for the run: nothing is
// published and nothing is dispatched. A dispatch failure after a successful render
// is logged and counted but not returned — the snapshot was already
// published and the next scheduled run is the only retry.
func (p *Pipeline) Run(ctx context.Context) error {
	p.Board.CountRun()

	entries, err := p.Source.Fetch(ctx)
	if err != nil {
		p.Board.CountSourceError()
		return fmt.Errorf("pipeline: %w", err)
	}

	rows := rank.Assign(entries, p.Tracked)

	table, err := render.Table(rows)
	if err != nil {
		p.Board.CountRenderError()
		return fmt.Errorf("pipeline: %w", err)
	}

	p.Board.Publish(rows, table)
	if p.Feed != nil {
		p.Feed.Notify()
	}

	if idx := rank.TrackedIndex(rows); idx >= 0 {
		slog.Info("pipeline: snapshot ready",
			"entries", len(rows),
			"tracked_rank", rows[idx].Rank,
			"tracked_index", idx,
		)
	} else {
		slog.Info("pipeline: snapshot ready — tracked team not on board",
			"entries", len(rows))
	}

	if p.Webhook != nil {
		if err := p.Webhook.Send(ctx, table); err != nil {
			p.Board.CountDispatchFailure()
			slog.Warn("pipeline: webhook delivery failed", "err", err)
		}
	}

	return nil
}
