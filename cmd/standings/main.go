package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/saitamau-maximum/standings/internal/board"
	"github.com/saitamau-maximum/standings/internal/config"
	"github.com/saitamau-maximum/standings/internal/dispatch"
	"github.com/saitamau-maximum/standings/internal/feed"
	"github.com/saitamau-maximum/standings/internal/gate"
	"github.com/saitamau-maximum/standings/internal/pipeline"
	"github.com/saitamau-maximum/standings/internal/source"
	"github.com/saitamau-maximum/standings/internal/status"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("standings-bot starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"contest", cfg.Contest.Name,
		"team", cfg.Contest.Team,
		"source", cfg.Source.Type,
		"interval", cfg.Poll.Interval,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := source.New(cfg.Source)
	if err != nil {
		slog.Error("could not build source adapter", "err", err)
		os.Exit(1)
	}

	b := board.New()

	var hub *feed.Hub
	if cfg.Status.HTTPPort > 0 && cfg.Status.FeedEnabled {
		hub = feed.New(b)
		go hub.Run(ctx)
	}

	p := &pipeline.Pipeline{
		Source:  src,
		Tracked: cfg.Contest.Team,
		Webhook: dispatch.New(cfg.Dispatch),
		Board:   b,
	}
	if hub != nil {
		p.Feed = hub
	}

	// The gate is swapped atomically on config hot-reload so cadence
	// changes take effect without a restart. Source and dispatch targets
	// are built once at startup.
	var g atomic.Pointer[gate.Gate]
	initial := gate.FromConfig(cfg.Contest, cfg.Poll)
	g.Store(&initial)

	go func() {
		if err := config.Watch(ctx, *configPath, cfg, func(updated *config.Config) {
			ng := gate.FromConfig(updated.Contest, updated.Poll)
			g.Store(&ng)
			slog.Info("cadence gate updated",
				"window_start", updated.Contest.Start,
				"window_end", updated.Contest.End,
				"on_the_hour", updated.Poll.OnTheHour,
			)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	if cfg.Status.HTTPPort > 0 {
		go serveStatus(ctx, cfg.Status.HTTPPort, b, hub)
	}

	// Poll loop: every tick, consult the gate and run the pipeline.
	go func() {
		ticker := time.NewTicker(cfg.Poll.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if !g.Load().ShouldRun(now) {
					b.CountSkip()
					slog.Debug("gate: skipping invocation", "now", now)
					continue
				}
				if err := p.Run(ctx); err != nil {
					slog.Warn("pipeline run failed", "err", err)
				}
			}
		}
	}()

	<-ctx.Done()
	slog.Info("standings-bot shutting down")
}

// serveStatus runs the status HTTP server until ctx is cancelled.
func serveStatus(ctx context.Context, port int, b *board.Board, hub *feed.Hub) {
	mux := http.NewServeMux()
	mux.Handle("/", status.New(b))
	if hub != nil {
		mux.Handle("/ws", hub)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	slog.Info("status server listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("status server stopped", "err", err)
	}
}
