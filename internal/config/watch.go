package config

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of fsnotify events an editor's atomic
// save emits into a single reload.
const debounceDelay = 100 * time.Millisecond

// Watch monitors path and calls onChange with the newly loaded Config each
// time the file is rewritten with an effective change. current seeds the
// comparison; a rewrite that parses to identical settings does not trigger
// onChange. Watch runs until ctx is cancelled.
//
// If a reload fails (e.g., invalid YAML), the error is logged and the
// previous config remains active.
func Watch(ctx context.Context, path string, current *Config, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("config: watching for changes", "path", path)

	// pending is armed by a write event and fires once the burst settles.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often write via rename (atomic save), so create
			// counts as a write.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending = time.After(debounceDelay)

		case <-pending:
			pending = nil
			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed — keeping previous config",
					"path", path, "err", err)
				continue
			}

			changed := changedSettings(current, cfg)
			if len(changed) == 0 {
				slog.Debug("config: file rewritten without effective changes", "path", path)
				continue
			}

			slog.Info("config: reloaded", "path", path, "changed", changed)
			for _, name := range changed {
				// Sources and the status server are built once at startup.
				if strings.HasPrefix(name, "source.") || strings.HasPrefix(name, "status.") {
					slog.Warn("config: setting takes effect after restart", "setting", name)
				}
			}

			current = cfg
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}

// changedSettings lists the settings whose values differ between prev and
// next, named by their config-file paths.
func changedSettings(prev, next *Config) []string {
	var out []string
	add := func(name string, differs bool) {
		if differs {
			out = append(out, name)
		}
	}
	add("contest.name", prev.Contest.Name != next.Contest.Name)
	add("contest.start", !prev.Contest.Start.Equal(next.Contest.Start))
	add("contest.end", !prev.Contest.End.Equal(next.Contest.End))
	add("contest.team", prev.Contest.Team != next.Contest.Team)
	add("source.type", prev.Source.Type != next.Source.Type)
	add("source.endpoint", prev.Source.Endpoint != next.Source.Endpoint)
	add("poll.interval", prev.Poll.Interval != next.Poll.Interval)
	add("poll.on_the_hour", prev.Poll.OnTheHour != next.Poll.OnTheHour)
	add("dispatch.webhook_url_env", prev.Dispatch.WebhookURLEnv != next.Dispatch.WebhookURLEnv)
	add("dispatch.timeout", prev.Dispatch.Timeout != next.Dispatch.Timeout)
	add("status.http_port", prev.Status.HTTPPort != next.Status.HTTPPort)
	add("status.feed_enabled", prev.Status.FeedEnabled != next.Status.FeedEnabled)
	return out
}
