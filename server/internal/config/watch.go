package config

import (
	"context"
	"log/slog"
	"slices"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path for changes and calls onChange with the newly loaded
// Config each time the file is written. It runs until ctx is cancelled.
//
// If a reload fails (e.g., invalid YAML), the error is logged and the
// previous config remains active; Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("config: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often write via rename (atomic save), so also catch
			// fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed, keeping previous config",
					"path", path, "err", err)
				continue
			}

			slog.Info("config: reloaded", "path", path)
			onChange(cfg)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}

// RestartRequired reports whether moving from old to updated changes
// settings that only take effect on restart. Only the log level and auth
// settings are applied live.
func RestartRequired(old, updated *Config) bool {
	o, u := old.Server, updated.Server
	return o.GRPCPort != u.GRPCPort ||
		o.HTTPPort != u.HTTPPort ||
		o.Log.Format != u.Log.Format ||
		o.Limits != u.Limits ||
		o.Stream.Interval != u.Stream.Interval ||
		o.Notify.Timeout != u.Notify.Timeout ||
		o.Notify.MaxInFlight != u.Notify.MaxInFlight ||
		o.Notify.MaxQueued != u.Notify.MaxQueued ||
		!slices.Equal(o.Notify.Webhooks, u.Notify.Webhooks)
}
