package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the TOML file at path whenever it changes and passes the
// resulting configuration to apply. It returns after the watch is
// established; reloading continues until ctx is done. Reloads that fail to
// parse or validate are logged and skipped, keeping the last good
// configuration in effect.
//
// The watch is on the containing directory, so editors that replace the
// file via rename are picked up too.
func Watch(ctx context.Context, path string, apply func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	base := filepath.Base(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				cfg, err := Load(path)
				if err != nil {
					slog.Warn("config reload skipped", "path", path, "error", err)
					continue
				}
				slog.Info("config reloaded",
					"path", path,
					"requests_per_minute", cfg.RequestsPerMinute,
					"burst_capacity", cfg.BurstCapacity)
				apply(cfg)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config watch error", "path", path, "error", err)
			}
		}
	}()

	return nil
}
