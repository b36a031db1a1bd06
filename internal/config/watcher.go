package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/arminghobadi/alarm-scheduler/internal/logger"
)

// reloadDebounce absorbs the bursts of events editors produce when they
// replace a file, so we never parse a half-written settings file.
const reloadDebounce = 250 * time.Millisecond

// Watch blocks until the context is done, reloading the settings file
// whenever it changes on disk and passing each valid result to apply.
// Invalid or partially written files are logged and skipped; the previous
// settings stay in force.
func Watch(ctx context.Context, path string, apply func(*Config)) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("init config watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors typically write a
	// temporary file and rename it over the original, which silently drops
	// a watch placed on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(path)

	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Base(ev.Name) != base {
				continue
			}

			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				reload = time.After(reloadDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.WarnKV(ctx, "config watcher error", "err", err.Error())
		case <-reload:
			reload = nil

			cfg, err := Load(path)
			if err != nil {
				logger.WarnKV(ctx, "settings reload failed, keeping previous settings",
					"path", path, "err", err.Error())

				continue
			}

			logger.InfoKV(ctx, "settings reloaded", "path", path, "log_level", cfg.LogLevel)
			apply(cfg)
		}
	}
}
