package scheduler

import (
	"context"
	"fmt"
	"io"

	"github.com/arminghobadi/alarm-scheduler/internal/clock"
	"github.com/arminghobadi/alarm-scheduler/internal/config"
	"github.com/arminghobadi/alarm-scheduler/internal/logger"
)

// RunOptions controls the alarm-scheduler process.
type RunOptions struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Input supplies request lines; the CLI passes stdin.
	Input io.Reader
	// Output receives event lines; the CLI passes stdout.
	Output io.Writer
}

// Run loads the settings, applies the log level, starts the settings
// watcher and runs the scheduler until input ends or the context is
// canceled.
func Run(ctx context.Context, opts *RunOptions) error {
	ctx = logger.WithName(ctx, "alarm-scheduler")

	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applySettings := func(cfg *config.Config) {
		if lvl, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
			logger.SetLevel(lvl)
		}
	}
	applySettings(settings)

	// Re-apply settings when the file changes on disk.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	go func() {
		if err := config.Watch(watchCtx, opts.ConfigPath, applySettings); err != nil {
			logger.WarnKV(ctx, "settings watcher unavailable", "err", err.Error())
		}
	}()

	svc := New(&Options{
		Input:  opts.Input,
		Output: opts.Output,
		Prompt: settings.Prompt,
		Clock:  clock.Real{},
	})

	logger.InfoKV(ctx, "alarm scheduler started", "log_level", settings.LogLevel)

	return svc.Run(ctx)
}
