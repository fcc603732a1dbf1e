// Package clock drives periodic recomputation of wall-clock dependent state,
// such as the current-time indicator, on a cron schedule.
package clock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSpec recomputes once a minute.
const DefaultSpec = "@every 1m"

// Validate reports whether spec is a schedule Run accepts.
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("clock: invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Run calls fn on every activation of spec until ctx is cancelled. Ticks that
// fire while fn is still running are skipped.
func Run(ctx context.Context, spec string, logger *slog.Logger, fn func()) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("clock: invalid schedule %q: %w", spec, err)
	}
	c.Start()
	logger.Info("clock: started", slog.String("schedule", spec))

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("clock: stopped")
	return nil
}
