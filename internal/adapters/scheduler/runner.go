// Package scheduler fires the recurring passes on their cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/robfig/cron/v3"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	obserrors "github.com/hirelens/hirelens/internal/observability/errors"
	"github.com/hirelens/hirelens/internal/observability/notify"
	"github.com/hirelens/hirelens/internal/observability/statsd"
	"github.com/hirelens/hirelens/internal/service/failurenotifier"
)

// PassRunner is the slice of the pass service the scheduler drives.
type PassRunner interface {
	Run(ctx context.Context, mode model.PassMode) (model.PassSummary, error)
}

// Runner triggers discovery, refresh, expansion and maintenance passes on
// their configured cron schedules. A trigger that lands while a conflicting
// pass is still running is dropped, not queued; the next firing picks the
// work back up.
type Runner struct {
	passes   PassRunner
	cfg      config.SchedulerConfig
	logger   *slog.Logger
	metrics  statsd.Sink
	notifier *failurenotifier.Service
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Passes   PassRunner               // Required: pass execution service
	Config   config.SchedulerConfig   // Required: cron specs
	Logger   *slog.Logger             // Optional: structured logger
	Metrics  statsd.Sink              // Optional: statsd sink
	Notifier *failurenotifier.Service // Optional: pass failure fan-out
}

// NewRunner creates a scheduler runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Passes == nil {
		return nil, errors.New("pass service is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		passes:   opts.Passes,
		cfg:      opts.Config,
		logger:   logger,
		metrics:  opts.Metrics,
		notifier: opts.Notifier,
	}, nil
}

// Run registers the pass schedules and blocks until the context is
// cancelled, then waits for any in-flight trigger to return. Cancelling the
// context also cancels a running pass through the shared context.
func (r *Runner) Run(ctx context.Context) error {
	agent := cron.New()

	schedules := []struct {
		spec string
		mode model.PassMode
	}{
		{r.cfg.DiscoveryCron, model.PassDiscovery},
		{r.cfg.RefreshCron(), model.PassRefresh},
		{r.cfg.ExpansionCron, model.PassExpansion},
		{r.cfg.MaintenanceCron, model.PassMaintenance},
		// A second maintenance firing guarantees one run per day even when
		// the six-hourly slots all lose the task lock to another instance.
		{r.cfg.MaintenanceDailyCron, model.PassMaintenance},
	}

	for _, s := range schedules {
		mode := s.mode
		if _, err := agent.AddFunc(s.spec, func() { r.fire(ctx, mode) }); err != nil {
			return fmt.Errorf("register %s schedule %q: %w", mode, s.spec, err)
		}
		r.logger.InfoContext(ctx, "pass scheduled", "mode", mode, "spec", s.spec)
	}

	agent.Start()
	<-ctx.Done()

	r.logger.InfoContext(ctx, "scheduler stopping", "reason", ctx.Err())
	<-agent.Stop().Done()

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// fire runs one pass to completion. The pass service logs pass outcomes
// itself; the runner reports triggers it had to drop and pages the failure
// sinks when an unattended run fails.
func (r *Runner) fire(ctx context.Context, mode model.PassMode) {
	summary, err := r.passes.Run(ctx, mode)
	if err == nil {
		return
	}

	if apperrors.GetCode(err) == apperrors.ErrCodeConflict {
		r.logger.InfoContext(ctx, "pass trigger dropped",
			"mode", mode,
			"reason", "conflicting pass still running")
		if r.metrics != nil {
			r.metrics.Count("scheduler.trigger_dropped", 1, map[string]string{"mode": string(mode)})
		}
		return
	}

	r.notifyFailure(ctx, mode, summary, err)
}

// notifyFailure feeds the failure sinks. Scheduled runs have no caller to
// surface the error to, so this is where an on-call person hears about them.
// API-triggered passes return the error in the HTTP response instead.
func (r *Runner) notifyFailure(ctx context.Context, mode model.PassMode, summary model.PassSummary, err error) {
	if r.notifier == nil || !r.notifier.Enabled() {
		return
	}

	metadata := map[string]string{
		"duration": summary.Duration.String(),
	}
	if summary.Stats.Errors > 0 {
		metadata["company_errors"] = strconv.Itoa(summary.Stats.Errors)
	}

	r.notifier.NotifyPassFailure(ctx, notify.PassFailurePayload{
		PassID:     summary.ID,
		Mode:       string(mode),
		Trigger:    "schedule",
		Cancelled:  summary.Cancelled,
		Error:      err.Error(),
		ErrorClass: obserrors.Classify(err),
		OccurredAt: summary.FinishedAt,
		Metadata:   metadata,
	})
}
