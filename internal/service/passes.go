package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/observability/metrics"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// defaultPassBudget caps a pass's wall-clock time when no budget is
// configured.
const defaultPassBudget = time.Hour

// passFunc is the shared shape of the four pass bodies.
type passFunc func(ctx context.Context, progress model.ProgressFunc) (model.PassStats, error)

// PassServiceOptions groups dependencies for PassService.
type PassServiceOptions struct {
	Discovery   *DiscoveryService   // Required: discovery pass
	Refresh     *RefreshService     // Required: refresh pass
	Expansion   *ExpansionService   // Required: expansion pass
	Maintenance *MaintenanceService // Required: maintenance pass

	// Gate serializes contending passes. Defaults to a fresh gate; share
	// one instance between the scheduler and the HTTP trigger endpoint.
	Gate *core.PassGate

	// Budget is the wall-clock limit per pass. Defaults to one hour.
	Budget time.Duration

	Logger  *slog.Logger // Optional: structured logger
	Metrics statsd.Sink  // Optional: statsd sink
}

// PassService owns the pass gate and runs passes under it: one collection
// pass (discovery, refresh or expansion) at a time, maintenance beside them.
// Both the cron scheduler and the manual trigger endpoint go through it.
type PassService struct {
	gate    *core.PassGate
	funcs   map[model.PassMode]passFunc
	budget  time.Duration
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewPassService constructs a PassService.
func NewPassService(opts PassServiceOptions) (*PassService, error) {
	if opts.Discovery == nil {
		return nil, errors.New("DiscoveryService is required")
	}
	if opts.Refresh == nil {
		return nil, errors.New("RefreshService is required")
	}
	if opts.Expansion == nil {
		return nil, errors.New("ExpansionService is required")
	}
	if opts.Maintenance == nil {
		return nil, errors.New("MaintenanceService is required")
	}

	gate := opts.Gate
	if gate == nil {
		gate = core.NewPassGate()
	}

	budget := opts.Budget
	if budget <= 0 {
		budget = defaultPassBudget
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PassService{
		gate: gate,
		funcs: map[model.PassMode]passFunc{
			model.PassDiscovery:   opts.Discovery.Run,
			model.PassRefresh:     opts.Refresh.Run,
			model.PassExpansion:   opts.Expansion.Run,
			model.PassMaintenance: opts.Maintenance.Run,
		},
		budget:  budget,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Run claims the gate slot for mode and executes the pass to completion.
// It returns a conflict error when the slot is already held; callers drop
// the trigger rather than queue it.
func (s *PassService) Run(ctx context.Context, mode model.PassMode) (model.PassSummary, error) {
	run, err := s.begin(mode)
	if err != nil {
		return model.PassSummary{}, err
	}
	return s.execute(ctx, run)
}

// Start claims the gate slot for mode and runs the pass in the background,
// detached from the caller's request context. It returns the run id.
func (s *PassService) Start(mode model.PassMode) (string, error) {
	run, err := s.begin(mode)
	if err != nil {
		return "", err
	}
	go func() {
		_, _ = s.execute(context.Background(), run)
	}()
	return run.ID(), nil
}

// Status returns a point-in-time view of the gate.
func (s *PassService) Status() core.PassStatus {
	return s.gate.Status()
}

// History returns finished pass summaries, newest first.
func (s *PassService) History() []model.PassSummary {
	return s.gate.History()
}

func (s *PassService) begin(mode model.PassMode) (*core.PassRun, error) {
	if _, ok := s.funcs[mode]; !ok {
		return nil, apperrors.Validationf("unknown pass mode %q", mode)
	}
	run, ok := s.gate.TryBegin(mode)
	if !ok {
		return nil, apperrors.Conflictf("a conflicting pass is already running")
	}
	return run, nil
}

// execute runs the pass body under the budget, finishes the run, and emits
// the pass metrics.
func (s *PassService) execute(ctx context.Context, run *core.PassRun) (model.PassSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	mode := run.Mode()
	s.logger.InfoContext(ctx, "pass started", "mode", mode, "run_id", run.ID())

	start := time.Now()
	stats, err := s.funcs[mode](ctx, run.Progress)
	run.Progress(1, stats)
	summary := run.Finish(err)

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.EmitPass(s.metrics, metrics.PassMetric{
		Mode:     mode,
		Result:   result,
		Duration: time.Since(start),
		Stats:    stats,
		Err:      err,
	})

	if err != nil {
		s.logger.ErrorContext(ctx, "pass failed",
			"mode", mode,
			"run_id", run.ID(),
			"cancelled", summary.Cancelled,
			"duration", summary.Duration,
			"error", err)
		return summary, err
	}

	s.logger.InfoContext(ctx, "pass finished",
		"mode", mode,
		"run_id", run.ID(),
		"duration", summary.Duration,
		"tested", stats.Tested,
		"hits", stats.Hits,
		"jobs_added", stats.JobsAdded,
		"jobs_closed", stats.JobsClosed,
		"errors", stats.Errors)
	return summary, nil
}
