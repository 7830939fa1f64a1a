package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// maintenanceTask names the advisory lock that keeps replicas from running
// archive maintenance concurrently.
const maintenanceTask = "archive_maintenance"

// MaintenanceServiceOptions groups dependencies for MaintenanceService.
type MaintenanceServiceOptions struct {
	Maintenance core.MaintenanceRepository // Required: task lock coordinator
	Snapshots   core.SnapshotRepository    // Required: snapshot writer
	Archive     core.JobArchiveRepository  // Required: archive pruner
	Config      config.MaintenanceConfig   // Retention windows and batch size
	Logger      *slog.Logger               // Optional: structured logger
	Metrics     statsd.Sink                // Optional: statsd sink
}

// MaintenanceService rotates the archive's time-series data: capture the
// six-hour snapshots, prune ones past retention, keep the current month's
// snapshot up to date, and purge long-closed postings.
//
// All steps run inside one transaction guarded by a task-scoped advisory
// lock, so replicas cannot double-write snapshot rows. The monthly row is
// upserted on every run; whichever run lands last in a month leaves the
// month-end values behind.
type MaintenanceService struct {
	maintenance core.MaintenanceRepository
	snapshots   core.SnapshotRepository
	archive     core.JobArchiveRepository
	cfg         config.MaintenanceConfig
	logger      *slog.Logger
	metrics     statsd.Sink
}

// NewMaintenanceService constructs a MaintenanceService.
func NewMaintenanceService(opts MaintenanceServiceOptions) (*MaintenanceService, error) {
	if opts.Maintenance == nil {
		return nil, errors.New("MaintenanceRepository is required")
	}
	if opts.Snapshots == nil {
		return nil, errors.New("SnapshotRepository is required")
	}
	if opts.Archive == nil {
		return nil, errors.New("JobArchiveRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MaintenanceService{
		maintenance: opts.Maintenance,
		snapshots:   opts.Snapshots,
		archive:     opts.Archive,
		cfg:         opts.Config,
		logger:      logger,
		metrics:     opts.Metrics,
	}, nil
}

// maintenanceCounts accumulates row counts across the maintenance steps.
type maintenanceCounts struct {
	snapshots int64
	pruned    int64
	monthly   int64
	purged    int64
}

// Run executes one maintenance pass. When another replica holds the task
// lock the pass is a silent no-op.
func (s *MaintenanceService) Run(ctx context.Context, progress model.ProgressFunc) (model.PassStats, error) {
	now := time.Now().UTC()
	var counts maintenanceCounts

	acquired, err := s.maintenance.TryWithTaskLock(ctx, maintenanceTask, func(ctx context.Context, tx *sql.Tx) error {
		return s.runSteps(ctx, tx, now, &counts, progress)
	})
	if err != nil {
		return model.PassStats{Errors: 1}, err
	}
	if !acquired {
		s.logger.InfoContext(ctx, "maintenance lock held elsewhere, skipping pass")
		return model.PassStats{}, nil
	}

	s.logger.InfoContext(ctx, "maintenance pass finished",
		"snapshots", counts.snapshots,
		"pruned", counts.pruned,
		"monthly_rows", counts.monthly,
		"purged_jobs", counts.purged)
	s.emitCounts(counts)

	return model.PassStats{}, nil
}

// runSteps performs the four maintenance steps inside the locked transaction.
func (s *MaintenanceService) runSteps(
	ctx context.Context,
	tx *sql.Tx,
	now time.Time,
	counts *maintenanceCounts,
	progress model.ProgressFunc,
) error {
	report := func(p float64) {
		if progress != nil {
			progress(p, model.PassStats{})
		}
	}

	var err error
	if counts.snapshots, err = s.snapshots.Capture6hTx(ctx, tx, now); err != nil {
		return fmt.Errorf("capture snapshots: %w", err)
	}
	report(0.25)

	if counts.pruned, err = drainBatches(ctx, func(ctx context.Context) (int64, error) {
		return s.snapshots.Prune6hTx(ctx, tx, core.PruneSnapshotsParams{
			Cutoff:    now.Add(-s.cfg.SnapshotRetention),
			BatchSize: s.cfg.BatchSize,
		})
	}); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	report(0.5)

	if counts.monthly, err = s.snapshots.UpsertMonthlyTx(ctx, tx, core.MonthlySnapshotParams{
		Year:  now.Year(),
		Month: now.Month(),
	}); err != nil {
		return fmt.Errorf("upsert monthly snapshot: %w", err)
	}
	report(0.75)

	if counts.purged, err = drainBatches(ctx, func(ctx context.Context) (int64, error) {
		return s.archive.PurgeClosedTx(ctx, tx, core.PurgeClosedParams{
			Cutoff:    now.Add(-s.cfg.ClosedJobRetention),
			BatchSize: s.cfg.BatchSize,
		})
	}); err != nil {
		return fmt.Errorf("purge closed jobs: %w", err)
	}
	report(1)

	return nil
}

// drainBatches repeats a bounded delete until it reports no more rows,
// returning the total removed. The pass budget on ctx caps a runaway backlog.
func drainBatches(ctx context.Context, step func(context.Context) (int64, error)) (int64, error) {
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := step(ctx)
		if err != nil {
			return total, err
		}
		total += n
		if n == 0 {
			return total, nil
		}
	}
}

func (s *MaintenanceService) emitCounts(counts maintenanceCounts) {
	if s.metrics == nil {
		return
	}
	emit := func(name string, v int64) {
		if v > 0 {
			s.metrics.Count(name, v, nil)
		}
	}
	emit("maintenance.snapshots", counts.snapshots)
	emit("maintenance.snapshots_pruned", counts.pruned)
	emit("maintenance.monthly_rows", counts.monthly)
	emit("maintenance.jobs_purged", counts.purged)
}
