// Package service implements the recurring passes (discovery, refresh,
// expansion, maintenance) and the read-side operations behind the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
)

// SeedProber tests one seed against the provider registry.
type SeedProber interface {
	ProbeSeed(ctx context.Context, seed *model.Seed) (*model.ProbeOutcome, error)
}

// BoardCollector fetches and normalizes one company's live postings.
type BoardCollector interface {
	Collect(ctx context.Context, company *model.Company) (*model.CollectionResult, error)
}

// ArchiveReconciler folds one collection result into the job archive.
type ArchiveReconciler interface {
	Apply(ctx context.Context, res *model.CollectionResult) (*model.ReconcileOutcome, error)
}

// DiscoveryServiceOptions groups dependencies for DiscoveryService.
type DiscoveryServiceOptions struct {
	Seeds      core.SeedRepository    // Required: seed repository
	Prober     SeedProber             // Required: probe engine
	Collector  BoardCollector         // Required: board collector
	Reconciler ArchiveReconciler      // Required: archive reconciler
	Config     config.CollectorConfig // Batch size and worker count
	Logger     *slog.Logger           // Optional: structured logger
}

// DiscoveryService runs the discovery pass: probe a batch of untested seeds,
// and for every confirmed board collect the postings and reconcile them into
// the archive. Every probed seed is marked tested whether or not it hit.
type DiscoveryService struct {
	seeds      core.SeedRepository
	prober     SeedProber
	collector  BoardCollector
	reconciler ArchiveReconciler
	cfg        config.CollectorConfig
	logger     *slog.Logger
}

// NewDiscoveryService constructs a DiscoveryService.
func NewDiscoveryService(opts DiscoveryServiceOptions) (*DiscoveryService, error) {
	if opts.Seeds == nil {
		return nil, errors.New("SeedRepository is required")
	}
	if opts.Prober == nil {
		return nil, errors.New("SeedProber is required")
	}
	if opts.Collector == nil {
		return nil, errors.New("BoardCollector is required")
	}
	if opts.Reconciler == nil {
		return nil, errors.New("ArchiveReconciler is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DiscoveryService{
		seeds:      opts.Seeds,
		prober:     opts.Prober,
		collector:  opts.Collector,
		reconciler: opts.Reconciler,
		cfg:        opts.Config,
		logger:     logger,
	}, nil
}

// Run executes one discovery pass over a batch of untested seeds. Per-seed
// failures are counted and the pass moves on; only cancellation aborts it.
func (s *DiscoveryService) Run(ctx context.Context, progress model.ProgressFunc) (model.PassStats, error) {
	seeds, err := s.seeds.ListUntested(ctx, s.cfg.BatchSize)
	if err != nil {
		return model.PassStats{}, fmt.Errorf("list untested seeds: %w", err)
	}
	if len(seeds) == 0 {
		s.logger.InfoContext(ctx, "discovery pass found no untested seeds")
		return model.PassStats{}, nil
	}

	s.logger.InfoContext(ctx, "discovery pass started",
		"seeds", len(seeds), "workers", s.cfg.ParallelWorkers)

	tr := newTracker(len(seeds), progress)
	forEachParallel(ctx, s.cfg.ParallelWorkers, seeds, func(ctx context.Context, seed *model.Seed) {
		s.processSeed(ctx, seed, tr)
		tr.done()
	})

	stats := tr.snapshot()
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	s.logger.InfoContext(ctx, "discovery pass finished",
		"tested", stats.Tested,
		"hits", stats.Hits,
		"jobs_added", stats.JobsAdded,
		"jobs_closed", stats.JobsClosed,
		"errors", stats.Errors)
	return stats, nil
}

// processSeed probes one seed, records the outcome, and pushes hits through
// collection and reconciliation.
func (s *DiscoveryService) processSeed(ctx context.Context, seed *model.Seed, tr *tracker) {
	outcome, err := s.prober.ProbeSeed(ctx, seed)
	if err != nil {
		if canceled(ctx, err) {
			return
		}
		// An unprobeable seed still counts as tested; it would fail the
		// same way on every future pass.
		s.logger.WarnContext(ctx, "probe failed",
			"seed_id", seed.ID, "company", seed.CompanyName, "error", err)
		tr.failed()
		s.markTested(ctx, seed, false, time.Now(), tr)
		return
	}

	s.markTested(ctx, seed, outcome.Hit, outcome.TestedAt, tr)
	if !outcome.Hit {
		return
	}

	company := &model.Company{
		ID:          model.CompanyID(outcome.ATSType, outcome.Token),
		CompanyName: outcome.CompanyName,
		ATSType:     outcome.ATSType,
		Token:       outcome.Token,
	}

	res, err := s.collector.Collect(ctx, company)
	if err != nil {
		if canceled(ctx, err) {
			return
		}
		s.logger.WarnContext(ctx, "collection failed",
			"company_id", company.ID, "company", company.CompanyName,
			"ats", company.ATSType, "error", err)
		tr.failed()
		return
	}

	rec, err := s.reconciler.Apply(ctx, res)
	if err != nil {
		if canceled(ctx, err) {
			return
		}
		s.logger.ErrorContext(ctx, "reconcile failed",
			"company_id", company.ID, "company", company.CompanyName, "error", err)
		tr.failed()
		return
	}
	tr.jobs(rec.JobsAdded, rec.JobsClosed)
}

// markTested records the probe outcome on the seed row. A write failure is
// counted but does not stop the pass; the seed simply stays untested.
func (s *DiscoveryService) markTested(ctx context.Context, seed *model.Seed, hit bool, at time.Time, tr *tracker) {
	err := s.seeds.MarkTested(ctx, core.MarkSeedTestedParams{
		SeedID:   seed.ID,
		Hit:      hit,
		TestedAt: at,
	})
	if err != nil {
		if !canceled(ctx, err) {
			s.logger.WarnContext(ctx, "mark seed tested failed",
				"seed_id", seed.ID, "error", err)
			tr.failed()
		}
		return
	}
	tr.tested(hit)
}

// canceled reports whether err or the context indicates the pass was
// cancelled rather than the work item failing on its own.
func canceled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		apperrors.IsCanceled(err)
}
