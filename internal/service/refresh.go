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
)

// defaultStaleness matches the default refresh interval so a company is
// eligible again right as the next refresh pass fires.
const defaultStaleness = 6 * time.Hour

// RefreshServiceOptions groups dependencies for RefreshService.
type RefreshServiceOptions struct {
	Companies  core.CompanyRepository // Required: company repository
	Collector  BoardCollector         // Required: board collector
	Reconciler ArchiveReconciler      // Required: archive reconciler

	// Staleness is how old a company's last_updated must be before the
	// refresh pass re-collects it. Defaults to six hours.
	Staleness time.Duration

	Config config.CollectorConfig // Batch size and worker count
	Logger *slog.Logger           // Optional: structured logger
}

// RefreshService runs the refresh pass: re-collect the boards of companies
// whose aggregates have gone stale, oldest first, and reconcile the results.
type RefreshService struct {
	companies  core.CompanyRepository
	collector  BoardCollector
	reconciler ArchiveReconciler
	staleness  time.Duration
	cfg        config.CollectorConfig
	logger     *slog.Logger
}

// NewRefreshService constructs a RefreshService.
func NewRefreshService(opts RefreshServiceOptions) (*RefreshService, error) {
	if opts.Companies == nil {
		return nil, errors.New("CompanyRepository is required")
	}
	if opts.Collector == nil {
		return nil, errors.New("BoardCollector is required")
	}
	if opts.Reconciler == nil {
		return nil, errors.New("ArchiveReconciler is required")
	}

	staleness := opts.Staleness
	if staleness <= 0 {
		staleness = defaultStaleness
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RefreshService{
		companies:  opts.Companies,
		collector:  opts.Collector,
		reconciler: opts.Reconciler,
		staleness:  staleness,
		cfg:        opts.Config,
		logger:     logger,
	}, nil
}

// Run executes one refresh pass over the stalest companies. Per-company
// failures are counted and the pass moves on; only cancellation aborts it.
func (s *RefreshService) Run(ctx context.Context, progress model.ProgressFunc) (model.PassStats, error) {
	cutoff := time.Now().Add(-s.staleness)
	companies, err := s.companies.ListStale(ctx, cutoff, s.cfg.BatchSize)
	if err != nil {
		return model.PassStats{}, fmt.Errorf("list stale companies: %w", err)
	}
	if len(companies) == 0 {
		s.logger.InfoContext(ctx, "refresh pass found no stale companies")
		return model.PassStats{}, nil
	}

	s.logger.InfoContext(ctx, "refresh pass started",
		"companies", len(companies), "cutoff", cutoff, "workers", s.cfg.ParallelWorkers)

	tr := newTracker(len(companies), progress)
	forEachParallel(ctx, s.cfg.ParallelWorkers, companies, func(ctx context.Context, company *model.Company) {
		s.refreshCompany(ctx, company, tr)
		tr.done()
	})

	stats := tr.snapshot()
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	s.logger.InfoContext(ctx, "refresh pass finished",
		"companies", stats.Tested,
		"jobs_added", stats.JobsAdded,
		"jobs_closed", stats.JobsClosed,
		"errors", stats.Errors)
	return stats, nil
}

// refreshCompany re-collects one board and reconciles the result.
func (s *RefreshService) refreshCompany(ctx context.Context, company *model.Company, tr *tracker) {
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
	tr.tested(false)
	tr.jobs(rec.JobsAdded, rec.JobsClosed)
}
