package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
)

const (
	// defaultTrendWindowDays is the default lookback for skill trends.
	defaultTrendWindowDays = 30
	// maxTrendWindowDays caps the lookback so one query cannot scan the
	// whole archive.
	maxTrendWindowDays = 365
	// defaultTrendLimit is how many skills a trend query returns.
	defaultTrendLimit = 25
)

// ArchiveServiceOptions groups dependencies for ArchiveService.
type ArchiveServiceOptions struct {
	Companies core.CompanyRepository    // Required: company repository
	Jobs      core.JobArchiveRepository // Required: job archive repository
	Snapshots core.SnapshotReader       // Required: snapshot history reader
	Logger    *slog.Logger              // Optional: structured logger
}

// ArchiveService is the read side of the job archive: companies, postings,
// aggregate totals, snapshot history and skill trends.
type ArchiveService struct {
	companies core.CompanyRepository
	jobs      core.JobArchiveRepository
	snapshots core.SnapshotReader
	logger    *slog.Logger
}

// NewArchiveService constructs an ArchiveService.
func NewArchiveService(opts ArchiveServiceOptions) (*ArchiveService, error) {
	if opts.Companies == nil {
		return nil, errors.New("CompanyRepository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("JobArchiveRepository is required")
	}
	if opts.Snapshots == nil {
		return nil, errors.New("SnapshotReader is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ArchiveService{
		companies: opts.Companies,
		jobs:      opts.Jobs,
		snapshots: opts.Snapshots,
		logger:    logger,
	}, nil
}

// ListCompanies returns confirmed companies with clamped pagination.
func (s *ArchiveService) ListCompanies(ctx context.Context, opts model.CompanyListOptions) ([]*model.Company, error) {
	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	companies, err := s.companies.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// GetCompany returns one company by id.
func (s *ArchiveService) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("company id is required")
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	return company, nil
}

// CompanyJobs returns the archived postings of one company, optionally
// filtered to open or closed status. The company must exist.
func (s *ArchiveService) CompanyJobs(ctx context.Context, companyID string, status model.JobStatus) ([]*model.Job, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.ValidationField("status", "must be open or closed")
	}

	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByCompany(ctx, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("list jobs for company %s: %w", companyID, err)
	}
	return jobs, nil
}

// CompanyHistory returns the snapshot series for one company: the rolling
// six-hour window plus the month-end archive. The company must exist.
// A non-positive limit keeps the repository default (ninety days of rows).
func (s *ArchiveService) CompanyHistory(ctx context.Context, companyID string, limit int) (*model.CompanyHistory, error) {
	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}

	recent, err := s.snapshots.List6hByCompany(ctx, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("snapshot history for %s: %w", companyID, err)
	}
	monthly, err := s.snapshots.ListMonthlyByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("monthly history for %s: %w", companyID, err)
	}
	return &model.CompanyHistory{Recent: recent, Monthly: monthly}, nil
}

// ListJobs returns archived postings across companies with clamped
// pagination and validated filters.
func (s *ArchiveService) ListJobs(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, apperrors.ValidationField("status", "must be open or closed")
	}
	if opts.WorkType != "" && !opts.WorkType.Valid() {
		return nil, apperrors.ValidationField("work_type", "must be remote, hybrid or onsite")
	}

	p := normalizePagination(opts.Limit, opts.Offset)
	opts.Limit = p.Limit
	opts.Offset = p.Offset

	jobs, err := s.jobs.ListJobs(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Totals returns aggregate statistics over the whole archive.
func (s *ArchiveService) Totals(ctx context.Context) (*core.ArchiveTotals, error) {
	totals, err := s.jobs.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive stats: %w", err)
	}
	return totals, nil
}

// SkillTrends returns the most-demanded skills among open postings first
// seen within the given window. Zero days means the default window.
func (s *ArchiveService) SkillTrends(ctx context.Context, days, limit int) ([]model.SkillTrend, error) {
	if days < 0 {
		return nil, apperrors.ValidationField("days", "must not be negative")
	}
	if days == 0 {
		days = defaultTrendWindowDays
	}
	if days > maxTrendWindowDays {
		days = maxTrendWindowDays
	}
	if limit <= 0 {
		limit = defaultTrendLimit
	}

	since := time.Now().AddDate(0, 0, -days)
	trends, err := s.jobs.SkillTrends(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("skill trends: %w", err)
	}
	return trends, nil
}
