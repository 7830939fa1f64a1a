package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// SeedRepository defines the interface for seed data operations.
type SeedRepository interface {
	Create(ctx context.Context, req *model.CreateSeedRequest) (*model.Seed, error)
	GetByID(ctx context.Context, id int64) (*model.Seed, error)
	GetByName(ctx context.Context, companyName string) (*model.Seed, error)
	List(ctx context.Context, limit, offset int) ([]*model.Seed, error)

	// ListUntested returns enabled seeds that have never been probed
	// (is_hit = false AND last_tested IS NULL), ordered by tier then id so
	// curated sources drain first.
	ListUntested(ctx context.Context, limit int) ([]*model.Seed, error)

	// BulkInsert inserts candidate seeds discovered by the expander, skipping
	// company names already present. Returns the number of rows inserted.
	BulkInsert(ctx context.Context, reqs []model.CreateSeedRequest) (int, error)

	// MarkTested records the outcome of probing one seed: last_tested,
	// is_hit, and the running total_tested/total_hits/hit_rate counters.
	MarkTested(ctx context.Context, params MarkSeedTestedParams) error

	Stats(ctx context.Context) (*SeedStats, error)
}

// MarkSeedTestedParams groups parameters for MarkTested to keep parameter count <= 3.
type MarkSeedTestedParams struct {
	SeedID   int64
	Hit      bool
	TestedAt time.Time
}

// SeedStats holds statistics about the seed pool.
type SeedStats struct {
	Total    int     `json:"total"`
	Untested int     `json:"untested"`
	Hits     int     `json:"hits"`
	HitRate  float64 `json:"hit_rate"`
}

// CompanyRepository defines the interface for confirmed-company data operations.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*model.Company, error)
	GetByName(ctx context.Context, companyName string) (*model.Company, error)
	List(ctx context.Context, opts model.CompanyListOptions) ([]*model.Company, error)

	// ListStale returns companies whose last_updated is before the cutoff,
	// oldest first, so refresh passes work through the longest-neglected
	// boards first.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*model.Company, error)

	Count(ctx context.Context) (int, error)
}

// JobArchiveRepository defines the interface for reading and pruning the
// longitudinal job archive. Writes go through ReconcileRepository so they
// stay inside the per-company transaction.
type JobArchiveRepository interface {
	ListJobs(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error)
	ListByCompany(ctx context.Context, companyID string, status model.JobStatus) ([]*model.Job, error)

	Stats(ctx context.Context) (*ArchiveTotals, error)

	// SkillTrends counts open postings first seen at or after since, grouped
	// by extracted skill, most demanded first.
	SkillTrends(ctx context.Context, since time.Time, limit int) ([]model.SkillTrend, error)

	// PurgeClosedTx deletes closed postings whose last_seen is older than the
	// cutoff. Processes up to BatchSize rows per call to prevent long locks.
	PurgeClosedTx(ctx context.Context, tx *sql.Tx, params PurgeClosedParams) (int64, error)
}

// PurgeClosedParams groups parameters for PurgeClosedTx.
type PurgeClosedParams struct {
	Cutoff    time.Time
	BatchSize int
}

// ArchiveTotals holds aggregate statistics over the whole job archive.
type ArchiveTotals struct {
	Companies      int     `json:"companies"`
	OpenJobs       int     `json:"open_jobs"`
	ClosedJobs     int     `json:"closed_jobs"`
	RemoteShare    float64 `json:"remote_share"`
	AvgTimeToFill  float64 `json:"avg_time_to_fill_days"`
	DistinctSkills int     `json:"distinct_skills"`
}

// ReconcileRepository defines the transactional surface the reconciler uses
// to fold one collection result into the archive. WithCompanyTx owns the
// transaction and the per-company serialization; the Tx variants run inside it.
type ReconcileRepository interface {
	// WithCompanyTx runs fn inside a transaction that holds an advisory
	// transaction lock derived from the company id, so concurrent reconciles
	// of the same company serialize. The lock blocks rather than skips;
	// reconciles queue behind each other.
	WithCompanyTx(ctx context.Context, companyID string, fn func(context.Context, *sql.Tx) error) error

	// UpsertCompanyTx inserts the company or refreshes its aggregates and
	// last_updated. first_discovered is preserved on conflict.
	UpsertCompanyTx(ctx context.Context, tx *sql.Tx, company *model.Company) error

	// UpsertJobTx inserts a posting with first_seen = last_seen = the job's
	// timestamps, or on job_hash conflict advances last_seen (never backward)
	// and reopens the row. first_seen is preserved. Returns true when the row
	// is new.
	UpsertJobTx(ctx context.Context, tx *sql.Tx, job *model.Job) (bool, error)

	// CloseVanishedTx closes open postings for the company whose last_seen
	// predates the pass timestamp, stamping time_to_fill in whole days.
	// Returns the number of postings closed.
	CloseVanishedTx(ctx context.Context, tx *sql.Tx, params CloseVanishedParams) (int64, error)
}

// CloseVanishedParams groups parameters for CloseVanishedTx.
type CloseVanishedParams struct {
	CompanyID  string
	ObservedAt time.Time
}

// SnapshotRepository defines the interface for point-in-time aggregate rows.
// All methods run inside the maintenance transaction so replicas guarded by
// the task lock cannot double-write.
type SnapshotRepository interface {
	// Capture6hTx copies the current per-company aggregates into six-hour
	// snapshot rows stamped at. Returns the number of rows written.
	Capture6hTx(ctx context.Context, tx *sql.Tx, at time.Time) (int64, error)

	// Prune6hTx deletes six-hour snapshots older than the cutoff, up to
	// BatchSize rows per call.
	Prune6hTx(ctx context.Context, tx *sql.Tx, params PruneSnapshotsParams) (int64, error)

	// UpsertMonthlyTx records one aggregate row per company for the given
	// calendar month, updating in place when the month already has rows.
	UpsertMonthlyTx(ctx context.Context, tx *sql.Tx, params MonthlySnapshotParams) (int64, error)
}

// SnapshotReader serves the longitudinal snapshot series to the read API.
type SnapshotReader interface {
	// List6hByCompany returns the company's six-hour snapshots, newest first.
	// A non-positive limit falls back to the repository default.
	List6hByCompany(ctx context.Context, companyID string, limit int) ([]*model.Snapshot6h, error)

	// ListMonthlyByCompany returns the company's monthly snapshots, newest first.
	ListMonthlyByCompany(ctx context.Context, companyID string) ([]*model.MonthlySnapshot, error)
}

// PruneSnapshotsParams groups parameters for Prune6hTx.
type PruneSnapshotsParams struct {
	Cutoff    time.Time
	BatchSize int
}

// MonthlySnapshotParams identifies the calendar month a monthly snapshot covers.
type MonthlySnapshotParams struct {
	Year  int
	Month time.Month
}

// MaintenanceRepository coordinates maintenance work across replicas.
type MaintenanceRepository interface {
	// TryWithTaskLock attempts to acquire an advisory lock for the given task name.
	// Uses FNV-1a 64-bit hash of taskName for the lock key.
	// If the lock is acquired, executes fn within the same transaction.
	// Return semantics:
	//   - (false, nil): lock not acquired; fn was not executed
	//   - (true, nil): lock acquired; fn executed and succeeded
	//   - (true, err): lock acquired; fn executed and failed with err
	TryWithTaskLock(
		ctx context.Context,
		taskName string,
		fn func(context.Context, *sql.Tx) error,
	) (bool, error)
}
