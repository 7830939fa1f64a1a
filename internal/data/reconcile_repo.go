package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/data/pgxutil"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// ReconcileRepo implements the ReconcileRepository interface using
// PostgreSQL. It owns all writes to companies and job_archive; every write
// happens inside a WithCompanyTx transaction so one company's reconciliation
// is atomic and serialized across processes.
type ReconcileRepo struct {
	DB *sql.DB
}

// NewReconcileRepo creates a new ReconcileRepo instance.
func NewReconcileRepo(db *sql.DB) *ReconcileRepo {
	return &ReconcileRepo{DB: db}
}

// WithCompanyTx runs fn inside a transaction that holds the company's
// advisory lock. The lock blocks rather than skips: two passes touching the
// same company serialize their writes instead of conflicting.
func (r *ReconcileRepo) WithCompanyTx(ctx context.Context, companyID string, fn func(context.Context, *sql.Tx) error) error {
	if companyID == "" {
		return errors.New("company id is required")
	}
	lockKey := fnvHash(companyID)
	return pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
				return fmt.Errorf("acquire company lock %s: %w", companyID, err)
			}
			return fn(ctx, tx)
		},
	})
}

// UpsertCompanyTx inserts or refreshes the company row with the aggregates
// from the latest pass. first_discovered is written once and never updated.
func (r *ReconcileRepo) UpsertCompanyTx(ctx context.Context, tx *sql.Tx, company *model.Company) error {
	firstDiscovered := company.FirstDiscovered
	if firstDiscovered.IsZero() {
		firstDiscovered = company.LastUpdated
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO companies (
			id, company_name, ats_type, token, job_count, remote_count,
			hybrid_count, onsite_count, locations, departments,
			normalized_locations, extracted_skills, careers_url,
			first_discovered, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			company_name         = EXCLUDED.company_name,
			job_count            = EXCLUDED.job_count,
			remote_count         = EXCLUDED.remote_count,
			hybrid_count         = EXCLUDED.hybrid_count,
			onsite_count         = EXCLUDED.onsite_count,
			locations            = EXCLUDED.locations,
			departments          = EXCLUDED.departments,
			normalized_locations = EXCLUDED.normalized_locations,
			extracted_skills     = EXCLUDED.extracted_skills,
			careers_url          = EXCLUDED.careers_url,
			last_updated         = EXCLUDED.last_updated`,
		company.ID, company.CompanyName, string(company.ATSType), company.Token,
		company.JobCount, company.RemoteCount, company.HybridCount, company.OnsiteCount,
		orEmpty(company.Locations), orEmpty(company.Departments),
		orEmpty(company.NormalizedLocations), orEmpty(company.ExtractedSkills),
		company.CareersURL, firstDiscovered.UTC(), company.LastUpdated.UTC())
	if err != nil {
		return fmt.Errorf("upsert company %s: %w", company.ID, err)
	}
	return nil
}

// UpsertJobTx records one observed posting. New hashes insert with
// first_seen = last_seen = the pass time; recurring hashes keep first_seen,
// never move last_seen backward, and reopen if previously closed. Returns
// true when the row was newly inserted.
func (r *ReconcileRepo) UpsertJobTx(ctx context.Context, tx *sql.Tx, job *model.Job) (bool, error) {
	var inserted bool
	// xmax = 0 distinguishes a fresh insert from a conflict update.
	err := tx.QueryRowContext(ctx, `
		INSERT INTO job_archive (
			job_hash, company_id, job_title, city, region, country,
			work_type, skills, first_seen, last_seen, status, time_to_fill
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'open', NULL)
		ON CONFLICT (job_hash) DO UPDATE SET
			last_seen    = GREATEST(job_archive.last_seen, EXCLUDED.last_seen),
			status       = 'open',
			time_to_fill = NULL
		RETURNING (xmax = 0) AS inserted`,
		job.JobHash, job.CompanyID, job.Title, job.City, job.Region, job.Country,
		string(job.WorkType), orEmpty(job.Skills),
		job.FirstSeen.UTC(), job.LastSeen.UTC()).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert job %s: %w", job.JobHash, err)
	}
	return inserted, nil
}

// CloseVanishedTx closes the company's open postings that were not observed
// at params.ObservedAt, recording time-to-fill as whole days between
// first_seen and the closure. Returns the number of postings closed.
func (r *ReconcileRepo) CloseVanishedTx(ctx context.Context, tx *sql.Tx, params core.CloseVanishedParams) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE job_archive SET
			status       = 'closed',
			time_to_fill = GREATEST(0, FLOOR(EXTRACT(EPOCH FROM ($2::timestamptz - first_seen)) / 86400))::int
		WHERE company_id = $1 AND status = 'open' AND last_seen < $2`,
		params.CompanyID, params.ObservedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("close vanished jobs for %s: %w", params.CompanyID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("close vanished rows: %w", err)
	}
	return rows, nil
}

// orEmpty replaces a nil slice with an empty one so NOT NULL columns never
// receive SQL NULL.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Ensure ReconcileRepo implements the ReconcileRepository interface.
var _ core.ReconcileRepository = (*ReconcileRepo)(nil)
