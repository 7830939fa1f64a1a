package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/data/database"
	"github.com/hirelens/hirelens/internal/data/pgxutil"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// defaultPurgeBatchSize bounds a single purge DELETE when the caller does not.
const defaultPurgeBatchSize = 1000

// JobArchiveRepo implements the JobArchiveRepository interface using
// PostgreSQL. Rows are written only by the reconciler; this repository serves
// the read paths plus the maintenance purge.
type JobArchiveRepo struct {
	DB *sql.DB
}

// NewJobArchiveRepo creates a new JobArchiveRepo instance.
func NewJobArchiveRepo(db *sql.DB) *JobArchiveRepo {
	return &JobArchiveRepo{DB: db}
}

const jobColumns = "job_hash, company_id, job_title, city, region, country, " +
	"work_type, skills, first_seen, last_seen, status, time_to_fill"

func jobColumnList() []string {
	return []string{
		"job_hash", "company_id", "job_title", "city", "region", "country",
		"work_type", "skills", "first_seen", "last_seen", "status", "time_to_fill",
	}
}

// ListJobs retrieves archived postings based on the provided options.
func (r *JobArchiveRepo) ListJobs(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error) {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(jobColumnList()...),
		database.WithOrderBy("last_seen", "DESC"),
		database.WithLimit(opts.Limit),
		database.WithOffset(opts.Offset),
	}
	if opts.CompanyID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("company_id", database.Equal, opts.CompanyID),
		))
	}
	if opts.Status != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, string(opts.Status)),
		))
	}
	if opts.WorkType != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("work_type", database.Equal, string(opts.WorkType)),
		))
	}
	if opts.Country != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("country", database.Equal, opts.Country),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("job_archive", queryOpts...))

	var jobs []model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		jobs, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return toPtrSlice(jobs), nil
}

// ListByCompany retrieves a company's postings, optionally filtered by status.
func (r *JobArchiveRepo) ListByCompany(ctx context.Context, companyID string, status model.JobStatus) ([]*model.Job, error) {
	if companyID == "" {
		return nil, errors.New("company id is required")
	}
	return r.ListJobs(ctx, model.JobListOptions{CompanyID: companyID, Status: status})
}

// Stats aggregates the whole archive for the stats API. RemoteShare is the
// remote fraction of open postings; AvgTimeToFill covers closed postings.
func (r *JobArchiveRepo) Stats(ctx context.Context) (*core.ArchiveTotals, error) {
	var totals core.ArchiveTotals
	var remoteOpen int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM companies) AS companies,
				COUNT(*) FILTER (WHERE status = 'open') AS open_jobs,
				COUNT(*) FILTER (WHERE status = 'closed') AS closed_jobs,
				COUNT(*) FILTER (WHERE status = 'open' AND work_type = 'remote') AS remote_open,
				COALESCE(AVG(time_to_fill) FILTER (WHERE status = 'closed'), 0) AS avg_time_to_fill,
				(SELECT COUNT(DISTINCT skill)
				   FROM job_archive j, LATERAL unnest(j.skills) AS skill
				  WHERE j.status = 'open') AS distinct_skills
			FROM job_archive`)
		return row.Scan(
			&totals.Companies,
			&totals.OpenJobs,
			&totals.ClosedJobs,
			&remoteOpen,
			&totals.AvgTimeToFill,
			&totals.DistinctSkills,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("archive stats: %w", err)
	}
	if totals.OpenJobs > 0 {
		totals.RemoteShare = float64(remoteOpen) / float64(totals.OpenJobs)
	}
	return &totals, nil
}

// SkillTrends counts skill mentions across open postings first seen since the
// given time, most mentioned first.
func (r *JobArchiveRepo) SkillTrends(ctx context.Context, since time.Time, limit int) ([]model.SkillTrend, error) {
	var trends []model.SkillTrend
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT skill, COUNT(*)::int AS count
			FROM job_archive j, LATERAL unnest(j.skills) AS skill
			WHERE j.status = 'open' AND j.first_seen >= $1
			GROUP BY skill
			ORDER BY count DESC, skill ASC
			LIMIT $2`, since.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		trends, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.SkillTrend])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("skill trends: %w", err)
	}
	return trends, nil
}

// PurgeClosedTx deletes a bounded batch of long-closed postings inside the
// caller's transaction and reports how many rows went away. Callers loop
// until it returns zero.
func (r *JobArchiveRepo) PurgeClosedTx(ctx context.Context, tx *sql.Tx, params core.PurgeClosedParams) (int64, error) {
	batch := params.BatchSize
	if batch <= 0 {
		batch = defaultPurgeBatchSize
	}
	res, err := tx.ExecContext(ctx, `
		DELETE FROM job_archive
		WHERE job_hash IN (
			SELECT job_hash FROM job_archive
			WHERE status = 'closed' AND last_seen < $1
			LIMIT $2
		)`, params.Cutoff.UTC(), batch)
	if err != nil {
		return 0, fmt.Errorf("purge closed jobs: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge closed jobs rows: %w", err)
	}
	return rows, nil
}

// Ensure JobArchiveRepo implements the JobArchiveRepository interface.
var _ core.JobArchiveRepository = (*JobArchiveRepo)(nil)
