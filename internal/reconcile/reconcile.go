// Package reconcile merges collection results into the longitudinal job
// archive, deriving open/closed transitions from set differences.
package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// Reconciler applies collection results to the archive. It is the only
// writer of companies and job_archive rows.
type Reconciler struct {
	repo    core.ReconcileRepository
	logger  *slog.Logger
	metrics statsd.Sink
}

// Options bundles dependencies for NewReconciler.
type Options struct {
	Repo    core.ReconcileRepository
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// NewReconciler validates dependencies and constructs a reconciler.
func NewReconciler(opts Options) (*Reconciler, error) {
	if opts.Repo == nil {
		return nil, errors.New("reconcile: repository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		repo:    opts.Repo,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Apply merges one collection result into the archive inside a single
// per-company transaction: the company row is upserted with the pass
// aggregates, every observed job is inserted or has last_seen bumped, and —
// only when the result is complete — open jobs absent from the observed set
// are closed with their time-to-fill.
//
// A serialization failure or deadlock is retried once; the per-company
// advisory lock makes a second conflict on the same company implausible.
func (r *Reconciler) Apply(ctx context.Context, res *model.CollectionResult) (*model.ReconcileOutcome, error) {
	if res == nil {
		return nil, apperrors.Validation("collection result is required")
	}
	if res.CompanyID == "" {
		return nil, apperrors.Validation("collection result has no company id")
	}
	if res.CollectedAt.IsZero() {
		return nil, apperrors.Validation("collection result has no collection time")
	}

	outcome, err := r.applyOnce(ctx, res)
	if err != nil && isTxConflict(err) && ctx.Err() == nil {
		r.logger.WarnContext(ctx, "reconcile transaction conflict, retrying",
			"company_id", res.CompanyID, "error", err)
		if r.metrics != nil {
			r.metrics.Count("reconcile.retry", 1, map[string]string{"company_id": res.CompanyID})
		}
		outcome, err = r.applyOnce(ctx, res)
	}
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "reconciled company",
		"company", res.CompanyName,
		"company_id", res.CompanyID,
		"jobs_seen", outcome.JobsSeen,
		"jobs_added", outcome.JobsAdded,
		"jobs_closed", outcome.JobsClosed,
		"partial", res.Partial)
	return outcome, nil
}

func (r *Reconciler) applyOnce(ctx context.Context, res *model.CollectionResult) (*model.ReconcileOutcome, error) {
	outcome := &model.ReconcileOutcome{CompanyID: res.CompanyID}

	err := r.repo.WithCompanyTx(ctx, res.CompanyID, func(ctx context.Context, tx *sql.Tx) error {
		if err := r.repo.UpsertCompanyTx(ctx, tx, companyFromResult(res)); err != nil {
			return err
		}

		for i := range res.Jobs {
			inserted, err := r.repo.UpsertJobTx(ctx, tx, jobFromResult(res, &res.Jobs[i]))
			if err != nil {
				return err
			}
			outcome.JobsSeen++
			if inserted {
				outcome.JobsAdded++
			}
		}

		// A partial set proves which jobs are open but not which are gone,
		// so closures only derive from complete results.
		if res.Partial {
			return nil
		}

		closed, err := r.repo.CloseVanishedTx(ctx, tx, core.CloseVanishedParams{
			CompanyID:  res.CompanyID,
			ObservedAt: res.CollectedAt,
		})
		if err != nil {
			return err
		}
		outcome.JobsClosed = int(closed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// companyFromResult builds the company row one pass observed. FirstDiscovered
// stays zero; the upsert writes it only on first insert.
func companyFromResult(res *model.CollectionResult) *model.Company {
	return &model.Company{
		ID:                  res.CompanyID,
		CompanyName:         res.CompanyName,
		ATSType:             res.ATSType,
		Token:               res.Token,
		JobCount:            res.Aggregates.JobCount,
		RemoteCount:         res.Aggregates.RemoteCount,
		HybridCount:         res.Aggregates.HybridCount,
		OnsiteCount:         res.Aggregates.OnsiteCount,
		Locations:           res.Aggregates.Locations,
		Departments:         res.Aggregates.Departments,
		NormalizedLocations: res.Aggregates.NormalizedLocations,
		ExtractedSkills:     res.Aggregates.ExtractedSkills,
		CareersURL:          res.CareersURL,
		LastUpdated:         res.CollectedAt,
	}
}

func jobFromResult(res *model.CollectionResult, job *model.NormalizedJob) *model.Job {
	workType := job.Location.WorkType
	if !workType.Valid() {
		workType = model.WorkOnsite
	}
	return &model.Job{
		JobHash:   job.JobHash,
		CompanyID: res.CompanyID,
		Title:     job.Title,
		City:      job.Location.City,
		Region:    job.Location.Region,
		Country:   job.Location.Country,
		WorkType:  workType,
		Skills:    job.Skills,
		FirstSeen: res.CollectedAt,
		LastSeen:  res.CollectedAt,
		Status:    model.JobOpen,
	}
}

// isTxConflict reports a serialization failure or deadlock, the two
// conditions worth one blind retry.
func isTxConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
