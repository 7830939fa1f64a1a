package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/data/pgxutil"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// Column list for snapshot queries.
const snapshot6hColumns = "id, snapshot_time, company_id, job_count, remote_count, hybrid_count, onsite_count"

const monthlyColumns = "id, year, month, company_id, job_count, remote_count, hybrid_count, onsite_count"

// SnapshotRepo implements the SnapshotRepository interface using PostgreSQL.
// The Tx methods run inside the maintenance task-lock transaction so only
// one process writes a given tick.
type SnapshotRepo struct {
	DB *sql.DB
}

// NewSnapshotRepo creates a new SnapshotRepo instance.
func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{DB: db}
}

// Capture6hTx copies every company's current aggregates into six-hour
// snapshot rows stamped at. Returns the number of rows written.
func (r *SnapshotRepo) Capture6hTx(ctx context.Context, tx *sql.Tx, at time.Time) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots_6h (snapshot_time, company_id, job_count, remote_count, hybrid_count, onsite_count)
		SELECT $1, id, job_count, remote_count, hybrid_count, onsite_count
		FROM companies`,
		at.UTC())
	if err != nil {
		return 0, fmt.Errorf("capture snapshots: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("capture snapshots rows: %w", err)
	}
	return rows, nil
}

// Prune6hTx deletes six-hour snapshots older than the cutoff, up to
// params.BatchSize rows per call. Callers loop until it returns zero.
func (r *SnapshotRepo) Prune6hTx(ctx context.Context, tx *sql.Tx, params core.PruneSnapshotsParams) (int64, error) {
	batch := params.BatchSize
	if batch <= 0 {
		batch = defaultPurgeBatchSize
	}
	res, err := tx.ExecContext(ctx, `
		DELETE FROM snapshots_6h
		WHERE id IN (
			SELECT id FROM snapshots_6h WHERE snapshot_time < $1 LIMIT $2
		)`,
		params.Cutoff.UTC(), batch)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune snapshots rows: %w", err)
	}
	return rows, nil
}

// UpsertMonthlyTx records one aggregate row per company for the given
// calendar month. Re-running within the same month overwrites the counts in
// place, so the stored row always reflects the latest capture.
func (r *SnapshotRepo) UpsertMonthlyTx(ctx context.Context, tx *sql.Tx, params core.MonthlySnapshotParams) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO monthly_snapshots (year, month, company_id, job_count, remote_count, hybrid_count, onsite_count)
		SELECT $1, $2, id, job_count, remote_count, hybrid_count, onsite_count
		FROM companies
		ON CONFLICT (company_id, year, month) DO UPDATE SET
			job_count    = EXCLUDED.job_count,
			remote_count = EXCLUDED.remote_count,
			hybrid_count = EXCLUDED.hybrid_count,
			onsite_count = EXCLUDED.onsite_count`,
		params.Year, int(params.Month))
	if err != nil {
		return 0, fmt.Errorf("upsert monthly snapshots %d-%02d: %w", params.Year, params.Month, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("upsert monthly snapshots rows: %w", err)
	}
	return rows, nil
}

// List6hByCompany returns the company's six-hour snapshots, newest first.
func (r *SnapshotRepo) List6hByCompany(ctx context.Context, companyID string, limit int) ([]*model.Snapshot6h, error) {
	if limit <= 0 {
		// Ninety days of six-hour rows.
		limit = 360
	}
	query := fmt.Sprintf(
		"SELECT %s FROM snapshots_6h WHERE company_id = $1 ORDER BY snapshot_time DESC LIMIT $2",
		snapshot6hColumns)

	var snaps []*model.Snapshot6h
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, companyID, limit)
		if err != nil {
			return err
		}
		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Snapshot6h])
		if err != nil {
			return err
		}
		snaps = toPtrSlice(collected)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots for %s: %w", companyID, err)
	}
	return snaps, nil
}

// ListMonthlyByCompany returns the company's monthly snapshots, newest first.
func (r *SnapshotRepo) ListMonthlyByCompany(ctx context.Context, companyID string) ([]*model.MonthlySnapshot, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM monthly_snapshots WHERE company_id = $1 ORDER BY year DESC, month DESC",
		monthlyColumns)

	var snaps []*model.MonthlySnapshot
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, companyID)
		if err != nil {
			return err
		}
		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.MonthlySnapshot])
		if err != nil {
			return err
		}
		snaps = toPtrSlice(collected)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list monthly snapshots for %s: %w", companyID, err)
	}
	return snaps, nil
}

// Ensure SnapshotRepo implements both snapshot interfaces.
var (
	_ core.SnapshotRepository = (*SnapshotRepo)(nil)
	_ core.SnapshotReader     = (*SnapshotRepo)(nil)
)
