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

// CompanyRepo implements the CompanyRepository interface using PostgreSQL.
// Companies are written only by the reconciler (see ReconcileRepo); this
// repository serves the read paths.
type CompanyRepo struct {
	DB *sql.DB
}

// NewCompanyRepo creates a new CompanyRepo instance.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{DB: db}
}

const companyColumns = "id, company_name, ats_type, token, job_count, remote_count, " +
	"hybrid_count, onsite_count, locations, departments, normalized_locations, " +
	"extracted_skills, careers_url, first_discovered, last_updated"

func companyColumnList() []string {
	return []string{
		"id", "company_name", "ats_type", "token", "job_count", "remote_count",
		"hybrid_count", "onsite_count", "locations", "departments", "normalized_locations",
		"extracted_skills", "careers_url", "first_discovered", "last_updated",
	}
}

// GetByID retrieves a company by its stable identifier.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	return r.getByQuery(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByName retrieves a company by its unique name.
func (r *CompanyRepo) GetByName(ctx context.Context, companyName string) (*model.Company, error) {
	if companyName == "" {
		return nil, errors.New("company name is required")
	}
	return r.getByQuery(ctx, `SELECT `+companyColumns+` FROM companies WHERE company_name = $1`, companyName)
}

func (r *CompanyRepo) getByQuery(ctx context.Context, query string, arg any) (*model.Company, error) {
	var company model.Company
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		company, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &company, nil
}

// List retrieves companies based on the provided options.
func (r *CompanyRepo) List(ctx context.Context, opts model.CompanyListOptions) ([]*model.Company, error) {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(companyColumnList()...),
		database.WithLimit(opts.Limit),
		database.WithOffset(opts.Offset),
	}
	if opts.StaleBefore != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("last_updated", database.LessThan, opts.StaleBefore.UTC()),
		))
	}
	if opts.OrderByStale {
		queryOpts = append(queryOpts, database.WithOrderBy("last_updated", "ASC"))
	} else {
		queryOpts = append(queryOpts, database.WithOrderBy("company_name", "ASC"))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("companies", queryOpts...))

	var companies []model.Company
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		companies, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return toPtrSlice(companies), nil
}

// ListStale retrieves companies whose last successful collection is older
// than cutoff, oldest first. This is the refresh pass working set.
func (r *CompanyRepo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*model.Company, error) {
	var companies []model.Company
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+companyColumns+` FROM companies
			WHERE last_updated < $1
			ORDER BY last_updated ASC
			LIMIT $2`, cutoff.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		companies, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list stale companies: %w", err)
	}
	return toPtrSlice(companies), nil
}

// Count returns the total number of confirmed companies.
func (r *CompanyRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return count, nil
}

// Ensure CompanyRepo implements the CompanyRepository interface.
var _ core.CompanyRepository = (*CompanyRepo)(nil)
