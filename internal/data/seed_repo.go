package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/data/pgxutil"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/slug"
)

// SeedRepo implements the SeedRepository interface using PostgreSQL.
type SeedRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSeedRepo creates a new SeedRepo instance.
func NewSeedRepo(db *sql.DB) *SeedRepo {
	return &SeedRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSeedRepoWithTimeProvider creates a new SeedRepo with a custom time provider.
func NewSeedRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SeedRepo {
	return &SeedRepo{DB: db, timeProvider: tp}
}

const seedColumns = "id, company_name, token_slug, source, tier, enabled, " +
	"last_expanded, last_tested, is_hit, total_tested, total_hits, hit_rate, created_at"

// Create registers a new candidate company. The token slug is derived from
// the company name when the request does not carry one.
func (r *SeedRepo) Create(ctx context.Context, req *model.CreateSeedRequest) (*model.Seed, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tokenSlug := req.TokenSlug
	if tokenSlug == "" {
		tokenSlug = slug.Make(req.CompanyName)
	}

	var seed model.Seed
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO seeds (company_name, token_slug, source, tier, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+seedColumns,
			req.CompanyName, tokenSlug, req.Source, req.Tier, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		seed, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Seed])
		return err
	})
	if err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &seed, nil
}

// GetByID retrieves a seed by its ID.
func (r *SeedRepo) GetByID(ctx context.Context, id int64) (*model.Seed, error) {
	return r.getByQuery(ctx, `SELECT `+seedColumns+` FROM seeds WHERE id = $1`, id)
}

// GetByName retrieves a seed by its unique company name.
func (r *SeedRepo) GetByName(ctx context.Context, companyName string) (*model.Seed, error) {
	if companyName == "" {
		return nil, errors.New("company name is required")
	}
	return r.getByQuery(ctx, `SELECT `+seedColumns+` FROM seeds WHERE company_name = $1`, companyName)
}

func (r *SeedRepo) getByQuery(ctx context.Context, query string, arg any) (*model.Seed, error) {
	var seed model.Seed
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		seed, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Seed])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSeedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get seed: %w", err)
	}
	return &seed, nil
}

// List retrieves seeds ordered by id.
func (r *SeedRepo) List(ctx context.Context, limit, offset int) ([]*model.Seed, error) {
	var seeds []model.Seed
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		query := `SELECT ` + seedColumns + ` FROM seeds ORDER BY id`
		var args []any
		if limit > 0 {
			args = append(args, limit)
			query += fmt.Sprintf(" LIMIT $%d", len(args))
		}
		if offset > 0 {
			args = append(args, offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		seeds, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Seed])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}
	return toPtrSlice(seeds), nil
}

// ListUntested retrieves enabled seeds that have never been probed, best
// tier first. This is the discovery pass working set.
func (r *SeedRepo) ListUntested(ctx context.Context, limit int) ([]*model.Seed, error) {
	var seeds []model.Seed
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+seedColumns+` FROM seeds
			WHERE enabled AND is_hit = FALSE AND last_tested IS NULL
			ORDER BY tier ASC, id ASC
			LIMIT $1`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		seeds, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Seed])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list untested seeds: %w", err)
	}
	return toPtrSlice(seeds), nil
}

// BulkInsert registers a batch of expander-derived seeds, skipping names that
// already exist. Returns the number of rows actually inserted.
func (r *SeedRepo) BulkInsert(ctx context.Context, reqs []model.CreateSeedRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, nil
	}

	names := make([]string, 0, len(reqs))
	slugs := make([]string, 0, len(reqs))
	sources := make([]string, 0, len(reqs))
	tiers := make([]int, 0, len(reqs))
	for i := range reqs {
		req := reqs[i]
		if err := req.Validate(); err != nil {
			return 0, fmt.Errorf("invalid seed %q: %w", req.CompanyName, err)
		}
		tokenSlug := req.TokenSlug
		if tokenSlug == "" {
			tokenSlug = slug.Make(req.CompanyName)
		}
		names = append(names, req.CompanyName)
		slugs = append(slugs, tokenSlug)
		sources = append(sources, req.Source)
		tiers = append(tiers, int(req.Tier))
	}

	now := r.timeProvider.Now().UTC()
	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		// RETURNING 1 counts only the rows that survived the conflict clause.
		rows, err := conn.Query(ctx, `
			INSERT INTO seeds (company_name, token_slug, source, tier, last_expanded, created_at)
			SELECT n, s, src, t, $5, $5
			FROM UNNEST($1::text[], $2::text[], $3::text[], $4::int[]) AS u(n, s, src, t)
			ON CONFLICT (company_name) DO NOTHING
			RETURNING 1`,
			names, slugs, sources, tiers, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			count++
		}
		return rows.Err()
	})
	if err != nil {
		return 0, fmt.Errorf("bulk insert seeds: %w", err)
	}
	return count, nil
}

// MarkTested records one probe attempt on a seed. A hit is sticky: once a
// seed has produced a board it stays marked as a hit.
func (r *SeedRepo) MarkTested(ctx context.Context, params core.MarkSeedTestedParams) error {
	var updated bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			UPDATE seeds SET
				last_tested  = $2,
				is_hit       = is_hit OR $3,
				total_tested = total_tested + 1,
				total_hits   = total_hits + CASE WHEN $3 THEN 1 ELSE 0 END,
				hit_rate     = (total_hits + CASE WHEN $3 THEN 1 ELSE 0 END)::double precision
				               / (total_tested + 1)
			WHERE id = $1`,
			params.SeedID, params.TestedAt.UTC(), params.Hit)
		if err != nil {
			return err
		}
		updated = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return fmt.Errorf("mark seed tested: %w", err)
	}
	if !updated {
		return ErrSeedNotFound
	}
	return nil
}

// Stats aggregates the seed funnel. HitRate is hits over tested seeds, not
// over the whole table, so a backlog of untested seeds does not dilute it.
func (r *SeedRepo) Stats(ctx context.Context) (*core.SeedStats, error) {
	var stats core.SeedStats
	var tested int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			SELECT
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE last_tested IS NULL) AS untested,
				COUNT(*) FILTER (WHERE last_tested IS NOT NULL) AS tested,
				COUNT(*) FILTER (WHERE is_hit) AS hits
			FROM seeds`)
		return row.Scan(&stats.Total, &stats.Untested, &tested, &stats.Hits)
	})
	if err != nil {
		return nil, fmt.Errorf("seed stats: %w", err)
	}
	if tested > 0 {
		stats.HitRate = float64(stats.Hits) / float64(tested)
	}
	return &stats, nil
}

// mapWriteErr maps database errors to domain-specific errors.
func (r *SeedRepo) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrSeedNameExists
	}
	return err
}

// toPtrSlice converts a collected row slice into the pointer slice the ports return.
func toPtrSlice[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// Ensure SeedRepo implements the SeedRepository interface.
var _ core.SeedRepository = (*SeedRepo)(nil)
