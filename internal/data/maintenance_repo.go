package data

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/data/pgxutil"
)

// MaintenanceRepo implements the MaintenanceRepository interface using
// PostgreSQL advisory locks, so snapshot and retention work runs on exactly
// one process per tick even with several replicas scheduling it.
type MaintenanceRepo struct {
	DB *sql.DB
}

// NewMaintenanceRepo creates a new MaintenanceRepo instance.
func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo {
	return &MaintenanceRepo{DB: db}
}

// fnvHash converts a string to an int64 using FNV-1a hash, for use as a
// PostgreSQL advisory lock key.
func fnvHash(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	u := h.Sum64()
	if u > uint64(math.MaxInt64) {
		u %= uint64(math.MaxInt64)
	}
	return int64(u) // #nosec G115 -- value is explicitly bounded to <= MaxInt64 before casting to int64.
}

// TryWithTaskLock attempts to acquire an advisory lock for the given task name.
// Uses FNV-1a 64-bit hash of taskName for the lock key.
// If the lock is acquired, executes fn within the same transaction.
// Return semantics:
//   - (false, nil): lock not acquired; fn was not executed
//   - (true, nil): lock acquired; fn executed and succeeded
//   - (true, err): lock acquired; fn executed and failed with err
func (r *MaintenanceRepo) TryWithTaskLock(
	ctx context.Context,
	taskName string,
	fn func(context.Context, *sql.Tx) error,
) (bool, error) {
	lockKey := fnvHash(taskName)

	var locked bool
	var fnErr error
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			if err := tx.QueryRowContext(ctx, "SELECT pg_try_advisory_xact_lock($1)", lockKey).Scan(&locked); err != nil {
				return fmt.Errorf("acquire task lock %q: %w", taskName, err)
			}
			if !locked {
				return nil
			}
			fnErr = fn(ctx, tx)
			return fnErr
		},
	})
	if err != nil {
		if fnErr != nil {
			// fn failed; the transaction rolled back but the lock was held.
			return true, err
		}
		return false, err
	}
	return locked, nil
}

// Ensure MaintenanceRepo implements the MaintenanceRepository interface.
var _ core.MaintenanceRepository = (*MaintenanceRepo)(nil)
