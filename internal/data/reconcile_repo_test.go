package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/testutil"
)

// upsertTestCompany writes the company the way the reconciler does, inside the
// advisory-lock transaction.
func upsertTestCompany(t *testing.T, db *sql.DB, company *model.Company) {
	t.Helper()
	repo := NewReconcileRepo(db)
	err := repo.WithCompanyTx(context.Background(), company.ID, func(ctx context.Context, tx *sql.Tx) error {
		return repo.UpsertCompanyTx(ctx, tx, company)
	})
	require.NoError(t, err)
}

// upsertTestJob writes one archive posting inside the company transaction and
// reports whether the row was newly inserted.
func upsertTestJob(t *testing.T, db *sql.DB, job *model.Job) bool {
	t.Helper()
	repo := NewReconcileRepo(db)
	var inserted bool
	err := repo.WithCompanyTx(context.Background(), job.CompanyID, func(ctx context.Context, tx *sql.Tx) error {
		var upsertErr error
		inserted, upsertErr = repo.UpsertJobTx(ctx, tx, job)
		return upsertErr
	})
	require.NoError(t, err)
	return inserted
}

func TestReconcileRepo_UpsertCompany_PreservesFirstDiscovered(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		companies := NewCompanyRepo(db)

		t1 := testutil.TestTime()
		t2 := t1.Add(6 * time.Hour)

		c := testutil.NewCompany().
			WithCounts(5, 2, 1, 2).
			WithSkills("go", "python").
			WithLocations("Berlin, Germany").
			WithFirstDiscovered(t1).
			WithLastUpdated(t1).
			Build()
		upsertTestCompany(t, db, c)

		got, err := companies.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.JobCount)
		assert.Equal(t, []string{"go", "python"}, got.ExtractedSkills)
		assert.WithinDuration(t, t1, got.FirstDiscovered, time.Second)
		assert.WithinDuration(t, t1, got.LastUpdated, time.Second)

		// a later pass refreshes aggregates but never first_discovered
		c.JobCount = 7
		c.RemoteCount = 3
		c.LastUpdated = t2
		c.FirstDiscovered = t2
		upsertTestCompany(t, db, c)

		got, err = companies.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.JobCount)
		assert.Equal(t, 3, got.RemoteCount)
		assert.WithinDuration(t, t1, got.FirstDiscovered, time.Second)
		assert.WithinDuration(t, t2, got.LastUpdated, time.Second)
	})
}

func TestReconcileRepo_UpsertCompany_NameConflict(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		name := testutil.UniqueName("same-name")
		a := testutil.NewCompany().WithName(name).Build()
		upsertTestCompany(t, db, a)

		// a different board claiming the same company name violates the
		// name uniqueness constraint
		b := testutil.NewCompany().WithName(name).Build()
		repo := NewReconcileRepo(db)
		err := repo.WithCompanyTx(context.Background(), b.ID, func(ctx context.Context, tx *sql.Tx) error {
			return repo.UpsertCompanyTx(ctx, tx, b)
		})
		require.Error(t, err)
	})
}

func TestReconcileRepo_UpsertJob_NewAndRecurring(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		archive := NewJobArchiveRepo(db)

		t1 := testutil.TestTime()
		t2 := t1.Add(6 * time.Hour)

		c := testutil.NewCompany().Build()
		upsertTestCompany(t, db, c)

		job := testutil.NewJob(c.ID).
			WithTitle("Senior Gopher").
			WithLocation("Berlin, Germany", "Berlin", "", "Germany").
			WithWorkType(model.WorkHybrid).
			WithSkills("go").
			WithSeenAt(t1).
			Build()
		assert.True(t, upsertTestJob(t, db, job))

		// the same posting observed on the next pass keeps first_seen
		recur := testutil.NewJob(c.ID).
			WithTitle("Senior Gopher").
			WithLocation("Berlin, Germany", "Berlin", "", "Germany").
			WithWorkType(model.WorkHybrid).
			WithSkills("go").
			WithSeenAt(t2).
			Build()
		require.Equal(t, job.JobHash, recur.JobHash)
		assert.False(t, upsertTestJob(t, db, recur))

		rows, err := archive.ListByCompany(ctx, c.ID, model.JobOpen)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Senior Gopher", rows[0].Title)
		assert.Equal(t, []string{"go"}, rows[0].Skills)
		assert.WithinDuration(t, t1, rows[0].FirstSeen, time.Second)
		assert.WithinDuration(t, t2, rows[0].LastSeen, time.Second)
	})
}

func TestReconcileRepo_UpsertJob_LastSeenMonotonic(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		archive := NewJobArchiveRepo(db)

		t1 := testutil.TestTime()
		t2 := t1.Add(12 * time.Hour)

		c := testutil.NewCompany().Build()
		upsertTestCompany(t, db, c)

		upsertTestJob(t, db, testutil.NewJob(c.ID).WithTitle("Analyst").WithSeenAt(t2).Build())

		// a delayed replay with an older timestamp must not move last_seen back
		upsertTestJob(t, db, testutil.NewJob(c.ID).WithTitle("Analyst").WithSeenAt(t1).Build())

		rows, err := archive.ListByCompany(ctx, c.ID, model.JobOpen)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.WithinDuration(t, t2, rows[0].LastSeen, time.Second)
	})
}

func TestReconcileRepo_CloseVanished_DaysAndReopen(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewReconcileRepo(db)
		archive := NewJobArchiveRepo(db)

		t1 := testutil.TestTime()
		t2 := t1.Add(49 * time.Hour) // just past two whole days

		c := testutil.NewCompany().Build()
		upsertTestCompany(t, db, c)

		stays := testutil.NewJob(c.ID).WithTitle("Backend Engineer").WithSeenAt(t1).Build()
		vanishes := testutil.NewJob(c.ID).WithTitle("Data Engineer").WithSeenAt(t1).Build()
		upsertTestJob(t, db, stays)
		upsertTestJob(t, db, vanishes)

		// next pass observes only one of the two
		upsertTestJob(t, db, testutil.NewJob(c.ID).WithTitle("Backend Engineer").WithSeenAt(t2).Build())

		var closed int64
		err := repo.WithCompanyTx(ctx, c.ID, func(ctx context.Context, tx *sql.Tx) error {
			var closeErr error
			closed, closeErr = repo.CloseVanishedTx(ctx, tx, core.CloseVanishedParams{CompanyID: c.ID, ObservedAt: t2})
			return closeErr
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), closed)

		closedRows, err := archive.ListByCompany(ctx, c.ID, model.JobClosed)
		require.NoError(t, err)
		require.Len(t, closedRows, 1)
		assert.Equal(t, "Data Engineer", closedRows[0].Title)
		if assert.NotNil(t, closedRows[0].TimeToFill) {
			assert.Equal(t, 2, *closedRows[0].TimeToFill)
		}

		openRows, err := archive.ListByCompany(ctx, c.ID, model.JobOpen)
		require.NoError(t, err)
		require.Len(t, openRows, 1)
		assert.Equal(t, "Backend Engineer", openRows[0].Title)

		// replaying the same pass closes nothing further
		err = repo.WithCompanyTx(ctx, c.ID, func(ctx context.Context, tx *sql.Tx) error {
			var closeErr error
			closed, closeErr = repo.CloseVanishedTx(ctx, tx, core.CloseVanishedParams{CompanyID: c.ID, ObservedAt: t2})
			return closeErr
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), closed)

		// the posting coming back reopens the same row
		t3 := t2.Add(24 * time.Hour)
		assert.False(t, upsertTestJob(t, db, testutil.NewJob(c.ID).WithTitle("Data Engineer").WithSeenAt(t3).Build()))

		openRows, err = archive.ListByCompany(ctx, c.ID, model.JobOpen)
		require.NoError(t, err)
		require.Len(t, openRows, 2)
		for _, row := range openRows {
			if row.Title == "Data Engineer" {
				assert.Nil(t, row.TimeToFill)
				assert.WithinDuration(t, t1, row.FirstSeen, time.Second)
			}
		}
	})
}

func TestReconcileRepo_WithCompanyTx_SerializesWrites(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewReconcileRepo(db)

		c := testutil.NewCompany().Build()
		upsertTestCompany(t, db, c)

		// read-modify-write that loses updates unless the lock serializes it
		increment := func() error {
			return repo.WithCompanyTx(ctx, c.ID, func(ctx context.Context, tx *sql.Tx) error {
				var count int
				if err := tx.QueryRowContext(ctx, "SELECT job_count FROM companies WHERE id = $1", c.ID).Scan(&count); err != nil {
					return err
				}
				time.Sleep(100 * time.Millisecond)
				_, err := tx.ExecContext(ctx, "UPDATE companies SET job_count = $2 WHERE id = $1", c.ID, count+1)
				return err
			})
		}

		runner := testutil.NewConcurrentTestRunner(t, db)
		runner.AssertNoErrors(runner.RunConcurrent(increment, increment))

		var final int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT job_count FROM companies WHERE id = $1", c.ID).Scan(&final))
		assert.Equal(t, 2, final)
	})
}

func TestReconcileRepo_WithCompanyTx_EmptyID(t *testing.T) {
	repo := NewReconcileRepo(nil)
	err := repo.WithCompanyTx(context.Background(), "", func(context.Context, *sql.Tx) error { return nil })
	assert.Error(t, err)
}
