package httpx_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/data"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/testutil/workflowtest"
)

// repoProvider adapts the data layer to the workflow harness. It lives here
// rather than in workflowtest so that package stays off a direct data import.
type repoProvider struct{}

//nolint:ireturn // the provider contract returns the core ports
func (repoProvider) SeedRepository(db *sql.DB) core.SeedRepository {
	return data.NewSeedRepo(db)
}

//nolint:ireturn // the provider contract returns the core ports
func (repoProvider) CompanyRepository(db *sql.DB) core.CompanyRepository {
	return data.NewCompanyRepo(db)
}

//nolint:ireturn // the provider contract returns the core ports
func (repoProvider) JobArchiveRepository(db *sql.DB) core.JobArchiveRepository {
	return data.NewJobArchiveRepo(db)
}

//nolint:ireturn // the provider contract returns the core ports
func (repoProvider) ReconcileRepository(db *sql.DB) core.ReconcileRepository {
	return data.NewReconcileRepo(db)
}

//nolint:ireturn // the provider contract returns the core ports
func (repoProvider) SnapshotRepository(db *sql.DB) core.SnapshotRepository {
	return data.NewSnapshotRepo(db)
}

//nolint:ireturn // the provider contract returns the core ports
func (repoProvider) SnapshotReader(db *sql.DB) core.SnapshotReader {
	return data.NewSnapshotRepo(db)
}

//nolint:ireturn // the provider contract returns the core ports
func (repoProvider) MaintenanceRepository(db *sql.DB) core.MaintenanceRepository {
	return data.NewMaintenanceRepo(db)
}

// TestSeedToArchiveWorkflow drives the full pipeline over a real database:
// a seed registered through the API is discovered, its board collected and
// reconciled, a later refresh closes a vanished posting, and the API reports
// every step.
func TestSeedToArchiveWorkflow(t *testing.T) {
	opts := workflowtest.Options{RepositoryProvider: repoProvider{}}

	workflowtest.WithHarness(t, opts, func(h *workflowtest.Harness) {
		client := h.NewClient()

		company := h.DiscoverBoard("Acme Robotics", "acme-robotics",
			workflowtest.BoardJob{Title: "Platform Engineer", Location: "Remote", WorkType: model.WorkRemote, Skills: []string{"go", "kubernetes"}},
			workflowtest.BoardJob{Title: "Data Engineer", Location: "Berlin, Germany", WorkType: model.WorkOnsite},
		)

		assert.Equal(t, "Acme Robotics", company.CompanyName)
		assert.Equal(t, model.ATSGreenhouse, company.ATSType)
		assert.Equal(t, "acme-robotics", company.Token)
		assert.Equal(t, 2, company.JobCount)
		assert.Equal(t, 1, company.RemoteCount)

		open := client.CompanyJobs(company.ID, model.JobOpen)
		require.Len(t, open, 2)

		// The probe outcome lands on the seed row.
		seed, err := h.SeedRepo.GetByName(context.Background(), "Acme Robotics")
		require.NoError(t, err)
		assert.True(t, seed.IsHit)
		require.NotNil(t, seed.LastTested)

		// The board drops a posting; the next refresh closes it.
		h.Collector.SetBoard("acme-robotics",
			workflowtest.BoardJob{Title: "Platform Engineer", Location: "Remote", WorkType: model.WorkRemote, Skills: []string{"go", "kubernetes"}},
		)
		summary := h.RunPass(model.PassRefresh)
		assert.Equal(t, 1, summary.Stats.JobsClosed)

		open = client.CompanyJobs(company.ID, model.JobOpen)
		require.Len(t, open, 1)
		assert.Equal(t, "Platform Engineer", open[0].Title)

		closed := client.CompanyJobs(company.ID, model.JobClosed)
		require.Len(t, closed, 1)
		assert.Equal(t, "Data Engineer", closed[0].Title)
		require.NotNil(t, closed[0].TimeToFill)
		assert.GreaterOrEqual(t, *closed[0].TimeToFill, 0)

		stats := client.Stats()
		assert.Equal(t, 1, stats.Companies)
		assert.Equal(t, 1, stats.OpenJobs)
		assert.Equal(t, 1, stats.ClosedJobs)
		assert.Equal(t, 1, stats.TotalSeeds)
	})
}

// TestDiscoveryRecordsMisses verifies that a seed whose probes all miss is
// marked tested without ever becoming a company.
func TestDiscoveryRecordsMisses(t *testing.T) {
	opts := workflowtest.Options{RepositoryProvider: repoProvider{}}

	workflowtest.WithHarness(t, opts, func(h *workflowtest.Harness) {
		client := h.NewClient()
		h.Prober.Miss("Ghost Co")
		client.RegisterSeed(&model.CreateSeedRequest{CompanyName: "Ghost Co", TokenSlug: "ghost-co"})

		summary := h.RunPass(model.PassDiscovery)
		assert.Equal(t, 1, summary.Stats.Tested)
		assert.Equal(t, 0, summary.Stats.Hits)

		seed, err := h.SeedRepo.GetByName(context.Background(), "Ghost Co")
		require.NoError(t, err)
		assert.False(t, seed.IsHit)
		require.NotNil(t, seed.LastTested)

		assert.Empty(t, client.ListCompanies())
	})
}

// TestTriggeredPassRunsInBackground covers the asynchronous trigger path:
// POST /api/passes starts the pass detached from the request, and the run
// shows up in the pass history once it finishes.
func TestTriggeredPassRunsInBackground(t *testing.T) {
	opts := workflowtest.Options{RepositoryProvider: repoProvider{}}

	workflowtest.WithHarness(t, opts, func(h *workflowtest.Harness) {
		client := h.NewClient()

		runID := client.TriggerPass(model.PassMaintenance)
		require.NotEmpty(t, runID)
		h.AwaitIdle(30 * time.Second)

		var found bool
		for _, run := range h.Passes.History() {
			if run.ID == runID {
				found = true
				assert.Equal(t, model.PassMaintenance, run.Mode)
				assert.Empty(t, run.Error)
			}
		}
		assert.True(t, found, "triggered run %s missing from history", runID)
	})
}
