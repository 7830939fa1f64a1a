package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/observability/statsd"
	"github.com/hirelens/hirelens/internal/seedexp"
)

// fakeSeedRepo is an in-memory core.SeedRepository.
type fakeSeedRepo struct {
	mu            sync.Mutex
	seeds         map[int64]*model.Seed
	untested      []*model.Seed
	listErr       error
	createErr     error
	markErr       error
	created        []model.CreateSeedRequest
	marked         []core.MarkSeedTestedParams
	stats          *core.SeedStats
	lastListLimit  int
	lastListOffset int
}

var _ core.SeedRepository = (*fakeSeedRepo)(nil)

func (f *fakeSeedRepo) Create(_ context.Context, req *model.CreateSeedRequest) (*model.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *req)
	return &model.Seed{
		ID:          int64(len(f.created)),
		CompanyName: req.CompanyName,
		TokenSlug:   req.TokenSlug,
		Source:      req.Source,
		Tier:        req.Tier,
		Enabled:     true,
		CreatedAt:   time.Now(),
	}, nil
}

func (f *fakeSeedRepo) GetByID(_ context.Context, id int64) (*model.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seed, ok := f.seeds[id]; ok {
		return seed, nil
	}
	return nil, apperrors.NotFoundf("seed %d not found", id)
}

func (f *fakeSeedRepo) GetByName(_ context.Context, name string) (*model.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seed := range f.seeds {
		if seed.CompanyName == name {
			return seed, nil
		}
	}
	return nil, apperrors.NotFoundf("seed %q not found", name)
}

func (f *fakeSeedRepo) List(_ context.Context, limit, offset int) ([]*model.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastListLimit = limit
	f.lastListOffset = offset
	return f.untested, nil
}

func (f *fakeSeedRepo) ListUntested(_ context.Context, limit int) ([]*model.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastListLimit = limit
	return f.untested, nil
}

func (f *fakeSeedRepo) BulkInsert(_ context.Context, reqs []model.CreateSeedRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, reqs...)
	return len(reqs), nil
}

func (f *fakeSeedRepo) MarkTested(_ context.Context, params core.MarkSeedTestedParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, params)
	return nil
}

func (f *fakeSeedRepo) Stats(_ context.Context) (*core.SeedStats, error) {
	if f.stats == nil {
		return &core.SeedStats{}, nil
	}
	return f.stats, nil
}

func (f *fakeSeedRepo) markedParams() []core.MarkSeedTestedParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.MarkSeedTestedParams, len(f.marked))
	copy(out, f.marked)
	return out
}

// fakeCompanyRepo is an in-memory core.CompanyRepository.
type fakeCompanyRepo struct {
	mu         sync.Mutex
	companies  map[string]*model.Company
	stale      []*model.Company
	listErr    error
	lastCutoff time.Time
	lastLimit  int
	lastOpts   model.CompanyListOptions
}

var _ core.CompanyRepository = (*fakeCompanyRepo)(nil)

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if company, ok := f.companies[id]; ok {
		return company, nil
	}
	return nil, apperrors.NotFoundf("company %s not found", id)
}

func (f *fakeCompanyRepo) GetByName(_ context.Context, name string) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, company := range f.companies {
		if company.CompanyName == name {
			return company, nil
		}
	}
	return nil, apperrors.NotFoundf("company %q not found", name)
}

func (f *fakeCompanyRepo) List(_ context.Context, opts model.CompanyListOptions) ([]*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastOpts = opts
	return f.stale, nil
}

func (f *fakeCompanyRepo) ListStale(_ context.Context, cutoff time.Time, limit int) ([]*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastCutoff = cutoff
	f.lastLimit = limit
	return f.stale, nil
}

func (f *fakeCompanyRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.companies), nil
}

// fakeArchiveRepo is an in-memory core.JobArchiveRepository.
type fakeArchiveRepo struct {
	mu          sync.Mutex
	jobs        []*model.Job
	totals      *core.ArchiveTotals
	trends      []model.SkillTrend
	purged      int64
	purgeErr    error
	lastOpts    model.JobListOptions
	lastStatus  model.JobStatus
	lastSince   time.Time
	lastLimit   int
	purgeParams core.PurgeClosedParams
}

var _ core.JobArchiveRepository = (*fakeArchiveRepo)(nil)

func (f *fakeArchiveRepo) ListJobs(_ context.Context, opts model.JobListOptions) ([]*model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastOpts = opts
	return f.jobs, nil
}

func (f *fakeArchiveRepo) ListByCompany(_ context.Context, companyID string, status model.JobStatus) ([]*model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastStatus = status
	var out []*model.Job
	for _, job := range f.jobs {
		if job.CompanyID == companyID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeArchiveRepo) Stats(_ context.Context) (*core.ArchiveTotals, error) {
	if f.totals == nil {
		return &core.ArchiveTotals{}, nil
	}
	return f.totals, nil
}

func (f *fakeArchiveRepo) SkillTrends(_ context.Context, since time.Time, limit int) ([]model.SkillTrend, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSince = since
	f.lastLimit = limit
	return f.trends, nil
}

// PurgeClosedTx serves the backlog in batch-sized chunks so drain loops
// behave as they would against a real table.
func (f *fakeArchiveRepo) PurgeClosedTx(_ context.Context, _ *sql.Tx, params core.PurgeClosedParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	f.purgeParams = params
	n := f.purged
	if params.BatchSize > 0 && n > int64(params.BatchSize) {
		n = int64(params.BatchSize)
	}
	f.purged -= n
	return n, nil
}

// fakeSnapshotRepo is an in-memory core.SnapshotRepository and
// core.SnapshotReader.
type fakeSnapshotRepo struct {
	mu            sync.Mutex
	captured      int64
	pruned        int64
	monthly       int64
	captureErr    error
	pruneErr      error
	monthlyErr    error
	capturedAt    time.Time
	pruneParams   core.PruneSnapshotsParams
	monthlyParams core.MonthlySnapshotParams

	recent           []*model.Snapshot6h
	monthlyRows      []*model.MonthlySnapshot
	readErr          error
	lastHistoryLimit int
}

var (
	_ core.SnapshotRepository = (*fakeSnapshotRepo)(nil)
	_ core.SnapshotReader     = (*fakeSnapshotRepo)(nil)
)

func (f *fakeSnapshotRepo) Capture6hTx(_ context.Context, _ *sql.Tx, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.captureErr != nil {
		return 0, f.captureErr
	}
	f.capturedAt = at
	return f.captured, nil
}

// Prune6hTx serves the backlog in batch-sized chunks so drain loops behave
// as they would against a real table.
func (f *fakeSnapshotRepo) Prune6hTx(_ context.Context, _ *sql.Tx, params core.PruneSnapshotsParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pruneErr != nil {
		return 0, f.pruneErr
	}
	f.pruneParams = params
	n := f.pruned
	if params.BatchSize > 0 && n > int64(params.BatchSize) {
		n = int64(params.BatchSize)
	}
	f.pruned -= n
	return n, nil
}

func (f *fakeSnapshotRepo) UpsertMonthlyTx(_ context.Context, _ *sql.Tx, params core.MonthlySnapshotParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.monthlyErr != nil {
		return 0, f.monthlyErr
	}
	f.monthlyParams = params
	return f.monthly, nil
}

func (f *fakeSnapshotRepo) List6hByCompany(_ context.Context, _ string, limit int) ([]*model.Snapshot6h, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastHistoryLimit = limit
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.recent, nil
}

func (f *fakeSnapshotRepo) ListMonthlyByCompany(_ context.Context, _ string) ([]*model.MonthlySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.monthlyRows, nil
}

// fakeMaintenanceRepo runs the locked function directly with a nil
// transaction, or pretends the lock is held elsewhere.
type fakeMaintenanceRepo struct {
	busy  bool
	err   error
	tasks []string
}

var _ core.MaintenanceRepository = (*fakeMaintenanceRepo)(nil)

func (f *fakeMaintenanceRepo) TryWithTaskLock(
	ctx context.Context,
	taskName string,
	fn func(context.Context, *sql.Tx) error,
) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.tasks = append(f.tasks, taskName)
	if f.busy {
		return false, nil
	}
	return true, fn(ctx, nil)
}

// fakeProber routes ProbeSeed through a per-test hook.
type fakeProber struct {
	mu    sync.Mutex
	calls []int64
	fn    func(ctx context.Context, seed *model.Seed) (*model.ProbeOutcome, error)
}

var _ SeedProber = (*fakeProber)(nil)

func (f *fakeProber) ProbeSeed(ctx context.Context, seed *model.Seed) (*model.ProbeOutcome, error) {
	f.mu.Lock()
	f.calls = append(f.calls, seed.ID)
	f.mu.Unlock()
	return f.fn(ctx, seed)
}

func (f *fakeProber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeCollector routes Collect through a per-test hook.
type fakeCollector struct {
	mu        sync.Mutex
	companies []*model.Company
	fn        func(ctx context.Context, company *model.Company) (*model.CollectionResult, error)
}

var _ BoardCollector = (*fakeCollector)(nil)

func (f *fakeCollector) Collect(ctx context.Context, company *model.Company) (*model.CollectionResult, error) {
	f.mu.Lock()
	f.companies = append(f.companies, company)
	f.mu.Unlock()
	return f.fn(ctx, company)
}

func (f *fakeCollector) collected() []*model.Company {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Company, len(f.companies))
	copy(out, f.companies)
	return out
}

// fakeReconciler routes Apply through a per-test hook.
type fakeReconciler struct {
	mu      sync.Mutex
	applied []*model.CollectionResult
	fn      func(ctx context.Context, res *model.CollectionResult) (*model.ReconcileOutcome, error)
}

var _ ArchiveReconciler = (*fakeReconciler)(nil)

func (f *fakeReconciler) Apply(ctx context.Context, res *model.CollectionResult) (*model.ReconcileOutcome, error) {
	f.mu.Lock()
	f.applied = append(f.applied, res)
	f.mu.Unlock()
	return f.fn(ctx, res)
}

func (f *fakeReconciler) applyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

// fakeExpander returns a canned expansion report.
type fakeExpander struct {
	report *seedexp.Report
	err    error
	fn     func(ctx context.Context, progress model.ProgressFunc) (*seedexp.Report, error)
}

var _ SourceExpander = (*fakeExpander)(nil)

func (f *fakeExpander) Expand(ctx context.Context, progress model.ProgressFunc) (*seedexp.Report, error) {
	if f.fn != nil {
		return f.fn(ctx, progress)
	}
	return f.report, f.err
}

// countingSink accumulates Count emissions by metric name.
type countingSink struct {
	mu     sync.Mutex
	counts map[string]int64
}

var _ statsd.Sink = (*countingSink)(nil)

func (s *countingSink) Count(name string, value int64, _ map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = make(map[string]int64)
	}
	s.counts[name] += value
}

func (s *countingSink) Gauge(string, float64, map[string]string) {}

func (s *countingSink) Timing(string, time.Duration, map[string]string) {}

func (s *countingSink) count(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[name]
}
