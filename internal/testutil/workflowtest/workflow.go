// Package workflowtest wires real repositories, services and the HTTP router
// into a single harness, so tests can drive the whole pipeline — register
// seeds, run discovery and refresh passes, reconcile postings — and read the
// results back through the public API.
package workflowtest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	httpx "github.com/hirelens/hirelens/internal/http"
	"github.com/hirelens/hirelens/internal/reconcile"
	"github.com/hirelens/hirelens/internal/service"
	"github.com/hirelens/hirelens/internal/testutil"
)

// RepositoryProvider builds the concrete repositories over the test database.
// Tests implement it on top of the data layer; the indirection keeps this
// package from importing data, whose tests depend on testutil in turn.
type RepositoryProvider interface {
	SeedRepository(db *sql.DB) core.SeedRepository
	CompanyRepository(db *sql.DB) core.CompanyRepository
	JobArchiveRepository(db *sql.DB) core.JobArchiveRepository
	ReconcileRepository(db *sql.DB) core.ReconcileRepository
	SnapshotRepository(db *sql.DB) core.SnapshotRepository
	SnapshotReader(db *sql.DB) core.SnapshotReader
	MaintenanceRepository(db *sql.DB) core.MaintenanceRepository
}

// CacheProvider builds the cache repository when Redis is enabled.
type CacheProvider interface {
	CacheRepository(client *redis.Client) core.CacheRepository
}

// Options configures the workflow harness.
type Options struct {
	// RepositoryProvider supplies repositories (required).
	RepositoryProvider RepositoryProvider

	// Prober overrides the scripted prober. Leave nil to script outcomes
	// through Harness.Prober.
	Prober service.SeedProber
	// Collector overrides the scripted collector. Leave nil to script
	// boards through Harness.Collector.
	Collector service.BoardCollector
	// Expander overrides the no-op expander behind expansion passes.
	Expander service.SourceExpander

	// Staleness is the refresh-pass threshold. The default makes every
	// company immediately stale, so a refresh straight after discovery
	// re-collects it.
	Staleness time.Duration
	// PassBudget caps each pass's wall clock. Defaults to two minutes.
	PassBudget time.Duration
	// BatchSize is the per-pass seed/company batch. Defaults to 25.
	BatchSize int
	// Workers is the per-pass worker count. Defaults to 2.
	Workers int

	// EnableRedis wires the probe cache against a test Redis instance.
	EnableRedis bool
	// RedisAddr overrides the detected test Redis address.
	RedisAddr string
	// CacheProvider supplies the cache repository (required with EnableRedis).
	CacheProvider CacheProvider
}

// Harness holds one wired pipeline: repositories, services, the scripted
// collaborators and an HTTP server running the real router.
type Harness struct {
	t  testutil.TestingTB
	db *sql.DB
	ts *httptest.Server

	// Repositories
	SeedRepo    core.SeedRepository
	CompanyRepo core.CompanyRepository
	ArchiveRepo core.JobArchiveRepository

	// Services
	Seeds      *service.SeedService
	Archive    *service.ArchiveService
	Passes     *service.PassService
	Reconciler *reconcile.Reconciler

	// Prober and Collector are the scripted defaults; nil when Options
	// supplied custom implementations.
	Prober    *ScriptedProber
	Collector *ScriptedCollector

	// Optional Redis components
	RedisAddr   string
	RedisClient *redis.Client
	Cache       core.CacheRepository
	ProbeCache  *core.ProbeCacheService
}

// NewHarness wires repositories, services and the HTTP server over db.
func NewHarness(t testutil.TestingTB, db *sql.DB, opts Options) *Harness {
	t.Helper()

	if opts.RepositoryProvider == nil {
		t.Fatalf("RepositoryProvider is required")
	}
	if opts.Staleness == 0 {
		opts.Staleness = time.Nanosecond
	}
	if opts.PassBudget == 0 {
		opts.PassBudget = 2 * time.Minute
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 25
	}
	if opts.Workers == 0 {
		opts.Workers = 2
	}

	h := &Harness{t: t, db: db}

	provider := opts.RepositoryProvider
	h.SeedRepo = provider.SeedRepository(db)
	h.CompanyRepo = provider.CompanyRepository(db)
	h.ArchiveRepo = provider.JobArchiveRepository(db)

	prober := opts.Prober
	if prober == nil {
		h.Prober = NewScriptedProber()
		prober = h.Prober
	}
	collector := opts.Collector
	if collector == nil {
		h.Collector = NewScriptedCollector()
		collector = h.Collector
	}
	expander := opts.Expander
	if expander == nil {
		expander = noopExpander{}
	}

	reconciler, err := reconcile.NewReconciler(reconcile.Options{
		Repo: provider.ReconcileRepository(db),
	})
	fatalOn(t, "reconciler", err)
	h.Reconciler = reconciler

	collectorCfg := config.CollectorConfig{
		BatchSize:       opts.BatchSize,
		CompanyBudget:   time.Minute,
		ParallelWorkers: opts.Workers,
		MaxRetries:      1,
	}

	discovery, err := service.NewDiscoveryService(service.DiscoveryServiceOptions{
		Seeds:      h.SeedRepo,
		Prober:     prober,
		Collector:  collector,
		Reconciler: reconciler,
		Config:     collectorCfg,
	})
	fatalOn(t, "discovery service", err)

	refresh, err := service.NewRefreshService(service.RefreshServiceOptions{
		Companies:  h.CompanyRepo,
		Collector:  collector,
		Reconciler: reconciler,
		Staleness:  opts.Staleness,
		Config:     collectorCfg,
	})
	fatalOn(t, "refresh service", err)

	expansion, err := service.NewExpansionService(service.ExpansionServiceOptions{
		Expander: expander,
	})
	fatalOn(t, "expansion service", err)

	maintenance, err := service.NewMaintenanceService(service.MaintenanceServiceOptions{
		Maintenance: provider.MaintenanceRepository(db),
		Snapshots:   provider.SnapshotRepository(db),
		Archive:     h.ArchiveRepo,
		Config: config.MaintenanceConfig{
			SnapshotRetention:  90 * 24 * time.Hour,
			ClosedJobRetention: 90 * 24 * time.Hour,
			BatchSize:          1000,
		},
	})
	fatalOn(t, "maintenance service", err)

	h.Passes, err = service.NewPassService(service.PassServiceOptions{
		Discovery:   discovery,
		Refresh:     refresh,
		Expansion:   expansion,
		Maintenance: maintenance,
		Budget:      opts.PassBudget,
	})
	fatalOn(t, "pass service", err)

	h.Seeds, err = service.NewSeedService(service.SeedServiceOptions{Repo: h.SeedRepo})
	fatalOn(t, "seed service", err)

	h.Archive, err = service.NewArchiveService(service.ArchiveServiceOptions{
		Companies: h.CompanyRepo,
		Jobs:      h.ArchiveRepo,
		Snapshots: provider.SnapshotReader(db),
	})
	fatalOn(t, "archive service", err)

	if opts.EnableRedis {
		h.setupRedis(opts.RedisAddr, opts.CacheProvider)
	}

	h.ts = httptest.NewServer(httpx.NewRouter(httpx.RouterServices{
		Passes:  h.Passes,
		Seeds:   h.Seeds,
		Archive: h.Archive,
	}))

	return h
}

// fatalOn fails the test on a wiring error, keeping service construction to
// one check per component.
func fatalOn(t testutil.TestingTB, component string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("wire %s: %v", component, err)
	}
}

// setupRedis initializes the Redis-backed probe cache.
func (h *Harness) setupRedis(addr string, cacheProvider CacheProvider) {
	h.t.Helper()

	if cacheProvider == nil {
		h.t.Fatalf("CacheProvider is required when EnableRedis is true")
	}

	if addr == "" {
		h.initRedisClient(testutil.SetupTestRedis(h.t), addr, cacheProvider)
		return
	}

	// Use specific address for custom setups
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		h.t.Logf("redis not available at %s: %v", addr, err)
		if closeErr := client.Close(); closeErr != nil {
			h.t.Logf("warning: failed to close redis client: %v", closeErr)
		}
		h.t.Skip("redis test instance unavailable; run docker-compose profile 'test'")
		return
	}

	h.initRedisClient(client, addr, cacheProvider)
}

func (h *Harness) initRedisClient(client *redis.Client, addr string, cacheProvider CacheProvider) {
	h.RedisAddr = addr
	h.RedisClient = client
	h.Cache = cacheProvider.CacheRepository(client)
	h.ProbeCache = core.NewProbeCacheService(core.ProbeCacheServiceOptions{
		Cache:  h.Cache,
		Config: core.DefaultProbeCacheConfig(),
	})
}

// Close shuts down the HTTP server and any Redis client.
func (h *Harness) Close() {
	h.t.Helper()

	if h.ts != nil {
		h.ts.Close()
	}
	if h.RedisClient != nil {
		if err := h.RedisClient.Close(); err != nil {
			h.t.Logf("warning: failed to close redis client: %v", err)
		}
	}
}

// BaseURL returns the base URL of the test HTTP server.
func (h *Harness) BaseURL() string {
	return h.ts.URL
}

// RunPass runs one pass synchronously and fails the test if the pass errors.
func (h *Harness) RunPass(mode model.PassMode) model.PassSummary {
	h.t.Helper()

	summary, err := h.Passes.Run(context.Background(), mode)
	if err != nil {
		h.t.Fatalf("%s pass: %v", mode, err)
	}
	return summary
}

// AwaitIdle polls the pass gate until no pass is running, for tests that
// start passes through the API's asynchronous trigger.
func (h *Harness) AwaitIdle(timeout time.Duration) {
	h.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !h.Passes.Status().IsRunning {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	h.t.Fatalf("pass still running after %s", timeout)
}

// DiscoverBoard walks one company through the front half of the pipeline:
// script the board's postings, register a seed over the API, run a discovery
// pass, and read the confirmed company back. It requires the scripted
// prober and collector.
func (h *Harness) DiscoverBoard(name, token string, jobs ...BoardJob) model.Company {
	h.t.Helper()

	if h.Prober == nil || h.Collector == nil {
		h.t.Fatalf("DiscoverBoard needs the scripted prober and collector")
	}

	h.Collector.SetBoard(token, jobs...)
	client := h.NewClient()
	client.RegisterSeed(&model.CreateSeedRequest{CompanyName: name, TokenSlug: token})
	h.RunPass(model.PassDiscovery)
	return client.GetCompany(model.CompanyID(h.Prober.ATS, token))
}

// Client makes JSON requests against the harness server.
type Client struct {
	t       testutil.TestingTB
	baseURL string
	client  *http.Client
}

// NewClient creates an HTTP client bound to the harness server.
func (h *Harness) NewClient() *Client {
	return &Client{
		t:       h.t,
		baseURL: h.BaseURL(),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// DoJSON performs one request with an optional JSON body and returns the raw
// response. Callers own the body.
func (c *Client) DoJSON(method, path string, payload any) *http.Response {
	c.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			c.t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

// expect closes the response, fails the test on an unexpected status, and
// decodes the body into dst when dst is non-nil.
func (c *Client) expect(resp *http.Response, wantStatus int, label string, dst any) {
	c.t.Helper()

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.t.Logf("warning: failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != wantStatus {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			c.t.Fatalf("%s status: %d (want %d), failed to read response: %v",
				label, resp.StatusCode, wantStatus, readErr)
		}
		c.t.Fatalf("%s status: %d (want %d), response: %s",
			label, resp.StatusCode, wantStatus, string(body))
	}

	if dst == nil {
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		c.t.Fatalf("decode %s response: %v", label, err)
	}
}

// RegisterSeed registers one candidate company over the API.
func (c *Client) RegisterSeed(req *model.CreateSeedRequest) model.Seed {
	c.t.Helper()

	var seed model.Seed
	c.expect(c.DoJSON(http.MethodPost, "/api/seeds", req), http.StatusOK, "register seed", &seed)
	return seed
}

// ListCompanies returns the confirmed companies.
func (c *Client) ListCompanies() []model.Company {
	c.t.Helper()

	var companies []model.Company
	c.expect(c.DoJSON(http.MethodGet, "/api/companies", nil), http.StatusOK, "list companies", &companies)
	return companies
}

// GetCompany returns one company with its latest aggregates.
func (c *Client) GetCompany(id string) model.Company {
	c.t.Helper()

	var company model.Company
	c.expect(c.DoJSON(http.MethodGet, "/api/companies/"+id, nil), http.StatusOK, "get company", &company)
	return company
}

// CompanyJobs returns one company's archived postings, filtered by status
// when status is non-empty.
func (c *Client) CompanyJobs(companyID string, status model.JobStatus) []model.Job {
	c.t.Helper()

	path := fmt.Sprintf("/api/companies/%s/jobs", companyID)
	if status != "" {
		path += "?status=" + string(status)
	}

	var jobs []model.Job
	c.expect(c.DoJSON(http.MethodGet, path, nil), http.StatusOK, "company jobs", &jobs)
	return jobs
}

// Stats returns the archive-wide dashboard payload.
func (c *Client) Stats() model.ArchiveStats {
	c.t.Helper()

	var stats model.ArchiveStats
	c.expect(c.DoJSON(http.MethodGet, "/api/stats", nil), http.StatusOK, "stats", &stats)
	return stats
}

// TriggerPass starts a pass through the API and returns its run id. The pass
// runs in the background; pair with Harness.AwaitIdle.
func (c *Client) TriggerPass(mode model.PassMode) string {
	c.t.Helper()

	var out map[string]string
	c.expect(c.DoJSON(http.MethodPost, "/api/passes/"+string(mode), nil),
		http.StatusAccepted, "trigger pass", &out)
	return out["run_id"]
}

// skipIfRedisUnavailable skips the test if Redis is required but unavailable.
func skipIfRedisUnavailable(t testutil.TestingTB, opts Options) {
	t.Helper()

	if !opts.EnableRedis {
		return
	}

	if opts.RedisAddr == "" {
		if _, ok := testutil.GetTestRedisAddr(t); !ok {
			t.Skip("redis test instance unavailable; run docker-compose profile 'test'")
		}
		return
	}

	client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
	defer func() {
		if err := client.Close(); err != nil {
			t.Logf("warning: failed to close redis client: %v", err)
		}
	}()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skip("redis test instance unavailable; run docker-compose profile 'test'")
	}
}

// WithHarness sets up a workflow harness on the auto test database, runs fn,
// and tears everything down.
func WithHarness(t testutil.TestingTB, opts Options, fn func(*Harness)) {
	t.Helper()

	testutil.SkipIfNoTestDB(t)
	skipIfRedisUnavailable(t, opts)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		harness := NewHarness(t, db, opts)
		defer harness.Close()
		fn(harness)
	})
}
