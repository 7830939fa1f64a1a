package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hirelens/hirelens/config"
	schedrunner "github.com/hirelens/hirelens/internal/adapters/scheduler"
	"github.com/hirelens/hirelens/internal/ats"
	"github.com/hirelens/hirelens/internal/collect"
	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/fetch"
	"github.com/hirelens/hirelens/internal/fetch/render"
	"github.com/hirelens/hirelens/internal/observability/statsd"
	"github.com/hirelens/hirelens/internal/probe"
	"github.com/hirelens/hirelens/internal/reconcile"
	"github.com/hirelens/hirelens/internal/seedexp"
	"github.com/hirelens/hirelens/internal/service"
	"github.com/hirelens/hirelens/internal/service/failurenotifier"
)

// pipeline groups the collection-side components the pass services drive:
// one shared fetcher, the provider registry, and the probe, collect,
// reconcile and expansion engines built on top of them.
type pipeline struct {
	Fetcher    *fetch.Fetcher
	Registry   *ats.Registry
	Prober     *probe.Engine
	Collector  *collect.Collector
	Reconciler *reconcile.Reconciler
	Expander   *seedexp.Expander
}

// pipelineOptions groups dependencies for buildPipeline.
type pipelineOptions struct {
	Config  *config.AppConfig
	Repos   *serviceRepositories
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// buildPipeline wires the outbound side: every probe, collection and
// expansion request flows through the one fetcher so rate limits and robots
// policy hold process-wide.
func buildPipeline(opts pipelineOptions) (*pipeline, error) {
	cfg := opts.Config

	renderer := render.FromConfig(cfg.Renderer, opts.Logger)

	fetcher, err := fetch.NewFetcher(fetch.Options{
		Config:    cfg.Fetcher,
		RateLimit: cfg.RateLimit,
		Renderer:  renderer,
		Logger:    opts.Logger,
		Metrics:   opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build fetcher: %w", err)
	}

	registry := ats.NewRegistry()

	prober, err := probe.NewEngine(probe.Options{
		Registry: registry,
		Fetcher:  fetcher,
		Cache:    newProbeCache(opts.Repos, cfg.Probe),
		Config:   cfg.Probe,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build probe engine: %w", err)
	}

	collector, err := collect.NewCollector(collect.Options{
		Registry: registry,
		Fetcher:  fetcher,
		Config:   cfg.Collector,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build collector: %w", err)
	}

	reconciler, err := reconcile.NewReconciler(reconcile.Options{
		Repo:    opts.Repos.ReconcileRepo,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build reconciler: %w", err)
	}

	expander, err := seedexp.NewExpander(seedexp.Options{
		Seeds:   opts.Repos.SeedRepo,
		Fetcher: fetcher,
		Config:  cfg.SeedExpander,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build seed expander: %w", err)
	}

	return &pipeline{
		Fetcher:    fetcher,
		Registry:   registry,
		Prober:     prober,
		Collector:  collector,
		Reconciler: reconciler,
		Expander:   expander,
	}, nil
}

// newProbeCache builds the probe result cache, or returns nil when the TTL
// is zero so every (provider, token) pair is probed over the network.
func newProbeCache(repos *serviceRepositories, cfg config.ProbeConfig) *core.ProbeCacheService {
	if repos == nil || repos.CacheRepo == nil || cfg.CacheTTL() <= 0 {
		return nil
	}

	cacheCfg := core.DefaultProbeCacheConfig()
	cacheCfg.TTL = cfg.CacheTTL()

	return core.NewProbeCacheService(core.ProbeCacheServiceOptions{
		Cache:  repos.CacheRepo,
		Config: cacheCfg,
	})
}

// SchedulerConfig contains configuration for the pass scheduler.
type SchedulerConfig struct {
	Passes   *service.PassService
	Config   config.SchedulerConfig
	Logger   *slog.Logger
	Metrics  statsd.Sink
	Notifier *failurenotifier.Service
}

// RunScheduler starts the pass scheduler and blocks until ctx is cancelled.
func RunScheduler(ctx context.Context, cfg SchedulerConfig) error {
	runner, err := schedrunner.NewRunner(schedrunner.RunnerOptions{
		Passes:   cfg.Passes,
		Config:   cfg.Config,
		Logger:   cfg.Logger,
		Metrics:  cfg.Metrics,
		Notifier: cfg.Notifier,
	})
	if err != nil {
		return fmt.Errorf("create scheduler runner: %w", err)
	}

	return runner.Run(ctx)
}
