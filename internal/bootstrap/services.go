package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/data"
	"github.com/hirelens/hirelens/internal/observability/notify/pagerduty"
	"github.com/hirelens/hirelens/internal/observability/notify/slack"
	"github.com/hirelens/hirelens/internal/observability/statsd"
	"github.com/hirelens/hirelens/internal/service"
	"github.com/hirelens/hirelens/internal/service/failurenotifier"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Seeds         *service.SeedService
	Archive       *service.ArchiveService
	Passes        *service.PassService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink     *statsd.Client
	MetricsConfig   config.ObservabilityMetricsConfig
	FailureNotifier *failurenotifier.Service
	NotifierConfig  config.ObservabilityNotificationsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB              *sql.DB
	Redis           redis.UniversalClient
	SeedRepo        *data.SeedRepo
	CompanyRepo     *data.CompanyRepo
	JobArchiveRepo  *data.JobArchiveRepo
	ReconcileRepo   *data.ReconcileRepo
	SnapshotRepo    *data.SnapshotRepo
	MaintenanceRepo *data.MaintenanceRepo
	CacheRepo       core.CacheRepository
}

// buildObservability configures the metrics sink and the failure notifier.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "hirelens",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	failureNotifier := buildFailureNotifier(obsLogger, cfg.Notifications)

	return ObservabilityContainer{
		MetricsSink:     metricsSink,
		MetricsConfig:   cfg.Metrics,
		FailureNotifier: failureNotifier,
		NotifierConfig:  cfg.Notifications,
	}
}

func buildFailureNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *failurenotifier.Service {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	if !cfg.Enabled {
		return failurenotifier.NewService(failurenotifier.Options{
			Logger: baseLogger.With("component", "failure_notifier"),
		})
	}

	sinks := make([]failurenotifier.SinkRegistration, 0, 2)

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
			StatusURL:  cfg.Slack.StatusURL,
		})
		if err != nil {
			baseLogger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{
				Name: "slack",
				Sink: client,
			})
		}
	}

	if cfg.PagerDuty.Enabled {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			baseLogger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{
				Name: "pagerduty",
				Sink: client,
			})
		}
	}

	return failurenotifier.NewService(failurenotifier.Options{
		Logger: baseLogger.With("component", "failure_notifier"),
		Sinks:  sinks,
	})
}

// buildRepositories builds repositories backing service ports; no business
// rules here. A nil redis client selects the in-process cache, which is fine
// for a single instance: the probe cache is an optimization, not a
// correctness requirement.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	var cache core.CacheRepository
	if redisClient != nil {
		cache = data.NewRedisCacheRepo(redisClient)
	} else {
		cache = data.NewMemoryCacheRepo()
	}

	return &serviceRepositories{
		DB:              db,
		Redis:           redisClient,
		SeedRepo:        data.NewSeedRepo(db),
		CompanyRepo:     data.NewCompanyRepo(db),
		JobArchiveRepo:  data.NewJobArchiveRepo(db),
		ReconcileRepo:   data.NewReconcileRepo(db),
		SnapshotRepo:    data.NewSnapshotRepo(db),
		MaintenanceRepo: data.NewMaintenanceRepo(db),
		CacheRepo:       cache,
	}
}

// domainServicesOptions groups inputs for buildDomainServices.
type domainServicesOptions struct {
	Repos         *serviceRepositories
	Pipeline      *pipeline
	Observability ObservabilityContainer
	Config        *config.AppConfig
	Logger        *slog.Logger
}

// buildDomainServices wires business services using repositories, the
// collection pipeline and observability adapters.
func buildDomainServices(opts *domainServicesOptions) (ServiceContainer, error) {
	svcLogger := opts.Logger
	if svcLogger == nil {
		svcLogger = slog.Default()
	}

	appCfg := opts.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	metrics := opts.Observability.MetricsSink

	seeds, err := service.NewSeedService(service.SeedServiceOptions{
		Repo:   opts.Repos.SeedRepo,
		Logger: svcLogger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build seed service: %w", err)
	}

	archive, err := service.NewArchiveService(service.ArchiveServiceOptions{
		Companies: opts.Repos.CompanyRepo,
		Jobs:      opts.Repos.JobArchiveRepo,
		Snapshots: opts.Repos.SnapshotRepo,
		Logger:    svcLogger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build archive service: %w", err)
	}

	discovery, err := service.NewDiscoveryService(service.DiscoveryServiceOptions{
		Seeds:      opts.Repos.SeedRepo,
		Prober:     opts.Pipeline.Prober,
		Collector:  opts.Pipeline.Collector,
		Reconciler: opts.Pipeline.Reconciler,
		Config:     appCfg.Collector,
		Logger:     svcLogger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build discovery service: %w", err)
	}

	refresh, err := service.NewRefreshService(service.RefreshServiceOptions{
		Companies:  opts.Repos.CompanyRepo,
		Collector:  opts.Pipeline.Collector,
		Reconciler: opts.Pipeline.Reconciler,
		Staleness:  appCfg.Scheduler.RefreshInterval(),
		Config:     appCfg.Collector,
		Logger:     svcLogger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build refresh service: %w", err)
	}

	expansion, err := service.NewExpansionService(service.ExpansionServiceOptions{
		Expander: opts.Pipeline.Expander,
		Logger:   svcLogger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build expansion service: %w", err)
	}

	maintenance, err := service.NewMaintenanceService(service.MaintenanceServiceOptions{
		Maintenance: opts.Repos.MaintenanceRepo,
		Snapshots:   opts.Repos.SnapshotRepo,
		Archive:     opts.Repos.JobArchiveRepo,
		Config:      appCfg.Maintenance,
		Logger:      svcLogger,
		Metrics:     metrics,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build maintenance service: %w", err)
	}

	passes, err := service.NewPassService(service.PassServiceOptions{
		Discovery:   discovery,
		Refresh:     refresh,
		Expansion:   expansion,
		Maintenance: maintenance,
		Budget:      appCfg.Scheduler.PassBudget,
		Logger:      svcLogger,
		Metrics:     metrics,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build pass service: %w", err)
	}

	return ServiceContainer{
		Seeds:         seeds,
		Archive:       archive,
		Passes:        passes,
		Observability: opts.Observability,
	}, nil
}

// NewServices builds the full service graph: repositories, the collection
// pipeline, and the domain services on top. The HTTP trigger endpoint and
// the cron scheduler share the one PassService, so its gate serializes
// passes no matter where they start.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, errors.New("service deps are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var obsCfg config.ObservabilityConfig
	if deps.Config != nil {
		obsCfg = deps.Config.Observability
	}
	observability := buildObservability(logger, obsCfg)
	repos := buildRepositories(deps.DB, deps.RedisClient)

	pipe, err := buildPipeline(pipelineOptions{
		Config:  deps.Config,
		Repos:   repos,
		Logger:  logger,
		Metrics: observability.MetricsSink,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return buildDomainServices(&domainServicesOptions{
		Repos:         repos,
		Pipeline:      pipe,
		Observability: observability,
		Config:        deps.Config,
		Logger:        logger,
	})
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

// startHTTPServerIfEnabled starts the HTTP server if enabled.
func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	logger := deps.logger
	if logger == nil {
		logger = slog.Default()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error",
					"service", descriptor.name,
					"error", errMsg)
			}
		}
	}()

	logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)

	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}

		handles = append(handles, backgroundServiceHandle{
			mode: svc.mode,
			name: svc.name,
			done: done,
		})
	}

	return handles
}

func newSchedulerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeScheduler,
		name: "scheduler",
		start: func(ctx context.Context) error {
			if deps == nil || deps.cfg == nil {
				return nil
			}
			schedulerCfg := config.SchedulerConfig{}
			if deps.cfg.Config != nil {
				schedulerCfg = deps.cfg.Config.Scheduler
			}
			return RunScheduler(ctx, SchedulerConfig{
				Passes:   deps.cfg.Services.Passes,
				Config:   schedulerCfg,
				Logger:   deps.logger,
				Metrics:  deps.cfg.Services.Observability.MetricsSink,
				Notifier: deps.cfg.Services.Observability.FailureNotifier,
			})
		},
	}
}

func buildBackgroundServices(deps *serviceStartupDeps) []backgroundService {
	if deps == nil {
		return nil
	}
	return []backgroundService{
		newSchedulerBackgroundService(deps),
	}
}

// ServiceStartupResult holds the results of starting all services.
type ServiceStartupResult struct {
	HTTPServer *http.Server
	Background []backgroundServiceHandle
}

// startServices starts all enabled services and returns their completion channels.
func startServices(deps *serviceStartupDeps) ServiceStartupResult {
	return ServiceStartupResult{
		HTTPServer: startHTTPServerIfEnabled(deps),
		Background: startBackgroundServices(deps, buildBackgroundServices(deps)),
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	ctx := context.Background()
	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	// Determine which services are enabled
	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	// Start all enabled services
	result := startServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	// Wait for shutdown signal or error
	return waitForShutdown(shutdownConfig{
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  result.HTTPServer,
		metrics:     cfg.Services.Observability.MetricsSink,
		logger:      logger,
		backgrounds: result.Background,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	modes := []config.ServiceMode{
		config.ServiceModeHTTP,
		config.ServiceModeScheduler,
	}

	count := 0
	for _, mode := range modes {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	size := errorChannelCapacity(enabled) + 1
	if size < 1 {
		return 1
	}
	return size
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	metrics     *statsd.Client
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel() // Cancel service context before waiting
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel() // Cancel service context before waiting
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	// Gracefully stop HTTP server if running
	if cfg.httpServer != nil {
		// The service context is already cancelled at this point, so the
		// drain deadline must come from a fresh context.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	// Wait for background services to finish; a running pass holds the
	// scheduler's done channel until the shared context cancels it.
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	if cfg.metrics != nil {
		if err := cfg.metrics.Close(); err != nil {
			cfg.logger.Warn("close statsd client failed", "error", err)
		}
	}

	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
