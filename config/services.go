package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP API server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeScheduler runs the pass scheduler.
	ServiceModeScheduler ServiceMode = "scheduler"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeScheduler,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeScheduler:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, scheduler)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// ProbeConfig contains probe engine configuration.
type ProbeConfig struct {
	// MaxConcurrent bounds the parallel probe requests per seed.
	MaxConcurrent int `env:"MAX_CONCURRENT_PROBES" envDefault:"8"`

	// CacheTTLSeconds is the probe result cache TTL in seconds.
	CacheTTLSeconds int `env:"CACHE_TTL_SECONDS" envDefault:"3600"`
}

// CacheTTL returns the probe cache TTL as a duration.
func (p ProbeConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLSeconds) * time.Second
}

// Sanitize applies guardrails to probe configuration values.
func (p *ProbeConfig) Sanitize() {
	if p.MaxConcurrent < 1 {
		p.MaxConcurrent = 1
	}
	if p.MaxConcurrent > 64 {
		p.MaxConcurrent = 64
	}
	if p.CacheTTLSeconds < 0 {
		p.CacheTTLSeconds = 0
	}
}

// CollectorConfig contains collector configuration.
type CollectorConfig struct {
	// BatchSize is the number of seeds or companies processed per pass batch.
	BatchSize int `env:"COLLECTOR_BATCH_SIZE" envDefault:"25"`

	// CompanyBudget is the wall-clock budget for collecting one company.
	CompanyBudget time.Duration `env:"COLLECTOR_TIMEOUT" envDefault:"120s"`

	// ParallelWorkers is the number of concurrent company collections.
	ParallelWorkers int `env:"COLLECTOR_PARALLEL_WORKERS" envDefault:"4"`

	// MaxRetries is the per-request retry budget for listing fetches.
	MaxRetries int `env:"COLLECTOR_MAX_RETRIES" envDefault:"3"`
}

// Sanitize applies guardrails to collector configuration values.
func (c *CollectorConfig) Sanitize() {
	if c.BatchSize < 1 {
		c.BatchSize = 1
	}
	if c.CompanyBudget < 10*time.Second {
		c.CompanyBudget = 10 * time.Second
	}
	if c.ParallelWorkers < 1 {
		c.ParallelWorkers = 1
	}
	if c.ParallelWorkers > 32 {
		c.ParallelWorkers = 32
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MaxRetries > 10 {
		c.MaxRetries = 10
	}
}

// SeedExpanderConfig contains seed expander configuration.
type SeedExpanderConfig struct {
	// Tiers is a comma-delimited list of source tiers to expand (1=premium, 2=index, 3=supplemental).
	Tiers string `env:"SEED_EXPANDER_TIERS" envDefault:"1,2"`

	// MinNameLength rejects extracted company names shorter than this.
	MinNameLength int `env:"SEED_MIN_LENGTH" envDefault:"2"`

	// MaxNameLength rejects extracted company names longer than this.
	MaxNameLength int `env:"SEED_MAX_LENGTH" envDefault:"200"`

	// SourceJitter is the maximum random delay between source fetches.
	SourceJitter time.Duration `env:"SEED_SOURCE_JITTER" envDefault:"5s"`
}

// EnabledTiers parses the Tiers list into seed tiers.
func (s SeedExpanderConfig) EnabledTiers() ([]model.SeedTier, error) {
	parts := strings.Split(s.Tiers, ",")
	tiers := make([]model.SeedTier, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid seed tier %q: %w", part, err)
		}
		tier := model.SeedTier(n)
		if !tier.Valid() {
			return nil, fmt.Errorf("invalid seed tier %d (valid: 1, 2, 3)", n)
		}
		tiers = append(tiers, tier)
	}
	if len(tiers) == 0 {
		return nil, errors.New("at least one seed tier must be enabled")
	}
	return tiers, nil
}

// Sanitize applies guardrails to seed expander configuration values.
func (s *SeedExpanderConfig) Sanitize() {
	if s.MinNameLength < 1 {
		s.MinNameLength = 1
	}
	if s.MaxNameLength < s.MinNameLength {
		s.MaxNameLength = s.MinNameLength
	}
	if s.SourceJitter < 0 {
		s.SourceJitter = 0
	}
}

// SchedulerConfig contains pass scheduler configuration.
type SchedulerConfig struct {
	// RefreshIntervalHours is the interval between refresh passes, in hours.
	RefreshIntervalHours int `env:"REFRESH_INTERVAL_HOURS" envDefault:"6"`

	// DiscoveryCron is the cron spec for periodic discovery passes.
	DiscoveryCron string `env:"SCHEDULE_DISCOVERY" envDefault:"30 * * * *"`

	// ExpansionCron is the cron spec for seed expansion passes.
	ExpansionCron string `env:"SCHEDULE_EXPANSION" envDefault:"15 2 * * *"`

	// MaintenanceCron is the cron spec for snapshot maintenance.
	MaintenanceCron string `env:"SCHEDULE_MAINTENANCE" envDefault:"0 */6 * * *"`

	// MaintenanceDailyCron is the cron spec for the daily deep maintenance run.
	MaintenanceDailyCron string `env:"SCHEDULE_MAINTENANCE_DAILY" envDefault:"45 4 * * *"`

	// PassBudget is the wall-clock budget for a single pass; exceeding it
	// cancels the pass.
	PassBudget time.Duration `env:"PASS_BUDGET" envDefault:"1h"`
}

// RefreshInterval returns the refresh interval as a duration.
func (s SchedulerConfig) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshIntervalHours) * time.Hour
}

// RefreshCron returns a cron spec firing every RefreshIntervalHours hours.
func (s SchedulerConfig) RefreshCron() string {
	return fmt.Sprintf("@every %dh", s.RefreshIntervalHours)
}

// Sanitize applies guardrails to scheduler configuration values.
func (s *SchedulerConfig) Sanitize() {
	if s.RefreshIntervalHours < 1 {
		s.RefreshIntervalHours = 6
	}
	if s.PassBudget < time.Minute {
		s.PassBudget = time.Hour
	}
}

// MaintenanceConfig contains archive maintenance configuration.
type MaintenanceConfig struct {
	// SnapshotRetention is how long 6-hour snapshots are kept.
	SnapshotRetention time.Duration `env:"SNAPSHOT_RETENTION" envDefault:"2160h"` // 90 days

	// ClosedJobRetention is how long closed jobs stay in the archive.
	ClosedJobRetention time.Duration `env:"CLOSED_JOB_RETENTION" envDefault:"2160h"` // 90 days

	// BatchSize is the maximum number of rows to process per prune operation.
	// Batching prevents long locks and I/O spikes on large tables.
	BatchSize int `env:"MAINTENANCE_BATCH_SIZE" envDefault:"1000"`
}

// Sanitize applies guardrails to maintenance configuration values.
func (m *MaintenanceConfig) Sanitize() {
	if m.SnapshotRetention < 24*time.Hour {
		m.SnapshotRetention = 24 * time.Hour
	}
	if m.ClosedJobRetention < 24*time.Hour {
		m.ClosedJobRetention = 24 * time.Hour
	}
	if m.BatchSize < 1 {
		m.BatchSize = 1
	}
	if m.BatchSize > 10000 {
		m.BatchSize = 10000
	}
}
