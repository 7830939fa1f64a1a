package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: Database and cache configuration
//   - fetcher.go: Outbound HTTP, rate limit, and renderer configuration
//   - http.go: HTTP server configuration
//   - services.go: Service mode and pass configuration
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, seed data, etc.)
	// Set DEV=true or APP_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// DatabaseURL is a full Postgres connection string. When set it takes
	// precedence over the individual DB_* settings.
	DatabaseURL string `env:"DATABASE_URL"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http,scheduler"`

	// Outbound fetch configuration
	Fetcher   FetcherConfig
	RateLimit RateLimitConfig
	Renderer  RendererConfig

	// Pipeline configuration
	Probe        ProbeConfig
	Collector    CollectorConfig
	SeedExpander SeedExpanderConfig
	Scheduler    SchedulerConfig
	Maintenance  MaintenanceConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Postgres.Sanitize()
	c.HTTP.Sanitize()

	c.Fetcher.Sanitize()
	c.RateLimit.Sanitize()
	c.Renderer.Sanitize()

	c.Probe.Sanitize()
	c.Collector.Sanitize()
	c.SeedExpander.Sanitize()
	c.Scheduler.Sanitize()
	c.Maintenance.Sanitize()
	c.Observability.Sanitize()

	// Check APP_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and APP_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsSchedulerEnabled returns true if the scheduler service is enabled.
func (c *AppConfig) IsSchedulerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeScheduler]
}
