package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"

	"github.com/hirelens/hirelens/internal/domain/model"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:  "single service - http",
			input: "http",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP: true,
			},
			expectError: false,
		},
		{
			name:  "single service - scheduler",
			input: "scheduler",
			expected: map[ServiceMode]bool{
				ServiceModeScheduler: true,
			},
			expectError: false,
		},
		{
			name:  "all services",
			input: "http,scheduler",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:      true,
				ServiceModeScheduler: true,
			},
			expectError: false,
		},
		{
			name:  "services with spaces",
			input: " http , scheduler ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:      true,
				ServiceModeScheduler: true,
			},
			expectError: false,
		},
		{
			name:  "duplicate services",
			input: "http,http,scheduler",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:      true,
				ServiceModeScheduler: true,
			},
			expectError: false,
		},
		{
			name:        "empty string",
			input:       "",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,invalid-service",
			expected:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("expected %d services, got %d", len(tt.expected), len(result))
				return
			}

			for service, expected := range tt.expected {
				if result[service] != expected {
					t.Errorf("expected service %s to be %v, got %v", service, expected, result[service])
				}
			}
		})
	}
}

func TestConfig_GetEnabledServices(t *testing.T) {
	tests := []struct {
		name        string
		services    string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "http only",
			services: "http",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP: true,
			},
			expectError: false,
		},
		{
			name:     "http and scheduler",
			services: "http,scheduler",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:      true,
				ServiceModeScheduler: true,
			},
			expectError: false,
		},
		{
			name:        "invalid configuration",
			services:    "invalid-service",
			expected:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Services: tt.services}
			result, err := cfg.GetEnabledServices()

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("expected %d services, got %d", len(tt.expected), len(result))
				return
			}

			for service, expected := range tt.expected {
				if result[service] != expected {
					t.Errorf("expected service %s to be %v, got %v", service, expected, result[service])
				}
			}
		})
	}
}

func TestAppConfig_ParsePipelineEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_GREENHOUSE", "4")
	t.Setenv("RATE_LIMIT_WORKDAY", "0.5")
	t.Setenv("MAX_CONCURRENT_PROBES", "16")
	t.Setenv("CACHE_TTL_SECONDS", "600")
	t.Setenv("REFRESH_INTERVAL_HOURS", "12")
	t.Setenv("COLLECTOR_BATCH_SIZE", "50")
	t.Setenv("COLLECTOR_TIMEOUT", "90s")
	t.Setenv("SEED_EXPANDER_TIERS", "1,2,3")
	t.Setenv("DB_POOL_SIZE", "20")
	t.Setenv("DB_MAX_OVERFLOW", "5")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	if cfg.RateLimit.Greenhouse != 4 {
		t.Errorf("RateLimit.Greenhouse = %v, want 4", cfg.RateLimit.Greenhouse)
	}
	if cfg.RateLimit.Workday != 0.5 {
		t.Errorf("RateLimit.Workday = %v, want 0.5", cfg.RateLimit.Workday)
	}
	if cfg.Probe.MaxConcurrent != 16 {
		t.Errorf("Probe.MaxConcurrent = %d, want 16", cfg.Probe.MaxConcurrent)
	}
	if got := cfg.Probe.CacheTTL(); got != 10*time.Minute {
		t.Errorf("Probe.CacheTTL() = %v, want 10m", got)
	}
	if got := cfg.Scheduler.RefreshInterval(); got != 12*time.Hour {
		t.Errorf("Scheduler.RefreshInterval() = %v, want 12h", got)
	}
	if cfg.Collector.BatchSize != 50 {
		t.Errorf("Collector.BatchSize = %d, want 50", cfg.Collector.BatchSize)
	}
	if cfg.Collector.CompanyBudget != 90*time.Second {
		t.Errorf("Collector.CompanyBudget = %v, want 90s", cfg.Collector.CompanyBudget)
	}
	if cfg.Postgres.MaxOpenConns() != 25 {
		t.Errorf("Postgres.MaxOpenConns() = %d, want 25", cfg.Postgres.MaxOpenConns())
	}

	tiers, err := cfg.SeedExpander.EnabledTiers()
	if err != nil {
		t.Fatalf("EnabledTiers: %v", err)
	}
	want := []model.SeedTier{model.TierPremium, model.TierIndex, model.TierSupplemental}
	if len(tiers) != len(want) {
		t.Fatalf("EnabledTiers = %v, want %v", tiers, want)
	}
	for i := range want {
		if tiers[i] != want[i] {
			t.Errorf("EnabledTiers[%d] = %v, want %v", i, tiers[i], want[i])
		}
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	tests := []struct {
		name              string
		services          string
		expectedHTTP      bool
		expectedScheduler bool
	}{
		{
			name:              "http only",
			services:          "http",
			expectedHTTP:      true,
			expectedScheduler: false,
		},
		{
			name:              "scheduler only",
			services:          "scheduler",
			expectedHTTP:      false,
			expectedScheduler: true,
		},
		{
			name:              "both services",
			services:          "http,scheduler",
			expectedHTTP:      true,
			expectedScheduler: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Services: tt.services}

			if cfg.IsHTTPServerEnabled() != tt.expectedHTTP {
				t.Errorf("IsHTTPServerEnabled(): expected %v, got %v", tt.expectedHTTP, cfg.IsHTTPServerEnabled())
			}

			if cfg.IsSchedulerEnabled() != tt.expectedScheduler {
				t.Errorf("IsSchedulerEnabled(): expected %v, got %v", tt.expectedScheduler, cfg.IsSchedulerEnabled())
			}
		})
	}
}

func TestConfig_ServiceEnabledMethodsWithInvalidConfig(t *testing.T) {
	cfg := AppConfig{Services: "invalid-service"}

	// All methods should return false when configuration is invalid
	if cfg.IsHTTPServerEnabled() != false {
		t.Errorf("IsHTTPServerEnabled() with invalid config: expected false, got true")
	}

	if cfg.IsSchedulerEnabled() != false {
		t.Errorf("IsSchedulerEnabled() with invalid config: expected false, got true")
	}
}

func TestValidServiceModes(t *testing.T) {
	modes := ValidServiceModes()
	expected := []ServiceMode{
		ServiceModeHTTP,
		ServiceModeScheduler,
	}

	if len(modes) != len(expected) {
		t.Errorf("expected %d service modes, got %d", len(expected), len(modes))
	}

	for i, mode := range modes {
		if mode != expected[i] {
			t.Errorf("expected service mode %s at index %d, got %s", expected[i], i, mode)
		}
	}
}

func TestRateLimitConfig_ForKey(t *testing.T) {
	cfg := RateLimitConfig{Greenhouse: 2, Lever: 2, Workday: 1, Default: 1.5}

	tests := []struct {
		key  string
		want float64
	}{
		{"greenhouse", 2},
		{"lever", 2},
		{"workday", 1},
		{"ashby", 1.5},
		{"careers.example.com", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := cfg.ForKey(tt.key); got != tt.want {
				t.Errorf("ForKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestFetcherConfig_Sanitize(t *testing.T) {
	cfg := FetcherConfig{
		RequestTimeout: 0,
		MaxRetries:     -1,
		RetryBaseDelay: 0,
		RobotsTTL:      0,
		MaxBodyBytes:   10,
		ProxyEnabled:   true,
		ProxyURL:       "  ",
	}

	cfg.Sanitize()

	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", cfg.MaxRetries)
	}
	if cfg.RetryBaseDelay != time.Second {
		t.Errorf("RetryBaseDelay = %v, want 1s", cfg.RetryBaseDelay)
	}
	if cfg.RobotsTTL != 24*time.Hour {
		t.Errorf("RobotsTTL = %v, want 24h", cfg.RobotsTTL)
	}
	if cfg.MaxBodyBytes != 10*1024*1024 {
		t.Errorf("MaxBodyBytes = %d, want 10MiB", cfg.MaxBodyBytes)
	}
	if cfg.ProxyEnabled {
		t.Error("expected proxy to be disabled without a URL")
	}
}

func TestRateLimitConfig_Sanitize(t *testing.T) {
	cfg := RateLimitConfig{Greenhouse: 0, Lever: -1, Workday: 0, Default: 0}
	cfg.Sanitize()

	if cfg.Default != 1.5 {
		t.Errorf("Default = %v, want 1.5", cfg.Default)
	}
	if cfg.Greenhouse != 1.5 || cfg.Lever != 1.5 || cfg.Workday != 1.5 {
		t.Errorf("expected provider rates to fall back to default, got %+v", cfg)
	}
}

func TestRendererConfig_Sanitize(t *testing.T) {
	cfg := RendererConfig{Mode: "phantomjs", Timeout: 0}
	cfg.Sanitize()

	if cfg.Mode != RendererModeNone {
		t.Errorf("Mode = %v, want none", cfg.Mode)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
	}
}

func TestSchedulerConfig_Sanitize(t *testing.T) {
	cfg := SchedulerConfig{RefreshIntervalHours: 0, PassBudget: time.Second}
	cfg.Sanitize()

	if cfg.RefreshIntervalHours != 6 {
		t.Errorf("RefreshIntervalHours = %d, want 6", cfg.RefreshIntervalHours)
	}
	if cfg.PassBudget != time.Hour {
		t.Errorf("PassBudget = %v, want 1h", cfg.PassBudget)
	}
	if got := cfg.RefreshCron(); got != "@every 6h" {
		t.Errorf("RefreshCron() = %q, want %q", got, "@every 6h")
	}
}

func TestSeedExpanderConfig_EnabledTiers(t *testing.T) {
	tests := []struct {
		name        string
		tiers       string
		want        []model.SeedTier
		expectError bool
	}{
		{name: "default", tiers: "1,2", want: []model.SeedTier{model.TierPremium, model.TierIndex}},
		{name: "with spaces", tiers: " 1 , 3 ", want: []model.SeedTier{model.TierPremium, model.TierSupplemental}},
		{name: "invalid number", tiers: "1,x", expectError: true},
		{name: "out of range", tiers: "4", expectError: true},
		{name: "empty", tiers: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SeedExpanderConfig{Tiers: tt.tiers}
			got, err := cfg.EnabledTiers()

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("EnabledTiers = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("EnabledTiers[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}

func TestLogConfig_Sanitize(t *testing.T) {
	cfg := LogConfig{Level: " DEBUG ", Format: "yaml"}
	cfg.Sanitize()

	if cfg.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
}

func TestObservabilityNotificationsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled:    true,
		Timeout:    0,
		RetryLimit: -1,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: " ",
			Channel:    "  ",
			Username:   "",
		},
		PagerDuty: PagerDutyNotificationConfig{
			Enabled:    true,
			RoutingKey: " ",
			Source:     "",
			Component:  "",
		},
	}

	cfg.Sanitize()

	if cfg.Timeout <= 0 {
		t.Fatalf("expected timeout to fall back to default, got %v", cfg.Timeout)
	}
	if cfg.RetryLimit < 0 {
		t.Fatalf("expected retry limit to be clamped to >= 0, got %d", cfg.RetryLimit)
	}
	if cfg.Slack.Enabled {
		t.Fatal("expected slack to be disabled without a webhook url")
	}
	if cfg.PagerDuty.Enabled {
		t.Fatal("expected pagerduty to be disabled without a routing key")
	}
	if cfg.PagerDuty.Source != "hirelens" {
		t.Fatalf("expected pagerduty source default, got %q", cfg.PagerDuty.Source)
	}
	if cfg.PagerDuty.Component != "hirelens" {
		t.Fatalf("expected pagerduty component default, got %q", cfg.PagerDuty.Component)
	}

	// Disabled top-level should disable child sinks.
	cfg = ObservabilityNotificationsConfig{
		Enabled: false,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
		},
		PagerDuty: PagerDutyNotificationConfig{
			Enabled:    true,
			RoutingKey: "abc",
		},
	}
	cfg.Sanitize()

	if cfg.Slack.Enabled {
		t.Fatal("expected slack to be disabled when top-level notifications disabled")
	}
	if cfg.PagerDuty.Enabled {
		t.Fatal("expected pagerduty to be disabled when top-level notifications disabled")
	}
}
