package config

import (
	"strings"
	"time"
)

// FetcherConfig contains outbound HTTP fetch configuration.
type FetcherConfig struct {
	// RequestTimeout is the total budget for a single HTTP attempt.
	RequestTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	// MaxRetries is the number of retries on network errors, 5xx, or 429.
	MaxRetries int `env:"FETCH_MAX_RETRIES" envDefault:"3"`

	// RetryBaseDelay is the base delay for exponential backoff between retries.
	RetryBaseDelay time.Duration `env:"FETCH_RETRY_BASE_DELAY" envDefault:"1s"`

	// RespectRobots controls whether robots.txt disallow rules block fetches.
	RespectRobots bool `env:"RESPECT_ROBOTS" envDefault:"true"`

	// RobotsTTL is how long a fetched robots.txt is cached per host.
	RobotsTTL time.Duration `env:"ROBOTS_CACHE_TTL" envDefault:"24h"`

	// MaxBodyBytes caps the size of a response body read into memory.
	MaxBodyBytes int64 `env:"FETCH_MAX_BODY_BYTES" envDefault:"10485760"` // 10 MiB

	// ProxyEnabled routes outbound requests through ProxyURL.
	ProxyEnabled bool `env:"PROXY_ENABLED" envDefault:"false"`

	// ProxyURL is the outbound proxy, e.g. "http://proxy.internal:3128".
	ProxyURL string `env:"PROXY_URL"`
}

// Sanitize applies guardrails to fetcher configuration values.
func (f *FetcherConfig) Sanitize() {
	if f.RequestTimeout <= 0 {
		f.RequestTimeout = 30 * time.Second
	}
	if f.MaxRetries < 0 {
		f.MaxRetries = 0
	}
	if f.MaxRetries > 10 {
		f.MaxRetries = 10
	}
	if f.RetryBaseDelay <= 0 {
		f.RetryBaseDelay = time.Second
	}
	if f.RobotsTTL <= 0 {
		f.RobotsTTL = 24 * time.Hour
	}
	if f.MaxBodyBytes < 1024 {
		f.MaxBodyBytes = 10 * 1024 * 1024
	}
	f.ProxyURL = strings.TrimSpace(f.ProxyURL)
	if f.ProxyURL == "" {
		f.ProxyEnabled = false
	}
}

// RateLimitConfig contains per-provider token bucket refill rates in
// requests per second. The fetcher shares one bucket per rate key across
// all concurrent tasks.
type RateLimitConfig struct {
	Greenhouse float64 `env:"RATE_LIMIT_GREENHOUSE" envDefault:"2"`
	Lever      float64 `env:"RATE_LIMIT_LEVER"      envDefault:"2"`
	Workday    float64 `env:"RATE_LIMIT_WORKDAY"    envDefault:"1"`
	Default    float64 `env:"RATE_LIMIT_DEFAULT"    envDefault:"1.5"`
}

// ForKey returns the refill rate for a rate key, falling back to Default.
func (r RateLimitConfig) ForKey(key string) float64 {
	switch key {
	case "greenhouse":
		return r.Greenhouse
	case "lever":
		return r.Lever
	case "workday":
		return r.Workday
	default:
		return r.Default
	}
}

// Sanitize applies guardrails to rate limit configuration values.
func (r *RateLimitConfig) Sanitize() {
	if r.Default <= 0 {
		r.Default = 1.5
	}
	if r.Greenhouse <= 0 {
		r.Greenhouse = r.Default
	}
	if r.Lever <= 0 {
		r.Lever = r.Default
	}
	if r.Workday <= 0 {
		r.Workday = r.Default
	}
}

// RendererMode selects the headless browser fallback implementation.
type RendererMode string

const (
	// RendererModeNone disables JS rendering; needs_js fetches fail with requires_js.
	RendererModeNone RendererMode = "none"
	// RendererModeChromedp renders through a headless Chrome via chromedp.
	RendererModeChromedp RendererMode = "chromedp"
)

// RendererConfig contains headless browser fallback configuration.
type RendererConfig struct {
	// Mode selects the renderer implementation: none or chromedp.
	Mode RendererMode `env:"RENDERER" envDefault:"none"`

	// Timeout is the budget for rendering a single page.
	Timeout time.Duration `env:"RENDERER_TIMEOUT" envDefault:"45s"`
}

// Sanitize applies guardrails to renderer configuration values.
func (r *RendererConfig) Sanitize() {
	switch r.Mode {
	case RendererModeNone, RendererModeChromedp:
	default:
		r.Mode = RendererModeNone
	}
	if r.Timeout <= 0 {
		r.Timeout = 45 * time.Second
	}
}
