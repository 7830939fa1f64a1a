// Package fetch provides the shared outbound HTTP client for the pipeline:
// per-provider token buckets, robots.txt policy, user-agent rotation,
// bounded retries with backoff, and an optional headless-browser fallback.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hirelens/hirelens/config"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/fetch/render"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// Request describes one outbound fetch.
type Request struct {
	// Method defaults to GET when empty.
	Method string
	// URL is the absolute target URL.
	URL string
	// Body is sent as the request body for POST/PUT requests.
	Body []byte
	// Header carries extra request headers; User-Agent is managed by the fetcher.
	Header http.Header
	// RateKey selects the token bucket; the URL host is used when empty.
	// Providers with a known API host share one bucket across tenants.
	RateKey string
	// AcceptJSON sets an application/json Accept header.
	AcceptJSON bool
	// NeedsJS routes the request through the headless-browser renderer.
	NeedsJS bool
}

// Response is the outcome of a successful fetch (HTTP 2xx).
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Options groups dependencies for Fetcher.
type Options struct {
	Config    config.FetcherConfig   // Required: fetch policy configuration
	RateLimit config.RateLimitConfig // Required: per-provider bucket rates
	Client    *http.Client           // Optional: defaults to a fresh client without its own timeout
	Renderer  render.PageRenderer    // Optional: headless-browser fallback for NeedsJS requests
	Logger    *slog.Logger           // Optional: structured logger
	Metrics   statsd.Sink            // Optional: metrics sink (StatsD-compatible)
}

// Fetcher is the process-wide outbound HTTP client. All probe, collection
// and seed expansion traffic goes through it so that rate limits and
// robots policy hold across concurrent tasks.
type Fetcher struct {
	config   config.FetcherConfig
	client   *http.Client
	limits   *hostLimits
	robots   *robotsCache
	agents   *agentPool
	renderer render.PageRenderer
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewFetcher constructs a new Fetcher.
func NewFetcher(opts Options) (*Fetcher, error) {
	client := opts.Client
	if client == nil {
		transport := http.DefaultTransport
		if opts.Config.ProxyEnabled {
			proxyURL, err := url.Parse(opts.Config.ProxyURL)
			if err != nil {
				return nil, fmt.Errorf("parse proxy url: %w", err)
			}
			t := http.DefaultTransport.(*http.Transport).Clone()
			t.Proxy = http.ProxyURL(proxyURL)
			transport = t
		}
		// Per-attempt timeouts come from the request context, not the client.
		client = &http.Client{Transport: transport}
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "fetcher")
	}

	f := &Fetcher{
		config:   opts.Config,
		client:   client,
		limits:   newHostLimits(opts.RateLimit),
		agents:   newAgentPool(nil),
		renderer: opts.Renderer,
		logger:   logger,
		metrics:  opts.Metrics,
	}
	f.robots = newRobotsCache(opts.Config.RobotsTTL, f.fetchRobots)
	return f, nil
}

// Do executes a request under the fetcher's policies. It returns a
// Response only for 2xx statuses; everything else surfaces as an AppError
// with one of the fetch error codes.
func (f *Fetcher) Do(ctx context.Context, req Request) (*Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil || !u.IsAbs() {
		return nil, apperrors.Validationf("invalid fetch url %q", req.URL)
	}

	if f.config.RespectRobots {
		agent := f.agents.Peek()
		allowed, robotsErr := f.robots.Allowed(ctx, u, agent)
		if robotsErr != nil {
			return nil, robotsErr
		}
		if !allowed {
			f.count("fetch.request", req.RateKey, "policy_blocked")
			return nil, apperrors.PolicyBlocked(fmt.Sprintf("robots.txt disallows %s", u.Host))
		}
	}

	if req.NeedsJS {
		return f.renderPage(ctx, req, u)
	}

	key := req.RateKey
	if key == "" {
		key = u.Host
	}

	start := time.Now()
	resp, err := f.doWithRetries(ctx, req, key)
	f.timing("fetch.request_duration", key, time.Since(start))
	if err != nil {
		f.count("fetch.request", key, string(apperrors.GetCode(err)))
		return nil, err
	}
	f.count("fetch.request", key, "success")
	return resp, nil
}

func (f *Fetcher) doWithRetries(ctx context.Context, req Request, key string) (*Response, error) {
	attempts := f.config.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var (
		lastErr    error
		retryAfter time.Duration
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := backoffDelay(f.config.RetryBaseDelay, attempt-1)
			if retryAfter > 0 {
				delay = retryAfter
			}
			if f.logger != nil {
				f.logger.DebugContext(ctx, "retrying fetch",
					"url", req.URL,
					"attempt", attempt,
					"delay", delay,
				)
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, mapContextError(ctx.Err())
			}
		}

		if err := f.limits.Wait(ctx, key); err != nil {
			return nil, mapContextError(err)
		}

		resp, status, header, err := f.attempt(ctx, req)
		if err != nil {
			lastErr = err
			retryAfter = 0
			if apperrors.Retryable(err) && attempt < attempts {
				continue
			}
			return nil, err
		}

		if status >= 200 && status < 300 {
			return resp, nil
		}

		httpErr := apperrors.HTTPStatus(status, fmt.Sprintf("%s returned %d", req.URL, status))
		lastErr = httpErr
		retryAfter = retryAfterDelay(header)
		if apperrors.Retryable(httpErr) && attempt < attempts {
			continue
		}
		return nil, httpErr
	}
	return nil, lastErr
}

// attempt performs a single HTTP round trip with the per-attempt timeout.
// Non-2xx statuses are returned to the caller, not mapped to errors here,
// so the retry loop can read Retry-After.
func (f *Fetcher) attempt(ctx context.Context, req Request) (*Response, int, http.Header, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.config.RequestTimeout)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, req.URL, body)
	if err != nil {
		return nil, 0, nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "build request for %s", req.URL)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("User-Agent", f.agents.Next())
	if req.AcceptJSON {
		httpReq.Header.Set("Accept", "application/json")
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, 0, nil, f.mapTransportError(ctx, err, req.URL)
	}
	defer httpResp.Body.Close() //nolint:errcheck // read side already captured

	payload, err := io.ReadAll(io.LimitReader(httpResp.Body, f.config.MaxBodyBytes))
	if err != nil {
		return nil, 0, nil, f.mapTransportError(ctx, err, req.URL)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       payload,
	}
	return resp, httpResp.StatusCode, httpResp.Header, nil
}

// renderPage satisfies a NeedsJS request through the headless renderer.
func (f *Fetcher) renderPage(ctx context.Context, req Request, u *url.URL) (*Response, error) {
	if f.renderer == nil {
		return nil, apperrors.RequiresJS(fmt.Sprintf("%s requires JavaScript and no renderer is configured", u.Host))
	}

	key := req.RateKey
	if key == "" {
		key = u.Host
	}
	if err := f.limits.Wait(ctx, key); err != nil {
		return nil, mapContextError(err)
	}

	dom, err := f.renderer.Render(ctx, req.URL)
	if err != nil {
		if errors.Is(err, render.ErrUnavailable) {
			f.count("fetch.request", key, "requires_js")
			return nil, apperrors.RequiresJS(fmt.Sprintf("%s requires JavaScript and no renderer is configured", u.Host))
		}
		f.count("fetch.request", key, "render_failed")
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeNetwork, "render %s", req.URL)
	}

	f.count("fetch.request", key, "rendered")
	return &Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       []byte(dom),
	}, nil
}

// fetchRobots retrieves a robots.txt without robots checking or retries.
// It still respects the per-host bucket so policy fetches stay polite.
func (f *Fetcher) fetchRobots(ctx context.Context, rawURL string) (int, []byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, nil, apperrors.Validationf("invalid robots url %q", rawURL)
	}
	if err := f.limits.Wait(ctx, u.Host); err != nil {
		return 0, nil, mapContextError(err)
	}

	resp, status, _, err := f.attempt(ctx, Request{URL: rawURL})
	if err != nil {
		return 0, nil, err
	}
	return status, resp.Body, nil
}

func (f *Fetcher) mapTransportError(ctx context.Context, err error, target string) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrapf(err, apperrors.ErrCodeCanceled, "fetch %s cancelled", target)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrapf(err, apperrors.ErrCodeTimeout, "fetch %s timed out", target)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperrors.Wrapf(err, apperrors.ErrCodeTimeout, "fetch %s timed out", target)
	}

	return apperrors.Network(err, fmt.Sprintf("fetch %s failed", target))
}

func mapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrapf(err, apperrors.ErrCodeTimeout, "fetch timed out")
	}
	return apperrors.Wrapf(err, apperrors.ErrCodeCanceled, "fetch cancelled")
}

func (f *Fetcher) count(name, key, result string) {
	if f.metrics == nil {
		return
	}
	f.metrics.Count(name, 1, map[string]string{"rate_key": key, "result": result})
}

func (f *Fetcher) timing(name, key string, d time.Duration) {
	if f.metrics == nil {
		return
	}
	f.metrics.Timing(name, d, map[string]string{"rate_key": key})
}
