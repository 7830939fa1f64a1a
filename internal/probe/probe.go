// Package probe decides whether a candidate company runs a public job board
// on any known ATS provider, and on which tenant token.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/ats"
	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/slug"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/observability/metrics"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// errBoardFound stops an errgroup fan-out once any provider confirms a board.
var errBoardFound = errors.New("board found")

// Engine probes seeds against the ATS registry.
type Engine struct {
	registry *ats.Registry
	fetcher  ats.Fetcher
	cache    *core.ProbeCacheService
	cfg      config.ProbeConfig
	logger   *slog.Logger
	metrics  statsd.Sink
}

// Options bundles dependencies for NewEngine.
type Options struct {
	Registry *ats.Registry
	Fetcher  ats.Fetcher

	// Cache is optional; when nil every (provider, token) pair is probed
	// over the network each time.
	Cache *core.ProbeCacheService

	Config  config.ProbeConfig
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// NewEngine validates dependencies and constructs a probe engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Registry == nil {
		return nil, errors.New("probe: registry is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("probe: fetcher is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		registry: opts.Registry,
		fetcher:  opts.Fetcher,
		cache:    opts.Cache,
		cfg:      opts.Config,
		logger:   logger,
		metrics:  opts.Metrics,
	}, nil
}

// boardHit is one confirmed (provider, token) pair.
type boardHit struct {
	ats        model.ATSType
	careersURL string
	cached     bool
}

// ProbeSeed tests every candidate token for the seed's company name against
// the registry. Tokens are tried in heuristic order; within one token all
// providers are probed in parallel and the first confirmed board cancels the
// rest. A provider error is indistinguishable from a miss for that pair and
// is only counted for telemetry.
//
// The returned outcome reports a miss when no pair confirmed; an error is
// returned only for an unusable seed or a cancelled context.
func (e *Engine) ProbeSeed(ctx context.Context, seed *model.Seed) (*model.ProbeOutcome, error) {
	if seed == nil {
		return nil, apperrors.Validation("seed is required")
	}

	tokens := candidateTokens(seed)
	if len(tokens) == 0 {
		return nil, apperrors.NoCandidateTokens(fmt.Sprintf("no candidate tokens for %q", seed.CompanyName))
	}

	start := time.Now()
	outcome := &model.ProbeOutcome{
		SeedID:      seed.ID,
		CompanyName: seed.CompanyName,
	}

	for _, token := range tokens {
		hit, probeErrs, err := e.probeToken(ctx, token)
		outcome.ProbeErrors += probeErrs
		if err != nil {
			return nil, err
		}
		if hit == nil {
			continue
		}

		outcome.Hit = true
		outcome.ATSType = hit.ats
		outcome.Token = token
		outcome.TestedAt = time.Now()

		e.logger.InfoContext(ctx, "probe hit",
			"company", seed.CompanyName,
			"ats", hit.ats,
			"token", token,
			"cached", hit.cached,
			"duration", time.Since(start))
		metrics.EmitProbe(e.metrics, metrics.ProbeMetric{
			ATSType:  hit.ats,
			Hit:      true,
			Cached:   hit.cached,
			Duration: time.Since(start),
		})
		return outcome, nil
	}

	outcome.TestedAt = time.Now()

	e.logger.DebugContext(ctx, "probe miss",
		"company", seed.CompanyName,
		"tokens", len(tokens),
		"probe_errors", outcome.ProbeErrors,
		"duration", time.Since(start))
	metrics.EmitProbe(e.metrics, metrics.ProbeMetric{
		Hit:      false,
		Duration: time.Since(start),
	})
	return outcome, nil
}

// probeToken fans one token out across every provider. Cached outcomes are
// honoured first: a cached hit wins without any network traffic and a cached
// miss excludes that provider from the fan-out.
func (e *Engine) probeToken(ctx context.Context, token string) (*boardHit, int, error) {
	pending := make([]ats.Provider, 0, len(e.registry.All()))
	var cachedHits []boardHit

	for _, provider := range e.registry.All() {
		entry := e.cacheLookup(ctx, provider.Type(), token)
		if entry == nil {
			pending = append(pending, provider)
			continue
		}
		if entry.Hit {
			cachedHits = append(cachedHits, boardHit{ats: entry.ATSType, careersURL: entry.CareersURL, cached: true})
		}
	}

	if best := e.bestHit(cachedHits); best != nil {
		return best, 0, nil
	}

	var (
		mu        sync.Mutex
		hits      []boardHit
		probeErrs int
	)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(e.maxConcurrent())

	for _, provider := range pending {
		group.Go(func() error {
			board, err := provider.Probe(gctx, e.fetcher, token)
			switch {
			case err != nil:
				// Cancellation means either the parent gave up or another
				// provider already won; neither counts as a probe error.
				if apperrors.IsCanceled(err) || gctx.Err() != nil {
					return nil
				}
				mu.Lock()
				probeErrs++
				mu.Unlock()
				e.logger.DebugContext(ctx, "probe error",
					"ats", provider.Type(), "token", token, "error", err)
				return nil
			case board.Exists:
				mu.Lock()
				hits = append(hits, boardHit{ats: provider.Type(), careersURL: board.CareersURL})
				mu.Unlock()
				e.cacheRecord(ctx, core.ProbeCacheEntry{
					ATSType:    provider.Type(),
					Token:      token,
					Hit:        true,
					CareersURL: board.CareersURL,
					CheckedAt:  time.Now(),
				})
				return errBoardFound
			default:
				e.cacheRecord(ctx, core.ProbeCacheEntry{
					ATSType:   provider.Type(),
					Token:     token,
					Hit:       false,
					CheckedAt: time.Now(),
				})
				return nil
			}
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, errBoardFound) {
		return nil, probeErrs, err
	}
	if err := ctx.Err(); err != nil {
		return nil, probeErrs, apperrors.Wrap(err, apperrors.ErrCodeCanceled, "probe cancelled")
	}

	return e.bestHit(hits), probeErrs, nil
}

// bestHit applies the registry tie-break when several providers confirmed
// the same token before cancellation landed.
func (e *Engine) bestHit(hits []boardHit) *boardHit {
	var best *boardHit
	for i := range hits {
		if best == nil || e.registry.Priority(hits[i].ats) < e.registry.Priority(best.ats) {
			best = &hits[i]
		}
	}
	return best
}

func (e *Engine) maxConcurrent() int {
	if e.cfg.MaxConcurrent > 0 {
		return e.cfg.MaxConcurrent
	}
	return 8
}

func (e *Engine) cacheLookup(ctx context.Context, t model.ATSType, token string) *core.ProbeCacheEntry {
	if e.cache == nil {
		return nil
	}
	entry, err := e.cache.Lookup(ctx, t, token)
	if err != nil {
		// A broken cache degrades to probing; it never fails a pass.
		e.logger.DebugContext(ctx, "probe cache lookup failed", "ats", t, "token", token, "error", err)
		return nil
	}
	return entry
}

func (e *Engine) cacheRecord(ctx context.Context, entry core.ProbeCacheEntry) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Record(ctx, entry); err != nil {
		e.logger.DebugContext(ctx, "probe cache record failed", "ats", entry.ATSType, "token", entry.Token, "error", err)
	}
}

// candidateTokens merges the seed's stored slug with the generated variants,
// preserving order and dropping duplicates.
func candidateTokens(seed *model.Seed) []string {
	variants := slug.Candidates(seed.CompanyName)

	out := make([]string, 0, len(variants)+1)
	seen := make(map[string]bool, len(variants)+1)
	add := func(token string) {
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		out = append(out, token)
	}

	add(seed.TokenSlug)
	for _, v := range variants {
		add(v)
	}
	return out
}
