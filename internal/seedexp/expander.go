// Package seedexp mines candidate company names from a fixed registry of
// public directories and turns them into untested seeds.
package seedexp

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/slug"
	"github.com/hirelens/hirelens/internal/fetch"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// Fetcher is the outbound HTTP surface the expander needs.
type Fetcher interface {
	Do(ctx context.Context, req fetch.Request) (*fetch.Response, error)
}

// SeedInserter is the slice of the seed store the expander writes through.
type SeedInserter interface {
	BulkInsert(ctx context.Context, reqs []model.CreateSeedRequest) (int, error)
}

// Expander runs the seed-expansion pass over the source registry.
type Expander struct {
	seeds   SeedInserter
	fetcher Fetcher
	sources []Source
	cfg     config.SeedExpanderConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// Options bundles dependencies for NewExpander.
type Options struct {
	Seeds   SeedInserter
	Fetcher Fetcher

	// Sources defaults to BuiltinSources when empty.
	Sources []Source

	Config  config.SeedExpanderConfig
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Report summarizes one expansion pass.
type Report struct {
	SourcesRun    int
	SourcesFailed int
	Extracted     int
	Accepted      int
	Inserted      int
}

// NewExpander validates dependencies and constructs an expander.
func NewExpander(opts Options) (*Expander, error) {
	if opts.Seeds == nil {
		return nil, errors.New("seedexp: seed repository is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("seedexp: fetcher is required")
	}

	sources := opts.Sources
	if len(sources) == 0 {
		sources = BuiltinSources()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Expander{
		seeds:   opts.Seeds,
		fetcher: opts.Fetcher,
		sources: sources,
		cfg:     opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Expand mines every enabled source once. Sources run sequentially with
// random jitter between fetches so directory hosts never see synchronized
// bursts; a failing source is logged and skipped, never aborting the pass.
// Progress is reported as sources completed over sources enabled.
func (e *Expander) Expand(ctx context.Context, progress model.ProgressFunc) (*Report, error) {
	tiers, err := e.cfg.EnabledTiers()
	if err != nil {
		return nil, err
	}
	enabled := make(map[model.SeedTier]bool, len(tiers))
	for _, t := range tiers {
		enabled[t] = true
	}

	var active []Source
	for _, src := range e.sources {
		if enabled[src.Tier] {
			active = append(active, src)
		}
	}

	report := &Report{}
	for i, src := range active {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if i > 0 {
			if err := e.jitter(ctx); err != nil {
				return report, err
			}
		}

		report.SourcesRun++
		if err := e.expandSource(ctx, src, report); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			report.SourcesFailed++
			e.logger.ErrorContext(ctx, "seed source failed",
				"source", src.Name, "tier", src.Tier, "error", err)
			if e.metrics != nil {
				e.metrics.Count("seedexp.source", 1, map[string]string{"source": src.Name, "result": "error"})
			}
		} else if e.metrics != nil {
			e.metrics.Count("seedexp.source", 1, map[string]string{"source": src.Name, "result": "success"})
		}

		if progress != nil {
			progress(float64(i+1)/float64(len(active)), model.PassStats{
				Tested: report.Extracted,
				Hits:   report.Inserted,
				Errors: report.SourcesFailed,
			})
		}
	}

	e.logger.InfoContext(ctx, "seed expansion finished",
		"sources", report.SourcesRun,
		"failed", report.SourcesFailed,
		"extracted", report.Extracted,
		"accepted", report.Accepted,
		"inserted", report.Inserted)
	if e.metrics != nil && report.Inserted > 0 {
		e.metrics.Count("seedexp.inserted", int64(report.Inserted), nil)
	}

	return report, nil
}

// expandSource fetches and parses one directory, filters its names, and
// bulk-inserts the survivors. Names already present in the store are
// silently skipped by the insert.
func (e *Expander) expandSource(ctx context.Context, src Source, report *Report) error {
	resp, err := e.fetcher.Do(ctx, fetch.Request{
		URL:     src.URL,
		RateKey: src.Name,
		NeedsJS: src.NeedsJS,
	})
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return err
	}

	names := src.Extract(doc)
	report.Extracted += len(names)

	reqs := make([]model.CreateSeedRequest, 0, len(names))
	batchSeen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := sanitizeName(raw)
		if !acceptName(name, e.cfg.MinNameLength, e.cfg.MaxNameLength) {
			continue
		}
		key := strings.ToLower(name)
		if batchSeen[key] {
			continue
		}
		batchSeen[key] = true

		reqs = append(reqs, model.CreateSeedRequest{
			CompanyName: name,
			TokenSlug:   slug.Make(name),
			Source:      src.Name,
			Tier:        src.Tier,
		})
	}
	report.Accepted += len(reqs)

	if len(reqs) == 0 {
		e.logger.DebugContext(ctx, "seed source yielded nothing usable",
			"source", src.Name, "extracted", len(names))
		return nil
	}

	inserted, err := e.seeds.BulkInsert(ctx, reqs)
	if err != nil {
		return err
	}
	report.Inserted += inserted

	e.logger.InfoContext(ctx, "seed source expanded",
		"source", src.Name,
		"extracted", len(names),
		"accepted", len(reqs),
		"inserted", inserted)
	return nil
}

// jitter sleeps a random duration in [0, SourceJitter).
func (e *Expander) jitter(ctx context.Context) error {
	if e.cfg.SourceJitter <= 0 {
		return nil
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil
	}
	delay := time.Duration(binary.BigEndian.Uint64(buf[:]) % uint64(e.cfg.SourceJitter))

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
