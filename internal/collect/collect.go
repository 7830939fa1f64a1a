// Package collect turns a confirmed company into the complete set of
// normalized postings currently open on its board.
package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/ats"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/normalize"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/observability/metrics"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// Collector fetches and normalizes the open postings for confirmed companies.
type Collector struct {
	registry *ats.Registry
	fetcher  ats.Fetcher
	cfg      config.CollectorConfig
	logger   *slog.Logger
	metrics  statsd.Sink
}

// Options bundles dependencies for NewCollector.
type Options struct {
	Registry *ats.Registry
	Fetcher  ats.Fetcher
	Config   config.CollectorConfig
	Logger   *slog.Logger
	Metrics  statsd.Sink
}

// NewCollector validates dependencies and constructs a collector.
func NewCollector(opts Options) (*Collector, error) {
	if opts.Registry == nil {
		return nil, errors.New("collect: registry is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("collect: fetcher is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Collector{
		registry: opts.Registry,
		fetcher:  opts.Fetcher,
		cfg:      opts.Config,
		logger:   logger,
		metrics:  opts.Metrics,
	}, nil
}

// Collect fetches every open posting on the company's board and returns the
// complete observed-open set for this pass. A mid-pagination failure yields
// a result with Partial set instead of an error: the jobs gathered so far
// are still worth reconciling as long as no closures are derived from them.
//
// A board that no longer exists produces a complete empty set, which the
// reconciler treats as every job having closed.
func (c *Collector) Collect(ctx context.Context, company *model.Company) (*model.CollectionResult, error) {
	if company == nil {
		return nil, apperrors.Validation("company is required")
	}

	provider, ok := c.registry.Get(company.ATSType)
	if !ok {
		return nil, apperrors.Validationf("unknown ATS provider %q", company.ATSType)
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, c.companyBudget())
	defer cancel()

	start := time.Now()

	board, pagesOK, err := provider.Collect(ctx, c.fetcher, company.Token)
	partial := false
	if err != nil {
		// A cancelled pass discards partial pages outright; only the
		// per-company budget may degrade to a partial result.
		if parent.Err() != nil {
			return nil, apperrors.Wrap(parent.Err(), apperrors.ErrCodeCanceled, "collection cancelled")
		}
		if pagesOK == 0 || !board.Exists {
			// Nothing usable arrived; the pass records an error for this
			// company and moves on.
			metrics.EmitCollection(c.metrics, metrics.CollectionMetric{
				ATSType:  company.ATSType,
				Result:   metrics.ResultError,
				Duration: time.Since(start),
				Err:      err,
			})
			code := apperrors.GetCode(err)
			if code == "" {
				code = apperrors.ErrCodeInternal
			}
			return nil, apperrors.Wrapf(err, code, "collect %s (%s)", company.CompanyName, company.ATSType)
		}

		// The board holds whatever pages arrived before the failure. Those
		// jobs are still worth reconciling, flagged so no closures are
		// derived from an incomplete set.
		partial = true
		err = apperrors.PartialCollection(pagesOK, err)
		c.logger.WarnContext(ctx, "partial collection",
			"company", company.CompanyName,
			"ats", company.ATSType,
			"pages_ok", pagesOK,
			"error", err)
	}

	careersURL := board.CareersURL
	if careersURL == "" {
		careersURL = company.CareersURL
	}

	result := &model.CollectionResult{
		CompanyID:   company.ID,
		CompanyName: company.CompanyName,
		ATSType:     company.ATSType,
		Token:       company.Token,
		CareersURL:  careersURL,
		Jobs:        normalizeBoard(company.ID, board.Jobs),
		CollectedAt: time.Now(),
		Partial:     partial,
	}
	if partial {
		result.PagesOK = pagesOK
	}
	result.Aggregates = aggregate(result.Jobs)

	c.logger.InfoContext(ctx, "collected company",
		"company", company.CompanyName,
		"ats", company.ATSType,
		"jobs", len(result.Jobs),
		"partial", partial,
		"duration", time.Since(start))
	metrics.EmitCollection(c.metrics, metrics.CollectionMetric{
		ATSType:  company.ATSType,
		Result:   metrics.ResultSuccess,
		Partial:  partial,
		Jobs:     len(result.Jobs),
		Duration: time.Since(start),
	})

	return result, nil
}

func (c *Collector) companyBudget() time.Duration {
	if c.cfg.CompanyBudget > 0 {
		return c.cfg.CompanyBudget
	}
	return 2 * time.Minute
}

// normalizeBoard maps raw postings to normalized jobs, dropping untitled
// records and collapsing duplicate hashes (first occurrence wins, so a
// reposted duplicate cannot double-count).
func normalizeBoard(companyID string, raws []model.RawJob) []model.NormalizedJob {
	jobs := make([]model.NormalizedJob, 0, len(raws))
	seen := make(map[string]bool, len(raws))

	for _, raw := range raws {
		title := normalize.CollapseSpace(raw.Title)
		if title == "" {
			continue
		}

		hash := normalize.JobHash(companyID, title, raw.Location)
		if seen[hash] {
			continue
		}
		seen[hash] = true

		jobs = append(jobs, model.NormalizedJob{
			JobHash:    hash,
			Title:      title,
			Location:   normalize.Location(raw.Location),
			Department: normalize.Department(raw.Department),
			Skills:     normalize.Skills(title, raw.Description),
			URL:        raw.URL,
		})
	}
	return jobs
}

// aggregate summarizes one pass over the normalized set.
func aggregate(jobs []model.NormalizedJob) model.CompanyAggregates {
	agg := model.CompanyAggregates{JobCount: len(jobs)}

	locSeen := make(map[string]bool)
	deptSeen := make(map[string]bool)
	skillSeen := make(map[string]bool)

	for _, job := range jobs {
		switch job.Location.WorkType {
		case model.WorkRemote:
			agg.RemoteCount++
		case model.WorkHybrid:
			agg.HybridCount++
		default:
			agg.OnsiteCount++
		}

		if raw := normalize.CollapseSpace(job.Location.Raw); raw != "" && !locSeen[raw] {
			locSeen[raw] = true
			agg.Locations = append(agg.Locations, raw)
			agg.NormalizedLocations = append(agg.NormalizedLocations, job.Location)
		}
		if job.Department != "" && !deptSeen[job.Department] {
			deptSeen[job.Department] = true
			agg.Departments = append(agg.Departments, job.Department)
		}
		for _, skill := range job.Skills {
			if !skillSeen[skill] {
				skillSeen[skill] = true
				agg.ExtractedSkills = append(agg.ExtractedSkills, skill)
			}
		}
	}

	sort.Strings(agg.Locations)
	sort.Strings(agg.Departments)
	sort.Strings(agg.ExtractedSkills)
	sort.Slice(agg.NormalizedLocations, func(i, j int) bool {
		return locationKey(agg.NormalizedLocations[i]) < locationKey(agg.NormalizedLocations[j])
	})

	return agg
}

func locationKey(loc model.Location) string {
	return fmt.Sprintf("%s|%s|%s|%s", loc.Country, loc.Region, loc.City, loc.Raw)
}
