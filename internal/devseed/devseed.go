// Package devseed populates a development database with a starter seed pool
// and a small demo archive, so the API and the archive queries have data
// before the first scheduled pass has run.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hirelens/hirelens/internal/data"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/normalize"
	"github.com/hirelens/hirelens/internal/reconcile"
	"github.com/hirelens/hirelens/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB         *sql.DB
	seeds      *service.SeedService
	reconciler *reconcile.Reconciler
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) (Services, error) {
	seedService, err := service.NewSeedService(service.SeedServiceOptions{
		Repo: data.NewSeedRepo(db),
	})
	if err != nil {
		return Services{}, fmt.Errorf("build seed service: %w", err)
	}

	reconciler, err := reconcile.NewReconciler(reconcile.Options{
		Repo: data.NewReconcileRepo(db),
	})
	if err != nil {
		return Services{}, fmt.Errorf("build reconciler: %w", err)
	}

	return Services{DB: db, seeds: seedService, reconciler: reconciler}, nil
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := seedCandidates(ctx, svcs.seeds, logger)
	if err := seedDemoArchive(ctx, svcs.reconciler, logger); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedCandidates(ctx context.Context, svc *service.SeedService, logger *slog.Logger) int {
	failures := 0
	for _, req := range defaultSeeds() {
		created, err := createSeed(ctx, svc, req)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create seed", "company", req.CompanyName, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "seed already exists"
			if created {
				msg = "created seed"
			}
			logger.InfoContext(ctx, msg, "company", req.CompanyName)
		}
	}
	return failures
}

func createSeed(ctx context.Context, svc *service.SeedService, req *model.CreateSeedRequest) (bool, error) {
	if _, err := svc.Create(ctx, req); err != nil {
		if errors.Is(err, data.ErrSeedNameExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// defaultSeeds is a starter pool of companies with well-known public boards,
// spread across tiers and sources so discovery passes and the stats surfaces
// have something representative to chew on.
func defaultSeeds() []*model.CreateSeedRequest {
	return []*model.CreateSeedRequest{
		{CompanyName: "Stripe", Source: "manual", Tier: model.TierPremium},
		{CompanyName: "Figma", Source: "manual", Tier: model.TierPremium},
		{CompanyName: "Notion", Source: "manual", Tier: model.TierPremium},
		{CompanyName: "Linear", Source: "manual", Tier: model.TierPremium},
		{CompanyName: "Ramp", Source: "manual", Tier: model.TierPremium},
		{CompanyName: "Vercel", Source: "manual", Tier: model.TierPremium},
		{CompanyName: "PostHog", Source: "yc-top-companies", Tier: model.TierIndex},
		{CompanyName: "Supabase", Source: "yc-top-companies", Tier: model.TierIndex},
		{CompanyName: "Tailscale", Source: "manual", Tier: model.TierIndex},
		{CompanyName: "Grafana Labs", TokenSlug: "grafanalabs", Source: "manual", Tier: model.TierIndex},
		{CompanyName: "Oxide Computer Company", TokenSlug: "oxide", Source: "remoteok-companies", Tier: model.TierSupplemental},
		{CompanyName: "Fly.io", TokenSlug: "flyio", Source: "remoteok-companies", Tier: model.TierSupplemental},
	}
}

// seedDemoArchive folds fabricated collection results through the real
// reconciler, so the demo companies and jobs land exactly the way a
// collection pass would write them.
func seedDemoArchive(ctx context.Context, rec *reconcile.Reconciler, logger *slog.Logger) error {
	for _, board := range demoBoards() {
		res := buildDemoResult(board)
		outcome, err := rec.Apply(ctx, res)
		if err != nil {
			return fmt.Errorf("seed demo company %q: %w", board.companyName, err)
		}
		if logger != nil {
			logger.InfoContext(ctx, "seeded demo company",
				"company", board.companyName,
				"jobs_added", outcome.JobsAdded,
				"jobs_seen", outcome.JobsSeen)
		}
	}
	return nil
}

// demoBoard is a fabricated provider listing for one demo company.
type demoBoard struct {
	companyName string
	ats         model.ATSType
	token       string
	careersURL  string
	jobs        []model.RawJob
}

func demoBoards() []demoBoard {
	return []demoBoard{
		{
			companyName: "Mapleworks Labs",
			ats:         model.ATSGreenhouse,
			token:       "mapleworkslabs",
			careersURL:  "https://boards.greenhouse.io/mapleworkslabs",
			jobs: []model.RawJob{
				{
					Title:       "Senior Backend Engineer",
					Location:    "Toronto, Ontario, Canada",
					Department:  "Engineering",
					URL:         "https://boards.greenhouse.io/mapleworkslabs/jobs/1001",
					Description: "Build Go services on PostgreSQL and Kubernetes, with Redis-backed caching.",
				},
				{
					Title:       "Data Engineer",
					Location:    "Remote - Canada",
					Department:  "Data",
					URL:         "https://boards.greenhouse.io/mapleworkslabs/jobs/1002",
					Description: "Own our Python and Spark pipelines feeding the warehouse on AWS.",
				},
				{
					Title:       "Product Designer",
					Location:    "Toronto, Ontario, Canada",
					Department:  "Design",
					URL:         "https://boards.greenhouse.io/mapleworkslabs/jobs/1003",
					Description: "Design flows end to end in Figma alongside product and engineering.",
				},
				{
					Title:       "Site Reliability Engineer",
					Location:    "Remote - Canada",
					Department:  "Engineering",
					URL:         "https://boards.greenhouse.io/mapleworkslabs/jobs/1004",
					Description: "Run Kubernetes, Terraform and Prometheus across our GCP footprint.",
				},
			},
		},
		{
			companyName: "Harborlight Health",
			ats:         model.ATSLever,
			token:       "harborlight-health",
			careersURL:  "https://jobs.lever.co/harborlight-health",
			jobs: []model.RawJob{
				{
					Title:       "Staff Software Engineer",
					Location:    "Remote - US",
					Department:  "Engineering",
					URL:         "https://jobs.lever.co/harborlight-health/2001",
					Description: "Lead TypeScript and React development for our clinician portal, backed by GraphQL APIs.",
				},
				{
					Title:       "Clinical Data Analyst",
					Location:    "Boston, MA",
					Department:  "Data",
					URL:         "https://jobs.lever.co/harborlight-health/2002",
					Description: "Analyze outcomes data with SQL and Python; dbt experience a plus.",
				},
				{
					Title:       "Mobile Engineer",
					Location:    "New York, NY (Hybrid)",
					Department:  "Engineering",
					URL:         "https://jobs.lever.co/harborlight-health/2003",
					Description: "Ship our React Native app for iOS and Android.",
				},
			},
		},
	}
}

// buildDemoResult normalizes a demo board the same way the collector
// normalizes a live one, so hashes and aggregates match what a real pass
// would produce for the same postings.
func buildDemoResult(board demoBoard) *model.CollectionResult {
	companyID := model.CompanyID(board.ats, board.token)

	jobs := make([]model.NormalizedJob, 0, len(board.jobs))
	for _, raw := range board.jobs {
		title := normalize.CollapseSpace(raw.Title)
		jobs = append(jobs, model.NormalizedJob{
			JobHash:    normalize.JobHash(companyID, title, raw.Location),
			Title:      title,
			Location:   normalize.Location(raw.Location),
			Department: normalize.Department(raw.Department),
			Skills:     normalize.Skills(title, raw.Description),
			URL:        raw.URL,
		})
	}

	return &model.CollectionResult{
		CompanyID:   companyID,
		CompanyName: board.companyName,
		ATSType:     board.ats,
		Token:       board.token,
		CareersURL:  board.careersURL,
		Jobs:        jobs,
		Aggregates:  aggregateDemoJobs(jobs),
		CollectedAt: time.Now().UTC(),
	}
}

func aggregateDemoJobs(jobs []model.NormalizedJob) model.CompanyAggregates {
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

		if raw := job.Location.Raw; raw != "" && !locSeen[raw] {
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

	return agg
}
