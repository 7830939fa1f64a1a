package testutil

import (
	"fmt"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/normalize"
)

// UniqueName returns a prefixed name unique across test runs, for columns
// carrying UNIQUE constraints.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// SeedRequestBuilder provides a fluent interface for building
// CreateSeedRequest objects for testing.
type SeedRequestBuilder struct {
	req *model.CreateSeedRequest
}

// NewSeedRequest creates a new SeedRequestBuilder with sensible defaults.
// The company name is unique per call so repeated inserts do not collide.
func NewSeedRequest() *SeedRequestBuilder {
	return &SeedRequestBuilder{
		req: &model.CreateSeedRequest{
			CompanyName: UniqueName("seed-co"),
			Source:      "manual",
			Tier:        model.TierPremium,
		},
	}
}

// WithName sets the company name.
func (b *SeedRequestBuilder) WithName(name string) *SeedRequestBuilder {
	b.req.CompanyName = name
	return b
}

// WithTokenSlug sets an explicit token slug instead of the derived one.
func (b *SeedRequestBuilder) WithTokenSlug(slug string) *SeedRequestBuilder {
	b.req.TokenSlug = slug
	return b
}

// WithSource sets the seed source.
func (b *SeedRequestBuilder) WithSource(source string) *SeedRequestBuilder {
	b.req.Source = source
	return b
}

// WithTier sets the seed tier.
func (b *SeedRequestBuilder) WithTier(tier model.SeedTier) *SeedRequestBuilder {
	b.req.Tier = tier
	return b
}

// Build returns the constructed CreateSeedRequest.
func (b *SeedRequestBuilder) Build() *model.CreateSeedRequest {
	return b.req
}

// CompanyBuilder provides a fluent interface for building Company rows for
// testing.
type CompanyBuilder struct {
	company *model.Company
}

// NewCompany creates a CompanyBuilder for a unique greenhouse board with
// empty aggregates.
func NewCompany() *CompanyBuilder {
	token := UniqueName("board")
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &CompanyBuilder{
		company: &model.Company{
			ID:                  model.CompanyID(model.ATSGreenhouse, token),
			CompanyName:         UniqueName("company"),
			ATSType:             model.ATSGreenhouse,
			Token:               token,
			Locations:           []string{},
			Departments:         []string{},
			NormalizedLocations: []model.Location{},
			ExtractedSkills:     []string{},
			CareersURL:          "https://boards.greenhouse.io/" + token,
			FirstDiscovered:     now,
			LastUpdated:         now,
		},
	}
}

// WithName sets the company name.
func (b *CompanyBuilder) WithName(name string) *CompanyBuilder {
	b.company.CompanyName = name
	return b
}

// WithBoard sets the ATS provider and token, rederiving the company id.
func (b *CompanyBuilder) WithBoard(ats model.ATSType, token string) *CompanyBuilder {
	b.company.ATSType = ats
	b.company.Token = token
	b.company.ID = model.CompanyID(ats, token)
	return b
}

// WithCounts sets the aggregate posting counts.
func (b *CompanyBuilder) WithCounts(job, remote, hybrid, onsite int) *CompanyBuilder {
	b.company.JobCount = job
	b.company.RemoteCount = remote
	b.company.HybridCount = hybrid
	b.company.OnsiteCount = onsite
	return b
}

// WithSkills sets the extracted skills.
func (b *CompanyBuilder) WithSkills(skills ...string) *CompanyBuilder {
	b.company.ExtractedSkills = skills
	return b
}

// WithLocations sets the raw location strings.
func (b *CompanyBuilder) WithLocations(locations ...string) *CompanyBuilder {
	b.company.Locations = locations
	return b
}

// WithLastUpdated sets the last_updated timestamp.
func (b *CompanyBuilder) WithLastUpdated(t time.Time) *CompanyBuilder {
	b.company.LastUpdated = t.UTC()
	return b
}

// WithFirstDiscovered sets the first_discovered timestamp.
func (b *CompanyBuilder) WithFirstDiscovered(t time.Time) *CompanyBuilder {
	b.company.FirstDiscovered = t.UTC()
	return b
}

// Build returns the constructed Company.
func (b *CompanyBuilder) Build() *model.Company {
	return b.company
}

// JobBuilder provides a fluent interface for building archive Job rows for
// testing. The job hash is derived from company, title and location at Build,
// the same way the collector derives it.
type JobBuilder struct {
	job      *model.Job
	location string
}

// NewJob creates a JobBuilder for an open onsite posting at the company.
func NewJob(companyID string) *JobBuilder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &JobBuilder{
		job: &model.Job{
			CompanyID: companyID,
			Title:     UniqueName("Engineer"),
			WorkType:  model.WorkOnsite,
			Skills:    []string{},
			FirstSeen: now,
			LastSeen:  now,
			Status:    model.JobOpen,
		},
	}
}

// WithTitle sets the posting title.
func (b *JobBuilder) WithTitle(title string) *JobBuilder {
	b.job.Title = title
	return b
}

// WithLocation sets the raw location used for hashing plus the normalized
// city/region/country columns.
func (b *JobBuilder) WithLocation(raw, city, region, country string) *JobBuilder {
	b.location = raw
	b.job.City = city
	b.job.Region = region
	b.job.Country = country
	return b
}

// WithWorkType sets the work type.
func (b *JobBuilder) WithWorkType(wt model.WorkType) *JobBuilder {
	b.job.WorkType = wt
	return b
}

// WithSkills sets the extracted skills.
func (b *JobBuilder) WithSkills(skills ...string) *JobBuilder {
	b.job.Skills = skills
	return b
}

// WithSeenAt sets both first_seen and last_seen to t.
func (b *JobBuilder) WithSeenAt(t time.Time) *JobBuilder {
	b.job.FirstSeen = t.UTC()
	b.job.LastSeen = t.UTC()
	return b
}

// Build returns the constructed Job with its derived hash.
func (b *JobBuilder) Build() *model.Job {
	b.job.JobHash = normalize.JobHash(b.job.CompanyID, b.job.Title, b.location)
	return b.job
}

// CollectionResultBuilder provides a fluent interface for building
// CollectionResult objects for testing reconciliation.
type CollectionResultBuilder struct {
	result *model.CollectionResult
}

// NewCollectionResult creates a builder for a complete, empty collection of
// the company's board.
func NewCollectionResult(company *model.Company) *CollectionResultBuilder {
	return &CollectionResultBuilder{
		result: &model.CollectionResult{
			CompanyID:   company.ID,
			CompanyName: company.CompanyName,
			ATSType:     company.ATSType,
			Token:       company.Token,
			CareersURL:  company.CareersURL,
			Jobs:        []model.NormalizedJob{},
			CollectedAt: time.Now().UTC().Truncate(time.Microsecond),
		},
	}
}

// CollectedAt sets the pass timestamp.
func (b *CollectionResultBuilder) CollectedAt(t time.Time) *CollectionResultBuilder {
	b.result.CollectedAt = t.UTC()
	return b
}

// Partial marks the result incomplete, so reconciliation must not close jobs.
func (b *CollectionResultBuilder) Partial() *CollectionResultBuilder {
	b.result.Partial = true
	return b
}

// AddJob appends one observed posting.
func (b *CollectionResultBuilder) AddJob(title, rawLocation string, wt model.WorkType, skills ...string) *CollectionResultBuilder {
	if skills == nil {
		skills = []string{}
	}
	b.result.Jobs = append(b.result.Jobs, model.NormalizedJob{
		JobHash: normalize.JobHash(b.result.CompanyID, title, rawLocation),
		Title:   title,
		Location: model.Location{
			WorkType: wt,
			Raw:      rawLocation,
		},
		Skills: skills,
	})
	return b
}

// Build returns the constructed CollectionResult with aggregates recomputed
// from the added jobs.
func (b *CollectionResultBuilder) Build() *model.CollectionResult {
	agg := model.CompanyAggregates{
		JobCount:            len(b.result.Jobs),
		Locations:           []string{},
		Departments:         []string{},
		NormalizedLocations: []model.Location{},
		ExtractedSkills:     []string{},
	}
	seenSkills := map[string]bool{}
	seenLocations := map[string]bool{}
	for _, j := range b.result.Jobs {
		switch j.Location.WorkType {
		case model.WorkRemote:
			agg.RemoteCount++
		case model.WorkHybrid:
			agg.HybridCount++
		default:
			agg.OnsiteCount++
		}
		if j.Location.Raw != "" && !seenLocations[j.Location.Raw] {
			seenLocations[j.Location.Raw] = true
			agg.Locations = append(agg.Locations, j.Location.Raw)
			agg.NormalizedLocations = append(agg.NormalizedLocations, j.Location)
		}
		for _, s := range j.Skills {
			if !seenSkills[s] {
				seenSkills[s] = true
				agg.ExtractedSkills = append(agg.ExtractedSkills, s)
			}
		}
	}
	b.result.Aggregates = agg
	return b.result
}
