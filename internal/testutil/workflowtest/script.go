package workflowtest

import (
	"context"
	"sync"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/seedexp"
	"github.com/hirelens/hirelens/internal/testutil"
)

// BoardJob is one posting a scripted board currently serves.
type BoardJob struct {
	Title    string
	Location string
	WorkType model.WorkType
	Skills   []string
}

// ScriptedProber resolves seeds against a scripted outcome table: every seed
// hits on the configured provider with its token slug as the board token,
// except company names registered as misses or failures.
type ScriptedProber struct {
	// ATS is the provider every hit lands on.
	ATS model.ATSType

	mu     sync.Mutex
	misses map[string]bool
	errs   map[string]error
}

// NewScriptedProber creates a prober that hits every seed on greenhouse.
func NewScriptedProber() *ScriptedProber {
	return &ScriptedProber{
		ATS:    model.ATSGreenhouse,
		misses: make(map[string]bool),
		errs:   make(map[string]error),
	}
}

// Miss makes probes of the named company come back negative.
func (p *ScriptedProber) Miss(companyName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.misses[companyName] = true
}

// Fail makes probes of the named company return err.
func (p *ScriptedProber) Fail(companyName string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[companyName] = err
}

// ProbeSeed implements service.SeedProber.
func (p *ScriptedProber) ProbeSeed(_ context.Context, seed *model.Seed) (*model.ProbeOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.errs[seed.CompanyName]; err != nil {
		return nil, err
	}

	outcome := &model.ProbeOutcome{
		SeedID:      seed.ID,
		CompanyName: seed.CompanyName,
		ATSType:     p.ATS,
		TestedAt:    time.Now().UTC(),
	}
	if p.misses[seed.CompanyName] {
		return outcome, nil
	}

	outcome.Hit = true
	outcome.Token = seed.TokenSlug
	return outcome, nil
}

// ScriptedCollector serves boards from an in-memory script keyed by token.
// Tests rewrite a board between passes to simulate postings opening and
// closing; tokens never scripted collect as empty boards.
type ScriptedCollector struct {
	mu      sync.Mutex
	boards  map[string][]BoardJob
	partial map[string]bool
	errs    map[string]error
}

// NewScriptedCollector creates a collector with no boards scripted.
func NewScriptedCollector() *ScriptedCollector {
	return &ScriptedCollector{
		boards:  make(map[string][]BoardJob),
		partial: make(map[string]bool),
		errs:    make(map[string]error),
	}
}

// SetBoard replaces the postings the token's board serves from now on.
func (c *ScriptedCollector) SetBoard(token string, jobs ...BoardJob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boards[token] = jobs
}

// FailBoard makes collections of the token's board return err.
func (c *ScriptedCollector) FailBoard(token string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs[token] = err
}

// MarkPartial flags the token's results as incomplete, so reconciliation
// must not close its absent postings.
func (c *ScriptedCollector) MarkPartial(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.partial[token] = true
}

// Collect implements service.BoardCollector.
func (c *ScriptedCollector) Collect(_ context.Context, company *model.Company) (*model.CollectionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.errs[company.Token]; err != nil {
		return nil, err
	}

	b := testutil.NewCollectionResult(company)
	if c.partial[company.Token] {
		b.Partial()
	}
	for _, job := range c.boards[company.Token] {
		wt := job.WorkType
		if wt == "" {
			wt = model.WorkOnsite
		}
		b.AddJob(job.Title, job.Location, wt, job.Skills...)
	}
	return b.Build(), nil
}

// noopExpander satisfies expansion passes without any seed sources.
type noopExpander struct{}

func (noopExpander) Expand(context.Context, model.ProgressFunc) (*seedexp.Report, error) {
	return &seedexp.Report{}, nil
}
