package seedexp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/fetch"
)

const curatedListHTML = `<html><body><article><ul>
<li><a href="https://acme.example">Acme</a> | Berlin | <a href="https://example.com">details</a></li>
<li><a href="https://globex.example">Globex Corporation</a></li>
<li><a href="https://acme.example">acme</a></li>
<li><a href="https://example.com/careers">Careers</a></li>
<li><a href="https://x.example">X</a></li>
</ul></article></body></html>`

const indexTableHTML = `<html><body><table id="constituents"><tbody>
<tr><td>MMM</td><td><a href="/wiki/3M">3M</a></td></tr>
<tr><td>AOS</td><td><a href="/wiki/A._O._Smith">A. O. Smith</a></td></tr>
</tbody></table></body></html>`

// fakeSeedStore records bulk inserts and reports every row as new unless
// told otherwise.
type fakeSeedStore struct {
	mu       sync.Mutex
	batches  [][]model.CreateSeedRequest
	inserted int
	err      error
}

func (f *fakeSeedStore) BulkInsert(_ context.Context, reqs []model.CreateSeedRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, reqs)
	n := f.inserted
	if n == 0 {
		n = len(reqs)
	}
	return n, nil
}

func (f *fakeSeedStore) all() []model.CreateSeedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CreateSeedRequest
	for _, b := range f.batches {
		out = append(out, b...)
	}
	return out
}

// fakeSourceFetcher serves canned HTML by URL substring and records what
// was asked of it.
type fakeSourceFetcher struct {
	mu       sync.Mutex
	pages    map[string]string
	failures map[string]error
	requests []fetch.Request
}

func newFakeSourceFetcher() *fakeSourceFetcher {
	return &fakeSourceFetcher{pages: map[string]string{}, failures: map[string]error{}}
}

func (f *fakeSourceFetcher) Do(_ context.Context, req fetch.Request) (*fetch.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)

	for substr, err := range f.failures {
		if strings.Contains(req.URL, substr) {
			return nil, err
		}
	}
	for substr, body := range f.pages {
		if strings.Contains(req.URL, substr) {
			return &fetch.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}, nil
		}
	}
	return nil, errors.New("no page for " + req.URL)
}

func (f *fakeSourceFetcher) requestedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	urls := make([]string, len(f.requests))
	for i, r := range f.requests {
		urls[i] = r.URL
	}
	return urls
}

func testSources() []Source {
	return []Source{
		{
			Name:    "curated-list",
			URL:     "https://directory.test/curated",
			Tier:    model.TierPremium,
			NeedsJS: true,
			Extract: leadingLinkText("article li"),
		},
		{
			Name:    "index-table",
			URL:     "https://directory.test/index",
			Tier:    model.TierIndex,
			Extract: selectorText("table#constituents td a"),
		},
	}
}

func testConfig() config.SeedExpanderConfig {
	return config.SeedExpanderConfig{
		Tiers:         "1,2",
		MinNameLength: 2,
		MaxNameLength: 200,
		SourceJitter:  0,
	}
}

func newTestExpander(t *testing.T, store *fakeSeedStore, fetcher Fetcher, cfg config.SeedExpanderConfig) *Expander {
	t.Helper()
	exp, err := NewExpander(Options{
		Seeds:   store,
		Fetcher: fetcher,
		Sources: testSources(),
		Config:  cfg,
	})
	require.NoError(t, err)
	return exp
}

func TestNewExpanderValidation(t *testing.T) {
	_, err := NewExpander(Options{Fetcher: newFakeSourceFetcher()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed repository")

	_, err = NewExpander(Options{Seeds: &fakeSeedStore{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetcher")
}

func TestExpandMinesAndFiltersSources(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.pages["/curated"] = curatedListHTML
	fetcher.pages["/index"] = indexTableHTML
	store := &fakeSeedStore{}

	exp := newTestExpander(t, store, fetcher, testConfig())

	report, err := exp.Expand(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SourcesRun)
	assert.Equal(t, 0, report.SourcesFailed)
	// curated: Acme, Globex Corporation, acme, Careers, X; index: 3M, A. O. Smith.
	assert.Equal(t, 7, report.Extracted)
	// "acme" dedupes against "Acme", "Careers" is a stop word, "X" is too short.
	assert.Equal(t, 4, report.Accepted)
	assert.Equal(t, 4, report.Inserted)

	seeds := store.all()
	require.Len(t, seeds, 4)

	byName := map[string]model.CreateSeedRequest{}
	for _, s := range seeds {
		byName[s.CompanyName] = s
	}
	require.Contains(t, byName, "Acme")
	assert.Equal(t, "acme", byName["Acme"].TokenSlug)
	assert.Equal(t, "curated-list", byName["Acme"].Source)
	assert.Equal(t, model.TierPremium, byName["Acme"].Tier)

	require.Contains(t, byName, "A. O. Smith")
	assert.Equal(t, "index-table", byName["A. O. Smith"].Source)
	assert.Equal(t, model.TierIndex, byName["A. O. Smith"].Tier)
}

func TestExpandRoutesRendererRequests(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.pages["/curated"] = curatedListHTML
	fetcher.pages["/index"] = indexTableHTML
	store := &fakeSeedStore{}

	exp := newTestExpander(t, store, fetcher, testConfig())
	_, err := exp.Expand(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, fetcher.requests, 2)
	assert.True(t, fetcher.requests[0].NeedsJS, "curated source should request rendering")
	assert.False(t, fetcher.requests[1].NeedsJS)
	assert.Equal(t, "curated-list", fetcher.requests[0].RateKey)
}

func TestExpandHonorsTierFilter(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.pages["/curated"] = curatedListHTML
	store := &fakeSeedStore{}

	cfg := testConfig()
	cfg.Tiers = "1"
	exp := newTestExpander(t, store, fetcher, cfg)

	report, err := exp.Expand(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SourcesRun)
	urls := fetcher.requestedURLs()
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "/curated")
}

func TestExpandInvalidTierConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Tiers = "9"
	exp := newTestExpander(t, &fakeSeedStore{}, newFakeSourceFetcher(), cfg)

	_, err := exp.Expand(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed tier")
}

func TestExpandIsolatesSourceFailures(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.failures["/curated"] = errors.New("directory unreachable")
	fetcher.pages["/index"] = indexTableHTML
	store := &fakeSeedStore{}

	exp := newTestExpander(t, store, fetcher, testConfig())

	report, err := exp.Expand(context.Background(), nil)
	require.NoError(t, err, "one bad source must not abort the pass")

	assert.Equal(t, 2, report.SourcesRun)
	assert.Equal(t, 1, report.SourcesFailed)
	assert.Equal(t, 2, report.Inserted)
}

func TestExpandStopsOnCancellation(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.failures["/curated"] = context.Canceled
	fetcher.pages["/index"] = indexTableHTML
	store := &fakeSeedStore{}

	exp := newTestExpander(t, store, fetcher, testConfig())

	report, err := exp.Expand(context.Background(), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Inserted)
	assert.Len(t, fetcher.requestedURLs(), 1, "cancellation must stop remaining sources")
}

func TestExpandCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exp := newTestExpander(t, &fakeSeedStore{}, newFakeSourceFetcher(), testConfig())

	_, err := exp.Expand(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExpandReportsProgress(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.failures["/curated"] = errors.New("directory unreachable")
	fetcher.pages["/index"] = indexTableHTML
	store := &fakeSeedStore{}

	exp := newTestExpander(t, store, fetcher, testConfig())

	var fractions []float64
	var last model.PassStats
	_, err := exp.Expand(context.Background(), func(p float64, stats model.PassStats) {
		fractions = append(fractions, p)
		last = stats
	})
	require.NoError(t, err)

	require.Equal(t, []float64{0.5, 1.0}, fractions)
	assert.Equal(t, 2, last.Tested, "extracted names feed the tested counter")
	assert.Equal(t, 2, last.Hits)
	assert.Equal(t, 1, last.Errors)
}

func TestExpandSkipsInsertWhenNothingUsable(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.pages["/curated"] = `<html><body><article><ul><li><a href="/x">Careers</a></li></ul></article></body></html>`
	store := &fakeSeedStore{}

	cfg := testConfig()
	cfg.Tiers = "1"
	exp := newTestExpander(t, store, fetcher, cfg)

	report, err := exp.Expand(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Extracted)
	assert.Equal(t, 0, report.Accepted)
	assert.Empty(t, store.batches, "no insert without accepted names")
}

func TestExpandCountsStoreFailureAgainstSource(t *testing.T) {
	fetcher := newFakeSourceFetcher()
	fetcher.pages["/curated"] = curatedListHTML
	fetcher.pages["/index"] = indexTableHTML
	store := &fakeSeedStore{err: errors.New("connection refused")}

	exp := newTestExpander(t, store, fetcher, testConfig())

	report, err := exp.Expand(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.SourcesFailed)
	assert.Equal(t, 0, report.Inserted)
}

func TestBuiltinSources(t *testing.T) {
	sources := BuiltinSources()
	require.NotEmpty(t, sources)

	seen := map[string]bool{}
	for _, src := range sources {
		assert.NotEmpty(t, src.Name)
		assert.True(t, strings.HasPrefix(src.URL, "https://"), "source %s has insecure URL", src.Name)
		assert.True(t, src.Tier.Valid(), "source %s has invalid tier", src.Name)
		assert.NotNil(t, src.Extract, "source %s has no extractor", src.Name)
		assert.False(t, seen[src.Name], "duplicate source name %s", src.Name)
		seen[src.Name] = true
	}
}
