package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/fetch"
)

// workday adapts the Workday CXS job board API. Tenants live on
// {token}.wd1.myworkdayjobs.com and listings are fetched page by page via
// POST. Some tenants require the CALYPSO_CSRF_TOKEN cookie before
// accepting CXS posts, so collection bootstraps a session off the public
// board page first.
type workday struct{}

const (
	workdayPageSize = 50
	// workdayMaxOffset stops pagination on tenants that report a bogus
	// total.
	workdayMaxOffset = 5000
)

type workdayRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type workdayListing struct {
	Total       int              `json:"total"`
	JobPostings []workdayPosting `json:"jobPostings"`
}

type workdayPosting struct {
	Title         string `json:"title"`
	ExternalPath  string `json:"externalPath"`
	ExternalURL   string `json:"externalUrl"`
	LocationsText string `json:"locationsText"`
	Location      string `json:"location"`
}

func (workday) Type() model.ATSType { return model.ATSWorkday }
func (workday) RateKey() string     { return "workday" }

func (workday) CareersURL(token string) string {
	return fmt.Sprintf("https://%s.wd1.myworkdayjobs.com/External", token)
}

func (workday) host(token string) string {
	return fmt.Sprintf("%s.wd1.myworkdayjobs.com", token)
}

func (w workday) jobsEndpoint(token string) string {
	return fmt.Sprintf("https://%s/wday/cxs/%s/External/jobs", w.host(token), token)
}

// Probe posts a single-item page. Unknown tenants respond with a 4xx
// (often before DNS even resolves a wildcard host), which counts as a
// clean miss.
func (w workday) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	listing, ok, err := w.page(ctx, client, token, 1, 0, nil)
	if err != nil || !ok {
		return model.JobBoard{}, err
	}
	return model.JobBoard{
		Exists:     true,
		CareersURL: w.CareersURL(token),
		Jobs:       w.rawJobs(token, listing.JobPostings),
	}, nil
}

func (w workday) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	session := w.bootstrap(ctx, client, token)

	board := model.JobBoard{CareersURL: w.CareersURL(token)}
	pages := 0
	offset := 0
	for {
		listing, ok, err := w.page(ctx, client, token, workdayPageSize, offset, session)
		if err != nil {
			return board, pages, err
		}
		if !ok {
			if pages == 0 {
				return model.JobBoard{}, 0, nil
			}
			return board, pages, apperrors.Parsef("listing page at offset %d disappeared mid-collection", offset)
		}

		board.Exists = true
		board.Jobs = append(board.Jobs, w.rawJobs(token, listing.JobPostings)...)
		pages++

		offset += workdayPageSize
		if offset >= listing.Total || len(listing.JobPostings) == 0 || offset > workdayMaxOffset {
			return board, pages, nil
		}
	}
}

func (w workday) page(
	ctx context.Context,
	client Fetcher,
	token string,
	limit, offset int,
	session http.Header,
) (workdayListing, bool, error) {
	payload, err := json.Marshal(workdayRequest{
		AppliedFacets: map[string]any{},
		Limit:         limit,
		Offset:        offset,
		SearchText:    "",
	})
	if err != nil {
		return workdayListing{}, false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "marshal listing request")
	}

	header := http.Header{}
	header.Set("Origin", "https://"+w.host(token))
	header.Set("Referer", w.CareersURL(token))
	header.Set("Accept-Language", "en-US")
	for k, vs := range session {
		for _, v := range vs {
			header.Set(k, v)
		}
	}

	body, ok, err := fetchBoard(ctx, client, fetch.Request{
		Method:     http.MethodPost,
		URL:        w.jobsEndpoint(token),
		Body:       payload,
		Header:     header,
		RateKey:    w.RateKey(),
		AcceptJSON: true,
	})
	if err != nil || !ok {
		return workdayListing{}, ok, err
	}

	var listing workdayListing
	if err := decodeJSON(body, &listing); err != nil {
		return workdayListing{}, false, err
	}
	return listing, true, nil
}

// bootstrap loads the public board page and lifts the session cookies a
// strict tenant expects on CXS posts. Failure is fine; most tenants
// accept anonymous posts.
func (w workday) bootstrap(ctx context.Context, client Fetcher, token string) http.Header {
	resp, err := client.Do(ctx, fetch.Request{
		URL:     w.CareersURL(token),
		RateKey: w.RateKey(),
	})
	if err != nil {
		return nil
	}

	cookies := (&http.Response{Header: resp.Header}).Cookies()
	if len(cookies) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(cookies))
	session := http.Header{}
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
		if c.Name == "CALYPSO_CSRF_TOKEN" {
			session.Set("X-Calypso-Csrf-Token", c.Value)
		}
	}
	session.Set("Cookie", strings.Join(pairs, "; "))
	return session
}

func (w workday) rawJobs(token string, postings []workdayPosting) []model.RawJob {
	jobs := make([]model.RawJob, 0, len(postings))
	for _, p := range postings {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		location := p.LocationsText
		if location == "" {
			location = p.Location
		}
		jobs = append(jobs, model.RawJob{
			Title:    title,
			Location: location,
			URL:      w.jobURL(token, p),
		})
	}
	return jobs
}

func (w workday) jobURL(token string, p workdayPosting) string {
	if p.ExternalURL != "" {
		return strings.TrimSpace(p.ExternalURL)
	}
	path := strings.TrimSpace(p.ExternalPath)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "https://" + w.host(token) + path
}
