package ats

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/fetch"
)

// smartRecruiters adapts the SmartRecruiters public postings API.
type smartRecruiters struct{}

const smartRecruitersPageSize = 100

type smartRecruitersListing struct {
	TotalFound int `json:"totalFound"`
	Content    []struct {
		Name     string `json:"name"`
		Location struct {
			City    string `json:"city"`
			Region  string `json:"region"`
			Country string `json:"country"`
			Remote  bool   `json:"remote"`
		} `json:"location"`
		Department struct {
			Label string `json:"label"`
		} `json:"department"`
		Function struct {
			Label string `json:"label"`
		} `json:"function"`
		ID string `json:"id"`
	} `json:"content"`
}

func (smartRecruiters) Type() model.ATSType { return model.ATSSmartRecruiters }
func (smartRecruiters) RateKey() string     { return "smartrecruiters" }

func (smartRecruiters) CareersURL(token string) string {
	return "https://careers.smartrecruiters.com/" + token
}

func (s smartRecruiters) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	listing, ok, err := s.page(ctx, client, token, 1, 0)
	if err != nil || !ok {
		return model.JobBoard{}, err
	}
	return model.JobBoard{
		Exists:     true,
		CareersURL: s.CareersURL(token),
		Jobs:       s.rawJobs(token, listing),
	}, nil
}

func (s smartRecruiters) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	board := model.JobBoard{CareersURL: s.CareersURL(token)}
	pages := 0
	offset := 0
	for {
		listing, ok, err := s.page(ctx, client, token, smartRecruitersPageSize, offset)
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
		board.Jobs = append(board.Jobs, s.rawJobs(token, listing)...)
		pages++

		offset += smartRecruitersPageSize
		if offset >= listing.TotalFound || len(listing.Content) == 0 {
			return board, pages, nil
		}
	}
}

func (s smartRecruiters) page(
	ctx context.Context,
	client Fetcher,
	token string,
	limit, offset int,
) (smartRecruitersListing, bool, error) {
	url := fmt.Sprintf("https://api.smartrecruiters.com/v1/companies/%s/postings?limit=%d&offset=%d",
		token, limit, offset)
	body, ok, err := fetchBoard(ctx, client, fetch.Request{
		URL:        url,
		RateKey:    s.RateKey(),
		AcceptJSON: true,
	})
	if err != nil || !ok {
		return smartRecruitersListing{}, ok, err
	}

	var listing smartRecruitersListing
	if err := decodeJSON(body, &listing); err != nil {
		return smartRecruitersListing{}, false, err
	}
	return listing, true, nil
}

func (s smartRecruiters) rawJobs(token string, listing smartRecruitersListing) []model.RawJob {
	jobs := make([]model.RawJob, 0, len(listing.Content))
	for _, p := range listing.Content {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		parts := make([]string, 0, 4)
		if p.Location.Remote {
			parts = append(parts, "Remote")
		}
		for _, v := range []string{p.Location.City, p.Location.Region, p.Location.Country} {
			if strings.TrimSpace(v) != "" {
				parts = append(parts, v)
			}
		}
		dept := p.Department.Label
		if dept == "" {
			dept = p.Function.Label
		}
		jobs = append(jobs, model.RawJob{
			Title:      p.Name,
			Location:   strings.Join(parts, ", "),
			Department: dept,
			URL:        fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", token, p.ID),
		})
	}
	return jobs
}
