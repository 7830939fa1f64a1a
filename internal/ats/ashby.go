package ats

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/fetch"
)

// ashby adapts the Ashby posting API.
type ashby struct{}

type ashbyListing struct {
	Jobs []ashbyJob `json:"jobs"`
}

type ashbyJob struct {
	Title            string `json:"title"`
	Location         string `json:"location"`
	Department       string `json:"department"`
	Team             string `json:"team"`
	JobURL           string `json:"jobUrl"`
	IsRemote         bool   `json:"isRemote"`
	DescriptionPlain string `json:"descriptionPlain"`
}

func (ashby) Type() model.ATSType { return model.ATSAshby }
func (ashby) RateKey() string     { return "ashby" }

func (ashby) CareersURL(token string) string {
	return "https://jobs.ashbyhq.com/" + token
}

func (a ashby) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	return a.fetch(ctx, client, token)
}

func (a ashby) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	board, err := a.fetch(ctx, client, token)
	if err != nil || !board.Exists {
		return board, 0, err
	}
	return board, 1, nil
}

func (a ashby) fetch(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	body, ok, err := fetchBoard(ctx, client, fetch.Request{
		URL:        fmt.Sprintf("https://api.ashbyhq.com/posting-api/job-board/%s", token),
		RateKey:    a.RateKey(),
		AcceptJSON: true,
	})
	if err != nil || !ok {
		return model.JobBoard{}, err
	}

	var listing ashbyListing
	if err := decodeJSON(body, &listing); err != nil {
		return model.JobBoard{}, err
	}

	board := model.JobBoard{
		Exists:     true,
		CareersURL: a.CareersURL(token),
		Jobs:       make([]model.RawJob, 0, len(listing.Jobs)),
	}
	for _, j := range listing.Jobs {
		if strings.TrimSpace(j.Title) == "" {
			continue
		}
		dept := j.Department
		if dept == "" {
			dept = j.Team
		}
		location := j.Location
		if j.IsRemote && !strings.Contains(strings.ToLower(location), "remote") {
			location = strings.TrimSuffix("Remote - "+location, " - ")
		}
		board.Jobs = append(board.Jobs, model.RawJob{
			Title:       j.Title,
			Location:    location,
			Department:  dept,
			URL:         j.JobURL,
			Description: j.DescriptionPlain,
		})
	}
	return board, nil
}
