package ats

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/fetch"
)

// greenhouse adapts the Greenhouse job board API. Every tenant is served
// from boards-api.greenhouse.io, so one rate key covers them all.
type greenhouse struct{}

type greenhouseListing struct {
	Jobs []greenhouseJob `json:"jobs"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type greenhouseJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
}

func (greenhouse) Type() model.ATSType { return model.ATSGreenhouse }
func (greenhouse) RateKey() string     { return "greenhouse" }

func (greenhouse) CareersURL(token string) string {
	return "https://boards.greenhouse.io/" + token
}

func (g greenhouse) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	return g.fetch(ctx, client, token, false)
}

func (g greenhouse) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	board, err := g.fetch(ctx, client, token, true)
	if err != nil || !board.Exists {
		return board, 0, err
	}
	return board, 1, nil
}

// fetch retrieves the listing; the full variant includes posting bodies
// for skill extraction, the probe variant stays light.
func (g greenhouse) fetch(ctx context.Context, client Fetcher, token string, content bool) (model.JobBoard, error) {
	url := fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs", token)
	if content {
		url += "?content=true"
	}

	body, ok, err := fetchBoard(ctx, client, fetch.Request{
		URL:        url,
		RateKey:    g.RateKey(),
		AcceptJSON: true,
	})
	if err != nil || !ok {
		return model.JobBoard{}, err
	}

	var listing greenhouseListing
	if err := decodeJSON(body, &listing); err != nil {
		return model.JobBoard{}, err
	}

	board := model.JobBoard{
		Exists:     true,
		CareersURL: g.CareersURL(token),
		Jobs:       make([]model.RawJob, 0, len(listing.Jobs)),
	}
	for _, j := range listing.Jobs {
		if strings.TrimSpace(j.Title) == "" {
			continue
		}
		dept := ""
		if len(j.Departments) > 0 {
			dept = j.Departments[0].Name
		}
		board.Jobs = append(board.Jobs, model.RawJob{
			Title:      j.Title,
			Location:   j.Location.Name,
			Department: dept,
			URL:        j.AbsoluteURL,
			// Posting bodies arrive entity-escaped.
			Description: html.UnescapeString(j.Content),
		})
	}
	return board, nil
}
