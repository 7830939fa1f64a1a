package ats

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/fetch"
)

// lever adapts the Lever postings API. The whole listing comes back as a
// single JSON array; unknown tenants 404.
type lever struct{}

type leverPosting struct {
	Text             string `json:"text"`
	HostedURL        string `json:"hostedUrl"`
	DescriptionPlain string `json:"descriptionPlain"`
	WorkplaceType    string `json:"workplaceType"`
	Categories       struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Department string `json:"department"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
}

func (lever) Type() model.ATSType { return model.ATSLever }
func (lever) RateKey() string     { return "lever" }

func (lever) CareersURL(token string) string {
	return "https://jobs.lever.co/" + token
}

func (l lever) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	return l.fetch(ctx, client, token)
}

func (l lever) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	board, err := l.fetch(ctx, client, token)
	if err != nil || !board.Exists {
		return board, 0, err
	}
	return board, 1, nil
}

func (l lever) fetch(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	body, ok, err := fetchBoard(ctx, client, fetch.Request{
		URL:        fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", token),
		RateKey:    l.RateKey(),
		AcceptJSON: true,
	})
	if err != nil || !ok {
		return model.JobBoard{}, err
	}

	var postings []leverPosting
	if err := decodeJSON(body, &postings); err != nil {
		return model.JobBoard{}, err
	}

	board := model.JobBoard{
		Exists:     true,
		CareersURL: l.CareersURL(token),
		Jobs:       make([]model.RawJob, 0, len(postings)),
	}
	for _, p := range postings {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		dept := p.Categories.Department
		if dept == "" {
			dept = p.Categories.Team
		}
		location := p.Categories.Location
		// Lever reports remote policy out of band of the location string.
		if strings.EqualFold(p.WorkplaceType, "remote") && !strings.Contains(strings.ToLower(location), "remote") {
			location = strings.TrimSuffix("Remote - "+location, " - ")
		}
		board.Jobs = append(board.Jobs, model.RawJob{
			Title:       p.Text,
			Location:    location,
			Department:  dept,
			URL:         p.HostedURL,
			Description: p.DescriptionPlain,
		})
	}
	return board, nil
}
