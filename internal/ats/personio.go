package ats

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/fetch"
)

// personio adapts the Personio XML job feed.
type personio struct{}

type personioFeed struct {
	XMLName   xml.Name           `xml:"workzag-jobs"`
	Positions []personioPosition `xml:"position"`
}

type personioPosition struct {
	ID           string `xml:"id"`
	Name         string `xml:"name"`
	Office       string `xml:"office"`
	Department   string `xml:"department"`
	Descriptions []struct {
		Value string `xml:"value"`
	} `xml:"jobDescriptions>jobDescription"`
}

func (personio) Type() model.ATSType { return model.ATSPersonio }
func (personio) RateKey() string     { return "personio" }

func (personio) CareersURL(token string) string {
	return fmt.Sprintf("https://%s.jobs.personio.de", token)
}

func (p personio) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	return p.fetch(ctx, client, token)
}

func (p personio) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	board, err := p.fetch(ctx, client, token)
	if err != nil || !board.Exists {
		return board, 0, err
	}
	return board, 1, nil
}

func (p personio) fetch(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	body, ok, err := fetchBoard(ctx, client, fetch.Request{
		URL:     p.CareersURL(token) + "/xml",
		RateKey: p.RateKey(),
	})
	if err != nil || !ok {
		return model.JobBoard{}, err
	}

	var feed personioFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return model.JobBoard{}, apperrors.Wrap(err, apperrors.ErrCodeParse, "decode job feed")
	}

	board := model.JobBoard{
		Exists:     true,
		CareersURL: p.CareersURL(token),
		Jobs:       make([]model.RawJob, 0, len(feed.Positions)),
	}
	for _, pos := range feed.Positions {
		name := strings.TrimSpace(pos.Name)
		if name == "" {
			continue
		}
		var desc strings.Builder
		for _, d := range pos.Descriptions {
			desc.WriteString(d.Value)
			desc.WriteString(" ")
		}
		board.Jobs = append(board.Jobs, model.RawJob{
			Title:       name,
			Location:    pos.Office,
			Department:  pos.Department,
			URL:         fmt.Sprintf("%s/job/%s", p.CareersURL(token), pos.ID),
			Description: desc.String(),
		})
	}
	return board, nil
}
