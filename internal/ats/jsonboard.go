package ats

import (
	"context"
	"encoding/json"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/fetch"
)

// jsonBoard adapts providers whose whole listing is one JSON document.
// Field extraction is declared as JMESPath expressions, so each vendor is
// a table entry instead of a bespoke parser. Location expressions may
// yield an array; the non-empty string elements are joined with ", ".
type jsonBoard struct {
	atsType  model.ATSType
	rateKey  string
	endpoint func(token string) string
	careers  func(token string) string

	items       jmespath.JMESPath
	title       jmespath.JMESPath
	location    jmespath.JMESPath
	department  jmespath.JMESPath
	url         jmespath.JMESPath
	description jmespath.JMESPath
}

func (b *jsonBoard) Type() model.ATSType { return b.atsType }
func (b *jsonBoard) RateKey() string     { return b.rateKey }

func (b *jsonBoard) CareersURL(token string) string { return b.careers(token) }

func (b *jsonBoard) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	return b.fetch(ctx, client, token)
}

func (b *jsonBoard) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	board, err := b.fetch(ctx, client, token)
	if err != nil || !board.Exists {
		return board, 0, err
	}
	return board, 1, nil
}

func (b *jsonBoard) fetch(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	body, ok, err := fetchBoard(ctx, client, fetch.Request{
		URL:        b.endpoint(token),
		RateKey:    b.rateKey,
		AcceptJSON: true,
	})
	if err != nil || !ok {
		return model.JobBoard{}, err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return model.JobBoard{}, apperrors.Wrap(err, apperrors.ErrCodeParse, "decode listing payload")
	}

	rawItems, err := b.items.Search(doc)
	if err != nil {
		return model.JobBoard{}, apperrors.Wrap(err, apperrors.ErrCodeParse, "extract postings")
	}

	board := model.JobBoard{Exists: true, CareersURL: b.careers(token)}
	if rawItems == nil {
		return board, nil
	}
	items, ok := rawItems.([]any)
	if !ok {
		return model.JobBoard{}, apperrors.Parsef("postings node is %T, want array", rawItems)
	}

	board.Jobs = make([]model.RawJob, 0, len(items))
	for _, item := range items {
		title := evalText(b.title, item)
		if title == "" {
			continue
		}
		board.Jobs = append(board.Jobs, model.RawJob{
			Title:       title,
			Location:    evalText(b.location, item),
			Department:  evalText(b.department, item),
			URL:         evalText(b.url, item),
			Description: evalText(b.description, item),
		})
	}
	return board, nil
}

// evalText evaluates expr against item and coerces the result to a
// display string.
func evalText(expr jmespath.JMESPath, item any) string {
	if expr == nil {
		return ""
	}
	v, err := expr.Search(item)
	if err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func newWorkable() *jsonBoard {
	return &jsonBoard{
		atsType: model.ATSWorkable,
		rateKey: "workable",
		endpoint: func(token string) string {
			return "https://apply.workable.com/api/v1/widget/accounts/" + token
		},
		careers: func(token string) string {
			return "https://apply.workable.com/" + token + "/"
		},
		items:      jmespath.MustCompile("jobs"),
		title:      jmespath.MustCompile("title"),
		location:   jmespath.MustCompile("[telecommuting && 'Remote' || '', city, state, country]"),
		department: jmespath.MustCompile("department"),
		url:        jmespath.MustCompile("url"),
	}
}

func newBreezy() *jsonBoard {
	return &jsonBoard{
		atsType: model.ATSBreezy,
		rateKey: "breezy",
		endpoint: func(token string) string {
			return "https://" + token + ".breezy.hr/json"
		},
		careers: func(token string) string {
			return "https://" + token + ".breezy.hr"
		},
		items:      jmespath.MustCompile("@"),
		title:      jmespath.MustCompile("name"),
		location:   jmespath.MustCompile("[location.is_remote && 'Remote' || '', location.city, location.country.name]"),
		department: jmespath.MustCompile("department"),
		url:        jmespath.MustCompile("url"),
	}
}

func newRecruitee() *jsonBoard {
	return &jsonBoard{
		atsType: model.ATSRecruitee,
		rateKey: "recruitee",
		endpoint: func(token string) string {
			return "https://" + token + ".recruitee.com/api/offers/"
		},
		careers: func(token string) string {
			return "https://" + token + ".recruitee.com"
		},
		items:       jmespath.MustCompile("offers"),
		title:       jmespath.MustCompile("title"),
		location:    jmespath.MustCompile("[remote && 'Remote' || '', location]"),
		department:  jmespath.MustCompile("department"),
		url:         jmespath.MustCompile("careers_url"),
		description: jmespath.MustCompile("description"),
	}
}

func newPinpoint() *jsonBoard {
	return &jsonBoard{
		atsType: model.ATSPinpoint,
		rateKey: "pinpoint",
		endpoint: func(token string) string {
			return "https://" + token + ".pinpointhq.com/postings.json"
		},
		careers: func(token string) string {
			return "https://" + token + ".pinpointhq.com"
		},
		items:      jmespath.MustCompile("data"),
		title:      jmespath.MustCompile("title"),
		location:   jmespath.MustCompile("location.name"),
		department: jmespath.MustCompile("department.name"),
		url:        jmespath.MustCompile("url"),
	}
}
