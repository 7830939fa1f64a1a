package ats

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/fetch"
)

// htmlBoard adapts providers without a public JSON listing by scraping
// their hosted careers page. The container selector proves the page is a
// job board at all; rows are parsed by a per-vendor func. Vendors whose
// listings only materialize client-side set needsJS, which routes a
// second attempt through the page renderer when the static HTML has no
// container.
type htmlBoard struct {
	atsType   model.ATSType
	rateKey   string
	endpoint  func(token string) string
	careers   func(token string) string
	container string
	rows      string
	parseRow  func(base *url.URL, s *goquery.Selection) model.RawJob
	needsJS   bool
}

func (b *htmlBoard) Type() model.ATSType { return b.atsType }
func (b *htmlBoard) RateKey() string     { return b.rateKey }

func (b *htmlBoard) CareersURL(token string) string { return b.careers(token) }

func (b *htmlBoard) Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	return b.fetch(ctx, client, token)
}

func (b *htmlBoard) Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error) {
	board, err := b.fetch(ctx, client, token)
	if err != nil || !board.Exists {
		return board, 0, err
	}
	return board, 1, nil
}

func (b *htmlBoard) fetch(ctx context.Context, client Fetcher, token string) (model.JobBoard, error) {
	endpoint := b.endpoint(token)
	body, ok, err := fetchBoard(ctx, client, fetch.Request{URL: endpoint, RateKey: b.rateKey})
	if err != nil || !ok {
		return model.JobBoard{}, err
	}

	board, found, err := b.parse(endpoint, token, body)
	if err != nil || found {
		return board, err
	}

	if b.needsJS {
		body, ok, err = fetchBoard(ctx, client, fetch.Request{URL: endpoint, RateKey: b.rateKey, NeedsJS: true})
		if err != nil || !ok {
			return model.JobBoard{}, err
		}
		board, found, err = b.parse(endpoint, token, body)
		if err != nil || found {
			return board, err
		}
	}
	return model.JobBoard{}, nil
}

func (b *htmlBoard) parse(endpoint, token string, body []byte) (model.JobBoard, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return model.JobBoard{}, false, apperrors.Wrap(err, apperrors.ErrCodeParse, "parse listing page")
	}
	if doc.Find(b.container).Length() == 0 {
		return model.JobBoard{}, false, nil
	}

	base, err := url.Parse(endpoint)
	if err != nil {
		return model.JobBoard{}, false, apperrors.Wrap(err, apperrors.ErrCodeParse, "parse listing url")
	}

	board := model.JobBoard{Exists: true, CareersURL: b.careers(token)}
	doc.Find(b.rows).Each(func(_ int, s *goquery.Selection) {
		job := b.parseRow(base, s)
		if strings.TrimSpace(job.Title) == "" {
			return
		}
		board.Jobs = append(board.Jobs, job)
	})
	return board, true, nil
}

// cleanText collapses runs of whitespace, which scraped nodes are full of.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func absoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func newTeamtailor() *htmlBoard {
	return &htmlBoard{
		atsType: model.ATSTeamtailor,
		rateKey: "teamtailor",
		endpoint: func(token string) string {
			return fmt.Sprintf("https://%s.teamtailor.com/jobs", token)
		},
		careers: func(token string) string {
			return fmt.Sprintf("https://%s.teamtailor.com/jobs", token)
		},
		container: "#jobs_list_items",
		rows:      "#jobs_list_items li",
		parseRow: func(base *url.URL, s *goquery.Selection) model.RawJob {
			link := s.Find("a").First()
			job := model.RawJob{
				Title: cleanText(link.Find("span").First().Text()),
				URL:   absoluteURL(base, link.AttrOr("href", "")),
			}
			// The meta line reads "Department · Location · …".
			meta := strings.Split(link.Find("div").First().Text(), "·")
			if len(meta) > 0 {
				job.Department = cleanText(meta[0])
			}
			if len(meta) > 1 {
				rest := make([]string, 0, len(meta)-1)
				for _, m := range meta[1:] {
					if v := cleanText(m); v != "" {
						rest = append(rest, v)
					}
				}
				job.Location = strings.Join(rest, ", ")
			}
			return job
		},
	}
}

func newJazz() *htmlBoard {
	return &htmlBoard{
		atsType: model.ATSJazz,
		rateKey: "jazz",
		endpoint: func(token string) string {
			return fmt.Sprintf("https://%s.applytojob.com/apply", token)
		},
		careers: func(token string) string {
			return fmt.Sprintf("https://%s.applytojob.com/apply", token)
		},
		container: "ul.list-group",
		rows:      "li.list-group-item",
		parseRow: func(base *url.URL, s *goquery.Selection) model.RawJob {
			link := s.Find("h4 a").First()
			return model.RawJob{
				Title:      cleanText(link.Text()),
				URL:        absoluteURL(base, link.AttrOr("href", "")),
				Location:   cleanText(s.Find("ul.list-inline li:has(i.fa-map-marker)").First().Text()),
				Department: cleanText(s.Find("ul.list-inline li:has(i.fa-building)").First().Text()),
			}
		},
	}
}

func newICIMS() *htmlBoard {
	return &htmlBoard{
		atsType: model.ATSICIMS,
		rateKey: "icims",
		endpoint: func(token string) string {
			return fmt.Sprintf("https://careers-%s.icims.com/jobs/search?ss=1&in_iframe=1", token)
		},
		careers: func(token string) string {
			return fmt.Sprintf("https://careers-%s.icims.com/jobs/search", token)
		},
		container: ".iCIMS_JobsTable",
		rows:      ".iCIMS_JobsTable .row",
		parseRow: func(base *url.URL, s *goquery.Selection) model.RawJob {
			link := s.Find("a[href*='/jobs/']").First()
			return model.RawJob{
				Title:    cleanText(link.Text()),
				URL:      absoluteURL(base, link.AttrOr("href", "")),
				Location: icimsLocation(cleanText(s.Find(".col-xs-6.value, [class*='location']").First().Text())),
			}
		},
	}
}

// icimsLocation rewrites iCIMS "US-CA-San Francisco" strings into the
// city-first form the location normalizer expects.
func icimsLocation(raw string) string {
	parts := strings.Split(raw, "-")
	if len(parts) == 3 && len(parts[0]) == 2 && len(parts[1]) == 2 {
		return fmt.Sprintf("%s, %s, %s", parts[2], parts[1], parts[0])
	}
	return raw
}

func newSuccessFactors() *htmlBoard {
	return &htmlBoard{
		atsType: model.ATSSuccessFactors,
		rateKey: "successfactors",
		endpoint: func(token string) string {
			return fmt.Sprintf("https://career4.successfactors.com/career?company=%s", token)
		},
		careers: func(token string) string {
			return fmt.Sprintf("https://career4.successfactors.com/career?company=%s", token)
		},
		// The company-not-found page carries no posting links, so their
		// presence stands in for a board marker.
		container: "a.jobTitle-link",
		rows:      "tr:has(a.jobTitle-link)",
		parseRow: func(base *url.URL, s *goquery.Selection) model.RawJob {
			link := s.Find("a.jobTitle-link").First()
			return model.RawJob{
				Title:    cleanText(link.Text()),
				URL:      absoluteURL(base, link.AttrOr("href", "")),
				Location: cleanText(s.Find(".jobLocation").First().Text()),
			}
		},
	}
}

func newTaleo() *htmlBoard {
	return &htmlBoard{
		atsType: model.ATSTaleo,
		rateKey: "taleo",
		endpoint: func(token string) string {
			return fmt.Sprintf("https://%s.taleo.net/careersection/ex/jobsearch.ftl?lang=en", token)
		},
		careers: func(token string) string {
			return fmt.Sprintf("https://%s.taleo.net/careersection/ex/jobsearch.ftl", token)
		},
		container: "table[id='requisitionListInterface.listRequisition']",
		rows:      "tr:has(a[id^='requisitionListInterface.reqTitleLinkAction'])",
		parseRow: func(base *url.URL, s *goquery.Selection) model.RawJob {
			link := s.Find("a[id^='requisitionListInterface.reqTitleLinkAction']").First()
			return model.RawJob{
				Title:    cleanText(link.Text()),
				URL:      absoluteURL(base, link.AttrOr("href", "")),
				Location: cleanText(s.Find("span[id^='requisitionListInterface.reqBodyCityState']").First().Text()),
			}
		},
		// Requisition tables only materialize after the Taleo frontend
		// scripts run.
		needsJS: true,
	}
}
