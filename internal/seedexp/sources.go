package seedexp

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// Source is one company-name directory the expander mines.
type Source struct {
	// Name identifies the source; it is recorded on every seed it yields.
	Name string
	// URL is the directory page to fetch.
	URL string
	// Tier rates the source's precision (1 curated, 2 index, 3 supplemental).
	Tier model.SeedTier
	// NeedsJS routes the fetch through the headless renderer.
	NeedsJS bool
	// Extract pulls raw company names out of the parsed page.
	Extract func(doc *goquery.Document) []string
}

// BuiltinSources returns the fixed source registry. Adding a directory is
// one entry here: name, URL, tier, extractor.
func BuiltinSources() []Source {
	return []Source{
		{
			Name:    "yc-top-companies",
			URL:     "https://www.ycombinator.com/topcompanies",
			Tier:    model.TierPremium,
			NeedsJS: true,
			Extract: selectorText("a[href^='/companies/'] span.company-name, div._company span"),
		},
		{
			Name:    "github-hiring-without-whiteboards",
			URL:     "https://github.com/poteto/hiring-without-whiteboards/blob/main/README.md",
			Tier:    model.TierPremium,
			Extract: leadingLinkText("article li"),
		},
		{
			Name:    "wikipedia-sp500",
			URL:     "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies",
			Tier:    model.TierIndex,
			Extract: selectorText("table#constituents tbody tr td:nth-child(2) a"),
		},
		{
			Name:    "wikipedia-nasdaq100",
			URL:     "https://en.wikipedia.org/wiki/Nasdaq-100",
			Tier:    model.TierIndex,
			Extract: selectorText("table#constituents tbody tr td:first-child a"),
		},
		{
			Name:    "remoteok-companies",
			URL:     "https://remoteok.com/remote-companies",
			Tier:    model.TierSupplemental,
			Extract: selectorText("h2[itemprop='name'], a.companyLink h3"),
		},
	}
}

// selectorText extracts the trimmed text of every node matching the
// selector.
func selectorText(selector string) func(doc *goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var names []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if name := strings.TrimSpace(s.Text()); name != "" {
				names = append(names, name)
			}
		})
		return names
	}
}

// leadingLinkText extracts the text of the first link in every matching
// node; list-style directories put the company link first and commentary
// after it.
func leadingLinkText(selector string) func(doc *goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var names []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			link := s.Find("a").First()
			if name := strings.TrimSpace(link.Text()); name != "" {
				names = append(names, name)
			}
		})
		return names
	}
}
