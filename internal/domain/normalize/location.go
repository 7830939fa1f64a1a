package normalize

import (
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// countryTable maps lowercased country spellings to a canonical country name.
var countryTable = map[string]string{
	"us":             "United States",
	"usa":            "United States",
	"u.s.":           "United States",
	"u.s.a.":         "United States",
	"united states":  "United States",
	"united states of america": "United States",
	"uk":             "United Kingdom",
	"u.k.":           "United Kingdom",
	"united kingdom": "United Kingdom",
	"great britain":  "United Kingdom",
	"england":        "United Kingdom",
	"scotland":       "United Kingdom",
	"germany":        "Germany",
	"deutschland":    "Germany",
	"france":         "France",
	"canada":         "Canada",
	"australia":      "Australia",
	"india":          "India",
	"netherlands":    "Netherlands",
	"the netherlands": "Netherlands",
	"spain":          "Spain",
	"ireland":        "Ireland",
	"poland":         "Poland",
	"portugal":       "Portugal",
	"brazil":         "Brazil",
	"mexico":         "Mexico",
	"japan":          "Japan",
	"singapore":      "Singapore",
	"sweden":         "Sweden",
	"switzerland":    "Switzerland",
	"austria":        "Austria",
	"belgium":        "Belgium",
	"denmark":        "Denmark",
	"norway":         "Norway",
	"finland":        "Finland",
	"italy":          "Italy",
	"israel":         "Israel",
	"new zealand":    "New Zealand",
	"argentina":      "Argentina",
	"colombia":       "Colombia",
	"romania":        "Romania",
	"czech republic": "Czech Republic",
	"czechia":        "Czech Republic",
	"estonia":        "Estonia",
	"philippines":    "Philippines",
}

// regionCountry maps lowercased region spellings (US states, Canadian
// provinces and their abbreviations) to the country they belong to.
var regionCountry = map[string]string{
	"al": "United States", "alabama": "United States",
	"ak": "United States", "alaska": "United States",
	"az": "United States", "arizona": "United States",
	"ar": "United States", "arkansas": "United States",
	"ca": "United States", "california": "United States",
	"co": "United States", "colorado": "United States",
	"ct": "United States", "connecticut": "United States",
	"de": "United States", "delaware": "United States",
	"fl": "United States", "florida": "United States",
	"ga": "United States", "georgia": "United States",
	"hi": "United States", "hawaii": "United States",
	"id": "United States", "idaho": "United States",
	"il": "United States", "illinois": "United States",
	"in": "United States", "indiana": "United States",
	"ia": "United States", "iowa": "United States",
	"ks": "United States", "kansas": "United States",
	"ky": "United States", "kentucky": "United States",
	"la": "United States", "louisiana": "United States",
	"me": "United States", "maine": "United States",
	"md": "United States", "maryland": "United States",
	"ma": "United States", "massachusetts": "United States",
	"mi": "United States", "michigan": "United States",
	"mn": "United States", "minnesota": "United States",
	"ms": "United States", "mississippi": "United States",
	"mo": "United States", "missouri": "United States",
	"mt": "United States", "montana": "United States",
	"ne": "United States", "nebraska": "United States",
	"nv": "United States", "nevada": "United States",
	"nh": "United States", "new hampshire": "United States",
	"nj": "United States", "new jersey": "United States",
	"nm": "United States", "new mexico": "United States",
	"ny": "United States", "new york": "United States",
	"nc": "United States", "north carolina": "United States",
	"nd": "United States", "north dakota": "United States",
	"oh": "United States", "ohio": "United States",
	"ok": "United States", "oklahoma": "United States",
	"or": "United States", "oregon": "United States",
	"pa": "United States", "pennsylvania": "United States",
	"ri": "United States", "rhode island": "United States",
	"sc": "United States", "south carolina": "United States",
	"sd": "United States", "south dakota": "United States",
	"tn": "United States", "tennessee": "United States",
	"tx": "United States", "texas": "United States",
	"ut": "United States", "utah": "United States",
	"vt": "United States", "vermont": "United States",
	"va": "United States", "virginia": "United States",
	"wa": "United States", "washington": "United States",
	"dc": "United States", "washington dc": "United States",
	"wv": "United States", "west virginia": "United States",
	"wi": "United States", "wisconsin": "United States",
	"wy": "United States", "wyoming": "United States",
	"ab": "Canada", "alberta": "Canada",
	"bc": "Canada", "british columbia": "Canada",
	"mb": "Canada", "manitoba": "Canada",
	"nb": "Canada", "new brunswick": "Canada",
	"nl": "Canada", "newfoundland": "Canada",
	"ns": "Canada", "nova scotia": "Canada",
	"on": "Canada", "ontario": "Canada",
	"qc": "Canada", "quebec": "Canada",
	"sk": "Canada", "saskatchewan": "Canada",
}

var remoteCues = map[string]bool{
	"remote":         true,
	"fully remote":   true,
	"remote first":   true,
	"remote-first":   true,
	"anywhere":       true,
	"wfh":            true,
	"work from home": true,
	"work-from-home": true,
	"distributed":    true,
	"global":         true,
}

// Location parses a raw location string into structured city, region,
// country and work type. Remote cues clear the city and region. Hybrid
// cues keep the physical location. Everything else defaults to onsite.
func Location(raw string) model.Location {
	loc := model.Location{Raw: raw, WorkType: model.WorkOnsite}

	parts := splitLocation(raw)
	kept := parts[:0]
	for _, p := range parts {
		key := strings.ToLower(p)
		switch {
		case remoteCues[key]:
			loc.WorkType = model.WorkRemote
		case key == "hybrid":
			loc.WorkType = model.WorkHybrid
		default:
			if loc.WorkType == model.WorkOnsite && containsRemoteCue(key) {
				loc.WorkType = model.WorkRemote
				continue
			}
			if loc.WorkType == model.WorkOnsite && strings.Contains(key, "hybrid") {
				loc.WorkType = model.WorkHybrid
			}
			kept = append(kept, p)
		}
	}

	if len(kept) > 0 {
		last := strings.ToLower(kept[len(kept)-1])
		if country, ok := countryTable[last]; ok {
			loc.Country = country
			kept = kept[:len(kept)-1]
		} else if country, ok := regionCountry[last]; ok {
			loc.Country = country
			loc.Region = kept[len(kept)-1]
			kept = kept[:len(kept)-1]
		}
	}

	switch len(kept) {
	case 0:
	case 1:
		loc.City = kept[0]
	default:
		loc.City = kept[0]
		if loc.Region == "" {
			loc.Region = kept[1]
		}
	}

	if loc.WorkType == model.WorkRemote {
		loc.City = ""
		loc.Region = ""
	}
	return loc
}

// splitLocation breaks a raw location on commas, pipes, slashes and dashes
// used as separators. Hyphens inside a single token are preserved so that
// hyphenated city names survive.
func splitLocation(raw string) []string {
	replaced := strings.NewReplacer("–", ",", "—", ",", "|", ",", "/", ",", " - ", ",").Replace(raw)
	fields := strings.Split(replaced, ",")
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	return parts
}

func containsRemoteCue(key string) bool {
	return strings.Contains(key, "remote") || strings.Contains(key, "work from home")
}
