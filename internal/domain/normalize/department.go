// Package normalize holds the pure mapping functions from raw ATS payloads
// into the unified job schema: department canonicalization, location
// parsing, skill extraction and stable job hashing.
package normalize

import "strings"

// DepartmentOther is the canonical bucket for unrecognized departments.
const DepartmentOther = "Other"

// departmentSynonyms maps lowercased raw department names to canonical ones.
var departmentSynonyms = map[string]string{
	"engineering":          "Engineering",
	"eng":                  "Engineering",
	"r&d":                  "Engineering",
	"rd":                   "Engineering",
	"software":             "Engineering",
	"software engineering": "Engineering",
	"technology":           "Engineering",
	"tech":                 "Engineering",
	"infrastructure":       "Engineering",
	"platform":             "Engineering",
	"security":             "Engineering",
	"qa":                   "Engineering",
	"quality assurance":    "Engineering",
	"design":               "Design",
	"ux":                   "Design",
	"ui":                   "Design",
	"user experience":      "Design",
	"creative":             "Design",
	"product":              "Product",
	"product management":   "Product",
	"pm":                   "Product",
	"sales":                "Sales",
	"business development": "Sales",
	"bd":                   "Sales",
	"account management":   "Sales",
	"marketing":            "Marketing",
	"growth":               "Marketing",
	"communications":       "Marketing",
	"brand":                "Marketing",
	"data":                 "Data",
	"data science":         "Data",
	"analytics":            "Data",
	"machine learning":     "Data",
	"operations":           "Operations",
	"ops":                  "Operations",
	"supply chain":         "Operations",
	"logistics":            "Operations",
	"finance":              "Finance",
	"accounting":           "Finance",
	"fp&a":                 "Finance",
	"people":               "People",
	"hr":                   "People",
	"human resources":      "People",
	"recruiting":           "People",
	"talent":               "People",
	"legal":                "Legal",
	"compliance":           "Legal",
	"support":              "Support",
	"customer support":     "Support",
	"customer success":     "Support",
	"customer service":     "Support",
}

// canonicalDepartments orders the substring fallback scan. Exact synonym
// matches win before any substring match is attempted.
var canonicalDepartments = []struct {
	needle    string
	canonical string
}{
	{"engineer", "Engineering"},
	{"software", "Engineering"},
	{"design", "Design"},
	{"product", "Product"},
	{"sales", "Sales"},
	{"marketing", "Marketing"},
	{"data", "Data"},
	{"operations", "Operations"},
	{"finance", "Finance"},
	{"people", "People"},
	{"legal", "Legal"},
	{"support", "Support"},
}

// Department maps a raw department string onto the canonical department
// set. Unknown values map to DepartmentOther.
func Department(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return DepartmentOther
	}
	if canonical, ok := departmentSynonyms[key]; ok {
		return canonical
	}
	for _, c := range canonicalDepartments {
		if strings.Contains(key, c.needle) {
			return c.canonical
		}
	}
	return DepartmentOther
}
