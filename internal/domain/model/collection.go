package model

import "time"

// Location is the normalized decomposition of a raw location string.
type Location struct {
	City     string   `json:"city,omitempty"`
	Region   string   `json:"region,omitempty"`
	Country  string   `json:"country,omitempty"`
	WorkType WorkType `json:"work_type"`
	Raw      string   `json:"raw,omitempty"`
}

// RawJob is one posting exactly as a provider listing reported it, before
// normalization. Parsers produce these; only the normalizer interprets them.
type RawJob struct {
	Title       string
	Location    string
	Department  string
	URL         string
	Description string
}

// JobBoard is a parsed provider listing: the observed postings plus the
// public careers URL for the board. A board can legitimately exist with zero
// jobs; Exists distinguishes that from a miss.
type JobBoard struct {
	Exists     bool
	CareersURL string
	Jobs       []RawJob
}

// NormalizedJob is a posting after normalization, ready for reconciliation.
type NormalizedJob struct {
	JobHash    string   `json:"job_hash"`
	Title      string   `json:"title"`
	Location   Location `json:"location"`
	Department string   `json:"department"`
	Skills     []string `json:"skills"`
	URL        string   `json:"url"`
}

// CollectionResult is the output of one collector pass over one company.
// Jobs is the complete observed-open set for the pass unless Partial is set;
// the reconciler uses set difference against the archive to detect closures,
// so a partial result must never close jobs.
type CollectionResult struct {
	CompanyID   string            `json:"company_id"`
	CompanyName string            `json:"company_name"`
	ATSType     ATSType           `json:"ats_type"`
	Token       string            `json:"token"`
	CareersURL  string            `json:"careers_url"`
	Jobs        []NormalizedJob   `json:"jobs"`
	Aggregates  CompanyAggregates `json:"aggregates"`
	CollectedAt time.Time         `json:"collected_at"`
	Partial     bool              `json:"partial"`
	PagesOK     int               `json:"pages_ok,omitempty"`
}

// ReconcileOutcome reports what one reconcile application changed.
type ReconcileOutcome struct {
	CompanyID  string
	JobsAdded  int
	JobsSeen   int
	JobsClosed int
}
