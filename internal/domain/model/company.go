package model

import (
	"crypto/md5" //nolint:gosec // non-cryptographic stable identifier
	"encoding/hex"
	"time"
)

// CompanyID derives the stable company identifier for an (ATS, token) pair.
// Re-observing the same pair always yields the same id.
func CompanyID(ats ATSType, token string) string {
	sum := md5.Sum([]byte(string(ats) + ":" + token)) //nolint:gosec // stable id, not a secret
	return hex.EncodeToString(sum[:])
}

// Company is a confirmed employer with a live board on one ATS provider,
// plus the aggregate posting counts observed on the latest collection pass.
type Company struct {
	ID                  string     `json:"id"                       db:"id"`
	CompanyName         string     `json:"company_name"             db:"company_name"`
	ATSType             ATSType    `json:"ats_type"                 db:"ats_type"`
	Token               string     `json:"token"                    db:"token"`
	JobCount            int        `json:"job_count"                db:"job_count"`
	RemoteCount         int        `json:"remote_count"             db:"remote_count"`
	HybridCount         int        `json:"hybrid_count"             db:"hybrid_count"`
	OnsiteCount         int        `json:"onsite_count"             db:"onsite_count"`
	Locations           []string   `json:"locations"                db:"locations"`
	Departments         []string   `json:"departments"              db:"departments"`
	NormalizedLocations []Location `json:"normalized_locations"     db:"normalized_locations"`
	ExtractedSkills     []string   `json:"extracted_skills"         db:"extracted_skills"`
	CareersURL          string     `json:"careers_url"              db:"careers_url"`
	FirstDiscovered     time.Time  `json:"first_discovered"         db:"first_discovered"`
	LastUpdated         time.Time  `json:"last_updated"             db:"last_updated"`
}

// CompanyAggregates summarizes one pass over a company's open postings.
// The reconciler persists these onto the company row, and the snapshot
// writer copies them into point-in-time rows.
type CompanyAggregates struct {
	JobCount            int        `json:"job_count"`
	RemoteCount         int        `json:"remote_count"`
	HybridCount         int        `json:"hybrid_count"`
	OnsiteCount         int        `json:"onsite_count"`
	Locations           []string   `json:"locations"`
	Departments         []string   `json:"departments"`
	NormalizedLocations []Location `json:"normalized_locations"`
	ExtractedSkills     []string   `json:"extracted_skills"`
}

// CompanyListOptions controls company listing queries.
type CompanyListOptions struct {
	Limit        int
	Offset       int
	StaleBefore  *time.Time // only companies with last_updated < StaleBefore
	OrderByStale bool       // oldest last_updated first
}
