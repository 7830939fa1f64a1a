package model

import (
	"fmt"
	"strings"
	"time"
)

// WorkType classifies where a role is performed.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type WorkType string

const (
	// WorkRemote marks fully remote roles.
	WorkRemote WorkType = "remote"
	// WorkHybrid marks split office/remote roles.
	WorkHybrid WorkType = "hybrid"
	// WorkOnsite marks in-office roles.
	WorkOnsite WorkType = "onsite"
)

// Valid returns true if the WorkType is one of the known values.
func (w WorkType) Valid() bool {
	return w == WorkRemote || w == WorkHybrid || w == WorkOnsite
}

// UnmarshalText implements encoding.TextUnmarshaler for WorkType.
func (w *WorkType) UnmarshalText(text []byte) error {
	v := WorkType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid WorkType: %q", v)
	}
	*w = v
	return nil
}

// JobStatus tracks a job posting through its open/closed lifecycle.
type JobStatus string

const (
	// JobOpen marks postings observed on the most recent complete pass.
	JobOpen JobStatus = "open"
	// JobClosed marks postings that disappeared from a complete pass.
	JobClosed JobStatus = "closed"
)

// Valid returns true if the JobStatus is one of the known values.
func (s JobStatus) Valid() bool {
	return s == JobOpen || s == JobClosed
}

// Job is one archived posting in the longitudinal job archive. JobHash is
// the primary key; at most one row exists per (company, job_hash).
type Job struct {
	JobHash    string    `json:"job_hash"               db:"job_hash"`
	CompanyID  string    `json:"company_id"             db:"company_id"`
	Title      string    `json:"job_title"              db:"job_title"`
	City       string    `json:"city,omitempty"         db:"city"`
	Region     string    `json:"region,omitempty"       db:"region"`
	Country    string    `json:"country,omitempty"      db:"country"`
	WorkType   WorkType  `json:"work_type"              db:"work_type"`
	Skills     []string  `json:"skills"                 db:"skills"`
	FirstSeen  time.Time `json:"first_seen"             db:"first_seen"`
	LastSeen   time.Time `json:"last_seen"              db:"last_seen"`
	Status     JobStatus `json:"status"                 db:"status"`
	TimeToFill *int      `json:"time_to_fill,omitempty" db:"time_to_fill"`
}

// JobListOptions controls archive listing queries.
type JobListOptions struct {
	CompanyID string
	Status    JobStatus
	WorkType  WorkType
	Country   string
	Limit     int
	Offset    int
}

// ArchiveStats aggregates the whole job archive for the stats API.
type ArchiveStats struct {
	Companies      int     `json:"companies"`
	OpenJobs       int     `json:"open_jobs"`
	ClosedJobs     int     `json:"closed_jobs"`
	RemoteShare    float64 `json:"remote_share"`
	AvgTimeToFill  float64 `json:"avg_time_to_fill_days"`
	UntestedSeeds  int     `json:"untested_seeds"`
	TotalSeeds     int     `json:"total_seeds"`
	SeedHitRate    float64 `json:"seed_hit_rate"`
	DistinctSkills int     `json:"distinct_skills"`
}

// SkillTrend is one row of the skill-demand trend query: how many currently
// open postings first seen within the window mention the skill.
type SkillTrend struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
