package model

import "time"

// Snapshot6h is a per-company point-in-time aggregate written every six
// hours and retained for ninety days.
type Snapshot6h struct {
	ID           string    `json:"id"            db:"id"`
	SnapshotTime time.Time `json:"snapshot_time" db:"snapshot_time"`
	CompanyID    string    `json:"company_id"    db:"company_id"`
	JobCount     int       `json:"job_count"     db:"job_count"`
	RemoteCount  int       `json:"remote_count"  db:"remote_count"`
	HybridCount  int       `json:"hybrid_count"  db:"hybrid_count"`
	OnsiteCount  int       `json:"onsite_count"  db:"onsite_count"`
}

// MonthlySnapshot is a per-company aggregate captured once per calendar
// month, keyed by (company_id, year, month).
type MonthlySnapshot struct {
	ID          string `json:"id"           db:"id"`
	Year        int    `json:"year"         db:"year"`
	Month       int    `json:"month"        db:"month"`
	CompanyID   string `json:"company_id"   db:"company_id"`
	JobCount    int    `json:"job_count"    db:"job_count"`
	RemoteCount int    `json:"remote_count" db:"remote_count"`
	HybridCount int    `json:"hybrid_count" db:"hybrid_count"`
	OnsiteCount int    `json:"onsite_count" db:"onsite_count"`
}

// CompanyHistory pairs a company's rolling six-hour snapshot series with its
// month-end archive, both newest first.
type CompanyHistory struct {
	Recent  []*Snapshot6h      `json:"recent"`
	Monthly []*MonthlySnapshot `json:"monthly"`
}
