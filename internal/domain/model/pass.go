package model

import (
	"fmt"
	"strings"
	"time"
)

// PassMode identifies which recurring activity a scheduler pass runs.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type PassMode string

const (
	// PassDiscovery probes untested seeds and collects confirmed boards.
	PassDiscovery PassMode = "discovery"
	// PassRefresh re-collects companies stale beyond the refresh threshold.
	PassRefresh PassMode = "refresh"
	// PassExpansion mines seed sources for new candidate companies.
	PassExpansion PassMode = "expansion"
	// PassMaintenance rotates snapshots and purges old archive rows.
	PassMaintenance PassMode = "maintenance"
)

// Valid returns true if the PassMode is one of the known modes.
func (m PassMode) Valid() bool {
	switch m {
	case PassDiscovery, PassRefresh, PassExpansion, PassMaintenance:
		return true
	default:
		return false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for PassMode.
func (m *PassMode) UnmarshalText(text []byte) error {
	v := PassMode(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid PassMode: %q", v)
	}
	*m = v
	return nil
}

// PassStats accumulates counters over one pass. Progress callbacks receive a
// snapshot of this struct at least once per completed company.
type PassStats struct {
	Tested     int `json:"tested"`
	Hits       int `json:"hits"`
	JobsAdded  int `json:"jobs_added"`
	JobsClosed int `json:"jobs_closed"`
	Errors     int `json:"errors"`
}

// PassSummary records the outcome of one finished pass for the status API
// and the in-memory pass history.
type PassSummary struct {
	ID         string        `json:"id"`
	Mode       PassMode      `json:"mode"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
	Stats      PassStats     `json:"stats"`
	Cancelled  bool          `json:"cancelled"`
	Error      string        `json:"error,omitempty"`
}

// ProgressFunc receives pass progress in [0,1] plus the running stats.
// Implementations must be safe to call from worker goroutines.
type ProgressFunc func(progress float64, stats PassStats)
