// Package model defines the core data types and structures used throughout the hirelens pipeline.
package model

import (
	"errors"
	"strings"
	"time"
)

// SeedTier classifies the quality of a seed's source. Tier 1 is premium/curated,
// tier 2 broad/index, tier 3 supplemental.
type SeedTier int

const (
	// TierPremium marks curated, high-precision seed sources.
	TierPremium SeedTier = 1
	// TierIndex marks broad directory/index seed sources.
	TierIndex SeedTier = 2
	// TierSupplemental marks low-precision catch-all seed sources.
	TierSupplemental SeedTier = 3
)

// Valid returns true if the SeedTier is one of the known tiers.
func (t SeedTier) Valid() bool {
	return t == TierPremium || t == TierIndex || t == TierSupplemental
}

// Seed is a candidate company not yet confirmed on any ATS.
// Seeds are created by the seed expander or manual submission, marked tested
// by the probe engine, and never deleted.
type Seed struct {
	ID           int64      `json:"id"                      db:"id"`
	CompanyName  string     `json:"company_name"            db:"company_name"`
	TokenSlug    string     `json:"token_slug"              db:"token_slug"`
	Source       string     `json:"source"                  db:"source"`
	Tier         SeedTier   `json:"tier"                    db:"tier"`
	Enabled      bool       `json:"enabled"                 db:"enabled"`
	LastExpanded *time.Time `json:"last_expanded,omitempty" db:"last_expanded"`
	LastTested   *time.Time `json:"last_tested,omitempty"   db:"last_tested"`
	IsHit        bool       `json:"is_hit"                  db:"is_hit"`
	TotalTested  int        `json:"total_tested"            db:"total_tested"`
	TotalHits    int        `json:"total_hits"              db:"total_hits"`
	HitRate      float64    `json:"hit_rate"                db:"hit_rate"`
	CreatedAt    time.Time  `json:"created_at"              db:"created_at"`
}

// CreateSeedRequest represents a request to register a new candidate company.
type CreateSeedRequest struct {
	CompanyName string   `json:"company_name"`
	TokenSlug   string   `json:"token_slug,omitempty"`
	Source      string   `json:"source,omitempty"`
	Tier        SeedTier `json:"tier,omitempty"`
}

// Validate checks the CreateSeedRequest fields and applies defaults for
// omitted source/tier values.
func (r *CreateSeedRequest) Validate() error {
	name := strings.TrimSpace(r.CompanyName)
	if name == "" {
		return errors.New("company name is required")
	}
	if r.Source == "" {
		r.Source = "manual"
	}
	if r.Tier == 0 {
		r.Tier = TierPremium
	}
	if !r.Tier.Valid() {
		return errors.New("tier must be 1, 2 or 3")
	}
	return nil
}

// ProbeOutcome records the result of probing one seed: whether any board was
// found and, if so, where.
type ProbeOutcome struct {
	SeedID      int64
	CompanyName string
	Hit         bool
	ATSType     ATSType
	Token       string
	TestedAt    time.Time
	// ProbeErrors counts (ats, token) pairs that errored rather than
	// returning a definitive miss. Telemetry only.
	ProbeErrors int
}
