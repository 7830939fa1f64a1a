package httpx

import (
	"net/http"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/service"
)

// StatsHandlers serves archive-wide aggregate statistics and skill trends.
type StatsHandlers struct {
	Archive *service.ArchiveService
	Seeds   *service.SeedService
}

// GetStats merges the archive totals with the seed-pool counters into one
// dashboard payload.
func (h *StatsHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Archive.Totals(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	seeds, err := h.Seeds.Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, model.ArchiveStats{
		Companies:      totals.Companies,
		OpenJobs:       totals.OpenJobs,
		ClosedJobs:     totals.ClosedJobs,
		RemoteShare:    totals.RemoteShare,
		AvgTimeToFill:  totals.AvgTimeToFill,
		DistinctSkills: totals.DistinctSkills,
		UntestedSeeds:  seeds.Untested,
		TotalSeeds:     seeds.Total,
		SeedHitRate:    seeds.HitRate,
	})
}

// SkillTrends returns skill demand counts among open postings first seen in
// the last ?days= (default 30). ?limit= caps the number of skills returned.
func (h *StatsHandlers) SkillTrends(w http.ResponseWriter, r *http.Request) {
	days := parseIntQuery(r, "days", 0)
	limit := parseIntQuery(r, "limit", 0)

	trends, err := h.Archive.SkillTrends(r.Context(), days, limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, trends)
}
