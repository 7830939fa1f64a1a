package httpx

import (
	"net/http"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/service"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

// CompanyHandlers provides HTTP handlers over confirmed companies.
type CompanyHandlers struct {
	Svc *service.ArchiveService
}

// List returns confirmed companies. ?order=last_updated sorts oldest-updated
// first, which is how operators spot boards the refresh pass has neglected.
func (h *CompanyHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	companies, err := h.Svc.ListCompanies(r.Context(), model.CompanyListOptions{
		Limit:        limit,
		Offset:       offset,
		OrderByStale: r.URL.Query().Get("order") == "last_updated",
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, companies)
}

// GetByID returns one company with its latest aggregates.
func (h *CompanyHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	company, err := h.Svc.GetCompany(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, company)
}

// Jobs returns one company's archived postings, optionally filtered by
// ?status=open|closed. Unknown companies yield 404, not an empty list.
func (h *CompanyHandlers) Jobs(w http.ResponseWriter, r *http.Request) {
	status := model.JobStatus(r.URL.Query().Get("status"))

	jobs, err := h.Svc.CompanyJobs(r.Context(), r.PathValue("id"), status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// Snapshots returns one company's headcount-over-time series: the rolling
// six-hour snapshots plus month-end rows. ?limit= bounds the six-hour series;
// when absent the full ninety-day window is returned.
func (h *CompanyHandlers) Snapshots(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	history, err := h.Svc.CompanyHistory(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, history)
}
