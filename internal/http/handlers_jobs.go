// Package httpx provides the JSON HTTP API over the pass engine and the
// longitudinal job archive.
package httpx

import (
	"net/http"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/service"
)

// JobHandlers provides HTTP handlers over archived job postings.
type JobHandlers struct {
	Svc *service.ArchiveService
}

// List returns archived postings across all companies, filtered by the
// optional status, work_type and country query parameters.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	q := r.URL.Query()

	jobs, err := h.Svc.ListJobs(r.Context(), model.JobListOptions{
		Status:   model.JobStatus(q.Get("status")),
		WorkType: model.WorkType(q.Get("work_type")),
		Country:  q.Get("country"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}
