package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/service"
)

// SeedHandlers provides HTTP handlers for the candidate-seed pool.
type SeedHandlers struct {
	Svc *service.SeedService
}

// Create registers one manual seed for a future discovery pass.
func (h *SeedHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSeedRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	seed, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, seed)
}

// List returns seeds; ?untested=true restricts to seeds never probed.
func (h *SeedHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	seeds, err := h.Svc.List(r.Context(), service.SeedListOptions{
		Untested: r.URL.Query().Get("untested") == "true",
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, seeds)
}

// GetByID returns one seed with its probe counters.
func (h *SeedHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("seed id must be an integer"),
		})
		return
	}

	seed, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, seed)
}
