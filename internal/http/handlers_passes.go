package httpx

import (
	"errors"
	"net/http"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// PassController is the slice of the pass service the HTTP layer needs:
// start a background pass and read the gate state.
type PassController interface {
	Start(mode model.PassMode) (string, error)
	Status() core.PassStatus
	History() []model.PassSummary
}

// triggerableModes are the passes operators may start over HTTP. Expansion
// stays cron-only; it mines seed sources in bulk and has no on-demand use.
var triggerableModes = map[model.PassMode]bool{ //nolint:gochecknoglobals // read-only lookup table
	model.PassDiscovery:   true,
	model.PassRefresh:     true,
	model.PassMaintenance: true,
}

// PassHandlers provides HTTP handlers for triggering and inspecting passes.
type PassHandlers struct {
	Svc PassController
}

// Trigger starts the requested pass in the background and returns its run id.
// A conflicting in-flight pass yields 409; the trigger is dropped, not queued.
func (h *PassHandlers) Trigger(w http.ResponseWriter, r *http.Request) {
	mode := model.PassMode(r.PathValue("mode"))
	if !triggerableModes[mode] {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("mode must be discovery, refresh or maintenance"),
		})
		return
	}

	runID, err := h.Svc.Start(mode)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]string{"run_id": runID, "mode": string(mode)})
}

// History returns finished pass summaries, newest first.
func (h *PassHandlers) History(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, h.Svc.History())
}
