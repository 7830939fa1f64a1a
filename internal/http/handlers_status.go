package httpx

import (
	"net/http"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// statusResponse is the wire shape of GET /api/status. It flattens the gate
// view so dashboards read the last finished run's timestamp, stats and error
// beside the live-run fields.
type statusResponse struct {
	IsRunning bool             `json:"is_running"`
	Mode      model.PassMode   `json:"mode,omitempty"`
	StartedAt *time.Time       `json:"started_at,omitempty"`
	Progress  float64          `json:"current_progress"`
	Stats     model.PassStats  `json:"current_stats"`
	LastRun   *time.Time       `json:"last_run,omitempty"`
	LastStats *model.PassStats `json:"last_stats,omitempty"`
	LastError string           `json:"last_error,omitempty"`
}

// StatusHandlers serves the collection status for dashboards and monitoring.
type StatusHandlers struct {
	Passes PassController
}

// GetStatus reports whether a pass is running, its live progress, and the
// outcome of the most recently finished pass.
func (h *StatusHandlers) GetStatus(w http.ResponseWriter, _ *http.Request) {
	st := h.Passes.Status()

	resp := statusResponse{
		IsRunning: st.IsRunning,
		Mode:      st.Mode,
		StartedAt: st.StartedAt,
		Progress:  st.Progress,
		Stats:     st.Stats,
	}
	if last := st.LastRun; last != nil {
		finished := last.FinishedAt
		stats := last.Stats
		resp.LastRun = &finished
		resp.LastStats = &stats
		resp.LastError = last.Error
	}

	WriteJSON(w, http.StatusOK, resp)
}
