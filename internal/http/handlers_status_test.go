package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
)

func getStatusBody(t *testing.T, h *StatusHandlers) map[string]any {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()

	h.GetStatus(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetStatus_Idle(t *testing.T) {
	h := &StatusHandlers{Passes: &fakePassController{}}

	body := getStatusBody(t, h)

	assert.Equal(t, false, body["is_running"])
	assert.Equal(t, float64(0), body["current_progress"])
	assert.Contains(t, body, "current_stats")

	// Nothing has run yet: none of the last-run fields appear on the wire.
	assert.NotContains(t, body, "mode")
	assert.NotContains(t, body, "started_at")
	assert.NotContains(t, body, "last_run")
	assert.NotContains(t, body, "last_stats")
	assert.NotContains(t, body, "last_error")
}

func TestGetStatus_Running(t *testing.T) {
	startedAt := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)
	h := &StatusHandlers{Passes: &fakePassController{
		status: core.PassStatus{
			IsRunning: true,
			Mode:      model.PassRefresh,
			StartedAt: &startedAt,
			Progress:  0.5,
			Stats:     model.PassStats{Tested: 10, JobsAdded: 4},
		},
	}}

	body := getStatusBody(t, h)

	assert.Equal(t, true, body["is_running"])
	assert.Equal(t, "refresh", body["mode"])
	assert.Equal(t, 0.5, body["current_progress"])

	stats, ok := body["current_stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), stats["tested"])
	assert.Equal(t, float64(4), stats["jobs_added"])
}

func TestGetStatus_AfterFailedRun(t *testing.T) {
	finishedAt := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	h := &StatusHandlers{Passes: &fakePassController{
		status: core.PassStatus{
			LastRun: &model.PassSummary{
				ID:         "run-9",
				Mode:       model.PassDiscovery,
				FinishedAt: finishedAt,
				Stats:      model.PassStats{Tested: 200, Hits: 12, Errors: 3},
				Error:      "probe budget exhausted",
			},
		},
	}}

	body := getStatusBody(t, h)

	assert.Equal(t, false, body["is_running"])
	assert.Equal(t, finishedAt.Format(time.RFC3339), body["last_run"])
	assert.Equal(t, "probe budget exhausted", body["last_error"])

	lastStats, ok := body["last_stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(12), lastStats["hits"])
	assert.Equal(t, float64(3), lastStats["errors"])
}
