package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/mocks"
	"github.com/hirelens/hirelens/internal/service"
)

func newStatsHandlersWithMock(
	t *testing.T,
) (*StatsHandlers, *mocks.MockJobArchiveRepository, *mocks.MockSeedRepository, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockCompanies := mocks.NewMockCompanyRepository(ctrl)
	mockJobs := mocks.NewMockJobArchiveRepository(ctrl)
	mockSeeds := mocks.NewMockSeedRepository(ctrl)

	archive, err := service.NewArchiveService(service.ArchiveServiceOptions{
		Companies: mockCompanies,
		Jobs:      mockJobs,
		Snapshots: mocks.NewMockSnapshotReader(ctrl),
	})
	require.NoError(t, err)
	seeds, err := service.NewSeedService(service.SeedServiceOptions{Repo: mockSeeds})
	require.NoError(t, err)

	return &StatsHandlers{Archive: archive, Seeds: seeds}, mockJobs, mockSeeds, ctrl
}

func TestGetStats_MergesArchiveAndSeedCounters(t *testing.T) {
	h, mockJobs, mockSeeds, ctrl := newStatsHandlersWithMock(t)
	defer ctrl.Finish()

	mockJobs.EXPECT().Stats(gomock.Any()).Return(&core.ArchiveTotals{
		Companies:      120,
		OpenJobs:       3400,
		ClosedJobs:     5100,
		RemoteShare:    0.42,
		AvgTimeToFill:  38.5,
		DistinctSkills: 210,
	}, nil)
	mockSeeds.EXPECT().Stats(gomock.Any()).Return(&core.SeedStats{
		Total:    900,
		Untested: 150,
		Hits:     120,
		HitRate:  0.16,
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	h.GetStats(w, r)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.ArchiveStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 120, got.Companies)
	assert.Equal(t, 3400, got.OpenJobs)
	assert.Equal(t, 5100, got.ClosedJobs)
	assert.InDelta(t, 0.42, got.RemoteShare, 1e-9)
	assert.InDelta(t, 38.5, got.AvgTimeToFill, 1e-9)
	assert.Equal(t, 210, got.DistinctSkills)
	assert.Equal(t, 150, got.UntestedSeeds)
	assert.Equal(t, 900, got.TotalSeeds)
	assert.InDelta(t, 0.16, got.SeedHitRate, 1e-9)
}

func TestGetStats_ArchiveError_Returns500(t *testing.T) {
	h, mockJobs, _, ctrl := newStatsHandlersWithMock(t)
	defer ctrl.Finish()

	mockJobs.EXPECT().Stats(gomock.Any()).Return(nil, assert.AnError)

	r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	h.GetStats(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSkillTrends_Defaults(t *testing.T) {
	h, mockJobs, _, ctrl := newStatsHandlersWithMock(t)
	defer ctrl.Finish()

	// The default window is applied by the service, so the handler only has
	// to pass zero through. since is derived from time.Now.
	mockJobs.EXPECT().
		SkillTrends(gomock.Any(), gomock.Any(), 25).
		Return([]model.SkillTrend{
			{Skill: "go", Count: 42},
			{Skill: "kubernetes", Count: 31},
		}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/trends/skills", nil)
	w := httptest.NewRecorder()

	h.SkillTrends(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got []model.SkillTrend
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "go", got[0].Skill)
	assert.Equal(t, 42, got[0].Count)
}

func TestSkillTrends_CustomWindow(t *testing.T) {
	h, mockJobs, _, ctrl := newStatsHandlersWithMock(t)
	defer ctrl.Finish()

	mockJobs.EXPECT().
		SkillTrends(gomock.Any(), gomock.Any(), 5).
		Return([]model.SkillTrend{}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/trends/skills?days=7&limit=5", nil)
	w := httptest.NewRecorder()

	h.SkillTrends(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestSkillTrends_NegativeDays_Returns400(t *testing.T) {
	h, _, _, ctrl := newStatsHandlersWithMock(t)
	defer ctrl.Finish()

	r := httptest.NewRequest(http.MethodGet, "/api/trends/skills?days=-3", nil)
	w := httptest.NewRecorder()

	h.SkillTrends(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation", body["error"])
	assert.Contains(t, body["message"], "days")
}
