package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/mocks"
	"github.com/hirelens/hirelens/internal/service"
)

// newTestRouter wires the full router over mocked repositories so route
// patterns, path params and method restrictions are exercised end to end.
func newTestRouter(t *testing.T, ctrl *gomock.Controller) (http.Handler, *routerMocks) {
	t.Helper()

	m := &routerMocks{
		seeds:     mocks.NewMockSeedRepository(ctrl),
		companies: mocks.NewMockCompanyRepository(ctrl),
		jobs:      mocks.NewMockJobArchiveRepository(ctrl),
		snapshots: mocks.NewMockSnapshotReader(ctrl),
		passes:    &fakePassController{startID: "run-1"},
	}

	seedSvc, err := service.NewSeedService(service.SeedServiceOptions{Repo: m.seeds})
	require.NoError(t, err)
	archiveSvc, err := service.NewArchiveService(service.ArchiveServiceOptions{
		Companies: m.companies,
		Jobs:      m.jobs,
		Snapshots: m.snapshots,
	})
	require.NoError(t, err)

	router := NewRouter(RouterServices{
		Passes:  m.passes,
		Seeds:   seedSvc,
		Archive: archiveSvc,
	})
	return router, m
}

type routerMocks struct {
	seeds     *mocks.MockSeedRepository
	companies *mocks.MockCompanyRepository
	jobs      *mocks.MockJobArchiveRepository
	snapshots *mocks.MockSnapshotReader
	passes    *fakePassController
}

func TestRouter_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(t, ctrl)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		r := httptest.NewRequest(method, "/healthz", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code, "method %s", method)
	}
}

func TestRouter_PathParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(t, ctrl)

	m.companies.EXPECT().
		GetByID(gomock.Any(), "abc123").
		Return(&model.Company{ID: "abc123", CompanyName: "Acme"}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/companies/abc123", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme")
}

func TestRouter_CompanyJobsSubresource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(t, ctrl)

	m.companies.EXPECT().
		GetByID(gomock.Any(), "abc123").
		Return(&model.Company{ID: "abc123"}, nil)
	m.jobs.EXPECT().
		ListByCompany(gomock.Any(), "abc123", model.JobOpen).
		Return([]*model.Job{}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/companies/abc123/jobs?status=open", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CompanySnapshotsSubresource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(t, ctrl)

	m.companies.EXPECT().
		GetByID(gomock.Any(), "abc123").
		Return(&model.Company{ID: "abc123"}, nil)
	m.snapshots.EXPECT().
		List6hByCompany(gomock.Any(), "abc123", 0).
		Return([]*model.Snapshot6h{}, nil)
	m.snapshots.EXPECT().
		ListMonthlyByCompany(gomock.Any(), "abc123").
		Return([]*model.MonthlySnapshot{}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/companies/abc123/snapshots", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PassTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(t, ctrl)

	r := httptest.NewRequest(http.MethodPost, "/api/passes/maintenance", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, model.PassMaintenance, m.passes.startMode)
}

func TestRouter_SeedNotFoundFlows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(t, ctrl)

	m.seeds.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(nil, apperrors.NotFoundf("seed 7 not found"))

	r := httptest.NewRequest(http.MethodGet, "/api/seeds/7", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_UnknownPathAndMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(t, ctrl)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"unknown path", http.MethodGet, "/api/nope", http.StatusNotFound},
		{"wrong method on seeds", http.MethodDelete, "/api/seeds", http.StatusMethodNotAllowed},
		{"wrong method on status", http.MethodPost, "/api/status", http.StatusMethodNotAllowed},
		{"trigger without mode", http.MethodPost, "/api/passes", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
