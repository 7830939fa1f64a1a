package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
)

func staleCompany(name, token string) *model.Company {
	return &model.Company{
		ID:          model.CompanyID(model.ATSGreenhouse, token),
		CompanyName: name,
		ATSType:     model.ATSGreenhouse,
		Token:       token,
		LastUpdated: time.Now().Add(-24 * time.Hour),
	}
}

func newTestRefresh(
	t *testing.T,
	companies *fakeCompanyRepo,
	collector *fakeCollector,
	reconciler *fakeReconciler,
) *RefreshService {
	t.Helper()
	svc, err := NewRefreshService(RefreshServiceOptions{
		Companies:  companies,
		Collector:  collector,
		Reconciler: reconciler,
		Staleness:  6 * time.Hour,
		Config:     config.CollectorConfig{BatchSize: 25, ParallelWorkers: 2},
	})
	require.NoError(t, err)
	return svc
}

func TestNewRefreshServiceValidation(t *testing.T) {
	_, err := NewRefreshService(RefreshServiceOptions{})
	require.Error(t, err)
}

func TestRefreshRunEmpty(t *testing.T) {
	companies := &fakeCompanyRepo{}
	collector := &fakeCollector{fn: func(context.Context, *model.Company) (*model.CollectionResult, error) {
		t.Error("collector must not run without stale companies")
		return nil, nil
	}}

	svc := newTestRefresh(t, companies, collector, &fakeReconciler{})

	stats, err := svc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.PassStats{}, stats)
}

func TestRefreshFlow(t *testing.T) {
	acme := staleCompany("Acme", "acme")
	globex := staleCompany("Globex", "globex")
	companies := &fakeCompanyRepo{stale: []*model.Company{acme, globex}}

	collector := &fakeCollector{fn: func(_ context.Context, company *model.Company) (*model.CollectionResult, error) {
		return &model.CollectionResult{CompanyID: company.ID, CollectedAt: time.Now()}, nil
	}}
	reconciler := &fakeReconciler{fn: func(_ context.Context, res *model.CollectionResult) (*model.ReconcileOutcome, error) {
		return &model.ReconcileOutcome{CompanyID: res.CompanyID, JobsAdded: 2, JobsClosed: 1}, nil
	}}

	svc := newTestRefresh(t, companies, collector, reconciler)

	stats, err := svc.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, model.PassStats{Tested: 2, JobsAdded: 4, JobsClosed: 2}, stats)
	assert.Len(t, collector.collected(), 2)
	assert.Equal(t, 2, reconciler.applyCount())

	// The cutoff is staleness back from now, and the batch size caps the pull.
	assert.WithinDuration(t, time.Now().Add(-6*time.Hour), companies.lastCutoff, 5*time.Second)
	assert.Equal(t, 25, companies.lastLimit)
}

func TestRefreshCollectErrorCounts(t *testing.T) {
	acme := staleCompany("Acme", "acme")
	globex := staleCompany("Globex", "globex")
	companies := &fakeCompanyRepo{stale: []*model.Company{acme, globex}}

	collector := &fakeCollector{fn: func(_ context.Context, company *model.Company) (*model.CollectionResult, error) {
		if company.ID == acme.ID {
			return nil, apperrors.HTTPStatus(500, "board returned 500")
		}
		return &model.CollectionResult{CompanyID: company.ID, CollectedAt: time.Now()}, nil
	}}
	reconciler := &fakeReconciler{fn: func(_ context.Context, res *model.CollectionResult) (*model.ReconcileOutcome, error) {
		return &model.ReconcileOutcome{CompanyID: res.CompanyID, JobsAdded: 1}, nil
	}}

	svc := newTestRefresh(t, companies, collector, reconciler)

	stats, err := svc.Run(context.Background(), nil)
	require.NoError(t, err, "one failing board must not abort the pass")
	assert.Equal(t, model.PassStats{Tested: 1, JobsAdded: 1, Errors: 1}, stats)
}

func TestRefreshListError(t *testing.T) {
	companies := &fakeCompanyRepo{listErr: errors.New("connection refused")}
	svc := newTestRefresh(t, companies, &fakeCollector{}, &fakeReconciler{})

	_, err := svc.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list stale companies")
}
