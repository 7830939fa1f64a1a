// This file is a documentation template and should not be compiled.
// It uses placeholder types (ExampleService, ExampleRepository, etc.) that don't exist.
// Use this as a reference when writing tests for services.
//
//go:build ignore

package service

// TEMPLATE_test.go - Service Testing Pattern Examples
//
// This file demonstrates standard testing patterns for services.
// Use these patterns when writing tests for new services.

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/mocks"
)

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 1: Constructor Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestNewExampleService_RequiredDependency(t *testing.T) {
	// A missing required dependency is an error, not a panic.
	_, err := NewExampleService(ExampleServiceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestNewExampleService_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockExampleRepository(ctrl)

	svc, err := NewExampleService(ExampleServiceOptions{Repo: mockRepo})

	require.NoError(t, err)
	assert.NotNil(t, svc)
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 2: Operation Tests (with Mocks)
// ═══════════════════════════════════════════════════════════════════════════

func TestExampleService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockExampleRepository(ctrl)
	svc, err := NewExampleService(ExampleServiceOptions{Repo: mockRepo})
	require.NoError(t, err)

	ctx := context.Background()
	req := &model.CreateExampleRequest{Name: "Acme Robotics"}
	expected := &model.Example{ID: 1, Name: "Acme Robotics"}

	mockRepo.EXPECT().
		Create(ctx, req).
		Return(expected, nil)

	got, err := svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestExampleService_Create_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockExampleRepository(ctrl)
	svc, err := NewExampleService(ExampleServiceOptions{Repo: mockRepo})
	require.NoError(t, err)

	ctx := context.Background()
	req := &model.CreateExampleRequest{Name: "Acme Robotics"}
	repoErr := errors.New("database connection failed")

	mockRepo.EXPECT().
		Create(ctx, req).
		Return(nil, repoErr)

	got, err := svc.Create(ctx, req)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "create example")
	assert.ErrorIs(t, err, repoErr)
}

func TestExampleService_Create_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockExampleRepository(ctrl)
	svc, err := NewExampleService(ExampleServiceOptions{Repo: mockRepo})
	require.NoError(t, err)

	// The repository must not be reached for an invalid request, so no
	// EXPECT() is registered.
	_, err = svc.Create(context.Background(), &model.CreateExampleRequest{Name: ""})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 3: Table-Driven Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestExampleService_List_PaginationNormalization(t *testing.T) {
	tests := []struct {
		name          string
		inputLimit    int
		expectedLimit int
	}{
		{name: "zero limit defaults to 50", inputLimit: 0, expectedLimit: 50},
		{name: "negative limit defaults to 50", inputLimit: -10, expectedLimit: 50},
		{name: "limit over 1000 capped", inputLimit: 5000, expectedLimit: 1000},
		{name: "valid limit passed through", inputLimit: 100, expectedLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := mocks.NewMockExampleRepository(ctrl)
			svc, err := NewExampleService(ExampleServiceOptions{Repo: mockRepo})
			require.NoError(t, err)

			mockRepo.EXPECT().
				List(gomock.Any(), tt.expectedLimit, 0).
				Return([]*model.Example{}, nil)

			_, err = svc.List(context.Background(), ExampleListOptions{Limit: tt.inputLimit})
			require.NoError(t, err)
		})
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 4: Hand-Written Doubles for Small Interfaces
// ═══════════════════════════════════════════════════════════════════════════

// Consumer-side interfaces with one or two methods get a hand-written fake
// in the test file instead of a generated mock. See fakePassRunner in the
// scheduler tests and the stub probers in the discovery tests.

type fakeProber struct {
	outcome *model.ProbeOutcome
	err     error
}

func (f *fakeProber) ProbeSeed(_ context.Context, _ *model.Seed) (*model.ProbeOutcome, error) {
	return f.outcome, f.err
}

// ═══════════════════════════════════════════════════════════════════════════
// NOTES FOR TEST WRITING
// ═══════════════════════════════════════════════════════════════════════════
//
// Best Practices:
// 1. Use gomock (internal/mocks) for the core repository ports
// 2. Use testify/require for assertions that should stop the test
// 3. Use testify/assert for assertions that should continue
// 4. Test both success and error cases
// 5. Assert AppError codes with apperrors.IsValidation / IsNotFound / IsConflict
// 6. Use table-driven tests for multiple similar cases
// 7. Name tests TestServiceName_MethodName_Scenario
// 8. gomock.NewController(t) cleans up via t.Cleanup; no defer ctrl.Finish() needed
// 9. Verify error wrapping with assert.ErrorIs or assert.Contains
//
// Integration Tests:
// - Put in separate files: *_integration_test.go
// - Use testutil.WithAutoDB for a real database and skip without one
// - Verify transactions, conflict handling, and persisted rows
