// Package mocks provides mock implementations for testing the hirelens pipeline.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockSeedRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(seed, nil)
package mocks

// Generate mock for SeedRepository interface from internal/core package.
// This creates MockSeedRepository with methods for all SeedRepository interface methods:
// Create, GetByID, GetByName, List, ListUntested, BulkInsert, MarkTested, Stats
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=seed_repository_mock.go github.com/hirelens/hirelens/internal/core SeedRepository

// Generate mock for CompanyRepository interface from internal/core package.
// This creates MockCompanyRepository with methods for all CompanyRepository interface methods:
// GetByID, GetByName, List, ListStale, Count
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=company_repository_mock.go github.com/hirelens/hirelens/internal/core CompanyRepository

// Generate mock for JobArchiveRepository interface from internal/core package.
// This creates MockJobArchiveRepository with methods for all JobArchiveRepository interface methods:
// ListJobs, ListByCompany, Stats, SkillTrends, PurgeClosedTx
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_archive_repository_mock.go github.com/hirelens/hirelens/internal/core JobArchiveRepository

// Generate mock for ReconcileRepository interface from internal/core package.
// This creates MockReconcileRepository with methods for all ReconcileRepository interface methods:
// WithCompanyTx, UpsertCompanyTx, UpsertJobTx, CloseVanishedTx
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=reconcile_repository_mock.go github.com/hirelens/hirelens/internal/core ReconcileRepository

// Generate mock for SnapshotRepository interface from internal/core package.
// This creates MockSnapshotRepository with methods for all SnapshotRepository interface methods:
// Capture6hTx, Prune6hTx, UpsertMonthlyTx
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=snapshot_repository_mock.go github.com/hirelens/hirelens/internal/core SnapshotRepository

// Generate mock for SnapshotReader interface from internal/core package.
// This creates MockSnapshotReader with methods for all SnapshotReader interface methods:
// List6hByCompany, ListMonthlyByCompany
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=snapshot_reader_mock.go github.com/hirelens/hirelens/internal/core SnapshotReader

// Generate mock for MaintenanceRepository interface from internal/core package.
// This creates MockMaintenanceRepository with methods for all MaintenanceRepository interface methods:
// TryWithTaskLock
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=maintenance_repository_mock.go github.com/hirelens/hirelens/internal/core MaintenanceRepository
