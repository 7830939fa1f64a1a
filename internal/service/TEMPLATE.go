// This file is a documentation template and should not be compiled.
// It uses placeholder types (ExampleService, ExampleRepository, etc.) that don't exist.
// Use this as a reference when creating new services.
//
//go:build ignore

package service

// TEMPLATE.go - Service Layer Pattern Template
//
// This file demonstrates the standard pattern for all services in the service layer.
// Use this as a reference when creating new services.
//
// KEY PRINCIPLES:
// 1. All services use the Options struct pattern for dependency injection
// 2. Required fields carry a "Required:" comment, optional ones "Optional:"
// 3. Constructors return (*XService, error); a missing required dependency is
//    an error, never a panic
// 4. Services depend on port interfaces from internal/core, not concrete repos
// 5. Optional dependencies (logger, metrics) fall back to defaults or are
//    nil-checked before use
// 6. All methods accept context.Context as the first parameter
// 7. Errors are wrapped with context using fmt.Errorf("operation: %w", err);
//    domain outcomes use internal/errors (Validation, NotFound, Conflict)
// 8. Business logic and orchestration belong in the service layer
// 9. Services never import internal/data, internal/adapters, or internal/http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 1: Options Struct
// ═══════════════════════════════════════════════════════════════════════════

// ExampleServiceOptions groups dependencies for ExampleService.
//
// RULES:
// - Every field gets a Required/Optional comment
// - Tuning knobs (intervals, budgets, caps) live in a config struct from
//   the config package, passed as one field, not as loose ints
// - Dependencies are interfaces so tests can substitute gomock doubles
type ExampleServiceOptions struct {
	Repo    core.ExampleRepository // Required: primary repository
	Config  ExampleConfig          // Optional: zero value uses defaults
	Logger  *slog.Logger           // Optional: structured logger
	Metrics statsd.Sink            // Optional: statsd sink
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 2: Service Struct (private fields)
// ═══════════════════════════════════════════════════════════════════════════

// ExampleService provides business logic for example domain operations.
//
// RESPONSIBILITIES:
// - Operations with business rules layered over the repository
// - Cross-repository orchestration
// - Pagination normalization before hitting the store
// - Metric emission for outcomes worth graphing
//
// DOES NOT:
// - Import from internal/data (depends on core ports only)
// - Import from internal/http (transport depends on service, not vice versa)
// - Import from internal/adapters (adapters depend on service, not vice versa)
type ExampleService struct {
	repo    core.ExampleRepository
	cfg     ExampleConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 3: Constructor with Validation
// ═══════════════════════════════════════════════════════════════════════════

// NewExampleService constructs a new ExampleService.
//
// RULES:
// - Return an error for a missing required dependency; the bootstrap wraps
//   it ("build example service: %w") and refuses to start
// - Default the logger to slog.Default(); leave metrics nil when absent
// - Keep the constructor simple (no I/O, no goroutines)
func NewExampleService(opts ExampleServiceOptions) (*ExampleService, error) {
	if opts.Repo == nil {
		return nil, errors.New("example repository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ExampleService{
		repo:    opts.Repo,
		cfg:     opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 4: Operations
// ═══════════════════════════════════════════════════════════════════════════

// Create registers a new example entity.
//
// RULES:
// - Accept context.Context as the first parameter
// - Use request types from internal/domain/model; Validate() returns an
//   AppError so the HTTP layer can map it to a status code
// - Wrap repository errors with the operation name
func (s *ExampleService) Create(
	ctx context.Context,
	req *model.CreateExampleRequest,
) (*model.Example, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	example, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create example: %w", err)
	}

	s.logger.InfoContext(ctx, "example created", "id", example.ID, "name", example.Name)
	return example, nil
}

// GetByID retrieves an example entity by ID. The repository returns its
// not-found sentinel; translate it to an AppError here so handlers stay
// repository-agnostic.
func (s *ExampleService) GetByID(ctx context.Context, id int64) (*model.Example, error) {
	example, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get example %d: %w", id, err)
	}
	return example, nil
}

// List retrieves a page of examples. Pagination is normalized here, not in
// the handler and not in the repository.
func (s *ExampleService) List(ctx context.Context, opts ExampleListOptions) ([]*model.Example, error) {
	p := normalizePagination(opts.Limit, opts.Offset)

	examples, err := s.repo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("list examples: %w", err)
	}
	return examples, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 5: Small Consumer-Side Interfaces
// ═══════════════════════════════════════════════════════════════════════════

// When a service needs a slice of another service, declare the slice where
// it is consumed instead of depending on the whole struct. The pass runner's
// PassRunner interface and the discovery service's Prober are the live
// examples.

type exampleProber interface {
	ProbeSeed(ctx context.Context, seed *model.Seed) (*model.ProbeOutcome, error)
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN 6: Metric Emission
// ═══════════════════════════════════════════════════════════════════════════

// Emit outcome metrics through the optional sink; a nil sink means metrics
// are disabled and emission is a no-op.
func (s *ExampleService) recordOutcome(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count("example.outcome", 1, map[string]string{"outcome": outcome})
}

// ═══════════════════════════════════════════════════════════════════════════
// NOTES
// ═══════════════════════════════════════════════════════════════════════════
//
// Common pitfalls:
// - Panicking on a nil dependency instead of returning an error
// - Returning repository sentinel errors to handlers instead of AppErrors
// - Normalizing pagination in more than one layer
// - Importing internal/data from a service (use the core port)
// - Forgetting the *Context slog variants on request-scoped logs
