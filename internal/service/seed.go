package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hirelens/hirelens/internal/core"
	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
)

// SeedServiceOptions groups dependencies for SeedService.
type SeedServiceOptions struct {
	Repo   core.SeedRepository // Required: seed repository
	Logger *slog.Logger        // Optional: structured logger
}

// SeedService provides registration and inspection of candidate companies.
type SeedService struct {
	repo   core.SeedRepository
	logger *slog.Logger
}

// NewSeedService constructs a SeedService.
func NewSeedService(opts SeedServiceOptions) (*SeedService, error) {
	if opts.Repo == nil {
		return nil, errors.New("SeedRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SeedService{repo: opts.Repo, logger: logger}, nil
}

// Create registers one candidate company for a future discovery pass.
func (s *SeedService) Create(ctx context.Context, req *model.CreateSeedRequest) (*model.Seed, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	seed, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create seed: %w", err)
	}

	s.logger.InfoContext(ctx, "seed registered",
		"seed_id", seed.ID,
		"company", seed.CompanyName,
		"source", seed.Source,
		"tier", seed.Tier)
	return seed, nil
}

// SeedListOptions controls seed listing.
type SeedListOptions struct {
	// Untested restricts the listing to seeds never probed.
	Untested bool
	Limit    int
	Offset   int
}

// List returns seeds, optionally restricted to untested ones.
func (s *SeedService) List(ctx context.Context, opts SeedListOptions) ([]*model.Seed, error) {
	p := normalizePagination(opts.Limit, opts.Offset)

	if opts.Untested {
		seeds, err := s.repo.ListUntested(ctx, p.Limit)
		if err != nil {
			return nil, fmt.Errorf("list untested seeds: %w", err)
		}
		return seeds, nil
	}

	seeds, err := s.repo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}
	return seeds, nil
}

// GetByID returns one seed.
func (s *SeedService) GetByID(ctx context.Context, id int64) (*model.Seed, error) {
	seed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seed %d: %w", id, err)
	}
	return seed, nil
}

// Stats returns aggregate statistics over the seed pool.
func (s *SeedService) Stats(ctx context.Context) (*core.SeedStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed stats: %w", err)
	}
	return stats, nil
}

// paginationParams holds normalized pagination parameters.
type paginationParams struct {
	Limit  int
	Offset int
}

// normalizePagination clamps pagination parameters to safe defaults.
// Default limit: 50, max limit: 1000, min offset: 0.
func normalizePagination(limit, offset int) paginationParams {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return paginationParams{Limit: limit, Offset: offset}
}
