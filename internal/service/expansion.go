package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/seedexp"
)

// SourceExpander mines seed sources for candidate company names.
type SourceExpander interface {
	Expand(ctx context.Context, progress model.ProgressFunc) (*seedexp.Report, error)
}

// ExpansionServiceOptions groups dependencies for ExpansionService.
type ExpansionServiceOptions struct {
	Expander SourceExpander // Required: seed expander
	Logger   *slog.Logger   // Optional: structured logger
}

// ExpansionService runs the expansion pass, delegating to the seed expander
// and translating its report into pass statistics.
type ExpansionService struct {
	expander SourceExpander
	logger   *slog.Logger
}

// NewExpansionService constructs an ExpansionService.
func NewExpansionService(opts ExpansionServiceOptions) (*ExpansionService, error) {
	if opts.Expander == nil {
		return nil, errors.New("SourceExpander is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ExpansionService{expander: opts.Expander, logger: logger}, nil
}

// Run executes one expansion pass. Extracted names count as tested, inserted
// seeds as hits.
func (s *ExpansionService) Run(ctx context.Context, progress model.ProgressFunc) (model.PassStats, error) {
	report, err := s.expander.Expand(ctx, progress)

	var stats model.PassStats
	if report != nil {
		stats = model.PassStats{
			Tested: report.Extracted,
			Hits:   report.Inserted,
			Errors: report.SourcesFailed,
		}
	}
	return stats, err
}
