package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/seedexp"
)

func TestNewExpansionServiceValidation(t *testing.T) {
	_, err := NewExpansionService(ExpansionServiceOptions{})
	require.Error(t, err)
}

func TestExpansionRunMapsReport(t *testing.T) {
	svc, err := NewExpansionService(ExpansionServiceOptions{
		Expander: &fakeExpander{report: &seedexp.Report{
			SourcesRun:    3,
			SourcesFailed: 1,
			Extracted:     120,
			Accepted:      80,
			Inserted:      42,
		}},
	})
	require.NoError(t, err)

	stats, err := svc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.PassStats{Tested: 120, Hits: 42, Errors: 1}, stats)
}

func TestExpansionRunPropagatesFailure(t *testing.T) {
	svc, err := NewExpansionService(ExpansionServiceOptions{
		Expander: &fakeExpander{err: errors.New("invalid seed tier")},
	})
	require.NoError(t, err)

	stats, runErr := svc.Run(context.Background(), nil)
	require.Error(t, runErr)
	assert.Equal(t, model.PassStats{}, stats, "a nil report yields zero stats")
}

func TestExpansionRunForwardsProgress(t *testing.T) {
	expander := &fakeExpander{fn: func(_ context.Context, progress model.ProgressFunc) (*seedexp.Report, error) {
		progress(0.5, model.PassStats{Tested: 10})
		return &seedexp.Report{Extracted: 10}, nil
	}}
	svc, err := NewExpansionService(ExpansionServiceOptions{Expander: expander})
	require.NoError(t, err)

	var got []float64
	_, runErr := svc.Run(context.Background(), func(p float64, _ model.PassStats) {
		got = append(got, p)
	})
	require.NoError(t, runErr)
	assert.Equal(t, []float64{0.5}, got)
}
