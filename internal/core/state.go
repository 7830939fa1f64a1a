package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
)

// passHistorySize bounds the in-memory ring of finished pass summaries.
const passHistorySize = 20

// PassGate serializes the pass modes that contend for the collection
// pipeline. Discovery, refresh and expansion share a single slot: a trigger
// while the slot is held must be dropped by the caller. Maintenance only
// touches snapshots and prune windows, so it runs beside them under its own
// slot.
//
// The gate also keeps the last finished summaries for the status API.
type PassGate struct {
	mu          sync.Mutex
	exclusive   *PassRun
	maintenance *PassRun
	last        *model.PassSummary
	history     []model.PassSummary

	now func() time.Time
}

// NewPassGate creates an idle PassGate.
func NewPassGate() *PassGate {
	return &PassGate{now: time.Now}
}

// TryBegin claims the slot for mode and returns a run handle. It returns
// false when a conflicting pass is already active; the caller is expected to
// drop the trigger and log it, not queue it.
func (g *PassGate) TryBegin(mode model.PassMode) (*PassRun, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	slot := &g.exclusive
	if mode == model.PassMaintenance {
		slot = &g.maintenance
	}
	if *slot != nil {
		return nil, false
	}

	run := &PassRun{
		gate:      g,
		id:        uuid.NewString(),
		mode:      mode,
		startedAt: g.now(),
	}
	*slot = run
	return run, true
}

// Status returns a point-in-time view of the gate. When both slots are
// active, the exclusive run wins; maintenance never reports progress.
func (g *PassGate) Status() PassStatus {
	g.mu.Lock()
	run := g.exclusive
	if run == nil {
		run = g.maintenance
	}
	last := g.last
	g.mu.Unlock()

	status := PassStatus{LastRun: last}
	if run == nil {
		return status
	}

	progress, stats := run.snapshot()
	startedAt := run.startedAt
	status.IsRunning = true
	status.Mode = run.mode
	status.StartedAt = &startedAt
	status.Progress = progress
	status.Stats = stats
	return status
}

// History returns finished pass summaries, newest first.
func (g *PassGate) History() []model.PassSummary {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.PassSummary, len(g.history))
	copy(out, g.history)
	return out
}

// finish releases the run's slot and records its summary.
func (g *PassGate) finish(run *PassRun, summary model.PassSummary) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.exclusive == run {
		g.exclusive = nil
	}
	if g.maintenance == run {
		g.maintenance = nil
	}

	g.last = &summary
	g.history = append([]model.PassSummary{summary}, g.history...)
	if len(g.history) > passHistorySize {
		g.history = g.history[:passHistorySize]
	}
}

// PassStatus is a point-in-time view of the gate for the status API.
type PassStatus struct {
	IsRunning bool               `json:"is_running"`
	Mode      model.PassMode     `json:"mode,omitempty"`
	StartedAt *time.Time         `json:"started_at,omitempty"`
	Progress  float64            `json:"current_progress"`
	Stats     model.PassStats    `json:"current_stats"`
	LastRun   *model.PassSummary `json:"last_run,omitempty"`
}

// PassRun is a handle on one in-flight pass. The owning runner reports
// progress through it and must call Finish exactly once; Finish releases the
// gate slot and appends the summary to the history ring.
type PassRun struct {
	gate      *PassGate
	id        string
	mode      model.PassMode
	startedAt time.Time

	mu       sync.Mutex
	progress float64
	stats    model.PassStats
	done     bool
}

// ID returns the run's unique id.
func (r *PassRun) ID() string { return r.id }

// Mode returns the pass mode the run was started for.
func (r *PassRun) Mode() model.PassMode { return r.mode }

// StartedAt returns when the run claimed its slot.
func (r *PassRun) StartedAt() time.Time { return r.startedAt }

// Progress records pass progress in [0,1] plus the running stats. Safe for
// concurrent use by worker goroutines.
func (r *PassRun) Progress(progress float64, stats model.PassStats) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	r.progress = progress
	r.stats = stats
}

// Finish releases the slot and records the pass summary, returning it.
// A nil err marks the pass successful; cancellation errors mark it cancelled
// rather than failed. Calls after the first are no-ops.
func (r *PassRun) Finish(err error) model.PassSummary {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return model.PassSummary{}
	}
	r.done = true
	stats := r.stats
	r.mu.Unlock()

	finishedAt := r.gate.now()
	summary := model.PassSummary{
		ID:         r.id,
		Mode:       r.mode,
		StartedAt:  r.startedAt,
		FinishedAt: finishedAt,
		Duration:   finishedAt.Sub(r.startedAt),
		Stats:      stats,
	}
	if err != nil {
		summary.Error = err.Error()
		summary.Cancelled = errors.Is(err, context.Canceled) || apperrors.IsCanceled(err)
	}

	r.gate.finish(r, summary)
	return summary
}

// snapshot returns the current progress and stats under the run's lock.
func (r *PassRun) snapshot() (float64, model.PassStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress, r.stats
}
