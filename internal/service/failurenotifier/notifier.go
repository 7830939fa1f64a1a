// Package failurenotifier fans pass failures out to alerting sinks such as
// Slack and PagerDuty.
package failurenotifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hirelens/hirelens/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the failure notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
}

// Service dispatches failure events to all registered sinks.
type Service struct {
	logger *slog.Logger
	sinks  []SinkRegistration
}

// NewService constructs a failure notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "failure_notifier")
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{
			Name: name,
			Sink: entry.Sink,
		})
	}

	return &Service{
		logger: logger,
		sinks:  sinks,
	}
}

// NotifyPassFailure fan-outs the pass failure payload to all sinks.
// Cancelled passes are skipped: a shutdown or an operator abort is not an
// incident.
func (s *Service) NotifyPassFailure(ctx context.Context, payload notify.PassFailurePayload) {
	if len(s.sinks) == 0 {
		return
	}

	if payload.Cancelled {
		if s.logger != nil {
			s.logger.DebugContext(ctx, "skipping notification for cancelled pass",
				"pass_id", payload.PassID,
				"mode", payload.Mode,
			)
		}
		return
	}

	if payload.Severity == "" {
		payload.Severity = notify.SeverityCritical
	}

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.SendPassFailure(ctx, payload); err != nil {
				s.logger.Error("failure notifier delivery error",
					"sink", entry.Name,
					"pass_id", payload.PassID,
					"mode", payload.Mode,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return len(s.sinks) > 0
}
