// Package metrics centralises the metric names and tag conventions used by
// the pipeline, so passes, probes, and collections stay consistent across
// emitters.
package metrics

import (
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
	obserrors "github.com/hirelens/hirelens/internal/observability/errors"
	"github.com/hirelens/hirelens/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// PassMetric captures the outcome of one scheduler pass for metric emission.
type PassMetric struct {
	Mode     model.PassMode
	Result   string
	Duration time.Duration
	Stats    model.PassStats
	Err      error
}

// EmitPass emits standardised pass lifecycle metrics: one completion counter
// tagged by mode and result, a duration timing, and per-stat counters so
// dashboards can chart jobs added/closed per pass without parsing logs.
func EmitPass(sink statsd.Sink, in PassMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"mode":   string(in.Mode),
		"result": in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("pass.completed", 1, tags)

	if in.Duration > 0 {
		sink.Timing("pass.duration", in.Duration, CloneTags(tags))
	}

	statTags := map[string]string{"mode": string(in.Mode)}
	emitStat(sink, "pass.seeds_tested", in.Stats.Tested, statTags)
	emitStat(sink, "pass.seed_hits", in.Stats.Hits, statTags)
	emitStat(sink, "pass.jobs_added", in.Stats.JobsAdded, statTags)
	emitStat(sink, "pass.jobs_closed", in.Stats.JobsClosed, statTags)
	emitStat(sink, "pass.errors", in.Stats.Errors, statTags)
}

// ProbeMetric captures one seed probe for metric emission.
type ProbeMetric struct {
	ATSType  model.ATSType
	Hit      bool
	Cached   bool
	Duration time.Duration
}

// EmitProbe emits counters for a single seed probe outcome.
func EmitProbe(sink statsd.Sink, in ProbeMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"result": "miss",
		"cached": "false",
	}
	if in.Hit {
		tags["result"] = "hit"
		tags["ats"] = string(in.ATSType)
	}
	if in.Cached {
		tags["cached"] = "true"
	}

	sink.Count("probe.seed", 1, tags)

	if in.Duration > 0 {
		sink.Timing("probe.duration", in.Duration, CloneTags(tags))
	}
}

// CollectionMetric captures one company collection for metric emission.
type CollectionMetric struct {
	ATSType  model.ATSType
	Result   string
	Partial  bool
	Jobs     int
	Duration time.Duration
	Err      error
}

// EmitCollection emits counters for a single company collection.
func EmitCollection(sink statsd.Sink, in CollectionMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"ats":     string(in.ATSType),
		"result":  in.Result,
		"partial": "false",
	}
	if in.Partial {
		tags["partial"] = "true"
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("collect.company", 1, tags)
	emitStat(sink, "collect.jobs", in.Jobs, map[string]string{"ats": string(in.ATSType)})

	if in.Duration > 0 {
		sink.Timing("collect.duration", in.Duration, CloneTags(tags))
	}
}

func emitStat(sink statsd.Sink, name string, value int, tags map[string]string) {
	if value <= 0 {
		return
	}
	sink.Count(name, int64(value), CloneTags(tags))
}

// CloneTags creates a shallow copy of a tag map, so emitters can hand the
// same base tags to several metrics without aliasing.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
