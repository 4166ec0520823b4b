// Package metrics turns screen activity into StatsD metrics.
package metrics

import (
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	obserrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/observability/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/observability/statsd"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/viewmodel"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metric names, before the sink prefix.
const (
	MetricListRefresh      = "list.refresh"
	MetricListDuration     = "list.duration"
	MetricFormSubmit       = "form.submit"
	MetricFormDuration     = "form.duration"
	MetricPermissionDenied = "screen.denied"
)

// ScreenRecorder implements viewmodel.Recorder over a statsd.Sink.
type ScreenRecorder struct {
	sink statsd.Sink
}

var _ viewmodel.Recorder = (*ScreenRecorder)(nil)

// NewScreenRecorder returns a recorder writing to sink. A nil sink discards.
func NewScreenRecorder(sink statsd.Sink) *ScreenRecorder {
	if sink == nil {
		sink = statsd.Discard
	}
	return &ScreenRecorder{sink: sink}
}

// ListRefreshed records a finished list fetch.
func (r *ScreenRecorder) ListRefreshed(module string, elapsed time.Duration, err error) {
	tags := resultTags(err)
	tags["module"] = module
	r.sink.Count(MetricListRefresh, 1, tags)
	if elapsed > 0 {
		r.sink.Timing(MetricListDuration, elapsed, CloneTags(tags))
	}
}

// FormSubmitted records a finished create or update.
func (r *ScreenRecorder) FormSubmitted(module string, mode viewmodel.FormMode, elapsed time.Duration, err error) {
	tags := resultTags(err)
	tags["module"] = module
	tags["mode"] = string(mode)
	r.sink.Count(MetricFormSubmit, 1, tags)
	if elapsed > 0 {
		r.sink.Timing(MetricFormDuration, elapsed, CloneTags(tags))
	}
}

// PermissionDenied records an action refused for lack of capability.
func (r *ScreenRecorder) PermissionDenied(module string, action domainauth.Action) {
	r.sink.Count(MetricPermissionDenied, 1, map[string]string{
		"module": module,
		"action": string(action),
	})
}

func resultTags(err error) map[string]string {
	if err == nil {
		return map[string]string{"result": ResultSuccess}
	}
	return map[string]string{
		"result":      ResultError,
		"error_class": obserrors.Classify(err),
	}
}

// CloneTags creates a shallow copy of a tag map.
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
