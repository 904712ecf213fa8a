// Package observability provides operation metrics and tracing hooks for
// the station engine: an expvar recorder for process-local deployments, a
// JSON-lines tracer, and a Prometheus collector.
package observability

import (
	"context"
	"time"
)

// MetricsRecorder receives the outcome of each engine operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around engine operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan terminates a started span.
type TraceSpan interface {
	End(err error)
}

// NopRecorder discards every observation.
type NopRecorder struct{}

// Observe implements MetricsRecorder.
func (NopRecorder) Observe(context.Context, string, bool, time.Duration) {}

// NopTracer produces spans that record nothing.
type NopTracer struct{}

// Start implements Tracer.
func (NopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End(error) {}
