/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"time"

	"chainguard.dev/remitaf/agents/optrace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Global metrics with consistent dimensions
	operationsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_operations_started_total",
			Help: "Total number of agent operations started",
		},
		[]string{"operation"},
	)

	operationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_operations_completed_total",
			Help: "Total number of agent operations completed",
		},
		[]string{"operation"},
	)

	operationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_operation_duration_seconds",
			Help:    "Agent operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// PromTracer records one operation on the default Prometheus registry. It
// is the backend of choice for processes that expose /metrics directly
// without going through the OTel SDK.
type PromTracer struct {
	started   prometheus.Counter
	completed prometheus.Counter
	seconds   prometheus.Observer
	startedAt time.Time
}

// NewPromTracer returns a fresh single-use tracer for the named operation.
func NewPromTracer(operation string) *PromTracer {
	labels := prometheus.Labels{"operation": operation}
	return &PromTracer{
		started:   operationsStarted.With(labels),
		completed: operationsCompleted.With(labels),
		seconds:   operationSeconds.With(labels),
	}
}

// RecordOperationStart implements optrace.Tracer.
func (p *PromTracer) RecordOperationStart(context.Context) {
	p.startedAt = time.Now()
	p.started.Inc()
}

// RecordOperationCompletion implements optrace.Tracer.
func (p *PromTracer) RecordOperationCompletion(context.Context) {
	p.completed.Inc()
	if !p.startedAt.IsZero() {
		p.seconds.Observe(time.Since(p.startedAt).Seconds())
	}
}

var _ optrace.Tracer = (*PromTracer)(nil)
