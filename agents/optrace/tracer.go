/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package optrace

import (
	"context"
	"sync/atomic"
)

// Tracer is one operation's in-flight measurement handle. A tracer is
// created fresh per operation by the Factory and is never reused.
//
// What a tracer measures and where it exports to is up to the
// implementation; the capture machinery only drives the two lifecycle
// calls below, always start first and completion exactly once afterwards.
type Tracer interface {
	// RecordOperationStart marks the beginning of the operation.
	RecordOperationStart(ctx context.Context)
	// RecordOperationCompletion marks the end of the operation. It is
	// called on every exit path, including failure and cancellation.
	RecordOperationCompletion(ctx context.Context)
}

// NewTracerFunc constructs a tracer for a single operation. Returning nil is
// allowed and means the operation runs without a tracer.
type NewTracerFunc func() Tracer

// Factory creates per-operation tracers and holds the process-wide metrics
// gate. The gate is mutable configuration: it is normally set once at
// startup, but each capture re-reads it at entry and at exit so a runtime
// flip is observed by whichever lifecycle half runs after it.
type Factory struct {
	enabled   atomic.Bool
	newTracer NewTracerFunc
}

// NewFactory returns a Factory with the given initial gate value. newTracer
// may be nil, in which case captures run with no tracer even when enabled.
func NewFactory(enabled bool, newTracer NewTracerFunc) *Factory {
	f := &Factory{newTracer: newTracer}
	f.enabled.Store(enabled)
	return f
}

// Enabled reports whether metrics capture is currently on.
func (f *Factory) Enabled() bool {
	return f.enabled.Load()
}

// SetEnabled flips the metrics gate. Safe for concurrent use.
func (f *Factory) SetEnabled(on bool) {
	f.enabled.Store(on)
}

// NewTracer returns a fresh tracer for one operation, or nil.
func (f *Factory) NewTracer() Tracer {
	if f.newTracer == nil {
		return nil
	}
	return f.newTracer()
}
