/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package optrace

import (
	"context"
	"time"

	"github.com/chainguard-dev/clog"
)

// logTracer logs operation start and completion via clog. It is the
// fallback tracer for processes that have no metrics backend wired.
type logTracer struct {
	operation string
	started   time.Time
}

// NewLogTracer returns a tracer that logs lifecycle events for the named
// operation.
func NewLogTracer(operation string) Tracer {
	return &logTracer{operation: operation}
}

func (l *logTracer) RecordOperationStart(ctx context.Context) {
	l.started = time.Now()
	clog.FromContext(ctx).With("operation", l.operation).
		Info("Operation started")
}

func (l *logTracer) RecordOperationCompletion(ctx context.Context) {
	clog.FromContext(ctx).With("operation", l.operation).
		With("duration_ms", time.Since(l.started).Milliseconds()).
		Info("Operation completed")
}
