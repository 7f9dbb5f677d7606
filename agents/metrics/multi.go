/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"chainguard.dev/remitaf/agents/optrace"
)

// multiTracer fans operation events out to several tracers.
type multiTracer struct {
	tracers []optrace.Tracer
}

// Multi combines tracers into one. Operation events go to every tracer;
// token and tool call measurements go to the tracers that accept them.
func Multi(tracers ...optrace.Tracer) optrace.Tracer {
	return &multiTracer{tracers: tracers}
}

func (m *multiTracer) RecordOperationStart(ctx context.Context) {
	for _, t := range m.tracers {
		t.RecordOperationStart(ctx)
	}
}

func (m *multiTracer) RecordOperationCompletion(ctx context.Context) {
	for _, t := range m.tracers {
		t.RecordOperationCompletion(ctx)
	}
}

func (m *multiTracer) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	for _, t := range m.tracers {
		if rec, ok := t.(TokenRecorder); ok {
			rec.RecordTokens(ctx, model, promptTokens, completionTokens)
		}
	}
}

func (m *multiTracer) RecordToolCall(ctx context.Context, model, toolName string) {
	for _, t := range m.tracers {
		if rec, ok := t.(ToolCallRecorder); ok {
			rec.RecordToolCall(ctx, model, toolName)
		}
	}
}
