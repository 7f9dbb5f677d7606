/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"
	"time"

	"chainguard.dev/remitaf/agents/optrace"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Operations holds the OpenTelemetry instruments for agent operations:
// lifecycle counters, a duration histogram, and the token and tool-call
// counters executors feed through the ambient tracer. One Operations value
// is shared by all operations of a process; per-operation tracers are
// minted from it via Tracer.
type Operations struct {
	meter            metric.Meter
	started          metric.Int64Counter
	completed        metric.Int64Counter
	duration         metric.Float64Histogram
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	toolCalls        metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewOperations creates the operation instruments on the named meter.
// The meterName should be unified across the process (e.g. "remitaf.agents")
// with the operation and model names serving as dimensions on the recorded
// metrics. Uses graceful degradation: if any instrument fails to
// initialize, logs a warning and substitutes a no-op instrument instead of
// failing entirely.
func NewOperations(meterName string) *Operations {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	warn := func(what string, err error) {
		slog.Warn("Failed to create "+what+", metrics will be disabled", "error", err, "meter", meterName)
	}

	started, err := meter.Int64Counter("agent.operation.started",
		metric.WithDescription("The number of agent operations started"),
		metric.WithUnit("{operations}"))
	if err != nil {
		warn("operation start counter", err)
		started = noop.Int64Counter{}
	}

	completed, err := meter.Int64Counter("agent.operation.completed",
		metric.WithDescription("The number of agent operations completed"),
		metric.WithUnit("{operations}"))
	if err != nil {
		warn("operation completion counter", err)
		completed = noop.Int64Counter{}
	}

	duration, err := meter.Float64Histogram("agent.operation.duration",
		metric.WithDescription("Agent operation duration"),
		metric.WithUnit("s"))
	if err != nil {
		warn("operation duration histogram", err)
		duration = noop.Float64Histogram{}
	}

	promptTokens, err := meter.Int64Counter("agent.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		warn("prompt tokens counter", err)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("agent.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		warn("completion tokens counter", err)
		completionTokens = noop.Int64Counter{}
	}

	toolCalls, err := meter.Int64Counter("agent.tool.calls",
		metric.WithDescription("The number of tool calls made during agent operations"),
		metric.WithUnit("{calls}"))
	if err != nil {
		warn("tool call counter", err)
		toolCalls = noop.Int64Counter{}
	}

	return &Operations{
		meter:            meter,
		started:          started,
		completed:        completed,
		duration:         duration,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		toolCalls:        toolCalls,
	}
}

// SetAttributeEnricher sets the attribute enricher for all tracers minted
// from this Operations value.
func (o *Operations) SetAttributeEnricher(enricher AttributeEnricher) {
	o.attrEnricher = enricher
}

// Tracer returns a fresh single-use tracer for the named operation,
// suitable as an optrace.NewTracerFunc:
//
//	factory := optrace.NewFactory(cfg.MetricsEnabled, func() optrace.Tracer {
//		return ops.Tracer("agent.turn")
//	})
func (o *Operations) Tracer(operation string) optrace.Tracer {
	return &operationTracer{ops: o, operation: operation}
}

// operationTracer measures one operation. Beyond the optrace.Tracer
// lifecycle it implements TokenRecorder and ToolCallRecorder so executors
// and tool handlers can attach sub-measurements through the ambient tracer.
type operationTracer struct {
	ops       *Operations
	operation string
	startedAt time.Time
}

func (t *operationTracer) attrs(ctx context.Context, extra ...attribute.KeyValue) []attribute.KeyValue {
	baseAttrs := []attribute.KeyValue{
		attribute.String("operation", t.operation),
	}
	if t.ops.attrEnricher != nil {
		baseAttrs = t.ops.attrEnricher(ctx, baseAttrs)
	}
	return append(baseAttrs, extra...)
}

func (t *operationTracer) RecordOperationStart(ctx context.Context) {
	t.startedAt = time.Now()
	t.ops.started.Add(ctx, 1, metric.WithAttributes(t.attrs(ctx)...))
}

func (t *operationTracer) RecordOperationCompletion(ctx context.Context) {
	attrs := metric.WithAttributes(t.attrs(ctx)...)
	t.ops.completed.Add(ctx, 1, attrs)
	if !t.startedAt.IsZero() {
		t.ops.duration.Record(ctx, time.Since(t.startedAt).Seconds(), attrs)
	}
}

// RecordTokens implements TokenRecorder.
func (t *operationTracer) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(t.attrs(ctx, attribute.String("model", model))...)
	t.ops.promptTokens.Add(ctx, promptTokens, attrs)
	t.ops.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordToolCall implements ToolCallRecorder.
func (t *operationTracer) RecordToolCall(ctx context.Context, model, toolName string) {
	t.ops.toolCalls.Add(ctx, 1, metric.WithAttributes(t.attrs(ctx,
		attribute.String("model", model),
		attribute.String("tool", toolName),
	)...))
}
