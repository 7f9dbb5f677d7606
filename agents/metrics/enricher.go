/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// AttributeEnricher enriches metric attributes with additional context.
// It lets the embedding application add its own dimensions (session id,
// turn number, channel) without coupling this package to any use case.
// The enricher receives the base attributes and returns an enriched set.
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue

// TokenRecorder records model token usage for the current operation.
// Concrete tracers may implement it in addition to optrace.Tracer; deep
// code type-asserts the ambient tracer to attach sub-measurements.
type TokenRecorder interface {
	RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64)
}

// ToolCallRecorder records a tool invocation for the current operation.
type ToolCallRecorder interface {
	RecordToolCall(ctx context.Context, model, toolName string)
}
