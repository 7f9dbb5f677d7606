/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package optrace

import (
	"context"
	"testing"
)

func TestWithTracer(t *testing.T) {
	ctx := context.Background()
	tracer := &mockTracer{}

	ctxWithTracer := WithTracer(ctx, tracer)
	if got := TracerFromContext(ctxWithTracer); got != tracer {
		t.Errorf("retrieved tracer: got = %v, wanted = %v", got, tracer)
	}

	// The original context is untouched.
	if got := TracerFromContext(ctx); got != nil {
		t.Errorf("retrieved tracer from original context: got = %v, wanted = nil", got)
	}
}

func TestTracerFromContextEmpty(t *testing.T) {
	if got := TracerFromContext(context.Background()); got != nil {
		t.Errorf("retrieved tracer from empty context: got = %v, wanted = nil", got)
	}
}

func TestWithTracerShadowing(t *testing.T) {
	outer := &mockTracer{}
	inner := &mockTracer{}

	ctx := WithTracer(context.Background(), outer)
	innerCtx := WithTracer(ctx, inner)

	if got := TracerFromContext(innerCtx); got != inner {
		t.Errorf("inner tracer: got = %v, wanted = %v", got, inner)
	}
	if got := TracerFromContext(ctx); got != outer {
		t.Errorf("outer tracer: got = %v, wanted = %v", got, outer)
	}
}
