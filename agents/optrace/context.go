/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package optrace

import "context"

// tracerKey is the context key for the ambient tracer.
type tracerKey struct{}

// WithTracer returns a new context carrying t as the ambient tracer. The
// caller's original context is the restoration point: once the derived
// context goes out of scope, the previous ambient tracer (or none) is
// visible again. Contexts are goroutine-scoped by construction, so two
// concurrent operations can never observe each other's tracer.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, t)
}

// TracerFromContext returns the tracer of the innermost active capture, or
// nil when no capture is active on this call chain. It never fails; callers
// guard their recording calls with a nil check.
func TracerFromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return nil
}
