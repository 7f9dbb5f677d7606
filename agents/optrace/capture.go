/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package optrace

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// Capture is one operation's enter/exit pair. Obtain one from Start, run the
// operation with the returned context, and call End on every exit path
// (normally via defer). A Capture must not be shared across operations and
// End must be called exactly once.
type Capture struct {
	factory *Factory

	// tracer is the tracer this capture itself installed, nil when the
	// gate was off at entry or the factory yielded none. Completion is
	// recorded on this field rather than re-read from the context: a
	// capture that installed nothing must not complete an enclosing
	// capture's tracer.
	tracer Tracer

	// ctx is the capture's own derived context, with the tracer installed
	// when one was created.
	ctx context.Context
}

// Start enters a capture. When the factory's gate is off this is a no-op:
// the input context is returned unchanged and End will do nothing beyond its
// own gate check. Otherwise a fresh tracer is created (when the factory
// yields one), installed on the returned context, and given the start
// signal.
func Start(ctx context.Context, factory *Factory) (context.Context, *Capture) {
	if !factory.Enabled() {
		return ctx, &Capture{factory: factory, ctx: ctx}
	}

	c := &Capture{factory: factory, ctx: ctx}
	if t := factory.NewTracer(); t != nil {
		ctx = WithTracer(ctx, t)
		c.tracer = t
		c.ctx = ctx
		t.RecordOperationStart(ctx)
	}
	return ctx, c
}

// End exits the capture: it re-checks the gate, records completion on the
// tracer this capture installed, and lets the derived context go out of
// scope, restoring whatever tracer was ambient before Start. A capture that
// installed no tracer records nothing, even when an enclosing capture's
// tracer is still ambient. End never panics and never alters the outcome of
// the wrapped operation.
func (c *Capture) End() {
	if !c.factory.Enabled() {
		return
	}

	if c.tracer == nil {
		return
	}

	// A misbehaving tracer must not mask the operation's own outcome, so
	// completion failures are logged and swallowed.
	defer func() {
		if r := recover(); r != nil {
			clog.FromContext(c.ctx).With("panic", r).
				Warn("Tracer panicked recording operation completion")
		}
	}()
	c.tracer.RecordOperationCompletion(c.ctx)
}

// Capture wraps fn in a scoped capture. The context passed to fn carries the
// operation's tracer (when one was created); fn's error, including
// context cancellation, is returned unchanged after exit bookkeeping runs.
// Exit bookkeeping also runs if fn panics.
func (f *Factory) Capture(ctx context.Context, fn func(context.Context) error) error {
	ctx, c := Start(ctx, f)
	defer c.End()
	return fn(ctx)
}
