/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package optrace provides scoped metrics capture around agent operations.

# Overview

Every externally visible agent operation (for example one conversational
turn) is wrapped in a Capture. On entry the capture asks its Factory for a
fresh Tracer, installs it as the ambient tracer for the operation, and
records operation start. On exit it records operation completion and the
ambient tracer goes out of scope with the operation's context, no matter
whether the operation returned normally, failed, was cancelled, or panicked.

The ambient tracer travels on the context.Context, so arbitrarily deep call
chains (executors, tool handlers) can attach sub-measurements without any
parameter threading:

  - WithTracer installs a tracer on a derived context.
  - TracerFromContext reads the innermost active tracer, or nil.

Because installation always derives a new context and the derived context
never outlives its capture, nested captures restore the outer tracer
structurally: there is no token to misuse and no way to unwind out of order.

# Disabled mode

The Factory carries the process-wide metrics gate. When the gate is off a
capture is a pure no-op: no tracer is created, the context is left untouched,
and the exit path does nothing. The gate is re-read independently on entry
and on exit, so flipping it mid-operation affects only the lifecycle half
that observes the new value.

# Usage

	factory := optrace.NewFactory(true, func() optrace.Tracer {
		return ops.Tracer("agent_turn")
	})

	err := factory.Capture(ctx, func(ctx context.Context) error {
		// Deep code can reach the tracer:
		//   t := optrace.TracerFromContext(ctx)
		return session.Turn(ctx, userMsg)
	})

The error returned by the wrapped function is returned unchanged; the capture
observes the outcome but never alters it.
*/
package optrace
