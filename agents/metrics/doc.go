/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package metrics provides the concrete measurement backends behind optrace.

# Overview

Two tracer implementations and one model-usage recorder live here:

  - Operations: OpenTelemetry counters and a duration histogram for agent
    operations, plus the token-usage and tool-call counters executors feed.
    Operations.Tracer produces a fresh optrace.Tracer per operation, as the
    optrace.Factory requires.
  - PromTracer: promauto counter vectors for processes that scrape
    Prometheus directly rather than going through the OTel SDK.
  - Multi: fan-out to several tracers behind one factory.

All OTel instruments degrade gracefully: if an instrument fails to
initialize, a warning is logged and a no-op instrument is used instead, so
metrics failures never take the agent down.

# Sub-measurements

Executors and tool handlers discover the ambient tracer through
optrace.TracerFromContext and type-assert the optional capability
interfaces (TokenRecorder, ToolCallRecorder) to attach sub-measurements to
the operation in flight.
*/
package metrics
