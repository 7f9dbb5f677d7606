/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sendmoney

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/remitaf/agents/executor"
	"chainguard.dev/remitaf/agents/executor/retry"
	"chainguard.dev/remitaf/agents/optrace"
	"chainguard.dev/remitaf/agents/reply"
	"chainguard.dev/remitaf/agents/toolcall"
	"chainguard.dev/remitaf/transfer"
)

// Config configures a transfer session.
type Config struct {
	// ProjectID is the GCP project hosting the Vertex AI endpoints.
	ProjectID string
	// Region is the Vertex AI region.
	Region string
	// Model selects the provider: gemini-* or claude-*.
	Model string

	// Tracing is the operation tracing factory applied to each turn.
	// Nil disables capture.
	Tracing *optrace.Factory

	// Retry overrides the backoff configuration for transient provider
	// errors. Nil uses the default.
	Retry *retry.Config
}

// Session is one user's transfer conversation. Not safe for concurrent
// Turn calls.
type Session struct {
	conv    executor.Conversation
	tracing *optrace.Factory
	details *transfer.Details
}

// Reply is the outcome of one conversation turn.
type Reply struct {
	// Text is the assistant's reply to show the user.
	Text string
	// Details is the transfer state after this turn.
	Details transfer.Details
	// Complete reports whether all transfer details have been collected.
	Complete bool
	// Summary is the model's JSON summary of the transfer, present only
	// when the transfer is complete and the reply carried one.
	Summary *transfer.Details
}

// NewSession creates a Session backed by a fresh model conversation.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("project ID cannot be empty")
	}
	if cfg.Model == "" {
		return nil, errors.New("model cannot be empty")
	}

	details := &transfer.Details{}
	conv, err := executor.New(ctx, cfg.ProjectID, cfg.Region, cfg.Model, executor.Config{
		System: Instructions(),
		Tools:  []toolcall.Tool{UpdateTransferDetailsTool(details)},
		Retry:  cfg.Retry,
	})
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	return newSession(conv, cfg.Tracing, details), nil
}

// newSession wires a Session from its parts. Split out so tests can
// inject a conversation.
func newSession(conv executor.Conversation, tracing *optrace.Factory, details *transfer.Details) *Session {
	if tracing == nil {
		tracing = optrace.NewFactory(false, nil)
	}
	return &Session{
		conv:    conv,
		tracing: tracing,
		details: details,
	}
}

// Details returns the transfer state collected so far.
func (s *Session) Details() transfer.Details {
	return *s.details
}

// Turn runs one conversation turn under operation capture and returns
// the assistant's reply along with the updated transfer state.
func (s *Session) Turn(ctx context.Context, userMessage string) (Reply, error) {
	var text string
	err := s.tracing.Capture(ctx, func(ctx context.Context) error {
		var serr error
		text, serr = s.conv.Send(ctx, userMessage)
		return serr
	})
	if err != nil {
		return Reply{}, fmt.Errorf("sending message: %w", err)
	}

	out := Reply{
		Text:     text,
		Details:  *s.details,
		Complete: s.details.Complete(),
	}
	if out.Complete {
		// The model is instructed to emit a JSON summary once all
		// details are collected, but a chatty reply without one is not
		// an error: the session state remains authoritative.
		if summary, err := reply.Decode[transfer.Details](text); err == nil {
			out.Summary = &summary
		}
	}
	return out, nil
}
