/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package executor provides model-backed conversations with tool calling.
//
// A Conversation is a stateful exchange with one model provider: each Send
// delivers a user message, runs any tool calls the model makes against the
// registered handlers, and returns the assistant's final text reply. The
// provider implementation is chosen from the model name:
//   - Models starting with "gemini-" use Google's Generative AI SDK
//   - Models starting with "claude-" use Anthropic's SDK via Vertex AI
package executor

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/remitaf/agents/executor/claudeexecutor"
	"chainguard.dev/remitaf/agents/executor/geminiexecutor"
	"chainguard.dev/remitaf/agents/executor/retry"
	"chainguard.dev/remitaf/agents/prompt"
	"chainguard.dev/remitaf/agents/toolcall"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/vertex"
	"google.golang.org/genai"
)

// Conversation is one session's stateful exchange with a model provider.
// Implementations are not safe for concurrent Send calls.
type Conversation interface {
	// Send delivers the user's message, runs any tool calls the model
	// makes, and returns the assistant's final text reply.
	Send(ctx context.Context, userMessage string) (string, error)
}

// Config carries the provider-independent conversation configuration.
type Config struct {
	// System is the system instructions prompt. All placeholders must be
	// bound before the conversation starts.
	System *prompt.Prompt

	// Tools are the tools the model may call during the conversation.
	Tools []toolcall.Tool

	// Retry overrides the backoff configuration for transient provider
	// errors. Nil uses retry.DefaultConfig.
	Retry *retry.Config
}

// New creates a Conversation for the given model, dispatching to the
// provider implementation by model name prefix.
func New(ctx context.Context, projectID, region, model string, cfg Config) (Conversation, error) {
	retryConfig := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryConfig = *cfg.Retry
	}
	if err := retryConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry config: %w", err)
	}

	modelLower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(modelLower, "gemini-"):
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			Project:  projectID,
			Location: region,
			Backend:  genai.BackendVertexAI,
		})
		if err != nil {
			return nil, fmt.Errorf("creating Google AI client: %w", err)
		}
		return geminiexecutor.New(client, model, cfg.System, cfg.Tools,
			geminiexecutor.WithRetryConfig(retryConfig))

	case strings.HasPrefix(modelLower, "claude-"):
		client := anthropic.NewClient(
			vertex.WithGoogleAuth(ctx, region, projectID),
		)
		return claudeexecutor.New(client, model, cfg.System, cfg.Tools,
			claudeexecutor.WithRetryConfig(retryConfig))

	default:
		return nil, fmt.Errorf("unsupported model: %s (expected gemini-* or claude-*)", model)
	}
}
