/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package geminiexecutor runs conversations against Gemini models on
// Vertex AI using Google's Generative AI SDK.
package geminiexecutor

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/remitaf/agents/executor/retry"
	"chainguard.dev/remitaf/agents/metrics"
	"chainguard.dev/remitaf/agents/optrace"
	"chainguard.dev/remitaf/agents/prompt"
	"chainguard.dev/remitaf/agents/schema"
	"chainguard.dev/remitaf/agents/toolcall"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// Conversation is a stateful exchange with a Gemini model. The SDK chat
// session carries the history across Send calls. Not safe for concurrent
// Send.
type Conversation struct {
	client      *genai.Client
	model       string
	config      *genai.GenerateContentConfig
	tools       map[string]toolcall.Tool
	toolNames   []string
	retryConfig retry.Config

	// chat is created on the first Send so that the context of the first
	// turn governs session creation.
	chat *genai.Chat
}

// Option configures a Conversation.
type Option func(*Conversation) error

// WithMaxOutputTokens sets the maximum output tokens per reply.
func WithMaxOutputTokens(maxOutputTokens int32) Option {
	return func(c *Conversation) error {
		if maxOutputTokens <= 0 {
			return errors.New("max output tokens must be positive")
		}
		c.config.MaxOutputTokens = maxOutputTokens
		return nil
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float32) Option {
	return func(c *Conversation) error {
		if temperature < 0 || temperature > 2 {
			return errors.New("temperature must be between 0 and 2")
		}
		c.config.Temperature = ptr(temperature)
		return nil
	}
}

// WithRetryConfig sets the backoff configuration for transient API errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Conversation) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.retryConfig = cfg
		return nil
	}
}

// New creates a Conversation with the given system instructions and tools.
func New(client *genai.Client, model string, system *prompt.Prompt, tools []toolcall.Tool, opts ...Option) (*Conversation, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}

	c := &Conversation{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:     ptr(float32(0.2)),
			MaxOutputTokens: 8192,
		},
		tools:       toolcall.Map(tools),
		retryConfig: retry.DefaultConfig(),
	}

	if system != nil {
		built, err := system.Build()
		if err != nil {
			return nil, fmt.Errorf("building system instructions: %w", err)
		}
		c.config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{
				Text: built,
			}},
		}
	}

	if len(tools) > 0 {
		declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, tool := range tools {
			declarations = append(declarations, functionDeclaration(tool.Def))
			c.toolNames = append(c.toolNames, tool.Def.Name)
		}
		c.config.Tools = []*genai.Tool{{
			FunctionDeclarations: declarations,
		}}
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	return c, nil
}

// Send delivers the user's message, runs tool calls until the model
// produces a text reply, and returns that reply.
func (c *Conversation) Send(ctx context.Context, userMessage string) (string, error) {
	log := clog.FromContext(ctx)

	if c.chat == nil {
		chat, err := c.client.Chats.Create(ctx, c.model, c.config, nil)
		if err != nil {
			return "", fmt.Errorf("creating chat session: %w", err)
		}
		c.chat = chat
	}

	response, err := retry.Do(ctx, c.retryConfig, "send_message", isRetryableVertexError, func() (*genai.GenerateContentResponse, error) {
		return c.chat.SendMessage(ctx, genai.Part{Text: userMessage})
	})
	if err != nil {
		return "", fmt.Errorf("sending message: %w", err)
	}
	c.recordUsage(ctx, response)

	for {
		if len(response.Candidates) == 0 {
			return "", errors.New("no content generated - no candidates")
		}
		candidate := response.Candidates[0]

		if candidate.FinishReason == genai.FinishReasonMalformedFunctionCall {
			log.With("finish_message", candidate.FinishMessage).
				Warn("Model attempted a malformed function call, asking it to retry")

			retryMsg := genai.Part{Text: fmt.Sprintf("The function call was malformed. Please try again using the available functions: %v", c.toolNames)}
			response, err = retry.Do(ctx, c.retryConfig, "send_malformed_retry", isRetryableVertexError, func() (*genai.GenerateContentResponse, error) {
				return c.chat.SendMessage(ctx, retryMsg)
			})
			if err != nil {
				return "", fmt.Errorf("retrying after malformed function call: %w", err)
			}
			c.recordUsage(ctx, response)
			continue
		}

		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			return "", errors.New("no content generated - candidate has no parts")
		}

		var toolCalls []*genai.FunctionCall
		var text string
		for _, part := range candidate.Content.Parts {
			switch {
			case part.FunctionCall != nil:
				toolCalls = append(toolCalls, part.FunctionCall)
			case part.Text != "":
				text = part.Text
			}
		}

		if len(toolCalls) > 0 {
			var responseParts []*genai.Part
			for _, call := range toolCalls {
				log.With("tool", call.Name).With("id", call.ID).Info("Executing tool call")
				c.recordToolCall(ctx, call.Name)
				responseParts = append(responseParts, &genai.Part{
					FunctionResponse: c.executeToolCall(ctx, call),
				})
			}

			response, err = retry.Do(ctx, c.retryConfig, "send_tool_responses", isRetryableVertexError, func() (*genai.GenerateContentResponse, error) {
				return c.chat.Send(ctx, responseParts...)
			})
			if err != nil {
				return "", fmt.Errorf("sending tool responses: %w", err)
			}
			c.recordUsage(ctx, response)
			continue
		}

		if text == "" {
			return "", errors.New("no text content found in response")
		}
		return text, nil
	}
}

// executeToolCall dispatches one function call to its registered handler.
// Unknown functions are reported back to the model rather than failing
// the turn.
func (c *Conversation) executeToolCall(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	var result map[string]any
	tool, ok := c.tools[call.Name]
	if !ok {
		clog.FromContext(ctx).With("function", call.Name).Error("Unknown function call requested by model")
		result = toolcall.Error("unknown function: %q", call.Name)
	} else {
		result = tool.Handler(ctx, toolcall.Call{
			ID:   call.ID,
			Name: call.Name,
			Args: call.Args,
		})
	}

	return &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: result,
	}
}

// recordUsage reports token usage to the ambient tracer when it can
// accept token measurements.
func (c *Conversation) recordUsage(ctx context.Context, response *genai.GenerateContentResponse) {
	if response == nil || response.UsageMetadata == nil {
		return
	}
	if rec, ok := optrace.TracerFromContext(ctx).(metrics.TokenRecorder); ok {
		rec.RecordTokens(ctx, c.model,
			int64(response.UsageMetadata.PromptTokenCount),
			int64(response.UsageMetadata.CandidatesTokenCount))
	}
}

// recordToolCall reports a tool invocation to the ambient tracer when it
// can accept tool call measurements.
func (c *Conversation) recordToolCall(ctx context.Context, toolName string) {
	if rec, ok := optrace.TracerFromContext(ctx).(metrics.ToolCallRecorder); ok {
		rec.RecordToolCall(ctx, c.model, toolName)
	}
}

// functionDeclaration converts a provider-neutral tool definition to the
// Gemini wire format.
func functionDeclaration(def toolcall.Definition) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        def.Name,
		Description: def.Description,
		Parameters:  schema.ToGenAI(def.Input),
	}
}

func ptr[T any](v T) *T {
	return &v
}
