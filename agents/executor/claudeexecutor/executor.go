/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor runs conversations against Claude models on
// Vertex AI using Anthropic's SDK.
package claudeexecutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chainguard.dev/remitaf/agents/executor/retry"
	"chainguard.dev/remitaf/agents/metrics"
	"chainguard.dev/remitaf/agents/optrace"
	"chainguard.dev/remitaf/agents/prompt"
	"chainguard.dev/remitaf/agents/schema"
	"chainguard.dev/remitaf/agents/toolcall"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// Conversation is a stateful exchange with a Claude model. The message
// history accumulates across Send calls. Not safe for concurrent Send.
type Conversation struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	system      string
	toolDefs    []anthropic.ToolUnionParam
	tools       map[string]toolcall.Tool
	retryConfig retry.Config

	messages []anthropic.MessageParam
}

// Option configures a Conversation.
type Option func(*Conversation) error

// WithMaxTokens sets the maximum output tokens per reply.
func WithMaxTokens(maxTokens int64) Option {
	return func(c *Conversation) error {
		if maxTokens <= 0 {
			return errors.New("max tokens must be positive")
		}
		c.maxTokens = maxTokens
		return nil
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(c *Conversation) error {
		if temperature < 0 || temperature > 1 {
			return errors.New("temperature must be between 0 and 1")
		}
		c.temperature = temperature
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
func New(client anthropic.Client, model string, system *prompt.Prompt, tools []toolcall.Tool, opts ...Option) (*Conversation, error) {
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}

	c := &Conversation{
		client:      client,
		model:       model,
		maxTokens:   8192,
		temperature: 0.1,
		tools:       toolcall.Map(tools),
		retryConfig: retry.DefaultConfig(),
	}

	if system != nil {
		built, err := system.Build()
		if err != nil {
			return nil, fmt.Errorf("building system instructions: %w", err)
		}
		c.system = built
	}

	for _, tool := range tools {
		def, err := toolDefinition(tool.Def)
		if err != nil {
			return nil, fmt.Errorf("converting tool %q: %w", tool.Def.Name, err)
		}
		c.toolDefs = append(c.toolDefs, def)
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

	c.messages = append(c.messages, anthropic.MessageParam{
		Role: anthropic.MessageParamRoleUser,
		Content: []anthropic.ContentBlockParamUnion{
			anthropic.NewTextBlock(userMessage),
		},
	})

	for {
		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: c.maxTokens,
			Messages:  c.messages,
			Tools:     c.toolDefs,
		}
		params.Temperature = anthropic.Float(c.temperature)
		if c.system != "" {
			params.System = []anthropic.TextBlockParam{{Text: c.system}}
		}

		message, err := retry.Do(ctx, c.retryConfig, "stream_message", isRetryableClaudeError, func() (anthropic.Message, error) {
			stream := c.client.Messages.NewStreaming(ctx, params)
			var msg anthropic.Message
			for stream.Next() {
				event := stream.Current()
				if err := msg.Accumulate(event); err != nil {
					return msg, fmt.Errorf("accumulating event: %w", err)
				}
			}
			if err := stream.Err(); err != nil {
				return msg, err
			}
			return msg, nil
		})
		if err != nil {
			return "", fmt.Errorf("streaming Claude response: %w", err)
		}

		if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
			c.recordTokens(ctx, message.Usage.InputTokens, message.Usage.OutputTokens)
		}

		var toolUses []anthropic.ToolUseBlock
		var text string
		for _, content := range message.Content {
			switch content.Type {
			case "text":
				text = content.Text
			case "tool_use":
				toolUses = append(toolUses, anthropic.ToolUseBlock{
					ID:    content.ID,
					Name:  content.Name,
					Input: content.Input,
				})
			}
		}

		c.messages = append(c.messages, message.ToParam())

		if len(toolUses) > 0 {
			var results []anthropic.ContentBlockParamUnion
			for _, toolUse := range toolUses {
				log.With("tool", toolUse.Name).
					With("id", toolUse.ID).
					Info("Executing tool call")
				c.recordToolCall(ctx, toolUse.Name)
				results = append(results, c.executeToolCall(ctx, toolUse))
			}
			c.messages = append(c.messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: results,
			})
			continue
		}

		if text == "" {
			return "", errors.New("no text content found in response")
		}
		return text, nil
	}
}

// executeToolCall dispatches one tool call to its registered handler and
// packages the result for the model. Unknown tools and undecodable
// arguments are reported back to the model rather than failing the turn.
func (c *Conversation) executeToolCall(ctx context.Context, toolUse anthropic.ToolUseBlock) anthropic.ContentBlockParamUnion {
	log := clog.FromContext(ctx)

	var result map[string]any
	tool, ok := c.tools[toolUse.Name]
	if !ok {
		log.With("tool", toolUse.Name).Error("Unknown tool requested")
		result = toolcall.Error("unknown tool: %q", toolUse.Name)
	} else {
		var args map[string]any
		if len(toolUse.Input) > 0 {
			if err := json.Unmarshal(toolUse.Input, &args); err != nil {
				log.With("tool", toolUse.Name).With("error", err).Error("Undecodable tool input")
				result = toolcall.ErrorWithContext(fmt.Errorf("decoding tool input: %w", err), map[string]any{
					"tool": toolUse.Name,
				})
			}
		}
		if result == nil {
			result = tool.Handler(ctx, toolcall.Call{
				ID:   toolUse.ID,
				Name: toolUse.Name,
				Args: args,
			})
		}
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		resultBytes = []byte(fmt.Sprintf(`{"error": "marshaling tool result: %v"}`, err))
	}

	return anthropic.ContentBlockParamUnion{
		OfToolResult: &anthropic.ToolResultBlockParam{
			ToolUseID: toolUse.ID,
			Content: []anthropic.ToolResultBlockParamContentUnion{{
				OfText: &anthropic.TextBlockParam{
					Text: string(resultBytes),
				},
			}},
		},
	}
}

// recordTokens reports token usage to the ambient tracer when it can
// accept token measurements.
func (c *Conversation) recordTokens(ctx context.Context, promptTokens, completionTokens int64) {
	if rec, ok := optrace.TracerFromContext(ctx).(metrics.TokenRecorder); ok {
		rec.RecordTokens(ctx, c.model, promptTokens, completionTokens)
	}
}

// recordToolCall reports a tool invocation to the ambient tracer when it
// can accept tool call measurements.
func (c *Conversation) recordToolCall(ctx context.Context, toolName string) {
	if rec, ok := optrace.TracerFromContext(ctx).(metrics.ToolCallRecorder); ok {
		rec.RecordToolCall(ctx, c.model, toolName)
	}
}

// toolDefinition converts a provider-neutral tool definition to the
// Anthropic wire format.
func toolDefinition(def toolcall.Definition) (anthropic.ToolUnionParam, error) {
	input := anthropic.ToolInputSchemaParam{Type: "object"}
	if def.Input != nil {
		m, err := schema.ToMap(def.Input)
		if err != nil {
			return anthropic.ToolUnionParam{}, err
		}
		if props, ok := m["properties"].(map[string]any); ok {
			input.Properties = props
		}
		if req, ok := m["required"].([]any); ok {
			for _, r := range req {
				if name, ok := r.(string); ok {
					input.Required = append(input.Required, name)
				}
			}
		}
	}

	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        def.Name,
			Description: anthropic.String(def.Description),
			InputSchema: input,
		},
	}, nil
}
