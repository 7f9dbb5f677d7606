/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"
	"maps"

	"chainguard.dev/remitaf/agents/schema"
	"github.com/invopop/jsonschema"
)

// Call is a provider-independent representation of a tool call.
type Call struct {
	ID   string
	Name string
	Args map[string]any
}

// Definition describes a tool: its name, what the model should know about
// it, and the JSON schema of its input object.
type Definition struct {
	Name        string
	Description string
	Input       *jsonschema.Schema
}

// Handler processes one tool call and returns the result map sent back to
// the model. Handlers report argument problems through error-shaped result
// maps (see Error), not Go errors: the model is the party that can fix them.
type Handler func(ctx context.Context, call Call) map[string]any

// Tool defines a tool once with a single handler that works with any
// provider.
type Tool struct {
	Def     Definition
	Handler Handler
}

// Define reflects the input schema for a tool from its argument struct.
func Define[Args any](name, description string) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Input:       schema.ReflectType[Args](),
	}
}

// Map keys tools by name for executor lookup.
func Map(tools []Tool) map[string]Tool {
	out := make(map[string]Tool, len(tools))
	for _, t := range tools {
		out[t.Def.Name] = t
	}
	return out
}

// Arg extracts a required argument from the call. On error it returns an
// error-shaped result map for the model.
func Arg[T any](call Call, name string) (T, map[string]any) {
	var zero T

	value, exists := call.Args[name]
	if !exists {
		return zero, Error("%s parameter is required", name)
	}

	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := convertNumeric[T](value); ok {
		return v, nil
	}

	return zero, Error("%s parameter must be of type %T, got %T", name, zero, value)
}

// OptionalArg extracts an optional argument, returning the default when the
// argument is absent.
func OptionalArg[T any](call Call, name string, defaultValue T) (T, map[string]any) {
	value, exists := call.Args[name]
	if !exists {
		return defaultValue, nil
	}

	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := convertNumeric[T](value); ok {
		return v, nil
	}

	var zero T
	return zero, Error("%s parameter must be of type %T, got %T", name, zero, value)
}

// convertNumeric handles the JSON numeric conversions providers produce
// (float64 for every number).
func convertNumeric[T any](value any) (T, bool) {
	var zero T
	floatVal, ok := value.(float64)
	if !ok {
		return zero, false
	}

	switch any(zero).(type) {
	case int:
		return any(int(floatVal)).(T), true
	case int32:
		return any(int32(floatVal)).(T), true
	case int64:
		return any(int64(floatVal)).(T), true
	}
	return zero, false
}

// Error creates an error-shaped result map.
func Error(format string, args ...any) map[string]any {
	return map[string]any{
		"error": fmt.Sprintf(format, args...),
	}
}

// ErrorWithContext creates an error-shaped result map with extra fields.
func ErrorWithContext(err error, context map[string]any) map[string]any {
	response := map[string]any{
		"error": err.Error(),
	}
	maps.Copy(response, context)
	return response
}
