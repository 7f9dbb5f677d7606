/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives JSON schemas for tool inputs from annotated Go
// structs, and converts them to the forms the model providers accept.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// Generator wraps jsonschema.Reflector with the defaults we need for tool
// input schemas: inline everything, honor jsonschema struct tags for
// required fields.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator with project defaults.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect derives the JSON schema for the provided value using a default
// generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType allocates a zero value of T and reflects it to a schema.
func ReflectType[T any]() *jsonschema.Schema {
	var zero T
	return Reflect(&zero)
}

// ToMap converts a schema to the generic map form used for Anthropic tool
// input schemas.
func ToMap(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToGenAI converts a schema to the genai.Schema form used for Gemini
// function declarations. Only the subset of JSON schema that tool inputs
// use is mapped; unknown constructs are dropped.
func ToGenAI(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Title:       s.Title,
		Format:      s.Format,
	}

	if t := genaiType(s.Type); t != "" {
		out.Type = t
	}

	if len(s.Enum) > 0 {
		out.Enum = make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			if str, ok := v.(string); ok {
				out.Enum = append(out.Enum, str)
			}
		}
	}

	if len(s.Required) > 0 {
		out.Required = append(out.Required, s.Required...)
	}

	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		ordering := make([]string, 0, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = ToGenAI(pair.Value)
			ordering = append(ordering, pair.Key)
		}
		out.PropertyOrdering = ordering
	}

	if s.Items != nil {
		out.Items = ToGenAI(s.Items)
	}

	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	case "null":
		return genai.TypeNULL
	default:
		return ""
	}
}
