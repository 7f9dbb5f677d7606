/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package reply extracts structured payloads from model reply text.
//
// Models are asked to emit machine-readable summaries as JSON, but the
// surrounding prose varies: some replies are bare JSON, some wrap it in a
// fenced code block, some lead with a sentence before the payload. This
// package normalizes those shapes so callers can decode the payload
// without caring which one the model chose.
package reply

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONBlock returns the JSON payload embedded in a model reply.
//
// It prefers a ```json fenced block when one is present, falling back to
// the first balanced top-level JSON object or array in the text. The
// second return is false when the reply carries no JSON at all.
func JSONBlock(text string) (string, bool) {
	if block, ok := fencedBlock(text); ok {
		return block, true
	}
	return bareJSON(text)
}

// Decode extracts the JSON payload from a model reply and unmarshals it
// into T. It returns an error when the reply contains no JSON or the
// payload does not decode into T.
func Decode[T any](text string) (T, error) {
	var out T
	payload, ok := JSONBlock(text)
	if !ok {
		return out, fmt.Errorf("reply contains no JSON payload")
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return out, fmt.Errorf("decoding reply payload: %w", err)
	}
	return out, nil
}

// fencedBlock returns the contents of the first ```json (or bare ```)
// fenced block in the text.
func fencedBlock(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	var body []string
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if trimmed == "```json" {
				inBlock = true
			}
			continue
		}
		if trimmed == "```" {
			return strings.TrimSpace(strings.Join(body, "\n")), true
		}
		body = append(body, line)
	}
	return "", false
}

// bareJSON scans for the first balanced top-level JSON object or array.
func bareJSON(text string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
