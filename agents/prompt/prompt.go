/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prompt provides immutable prompt templates with {{name}}
// placeholders. Templates are parsed once; binding returns a new Prompt so
// a base template can be shared and specialized per request.
package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Prompt is a template with named placeholders and their bound values.
type Prompt struct {
	template string
	bound    map[string]string
	names    map[string]struct{}
}

// New parses the template and collects its placeholders.
func New(template string) (*Prompt, error) {
	names := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		names[m[1]] = struct{}{}
	}

	// Reject stray braces that look like malformed placeholders.
	stripped := placeholderPattern.ReplaceAllString(template, "")
	if strings.Contains(stripped, "{{") || strings.Contains(stripped, "}}") {
		return nil, fmt.Errorf("malformed placeholder in template")
	}

	return &Prompt{
		template: template,
		bound:    make(map[string]string),
		names:    names,
	}, nil
}

// MustNew is New for templates known at compile time; it panics on error.
func MustNew(template string) *Prompt {
	p, err := New(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Placeholders returns the set of placeholder names found in the template.
func (p *Prompt) Placeholders() map[string]struct{} {
	out := make(map[string]struct{}, len(p.names))
	for name := range p.names {
		out[name] = struct{}{}
	}
	return out
}

// Bind binds a string value to a placeholder, returning a new Prompt.
// Binding an unknown or already-bound placeholder is an error.
func (p *Prompt) Bind(name, value string) (*Prompt, error) {
	if _, ok := p.names[name]; !ok {
		return nil, fmt.Errorf("unknown placeholder %q", name)
	}
	if _, ok := p.bound[name]; ok {
		return nil, fmt.Errorf("placeholder %q is already bound", name)
	}

	next := &Prompt{
		template: p.template,
		bound:    make(map[string]string, len(p.bound)+1),
		names:    p.names,
	}
	for k, v := range p.bound {
		next.bound[k] = v
	}
	next.bound[name] = value
	return next, nil
}

// BindJSON marshals data as JSON and binds it to a placeholder.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %q binding: %w", name, err)
	}
	return p.Bind(name, string(encoded))
}

// Build renders the template. Every placeholder must be bound.
func (p *Prompt) Build() (string, error) {
	var missing []string
	for name := range p.names {
		if _, ok := p.bound[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("unbound placeholders: %s", strings.Join(missing, ", "))
	}

	return placeholderPattern.ReplaceAllStringFunc(p.template, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		return p.bound[name]
	}), nil
}

// Bindable is implemented by request types that know how to bind their own
// values into a prompt. Callers apply a Bindable to their template before
// handing the fully bound prompt to a conversation, so templates stay
// decoupled from request shapes.
type Bindable interface {
	Bind(p *Prompt) (*Prompt, error)
}

// Noop is a Bindable that passes the prompt through unchanged.
type Noop struct{}

// Bind implements Bindable.
func (Noop) Bind(p *Prompt) (*Prompt, error) { return p, nil }
