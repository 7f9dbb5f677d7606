/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package toolcall defines tools once, independently of any model provider.

# Overview

A Tool pairs a Definition (name, description, JSON schema for its input)
with a single Handler. Executors translate the Definition into their
provider's native form and route the provider's function calls back through
the Handler as a provider-neutral Call.

Input schemas are reflected from plain Go structs via Define, so a tool's
argument shape lives in one annotated type:

	type updateArgs struct {
		Amount  string `json:"amount,omitempty" jsonschema:"description=Amount to send"`
		Country string `json:"country,omitempty" jsonschema:"description=Destination country"`
	}

	tool := toolcall.Tool{
		Def:     toolcall.Define[updateArgs]("update_transfer_details", "Saves transfer details."),
		Handler: handleUpdate,
	}

# Argument extraction

Handlers extract arguments with Arg and OptionalArg, which handle the JSON
numeric conversions providers produce (float64 for every number). On
failure they return an error-shaped result map that is sent straight back
to the model, so a bad argument becomes a model-visible correction rather
than an operation failure.
*/
package toolcall
