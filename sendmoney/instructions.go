/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sendmoney

import (
	"strings"

	"chainguard.dev/remitaf/agents/prompt"
)

// DeliveryMethods lists the delivery methods the assistant offers.
var DeliveryMethods = []string{"bank_transfer", "mobile_money", "cash_pickup"}

const instructionsTemplate = `You are a friendly money transfer assistant.
Your goal is to collect: 1) Amount, 2) Country, 3) Beneficiary name, 4) Delivery method.

OPERATING GUIDELINES:
1. Identify Missing Info: Review the current state and ask for what is missing.
2. Extract & Record: Use the 'update_transfer_details' tool immediately when info is provided.
3. Handle Corrections: If the user says "actually make it 200", call the tool to overwrite the value.
4. Conversational Slot Filling: Ask questions naturally (e.g., "And who are we sending this to?").
5. Delivery Methods: The supported delivery methods are: {{methods}}.
6. Final Output: Once all 4 fields are collected, output a JSON summary of the transfer in a
   fenced ` + "```json" + ` code block with the keys "amount", "country", "beneficiary", and "method".
`

// Instructions returns the system instructions for the transfer
// assistant, with the supported delivery methods bound in.
func Instructions() *prompt.Prompt {
	p, err := prompt.MustNew(instructionsTemplate).Bind("methods", strings.Join(DeliveryMethods, ", "))
	if err != nil {
		// The template is a compile-time constant with a single
		// placeholder, so a bind failure is a programming error.
		panic(err)
	}
	return p
}
