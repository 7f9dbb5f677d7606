/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package transfer models the state of one money transfer as it is
// collected slot by slot over a conversation.
package transfer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Slot names, in the order the agent collects them.
const (
	SlotAmount      = "amount"
	SlotCountry     = "country"
	SlotBeneficiary = "beneficiary"
	SlotMethod      = "method"
)

// SlotOrder is the canonical collection order.
var SlotOrder = []string{SlotAmount, SlotCountry, SlotBeneficiary, SlotMethod}

// Details is the transfer being assembled. An empty field is an unfilled
// slot.
type Details struct {
	Amount      string `json:"amount,omitempty"`
	Country     string `json:"country,omitempty"`
	Beneficiary string `json:"beneficiary,omitempty"`
	Method      string `json:"method,omitempty"`
}

// Update carries new or corrected slot values. Empty fields leave the
// corresponding slot unchanged; non-empty fields overwrite, which is how
// corrections ("actually make it 200") work.
type Update struct {
	Amount      string
	Country     string
	Beneficiary string
	Method      string
}

// Merge applies the update and reports which slots changed.
func (d *Details) Merge(u Update) []string {
	var changed []string
	if u.Amount != "" && u.Amount != d.Amount {
		d.Amount = u.Amount
		changed = append(changed, SlotAmount)
	}
	if u.Country != "" && u.Country != d.Country {
		d.Country = u.Country
		changed = append(changed, SlotCountry)
	}
	if u.Beneficiary != "" && u.Beneficiary != d.Beneficiary {
		d.Beneficiary = u.Beneficiary
		changed = append(changed, SlotBeneficiary)
	}
	if u.Method != "" && u.Method != d.Method {
		d.Method = u.Method
		changed = append(changed, SlotMethod)
	}
	return changed
}

// Missing returns the unfilled slots in collection order.
func (d Details) Missing() []string {
	var missing []string
	for _, slot := range SlotOrder {
		if d.slot(slot) == "" {
			missing = append(missing, slot)
		}
	}
	return missing
}

// Complete reports whether every slot is filled.
func (d Details) Complete() bool {
	return len(d.Missing()) == 0
}

// Recorded renders the acknowledgement the agent's recording tool returns
// to the model, e.g. `RECORDED: amount="100", country="Mexico", ...`.
func (d Details) Recorded() string {
	parts := make([]string, 0, len(SlotOrder))
	for _, slot := range SlotOrder {
		parts = append(parts, fmt.Sprintf("%s=%q", slot, d.slot(slot)))
	}
	return "RECORDED: " + strings.Join(parts, ", ")
}

// Summary marshals the completed transfer as the final JSON summary.
func (d Details) Summary() (string, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling transfer summary: %w", err)
	}
	return string(out), nil
}

func (d Details) slot(name string) string {
	switch name {
	case SlotAmount:
		return d.Amount
	case SlotCountry:
		return d.Country
	case SlotBeneficiary:
		return d.Beneficiary
	case SlotMethod:
		return d.Method
	default:
		return ""
	}
}
