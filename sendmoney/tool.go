/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sendmoney

import (
	"context"
	"slices"
	"strings"

	"chainguard.dev/remitaf/agents/toolcall"
	"chainguard.dev/remitaf/transfer"
	"github.com/chainguard-dev/clog"
)

type updateArgs struct {
	Amount      string `json:"amount,omitempty" jsonschema:"description=The amount of money to send"`
	Country     string `json:"country,omitempty" jsonschema:"description=The destination country"`
	Beneficiary string `json:"beneficiary,omitempty" jsonschema:"description=The full name of the person receiving the money"`
	Method      string `json:"method,omitempty" jsonschema:"description=The delivery method,enum=bank_transfer,enum=mobile_money,enum=cash_pickup"`
}

// UpdateTransferDetailsTool returns the tool the model calls to record or
// correct transfer details. The handler merges any non-empty arguments
// into details, so a later call overwrites an earlier value.
func UpdateTransferDetailsTool(details *transfer.Details) toolcall.Tool {
	return toolcall.Tool{
		Def: toolcall.Define[updateArgs]("update_transfer_details",
			"Saves and updates money transfer details in the session state. "+
				"Call this whenever the user provides or corrects a detail."),
		Handler: func(ctx context.Context, call toolcall.Call) map[string]any {
			amount, errResp := toolcall.OptionalArg(call, "amount", "")
			if errResp != nil {
				return errResp
			}
			country, errResp := toolcall.OptionalArg(call, "country", "")
			if errResp != nil {
				return errResp
			}
			beneficiary, errResp := toolcall.OptionalArg(call, "beneficiary", "")
			if errResp != nil {
				return errResp
			}
			method, errResp := toolcall.OptionalArg(call, "method", "")
			if errResp != nil {
				return errResp
			}

			if method != "" && !slices.Contains(DeliveryMethods, method) {
				return toolcall.Error("unsupported delivery method: %q (supported: %s)",
					method, strings.Join(DeliveryMethods, ", "))
			}

			changed := details.Merge(transfer.Update{
				Amount:      amount,
				Country:     country,
				Beneficiary: beneficiary,
				Method:      method,
			})
			clog.FromContext(ctx).With("changed", changed).Info("Recorded transfer details")

			resp := map[string]any{"result": details.Recorded()}
			if missing := details.Missing(); len(missing) > 0 {
				resp["missing"] = missing
			}
			return resp
		},
	}
}
