/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sendmoney

import (
	"context"
	"strings"
	"testing"

	"chainguard.dev/remitaf/agents/toolcall"
	"chainguard.dev/remitaf/transfer"
	"github.com/google/go-cmp/cmp"
)

func callTool(t *testing.T, tool toolcall.Tool, args map[string]any) map[string]any {
	t.Helper()
	return tool.Handler(context.Background(), toolcall.Call{
		ID:   "call-1",
		Name: tool.Def.Name,
		Args: args,
	})
}

func TestUpdateTransferDetailsToolMerges(t *testing.T) {
	details := &transfer.Details{}
	tool := UpdateTransferDetailsTool(details)

	resp := callTool(t, tool, map[string]any{"amount": "100", "country": "Kenya"})
	if _, ok := resp["error"]; ok {
		t.Fatalf("handler returned error: %v", resp["error"])
	}

	result, ok := resp["result"].(string)
	if !ok {
		t.Fatal("result is not a string")
	}
	if !strings.HasPrefix(result, "RECORDED:") {
		t.Errorf("result = %q, wanted RECORDED prefix", result)
	}

	missing, ok := resp["missing"].([]string)
	if !ok {
		t.Fatal("missing is not []string")
	}
	want := []string{transfer.SlotBeneficiary, transfer.SlotMethod}
	if diff := cmp.Diff(want, missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateTransferDetailsToolCompleteOmitsMissing(t *testing.T) {
	details := &transfer.Details{Amount: "100", Country: "Kenya", Beneficiary: "Alice Mwangi"}
	tool := UpdateTransferDetailsTool(details)

	resp := callTool(t, tool, map[string]any{"method": "bank_transfer"})
	if _, ok := resp["missing"]; ok {
		t.Error("missing present in response, wanted omitted when complete")
	}
	if !details.Complete() {
		t.Error("Complete() = false, wanted true")
	}
}

func TestUpdateTransferDetailsToolRejectsUnknownMethod(t *testing.T) {
	details := &transfer.Details{}
	tool := UpdateTransferDetailsTool(details)

	resp := callTool(t, tool, map[string]any{"method": "carrier_pigeon"})
	errMsg, ok := resp["error"].(string)
	if !ok {
		t.Fatal("handler accepted an unsupported delivery method")
	}
	if !strings.Contains(errMsg, "carrier_pigeon") {
		t.Errorf("error = %q, wanted the rejected method named", errMsg)
	}
	if details.Method != "" {
		t.Errorf("Method = %q, wanted unchanged", details.Method)
	}
}

func TestUpdateTransferDetailsToolRejectsWrongType(t *testing.T) {
	details := &transfer.Details{}
	tool := UpdateTransferDetailsTool(details)

	resp := callTool(t, tool, map[string]any{"amount": 100})
	if _, ok := resp["error"]; !ok {
		t.Error("handler accepted a non-string amount, wanted error response")
	}
}

func TestUpdateTransferDetailsToolDefinition(t *testing.T) {
	tool := UpdateTransferDetailsTool(&transfer.Details{})
	if tool.Def.Name != "update_transfer_details" {
		t.Errorf("Name = %q, wanted = %q", tool.Def.Name, "update_transfer_details")
	}
	if tool.Def.Input == nil {
		t.Fatal("Input schema is nil")
	}
	for _, slot := range transfer.SlotOrder {
		if _, ok := tool.Def.Input.Properties.Get(slot); !ok {
			t.Errorf("Input schema missing property %q", slot)
		}
	}
}
