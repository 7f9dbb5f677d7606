/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package reply

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type summary struct {
	Amount  string `json:"amount"`
	Country string `json:"country"`
}

func TestJSONBlockFenced(t *testing.T) {
	text := "Here is the transfer summary:\n```json\n{\"amount\": \"100\", \"country\": \"Kenya\"}\n```\nLet me know if anything looks wrong."
	got, ok := JSONBlock(text)
	if !ok {
		t.Fatal("JSONBlock() found no payload, wanted one")
	}
	want := `{"amount": "100", "country": "Kenya"}`
	if got != want {
		t.Errorf("JSONBlock() = %q, wanted = %q", got, want)
	}
}

func TestJSONBlockBare(t *testing.T) {
	text := `All details recorded. {"amount": "250", "country": "India"} Please confirm.`
	got, ok := JSONBlock(text)
	if !ok {
		t.Fatal("JSONBlock() found no payload, wanted one")
	}
	want := `{"amount": "250", "country": "India"}`
	if got != want {
		t.Errorf("JSONBlock() = %q, wanted = %q", got, want)
	}
}

func TestJSONBlockNestedBraces(t *testing.T) {
	text := `{"outer": {"inner": "value with \"quote\" and }"}} trailing`
	got, ok := JSONBlock(text)
	if !ok {
		t.Fatal("JSONBlock() found no payload, wanted one")
	}
	want := `{"outer": {"inner": "value with \"quote\" and }"}}`
	if got != want {
		t.Errorf("JSONBlock() = %q, wanted = %q", got, want)
	}
}

func TestJSONBlockArray(t *testing.T) {
	got, ok := JSONBlock(`options: ["bank_transfer", "mobile_money"]`)
	if !ok {
		t.Fatal("JSONBlock() found no payload, wanted one")
	}
	want := `["bank_transfer", "mobile_money"]`
	if got != want {
		t.Errorf("JSONBlock() = %q, wanted = %q", got, want)
	}
}

func TestJSONBlockNone(t *testing.T) {
	if got, ok := JSONBlock("no payload here"); ok {
		t.Errorf("JSONBlock() = %q, wanted no payload", got)
	}
}

func TestDecode(t *testing.T) {
	text := "Summary below.\n```json\n{\"amount\": \"100\", \"country\": \"Kenya\"}\n```"
	got, err := Decode[summary](text)
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	want := summary{Amount: "100", Country: "Kenya"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeNoPayload(t *testing.T) {
	if _, err := Decode[summary]("nothing structured"); err == nil {
		t.Error("Decode() = nil error, wanted error for missing payload")
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode[summary](`{"amount": 100`); err == nil {
		t.Error("Decode() = nil error, wanted error for malformed payload")
	}
}
